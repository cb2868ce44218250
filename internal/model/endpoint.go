package model

// TopicTF is the dedicated transform channel. It is never modeled as an
// ordinary publisher or subscription; declarations on it are decomposed
// into per-transform broadcaster and buffer entities.
const TopicTF = "/tf"

// Publisher is one node's declared output on a topic.
type Publisher struct {
	NodeName      string
	TopicName     string
	CallbackNames []string
}

func (Publisher) nodeOutput() {}

// Subscription is one node's declared input on a topic.
type Subscription struct {
	NodeName     string
	TopicName    string
	CallbackName string
}

func (Subscription) nodeInput() {}

// TransformBroadcaster is a node's transform-publishing endpoint plus
// every transform it broadcasts. Each (endpoint, transform) combination
// is expanded into a TransformFrameBroadcaster.
type TransformBroadcaster struct {
	Publisher  Publisher
	Transforms []Transform
}

// TransformBuffer is a node's transform-consuming endpoint: the
// transforms it listens to and the transforms it looks up.
type TransformBuffer struct {
	NodeName         string
	ListenTransforms []Transform
	LookupTransforms []Transform
}

// TransformFrameBroadcaster is the publisher analogue for one broadcast
// transform. It participates in communication pairing like a Publisher.
type TransformFrameBroadcaster struct {
	Publisher Publisher
	Transform Transform
}

func (TransformFrameBroadcaster) nodeOutput() {}

// TransformFrameBuffer is the subscription analogue for one looked-up
// transform.
type TransformFrameBuffer struct {
	NodeName        string
	LookupTransform Transform
}

func (TransformFrameBuffer) nodeInput() {}

// NodeInput is the closed union of input endpoint variants.
type NodeInput interface {
	nodeInput()
}

// NodeOutput is the closed union of output endpoint variants.
type NodeOutput interface {
	nodeOutput()
}

// InputTopicName returns the topic an input endpoint consumes. Transform
// buffers consume the transform channel. A nil input yields "".
func InputTopicName(in NodeInput) string {
	switch v := in.(type) {
	case Subscription:
		return v.TopicName
	case TransformFrameBuffer:
		return TopicTF
	}
	return ""
}

// OutputTopicName returns the topic an output endpoint produces on.
// Transform broadcasters produce on the transform channel. A nil output
// yields "".
func OutputTopicName(out NodeOutput) string {
	switch v := out.(type) {
	case Publisher:
		return v.TopicName
	case TransformFrameBroadcaster:
		return TopicTF
	}
	return ""
}

// InputNodeName returns the node that owns an input endpoint.
func InputNodeName(in NodeInput) string {
	switch v := in.(type) {
	case Subscription:
		return v.NodeName
	case TransformFrameBuffer:
		return v.NodeName
	}
	return ""
}

// OutputNodeName returns the node that owns an output endpoint.
func OutputNodeName(out NodeOutput) string {
	switch v := out.(type) {
	case Publisher:
		return v.NodeName
	case TransformFrameBroadcaster:
		return v.Publisher.NodeName
	}
	return ""
}

// IsPair reports whether an output endpoint and an input endpoint form
// one unit of inter-node transfer. Ordinary endpoints pair on topic-name
// equality; transform endpoints pair when the tree confirms the
// broadcast transform lies on the lookup's ancestry path. Mixed
// variants never pair.
func IsPair(out NodeOutput, in NodeInput, tree *TransformTree) bool {
	switch o := out.(type) {
	case Publisher:
		s, ok := in.(Subscription)
		return ok && o.TopicName == s.TopicName
	case TransformFrameBroadcaster:
		b, ok := in.(TransformFrameBuffer)
		if !ok || tree == nil {
			return false
		}
		return tree.IsIn(b.LookupTransform, o.Transform)
	}
	return false
}
