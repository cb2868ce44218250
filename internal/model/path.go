package model

// NodePath is one node's local route from an input endpoint to an
// output endpoint. Either side may be nil, covering the "all traffic
// into this node" and "all traffic out of this node" degenerate routes.
type NodePath struct {
	NodeName string
	Input    NodeInput
	Output   NodeOutput

	// Chain is the callback/variable-passing sequence realizing the
	// route, when the intra-node search found one.
	Chain []ChainElement

	// Context classifies the input/output message relationship, when a
	// reader descriptor matched this path.
	Context *MessageContext
}

func (NodePath) pathElement() {}

// SubscribeTopicName returns the input side's topic, "" when nil.
func (np NodePath) SubscribeTopicName() string {
	return InputTopicName(np.Input)
}

// PublishTopicName returns the output side's topic, "" when nil.
func (np NodePath) PublishTopicName() string {
	return OutputTopicName(np.Output)
}

// Communication is one resolved inter-node transfer: a publisher and a
// subscription on the same topic in two (possibly identical) nodes.
type Communication struct {
	TopicName         string
	PublishNodeName   string
	SubscribeNodeName string
	Publisher         Publisher
	Subscription      Subscription
}

func (Communication) pathElement() {}

// TransformCommunication is the transform analogue of Communication: a
// frame broadcaster and a frame buffer the tree confirmed as the same
// physical edge.
type TransformCommunication struct {
	Broadcaster TransformFrameBroadcaster
	Buffer      TransformFrameBuffer
}

func (TransformCommunication) pathElement() {}

// PathElement is the closed union of path constituents: NodePath,
// Communication, TransformCommunication.
type PathElement interface {
	pathElement()
}

// Path is a fully resolved end-to-end route: an alternating sequence
// starting and ending with a NodePath, interleaved with communications.
// Name is set for reader-declared named paths and empty for search
// results.
type Path struct {
	Name     string
	Elements []PathElement
}

// NodeNames returns the names of the nodes the path traverses, in order.
func (p Path) NodeNames() []string {
	var out []string
	for _, el := range p.Elements {
		if np, ok := el.(NodePath); ok {
			out = append(out, np.NodeName)
		}
	}
	return out
}

// TopicNames returns the topics of the communications the path
// traverses, in order. Transform hops report the transform channel.
func (p Path) TopicNames() []string {
	var out []string
	for _, el := range p.Elements {
		switch c := el.(type) {
		case Communication:
			out = append(out, c.TopicName)
		case TransformCommunication:
			out = append(out, TopicTF)
		}
	}
	return out
}
