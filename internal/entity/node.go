package entity

import (
	"context"
	"fmt"
	"strings"

	"github.com/hsgwa/archgraph/internal/diag"
	"github.com/hsgwa/archgraph/internal/model"
	"github.com/hsgwa/archgraph/internal/reader"
)

// infoPubSuffix marks introspection publishers that are excluded from a
// node's output set.
const infoPubSuffix = "/info/pub"

// Node is the builder for one node: every declared entity plus the
// pre-populated path table the searches write into.
type Node struct {
	finalized
	name string

	callbacks        *Callbacks
	callbackGroups   []*CallbackGroup
	variablePassings []*VariablePassing
	publishers       []model.Publisher
	subscriptions    []model.Subscription
	timers           []model.Timer
	tfBroadcaster    *model.TransformBroadcaster
	tfBuffer         *model.TransformBuffer

	inputs  []model.NodeInput
	outputs []model.NodeOutput
	paths   *NodePaths
}

// NewNode builds a node from its reader records. Callback records with
// an undefined id are dropped; unresolvable references degrade with a
// warning instead of failing the node.
func NewNode(ctx context.Context, sink *diag.Sink, r reader.ArchitectureReader, name string) *Node {
	n := &Node{name: name, callbacks: &Callbacks{}}

	index := 0
	for _, rec := range r.GetTimerCallbacks(name) {
		if !reader.IsDefined(rec.ID) {
			continue
		}
		n.callbacks.insert(ctx, sink, newCallback(rec, model.TimerCallback, index))
		index++
	}
	for _, rec := range r.GetSubscriptionCallbacks(name) {
		if !reader.IsDefined(rec.ID) {
			continue
		}
		n.callbacks.insert(ctx, sink, newCallback(rec, model.SubscriptionCallback, index))
		index++
	}

	for _, rec := range r.GetCallbackGroups(name) {
		n.callbackGroups = append(n.callbackGroups, n.newCallbackGroup(ctx, sink, rec))
	}

	for _, rec := range r.GetVariablePassings(name) {
		n.variablePassings = append(n.variablePassings, &VariablePassing{
			nodeName:          name,
			writeCallbackName: rec.WriteCallbackName,
			readCallbackName:  rec.ReadCallbackName,
		})
	}

	for _, rec := range r.GetPublishers(name) {
		// The transform channel is modeled by the broadcaster entity.
		if rec.TopicName == model.TopicTF {
			continue
		}
		n.publishers = append(n.publishers, model.Publisher{
			NodeName:      name,
			TopicName:     rec.TopicName,
			CallbackNames: n.callbackNames(ctx, sink, rec.CallbackIDs),
		})
	}

	for _, rec := range r.GetSubscriptions(name) {
		if rec.TopicName == model.TopicTF {
			continue
		}
		sub := model.Subscription{NodeName: name, TopicName: rec.TopicName}
		if names := n.callbackNames(ctx, sink, []string{rec.CallbackID}); len(names) > 0 {
			sub.CallbackName = names[0]
		}
		n.subscriptions = append(n.subscriptions, sub)
	}

	for _, rec := range r.GetTimers(name) {
		timer := model.Timer{NodeName: name, Period: rec.Period}
		if names := n.callbackNames(ctx, sink, []string{rec.CallbackID}); len(names) > 0 {
			timer.CallbackName = names[0]
		}
		n.timers = append(n.timers, timer)
	}

	if rec := r.GetTfBroadcaster(name); rec != nil {
		n.tfBroadcaster = &model.TransformBroadcaster{
			Publisher: model.Publisher{
				NodeName:      name,
				TopicName:     model.TopicTF,
				CallbackNames: n.callbackNames(ctx, sink, rec.CallbackIDs),
			},
			Transforms: toTransforms(rec.Transforms),
		}
	}
	if rec := r.GetTfBuffer(name); rec != nil {
		n.tfBuffer = &model.TransformBuffer{
			NodeName:         name,
			ListenTransforms: toTransforms(rec.ListenTransforms),
			LookupTransforms: toTransforms(rec.LookupTransforms),
		}
	}

	n.inputs = n.buildInputs()
	n.outputs = n.buildOutputs()
	n.paths = NewNodePaths(name, n.inputs, n.outputs)
	return n
}

func toTransforms(recs []reader.TransformFrameRecord) []model.Transform {
	out := make([]model.Transform, 0, len(recs))
	for _, rec := range recs {
		out = append(out, model.Transform{FrameID: rec.FrameID, ChildFrameID: rec.ChildFrameID})
	}
	return out
}

func (n *Node) newCallbackGroup(ctx context.Context, sink *diag.Sink, rec reader.CallbackGroupRecord) *CallbackGroup {
	g := &CallbackGroup{nodeName: n.name, name: rec.Name, kind: rec.Kind}
	for _, id := range rec.CallbackIDs {
		if !reader.IsDefined(id) {
			continue
		}
		cb, err := n.callbacks.GetByID(id)
		if err != nil {
			sink.Warn(ctx, err, "Callback group references unknown callback id.",
				"node", n.name, "group", rec.Name, "callback_id", id)
			continue
		}
		g.callbackIDs = append(g.callbackIDs, id)
		g.callbacks = append(g.callbacks, cb)
	}
	return g
}

// callbackNames resolves callback ids to names, warning on each
// unresolvable id.
func (n *Node) callbackNames(ctx context.Context, sink *diag.Sink, ids []string) []string {
	var out []string
	for _, id := range ids {
		if !reader.IsDefined(id) {
			continue
		}
		cb, err := n.callbacks.GetByID(id)
		if err != nil {
			sink.Warn(ctx, err, "Unresolvable callback id.",
				"node", n.name, "callback_id", id)
			continue
		}
		out = append(out, cb.Name())
	}
	return out
}

// buildInputs lists the node's input endpoints: ordinary subscriptions
// plus one frame buffer per looked-up transform.
func (n *Node) buildInputs() []model.NodeInput {
	var out []model.NodeInput
	for _, sub := range n.subscriptions {
		out = append(out, sub)
	}
	if n.tfBuffer != nil {
		for _, t := range n.tfBuffer.LookupTransforms {
			out = append(out, model.TransformFrameBuffer{
				NodeName:        n.name,
				LookupTransform: t,
			})
		}
	}
	return out
}

// buildOutputs lists the node's output endpoints: ordinary publishers
// minus introspection topics, plus one frame broadcaster per broadcast
// transform.
func (n *Node) buildOutputs() []model.NodeOutput {
	var out []model.NodeOutput
	for _, pub := range n.publishers {
		if strings.HasSuffix(pub.TopicName, infoPubSuffix) {
			continue
		}
		out = append(out, pub)
	}
	if n.tfBroadcaster != nil {
		for _, t := range n.tfBroadcaster.Transforms {
			out = append(out, model.TransformFrameBroadcaster{
				Publisher: n.tfBroadcaster.Publisher,
				Transform: t,
			})
		}
	}
	return out
}

func (n *Node) Name() string                         { return n.name }
func (n *Node) Callbacks() *Callbacks                { return n.callbacks }
func (n *Node) VariablePassings() []*VariablePassing { return n.variablePassings }
func (n *Node) CallbackGroups() []*CallbackGroup     { return n.callbackGroups }
func (n *Node) Inputs() []model.NodeInput            { return n.inputs }
func (n *Node) Outputs() []model.NodeOutput          { return n.outputs }
func (n *Node) Paths() *NodePaths                    { return n.paths }

// FindInput resolves a topic to the node's input endpoint on it. The
// transform channel resolves over frame buffers, everything else over
// subscriptions. Zero matches is ErrNotFound, more than one
// ErrMultipleFound.
func (n *Node) FindInput(topicName string) (model.NodeInput, error) {
	var matches []model.NodeInput
	for _, in := range n.inputs {
		if model.InputTopicName(in) == topicName {
			matches = append(matches, in)
		}
	}
	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("%w: input for topic %q in node %q",
			diag.ErrNotFound, topicName, n.name)
	case 1:
		return matches[0], nil
	}
	return nil, fmt.Errorf("%w: %d inputs for topic %q in node %q",
		diag.ErrMultipleFound, len(matches), topicName, n.name)
}

// FindOutput resolves a topic to the node's output endpoint on it, with
// the same cardinality rules as FindInput.
func (n *Node) FindOutput(topicName string) (model.NodeOutput, error) {
	var matches []model.NodeOutput
	for _, out := range n.outputs {
		if model.OutputTopicName(out) == topicName {
			matches = append(matches, out)
		}
	}
	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("%w: output for topic %q in node %q",
			diag.ErrNotFound, topicName, n.name)
	case 1:
		return matches[0], nil
	}
	return nil, fmt.Errorf("%w: %d outputs for topic %q in node %q",
		diag.ErrMultipleFound, len(matches), topicName, n.name)
}

// Finalize produces the immutable node snapshot, finalizing every
// owned entity.
func (n *Node) Finalize() model.Node {
	n.mark()
	out := model.Node{
		Name:          n.name,
		Publishers:    n.publishers,
		Subscriptions: n.subscriptions,
		Timers:        n.timers,
		TfBroadcaster: n.tfBroadcaster,
		TfBuffer:      n.tfBuffer,
		Paths:         n.paths.Finalize(),
	}
	for _, cb := range n.callbacks.All() {
		out.Callbacks = append(out.Callbacks, cb.Finalize())
	}
	for _, g := range n.callbackGroups {
		out.CallbackGroups = append(out.CallbackGroups, g.Finalize())
	}
	for _, vp := range n.variablePassings {
		out.VariablePassings = append(out.VariablePassings, vp.Finalize())
	}
	return out
}
