package entity

import (
	"context"
	"fmt"

	"github.com/hsgwa/archgraph/internal/diag"
	"github.com/hsgwa/archgraph/internal/model"
)

// Filters lets the caller prune the communication table while it is
// being paired. A nil predicate accepts everything.
type Filters struct {
	// Node rejects communications touching a node.
	Node func(nodeName string) bool
	// Communication rejects communications on a topic. Transform
	// communications are offered under the transform channel's name.
	Communication func(topicName string) bool
}

func (f Filters) acceptNode(name string) bool {
	return f.Node == nil || f.Node(name)
}

func (f Filters) acceptTopic(topic string) bool {
	return f.Communication == nil || f.Communication(topic)
}

type commKey struct {
	pubNode string
	subNode string
	topic   string
}

type tfCommKey struct {
	pubNode   string
	subNode   string
	broadcast model.Transform
	lookup    model.Transform
}

// Communications pairs every node output against every node input
// across the full node set and keeps the matches. Duplicate pairings
// are dropped with a warning, first occurrence wins.
type Communications struct {
	finalized
	comms   []model.Communication
	tfComms []model.TransformCommunication
}

// NewCommunications builds the communication table. Node order and
// per-node endpoint order drive the iteration, so a deterministic
// reader yields a deterministic table. Self-pairings (a node consuming
// its own topic) are legal.
func NewCommunications(ctx context.Context, sink *diag.Sink, nodes []*Node, tree *model.TransformTree, filters Filters) *Communications {
	cs := &Communications{}
	seen := make(map[commKey]struct{})
	seenTf := make(map[tfCommKey]struct{})

	for _, pubNode := range nodes {
		if !filters.acceptNode(pubNode.Name()) {
			continue
		}
		for _, out := range pubNode.Outputs() {
			for _, subNode := range nodes {
				if !filters.acceptNode(subNode.Name()) {
					continue
				}
				for _, in := range subNode.Inputs() {
					if !model.IsPair(out, in, tree) {
						continue
					}
					cs.insert(ctx, sink, out, in, seen, seenTf, filters)
				}
			}
		}
	}
	return cs
}

func (cs *Communications) insert(
	ctx context.Context,
	sink *diag.Sink,
	out model.NodeOutput,
	in model.NodeInput,
	seen map[commKey]struct{},
	seenTf map[tfCommKey]struct{},
	filters Filters,
) {
	switch o := out.(type) {
	case model.Publisher:
		sub := in.(model.Subscription)
		if !filters.acceptTopic(o.TopicName) {
			return
		}
		key := commKey{pubNode: o.NodeName, subNode: sub.NodeName, topic: o.TopicName}
		if _, dup := seen[key]; dup {
			sink.Warn(ctx, diag.ErrInvalidInput,
				"Duplicate communication, dropping.",
				"publish_node", key.pubNode, "subscribe_node", key.subNode,
				"topic", key.topic)
			return
		}
		seen[key] = struct{}{}
		cs.comms = append(cs.comms, model.Communication{
			TopicName:         o.TopicName,
			PublishNodeName:   o.NodeName,
			SubscribeNodeName: sub.NodeName,
			Publisher:         o,
			Subscription:      sub,
		})

	case model.TransformFrameBroadcaster:
		buf := in.(model.TransformFrameBuffer)
		if !filters.acceptTopic(model.TopicTF) {
			return
		}
		key := tfCommKey{
			pubNode:   o.Publisher.NodeName,
			subNode:   buf.NodeName,
			broadcast: o.Transform,
			lookup:    buf.LookupTransform,
		}
		if _, dup := seenTf[key]; dup {
			sink.Warn(ctx, diag.ErrInvalidInput,
				"Duplicate transform communication, dropping.",
				"publish_node", key.pubNode, "subscribe_node", key.subNode,
				"broadcast", key.broadcast.String(), "lookup", key.lookup.String())
			return
		}
		seenTf[key] = struct{}{}
		cs.tfComms = append(cs.tfComms, model.TransformCommunication{
			Broadcaster: o,
			Buffer:      buf,
		})
	}
}

// Comms returns the ordinary communications in pairing order.
func (cs *Communications) Comms() []model.Communication {
	return cs.comms
}

// TfComms returns the transform communications in pairing order.
func (cs *Communications) TfComms() []model.TransformCommunication {
	return cs.tfComms
}

// Find returns the communication for an exact (publisher node,
// subscriber node, topic) triple.
func (cs *Communications) Find(pubNode, subNode, topic string) (model.Communication, error) {
	for _, c := range cs.comms {
		if c.PublishNodeName == pubNode && c.SubscribeNodeName == subNode && c.TopicName == topic {
			return c, nil
		}
	}
	return model.Communication{}, fmt.Errorf("%w: communication %s -> %s on %s",
		diag.ErrNotFound, pubNode, subNode, topic)
}
