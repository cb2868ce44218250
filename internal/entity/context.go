package entity

import (
	"context"
	"fmt"

	"github.com/hsgwa/archgraph/internal/diag"
	"github.com/hsgwa/archgraph/internal/model"
	"github.com/hsgwa/archgraph/internal/reader"
)

// ApplyMessageContexts matches reader context descriptors against the
// node's path table and attaches each to the entries whose resolved
// topics (and, for transform sides, frames) agree. Runs after the
// intra-node search so chain presence can be verified. Descriptors
// with an undefined context type are skipped; unknown and retired
// types are reported and dropped.
func (n *Node) ApplyMessageContexts(ctx context.Context, sink *diag.Sink, recs []reader.MessageContextRecord) {
	for _, rec := range recs {
		if !reader.IsDefined(rec.ContextType) {
			continue
		}

		kind := model.MessageContextKind(rec.ContextType)
		switch kind {
		case model.UseLatestMessage, model.CallbackChain:
		case model.InheritUniqueStamp:
			sink.Warn(ctx, diag.ErrUnsupportedType,
				"Message context type is no longer supported.",
				"node", n.name, "context_type", rec.ContextType)
			continue
		default:
			sink.Warn(ctx, diag.ErrUnsupportedType,
				"Unknown message context type.",
				"node", n.name, "context_type", rec.ContextType)
			continue
		}

		mc := model.MessageContext{
			Kind:                  kind,
			NodeName:              n.name,
			SubscribeTopicName:    definedOr(rec.SubscriptionTopicName, ""),
			PublishTopicName:      definedOr(rec.PublisherTopicName, ""),
			BroadcastFrameID:      rec.BroadcastFrameID,
			BroadcastChildFrameID: rec.BroadcastChildFrameID,
			LookupFrameID:         rec.LookupFrameID,
			LookupChildFrameID:    rec.LookupChildFrameID,
		}

		matched := false
		for _, np := range n.paths.All() {
			if !contextMatches(np, mc) {
				continue
			}
			np.SetContext(mc)
			matched = true
			if kind == model.CallbackChain && !np.HasChain() {
				sink.Warn(ctx, nil,
					"Message context declares a callback chain, but the node path has none.",
					"node", n.name,
					"subscribe_topic", np.SubscribeTopicName(),
					"publish_topic", np.PublishTopicName())
			}
		}
		if !matched {
			sink.Warn(ctx, fmt.Errorf("%w: node path for message context", diag.ErrNotFound),
				"Message context matches no node path.",
				"node", n.name,
				"subscribe_topic", mc.SubscribeTopicName,
				"publish_topic", mc.PublishTopicName)
		}
	}
}

func definedOr(s, fallback string) string {
	if reader.IsDefined(s) {
		return s
	}
	return fallback
}

// contextMatches requires topic agreement on both sides, tightened to
// frame agreement when a side is the transform channel.
func contextMatches(np *NodePath, mc model.MessageContext) bool {
	if np.SubscribeTopicName() != mc.SubscribeTopicName ||
		np.PublishTopicName() != mc.PublishTopicName {
		return false
	}
	if mc.SubscribeTopicName == model.TopicTF {
		buf, ok := np.Input().(model.TransformFrameBuffer)
		if !ok {
			return false
		}
		want := model.Transform{FrameID: mc.LookupFrameID, ChildFrameID: mc.LookupChildFrameID}
		if buf.LookupTransform != want {
			return false
		}
	}
	if mc.PublishTopicName == model.TopicTF {
		bc, ok := np.Output().(model.TransformFrameBroadcaster)
		if !ok {
			return false
		}
		want := model.Transform{FrameID: mc.BroadcastFrameID, ChildFrameID: mc.BroadcastChildFrameID}
		if bc.Transform != want {
			return false
		}
	}
	return true
}
