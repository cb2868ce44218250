package hclarch

import (
	"fmt"
	"time"

	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"

	"github.com/hsgwa/archgraph/internal/reader"
)

// translate merges one decoded file into the accumulated records.
func (l *Loader) translate(out *reader.Static, root *fileRoot) error {
	for _, n := range root.Nodes {
		if err := l.translateNode(out, n); err != nil {
			return fmt.Errorf("node %q: %w", n.Name, err)
		}
	}
	for _, e := range root.Executors {
		out.Executors = append(out.Executors, reader.ExecutorRecord{
			Name:               e.Name,
			Kind:               e.Type,
			CallbackGroupNames: e.CallbackGroups,
		})
	}
	for _, p := range root.Paths {
		rec := reader.PathRecord{Name: p.Name}
		for _, hop := range p.Hops {
			rec.Nodes = append(rec.Nodes, reader.PathNodeRecord{
				NodeName:           hop.Node,
				SubscribeTopicName: hop.Subscribe,
				PublishTopicName:   hop.Publish,
			})
		}
		out.Paths = append(out.Paths, rec)
	}
	for _, f := range root.TfFrames {
		out.TfFrames = append(out.TfFrames, toFrame(f))
	}
	return nil
}

func (l *Loader) translateNode(out *reader.Static, n *nodeBlock) error {
	out.Nodes = append(out.Nodes, reader.NodeRecord{Name: n.Name})

	for _, cb := range n.TimerCallbacks {
		rec, err := toCallbackRecord(n.Name, cb)
		if err != nil {
			return fmt.Errorf("timer_callback %q: %w", cb.ID, err)
		}
		out.TimerCallbacks = append(out.TimerCallbacks, rec)
		if rec.Period > 0 {
			out.Timers = append(out.Timers, reader.TimerRecord{
				NodeName:   n.Name,
				Period:     rec.Period,
				CallbackID: rec.ID,
			})
		}
	}
	for _, cb := range n.SubscriptionCallbacks {
		rec, err := toCallbackRecord(n.Name, cb)
		if err != nil {
			return fmt.Errorf("subscription_callback %q: %w", cb.ID, err)
		}
		out.SubscriptionCallbacks = append(out.SubscriptionCallbacks, rec)
	}

	for _, pub := range n.Publishers {
		out.Publishers = append(out.Publishers, reader.PublisherRecord{
			NodeName:    n.Name,
			TopicName:   pub.Topic,
			CallbackIDs: pub.Callbacks,
		})
	}
	for _, sub := range n.Subscriptions {
		out.Subscriptions = append(out.Subscriptions, reader.SubscriptionRecord{
			NodeName:   n.Name,
			TopicName:  sub.Topic,
			CallbackID: sub.Callback,
		})
	}
	for _, g := range n.CallbackGroups {
		out.CallbackGroups = append(out.CallbackGroups, reader.CallbackGroupRecord{
			NodeName:    n.Name,
			Name:        g.Name,
			Kind:        g.Type,
			CallbackIDs: g.Callbacks,
		})
	}
	for _, vp := range n.VariablePassings {
		out.VariablePassings = append(out.VariablePassings, reader.VariablePassingRecord{
			NodeName:          n.Name,
			WriteCallbackName: vp.WriteCallback,
			ReadCallbackName:  vp.ReadCallback,
		})
	}
	for _, mc := range n.MessageContexts {
		out.MessageContexts = append(out.MessageContexts, reader.MessageContextRecord{
			NodeName:              n.Name,
			ContextType:           mc.Type,
			SubscriptionTopicName: mc.SubscribeTopic,
			PublisherTopicName:    mc.PublishTopic,
			BroadcastFrameID:      mc.BroadcastFrame,
			BroadcastChildFrameID: mc.BroadcastChildFrame,
			LookupFrameID:         mc.LookupFrame,
			LookupChildFrameID:    mc.LookupChildFrame,
		})
	}
	if n.TfBroadcaster != nil {
		out.TfBroadcasters = append(out.TfBroadcasters, reader.TfBroadcasterRecord{
			NodeName:    n.Name,
			Transforms:  toFrames(n.TfBroadcaster.Transforms),
			CallbackIDs: n.TfBroadcaster.Callbacks,
		})
	}
	if n.TfBuffer != nil {
		out.TfBuffers = append(out.TfBuffers, reader.TfBufferRecord{
			NodeName:         n.Name,
			ListenTransforms: toFrames(n.TfBuffer.Listens),
			LookupTransforms: toFrames(n.TfBuffer.Lookups),
		})
	}
	return nil
}

func toCallbackRecord(nodeName string, cb *callbackBlock) (reader.CallbackRecord, error) {
	period, err := decodePeriod(cb.Period)
	if err != nil {
		return reader.CallbackRecord{}, err
	}
	name := cb.Name
	if name == "" {
		name = reader.Undefined
	}
	return reader.CallbackRecord{
		NodeName:           nodeName,
		ID:                 cb.ID,
		Name:               name,
		Symbol:             cb.Symbol,
		SubscribeTopicName: cb.SubscribeTopic,
		PublishTopicNames:  cb.PublishTopics,
		Period:             period,
	}, nil
}

// decodePeriod evaluates the period expression. A number is taken as
// milliseconds, a string as a Go duration.
func decodePeriod(expr hcl.Expression) (time.Duration, error) {
	if expr == nil {
		return 0, nil
	}
	val, diags := expr.Value(nil)
	if diags.HasErrors() {
		return 0, diags
	}
	if val.IsNull() {
		return 0, nil
	}
	switch val.Type() {
	case cty.Number:
		var ms int64
		if err := gocty.FromCtyValue(val, &ms); err != nil {
			return 0, fmt.Errorf("invalid period: %w", err)
		}
		return time.Duration(ms) * time.Millisecond, nil
	case cty.String:
		d, err := time.ParseDuration(val.AsString())
		if err != nil {
			return 0, fmt.Errorf("invalid period: %w", err)
		}
		return d, nil
	}
	return 0, fmt.Errorf("unsupported period type %s", val.Type().FriendlyName())
}

func toFrames(blocks []*frameBlock) []reader.TransformFrameRecord {
	out := make([]reader.TransformFrameRecord, 0, len(blocks))
	for _, b := range blocks {
		out = append(out, toFrame(b))
	}
	return out
}

func toFrame(b *frameBlock) reader.TransformFrameRecord {
	return reader.TransformFrameRecord{FrameID: b.Frame, ChildFrameID: b.ChildFrame}
}
