package search

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hsgwa/archgraph/internal/diag"
	"github.com/hsgwa/archgraph/internal/entity"
	"github.com/hsgwa/archgraph/internal/model"
	"github.com/hsgwa/archgraph/internal/reader"
)

// pipeline builds nodes and communications for a reader description.
func pipeline(t *testing.T, r *reader.Static, tree *model.TransformTree) (*NodePathSearcher, *diag.Sink) {
	t.Helper()
	ctx := context.Background()
	sink := diag.NewSink()

	var nodes []*entity.Node
	for _, rec := range r.GetNodes() {
		n := entity.NewNode(ctx, sink, r, rec.Name)
		NewCallbackPathSearcher(n).SearchAndAttach(ctx, sink)
		nodes = append(nodes, n)
	}
	comms := entity.NewCommunications(ctx, sink, nodes, tree, entity.Filters{})
	return NewNodePathSearcher(nodes, comms), sink
}

func twoNodeReader() *reader.Static {
	return &reader.Static{
		Nodes: []reader.NodeRecord{{Name: "/producer"}, {Name: "/consumer"}},
		TimerCallbacks: []reader.CallbackRecord{{
			NodeName:          "/producer",
			ID:                "p0",
			Name:              "produce",
			PublishTopicNames: []string{"/chatter"},
		}},
		SubscriptionCallbacks: []reader.CallbackRecord{{
			NodeName:           "/consumer",
			ID:                 "c0",
			Name:               "consume",
			SubscribeTopicName: "/chatter",
		}},
		Publishers:    []reader.PublisherRecord{{NodeName: "/producer", TopicName: "/chatter", CallbackIDs: []string{"p0"}}},
		Subscriptions: []reader.SubscriptionRecord{{NodeName: "/consumer", TopicName: "/chatter", CallbackID: "c0"}},
	}
}

func TestSearch_TwoNodes(t *testing.T) {
	s, sink := pipeline(t, twoNodeReader(), nil)

	paths := s.Search(context.Background(), sink, "/producer", "/consumer", 0)

	require.Len(t, paths, 1)
	p := paths[0]
	require.Len(t, p.Elements, 3)

	head, ok := p.Elements[0].(model.NodePath)
	require.True(t, ok)
	assert.Equal(t, "/producer", head.NodeName)
	assert.Nil(t, head.Input)
	assert.Equal(t, "/chatter", head.PublishTopicName())

	comm, ok := p.Elements[1].(model.Communication)
	require.True(t, ok)
	assert.Equal(t, "/chatter", comm.TopicName)

	tail, ok := p.Elements[2].(model.NodePath)
	require.True(t, ok)
	assert.Equal(t, "/consumer", tail.NodeName)
	assert.Equal(t, "/chatter", tail.SubscribeTopicName())
	assert.Nil(t, tail.Output)

	assert.Equal(t, []string{"/producer", "/consumer"}, p.NodeNames())
	assert.Equal(t, []string{"/chatter"}, p.TopicNames())
}

func TestSearch_ThreeNodeChainWithCallbackChains(t *testing.T) {
	r := &reader.Static{
		Nodes: []reader.NodeRecord{{Name: "/source"}, {Name: "/filter"}, {Name: "/dest"}},
		TimerCallbacks: []reader.CallbackRecord{{
			NodeName: "/source", ID: "s0", Name: "emit", PublishTopicNames: []string{"/raw"},
		}},
		SubscriptionCallbacks: []reader.CallbackRecord{
			{NodeName: "/filter", ID: "f0", Name: "refine", SubscribeTopicName: "/raw", PublishTopicNames: []string{"/clean"}},
			{NodeName: "/dest", ID: "d0", Name: "store", SubscribeTopicName: "/clean"},
		},
		Publishers: []reader.PublisherRecord{
			{NodeName: "/source", TopicName: "/raw", CallbackIDs: []string{"s0"}},
			{NodeName: "/filter", TopicName: "/clean", CallbackIDs: []string{"f0"}},
		},
		Subscriptions: []reader.SubscriptionRecord{
			{NodeName: "/filter", TopicName: "/raw", CallbackID: "f0"},
			{NodeName: "/dest", TopicName: "/clean", CallbackID: "d0"},
		},
	}
	s, sink := pipeline(t, r, nil)

	paths := s.Search(context.Background(), sink, "/source", "/dest", 0)

	require.Len(t, paths, 1)
	p := paths[0]
	require.Len(t, p.Elements, 5)
	assert.Equal(t, []string{"/source", "/filter", "/dest"}, p.NodeNames())
	assert.Equal(t, []string{"/raw", "/clean"}, p.TopicNames())

	// The interior node path carries the chain the intra-node search
	// attached for (/raw, /clean).
	mid := p.Elements[2].(model.NodePath)
	require.Len(t, mid.Chain, 1)
	assert.Equal(t, "refine", mid.Chain[0].(model.Callback).Name)
}

func TestSearch_SelfLoop(t *testing.T) {
	r := &reader.Static{
		Nodes:         []reader.NodeRecord{{Name: "/loop"}},
		Publishers:    []reader.PublisherRecord{{NodeName: "/loop", TopicName: "/echo"}},
		Subscriptions: []reader.SubscriptionRecord{{NodeName: "/loop", TopicName: "/echo"}},
	}
	s, sink := pipeline(t, r, nil)

	paths := s.Search(context.Background(), sink, "/loop", "/loop", 0)

	require.Len(t, paths, 1)
	p := paths[0]
	require.Len(t, p.Elements, 3)
	assert.Equal(t, "/echo", p.Elements[1].(model.Communication).TopicName)
}

func TestSearch_MaxDepth(t *testing.T) {
	// /a -> /b -> /c plus a direct /a -> /c shortcut.
	r := &reader.Static{
		Nodes: []reader.NodeRecord{{Name: "/a"}, {Name: "/b"}, {Name: "/c"}},
		Publishers: []reader.PublisherRecord{
			{NodeName: "/a", TopicName: "/ab"},
			{NodeName: "/a", TopicName: "/ac"},
			{NodeName: "/b", TopicName: "/bc"},
		},
		Subscriptions: []reader.SubscriptionRecord{
			{NodeName: "/b", TopicName: "/ab"},
			{NodeName: "/c", TopicName: "/bc"},
			{NodeName: "/c", TopicName: "/ac"},
		},
	}
	s, sink := pipeline(t, r, nil)
	ctx := context.Background()

	assert.Len(t, s.Search(ctx, sink, "/a", "/c", 1), 1)
	assert.Len(t, s.Search(ctx, sink, "/a", "/c", 0), 2)
}

func TestSearch_UnknownNodes(t *testing.T) {
	s, sink := pipeline(t, twoNodeReader(), nil)

	assert.Empty(t, s.Search(context.Background(), sink, "/ghost", "/consumer", 0))
	assert.Empty(t, s.Search(context.Background(), sink, "/producer", "/ghost", 0))
	assert.Empty(t, sink.Warnings())
}

func TestSearch_TransformHop(t *testing.T) {
	r := &reader.Static{
		Nodes: []reader.NodeRecord{{Name: "/bc"}, {Name: "/lookup"}},
		TfBroadcasters: []reader.TfBroadcasterRecord{{
			NodeName:   "/bc",
			Transforms: []reader.TransformFrameRecord{{FrameID: "map", ChildFrameID: "odom"}},
		}},
		TfBuffers: []reader.TfBufferRecord{{
			NodeName: "/lookup",
			LookupTransforms: []reader.TransformFrameRecord{
				{FrameID: "map", ChildFrameID: "base"},
			},
		}},
		TfFrames: []reader.TransformFrameRecord{
			{FrameID: "map", ChildFrameID: "odom"},
			{FrameID: "odom", ChildFrameID: "base"},
		},
	}
	tree, err := model.NewTransformTree([]model.Transform{
		{FrameID: "map", ChildFrameID: "odom"},
		{FrameID: "odom", ChildFrameID: "base"},
	})
	require.NoError(t, err)

	s, sink := pipeline(t, r, tree)

	paths := s.Search(context.Background(), sink, "/bc", "/lookup", 0)

	require.Len(t, paths, 1)
	p := paths[0]
	require.Len(t, p.Elements, 3)
	tc, ok := p.Elements[1].(model.TransformCommunication)
	require.True(t, ok)
	assert.Equal(t, model.Transform{FrameID: "map", ChildFrameID: "odom"}, tc.Broadcaster.Transform)
	assert.Equal(t, []string{model.TopicTF}, p.TopicNames())
}
