package entity

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hsgwa/archgraph/internal/diag"
	"github.com/hsgwa/archgraph/internal/model"
	"github.com/hsgwa/archgraph/internal/reader"
)

func chatterNodes(ctx context.Context, sink *diag.Sink) []*Node {
	r := &reader.Static{
		Nodes: []reader.NodeRecord{{Name: "/producer"}, {Name: "/consumer"}},
		Publishers: []reader.PublisherRecord{
			{NodeName: "/producer", TopicName: "/chatter"},
		},
		Subscriptions: []reader.SubscriptionRecord{
			{NodeName: "/consumer", TopicName: "/chatter"},
		},
	}
	return []*Node{
		NewNode(ctx, sink, r, "/producer"),
		NewNode(ctx, sink, r, "/consumer"),
	}
}

func TestNewCommunications_SinglePair(t *testing.T) {
	ctx := context.Background()
	sink := diag.NewSink()
	nodes := chatterNodes(ctx, sink)

	cs := NewCommunications(ctx, sink, nodes, nil, Filters{})

	require.Len(t, cs.Comms(), 1)
	c := cs.Comms()[0]
	assert.Equal(t, "/producer", c.PublishNodeName)
	assert.Equal(t, "/consumer", c.SubscribeNodeName)
	assert.Equal(t, "/chatter", c.TopicName)
	assert.Empty(t, sink.Warnings())
}

func TestNewCommunications_DuplicateDropped(t *testing.T) {
	ctx := context.Background()
	sink := diag.NewSink()
	r := &reader.Static{
		Nodes: []reader.NodeRecord{{Name: "/producer"}, {Name: "/consumer"}},
		Publishers: []reader.PublisherRecord{
			{NodeName: "/producer", TopicName: "/chatter"},
			{NodeName: "/producer", TopicName: "/chatter"},
		},
		Subscriptions: []reader.SubscriptionRecord{
			{NodeName: "/consumer", TopicName: "/chatter"},
		},
	}
	nodes := []*Node{
		NewNode(ctx, sink, r, "/producer"),
		NewNode(ctx, sink, r, "/consumer"),
	}

	cs := NewCommunications(ctx, sink, nodes, nil, Filters{})

	assert.Len(t, cs.Comms(), 1)
	require.Len(t, sink.ByKind(diag.ErrInvalidInput), 1)
}

func TestNewCommunications_SelfLoop(t *testing.T) {
	// A node both publishing and subscribing to its own topic pairs
	// with itself.
	ctx := context.Background()
	sink := diag.NewSink()
	r := &reader.Static{
		Nodes:         []reader.NodeRecord{{Name: "/loop"}},
		Publishers:    []reader.PublisherRecord{{NodeName: "/loop", TopicName: "/echo"}},
		Subscriptions: []reader.SubscriptionRecord{{NodeName: "/loop", TopicName: "/echo"}},
	}
	nodes := []*Node{NewNode(ctx, sink, r, "/loop")}

	cs := NewCommunications(ctx, sink, nodes, nil, Filters{})

	require.Len(t, cs.Comms(), 1)
	assert.Equal(t, "/loop", cs.Comms()[0].PublishNodeName)
	assert.Equal(t, "/loop", cs.Comms()[0].SubscribeNodeName)
}

func TestNewCommunications_TransformPairing(t *testing.T) {
	ctx := context.Background()
	sink := diag.NewSink()
	r := &reader.Static{
		Nodes: []reader.NodeRecord{{Name: "/bc"}, {Name: "/lookup"}},
		TfBroadcasters: []reader.TfBroadcasterRecord{{
			NodeName:   "/bc",
			Transforms: []reader.TransformFrameRecord{{FrameID: "A", ChildFrameID: "B"}},
		}},
		TfBuffers: []reader.TfBufferRecord{{
			NodeName: "/lookup",
			LookupTransforms: []reader.TransformFrameRecord{
				{FrameID: "root", ChildFrameID: "B"},
			},
		}},
	}
	nodes := []*Node{NewNode(ctx, sink, r, "/bc"), NewNode(ctx, sink, r, "/lookup")}

	tree, err := model.NewTransformTree([]model.Transform{
		{FrameID: "root", ChildFrameID: "A"},
		{FrameID: "A", ChildFrameID: "B"},
	})
	require.NoError(t, err)

	cs := NewCommunications(ctx, sink, nodes, tree, Filters{})

	require.Len(t, cs.TfComms(), 1)
	tc := cs.TfComms()[0]
	assert.Equal(t, "/bc", tc.Broadcaster.Publisher.NodeName)
	assert.Equal(t, "/lookup", tc.Buffer.NodeName)
}

func TestNewCommunications_Filters(t *testing.T) {
	ctx := context.Background()
	sink := diag.NewSink()

	t.Run("topic filter", func(t *testing.T) {
		nodes := chatterNodes(ctx, sink)
		cs := NewCommunications(ctx, sink, nodes, nil, Filters{
			Communication: func(topic string) bool { return topic != "/chatter" },
		})
		assert.Empty(t, cs.Comms())
	})

	t.Run("node filter", func(t *testing.T) {
		nodes := chatterNodes(ctx, sink)
		cs := NewCommunications(ctx, sink, nodes, nil, Filters{
			Node: func(name string) bool { return name != "/consumer" },
		})
		assert.Empty(t, cs.Comms())
	})
}

func TestCommunications_Find(t *testing.T) {
	ctx := context.Background()
	sink := diag.NewSink()
	cs := NewCommunications(ctx, sink, chatterNodes(ctx, sink), nil, Filters{})

	_, err := cs.Find("/producer", "/consumer", "/chatter")
	require.NoError(t, err)

	_, err = cs.Find("/consumer", "/producer", "/chatter")
	assert.ErrorIs(t, err, diag.ErrNotFound)
}
