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

func buildNode(t *testing.T, r *reader.Static, name string) (*entity.Node, *diag.Sink) {
	t.Helper()
	sink := diag.NewSink()
	return entity.NewNode(context.Background(), sink, r, name), sink
}

func TestSearchAndAttach_SingleCallback(t *testing.T) {
	r := &reader.Static{
		Nodes: []reader.NodeRecord{{Name: "/relay"}},
		SubscriptionCallbacks: []reader.CallbackRecord{{
			NodeName:           "/relay",
			ID:                 "cb0",
			Name:               "relay_callback",
			SubscribeTopicName: "/in",
			PublishTopicNames:  []string{"/out"},
		}},
		Subscriptions: []reader.SubscriptionRecord{{NodeName: "/relay", TopicName: "/in", CallbackID: "cb0"}},
		Publishers:    []reader.PublisherRecord{{NodeName: "/relay", TopicName: "/out", CallbackIDs: []string{"cb0"}}},
	}
	n, sink := buildNode(t, r, "/relay")

	NewCallbackPathSearcher(n).SearchAndAttach(context.Background(), sink)

	in, err := n.FindInput("/in")
	require.NoError(t, err)
	out, err := n.FindOutput("/out")
	require.NoError(t, err)

	np := n.Paths().MustGet(in, out).Finalize()
	require.Len(t, np.Chain, 1)
	cb, ok := np.Chain[0].(model.Callback)
	require.True(t, ok)
	assert.Equal(t, "relay_callback", cb.Name)
	assert.Empty(t, sink.Warnings())
}

func TestSearchAndAttach_VariablePassingChain(t *testing.T) {
	// reader_callback consumes /in and hands off in-process to
	// writer_callback, which publishes /out. The chain must be
	// callback, passing, callback.
	r := &reader.Static{
		Nodes: []reader.NodeRecord{{Name: "/split"}},
		SubscriptionCallbacks: []reader.CallbackRecord{{
			NodeName:           "/split",
			ID:                 "cb_read",
			Name:               "reader_callback",
			SubscribeTopicName: "/in",
		}},
		TimerCallbacks: []reader.CallbackRecord{{
			NodeName:          "/split",
			ID:                "cb_write",
			Name:              "writer_callback",
			PublishTopicNames: []string{"/out"},
		}},
		Subscriptions: []reader.SubscriptionRecord{{NodeName: "/split", TopicName: "/in", CallbackID: "cb_read"}},
		Publishers:    []reader.PublisherRecord{{NodeName: "/split", TopicName: "/out", CallbackIDs: []string{"cb_write"}}},
		VariablePassings: []reader.VariablePassingRecord{{
			NodeName:          "/split",
			WriteCallbackName: "reader_callback",
			ReadCallbackName:  "writer_callback",
		}},
	}
	n, sink := buildNode(t, r, "/split")

	NewCallbackPathSearcher(n).SearchAndAttach(context.Background(), sink)

	in, err := n.FindInput("/in")
	require.NoError(t, err)
	out, err := n.FindOutput("/out")
	require.NoError(t, err)

	np := n.Paths().MustGet(in, out).Finalize()
	require.Len(t, np.Chain, 3)

	first, ok := np.Chain[0].(model.Callback)
	require.True(t, ok)
	assert.Equal(t, "reader_callback", first.Name)

	vp, ok := np.Chain[1].(model.VariablePassing)
	require.True(t, ok)
	assert.Equal(t, "reader_callback", vp.WriteCallbackName)
	assert.Equal(t, "writer_callback", vp.ReadCallbackName)

	last, ok := np.Chain[2].(model.Callback)
	require.True(t, ok)
	assert.Equal(t, "writer_callback", last.Name)
}

func TestSearchAndAttach_NoDeclaredOutputs(t *testing.T) {
	// A sink callback yields one node path with a nil output side.
	r := &reader.Static{
		Nodes: []reader.NodeRecord{{Name: "/sink"}},
		SubscriptionCallbacks: []reader.CallbackRecord{{
			NodeName:           "/sink",
			ID:                 "cb0",
			Name:               "sink_callback",
			SubscribeTopicName: "/in",
		}},
		Subscriptions: []reader.SubscriptionRecord{{NodeName: "/sink", TopicName: "/in", CallbackID: "cb0"}},
	}
	n, sink := buildNode(t, r, "/sink")

	NewCallbackPathSearcher(n).SearchAndAttach(context.Background(), sink)

	in, err := n.FindInput("/in")
	require.NoError(t, err)
	np := n.Paths().MustGet(in, nil).Finalize()
	require.Len(t, np.Chain, 1)
	assert.Nil(t, np.Output)
}

func TestSearchAndAttach_UnresolvableOutput(t *testing.T) {
	// The callback claims to publish a topic the node never declares a
	// publisher for: the side degrades to nil with a warning.
	r := &reader.Static{
		Nodes: []reader.NodeRecord{{Name: "/odd"}},
		SubscriptionCallbacks: []reader.CallbackRecord{{
			NodeName:           "/odd",
			ID:                 "cb0",
			Name:               "odd_callback",
			SubscribeTopicName: "/in",
			PublishTopicNames:  []string{"/undeclared"},
		}},
		Subscriptions: []reader.SubscriptionRecord{{NodeName: "/odd", TopicName: "/in", CallbackID: "cb0"}},
	}
	n, sink := buildNode(t, r, "/odd")

	NewCallbackPathSearcher(n).SearchAndAttach(context.Background(), sink)

	require.Len(t, sink.ByKind(diag.ErrNotFound), 1)
	in, err := n.FindInput("/in")
	require.NoError(t, err)
	np := n.Paths().MustGet(in, nil).Finalize()
	assert.Len(t, np.Chain, 1)
}
