package yamlarch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hsgwa/archgraph/internal/arch"
)

const fixture = `
named_paths:
  - path_name: chatter_path
    node_chain:
      - node_name: /talker
        publish_topic_name: /chatter
      - node_name: /listener
        subscribe_topic_name: /chatter
executors:
  - executor_name: executor_main
    executor_type: single_threaded
    callback_group_names:
      - /talker/group_0
nodes:
  - node_name: /talker
    callbacks:
      - callback_name: talk
        callback_type: timer_callback
        period_ns: 100000000
    callback_groups:
      - callback_group_name: /talker/group_0
        callback_group_type: mutually_exclusive
        callback_names:
          - talk
    publishes:
      - topic_name: /chatter
        callback_names:
          - talk
  - node_name: /listener
    callbacks:
      - callback_name: listen
        callback_type: subscription_callback
        topic_name: /chatter
    subscribes:
      - topic_name: /chatter
        callback_name: listen
    message_contexts:
      - context_type: use_latest_message
        subscription_topic_name: /chatter
`

func writeFixture(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "arch.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	ctx := context.Background()
	r, err := NewLoader().Load(ctx, writeFixture(t, fixture))
	require.NoError(t, err)

	require.Len(t, r.GetNodes(), 2)

	timerCBs := r.GetTimerCallbacks("/talker")
	require.Len(t, timerCBs, 1)
	assert.Equal(t, "talk", timerCBs[0].Name)
	assert.Equal(t, 100*time.Millisecond, timerCBs[0].Period)
	// Publish topics are derived from the publish lists.
	assert.Equal(t, []string{"/chatter"}, timerCBs[0].PublishTopicNames)

	subCBs := r.GetSubscriptionCallbacks("/listener")
	require.Len(t, subCBs, 1)
	assert.Equal(t, "/chatter", subCBs[0].SubscribeTopicName)

	groups := r.GetCallbackGroups("/talker")
	require.Len(t, groups, 1)
	assert.Equal(t, []string{"talk"}, groups[0].CallbackIDs)

	require.Len(t, r.GetPaths(), 1)
	require.Len(t, r.GetExecutors(), 1)
}

func TestLoad_UnknownCallbackType(t *testing.T) {
	const src = `
nodes:
  - node_name: /n
    callbacks:
      - callback_name: odd
        callback_type: service_callback
`
	_, err := NewLoader().Load(context.Background(), writeFixture(t, src))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "service_callback")
}

func TestLoad_UnknownKeyRejected(t *testing.T) {
	const src = `
nodes:
  - node_name: /n
    mystery_field: true
`
	_, err := NewLoader().Load(context.Background(), writeFixture(t, src))
	require.Error(t, err)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := NewLoader().Load(context.Background(), filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestLoad_AssemblesEndToEnd(t *testing.T) {
	ctx := context.Background()
	r, err := NewLoader().Load(ctx, writeFixture(t, fixture))
	require.NoError(t, err)

	a, err := arch.New(ctx, r, arch.Options{})
	require.NoError(t, err)

	require.Len(t, a.Paths(), 1)
	assert.Equal(t, "chatter_path", a.Paths()[0].Name)
	assert.Len(t, a.Search(ctx, "/talker", "/listener", 0), 1)
}
