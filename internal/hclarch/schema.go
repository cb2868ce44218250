package hclarch

import (
	"github.com/hashicorp/hcl/v2"
)

// fileRoot decodes all possible top-level blocks from any file.
type fileRoot struct {
	Nodes     []*nodeBlock     `hcl:"node,block"`
	Executors []*executorBlock `hcl:"executor,block"`
	Paths     []*pathBlock     `hcl:"path,block"`
	TfFrames  []*frameBlock    `hcl:"tf_frame,block"`
}

type nodeBlock struct {
	Name string `hcl:"name,label"`

	Publishers            []*publisherBlock     `hcl:"publisher,block"`
	Subscriptions         []*subscriptionBlock  `hcl:"subscription,block"`
	TimerCallbacks        []*callbackBlock      `hcl:"timer_callback,block"`
	SubscriptionCallbacks []*callbackBlock      `hcl:"subscription_callback,block"`
	CallbackGroups        []*callbackGroupBlock `hcl:"callback_group,block"`
	VariablePassings      []*varPassingBlock    `hcl:"variable_passing,block"`
	MessageContexts       []*msgContextBlock    `hcl:"message_context,block"`
	TfBroadcaster         *tfBroadcasterBlock   `hcl:"tf_broadcaster,block"`
	TfBuffer              *tfBufferBlock        `hcl:"tf_buffer,block"`
}

type publisherBlock struct {
	Topic     string   `hcl:"topic"`
	Callbacks []string `hcl:"callbacks,optional"`
}

type subscriptionBlock struct {
	Topic    string `hcl:"topic"`
	Callback string `hcl:"callback,optional"`
}

// callbackBlock serves both callback kinds; the label is the callback
// id. Period accepts a millisecond number or a duration string and is
// evaluated via cty when present.
type callbackBlock struct {
	ID string `hcl:"id,label"`

	Name           string         `hcl:"name,optional"`
	Symbol         string         `hcl:"symbol,optional"`
	SubscribeTopic string         `hcl:"subscribe_topic,optional"`
	PublishTopics  []string       `hcl:"publish_topics,optional"`
	Period         hcl.Expression `hcl:"period,optional"`
}

type callbackGroupBlock struct {
	Name string `hcl:"name,label"`

	Type      string   `hcl:"type,optional"`
	Callbacks []string `hcl:"callbacks,optional"`
}

type varPassingBlock struct {
	WriteCallback string `hcl:"write_callback"`
	ReadCallback  string `hcl:"read_callback"`
}

type msgContextBlock struct {
	Type           string `hcl:"type"`
	SubscribeTopic string `hcl:"subscribe_topic,optional"`
	PublishTopic   string `hcl:"publish_topic,optional"`

	BroadcastFrame      string `hcl:"broadcast_frame,optional"`
	BroadcastChildFrame string `hcl:"broadcast_child_frame,optional"`
	LookupFrame         string `hcl:"lookup_frame,optional"`
	LookupChildFrame    string `hcl:"lookup_child_frame,optional"`
}

type tfBroadcasterBlock struct {
	Transforms []*frameBlock `hcl:"transform,block"`
	Callbacks  []string      `hcl:"callbacks,optional"`
}

type tfBufferBlock struct {
	Lookups []*frameBlock `hcl:"lookup,block"`
	Listens []*frameBlock `hcl:"listen,block"`
}

type frameBlock struct {
	Frame      string `hcl:"frame"`
	ChildFrame string `hcl:"child_frame"`
}

type executorBlock struct {
	Name string `hcl:"name,label"`

	Type           string   `hcl:"type,optional"`
	CallbackGroups []string `hcl:"callback_groups,optional"`
}

type pathBlock struct {
	Name string `hcl:"name,label"`

	Hops []*hopBlock `hcl:"hop,block"`
}

type hopBlock struct {
	Node      string `hcl:"node"`
	Subscribe string `hcl:"subscribe,optional"`
	Publish   string `hcl:"publish,optional"`
}
