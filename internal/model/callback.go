package model

import "time"

// CallbackKind distinguishes what triggers a callback.
type CallbackKind string

const (
	TimerCallback        CallbackKind = "timer_callback"
	SubscriptionCallback CallbackKind = "subscription_callback"
)

// Callback is one unit of user code triggered by a timer or an incoming
// message. ID and Name are unique within the owning node.
type Callback struct {
	NodeName string
	ID       string
	Name     string
	Kind     CallbackKind
	Symbol   string

	// SubscribeTopicName is empty for timer callbacks.
	SubscribeTopicName string
	PublishTopicNames  []string

	// Period is set for timer callbacks only.
	Period time.Duration
}

func (Callback) chainElement() {}

// Timer fires a callback at a fixed period.
type Timer struct {
	NodeName     string
	Period       time.Duration
	CallbackName string
}

// CallbackGroup is a set of callbacks sharing scheduling constraints.
type CallbackGroup struct {
	NodeName    string
	Name        string
	Kind        string
	CallbackIDs []string
	Callbacks   []Callback
}

// VariablePassing is an in-process data dependency inside one node: the
// write callback hands data to the read callback without a topic.
type VariablePassing struct {
	NodeName          string
	WriteCallbackName string
	ReadCallbackName  string
}

func (VariablePassing) chainElement() {}

// ChainElement is one hop of a node-local callback chain: a Callback or
// a VariablePassing. The union is closed.
type ChainElement interface {
	chainElement()
}
