// Package reader defines the boundary between architecture acquisition
// and reconstruction: the ArchitectureReader interface and the plain
// record types it yields. Backends (HCL and YAML files live in
// internal/hclarch and internal/yamlarch) load and validate a source
// up front; the accessors below are pure in-memory reads afterwards.
package reader

import "time"

// Undefined marks a string field intentionally left unset by the
// source. It must be treated as absent, never as a regular value;
// callback ids and context types equal to it are filtered out.
const Undefined = "UNDEFINED"

// IsDefined reports whether a string field carries a real value.
func IsDefined(s string) bool {
	return s != "" && s != Undefined
}

// NodeRecord names one node.
type NodeRecord struct {
	Name string
}

// PublisherRecord declares one node output on a topic.
type PublisherRecord struct {
	NodeName    string
	TopicName   string
	CallbackIDs []string
}

// SubscriptionRecord declares one node input on a topic.
type SubscriptionRecord struct {
	NodeName   string
	TopicName  string
	CallbackID string
}

// TimerRecord declares a periodic trigger bound to a callback.
type TimerRecord struct {
	NodeName   string
	Period     time.Duration
	CallbackID string
}

// CallbackRecord declares one callback. Name may be Undefined, in which
// case a name is synthesized from the declaration order. Period is set
// for timer callbacks, SubscribeTopicName for subscription callbacks.
type CallbackRecord struct {
	NodeName           string
	ID                 string
	Name               string
	Symbol             string
	SubscribeTopicName string
	PublishTopicNames  []string
	Period             time.Duration
}

// CallbackGroupRecord groups callback ids sharing scheduling
// constraints. Name is unique across the whole architecture.
type CallbackGroupRecord struct {
	NodeName    string
	Name        string
	Kind        string
	CallbackIDs []string
}

// VariablePassingRecord declares an in-process write-to-read dependency
// between two callbacks of one node.
type VariablePassingRecord struct {
	NodeName          string
	WriteCallbackName string
	ReadCallbackName  string
}

// MessageContextRecord is a context descriptor attached to a node. Only
// ContextType is mandatory; the remaining fields narrow the node path
// the descriptor applies to. Frame fields matter only when a side of
// the match is the transform channel.
type MessageContextRecord struct {
	NodeName              string
	ContextType           string
	SubscriptionTopicName string
	PublisherTopicName    string
	BroadcastFrameID      string
	BroadcastChildFrameID string
	LookupFrameID         string
	LookupChildFrameID    string
}

// TransformFrameRecord declares one parent/child frame relationship.
type TransformFrameRecord struct {
	FrameID      string
	ChildFrameID string
}

// TfBroadcasterRecord declares a node's transform-publishing endpoint.
type TfBroadcasterRecord struct {
	NodeName    string
	Transforms  []TransformFrameRecord
	CallbackIDs []string
}

// TfBufferRecord declares a node's transform-consuming endpoint.
type TfBufferRecord struct {
	NodeName         string
	ListenTransforms []TransformFrameRecord
	LookupTransforms []TransformFrameRecord
}

// ExecutorRecord declares one executor and the callback groups it owns,
// referenced by their architecture-wide unique names.
type ExecutorRecord struct {
	Name               string
	Kind               string
	CallbackGroupNames []string
}

// PathNodeRecord is one hop of a named path declaration: a node plus the
// topics it receives on and forwards to. The first hop has no
// subscribe topic and the last no publish topic.
type PathNodeRecord struct {
	NodeName           string
	SubscribeTopicName string
	PublishTopicName   string
}

// PathRecord declares one named end-to-end path.
type PathRecord struct {
	Name  string
	Nodes []PathNodeRecord
}

// ArchitectureReader supplies the full declarative description of a
// system. Implementations load eagerly; accessor calls never perform
// I/O and never fail.
type ArchitectureReader interface {
	GetNodes() []NodeRecord
	GetPublishers(nodeName string) []PublisherRecord
	GetSubscriptions(nodeName string) []SubscriptionRecord
	GetTimers(nodeName string) []TimerRecord
	GetTimerCallbacks(nodeName string) []CallbackRecord
	GetSubscriptionCallbacks(nodeName string) []CallbackRecord
	GetCallbackGroups(nodeName string) []CallbackGroupRecord
	GetVariablePassings(nodeName string) []VariablePassingRecord
	GetMessageContexts(nodeName string) []MessageContextRecord
	GetTfBroadcaster(nodeName string) *TfBroadcasterRecord
	GetTfBuffer(nodeName string) *TfBufferRecord
	GetExecutors() []ExecutorRecord
	GetPaths() []PathRecord
	GetTfFrames() []TransformFrameRecord
}
