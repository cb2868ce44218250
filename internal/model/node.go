package model

// Node is one named unit of computation and everything declared inside
// it, plus the node-local path table computed during assembly.
type Node struct {
	Name string

	Publishers       []Publisher
	Subscriptions    []Subscription
	Timers           []Timer
	Callbacks        []Callback
	CallbackGroups   []CallbackGroup
	VariablePassings []VariablePassing

	// At most one of each per node.
	TfBroadcaster *TransformBroadcaster
	TfBuffer      *TransformBuffer

	Paths []NodePath
}

// Executor groups callback groups sharing one concurrency domain. It is
// taken directly from reader records, not derived from the graphs.
type Executor struct {
	Name           string
	Kind           string
	CallbackGroups []CallbackGroup
}
