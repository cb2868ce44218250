package model

// MessageContextKind classifies how a node path's output message relates
// causally to its input message.
type MessageContextKind string

const (
	// UseLatestMessage: the output is computed from the most recently
	// received input, whatever its timestamp.
	UseLatestMessage MessageContextKind = "use_latest_message"
	// CallbackChain: the output is produced by the declared callback
	// chain that consumed the input.
	CallbackChain MessageContextKind = "callback_chain"
	// InheritUniqueStamp is declared by older description files but no
	// longer supported; descriptors carrying it are rejected.
	InheritUniqueStamp MessageContextKind = "inherit_unique_stamp"
)

// MessageContext is a reader-declared causal classification, matched to
// the node path whose resolved input and output topics agree with it.
// The frame fields are set only when a side of the match is the
// transform channel.
type MessageContext struct {
	Kind     MessageContextKind
	NodeName string

	SubscribeTopicName string
	PublishTopicName   string

	BroadcastFrameID      string
	BroadcastChildFrameID string
	LookupFrameID         string
	LookupChildFrameID    string
}
