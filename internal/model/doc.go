// Package model holds the immutable value types of a reconstructed
// architecture: nodes, callbacks, endpoints, communications, node-local
// and end-to-end paths, and the transform tree.
//
// Values are plain structs with exported fields. They are produced by
// the builders in internal/entity and treated as read-only snapshots
// from then on; nothing in this package mutates them after creation.
//
// Endpoint variants (ordinary topic endpoints versus transform frame
// endpoints) are closed unions: NodeInput is either a Subscription or a
// TransformFrameBuffer, NodeOutput is either a Publisher or a
// TransformFrameBroadcaster. The unions are sealed with unexported
// marker methods so no third variant can appear at a distance.
package model
