// Package graph implements a directed multigraph with labeled edges and
// exhaustive simple-path enumeration between two nodes.
//
// The graph carries no domain knowledge. Node keys are any comparable type:
// the intra-node callback search keys by (callback, role) pairs, the
// inter-node communication search keys by node name. Parallel edges with
// distinct labels are kept, which lets two nodes be connected by several
// topics at once.
//
// SearchPaths enumerates every simple path from start to goal with an
// iterative, stack-based depth-first traversal. Visited tracking is local
// to the path under construction, so a node may appear in many returned
// paths but never twice within one. The single exception is the start
// node when start == goal: a path may close back on it, which models a
// node that both publishes and subscribes to the same topic.
package graph
