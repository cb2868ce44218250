package entity

import (
	"fmt"

	"github.com/hsgwa/archgraph/internal/diag"
	"github.com/hsgwa/archgraph/internal/model"
)

// NodePath is the builder for one node-local route. Input and output
// are fixed at table-construction time; the callback chain and message
// context are attached later by the intra-node search and the context
// matcher.
type NodePath struct {
	finalized
	nodeName string
	input    model.NodeInput
	output   model.NodeOutput
	chain    []model.ChainElement
	context  *model.MessageContext
}

func (np *NodePath) NodeName() string         { return np.nodeName }
func (np *NodePath) Input() model.NodeInput   { return np.input }
func (np *NodePath) Output() model.NodeOutput { return np.output }

// SubscribeTopicName returns the input side's topic, "" when nil.
func (np *NodePath) SubscribeTopicName() string {
	return model.InputTopicName(np.input)
}

// PublishTopicName returns the output side's topic, "" when nil.
func (np *NodePath) PublishTopicName() string {
	return model.OutputTopicName(np.output)
}

// HasChain reports whether a callback chain is already attached.
func (np *NodePath) HasChain() bool {
	return np.chain != nil
}

// SetChain attaches the callback chain realizing this route.
func (np *NodePath) SetChain(chain []model.ChainElement) {
	np.mustMutable("node path")
	np.chain = chain
}

// SetContext attaches a matched message-context classification.
func (np *NodePath) SetContext(mc model.MessageContext) {
	np.mustMutable("node path")
	np.context = &mc
}

// Finalize produces the immutable snapshot.
func (np *NodePath) Finalize() model.NodePath {
	np.mark()
	return model.NodePath{
		NodeName: np.nodeName,
		Input:    np.input,
		Output:   np.output,
		Chain:    np.chain,
		Context:  np.context,
	}
}

// endpointKey gives each endpoint variant a stable identity string for
// table keying. nil endpoints key as "".
func inputKey(in model.NodeInput) string {
	switch v := in.(type) {
	case model.Subscription:
		return "sub|" + v.TopicName
	case model.TransformFrameBuffer:
		return "tfbuf|" + v.LookupTransform.String()
	}
	return ""
}

func outputKey(out model.NodeOutput) string {
	switch v := out.(type) {
	case model.Publisher:
		return "pub|" + v.TopicName
	case model.TransformFrameBroadcaster:
		return "tfbc|" + v.Transform.String()
	}
	return ""
}

type pathKey struct {
	in  string
	out string
}

// NodePaths is one node's path table. For I inputs and O outputs it
// holds I + O + I*O entries: every input with a nil output, every
// output with a nil input, and every (input, output) combination. The
// table is complete before any search runs, so attaching a chain never
// needs to create an entry.
type NodePaths struct {
	nodeName string
	byKey    map[pathKey]*NodePath
	order    []*NodePath
}

// NewNodePaths pre-populates the table from the node's endpoint sets.
func NewNodePaths(nodeName string, inputs []model.NodeInput, outputs []model.NodeOutput) *NodePaths {
	ps := &NodePaths{
		nodeName: nodeName,
		byKey:    make(map[pathKey]*NodePath),
	}
	for _, in := range inputs {
		ps.add(in, nil)
	}
	for _, out := range outputs {
		ps.add(nil, out)
	}
	for _, in := range inputs {
		for _, out := range outputs {
			ps.add(in, out)
		}
	}
	return ps
}

func (ps *NodePaths) add(in model.NodeInput, out model.NodeOutput) {
	key := pathKey{in: inputKey(in), out: outputKey(out)}
	if _, ok := ps.byKey[key]; ok {
		return
	}
	np := &NodePath{nodeName: ps.nodeName, input: in, output: out}
	ps.byKey[key] = np
	ps.order = append(ps.order, np)
}

// MustGet returns the entry for the exact (input, output) pair. The
// table is complete by construction, so a miss is an invariant
// violation, not a user-facing error.
func (ps *NodePaths) MustGet(in model.NodeInput, out model.NodeOutput) *NodePath {
	np, ok := ps.byKey[pathKey{in: inputKey(in), out: outputKey(out)}]
	if !ok {
		panic(fmt.Sprintf("entity: node path table of %q is missing entry (%q, %q)",
			ps.nodeName, inputKey(in), outputKey(out)))
	}
	return np
}

// Find returns the entry for the (input, output) pair, or ErrNotFound.
// Used by the inter-node searcher, where a miss aborts only the path
// under construction.
func (ps *NodePaths) Find(in model.NodeInput, out model.NodeOutput) (*NodePath, error) {
	np, ok := ps.byKey[pathKey{in: inputKey(in), out: outputKey(out)}]
	if !ok {
		return nil, fmt.Errorf("%w: node path (%s, %s, %s)",
			diag.ErrNotFound, ps.nodeName, inputKey(in), outputKey(out))
	}
	return np, nil
}

// All returns the entries in insertion order.
func (ps *NodePaths) All() []*NodePath {
	return ps.order
}

// Finalize snapshots every entry in insertion order.
func (ps *NodePaths) Finalize() []model.NodePath {
	out := make([]model.NodePath, 0, len(ps.order))
	for _, np := range ps.order {
		out = append(out, np.Finalize())
	}
	return out
}
