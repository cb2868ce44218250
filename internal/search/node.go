package search

import (
	"context"
	"fmt"

	"github.com/hsgwa/archgraph/internal/diag"
	"github.com/hsgwa/archgraph/internal/entity"
	"github.com/hsgwa/archgraph/internal/graph"
	"github.com/hsgwa/archgraph/internal/model"
)

// edgeKey identifies one graph edge, label included, so every edge
// resolves back to exactly one communication.
type edgeKey struct {
	from  string
	to    string
	label string
}

// NodePathSearcher holds the inter-node graph: nodes named by node
// name, edges labeled by topic (frames appended for transform edges,
// which keeps parallel transform communications between the same two
// nodes distinct).
type NodePathSearcher struct {
	g     *graph.Graph[string]
	nodes map[string]*entity.Node
	edges map[edgeKey]model.PathElement
}

// NewNodePathSearcher builds the graph from the paired communication
// table.
func NewNodePathSearcher(nodes []*entity.Node, comms *entity.Communications) *NodePathSearcher {
	s := &NodePathSearcher{
		g:     graph.New[string](),
		nodes: make(map[string]*entity.Node, len(nodes)),
		edges: make(map[edgeKey]model.PathElement),
	}
	for _, n := range nodes {
		s.nodes[n.Name()] = n
	}
	for _, c := range comms.Comms() {
		s.addEdge(c.PublishNodeName, c.SubscribeNodeName, c.TopicName, c)
	}
	for _, tc := range comms.TfComms() {
		label := fmt.Sprintf("%s %s %s", model.TopicTF,
			tc.Broadcaster.Transform, tc.Buffer.LookupTransform)
		s.addEdge(tc.Broadcaster.Publisher.NodeName, tc.Buffer.NodeName, label, tc)
	}
	return s
}

func (s *NodePathSearcher) addEdge(from, to, label string, comm model.PathElement) {
	key := edgeKey{from: from, to: to, label: label}
	if _, ok := s.edges[key]; ok {
		return
	}
	s.edges[key] = comm
	s.g.AddEdge(from, to, label)
}

// Search enumerates every route from start to end up to maxDepth
// communication hops and resolves each into a full path. A route whose
// resolution fails is reported and skipped; the rest of the batch is
// unaffected.
func (s *NodePathSearcher) Search(ctx context.Context, sink *diag.Sink, start, end string, maxDepth int) []model.Path {
	var out []model.Path
	for _, gp := range s.g.SearchPaths(ctx, start, end, maxDepth) {
		p, err := s.toPath(gp)
		if err != nil {
			sink.Warn(ctx, err, "Failed to resolve a searched path, skipping.",
				"start", start, "end", end)
			continue
		}
		out = append(out, p)
	}
	return out
}

// toPath materializes one graph route: the head node path (nil input),
// then for each edge its communication followed by the next node path,
// whose input comes from the communication just crossed and whose
// output feeds the following one (nil at the tail).
func (s *NodePathSearcher) toPath(gp graph.Path[string]) (model.Path, error) {
	comms := make([]model.PathElement, 0, len(gp))
	for _, e := range gp {
		comm, ok := s.edges[edgeKey{from: e.From, to: e.To, label: e.Label}]
		if !ok {
			return model.Path{}, fmt.Errorf("%w: communication for edge %s -> %s (%s)",
				diag.ErrNotFound, e.From, e.To, e.Label)
		}
		comms = append(comms, comm)
	}

	var elements []model.PathElement

	head, err := s.findNodePath(gp[0].From, nil, commOutput(comms[0]))
	if err != nil {
		return model.Path{}, err
	}
	elements = append(elements, head)

	for i, comm := range comms {
		elements = append(elements, comm)

		in := commInput(comm)
		var out model.NodeOutput
		if i+1 < len(comms) {
			out = commOutput(comms[i+1])
		}
		np, err := s.findNodePath(gp[i].To, in, out)
		if err != nil {
			return model.Path{}, err
		}
		elements = append(elements, np)
	}

	return model.Path{Elements: elements}, nil
}

func (s *NodePathSearcher) findNodePath(nodeName string, in model.NodeInput, out model.NodeOutput) (model.NodePath, error) {
	n, ok := s.nodes[nodeName]
	if !ok {
		return model.NodePath{}, fmt.Errorf("%w: node %q", diag.ErrNotFound, nodeName)
	}
	np, err := n.Paths().Find(in, out)
	if err != nil {
		return model.NodePath{}, err
	}
	return np.Finalize(), nil
}

func commInput(el model.PathElement) model.NodeInput {
	switch c := el.(type) {
	case model.Communication:
		return c.Subscription
	case model.TransformCommunication:
		return c.Buffer
	}
	return nil
}

func commOutput(el model.PathElement) model.NodeOutput {
	switch c := el.(type) {
	case model.Communication:
		return c.Publisher
	case model.TransformCommunication:
		return c.Broadcaster
	}
	return nil
}
