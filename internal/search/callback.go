package search

import (
	"context"
	"fmt"

	"github.com/hsgwa/archgraph/internal/diag"
	"github.com/hsgwa/archgraph/internal/entity"
	"github.com/hsgwa/archgraph/internal/graph"
	"github.com/hsgwa/archgraph/internal/model"
)

// role distinguishes the two graph points of one callback.
type role uint8

const (
	roleRead role = iota
	roleWrite
)

// point is a callback-graph node: a callback in its reading or writing
// phase. Typed keys keep callback names with unusual characters
// unambiguous.
type point struct {
	callback string
	role     role
}

// CallbackPathSearcher holds one node's callback graph. Every callback
// contributes a read point and a write point joined by a read-to-write
// edge (invoking the callback consumes input, then produces output);
// every variable passing joins the writer's write point to the
// reader's read point.
type CallbackPathSearcher struct {
	node *entity.Node
	g    *graph.Graph[point]
}

// NewCallbackPathSearcher builds the read/write graph of a node.
func NewCallbackPathSearcher(node *entity.Node) *CallbackPathSearcher {
	g := graph.New[point]()
	for _, cb := range node.Callbacks().All() {
		g.AddEdge(point{cb.Name(), roleRead}, point{cb.Name(), roleWrite}, "")
	}
	for _, vp := range node.VariablePassings() {
		g.AddEdge(
			point{vp.WriteCallbackName(), roleWrite},
			point{vp.ReadCallbackName(), roleRead},
			"")
	}
	return &CallbackPathSearcher{node: node, g: g}
}

// SearchAndAttach enumerates chains for every ordered callback pair,
// start == end included, and attaches each to the path-table entry its
// resolved endpoints select. Endpoint resolution failures degrade to a
// nil side with a warning. The first chain to reach a table entry
// wins.
func (s *CallbackPathSearcher) SearchAndAttach(ctx context.Context, sink *diag.Sink) {
	callbacks := s.node.Callbacks().All()
	for _, start := range callbacks {
		for _, end := range callbacks {
			paths := s.g.SearchPaths(ctx,
				point{start.Name(), roleRead},
				point{end.Name(), roleWrite}, 0)
			for _, p := range paths {
				chain, err := s.toChain(p)
				if err != nil {
					sink.Warn(ctx, err, "Failed to resolve callback chain, skipping.",
						"node", s.node.Name(),
						"start", start.Name(), "end", end.Name())
					continue
				}
				s.attach(ctx, sink, start, end, chain)
			}
		}
	}
}

// toChain resolves each graph hop back to the callback or variable
// passing responsible for it. A read-to-write hop within one callback
// is the callback itself; a write-to-read hop across callbacks is a
// variable passing.
func (s *CallbackPathSearcher) toChain(p graph.Path[point]) ([]model.ChainElement, error) {
	var chain []model.ChainElement
	for _, e := range p {
		switch {
		case e.From.role == roleRead && e.To.role == roleWrite:
			cb, err := s.node.Callbacks().GetByName(e.From.callback)
			if err != nil {
				return nil, err
			}
			chain = append(chain, cb.Finalize())
		case e.From.role == roleWrite && e.To.role == roleRead:
			vp, err := s.findVariablePassing(e.From.callback, e.To.callback)
			if err != nil {
				return nil, err
			}
			chain = append(chain, vp.Finalize())
		default:
			return nil, fmt.Errorf("%w: callback graph hop %v -> %v",
				diag.ErrUnsupportedType, e.From, e.To)
		}
	}
	return chain, nil
}

func (s *CallbackPathSearcher) findVariablePassing(write, read string) (*entity.VariablePassing, error) {
	for _, vp := range s.node.VariablePassings() {
		if vp.WriteCallbackName() == write && vp.ReadCallbackName() == read {
			return vp, nil
		}
	}
	return nil, fmt.Errorf("%w: variable passing %s -> %s in node %s",
		diag.ErrNotFound, write, read, s.node.Name())
}

// attach expands a chain against the start callback's declared input
// and the cartesian set of the end callback's declared outputs, then
// writes it into the matching table entries.
func (s *CallbackPathSearcher) attach(ctx context.Context, sink *diag.Sink, start, end *entity.Callback, chain []model.ChainElement) {
	input := s.resolveInput(ctx, sink, start)

	outputTopics := end.PublishTopicNames()
	if len(outputTopics) == 0 {
		// A chain with no declared outputs still yields one node path
		// with a nil output side.
		s.attachOne(chain, input, nil)
		return
	}
	for _, topic := range outputTopics {
		output, err := s.node.FindOutput(topic)
		if err != nil {
			sink.Warn(ctx, err, "Failed to resolve chain output, leaving it unset.",
				"node", s.node.Name(), "callback", end.Name(), "topic", topic)
			output = nil
		}
		s.attachOne(chain, input, output)
	}
}

func (s *CallbackPathSearcher) resolveInput(ctx context.Context, sink *diag.Sink, start *entity.Callback) model.NodeInput {
	topic := start.SubscribeTopicName()
	if topic == "" {
		return nil
	}
	input, err := s.node.FindInput(topic)
	if err != nil {
		sink.Warn(ctx, err, "Failed to resolve chain input, leaving it unset.",
			"node", s.node.Name(), "callback", start.Name(), "topic", topic)
		return nil
	}
	return input
}

func (s *CallbackPathSearcher) attachOne(chain []model.ChainElement, in model.NodeInput, out model.NodeOutput) {
	if in == nil && out == nil {
		// The table holds no fully-degenerate entry; a chain with
		// neither side carries no routing information.
		return
	}
	np := s.node.Paths().MustGet(in, out)
	if np.HasChain() {
		return
	}
	np.SetChain(chain)
}
