// Package arch assembles a full architecture from a reader and exposes
// the read-only query surface over the result.
//
// Assembly order is strict: nodes first (each with its path table,
// callback chains, and message contexts), then inter-node
// communications, then reader-declared named paths. Recoverable
// anomalies go to a diagnostics sink carried by the Architecture;
// nothing recoverable aborts the batch.
package arch

import (
	"context"
	"fmt"
	"sort"

	"github.com/hsgwa/archgraph/internal/diag"
	"github.com/hsgwa/archgraph/internal/entity"
	"github.com/hsgwa/archgraph/internal/model"
	"github.com/hsgwa/archgraph/internal/reader"
	"github.com/hsgwa/archgraph/internal/search"
)

// Options tunes assembly. The zero value is usable.
type Options struct {
	// IgnoreTopics replaces DefaultIgnoreTopics when non-nil.
	IgnoreTopics []string
	// Filters prunes the communication table during pairing.
	Filters entity.Filters
}

// Architecture is the finalized reconstruction result.
type Architecture struct {
	nodes            []model.Node
	executors        []model.Executor
	communications   []model.Communication
	tfCommunications []model.TransformCommunication
	paths            []model.Path
	tree             *model.TransformTree

	entityNodes []*entity.Node
	searcher    *search.NodePathSearcher
	sink        *diag.Sink
}

// New assembles an architecture from a reader. Only malformed global
// input (conflicting transform frame declarations) fails assembly;
// entity-level anomalies are reported through Warnings and skipped.
func New(ctx context.Context, r reader.ArchitectureReader, opts Options) (*Architecture, error) {
	sink := diag.NewSink()

	ignore := opts.IgnoreTopics
	if ignore == nil {
		ignore = DefaultIgnoreTopics
	}
	filtered := newTopicFilteredReader(r, ignore)

	tree, err := model.NewTransformTree(transformFrames(filtered))
	if err != nil {
		return nil, fmt.Errorf("building transform tree: %w", err)
	}

	var (
		entityNodes []*entity.Node
		seen        = make(map[string]struct{})
	)
	for _, rec := range filtered.GetNodes() {
		if _, dup := seen[rec.Name]; dup {
			sink.Warn(ctx, diag.ErrInvalidInput,
				"Duplicate node name, keeping the first occurrence.",
				"node", rec.Name)
			continue
		}
		seen[rec.Name] = struct{}{}

		n := entity.NewNode(ctx, sink, filtered, rec.Name)
		search.NewCallbackPathSearcher(n).SearchAndAttach(ctx, sink)
		n.ApplyMessageContexts(ctx, sink, filtered.GetMessageContexts(rec.Name))
		entityNodes = append(entityNodes, n)
	}

	comms := entity.NewCommunications(ctx, sink, entityNodes, tree, opts.Filters)
	executors := entity.NewExecutors(ctx, sink, filtered.GetExecutors(), entityNodes)

	a := &Architecture{
		tree:        tree,
		entityNodes: entityNodes,
		searcher:    search.NewNodePathSearcher(entityNodes, comms),
		sink:        sink,
	}

	nodesByName := make(map[string]*entity.Node, len(entityNodes))
	for _, n := range entityNodes {
		nodesByName[n.Name()] = n
	}
	for _, rec := range filtered.GetPaths() {
		p, err := resolveNamedPath(rec, nodesByName, comms)
		if err != nil {
			sink.Warn(ctx, err, "Failed to resolve named path, skipping.",
				"path", rec.Name)
			continue
		}
		a.paths = append(a.paths, p)
	}

	for _, n := range entityNodes {
		a.nodes = append(a.nodes, n.Finalize())
	}
	for _, e := range executors {
		a.executors = append(a.executors, e.Finalize())
	}
	a.communications = comms.Comms()
	a.tfCommunications = comms.TfComms()
	return a, nil
}

func transformFrames(r reader.ArchitectureReader) []model.Transform {
	var out []model.Transform
	for _, rec := range r.GetTfFrames() {
		out = append(out, model.Transform{FrameID: rec.FrameID, ChildFrameID: rec.ChildFrameID})
	}
	return out
}

// Nodes returns the finalized nodes in reader order.
func (a *Architecture) Nodes() []model.Node { return a.nodes }

// Executors returns the finalized executors.
func (a *Architecture) Executors() []model.Executor { return a.executors }

// Communications returns the ordinary communication table.
func (a *Architecture) Communications() []model.Communication { return a.communications }

// TfCommunications returns the transform communication table.
func (a *Architecture) TfCommunications() []model.TransformCommunication {
	return a.tfCommunications
}

// Paths returns the resolved reader-declared named paths.
func (a *Architecture) Paths() []model.Path { return a.paths }

// Warnings returns every anomaly recorded during assembly and through
// later searches.
func (a *Architecture) Warnings() []diag.Warning { return a.sink.Warnings() }

// Search enumerates every route from one node to another, bounded by
// maxDepth communication hops (0 for unbounded).
func (a *Architecture) Search(ctx context.Context, startNode, endNode string, maxDepth int) []model.Path {
	return a.searcher.Search(ctx, a.sink, startNode, endNode, maxDepth)
}

// GetNode returns the node with the given name.
func (a *Architecture) GetNode(name string) (model.Node, error) {
	for _, n := range a.nodes {
		if n.Name == name {
			return n, nil
		}
	}
	return model.Node{}, fmt.Errorf("%w: node %q", diag.ErrNotFound, name)
}

// GetExecutor returns the executor with the given name.
func (a *Architecture) GetExecutor(name string) (model.Executor, error) {
	for _, e := range a.executors {
		if e.Name == name {
			return e, nil
		}
	}
	return model.Executor{}, fmt.Errorf("%w: executor %q", diag.ErrNotFound, name)
}

// GetCallbackGroup returns the callback group with the given
// architecture-wide name.
func (a *Architecture) GetCallbackGroup(name string) (model.CallbackGroup, error) {
	for _, n := range a.nodes {
		for _, g := range n.CallbackGroups {
			if g.Name == name {
				return g, nil
			}
		}
	}
	return model.CallbackGroup{}, fmt.Errorf("%w: callback group %q", diag.ErrNotFound, name)
}

// GetCallback returns the callback with the given name. Callback names
// are unique per node only, so a name used by several nodes is
// ambiguous.
func (a *Architecture) GetCallback(name string) (model.Callback, error) {
	var matches []model.Callback
	for _, n := range a.nodes {
		for _, cb := range n.Callbacks {
			if cb.Name == name {
				matches = append(matches, cb)
			}
		}
	}
	switch len(matches) {
	case 0:
		return model.Callback{}, fmt.Errorf("%w: callback %q", diag.ErrNotFound, name)
	case 1:
		return matches[0], nil
	}
	return model.Callback{}, fmt.Errorf("%w: %d callbacks named %q",
		diag.ErrMultipleFound, len(matches), name)
}

// TopicNames returns every topic in the communication table, sorted
// and deduplicated.
func (a *Architecture) TopicNames() []string {
	set := make(map[string]struct{})
	for _, c := range a.communications {
		set[c.TopicName] = struct{}{}
	}
	if len(a.tfCommunications) > 0 {
		set[model.TopicTF] = struct{}{}
	}
	out := make([]string, 0, len(set))
	for topic := range set {
		out = append(out, topic)
	}
	sort.Strings(out)
	return out
}

// NodeNames returns every node name in reader order.
func (a *Architecture) NodeNames() []string {
	out := make([]string, 0, len(a.nodes))
	for _, n := range a.nodes {
		out = append(out, n.Name)
	}
	return out
}

// CallbackGroupNames returns every callback group name, sorted.
func (a *Architecture) CallbackGroupNames() []string {
	var out []string
	for _, n := range a.nodes {
		for _, g := range n.CallbackGroups {
			out = append(out, g.Name)
		}
	}
	sort.Strings(out)
	return out
}
