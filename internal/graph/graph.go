package graph

import (
	"context"
	"fmt"

	"github.com/hsgwa/archgraph/internal/ctxlog"
)

// Edge is one directed, labeled edge of a path returned by SearchPaths.
type Edge[N comparable] struct {
	From  N
	To    N
	Label string
}

// Path is an ordered list of edges. Consecutive edges share a node.
type Path[N comparable] []Edge[N]

// Nodes returns the node sequence the path traverses. A single self-loop
// edge yields one node, not two.
func (p Path[N]) Nodes() []N {
	if len(p) == 0 {
		return nil
	}
	nodes := []N{p[0].From}
	if p[0].From == p[0].To {
		return nodes
	}
	for _, e := range p {
		nodes = append(nodes, e.To)
	}
	return nodes
}

// edge is the index-based internal representation.
type edge struct {
	from  int
	to    int
	label string
}

// Graph is a directed multigraph over comparable node keys.
// Edges are stored in insertion order, which makes path enumeration
// deterministic for deterministic construction.
type Graph[N comparable] struct {
	index map[N]int
	nodes []N
	adj   [][]edge
}

// New returns an empty graph.
func New[N comparable]() *Graph[N] {
	return &Graph[N]{index: make(map[N]int)}
}

func (g *Graph[N]) intern(n N) int {
	if i, ok := g.index[n]; ok {
		return i
	}
	i := len(g.nodes)
	g.index[n] = i
	g.nodes = append(g.nodes, n)
	g.adj = append(g.adj, nil)
	return i
}

// AddEdge registers a directed edge. Nodes are created on first use.
// An empty label defaults to the destination's identity.
func (g *Graph[N]) AddEdge(from, to N, label string) {
	if label == "" {
		label = fmt.Sprint(to)
	}
	u := g.intern(from)
	v := g.intern(to)
	g.adj[u] = append(g.adj[u], edge{from: u, to: v, label: label})
}

// SearchPaths returns every simple path from start to goal. maxDepth
// bounds the number of edges per path; 0 means unbounded. Unknown start
// or goal nodes yield an empty result, not an error.
func (g *Graph[N]) SearchPaths(ctx context.Context, start, goal N, maxDepth int) []Path[N] {
	logger := ctxlog.FromContext(ctx)

	si, ok := g.index[start]
	if !ok {
		logger.Info("Unregistered graph node, returning empty paths.", "node", fmt.Sprint(start))
		return nil
	}
	gi, ok := g.index[goal]
	if !ok {
		logger.Info("Unregistered graph node, returning empty paths.", "node", fmt.Sprint(goal))
		return nil
	}

	// frame tracks the next unexplored edge of the node it represents.
	type frame struct {
		node int
		next int
	}

	visited := make([]bool, len(g.nodes))
	if si != gi {
		// Leaving the start unmarked when start == goal lets the search
		// close a cycle back onto it.
		visited[si] = true
	}

	var (
		paths []Path[N]
		path  []edge
		stack = []frame{{node: si}}
	)

	for len(stack) > 0 {
		f := &stack[len(stack)-1]
		u := f.node

		advanced := false
		for f.next < len(g.adj[u]) {
			if maxDepth > 0 && len(path) >= maxDepth {
				break
			}
			e := g.adj[u][f.next]
			f.next++

			if e.to == gi {
				paths = append(paths, g.toPath(path, e))
				continue
			}
			if visited[e.to] {
				continue
			}
			visited[e.to] = true
			path = append(path, e)
			stack = append(stack, frame{node: e.to})
			advanced = true
			break
		}

		if !advanced {
			stack = stack[:len(stack)-1]
			if len(path) > 0 {
				last := path[len(path)-1]
				visited[last.to] = false
				path = path[:len(path)-1]
			}
		}
	}

	return paths
}

// toPath materializes the working path plus its closing edge.
func (g *Graph[N]) toPath(path []edge, closing edge) Path[N] {
	out := make(Path[N], 0, len(path)+1)
	for _, e := range path {
		out = append(out, Edge[N]{From: g.nodes[e.from], To: g.nodes[e.to], Label: e.label})
	}
	out = append(out, Edge[N]{From: g.nodes[closing.from], To: g.nodes[closing.to], Label: closing.label})
	return out
}
