package graph

import (
	"context"
	"sort"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pathStrings renders every path as "a-b-c" over its node sequence and
// sorts the result so assertions do not depend on enumeration order.
func pathStrings(paths []Path[string]) []string {
	var out []string
	for _, p := range paths {
		out = append(out, strings.Join(p.Nodes(), "-"))
	}
	sort.Strings(out)
	return out
}

func TestSearchPaths_Linear(t *testing.T) {
	ctx := context.Background()
	g := New[string]()
	g.AddEdge("a", "b", "")
	g.AddEdge("b", "c", "")

	paths := g.SearchPaths(ctx, "a", "c", 0)

	require.Len(t, paths, 1)
	assert.Equal(t, []string{"a", "b", "c"}, paths[0].Nodes())
}

func TestSearchPaths_Branching(t *testing.T) {
	// Two routes from a to d, sharing the endpoints only.
	ctx := context.Background()
	g := New[string]()
	g.AddEdge("a", "b", "")
	g.AddEdge("b", "d", "")
	g.AddEdge("a", "c", "")
	g.AddEdge("c", "d", "")

	paths := g.SearchPaths(ctx, "a", "d", 0)

	want := []string{"a-b-d", "a-c-d"}
	if diff := cmp.Diff(want, pathStrings(paths)); diff != "" {
		t.Errorf("paths mismatch (-want +got):\n%s", diff)
	}
}

func TestSearchPaths_ParallelEdges(t *testing.T) {
	// Two labeled edges between the same pair are distinct paths.
	ctx := context.Background()
	g := New[string]()
	g.AddEdge("a", "b", "/left")
	g.AddEdge("a", "b", "/right")

	paths := g.SearchPaths(ctx, "a", "b", 0)

	require.Len(t, paths, 2)
	labels := []string{paths[0][0].Label, paths[1][0].Label}
	sort.Strings(labels)
	assert.Equal(t, []string{"/left", "/right"}, labels)
}

func TestSearchPaths_NoRevisit(t *testing.T) {
	// The cycle b-c-b must not be walked: only the direct pass survives.
	ctx := context.Background()
	g := New[string]()
	g.AddEdge("a", "b", "")
	g.AddEdge("b", "c", "")
	g.AddEdge("c", "b", "")
	g.AddEdge("c", "d", "")

	paths := g.SearchPaths(ctx, "a", "d", 0)

	require.Len(t, paths, 1)
	assert.Equal(t, []string{"a", "b", "c", "d"}, paths[0].Nodes())
}

func TestSearchPaths_SelfLoop(t *testing.T) {
	ctx := context.Background()

	t.Run("direct self edge", func(t *testing.T) {
		g := New[string]()
		g.AddEdge("a", "a", "/loop")

		paths := g.SearchPaths(ctx, "a", "a", 0)

		require.Len(t, paths, 1)
		require.Len(t, paths[0], 1)
		assert.Equal(t, []string{"a"}, paths[0].Nodes())
	})

	t.Run("cycle through another node", func(t *testing.T) {
		g := New[string]()
		g.AddEdge("a", "b", "")
		g.AddEdge("b", "a", "")

		paths := g.SearchPaths(ctx, "a", "a", 0)

		require.Len(t, paths, 1)
		assert.Equal(t, []string{"a", "b", "a"}, paths[0].Nodes())
	})
}

func TestSearchPaths_MaxDepth(t *testing.T) {
	ctx := context.Background()
	g := New[string]()
	g.AddEdge("a", "b", "")
	g.AddEdge("b", "c", "")
	g.AddEdge("a", "c", "/short")

	t.Run("depth one keeps only the direct edge", func(t *testing.T) {
		paths := g.SearchPaths(ctx, "a", "c", 1)
		require.Len(t, paths, 1)
		assert.Equal(t, "/short", paths[0][0].Label)
	})

	t.Run("depth two finds both", func(t *testing.T) {
		paths := g.SearchPaths(ctx, "a", "c", 2)
		assert.Len(t, paths, 2)
	})
}

func TestSearchPaths_UnknownNodes(t *testing.T) {
	ctx := context.Background()
	g := New[string]()
	g.AddEdge("a", "b", "")

	assert.Empty(t, g.SearchPaths(ctx, "x", "b", 0))
	assert.Empty(t, g.SearchPaths(ctx, "a", "x", 0))
}

func TestSearchPaths_DefaultLabel(t *testing.T) {
	ctx := context.Background()
	g := New[string]()
	g.AddEdge("a", "b", "")

	paths := g.SearchPaths(ctx, "a", "b", 0)

	require.Len(t, paths, 1)
	assert.Equal(t, "b", paths[0][0].Label)
}

func TestPathNodes_Empty(t *testing.T) {
	var p Path[string]
	assert.Nil(t, p.Nodes())
}
