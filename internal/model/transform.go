package model

import (
	"fmt"

	"github.com/hsgwa/archgraph/internal/diag"
)

// Transform is one directed coordinate-frame relationship: FrameID is
// the parent frame, ChildFrameID the child.
type Transform struct {
	FrameID      string
	ChildFrameID string
}

func (t Transform) String() string {
	return t.FrameID + "->" + t.ChildFrameID
}

// TransformTree answers ancestry queries over the full set of declared
// transforms. Each child frame has exactly one parent transform, so the
// declarations form a forest; queries walk parent links iteratively.
type TransformTree struct {
	// parent maps a child frame to the transform that produces it.
	parent map[string]Transform
}

// NewTransformTree indexes the declared transforms. Two transforms
// claiming the same child frame with different parents are invalid
// input.
func NewTransformTree(transforms []Transform) (*TransformTree, error) {
	parent := make(map[string]Transform, len(transforms))
	for _, t := range transforms {
		if prev, ok := parent[t.ChildFrameID]; ok {
			if prev == t {
				continue
			}
			return nil, fmt.Errorf(
				"%w: frame %q has two parent transforms (%s, %s)",
				diag.ErrInvalidInput, t.ChildFrameID, prev, t)
		}
		parent[t.ChildFrameID] = t
	}
	return &TransformTree{parent: parent}, nil
}

// ancestors returns the set of transforms on the path from frame up to
// its root. The visited guard terminates the walk on malformed cyclic
// input.
func (tt *TransformTree) ancestors(frame string) map[Transform]struct{} {
	out := make(map[Transform]struct{})
	visited := make(map[string]struct{})
	for {
		if _, ok := visited[frame]; ok {
			return out
		}
		visited[frame] = struct{}{}
		t, ok := tt.parent[frame]
		if !ok {
			return out
		}
		out[t] = struct{}{}
		frame = t.FrameID
	}
}

// IsIn reports whether target is the edge a lookup actually traverses.
// The ancestor sets of the lookup's two frames are XOR-ed: transforms
// shared by both paths to the root cancel out, leaving exactly the
// edges between the two frames.
func (tt *TransformTree) IsIn(lookup, target Transform) bool {
	a := tt.ancestors(lookup.FrameID)
	b := tt.ancestors(lookup.ChildFrameID)

	_, inA := a[target]
	_, inB := b[target]
	return inA != inB
}
