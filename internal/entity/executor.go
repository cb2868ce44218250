package entity

import (
	"context"
	"fmt"

	"github.com/hsgwa/archgraph/internal/diag"
	"github.com/hsgwa/archgraph/internal/model"
	"github.com/hsgwa/archgraph/internal/reader"
)

// Executor is the builder for one executor. Callback-group membership
// is resolved across all nodes by the architecture-wide group name.
type Executor struct {
	finalized
	name   string
	kind   string
	groups []*CallbackGroup
}

func (e *Executor) Name() string { return e.name }

func (e *Executor) Finalize() model.Executor {
	e.mark()
	out := model.Executor{Name: e.name, Kind: e.kind}
	for _, g := range e.groups {
		out.CallbackGroups = append(out.CallbackGroups, g.Finalize())
	}
	return out
}

// NewExecutors builds all executors from reader records. Records
// without a name get one synthesized from the declaration index. A
// reference to an unknown callback group is reported and skipped, the
// executor itself survives.
func NewExecutors(ctx context.Context, sink *diag.Sink, recs []reader.ExecutorRecord, nodes []*Node) []*Executor {
	groupsByName := make(map[string]*CallbackGroup)
	for _, n := range nodes {
		for _, g := range n.CallbackGroups() {
			groupsByName[g.Name()] = g
		}
	}

	var out []*Executor
	for i, rec := range recs {
		name := rec.Name
		if !reader.IsDefined(name) {
			name = fmt.Sprintf("executor_%d", i)
		}
		e := &Executor{name: name, kind: rec.Kind}
		for _, groupName := range rec.CallbackGroupNames {
			g, ok := groupsByName[groupName]
			if !ok {
				sink.Warn(ctx, diag.ErrNotFound,
					"Executor references unknown callback group.",
					"executor", name, "callback_group", groupName)
				continue
			}
			e.groups = append(e.groups, g)
		}
		out = append(out, e)
	}
	return out
}
