package entity

import (
	"context"
	"fmt"
	"time"

	"github.com/hsgwa/archgraph/internal/diag"
	"github.com/hsgwa/archgraph/internal/model"
	"github.com/hsgwa/archgraph/internal/reader"
)

// Callback is the builder for one callback of a node.
type Callback struct {
	finalized
	nodeName           string
	id                 string
	name               string
	kind               model.CallbackKind
	symbol             string
	subscribeTopicName string
	publishTopicNames  []string
	period             time.Duration
}

// newCallback builds a callback from its record. A record without a
// declared name gets one synthesized from the declaration index.
func newCallback(rec reader.CallbackRecord, kind model.CallbackKind, index int) *Callback {
	name := rec.Name
	if !reader.IsDefined(name) {
		name = fmt.Sprintf("callback_%d", index)
	}
	return &Callback{
		nodeName:           rec.NodeName,
		id:                 rec.ID,
		name:               name,
		kind:               kind,
		symbol:             rec.Symbol,
		subscribeTopicName: rec.SubscribeTopicName,
		publishTopicNames:  rec.PublishTopicNames,
		period:             rec.Period,
	}
}

func (c *Callback) ID() string                  { return c.id }
func (c *Callback) Name() string                { return c.name }
func (c *Callback) Kind() model.CallbackKind    { return c.kind }
func (c *Callback) SubscribeTopicName() string  { return c.subscribeTopicName }
func (c *Callback) PublishTopicNames() []string { return c.publishTopicNames }

// Finalize produces the immutable snapshot.
func (c *Callback) Finalize() model.Callback {
	c.mark()
	return model.Callback{
		NodeName:           c.nodeName,
		ID:                 c.id,
		Name:               c.name,
		Kind:               c.kind,
		Symbol:             c.symbol,
		SubscribeTopicName: c.subscribeTopicName,
		PublishTopicNames:  c.publishTopicNames,
		Period:             c.period,
	}
}

// Callbacks is the per-node callback collection. Ids and names are
// unique within one node; an id or name collision is tolerated with a
// warning and the colliding callback is dropped.
type Callbacks struct {
	items []*Callback
}

func (cs *Callbacks) insert(ctx context.Context, sink *diag.Sink, cb *Callback) {
	for _, existing := range cs.items {
		if existing.id == cb.id {
			sink.Warn(ctx, diag.ErrInvalidInput,
				"Duplicate callback id, dropping callback.",
				"node", cb.nodeName, "callback_id", cb.id)
			return
		}
		if existing.name == cb.name {
			sink.Warn(ctx, diag.ErrInvalidInput,
				"Duplicate callback name, dropping callback.",
				"node", cb.nodeName, "callback", cb.name)
			return
		}
	}
	cs.items = append(cs.items, cb)
}

// All returns the callbacks in declaration order.
func (cs *Callbacks) All() []*Callback {
	return cs.items
}

// GetByID returns the callback with the given id.
func (cs *Callbacks) GetByID(id string) (*Callback, error) {
	for _, cb := range cs.items {
		if cb.id == id {
			return cb, nil
		}
	}
	return nil, fmt.Errorf("%w: callback id %q", diag.ErrNotFound, id)
}

// GetByName returns the callback with the given name.
func (cs *Callbacks) GetByName(name string) (*Callback, error) {
	for _, cb := range cs.items {
		if cb.name == name {
			return cb, nil
		}
	}
	return nil, fmt.Errorf("%w: callback %q", diag.ErrNotFound, name)
}

// CallbackGroup is the builder for one callback group.
type CallbackGroup struct {
	finalized
	nodeName    string
	name        string
	kind        string
	callbackIDs []string
	callbacks   []*Callback
}

func (g *CallbackGroup) Name() string { return g.name }

func (g *CallbackGroup) Finalize() model.CallbackGroup {
	g.mark()
	out := model.CallbackGroup{
		NodeName:    g.nodeName,
		Name:        g.name,
		Kind:        g.kind,
		CallbackIDs: g.callbackIDs,
	}
	for _, cb := range g.callbacks {
		out.Callbacks = append(out.Callbacks, cb.Finalize())
	}
	return out
}

// VariablePassing is the builder for one in-process data dependency.
type VariablePassing struct {
	finalized
	nodeName          string
	writeCallbackName string
	readCallbackName  string
}

func (vp *VariablePassing) WriteCallbackName() string { return vp.writeCallbackName }
func (vp *VariablePassing) ReadCallbackName() string  { return vp.readCallbackName }

func (vp *VariablePassing) Finalize() model.VariablePassing {
	vp.mark()
	return model.VariablePassing{
		NodeName:          vp.nodeName,
		WriteCallbackName: vp.writeCallbackName,
		ReadCallbackName:  vp.readCallbackName,
	}
}
