// Package authoring is the producer half of the physics extras contract:
// it owns the per-node editing records and keeps each node's property bag
// derived from its record on every edit, the way the editor-side panel does.
// It is presentation-free; a host tool binds its widgets to the setters here.
package authoring

import (
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/exp/constraints"

	"github.com/spaghettifunk/anima-physics/physics"
)

// MinMass mirrors the editor widget's lower clamp. Mass is strictly
// positive on the producing side; the decoder does not re-check it.
const MinMass float32 = 0.001

// SyncFunc observes every re-derived bag, e.g. to persist it into the
// document being exported.
type SyncFunc func(id uuid.UUID, bag physics.PropertyBag)

type nodeState struct {
	name   string
	extras physics.Extras
	bag    physics.PropertyBag
}

// Session holds the physics records of one open document. Records live
// exactly as long as their node stays attached. Single editing thread,
// like the rest of the authoring pipeline.
type Session struct {
	nodes  map[uuid.UUID]*nodeState
	onSync SyncFunc
}

func NewSession() *Session {
	return &Session{
		nodes: make(map[uuid.UUID]*nodeState),
	}
}

// OnSync registers the bag observer. Pass nil to detach it.
func (s *Session) OnSync(fn SyncFunc) {
	s.onSync = fn
}

// Attach creates a default (non-participating) record for a node and
// returns its id. The bag starts empty: no body, no shape, no keys.
func (s *Session) Attach(name string) uuid.UUID {
	id := uuid.New()
	s.nodes[id] = &nodeState{
		name:   name,
		extras: physics.DefaultExtras(),
		bag:    make(physics.PropertyBag),
	}
	return id
}

// Detach drops the record and reports whether it existed. The bag is
// scrubbed first so an observer sees the keys disappear.
func (s *Session) Detach(id uuid.UUID) bool {
	n, ok := s.nodes[id]
	if !ok {
		return false
	}
	n.extras = physics.Extras{}
	s.sync(id, n)
	delete(s.nodes, id)
	return true
}

// Len returns the number of attached nodes.
func (s *Session) Len() int {
	return len(s.nodes)
}

// Name returns the node name the record was attached under.
func (s *Session) Name(id uuid.UUID) (string, bool) {
	n, ok := s.nodes[id]
	if !ok {
		return "", false
	}
	return n.name, true
}

// Extras returns a copy of the node's working record.
func (s *Session) Extras(id uuid.UUID) (physics.Extras, bool) {
	n, ok := s.nodes[id]
	if !ok {
		return physics.Extras{}, false
	}
	return n.extras, true
}

// Bag returns the node's current property bag. The bag is live derived
// state: it always reflects the last edit.
func (s *Session) Bag(id uuid.UUID) (physics.PropertyBag, bool) {
	n, ok := s.nodes[id]
	if !ok {
		return nil, false
	}
	return n.bag, true
}

func (s *Session) edit(id uuid.UUID, apply func(*physics.Extras)) error {
	n, ok := s.nodes[id]
	if !ok {
		return fmt.Errorf("authoring: unknown node %s", id)
	}
	apply(&n.extras)
	s.sync(id, n)
	return nil
}

func (s *Session) sync(id uuid.UUID, n *nodeState) {
	physics.SyncBag(n.extras, n.bag)
	if s.onSync != nil {
		s.onSync(id, n.bag)
	}
}

func (s *Session) SetBody(id uuid.UUID, b physics.Body) error {
	return s.edit(id, func(e *physics.Extras) { e.Body = b })
}

func (s *Session) SetShape(id uuid.UUID, sh physics.Shape) error {
	return s.edit(id, func(e *physics.Extras) { e.Shape = sh })
}

// SetMass clamps to MinMass, matching the input widget.
func (s *Session) SetMass(id uuid.UUID, mass float32) error {
	return s.edit(id, func(e *physics.Extras) { e.Mass = clampMin(mass, MinMass) })
}

func (s *Session) SetGravityScale(id uuid.UUID, scale float32) error {
	return s.edit(id, func(e *physics.Extras) { e.GravityScale = scale })
}

func (s *Session) SetLinearDamping(id uuid.UUID, d float32) error {
	return s.edit(id, func(e *physics.Extras) { e.LinearDamping = clampMin(d, 0) })
}

func (s *Session) SetAngularDamping(id uuid.UUID, d float32) error {
	return s.edit(id, func(e *physics.Extras) { e.AngularDamping = clampMin(d, 0) })
}

func (s *Session) SetTrigger(id uuid.UUID, trigger bool) error {
	return s.edit(id, func(e *physics.Extras) { e.IsTrigger = trigger })
}

func (s *Session) SetLayer(id uuid.UUID, layer uint32) error {
	return s.edit(id, func(e *physics.Extras) { e.Layer = layer })
}

func (s *Session) SetMask(id uuid.UUID, mask uint32) error {
	return s.edit(id, func(e *physics.Extras) { e.Mask = mask })
}

func (s *Session) SetMaterial(id uuid.UUID, material string) error {
	return s.edit(id, func(e *physics.Extras) { e.Material = material })
}

func clampMin[T constraints.Ordered](v, low T) T {
	if v < low {
		return low
	}
	return v
}
