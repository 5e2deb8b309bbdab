// Package padding negotiates the pixel padding reserved on each scale.
//
// Every element (a mark view) states, for the scale it uses in each
// geometric role, how many pixels it needs kept free at both ends of the
// axis. The negotiated padding of a scale in a role is the largest demand
// currently registered for it. Demands are stored per role in an arena
// indexed by [scale.ID], each slot holding the demand set keyed by element.
package padding

import (
	"math"
	"sort"

	"github.com/google/uuid"

	"github.com/sandutsar/bqplot/pkg/event"
	"github.com/sandutsar/bqplot/pkg/scale"
)

// Direction is a geometric role.
type Direction int

const (
	Horizontal Direction = iota
	Vertical
)

func (d Direction) String() string {
	if d == Vertical {
		return "vertical"
	}
	return "horizontal"
}

// ElementID identifies one view of a mark. Two views of the same mark have
// different element IDs.
type ElementID string

// NewElementID returns an element ID for a fresh view of markID.
func NewElementID(markID string) ElementID {
	return ElementID(markID + "_" + uuid.NewString())
}

// slot holds the demands for one scale in one role. A nil slot means no
// demand is registered.
type slot map[ElementID]float64

// Negotiator aggregates padding demands. It is not safe for concurrent use.
type Negotiator struct {
	demands [2][]slot
	padding [2][]float64

	// Updated fires after every recomputation, whether or not a value
	// changed. Listeners coalesce redundant notifications.
	Updated event.Signal[*Negotiator]
}

// New returns an empty negotiator.
func New() *Negotiator {
	return &Negotiator{}
}

func validDirection(dir Direction) bool { return dir == Horizontal || dir == Vertical }

// Register records that el needs px pixels on scale id in role dir,
// replacing any earlier demand of el for that scale and role.
func (n *Negotiator) Register(el ElementID, dir Direction, id scale.ID, px float64) {
	if id == scale.NoID || !validDirection(dir) {
		return
	}
	n.put(el, dir, id, px)
	n.recompute()
}

// Unregister withdraws el's demands on scale id in both roles. Unknown
// elements and scales are ignored.
func (n *Negotiator) Unregister(el ElementID, id scale.ID) {
	n.drop(el, Horizontal, id)
	n.drop(el, Vertical, id)
	n.recompute()
}

// Reassign moves el's demand in role dir from scale from to scale to. The
// old demand is withdrawn before the new one is stored so no stale entry
// remains under the previous scale.
func (n *Negotiator) Reassign(el ElementID, dir Direction, from, to scale.ID, px float64) {
	if !validDirection(dir) {
		return
	}
	n.drop(el, dir, from)
	if to != scale.NoID {
		n.put(el, dir, to, px)
	}
	n.recompute()
}

// Remove withdraws every demand of el.
func (n *Negotiator) Remove(el ElementID) {
	for dir := range n.demands {
		for id := range n.demands[dir] {
			n.drop(el, Direction(dir), scale.ID(id))
		}
	}
	n.recompute()
}

// Padding returns the negotiated padding for scale id in role dir, or 0
// when nothing is registered.
func (n *Negotiator) Padding(dir Direction, id scale.ID) float64 {
	px, _ := n.Lookup(dir, id)
	return px
}

// Lookup is like Padding but reports whether the scale has an entry.
func (n *Negotiator) Lookup(dir Direction, id scale.ID) (float64, bool) {
	if !validDirection(dir) || int(id) >= len(n.demands[dir]) || n.demands[dir][id] == nil {
		return 0, false
	}
	return n.padding[dir][id], true
}

// Scales returns the scales with an entry in role dir, in ID order.
func (n *Negotiator) Scales(dir Direction) []scale.ID {
	if !validDirection(dir) {
		return nil
	}
	var ids []scale.ID
	for id, s := range n.demands[dir] {
		if s != nil {
			ids = append(ids, scale.ID(id))
		}
	}
	return ids
}

// Demands returns the elements registered on scale id in role dir, sorted.
func (n *Negotiator) Demands(dir Direction, id scale.ID) []ElementID {
	if !validDirection(dir) || int(id) >= len(n.demands[dir]) {
		return nil
	}
	var els []ElementID
	for el := range n.demands[dir][id] {
		els = append(els, el)
	}
	sort.Slice(els, func(i, j int) bool { return els[i] < els[j] })
	return els
}

func (n *Negotiator) put(el ElementID, dir Direction, id scale.ID, px float64) {
	if math.IsNaN(px) {
		px = 0
	}
	arena := n.demands[dir]
	if int(id) >= len(arena) {
		arena = append(arena, make([]slot, int(id)+1-len(arena))...)
		n.demands[dir] = arena
	}
	if arena[id] == nil {
		arena[id] = make(slot)
	}
	arena[id][el] = px
}

func (n *Negotiator) drop(el ElementID, dir Direction, id scale.ID) {
	arena := n.demands[dir]
	if int(id) >= len(arena) || arena[id] == nil {
		return
	}
	delete(arena[id], el)
	if len(arena[id]) == 0 {
		arena[id] = nil
	}
}

// recompute rebuilds every negotiated value from the stored demands.
func (n *Negotiator) recompute() {
	for dir := range n.demands {
		arena := n.demands[dir]
		padding := make([]float64, len(arena))
		for id, s := range arena {
			best := 0.0
			for _, px := range s {
				best = math.Max(best, px)
			}
			padding[id] = best
		}
		n.padding[dir] = padding
	}
	n.Updated.Emit(n)
}
