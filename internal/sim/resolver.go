package sim

import "slices"

// EventKind classifies what happened to a mover during one pass.
type EventKind uint8

const (
	EventMoved      EventKind = iota + 1 // Stepped into an empty cell
	EventBounced                         // Destination off the grid, new intent, settled in place
	EventWaiting                         // Destination held by another pending mover
	EventRammed                          // Destroyed the settled obstacle and took its cell
	EventDestroyed                       // Destroyed by the settled obstacle
	EventRedirected                      // New intent, stays pending
	EventStalled                         // Forced to settle by a stalemate
)

// String returns the event name.
func (k EventKind) String() string {
	switch k {
	case EventMoved:
		return "moved"
	case EventBounced:
		return "bounced"
	case EventWaiting:
		return "waiting"
	case EventRammed:
		return "rammed"
	case EventDestroyed:
		return "destroyed"
	case EventRedirected:
		return "redirected"
	case EventStalled:
		return "stalled"
	default:
		return "unknown"
	}
}

// Event records one decision taken for a mover.
type Event struct {
	Pass       int
	Kind       EventKind
	Entity     EntityID
	EntityKind Kind
	Other      EntityID // Obstacle involved, zero when none
	OtherKind  Kind
	Verdict    Verdict // Set for Rammed, Destroyed and Redirected
	From       Position
	To         Position
}

// TickResult is the outcome of resolving one tick.
type TickResult struct {
	// Entities is the new collection: statics in input order, then movers in
	// the order they settled, then any entities that arrived dead.
	Entities []Entity

	// Destroyed lists every entity removed this tick, in removal order.
	Destroyed []Entity

	Events     []Event
	Passes     int
	Stalemate  bool
	GameEnding bool // Player or HQ was destroyed
}

// Resolver moves every entity with an intent by one step, settling
// conflicts through the outcome table. It is not safe for concurrent use;
// each call to Resolve owns its working sets for the duration of the call.
type Resolver struct {
	grid   Grid
	rnd    Random
	policy DirectionPolicy
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithDirectionPolicy replaces the random re-roll policy.
func WithDirectionPolicy(p DirectionPolicy) Option {
	return func(r *Resolver) {
		r.policy = p
	}
}

// NewResolver creates a resolver for the given grid. rnd feeds the outcome
// table and, unless overridden, the direction policy.
func NewResolver(grid Grid, rnd Random, opts ...Option) *Resolver {
	r := &Resolver{
		grid:   grid,
		rnd:    rnd,
		policy: NewRandomDirections(rnd),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve runs one tick over entities. The input slice is not modified.
//
// Movers are processed in input order, pass after pass. A pass that does not
// shrink the pending set ends the tick in a stalemate, so a tick with n
// movers takes at most n passes.
func (r *Resolver) Resolve(entities []Entity) (TickResult, error) {
	t := &tick{r: r}
	if err := t.partition(entities); err != nil {
		return TickResult{}, err
	}

	for len(t.pending) > 0 {
		before := len(t.pending)
		t.res.Passes++
		if err := t.pass(); err != nil {
			return TickResult{}, err
		}
		if len(t.pending) == before {
			t.stalemate()
			break
		}
	}

	if cells := Overlaps(t.settled); len(cells) > 0 {
		return TickResult{}, invariantf("resolver", "cells %v hold more than one entity after resolution", cells)
	}

	t.res.Entities = append(t.settled, t.wreckage...)
	return t.res, nil
}

// tick holds the working sets of a single Resolve call.
type tick struct {
	r        *Resolver
	settled  []Entity
	pending  []Entity
	wreckage []Entity
	res      TickResult
}

func (t *tick) partition(entities []Entity) error {
	if cells := Overlaps(entities); len(cells) > 0 {
		return invariantf("resolver", "cells %v hold more than one entity at tick start", cells)
	}

	t.settled = make([]Entity, 0, len(entities))
	for _, e := range entities {
		e = e.Clone()
		switch {
		case !e.Alive:
			t.wreckage = append(t.wreckage, e)
		case e.Intent == nil:
			t.settled = append(t.settled, e)
		case !e.Kind.IsMover():
			return invariantf("resolver", "%s has an intent but %s cannot move", e, e.Kind)
		case !e.Intent.Valid():
			return invariantf("resolver", "%s has malformed intent %s", e, e.Intent)
		default:
			t.pending = append(t.pending, e)
		}
	}
	return nil
}

// pass attempts one step for every pending mover. Movers still waiting are
// collected into a fresh pending set; the ones not yet visited this pass
// remain visible as pending obstacles.
func (t *tick) pass() error {
	queue := t.pending
	t.pending = make([]Entity, 0, len(queue))

	for i, e := range queue {
		unvisited := queue[i+1:]
		dest := e.Pos.Add(*e.Intent)

		switch {
		case !t.r.grid.Contains(dest):
			t.reroll(&e)
			t.emit(Event{Kind: EventBounced, Entity: e.ID, EntityKind: e.Kind, From: e.Pos, To: e.Pos})
			t.settled = append(t.settled, e)

		case IsOccupied(t.pending, dest) || IsOccupied(unvisited, dest):
			t.emit(Event{Kind: EventWaiting, Entity: e.ID, EntityKind: e.Kind, From: e.Pos, To: e.Pos})
			t.pending = append(t.pending, e)

		default:
			if err := t.step(e, dest); err != nil {
				return err
			}
		}
	}
	return nil
}

// step moves e into dest, resolving against the settled set.
func (t *tick) step(e Entity, dest Position) error {
	switch n := OccupantsAt(t.settled, dest); {
	case n == 0:
		t.emit(Event{Kind: EventMoved, Entity: e.ID, EntityKind: e.Kind, From: e.Pos, To: dest})
		e.Pos = dest
		t.settled = append(t.settled, e)
		return nil
	case n > 1:
		return invariantf("collision", "%d settled entities occupy %s", n, dest)
	}

	idx := slices.IndexFunc(t.settled, func(o Entity) bool { return o.Alive && o.Pos == dest })
	obstacle := t.settled[idx]

	verdict, err := Decide(e.Kind, obstacle.Kind, t.r.rnd)
	if err != nil {
		return err
	}

	ev := Event{
		Entity:     e.ID,
		EntityKind: e.Kind,
		Other:      obstacle.ID,
		OtherKind:  obstacle.Kind,
		Verdict:    verdict,
		From:       e.Pos,
	}

	switch verdict {
	case CrasheeDestroyed:
		t.settled = slices.Delete(t.settled, idx, idx+1)
		t.destroy(obstacle)
		if EndsGame(obstacle.Kind) {
			t.res.GameEnding = true
		}
		ev.Kind, ev.To = EventRammed, dest
		e.Pos = dest
		t.settled = append(t.settled, e)

	case MoverDestroyed:
		ev.Kind, ev.To = EventDestroyed, e.Pos
		t.destroy(e)

	case MoverChangesDirection:
		ev.Kind, ev.To = EventRedirected, e.Pos
		t.reroll(&e)
		t.pending = append(t.pending, e)
	}

	t.emit(ev)
	return nil
}

// stalemate settles every remaining mover in place with a fresh intent.
func (t *tick) stalemate() {
	t.res.Stalemate = true
	for _, e := range t.pending {
		t.reroll(&e)
		t.emit(Event{Kind: EventStalled, Entity: e.ID, EntityKind: e.Kind, From: e.Pos, To: e.Pos})
		t.settled = append(t.settled, e)
	}
	t.pending = nil
}

func (t *tick) reroll(e *Entity) {
	in := t.r.policy.Reroll()
	e.Intent = &in
}

func (t *tick) destroy(e Entity) {
	e.Alive = false
	t.res.Destroyed = append(t.res.Destroyed, e)
}

func (t *tick) emit(ev Event) {
	ev.Pass = t.res.Passes
	t.res.Events = append(t.res.Events, ev)
}
