package sim

import (
	"fmt"
	"strings"
)

// Kind is the closed set of entity types on the map.
type Kind uint8

const (
	KindPlayer Kind = iota
	KindIsland
	KindShip
	KindMine
	KindHQ
	KindMonster
)

// Kinds lists every kind in declaration order.
var Kinds = []Kind{KindPlayer, KindIsland, KindShip, KindMine, KindHQ, KindMonster}

// String returns the lower-case kind name.
func (k Kind) String() string {
	switch k {
	case KindPlayer:
		return "player"
	case KindIsland:
		return "island"
	case KindShip:
		return "ship"
	case KindMine:
		return "mine"
	case KindHQ:
		return "hq"
	case KindMonster:
		return "monster"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Valid reports whether k is one of the declared kinds.
func (k Kind) Valid() bool {
	return k <= KindMonster
}

// IsMover reports whether entities of this kind are driven by the resolver.
func (k Kind) IsMover() bool {
	return k == KindShip || k == KindMonster
}

// IsEnemy reports whether the kind counts as hostile to the player.
func (k Kind) IsEnemy() bool {
	return k.IsMover()
}

// ParseKind converts a kind name back to a Kind.
func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds {
		if strings.EqualFold(s, k.String()) {
			return k, nil
		}
	}
	return 0, fmt.Errorf("sim: unknown kind %q", s)
}

// Intent is a one-step velocity. Each component is -1, 0 or 1 and at least
// one of them is non-zero.
type Intent struct {
	DX, DY int
}

// Valid reports whether the intent is a legal non-zero unit step.
func (in Intent) Valid() bool {
	if in.DX < -1 || in.DX > 1 || in.DY < -1 || in.DY > 1 {
		return false
	}
	return in.DX != 0 || in.DY != 0
}

// String returns "<dx,dy>".
func (in Intent) String() string {
	return fmt.Sprintf("<%d,%d>", in.DX, in.DY)
}

// EntityID identifies an entity for its whole lifetime. It never depends on
// position or on an index into a collection.
type EntityID uint32

// Entity is one object on the map.
type Entity struct {
	ID     EntityID
	Pos    Position
	Kind   Kind
	Alive  bool
	Intent *Intent // nil for static entities
}

// NewEntity creates an alive entity without intent.
func NewEntity(id EntityID, kind Kind, pos Position) Entity {
	return Entity{ID: id, Kind: kind, Pos: pos, Alive: true}
}

// WithIntent returns a copy of e moving with the given intent.
func (e Entity) WithIntent(in Intent) Entity {
	e.Intent = &in
	return e
}

// IsMover reports whether the entity has an intent this tick.
func (e Entity) IsMover() bool {
	return e.Intent != nil
}

// Clone returns a copy that shares no memory with e.
func (e Entity) Clone() Entity {
	if e.Intent != nil {
		in := *e.Intent
		e.Intent = &in
	}
	return e
}

// String returns a compact description used in logs and test failures.
func (e Entity) String() string {
	intent := "-"
	if e.Intent != nil {
		intent = e.Intent.String()
	}
	return fmt.Sprintf("#%d %s@%s %s", e.ID, e.Kind, e.Pos, intent)
}

// IDSource hands out entity identifiers. The zero value starts at 1 so that
// zero can mean "no entity".
type IDSource struct {
	last EntityID
}

// Next returns a fresh identifier.
func (s *IDSource) Next() EntityID {
	s.last++
	return s.last
}

// CloneAll deep-copies a collection.
func CloneAll(entities []Entity) []Entity {
	out := make([]Entity, len(entities))
	for i, e := range entities {
		out[i] = e.Clone()
	}
	return out
}

// Find returns the entity with the given id.
func Find(entities []Entity, id EntityID) (Entity, bool) {
	for _, e := range entities {
		if e.ID == id {
			return e, true
		}
	}
	return Entity{}, false
}

// CountKind returns the number of alive entities of kind k.
func CountKind(entities []Entity, k Kind) int {
	n := 0
	for _, e := range entities {
		if e.Alive && e.Kind == k {
			n++
		}
	}
	return n
}
