package game

import "slices"

// TurnOrder maintains the rotation of active players. The index always
// stays below the list length after any mutation; an empty order yields the
// NoActor sentinel instead of an error.
type TurnOrder struct {
	names []string
	index int
}

func NewTurnOrder() *TurnOrder {
	return &TurnOrder{}
}

// Names returns the rotation sequence.
func (t *TurnOrder) Names() []string {
	return slices.Clone(t.names)
}

// Len returns the number of players in the rotation.
func (t *TurnOrder) Len() int { return len(t.names) }

// Current returns the name of the player whose turn it is, or NoActor when
// the rotation is empty.
func (t *TurnOrder) Current() string {
	if len(t.names) == 0 {
		return NoActor
	}
	return t.names[t.index%len(t.names)]
}

// Advance moves to the next player in the rotation.
func (t *TurnOrder) Advance() {
	if len(t.names) == 0 {
		return
	}
	t.index = (t.index + 1) % len(t.names)
}

// Append adds a player to the end of the rotation.
func (t *TurnOrder) Append(name string) {
	t.names = append(t.names, name)
}

// Remove filters a player out of the rotation. If the index falls out of
// range it resets to 0; we accept the discontinuity instead of trying to
// preserve whose turn it was.
func (t *TurnOrder) Remove(name string) {
	t.names = slices.DeleteFunc(t.names, func(n string) bool { return n == name })
	if t.index >= len(t.names) {
		t.index = 0
	}
}

// Rebuild replaces the rotation with a new sequence and restarts it from
// the front. The session uses this after an elimination to put the
// strongest survivor first.
func (t *TurnOrder) Rebuild(names []string) {
	t.names = slices.Clone(names)
	t.index = 0
}
