package game

import "strings"

// NoActor is the sentinel returned when no player can act.
const NoActor = "Nadie"

// Player holds the cumulative stats for one contestant. The display name
// doubles as the identity: there is no separate player ID.
type Player struct {
	Name       string
	Correct    int
	Wrong      int
	BankAmount int
	BankCount  int
	Connected  bool
	Eliminated bool
}

// CleanName normalizes a raw display name into the canonical identity:
// trimmed and uppercased. Case-insensitive collisions therefore resolve to
// the same player record.
func CleanName(raw string) string {
	return strings.ToUpper(strings.TrimSpace(raw))
}

// Roster is the ordered set of players, keyed by canonical name. Join order
// is preserved; eliminated players stay in the slice so their stats survive,
// but drop out of every active view.
type Roster struct {
	players []*Player
	byName  map[string]*Player
}

func NewRoster() *Roster {
	return &Roster{byName: make(map[string]*Player)}
}

// Add creates a new player record. It returns false if the name is already
// taken, eliminated or not.
func (r *Roster) Add(name string) (*Player, bool) {
	if _, exists := r.byName[name]; exists {
		return nil, false
	}
	p := &Player{Name: name, Connected: true}
	r.players = append(r.players, p)
	r.byName[name] = p
	return p, true
}

// Get returns the player record for name, nil if unknown.
func (r *Roster) Get(name string) *Player {
	return r.byName[name]
}

// Active returns the names of non-eliminated players in join order.
func (r *Roster) Active() []string {
	names := make([]string, 0, len(r.players))
	for _, p := range r.players {
		if !p.Eliminated {
			names = append(names, p.Name)
		}
	}
	return names
}

// ActivePlayers returns the non-eliminated player records in join order.
func (r *Roster) ActivePlayers() []*Player {
	out := make([]*Player, 0, len(r.players))
	for _, p := range r.players {
		if !p.Eliminated {
			out = append(out, p)
		}
	}
	return out
}

// ActiveCount returns the number of non-eliminated players.
func (r *Roster) ActiveCount() int {
	n := 0
	for _, p := range r.players {
		if !p.Eliminated {
			n++
		}
	}
	return n
}

// IsActive reports whether name belongs to a non-eliminated player.
func (r *Roster) IsActive(name string) bool {
	p := r.byName[name]
	return p != nil && !p.Eliminated
}

// Eliminate marks the named player as out of the game. Returns false if the
// name is unknown or already eliminated.
func (r *Roster) Eliminate(name string) bool {
	p := r.byName[name]
	if p == nil || p.Eliminated {
		return false
	}
	p.Eliminated = true
	return true
}

// Strongest returns the active player with the most correct answers, ties
// broken by join order. Empty string when the roster has no active players.
// Used as the tiebreak decision maker when a vote ends level.
func (r *Roster) Strongest() string {
	var best *Player
	for _, p := range r.players {
		if p.Eliminated {
			continue
		}
		if best == nil || p.Correct > best.Correct {
			best = p
		}
	}
	if best == nil {
		return ""
	}
	return best.Name
}
