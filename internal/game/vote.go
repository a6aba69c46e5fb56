package game

import (
	"errors"
	"sort"
)

var ErrAlreadyVoted = errors.New("voter already cast a vote this cycle")

// Vote is a single cast vote. Order of arrival is kept for display, but
// never affects resolution.
type Vote struct {
	Voter  string `json:"voter"`
	Target string `json:"target"`
}

// VoteResultType distinguishes a clear outcome from a tie.
type VoteResultType string

const (
	VoteClear VoteResultType = "clear"
	VoteTie   VoteResultType = "tie"
)

// VoteResult is the resolved outcome of one voting cycle. A clear outcome
// names its single target in Target as well as Targets; on a tie,
// DecisionMaker names the player entitled to break it.
type VoteResult struct {
	Type          VoteResultType `json:"type"`
	Target        string         `json:"target,omitempty"`
	Targets       []string       `json:"targets"`
	Count         int            `json:"count"`
	DecisionMaker string         `json:"decisionMaker,omitempty"`
}

// Ballot collects one vote per active player per voting cycle.
type Ballot struct {
	byVoter map[string]string
	order   []Vote
}

func NewBallot() *Ballot {
	return &Ballot{byVoter: make(map[string]string)}
}

// Cast records a vote. A second vote from the same voter is rejected, not
// overwritten.
func (b *Ballot) Cast(voter, target string) error {
	if _, dup := b.byVoter[voter]; dup {
		return ErrAlreadyVoted
	}
	b.byVoter[voter] = target
	b.order = append(b.order, Vote{Voter: voter, Target: target})
	return nil
}

// CastCount returns how many votes have been cast this cycle.
func (b *Ballot) CastCount() int { return len(b.byVoter) }

// Votes returns the cast votes in arrival order.
func (b *Ballot) Votes() []Vote {
	out := make([]Vote, len(b.order))
	copy(out, b.order)
	return out
}

// Tally returns target -> vote count.
func (b *Ballot) Tally() map[string]int {
	counts := make(map[string]int, len(b.byVoter))
	for _, target := range b.byVoter {
		counts[target]++
	}
	return counts
}

// Resolve computes the outcome once every active player has voted; it
// returns nil before that. The result is a pure function of the accumulated
// votes: identical vote multisets resolve identically regardless of arrival
// order (tied targets are sorted).
func (b *Ballot) Resolve(activePlayers int, tiebreaker string) *VoteResult {
	if activePlayers == 0 || len(b.byVoter) < activePlayers {
		return nil
	}

	counts := b.Tally()
	max := 0
	for _, c := range counts {
		if c > max {
			max = c
		}
	}
	var leaders []string
	for target, c := range counts {
		if c == max {
			leaders = append(leaders, target)
		}
	}
	sort.Strings(leaders)

	if len(leaders) == 1 {
		return &VoteResult{Type: VoteClear, Target: leaders[0], Targets: leaders, Count: max}
	}
	return &VoteResult{Type: VoteTie, Targets: leaders, Count: max, DecisionMaker: tiebreaker}
}

// Reset clears the ballot for a new cycle.
func (b *Ballot) Reset() {
	b.byVoter = make(map[string]string)
	b.order = nil
}
