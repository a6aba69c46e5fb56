package game

// DefaultChain is the escalating reward chain climbed with consecutive
// correct answers.
var DefaultChain = []int{1, 2, 5, 10, 20, 50, 100}

// Ladder tracks the banking chain for the current round plus the money
// already banked. chainIndex is -1 while the chain is unclimbed; it never
// rests at the top rung, because reaching the top auto-banks and resets in
// the same step.
type Ladder struct {
	chain      []int
	chainIndex int
	roundTotal int
	total      int
}

// NewLadder creates an unclimbed ladder over the given chain values. A nil
// or empty chain falls back to DefaultChain.
func NewLadder(chain []int) *Ladder {
	if len(chain) == 0 {
		chain = DefaultChain
	}
	return &Ladder{chain: chain, chainIndex: -1}
}

// Chain returns the configured chain values.
func (l *Ladder) Chain() []int { return l.chain }

// ChainIndex returns the current rung, -1 when unclimbed.
func (l *Ladder) ChainIndex() int {
	l.normalize()
	return l.chainIndex
}

// CurrentValue returns the unbanked value at the current rung, 0 when
// unclimbed.
func (l *Ladder) CurrentValue() int {
	l.normalize()
	if l.chainIndex < 0 {
		return 0
	}
	return l.chain[l.chainIndex]
}

// RoundTotal returns the money banked this round.
func (l *Ladder) RoundTotal() int { return l.roundTotal }

// Total returns the money banked over the whole game. It only ever grows.
func (l *Ladder) Total() int { return l.total }

// normalize self-heals an out-of-range index back to the unclimbed state
// before it is used. A malformed resume must never crash the chain math.
func (l *Ladder) normalize() {
	if l.chainIndex < -1 || l.chainIndex >= len(l.chain) {
		l.chainIndex = -1
	}
}

// OnCorrect advances the chain one rung. At the top rung it instead credits
// the rung value and resets, atomically, and reports autoBanked=true along
// with the credited amount.
func (l *Ladder) OnCorrect() (amount int, autoBanked bool) {
	l.normalize()
	top := len(l.chain) - 1
	if l.chainIndex == top {
		amount = l.chain[top]
		l.total += amount
		l.roundTotal += amount
		l.chainIndex = -1
		return amount, true
	}
	l.chainIndex++
	return 0, false
}

// OnWrong forfeits the unbanked run unconditionally.
func (l *Ladder) OnWrong() {
	l.chainIndex = -1
}

// Bank credits the current rung value and resets the chain. A no-op when
// there is nothing to bank.
func (l *Ladder) Bank() (amount int, ok bool) {
	amount = l.CurrentValue()
	if amount == 0 {
		return 0, false
	}
	l.total += amount
	l.roundTotal += amount
	l.chainIndex = -1
	return amount, true
}

// ResetChain clears the unbanked run and the round total. Used when a new
// questions round starts; banked totals are untouched.
func (l *Ladder) ResetChain() {
	l.chainIndex = -1
	l.roundTotal = 0
}

// ClearRun clears only the unbanked run, keeping the round total. Used when
// voting starts: whatever was not banked is lost.
func (l *Ladder) ClearRun() {
	l.chainIndex = -1
}
