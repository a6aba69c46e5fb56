package game

import (
	"context"
	"errors"
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
)

var (
	ErrInvalidName        = errors.New("empty player name")
	ErrGameStarted        = errors.New("game already started, late joins are blocked")
	ErrUnknownPhase       = errors.New("unknown phase")
	ErrNotAPlayer         = errors.New("not an active player")
	ErrUnknownPlayer      = errors.New("unknown player")
	ErrNotEnoughFinalists = errors.New("finale needs two active players")
	errCountdownFinished  = errors.New("countdown finished")
)

// Rules are the tunable parameters of a session.
type Rules struct {
	Chain      []int         // banking chain values, low to high
	RoundTime  int           // base countdown seconds for round 1
	MinTime    int           // countdown floor as rounds shrink it
	IntroDelay time.Duration // pause between final_intro and penalty
}

// DefaultRules returns the classic configuration.
func DefaultRules() Rules {
	return Rules{
		Chain:      DefaultChain,
		RoundTime:  20,
		MinTime:    10,
		IntroDelay: 4 * time.Second,
	}
}

// Session is the authoritative game state machine. It is the sole owner of
// all mutable game state; every public operation takes the session lock,
// mutates to completion, and broadcasts the resulting view before the next
// event is handled. The transport layer holds no writable references.
type Session struct {
	mu      sync.Mutex
	logger  *log.Logger
	clock   quartz.Clock
	emitter Emitter
	rules   Rules
	rng     *rand.Rand
	catalog []Question

	phase      Phase
	round      int
	roster     *Roster
	turns      *TurnOrder
	ladder     *Ladder
	picker     *Picker
	ballot     *Ballot
	voteResult *VoteResult
	duel       *Duel
	duelPaid   bool
	question   *Question

	timerSecs       int
	countdownCancel context.CancelFunc
	introTimer      *quartz.Timer
}

// NewSession creates a fresh session in the waiting phase.
func NewSession(logger *log.Logger, clock quartz.Clock, emitter Emitter, rules Rules, catalog []Question, rng *rand.Rand) *Session {
	s := &Session{
		logger:  logger.WithPrefix("session"),
		clock:   clock,
		emitter: emitter,
		rules:   rules,
		rng:     rng,
		catalog: catalog,
	}
	s.resetLocked()
	return s
}

// Register creates a new player, or rebinds a known identity on reconnect.
// created=true means a brand new record; created=false means a rejoin, in
// which case the caller should replay the full state to that connection.
// Unknown names are refused once the game has progressed past the first
// waiting phase.
func (s *Session) Register(rawName string) (created bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	name := CleanName(rawName)
	if name == "" {
		return false, ErrInvalidName
	}

	if p := s.roster.Get(name); p != nil {
		// Same identity on a new connection: rebind, even if the previous
		// device still looks connected. The latest device wins.
		p.Connected = true
		s.logger.Info("player rejoined", "player", name)
		s.broadcastRosterLocked()
		return false, nil
	}

	if s.round > 1 || s.phase != PhaseWaiting {
		s.logger.Warn("late join refused", "player", name, "phase", s.phase, "round", s.round)
		return false, ErrGameStarted
	}

	s.roster.Add(name)
	s.turns.Append(name)
	s.logger.Info("player registered", "player", name, "players", s.roster.ActiveCount())
	s.broadcastRosterLocked()
	return true, nil
}

// MarkDetached flags a player's connection as lost. The player stays in the
// game and keeps their turn position; only Eliminate removes players.
func (s *Session) MarkDetached(rawName string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	name := CleanName(rawName)
	p := s.roster.Get(name)
	if p == nil || !p.Connected {
		return
	}
	p.Connected = false
	s.logger.Info("player detached", "player", name)
	s.emitter.Broadcast(Event{EventRankingUpdated, s.rankingLocked()})
}

// SetPhase handles a moderator phase command. Unknown phases are rejected.
// The penalty phase is intercepted: the two remaining players are frozen
// into a duel, the game shows final_intro, and the session itself enters
// penalty after the configured delay.
func (s *Session) SetPhase(phase Phase) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !phase.Valid() {
		return ErrUnknownPhase
	}

	if phase == PhasePenalty {
		return s.beginFinaleLocked()
	}

	s.stopCountdownLocked()
	s.stopIntroLocked()
	s.phase = phase
	s.logger.Info("phase changed", "phase", phase)

	switch phase {
	case PhaseQuestions:
		s.ladder.ResetChain()
		s.drawQuestionLocked()
		s.startCountdownLocked()
	case PhaseVoting:
		s.ladder.ClearRun()
		s.ballot.Reset()
		s.voteResult = nil
		s.emitter.Broadcast(Event{EventVotesUpdated, VotesPayload{Summary: map[string]int{}, Details: []Vote{}}})
		s.emitter.Broadcast(Event{EventVotingResult, VotingResultPayload{Result: nil}})
	}

	s.broadcastStateLocked()
	return nil
}

// beginFinaleLocked snapshots the two remaining players into a duel and
// schedules the delayed penalty entry.
func (s *Session) beginFinaleLocked() error {
	finalists := s.roster.Active()
	if len(finalists) < 2 {
		return ErrNotEnoughFinalists
	}

	s.stopCountdownLocked()
	s.stopIntroLocked()
	s.duel = NewDuel(finalists[0], finalists[1])
	s.duelPaid = false
	s.phase = PhaseFinalIntro
	s.logger.Info("finale announced", "p1", finalists[0], "p2", finalists[1])
	s.broadcastStateLocked()

	s.introTimer = s.clock.AfterFunc(s.rules.IntroDelay, s.enterPenalty)
	return nil
}

// enterPenalty fires from the intro timer; it re-checks under the lock that
// the intro is still pending, since a reset or manual phase change may have
// cancelled the finale in the meantime.
func (s *Session) enterPenalty() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != PhaseFinalIntro || s.duel == nil {
		return
	}
	s.introTimer = nil
	s.phase = PhasePenalty
	s.drawQuestionLocked()
	s.logger.Info("penalty shootout started", "first", s.duel.CurrentName())
	s.broadcastStateLocked()
}

// JudgeAnswer records the moderator's verdict for the acting player. While
// the finale is active it drives the duel; otherwise it updates stats, runs
// the banking chain, draws the next question and rotates the turn. A decided
// duel keeps capturing verdicts so they hit its terminal guard instead of
// leaking into the round state.
func (s *Session) JudgeAnswer(correct bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.duel != nil && (s.phase == PhasePenalty || s.phase == PhaseFinalIntro || s.phase == PhaseFinalResult) {
		return s.judgePenaltyLocked(correct)
	}

	actor := s.turns.Current()
	if p := s.roster.Get(actor); p != nil {
		if correct {
			p.Correct++
		} else {
			p.Wrong++
		}
	}

	if correct {
		if amount, auto := s.ladder.OnCorrect(); auto {
			s.creditLocked(actor, amount)
			s.emitter.Broadcast(Event{EventBanked, BankedPayload{Player: actor, Amount: amount, Auto: true}})
			s.logger.Info("chain topped out, auto-banked", "player", actor, "amount", amount)
		}
	} else {
		s.ladder.OnWrong()
	}

	s.drawQuestionLocked()
	s.turns.Advance()
	s.broadcastStateLocked()
	return nil
}

func (s *Session) judgePenaltyLocked(correct bool) error {
	if s.duel == nil {
		return ErrNotEnoughFinalists
	}
	if err := s.duel.Judge(correct); err != nil {
		return err
	}

	if s.duel.Winner != "" {
		s.phase = PhaseFinalResult
		if !s.duelPaid {
			s.duelPaid = true
			s.logger.Info("finale decided", "winner", s.duel.Winner, "amount", s.ladder.Total())
			s.emitter.Broadcast(Event{EventFinalWinner, FinalWinnerPayload{
				Name:   s.duel.Winner,
				Amount: s.ladder.Total(),
			}})
		}
		s.broadcastStateLocked()
		return nil
	}

	s.drawQuestionLocked()
	s.broadcastStateLocked()
	return nil
}

// ManualBank credits the current chain value to the acting player. A no-op
// when there is nothing on the chain.
func (s *Session) ManualBank() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	amount, ok := s.ladder.Bank()
	if !ok {
		return nil
	}
	actor := s.currentActorLocked()
	s.creditLocked(actor, amount)
	s.logger.Info("banked", "player", actor, "amount", amount)
	s.emitter.Broadcast(Event{EventBanked, BankedPayload{Player: actor, Amount: amount}})
	s.broadcastStateLocked()
	return nil
}

// creditLocked books a banked amount onto a player's stats.
func (s *Session) creditLocked(name string, amount int) {
	if p := s.roster.Get(name); p != nil {
		p.BankAmount += amount
		p.BankCount++
	}
}

// CastVote records one player's vote for this cycle. The voter must be a
// registered active player and must not have voted yet. When the last
// active player votes, the result is resolved and broadcast exactly once.
func (s *Session) CastVote(voter, target string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	voter = CleanName(voter)
	if !s.roster.IsActive(voter) {
		return ErrNotAPlayer
	}
	if err := s.ballot.Cast(voter, CleanName(target)); err != nil {
		return err
	}

	s.logger.Info("vote cast", "voter", voter, "votes", s.ballot.CastCount(), "needed", s.roster.ActiveCount())
	s.emitter.Broadcast(Event{EventVotesUpdated, VotesPayload{
		Summary: s.ballot.Tally(),
		Details: s.ballot.Votes(),
	}})

	if s.voteResult == nil {
		if res := s.ballot.Resolve(s.roster.ActiveCount(), s.roster.Strongest()); res != nil {
			s.voteResult = res
			s.logger.Info("vote resolved", "type", res.Type, "targets", res.Targets, "count", res.Count)
			s.emitter.Broadcast(Event{EventVotingResult, VotingResultPayload{Result: res}})
		}
	}
	return nil
}

// Eliminate removes a player from every active roster, clears the vote
// state, advances the round counter, re-derives the turn order and returns
// the game to the waiting phase.
func (s *Session) Eliminate(rawName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	name := CleanName(rawName)
	if !s.roster.Eliminate(name) {
		return ErrUnknownPlayer
	}

	// Strongest survivor leads the next round; ties keep join order.
	active := s.roster.ActivePlayers()
	sort.SliceStable(active, func(i, j int) bool { return active[i].Correct > active[j].Correct })
	order := make([]string, len(active))
	for i, p := range active {
		order[i] = p.Name
	}
	s.turns.Rebuild(order)

	s.ballot.Reset()
	s.voteResult = nil
	s.round++
	s.stopCountdownLocked()
	s.stopIntroLocked()
	s.phase = PhaseWaiting

	s.logger.Info("player eliminated", "player", name, "round", s.round, "remaining", len(order))
	s.emitter.Broadcast(Event{EventPlayerEliminated, EliminatedPayload{Name: name}})
	s.emitter.Broadcast(Event{EventPlayersUpdated, PlayersPayload{Players: s.roster.Active()}})
	s.broadcastStateLocked()
	return nil
}

// Reset wipes the session back to an empty waiting game.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.resetLocked()
	s.logger.Info("game reset")
	s.emitter.Broadcast(Event{EventGameReset, struct{}{}})
	s.emitter.Broadcast(Event{EventPlayersUpdated, PlayersPayload{Players: []string{}}})
	s.broadcastStateLocked()
}

func (s *Session) resetLocked() {
	s.stopCountdownLocked()
	s.stopIntroLocked()
	s.phase = PhaseWaiting
	s.round = 1
	s.roster = NewRoster()
	s.turns = NewTurnOrder()
	s.ladder = NewLadder(s.rules.Chain)
	s.picker = NewPicker(s.catalog, s.rng)
	s.ballot = NewBallot()
	s.voteResult = nil
	s.duel = nil
	s.duelPaid = false
	s.question = nil
	s.timerSecs = 0
}

// Replay returns the full current view as a sequence of events, for
// re-hydrating a single reconnecting client. It is a pure read; shared
// state is not mutated.
func (s *Session) Replay() []Event {
	s.mu.Lock()
	defer s.mu.Unlock()

	events := []Event{
		{EventPhaseChanged, PhasePayload{Phase: s.phase}},
		{EventPlayersUpdated, PlayersPayload{Players: s.roster.Active()}},
		{EventRoundUpdated, RoundPayload{Round: s.round}},
		{EventBankState, s.bankStateLocked()},
		{EventTurnUpdated, TurnPayload{Player: s.currentActorLocked()}},
		{EventRankingUpdated, s.rankingLocked()},
	}
	if s.question != nil && (s.phase == PhaseQuestions || s.phase == PhaseTimesUp || s.phase == PhasePenalty) {
		events = append(events, Event{EventQuestionUpdated, *s.question})
	}
	if s.phase == PhaseQuestions {
		events = append(events, Event{EventTimerUpdated, TimerPayload{Seconds: s.timerSecs}})
	}
	if s.phase == PhaseVoting {
		events = append(events, Event{EventVotesUpdated, VotesPayload{Summary: s.ballot.Tally(), Details: s.ballot.Votes()}})
		events = append(events, Event{EventVotingResult, VotingResultPayload{Result: s.voteResult}})
	}
	if s.duel != nil {
		events = append(events, Event{EventFinalState, *s.duel})
		if s.duel.Winner != "" {
			events = append(events, Event{EventFinalWinner, FinalWinnerPayload{Name: s.duel.Winner, Amount: s.ladder.Total()}})
		}
	}
	return events
}

// Countdown.

func (s *Session) startCountdownLocked() {
	s.stopCountdownLocked()

	secs := s.rules.RoundTime - 2*(s.round-1)
	if secs < s.rules.MinTime {
		secs = s.rules.MinTime
	}
	s.timerSecs = secs
	s.emitter.Broadcast(Event{EventTimerUpdated, TimerPayload{Seconds: secs}})

	ctx, cancel := context.WithCancel(context.Background())
	s.countdownCancel = cancel
	s.clock.TickerFunc(ctx, time.Second, func() error {
		return s.tickCountdown(ctx)
	}, "countdown")
}

// tickCountdown runs once per second through the session lock, so expiry
// can never interleave with a manual phase change. A tick that fired just
// before cancellation sees the dead context and does nothing.
func (s *Session) tickCountdown(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	s.timerSecs--
	s.emitter.Broadcast(Event{EventTimerUpdated, TimerPayload{Seconds: s.timerSecs}})
	if s.timerSecs > 0 {
		return nil
	}

	s.stopCountdownLocked()
	s.phase = PhaseTimesUp
	s.logger.Info("time's up", "round", s.round)
	s.broadcastStateLocked()
	return errCountdownFinished
}

func (s *Session) stopCountdownLocked() {
	if s.countdownCancel != nil {
		s.countdownCancel()
		s.countdownCancel = nil
	}
}

func (s *Session) stopIntroLocked() {
	if s.introTimer != nil {
		s.introTimer.Stop()
		s.introTimer = nil
	}
}

// Views.

// currentActorLocked resolves who is on the spot: the duel turn holder
// during the finale, the rotation otherwise.
func (s *Session) currentActorLocked() string {
	if (s.phase == PhasePenalty || s.phase == PhaseFinalIntro || s.phase == PhaseFinalResult) && s.duel != nil {
		return s.duel.CurrentName()
	}
	return s.turns.Current()
}

func (s *Session) drawQuestionLocked() {
	q := s.picker.Next()
	s.question = &q
}

func (s *Session) bankStateLocked() BankStatePayload {
	return BankStatePayload{
		Chain:             s.ladder.Chain(),
		ChainIndex:        s.ladder.ChainIndex(),
		CurrentChainValue: s.ladder.CurrentValue(),
		BankedTotal:       s.ladder.Total(),
		BankedRound:       s.ladder.RoundTotal(),
	}
}

func (s *Session) rankingLocked() RankingPayload {
	players := s.roster.ActivePlayers()
	ranking := make([]PlayerRank, len(players))
	for i, p := range players {
		ranking[i] = PlayerRank{
			Name:       p.Name,
			Correct:    p.Correct,
			Wrong:      p.Wrong,
			BankAmount: p.BankAmount,
			BankCount:  p.BankCount,
			Connected:  p.Connected,
		}
	}
	return RankingPayload{Ranking: ranking}
}

func (s *Session) broadcastRosterLocked() {
	s.emitter.Broadcast(Event{EventPlayersUpdated, PlayersPayload{Players: s.roster.Active()}})
	s.emitter.Broadcast(Event{EventRankingUpdated, s.rankingLocked()})
}

// broadcastStateLocked pushes the standing view to every client after a
// mutation: phase, round, bank, turn and ranking always; the question and
// duel snapshots when they apply.
func (s *Session) broadcastStateLocked() {
	s.emitter.Broadcast(Event{EventPhaseChanged, PhasePayload{Phase: s.phase}})
	s.emitter.Broadcast(Event{EventRoundUpdated, RoundPayload{Round: s.round}})
	s.emitter.Broadcast(Event{EventBankState, s.bankStateLocked()})
	s.emitter.Broadcast(Event{EventTurnUpdated, TurnPayload{Player: s.currentActorLocked()}})
	s.emitter.Broadcast(Event{EventRankingUpdated, s.rankingLocked()})
	if s.duel != nil {
		s.emitter.Broadcast(Event{EventFinalState, *s.duel})
	}
	if s.question != nil && (s.phase == PhaseQuestions || s.phase == PhasePenalty) {
		s.emitter.Broadcast(Event{EventQuestionUpdated, *s.question})
	}
}

// Stats is a read-only snapshot for the HTTP stats endpoint and tests.
type Stats struct {
	Phase       Phase
	Round       int
	Players     int
	Connected   int
	BankedTotal int
	Timer       int
}

// Snapshot returns a consistent read of the headline numbers.
func (s *Session) Snapshot() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	connected := 0
	for _, p := range s.roster.ActivePlayers() {
		if p.Connected {
			connected++
		}
	}
	return Stats{
		Phase:       s.phase,
		Round:       s.round,
		Players:     s.roster.ActiveCount(),
		Connected:   connected,
		BankedTotal: s.ladder.Total(),
		Timer:       s.timerSecs,
	}
}
