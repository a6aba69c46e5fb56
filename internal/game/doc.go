// Package game implements the core logic of the elimination quiz show.
//
// The main type is Session, which owns the complete game state: the player
// roster, the turn rotation, the banking chain, the question picker, the
// voting ballot and the penalty shootout finale. Every public operation is
// safe for concurrent use; the session broadcasts the resulting view
// through its Emitter after each mutation.
//
// # Basic Usage
//
// Create a session and drive it with moderator commands:
//
//	s := game.NewSession(logger, quartz.NewReal(), emitter, game.DefaultRules(), nil, rng)
//	s.Register("Ana")
//	s.Register("Beto")
//	s.SetPhase(game.PhaseQuestions)
//	s.JudgeAnswer(true)
//	s.ManualBank()
//
// # Deterministic Testing
//
// The session takes a quartz.Clock and a *rand.Rand, so tests control both
// the countdown and the question order:
//
//	mockClock := quartz.NewMock(t)
//	rng := rand.New(rand.NewSource(42))
//	s := game.NewSession(logger, mockClock, emitter, rules, catalog, rng)
//	mockClock.Advance(time.Second).MustWait(ctx)
package game
