package game

// Phase represents the current stage of the game state machine
type Phase string

const (
	PhaseWaiting     Phase = "waiting"
	PhaseQuestions   Phase = "questions"
	PhaseTimesUp     Phase = "times_up"
	PhaseVoting      Phase = "voting"
	PhaseElimination Phase = "elimination"
	PhaseFinalIntro  Phase = "final_intro"
	PhasePenalty     Phase = "penalty"
	PhaseFinalResult Phase = "final_result"
)

// String returns the string representation of the phase
func (p Phase) String() string {
	return string(p)
}

// Valid reports whether p is one of the known phases. Anything else is
// rejected by the session rather than stored.
func (p Phase) Valid() bool {
	switch p {
	case PhaseWaiting, PhaseQuestions, PhaseTimesUp, PhaseVoting,
		PhaseElimination, PhaseFinalIntro, PhasePenalty, PhaseFinalResult:
		return true
	}
	return false
}

// Moderator commands may move the game to any valid phase. The only
// transitions the session performs on its own are:
//
//	questions   -> times_up    (countdown expiry)
//	final_intro -> penalty     (fixed delay after the finale is announced)
//
// Setting the penalty phase from outside is intercepted: the session first
// enters final_intro and schedules the penalty entry itself.
