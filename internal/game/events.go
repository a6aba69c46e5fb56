package game

// EventType identifies an outbound game event. Every payload carries full
// current sub-state rather than a delta, so a client that misses one
// broadcast is consistent again on the next.
type EventType string

const (
	EventPhaseChanged     EventType = "phase_changed"
	EventRoundUpdated     EventType = "round_updated"
	EventPlayersUpdated   EventType = "players_updated"
	EventBankState        EventType = "bank_state"
	EventTurnUpdated      EventType = "turn_updated"
	EventRankingUpdated   EventType = "ranking_updated"
	EventQuestionUpdated  EventType = "question_updated"
	EventTimerUpdated     EventType = "timer_updated"
	EventVotesUpdated     EventType = "votes_updated"
	EventVotingResult     EventType = "voting_result"
	EventPlayerEliminated EventType = "player_eliminated"
	EventFinalState       EventType = "final_state"
	EventFinalWinner      EventType = "final_winner"
	EventBanked           EventType = "banked"
	EventGameReset        EventType = "game_reset"
)

// Event is one outbound game event with its typed payload.
type Event struct {
	Type EventType
	Data any
}

// Emitter delivers events to every connected client. The transport layer
// implements it; the session never sees individual connections.
type Emitter interface {
	Broadcast(e Event)
}

// Payloads.

type PhasePayload struct {
	Phase Phase `json:"phase"`
}

type RoundPayload struct {
	Round int `json:"round"`
}

type PlayersPayload struct {
	Players []string `json:"players"`
}

type BankStatePayload struct {
	Chain             []int `json:"chain"`
	ChainIndex        int   `json:"chainIndex"`
	CurrentChainValue int   `json:"currentChainValue"`
	BankedTotal       int   `json:"bankedTotal"`
	BankedRound       int   `json:"bankedRound"`
}

type TurnPayload struct {
	Player string `json:"player"`
}

type PlayerRank struct {
	Name       string `json:"name"`
	Correct    int    `json:"correct"`
	Wrong      int    `json:"wrong"`
	BankAmount int    `json:"bankAmount"`
	BankCount  int    `json:"bankCount"`
	Connected  bool   `json:"connected"`
}

type RankingPayload struct {
	Ranking []PlayerRank `json:"ranking"`
}

type TimerPayload struct {
	Seconds int `json:"seconds"`
}

type VotesPayload struct {
	Summary map[string]int `json:"summary"`
	Details []Vote         `json:"details"`
}

// VotingResultPayload wraps the result so a nil result can be broadcast
// when a new voting cycle clears the previous outcome.
type VotingResultPayload struct {
	Result *VoteResult `json:"result"`
}

type EliminatedPayload struct {
	Name string `json:"name"`
}

type FinalWinnerPayload struct {
	Name   string `json:"name"`
	Amount int    `json:"amount"`
}

type BankedPayload struct {
	Player string `json:"player"`
	Amount int    `json:"amount"`
	Auto   bool   `json:"auto"`
}
