package server

// MessageType represents a WebSocket message type with type safety
type MessageType string

// WebSocket message type constants for the client-server protocol
const (
	// Client to server messages
	MessageTypeRegister     MessageType = "register"
	MessageTypeSetPhase     MessageType = "set_phase"
	MessageTypeJudgeCorrect MessageType = "judge_correct"
	MessageTypeJudgeWrong   MessageType = "judge_wrong"
	MessageTypeBank         MessageType = "bank"
	MessageTypeCastVote     MessageType = "cast_vote"
	MessageTypeEliminate    MessageType = "eliminate"
	MessageTypeReset        MessageType = "reset"
	MessageTypeRequestState MessageType = "request_state"

	// Server to client messages
	MessageTypePhaseChanged     MessageType = "phase_changed"
	MessageTypeRoundUpdated     MessageType = "round_updated"
	MessageTypePlayersUpdated   MessageType = "players_updated"
	MessageTypeBankState        MessageType = "bank_state"
	MessageTypeTurnUpdated      MessageType = "turn_updated"
	MessageTypeRankingUpdated   MessageType = "ranking_updated"
	MessageTypeQuestionUpdated  MessageType = "question_updated"
	MessageTypeTimerUpdated     MessageType = "timer_updated"
	MessageTypeVotesUpdated     MessageType = "votes_updated"
	MessageTypeVotingResult     MessageType = "voting_result"
	MessageTypePlayerEliminated MessageType = "player_eliminated"
	MessageTypeFinalState       MessageType = "final_state"
	MessageTypeFinalWinner      MessageType = "final_winner"
	MessageTypeBanked           MessageType = "banked"
	MessageTypeAccessDenied     MessageType = "access_denied"
	MessageTypeGameReset        MessageType = "game_reset"
	MessageTypeRegistered       MessageType = "registered"
)

// String returns the string representation of the message type
func (mt MessageType) String() string {
	return string(mt)
}
