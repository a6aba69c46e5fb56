package server

import (
	"encoding/json"
	"time"

	"github.com/AlexZuga94/El-rival-m-s-debil-online/internal/game"
)

// Message represents the base WebSocket message structure
type Message struct {
	Type      MessageType     `json:"type"`
	Data      json.RawMessage `json:"data,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
}

// NewMessage creates a new message with the current timestamp. The payload
// is marshalled up front, so events built under the session lock capture a
// consistent snapshot no matter when the write pump drains them.
func NewMessage(messageType MessageType, data interface{}) (*Message, error) {
	dataBytes, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	return &Message{
		Type:      messageType,
		Data:      dataBytes,
		Timestamp: time.Now(),
	}, nil
}

// messageFromEvent converts a game event into its wire message.
func messageFromEvent(e game.Event) (*Message, error) {
	return NewMessage(MessageType(e.Type), e.Data)
}

// Client → Server payloads

type RegisterData struct {
	Name string `json:"name"`
}

type SetPhaseData struct {
	Phase string `json:"phase"`
}

type CastVoteData struct {
	Target string `json:"target"`
}

type EliminateData struct {
	Name string `json:"name"`
}

// Server → Client payloads
//
// The game-state payloads (bank, ranking, votes, duel, ...) are defined in
// internal/game/events.go and marshalled as-is; the types below exist only
// at the transport boundary.

type RegisteredData struct {
	Name     string `json:"name"`
	Rejoined bool   `json:"rejoined"`
}

type AccessDeniedData struct {
	Reason string `json:"reason"`
}
