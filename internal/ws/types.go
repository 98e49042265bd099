package ws

import (
	"encoding/json"

	"github.com/benbeisheim/chessrules-backend/internal/engine"
)

// MessageType represents the different kinds of messages our system can handle
type MessageType string

const (
	MessageTypeMove       MessageType = "move"
	MessageTypeLegalMoves MessageType = "legalMoves"
	MessageTypeGameState  MessageType = "gameState"
	MessageTypeError      MessageType = "error"
)

// Message represents a WebSocket message in our system
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// ErrorPayload is the body of a MessageTypeError message.
type ErrorPayload struct {
	Error string `json:"error"`
}

// LegalMovesRequest asks for the destinations of the piece on From.
type LegalMovesRequest struct {
	From engine.Square `json:"from"`
}

type LegalMovesResponse struct {
	From  engine.Square   `json:"from"`
	Moves []engine.Square `json:"moves"`
}
