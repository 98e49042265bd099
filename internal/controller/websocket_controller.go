package controller

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/benbeisheim/chessrules-backend/internal/model"
	"github.com/benbeisheim/chessrules-backend/internal/service"
	"github.com/benbeisheim/chessrules-backend/internal/ws"
	"github.com/gofiber/websocket/v2"
)

type WebSocketController struct {
	gameService *service.GameService
}

func NewWebSocketController(gameService *service.GameService) *WebSocketController {
	return &WebSocketController{
		gameService: gameService,
	}
}

// HandleConnection is called when a new WebSocket connection is established
func (wsc *WebSocketController) HandleConnection(c *websocket.Conn) {
	gameID, _ := c.Locals("wsGameID").(string)
	playerID, _ := c.Locals("wsPlayerID").(string)

	if err := wsc.gameService.RegisterConnection(gameID, playerID, c); err != nil {
		log.Printf("ws %s/%s: register failed: %v", gameID, playerID, err)
		writeError(c, err)
		c.Close()
		return
	}
	defer wsc.gameService.UnregisterConnection(gameID, playerID, c)

	for {
		messageType, message, err := c.ReadMessage()
		if err != nil {
			log.Printf("ws %s/%s: read error: %v", gameID, playerID, err)
			return
		}
		if messageType != websocket.TextMessage {
			continue
		}

		var msg ws.Message
		if err := json.Unmarshal(message, &msg); err != nil {
			wsc.sendError(gameID, playerID, fmt.Errorf("malformed message: %w", err))
			continue
		}

		if err := wsc.handleMessage(gameID, playerID, msg); err != nil {
			log.Printf("ws %s/%s: %s: %v", gameID, playerID, msg.Type, err)
			wsc.sendError(gameID, playerID, err)
		}
	}
}

func (wsc *WebSocketController) handleMessage(gameID, playerID string, msg ws.Message) error {
	switch msg.Type {
	case ws.MessageTypeMove:
		var move model.SimpleMove
		if err := json.Unmarshal(msg.Payload, &move); err != nil {
			return fmt.Errorf("malformed move: %w", err)
		}
		// The new state reaches every connection through the game broadcast.
		return wsc.gameService.HandleMove(gameID, playerID, move)

	case ws.MessageTypeLegalMoves:
		var req ws.LegalMovesRequest
		if err := json.Unmarshal(msg.Payload, &req); err != nil {
			return fmt.Errorf("malformed legalMoves request: %w", err)
		}
		moves, err := wsc.gameService.LegalMoves(gameID, req.From)
		if err != nil {
			return err
		}
		payload, err := json.Marshal(ws.LegalMovesResponse{From: req.From, Moves: moves})
		if err != nil {
			return err
		}
		return wsc.gameService.Send(gameID, playerID, ws.Message{
			Type:    ws.MessageTypeLegalMoves,
			Payload: payload,
		})

	default:
		return fmt.Errorf("unknown message type: %s", msg.Type)
	}
}

func (wsc *WebSocketController) sendError(gameID, playerID string, err error) {
	payload, _ := json.Marshal(ws.ErrorPayload{Error: err.Error()})
	if sendErr := wsc.gameService.Send(gameID, playerID, ws.Message{
		Type:    ws.MessageTypeError,
		Payload: payload,
	}); sendErr != nil {
		log.Printf("ws %s/%s: failed to send error: %v", gameID, playerID, sendErr)
	}
}

// writeError reports err on a connection that never got registered.
func writeError(c model.Conn, err error) {
	payload, _ := json.Marshal(ws.ErrorPayload{Error: err.Error()})
	c.WriteJSON(ws.Message{Type: ws.MessageTypeError, Payload: payload})
}
