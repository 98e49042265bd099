package controller

import (
	"encoding/json"
	"strings"
	"sync"
	"testing"

	"github.com/benbeisheim/chessrules-backend/internal/engine"
	"github.com/benbeisheim/chessrules-backend/internal/model"
	"github.com/benbeisheim/chessrules-backend/internal/service"
	"github.com/benbeisheim/chessrules-backend/internal/ws"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

type recordingConn struct {
	mu       sync.Mutex
	messages []ws.Message
}

func (c *recordingConn) WriteJSON(v interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.messages = append(c.messages, v.(ws.Message))
	return nil
}

func (c *recordingConn) WriteMessage(int, []byte) error { return nil }

func (c *recordingConn) Close() error { return nil }

func (c *recordingConn) last(t *testing.T, want ws.MessageType) ws.Message {
	t.Helper()
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.messages) == 0 {
		t.Fatal("no messages received")
	}
	msg := c.messages[len(c.messages)-1]
	if msg.Type != want {
		t.Fatalf("last message type = %q (%s); want %q", msg.Type, msg.Payload, want)
	}
	return msg
}

// connectedGame seats alice and bob in a new game with a socket each.
func connectedGame(t *testing.T) (*WebSocketController, string, *recordingConn, *recordingConn) {
	t.Helper()
	gs := service.NewGameService(service.NewGameManager())
	gameID, err := gs.CreateGame()
	if err != nil {
		t.Fatal(err)
	}
	alice, bob := &recordingConn{}, &recordingConn{}
	for id, conn := range map[string]*recordingConn{"alice": alice, "bob": bob} {
		if _, err := gs.JoinGame(gameID, id); err != nil {
			t.Fatal(err)
		}
		if err := gs.RegisterConnection(gameID, id, conn); err != nil {
			t.Fatal(err)
		}
	}
	return NewWebSocketController(gs), gameID, alice, bob
}

func message(t *testing.T, typ ws.MessageType, payload interface{}) ws.Message {
	t.Helper()
	raw, err := json.Marshal(payload)
	if err != nil {
		t.Fatal(err)
	}
	return ws.Message{Type: typ, Payload: raw}
}

func TestHandleLegalMovesMessage(t *testing.T) {
	wsc, gameID, alice, bob := connectedGame(t)
	bobBefore := len(bob.messages)

	req := message(t, ws.MessageTypeLegalMoves, ws.LegalMovesRequest{From: engine.Sq(1, 0)})
	if err := wsc.handleMessage(gameID, "alice", req); err != nil {
		t.Fatalf("handleMessage: %v", err)
	}

	var got ws.LegalMovesResponse
	if err := json.Unmarshal(alice.last(t, ws.MessageTypeLegalMoves).Payload, &got); err != nil {
		t.Fatal(err)
	}
	want := ws.LegalMovesResponse{
		From:  engine.Sq(1, 0),
		Moves: []engine.Square{engine.Sq(0, 2), engine.Sq(2, 2)},
	}
	less := func(a, b engine.Square) bool { return a.String() < b.String() }
	if diff := cmp.Diff(want, got, cmpopts.SortSlices(less)); diff != "" {
		t.Errorf("legalMoves mismatch (-want +got):\n%s", diff)
	}
	if len(bob.messages) != bobBefore {
		t.Error("legalMoves reply leaked to the opponent")
	}
}

func TestHandleMoveMessageBroadcasts(t *testing.T) {
	wsc, gameID, alice, bob := connectedGame(t)

	move := message(t, ws.MessageTypeMove, model.SimpleMove{From: engine.Sq(4, 1), To: engine.Sq(4, 3)})
	if err := wsc.handleMessage(gameID, "alice", move); err != nil {
		t.Fatalf("handleMessage: %v", err)
	}

	for name, conn := range map[string]*recordingConn{"alice": alice, "bob": bob} {
		var state model.GameState
		if err := json.Unmarshal(conn.last(t, ws.MessageTypeGameState).Payload, &state); err != nil {
			t.Fatal(err)
		}
		if state.ToMove != engine.Black || state.Seq != 1 {
			t.Errorf("%s saw ToMove = %v, Seq = %d; want black, 1", name, state.ToMove, state.Seq)
		}
	}
}

func TestHandleMessageErrors(t *testing.T) {
	tests := []struct {
		name    string
		player  string
		msg     ws.Message
		wantErr string
	}{
		{
			name:    "unknown type",
			player:  "alice",
			msg:     ws.Message{Type: "resign", Payload: json.RawMessage(`{}`)},
			wantErr: "unknown message type",
		},
		{
			name:    "malformed move",
			player:  "alice",
			msg:     ws.Message{Type: ws.MessageTypeMove, Payload: json.RawMessage(`"e2e4"`)},
			wantErr: "malformed move",
		},
		{
			name:    "malformed legalMoves",
			player:  "alice",
			msg:     ws.Message{Type: ws.MessageTypeLegalMoves, Payload: json.RawMessage(`[1]`)},
			wantErr: "malformed legalMoves",
		},
		{
			name:    "out of turn",
			player:  "bob",
			msg:     ws.Message{Type: ws.MessageTypeMove, Payload: json.RawMessage(`{"from":{"file":4,"rank":6},"to":{"file":4,"rank":4}}`)},
			wantErr: model.ErrNotYourTurn.Error(),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wsc, gameID, alice, bob := connectedGame(t)
			conn := map[string]*recordingConn{"alice": alice, "bob": bob}[tt.player]

			err := wsc.handleMessage(gameID, tt.player, tt.msg)
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("handleMessage error = %v; want one containing %q", err, tt.wantErr)
			}

			wsc.sendError(gameID, tt.player, err)
			var payload ws.ErrorPayload
			if err := json.Unmarshal(conn.last(t, ws.MessageTypeError).Payload, &payload); err != nil {
				t.Fatal(err)
			}
			if !strings.Contains(payload.Error, tt.wantErr) {
				t.Errorf("error payload = %q; want it to contain %q", payload.Error, tt.wantErr)
			}
		})
	}
}
