package model

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"

	"github.com/benbeisheim/chessrules-backend/internal/engine"
	"github.com/benbeisheim/chessrules-backend/internal/ws"
	"github.com/gofiber/websocket/v2"
)

// Conn is the part of a websocket connection a game writes to.
// *websocket.Conn satisfies it.
type Conn interface {
	WriteJSON(v interface{}) error
	WriteMessage(messageType int, data []byte) error
	Close() error
}

// The connections for a specific game
type GameConnections struct {
	connections map[string]Conn // playerID -> connection
	mu          sync.Mutex
}

// Game owns one position and serializes every query and move against it.
type Game struct {
	ID          string
	mu          sync.Mutex
	position    *engine.Position
	toMove      engine.Side
	status      engine.Status
	players     seats
	history     []Move
	captured    CapturedPieces
	lastMove    *SimpleMove
	seq         uint64
	connections *GameConnections
}

type GameState struct {
	// Seq increases with every applied move; clients drop frames with a
	// lower Seq than one already seen.
	Seq            uint64         `json:"seq"`
	Board          BoardState     `json:"boardState"`
	ToMove         engine.Side    `json:"toMove"`
	Status         engine.Status  `json:"status"`
	MoveHistory    []Move         `json:"moveHistory"`
	CapturedPieces CapturedPieces `json:"capturedPieces"`
	IsCheck        bool           `json:"isCheck"`
	Resolve        *string        `json:"resolve"`
	Players        struct {
		White ClientPlayer `json:"white"`
		Black ClientPlayer `json:"black"`
	} `json:"players"`
	LastMove *SimpleMove `json:"lastMove"`
}

// CapturedPieces lists the occupants each side has taken.
type CapturedPieces struct {
	White []engine.Occupant `json:"white"`
	Black []engine.Occupant `json:"black"`
}

func NewGame(id string) *Game {
	return newGameFrom(id, engine.StandardPosition(), engine.White)
}

// newGameFrom starts a game on an arbitrary position.
func newGameFrom(id string, pos *engine.Position, toMove engine.Side) *Game {
	g := &Game{
		ID:          id,
		position:    pos,
		toMove:      toMove,
		history:     make([]Move, 0),
		captured:    newCapturedPieces(),
		connections: NewGameConnections(),
	}
	g.players[engine.White].Color = engine.White
	g.players[engine.Black].Color = engine.Black
	g.status = engine.StatusOf(pos, toMove)
	return g
}

func NewGameConnections() *GameConnections {
	return &GameConnections{
		connections: make(map[string]Conn),
	}
}

func newCapturedPieces() CapturedPieces {
	return CapturedPieces{
		White: make([]engine.Occupant, 0),
		Black: make([]engine.Occupant, 0),
	}
}

// AddPlayer seats playerID, White first. Re-adding a seated player returns
// their existing side.
func (g *Game) AddPlayer(playerID string) (engine.Side, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if side, ok := g.players.sideOf(playerID); ok {
		return side, nil
	}
	for _, side := range []engine.Side{engine.White, engine.Black} {
		if g.players[side].ID == "" {
			g.players[side].ID = playerID
			return side, nil
		}
	}
	return engine.White, ErrGameFull
}

func (g *Game) GetState() GameState {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.stateLocked()
}

func (g *Game) IsPlayerInGame(playerID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	_, ok := g.players.sideOf(playerID)
	return ok
}

func (g *Game) SideOf(playerID string) (engine.Side, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.players.sideOf(playerID)
}

// LegalMoves returns the destinations for the piece on from. Only pieces of
// the side to move have moves, and a finished game has none.
func (g *Game) LegalMoves(from engine.Square) []engine.Square {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.status.Over() || !g.position.HasFriendly(from, g.toMove) {
		return []engine.Square{}
	}
	moves := engine.LegalMoves(g.position, from)
	if moves == nil {
		return []engine.Square{}
	}
	return moves
}

// MakeMove validates move for playerID against the current legal moves,
// applies it and broadcasts the new state. The connection lock is taken
// before g.mu is released, so broadcasts go out in move order.
func (g *Game) MakeMove(playerID string, move SimpleMove) error {
	g.mu.Lock()
	if err := g.validateMove(playerID, move); err != nil {
		g.mu.Unlock()
		return err
	}
	g.executeMove(move)
	state := g.stateLocked()
	g.connections.mu.Lock()
	g.mu.Unlock()

	defer g.connections.mu.Unlock()
	g.broadcastStateLocked(state)
	return nil
}

func (g *Game) validateMove(playerID string, move SimpleMove) error {
	if g.status.Over() {
		return ErrGameOver
	}
	side, ok := g.players.sideOf(playerID)
	if !ok {
		return ErrNotInGame
	}
	if side != g.toMove {
		return ErrNotYourTurn
	}
	if !move.From.OnBoard() || !move.To.OnBoard() {
		return ErrOutOfBounds
	}
	piece, ok := g.position.OccupantAt(move.From)
	if !ok {
		return ErrNoPiece
	}
	if piece.Side != side {
		return ErrNotYourPiece
	}
	for _, to := range engine.LegalMoves(g.position, move.From) {
		if to == move.To {
			return nil
		}
	}
	return fmt.Errorf("%w: %v to %v", ErrIllegalMove, move.From, move.To)
}

func (g *Game) executeMove(move SimpleMove) {
	applied := engine.ApplyMove(g.position, engine.Move{From: move.From, To: move.To})
	ply := newPly(applied)

	if applied.Captured != nil {
		switch g.toMove {
		case engine.White:
			g.captured.White = append(g.captured.White, *applied.Captured)
		case engine.Black:
			g.captured.Black = append(g.captured.Black, *applied.Captured)
		}
	}

	switch {
	case g.toMove == engine.White:
		g.history = append(g.history, Move{WhitePly: ply})
	case len(g.history) == 0:
		// A game set up with Black to move opens without a White ply.
		g.history = append(g.history, Move{BlackPly: &ply})
	default:
		g.history[len(g.history)-1].BlackPly = &ply
	}

	g.lastMove = &SimpleMove{From: move.From, To: move.To}
	g.seq++
	g.toMove = g.toMove.Opponent()
	g.status = engine.StatusOf(g.position, g.toMove)
	log.Printf("game %s: %s played %v (%v), %s to move: %v", g.ID, applied.Piece.Side, applied.Move, applied.Kind, g.toMove, g.status)
}

// stateLocked builds a detached copy of the game state. g.mu must be held.
func (g *Game) stateLocked() GameState {
	state := GameState{
		Seq:     g.seq,
		Board:   newBoardState(g.position),
		ToMove:  g.toMove,
		Status:  g.status,
		IsCheck: g.status == engine.Check || g.status == engine.Checkmate,
		CapturedPieces: CapturedPieces{
			White: append([]engine.Occupant{}, g.captured.White...),
			Black: append([]engine.Occupant{}, g.captured.Black...),
		},
		MoveHistory: make([]Move, len(g.history)),
	}
	for i, m := range g.history {
		state.MoveHistory[i] = m
		if m.BlackPly != nil {
			black := *m.BlackPly
			state.MoveHistory[i].BlackPly = &black
		}
	}
	if g.status.Over() {
		result := g.status.String()
		state.Resolve = &result
	}
	state.Players.White = g.players[engine.White]
	state.Players.Black = g.players[engine.Black]
	if g.lastMove != nil {
		last := *g.lastMove
		state.LastMove = &last
	}
	return state
}

// RegisterConnection attaches conn for playerID and sends it the current
// state. A second connection for the same player is closed and ignored.
func (g *Game) RegisterConnection(playerID string, conn Conn) error {
	g.mu.Lock()
	_, inGame := g.players.sideOf(playerID)
	isAuthorized := inGame || g.players.hasOpenSeat()
	if !isAuthorized {
		g.mu.Unlock()
		return ErrNotAuthorized
	}
	state := g.stateLocked()
	// Held across the handoff so no broadcast can overtake the initial state.
	g.connections.mu.Lock()
	g.mu.Unlock()
	defer g.connections.mu.Unlock()
	if _, exists := g.connections.connections[playerID]; exists {
		conn.WriteMessage(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(
				websocket.CloseNormalClosure,
				"Connection already exists",
			),
		)
		conn.Close()
		return nil
	}

	g.connections.connections[playerID] = conn
	log.Printf("game %s: registered connection for player %s", g.ID, playerID)

	if err := writeState(conn, state); err != nil {
		log.Printf("game %s: initial state to %s failed: %v", g.ID, playerID, err)
		delete(g.connections.connections, playerID)
		return err
	}
	return nil
}

// UnregisterConnection drops playerID's connection if conn is still the
// registered one.
func (g *Game) UnregisterConnection(playerID string, conn Conn) {
	g.connections.mu.Lock()
	defer g.connections.mu.Unlock()

	if current, exists := g.connections.connections[playerID]; exists && current == conn {
		delete(g.connections.connections, playerID)
		log.Printf("game %s: unregistered connection for player %s", g.ID, playerID)
	}
}

// Send writes one message to playerID's connection, if any.
func (g *Game) Send(playerID string, msg ws.Message) error {
	g.connections.mu.Lock()
	defer g.connections.mu.Unlock()

	conn, ok := g.connections.connections[playerID]
	if !ok {
		return nil
	}
	return conn.WriteJSON(msg)
}

// broadcastStateLocked writes state to every connection, dropping those
// that fail. g.connections.mu must be held.
func (g *Game) broadcastStateLocked(state GameState) {
	for playerID, conn := range g.connections.connections {
		if err := writeState(conn, state); err != nil {
			log.Printf("game %s: failed to send state to player %s: %v", g.ID, playerID, err)
			delete(g.connections.connections, playerID)
		}
	}
}

func writeState(conn Conn, state GameState) error {
	payload, err := json.Marshal(state)
	if err != nil {
		return err
	}
	return conn.WriteJSON(ws.Message{
		Type:    ws.MessageTypeGameState,
		Payload: json.RawMessage(payload),
	})
}
