// service/game_manager.go
package service

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/benbeisheim/chessrules-backend/internal/engine"
	"github.com/benbeisheim/chessrules-backend/internal/model"
	"github.com/benbeisheim/chessrules-backend/internal/ws"
	"github.com/google/uuid"
)

// Match is where matchmaking seated a player.
type Match struct {
	GameID string      `json:"game_id"`
	Color  engine.Side `json:"color"`
}

type GameManager struct {
	games   map[string]*model.Game
	queue   *model.Queue
	matches map[string]Match // playerID -> match, until the player asks for it
	mu      sync.RWMutex
	newID   func() string
	now     func() time.Time
}

func NewGameManager() *GameManager {
	return &GameManager{
		games:   make(map[string]*model.Game),
		queue:   model.NewQueue(),
		matches: make(map[string]Match),
		newID:   func() string { return uuid.New().String() },
		now:     time.Now,
	}
}

// NewGameID mints an ID for a game that does not exist yet.
func (gm *GameManager) NewGameID() string {
	return gm.newID()
}

func (gm *GameManager) CreateGame(gameID string) error {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if _, exists := gm.games[gameID]; exists {
		return fmt.Errorf("%w: %s", ErrGameExists, gameID)
	}

	gm.games[gameID] = model.NewGame(gameID)
	log.Printf("created game %s", gameID)
	return nil
}

// GetGame looks a game up. The manager lock is held only for the map access;
// everything else is serialized by the game itself.
func (gm *GameManager) GetGame(gameID string) (*model.Game, error) {
	gm.mu.RLock()
	defer gm.mu.RUnlock()

	game, exists := gm.games[gameID]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrGameNotFound, gameID)
	}

	return game, nil
}

func (gm *GameManager) AddPlayerToGame(gameID string, playerID string) (engine.Side, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return engine.White, err
	}

	side, err := game.AddPlayer(playerID)
	if err != nil {
		return side, err
	}
	log.Printf("player %s joined game %s as %s", playerID, gameID, side)
	return side, nil
}

// JoinMatchmaking queues playerID and pairs the two longest-waiting players
// as soon as there are two. The returned match is set when playerID itself
// was paired by this call, or was paired earlier and had not yet picked the
// match up. Each match is handed out once.
func (gm *GameManager) JoinMatchmaking(playerID string) (*Match, error) {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if match, ok := gm.takeMatchLocked(playerID); ok {
		return match, nil
	}
	if err := gm.queue.AddPlayer(playerID); err != nil {
		return nil, err
	}
	log.Printf("player %s queued for matchmaking (%d waiting)", playerID, gm.queue.Size())

	first, second, ok := gm.queue.NextPair()
	if !ok {
		return nil, nil
	}
	if err := gm.pairLocked(first, second); err != nil {
		return nil, err
	}
	match, _ := gm.takeMatchLocked(playerID)
	return match, nil
}

func (gm *GameManager) takeMatchLocked(playerID string) (*Match, bool) {
	match, ok := gm.matches[playerID]
	if !ok {
		return nil, false
	}
	delete(gm.matches, playerID)
	return &match, true
}

func (gm *GameManager) pairLocked(first, second string) error {
	gameID := gm.newID()
	game := model.NewGame(gameID)

	for _, playerID := range []string{first, second} {
		side, err := game.AddPlayer(playerID)
		if err != nil {
			return fmt.Errorf("seat %s in %s: %w", playerID, gameID, err)
		}
		gm.matches[playerID] = Match{GameID: gameID, Color: side}
	}
	gm.games[gameID] = game
	log.Printf("matched %s and %s in game %s", first, second, gameID)
	return nil
}

// MatchmakingStatus is a player's view of matchmaking: either the match, or
// how long they have been waiting for one.
type MatchmakingStatus struct {
	Match   *Match
	Waiting time.Duration
}

// MatchStatus reports playerID's match once made, handing it out once.
// While the player is still waiting only Waiting is set; a player neither
// queued nor matched gets ErrNotMatched.
func (gm *GameManager) MatchStatus(playerID string) (MatchmakingStatus, error) {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if match, ok := gm.takeMatchLocked(playerID); ok {
		return MatchmakingStatus{Match: match}, nil
	}
	if since, ok := gm.queue.JoinedAt(playerID); ok {
		return MatchmakingStatus{Waiting: gm.now().Sub(since)}, nil
	}
	return MatchmakingStatus{}, ErrNotMatched
}

// LeaveMatchmaking removes playerID from the queue.
func (gm *GameManager) LeaveMatchmaking(playerID string) error {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if !gm.queue.Remove(playerID) {
		return ErrNotMatched
	}
	log.Printf("player %s left matchmaking", playerID)
	return nil
}

func (gm *GameManager) GetGameState(gameID string) (model.GameState, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return model.GameState{}, err
	}

	return game.GetState(), nil
}

func (gm *GameManager) LegalMoves(gameID string, from engine.Square) ([]engine.Square, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return nil, err
	}

	return game.LegalMoves(from), nil
}

func (gm *GameManager) MakeMove(gameID string, playerID string, move model.SimpleMove) error {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return err
	}

	return game.MakeMove(playerID, move)
}

func (gm *GameManager) RegisterConnection(gameID string, playerID string, conn model.Conn) error {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return err
	}

	return game.RegisterConnection(playerID, conn)
}

func (gm *GameManager) UnregisterConnection(gameID string, playerID string, conn model.Conn) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return
	}

	game.UnregisterConnection(playerID, conn)
}

func (gm *GameManager) Send(gameID string, playerID string, msg ws.Message) error {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return err
	}

	return game.Send(playerID, msg)
}
