package controller

import (
	"log"

	"github.com/benbeisheim/chessrules-backend/internal/engine"
	"github.com/benbeisheim/chessrules-backend/internal/model"
	"github.com/benbeisheim/chessrules-backend/internal/service"
	"github.com/benbeisheim/chessrules-backend/internal/ws"
	"github.com/gofiber/fiber/v2"
)

type GameController struct {
	gameService *service.GameService
}

func NewGameController(gameService *service.GameService) *GameController {
	return &GameController{gameService: gameService}
}

func (gc *GameController) CreateGame(c *fiber.Ctx) error {
	gameID, err := gc.gameService.CreateGame()
	if err != nil {
		log.Printf("create game: %v", err)
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Game created",
		"game_id": gameID,
	})
}

func (gc *GameController) JoinGame(c *fiber.Ctx) error {
	gameID := c.Params("gameId")
	playerID := c.Locals("playerID").(string)

	color, err := gc.gameService.JoinGame(gameID, playerID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Game joined",
		"color":   color,
	})
}

func (gc *GameController) GetGameState(c *fiber.Ctx) error {
	gameID := c.Params("gameId")

	gameState, err := gc.gameService.GetGameState(gameID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(gameState)
}

// LegalMoves answers GET /:gameId/moves?file=&rank=.
func (gc *GameController) LegalMoves(c *fiber.Ctx) error {
	gameID := c.Params("gameId")
	from := engine.Sq(c.QueryInt("file", -1), c.QueryInt("rank", -1))
	if !from.OnBoard() {
		return respondError(c, model.ErrOutOfBounds)
	}

	moves, err := gc.gameService.LegalMoves(gameID, from)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(ws.LegalMovesResponse{From: from, Moves: moves})
}

func (gc *GameController) MakeMove(c *fiber.Ctx) error {
	gameID := c.Params("gameId")
	playerID := c.Locals("playerID").(string)

	var move model.SimpleMove
	if err := c.BodyParser(&move); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid move body",
		})
	}

	if err := gc.gameService.HandleMove(gameID, playerID, move); err != nil {
		return respondError(c, err)
	}

	state, err := gc.gameService.GetGameState(gameID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(state)
}

func (gc *GameController) JoinMatchmaking(c *fiber.Ctx) error {
	playerID := c.Locals("playerID").(string)

	match, err := gc.gameService.JoinMatchmaking(playerID)
	if err != nil {
		return respondError(c, err)
	}
	if match != nil {
		return c.JSON(fiber.Map{
			"status":  "matched",
			"game_id": match.GameID,
			"color":   match.Color,
		})
	}

	return c.JSON(fiber.Map{
		"status": "queued",
	})
}

func (gc *GameController) MatchmakingStatus(c *fiber.Ctx) error {
	playerID := c.Locals("playerID").(string)

	status, err := gc.gameService.MatchStatus(playerID)
	if err != nil {
		return respondError(c, err)
	}
	if status.Match == nil {
		return c.JSON(fiber.Map{
			"status":         "queued",
			"waited_seconds": int(status.Waiting.Seconds()),
		})
	}

	return c.JSON(fiber.Map{
		"status":  "matched",
		"game_id": status.Match.GameID,
		"color":   status.Match.Color,
	})
}

func (gc *GameController) LeaveMatchmaking(c *fiber.Ctx) error {
	playerID := c.Locals("playerID").(string)

	if err := gc.gameService.LeaveMatchmaking(playerID); err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"status": "left",
	})
}
