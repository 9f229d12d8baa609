package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"

	"github.com/benbeisheim/minimax-chess/internal/middleware"
	"github.com/benbeisheim/minimax-chess/internal/model"
	"github.com/benbeisheim/minimax-chess/internal/service"
	"github.com/benbeisheim/minimax-chess/internal/ws"
)

type GameController struct {
	gameService *service.GameService
}

func NewGameController(gameService *service.GameService) *GameController {
	return &GameController{gameService: gameService}
}

type createGameRequest struct {
	Color model.Color `json:"color"`
	Depth int         `json:"depth"`
}

func (gc *GameController) CreateGame(c *fiber.Ctx) error {
	playerID := middleware.PlayerID(c)

	var req createGameRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid request body",
			})
		}
	}

	gameID, color, err := gc.gameService.CreateGame(playerID, req.Color, req.Depth)
	if err != nil {
		log.Warnf("create game for player %s: %v", playerID, err)
		return errorResponse(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Game created",
		"game_id": gameID,
		"color":   color,
	})
}

func (gc *GameController) GetGameState(c *fiber.Ctx) error {
	gameState, err := gc.gameService.GetGameState(c.Params("gameId"))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(gameState)
}

func (gc *GameController) MakeMove(c *fiber.Ctx) error {
	gameID := c.Params("gameId")
	playerID := middleware.PlayerID(c)

	var move ws.MovePayload
	if err := c.BodyParser(&move); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}
	if err := gc.gameService.HandleMove(gameID, playerID, move.From, move.To); err != nil {
		return errorResponse(c, err)
	}
	return gc.GetGameState(c)
}

func (gc *GameController) Undo(c *fiber.Ctx) error {
	gameID := c.Params("gameId")
	playerID := middleware.PlayerID(c)

	if err := gc.gameService.HandleUndo(gameID, playerID); err != nil {
		return errorResponse(c, err)
	}
	return gc.GetGameState(c)
}

func (gc *GameController) Hint(c *fiber.Ctx) error {
	move, ok, err := gc.gameService.Hint(c.Params("gameId"))
	if err != nil {
		return errorResponse(c, err)
	}
	if !ok {
		return c.JSON(fiber.Map{"move": nil})
	}
	return c.JSON(fiber.Map{
		"move": move.String(),
		"from": move.From.String(),
		"to":   move.To.String(),
	})
}
