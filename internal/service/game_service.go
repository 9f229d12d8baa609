package service

import (
	"fmt"

	"github.com/benbeisheim/minimax-chess/internal/model"
)

type GameService struct {
	gameManager *GameManager
}

func NewGameService(gameManager *GameManager) *GameService {
	return &GameService{
		gameManager: gameManager,
	}
}

// CreateGame starts a game with the player on color (White when empty).
func (gs *GameService) CreateGame(playerID string, color model.Color, depth int) (string, model.Color, error) {
	switch color {
	case "":
		color = model.White
	case model.White, model.Black:
	default:
		return "", "", fmt.Errorf("failed to create game: %w %q", ErrInvalidColor, color)
	}

	game, err := gs.gameManager.CreateGame(model.Player{ID: playerID, Color: color}, depth)
	if err != nil {
		return "", "", fmt.Errorf("failed to create game: %w", err)
	}
	return game.ID, color, nil
}

func (gs *GameService) GetGameState(gameID string) (model.GameView, error) {
	return gs.gameManager.GetGameState(gameID)
}

// HandleMove applies a move given in algebraic squares, e.g. "e2" to "e4".
func (gs *GameService) HandleMove(gameID string, playerID string, from, to string) error {
	fromSq, err := model.ParseSquare(from)
	if err != nil {
		return err
	}
	toSq, err := model.ParseSquare(to)
	if err != nil {
		return err
	}
	return gs.gameManager.MakeMove(gameID, playerID, model.Move{From: fromSq, To: toSq})
}

func (gs *GameService) HandleUndo(gameID string, playerID string) error {
	return gs.gameManager.Undo(gameID, playerID)
}

func (gs *GameService) Hint(gameID string) (model.Move, bool, error) {
	return gs.gameManager.Hint(gameID)
}

func (gs *GameService) HasGame(gameID string) bool {
	return gs.gameManager.HasGame(gameID)
}

func (gs *GameService) RegisterConnection(gameID string, playerID string, conn Conn) error {
	return gs.gameManager.RegisterConnection(gameID, playerID, conn)
}

func (gs *GameService) UnregisterConnection(gameID string, playerID string, conn Conn) {
	gs.gameManager.UnregisterConnection(gameID, playerID, conn)
}
