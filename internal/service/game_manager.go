// service/game_manager.go
package service

import (
	"sync"

	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"

	"github.com/benbeisheim/minimax-chess/internal/model"
	"github.com/benbeisheim/minimax-chess/internal/search"
)

// Options are the engine settings applied to new games.
type Options struct {
	Depth       int
	Seed        uint64
	Perspective search.Perspective
}

type GameManager struct {
	games   map[string]*Game
	options Options
	mu      sync.RWMutex
}

func NewGameManager(options Options) *GameManager {
	return &GameManager{
		games:   make(map[string]*Game),
		options: options,
	}
}

// CreateGame seats the player and, if the engine has White, plays its first
// move before returning.
func (gm *GameManager) CreateGame(human model.Player, depth int) (*Game, error) {
	options := gm.options
	if depth > 0 {
		options.Depth = depth
	}
	gameID := uuid.New().String()
	game := NewGame(gameID, human, options)

	gm.mu.Lock()
	if _, exists := gm.games[gameID]; exists {
		gm.mu.Unlock()
		return nil, ErrGameExists
	}
	gm.games[gameID] = game
	gm.mu.Unlock()

	log.Infof("game %s: created for player %s as %s, depth %d, %s perspective",
		gameID, human.ID, human.Color, options.Depth, options.Perspective)
	game.Start()
	return game, nil
}

func (gm *GameManager) GetGame(gameID string) (*Game, error) {
	gm.mu.RLock()
	defer gm.mu.RUnlock()

	game, exists := gm.games[gameID]
	if !exists {
		return nil, ErrGameNotFound
	}
	return game, nil
}

func (gm *GameManager) HasGame(gameID string) bool {
	_, err := gm.GetGame(gameID)
	return err == nil
}

func (gm *GameManager) RemoveGame(gameID string) {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	delete(gm.games, gameID)
}

func (gm *GameManager) GetGameState(gameID string) (model.GameView, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return model.GameView{}, err
	}
	return game.GetState(), nil
}

func (gm *GameManager) MakeMove(gameID string, playerID string, move model.Move) error {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return err
	}
	return game.MakeMove(playerID, move)
}

func (gm *GameManager) Undo(gameID string, playerID string) error {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return err
	}
	return game.Undo(playerID)
}

func (gm *GameManager) Hint(gameID string) (model.Move, bool, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return model.Move{}, false, err
	}
	move, ok := game.Hint()
	return move, ok, nil
}

func (gm *GameManager) RegisterConnection(gameID string, playerID string, conn Conn) error {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return err
	}
	return game.RegisterConnection(playerID, conn)
}

// UnregisterConnection detaches conn and forgets the game once it is over
// and nobody is watching it.
func (gm *GameManager) UnregisterConnection(gameID string, playerID string, conn Conn) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return
	}
	if remaining := game.UnregisterConnection(playerID, conn); remaining == 0 && game.IsOver() {
		log.Infof("game %s: finished and unwatched, removing", gameID)
		gm.RemoveGame(gameID)
	}
}
