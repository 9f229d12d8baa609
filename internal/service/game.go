package service

import (
	"fmt"
	"sync"

	"github.com/gofiber/fiber/v2/log"

	"github.com/benbeisheim/minimax-chess/internal/model"
	"github.com/benbeisheim/minimax-chess/internal/search"
	"github.com/benbeisheim/minimax-chess/internal/ws"
)

// Conn is a client connection that receives game state messages.
type Conn interface {
	WriteJSON(v interface{}) error
}

// The connections watching a specific game
type GameConnections struct {
	connections map[string]Conn // playerID -> connection
	mu          sync.RWMutex
}

func NewGameConnections() *GameConnections {
	return &GameConnections{
		connections: make(map[string]Conn),
	}
}

// Game is one human-versus-engine game. The engine state is single threaded;
// every access goes through mu, and the engine's search runs under it.
type Game struct {
	ID          string
	mu          sync.Mutex
	state       *model.GameState
	human       model.Player
	searcher    *search.Searcher
	clocks      *model.Clocks
	connections *GameConnections

	// Snapshots waiting to be sent, oldest first, and whether a sender
	// goroutine is draining them.
	outMu    sync.Mutex
	outbox   []ws.Message
	draining bool
}

func NewGame(id string, human model.Player, options Options) *Game {
	searcher := search.NewSearcher(options.Depth, options.Seed)
	searcher.Perspective = options.Perspective
	g := &Game{
		ID:          id,
		state:       model.NewGameState(),
		human:       human,
		searcher:    searcher,
		clocks:      model.NewClocks(),
		connections: NewGameConnections(),
	}
	g.state.Board.OnCapture = func(p *model.Piece) {
		log.Infof("game %s: %s %s captured on %s", id, p.Color, p.Type, p.Position)
	}
	g.clocks.White.Start()
	return g
}

// Start lets the engine open the game when it plays White.
func (g *Game) Start() {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.engineMove()
}

func (g *Game) engineColor() model.Color {
	return g.human.Color.Opposite()
}

func (g *Game) MakeMove(playerID string, move model.Move) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if playerID != g.human.ID {
		return ErrNotInGame
	}
	if g.state.IsOver() {
		return ErrGameOver
	}
	if g.state.Turn != g.human.Color {
		return ErrNotYourTurn
	}
	if err := g.state.AttemptMove(move.From, move.To); err != nil {
		return err
	}
	log.Infof("game %s: player %s played %s", g.ID, playerID, move)
	g.clocks.Switch(g.state.Turn)

	g.engineMove()
	g.broadcastState()
	return nil
}

// engineMove plays the searcher's choice if it is the engine's turn.
func (g *Game) engineMove() {
	if g.state.IsOver() || g.state.Turn != g.engineColor() {
		g.logResult()
		return
	}
	move, stats, ok := g.searcher.FindBestMoveStats(g.state)
	if !ok {
		log.Warnf("game %s: engine found no move", g.ID)
		return
	}
	if err := g.state.AttemptMove(move.From, move.To); err != nil {
		log.Errorf("game %s: engine move %s rejected: %v", g.ID, move, err)
		return
	}
	log.Infof("game %s: engine played %s (%d nodes, %d cutoffs)", g.ID, move, stats.Nodes, stats.Cutoffs)
	g.clocks.Switch(g.state.Turn)
	g.logResult()
}

func (g *Game) logResult() {
	switch {
	case g.state.IsCheckmate:
		g.clocks.StopAll()
		log.Infof("game %s: checkmate, %s loses", g.ID, g.state.Turn)
	case g.state.IsStalemate:
		g.clocks.StopAll()
		log.Infof("game %s: stalemate", g.ID)
	}
}

// Undo takes back moves until it is the human's turn again, normally the
// engine's reply and the human move before it. If that many plies are not
// on the board nothing changes.
func (g *Game) Undo(playerID string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if playerID != g.human.ID {
		return ErrNotInGame
	}
	plies := 2
	if g.state.Turn != g.human.Color {
		// The human's last move ended the game before the engine replied.
		plies = 1
	}
	if len(g.state.History) < plies {
		return fmt.Errorf("undo: %w", model.ErrEmptyHistory)
	}
	for i := 0; i < plies; i++ {
		if err := g.state.UndoMove(); err != nil {
			return fmt.Errorf("undo: %w", err)
		}
	}
	g.clocks.Switch(g.state.Turn)
	g.broadcastState()
	return nil
}

// Hint searches for the side to move without changing the game.
func (g *Game) Hint() (model.Move, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.searcher.FindBestMove(g.state)
}

func (g *Game) GetState() model.GameView {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.view()
}

func (g *Game) IsOver() bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.state.IsOver()
}

func (g *Game) view() model.GameView {
	return model.NewGameView(g.state, g.human, g.clocks)
}

// RegisterConnection starts sending state to conn. A player may hold one
// connection per game; a second one gets ErrConnectionExists and the first
// keeps receiving.
func (g *Game) RegisterConnection(playerID string, conn Conn) error {
	g.connections.mu.Lock()
	if _, exists := g.connections.connections[playerID]; exists {
		g.connections.mu.Unlock()
		return ErrConnectionExists
	}
	g.connections.connections[playerID] = conn
	g.connections.mu.Unlock()
	log.Infof("game %s: registered connection %p for player %s", g.ID, conn, playerID)

	g.mu.Lock()
	defer g.mu.Unlock()
	g.broadcastState()
	return nil
}

// UnregisterConnection drops conn if it is still the player's registered
// connection. It reports how many connections remain.
func (g *Game) UnregisterConnection(playerID string, conn Conn) int {
	g.connections.mu.Lock()
	defer g.connections.mu.Unlock()

	if current, exists := g.connections.connections[playerID]; exists && current == conn {
		log.Infof("game %s: unregistering connection for player %s", g.ID, playerID)
		delete(g.connections.connections, playerID)
	}
	return len(g.connections.connections)
}

// broadcastState queues a snapshot of the game for every connection.
// Callers hold g.mu, so snapshots are queued in the order they were taken
// and a single sender delivers them in that order.
func (g *Game) broadcastState() {
	msg, err := ws.NewMessage(ws.MessageTypeGameState, g.view())
	if err != nil {
		log.Errorf("game %s: failed to marshal state: %v", g.ID, err)
		return
	}

	g.outMu.Lock()
	defer g.outMu.Unlock()
	g.outbox = append(g.outbox, msg)
	if !g.draining {
		g.draining = true
		go g.drain()
	}
}

func (g *Game) drain() {
	for {
		g.outMu.Lock()
		if len(g.outbox) == 0 {
			g.draining = false
			g.outMu.Unlock()
			return
		}
		msg := g.outbox[0]
		g.outbox = g.outbox[1:]
		g.outMu.Unlock()

		g.send(msg)
	}
}

func (g *Game) send(msg ws.Message) {
	g.connections.mu.RLock()
	activeConnections := make(map[string]Conn, len(g.connections.connections))
	for playerID, conn := range g.connections.connections {
		activeConnections[playerID] = conn
	}
	g.connections.mu.RUnlock()

	for playerID, conn := range activeConnections {
		if err := conn.WriteJSON(msg); err != nil {
			log.Warnf("game %s: failed to send state to player %s: %v", g.ID, playerID, err)
			g.UnregisterConnection(playerID, conn)
		}
	}
}
