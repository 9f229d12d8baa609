package model

// GameView is the JSON snapshot sent to clients.
type GameView struct {
	Board           [][]*PieceView `json:"board"`
	ToMove          Color          `json:"toMove"`
	IsCheck         bool           `json:"isCheck"`
	IsCheckmate     bool           `json:"isCheckmate"`
	IsStalemate     bool           `json:"isStalemate"`
	Status          string         `json:"status"`
	LegalMoves      []string       `json:"legalMoves"`
	MoveLog         []string       `json:"moveLog"`
	EnPassantTarget *string        `json:"enPassantTarget"`
	LastMove        *string        `json:"lastMove"`
	FEN             string         `json:"fen"`
	Players         struct {
		White ClientPlayer `json:"white"`
		Black ClientPlayer `json:"black"`
	} `json:"players"`
	Clocks map[Color]ClientClock `json:"clocks"`
}

// NewGameView snapshots g. The engine plays whichever colour human does not.
func NewGameView(g *GameState, human Player, clocks *Clocks) GameView {
	view := GameView{
		Board:       g.Board.Snapshot(),
		ToMove:      g.Turn,
		IsCheck:     g.IsCheck,
		IsCheckmate: g.IsCheckmate,
		IsStalemate: g.IsStalemate,
		Status:      g.Status(),
		LegalMoves:  []string{},
		MoveLog:     g.MoveLog(),
		FEN:         g.FEN(),
		Clocks:      clocks.Client(),
	}
	for _, m := range g.LegalMoves() {
		view.LegalMoves = append(view.LegalMoves, m.String())
	}
	if ep := g.Board.EnPassantTarget; ep != nil {
		s := ep.String()
		view.EnPassantTarget = &s
	}
	if last, ok := g.LastMove(); ok {
		s := last.String()
		view.LastMove = &s
	}

	engine := ClientPlayer{ID: "engine", Color: human.Color.Opposite(), IsEngine: true}
	player := ClientPlayer{ID: human.ID, Color: human.Color}
	if human.Color == White {
		view.Players.White, view.Players.Black = player, engine
	} else {
		view.Players.White, view.Players.Black = engine, player
	}
	return view
}
