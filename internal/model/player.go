package model

// Player is a human seat in a game; the engine takes the other colour.
type Player struct {
	ID    string
	Color Color
}

type ClientPlayer struct {
	ID       string `json:"name"`
	Color    Color  `json:"color"`
	IsEngine bool   `json:"isEngine"`
}
