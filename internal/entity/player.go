package entity

// Player describes a seat at the board: who sits there and which mark they place.
type Player struct {
	Name   string `json:"name"   yaml:"name"`
	Symbol Symbol `json:"symbol" yaml:"symbol"`
}
