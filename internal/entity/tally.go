package entity

// Tally counts the outcomes of a batch of games.
type Tally struct {
	Games int            `json:"games"`
	Ties  int            `json:"ties"`
	Wins  map[Symbol]int `json:"wins"`
}

func NewTally() Tally {
	return Tally{Wins: make(map[Symbol]int)}
}

// Add records a terminal outcome. Ongoing outcomes are ignored.
func (that *Tally) Add(outcome Outcome) {
	if !outcome.IsTerminal() {
		return
	}

	if that.Wins == nil {
		that.Wins = make(map[Symbol]int)
	}

	that.Games++
	if outcome.IsTie() {
		that.Ties++
		return
	}

	that.Wins[outcome.Winner]++
}

// Losses returns how many games symbol lost.
func (that Tally) Losses(symbol Symbol) int {
	return that.Games - that.Ties - that.Wins[symbol]
}

// WinRate returns the share of games won by symbol, 0 for an empty tally.
func (that Tally) WinRate(symbol Symbol) float64 {
	if that.Games == 0 {
		return 0
	}

	return float64(that.Wins[symbol]) / float64(that.Games)
}
