package entity

import "fmt"

type Status string

const (
	StatusOngoing Status = "ongoing"
	StatusWin     Status = "win"
	StatusTie     Status = "tie"
)

// Outcome is the evaluation of a board: the game goes on, one symbol won, or it is a tie.
type Outcome struct {
	Status Status `json:"status"`
	Winner Symbol `json:"winner,omitempty"`
}

func Ongoing() Outcome {
	return Outcome{Status: StatusOngoing}
}

func Win(symbol Symbol) Outcome {
	return Outcome{Status: StatusWin, Winner: symbol}
}

func Tie() Outcome {
	return Outcome{Status: StatusTie}
}

// IsTerminal reports whether no further moves are played.
func (that Outcome) IsTerminal() bool {
	return that.Status == StatusWin || that.Status == StatusTie
}

func (that Outcome) IsOngoing() bool {
	return that.Status == StatusOngoing
}

func (that Outcome) IsTie() bool {
	return that.Status == StatusTie
}

// IsWinFor reports whether symbol won the game.
func (that Outcome) IsWinFor(symbol Symbol) bool {
	return that.Status == StatusWin && that.Winner == symbol
}

// IsLossFor reports whether a symbol other than the given one won the game.
func (that Outcome) IsLossFor(symbol Symbol) bool {
	return that.Status == StatusWin && that.Winner != symbol
}

func (that Outcome) String() string {
	if that.Status == StatusWin {
		return fmt.Sprintf("%s %s", that.Status, that.Winner)
	}

	return string(that.Status)
}
