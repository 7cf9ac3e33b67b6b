package display

import (
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"

	"github.com/rocketscienceinc/tictactoe-rl/internal/entity"
)

const rowSeparator = "---+---+---"

// Console draws the board as a 3x3 grid. The first player's marks are red,
// the second player's white, and empty cells show the number a human types to take them.
type Console struct {
	out io.Writer

	first  *color.Color
	second *color.Color
	grid   *color.Color
}

func NewConsole(out io.Writer) *Console {
	return &Console{
		out:    out,
		first:  color.New(color.FgRed, color.Bold),
		second: color.New(color.FgWhite, color.Bold),
		grid:   color.New(color.FgBlue),
	}
}

func (that *Console) Render(board entity.Board, symbols [2]entity.Symbol) {
	fmt.Fprintln(that.out)

	for row := range 3 {
		for col := range 3 {
			cell := 3*row + col

			switch board[cell] {
			case entity.EmptyCell:
				that.grid.Fprintf(that.out, " %s ", strconv.Itoa(cell+1))
			case symbols[0]:
				that.first.Fprintf(that.out, " %s ", board[cell])
			case symbols[1]:
				that.second.Fprintf(that.out, " %s ", board[cell])
			default:
				fmt.Fprintf(that.out, " %s ", board[cell])
			}

			if col < 2 {
				that.grid.Fprint(that.out, "|")
			}
		}
		fmt.Fprintln(that.out)

		if row < 2 {
			that.grid.Fprintln(that.out, rowSeparator)
		}
	}

	fmt.Fprintln(that.out)
}

func (that *Console) Announce(message string) {
	fmt.Fprintln(that.out, message)
}
