package entity

import (
	"strings"
	"unicode/utf8"
)

const (
	PlayerX Symbol = "X"
	PlayerO Symbol = "O"

	EmptyCell Symbol = ""

	BoardSize = 9

	// emptyKeyRune marks an empty cell in Board.Key.
	emptyKeyRune = "."
)

// Symbol is the mark a player places on the board.
type Symbol string

func (that Symbol) IsEmpty() bool {
	return that == EmptyCell
}

// IsValid reports whether the symbol can be placed on a board: a single rune
// other than the empty cell marker of Board.Key.
func (that Symbol) IsValid() bool {
	return utf8.RuneCountInString(string(that)) == 1 && string(that) != emptyKeyRune
}

// Board is a full snapshot of the nine cells, indexed row by row.
// It is a value type: copies never share cells.
type Board [BoardSize]Symbol

// NewBoard returns an empty board.
func NewBoard() Board {
	return Board{}
}

// Place returns a copy of the board with the cell set to symbol.
// The receiver is left untouched.
func (that Board) Place(cell int, symbol Symbol) Board {
	next := that
	next[cell] = symbol

	return next
}

func (that Board) IsEmptyCell(cell int) bool {
	return that[cell] == EmptyCell
}

// EmptyCells returns the indexes of the empty cells in ascending order.
func (that Board) EmptyCells() []int {
	cells := make([]int, 0, BoardSize)
	for i, cell := range that {
		if cell == EmptyCell {
			cells = append(cells, i)
		}
	}

	return cells
}

func (that Board) IsFull() bool {
	for _, cell := range that {
		if cell == EmptyCell {
			return false
		}
	}

	return true
}

// Key encodes the board as a stable string, one rune per cell and "." for empty cells.
// Keys are unique per board only while every placed symbol is valid, see Symbol.IsValid.
func (that Board) Key() string {
	var builder strings.Builder
	for _, cell := range that {
		if cell == EmptyCell {
			builder.WriteString(emptyKeyRune)
			continue
		}
		builder.WriteString(string(cell))
	}

	return builder.String()
}

// ParseBoard builds a board from a slice of cells, as received from JSON clients.
func ParseBoard(cells []string) (Board, bool) {
	var board Board
	if len(cells) != BoardSize {
		return board, false
	}

	for i, cell := range cells {
		board[i] = Symbol(strings.TrimSpace(cell))
	}

	return board, true
}
