package tictactoe

import "github.com/rocketscienceinc/tictactoe-rl/internal/entity"

// WinCombos lists the cell triples that win the game: rows, columns, then diagonals.
var WinCombos = [8][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// Evaluate returns the outcome of the board. Lines are checked in WinCombos order and
// a win is reported before a full board is considered a tie.
func Evaluate(board entity.Board) entity.Outcome {
	for _, combo := range WinCombos {
		a, b, c := board[combo[0]], board[combo[1]], board[combo[2]]
		if a != entity.EmptyCell && a == b && b == c {
			return entity.Win(a)
		}
	}

	// the game goes on while any cell is empty
	if !board.IsFull() {
		return entity.Ongoing()
	}

	return entity.Tie()
}
