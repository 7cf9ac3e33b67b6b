package tictactoe

import "github.com/rocketscienceinc/tictactoe-rl/internal/entity"

// Successors returns every board reachable by symbol in one move, in ascending cell order.
// A full board has no successors.
func Successors(board entity.Board, symbol entity.Symbol) []entity.Board {
	empty := board.EmptyCells()

	successors := make([]entity.Board, 0, len(empty))
	for _, cell := range empty {
		successors = append(successors, board.Place(cell, symbol))
	}

	return successors
}

// MoveCell returns the only cell that differs between two boards, or -1 when
// the boards are equal or differ in more than one cell.
func MoveCell(from, to entity.Board) int {
	cell := -1
	for i := range from {
		if from[i] == to[i] {
			continue
		}

		if cell != -1 {
			return -1
		}
		cell = i
	}

	return cell
}

// IsSuccessor reports whether next is reachable from board by symbol filling one empty cell.
func IsSuccessor(board, next entity.Board, symbol entity.Symbol) bool {
	cell := MoveCell(board, next)
	if cell == -1 {
		return false
	}

	return board[cell] == entity.EmptyCell && next[cell] == symbol
}

// SuccessorAt returns the successor that fills cell, if it is among the candidates.
func SuccessorAt(board entity.Board, successors []entity.Board, cell int) (entity.Board, bool) {
	for _, successor := range successors {
		if MoveCell(board, successor) == cell {
			return successor, true
		}
	}

	return entity.Board{}, false
}
