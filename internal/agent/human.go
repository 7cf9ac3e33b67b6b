package agent

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rocketscienceinc/tictactoe-rl/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-rl/internal/entity"
	"github.com/rocketscienceinc/tictactoe-rl/internal/tictactoe"
)

// InputError describes a line typed by a human that does not map to a legal move.
type InputError struct {
	Input string
	Err   error
}

func (that *InputError) Error() string {
	return fmt.Sprintf("%q: %v", that.Input, that.Err)
}

func (that *InputError) Unwrap() error {
	return that.Err
}

// Human reads cell numbers 1-9, row by row, from an input stream.
type Human struct {
	identity

	scanner *bufio.Scanner
	out     io.Writer
}

func NewHuman(name string, symbol entity.Symbol, in io.Reader, out io.Writer) *Human {
	return &Human{
		identity: identity{name: name, symbol: symbol},
		scanner:  bufio.NewScanner(in),
		out:      out,
	}
}

// Choose prompts until the human names an empty cell. Invalid input is reported
// and asked again; only a failing or closed input stream returns an error.
func (that *Human) Choose(board entity.Board, successors []entity.Board, display bool) (entity.Board, error) {
	if len(successors) == 0 {
		return board, apperror.ErrNoLegalMoves
	}

	for {
		if display {
			fmt.Fprintf(that.out, "%s, choose a cell (1-%d): ", that.name, entity.BoardSize)
		}

		if !that.scanner.Scan() {
			err := that.scanner.Err()
			if err == nil {
				err = io.ErrUnexpectedEOF
			}

			return board, fmt.Errorf("failed to read move: %w", err)
		}

		successor, err := that.parse(board, successors, that.scanner.Text())
		if err != nil {
			if display {
				fmt.Fprintf(that.out, "invalid move %v\n", err)
			}
			continue
		}

		return successor, nil
	}
}

func (that *Human) parse(board entity.Board, successors []entity.Board, line string) (entity.Board, error) {
	input := strings.TrimSpace(line)

	number, err := strconv.Atoi(input)
	if err != nil || number < 1 || number > entity.BoardSize {
		return board, &InputError{Input: input, Err: apperror.ErrInvalidCell}
	}

	cell := number - 1
	if !board.IsEmptyCell(cell) {
		return board, &InputError{Input: input, Err: apperror.ErrCellOccupied}
	}

	successor, ok := tictactoe.SuccessorAt(board, successors, cell)
	if !ok {
		return board, &InputError{Input: input, Err: apperror.ErrCellOccupied}
	}

	return successor, nil
}
