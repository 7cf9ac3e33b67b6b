package agent

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-rl/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-rl/internal/entity"
	"github.com/rocketscienceinc/tictactoe-rl/internal/tictactoe"
)

func TestHuman_Choose(t *testing.T) {
	board := entity.NewBoard().Place(4, entity.PlayerX)
	successors := tictactoe.Successors(board, entity.PlayerO)

	t.Run("Valid Cell", func(t *testing.T) {
		// Given: a human typing 9
		out := &bytes.Buffer{}
		human := NewHuman("Alice", entity.PlayerO, strings.NewReader("9\n"), out)

		// When: the human chooses
		chosen, err := human.Choose(board, successors, true)

		// Then: the bottom-right corner is taken and the prompt was shown
		require.NoError(t, err)
		require.Equal(t, board.Place(8, entity.PlayerO), chosen)
		assert.Contains(t, out.String(), "Alice, choose a cell (1-9): ")
	})

	t.Run("Reprompts On Invalid Input", func(t *testing.T) {
		// Given: a human typing garbage, an out of range cell, the occupied center, then 1
		out := &bytes.Buffer{}
		human := NewHuman("Alice", entity.PlayerO, strings.NewReader("abc\n10\n5\n 1 \n"), out)

		// When: the human chooses
		chosen, err := human.Choose(board, successors, true)

		// Then: the first valid cell wins after three reports
		require.NoError(t, err)
		require.Equal(t, board.Place(0, entity.PlayerO), chosen)
		assert.Equal(t, 4, strings.Count(out.String(), "choose a cell"))
		assert.Equal(t, 3, strings.Count(out.String(), "invalid move"))
		assert.Contains(t, out.String(), apperror.ErrCellOccupied.Error())
	})

	t.Run("Silent Without Display", func(t *testing.T) {
		out := &bytes.Buffer{}
		human := NewHuman("Alice", entity.PlayerO, strings.NewReader("0\n2\n"), out)

		chosen, err := human.Choose(board, successors, false)

		require.NoError(t, err)
		require.Equal(t, board.Place(1, entity.PlayerO), chosen)
		assert.Empty(t, out.String())
	})

	t.Run("Closed Input", func(t *testing.T) {
		human := NewHuman("Alice", entity.PlayerO, strings.NewReader("5\n"), io.Discard)

		_, err := human.Choose(board, successors, false)

		require.ErrorIs(t, err, io.ErrUnexpectedEOF)
	})
}

func TestHuman_parse(t *testing.T) {
	board := entity.NewBoard().Place(0, entity.PlayerX)
	successors := tictactoe.Successors(board, entity.PlayerO)
	human := NewHuman("Alice", entity.PlayerO, strings.NewReader(""), io.Discard)

	tests := []struct {
		name  string
		input string
		err   error
	}{
		{name: "Not A Number", input: "x", err: apperror.ErrInvalidCell},
		{name: "Zero", input: "0", err: apperror.ErrInvalidCell},
		{name: "Too Large", input: "10", err: apperror.ErrInvalidCell},
		{name: "Occupied", input: "1", err: apperror.ErrCellOccupied},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := human.parse(board, successors, tt.input)

			var inputErr *InputError
			require.True(t, errors.As(err, &inputErr))
			assert.Equal(t, tt.input, inputErr.Input)
			assert.ErrorIs(t, err, tt.err)
		})
	}
}
