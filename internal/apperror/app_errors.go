package apperror

import "errors"

var (
	ErrInvalidCell     = errors.New("invalid cell index")
	ErrCellOccupied    = errors.New("cell is already occupied")
	ErrEmptySymbol     = errors.New("agent symbol is empty")
	ErrSameSymbol      = errors.New("agents share the same symbol")
	ErrInvalidSymbol   = errors.New("symbol must be a single character other than '.'")
	ErrWrongSymbol     = errors.New("symbol is not served by this policy")
	ErrNilAgent        = errors.New("agent is nil")
	ErrNoLegalMoves    = errors.New("no legal moves")
	ErrGameFinished    = errors.New("game is already finished")
	ErrInvalidBoard    = errors.New("invalid board")
	ErrPolicyNotFound  = errors.New("policy not found")
	ErrRunNotFound     = errors.New("training run not found")
	ErrStorageDisabled = errors.New("storage is disabled")
)
