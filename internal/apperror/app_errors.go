package apperror

import "errors"

// Error kinds. Transports map them to user-visible codes.
var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrIllegalState    = errors.New("illegal state")
	ErrNotFound        = errors.New("not found")
)

var (
	ErrInvalidMove       = newError(ErrInvalidArgument, "invalid move")
	ErrGameFinished      = newError(ErrIllegalState, "game is already finished")
	ErrNoAvailableMoves  = newError(ErrIllegalState, "no available moves")
	ErrConcurrentUpdate  = newError(ErrIllegalState, "game was concurrently modified")
	ErrGameNotFound      = newError(ErrNotFound, "game not found")
	ErrGameAlreadyExists = newError(ErrIllegalState, "game already exists")
)

// Error is an application error bound to one of the error kinds.
type Error struct {
	Kind    error
	Message string
}

func newError(kind error, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func (that *Error) Error() string {
	return that.Message
}

func (that *Error) Unwrap() error {
	return that.Kind
}

// Code returns a stable short name for the kind of err.
func Code(err error) string {
	switch {
	case errors.Is(err, ErrInvalidArgument):
		return "invalid_argument"
	case errors.Is(err, ErrIllegalState):
		return "illegal_state"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	default:
		return "internal"
	}
}
