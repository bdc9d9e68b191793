package apperrors

import "errors"

var (
	ErrInvalidInput   = errors.New("invalid input")
	ErrNotFound       = errors.New("not found")
	ErrNoOpenEntry    = errors.New("no game is open")
	ErrRatingRequired = errors.New("please select a rating before submitting")
	ErrURLRequired    = errors.New("please enter a URL to embed")
	ErrUnknownTheme   = errors.New("unknown theme")
)
