package game

import "errors"

var (
	ErrInvalidConfiguration = errors.New("invalid game configuration")
	ErrUnknownRole          = errors.New("unknown role")
	ErrGameFinished         = errors.New("game has already finished")
)
