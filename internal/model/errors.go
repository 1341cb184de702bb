package model

import "errors"

var (
	ErrInvalidPosition = errors.New("invalid position")
	ErrInvalidMove     = errors.New("invalid move")
	ErrWrongPlayer     = errors.New("wrong player")
	ErrGameOver        = errors.New("game already over")
)
