package world

import "errors"

var (
	// ErrOutOfBounds - координата вне пределов сетки
	ErrOutOfBounds = errors.New("coordinate out of bounds")
	// ErrLayerOutOfRange - уровень объекта вне [0, Levels)
	ErrLayerOutOfRange = errors.New("object level out of range")
	// ErrInvalidSize - неположительные размеры при создании сетки
	ErrInvalidSize = errors.New("invalid grid size")
)
