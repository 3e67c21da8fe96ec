package mahjong

import "errors"

// Structural input errors. They are reported before any oracle call.
var (
	ErrInvalidTile       = errors.New("invalid tile")
	ErrInvalidHandLength = errors.New("invalid hand length")
	ErrInvalidWinTile    = errors.New("invalid winning tile")
	ErrInvalidWind       = errors.New("invalid wind")
	ErrCopiesExhausted   = errors.New("more than four copies of a tile")
)
