package model

type Color string

const (
	White Color = "white"
	Black Color = "black"
)

func (c Color) Opponent() Color {
	if c == White {
		return Black
	}
	return White
}

// forwardY is the rank direction a man advances in: White toward y = 0,
// Black toward y = 7.
func (c Color) forwardY() int {
	if c == White {
		return -1
	}
	return 1
}

// promotionRank is the opponent's home rank, where a man is crowned.
func (c Color) promotionRank() int {
	if c == White {
		return 0
	}
	return 7
}

type Piece struct {
	Color Color `json:"color"`
	King  bool  `json:"isKing"`
}

// Promote returns the crowned copy of the piece.
func (p Piece) Promote() Piece {
	return Piece{Color: p.Color, King: true}
}
