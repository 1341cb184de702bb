package model

// Position is a 0-indexed board coordinate. Y = 0 is Black's starting edge,
// Y = 7 is White's.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (p Position) IsValid() bool {
	return p.X >= 0 && p.X < 8 && p.Y >= 0 && p.Y < 8
}

// IsDark reports whether the square is one of the 32 playable dark squares.
func (p Position) IsDark() bool {
	return (p.X+p.Y)%2 == 1
}

func (p Position) offset(dx, dy int) Position {
	return Position{X: p.X + dx, Y: p.Y + dy}
}
