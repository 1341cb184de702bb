package model

type Move struct {
	From Position `json:"from"`
	To   Position `json:"to"`
}

func (m Move) dx() int { return m.To.X - m.From.X }
func (m Move) dy() int { return m.To.Y - m.From.Y }

func (m Move) Diagonal() bool {
	return m.dx() != 0 && abs(m.dx()) == abs(m.dy())
}

// IsJump reports whether the move spans more than one square and therefore
// must capture to be legal. Moves wider than two squares are the flying-king
// long jump.
func (m Move) IsJump() bool {
	return abs(m.dx()) >= 2
}

func (m Move) distance() int {
	return abs(m.dx())
}

// step is the unit direction from origin to destination. Only meaningful
// for diagonal moves.
func (m Move) step() (int, int) {
	return sign(m.dx()), sign(m.dy())
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func sign(x int) int {
	switch {
	case x < 0:
		return -1
	case x > 0:
		return 1
	}
	return 0
}
