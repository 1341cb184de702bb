package model

import "fmt"

// Board is an 8x8 grid of optional pieces. It is a value type: Apply returns
// a fresh Board and never touches the receiver, so two snapshots never alias.
// Piece values are immutable once placed, which makes sharing their pointers
// between snapshots safe.
type Board struct {
	squares [8][8]*Piece
	rules   Rules
}

// Cell is one entry of the flat board export consumed by the API and GUI
// layers: 64 cells ordered row by row, y then x.
type Cell struct {
	Position Position `json:"position"`
	Piece    *Piece   `json:"piece"`
}

func newBoard(rules Rules) Board {
	b := Board{rules: rules}
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			pos := Position{X: x, Y: y}
			if !pos.IsDark() {
				continue
			}
			switch {
			case y < 3:
				b.squares[y][x] = &Piece{Color: Black}
			case y > 4:
				b.squares[y][x] = &Piece{Color: White}
			}
		}
	}
	return b
}

func (b Board) Get(pos Position) (*Piece, error) {
	if !pos.IsValid() {
		return nil, fmt.Errorf("%w: (%d,%d)", ErrInvalidPosition, pos.X, pos.Y)
	}
	return b.at(pos), nil
}

// at skips bounds checking; callers must hold a valid position.
func (b Board) at(pos Position) *Piece {
	return b.squares[pos.Y][pos.X]
}

func (b Board) Cells() []Cell {
	cells := make([]Cell, 0, 64)
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			cells = append(cells, Cell{
				Position: Position{X: x, Y: y},
				Piece:    b.squares[y][x],
			})
		}
	}
	return cells
}

// Apply validates and performs a single move for mover, returning the
// resulting board. Validation order is fixed: bounds, diagonality, piece
// presence, ownership, then direction and occupancy/capture.
func (b Board) Apply(move Move, mover Color) (Board, error) {
	if !move.From.IsValid() || !move.To.IsValid() {
		return Board{}, fmt.Errorf("%w: move %v out of bounds", ErrInvalidPosition, move)
	}
	if !move.Diagonal() {
		return Board{}, fmt.Errorf("%w: %v is not diagonal", ErrInvalidMove, move)
	}
	piece := b.at(move.From)
	if piece == nil {
		return Board{}, fmt.Errorf("%w: no piece at (%d,%d)", ErrInvalidMove, move.From.X, move.From.Y)
	}
	if piece.Color != mover {
		return Board{}, fmt.Errorf("%w: piece at (%d,%d) is %s", ErrWrongPlayer, move.From.X, move.From.Y, piece.Color)
	}

	var captured *Position
	if move.IsJump() {
		capPos, err := b.capturedSquare(move, *piece)
		if err != nil {
			return Board{}, err
		}
		captured = &capPos
	} else {
		if err := b.validateSlide(move, *piece); err != nil {
			return Board{}, err
		}
	}
	if b.at(move.To) != nil {
		return Board{}, fmt.Errorf("%w: destination (%d,%d) is occupied", ErrInvalidMove, move.To.X, move.To.Y)
	}

	// The receiver is already a copy; mutating it leaves the caller's board
	// untouched.
	b.squares[move.From.Y][move.From.X] = nil
	if captured != nil {
		b.squares[captured.Y][captured.X] = nil
	}
	placed := *piece
	if !placed.King && move.To.Y == placed.Color.promotionRank() {
		placed = placed.Promote()
	}
	b.squares[move.To.Y][move.To.X] = &placed
	return b, nil
}

func (b Board) validateSlide(move Move, piece Piece) error {
	if piece.King && b.rules.FlyingKings {
		// Any distance over empty squares.
		dx, dy := move.step()
		for cur := move.From.offset(dx, dy); cur != move.To; cur = cur.offset(dx, dy) {
			if b.at(cur) != nil {
				return fmt.Errorf("%w: path through (%d,%d) is blocked", ErrInvalidMove, cur.X, cur.Y)
			}
		}
		return nil
	}
	if move.distance() != 1 {
		return fmt.Errorf("%w: %v moves too far without capturing", ErrInvalidMove, move)
	}
	if !piece.King && move.dy() != piece.Color.forwardY() {
		return fmt.Errorf("%w: men may not move backward", ErrInvalidMove)
	}
	return nil
}

// capturedSquare locates the single enemy piece a jump takes. For the simple
// two-square jump that is the midpoint; for the flying-king long jump it is
// the first piece on the ray, which must be an enemy with every other ray
// square empty.
func (b Board) capturedSquare(move Move, piece Piece) (Position, error) {
	dx, dy := move.step()
	if move.distance() == 2 {
		mid := move.From.offset(dx, dy)
		target := b.at(mid)
		if target == nil || target.Color == piece.Color {
			return Position{}, fmt.Errorf("%w: no enemy piece to capture at (%d,%d)", ErrInvalidMove, mid.X, mid.Y)
		}
		return mid, nil
	}
	if !piece.King || !b.rules.FlyingKings {
		return Position{}, fmt.Errorf("%w: %v is too far for this piece", ErrInvalidMove, move)
	}
	var capPos *Position
	for cur := move.From.offset(dx, dy); cur != move.To; cur = cur.offset(dx, dy) {
		target := b.at(cur)
		if target == nil {
			continue
		}
		if target.Color == piece.Color {
			return Position{}, fmt.Errorf("%w: own piece blocks the path at (%d,%d)", ErrInvalidMove, cur.X, cur.Y)
		}
		if capPos != nil {
			return Position{}, fmt.Errorf("%w: more than one piece on the capture path", ErrInvalidMove)
		}
		pos := cur
		capPos = &pos
	}
	if capPos == nil {
		return Position{}, fmt.Errorf("%w: no piece to capture between %v and %v", ErrInvalidMove, move.From, move.To)
	}
	return *capPos, nil
}
