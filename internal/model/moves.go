package model

// Enumeration walks the four diagonals in a fixed order (up-left, up-right,
// down-left, down-right, with up toward y = 0) and scans each ray outward,
// so the produced move order is stable.
var diagonals = [4]Position{
	{X: -1, Y: -1},
	{X: 1, Y: -1},
	{X: -1, Y: 1},
	{X: 1, Y: 1},
}

type MoveSet struct {
	Slides []Move `json:"slides"`
	Jumps  []Move `json:"jumps"`
}

func (ms MoveSet) Empty() bool {
	return len(ms.Slides) == 0 && len(ms.Jumps) == 0
}

// MovesFrom enumerates the legal slides and jumps for color's piece at pos.
// The result is empty when the square is out of bounds, vacant, or holds an
// enemy piece. Mandatory-capture filtering is the Game's concern, not the
// enumerator's.
func (b Board) MovesFrom(pos Position, color Color) MoveSet {
	var ms MoveSet
	if !pos.IsValid() {
		return ms
	}
	piece := b.at(pos)
	if piece == nil || piece.Color != color {
		return ms
	}
	for _, dir := range diagonals {
		if piece.King && b.rules.FlyingKings {
			b.kingRayMoves(pos, *piece, dir, &ms)
			continue
		}
		adj := pos.offset(dir.X, dir.Y)
		if !adj.IsValid() {
			continue
		}
		target := b.at(adj)
		if target == nil {
			if piece.King || dir.Y == color.forwardY() {
				ms.Slides = append(ms.Slides, Move{From: pos, To: adj})
			}
			continue
		}
		if target.Color == color {
			continue
		}
		if land := adj.offset(dir.X, dir.Y); land.IsValid() && b.at(land) == nil {
			ms.Jumps = append(ms.Jumps, Move{From: pos, To: land})
		}
	}
	return ms
}

// kingRayMoves walks one diagonal for a flying king: empty squares are
// slides, and once the first enemy piece is hit every empty square beyond it
// is a long-jump landing. An own piece blocks the ray.
func (b Board) kingRayMoves(pos Position, piece Piece, dir Position, ms *MoveSet) {
	cur := pos.offset(dir.X, dir.Y)
	for cur.IsValid() && b.at(cur) == nil {
		ms.Slides = append(ms.Slides, Move{From: pos, To: cur})
		cur = cur.offset(dir.X, dir.Y)
	}
	if !cur.IsValid() || b.at(cur).Color == piece.Color {
		return
	}
	for land := cur.offset(dir.X, dir.Y); land.IsValid() && b.at(land) == nil; land = land.offset(dir.X, dir.Y) {
		ms.Jumps = append(ms.Jumps, Move{From: pos, To: land})
	}
}

// AllMovesFor scans every square owned by color and collects the non-empty
// per-square move sets.
func (b Board) AllMovesFor(color Color) map[Position]MoveSet {
	moves := make(map[Position]MoveSet)
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			pos := Position{X: x, Y: y}
			piece := b.at(pos)
			if piece == nil || piece.Color != color {
				continue
			}
			if ms := b.MovesFrom(pos, color); !ms.Empty() {
				moves[pos] = ms
			}
		}
	}
	return moves
}

// HasJump reports whether color has any capturing move on the board.
func (b Board) HasJump(color Color) bool {
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			pos := Position{X: x, Y: y}
			piece := b.at(pos)
			if piece == nil || piece.Color != color {
				continue
			}
			if len(b.MovesFrom(pos, color).Jumps) > 0 {
				return true
			}
		}
	}
	return false
}

// hasAnyMove is the terminal-detection probe: cheaper than AllMovesFor
// because it stops at the first legal move.
func (b Board) hasAnyMove(color Color) bool {
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			pos := Position{X: x, Y: y}
			piece := b.at(pos)
			if piece == nil || piece.Color != color {
				continue
			}
			if !b.MovesFrom(pos, color).Empty() {
				return true
			}
		}
	}
	return false
}
