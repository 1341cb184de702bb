package model

import "fmt"

type GameStatus string

const (
	StatusInProgress GameStatus = "inProgress"
	StatusGameOver   GameStatus = "gameOver"
)

// Game is the turn state machine. It is a value: ProposeMove returns the
// next Game and never mutates the receiver, so a rejected move has no
// observable effect on the caller's state.
type Game struct {
	board            Board
	toMove           Color
	status           GameStatus
	winner           *Color
	continuation     bool
	continuationFrom Position
}

// GameSnapshot is the wire-facing export of a Game: a flat 64-cell board
// plus turn and status fields. Winner is nil while in progress and for a
// draw.
type GameSnapshot struct {
	Board            []Cell     `json:"board"`
	ToMove           Color      `json:"toMove"`
	Status           GameStatus `json:"status"`
	Winner           *Color     `json:"winner"`
	Continuation     bool       `json:"continuation"`
	ContinuationFrom *Position  `json:"continuationFrom"`
}

func NewGame() Game {
	return NewGameWithRules(DefaultRules())
}

func NewGameWithRules(rules Rules) Game {
	return Game{
		board:  newBoard(rules),
		toMove: White,
		status: StatusInProgress,
	}
}

func (g Game) Board() Board       { return g.board }
func (g Game) ToMove() Color      { return g.toMove }
func (g Game) Status() GameStatus { return g.status }
func (g Game) Winner() *Color     { return g.winner }

// InContinuation reports whether the side to move is locked into a
// multi-jump, and from which square it must continue.
func (g Game) InContinuation() (bool, Position) {
	return g.continuation, g.continuationFrom
}

func (g Game) Snapshot() GameSnapshot {
	snap := GameSnapshot{
		Board:        g.board.Cells(),
		ToMove:       g.toMove,
		Status:       g.status,
		Winner:       g.winner,
		Continuation: g.continuation,
	}
	if g.continuation {
		from := g.continuationFrom
		snap.ContinuationFrom = &from
	}
	return snap
}

// ProposeMove validates move for the side to move and returns the resulting
// Game. Capture is mandatory: while any jump exists for the mover only jumps
// are legal, and after a jump the same piece must keep jumping while it can
// (the turn does not pass).
func (g Game) ProposeMove(move Move) (Game, error) {
	if g.status == StatusGameOver {
		return Game{}, ErrGameOver
	}
	if !containsMove(g.legalMovesFrom(move.From), move) {
		return Game{}, fmt.Errorf("%w: %v is not legal for %s", ErrInvalidMove, move, g.toMove)
	}
	board, err := g.board.Apply(move, g.toMove)
	if err != nil {
		return Game{}, fmt.Errorf("apply move: %w", err)
	}

	next := g
	next.board = board
	if move.IsJump() && len(board.MovesFrom(move.To, g.toMove).Jumps) > 0 {
		next.continuation = true
		next.continuationFrom = move.To
		return next, nil
	}
	next.continuation = false
	next.continuationFrom = Position{}
	next.toMove = g.toMove.Opponent()
	next.resolveStatus()
	return next, nil
}

// Resign ends the game immediately with color's opponent as winner. Either
// side may resign, whoever's turn it is.
func (g Game) Resign(color Color) (Game, error) {
	if g.status == StatusGameOver {
		return Game{}, ErrGameOver
	}
	next := g
	winner := color.Opponent()
	next.status = StatusGameOver
	next.winner = &winner
	next.continuation = false
	next.continuationFrom = Position{}
	return next, nil
}

// AgreeDraw ends the game with no winner. Whether both sides actually
// agreed is the session layer's concern.
func (g Game) AgreeDraw() (Game, error) {
	if g.status == StatusGameOver {
		return Game{}, ErrGameOver
	}
	next := g
	next.status = StatusGameOver
	next.winner = nil
	next.continuation = false
	next.continuationFrom = Position{}
	return next, nil
}

// resolveStatus ends the game when the side to move is out of moves: the
// previous mover wins, unless it too would be unable to move, which is a
// draw.
func (g *Game) resolveStatus() {
	if g.board.hasAnyMove(g.toMove) {
		return
	}
	g.status = StatusGameOver
	if mover := g.toMove.Opponent(); g.board.hasAnyMove(mover) {
		g.winner = &mover
	}
}

// legalMovesFrom is the mandatory-capture-filtered legal set from a single
// square for the side to move.
func (g Game) legalMovesFrom(from Position) []Move {
	if g.continuation {
		if from != g.continuationFrom {
			return nil
		}
		return g.board.MovesFrom(from, g.toMove).Jumps
	}
	ms := g.board.MovesFrom(from, g.toMove)
	if g.board.HasJump(g.toMove) {
		return ms.Jumps
	}
	return ms.Slides
}

// ValidMovesForPlayer maps each of color's squares to its legal moves under
// the current mandatory-capture and continuation constraints. During a
// continuation only the continuing piece's jumps appear, and only for the
// side to move.
func (g Game) ValidMovesForPlayer(color Color) map[Position][]Move {
	moves := make(map[Position][]Move)
	if g.status == StatusGameOver {
		return moves
	}
	if g.continuation {
		if color != g.toMove {
			return moves
		}
		if jumps := g.board.MovesFrom(g.continuationFrom, color).Jumps; len(jumps) > 0 {
			moves[g.continuationFrom] = jumps
		}
		return moves
	}
	mustJump := g.board.HasJump(color)
	for pos, ms := range g.board.AllMovesFor(color) {
		if mustJump {
			if len(ms.Jumps) > 0 {
				moves[pos] = ms.Jumps
			}
			continue
		}
		if len(ms.Slides) > 0 {
			moves[pos] = ms.Slides
		}
	}
	return moves
}

func containsMove(moves []Move, move Move) bool {
	for _, m := range moves {
		if m == move {
			return true
		}
	}
	return false
}
