package service

import (
	"encoding/json"
	"errors"
	"log"
	"sync"

	"github.com/ball46/checkers-game/internal/model"
	"github.com/ball46/checkers-game/internal/ws"
	"github.com/gofiber/websocket/v2"
)

var (
	ErrGameFull        = errors.New("game is full")
	ErrPlayerNotInGame = errors.New("player not in game")
	ErrNotYourTurn     = errors.New("not your turn")
)

// GameSession owns the latest committed engine state for one game, the two
// seated players, and the websocket observers watching it. The engine Game
// is an immutable value; the session mutex serializes move application so at
// most one move is in flight per game.
type GameSession struct {
	ID   string
	Name string

	mu        sync.Mutex
	game      model.Game
	white     string
	black     string
	drawOffer model.Color // side with a standing draw offer, empty when none

	connections *sessionConnections
}

type sessionConnections struct {
	mu    sync.RWMutex
	conns map[string]*websocket.Conn // playerID -> connection
}

func NewGameSession(id, name string) *GameSession {
	return &GameSession{
		ID:   id,
		Name: name,
		game: model.NewGame(),
		connections: &sessionConnections{
			conns: make(map[string]*websocket.Conn),
		},
	}
}

// AddPlayer seats playerID: White first, then Black. Rejoining returns the
// seat already held.
func (s *GameSession) AddPlayer(playerID string) (model.Color, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if color, ok := s.colorOf(playerID); ok {
		return color, nil
	}
	if s.white == "" {
		s.white = playerID
		return model.White, nil
	}
	if s.black == "" {
		s.black = playerID
		return model.Black, nil
	}
	return "", ErrGameFull
}

// colorOf must be called with s.mu held.
func (s *GameSession) colorOf(playerID string) (model.Color, bool) {
	switch playerID {
	case "":
		return "", false
	case s.white:
		return model.White, true
	case s.black:
		return model.Black, true
	}
	return "", false
}

// MakeMove applies one move for playerID and commits the resulting engine
// snapshot. On any rejection the committed state is untouched.
func (s *GameSession) MakeMove(playerID string, move model.Move) error {
	s.mu.Lock()
	color, ok := s.colorOf(playerID)
	if !ok {
		s.mu.Unlock()
		return ErrPlayerNotInGame
	}
	if color != s.game.ToMove() {
		s.mu.Unlock()
		return ErrNotYourTurn
	}
	next, err := s.game.ProposeMove(move)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	s.game = next
	s.drawOffer = "" // a standing draw offer lapses once a move commits
	snapshot := next.Snapshot()
	s.mu.Unlock()

	go s.broadcastState(snapshot)
	return nil
}

// Resign ends the game with playerID's opponent as winner.
func (s *GameSession) Resign(playerID string) error {
	s.mu.Lock()
	color, ok := s.colorOf(playerID)
	if !ok {
		s.mu.Unlock()
		return ErrPlayerNotInGame
	}
	next, err := s.game.Resign(color)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	s.game = next
	s.drawOffer = ""
	snapshot := next.Snapshot()
	s.mu.Unlock()

	go s.broadcastState(snapshot)
	return nil
}

// OfferDraw records playerID's draw offer. When the opponent already has a
// standing offer the game ends drawn; otherwise the offer is broadcast and
// stands until the opponent answers or a move commits.
func (s *GameSession) OfferDraw(playerID string) error {
	s.mu.Lock()
	color, ok := s.colorOf(playerID)
	if !ok {
		s.mu.Unlock()
		return ErrPlayerNotInGame
	}
	if s.drawOffer != "" && s.drawOffer != color {
		next, err := s.game.AgreeDraw()
		if err != nil {
			s.mu.Unlock()
			return err
		}
		s.game = next
		s.drawOffer = ""
		snapshot := next.Snapshot()
		s.mu.Unlock()

		go s.broadcastState(snapshot)
		return nil
	}
	if s.game.Status() == model.StatusGameOver {
		s.mu.Unlock()
		return model.ErrGameOver
	}
	s.drawOffer = color
	s.mu.Unlock()

	go s.broadcastDrawOffer(color)
	return nil
}

// DrawOffer returns the side with a standing offer, if any.
func (s *GameSession) DrawOffer() (model.Color, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.drawOffer, s.drawOffer != ""
}

// State returns the latest committed snapshot.
func (s *GameSession) State() model.GameSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.game.Snapshot()
}

// LegalMoves returns the mandatory-capture-filtered move map for color.
func (s *GameSession) LegalMoves(color model.Color) map[model.Position][]model.Move {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.game.ValidMovesForPlayer(color)
}

// RegisterConnection attaches a websocket observer and pushes the current
// state to it. Anyone may watch; only seated players may move.
func (s *GameSession) RegisterConnection(playerID string, conn *websocket.Conn) error {
	s.connections.mu.Lock()
	if existing, ok := s.connections.conns[playerID]; ok && existing != conn {
		existing.Close()
	}
	s.connections.conns[playerID] = conn
	s.connections.mu.Unlock()

	go s.broadcastState(s.State())
	return nil
}

func (s *GameSession) UnregisterConnection(playerID string) {
	s.connections.mu.Lock()
	defer s.connections.mu.Unlock()
	delete(s.connections.conns, playerID)
}

func (s *GameSession) broadcastState(snapshot model.GameSnapshot) {
	s.broadcast(ws.MessageTypeGameState, snapshot)
}

func (s *GameSession) broadcastDrawOffer(color model.Color) {
	s.broadcast(ws.MessageTypeDrawOffer, ws.DrawOfferPayload{Color: string(color)})
}

func (s *GameSession) broadcast(msgType ws.MessageType, payload any) {
	body, err := json.Marshal(payload)
	if err != nil {
		log.Printf("marshal %s for game %s: %v", msgType, s.ID, err)
		return
	}
	msg := ws.Message{
		Type:    msgType,
		Payload: json.RawMessage(body),
	}

	s.connections.mu.Lock()
	defer s.connections.mu.Unlock()
	for playerID, conn := range s.connections.conns {
		if err := conn.WriteJSON(msg); err != nil {
			log.Printf("send %s to %s in game %s: %v", msgType, playerID, s.ID, err)
			delete(s.connections.conns, playerID)
		}
	}
}
