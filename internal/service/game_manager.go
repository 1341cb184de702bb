package service

import (
	"errors"
	"sort"
	"sync"

	"github.com/ball46/checkers-game/internal/model"
	"github.com/google/uuid"
)

var (
	ErrGameNotFound = errors.New("game not found")
	ErrNameTaken    = errors.New("game name already taken")
)

// GameManager is the keyed session registry: uuid-assigned IDs, optional
// unique names, concurrent create/find/delete. Per-game serialization lives
// inside each GameSession, so unrelated games never contend here beyond the
// map lookup.
type GameManager struct {
	mu    sync.RWMutex
	games map[string]*GameSession
	names map[string]string // name -> gameID
}

func NewGameManager() *GameManager {
	return &GameManager{
		games: make(map[string]*GameSession),
		names: make(map[string]string),
	}
}

// CreateGame registers a new session. An empty name is allowed and not
// indexed; a non-empty name must be unused.
func (gm *GameManager) CreateGame(name string) (*GameSession, error) {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if name != "" {
		if _, exists := gm.names[name]; exists {
			return nil, ErrNameTaken
		}
	}
	id := uuid.New().String()
	session := NewGameSession(id, name)
	gm.games[id] = session
	if name != "" {
		gm.names[name] = id
	}
	return session, nil
}

func (gm *GameManager) GetGame(gameID string) (*GameSession, error) {
	gm.mu.RLock()
	defer gm.mu.RUnlock()

	session, exists := gm.games[gameID]
	if !exists {
		return nil, ErrGameNotFound
	}
	return session, nil
}

// GameSummary is one row of the registry listing.
type GameSummary struct {
	ID     string           `json:"id"`
	Name   string           `json:"name"`
	Status model.GameStatus `json:"status"`
}

// List returns a snapshot of every registered game in board-agnostic form,
// ordered by ID for a deterministic response.
func (gm *GameManager) List() []GameSummary {
	gm.mu.RLock()
	sessions := make([]*GameSession, 0, len(gm.games))
	for _, session := range gm.games {
		sessions = append(sessions, session)
	}
	gm.mu.RUnlock()

	summaries := make([]GameSummary, 0, len(sessions))
	for _, session := range sessions {
		summaries = append(summaries, GameSummary{
			ID:     session.ID,
			Name:   session.Name,
			Status: session.State().Status,
		})
	}
	sort.Slice(summaries, func(i, j int) bool { return summaries[i].ID < summaries[j].ID })
	return summaries
}

func (gm *GameManager) FindGameByName(name string) (*GameSession, error) {
	gm.mu.RLock()
	defer gm.mu.RUnlock()

	id, exists := gm.names[name]
	if !exists {
		return nil, ErrGameNotFound
	}
	return gm.games[id], nil
}

func (gm *GameManager) RemoveGame(gameID string) error {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	session, exists := gm.games[gameID]
	if !exists {
		return ErrGameNotFound
	}
	delete(gm.games, gameID)
	if session.Name != "" {
		delete(gm.names, session.Name)
	}
	return nil
}
