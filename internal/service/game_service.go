package service

import (
	"github.com/ball46/checkers-game/internal/model"
	"github.com/gofiber/websocket/v2"
)

// GameService is the facade the controllers call; it resolves sessions
// through the manager and delegates.
type GameService struct {
	gameManager *GameManager
}

func NewGameService(gameManager *GameManager) *GameService {
	return &GameService{gameManager: gameManager}
}

func (gs *GameService) CreateGame(name string) (string, error) {
	session, err := gs.gameManager.CreateGame(name)
	if err != nil {
		return "", err
	}
	return session.ID, nil
}

func (gs *GameService) JoinGame(gameID, playerID string) (model.Color, error) {
	session, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return "", err
	}
	return session.AddPlayer(playerID)
}

func (gs *GameService) GetGameState(gameID string) (model.GameSnapshot, error) {
	session, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return model.GameSnapshot{}, err
	}
	return session.State(), nil
}

func (gs *GameService) GetLegalMoves(gameID string, color model.Color) (map[model.Position][]model.Move, error) {
	session, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return nil, err
	}
	return session.LegalMoves(color), nil
}

func (gs *GameService) HandleMove(gameID, playerID string, move model.Move) error {
	session, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return err
	}
	return session.MakeMove(playerID, move)
}

func (gs *GameService) ListGames() []GameSummary {
	return gs.gameManager.List()
}

func (gs *GameService) FindGameByName(name string) (string, model.GameSnapshot, error) {
	session, err := gs.gameManager.FindGameByName(name)
	if err != nil {
		return "", model.GameSnapshot{}, err
	}
	return session.ID, session.State(), nil
}

func (gs *GameService) HandleResign(gameID, playerID string) error {
	session, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return err
	}
	return session.Resign(playerID)
}

func (gs *GameService) HandleDrawOffer(gameID, playerID string) error {
	session, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return err
	}
	return session.OfferDraw(playerID)
}

func (gs *GameService) RemoveGame(gameID string) error {
	return gs.gameManager.RemoveGame(gameID)
}

func (gs *GameService) RegisterConnection(gameID, playerID string, conn *websocket.Conn) error {
	session, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return err
	}
	return session.RegisterConnection(playerID, conn)
}

func (gs *GameService) UnregisterConnection(gameID, playerID string) {
	session, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return
	}
	session.UnregisterConnection(playerID)
}
