package controller

import (
	"errors"

	"github.com/ball46/checkers-game/internal/model"
	"github.com/ball46/checkers-game/internal/service"
	"github.com/gofiber/fiber/v2"
)

type GameController struct {
	gameService *service.GameService
}

func NewGameController(gameService *service.GameService) *GameController {
	return &GameController{gameService: gameService}
}

type createGameRequest struct {
	Name string `json:"name"`
}

type moveRequest struct {
	From model.Position `json:"from"`
	To   model.Position `json:"to"`
}

func (gc *GameController) CreateGame(c *fiber.Ctx) error {
	var req createGameRequest
	if err := c.BodyParser(&req); err != nil && len(c.Body()) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	gameID, err := gc.gameService.CreateGame(req.Name)
	if err != nil {
		if errors.Is(err, service.ErrNameTaken) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"message": "Game created",
		"game_id": gameID,
	})
}

func (gc *GameController) ListGames(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"games": gc.gameService.ListGames(),
	})
}

func (gc *GameController) GetGameByName(c *fiber.Ctx) error {
	gameID, snapshot, err := gc.gameService.FindGameByName(c.Params("name"))
	if err != nil {
		return gc.errorResponse(c, err)
	}
	return c.JSON(fiber.Map{
		"game_id": gameID,
		"state":   snapshot,
	})
}

func (gc *GameController) JoinGame(c *fiber.Ctx) error {
	gameID := c.Params("gameId")
	playerID := c.Locals("playerID").(string)

	color, err := gc.gameService.JoinGame(gameID, playerID)
	if err != nil {
		return gc.errorResponse(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Game joined",
		"color":   color,
	})
}

func (gc *GameController) GetGameState(c *fiber.Ctx) error {
	snapshot, err := gc.gameService.GetGameState(c.Params("gameId"))
	if err != nil {
		return gc.errorResponse(c, err)
	}
	return c.JSON(snapshot)
}

func (gc *GameController) GetLegalMoves(c *fiber.Ctx) error {
	color := model.Color(c.Query("color"))
	if color != model.White && color != model.Black {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "color must be white or black",
		})
	}

	moves, err := gc.gameService.GetLegalMoves(c.Params("gameId"), color)
	if err != nil {
		return gc.errorResponse(c, err)
	}

	// Positions cannot key a JSON object; flatten to per-square entries.
	type squareMoves struct {
		Position model.Position `json:"position"`
		Moves    []model.Move   `json:"moves"`
	}
	entries := make([]squareMoves, 0, len(moves))
	for _, cell := range boardOrder(moves) {
		entries = append(entries, squareMoves{Position: cell, Moves: moves[cell]})
	}
	return c.JSON(fiber.Map{"moves": entries})
}

func (gc *GameController) MakeMove(c *fiber.Ctx) error {
	gameID := c.Params("gameId")
	playerID := c.Locals("playerID").(string)

	var req moveRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	if err := gc.gameService.HandleMove(gameID, playerID, model.Move{From: req.From, To: req.To}); err != nil {
		return gc.errorResponse(c, err)
	}

	snapshot, err := gc.gameService.GetGameState(gameID)
	if err != nil {
		return gc.errorResponse(c, err)
	}
	return c.JSON(snapshot)
}

func (gc *GameController) Resign(c *fiber.Ctx) error {
	gameID := c.Params("gameId")
	playerID := c.Locals("playerID").(string)

	if err := gc.gameService.HandleResign(gameID, playerID); err != nil {
		return gc.errorResponse(c, err)
	}
	snapshot, err := gc.gameService.GetGameState(gameID)
	if err != nil {
		return gc.errorResponse(c, err)
	}
	return c.JSON(snapshot)
}

func (gc *GameController) OfferDraw(c *fiber.Ctx) error {
	gameID := c.Params("gameId")
	playerID := c.Locals("playerID").(string)

	if err := gc.gameService.HandleDrawOffer(gameID, playerID); err != nil {
		return gc.errorResponse(c, err)
	}
	snapshot, err := gc.gameService.GetGameState(gameID)
	if err != nil {
		return gc.errorResponse(c, err)
	}
	return c.JSON(snapshot)
}

func (gc *GameController) DeleteGame(c *fiber.Ctx) error {
	if err := gc.gameService.RemoveGame(c.Params("gameId")); err != nil {
		return gc.errorResponse(c, err)
	}
	return c.JSON(fiber.Map{"message": "Game deleted"})
}

// errorResponse maps service and engine errors onto status codes: unknown
// game is 404, any rule violation is 409, the rest are 500.
func (gc *GameController) errorResponse(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrGameNotFound):
		status = fiber.StatusNotFound
	case errors.Is(err, model.ErrInvalidMove),
		errors.Is(err, model.ErrInvalidPosition),
		errors.Is(err, model.ErrWrongPlayer),
		errors.Is(err, model.ErrGameOver),
		errors.Is(err, service.ErrNotYourTurn),
		errors.Is(err, service.ErrPlayerNotInGame),
		errors.Is(err, service.ErrGameFull):
		status = fiber.StatusConflict
	}
	return c.Status(status).JSON(fiber.Map{
		"error": err.Error(),
	})
}

// boardOrder sorts map keys into the board scan order (y then x) so the
// response is deterministic.
func boardOrder(moves map[model.Position][]model.Move) []model.Position {
	ordered := make([]model.Position, 0, len(moves))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			pos := model.Position{X: x, Y: y}
			if _, ok := moves[pos]; ok {
				ordered = append(ordered, pos)
			}
		}
	}
	return ordered
}
