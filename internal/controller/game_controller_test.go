package controller

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ball46/checkers-game/internal/middleware"
	"github.com/ball46/checkers-game/internal/model"
	"github.com/ball46/checkers-game/internal/service"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

func testApp() *fiber.App {
	app := fiber.New()

	gameService := service.NewGameService(service.NewGameManager())
	gameController := NewGameController(gameService)

	api := app.Group("/api", middleware.EnsurePlayerID())
	gameRoutes := api.Group("/game")
	gameRoutes.Get("/", gameController.ListGames)
	gameRoutes.Post("/create", gameController.CreateGame)
	gameRoutes.Post("/join/:gameId", gameController.JoinGame)
	gameRoutes.Get("/by-name/:name", gameController.GetGameByName)
	gameRoutes.Get("/:gameId", gameController.GetGameState)
	gameRoutes.Get("/:gameId/moves", gameController.GetLegalMoves)
	gameRoutes.Post("/:gameId/move", gameController.MakeMove)
	gameRoutes.Post("/:gameId/resign", gameController.Resign)
	gameRoutes.Post("/:gameId/draw", gameController.OfferDraw)
	gameRoutes.Delete("/:gameId", gameController.DeleteGame)

	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path, playerID string, body any) (*http.Response, map[string]json.RawMessage) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if playerID != "" {
		req.Header.Set("X-Player-ID", playerID)
	}

	resp, err := app.Test(req)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()

	fields := map[string]json.RawMessage{}
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &fields), "body: %s", raw)
	}
	return resp, fields
}

func createGame(t *testing.T, app *fiber.App, name string) string {
	t.Helper()
	resp, fields := doJSON(t, app, fiber.MethodPost, "/api/game/create", "host", map[string]string{"name": name})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var gameID string
	require.NoError(t, json.Unmarshal(fields["game_id"], &gameID))
	return gameID
}

func TestRequiresPlayerID(t *testing.T) {
	app := testApp()

	resp, _ := doJSON(t, app, fiber.MethodPost, "/api/game/create", "", nil)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestCreateAndFetchGame(t *testing.T) {
	app := testApp()
	gameID := createGame(t, app, "office-league")

	resp, fields := doJSON(t, app, fiber.MethodGet, "/api/game/"+gameID, "host", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var snapshot model.GameSnapshot
	raw, err := json.Marshal(fields)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &snapshot))
	require.Len(t, snapshot.Board, 64)
	require.Equal(t, model.White, snapshot.ToMove)
	require.Equal(t, model.StatusInProgress, snapshot.Status)

	resp, _ = doJSON(t, app, fiber.MethodPost, "/api/game/create", "host", map[string]string{"name": "office-league"})
	require.Equal(t, http.StatusConflict, resp.StatusCode)

	resp, _ = doJSON(t, app, fiber.MethodGet, "/api/game/unknown", "host", nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestJoinAndMoveFlow(t *testing.T) {
	app := testApp()
	gameID := createGame(t, app, "")

	resp, fields := doJSON(t, app, fiber.MethodPost, "/api/game/join/"+gameID, "alice", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var color model.Color
	require.NoError(t, json.Unmarshal(fields["color"], &color))
	require.Equal(t, model.White, color)

	resp, fields = doJSON(t, app, fiber.MethodPost, "/api/game/join/"+gameID, "bob", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(fields["color"], &color))
	require.Equal(t, model.Black, color)

	resp, _ = doJSON(t, app, fiber.MethodPost, "/api/game/join/"+gameID, "carol", nil)
	require.Equal(t, http.StatusConflict, resp.StatusCode)

	// Black cannot open.
	move := map[string]model.Position{
		"from": {X: 0, Y: 5},
		"to":   {X: 1, Y: 4},
	}
	resp, _ = doJSON(t, app, fiber.MethodPost, fmt.Sprintf("/api/game/%s/move", gameID), "bob", move)
	require.Equal(t, http.StatusConflict, resp.StatusCode)

	resp, fields = doJSON(t, app, fiber.MethodPost, fmt.Sprintf("/api/game/%s/move", gameID), "alice", move)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var toMove model.Color
	require.NoError(t, json.Unmarshal(fields["toMove"], &toMove))
	require.Equal(t, model.Black, toMove)

	// A non-diagonal move is a rule violation, not a server error.
	resp, _ = doJSON(t, app, fiber.MethodPost, fmt.Sprintf("/api/game/%s/move", gameID), "bob", map[string]model.Position{
		"from": {X: 1, Y: 2},
		"to":   {X: 1, Y: 3},
	})
	require.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestLegalMovesEndpoint(t *testing.T) {
	app := testApp()
	gameID := createGame(t, app, "")

	resp, fields := doJSON(t, app, fiber.MethodGet, "/api/game/"+gameID+"/moves?color=white", "host", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var entries []struct {
		Position model.Position `json:"position"`
		Moves    []model.Move   `json:"moves"`
	}
	require.NoError(t, json.Unmarshal(fields["moves"], &entries))
	require.Len(t, entries, 4)
	for _, entry := range entries {
		require.Equal(t, 5, entry.Position.Y)
		require.NotEmpty(t, entry.Moves)
	}

	resp, _ = doJSON(t, app, fiber.MethodGet, "/api/game/"+gameID+"/moves?color=purple", "host", nil)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestListGamesEndpoint(t *testing.T) {
	app := testApp()

	resp, fields := doJSON(t, app, fiber.MethodGet, "/api/game/", "host", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var games []service.GameSummary
	require.NoError(t, json.Unmarshal(fields["games"], &games))
	require.Empty(t, games)

	first := createGame(t, app, "early-bird")
	second := createGame(t, app, "")

	resp, fields = doJSON(t, app, fiber.MethodGet, "/api/game/", "host", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(fields["games"], &games))
	require.Len(t, games, 2)
	ids := []string{games[0].ID, games[1].ID}
	require.ElementsMatch(t, []string{first, second}, ids)
}

func TestGetGameByNameEndpoint(t *testing.T) {
	app := testApp()
	gameID := createGame(t, app, "club-night")

	resp, fields := doJSON(t, app, fiber.MethodGet, "/api/game/by-name/club-night", "host", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var foundID string
	require.NoError(t, json.Unmarshal(fields["game_id"], &foundID))
	require.Equal(t, gameID, foundID)
	var snapshot model.GameSnapshot
	require.NoError(t, json.Unmarshal(fields["state"], &snapshot))
	require.Len(t, snapshot.Board, 64)

	resp, _ = doJSON(t, app, fiber.MethodGet, "/api/game/by-name/no-such-game", "host", nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestResignEndpoint(t *testing.T) {
	app := testApp()
	gameID := createGame(t, app, "")

	for _, player := range []string{"alice", "bob"} {
		resp, _ := doJSON(t, app, fiber.MethodPost, "/api/game/join/"+gameID, player, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}

	// A spectator cannot resign.
	resp, _ := doJSON(t, app, fiber.MethodPost, "/api/game/"+gameID+"/resign", "carol", nil)
	require.Equal(t, http.StatusConflict, resp.StatusCode)

	resp, fields := doJSON(t, app, fiber.MethodPost, "/api/game/"+gameID+"/resign", "alice", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var snapshot model.GameSnapshot
	raw, err := json.Marshal(fields)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &snapshot))
	require.Equal(t, model.StatusGameOver, snapshot.Status)
	require.NotNil(t, snapshot.Winner)
	require.Equal(t, model.Black, *snapshot.Winner)
}

func TestDrawEndpoint(t *testing.T) {
	app := testApp()
	gameID := createGame(t, app, "")

	for _, player := range []string{"alice", "bob"} {
		resp, _ := doJSON(t, app, fiber.MethodPost, "/api/game/join/"+gameID, player, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}

	resp, fields := doJSON(t, app, fiber.MethodPost, "/api/game/"+gameID+"/draw", "alice", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var snapshot model.GameSnapshot
	raw, err := json.Marshal(fields)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &snapshot))
	require.Equal(t, model.StatusInProgress, snapshot.Status, "one offer does not end the game")

	resp, fields = doJSON(t, app, fiber.MethodPost, "/api/game/"+gameID+"/draw", "bob", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	raw, err = json.Marshal(fields)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &snapshot))
	require.Equal(t, model.StatusGameOver, snapshot.Status)
	require.Nil(t, snapshot.Winner)
}

func TestDeleteGame(t *testing.T) {
	app := testApp()
	gameID := createGame(t, app, "")

	resp, _ := doJSON(t, app, fiber.MethodDelete, "/api/game/"+gameID, "host", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = doJSON(t, app, fiber.MethodGet, "/api/game/"+gameID, "host", nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = doJSON(t, app, fiber.MethodDelete, "/api/game/"+gameID, "host", nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}
