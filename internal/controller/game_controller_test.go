package controller

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/benbeisheim/minimax-chess/internal/middleware"
	"github.com/benbeisheim/minimax-chess/internal/model"
	"github.com/benbeisheim/minimax-chess/internal/service"
	"github.com/benbeisheim/minimax-chess/internal/testutil"
)

func newTestApp() *fiber.App {
	gameService := service.NewGameService(service.NewGameManager(service.Options{Depth: 1, Seed: 1}))
	gc := NewGameController(gameService)

	app := fiber.New()
	api := app.Group("/api", middleware.EnsurePlayerID())
	api.Post("/game/create", gc.CreateGame)
	api.Get("/game/:gameId", gc.GetGameState)
	api.Post("/game/:gameId/move", gc.MakeMove)
	api.Post("/game/:gameId/undo", gc.Undo)
	api.Get("/game/:gameId/best", gc.Hint)
	return app
}

func do(t *testing.T, app *fiber.App, method, path, playerID, body string) (int, []byte) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if playerID != "" {
		req.Header.Set("X-Player-ID", playerID)
	}
	resp, err := app.Test(req, -1)
	testutil.AssertNoError(t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	testutil.AssertNoError(t, err)
	return resp.StatusCode, data
}

func createGame(t *testing.T, app *fiber.App, body string) string {
	t.Helper()
	status, data := do(t, app, http.MethodPost, "/api/game/create", "p1", body)
	testutil.AssertEqual(t, status, http.StatusOK, string(data))
	var created struct {
		GameID string      `json:"game_id"`
		Color  model.Color `json:"color"`
	}
	testutil.AssertNoError(t, json.Unmarshal(data, &created))
	return created.GameID
}

func decodeView(t *testing.T, data []byte) model.GameView {
	t.Helper()
	var view model.GameView
	testutil.AssertNoError(t, json.Unmarshal(data, &view), string(data))
	return view
}

func TestCreateWithoutPlayerID(t *testing.T) {
	app := newTestApp()

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/api/game/create", nil), -1)
	testutil.AssertNoError(t, err)
	defer resp.Body.Close()
	testutil.AssertEqual(t, resp.StatusCode, http.StatusOK)

	playerID := resp.Header.Get(middleware.PlayerIDHeader)
	testutil.AssertTrue(t, playerID != "", "no player id issued")

	var created struct {
		GameID string `json:"game_id"`
	}
	testutil.AssertNoError(t, json.NewDecoder(resp.Body).Decode(&created))
	_, data := do(t, app, http.MethodGet, "/api/game/"+created.GameID, playerID, "")
	testutil.AssertEqual(t, decodeView(t, data).Players.White.ID, playerID)
}

func TestCreateAndPlay(t *testing.T) {
	app := newTestApp()
	gameID := createGame(t, app, "")

	status, data := do(t, app, http.MethodGet, "/api/game/"+gameID, "p1", "")
	testutil.AssertEqual(t, status, http.StatusOK)
	view := decodeView(t, data)
	testutil.AssertEqual(t, view.FEN, model.InitialFEN)
	testutil.AssertEqual(t, view.Players.White.ID, "p1")

	status, data = do(t, app, http.MethodPost, "/api/game/"+gameID+"/move", "p1", `{"from":"e2","to":"e4"}`)
	testutil.AssertEqual(t, status, http.StatusOK, string(data))
	view = decodeView(t, data)
	testutil.AssertEqual(t, len(view.MoveLog), 2)
	testutil.AssertEqual(t, view.ToMove, model.White)

	status, data = do(t, app, http.MethodPost, "/api/game/"+gameID+"/undo", "p1", "")
	testutil.AssertEqual(t, status, http.StatusOK, string(data))
	view = decodeView(t, data)
	testutil.AssertEqual(t, view.FEN, model.InitialFEN)
}

func TestCreateAsBlack(t *testing.T) {
	app := newTestApp()
	gameID := createGame(t, app, `{"color":"black","depth":1}`)

	_, data := do(t, app, http.MethodGet, "/api/game/"+gameID, "p1", "")
	view := decodeView(t, data)
	testutil.AssertEqual(t, view.ToMove, model.Black)
	testutil.AssertEqual(t, len(view.MoveLog), 1)
	testutil.AssertTrue(t, view.Players.White.IsEngine)
}

func TestErrorStatuses(t *testing.T) {
	app := newTestApp()
	gameID := createGame(t, app, "")
	movePath := "/api/game/" + gameID + "/move"

	tests := []struct {
		name     string
		method   string
		path     string
		playerID string
		body     string
		want     int
	}{
		{"bad color", http.MethodPost, "/api/game/create", "p1", `{"color":"green"}`, http.StatusBadRequest},
		{"unknown game", http.MethodGet, "/api/game/missing", "p1", "", http.StatusNotFound},
		{"unknown game move", http.MethodPost, "/api/game/missing/move", "p1", `{"from":"e2","to":"e4"}`, http.StatusNotFound},
		{"stranger", http.MethodPost, movePath, "p2", `{"from":"e2","to":"e4"}`, http.StatusForbidden},
		{"bad square", http.MethodPost, movePath, "p1", `{"from":"z2","to":"e4"}`, http.StatusBadRequest},
		{"malformed body", http.MethodPost, movePath, "p1", `{"from":`, http.StatusBadRequest},
		{"illegal move", http.MethodPost, movePath, "p1", `{"from":"e2","to":"e5"}`, http.StatusUnprocessableEntity},
		{"nothing to undo", http.MethodPost, "/api/game/" + gameID + "/undo", "p1", "", http.StatusConflict},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, data := do(t, app, tt.method, tt.path, tt.playerID, tt.body)
			testutil.AssertEqual(t, status, tt.want, string(data))

			var body struct {
				Error string `json:"error"`
			}
			testutil.AssertNoError(t, json.Unmarshal(data, &body))
			testutil.AssertTrue(t, body.Error != "", "error message missing")
		})
	}
}

func TestHintEndpoint(t *testing.T) {
	app := newTestApp()
	gameID := createGame(t, app, "")

	status, data := do(t, app, http.MethodGet, "/api/game/"+gameID+"/best", "p1", "")
	testutil.AssertEqual(t, status, http.StatusOK)

	var hint struct {
		Move string `json:"move"`
		From string `json:"from"`
		To   string `json:"to"`
	}
	testutil.AssertNoError(t, json.Unmarshal(data, &hint))
	testutil.AssertEqual(t, hint.Move, hint.From+hint.To)

	_, data = do(t, app, http.MethodGet, "/api/game/"+gameID, "p1", "")
	view := decodeView(t, data)
	testutil.AssertTrue(t, contains(view.LegalMoves, hint.Move), "hint %q is not legal", hint.Move)
	testutil.AssertEqual(t, len(view.MoveLog), 0)
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{service.ErrGameOver, fiber.StatusUnprocessableEntity},
		{service.ErrNotYourTurn, fiber.StatusUnprocessableEntity},
		{&model.MoveError{Err: model.ErrLeavesKingInCheck}, fiber.StatusUnprocessableEntity},
		{io.EOF, fiber.StatusInternalServerError},
	}
	for _, tt := range tests {
		testutil.AssertEqual(t, statusFor(tt.err), tt.want, tt.err.Error())
	}
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
