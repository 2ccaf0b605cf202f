package api_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/battleship-go/internal/api"
	"github.com/mcoot/battleship-go/internal/api/apierr"
	"github.com/mcoot/battleship-go/internal/api/response"
	"github.com/mcoot/battleship-go/internal/factory"
	"github.com/mcoot/battleship-go/internal/model"
)

// testServer wraps the router with a test app whose randomness is scripted
type testServer struct {
	handler http.Handler
	app     *factory.TestApp
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	app := factory.NewTestApp()
	t.Cleanup(func() { _ = app.Close() })

	router := api.NewRouter(api.RouterConfig{
		Logger:          logger,
		MatchController: app.MatchController,
		HubManager:      app.HubManager,
		Targeting:       app.Targeting.Name(),
	})

	return &testServer{handler: router, app: app}
}

func (ts *testServer) request(method, path string, body any) *httptest.ResponseRecorder {
	var reqBody io.Reader = http.NoBody
	if body != nil {
		b, _ := json.Marshal(body)
		reqBody = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)
	return rr
}

// createMatch creates match m1 with the computer's ships stacked from A1
func (ts *testServer) createMatch(t *testing.T) response.Match {
	t.Helper()
	ts.app.QueueStackedFleet()
	rr := ts.request(http.MethodPost, "/api/v1/matches", map[string]string{"id": "m1"})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	var m response.Match
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &m))
	return m
}

// startMatch creates m1, lays out the player's fleet the same way and starts
func (ts *testServer) startMatch(t *testing.T) {
	t.Helper()
	ts.createMatch(t)
	ts.app.QueueStackedFleet()
	require.Equal(t, http.StatusOK, ts.request(http.MethodPost, "/api/v1/matches/m1/ships/random", nil).Code)
	require.Equal(t, http.StatusOK, ts.request(http.MethodPost, "/api/v1/matches/m1/start", nil).Code)
}

func decodeCommand(t *testing.T, rr *httptest.ResponseRecorder) response.CommandResponse {
	t.Helper()
	var resp response.CommandResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp), rr.Body.String())
	return resp
}

func assertErrorCode(t *testing.T, rr *httptest.ResponseRecorder, status int, code string) {
	t.Helper()
	assert.Equal(t, status, rr.Code, rr.Body.String())

	var resp apierr.ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, code, resp.Error.Code)
}

func TestHealthCheck(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/health", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"ok","opponent":"Hunt"}`, rr.Body.String())
}

func TestCreateMatchHidesComputerFleet(t *testing.T) {
	ts := newTestServer(t)
	m := ts.createMatch(t)

	assert.Equal(t, "m1", m.ID)
	assert.Equal(t, string(model.PhasePlacing), m.Phase)
	assert.Equal(t, string(model.Carrier), m.NextShip)
	assert.Empty(t, m.ComputerFleet)
	assert.Empty(t, m.PlayerFleet)
	for _, row := range m.ComputerBoard.Cells {
		for _, cell := range row {
			assert.Equal(t, model.CellEmpty, cell)
		}
	}
}

func TestCreateMatchGeneratesID(t *testing.T) {
	ts := newTestServer(t)
	ts.app.QueueStackedFleet()

	rr := ts.request(http.MethodPost, "/api/v1/matches", nil)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	var m response.Match
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &m))
	assert.NotEmpty(t, m.ID)
}

func TestCreateMatchTwice(t *testing.T) {
	ts := newTestServer(t)
	ts.createMatch(t)

	ts.app.QueueStackedFleet()
	rr := ts.request(http.MethodPost, "/api/v1/matches", map[string]string{"id": "m1"})
	assertErrorCode(t, rr, http.StatusConflict, apierr.CodeMatchExists)
}

func TestGetMatch(t *testing.T) {
	ts := newTestServer(t)
	ts.createMatch(t)

	rr := ts.request(http.MethodGet, "/api/v1/matches/m1", nil)
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = ts.request(http.MethodGet, "/api/v1/matches/nope", nil)
	assertErrorCode(t, rr, http.StatusNotFound, apierr.CodeMatchNotFound)
}

func TestPlaceShips(t *testing.T) {
	ts := newTestServer(t)
	ts.createMatch(t)

	rr := ts.request(http.MethodPost, "/api/v1/matches/m1/ships", map[string]string{
		"ship": "carrier", "origin": "B2", "orientation": "V",
	})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	resp := decodeCommand(t, rr)
	require.Len(t, resp.Match.PlayerFleet, 1)
	assert.Equal(t, "B2", resp.Match.PlayerFleet[0].Origin)
	assert.Equal(t, string(model.Vertical), resp.Match.PlayerFleet[0].Orientation)
	assert.Equal(t, string(model.Battleship), resp.Match.NextShip)

	// Without a ship name the next one in the catalog is placed
	rr = ts.request(http.MethodPost, "/api/v1/matches/m1/ships", map[string]string{
		"origin": "A4", "orientation": "H",
	})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	resp = decodeCommand(t, rr)
	assert.Equal(t, string(model.Battleship), resp.Match.PlayerFleet[1].Name)
}

func TestPlaceShipErrors(t *testing.T) {
	ts := newTestServer(t)
	ts.createMatch(t)

	place := func(ship, origin, orientation string) *httptest.ResponseRecorder {
		return ts.request(http.MethodPost, "/api/v1/matches/m1/ships", map[string]string{
			"ship": ship, "origin": origin, "orientation": orientation,
		})
	}

	assertErrorCode(t, place("carrier", "K1", "H"), http.StatusBadRequest, apierr.CodeOutOfBounds)
	assertErrorCode(t, place("carrier", "1A", "H"), http.StatusBadRequest, apierr.CodeMalformedCommand)
	assertErrorCode(t, place("carrier", "A1", "diagonal"), http.StatusBadRequest, apierr.CodeMalformedCommand)
	assertErrorCode(t, place("rowboat", "A1", "H"), http.StatusBadRequest, apierr.CodeUnknownShip)
	assertErrorCode(t, place("carrier", "A8", "H"), http.StatusBadRequest, apierr.CodeInvalidPlacement)

	require.Equal(t, http.StatusOK, place("carrier", "A1", "H").Code)
	assertErrorCode(t, place("carrier", "C1", "H"), http.StatusConflict, apierr.CodeDuplicateShip)
	assertErrorCode(t, place("destroyer", "A2", "V"), http.StatusBadRequest, apierr.CodeInvalidPlacement)

	rr := ts.request(http.MethodPost, "/api/v1/matches/m1/ships", "not an object")
	assertErrorCode(t, rr, http.StatusBadRequest, apierr.CodeInvalidRequest)
}

func TestStartRequiresFleet(t *testing.T) {
	ts := newTestServer(t)
	ts.createMatch(t)

	rr := ts.request(http.MethodPost, "/api/v1/matches/m1/start", nil)
	assertErrorCode(t, rr, http.StatusConflict, apierr.CodeFleetIncomplete)

	rr = ts.request(http.MethodPost, "/api/v1/matches/m1/fire", map[string]string{"target": "A1"})
	assertErrorCode(t, rr, http.StatusConflict, apierr.CodeMatchNotActive)
}

func TestFire(t *testing.T) {
	ts := newTestServer(t)
	ts.startMatch(t)

	rr := ts.request(http.MethodPost, "/api/v1/matches/m1/fire", map[string]string{"target": "a1"})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	resp := decodeCommand(t, rr)
	require.Len(t, resp.Shots, 2)
	assert.Equal(t, response.Shot{Side: "player", Target: "A1", Result: "hit"}, resp.Shots[0])
	assert.Equal(t, "computer", resp.Shots[1].Side)

	// The hit shows; the rest of the Carrier stays hidden
	assert.Equal(t, model.CellHit, resp.Match.ComputerBoard.Cells[0][0])
	assert.Equal(t, model.CellEmpty, resp.Match.ComputerBoard.Cells[0][1])
	assert.Empty(t, resp.Match.ComputerFleet)
	assert.Equal(t, 2, resp.Match.MoveCount)
}

func TestFireErrors(t *testing.T) {
	ts := newTestServer(t)
	ts.startMatch(t)

	require.Equal(t, http.StatusOK, ts.request(http.MethodPost, "/api/v1/matches/m1/fire", map[string]string{"target": "A1"}).Code)

	rr := ts.request(http.MethodPost, "/api/v1/matches/m1/fire", map[string]string{"target": "A1"})
	assertErrorCode(t, rr, http.StatusConflict, apierr.CodeAlreadyTargeted)

	rr = ts.request(http.MethodPost, "/api/v1/matches/m1/fire", map[string]string{"target": "A11"})
	assertErrorCode(t, rr, http.StatusBadRequest, apierr.CodeOutOfBounds)

	rr = ts.request(http.MethodPost, "/api/v1/matches/m1/ships/random", nil)
	assertErrorCode(t, rr, http.StatusConflict, apierr.CodeAlreadyStarted)

	rr = ts.request(http.MethodPost, "/api/v1/matches/m1/start", nil)
	assertErrorCode(t, rr, http.StatusConflict, apierr.CodeAlreadyStarted)
}

func TestSunkShipIsRevealed(t *testing.T) {
	ts := newTestServer(t)
	ts.startMatch(t)

	var resp response.CommandResponse
	for _, target := range []string{"E1", "E2"} {
		rr := ts.request(http.MethodPost, "/api/v1/matches/m1/fire", map[string]string{"target": target})
		require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
		resp = decodeCommand(t, rr)
	}

	assert.Equal(t, string(model.Destroyer), resp.Shots[0].Sunk)
	require.Len(t, resp.Match.ComputerFleet, 1)
	assert.Equal(t, response.Ship{
		Name: "Destroyer", Length: 2, Origin: "E1", Orientation: "horizontal", Sunk: true,
	}, resp.Match.ComputerFleet[0])
}

func TestCommands(t *testing.T) {
	ts := newTestServer(t)
	ts.createMatch(t)

	run := func(line string) *httptest.ResponseRecorder {
		return ts.request(http.MethodPost, "/api/v1/matches/m1/commands", map[string]string{"command": line})
	}

	rr := run("place carrier A1 H")
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Len(t, decodeCommand(t, rr).Match.PlayerFleet, 1)

	rr = run("help")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "place")

	rr = run("show computer")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "computer", decodeCommand(t, rr).Show)

	rr = run("stats")
	require.Equal(t, http.StatusOK, rr.Code)
	resp := decodeCommand(t, rr)
	require.NotNil(t, resp.Statistics)
	assert.Equal(t, response.Statistics{}, *resp.Statistics)

	assertErrorCode(t, run("quit"), http.StatusBadRequest, apierr.CodeInvalidRequest)
	assertErrorCode(t, run("dance"), http.StatusBadRequest, apierr.CodeMalformedCommand)
	assertErrorCode(t, run("fire K1"), http.StatusBadRequest, apierr.CodeOutOfBounds)
}

func TestResetAndStats(t *testing.T) {
	ts := newTestServer(t)
	ts.startMatch(t)

	ts.app.QueueStackedFleet()
	rr := ts.request(http.MethodPost, "/api/v1/matches/m1/reset", nil)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	resp := decodeCommand(t, rr)
	assert.Equal(t, string(model.PhasePlacing), resp.Match.Phase)
	assert.Empty(t, resp.Match.PlayerFleet)

	rr = ts.request(http.MethodGet, "/api/v1/stats", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"games_played":0,"wins":0,"losses":0}`, rr.Body.String())
}

func TestEventStream(t *testing.T) {
	ts := newTestServer(t)
	ts.createMatch(t)

	srv := httptest.NewServer(ts.handler)
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/v1/matches/m1/events"
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()
	assert.Equal(t, http.StatusSwitchingProtocols, resp.StatusCode)

	ts.app.QueueStackedFleet()
	post, err := http.Post(srv.URL+"/api/v1/matches/m1/ships/random", "application/json", nil)
	require.NoError(t, err)
	_ = post.Body.Close()
	require.Equal(t, http.StatusOK, post.StatusCode)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	var types []string
	for len(types) < 6 {
		_, data, err := conn.ReadMessage()
		require.NoError(t, err)

		var event struct {
			Type    string `json:"type"`
			MatchID string `json:"matchId"`
		}
		require.NoError(t, json.Unmarshal(data, &event))
		assert.Equal(t, "m1", event.MatchID)
		types = append(types, event.Type)
	}

	assert.Equal(t, []string{
		"ship_placed", "ship_placed", "ship_placed", "ship_placed", "ship_placed", "fleet_ready",
	}, types)
}

func TestEventStreamUnknownMatch(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/matches/nope/events", nil)
	assertErrorCode(t, rr, http.StatusNotFound, apierr.CodeMatchNotFound)
}
