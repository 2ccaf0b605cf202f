package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/battleship-go/internal/api/request"
	"github.com/mcoot/battleship-go/internal/api/response"
	"github.com/mcoot/battleship-go/internal/command"
	"github.com/mcoot/battleship-go/internal/model"
	"github.com/mcoot/battleship-go/internal/services/match"
)

// MatchHandler handles match endpoints
type MatchHandler struct {
	matchController *match.Controller
}

// NewMatchHandler creates a new match handler
func NewMatchHandler(matchController *match.Controller) *MatchHandler {
	return &MatchHandler{matchController: matchController}
}

// Create handles POST /api/v1/matches
func (h *MatchHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateMatchRequest
	if err := decodeOptional(r, &req); err != nil {
		WriteError(w, err)
		return
	}

	result, err := h.matchController.CreateMatch(r.Context(), model.MatchID(req.ID))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.MatchFromModel(result.Match))
}

// Get handles GET /api/v1/matches/{id}
func (h *MatchHandler) Get(w http.ResponseWriter, r *http.Request) {
	m, err := h.matchController.GetMatch(r.Context(), matchID(r))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.MatchFromModel(m))
}

// PlaceShip handles POST /api/v1/matches/{id}/ships
func (h *MatchHandler) PlaceShip(w http.ResponseWriter, r *http.Request) {
	var req request.PlaceShipRequest
	if err := decode(r, &req); err != nil {
		WriteError(w, err)
		return
	}

	origin, err := model.ParseCoordinate(req.Origin)
	if err != nil {
		WriteError(w, err)
		return
	}
	orientation, err := model.ParseOrientation(req.Orientation)
	if err != nil {
		WriteError(w, err)
		return
	}

	var result *match.Result
	if req.Ship == "" {
		result, err = h.matchController.PlaceNextShip(r.Context(), matchID(r), origin, orientation)
	} else {
		result, err = h.matchController.PlaceShip(r.Context(), matchID(r), model.ShipName(req.Ship), origin, orientation)
	}
	h.respond(w, result, err)
}

// PlaceRandom handles POST /api/v1/matches/{id}/ships/random
func (h *MatchHandler) PlaceRandom(w http.ResponseWriter, r *http.Request) {
	result, err := h.matchController.PlaceRandomFleet(r.Context(), matchID(r))
	h.respond(w, result, err)
}

// Start handles POST /api/v1/matches/{id}/start
func (h *MatchHandler) Start(w http.ResponseWriter, r *http.Request) {
	result, err := h.matchController.Start(r.Context(), matchID(r))
	h.respond(w, result, err)
}

// Fire handles POST /api/v1/matches/{id}/fire
func (h *MatchHandler) Fire(w http.ResponseWriter, r *http.Request) {
	var req request.FireRequest
	if err := decode(r, &req); err != nil {
		WriteError(w, err)
		return
	}

	target, err := model.ParseCoordinate(req.Target)
	if err != nil {
		WriteError(w, err)
		return
	}

	result, err := h.matchController.Fire(r.Context(), matchID(r), target)
	h.respond(w, result, err)
}

// Reset handles POST /api/v1/matches/{id}/reset
func (h *MatchHandler) Reset(w http.ResponseWriter, r *http.Request) {
	result, err := h.matchController.Reset(r.Context(), matchID(r))
	h.respond(w, result, err)
}

// Command handles POST /api/v1/matches/{id}/commands, running one line of
// the same text commands the terminal game accepts
func (h *MatchHandler) Command(w http.ResponseWriter, r *http.Request) {
	var req request.CommandRequest
	if err := decode(r, &req); err != nil {
		WriteError(w, err)
		return
	}

	cmd, err := command.Parse(req.Command)
	if err != nil {
		WriteError(w, err)
		return
	}

	switch cmd.(type) {
	case command.Help:
		response.JSON(w, http.StatusOK, response.MessageResponse{Message: command.Usage})
		return
	case command.Quit:
		WriteError(w, NewInvalidRequestError("quit only applies to an interactive session"))
		return
	}

	result, err := h.matchController.Execute(r.Context(), matchID(r), cmd)
	h.respond(w, result, err)
}

// Stats handles GET /api/v1/stats
func (h *MatchHandler) Stats(w http.ResponseWriter, r *http.Request) {
	totals := h.matchController.Statistics(r.Context())
	response.JSON(w, http.StatusOK, response.StatisticsFromModel(totals))
}

func (h *MatchHandler) respond(w http.ResponseWriter, result *match.Result, err error) {
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.CommandResponseFromResult(result))
}

func matchID(r *http.Request) model.MatchID {
	return model.MatchID(mux.Vars(r)["id"])
}

func decode(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return NewInvalidRequestError("Invalid request body")
	}
	return nil
}

// decodeOptional accepts an empty body
func decodeOptional(r *http.Request, v any) error {
	err := json.NewDecoder(r.Body).Decode(v)
	if err == nil || errors.Is(err, io.EOF) {
		return nil
	}
	return NewInvalidRequestError("Invalid request body")
}
