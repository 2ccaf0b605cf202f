package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/battleship-go/internal/api/apierr"
	"github.com/mcoot/battleship-go/internal/api/handler"
	"github.com/mcoot/battleship-go/internal/api/response"
	"github.com/mcoot/battleship-go/internal/events"
	"github.com/mcoot/battleship-go/internal/middleware"
	"github.com/mcoot/battleship-go/internal/model"
	"github.com/mcoot/battleship-go/internal/services/match"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger          *slog.Logger
	MatchController *match.Controller
	HubManager      *events.HubManager
	// Targeting is the computer's strategy name, reported by the health check
	Targeting string
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	matchHandler := handler.NewMatchHandler(cfg.MatchController)
	eventsHandler := handler.NewEventsHandler(cfg.MatchController, cfg.HubManager, cfg.Logger)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Recovery(cfg.Logger, apiPanicHandler))
	api.Use(middleware.Logging(cfg.Logger))

	api.HandleFunc("/health", healthHandler(cfg.Targeting)).Methods(http.MethodGet)
	api.HandleFunc("/stats", matchHandler.Stats).Methods(http.MethodGet)

	matches := api.PathPrefix("/matches").Subrouter()
	matches.HandleFunc("", matchHandler.Create).Methods(http.MethodPost)
	matches.HandleFunc("/{id}", matchHandler.Get).Methods(http.MethodGet)
	matches.HandleFunc("/{id}/ships", matchHandler.PlaceShip).Methods(http.MethodPost)
	matches.HandleFunc("/{id}/ships/random", matchHandler.PlaceRandom).Methods(http.MethodPost)
	matches.HandleFunc("/{id}/start", matchHandler.Start).Methods(http.MethodPost)
	matches.HandleFunc("/{id}/fire", matchHandler.Fire).Methods(http.MethodPost)
	matches.HandleFunc("/{id}/commands", matchHandler.Command).Methods(http.MethodPost)
	matches.HandleFunc("/{id}/reset", matchHandler.Reset).Methods(http.MethodPost)
	matches.HandleFunc("/{id}/events", eventsHandler.Stream).Methods(http.MethodGet)

	return r
}

func apiPanicHandler(w http.ResponseWriter, _ *http.Request, _ any) {
	apierr.WriteError(w, apierr.NewInternalError())
}

func healthHandler(targeting string) http.HandlerFunc {
	health := response.HealthResponse{Status: "ok"}
	if targeting != "" {
		health.Opponent = model.TargetingDisplayName(targeting)
	}
	return func(w http.ResponseWriter, r *http.Request) {
		response.JSON(w, http.StatusOK, health)
	}
}
