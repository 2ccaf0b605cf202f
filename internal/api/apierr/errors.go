package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mcoot/battleship-go/internal/model"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest     = "INVALID_REQUEST"
	CodeOutOfBounds        = "OUT_OF_BOUNDS"
	CodeMalformedCommand   = "MALFORMED_COMMAND"
	CodeInvalidPlacement   = "INVALID_PLACEMENT"
	CodeUnknownShip        = "UNKNOWN_SHIP"
	CodeDuplicateShip      = "DUPLICATE_SHIP"
	CodeAlreadyOccupied    = "ALREADY_OCCUPIED"
	CodeAlreadyTargeted    = "ALREADY_TARGETED"
	CodeNotYourTurn        = "NOT_YOUR_TURN"
	CodeMatchNotActive     = "MATCH_NOT_ACTIVE"
	CodeMatchNotFound      = "MATCH_NOT_FOUND"
	CodeMatchExists        = "MATCH_EXISTS"
	CodeFleetIncomplete    = "FLEET_INCOMPLETE"
	CodeAlreadyStarted     = "ALREADY_STARTED"
	CodePlacementExhausted = "PLACEMENT_EXHAUSTED"
	CodeInternalError      = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// Status returns the HTTP status an error maps to
func Status(err error) int {
	return toHTTPError(err).status
}

// toHTTPError converts an error to an httpError. Domain errors carry their
// wrapped detail through as the message.
func toHTTPError(err error) *httpError {
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	mapped := func(status int, code string) *httpError {
		return &httpError{status, APIError{code, err.Error()}}
	}

	switch {
	case errors.Is(err, model.ErrOutOfBounds):
		return mapped(http.StatusBadRequest, CodeOutOfBounds)
	case errors.Is(err, model.ErrMalformedCommand):
		return mapped(http.StatusBadRequest, CodeMalformedCommand)
	case errors.Is(err, model.ErrInvalidPlacement):
		return mapped(http.StatusBadRequest, CodeInvalidPlacement)
	case errors.Is(err, model.ErrUnknownShip):
		return mapped(http.StatusBadRequest, CodeUnknownShip)
	case errors.Is(err, model.ErrDuplicateShip):
		return mapped(http.StatusConflict, CodeDuplicateShip)
	case errors.Is(err, model.ErrAlreadyOccupied):
		return mapped(http.StatusConflict, CodeAlreadyOccupied)
	case errors.Is(err, model.ErrAlreadyTargeted):
		return mapped(http.StatusConflict, CodeAlreadyTargeted)
	case errors.Is(err, model.ErrNotYourTurn):
		return mapped(http.StatusConflict, CodeNotYourTurn)
	case errors.Is(err, model.ErrMatchNotActive):
		return mapped(http.StatusConflict, CodeMatchNotActive)
	case errors.Is(err, model.ErrAlreadyStarted):
		return mapped(http.StatusConflict, CodeAlreadyStarted)
	case errors.Is(err, model.ErrFleetIncomplete):
		return mapped(http.StatusConflict, CodeFleetIncomplete)
	case errors.Is(err, model.ErrMatchExists):
		return mapped(http.StatusConflict, CodeMatchExists)
	case errors.Is(err, model.ErrMatchNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeMatchNotFound, "Match not found"}}
	case errors.Is(err, model.ErrPlacementExhausted):
		return &httpError{http.StatusInternalServerError, APIError{CodePlacementExhausted, "Could not lay out a fleet"}}

	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
