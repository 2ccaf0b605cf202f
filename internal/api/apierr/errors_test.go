package apierr

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/battleship-go/internal/model"
)

func TestStatusMapping(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{model.ErrOutOfBounds, http.StatusBadRequest},
		{model.ErrMalformedCommand, http.StatusBadRequest},
		{model.ErrInvalidPlacement, http.StatusBadRequest},
		{model.ErrUnknownShip, http.StatusBadRequest},
		{model.ErrDuplicateShip, http.StatusConflict},
		{model.ErrAlreadyOccupied, http.StatusConflict},
		{model.ErrAlreadyTargeted, http.StatusConflict},
		{model.ErrNotYourTurn, http.StatusConflict},
		{model.ErrMatchNotActive, http.StatusConflict},
		{model.ErrAlreadyStarted, http.StatusConflict},
		{model.ErrFleetIncomplete, http.StatusConflict},
		{model.ErrMatchExists, http.StatusConflict},
		{model.ErrMatchNotFound, http.StatusNotFound},
		{model.ErrPlacementExhausted, http.StatusInternalServerError},
		{errors.New("boom"), http.StatusInternalServerError},
		{NewInvalidRequestError("bad"), http.StatusBadRequest},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.status, Status(tt.err), tt.err.Error())
	}
}

func TestWriteErrorKeepsWrappedDetail(t *testing.T) {
	rr := httptest.NewRecorder()
	WriteError(rr, fmt.Errorf("%w: K1", model.ErrOutOfBounds))

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, CodeOutOfBounds, resp.Error.Code)
	assert.Contains(t, resp.Error.Message, "K1")
}

func TestWriteErrorHidesInternalDetail(t *testing.T) {
	rr := httptest.NewRecorder()
	WriteError(rr, errors.New("connection refused"))

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, CodeInternalError, resp.Error.Code)
	assert.NotContains(t, resp.Error.Message, "refused")
}
