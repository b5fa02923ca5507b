package response_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dom/vidtube/internal/api/response"
	"github.com/dom/vidtube/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{name: "validation", err: domain.Validation("title is required"), wantStatus: http.StatusBadRequest, wantMsg: "title is required"},
		{name: "wrapped not found", err: fmt.Errorf("get: %w", domain.NotFound("video not found")), wantStatus: http.StatusNotFound, wantMsg: "video not found"},
		{name: "auth", err: domain.Auth("invalid credentials"), wantStatus: http.StatusUnauthorized, wantMsg: "invalid credentials"},
		{name: "forbidden", err: domain.Forbidden("not yours"), wantStatus: http.StatusForbidden, wantMsg: "not yours"},
		{name: "conflict", err: domain.Conflict("taken"), wantStatus: http.StatusConflict, wantMsg: "taken"},
		{name: "internal hides cause", err: domain.Internal("store failed", errors.New("socket closed")), wantStatus: http.StatusInternalServerError, wantMsg: "internal server error"},
		{name: "plain error", err: errors.New("boom"), wantStatus: http.StatusInternalServerError, wantMsg: "internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			response.Error(context.Background(), rec, tt.err)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			var env response.Envelope
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
			assert.Equal(t, tt.wantStatus, env.StatusCode)
			assert.Equal(t, tt.wantMsg, env.Message)
			assert.False(t, env.Success)
			assert.Nil(t, env.Data)
		})
	}
}

func TestJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	response.JSON(context.Background(), rec, http.StatusCreated, map[string]string{"k": "v"}, "created")

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"statusCode":201,"data":{"k":"v"},"message":"created","success":true}`, rec.Body.String())
}
