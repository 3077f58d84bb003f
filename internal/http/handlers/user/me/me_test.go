package me

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hiking-app/user-service/internal/http/middlewarectx"
	"github.com/hiking-app/user-service/internal/models"
)

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func TestMeHandler_ServeHTTP(t *testing.T) {
	t.Run("returns identity from context", func(t *testing.T) {
		handler := New(newNoopLogger())

		user := &models.SanitizedUser{ID: 7, Email: "test@example.com"}
		req := httptest.NewRequest(http.MethodGet, "/api/v1/users/me", nil)
		req = req.WithContext(context.WithValue(req.Context(), middlewarectx.Key, user))
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		var resp struct {
			Status string                `json:"status"`
			Data   *models.SanitizedUser `json:"data"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "OK", resp.Status)
		assert.Equal(t, int64(7), resp.Data.ID)
	})

	t.Run("missing identity", func(t *testing.T) {
		handler := New(newNoopLogger())

		req := httptest.NewRequest(http.MethodGet, "/api/v1/users/me", nil)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
