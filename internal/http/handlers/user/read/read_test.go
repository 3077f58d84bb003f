package read

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/hiking-app/user-service/internal/models"
	userservice "github.com/hiking-app/user-service/internal/services/user"
)

type UserServiceMock struct {
	mock.Mock
}

func (m *UserServiceMock) GetByID(ctx context.Context, id int64) (*models.SanitizedUser, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SanitizedUser), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func doRequest(t *testing.T, handler *Handler, id string) *httptest.ResponseRecorder {
	t.Helper()

	router := chi.NewRouter()
	router.Get("/users/{id}", handler.ServeHTTP)

	req := httptest.NewRequest(http.MethodGet, "/users/"+id, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestReadHandler_ServeHTTP(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		svc := new(UserServiceMock)
		svc.On("GetByID", mock.Anything, int64(7)).
			Return(&models.SanitizedUser{ID: 7, Email: "test@example.com"}, nil).Once()

		rec := doRequest(t, New(newNoopLogger(), svc), "7")

		assert.Equal(t, http.StatusOK, rec.Code)
		var resp struct {
			Status string                `json:"status"`
			Data   *models.SanitizedUser `json:"data"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "OK", resp.Status)
		assert.Equal(t, int64(7), resp.Data.ID)

		svc.AssertExpectations(t)
	})

	t.Run("not found", func(t *testing.T) {
		svc := new(UserServiceMock)
		svc.On("GetByID", mock.Anything, int64(99)).
			Return(nil, userservice.ErrUserNotFound).Once()

		rec := doRequest(t, New(newNoopLogger(), svc), "99")

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("invalid id", func(t *testing.T) {
		svc := new(UserServiceMock)

		rec := doRequest(t, New(newNoopLogger(), svc), "abc")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		svc.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})
}
