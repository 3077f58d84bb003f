package login

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/hiking-app/user-service/internal/http/response"
	services "github.com/hiking-app/user-service/internal/services/auth"
)

type AuthServiceMock struct {
	mock.Mock
}

func (m *AuthServiceMock) Login(ctx context.Context, email, password string) (string, error) {
	args := m.Called(ctx, email, password)
	return args.String(0), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func TestLoginHandler_ServeHTTP(t *testing.T) {
	tests := []struct {
		name           string
		requestBody    any
		mockToken      string
		mockErr        error
		wantStatusCode int
		wantStatus     string
		wantError      string
		wantToken      string
	}{
		{
			name:           "valid login",
			requestBody:    Request{Email: "user@example.com", Password: "password123"},
			mockToken:      "signed-token",
			wantStatusCode: http.StatusOK,
			wantStatus:     response.StatusOK,
			wantToken:      "signed-token",
		},
		{
			name:           "invalid json body",
			requestBody:    "not a json",
			wantStatusCode: http.StatusBadRequest,
			wantStatus:     response.StatusError,
			wantError:      "invalid request body",
		},
		{
			name:           "validation error - missing password",
			requestBody:    Request{Email: "user@example.com"},
			wantStatusCode: http.StatusUnprocessableEntity,
			wantStatus:     response.StatusError,
			wantError:      "field Password is a required field",
		},
		{
			name:           "wrong credentials",
			requestBody:    Request{Email: "user@example.com", Password: "password123"},
			mockErr:        services.ErrInvalidCredentials,
			wantStatusCode: http.StatusUnauthorized,
			wantStatus:     response.StatusError,
			wantError:      "invalid email or password",
		},
		{
			name:           "storage failure stays opaque",
			requestBody:    Request{Email: "user@example.com", Password: "password123"},
			mockErr:        services.ErrPersistence,
			wantStatusCode: http.StatusInternalServerError,
			wantStatus:     response.StatusError,
			wantError:      "internal error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			authMock := new(AuthServiceMock)
			handler := New(newNoopLogger(), authMock)

			if tt.mockToken != "" || tt.mockErr != nil {
				authMock.On("Login", mock.Anything, "user@example.com", "password123").
					Return(tt.mockToken, tt.mockErr).Once()
			}

			var bodyBytes []byte
			switch v := tt.requestBody.(type) {
			case string:
				bodyBytes = []byte(v)
			default:
				var err error
				bodyBytes, err = json.Marshal(tt.requestBody)
				require.NoError(t, err)
			}

			req := httptest.NewRequest(http.MethodPost, "/api/v1/login", bytes.NewReader(bodyBytes))
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatusCode, rec.Code)

			var resp struct {
				Status string         `json:"status"`
				Error  string         `json:"error"`
				Data   map[string]any `json:"data"`
			}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantStatus, resp.Status)
			if tt.wantError != "" {
				assert.Contains(t, resp.Error, tt.wantError)
			}
			if tt.wantToken != "" {
				assert.Equal(t, tt.wantToken, resp.Data["access_token"])
			}

			authMock.AssertExpectations(t)
		})
	}
}
