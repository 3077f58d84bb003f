// Package me реализует HTTP-обработчик чтения собственной записи пользователя.
//
// Личность берется из контекста запроса, куда ее помещает middleware
// аутентификации; к базе данных обработчик не обращается.
package me

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/hiking-app/user-service/internal/http/middlewarectx"
	"github.com/hiking-app/user-service/internal/http/response"
)

// Handler обрабатывает HTTP-запросы чтения собственной записи.
type Handler struct {
	log *slog.Logger
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger) *Handler {
	return &Handler{log: log}
}

// ServeHTTP godoc
// @Summary Текущий пользователь
// @Description Возвращает запись аутентифицированного пользователя.
// @Tags Users
// @Produce  json
// @Success 200 {object} response.Response
// @Failure 401 {object} response.ErrorResponse "Нет или невалидный токен"
// @Security BearerAuth
// @Router /users/me [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.user.me"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	user, ok := middlewarectx.Identity(r.Context())
	if !ok {
		log.Error("no identity in request context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	log.Info("identity read", slog.Int64("id", user.ID))
	render.JSON(w, r, response.OKWithData(user))
}
