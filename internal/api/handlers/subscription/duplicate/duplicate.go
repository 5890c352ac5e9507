// Package duplicate реализует проверку, есть ли у пользователя подписка с таким названием.
package duplicate

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/subscription-tracker/internal/api/middlewarectx"
	"github.com/magabrotheeeer/subscription-tracker/internal/api/response"
	"github.com/magabrotheeeer/subscription-tracker/internal/lib/sl"
)

// Handler проверяет дубликат названия.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает проверку дубликата.
type Service interface {
	CheckDuplicate(ctx context.Context, userID int64, name string) (bool, error)
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Проверить дубликат названия подписки
// @Tags Subscriptions
// @Produce  json
// @Security BearerAuth
// @Param name query string false "Название подписки"
// @Success 200 {object} response.OKResponse "is_duplicate"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /subscriptions/check-duplicate [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.subscription.duplicate"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userID, ok := middlewarectx.UserIDFromContext(r.Context())
	if !ok {
		log.Error("user id not found in context")
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	exists, err := h.service.CheckDuplicate(r.Context(), userID, r.URL.Query().Get("name"))
	if err != nil {
		log.Error("failed to check duplicate", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not check duplicate"))
		return
	}

	render.JSON(w, r, response.OKWithData(map[string]any{
		"is_duplicate": exists,
	}))
}
