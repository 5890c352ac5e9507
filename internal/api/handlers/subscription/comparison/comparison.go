// Package comparison отдаёт данные для страницы сравнения расходов.
package comparison

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/subscription-tracker/internal/api/middlewarectx"
	"github.com/magabrotheeeer/subscription-tracker/internal/api/response"
	"github.com/magabrotheeeer/subscription-tracker/internal/lib/sl"
	"github.com/magabrotheeeer/subscription-tracker/internal/models"
)

// Handler отдаёт распределение подписок по суммам и категориям.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает расчёт сравнения.
type Service interface {
	Comparison(ctx context.Context, userID int64) (*models.Comparison, error)
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Сравнение расходов
// @Description Количество подписок по диапазонам сумм и по категориям, среднемесячная стоимость.
// @Tags Comparison
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} response.OKResponse "Данные диаграмм"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /comparison [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.comparison"

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

	result, err := h.service.Comparison(r.Context(), userID)
	if err != nil {
		log.Error("failed to build comparison", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not build comparison"))
		return
	}

	render.JSON(w, r, response.OKWithData(result))
}
