// Package summary реализует HTTP-обработчик сводки платежей за месяц.
package summary

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/subscription-tracker/internal/api/middlewarectx"
	"github.com/magabrotheeeer/subscription-tracker/internal/api/response"
	"github.com/magabrotheeeer/subscription-tracker/internal/lib/sl"
	"github.com/magabrotheeeer/subscription-tracker/internal/models"
)

// Handler отдаёт сводку по платежам месяца.
type Handler struct {
	log     *slog.Logger
	service Service
	now     func() time.Time
}

// Service описывает расчёт сводки.
type Service interface {
	Summary(ctx context.Context, userID int64, ref time.Time) (*models.MonthSummary, error)
}

// New создает новый Handler. now подменяется в тестах, по умолчанию time.Now.
func New(log *slog.Logger, service Service, now func() time.Time) *Handler {
	if now == nil {
		now = time.Now
	}
	return &Handler{log: log, service: service, now: now}
}

// ServeHTTP godoc
// @Summary Сводка платежей за месяц
// @Description Сумма к оплате в месяце даты date, среднемесячная стоимость и подписки с днями платежей.
// @Tags Subscriptions
// @Produce  json
// @Security BearerAuth
// @Param date query string false "Опорная дата 2006-01-02, по умолчанию сегодня (UTC)"
// @Success 200 {object} response.OKResponse "Сводка"
// @Failure 400 {object} response.ErrorResponse "Некорректная дата"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /subscriptions/summary [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.subscription.summary"

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

	ref := h.now().UTC()
	if raw := r.URL.Query().Get("date"); raw != "" {
		d, err := time.Parse(time.DateOnly, raw)
		if err != nil {
			log.Info("invalid date", slog.String("date", raw), sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("date must be in format 2006-01-02"))
			return
		}
		ref = d
	}

	result, err := h.service.Summary(r.Context(), userID, ref)
	if err != nil {
		log.Error("failed to build summary", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not build summary"))
		return
	}

	render.JSON(w, r, response.OKWithData(result))
}
