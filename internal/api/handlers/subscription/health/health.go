// Package health проверяет доступность зависимостей сервиса.
package health

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"

	"github.com/magabrotheeeer/subscription-tracker/internal/api/response"
	"github.com/magabrotheeeer/subscription-tracker/internal/lib/sl"
)

const checkTimeout = 2 * time.Second

// Pinger зависимость, доступность которой проверяется.
type Pinger interface {
	Ping(ctx context.Context) error
}

// unhealthyResponse ответ с ошибкой и состоянием каждой зависимости.
type unhealthyResponse struct {
	Status string            `json:"status"`
	Error  string            `json:"error"`
	Data   map[string]string `json:"data"`
}

// Handler опрашивает зависимости по имени.
type Handler struct {
	log    *slog.Logger
	checks map[string]Pinger
}

// New создает новый Handler.
func New(log *slog.Logger, checks map[string]Pinger) *Handler {
	return &Handler{log: log, checks: checks}
}

// ServeHTTP godoc
// @Summary Проверка состояния
// @Tags Health
// @Produce  json
// @Success 200 {object} response.OKResponse "Все зависимости доступны"
// @Failure 503 {object} response.ErrorResponse "Часть зависимостей недоступна"
// @Router /health [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.health"

	ctx, cancel := context.WithTimeout(r.Context(), checkTimeout)
	defer cancel()

	statuses := make(map[string]string, len(h.checks))
	healthy := true
	for name, p := range h.checks {
		if err := p.Ping(ctx); err != nil {
			h.log.Warn("dependency is unavailable", slog.String("op", op), slog.String("dependency", name), sl.Err(err))
			statuses[name] = "down"
			healthy = false
			continue
		}
		statuses[name] = "up"
	}

	if !healthy {
		render.Status(r, http.StatusServiceUnavailable)
		render.JSON(w, r, unhealthyResponse{Status: response.StatusError, Error: "unhealthy", Data: statuses})
		return
	}
	render.JSON(w, r, response.OKWithData(statuses))
}
