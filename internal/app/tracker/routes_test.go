package tracker

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/subscription-tracker/internal/api/handlers/subscription/health"
	"github.com/magabrotheeeer/subscription-tracker/internal/api/middlewarectx"
	"github.com/magabrotheeeer/subscription-tracker/internal/lib/jwt"
	"github.com/magabrotheeeer/subscription-tracker/internal/models"
	authservice "github.com/magabrotheeeer/subscription-tracker/internal/services/auth"
	categoryservice "github.com/magabrotheeeer/subscription-tracker/internal/services/category"
)

type fakeUsers struct{}

func (fakeUsers) CreateUser(context.Context, models.User) (int64, error) { return 1, nil }

func (fakeUsers) GetUserByEmail(context.Context, string) (*models.User, error) {
	return nil, nil
}

type fakeCategories struct{}

func (fakeCategories) ListCategories(_ context.Context, userID int64) ([]*models.Category, error) {
	return []*models.Category{{ID: 1, CategoryName: "動画", UserID: userID}}, nil
}

func (fakeCategories) CreateCategories(context.Context, int64, []string) error { return nil }

func (fakeCategories) SaveCategories(context.Context, int64, []models.CategoryChange) error {
	return nil
}

func (fakeCategories) ListPaymentCycles(context.Context) ([]*models.PaymentCycle, error) {
	return nil, nil
}

func (fakeCategories) ListPaymentMethods(context.Context) ([]*models.PaymentMethod, error) {
	return nil, nil
}

type fakeInvalidator struct{}

func (fakeInvalidator) Invalidate(context.Context, string) error { return nil }

type pingOK struct{}

func (pingOK) Ping(context.Context) error { return nil }

func newTestRouter(t *testing.T, limiter *middlewarectx.RateLimiter) (http.Handler, *jwt.HS256Maker) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	maker := jwt.NewMaker("test-secret", time.Hour)
	registry := prometheus.NewRegistry()

	r := chi.NewRouter()
	RegisterRoutes(r, Router{
		Logger: logger,
		Services: Services{
			Auth:     authservice.NewAuthService(fakeUsers{}, maker, logger),
			Category: categoryservice.NewCategoryService(fakeCategories{}, fakeInvalidator{}, logger),
		},
		Limiter:  limiter,
		Registry: registry,
		Metrics:  middlewarectx.NewMetrics(registry),
		Health:   map[string]health.Pinger{"postgres": pingOK{}},
	})
	return r, maker
}

func TestRoutes_ProtectedRequiresToken(t *testing.T) {
	router, maker := newTestRouter(t, middlewarectx.NewRateLimiter(100, 100))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/categories", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	token, err := maker.GenerateToken(5, "user@example.com")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/categories", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"OK","data":[{"id":1,"category_name":"動画","user_id":5}]}`, w.Body.String())
}

func TestRoutes_RateLimitedPerUser(t *testing.T) {
	router, maker := newTestRouter(t, middlewarectx.NewRateLimiter(0, 1))
	token, err := maker.GenerateToken(5, "user@example.com")
	require.NoError(t, err)

	codes := make([]int, 0, 2)
	for range 2 {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/categories", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestRoutes_OperationalEndpoints(t *testing.T) {
	router, _ := newTestRouter(t, middlewarectx.NewRateLimiter(100, 100))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"OK","data":{"postgres":"up"}}`, w.Body.String())

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), `tracker_http_requests_total{method="GET",path="/health",status="200"} 1`))
}
