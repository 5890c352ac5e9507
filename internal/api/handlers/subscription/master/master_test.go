package master

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/subscription-tracker/internal/api/middlewarectx"
	"github.com/magabrotheeeer/subscription-tracker/internal/models"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) Master(ctx context.Context, userID int64) (*models.Master, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Master), args.Error(1)
}

func TestMasterHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("справочники", func(t *testing.T) {
		svc := new(MockService)
		svc.On("Master", mock.Anything, int64(7)).Return(&models.Master{
			Categories:     []*models.Category{{ID: 1, CategoryName: "動画", UserID: 7}},
			PaymentCycles:  []*models.PaymentCycle{{ID: 1, PaymentCycleName: "1ヶ月"}},
			PaymentMethods: []*models.PaymentMethod{{ID: 1, PaymentMethodName: "PayPal"}},
		}, nil).Once()

		r := httptest.NewRequest(http.MethodGet, "/api/v1/subscriptions/master", nil)
		r = r.WithContext(context.WithValue(r.Context(), middlewarectx.UserID, int64(7)))
		w := httptest.NewRecorder()
		New(logger, svc).ServeHTTP(w, r)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"status":"OK","data":{
			"categories":[{"id":1,"category_name":"動画","user_id":7}],
			"payment_cycles":[{"id":1,"payment_cycle_name":"1ヶ月"}],
			"payment_methods":[{"id":1,"payment_method_name":"PayPal"}]}}`, w.Body.String())
	})

	t.Run("ошибка сервиса", func(t *testing.T) {
		svc := new(MockService)
		svc.On("Master", mock.Anything, int64(7)).Return(nil, errors.New("db error")).Once()

		r := httptest.NewRequest(http.MethodGet, "/api/v1/subscriptions/master", nil)
		r = r.WithContext(context.WithValue(r.Context(), middlewarectx.UserID, int64(7)))
		w := httptest.NewRecorder()
		New(logger, svc).ServeHTTP(w, r)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.JSONEq(t, `{"status":"Error","error":"could not load master data"}`, w.Body.String())
	})

	t.Run("без авторизации", func(t *testing.T) {
		svc := new(MockService)
		w := httptest.NewRecorder()
		New(logger, svc).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/subscriptions/master", nil))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		svc.AssertNotCalled(t, "Master", mock.Anything, mock.Anything)
	})
}
