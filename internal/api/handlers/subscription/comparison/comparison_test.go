package comparison

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

func (m *MockService) Comparison(ctx context.Context, userID int64) (*models.Comparison, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Comparison), args.Error(1)
}

func TestComparisonHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name           string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "данные сравнения",
			setupMock: func(m *MockService) {
				m.On("Comparison", mock.Anything, int64(7)).Return(&models.Comparison{
					AmountData:     []models.ChartItem{{Name: "～999円", Value: 1}, {Name: "5,000円～", Value: 2}},
					CategoryData:   []models.ChartItem{{Name: "動画", Value: 3}},
					MonthlyAverage: 14988,
				}, nil).Once()
			},
			expectedStatus: http.StatusOK,
			expectedBody: `{"status":"OK","data":{"amount_data":[{"name":"～999円","value":1},{"name":"5,000円～","value":2}],` +
				`"category_data":[{"name":"動画","value":3}],"monthly_average":14988}}`,
		},
		{
			name: "ошибка сервиса",
			setupMock: func(m *MockService) {
				m.On("Comparison", mock.Anything, int64(7)).Return(nil, errors.New("db error")).Once()
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"status":"Error","error":"could not build comparison"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockService)
			tt.setupMock(svc)

			r := httptest.NewRequest(http.MethodGet, "/api/v1/comparison", nil)
			r = r.WithContext(context.WithValue(r.Context(), middlewarectx.UserID, int64(7)))
			w := httptest.NewRecorder()
			New(logger, svc).ServeHTTP(w, r)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
			svc.AssertExpectations(t)
		})
	}
}
