package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/subscription-tracker/internal/billing"
	"github.com/magabrotheeeer/subscription-tracker/internal/cache"
	"github.com/magabrotheeeer/subscription-tracker/internal/models"
	"github.com/magabrotheeeer/subscription-tracker/internal/storage/repository"
)

type RepoMock struct{ mock.Mock }

func (m *RepoMock) CreateSubscription(ctx context.Context, sub models.Subscription) (int64, error) {
	args := m.Called(ctx, sub)
	return args.Get(0).(int64), args.Error(1)
}

func (m *RepoMock) GetSubscription(ctx context.Context, userID, id int64) (*models.Subscription, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Subscription), args.Error(1)
}

func (m *RepoMock) UpdateSubscription(ctx context.Context, sub models.Subscription) error {
	return m.Called(ctx, sub).Error(0)
}

func (m *RepoMock) DeleteSubscription(ctx context.Context, userID, id int64) error {
	return m.Called(ctx, userID, id).Error(0)
}

func (m *RepoMock) ListSubscriptions(ctx context.Context, q models.ListQuery) ([]*models.Subscription, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Subscription), args.Error(1)
}

func (m *RepoMock) CountSubscriptions(ctx context.Context, userID int64) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

func (m *RepoMock) ListAllSubscriptions(ctx context.Context, userID int64) ([]*models.Subscription, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Subscription), args.Error(1)
}

func (m *RepoMock) SubscriptionNameExists(ctx context.Context, userID int64, name string) (bool, error) {
	args := m.Called(ctx, userID, name)
	return args.Bool(0), args.Error(1)
}

type CacheMock struct{ mock.Mock }

func (m *CacheMock) Get(ctx context.Context, key string, result any) (bool, error) {
	args := m.Called(ctx, key, result)
	return args.Bool(0), args.Error(1)
}

func (m *CacheMock) Set(ctx context.Context, key string, value any, expiration time.Duration) error {
	return m.Called(ctx, key, value, expiration).Error(0)
}

func (m *CacheMock) Invalidate(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func newService(r *RepoMock, c *CacheMock) *SubscriptionService {
	return NewSubscriptionService(r, c, billing.New(newNoopLogger()), newNoopLogger())
}

func ptr[T any](v T) *T { return &v }

func TestSubscriptionService_Create(t *testing.T) {
	valid := models.DummySubscription{
		SubscriptionName: " Netflix ",
		CategoryID:       3,
		Amount:           1490,
		ContractDate:     "2025-01-15",
		PaymentCycleID:   ptr(int64(2)),
		Notes:            "family",
	}

	tests := []struct {
		name       string
		req        models.DummySubscription
		setupMocks func(r *RepoMock, c *CacheMock)
		wantID     int64
		wantErr    error
	}{
		{
			name: "success create invalidates snapshot",
			req:  valid,
			setupMocks: func(r *RepoMock, c *CacheMock) {
				r.On("CreateSubscription", mock.Anything, mock.MatchedBy(func(s models.Subscription) bool {
					return s.UserID == 7 &&
						s.SubscriptionName == "Netflix" &&
						s.Amount == 1490 &&
						s.ContractDate != nil && s.ContractDate.Equal(time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)) &&
						s.Notes != nil && *s.Notes == "family"
				})).Return(int64(42), nil).Once()
				c.On("Invalidate", mock.Anything, cache.SubscriptionsKey(7)).Return(nil).Once()
			},
			wantID: 42,
		},
		{
			name: "cache failure does not fail create",
			req:  valid,
			setupMocks: func(r *RepoMock, c *CacheMock) {
				r.On("CreateSubscription", mock.Anything, mock.Anything).Return(int64(43), nil).Once()
				c.On("Invalidate", mock.Anything, cache.SubscriptionsKey(7)).Return(errors.New("redis down")).Once()
			},
			wantID: 43,
		},
		{
			name:       "bad contract date",
			req:        models.DummySubscription{SubscriptionName: "Netflix", CategoryID: 3, Amount: 100, ContractDate: "15-01-2025"},
			setupMocks: func(_ *RepoMock, _ *CacheMock) {},
			wantErr:    ErrInvalidInput,
		},
		{
			name:       "blank name",
			req:        models.DummySubscription{SubscriptionName: "   ", CategoryID: 3, Amount: 100},
			setupMocks: func(_ *RepoMock, _ *CacheMock) {},
			wantErr:    ErrInvalidInput,
		},
		{
			name:       "non-positive amount",
			req:        models.DummySubscription{SubscriptionName: "Netflix", CategoryID: 3, Amount: 0},
			setupMocks: func(_ *RepoMock, _ *CacheMock) {},
			wantErr:    ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, c := new(RepoMock), new(CacheMock)
			tt.setupMocks(r, c)

			id, err := newService(r, c).Create(context.Background(), 7, tt.req)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				r.AssertNotCalled(t, "CreateSubscription", mock.Anything, mock.Anything)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.wantID, id)
			}
			r.AssertExpectations(t)
			c.AssertExpectations(t)
		})
	}
}

func TestSubscriptionService_UpdateAndDelete(t *testing.T) {
	req := models.DummySubscription{SubscriptionName: "Hulu", CategoryID: 1, Amount: 1026}

	t.Run("update sets id and owner", func(t *testing.T) {
		r, c := new(RepoMock), new(CacheMock)
		r.On("UpdateSubscription", mock.Anything, mock.MatchedBy(func(s models.Subscription) bool {
			return s.ID == 5 && s.UserID == 7 && s.ContractDate == nil && s.Notes == nil
		})).Return(nil).Once()
		c.On("Invalidate", mock.Anything, cache.SubscriptionsKey(7)).Return(nil).Once()

		require.NoError(t, newService(r, c).Update(context.Background(), 7, 5, req))
		r.AssertExpectations(t)
		c.AssertExpectations(t)
	})

	t.Run("update of foreign subscription", func(t *testing.T) {
		r, c := new(RepoMock), new(CacheMock)
		r.On("UpdateSubscription", mock.Anything, mock.Anything).Return(repository.ErrNotFound).Once()

		err := newService(r, c).Update(context.Background(), 7, 5, req)
		assert.ErrorIs(t, err, repository.ErrNotFound)
		c.AssertNotCalled(t, "Invalidate", mock.Anything, mock.Anything)
	})

	t.Run("delete", func(t *testing.T) {
		r, c := new(RepoMock), new(CacheMock)
		r.On("DeleteSubscription", mock.Anything, int64(7), int64(5)).Return(nil).Once()
		c.On("Invalidate", mock.Anything, cache.SubscriptionsKey(7)).Return(nil).Once()

		require.NoError(t, newService(r, c).Delete(context.Background(), 7, 5))
		r.AssertExpectations(t)
		c.AssertExpectations(t)
	})

	t.Run("delete missing", func(t *testing.T) {
		r, c := new(RepoMock), new(CacheMock)
		r.On("DeleteSubscription", mock.Anything, int64(7), int64(5)).Return(repository.ErrNotFound).Once()

		err := newService(r, c).Delete(context.Background(), 7, 5)
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})
}

func TestSubscriptionService_Get(t *testing.T) {
	r, c := new(RepoMock), new(CacheMock)
	want := &models.Subscription{ID: 5, UserID: 7, SubscriptionName: "Hulu"}
	r.On("GetSubscription", mock.Anything, int64(7), int64(5)).Return(want, nil).Once()

	got, err := newService(r, c).Get(context.Background(), 7, 5)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestSubscriptionService_List(t *testing.T) {
	tests := []struct {
		name           string
		sort           string
		page           int
		total          int
		wantQuery      models.ListQuery
		wantPage       int
		wantTotalPages int
	}{
		{
			name: "first page default sort", sort: "", page: 1, total: 0,
			wantQuery: models.ListQuery{UserID: 7, Sort: "newest", Limit: 10, Offset: 0},
			wantPage:  1, wantTotalPages: 0,
		},
		{
			name: "third page price asc", sort: "price_asc", page: 3, total: 21,
			wantQuery: models.ListQuery{UserID: 7, Sort: "price_asc", Limit: 10, Offset: 20},
			wantPage:  3, wantTotalPages: 3,
		},
		{
			name: "page below one and unknown sort", sort: "random", page: -4, total: 10,
			wantQuery: models.ListQuery{UserID: 7, Sort: "newest", Limit: 10, Offset: 0},
			wantPage:  1, wantTotalPages: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, c := new(RepoMock), new(CacheMock)
			items := []*models.Subscription{{ID: 1}}
			r.On("CountSubscriptions", mock.Anything, int64(7)).Return(tt.total, nil).Once()
			r.On("ListSubscriptions", mock.Anything, tt.wantQuery).Return(items, nil).Once()

			page, err := newService(r, c).List(context.Background(), 7, tt.sort, tt.page)
			require.NoError(t, err)
			assert.Equal(t, tt.wantPage, page.Page)
			assert.Equal(t, tt.wantTotalPages, page.TotalPages)
			assert.Equal(t, tt.total, page.TotalCount)
			assert.Equal(t, items, page.Items)
			r.AssertExpectations(t)
		})
	}
}

func TestSubscriptionService_CheckDuplicate(t *testing.T) {
	r, c := new(RepoMock), new(CacheMock)
	r.On("SubscriptionNameExists", mock.Anything, int64(7), "Netflix").Return(true, nil).Once()
	s := newService(r, c)

	dup, err := s.CheckDuplicate(context.Background(), 7, "  Netflix ")
	require.NoError(t, err)
	assert.True(t, dup)

	dup, err = s.CheckDuplicate(context.Background(), 7, "   ")
	require.NoError(t, err)
	assert.False(t, dup)

	r.AssertExpectations(t)
}

func TestSubscriptionService_Snapshot(t *testing.T) {
	key := cache.SubscriptionsKey(7)
	stored := []*models.Subscription{{ID: 1, Amount: 500}}

	t.Run("cache hit skips repository", func(t *testing.T) {
		r, c := new(RepoMock), new(CacheMock)
		c.On("Get", mock.Anything, key, mock.Anything).Run(func(args mock.Arguments) {
			out := args.Get(2).(*[]*models.Subscription)
			*out = stored
		}).Return(true, nil).Once()

		got, err := newService(r, c).Snapshot(context.Background(), 7)
		require.NoError(t, err)
		assert.Equal(t, stored, got)
		r.AssertNotCalled(t, "ListAllSubscriptions", mock.Anything, mock.Anything)
	})

	t.Run("cache miss loads and stores", func(t *testing.T) {
		r, c := new(RepoMock), new(CacheMock)
		c.On("Get", mock.Anything, key, mock.Anything).Return(false, nil).Once()
		r.On("ListAllSubscriptions", mock.Anything, int64(7)).Return(stored, nil).Once()
		c.On("Set", mock.Anything, key, stored, cache.SubscriptionsTTL).Return(nil).Once()

		got, err := newService(r, c).Snapshot(context.Background(), 7)
		require.NoError(t, err)
		assert.Equal(t, stored, got)
		c.AssertExpectations(t)
	})

	t.Run("cache errors fall back to repository", func(t *testing.T) {
		r, c := new(RepoMock), new(CacheMock)
		c.On("Get", mock.Anything, key, mock.Anything).Return(false, errors.New("redis down")).Once()
		r.On("ListAllSubscriptions", mock.Anything, int64(7)).Return(stored, nil).Once()
		c.On("Set", mock.Anything, key, stored, cache.SubscriptionsTTL).Return(errors.New("redis down")).Once()

		got, err := newService(r, c).Snapshot(context.Background(), 7)
		require.NoError(t, err)
		assert.Equal(t, stored, got)
	})

	t.Run("repository error", func(t *testing.T) {
		r, c := new(RepoMock), new(CacheMock)
		c.On("Get", mock.Anything, key, mock.Anything).Return(false, nil).Once()
		r.On("ListAllSubscriptions", mock.Anything, int64(7)).Return(nil, errors.New("db down")).Once()

		_, err := newService(r, c).Snapshot(context.Background(), 7)
		require.Error(t, err)
		c.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}
