package repository

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/magabrotheeeer/subscription-tracker/internal/migrations"
)

// setupTestDatabase поднимает PostgreSQL в контейнере и применяет миграции.
func setupTestDatabase(t *testing.T) *Storage {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping postgres integration test in short mode")
	}
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("user"),
		postgres.WithPassword("password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := pgContainer.Terminate(context.Background()); err != nil {
			t.Logf("failed to terminate container: %s", err)
		}
	})

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	storage, err := New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = storage.Close() })

	root, err := filepath.Abs("../../..")
	require.NoError(t, err)
	_, err = migrations.Run(storage.DB, filepath.Join(root, "migrations"))
	require.NoError(t, err)
	require.NoError(t, CheckDatabaseReady(ctx, storage))

	return storage
}

// TestDataFactory создаёт тестовые данные напрямую через SQL.
type TestDataFactory struct {
	db *sql.DB
}

// NewTestDataFactory создаёт фабрику поверх хранилища.
func NewTestDataFactory(storage *Storage) *TestDataFactory {
	return &TestDataFactory{db: storage.DB}
}

// CreateUser создаёт пользователя и возвращает его ID.
func (f *TestDataFactory) CreateUser(t *testing.T, name, email string) int64 {
	t.Helper()
	var id int64
	err := f.db.QueryRow(`INSERT INTO users (user_name, email, password_hash) VALUES ($1, $2, 'hash') RETURNING id`,
		name, email).Scan(&id)
	require.NoError(t, err)
	return id
}

// CreateCategory создаёт категорию пользователя и возвращает её ID.
func (f *TestDataFactory) CreateCategory(t *testing.T, userID int64, name string) int64 {
	t.Helper()
	var id int64
	err := f.db.QueryRow(`INSERT INTO categories (user_id, category_name) VALUES ($1, $2) RETURNING id`,
		userID, name).Scan(&id)
	require.NoError(t, err)
	return id
}

// CycleID возвращает ID периода оплаты по названию из справочника.
func (f *TestDataFactory) CycleID(t *testing.T, name string) int64 {
	t.Helper()
	var id int64
	require.NoError(t, f.db.QueryRow(`SELECT id FROM payment_cycles WHERE payment_cycle_name = $1`, name).Scan(&id))
	return id
}
