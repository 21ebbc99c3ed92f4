package database

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PIGAsHIT/audiophile-proof/internal/domain/entities"
	"github.com/PIGAsHIT/audiophile-proof/internal/infrastructure/clients/postgres"
	apperrors "github.com/PIGAsHIT/audiophile-proof/pkg/errors"
)

func setupAdapter(t *testing.T) (*UserAdapter, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	adapter := NewUserAdapter(postgres.NewClientFromDB(db)).(*UserAdapter)
	return adapter, mock
}

func testUser() *entities.User {
	return &entities.User{
		ID:             "11111111-2222-3333-4444-555555555555",
		Email:          "alice@example.com",
		HashedPassword: "$2a$10$hash",
		CreatedAt:      time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

func TestUserAdapterCreate(t *testing.T) {
	adapter, mock := setupAdapter(t)

	mock.ExpectExec(`INSERT INTO "users"`).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := adapter.Create(context.Background(), testUser())
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserAdapterCreateDuplicateEmail(t *testing.T) {
	adapter, mock := setupAdapter(t)

	mock.ExpectExec(`INSERT INTO "users"`).
		WillReturnError(&pq.Error{Code: "23505"})

	err := adapter.Create(context.Background(), testUser())
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrorTypeConflict, apperrors.TypeOf(err))
	assert.Contains(t, err.Error(), "Email already registered")
}

func TestUserAdapterGetByEmail(t *testing.T) {
	adapter, mock := setupAdapter(t)
	want := testUser()

	rows := sqlmock.NewRows([]string{"id", "email", "hashed_password", "created_at"}).
		AddRow(want.ID, want.Email, want.HashedPassword, want.CreatedAt)
	mock.ExpectQuery(`SELECT "id", "email", "hashed_password", "created_at" FROM "users"`).
		WillReturnRows(rows)

	got, err := adapter.GetByEmail(context.Background(), want.Email)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestUserAdapterGetByEmailNotFound(t *testing.T) {
	adapter, mock := setupAdapter(t)

	mock.ExpectQuery(`SELECT "id", "email", "hashed_password", "created_at" FROM "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "hashed_password", "created_at"}))

	_, err := adapter.GetByEmail(context.Background(), "missing@example.com")
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrorTypeNotFound, apperrors.TypeOf(err))
}

func TestUserAdapterGetByID(t *testing.T) {
	adapter, mock := setupAdapter(t)
	want := testUser()

	rows := sqlmock.NewRows([]string{"id", "email", "hashed_password", "created_at"}).
		AddRow(want.ID, want.Email, want.HashedPassword, want.CreatedAt)
	mock.ExpectQuery(`SELECT "id", "email", "hashed_password", "created_at" FROM "users"`).
		WillReturnRows(rows)

	got, err := adapter.GetByID(context.Background(), want.ID)
	require.NoError(t, err)
	assert.Equal(t, want.Email, got.Email)
}
