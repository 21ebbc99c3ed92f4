package database

import (
	"context"
	"database/sql"
	"errors"

	"github.com/doug-martin/goqu/v9"
	"github.com/lib/pq"

	"github.com/PIGAsHIT/audiophile-proof/internal/domain/entities"
	"github.com/PIGAsHIT/audiophile-proof/internal/domain/repositories"
	"github.com/PIGAsHIT/audiophile-proof/internal/infrastructure/clients/postgres"
	apperrors "github.com/PIGAsHIT/audiophile-proof/pkg/errors"
)

const uniqueViolation = "23505"

// UserAdapter implements user persistence in Postgres.
type UserAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewUserAdapter creates a new user adapter.
func NewUserAdapter(client *postgres.Client) repositories.UserRepository {
	return &UserAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create inserts a user record. A duplicate email maps to a conflict
// error with the stable detail string the API contract requires.
func (a *UserAdapter) Create(ctx context.Context, user *entities.User) error {
	record := goqu.Record{
		"id":              user.ID,
		"email":           user.Email,
		"hashed_password": user.HashedPassword,
		"created_at":      user.CreatedAt,
	}

	query, args, err := a.db.Insert("users").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build user insert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
			return apperrors.NewConflictError("Email already registered")
		}
		return apperrors.NewInternalError("failed to create user", err)
	}

	return nil
}

// GetByID retrieves a user by ID.
func (a *UserAdapter) GetByID(ctx context.Context, id string) (*entities.User, error) {
	return a.getBy(ctx, goqu.Ex{"id": id})
}

// GetByEmail retrieves a user by email.
func (a *UserAdapter) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	return a.getBy(ctx, goqu.Ex{"email": email})
}

func (a *UserAdapter) getBy(ctx context.Context, where goqu.Ex) (*entities.User, error) {
	query, args, err := a.db.From("users").
		Select("id", "email", "hashed_password", "created_at").
		Where(where).
		Limit(1).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build user select query", err)
	}

	var user entities.User
	row := a.client.DB().QueryRowContext(ctx, query, args...)
	if err := row.Scan(&user.ID, &user.Email, &user.HashedPassword, &user.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("user not found")
		}
		return nil, apperrors.NewInternalError("failed to get user", err)
	}

	return &user, nil
}
