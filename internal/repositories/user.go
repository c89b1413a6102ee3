package repositories

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"

	"messagely/internal/logger"
	"messagely/internal/models"
)

// ErrUsernameTaken is returned by Save when the username primary key is
// already in use. Covers inserts that race past a read-then-write check
// in the caller.
var ErrUsernameTaken = errors.New("username already taken")

// uniqueViolation is the PostgreSQL error code for a unique constraint hit.
const uniqueViolation = "23505"

// UserReadRepository reads user rows.
type UserReadRepository struct {
	db *sqlx.DB
}

func NewUserReadRepository(db *sqlx.DB) *UserReadRepository {
	return &UserReadRepository{db: db}
}

// GetByUsername returns the full user row, or (nil, nil) when the
// username does not exist.
func (r *UserReadRepository) GetByUsername(ctx context.Context, username string) (*models.UserDB, error) {
	const query = `
		SELECT username, password_hash, first_name, last_name, phone, join_at, last_login_at
		FROM users
		WHERE username = $1
	`

	var user models.UserDB
	err := sqlx.GetContext(ctx, ext(ctx, r.db), &user, query, username)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{username},
		"error", err,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &user, nil
}

// List returns the public profile fields of every user.
func (r *UserReadRepository) List(ctx context.Context) ([]models.UserProfile, error) {
	const query = `
		SELECT username, first_name, last_name, phone
		FROM users
		ORDER BY username
	`

	users := make([]models.UserProfile, 0)
	err := sqlx.SelectContext(ctx, ext(ctx, r.db), &users, query)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"result_count", len(users),
		"error", err,
	)

	if err != nil {
		return nil, err
	}

	return users, nil
}

// UserWriteRepository writes user rows.
type UserWriteRepository struct {
	db *sqlx.DB
}

func NewUserWriteRepository(db *sqlx.DB) *UserWriteRepository {
	return &UserWriteRepository{db: db}
}

// Save inserts a new user. join_at and last_login_at are both set to the
// current time by the store. The username unique constraint surfaces
// duplicates as ErrUsernameTaken.
func (r *UserWriteRepository) Save(ctx context.Context, username, passwordHash, firstName, lastName, phone string) error {
	const query = `
		INSERT INTO users (username, password_hash, first_name, last_name, phone, join_at, last_login_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
	`
	args := []any{username, passwordHash, firstName, lastName, phone}

	res, err := ext(ctx, r.db).ExecContext(ctx, query, args...)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{username, firstName, lastName, phone},
		"result", rowsAffected,
		"error", err,
	)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return ErrUsernameTaken
	}

	return err
}

// UpdateLastLogin refreshes last_login_at for the given username.
// Fire-and-forget: a username that matches no row is not an error.
func (r *UserWriteRepository) UpdateLastLogin(ctx context.Context, username string) error {
	const query = `
		UPDATE users
		SET last_login_at = NOW()
		WHERE username = $1
	`

	_, err := ext(ctx, r.db).ExecContext(ctx, query, username)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{username},
		"error", err,
	)

	return err
}
