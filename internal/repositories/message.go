package repositories

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"messagely/internal/logger"
	"messagely/internal/models"
)

// MessageReadRepository reads message rows together with the participant
// profiles they reference.
type MessageReadRepository struct {
	db *sqlx.DB
}

func NewMessageReadRepository(db *sqlx.DB) *MessageReadRepository {
	return &MessageReadRepository{db: db}
}

// messageRow is the flat scan target for the detail query.
type messageRow struct {
	MessageID     uuid.UUID  `db:"message_id"`
	Body          string     `db:"body"`
	SentAt        time.Time  `db:"sent_at"`
	ReadAt        *time.Time `db:"read_at"`
	FromUsername  string     `db:"from_username"`
	FromFirstName string     `db:"from_first_name"`
	FromLastName  string     `db:"from_last_name"`
	FromPhone     string     `db:"from_phone"`
	ToUsername    string     `db:"to_username"`
	ToFirstName   string     `db:"to_first_name"`
	ToLastName    string     `db:"to_last_name"`
	ToPhone       string     `db:"to_phone"`
}

// listRow is the flat scan target for the per-user listing queries.
type listRow struct {
	MessageID uuid.UUID  `db:"message_id"`
	Body      string     `db:"body"`
	SentAt    time.Time  `db:"sent_at"`
	ReadAt    *time.Time `db:"read_at"`
	Username  string     `db:"username"`
	FirstName string     `db:"first_name"`
	LastName  string     `db:"last_name"`
	Phone     string     `db:"phone"`
}

// GetByID returns a message joined with both participant profiles, or
// (nil, nil) when no such message exists.
func (r *MessageReadRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.MessageWithUsers, error) {
	const query = `
		SELECT m.message_id, m.body, m.sent_at, m.read_at,
		       f.username AS from_username, f.first_name AS from_first_name,
		       f.last_name AS from_last_name, f.phone AS from_phone,
		       t.username AS to_username, t.first_name AS to_first_name,
		       t.last_name AS to_last_name, t.phone AS to_phone
		FROM messages AS m
		JOIN users AS f ON m.from_username = f.username
		JOIN users AS t ON m.to_username = t.username
		WHERE m.message_id = $1
	`

	var row messageRow
	err := sqlx.GetContext(ctx, ext(ctx, r.db), &row, query, id)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{id},
		"error", err,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &models.MessageWithUsers{
		MessageID: row.MessageID,
		Body:      row.Body,
		SentAt:    row.SentAt,
		ReadAt:    row.ReadAt,
		From: models.UserProfile{
			Username:  row.FromUsername,
			FirstName: row.FromFirstName,
			LastName:  row.FromLastName,
			Phone:     row.FromPhone,
		},
		To: models.UserProfile{
			Username:  row.ToUsername,
			FirstName: row.ToFirstName,
			LastName:  row.ToLastName,
			Phone:     row.ToPhone,
		},
	}, nil
}

// ListTo returns the messages sent to the given user, each with the
// sender profile. An empty result is an empty slice, not an error.
func (r *MessageReadRepository) ListTo(ctx context.Context, username string) ([]models.MessageListItem, error) {
	const query = `
		SELECT m.message_id, m.body, m.sent_at, m.read_at,
		       u.username, u.first_name, u.last_name, u.phone
		FROM messages AS m
		JOIN users AS u ON m.from_username = u.username
		WHERE m.to_username = $1
		ORDER BY m.sent_at
	`
	return r.list(ctx, query, username)
}

// ListFrom returns the messages sent by the given user, each with the
// recipient profile. An empty result is an empty slice, not an error.
func (r *MessageReadRepository) ListFrom(ctx context.Context, username string) ([]models.MessageListItem, error) {
	const query = `
		SELECT m.message_id, m.body, m.sent_at, m.read_at,
		       u.username, u.first_name, u.last_name, u.phone
		FROM messages AS m
		JOIN users AS u ON m.to_username = u.username
		WHERE m.from_username = $1
		ORDER BY m.sent_at
	`
	return r.list(ctx, query, username)
}

func (r *MessageReadRepository) list(ctx context.Context, query, username string) ([]models.MessageListItem, error) {
	rows := make([]listRow, 0)
	err := sqlx.SelectContext(ctx, ext(ctx, r.db), &rows, query, username)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{username},
		"result_count", len(rows),
		"error", err,
	)

	if err != nil {
		return nil, err
	}

	items := make([]models.MessageListItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, models.MessageListItem{
			MessageID: row.MessageID,
			Body:      row.Body,
			SentAt:    row.SentAt,
			ReadAt:    row.ReadAt,
			User: models.UserProfile{
				Username:  row.Username,
				FirstName: row.FirstName,
				LastName:  row.LastName,
				Phone:     row.Phone,
			},
		})
	}

	return items, nil
}

// MessageWriteRepository writes message rows.
type MessageWriteRepository struct {
	db *sqlx.DB
}

func NewMessageWriteRepository(db *sqlx.DB) *MessageWriteRepository {
	return &MessageWriteRepository{db: db}
}

// Save inserts a new message with a generated id, sent_at set by the
// store and read_at NULL, and returns the stored row.
func (r *MessageWriteRepository) Save(ctx context.Context, fromUsername, toUsername, body string) (*models.MessageDB, error) {
	const query = `
		INSERT INTO messages (message_id, from_username, to_username, body, sent_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING message_id, from_username, to_username, body, sent_at, read_at
	`
	args := []any{uuid.New(), fromUsername, toUsername, body}

	var msg models.MessageDB
	err := sqlx.GetContext(ctx, ext(ctx, r.db), &msg, query, args...)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", args,
		"error", err,
	)

	if err != nil {
		return nil, err
	}

	return &msg, nil
}

// MarkRead sets read_at for the message if it is not set yet. The
// Unread to Read transition is one-way: a second call leaves the
// original timestamp untouched. Returns (nil, nil) when the message
// does not exist.
func (r *MessageWriteRepository) MarkRead(ctx context.Context, id uuid.UUID) (*models.MessageDB, error) {
	const query = `
		UPDATE messages
		SET read_at = COALESCE(read_at, NOW())
		WHERE message_id = $1
		RETURNING message_id, from_username, to_username, body, sent_at, read_at
	`

	var msg models.MessageDB
	err := sqlx.GetContext(ctx, ext(ctx, r.db), &msg, query, id)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{id},
		"error", err,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &msg, nil
}
