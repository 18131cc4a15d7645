// Package repository persists encrypted chat messages in PostgreSQL or MySQL.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	chatDomain "github.com/allisson/chatcrypt/internal/chat/domain"
	"github.com/allisson/chatcrypt/internal/database"
	apperrors "github.com/allisson/chatcrypt/internal/errors"
)

// PostgreSQLMessageRepository implements message persistence for PostgreSQL.
type PostgreSQLMessageRepository struct {
	db *sql.DB
}

// NewPostgreSQLMessageRepository creates a new PostgreSQL message repository.
func NewPostgreSQLMessageRepository(db *sql.DB) *PostgreSQLMessageRepository {
	return &PostgreSQLMessageRepository{db: db}
}

// Create inserts a message. It joins the transaction carried by ctx, if any.
func (p *PostgreSQLMessageRepository) Create(ctx context.Context, msg *chatDomain.Message) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO messages (id, sender_id, recipient_id, ciphertext, created_at)
			  VALUES ($1, $2, $3, $4, $5)`

	_, err := querier.ExecContext(ctx, query, msg.ID, msg.SenderID, msg.RecipientID, msg.Ciphertext, msg.CreatedAt)
	if err != nil {
		return apperrors.Wrap(err, "failed to create message")
	}
	return nil
}

// Get retrieves a message by ID.
func (p *PostgreSQLMessageRepository) Get(ctx context.Context, id uuid.UUID) (*chatDomain.Message, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, sender_id, recipient_id, ciphertext, created_at
			  FROM messages
			  WHERE id = $1`

	var msg chatDomain.Message
	err := querier.QueryRowContext(ctx, query, id).Scan(
		&msg.ID,
		&msg.SenderID,
		&msg.RecipientID,
		&msg.Ciphertext,
		&msg.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, chatDomain.ErrMessageNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get message")
	}
	return &msg, nil
}

// List returns the messages exchanged between userID and peerID, newest first.
// An empty peerID lists every message userID sent or received.
func (p *PostgreSQLMessageRepository) List(
	ctx context.Context,
	userID, peerID string,
	offset, limit int,
) ([]*chatDomain.Message, error) {
	querier := database.GetTx(ctx, p.db)

	var (
		rows *sql.Rows
		err  error
	)
	if peerID == "" {
		query := `SELECT id, sender_id, recipient_id, ciphertext, created_at
				  FROM messages
				  WHERE sender_id = $1 OR recipient_id = $1
				  ORDER BY created_at DESC, id DESC
				  LIMIT $2 OFFSET $3`
		rows, err = querier.QueryContext(ctx, query, userID, limit, offset)
	} else {
		query := `SELECT id, sender_id, recipient_id, ciphertext, created_at
				  FROM messages
				  WHERE (sender_id = $1 AND recipient_id = $2) OR (sender_id = $2 AND recipient_id = $1)
				  ORDER BY created_at DESC, id DESC
				  LIMIT $3 OFFSET $4`
		rows, err = querier.QueryContext(ctx, query, userID, peerID, limit, offset)
	}
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list messages")
	}
	defer func() { _ = rows.Close() }()

	messages := make([]*chatDomain.Message, 0)
	for rows.Next() {
		var msg chatDomain.Message
		if err := rows.Scan(&msg.ID, &msg.SenderID, &msg.RecipientID, &msg.Ciphertext, &msg.CreatedAt); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan message")
		}
		messages = append(messages, &msg)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate messages")
	}
	return messages, nil
}
