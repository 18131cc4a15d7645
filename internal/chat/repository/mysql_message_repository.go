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

// MySQLMessageRepository implements message persistence for MySQL. IDs are
// stored as BINARY(16).
type MySQLMessageRepository struct {
	db *sql.DB
}

// NewMySQLMessageRepository creates a new MySQL message repository.
func NewMySQLMessageRepository(db *sql.DB) *MySQLMessageRepository {
	return &MySQLMessageRepository{db: db}
}

// Create inserts a message. It joins the transaction carried by ctx, if any.
func (m *MySQLMessageRepository) Create(ctx context.Context, msg *chatDomain.Message) error {
	querier := database.GetTx(ctx, m.db)

	id, err := msg.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal message id")
	}

	query := `INSERT INTO messages (id, sender_id, recipient_id, ciphertext, created_at)
			  VALUES (?, ?, ?, ?, ?)`

	_, err = querier.ExecContext(ctx, query, id, msg.SenderID, msg.RecipientID, msg.Ciphertext, msg.CreatedAt)
	if err != nil {
		return apperrors.Wrap(err, "failed to create message")
	}
	return nil
}

// Get retrieves a message by ID.
func (m *MySQLMessageRepository) Get(ctx context.Context, id uuid.UUID) (*chatDomain.Message, error) {
	querier := database.GetTx(ctx, m.db)

	idBytes, err := id.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal message id")
	}

	query := `SELECT id, sender_id, recipient_id, ciphertext, created_at
			  FROM messages
			  WHERE id = ?`

	row := querier.QueryRowContext(ctx, query, idBytes)
	msg, err := scanMySQLMessage(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, chatDomain.ErrMessageNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get message")
	}
	return msg, nil
}

// List returns the messages exchanged between userID and peerID, newest first.
// An empty peerID lists every message userID sent or received.
func (m *MySQLMessageRepository) List(
	ctx context.Context,
	userID, peerID string,
	offset, limit int,
) ([]*chatDomain.Message, error) {
	querier := database.GetTx(ctx, m.db)

	var (
		rows *sql.Rows
		err  error
	)
	if peerID == "" {
		query := `SELECT id, sender_id, recipient_id, ciphertext, created_at
				  FROM messages
				  WHERE sender_id = ? OR recipient_id = ?
				  ORDER BY created_at DESC, id DESC
				  LIMIT ? OFFSET ?`
		rows, err = querier.QueryContext(ctx, query, userID, userID, limit, offset)
	} else {
		query := `SELECT id, sender_id, recipient_id, ciphertext, created_at
				  FROM messages
				  WHERE (sender_id = ? AND recipient_id = ?) OR (sender_id = ? AND recipient_id = ?)
				  ORDER BY created_at DESC, id DESC
				  LIMIT ? OFFSET ?`
		rows, err = querier.QueryContext(ctx, query, userID, peerID, peerID, userID, limit, offset)
	}
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list messages")
	}
	defer func() { _ = rows.Close() }()

	messages := make([]*chatDomain.Message, 0)
	for rows.Next() {
		msg, err := scanMySQLMessage(rows)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan message")
		}
		messages = append(messages, msg)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate messages")
	}
	return messages, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanMySQLMessage(s scanner) (*chatDomain.Message, error) {
	var (
		msg     chatDomain.Message
		idBytes []byte
	)
	if err := s.Scan(&idBytes, &msg.SenderID, &msg.RecipientID, &msg.Ciphertext, &msg.CreatedAt); err != nil {
		return nil, err
	}
	if err := msg.ID.UnmarshalBinary(idBytes); err != nil {
		return nil, err
	}
	return &msg, nil
}
