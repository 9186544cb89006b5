package queries

import (
	"context"
	"database/sql"
	"time"

	"courier/internal/core/domain/model/kernel"
	"courier/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MessagesQueryHandler retrieves a package conversation from the database.
// The participant check runs against the packages table before any message
// row is read, so outsiders learn nothing beyond "not yours".
type MessagesQueryHandler struct {
	db *gorm.DB
}

// NewMessagesQueryHandler creates a handler for conversation queries.
func NewMessagesQueryHandler(db *gorm.DB) MessagesQueryHandler {
	return MessagesQueryHandler{db: db}
}

// Handle executes the query to retrieve the conversation, oldest first.
// Returns ObjectNotFoundError for unknown packages and NotAuthorizedError
// when the requester is neither the sender nor the assigned driver.
func (h MessagesQueryHandler) Handle(
	ctx context.Context,
	query MessagesQuery,
) ([]MessagesQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	var participants struct {
		SenderID uuid.NullUUID
		DriverID uuid.NullUUID
	}

	result := h.db.WithContext(ctx).Raw(`
		SELECT sender_id, driver_id
		FROM packages
		WHERE id = ?
	`, query.PackageID().Bytes()).Scan(&participants)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, errs.NewObjectNotFoundError("package", query.PackageID().String())
	}

	requesterID := query.Requester().ID().Bytes()
	isSender := participants.SenderID.Valid && participants.SenderID.UUID == requesterID
	isDriver := participants.DriverID.Valid && participants.DriverID.UUID == requesterID
	if !isSender && !isDriver {
		return nil, errs.NewNotAuthorizedError(
			"only the sender and the assigned driver can read a package conversation")
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT m.id, m.sender_id, p.full_name, m.text, m.is_read, m.created_at
		FROM chat_messages m
		LEFT JOIN profiles p ON p.user_id = m.sender_id
		WHERE m.package_id = ?
		ORDER BY m.created_at
	`, query.PackageID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	messages := make([]MessagesQueryResponse, 0)
	for rows.Next() {
		var (
			id         uuid.UUID
			senderID   uuid.UUID
			senderName sql.NullString
			text       string
			isRead     bool
			createdAt  time.Time
		)

		if err = rows.Scan(&id, &senderID, &senderName, &text, &isRead, &createdAt); err != nil {
			return nil, err
		}

		messageID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}

		messageSender, idErr := kernel.UUIDFromBytes(senderID[:])
		if idErr != nil {
			return nil, idErr
		}

		messages = append(messages, MessagesQueryResponse{
			ID:         messageID,
			SenderID:   messageSender,
			SenderName: senderName.String,
			Text:       text,
			IsRead:     isRead,
			CreatedAt:  createdAt,
		})
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return messages, nil
}
