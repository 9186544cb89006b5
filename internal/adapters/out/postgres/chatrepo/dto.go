// Package chatrepo provides data transfer objects and mapping functions for
// chat message persistence.
package chatrepo

import (
	"time"

	"courier/internal/core/domain/model/chat"
	"courier/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// MessageDTO represents the database structure for persisting chat messages.
type MessageDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	PackageID uuid.UUID `gorm:"type:uuid;index"`
	SenderID  uuid.UUID `gorm:"type:uuid"`
	Text      string
	IsRead    bool
	CreatedAt time.Time
}

// TableName specifies the database table name for chat messages.
func (MessageDTO) TableName() string {
	return "chat_messages"
}

// fromDomain converts a chat message entity to its database representation.
func fromDomain(message *chat.Message) MessageDTO {
	return MessageDTO{
		ID:        message.ID().Bytes(),
		PackageID: message.PackageID().Bytes(),
		SenderID:  message.SenderID().Bytes(),
		Text:      message.Text(),
		IsRead:    message.IsRead(),
		CreatedAt: message.CreatedAt(),
	}
}

// toDomain converts a database DTO to a chat message entity.
func toDomain(dto MessageDTO) (*chat.Message, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	packageID, err := kernel.UUIDFromBytes(dto.PackageID[:])
	if err != nil {
		return nil, err
	}

	senderID, err := kernel.UUIDFromBytes(dto.SenderID[:])
	if err != nil {
		return nil, err
	}

	return chat.RestoreMessage(id, packageID, senderID, dto.Text, dto.CreatedAt, dto.IsRead)
}
