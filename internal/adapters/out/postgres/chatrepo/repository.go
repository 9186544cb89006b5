package chatrepo

import (
	"context"
	"errors"

	"courier/internal/core/domain/model/chat"
	"courier/internal/core/domain/model/kernel"

	"gorm.io/gorm"
)

// GormChatRepository implements ChatRepository using GORM.
type GormChatRepository struct {
	db *gorm.DB
}

// NewGormChatRepository creates a new GORM chat repository.
func NewGormChatRepository(db *gorm.DB) *GormChatRepository {
	return &GormChatRepository{db: db}
}

// Add saves a new chat message to the database.
func (r *GormChatRepository) Add(ctx context.Context, message *chat.Message) error {
	if err := message.Validate(); err != nil {
		return err
	}

	dto := fromDomain(message)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// GetByPackage retrieves a package's conversation, oldest first.
func (r *GormChatRepository) GetByPackage(
	ctx context.Context,
	packageID kernel.UUID,
) ([]*chat.Message, error) {
	if err := packageID.Validate(); err != nil {
		return nil, err
	}

	var dtos []MessageDTO
	err := r.db.WithContext(ctx).
		Where("package_id = ?", packageID.Bytes()).
		Order("created_at").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	messages := make([]*chat.Message, 0, len(dtos))
	for _, dto := range dtos {
		message, convErr := toDomain(dto)
		if convErr != nil {
			return nil, convErr
		}
		messages = append(messages, message)
	}

	return messages, nil
}

// MarkRead flags the counterpart's messages in the conversation as read.
// The reader's own messages keep their flag, it signals the other side.
func (r *GormChatRepository) MarkRead(ctx context.Context, packageID, readerID kernel.UUID) error {
	if err := errors.Join(packageID.Validate(), readerID.Validate()); err != nil {
		return err
	}

	return r.db.WithContext(ctx).Model(&MessageDTO{}).
		Where("package_id = ? AND sender_id <> ? AND is_read = ?", packageID.Bytes(), readerID.Bytes(), false).
		Update("is_read", true).Error
}
