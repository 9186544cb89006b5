package ports

import (
	"context"

	"courier/internal/core/domain/model/chat"
	"courier/internal/core/domain/model/kernel"
)

// ChatRepository defines the persistence contract for chat messages.
// Messages are append-only; only the read flag is ever updated.
type ChatRepository interface {
	// Add persists a new chat message.
	Add(ctx context.Context, message *chat.Message) error

	// GetByPackage retrieves all messages for a package ordered by
	// creation time. Authorization is the caller's responsibility.
	GetByPackage(ctx context.Context, packageID kernel.UUID) ([]*chat.Message, error)

	// MarkRead flags every message in the package's conversation that was
	// not written by readerID as read.
	MarkRead(ctx context.Context, packageID, readerID kernel.UUID) error
}
