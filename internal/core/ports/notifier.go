package ports

import (
	"context"

	"courier/internal/core/domain/model/chat"
)

// MessageNotifier is the event sink for new chat messages. The core stays
// synchronous and request-driven; after a message commits, it hands the
// message to the notifier and moves on. Implementations fan the notification
// out to whatever transport the viewers use.
type MessageNotifier interface {
	Notify(ctx context.Context, message *chat.Message)
}
