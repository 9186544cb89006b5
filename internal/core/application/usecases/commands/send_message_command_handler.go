package commands

import (
	"context"
	"time"

	"courier/internal/core/domain/model/chat"
	"courier/internal/core/ports"
	"courier/internal/pkg/errs"
)

// SendMessageCommandHandler handles writing a chat message. Only the
// package's sender and its assigned driver may write; after the message
// commits, the notifier fans it out to any connected viewers.
type SendMessageCommandHandler struct {
	uowFactory ChatUoWFactory
	notifier   ports.MessageNotifier
}

// NewSendMessageCommandHandler creates a handler for chat messages.
func NewSendMessageCommandHandler(uowFactory ChatUoWFactory, notifier ports.MessageNotifier) SendMessageCommandHandler {
	return SendMessageCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle processes the message and returns it as stored.
func (h *SendMessageCommandHandler) Handle(ctx context.Context, cmd SendMessageCommand) (*chat.Message, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	pkg, err := uow.PackageRepository().Get(ctx, cmd.PackageID())
	if err != nil {
		return nil, err
	}

	if !pkg.IsParticipant(cmd.Sender().ID()) {
		return nil, errs.NewNotAuthorizedError("only the sender and the assigned driver can message about a package")
	}

	message, err := chat.NewMessage(pkg.ID(), cmd.Sender().ID(), cmd.Text(), time.Now())
	if err != nil {
		return nil, err
	}

	if err = uow.ChatRepository().Add(ctx, message); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.notifier.Notify(ctx, message)

	return message, nil
}
