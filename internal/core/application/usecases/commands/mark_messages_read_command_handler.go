package commands

import (
	"context"

	"courier/internal/pkg/errs"
)

// MarkMessagesReadCommandHandler flags the counterparty's messages as read
// when a participant opens the conversation. Only the package's sender and
// its assigned driver may do this.
type MarkMessagesReadCommandHandler struct {
	uowFactory ChatUoWFactory
}

// NewMarkMessagesReadCommandHandler creates a handler for read receipts.
func NewMarkMessagesReadCommandHandler(uowFactory ChatUoWFactory) MarkMessagesReadCommandHandler {
	return MarkMessagesReadCommandHandler{uowFactory: uowFactory}
}

// Handle processes the read receipt.
func (h *MarkMessagesReadCommandHandler) Handle(ctx context.Context, cmd MarkMessagesReadCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	pkg, err := uow.PackageRepository().Get(ctx, cmd.PackageID())
	if err != nil {
		return err
	}

	if !pkg.IsParticipant(cmd.Reader().ID()) {
		return errs.NewNotAuthorizedError("only the sender and the assigned driver can read a package conversation")
	}

	if err = uow.ChatRepository().MarkRead(ctx, pkg.ID(), cmd.Reader().ID()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
