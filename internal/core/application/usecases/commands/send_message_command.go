package commands

import (
	"errors"

	"courier/internal/core/domain/model/actor"
	"courier/internal/core/domain/model/kernel"
	"courier/internal/pkg/guard"
)

var ErrSendMessageCommandIsNotConstructed = errors.New(
	"SendMessageCommand must be created via NewSendMessageCommand constructor",
)

// SendMessageCommand represents a participant writing a chat message about
// a package. Text length rules are enforced by the chat domain when the
// handler constructs the message.
type SendMessageCommand struct {
	sender    actor.Actor
	packageID kernel.UUID
	text      string

	guard guard.ConstructorGuard
}

// NewSendMessageCommand creates a message command.
func NewSendMessageCommand(sender actor.Actor, packageID kernel.UUID, text string) (SendMessageCommand, error) {
	if err := sender.Validate(); err != nil {
		return SendMessageCommand{}, err
	}
	if err := packageID.Validate(); err != nil {
		return SendMessageCommand{}, err
	}

	return SendMessageCommand{
		sender:    sender,
		packageID: packageID,
		text:      text,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c SendMessageCommand) Validate() error {
	return c.guard.Validate(ErrSendMessageCommandIsNotConstructed)
}

// Sender returns the message author.
func (c SendMessageCommand) Sender() actor.Actor {
	return c.sender
}

// PackageID returns the package the conversation belongs to.
func (c SendMessageCommand) PackageID() kernel.UUID {
	return c.packageID
}

// Text returns the raw message text.
func (c SendMessageCommand) Text() string {
	return c.text
}
