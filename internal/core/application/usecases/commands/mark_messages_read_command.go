package commands

import (
	"errors"

	"courier/internal/core/domain/model/actor"
	"courier/internal/core/domain/model/kernel"
	"courier/internal/pkg/guard"
)

var ErrMarkMessagesReadCommandIsNotConstructed = errors.New(
	"MarkMessagesReadCommand must be created via NewMarkMessagesReadCommand constructor",
)

// MarkMessagesReadCommand represents a participant opening a package
// conversation. Messages written by the counterparty are flagged as read;
// the reader's own messages are untouched.
type MarkMessagesReadCommand struct {
	reader    actor.Actor
	packageID kernel.UUID

	guard guard.ConstructorGuard
}

// NewMarkMessagesReadCommand creates a read receipt command.
func NewMarkMessagesReadCommand(reader actor.Actor, packageID kernel.UUID) (MarkMessagesReadCommand, error) {
	if err := reader.Validate(); err != nil {
		return MarkMessagesReadCommand{}, err
	}
	if err := packageID.Validate(); err != nil {
		return MarkMessagesReadCommand{}, err
	}

	return MarkMessagesReadCommand{
		reader:    reader,
		packageID: packageID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c MarkMessagesReadCommand) Validate() error {
	return c.guard.Validate(ErrMarkMessagesReadCommandIsNotConstructed)
}

// Reader returns who opened the conversation.
func (c MarkMessagesReadCommand) Reader() actor.Actor {
	return c.reader
}

// PackageID returns the package the conversation belongs to.
func (c MarkMessagesReadCommand) PackageID() kernel.UUID {
	return c.packageID
}
