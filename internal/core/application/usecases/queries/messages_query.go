package queries

import (
	"errors"
	"time"

	"courier/internal/core/domain/model/actor"
	"courier/internal/core/domain/model/kernel"
	"courier/internal/pkg/guard"
)

var (
	ErrMessagesQueryIsNotConstructed = errors.New(
		"MessagesQuery must be created via NewMessagesQuery constructor",
	)
)

// MessagesQuery retrieves the conversation attached to a package, oldest
// first. Only the sender and the assigned driver may read it.
type MessagesQuery struct {
	requester actor.Actor
	packageID kernel.UUID

	guard guard.ConstructorGuard
}

// NewMessagesQuery creates a conversation lookup for the given package on
// behalf of the requesting actor.
func NewMessagesQuery(requester actor.Actor, packageID kernel.UUID) (MessagesQuery, error) {
	if err := requester.Validate(); err != nil {
		return MessagesQuery{}, err
	}
	if err := packageID.Validate(); err != nil {
		return MessagesQuery{}, err
	}

	return MessagesQuery{
		requester: requester,
		packageID: packageID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q MessagesQuery) Validate() error {
	return q.guard.Validate(ErrMessagesQueryIsNotConstructed)
}

// Requester returns the actor reading the conversation.
func (q MessagesQuery) Requester() actor.Actor {
	return q.requester
}

// PackageID returns the package whose conversation is read.
func (q MessagesQuery) PackageID() kernel.UUID {
	return q.packageID
}

// MessagesQueryResponse describes one chat message in the conversation.
// SenderName is the author's profile display name, empty when the author
// has no profile.
type MessagesQueryResponse struct {
	ID         kernel.UUID
	SenderID   kernel.UUID
	SenderName string
	Text       string
	IsRead     bool
	CreatedAt  time.Time
}
