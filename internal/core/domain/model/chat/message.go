// Package chat implements the per-package conversation between the sender
// and the assigned driver. Messages are append-only and immutable; only the
// read flag changes after creation.
package chat

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"courier/internal/core/domain/model/kernel"
	"courier/internal/pkg/errs"
)

// MessageLenMax bounds the message text length after trimming.
const MessageLenMax = 1000

// ErrMessageIsNotConstructed is returned when a Message instance was not
// created through a constructor.
var ErrMessageIsNotConstructed = errors.New("Message must be created via NewMessage or RestoreMessage")

// Message is one chat entry exchanged about a package. Visible only to the
// package's sender and its assigned driver.
type Message struct {
	id        kernel.UUID
	packageID kernel.UUID
	senderID  kernel.UUID
	text      string
	createdAt time.Time
	isRead    bool

	isConstructed bool
}

// NewMessage creates a chat message. The text is trimmed and must be
// 1 to 1000 characters afterwards.
func NewMessage(packageID, senderID kernel.UUID, text string, at time.Time) (*Message, error) {
	if err := packageID.Validate(); err != nil {
		return nil, err
	}
	if err := senderID.Validate(); err != nil {
		return nil, err
	}

	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, errs.NewValueIsRequiredError("message")
	}
	if utf8.RuneCountInString(trimmed) > MessageLenMax {
		return nil, errs.NewValueIsOutOfRangeError("message", trimmed, 1, MessageLenMax)
	}

	return &Message{
		id:            kernel.NewUUID(),
		packageID:     packageID,
		senderID:      senderID,
		text:          trimmed,
		createdAt:     at,
		isConstructed: true,
	}, nil
}

// RestoreMessage reconstructs a Message from persistence.
func RestoreMessage(id, packageID, senderID kernel.UUID, text string, createdAt time.Time, isRead bool) (*Message, error) {
	if err := errors.Join(
		id.Validate(),
		packageID.Validate(),
		senderID.Validate(),
	); err != nil {
		return nil, err
	}

	return &Message{
		id:            id,
		packageID:     packageID,
		senderID:      senderID,
		text:          text,
		createdAt:     createdAt,
		isRead:        isRead,
		isConstructed: true,
	}, nil
}

// Validate ensures the Message was created through a constructor.
func (m *Message) Validate() error {
	if m == nil || !m.isConstructed {
		return ErrMessageIsNotConstructed
	}
	return nil
}

// ID returns the message's unique identifier.
func (m *Message) ID() kernel.UUID {
	return m.id
}

// PackageID returns the package the message belongs to.
func (m *Message) PackageID() kernel.UUID {
	return m.packageID
}

// SenderID returns who wrote the message.
func (m *Message) SenderID() kernel.UUID {
	return m.senderID
}

// Text returns the trimmed message text.
func (m *Message) Text() string {
	return m.text
}

// CreatedAt returns when the message was written.
func (m *Message) CreatedAt() time.Time {
	return m.createdAt
}

// IsRead reports whether the counterparty has seen the message.
func (m *Message) IsRead() bool {
	return m.isRead
}

// MarkRead flags the message as seen by the counterparty.
func (m *Message) MarkRead() {
	m.isRead = true
}
