package parcel

import (
	"errors"
	"fmt"
	"net/mail"
	"regexp"
	"strings"
	"unicode/utf8"

	"courier/internal/core/domain/model/kernel"
	"courier/internal/pkg/errs"
	"courier/internal/pkg/guard"
)

// Field length bounds applied at booking and edit time.
const (
	NameLenMin    = 2
	NameLenMax    = 100
	AddressLenMin = 5
	AddressLenMax = 200
	CityLenMin    = 2
	CityLenMax    = 100
	EmailLenMax   = 255
	NotesLenMax   = 1000
	WeightKgMax   = 1000.0
	ValueMax      = 1_000_000.0
)

// Errors returned when using improperly initialized value objects.
var (
	ErrRecipientIsNotConstructed = errors.New("Recipient must be created via NewRecipient constructor")
	ErrAddressIsNotConstructed   = errors.New("Address must be created via NewAddress constructor")
	ErrDetailsIsNotConstructed   = errors.New("Details must be created via NewDetails constructor")
	ErrPartyIsNotConstructed     = errors.New("Party must be created via NewRegisteredParty or NewGuestParty")
)

// ukMobileRe accepts UK mobile numbers: +44 or 0 prefix, 7 plus nine
// digits, with flexible spacing and optional parentheses around the
// leading block.
var ukMobileRe = regexp.MustCompile(`^(\+44\s?7\d{3}|\(?07\d{3}\)?)\s?\d{3}\s?\d{3}$`)

// ukPostcodeRe accepts UK postcodes: outward code of one or two letters,
// one or two digits and an optional letter, then an inward code of one
// digit and two letters, with an optional separating space.
var ukPostcodeRe = regexp.MustCompile(`(?i)^[A-Z]{1,2}\d{1,2}[A-Z]?\s?\d[A-Z]{2}$`)

// validateTextField trims the value and checks its length bounds. Bounds
// count characters, not bytes, so accented names use their visible length.
// Returns the trimmed value on success. Violations are reported one at
// a time so callers surface the first broken rule only.
func validateTextField(name, value string, minLen, maxLen int) (string, error) {
	trimmed := strings.TrimSpace(value)
	length := utf8.RuneCountInString(trimmed)
	if length < minLen || length > maxLen {
		return "", errs.NewValueIsOutOfRangeError(name, trimmed, minLen, maxLen)
	}
	return trimmed, nil
}

// Recipient identifies who receives the package and how to reach them.
// It is an immutable value object validated at construction.
type Recipient struct {
	name  string
	phone string
	guard guard.ConstructorGuard
}

// NewRecipient creates a Recipient from a display name and a UK mobile number.
// The name is trimmed and must be 2 to 100 characters. The phone must match
// the UK mobile pattern; spacing inside the number is allowed.
func NewRecipient(name, phone string) (Recipient, error) {
	trimmedName, err := validateTextField("recipient name", name, NameLenMin, NameLenMax)
	if err != nil {
		return Recipient{}, err
	}

	trimmedPhone := strings.TrimSpace(phone)
	if !ukMobileRe.MatchString(trimmedPhone) {
		return Recipient{}, errs.NewValueIsInvalidErrorWithCause(
			"recipient phone", fmt.Errorf("%q is not a valid UK mobile number", trimmedPhone),
		)
	}

	return Recipient{
		name:  trimmedName,
		phone: trimmedPhone,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the Recipient was created through the constructor.
func (r Recipient) Validate() error {
	return r.guard.Validate(ErrRecipientIsNotConstructed)
}

// Name returns the recipient's display name.
func (r Recipient) Name() string {
	return r.name
}

// Phone returns the recipient's contact number.
func (r Recipient) Phone() string {
	return r.phone
}

// Address is a postal location for pickup or delivery.
// It is an immutable value object validated at construction.
type Address struct {
	street   string
	city     string
	postcode string
	guard    guard.ConstructorGuard
}

// NewAddress creates an Address from free-text street, city, and a UK postcode.
// Street must be 5 to 200 characters and city 2 to 100 after trimming.
func NewAddress(street, city, postcode string) (Address, error) {
	trimmedStreet, err := validateTextField("address", street, AddressLenMin, AddressLenMax)
	if err != nil {
		return Address{}, err
	}

	trimmedCity, err := validateTextField("city", city, CityLenMin, CityLenMax)
	if err != nil {
		return Address{}, err
	}

	trimmedPostcode := strings.TrimSpace(postcode)
	if !ukPostcodeRe.MatchString(trimmedPostcode) {
		return Address{}, errs.NewValueIsInvalidErrorWithCause(
			"postal code", fmt.Errorf("%q is not a valid UK postcode", trimmedPostcode),
		)
	}

	return Address{
		street:   trimmedStreet,
		city:     trimmedCity,
		postcode: trimmedPostcode,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the Address was created through the constructor.
func (a Address) Validate() error {
	return a.guard.Validate(ErrAddressIsNotConstructed)
}

// Street returns the free-text street line.
func (a Address) Street() string {
	return a.street
}

// City returns the city name.
func (a Address) City() string {
	return a.city
}

// Postcode returns the UK postcode.
func (a Address) Postcode() string {
	return a.postcode
}

// FullText returns the address as a single geocodable line.
func (a Address) FullText() string {
	return fmt.Sprintf("%s, %s, %s", a.street, a.city, a.postcode)
}

// Details describes the physical package: what it is, how heavy,
// how valuable, and any handling notes. Weight and declared value
// are optional; nil means the sender did not state them.
type Details struct {
	packageType   string
	weightKg      *float64
	declaredValue *float64
	dimensions    string
	notes         string
	guard         guard.ConstructorGuard
}

// NewDetails creates package Details.
//
// Parameters:
//   - packageType: short description of the contents, trimmed, 2 to 100 characters
//   - weightKg: optional weight, must be in (0, 1000] when present
//   - declaredValue: optional declared value, must be in [0, 1000000] when present
//   - dimensions: optional free-text size description
//   - notes: optional handling notes, at most 1000 characters
func NewDetails(packageType string, weightKg, declaredValue *float64, dimensions, notes string) (Details, error) {
	trimmedType, err := validateTextField("package type", packageType, NameLenMin, NameLenMax)
	if err != nil {
		return Details{}, err
	}

	if weightKg != nil && (*weightKg <= 0 || *weightKg > WeightKgMax) {
		return Details{}, errs.NewValueIsOutOfRangeError("weight", *weightKg, 0, WeightKgMax)
	}

	if declaredValue != nil && (*declaredValue < 0 || *declaredValue > ValueMax) {
		return Details{}, errs.NewValueIsOutOfRangeError("declared value", *declaredValue, 0, ValueMax)
	}

	trimmedNotes := strings.TrimSpace(notes)
	if utf8.RuneCountInString(trimmedNotes) > NotesLenMax {
		return Details{}, errs.NewValueIsOutOfRangeError("notes", trimmedNotes, 0, NotesLenMax)
	}

	return Details{
		packageType:   trimmedType,
		weightKg:      weightKg,
		declaredValue: declaredValue,
		dimensions:    strings.TrimSpace(dimensions),
		notes:         trimmedNotes,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the Details were created through the constructor.
func (d Details) Validate() error {
	return d.guard.Validate(ErrDetailsIsNotConstructed)
}

// PackageType returns the contents description.
func (d Details) PackageType() string {
	return d.packageType
}

// WeightKg returns the stated weight, or nil if not stated.
func (d Details) WeightKg() *float64 {
	return d.weightKg
}

// DeclaredValue returns the declared value, or nil if not stated.
func (d Details) DeclaredValue() *float64 {
	return d.declaredValue
}

// Dimensions returns the free-text size description.
func (d Details) Dimensions() string {
	return d.dimensions
}

// Notes returns the handling notes.
func (d Details) Notes() string {
	return d.notes
}

// Party identifies who booked the package: either a registered user
// (by id) or a guest (by contact email). Exactly one of the two is set.
type Party struct {
	senderID   *kernel.UUID
	guestEmail string
	guard      guard.ConstructorGuard
}

// NewRegisteredParty creates a Party for an authenticated sender.
func NewRegisteredParty(senderID kernel.UUID) (Party, error) {
	if err := senderID.Validate(); err != nil {
		return Party{}, err
	}

	return Party{
		senderID: &senderID,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// NewGuestParty creates a Party for a guest booking identified by email.
// The email must parse as an address and be at most 255 characters.
func NewGuestParty(email string) (Party, error) {
	trimmed := strings.TrimSpace(email)
	if trimmed == "" {
		return Party{}, errs.NewValueIsRequiredError("guest email")
	}
	if len(trimmed) > EmailLenMax {
		return Party{}, errs.NewValueIsOutOfRangeError("guest email", trimmed, 0, EmailLenMax)
	}
	if _, err := mail.ParseAddress(trimmed); err != nil {
		return Party{}, errs.NewValueIsInvalidErrorWithCause("guest email", err)
	}

	return Party{
		guestEmail: trimmed,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the Party was created through a constructor.
func (p Party) Validate() error {
	return p.guard.Validate(ErrPartyIsNotConstructed)
}

// SenderID returns the registered sender's id, or nil for guest bookings.
func (p Party) SenderID() *kernel.UUID {
	return p.senderID
}

// GuestEmail returns the guest contact email, or "" for registered bookings.
func (p Party) GuestEmail() string {
	return p.guestEmail
}

// IsGuest reports whether the booking was made without an authenticated sender.
func (p Party) IsGuest() bool {
	return p.senderID == nil
}

// IsOwnedBy reports whether the given user is the registered sender.
// Guest bookings are owned by nobody.
func (p Party) IsOwnedBy(userID kernel.UUID) bool {
	return p.senderID != nil && p.senderID.IsEqual(userID)
}
