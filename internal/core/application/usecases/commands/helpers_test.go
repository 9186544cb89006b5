package commands_test

import (
	"testing"
	"time"

	"courier/internal/core/application/usecases/commands"
	"courier/internal/core/domain/model/actor"
	"courier/internal/core/domain/model/kernel"
	"courier/internal/core/domain/model/parcel"

	"github.com/stretchr/testify/require"
)

func driverActor(t *testing.T) actor.Actor {
	t.Helper()
	a, err := actor.NewActor(kernel.NewUUID(), actor.Driver)
	require.NoError(t, err)
	return a
}

func customerActor(t *testing.T, id kernel.UUID) actor.Actor {
	t.Helper()
	a, err := actor.NewActor(id, actor.Customer)
	require.NoError(t, err)
	return a
}

func validBookingParams(senderID *kernel.UUID) commands.CreateBookingParams {
	return commands.CreateBookingParams{
		SenderID:         senderID,
		RecipientName:    "Ada Lovelace",
		RecipientPhone:   "07123456789",
		PickupStreet:     "1 Baker Street",
		PickupCity:       "London",
		PickupPostcode:   "NW1 6XE",
		DeliveryStreet:   "10 Downing Street",
		DeliveryCity:     "London",
		DeliveryPostcode: "SW1A 2AA",
		PackageType:      "Books",
		ServiceType:      "same_day",
	}
}

func pendingBooking(t *testing.T, senderID kernel.UUID) *parcel.Package {
	t.Helper()

	party, err := parcel.NewRegisteredParty(senderID)
	require.NoError(t, err)
	recipient, err := parcel.NewRecipient("Ada Lovelace", "07123456789")
	require.NoError(t, err)
	pickup, err := parcel.NewAddress("1 Baker Street", "London", "NW1 6XE")
	require.NoError(t, err)
	delivery, err := parcel.NewAddress("10 Downing Street", "London", "SW1A 2AA")
	require.NoError(t, err)
	details, err := parcel.NewDetails("Books", nil, nil, "", "")
	require.NoError(t, err)

	pkg, err := parcel.NewPackage(party, recipient, pickup, delivery, details, parcel.SameDay, time.Now())
	require.NoError(t, err)
	return pkg
}
