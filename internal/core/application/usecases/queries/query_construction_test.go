package queries_test

import (
	"testing"

	"courier/internal/core/application/usecases/queries"
	"courier/internal/core/domain/model/actor"
	"courier/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAvailableJobsQuery_Valid(t *testing.T) {
	query := queries.NewAvailableJobsQuery()
	require.NoError(t, query.Validate())
}

func TestAvailableJobsQuery_NotConstructedViaConstructor(t *testing.T) {
	query := queries.AvailableJobsQuery{}

	err := query.Validate()

	require.Error(t, err)
	assert.ErrorIs(t, err, queries.ErrAvailableJobsQueryIsNotConstructed)
}

func TestNewMyJobsQuery_Valid(t *testing.T) {
	driverID := kernel.NewUUID()

	query, err := queries.NewMyJobsQuery(driverID)

	require.NoError(t, err)
	require.NoError(t, query.Validate())
	assert.True(t, query.DriverID().IsEqual(driverID))
}

func TestNewMyJobsQuery_InvalidDriver(t *testing.T) {
	_, err := queries.NewMyJobsQuery(kernel.UUID{})
	require.Error(t, err)
}

func TestNewMyBookingsQuery_Valid(t *testing.T) {
	senderID := kernel.NewUUID()

	query, err := queries.NewMyBookingsQuery(senderID)

	require.NoError(t, err)
	require.NoError(t, query.Validate())
	assert.True(t, query.SenderID().IsEqual(senderID))
}

func TestNewMyBookingsQuery_InvalidSender(t *testing.T) {
	_, err := queries.NewMyBookingsQuery(kernel.UUID{})
	require.Error(t, err)
}

func TestNewMessagesQuery_Valid(t *testing.T) {
	requester, err := actor.NewActor(kernel.NewUUID(), actor.Customer)
	require.NoError(t, err)

	query, err := queries.NewMessagesQuery(requester, kernel.NewUUID())

	require.NoError(t, err)
	require.NoError(t, query.Validate())
}

func TestNewMessagesQuery_InvalidRequester(t *testing.T) {
	_, err := queries.NewMessagesQuery(actor.Actor{}, kernel.NewUUID())
	require.Error(t, err)
}

func TestNewRoutePlanQuery_Valid(t *testing.T) {
	origin, err := kernel.NewGeoPoint(51.5074, -0.1278)
	require.NoError(t, err)

	query, err := queries.NewRoutePlanQuery(kernel.NewUUID(), &origin)

	require.NoError(t, err)
	require.NoError(t, query.Validate())
	require.NotNil(t, query.Origin())
}

func TestNewRoutePlanQuery_NoOrigin(t *testing.T) {
	query, err := queries.NewRoutePlanQuery(kernel.NewUUID(), nil)

	require.NoError(t, err)
	assert.Nil(t, query.Origin())
}

func TestNewRoutePlanQuery_InvalidOrigin(t *testing.T) {
	origin := kernel.GeoPoint{}

	_, err := queries.NewRoutePlanQuery(kernel.NewUUID(), &origin)

	require.Error(t, err)
}
