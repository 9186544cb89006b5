package queries_test

import (
	"testing"

	"courier/internal/core/application/usecases/queries"
	"courier/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMyProfileQuery(t *testing.T) {
	userID := kernel.NewUUID()

	query, err := queries.NewMyProfileQuery(userID)

	require.NoError(t, err)
	assert.True(t, query.UserID().IsEqual(userID))
	assert.NoError(t, query.Validate())
}

func TestNewMyProfileQuery_InvalidUserID(t *testing.T) {
	_, err := queries.NewMyProfileQuery(kernel.UUID{})

	require.Error(t, err)
}

func TestMyProfileQuery_ZeroValueFailsValidation(t *testing.T) {
	var query queries.MyProfileQuery

	require.ErrorIs(t, query.Validate(), queries.ErrMyProfileQueryIsNotConstructed)
}
