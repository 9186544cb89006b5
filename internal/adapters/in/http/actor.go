package http

import (
	"net/http"

	"courier/internal/core/domain/model/actor"
	"courier/internal/core/domain/model/kernel"
	"courier/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Identity headers set by the upstream identity provider. The service never
// verifies credentials itself; it trusts the gateway in front of it.
const (
	HeaderUserID   = "X-User-Id"
	HeaderUserRole = "X-User-Role"
)

// requireActor builds the acting user from the identity headers.
// Missing or malformed headers yield 401.
func requireActor(c echo.Context) (actor.Actor, error) {
	a, ok, err := optionalActor(c)
	if err != nil {
		return actor.Actor{}, err
	}
	if !ok {
		return actor.Actor{}, echo.NewHTTPError(http.StatusUnauthorized, "identity headers missing")
	}
	return a, nil
}

// optionalActor builds the acting user when identity headers are present.
// Absent headers are not an error; booking creation accepts guests.
func optionalActor(c echo.Context) (actor.Actor, bool, error) {
	idHeader := c.Request().Header.Get(HeaderUserID)
	roleHeader := c.Request().Header.Get(HeaderUserRole)

	if idHeader == "" && roleHeader == "" {
		return actor.Actor{}, false, nil
	}

	id, err := kernel.UUIDFromString(idHeader)
	if err != nil {
		return actor.Actor{}, false, echo.NewHTTPError(http.StatusUnauthorized, "invalid user id header")
	}

	role, err := actor.RoleFromString(roleHeader)
	if err != nil {
		return actor.Actor{}, false, echo.NewHTTPError(http.StatusUnauthorized, "invalid user role header")
	}

	a, err := actor.NewActor(id, role)
	if err != nil {
		return actor.Actor{}, false, echo.NewHTTPError(http.StatusUnauthorized, "invalid identity headers")
	}

	return a, true, nil
}

// requireCustomer ensures the caller holds the customer role. Admins pass.
func requireCustomer(c echo.Context) (actor.Actor, error) {
	a, err := requireActor(c)
	if err != nil {
		return actor.Actor{}, err
	}
	if !a.IsCustomer() && !a.IsAdmin() {
		return actor.Actor{}, errs.NewNotAuthorizedError("customer role required")
	}
	return a, nil
}

// requireDriver ensures the caller holds the driver role. Admins pass.
func requireDriver(c echo.Context) (actor.Actor, error) {
	a, err := requireActor(c)
	if err != nil {
		return actor.Actor{}, err
	}
	if !a.IsDriver() && !a.IsAdmin() {
		return actor.Actor{}, errs.NewNotAuthorizedError("driver role required")
	}
	return a, nil
}
