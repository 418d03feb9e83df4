package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/campuskit/linkboard/core"
)

var (
	errUnauthorized = echo.NewHTTPError(http.StatusUnauthorized, "Invalid or expired token")
	errForbidden    = echo.NewHTTPError(http.StatusForbidden, "Permission denied")
)

// capabilityMiddleware restricts a route to actors whose roles grant the
// given capability. It also stashes the actor in the request context for
// handlers downstream.
func capabilityMiddleware(cap core.Capability) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			claims, err := getContextClaims(ctx)
			if err != nil {
				return err
			}
			actor := claims.Actor()
			if !actor.HasCapability(cap) {
				return errForbidden
			}
			ctx.Set(contextActorKey, actor)
			return next(ctx)
		}
	}
}
