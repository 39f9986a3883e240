package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/trezcool/elimu/core/guard"
	"github.com/trezcool/elimu/core/identity"
)

// guardMiddleware enforces the route-guard decision for a protected
// group. Denials carry the declarative redirect target so clients can
// navigate without interpreting status codes.
func guardMiddleware(gate *identity.Gate, requiredRole string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			decision := guard.Evaluate(gate.Loading(), getContextSession(ctx), requiredRole)
			switch decision.State {
			case guard.Authorized:
				return next(ctx)
			case guard.Loading:
				return errWarmingUp
			}

			if decision.Redirect == guard.LoginPath {
				return echo.NewHTTPError(http.StatusUnauthorized, echo.Map{
					"error":    "user not authenticated",
					"redirect": decision.Redirect,
				})
			}
			return echo.NewHTTPError(http.StatusForbidden, echo.Map{
				"error":    "permission denied",
				"redirect": decision.Redirect,
			})
		}
	}
}
