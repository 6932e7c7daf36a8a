package auth

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/intania/shop-backend/internal/apperr"
	"github.com/intania/shop-backend/internal/models"
	"github.com/intania/shop-backend/internal/service/token"
)

const claimsKey = "claims"

// RequireLogin strips the "Bearer " prefix from the Authorization header and
// validates the token. Missing header, bad signature and expiry all produce
// the same 401.
func RequireLogin(tokens *token.Service) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			raw, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || raw == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
			}

			claims, err := tokens.Validate(raw)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
			}

			c.Set(claimsKey, claims)
			return next(c)
		}
	}
}

// AdminOnly must run after RequireLogin.
func AdminOnly() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := ClaimsFrom(c)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
			}
			if claims.Role != models.RoleAdmin {
				return echo.NewHTTPError(http.StatusForbidden, "admin access required")
			}
			return next(c)
		}
	}
}

func ClaimsFrom(c echo.Context) (*token.Claims, bool) {
	claims, ok := c.Get(claimsKey).(*token.Claims)
	return claims, ok
}

// SubjectID returns the authenticated user's numeric id.
func SubjectID(c echo.Context) (int64, error) {
	claims, ok := ClaimsFrom(c)
	if !ok {
		return 0, apperr.Unauthorized()
	}
	id, err := strconv.ParseInt(claims.ID, 10, 64)
	if err != nil {
		return 0, apperr.Unauthorized()
	}
	return id, nil
}
