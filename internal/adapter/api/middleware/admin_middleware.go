package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// AdminMiddleware gates the announcement management endpoints behind a fixed
// allow-list of administrator emails. The check runs server-side against the
// verified token claims, so a tampering client gains nothing.
type AdminMiddleware struct {
	adminEmails map[string]bool
}

func NewAdminMiddleware(adminEmails []string) *AdminMiddleware {
	allowed := make(map[string]bool, len(adminEmails))
	for _, email := range adminEmails {
		allowed[strings.ToLower(strings.TrimSpace(email))] = true
	}
	return &AdminMiddleware{adminEmails: allowed}
}

func (m *AdminMiddleware) AdminOnly(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		email, ok := c.Get("email").(string)
		if !ok || email == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
		}

		if !m.adminEmails[strings.ToLower(email)] {
			return echo.NewHTTPError(http.StatusForbidden, "Admin privileges required")
		}

		return next(c)
	}
}
