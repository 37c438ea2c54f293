package middleware

import "github.com/labstack/echo/v4"

// AdminID returns the authenticated admin's id stored by JWTAuth.
func AdminID(c echo.Context) (uint64, bool) {
	id, ok := c.Get(ctxAdminID).(uint64)
	return id, ok && id != 0
}

// currentUserID is the string form used in cache and rate limit keys.
// Unauthenticated requests share the "anon" bucket.
func currentUserID(c echo.Context) string {
	if s, ok := c.Get(ctxUserID).(string); ok && s != "" {
		return s
	}
	return "anon"
}
