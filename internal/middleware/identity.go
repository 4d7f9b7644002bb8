package middleware

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

// currentUserID renders the authenticated user's identifier as a string
// for use in Redis keys.  JWTAuth stores the raw "sub" claim, whose
// concrete type depends on how the token was decoded, so the usual
// representations are all accepted.  Unauthenticated requests map to
// "anon" so public routes still get per-IP buckets.
func currentUserID(c echo.Context) string {
	switch t := c.Get("user_id").(type) {
	case string:
		if t != "" {
			return t
		}
	case uint64:
		return strconv.FormatUint(t, 10)
	case int64:
		return strconv.FormatInt(t, 10)
	case int:
		return strconv.Itoa(t)
	case float64:
		return strconv.FormatUint(uint64(t), 10)
	}
	return "anon"
}
