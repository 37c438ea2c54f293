package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/timelazy/timelazy-server/internal/utils"
)

const testSecret = "test-secret"

func bearer(t *testing.T, adminID uint64, role string) string {
	t.Helper()
	tok, err := utils.NewAccessToken(testSecret, adminID, role, time.Hour)
	require.NoError(t, err)
	return "Bearer " + tok.Token
}

func newProtected() *echo.Echo {
	e := echo.New()
	e.GET("/whoami", func(c echo.Context) error {
		id, ok := AdminID(c)
		if !ok {
			return c.NoContent(http.StatusInternalServerError)
		}
		return c.JSON(http.StatusOK, echo.Map{"admin_id": id, "user": currentUserID(c)})
	}, JWTAuth(testSecret), RequireRole(utils.RoleAdmin))
	return e
}

func TestJWTAuthAndRole(t *testing.T) {
	e := newProtected()

	cases := []struct {
		name   string
		auth   string
		status int
	}{
		{"admin", bearer(t, 7, utils.RoleAdmin), http.StatusOK},
		{"missing header", "", http.StatusUnauthorized},
		{"not bearer", "Basic abc", http.StatusUnauthorized},
		{"bad token", "Bearer nope", http.StatusUnauthorized},
		{"wrong role", bearer(t, 7, "VIEWER"), http.StatusForbidden},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
			if tc.auth != "" {
				req.Header.Set(echo.HeaderAuthorization, tc.auth)
			}
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)
			require.Equal(t, tc.status, rec.Code, rec.Body.String())
			if tc.status == http.StatusOK {
				require.JSONEq(t, `{"admin_id":7,"user":"7"}`, rec.Body.String())
			}
		})
	}
}

func TestAdminIDMissing(t *testing.T) {
	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	_, ok := AdminID(c)
	require.False(t, ok)
	require.Equal(t, "anon", currentUserID(c))
}
