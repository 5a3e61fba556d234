package auth

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/paginadofounder/backend/internal/telemetry/metrics"
)

// TestMain will run goleak after all tests have been run in the package
// to detect any goroutine leaks
func TestMain(m *testing.M) {
	m.Run()
	goleak.VerifyTestMain(m)
}

func newTestHandler(t *testing.T) (*Handler, pgxmock.PgxPoolIface, *LoginTestChecker, *mux.Router) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	service := NewService(DefaultTTL, mock)
	service.TokenGenFunc = func() (string, error) {
		return "test-token", nil
	}

	checker := NewLoginTestChecker()
	handler := NewHandler(service, checker, metrics.NewTestManager())

	r := mux.NewRouter()
	handler.SetupRoutes(r)
	return handler, mock, checker, r
}

func TestHandler_Routes(t *testing.T) {
	_, _, _, r := newTestHandler(t)

	for caseName, route := range map[string]struct {
		name   string
		path   string
		method string
	}{
		"login":            {name: "login", path: "/api/auth/login", method: "POST"},
		"login-options":    {name: "login", path: "/api/auth/login", method: "OPTIONS"},
		"validate":         {name: "validate", path: "/api/auth/validate", method: "GET"},
		"logout":           {name: "logout", path: "/api/auth/logout", method: "POST"},
	} {
		t.Run(caseName, func(t *testing.T) {
			req, err := http.NewRequest(route.method, route.path, nil)
			require.NoError(t, err)

			routeMatch := &mux.RouteMatch{}
			muxRoute := r.Get(route.name)
			require.NotNil(t, muxRoute)
			assert.True(t, muxRoute.Match(req, routeMatch), caseName)
		})
	}
}

func TestHandler_Login(t *testing.T) {
	_, mock, _, r := newTestHandler(t)

	expectAdminDigest(mock)
	mock.ExpectExec(`INSERT INTO sessions`).
		WithArgs("test-token", pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	req := httptest.NewRequest("POST", "/api/auth/login", strings.NewReader(`{"password":"founder"}`))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()

	r.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"success":true,"token":"test-token"}`, rr.Body.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandler_Login_FormEncoded(t *testing.T) {
	_, mock, _, r := newTestHandler(t)

	expectAdminDigest(mock)
	mock.ExpectExec(`INSERT INTO sessions`).
		WithArgs("test-token", pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	form := url.Values{}
	form.Set("password", "founder")
	req := httptest.NewRequest("POST", "/api/auth/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rr := httptest.NewRecorder()

	r.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestHandler_Login_WrongPassword(t *testing.T) {
	_, mock, _, r := newTestHandler(t)

	expectAdminDigest(mock)

	req := httptest.NewRequest("POST", "/api/auth/login", strings.NewReader(`{"password":"nope"}`))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()

	r.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.JSONEq(t, `{"message":"Authentication failed"}`, rr.Body.String())
}

func TestHandler_Login_EmptyPassword(t *testing.T) {
	_, _, _, r := newTestHandler(t)

	req := httptest.NewRequest("POST", "/api/auth/login", strings.NewReader(`{"password":""}`))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()

	r.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestHandler_Validate(t *testing.T) {
	_, _, checker, r := newTestHandler(t)
	checker.LoggedSessions["valid-token"] = true

	req := httptest.NewRequest("GET", "/api/auth/validate", nil)
	req.Header.Set(TokenHeader, "valid-token")
	rr := httptest.NewRecorder()

	r.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"valid":true}`, rr.Body.String())
}

func TestHandler_Validate_InvalidToken(t *testing.T) {
	_, _, _, r := newTestHandler(t)

	req := httptest.NewRequest("GET", "/api/auth/validate", nil)
	req.Header.Set(TokenHeader, "expired-token")
	rr := httptest.NewRecorder()

	r.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.JSONEq(t, `{"message":"Invalid or expired session"}`, rr.Body.String())
}

func TestHandler_Validate_MissingToken(t *testing.T) {
	_, _, _, r := newTestHandler(t)

	req := httptest.NewRequest("GET", "/api/auth/validate", nil)
	rr := httptest.NewRecorder()

	r.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestHandler_Logout(t *testing.T) {
	_, mock, _, r := newTestHandler(t)

	mock.ExpectExec(`DELETE FROM sessions WHERE token`).
		WithArgs("some-token").
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	req := httptest.NewRequest("POST", "/api/auth/logout", nil)
	req.Header.Set(TokenHeader, "some-token")
	rr := httptest.NewRecorder()

	r.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"success":true}`, rr.Body.String())
}

func TestHandler_Logout_NoToken(t *testing.T) {
	_, _, _, r := newTestHandler(t)

	// logout succeeds from the client's perspective no matter what
	req := httptest.NewRequest("POST", "/api/auth/logout", nil)
	rr := httptest.NewRecorder()

	r.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)
}
