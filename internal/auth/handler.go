package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/paginadofounder/backend/internal/telemetry/metrics"
	"github.com/paginadofounder/backend/internal/telemetry/tracing"
	"github.com/paginadofounder/backend/pkg"
)

// TokenHeader is the request header carrying the session token.
const TokenHeader = "token"

type Handler struct {
	service      *Service
	loginChecker Checker
	metrics      *metrics.Manager
}

func NewHandler(
	service *Service,
	loginChecker Checker,
	metrics *metrics.Manager,
) *Handler {
	return &Handler{
		service:      service,
		loginChecker: loginChecker,
		metrics:      metrics,
	}
}

func (handler *Handler) SetupRoutes(router *mux.Router) {
	authRouter := router.PathPrefix("/api/auth").Subrouter()
	authRouter.HandleFunc("/login", handler.handleLogin).Methods("POST", "OPTIONS").Name("login")
	authRouter.HandleFunc("/validate", handler.handleValidate).Methods("GET", "OPTIONS").Name("validate")
	authRouter.HandleFunc("/logout", handler.handleLogout).Methods("POST", "OPTIONS").Name("logout")
}

func (handler *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "authHandler.login")
	defer span.End()

	if r.Method == http.MethodOptions {
		w.Header().Add("Allow", "POST, OPTIONS")
		w.WriteHeader(http.StatusOK)
		return
	}

	type loginRequest struct {
		Password string `json:"password"`
	}

	var loginReq loginRequest
	if r.Header.Get("Content-Type") == pkg.ContentType.JSON {
		if err := json.NewDecoder(r.Body).Decode(&loginReq); err != nil {
			log.Errorf("login, unmarshal json params: %s", err)
			pkg.WriteJSONError(w, "login failed", http.StatusBadRequest)
			return
		}
	} else {
		if err := r.ParseForm(); err != nil {
			log.Errorf("login failed, parse form error: %s", err)
			pkg.WriteJSONError(w, "parse form error", http.StatusInternalServerError)
			return
		}
		loginReq.Password = r.Form.Get("password")
	}

	if loginReq.Password == "" {
		pkg.WriteJSONError(w, "error, password empty", http.StatusBadRequest)
		return
	}

	token, err := handler.service.Login(ctx, loginReq.Password)
	switch {
	case errors.Is(err, ErrWrongPassword), errors.Is(err, ErrNoAdminUser):
		log.Tracef("failed admin login attempt")
		handler.metrics.CounterFailedLogins.Inc()
		pkg.WriteJSONError(w, "Authentication failed", http.StatusUnauthorized)
		return
	case err != nil:
		log.Errorf("login failed: %s", err)
		pkg.WriteJSONError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	log.Trace("new login success")
	handler.metrics.CounterLogins.Inc()
	pkg.WriteJSONResponseOK(w, fmt.Sprintf(`{"success":true,"token":%q}`, token))
}

func (handler *Handler) handleValidate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "authHandler.validate")
	defer span.End()

	if r.Method == http.MethodOptions {
		w.Header().Add("Allow", "GET, OPTIONS")
		w.WriteHeader(http.StatusOK)
		return
	}

	token := r.Header.Get(TokenHeader)
	if token == "" {
		pkg.WriteJSONError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	isLogged, err := handler.loginChecker.IsLogged(ctx, token)
	if err != nil {
		log.Errorf("session validation error: %s", err)
		pkg.WriteJSONError(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	if !isLogged {
		pkg.WriteJSONError(w, "Invalid or expired session", http.StatusUnauthorized)
		return
	}

	pkg.WriteJSONResponseOK(w, `{"valid":true}`)
}

// handleLogout always reports success: the client discards its local token
// copy regardless of the server-side outcome.
func (handler *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "authHandler.logout")
	defer span.End()

	if r.Method == http.MethodOptions {
		w.Header().Add("Allow", "POST, OPTIONS")
		w.WriteHeader(http.StatusOK)
		return
	}

	token := r.Header.Get(TokenHeader)
	if token != "" {
		if err := handler.service.Logout(ctx, token); err != nil {
			log.Errorf("logout: %s", err)
		}
	}

	pkg.WriteJSONResponseOK(w, `{"success":true}`)
}
