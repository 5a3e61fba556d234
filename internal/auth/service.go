package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	log "github.com/sirupsen/logrus"

	"github.com/paginadofounder/backend/internal/db"
	"github.com/paginadofounder/backend/internal/telemetry/tracing"
	"github.com/paginadofounder/backend/pkg"
)

// DefaultTTL is the session lifetime; validation compares against the
// stored expires_at, the window never slides on use.
const DefaultTTL = 24 * time.Hour

// token = hex of 64 random bytes -> 128 chars
const tokenNumBytes = 64

var (
	ErrWrongPassword = errors.New("wrong password")
	ErrNoAdminUser   = errors.New("admin user not found")
)

// Service owns the admin credential check and the session rows in the
// sessions table. There is a single admin identity; multiple concurrent
// sessions for it are allowed.
type Service struct {
	db  db.Pool
	ttl time.Duration

	// injectable for unit and dev testing
	TokenGenFunc func() (string, error)
	NowFunc      func() time.Time
}

func NewService(ttl time.Duration, dbPool db.Pool) *Service {
	return &Service{
		db:  dbPool,
		ttl: ttl,
		TokenGenFunc: func() (string, error) {
			return pkg.GenerateRandomHexString(tokenNumBytes)
		},
		NowFunc: time.Now,
	}
}

// Login verifies the password against the stored digest and, on success,
// inserts a new session row valid for the configured TTL.
func (s *Service) Login(ctx context.Context, password string) (_ string, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "auth.login")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	storedDigest, err := s.adminPasswordHash(ctx)
	if err != nil {
		return "", err
	}

	if !pkg.CheckPasswordHash(password, storedDigest) {
		return "", ErrWrongPassword
	}

	token, err := s.TokenGenFunc()
	if err != nil {
		return "", fmt.Errorf("generate session token: %w", err)
	}

	expiresAt := s.NowFunc().Add(s.ttl)
	_, err = s.db.Exec(
		ctx,
		`INSERT INTO sessions (token, expires_at) VALUES ($1, $2);`,
		token, expiresAt,
	)
	if pkg.IsUniqueViolationError(err) {
		// collision on a 128 char random token, try once more
		log.Warnln("session token collision, regenerating")
		if token, err = s.TokenGenFunc(); err != nil {
			return "", fmt.Errorf("generate session token: %w", err)
		}
		_, err = s.db.Exec(
			ctx,
			`INSERT INTO sessions (token, expires_at) VALUES ($1, $2);`,
			token, expiresAt,
		)
	}
	if err != nil {
		return "", fmt.Errorf("store session: %w", err)
	}

	return token, nil
}

// Logout removes the session row. A token that matches nothing is not an
// error, logout is best-effort from the client's perspective.
func (s *Service) Logout(ctx context.Context, token string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "auth.logout")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	tag, err := s.db.Exec(
		ctx,
		`DELETE FROM sessions WHERE token = $1;`,
		token,
	)
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}

	if tag.RowsAffected() == 0 {
		log.Tracef("logout: no session found for token %s...", safeTokenPrefix(token))
	}
	return nil
}

// ScanAndClean removes expired session rows. Expired sessions are already
// invisible to validation, this just keeps the table from growing forever.
func (s *Service) ScanAndClean(ctx context.Context) {
	tag, err := s.db.Exec(
		ctx,
		`DELETE FROM sessions WHERE expires_at <= $1;`,
		s.NowFunc(),
	)
	if err != nil {
		log.Errorf("!!! auth service, scan and clean: %s", err)
		return
	}

	if removed := tag.RowsAffected(); removed > 0 {
		log.Warnf("=> auth service, scan and clean: %d expired sessions removed", removed)
	}
}

func (s *Service) adminPasswordHash(ctx context.Context) (string, error) {
	var storedDigest string
	err := s.db.QueryRow(
		ctx,
		`SELECT password_hash FROM admin_users WHERE id = 1;`,
	).Scan(&storedDigest)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", ErrNoAdminUser
	}
	if err != nil {
		return "", fmt.Errorf("get admin credential: %w", err)
	}
	return storedDigest, nil
}

func safeTokenPrefix(token string) string {
	if len(token) > 8 {
		return token[:8]
	}
	return token
}
