package auth

import (
	"context"
	"time"

	"github.com/paginadofounder/backend/internal/db"
)

// LoginChecker validates session tokens against the sessions table. It
// never mutates state: expired rows are simply filtered out.
type LoginChecker struct {
	db db.Pool

	// injectable for expiry tests
	NowFunc func() time.Time
}

func NewLoginChecker(dbPool db.Pool) *LoginChecker {
	return &LoginChecker{
		db:      dbPool,
		NowFunc: time.Now,
	}
}

func (lc *LoginChecker) IsLogged(ctx context.Context, token string) (bool, error) {
	var isLogged bool
	err := lc.db.QueryRow(
		ctx,
		`SELECT EXISTS (SELECT 1 FROM sessions WHERE token = $1 AND expires_at > $2);`,
		token, lc.NowFunc(),
	).Scan(&isLogged)
	if err != nil {
		return false, err
	}
	return isLogged, nil
}
