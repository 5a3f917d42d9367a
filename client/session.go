package client

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"tcm-webshop/models"
)

// ErrNotAuthenticated means the session boundary reported no current user;
// the caller must navigate away from the shop.
var ErrNotAuthenticated = errors.New("client: not authenticated")

// SessionGate gates shop access on an authenticated session and wires login
// and logout.
type SessionGate struct {
	api    *API
	logger *zap.Logger
}

// NewSessionGate creates a SessionGate.
func NewSessionGate(api *API, logger *zap.Logger) *SessionGate {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionGate{api: api, logger: logger}
}

// Login authenticates and lets the jar capture the session cookie.
func (g *SessionGate) Login(ctx context.Context, email, password string) error {
	body := map[string]string{"email": email, "password": password}
	if err := g.api.Do(ctx, "POST", "/api/login", body, nil); err != nil {
		return err
	}
	g.logger.Info("logged in", zap.String("email", email))
	return nil
}

// Enter queries the session boundary for the current user. A null user is
// ErrNotAuthenticated.
func (g *SessionGate) Enter(ctx context.Context) (*models.User, error) {
	var resp struct {
		User *models.User `json:"user"`
	}
	if err := g.api.Do(ctx, "GET", "/api/me", nil, &resp); err != nil {
		return nil, err
	}
	if resp.User == nil {
		return nil, ErrNotAuthenticated
	}
	return resp.User, nil
}

// Logout terminates the session best-effort: a failed call is logged and
// swallowed, the caller navigates away regardless of the outcome.
func (g *SessionGate) Logout(ctx context.Context) {
	if err := g.api.Do(ctx, "POST", "/api/logout", nil, nil); err != nil {
		g.logger.Warn("logout failed", zap.Error(err))
	}
}
