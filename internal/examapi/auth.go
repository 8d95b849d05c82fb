package examapi

import (
	"context"
	"net/http"

	"github.com/lexprep/lexprep/internal/logger"
	"github.com/lexprep/lexprep/internal/models"
)

// Login exchanges credentials for a bearer token.
func (c *Client) Login(ctx context.Context, creds models.Credentials) (*models.LoginResult, error) {
	log := logger.FromContext(ctx).WithPrefix("examapi").WithField("email", creds.Email)
	log.Debug("logging in")

	var out models.LoginResult
	if err := c.do(ctx, http.MethodPost, "/auth/login/", Auth{}, creds, &out); err != nil {
		log.Warn("login failed: %v", err)
		return nil, err
	}
	log.Info("login succeeded: user_id=%d", out.User.ID)
	return &out, nil
}

// Logout invalidates the bearer token upstream. The local session row is the
// caller's responsibility.
func (c *Client) Logout(ctx context.Context, auth Auth) error {
	log := logger.FromContext(ctx).WithPrefix("examapi")
	log.Debug("logging out")

	if err := c.do(ctx, http.MethodPost, "/auth/logout/", auth, nil, nil); err != nil {
		log.Warn("logout failed: %v", err)
		return err
	}
	return nil
}
