package apiclient

import (
	"context"
	"strings"

	"github.com/jrsteele09/go-storefront-client/models"
)

// Register creates an account and signs it in when the backend returns tokens.
func (c *Client) Register(ctx context.Context, req models.RegisterRequest) (*models.RegisterResponse, error) {
	var out models.RegisterResponse
	if err := c.Post(ctx, models.RouteRegister, req, &out, WithoutAuth()); err != nil {
		return nil, err
	}
	if out.AccessToken != "" {
		if err := c.tokens.SetTokens(out.AccessToken, out.RefreshToken); err != nil {
			return nil, err
		}
	}
	return &out, nil
}

// Login accepts an email address or a phone number as emailOrPhone.
func (c *Client) Login(ctx context.Context, emailOrPhone, password string) (*models.LoginResponse, error) {
	var out models.LoginResponse
	req := models.LoginRequest{Email: emailOrPhone, Password: password}
	if err := c.Post(ctx, models.RouteLogin, req, &out, WithoutAuth()); err != nil {
		return nil, err
	}
	if out.AccessToken != "" {
		if err := c.tokens.SetTokens(out.AccessToken, out.RefreshToken); err != nil {
			return nil, err
		}
	}
	return &out, nil
}

// Logout tells the backend, then clears local tokens whether or not the call worked.
// Only a failure to clear the local store is returned.
func (c *Client) Logout(ctx context.Context) error {
	if err := c.Post(ctx, models.RouteLogout, struct{}{}, nil); err != nil {
		c.logger.Warn().Err(err).Msg("logout notification failed")
	}
	return c.tokens.Clear()
}

// RequestPasswordReset sends a reset code. identifier is an email when it contains "@", else a phone number.
func (c *Client) RequestPasswordReset(ctx context.Context, identifier string) (*models.MessageResponse, error) {
	var req models.PasswordResetRequest
	if isEmail(identifier) {
		req.Email = identifier
	} else {
		req.Phone = identifier
	}

	var out models.MessageResponse
	if err := c.Post(ctx, models.RouteRequestPasswordReset, req, &out, WithoutAuth()); err != nil {
		return nil, err
	}
	return &out, nil
}

// VerifyResetCode sets newPassword if resetCode is valid for identifier.
func (c *Client) VerifyResetCode(ctx context.Context, identifier, resetCode, newPassword string) (*models.MessageResponse, error) {
	req := models.VerifyResetCodeRequest{ResetCode: resetCode, NewPassword: newPassword}
	if isEmail(identifier) {
		req.Email = identifier
	} else {
		req.Phone = identifier
	}

	var out models.MessageResponse
	if err := c.Post(ctx, models.RouteVerifyResetCode, req, &out, WithoutAuth()); err != nil {
		return nil, err
	}
	return &out, nil
}

func isEmail(identifier string) bool {
	return strings.Contains(identifier, "@")
}
