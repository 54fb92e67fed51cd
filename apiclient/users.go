package apiclient

import (
	"context"

	"github.com/jrsteele09/go-storefront-client/models"
)

func (c *Client) GetUserProfile(ctx context.Context) (*models.Profile, error) {
	var out models.Profile
	if err := c.Get(ctx, models.RouteProfile, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateUserProfile(ctx context.Context, firstName, lastName, phone string) (*models.Profile, error) {
	req := models.UpdateProfileRequest{FirstName: firstName, LastName: lastName, Phone: phone}

	var out models.Profile
	if err := c.Put(ctx, models.RouteProfile, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ChangePassword(ctx context.Context, currentPassword, newPassword string) (*models.MessageResponse, error) {
	req := models.ChangePasswordRequest{CurrentPassword: currentPassword, NewPassword: newPassword}

	var out models.MessageResponse
	if err := c.Put(ctx, models.RouteChangePassword, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteUserProfile deletes the account. Local tokens are kept; call Logout or ClearTokens afterwards.
func (c *Client) DeleteUserProfile(ctx context.Context) (*models.MessageResponse, error) {
	var out models.MessageResponse
	if err := c.Delete(ctx, models.RouteProfile, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
