package apiclient

import (
	"context"
	"net/url"

	"github.com/jrsteele09/go-storefront-client/models"
	"github.com/jrsteele09/go-storefront-client/session"
)

// guestSessionID returns the cart session id for anonymous users, creating it on first use.
// Signed-in users get "" because the backend finds their cart from the token.
func (c *Client) guestSessionID() (string, error) {
	if c.IsAuthenticated() {
		return "", nil
	}
	return session.EnsureSessionID(c.store)
}

// withSessionQuery appends session_id for guests.
func (c *Client) withSessionQuery(path string) (string, error) {
	sessionID, err := c.guestSessionID()
	if err != nil || sessionID == "" {
		return path, err
	}
	return path + "?" + url.Values{"session_id": {sessionID}}.Encode(), nil
}

func (c *Client) GetCart(ctx context.Context) (*models.Cart, error) {
	path, err := c.withSessionQuery(models.RouteCart)
	if err != nil {
		return nil, err
	}

	var out models.Cart
	if err := c.Get(ctx, path, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) AddItemToCart(ctx context.Context, productID string, quantity int, size string) (*models.CartItem, error) {
	sessionID, err := c.guestSessionID()
	if err != nil {
		return nil, err
	}
	req := models.AddCartItemRequest{ProductID: productID, Quantity: quantity, Size: size, SessionID: sessionID}

	var out models.CartItem
	if err := c.Post(ctx, models.RouteCartItems, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateCartItem(ctx context.Context, itemID string, quantity int, size string) (*models.CartItem, error) {
	req := models.UpdateCartItemRequest{Quantity: quantity, Size: size}

	var out models.CartItem
	if err := c.Put(ctx, models.CartItemPath(url.PathEscape(itemID)), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) RemoveItemFromCart(ctx context.Context, itemID string) (*models.MessageResponse, error) {
	var out models.MessageResponse
	if err := c.Delete(ctx, models.CartItemPath(url.PathEscape(itemID)), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ClearCart(ctx context.Context) (*models.MessageResponse, error) {
	path, err := c.withSessionQuery(models.RouteCart)
	if err != nil {
		return nil, err
	}

	var out models.MessageResponse
	if err := c.Delete(ctx, path, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
