package apiclient

import (
	"context"
	"fmt"
	"net/url"

	"github.com/jrsteele09/go-storefront-client/models"
)

// CreateOrder checks out the current cart. Guests are identified by their cart session id.
func (c *Client) CreateOrder(ctx context.Context, email string, shipping models.Shipping) (*models.Order, error) {
	sessionID, err := c.guestSessionID()
	if err != nil {
		return nil, err
	}
	req := models.CreateOrderRequest{SessionID: sessionID, Email: email, Shipping: shipping}

	var out models.Order
	if err := c.Post(ctx, models.RouteOrders, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetOrder(ctx context.Context, orderID string) (*models.Order, error) {
	var out models.Order
	if err := c.Get(ctx, models.OrderPath(url.PathEscape(orderID)), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetOrders(ctx context.Context, page, limit int) (*models.OrderPage, error) {
	path := fmt.Sprintf("%s?page=%d&limit=%d", models.RouteOrders, page, limit)
	sessionID, err := c.guestSessionID()
	if err != nil {
		return nil, err
	}
	if sessionID != "" {
		path += "&" + url.Values{"session_id": {sessionID}}.Encode()
	}

	var out models.OrderPage
	if err := c.Get(ctx, path, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ProcessPayment pays for an order. A declined card is an *APIError with status 400.
func (c *Client) ProcessPayment(ctx context.Context, orderID string, payment models.PaymentRequest) (*models.PaymentResponse, error) {
	var out models.PaymentResponse
	if err := c.Post(ctx, models.OrderPaymentPath(url.PathEscape(orderID)), payment, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetOrderConfirmation(ctx context.Context, orderID string) (*models.Confirmation, error) {
	var out models.Confirmation
	if err := c.Get(ctx, models.OrderConfirmationPath(url.PathEscape(orderID)), &out); err != nil {
		return nil, err
	}
	return &out, nil
}
