package apiclient_test

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jrsteele09/go-storefront-client/models"
	"github.com/jrsteele09/go-storefront-client/session"
)

func okBackend(t *testing.T) *backend {
	t.Helper()
	return newBackend(t, func(w http.ResponseWriter, _ *http.Request) {
		respond(w, http.StatusOK, map[string]any{})
	})
}

func TestGetAllProducts_Query(t *testing.T) {
	b := okBackend(t)
	c := newClient(t, b.URL, nil)
	ctx := context.Background()

	_, err := c.GetAllProducts(ctx, "Mewave", "", 0, 999999, 1, 20)
	require.NoError(t, err)
	_, err = c.GetAllProducts(ctx, "Celeste Store", "t-shirts", 10.5, 99.99, 2, 5)
	require.NoError(t, err)

	reqs := b.Requests()
	require.Equal(t, models.RouteProducts, reqs[0].Path)
	require.Equal(t, "store=Mewave&category=&min_price=0&max_price=999999&page=1&limit=20", reqs[0].RawQuery)
	require.Equal(t, "store=Celeste+Store&category=t-shirts&min_price=10.5&max_price=99.99&page=2&limit=5", reqs[1].RawQuery)
}

func TestProductPaths(t *testing.T) {
	b := okBackend(t)
	c := newClient(t, b.URL, nil)
	ctx := context.Background()

	_, err := c.GetProductByID(ctx, "p-1")
	require.NoError(t, err)
	_, err = c.GetProductsByStore(ctx, "s-1", 1, 20)
	require.NoError(t, err)
	_, err = c.GetProductsByCategory(ctx, "t shirts", 3, 10)
	require.NoError(t, err)

	reqs := b.Requests()
	require.Equal(t, "/api/products/p-1", reqs[0].Path)
	require.Equal(t, "/api/products/store/s-1", reqs[1].Path)
	require.Equal(t, "page=1&limit=20", reqs[1].RawQuery)
	require.Equal(t, "/api/products/category/t shirts", reqs[2].Path)
	require.Equal(t, "page=3&limit=10", reqs[2].RawQuery)
}

func TestImageURL(t *testing.T) {
	c := newClient(t, "http://api.local:8080/", nil)
	require.Equal(t, "http://api.local:8080/api/products/images/a.png", c.ImageURL("/api/products/images/a.png"))
	require.Equal(t, "http://api.local:8080/img/b.png", c.ImageURL("img/b.png"))
	require.Equal(t, "https://cdn.example.com/c.png", c.ImageURL("https://cdn.example.com/c.png"))
	require.Empty(t, c.ImageURL(""))
}

func TestLogin(t *testing.T) {
	b := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case models.RouteLogin:
			if strings.Contains(r.Header.Get("Authorization"), "Bearer") {
				respond(w, http.StatusBadRequest, map[string]string{"error": "login must not carry a token"})
				return
			}
			respond(w, http.StatusOK, map[string]string{"access_token": "AT", "refresh_token": "RT"})
		case models.RouteProfile:
			respond(w, http.StatusOK, map[string]any{"first_name": "Ada", "email": "user@x.com"})
		}
	})
	store := session.NewMemoryStore()
	c := newClient(t, b.URL, store)
	ctx := context.Background()

	out, err := c.Login(ctx, "user@x.com", "pw")
	require.NoError(t, err)
	require.Equal(t, "AT", out.AccessToken)

	profile, err := c.GetUserProfile(ctx)
	require.NoError(t, err)
	require.Equal(t, "Ada", profile.FirstName)
	require.Equal(t, "user@x.com", *profile.Email)

	reqs := b.Requests()
	require.JSONEq(t, `{"email":"user@x.com","password":"pw"}`, reqs[0].Body)
	require.Equal(t, "Bearer AT", reqs[1].Auth)

	isLoggedIn, _, err := store.Get(session.KeyIsLoggedIn)
	require.NoError(t, err)
	require.Equal(t, "true", isLoggedIn)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	b := newBackend(t, func(w http.ResponseWriter, _ *http.Request) {
		respond(w, http.StatusBadRequest, map[string]string{"error": "Invalid credentials"})
	})
	c := newClient(t, b.URL, nil)

	_, err := c.Login(context.Background(), "user@x.com", "wrong")
	require.EqualError(t, err, "Invalid credentials")
	require.False(t, c.IsAuthenticated())
}

func TestRegister(t *testing.T) {
	b := newBackend(t, func(w http.ResponseWriter, _ *http.Request) {
		respond(w, http.StatusCreated, map[string]any{"id": "u-1", "access_token": "AT", "refresh_token": "RT"})
	})
	c := newClient(t, b.URL, nil)

	out, err := c.Register(context.Background(), models.RegisterRequest{
		Email: "a@x.com", Phone: "3001234567", FirstName: "Ada", LastName: "Lovelace", Password: "pw",
	})
	require.NoError(t, err)
	require.Equal(t, "u-1", out.ID)
	require.Equal(t, "AT", c.Tokens().AccessToken())
	require.Equal(t, "RT", c.Tokens().RefreshToken())

	req := b.Requests()[0]
	require.Empty(t, req.Auth)
	require.JSONEq(t, `{"email":"a@x.com","phone":"3001234567","first_name":"Ada","last_name":"Lovelace","password":"pw"}`, req.Body)
}

func TestLogout(t *testing.T) {
	t.Run("backend notified", func(t *testing.T) {
		b := okBackend(t)
		store := session.NewMemoryStore()
		c := newClient(t, b.URL, store)
		require.NoError(t, c.SetTokens("AT", "RT"))

		require.NoError(t, c.Logout(context.Background()))
		require.False(t, c.IsAuthenticated())
		require.Empty(t, store.Snapshot())

		req := b.Requests()[0]
		require.Equal(t, models.RouteLogout, req.Path)
		require.Equal(t, "Bearer AT", req.Auth)
	})

	t.Run("backend failure is not surfaced", func(t *testing.T) {
		b := newBackend(t, func(w http.ResponseWriter, _ *http.Request) {
			respond(w, http.StatusInternalServerError, map[string]string{"error": "boom"})
		})
		c := newClient(t, b.URL, nil)
		require.NoError(t, c.SetTokens("AT", "RT"))

		require.NoError(t, c.Logout(context.Background()))
		require.False(t, c.IsAuthenticated())
	})

	t.Run("unreachable backend", func(t *testing.T) {
		b := okBackend(t)
		url := b.URL
		b.Close()

		c := newClient(t, url, nil)
		require.NoError(t, c.SetTokens("AT", "RT"))
		require.NoError(t, c.Logout(context.Background()))
		require.False(t, c.IsAuthenticated())
	})
}

func TestPasswordReset_Identifier(t *testing.T) {
	b := okBackend(t)
	c := newClient(t, b.URL, nil)
	ctx := context.Background()
	require.NoError(t, c.SetTokens("AT", "RT"))

	_, err := c.RequestPasswordReset(ctx, "user@x.com")
	require.NoError(t, err)
	_, err = c.RequestPasswordReset(ctx, "3001234567")
	require.NoError(t, err)
	_, err = c.VerifyResetCode(ctx, "user@x.com", "123456", "NewPassword1")
	require.NoError(t, err)
	_, err = c.VerifyResetCode(ctx, "3001234567", "654321", "NewPassword1")
	require.NoError(t, err)

	reqs := b.Requests()
	require.JSONEq(t, `{"email":"user@x.com"}`, reqs[0].Body)
	require.JSONEq(t, `{"phone":"3001234567"}`, reqs[1].Body)
	require.JSONEq(t, `{"email":"user@x.com","reset_code":"123456","new_password":"NewPassword1"}`, reqs[2].Body)
	require.JSONEq(t, `{"phone":"3001234567","reset_code":"654321","new_password":"NewPassword1"}`, reqs[3].Body)
	for _, r := range reqs {
		require.Empty(t, r.Auth, "reset endpoints are unauthenticated")
	}
}

func TestProfileEndpoints(t *testing.T) {
	b := okBackend(t)
	c := newClient(t, b.URL, nil)
	ctx := context.Background()
	require.NoError(t, c.SetTokens("AT", "RT"))

	_, err := c.UpdateUserProfile(ctx, "Ada", "Byron", "3001234567")
	require.NoError(t, err)
	_, err = c.ChangePassword(ctx, "old-pw", "new-pw")
	require.NoError(t, err)
	_, err = c.DeleteUserProfile(ctx)
	require.NoError(t, err)

	reqs := b.Requests()
	require.Equal(t, http.MethodPut, reqs[0].Method)
	require.Equal(t, models.RouteProfile, reqs[0].Path)
	require.JSONEq(t, `{"first_name":"Ada","last_name":"Byron","phone":"3001234567"}`, reqs[0].Body)
	require.Equal(t, http.MethodPut, reqs[1].Method)
	require.Equal(t, models.RouteChangePassword, reqs[1].Path)
	require.JSONEq(t, `{"current_password":"old-pw","new_password":"new-pw"}`, reqs[1].Body)
	require.Equal(t, http.MethodDelete, reqs[2].Method)
	require.Equal(t, models.RouteProfile, reqs[2].Path)
	for _, r := range reqs {
		require.Equal(t, "Bearer AT", r.Auth)
	}
}

func TestCart_Guest(t *testing.T) {
	b := okBackend(t)
	store := session.NewMemoryStore()
	c := newClient(t, b.URL, store)
	ctx := context.Background()

	_, err := c.GetCart(ctx)
	require.NoError(t, err)
	sessionID := session.SessionID(store)
	require.True(t, strings.HasPrefix(sessionID, "session_"))

	_, err = c.AddItemToCart(ctx, "p-1", 2, "M")
	require.NoError(t, err)
	_, err = c.UpdateCartItem(ctx, "i-1", 3, "L")
	require.NoError(t, err)
	_, err = c.RemoveItemFromCart(ctx, "i-1")
	require.NoError(t, err)
	_, err = c.ClearCart(ctx)
	require.NoError(t, err)

	reqs := b.Requests()
	require.Equal(t, "session_id="+sessionID, reqs[0].RawQuery)
	require.JSONEq(t, `{"product_id":"p-1","quantity":2,"size":"M","session_id":"`+sessionID+`"}`, reqs[1].Body)
	require.Equal(t, http.MethodPut, reqs[2].Method)
	require.Equal(t, "/api/cart/items/i-1", reqs[2].Path)
	require.JSONEq(t, `{"quantity":3,"size":"L"}`, reqs[2].Body)
	require.Equal(t, http.MethodDelete, reqs[3].Method)
	require.Equal(t, "/api/cart/items/i-1", reqs[3].Path)
	require.Equal(t, http.MethodDelete, reqs[4].Method)
	require.Equal(t, models.RouteCart, reqs[4].Path)
	require.Equal(t, "session_id="+sessionID, reqs[4].RawQuery)
}

func TestCart_Authenticated(t *testing.T) {
	b := okBackend(t)
	store := session.NewMemoryStore()
	c := newClient(t, b.URL, store)
	ctx := context.Background()
	require.NoError(t, c.SetTokens("AT", "RT"))

	_, err := c.GetCart(ctx)
	require.NoError(t, err)
	_, err = c.AddItemToCart(ctx, "p-1", 1, "")
	require.NoError(t, err)

	reqs := b.Requests()
	require.Empty(t, reqs[0].RawQuery)
	require.Equal(t, "Bearer AT", reqs[0].Auth)
	require.JSONEq(t, `{"product_id":"p-1","quantity":1,"size":""}`, reqs[1].Body)
	require.Empty(t, session.SessionID(store), "signed-in users need no cart session")
}

func TestOrders(t *testing.T) {
	b := okBackend(t)
	store := session.NewMemoryStore()
	c := newClient(t, b.URL, store)
	ctx := context.Background()

	shipping := models.Shipping{Name: "Ada", Phone: "300", Email: "ship@x.com", City: "Bogota", Address: "Calle 1", PostalCode: "110111"}
	_, err := c.CreateOrder(ctx, "a@x.com", shipping)
	require.NoError(t, err)
	sessionID := session.SessionID(store)

	_, err = c.GetOrders(ctx, 2, 5)
	require.NoError(t, err)
	_, err = c.GetOrder(ctx, "o-1")
	require.NoError(t, err)
	_, err = c.ProcessPayment(ctx, "o-1", models.PaymentRequest{
		CardNumber: "4111111111111111", CardHolder: "Ada", ExpiryMonth: 12, ExpiryYear: 2030, CVV: "123",
	})
	require.NoError(t, err)
	_, err = c.GetOrderConfirmation(ctx, "o-1")
	require.NoError(t, err)

	reqs := b.Requests()
	require.JSONEq(t, `{
		"session_id": "`+sessionID+`",
		"email": "a@x.com",
		"shipping_name": "Ada",
		"shipping_phone": "300",
		"shipping_email": "ship@x.com",
		"shipping_city": "Bogota",
		"shipping_address": "Calle 1",
		"shipping_address2": "",
		"shipping_postal_code": "110111",
		"shipping_notes": ""
	}`, reqs[0].Body)
	require.Equal(t, "page=2&limit=5&session_id="+sessionID, reqs[1].RawQuery)
	require.Equal(t, "/api/orders/o-1", reqs[2].Path)
	require.Equal(t, "/api/orders/o-1/payment", reqs[3].Path)
	require.JSONEq(t, `{"card_number":"4111111111111111","card_holder":"Ada","expiry_month":12,"expiry_year":2030,"cvv":"123"}`, reqs[3].Body)
	require.Equal(t, "/api/orders/o-1/confirmation", reqs[4].Path)
}
