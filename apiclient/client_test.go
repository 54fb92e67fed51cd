package apiclient_test

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/jrsteele09/go-storefront-client/apiclient"
	"github.com/jrsteele09/go-storefront-client/internal/config"
	"github.com/jrsteele09/go-storefront-client/models"
	"github.com/jrsteele09/go-storefront-client/session"
)

func TestNew_BaseURL(t *testing.T) {
	store := session.NewMemoryStore()

	c := newClient(t, "", store)
	require.Equal(t, config.DefaultBaseURL, c.BaseURL())

	require.NoError(t, session.SaveBaseURL(store, "https://persisted.example.com/"))
	c = newClient(t, "", store)
	require.Equal(t, "https://persisted.example.com", c.BaseURL())

	c = newClient(t, "https://explicit.example.com/", store)
	require.Equal(t, "https://explicit.example.com", c.BaseURL())

	_, err := apiclient.New("", nil)
	require.Error(t, err)
}

func TestNew_RestoresSession(t *testing.T) {
	store := session.NewMemoryStore()
	require.NoError(t, store.Set(session.KeyAccessToken, "A0"))
	require.NoError(t, store.Set(session.KeyRefreshToken, "R0"))

	c := newClient(t, "", store)
	require.True(t, c.IsAuthenticated())
	require.Equal(t, "R0", c.Tokens().RefreshToken())
}

func TestTokens_RoundTrip(t *testing.T) {
	store := session.NewMemoryStore()
	c := newClient(t, "", store)

	require.NoError(t, c.SetTokens("A1", "R1"))
	require.True(t, c.IsAuthenticated())
	require.Equal(t, map[string]string{
		session.KeyAccessToken:  "A1",
		session.KeyRefreshToken: "R1",
		session.KeyIsLoggedIn:   "true",
	}, store.Snapshot())

	require.Nil(t, c.CurrentUser(), "A1 is not a JWT")

	require.NoError(t, c.ClearTokens())
	require.False(t, c.IsAuthenticated())
	require.Empty(t, store.Snapshot())
}

func TestRequest_Headers(t *testing.T) {
	b := newBackend(t, func(w http.ResponseWriter, _ *http.Request) {
		respond(w, http.StatusOK, map[string]string{})
	})
	c := newClient(t, b.URL, nil)
	ctx := context.Background()

	require.NoError(t, c.Get(ctx, "/anon", nil))
	require.NoError(t, c.SetTokens("AT", "RT"))
	require.NoError(t, c.Get(ctx, "/authed", nil))
	require.NoError(t, c.Get(ctx, "/no-auth", nil, apiclient.WithoutAuth()))
	require.NoError(t, c.Get(ctx, "/override", nil,
		apiclient.WithHeader("Authorization", "Bearer custom"),
		apiclient.WithHeader("Content-Type", "text/plain")))

	reqs := b.Requests()
	require.Len(t, reqs, 4)

	require.Empty(t, reqs[0].Auth, "no token held")
	require.Equal(t, "application/json", reqs[0].ContentType)
	require.Equal(t, "Bearer AT", reqs[1].Auth)
	require.Empty(t, reqs[2].Auth, "WithoutAuth ignores the held token")
	require.Equal(t, "Bearer custom", reqs[3].Auth)
	require.Equal(t, "text/plain", reqs[3].ContentType)
}

func TestRequest_VerbsAndBodies(t *testing.T) {
	b := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		respond(w, http.StatusOK, map[string]string{"method": r.Method})
	})
	c := newClient(t, b.URL, nil)
	ctx := context.Background()

	var out struct {
		Method string `json:"method"`
	}
	require.NoError(t, c.Post(ctx, "/p", map[string]int{"a": 1}, &out))
	require.Equal(t, http.MethodPost, out.Method)
	require.NoError(t, c.Put(ctx, "/p", map[string]int{"b": 2}, &out))
	require.Equal(t, http.MethodPut, out.Method)
	require.NoError(t, c.Delete(ctx, "/p", &out))
	require.Equal(t, http.MethodDelete, out.Method)

	reqs := b.Requests()
	require.JSONEq(t, `{"a":1}`, reqs[0].Body)
	require.JSONEq(t, `{"b":2}`, reqs[1].Body)
	require.Empty(t, reqs[2].Body)

	resp, err := c.Request(ctx, "/raw", apiclient.WithMethod(http.MethodPost))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, resp.Body.Close())
}

func TestRequest_ErrorMessages(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantMsg string
	}{
		{"error field", http.StatusBadRequest, `{"error":"Invalid credentials"}`, "Invalid credentials"},
		{"message field", http.StatusConflict, `{"message":"already exists"}`, "already exists"},
		{"error wins over message", http.StatusBadRequest, `{"error":"first","message":"second"}`, "first"},
		{"empty error falls through", http.StatusBadRequest, `{"error":"","message":"second"}`, "second"},
		{"empty body", http.StatusInternalServerError, ``, "HTTP 500"},
		{"not json", http.StatusBadGateway, `<html>bad gateway</html>`, "HTTP 502"},
		{"non-string error", http.StatusBadRequest, `{"error":{"code":7}}`, "HTTP 400"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b := newBackend(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			})
			c := newClient(t, b.URL, nil)

			err := c.Get(context.Background(), "/fail", nil)
			require.EqualError(t, err, tc.wantMsg)

			var apiErr *apiclient.APIError
			require.ErrorAs(t, err, &apiErr)
			require.Equal(t, tc.status, apiErr.StatusCode)
			require.Equal(t, tc.body, string(apiErr.Body))
			require.Equal(t, tc.status, apiclient.StatusCode(err))
		})
	}
}

func TestRequest_TransportError(t *testing.T) {
	b := newBackend(t, func(http.ResponseWriter, *http.Request) {})
	url := b.URL
	b.Close()

	c := newClient(t, url, nil)
	err := c.Get(context.Background(), "/x", nil)
	require.Error(t, err)
	require.Zero(t, apiclient.StatusCode(err), "transport failures are not APIErrors")
}

// refreshingBackend rejects any token but "new" on /protected and hands out "new" on refresh.
func refreshingBackend(t *testing.T, refreshStatus int, refreshBody any) *backend {
	t.Helper()
	return newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case models.RouteRefreshToken:
			respond(w, refreshStatus, refreshBody)
		default:
			if r.Header.Get("Authorization") != "Bearer new" {
				respond(w, http.StatusUnauthorized, map[string]string{"error": "invalid or expired token"})
				return
			}
			respond(w, http.StatusOK, map[string]string{"ok": "yes"})
		}
	})
}

func TestRequest_RefreshAndRetry(t *testing.T) {
	b := refreshingBackend(t, http.StatusOK, map[string]any{"access_token": "new", "expires_in": 86400})
	store := session.NewMemoryStore()
	c := newClient(t, b.URL, store)
	require.NoError(t, c.SetTokens("old", "R1"))

	require.NoError(t, c.Post(context.Background(), "/protected", map[string]string{"k": "v"}, nil))

	reqs := b.Requests()
	want := []recordedRequest{
		{Method: http.MethodPost, Path: "/protected", Auth: "Bearer old", ContentType: "application/json", Body: `{"k":"v"}`},
		{Method: http.MethodPost, Path: models.RouteRefreshToken, ContentType: "application/json", Body: `{"refresh_token":"R1"}`},
		{Method: http.MethodPost, Path: "/protected", Auth: "Bearer new", ContentType: "application/json", Body: `{"k":"v"}`},
	}
	if diff := cmp.Diff(want, reqs); diff != "" {
		t.Fatalf("requests mismatch (-want +got):\n%s", diff)
	}

	require.Equal(t, "new", c.Tokens().AccessToken())
	require.Equal(t, "R1", c.Tokens().RefreshToken())
	value, _, err := store.Get(session.KeyAccessToken)
	require.NoError(t, err)
	require.Equal(t, "new", value)
}

func TestRequest_RefreshRotatesRefreshToken(t *testing.T) {
	b := refreshingBackend(t, http.StatusOK, map[string]any{"access_token": "new", "refresh_token": "R2"})
	c := newClient(t, b.URL, nil)
	require.NoError(t, c.SetTokens("old", "R1"))

	require.NoError(t, c.Get(context.Background(), "/protected", nil))
	require.Equal(t, "R2", c.Tokens().RefreshToken())
}

func TestRequest_RetryIsNotRetried(t *testing.T) {
	b := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == models.RouteRefreshToken {
			respond(w, http.StatusOK, map[string]string{"access_token": "still-bad"})
			return
		}
		respond(w, http.StatusUnauthorized, map[string]string{"error": "nope"})
	})
	c := newClient(t, b.URL, nil)
	require.NoError(t, c.SetTokens("old", "R1"))

	err := c.Get(context.Background(), "/protected", nil)
	require.EqualError(t, err, "nope")
	require.True(t, apiclient.IsUnauthorized(err))

	require.Equal(t, 1, b.Count(models.RouteRefreshToken))
	require.Equal(t, 2, b.Count("/protected"))
	require.True(t, c.IsAuthenticated(), "a successful refresh keeps the session")
}

func TestRequest_RefreshFailureLogsOut(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   any
	}{
		{"refresh rejected", http.StatusUnauthorized, map[string]string{"error": "invalid refresh token"}},
		{"no access token in response", http.StatusOK, map[string]string{}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b := refreshingBackend(t, tc.status, tc.body)
			store := session.NewMemoryStore()
			c := newClient(t, b.URL, store)
			require.NoError(t, c.SetTokens("old", "R1"))

			err := c.Get(context.Background(), "/protected", nil)
			require.EqualError(t, err, "invalid or expired token", "the first 401 is surfaced")
			require.True(t, apiclient.IsUnauthorized(err))

			require.False(t, c.IsAuthenticated())
			require.Empty(t, store.Snapshot())
			require.Equal(t, 1, b.Count(models.RouteRefreshToken))
			require.Equal(t, 1, b.Count("/protected"))
		})
	}
}

func TestRequest_NoRefreshTokenNoRefresh(t *testing.T) {
	b := refreshingBackend(t, http.StatusOK, map[string]string{"access_token": "new"})
	c := newClient(t, b.URL, nil)

	err := c.Get(context.Background(), "/protected", nil)
	require.True(t, apiclient.IsUnauthorized(err))
	require.Zero(t, b.Count(models.RouteRefreshToken))
}

func TestRefreshAccessToken(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		b := refreshingBackend(t, http.StatusOK, map[string]string{"access_token": "new"})
		c := newClient(t, b.URL, nil)
		require.NoError(t, c.SetTokens("old", "R1"))

		require.True(t, c.RefreshAccessToken(context.Background()))
		require.Equal(t, "new", c.Tokens().AccessToken())
		require.Empty(t, b.Requests()[0].Auth, "refresh never sends the access token")
	})

	t.Run("no refresh token", func(t *testing.T) {
		b := refreshingBackend(t, http.StatusOK, map[string]string{"access_token": "new"})
		c := newClient(t, b.URL, nil)
		require.NoError(t, c.SetTokens("old", ""))

		require.False(t, c.RefreshAccessToken(context.Background()))
		require.False(t, c.IsAuthenticated())
		require.Zero(t, b.Count(models.RouteRefreshToken))
	})
}

// Concurrent 401s are coalesced into a single refresh call.
func TestRequest_ConcurrentRefreshIsCoalesced(t *testing.T) {
	var refreshes atomic.Int32
	b := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == models.RouteRefreshToken {
			refreshes.Add(1)
			time.Sleep(50 * time.Millisecond)
			respond(w, http.StatusOK, map[string]string{"access_token": "new"})
			return
		}
		if r.Header.Get("Authorization") != "Bearer new" {
			respond(w, http.StatusUnauthorized, map[string]string{"error": "expired"})
			return
		}
		respond(w, http.StatusOK, map[string]string{})
	})
	c := newClient(t, b.URL, nil)
	require.NoError(t, c.SetTokens("old", "R1"))

	const callers = 8
	var wg sync.WaitGroup
	errs := make(chan error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- c.Get(context.Background(), "/protected", nil)
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}
	require.EqualValues(t, 1, refreshes.Load())
}

// A caller that gives up during a shared refresh must not log out the session.
func TestRequest_AbandonedRefreshKeepsSession(t *testing.T) {
	newBlockingBackend := func(t *testing.T) (*backend, chan struct{}, func(), *atomic.Int32) {
		t.Helper()
		started := make(chan struct{}, 1)
		release := make(chan struct{})
		refreshes := &atomic.Int32{}
		b := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == models.RouteRefreshToken {
				refreshes.Add(1)
				started <- struct{}{}
				<-release
				respond(w, http.StatusOK, map[string]string{"access_token": "new"})
				return
			}
			if r.Header.Get("Authorization") != "Bearer new" {
				respond(w, http.StatusUnauthorized, map[string]string{"error": "expired"})
				return
			}
			respond(w, http.StatusOK, map[string]string{})
		})
		// Registered after the backend, so it runs before the server closes.
		var once sync.Once
		releaseRefresh := func() { once.Do(func() { close(release) }) }
		t.Cleanup(releaseRefresh)
		return b, started, releaseRefresh, refreshes
	}

	t.Run("cancelled first caller, live second caller", func(t *testing.T) {
		b, started, release, refreshes := newBlockingBackend(t)
		c := newClient(t, b.URL, nil)
		require.NoError(t, c.SetTokens("old", "R1"))

		ctxA, cancelA := context.WithCancel(context.Background())
		errA := make(chan error, 1)
		go func() { errA <- c.Get(ctxA, "/protected", nil) }()
		<-started

		errB := make(chan error, 1)
		go func() { errB <- c.Get(context.Background(), "/protected", nil) }()
		require.Eventually(t, func() bool { return b.Count("/protected") == 2 }, time.Second, 5*time.Millisecond)

		cancelA()
		require.ErrorIs(t, <-errA, context.Canceled)
		require.True(t, c.IsAuthenticated(), "cancelling one caller keeps the session")
		require.Equal(t, "R1", c.Tokens().RefreshToken())

		release()
		require.NoError(t, <-errB)
		require.Equal(t, "new", c.Tokens().AccessToken())
		require.EqualValues(t, 1, refreshes.Load())
	})

	t.Run("deadline expires mid refresh", func(t *testing.T) {
		b, _, release, _ := newBlockingBackend(t)
		store := session.NewMemoryStore()
		c := newClient(t, b.URL, store)
		require.NoError(t, c.SetTokens("old", "R1"))

		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()
		err := c.Get(ctx, "/protected", nil)
		require.ErrorIs(t, err, context.DeadlineExceeded)
		require.False(t, apiclient.IsUnauthorized(err))

		require.True(t, c.IsAuthenticated())
		refreshToken, found, err := store.Get(session.KeyRefreshToken)
		require.NoError(t, err)
		require.True(t, found)
		require.Equal(t, "R1", refreshToken)

		// The abandoned exchange still completes and its token is kept.
		release()
		require.Eventually(t, func() bool { return c.Tokens().AccessToken() == "new" }, time.Second, 5*time.Millisecond)
	})
}

func TestRequest_ContextCancelled(t *testing.T) {
	b := newBackend(t, func(w http.ResponseWriter, _ *http.Request) {
		respond(w, http.StatusOK, map[string]string{})
	})
	c := newClient(t, b.URL, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.ErrorIs(t, c.Get(ctx, "/x", nil), context.Canceled)
}

func TestWithTimeout(t *testing.T) {
	release := make(chan struct{})
	b := newBackend(t, func(w http.ResponseWriter, _ *http.Request) {
		<-release
		respond(w, http.StatusOK, map[string]string{})
	})
	t.Cleanup(func() { close(release) })

	httpClient := &http.Client{}
	c, err := apiclient.New(b.URL, session.NewMemoryStore(),
		apiclient.WithHTTPClient(httpClient),
		apiclient.WithTimeout(20*time.Millisecond),
		apiclient.WithLogger(zerolog.Nop()))
	require.NoError(t, err)

	require.Error(t, c.Get(context.Background(), "/slow", nil))
	require.Zero(t, httpClient.Timeout, "the caller's client is not modified")
}

func TestStatusCode(t *testing.T) {
	notFound := fmt.Errorf("load order: %w", &apiclient.APIError{StatusCode: http.StatusNotFound})
	require.Equal(t, http.StatusNotFound, apiclient.StatusCode(notFound))
	require.True(t, apiclient.IsNotFound(notFound))
	require.False(t, apiclient.IsUnauthorized(notFound))
	require.Zero(t, apiclient.StatusCode(context.Canceled))
	require.Zero(t, apiclient.StatusCode(nil))
}
