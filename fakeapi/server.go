// Package fakeapi is an in-memory storefront backend. It serves the same REST surface and
// response shapes as the real service and is used by tests and for local runs.
package fakeapi

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/jrsteele09/go-storefront-client/internal/config"
)

// NowTimeFunc returns the current time. It can be overridden in tests.
var NowTimeFunc = time.Now

type Server struct {
	env        string
	router     chi.Router
	logger     zerolog.Logger
	signer     *signer
	bcryptCost int

	accessTTL     time.Duration
	refreshLength int

	mu            sync.Mutex
	users         *userRepo
	refreshTokens map[string]string // token -> user id
	accessTokens  map[string]bool   // jti of every live access token
	resets        map[string]passwordReset
	catalog       *catalog
	carts         map[string]*cart // owner key -> cart
	orders        map[string]*order
	hits          map[string]int // "METHOD pattern" -> count
}

type Option func(*Server)

func WithLogger(logger zerolog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithEnv enables the route table log in "DEV".
func WithEnv(env string) Option {
	return func(s *Server) {
		s.env = env
	}
}

// WithBcryptCost lowers the hashing cost; tests use bcrypt.MinCost.
func WithBcryptCost(cost int) Option {
	return func(s *Server) {
		s.bcryptCost = cost
	}
}

func New(cfg config.FakeAPIConfig, options ...Option) (*Server, error) {
	if cfg.GetJWTSecret() == "" {
		return nil, fmt.Errorf("[fakeapi New] jwt secret is required")
	}

	s := &Server{
		router:        chi.NewRouter(),
		logger:        log.Logger,
		signer:        newSigner(cfg.GetJWTSecret()),
		bcryptCost:    bcrypt.DefaultCost,
		accessTTL:     cfg.GetAccessTokenTTL(),
		refreshLength: cfg.GetRefreshTokenLength(),
		users:         newUserRepo(),
		refreshTokens: make(map[string]string),
		accessTokens:  make(map[string]bool),
		resets:        make(map[string]passwordReset),
		catalog:       seedCatalog(),
		carts:         make(map[string]*cart),
		orders:        make(map[string]*order),
		hits:          make(map[string]int),
	}
	for _, opt := range options {
		opt(s)
	}

	s.initRoutes()
	s.logRoutes()
	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// handle registers a route and counts every request it serves.
func (s *Server) handle(r chi.Router, method, pattern string, handler http.HandlerFunc) {
	key := method + " " + pattern
	r.MethodFunc(method, pattern, func(w http.ResponseWriter, req *http.Request) {
		s.mu.Lock()
		s.hits[key]++
		s.mu.Unlock()

		s.logger.Debug().Str("method", method).Str("path", req.URL.Path).Msg("request")
		handler(w, req)
	})
}

func (s *Server) logRoutes() {
	if s.env != "DEV" {
		return
	}
	_ = chi.Walk(s.router, func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		s.logger.Info().Msgf("[ %-7s] %s", method, route)
		return nil
	})
}

// Hits reports how many requests reached the route registered as method + pattern,
// e.g. Hits(http.MethodPost, models.RouteRefreshToken).
func (s *Server) Hits(method, pattern string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hits[method+" "+pattern]
}

// ResetHits zeroes every counter.
func (s *Server) ResetHits() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hits = make(map[string]int)
}

// RevokeAccessTokens invalidates every access token issued so far, as if they had all expired.
// Refresh tokens stay valid.
func (s *Server) RevokeAccessTokens() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accessTokens = make(map[string]bool)
}

// RevokeRefreshTokens invalidates every refresh token issued so far.
func (s *Server) RevokeRefreshTokens() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.refreshTokens = make(map[string]string)
}

// LastResetCode returns the live password reset code for an email or phone, standing in for the
// email the real backend would send.
func (s *Server) LastResetCode(identifier string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, err := s.users.GetByIdentifier(identifier)
	if err != nil {
		return ""
	}
	return s.resets[u.ID].code
}
