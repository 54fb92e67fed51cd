package config

import (
	"fmt"
	"time"
)

type FakeAPIConfig interface {
	GetPort() string
	GetJWTSecret() string
	GetAccessTokenTTL() Duration
	GetRefreshTokenLength() int
}

type FakeAPI struct {
	Port               string   `yaml:"port" env:"FAKEAPI_PORT" env-default:"8080"`
	JWTSecret          string   `yaml:"jwt_secret" env:"FAKEAPI_JWT_SECRET" env-default:"storefront-dev-secret"`
	AccessTokenTTL     Duration `yaml:"access_token_ttl" env:"FAKEAPI_ACCESS_TOKEN_TTL" env-default:"24h"`
	RefreshTokenLength int      `yaml:"refresh_token_length" env:"FAKEAPI_REFRESH_TOKEN_LENGTH" env-default:"32"`
}

var _ FakeAPIConfig = FakeAPI{}

func (f FakeAPI) GetPort() string {
	port := f.Port
	if port == "" {
		port = "8080"
	}
	if port[0] != ':' {
		port = fmt.Sprintf(":%s", port)
	}
	return port
}

func (f FakeAPI) GetJWTSecret() string {
	return f.JWTSecret
}

func (f FakeAPI) GetAccessTokenTTL() Duration {
	if f.AccessTokenTTL <= 0 {
		return 24 * time.Hour
	}
	return f.AccessTokenTTL
}

func (f FakeAPI) GetRefreshTokenLength() int {
	if f.RefreshTokenLength <= 0 {
		return 32 // 32 bytes = 256 bits
	}
	return f.RefreshTokenLength
}
