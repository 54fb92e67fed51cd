// Package config loads the storefront client settings.
//
// Sources, highest priority first:
//  1. explicit path (--config);
//  2. CONFIG_PATH;
//  3. ./storefront.yaml;
//  4. environment only.
//
// Environment variables always overlay values read from a file.
package config

import (
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

const defaultConfigFile = "storefront.yaml"

type Config interface {
	EnvConfig
	ClientConfig
	StoreConfig
	LogConfig
	FakeAPIConfig
}

type EnvConfig interface {
	GetAppName() string
	GetEnv() string
	IsDev() bool
}

type mainConfig struct {
	EnvVars `yaml:",inline"`
	API     API     `yaml:"api"`
	Store   Store   `yaml:"store"`
	Log     Log     `yaml:"log"`
	FakeAPI FakeAPI `yaml:"fakeapi"`
}

// Client settings are promoted so mainConfig satisfies each concern directly.
func (c *mainConfig) GetBaseURL() string { return c.API.GetBaseURL() }
func (c *mainConfig) GetRequestTimeout() Duration { return c.API.GetRequestTimeout() }
func (c *mainConfig) GetStoreDriver() StoreDriver { return c.Store.GetStoreDriver() }
func (c *mainConfig) GetStorePath() string { return c.Store.GetStorePath() }
func (c *mainConfig) GetLogLevel() string { return c.Log.GetLogLevel() }
func (c *mainConfig) GetLogFormat() string { return c.Log.GetLogFormat() }
func (c *mainConfig) GetPort() string { return c.FakeAPI.GetPort() }
func (c *mainConfig) GetJWTSecret() string { return c.FakeAPI.GetJWTSecret() }
func (c *mainConfig) GetAccessTokenTTL() Duration { return c.FakeAPI.GetAccessTokenTTL() }
func (c *mainConfig) GetRefreshTokenLength() int { return c.FakeAPI.GetRefreshTokenLength() }

// New returns a configuration read from the environment only.
func New() (Config, error) {
	var cfg mainConfig
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("[config New] failed to read env: %w", err)
	}
	return &cfg, nil
}

// MustLoad panics when Load fails.
func MustLoad(path string) Config {
	cfg, err := Load(path)
	if err != nil {
		panic(err)
	}
	return cfg
}

// Load resolves the configuration file and overlays the environment on top of it.
func Load(path string) (Config, error) {
	if path != "" {
		return readFile(path)
	}
	if envPath := GetEnv("CONFIG_PATH", ""); envPath != "" {
		return readFile(envPath)
	}
	if _, err := os.Stat(defaultConfigFile); err == nil {
		return readFile(defaultConfigFile)
	}
	return New()
}

func readFile(path string) (Config, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("config file %q stat failed: %w", path, err)
	}

	var cfg mainConfig
	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return nil, fmt.Errorf("failed to read config %q: %w", path, err)
	}
	return &cfg, nil
}
