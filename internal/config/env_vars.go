package config

import (
	"os"
	"strings"
	"time"
)

type EnvVars struct {
	AppName string `yaml:"app_name" env:"APP_NAME" env-default:"Storefront"`
	Env     string `yaml:"env" env:"ENV" env-default:"DEV"`
}

var _ EnvConfig = EnvVars{}

func (e EnvVars) GetAppName() string {
	return e.AppName
}

func (e EnvVars) GetEnv() string {
	if e.Env == "" {
		return "DEV"
	}
	return strings.ToUpper(e.Env)
}

func (e EnvVars) IsDev() bool {
	return e.GetEnv() == "DEV"
}

// Duration is a time.Duration that cleanenv can parse from "30s"-style strings.
type Duration = time.Duration

func GetEnv(envVar, defaultValue string) string {
	value := os.Getenv(envVar)
	if value == "" {
		return defaultValue
	}
	return value
}
