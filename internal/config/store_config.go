package config

import (
	"os"
	"path/filepath"
)

type StoreDriver string

const (
	StoreDriverFile   StoreDriver = "file"
	StoreDriverSQLite StoreDriver = "sqlite"
	StoreDriverMemory StoreDriver = "memory"
)

type StoreConfig interface {
	GetStoreDriver() StoreDriver
	GetStorePath() string
}

type Store struct {
	Driver string `yaml:"driver" env:"STORE_DRIVER" env-default:"file"`
	Path   string `yaml:"path" env:"STORE_PATH"`
}

var _ StoreConfig = Store{}

func (s Store) GetStoreDriver() StoreDriver {
	switch StoreDriver(s.Driver) {
	case StoreDriverSQLite, StoreDriverMemory:
		return StoreDriver(s.Driver)
	}
	return StoreDriverFile
}

// GetStorePath defaults to ~/.storefront/session.json (session.db for sqlite).
func (s Store) GetStorePath() string {
	if s.Path != "" {
		return s.Path
	}
	name := "session.json"
	if s.GetStoreDriver() == StoreDriverSQLite {
		name = "session.db"
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".storefront", name)
	}
	return filepath.Join(home, ".storefront", name)
}
