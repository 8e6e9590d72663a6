package config

import (
	"os"
	"strings"
)

type StoreBackend string

const (
	StoreFirestore StoreBackend = "firestore"
	StoreSQLite    StoreBackend = "sqlite"
	StoreMemory    StoreBackend = "memory"
)

type AuthMode string

const (
	AuthFirebase AuthMode = "firebase"
	AuthNone     AuthMode = "none"
)

type Config struct {
	ProjectID    string
	LogLevel     string
	Port         string
	StoreBackend StoreBackend
	SQLitePath   string
	AuthMode     AuthMode
	DevUID       string
}

func New() *Config {
	return &Config{
		ProjectID:    os.Getenv("PROJECTID"),
		LogLevel:     os.Getenv("LOGLEVEL"),
		Port:         getEnv("PORT", "8080"),
		StoreBackend: getStoreBackend(os.Getenv("STOREBACKEND")),
		SQLitePath:   getEnv("SQLITEPATH", "dashboard.db"),
		AuthMode:     getAuthMode(os.Getenv("AUTHMODE")),
		DevUID:       getEnv("DEVUID", "dev-user"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getStoreBackend(env string) StoreBackend {
	switch strings.ToLower(env) {
	case "sqlite":
		return StoreSQLite
	case "memory":
		return StoreMemory
	default: // "firestore"
		return StoreFirestore
	}
}

func getAuthMode(env string) AuthMode {
	switch strings.ToLower(env) {
	case "none":
		return AuthNone
	default: // "firebase"
		return AuthFirebase
	}
}
