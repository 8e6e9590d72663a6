package config

import "testing"

func TestNew_Defaults(t *testing.T) {
	for _, k := range []string{"PROJECTID", "LOGLEVEL", "PORT", "STOREBACKEND", "SQLITEPATH", "AUTHMODE", "DEVUID"} {
		t.Setenv(k, "")
	}
	cfg := New()

	if cfg.Port != "8080" {
		t.Errorf("expected port 8080, got %q", cfg.Port)
	}
	if cfg.StoreBackend != StoreFirestore {
		t.Errorf("expected firestore backend, got %q", cfg.StoreBackend)
	}
	if cfg.AuthMode != AuthFirebase {
		t.Errorf("expected firebase auth, got %q", cfg.AuthMode)
	}
	if cfg.SQLitePath != "dashboard.db" || cfg.DevUID != "dev-user" {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
}

func TestNew_FromEnv(t *testing.T) {
	t.Setenv("PROJECTID", "pbx-prod")
	t.Setenv("PORT", "9090")
	t.Setenv("STOREBACKEND", "SQLite")
	t.Setenv("SQLITEPATH", "/tmp/prefs.db")
	t.Setenv("AUTHMODE", "none")
	t.Setenv("DEVUID", "alice")

	cfg := New()
	want := Config{
		ProjectID:    "pbx-prod",
		Port:         "9090",
		StoreBackend: StoreSQLite,
		SQLitePath:   "/tmp/prefs.db",
		AuthMode:     AuthNone,
		DevUID:       "alice",
		LogLevel:     cfg.LogLevel,
	}
	if *cfg != want {
		t.Fatalf("got %+v, want %+v", *cfg, want)
	}
}

func TestGetStoreBackend(t *testing.T) {
	cases := map[string]StoreBackend{
		"memory":    StoreMemory,
		"sqlite":    StoreSQLite,
		"firestore": StoreFirestore,
		"":          StoreFirestore,
		"redis":     StoreFirestore,
	}
	for in, want := range cases {
		if got := getStoreBackend(in); got != want {
			t.Errorf("getStoreBackend(%q) = %q, want %q", in, got, want)
		}
	}
}
