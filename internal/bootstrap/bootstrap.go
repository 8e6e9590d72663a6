package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"cloud.google.com/go/firestore"
	"firebase.google.com/go/v4/auth"

	"github.com/GregMSThompson/pbx-dashboard/internal/config"
	"github.com/GregMSThompson/pbx-dashboard/internal/store"
	"github.com/GregMSThompson/pbx-dashboard/pkg/logger"
)

type Bootstrap struct {
	Log       *slog.Logger
	Firestore *firestore.Client
	Firebase  *auth.Client
	Backend   store.Backend

	closers []func() error
}

func Run(cfg *config.Config) (*Bootstrap, error) {
	var err error
	applicationCtx := context.Background()
	bs := new(Bootstrap)

	bs.Log = logger.New(cfg.LogLevel, logger.NewCloudRunHandler)

	switch cfg.StoreBackend {
	case config.StoreMemory:
		bs.Backend = store.NewMemoryStore()
	case config.StoreSQLite:
		sqlite, err := store.OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return bs, err
		}
		bs.closers = append(bs.closers, sqlite.Close)
		bs.Backend = sqlite
	case config.StoreFirestore:
		bs.Firestore, err = InitFirestore(applicationCtx, cfg.ProjectID)
		if err != nil {
			return bs, err
		}
		bs.closers = append(bs.closers, bs.Firestore.Close)
		bs.Backend = store.NewPreferenceStore(bs.Firestore)
	default:
		return bs, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
	bs.Log.Info("preference store ready", "backend", string(cfg.StoreBackend))

	if cfg.AuthMode == config.AuthFirebase {
		bs.Firebase, err = InitFirebase(applicationCtx, cfg.ProjectID)
		if err != nil {
			return bs, err
		}
	} else {
		bs.Log.Warn("authentication disabled", "uid", cfg.DevUID)
	}

	return bs, nil
}

// Close releases the store clients opened by Run.
func (bs *Bootstrap) Close() {
	for i := len(bs.closers) - 1; i >= 0; i-- {
		if err := bs.closers[i](); err != nil {
			bs.Log.Warn("close failed", "error", err)
		}
	}
}
