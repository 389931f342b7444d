package main

import (
	"fmt"
	"log/slog"

	"github.com/erazemk/omara/internal/config"
	"github.com/erazemk/omara/internal/db"
	"github.com/erazemk/omara/internal/store"
)

// openKV opens the configured storage backend. The returned function
// releases it.
func openKV(cfg *config.Config) (store.KV, func(), error) {
	path := cfg.DBPath()
	switch cfg.Backend {
	case config.BackendSQLite:
		database, err := db.OpenWithSchema(path)
		if err != nil {
			return nil, nil, err
		}
		slog.Info("database ready", "backend", cfg.Backend, "path", path)
		return store.NewSQLite(database), func() { database.Close() }, nil

	case config.BackendBolt:
		b, err := store.OpenBolt(path)
		if err != nil {
			return nil, nil, err
		}
		slog.Info("database ready", "backend", cfg.Backend, "path", path)
		return b, func() { b.Close() }, nil

	case config.BackendMemory:
		slog.Warn("using in-memory storage, nothing will be persisted")
		return store.NewMemory(), func() {}, nil
	}
	return nil, nil, fmt.Errorf("unknown backend %q", cfg.Backend)
}

// openStore opens the configured backend and wraps it in a Store.
func (a *app) openStore() (*store.Store, func(), error) {
	kv, closeKV, err := openKV(a.cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("opening %s store: %w", a.cfg.Backend, err)
	}
	return store.New(kv), closeKV, nil
}
