package providers

import (
	"log/slog"
	"os"

	"github.com/samber/do/v2"

	"github.com/savethecatapp/savethecat-server/internal/config"
	"github.com/savethecatapp/savethecat-server/internal/logger"
	"github.com/savethecatapp/savethecat-server/internal/store"
)

// StoreHandle wraps the store with shutdown capability.
type StoreHandle struct {
	*store.Store
}

// Shutdown implements do.Shutdownable.
func (h *StoreHandle) Shutdown() error {
	return h.Close()
}

// ProvideStore provides the database store.
func ProvideStore(i do.Injector) (*StoreHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	sl := do.MustInvoke[*slog.Logger](i)

	if err := os.MkdirAll(cfg.Data.BasePath, 0o700); err != nil {
		return nil, err
	}

	dbPath := cfg.DatabasePath()
	db, err := store.Open(dbPath, sl)
	if err != nil {
		return nil, err
	}

	log.Info("Database initialized", "path", dbPath)

	return &StoreHandle{Store: db}, nil
}
