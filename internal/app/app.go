package app

import (
	"log/slog"

	"github.com/linemk/storefront/internal/config"
	"github.com/linemk/storefront/internal/storage"
)

type App struct {
	Config *config.Config
	Logger *slog.Logger
	Store  *storage.Storage
}

// NewApp создаёт новый экземпляр App: хранилище in-memory, каталог
// сидируется один раз на старте процесса.
func NewApp(log *slog.Logger, cfg *config.Config) (*App, error) {
	store := storage.NewStorage()
	store.Seed()

	app := &App{
		Config: cfg,
		Logger: log,
		Store:  store,
	}

	return app, nil
}
