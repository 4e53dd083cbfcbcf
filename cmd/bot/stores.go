package main

import (
	"context"
	"fmt"
	"time"

	"github.com/PancyStudios/PancyWarden/pkg/config"
	"github.com/PancyStudios/PancyWarden/pkg/database"
	"github.com/PancyStudios/PancyWarden/pkg/logger"
	"github.com/PancyStudios/PancyWarden/pkg/settings"
	"github.com/PancyStudios/PancyWarden/pkg/storage"
	"github.com/PancyStudios/PancyWarden/pkg/warnings"
)

// Document IDs used when documents live in MongoDB
const (
	mongoWarningsDoc = "warnings"
	mongoSettingsDoc = "guild_settings"
)

const mongoOpTimeout = 5 * time.Second

// stores bundles the opened documents and the backend behind them
type stores struct {
	backend  storage.Backend
	ledger   *warnings.Ledger
	settings *settings.Store
	close    func()
}

// openBackend selects the storage backend named in the configuration
func openBackend(ctx context.Context, cfg *config.Config) (storage.Backend, func(), error) {
	switch cfg.StorageBackend {
	case config.BackendFile:
		return storage.NewFileBackend(""), func() {}, nil
	case config.BackendMemory:
		logger.Warn("Usando almacenamiento en memoria, los datos se perderán al apagar", "Storage")
		return storage.NewMemoryBackend(), func() {}, nil
	case config.BackendMongo:
		db := database.NewDatabase()
		if err := db.Connect(ctx, cfg.MongoDBURL, cfg.DBName); err != nil {
			return nil, nil, err
		}
		closeFn := func() {
			ctx, cancel := context.WithTimeout(context.Background(), mongoOpTimeout)
			defer cancel()
			if err := db.Disconnect(ctx); err != nil {
				logger.Error(fmt.Sprintf("Error desconectando la base de datos: %v", err), "DB")
			}
		}
		return database.NewDocumentBackend(db.GetCollection(database.DocumentsCollection), mongoOpTimeout), closeFn, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}
}

// documentPaths returns where the warnings and settings documents are stored
func documentPaths(cfg *config.Config) (warningsPath, settingsPath string) {
	if cfg.UsesMongo() {
		return mongoWarningsDoc, mongoSettingsDoc
	}
	return cfg.WarningsFile, cfg.SettingsFile
}

// openStores opens both documents. A corrupt document is returned as is so the
// caller can abort without touching it.
func openStores(ctx context.Context, cfg *config.Config) (*stores, error) {
	backend, closeFn, err := openBackend(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return openStoresOn(backend, closeFn, cfg)
}

func openStoresOn(backend storage.Backend, closeFn func(), cfg *config.Config) (*stores, error) {
	warningsPath, settingsPath := documentPaths(cfg)

	ledger, err := warnings.Open(backend, warningsPath)
	if err != nil {
		closeFn()
		return nil, err
	}
	store, err := settings.Open(backend, settingsPath)
	if err != nil {
		closeFn()
		return nil, err
	}

	return &stores{backend: backend, ledger: ledger, settings: store, close: closeFn}, nil
}
