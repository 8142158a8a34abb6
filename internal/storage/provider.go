package storage

import (
	"meetsync/internal/providers"
	"meetsync/internal/structures"
)

// NewStore picks the backend named by storage.driver.
func NewStore(conf *structures.Config, logger providers.Logger) (Store, error) {
	if conf.Storage.Driver == "mysql" {
		db, err := OpenMySQL(conf.Storage.DSN)
		if err != nil {
			return nil, err
		}
		logger.Infof(providers.TypeApp, "Using mysql storage")
		return NewGormStore(db)
	}
	logger.Infof(providers.TypeApp, "Using in-memory storage with snapshots at %s", conf.Persistence.FilePath)
	return NewMemoryStore(), nil
}
