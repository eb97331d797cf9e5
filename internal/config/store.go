package config

import (
	"fmt"
	"time"

	"github.com/sushihentaime/blogshelf/internal/common"
)

// OpenStore connects the backend named by STORE_BACKEND. The returned close
// function releases it.
func OpenStore(cfg *Config) (common.KVStore, func() error, error) {
	switch cfg.Store.Backend {
	case "memory":
		return common.NewMemoryKV(), func() error { return nil }, nil

	case "sqlite":
		db, err := common.OpenSQLite(cfg.Store.SQLitePath)
		if err != nil {
			return nil, nil, err
		}

		kv, err := common.NewSQLiteKV(db)
		if err != nil {
			db.Close()
			return nil, nil, err
		}

		return kv, db.Close, nil

	case "postgres":
		db, err := common.NewDB(cfg.DB.Host, cfg.DB.Port, cfg.DB.User, cfg.DB.Password, cfg.DB.Name, 10, 5, 15*time.Minute)
		if err != nil {
			return nil, nil, err
		}

		m, err := common.Migrate(cfg.DB.Migrations, common.PostgresDSN(cfg.DB.Host, cfg.DB.Port, cfg.DB.User, cfg.DB.Password, cfg.DB.Name))
		if err != nil {
			db.Close()
			return nil, nil, fmt.Errorf("running migrations: %w", err)
		}
		m.Close()

		return common.NewPostgresKV(db), db.Close, nil

	default:
		return nil, nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}
}
