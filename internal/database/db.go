package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"inventory-backend/internal/config"
	"inventory-backend/internal/store"
)

const connectTimeout = 15 * time.Second

// Open connects to the configured store once at startup. The returned store
// is handed to the handlers; nothing here is kept in package state.
func Open(cfg *config.Config) (store.ProductStore, error) {
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	switch cfg.StoreDriver {
	case config.DriverMongo:
		s, err := store.OpenMongo(ctx, cfg.MongoURI)
		if err != nil {
			return nil, err
		}
		log.Println("MongoDB bağlantısı başarılı. Index ve sayaç hazır.")
		return s, nil

	case config.DriverPostgres:
		s, err := store.OpenPostgres(ctx, cfg.DatabaseDSN)
		if err != nil {
			return nil, err
		}
		log.Println("Veritabanı bağlantısı başarılı. Migration tamamlandı.")
		return s, nil

	case config.DriverMemory:
		log.Println("[WARN] Bellek içi store kullanılıyor, kayıtlar kalıcı değil.")
		return store.NewMemoryStore(), nil
	}
	return nil, fmt.Errorf("bilinmeyen store sürücüsü: %s", cfg.StoreDriver)
}
