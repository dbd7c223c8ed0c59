package bootstrap

import (
	"github.com/eleven-am/aeye/internal/memory"
	"github.com/qdrant/go-client/qdrant"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

func ProvideMemoryStore(db *gorm.DB, qdrantClient *qdrant.Client) *memory.Store {
	return memory.NewStore(db, qdrantClient)
}

func ProvideSessionStore(redisClient *redis.Client, cfg *Config) *memory.SessionStore {
	return memory.NewSessionStore(redisClient, cfg.SessionTTL)
}

func RunMigrations(store *memory.Store) error {
	return store.Migrate()
}

var StoresModule = fx.Options(
	fx.Provide(
		ProvideMemoryStore,
		ProvideSessionStore,
	),
	fx.Invoke(RunMigrations),
)
