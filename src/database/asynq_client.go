package database

import (
	"log"

	"github.com/hibiken/asynq"

	"sgformer-backend/src/config"
)

// InitAsynq returns nil when Redis is not configured.
func InitAsynq(cfg config.Redis) *asynq.Client {
	if cfg.Addr == "" {
		log.Println("⚠️ Redis not available. Asynq client will not be initialized.")
		return nil
	}
	client := asynq.NewClient(RedisClientOpt(cfg))
	log.Println("✅ Asynq Client initialized successfully")
	return client
}
