package jobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	"sgformer-backend/src/lib/sl"
)

// NewServer builds the asynq worker that drains the notification queue.
func NewServer(opt asynq.RedisClientOpt, log *slog.Logger) *asynq.Server {
	return asynq.NewServer(opt, asynq.Config{
		Concurrency: 4,
		Queues:      map[string]int{QueueNotifications: 1},
		ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, t *asynq.Task, err error) {
			log.Error("task failed", slog.String("type", t.Type()), sl.Err(err))
		}),
		ShutdownTimeout: 10 * time.Second,
	})
}

// Logging wraps every handler with a start/finish log line.
func Logging(log *slog.Logger) asynq.MiddlewareFunc {
	return func(next asynq.Handler) asynq.Handler {
		return asynq.HandlerFunc(func(ctx context.Context, t *asynq.Task) error {
			start := time.Now()
			err := next.ProcessTask(ctx, t)
			log.Info("task processed",
				slog.String("type", t.Type()),
				slog.Duration("took", time.Since(start)),
				slog.Bool("ok", err == nil))
			return err
		})
	}
}
