// Package notifications sends registration and check-in emails through the
// asynq queue.
package notifications

import (
	"context"
	"log/slog"

	"github.com/hibiken/asynq"

	"sgformer-backend/src/jobs"
	"sgformer-backend/src/lib/sl"
	"sgformer-backend/src/models"
)

// Notifier is told about state changes. It never fails the caller.
type Notifier interface {
	SubmissionCreated(ctx context.Context, sub *models.Submission)
	AttendanceMarked(ctx context.Context, sub *models.Submission)
}

type AsynqNotifier struct {
	client *asynq.Client
	log    *slog.Logger
}

func NewAsynqNotifier(client *asynq.Client, log *slog.Logger) *AsynqNotifier {
	return &AsynqNotifier{client: client, log: log}
}

func (n *AsynqNotifier) enqueue(ctx context.Context, task *asynq.Task, err error) {
	if err != nil {
		n.log.Error("build task", sl.Err(err))
		return
	}
	info, err := n.client.EnqueueContext(ctx, task)
	if err != nil {
		n.log.Error("enqueue task", slog.String("type", task.Type()), sl.Err(err))
		return
	}
	n.log.Debug("task enqueued", slog.String("type", task.Type()), slog.String("task_id", info.ID))
}

func (n *AsynqNotifier) SubmissionCreated(ctx context.Context, sub *models.Submission) {
	task, err := jobs.NewSubmissionReceivedTask(sub.ID.Hex(), sub.FormID.Hex())
	n.enqueue(ctx, task, err)
}

func (n *AsynqNotifier) AttendanceMarked(ctx context.Context, sub *models.Submission) {
	task, err := jobs.NewAttendanceConfirmedTask(sub.ID.Hex(), sub.FormID.Hex())
	n.enqueue(ctx, task, err)
}

// NoopNotifier is used when Redis is not configured.
type NoopNotifier struct{}

func (NoopNotifier) SubmissionCreated(context.Context, *models.Submission) {}
func (NoopNotifier) AttendanceMarked(context.Context, *models.Submission)  {}
