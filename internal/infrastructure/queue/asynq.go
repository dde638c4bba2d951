package queue

import (
	"context"
	"encoding/json"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"

	"github.com/authgate/authgate/internal/application/ports"
)

// Task types for email delivery.
const (
	TypeSendVerification  = "email:verification"
	TypeSendWelcome       = "email:welcome"
	TypeSendPasswordReset = "email:password_reset"
	TypeSendResetSuccess  = "email:reset_success"
)

// TaskEnqueuer hands email tasks to Asynq. Enqueue failures are logged
// and returned; callers may ignore them without losing the record.
type TaskEnqueuer struct {
	client *asynq.Client
	log    zerolog.Logger
}

func NewAsynqEnqueuer(redisOpt asynq.RedisClientOpt, log zerolog.Logger) *TaskEnqueuer {
	return &TaskEnqueuer{client: asynq.NewClient(redisOpt), log: log}
}

func (q *TaskEnqueuer) Close() error {
	return q.client.Close()
}

func (q *TaskEnqueuer) enqueue(ctx context.Context, taskType string, payload interface{}) error {
	body, _ := json.Marshal(payload)
	_, err := q.client.EnqueueContext(ctx, asynq.NewTask(taskType, body))
	if err != nil {
		q.log.Warn().Err(err).Str("task", taskType).Msg("enqueue email task failed")
	}
	return err
}

func (q *TaskEnqueuer) EnqueueSendVerification(ctx context.Context, email, name, code string) error {
	return q.enqueue(ctx, TypeSendVerification, verificationPayload{Email: email, Name: name, Code: code})
}

func (q *TaskEnqueuer) EnqueueSendWelcome(ctx context.Context, email, name string) error {
	return q.enqueue(ctx, TypeSendWelcome, welcomePayload{Email: email, Name: name})
}

func (q *TaskEnqueuer) EnqueueSendPasswordReset(ctx context.Context, email, resetURL string) error {
	return q.enqueue(ctx, TypeSendPasswordReset, passwordResetPayload{Email: email, ResetURL: resetURL})
}

func (q *TaskEnqueuer) EnqueueSendResetSuccess(ctx context.Context, email string) error {
	return q.enqueue(ctx, TypeSendResetSuccess, resetSuccessPayload{Email: email})
}

var _ ports.TaskEnqueuer = (*TaskEnqueuer)(nil)
