package queue

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/authgate/authgate/internal/application/ports"
)

const inlineSendTimeout = 30 * time.Second

// InlineEnqueuer dispatches email in a goroutine when Redis/Asynq is not
// configured. The send is detached from the request context so an early
// response cannot cancel it; failures go to the log.
type InlineEnqueuer struct {
	mailer ports.Mailer
	log    zerolog.Logger
}

func NewInlineEnqueuer(mailer ports.Mailer, log zerolog.Logger) *InlineEnqueuer {
	return &InlineEnqueuer{mailer: mailer, log: log}
}

func (q *InlineEnqueuer) dispatch(name, email string, send func(ctx context.Context) error) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), inlineSendTimeout)
		defer cancel()
		if err := send(ctx); err != nil {
			q.log.Warn().Err(err).Str("task", name).Str("email", email).Msg("send email failed")
		}
	}()
}

func (q *InlineEnqueuer) EnqueueSendVerification(_ context.Context, email, name, code string) error {
	q.dispatch(TypeSendVerification, email, func(ctx context.Context) error {
		return q.mailer.SendVerification(ctx, email, name, code)
	})
	return nil
}

func (q *InlineEnqueuer) EnqueueSendWelcome(_ context.Context, email, name string) error {
	q.dispatch(TypeSendWelcome, email, func(ctx context.Context) error {
		return q.mailer.SendWelcome(ctx, email, name)
	})
	return nil
}

func (q *InlineEnqueuer) EnqueueSendPasswordReset(_ context.Context, email, resetURL string) error {
	q.dispatch(TypeSendPasswordReset, email, func(ctx context.Context) error {
		return q.mailer.SendPasswordReset(ctx, email, resetURL)
	})
	return nil
}

func (q *InlineEnqueuer) EnqueueSendResetSuccess(_ context.Context, email string) error {
	q.dispatch(TypeSendResetSuccess, email, func(ctx context.Context) error {
		return q.mailer.SendResetSuccess(ctx, email)
	})
	return nil
}

var _ ports.TaskEnqueuer = (*InlineEnqueuer)(nil)
