package ports

import "context"

// Mailer delivers transactional email through the provider.
type Mailer interface {
	SendVerification(ctx context.Context, to, name, code string) error
	SendWelcome(ctx context.Context, to, name string) error
	SendPasswordReset(ctx context.Context, to, resetURL string) error
	SendResetSuccess(ctx context.Context, to string) error
}

// TaskEnqueuer hands email delivery to a background execution context.
// Enqueue failures are logged by implementations; callers treat dispatch
// as fire-and-forget relative to the HTTP response.
type TaskEnqueuer interface {
	EnqueueSendVerification(ctx context.Context, email, name, code string) error
	EnqueueSendWelcome(ctx context.Context, email, name string) error
	EnqueueSendPasswordReset(ctx context.Context, email, resetURL string) error
	EnqueueSendResetSuccess(ctx context.Context, email string) error
}
