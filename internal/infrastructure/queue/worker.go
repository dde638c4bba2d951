package queue

import (
	"context"
	"encoding/json"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"

	"github.com/authgate/authgate/internal/application/ports"
)

// Payloads match the JSON enqueued by TaskEnqueuer.
type verificationPayload struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Code  string `json:"code"`
}

type welcomePayload struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

type passwordResetPayload struct {
	Email    string `json:"email"`
	ResetURL string `json:"reset_url"`
}

type resetSuccessPayload struct {
	Email string `json:"email"`
}

// Worker consumes email tasks and delivers them through the Mailer.
// Delivery failures are logged and returned so Asynq retries the task.
type Worker struct {
	srv    *asynq.Server
	mux    *asynq.ServeMux
	mailer ports.Mailer
	log    zerolog.Logger
}

// NewWorker creates an Asynq server and registers handlers. Call Run() to start.
func NewWorker(redisOpt asynq.RedisClientOpt, mailer ports.Mailer, log zerolog.Logger) *Worker {
	srv := asynq.NewServer(redisOpt, asynq.Config{
		Concurrency: 2,
		LogLevel:    asynq.InfoLevel,
	})
	mux := asynq.NewServeMux()
	w := &Worker{srv: srv, mux: mux, mailer: mailer, log: log}
	mux.HandleFunc(TypeSendVerification, w.handleSendVerification)
	mux.HandleFunc(TypeSendWelcome, w.handleSendWelcome)
	mux.HandleFunc(TypeSendPasswordReset, w.handleSendPasswordReset)
	mux.HandleFunc(TypeSendResetSuccess, w.handleSendResetSuccess)
	return w
}

func (w *Worker) handleSendVerification(ctx context.Context, t *asynq.Task) error {
	var p verificationPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		w.log.Error().Err(err).Msg("verification task payload invalid")
		return err
	}
	if err := w.mailer.SendVerification(ctx, p.Email, p.Name, p.Code); err != nil {
		w.log.Warn().Err(err).Str("email", p.Email).Msg("send verification email failed")
		return err
	}
	return nil
}

func (w *Worker) handleSendWelcome(ctx context.Context, t *asynq.Task) error {
	var p welcomePayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		w.log.Error().Err(err).Msg("welcome task payload invalid")
		return err
	}
	if err := w.mailer.SendWelcome(ctx, p.Email, p.Name); err != nil {
		w.log.Warn().Err(err).Str("email", p.Email).Msg("send welcome email failed")
		return err
	}
	return nil
}

func (w *Worker) handleSendPasswordReset(ctx context.Context, t *asynq.Task) error {
	var p passwordResetPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		w.log.Error().Err(err).Msg("password reset task payload invalid")
		return err
	}
	if err := w.mailer.SendPasswordReset(ctx, p.Email, p.ResetURL); err != nil {
		w.log.Warn().Err(err).Str("email", p.Email).Msg("send password reset email failed")
		return err
	}
	return nil
}

func (w *Worker) handleSendResetSuccess(ctx context.Context, t *asynq.Task) error {
	var p resetSuccessPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		w.log.Error().Err(err).Msg("reset success task payload invalid")
		return err
	}
	if err := w.mailer.SendResetSuccess(ctx, p.Email); err != nil {
		w.log.Warn().Err(err).Str("email", p.Email).Msg("send reset success email failed")
		return err
	}
	return nil
}

// Run blocks until shutdown. Use Shutdown for graceful stop.
func (w *Worker) Run() error {
	return w.srv.Run(w.mux)
}

// Shutdown stops the worker.
func (w *Worker) Shutdown() {
	w.srv.Shutdown()
}
