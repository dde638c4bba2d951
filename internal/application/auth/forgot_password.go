package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/authgate/authgate/internal/application/ports"
	"github.com/authgate/authgate/internal/domain"
	domerrors "github.com/authgate/authgate/internal/domain/errors"
)

// ForgotPasswordInput is the email requesting a reset link.
type ForgotPasswordInput struct {
	Email string
}

// ForgotPasswordResult is empty; the caller gets a generic acknowledgement.
type ForgotPasswordResult struct{}

// ForgotPassword issues a single-use reset token, persists it on the
// record, and enqueues the reset-link email.
type ForgotPassword struct {
	users     ports.UserRepository
	enqueuer  ports.TaskEnqueuer
	clientURL string
}

func NewForgotPassword(users ports.UserRepository, enqueuer ports.TaskEnqueuer, clientURL string) *ForgotPassword {
	return &ForgotPassword{users: users, enqueuer: enqueuer, clientURL: clientURL}
}

func (uc *ForgotPassword) Execute(ctx context.Context, input ForgotPasswordInput) (*ForgotPasswordResult, error) {
	user, err := uc.users.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domerrors.ErrUserNotFound
	}
	token, err := GenerateResetToken()
	if err != nil {
		return nil, err
	}
	now := time.Now()
	user.Reset = &domain.TokenGrant{Token: token, ExpiresAt: now.Add(ResetExpiry)}
	user.UpdatedAt = now
	if err := uc.users.Update(ctx, user); err != nil {
		return nil, err
	}
	resetURL := fmt.Sprintf("%s/reset-password/%s", uc.clientURL, token)
	_ = uc.enqueuer.EnqueueSendPasswordReset(ctx, user.Email, resetURL)
	return &ForgotPasswordResult{}, nil
}
