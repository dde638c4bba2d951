package auth

import (
	"context"
	"time"

	"github.com/authgate/authgate/internal/application/ports"
	"github.com/authgate/authgate/internal/domain"
	domerrors "github.com/authgate/authgate/internal/domain/errors"
)

// VerifyEmailInput is the code from the verification email.
type VerifyEmailInput struct {
	Code string
}

// VerifyEmailResult is the verified record.
type VerifyEmailResult struct {
	User *domain.User
}

// VerifyEmail consumes an outstanding verification code, marks the
// account verified, and enqueues the welcome email.
type VerifyEmail struct {
	users    ports.UserRepository
	enqueuer ports.TaskEnqueuer
}

func NewVerifyEmail(users ports.UserRepository, enqueuer ports.TaskEnqueuer) *VerifyEmail {
	return &VerifyEmail{users: users, enqueuer: enqueuer}
}

func (uc *VerifyEmail) Execute(ctx context.Context, input VerifyEmailInput) (*VerifyEmailResult, error) {
	user, err := uc.users.GetByVerificationToken(ctx, input.Code, time.Now())
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domerrors.ErrInvalidToken
	}
	user.IsVerified = true
	user.Verification = nil
	user.UpdatedAt = time.Now()
	if err := uc.users.Update(ctx, user); err != nil {
		return nil, err
	}
	_ = uc.enqueuer.EnqueueSendWelcome(ctx, user.Email, user.Name)
	return &VerifyEmailResult{User: user}, nil
}
