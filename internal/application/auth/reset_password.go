package auth

import (
	"context"
	"time"

	"github.com/authgate/authgate/internal/application/ports"
	domerrors "github.com/authgate/authgate/internal/domain/errors"
)

// ResetPasswordInput is the token from the reset link and the new password.
type ResetPasswordInput struct {
	Token       string
	NewPassword string
}

// ResetPasswordResult is empty on success.
type ResetPasswordResult struct{}

// ResetPassword consumes an outstanding reset token, replaces the
// password hash, and enqueues the confirmation email.
type ResetPassword struct {
	users    ports.UserRepository
	hasher   ports.PasswordHasher
	enqueuer ports.TaskEnqueuer
}

func NewResetPassword(users ports.UserRepository, hasher ports.PasswordHasher, enqueuer ports.TaskEnqueuer) *ResetPassword {
	return &ResetPassword{users: users, hasher: hasher, enqueuer: enqueuer}
}

func (uc *ResetPassword) Execute(ctx context.Context, input ResetPasswordInput) (*ResetPasswordResult, error) {
	if input.NewPassword == "" {
		return nil, domerrors.ErrInvalidInput
	}
	user, err := uc.users.GetByResetToken(ctx, input.Token, time.Now())
	if err != nil {
		return nil, err
	}
	// Stop here on a failed lookup; nothing below may touch the record.
	if user == nil {
		return nil, domerrors.ErrInvalidToken
	}
	hash, err := uc.hasher.Hash(input.NewPassword)
	if err != nil {
		return nil, err
	}
	user.PasswordHash = hash
	user.Reset = nil
	user.UpdatedAt = time.Now()
	if err := uc.users.Update(ctx, user); err != nil {
		return nil, err
	}
	_ = uc.enqueuer.EnqueueSendResetSuccess(ctx, user.Email)
	return &ResetPasswordResult{}, nil
}
