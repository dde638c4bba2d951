package auth

import (
	"context"

	"github.com/authgate/authgate/internal/application/ports"
	"github.com/authgate/authgate/internal/domain"
	domerrors "github.com/authgate/authgate/internal/domain/errors"
)

// CheckAuthInput is the identity resolved by the session middleware.
type CheckAuthInput struct {
	UserID string
}

// CheckAuthResult is the record behind the session.
type CheckAuthResult struct {
	User *domain.User
}

// CheckAuth resolves a validated session identity back to its record.
type CheckAuth struct {
	users ports.UserRepository
}

func NewCheckAuth(users ports.UserRepository) *CheckAuth {
	return &CheckAuth{users: users}
}

func (uc *CheckAuth) Execute(ctx context.Context, input CheckAuthInput) (*CheckAuthResult, error) {
	user, err := uc.users.GetByID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}
	// A valid token can outlive its record.
	if user == nil {
		return nil, domerrors.ErrUserNotFound
	}
	return &CheckAuthResult{User: user}, nil
}
