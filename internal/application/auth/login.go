package auth

import (
	"context"
	"time"

	"github.com/authgate/authgate/internal/application/ports"
	"github.com/authgate/authgate/internal/domain"
	domerrors "github.com/authgate/authgate/internal/domain/errors"
)

// LoginInput carries the credentials supplied at signin.
type LoginInput struct {
	Email    string
	Password string
}

// LoginResult is the authenticated record plus the established session.
type LoginResult struct {
	User             *domain.User
	SessionToken     string
	SessionExpiresAt time.Time
}

// Login verifies credentials, stamps last-login, and issues a session.
type Login struct {
	users  ports.UserRepository
	hasher ports.PasswordHasher
	issuer ports.SessionIssuer
}

func NewLogin(users ports.UserRepository, hasher ports.PasswordHasher, issuer ports.SessionIssuer) *Login {
	return &Login{users: users, hasher: hasher, issuer: issuer}
}

func (uc *Login) Execute(ctx context.Context, input LoginInput) (*LoginResult, error) {
	user, err := uc.users.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	// Unknown email and wrong password yield the same error.
	if user == nil || !uc.hasher.Verify(input.Password, user.PasswordHash) {
		return nil, domerrors.ErrInvalidCredentials
	}
	token, expiresAt, err := uc.issuer.Issue(user.ID)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	user.LastLoginAt = &now
	user.UpdatedAt = now
	if err := uc.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return &LoginResult{User: user, SessionToken: token, SessionExpiresAt: expiresAt}, nil
}
