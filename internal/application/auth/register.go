package auth

import (
	"context"
	"time"

	"github.com/authgate/authgate/internal/application/ports"
	"github.com/authgate/authgate/internal/domain"
	domerrors "github.com/authgate/authgate/internal/domain/errors"
)

// RegisterInput carries the signup form fields.
type RegisterInput struct {
	Email    string
	Password string
	Name     string
}

// RegisterResult is the created record plus the session established for it.
type RegisterResult struct {
	User             *domain.User
	SessionToken     string
	SessionExpiresAt time.Time
}

// Register creates an unverified account, issues a session, and enqueues
// the verification email.
type Register struct {
	users    ports.UserRepository
	hasher   ports.PasswordHasher
	issuer   ports.SessionIssuer
	enqueuer ports.TaskEnqueuer
}

func NewRegister(users ports.UserRepository, hasher ports.PasswordHasher, issuer ports.SessionIssuer, enqueuer ports.TaskEnqueuer) *Register {
	return &Register{users: users, hasher: hasher, issuer: issuer, enqueuer: enqueuer}
}

func (uc *Register) Execute(ctx context.Context, input RegisterInput) (*RegisterResult, error) {
	if input.Email == "" || input.Password == "" || input.Name == "" {
		return nil, domerrors.ErrInvalidInput
	}
	existing, err := uc.users.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domerrors.ErrUserExists
	}
	hash, err := uc.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}
	code, err := GenerateVerificationCode()
	if err != nil {
		return nil, err
	}
	now := time.Now()
	user := &domain.User{
		Email:        input.Email,
		PasswordHash: hash,
		Name:         input.Name,
		Verification: &domain.TokenGrant{Token: code, ExpiresAt: now.Add(VerificationExpiry)},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	// The store's unique email index settles the race between the lookup
	// above and this insert.
	if err := uc.users.Create(ctx, user); err != nil {
		return nil, err
	}
	token, expiresAt, err := uc.issuer.Issue(user.ID)
	if err != nil {
		return nil, err
	}
	// Fire-and-forget: delivery failure must not unwind the created record.
	// The enqueuer logs its own failures.
	_ = uc.enqueuer.EnqueueSendVerification(ctx, user.Email, user.Name, code)
	return &RegisterResult{User: user, SessionToken: token, SessionExpiresAt: expiresAt}, nil
}
