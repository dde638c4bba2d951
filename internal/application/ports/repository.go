package ports

import (
	"context"
	"time"

	"github.com/authgate/authgate/internal/domain"
)

// UserRepository defines persistence for user records. Lookups return
// (nil, nil) when no record matches.
type UserRepository interface {
	// Create assigns an ID and persists the record. Returns
	// errors.ErrUserExists when the email is already taken, including
	// when a concurrent insert wins the race.
	Create(ctx context.Context, user *domain.User) error
	// Update atomically replaces the record identified by user.ID.
	Update(ctx context.Context, user *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	// GetByVerificationToken matches an outstanding verification grant
	// whose expiry is after now.
	GetByVerificationToken(ctx context.Context, token string, now time.Time) (*domain.User, error)
	// GetByResetToken matches an outstanding reset grant whose expiry is
	// after now.
	GetByResetToken(ctx context.Context, token string, now time.Time) (*domain.User, error)
}
