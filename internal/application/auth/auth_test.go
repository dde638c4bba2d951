package auth

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/authgate/authgate/internal/domain"
	domerrors "github.com/authgate/authgate/internal/domain/errors"
)

// memoryRepo is an in-memory ports.UserRepository for use-case tests.
type memoryRepo struct {
	mu    sync.Mutex
	users map[string]*domain.User
	seq   int
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{users: make(map[string]*domain.User)}
}

func clone(u *domain.User) *domain.User {
	c := *u
	if u.Verification != nil {
		g := *u.Verification
		c.Verification = &g
	}
	if u.Reset != nil {
		g := *u.Reset
		c.Reset = &g
	}
	if u.LastLoginAt != nil {
		ts := *u.LastLoginAt
		c.LastLoginAt = &ts
	}
	return &c
}

func (r *memoryRepo) Create(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email {
			return domerrors.ErrUserExists
		}
	}
	r.seq++
	user.ID = fmt.Sprintf("u%d", r.seq)
	r.users[user.ID] = clone(user)
	return nil
}

func (r *memoryRepo) Update(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return domerrors.ErrUserNotFound
	}
	r.users[user.ID] = clone(user)
	return nil
}

func (r *memoryRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return clone(u), nil
		}
	}
	return nil, nil
}

func (r *memoryRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		return clone(u), nil
	}
	return nil, nil
}

func (r *memoryRepo) GetByVerificationToken(ctx context.Context, token string, now time.Time) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Verification != nil && u.Verification.Token == token && now.Before(u.Verification.ExpiresAt) {
			return clone(u), nil
		}
	}
	return nil, nil
}

func (r *memoryRepo) GetByResetToken(ctx context.Context, token string, now time.Time) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Reset != nil && u.Reset.Token == token && now.Before(u.Reset.ExpiresAt) {
			return clone(u), nil
		}
	}
	return nil, nil
}

// fakeHasher avoids bcrypt cost in use-case tests.
type fakeHasher struct{}

func (fakeHasher) Hash(password string) (string, error) { return "hashed:" + password, nil }
func (fakeHasher) Verify(password, hash string) bool    { return hash == "hashed:"+password }

type fakeIssuer struct{}

func (fakeIssuer) Issue(userID string) (string, time.Time, error) {
	return "session-" + userID, time.Now().Add(time.Hour), nil
}

func (fakeIssuer) Validate(token string) (string, error) {
	return strings.TrimPrefix(token, "session-"), nil
}

// captureEnqueuer records dispatched email tasks.
type captureEnqueuer struct {
	mu    sync.Mutex
	sent  []string // "type email extra"
	fails bool
}

func (q *captureEnqueuer) record(kind, email, extra string) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.sent = append(q.sent, kind+" "+email+" "+extra)
	if q.fails {
		return fmt.Errorf("enqueue failed")
	}
	return nil
}

func (q *captureEnqueuer) EnqueueSendVerification(_ context.Context, email, name, code string) error {
	return q.record("verification", email, code)
}

func (q *captureEnqueuer) EnqueueSendWelcome(_ context.Context, email, name string) error {
	return q.record("welcome", email, name)
}

func (q *captureEnqueuer) EnqueueSendPasswordReset(_ context.Context, email, resetURL string) error {
	return q.record("password_reset", email, resetURL)
}

func (q *captureEnqueuer) EnqueueSendResetSuccess(_ context.Context, email string) error {
	return q.record("reset_success", email, "")
}

func (q *captureEnqueuer) last() string {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.sent) == 0 {
		return ""
	}
	return q.sent[len(q.sent)-1]
}

func TestRegister(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryRepo()
	enq := &captureEnqueuer{}
	uc := NewRegister(repo, fakeHasher{}, fakeIssuer{}, enq)

	result, err := uc.Execute(ctx, RegisterInput{Email: "a@x.com", Password: "Pw123!", Name: "A"})
	require.NoError(t, err)
	require.NotEmpty(t, result.User.ID)
	require.False(t, result.User.IsVerified)
	require.NotNil(t, result.User.Verification)
	require.Len(t, result.User.Verification.Token, 6)
	require.True(t, result.User.Verification.ExpiresAt.After(time.Now()))
	require.Equal(t, "session-"+result.User.ID, result.SessionToken)
	require.Contains(t, enq.last(), "verification a@x.com")

	_, err = uc.Execute(ctx, RegisterInput{Email: "a@x.com", Password: "Other1!", Name: "B"})
	require.ErrorIs(t, err, domerrors.ErrUserExists)
}

func TestRegisterMissingFields(t *testing.T) {
	uc := NewRegister(newMemoryRepo(), fakeHasher{}, fakeIssuer{}, &captureEnqueuer{})
	for _, input := range []RegisterInput{
		{Email: "", Password: "Pw123!", Name: "A"},
		{Email: "a@x.com", Password: "", Name: "A"},
		{Email: "a@x.com", Password: "Pw123!", Name: ""},
	} {
		_, err := uc.Execute(context.Background(), input)
		require.ErrorIs(t, err, domerrors.ErrInvalidInput)
	}
}

func TestRegisterSurvivesEnqueueFailure(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryRepo()
	uc := NewRegister(repo, fakeHasher{}, fakeIssuer{}, &captureEnqueuer{fails: true})

	result, err := uc.Execute(ctx, RegisterInput{Email: "a@x.com", Password: "Pw123!", Name: "A"})
	require.NoError(t, err, "delivery failure must not fail registration")

	stored, err := repo.GetByID(ctx, result.User.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryRepo()
	register := NewRegister(repo, fakeHasher{}, fakeIssuer{}, &captureEnqueuer{})
	_, err := register.Execute(ctx, RegisterInput{Email: "a@x.com", Password: "Pw123!", Name: "A"})
	require.NoError(t, err)

	uc := NewLogin(repo, fakeHasher{}, fakeIssuer{})

	result, err := uc.Execute(ctx, LoginInput{Email: "a@x.com", Password: "Pw123!"})
	require.NoError(t, err)
	require.NotEmpty(t, result.SessionToken)
	require.NotNil(t, result.User.LastLoginAt)

	stored, err := repo.GetByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	require.NotNil(t, stored.LastLoginAt, "last login must be persisted")
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryRepo()
	register := NewRegister(repo, fakeHasher{}, fakeIssuer{}, &captureEnqueuer{})
	_, err := register.Execute(ctx, RegisterInput{Email: "a@x.com", Password: "Pw123!", Name: "A"})
	require.NoError(t, err)

	uc := NewLogin(repo, fakeHasher{}, fakeIssuer{})

	_, errWrongPassword := uc.Execute(ctx, LoginInput{Email: "a@x.com", Password: "nope"})
	_, errUnknownEmail := uc.Execute(ctx, LoginInput{Email: "b@x.com", Password: "Pw123!"})

	require.ErrorIs(t, errWrongPassword, domerrors.ErrInvalidCredentials)
	require.ErrorIs(t, errUnknownEmail, domerrors.ErrInvalidCredentials)
	require.Equal(t, errWrongPassword.Error(), errUnknownEmail.Error())
}

func TestVerifyEmail(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryRepo()
	enq := &captureEnqueuer{}
	register := NewRegister(repo, fakeHasher{}, fakeIssuer{}, enq)
	created, err := register.Execute(ctx, RegisterInput{Email: "a@x.com", Password: "Pw123!", Name: "A"})
	require.NoError(t, err)
	code := created.User.Verification.Token

	uc := NewVerifyEmail(repo, enq)

	_, err = uc.Execute(ctx, VerifyEmailInput{Code: "000000"})
	require.ErrorIs(t, err, domerrors.ErrInvalidToken)

	result, err := uc.Execute(ctx, VerifyEmailInput{Code: code})
	require.NoError(t, err)
	require.True(t, result.User.IsVerified)
	require.Nil(t, result.User.Verification, "grant is cleared on consumption")
	require.Contains(t, enq.last(), "welcome a@x.com")

	// Replay with the consumed code fails.
	_, err = uc.Execute(ctx, VerifyEmailInput{Code: code})
	require.ErrorIs(t, err, domerrors.ErrInvalidToken)
}

func TestVerifyEmailExpiredCode(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryRepo()
	user := &domain.User{
		Email:        "a@x.com",
		PasswordHash: "hashed:Pw123!",
		Name:         "A",
		Verification: &domain.TokenGrant{Token: "123456", ExpiresAt: time.Now().Add(-time.Minute)},
	}
	require.NoError(t, repo.Create(ctx, user))

	uc := NewVerifyEmail(repo, &captureEnqueuer{})
	_, err := uc.Execute(ctx, VerifyEmailInput{Code: "123456"})
	require.ErrorIs(t, err, domerrors.ErrInvalidToken)
}

func TestForgotPassword(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryRepo()
	enq := &captureEnqueuer{}
	register := NewRegister(repo, fakeHasher{}, fakeIssuer{}, enq)
	_, err := register.Execute(ctx, RegisterInput{Email: "a@x.com", Password: "Pw123!", Name: "A"})
	require.NoError(t, err)

	uc := NewForgotPassword(repo, enq, "https://app.example.com")

	_, err = uc.Execute(ctx, ForgotPasswordInput{Email: "b@x.com"})
	require.ErrorIs(t, err, domerrors.ErrUserNotFound)

	_, err = uc.Execute(ctx, ForgotPasswordInput{Email: "a@x.com"})
	require.NoError(t, err)

	stored, err := repo.GetByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	require.NotNil(t, stored.Reset)
	require.Len(t, stored.Reset.Token, 40)
	require.True(t, stored.Reset.ExpiresAt.After(time.Now()))
	require.Contains(t, enq.last(), "password_reset a@x.com https://app.example.com/reset-password/"+stored.Reset.Token)
}

func TestResetPasswordFlow(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryRepo()
	enq := &captureEnqueuer{}
	register := NewRegister(repo, fakeHasher{}, fakeIssuer{}, enq)
	_, err := register.Execute(ctx, RegisterInput{Email: "a@x.com", Password: "Pw123!", Name: "A"})
	require.NoError(t, err)

	forgot := NewForgotPassword(repo, enq, "https://app.example.com")
	_, err = forgot.Execute(ctx, ForgotPasswordInput{Email: "a@x.com"})
	require.NoError(t, err)
	stored, _ := repo.GetByEmail(ctx, "a@x.com")
	token := stored.Reset.Token

	uc := NewResetPassword(repo, fakeHasher{}, enq)

	_, err = uc.Execute(ctx, ResetPasswordInput{Token: "bogus", NewPassword: "New456!"})
	require.ErrorIs(t, err, domerrors.ErrInvalidToken)

	_, err = uc.Execute(ctx, ResetPasswordInput{Token: token, NewPassword: "New456!"})
	require.NoError(t, err)
	require.Contains(t, enq.last(), "reset_success a@x.com")

	login := NewLogin(repo, fakeHasher{}, fakeIssuer{})
	_, err = login.Execute(ctx, LoginInput{Email: "a@x.com", Password: "Pw123!"})
	require.ErrorIs(t, err, domerrors.ErrInvalidCredentials, "old password must stop working")
	_, err = login.Execute(ctx, LoginInput{Email: "a@x.com", Password: "New456!"})
	require.NoError(t, err)

	// The token is single-use.
	_, err = uc.Execute(ctx, ResetPasswordInput{Token: token, NewPassword: "Again789!"})
	require.ErrorIs(t, err, domerrors.ErrInvalidToken)
}

func TestResetPasswordExpiredToken(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryRepo()
	user := &domain.User{
		Email:        "a@x.com",
		PasswordHash: "hashed:Pw123!",
		Name:         "A",
		Reset:        &domain.TokenGrant{Token: "deadbeef", ExpiresAt: time.Now().Add(-time.Minute)},
	}
	require.NoError(t, repo.Create(ctx, user))

	uc := NewResetPassword(repo, fakeHasher{}, &captureEnqueuer{})
	_, err := uc.Execute(ctx, ResetPasswordInput{Token: "deadbeef", NewPassword: "New456!"})
	require.ErrorIs(t, err, domerrors.ErrInvalidToken)

	stored, err := repo.GetByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	require.Equal(t, "hashed:Pw123!", stored.PasswordHash, "expired token must not change the password")
}

func TestCheckAuth(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryRepo()
	register := NewRegister(repo, fakeHasher{}, fakeIssuer{}, &captureEnqueuer{})
	created, err := register.Execute(ctx, RegisterInput{Email: "a@x.com", Password: "Pw123!", Name: "A"})
	require.NoError(t, err)

	uc := NewCheckAuth(repo)

	result, err := uc.Execute(ctx, CheckAuthInput{UserID: created.User.ID})
	require.NoError(t, err)
	require.Equal(t, "a@x.com", result.User.Email)

	_, err = uc.Execute(ctx, CheckAuthInput{UserID: "gone"})
	require.ErrorIs(t, err, domerrors.ErrUserNotFound)
}
