package mongodb

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/authgate/authgate/internal/domain"
	domerrors "github.com/authgate/authgate/internal/domain/errors"
)

const usersCollection = "users"

// tokenGrantDoc is the stored form of a domain.TokenGrant.
type tokenGrantDoc struct {
	Token     string    `bson:"token"`
	ExpiresAt time.Time `bson:"expires_at"`
}

// userDoc is the stored form of a domain.User. Absent grants are omitted
// rather than stored as nulls.
type userDoc struct {
	ID           string         `bson:"_id"`
	Email        string         `bson:"email"`
	PasswordHash string         `bson:"password_hash"`
	Name         string         `bson:"name"`
	IsVerified   bool           `bson:"is_verified"`
	Verification *tokenGrantDoc `bson:"verification,omitempty"`
	Reset        *tokenGrantDoc `bson:"reset,omitempty"`
	LastLoginAt  *time.Time     `bson:"last_login_at,omitempty"`
	CreatedAt    time.Time      `bson:"created_at"`
	UpdatedAt    time.Time      `bson:"updated_at"`
}

// UserRepository implements ports.UserRepository on a MongoDB collection.
type UserRepository struct {
	coll *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{coll: db.Collection(usersCollection)}
}

// EnsureIndexes creates the unique email index. Duplicate signups racing
// past the application-level check are rejected here.
func (r *UserRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	user.ID = uuid.NewString()
	_, err := r.coll.InsertOne(ctx, toDoc(user))
	if mongo.IsDuplicateKeyError(err) {
		return domerrors.ErrUserExists
	}
	return err
}

func (r *UserRepository) Update(ctx context.Context, user *domain.User) error {
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": user.ID}, toDoc(user))
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domerrors.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *UserRepository) GetByVerificationToken(ctx context.Context, token string, now time.Time) (*domain.User, error) {
	return r.findOne(ctx, bson.M{
		"verification.token":      token,
		"verification.expires_at": bson.M{"$gt": now},
	})
}

func (r *UserRepository) GetByResetToken(ctx context.Context, token string, now time.Time) (*domain.User, error) {
	return r.findOne(ctx, bson.M{
		"reset.token":      token,
		"reset.expires_at": bson.M{"$gt": now},
	})
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M) (*domain.User, error) {
	var doc userDoc
	err := r.coll.FindOne(ctx, filter).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return fromDoc(&doc), nil
}

func toDoc(u *domain.User) *userDoc {
	return &userDoc{
		ID:           u.ID,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		Name:         u.Name,
		IsVerified:   u.IsVerified,
		Verification: toGrantDoc(u.Verification),
		Reset:        toGrantDoc(u.Reset),
		LastLoginAt:  u.LastLoginAt,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

func fromDoc(d *userDoc) *domain.User {
	return &domain.User{
		ID:           d.ID,
		Email:        d.Email,
		PasswordHash: d.PasswordHash,
		Name:         d.Name,
		IsVerified:   d.IsVerified,
		Verification: fromGrantDoc(d.Verification),
		Reset:        fromGrantDoc(d.Reset),
		LastLoginAt:  d.LastLoginAt,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

func toGrantDoc(g *domain.TokenGrant) *tokenGrantDoc {
	if g == nil {
		return nil
	}
	return &tokenGrantDoc{Token: g.Token, ExpiresAt: g.ExpiresAt}
}

func fromGrantDoc(d *tokenGrantDoc) *domain.TokenGrant {
	if d == nil {
		return nil
	}
	return &domain.TokenGrant{Token: d.Token, ExpiresAt: d.ExpiresAt}
}
