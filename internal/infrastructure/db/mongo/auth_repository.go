package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/rankforge/agency-api/internal/core/domain"
)

const collectionUsers = "users"

type AuthRepository struct {
	col *mongo.Collection
}

func NewAuthRepository(db *mongo.Database) *AuthRepository {
	return &AuthRepository{col: db.Collection(collectionUsers)}
}

type mongoUser struct {
	ID           string `bson:"_id"`
	Name         string `bson:"name"`
	Email        string `bson:"email"`
	PasswordHash string `bson:"password_hash"`
	Role         string `bson:"role"`
	CreatedAt    int64  `bson:"created_at"`
	UpdatedAt    int64  `bson:"updated_at"`
}

func (r *AuthRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	doc := mongoUser{
		ID:           user.ID,
		Name:         user.Name,
		Email:        user.Email,
		PasswordHash: user.PasswordHash,
		Role:         user.Role,
		CreatedAt:    user.CreatedAt.Unix(),
		UpdatedAt:    user.UpdatedAt.Unix(),
	}

	_, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	return r.FindByEmail(ctx, user.Email)
}

func (r *AuthRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var mu mongoUser
	if err := r.col.FindOne(ctx, bson.M{"email": email}).Decode(&mu); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return toDomainUser(mu), nil
}

func (r *AuthRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	var mu mongoUser
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&mu); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return toDomainUser(mu), nil
}

// EnsureIndexes creates the unique email index registrations rely on.
func (r *AuthRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func toDomainUser(mu mongoUser) *domain.User {
	return &domain.User{
		ID:           mu.ID,
		Name:         mu.Name,
		Email:        mu.Email,
		PasswordHash: mu.PasswordHash,
		Role:         mu.Role,
		CreatedAt:    unixToTime(mu.CreatedAt),
		UpdatedAt:    unixToTime(mu.UpdatedAt),
	}
}

func unixToTime(ts int64) time.Time {
	if ts == 0 {
		return time.Time{}
	}
	return time.Unix(ts, 0).UTC()
}
