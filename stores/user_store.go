package stores

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/openscribe/blogapi/models"
)

// UserStore is the credential store contract. Users are never updated or
// deleted; they are created by registration and read by login and by the
// author join in post reads.
type UserStore interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, username, email, passwordHash, avatar string) (*models.User, error)
}

// MongoUserStore persists users in the "users" collection.
type MongoUserStore struct {
	col *mongo.Collection
}

// NewUserStore creates a user store backed by the given database.
func NewUserStore(db *mongo.Database) *MongoUserStore {
	return &MongoUserStore{col: db.Collection("users")}
}

// FindByEmail returns the user registered under email, or models.ErrNotFound.
func (s *MongoUserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := s.col.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	return &user, nil
}

// Create inserts a new user record. The unique index on email makes the store
// the final authority on duplicates: collisions come back as models.ErrDuplicate.
func (s *MongoUserStore) Create(ctx context.Context, username, email, passwordHash, avatar string) (*models.User, error) {
	user := models.User{
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		Avatar:       avatar,
		CreatedAt:    time.Now().UTC(),
	}

	res, err := s.col.InsertOne(ctx, &user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, models.ErrDuplicate
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		user.ID = oid
	}
	return &user, nil
}
