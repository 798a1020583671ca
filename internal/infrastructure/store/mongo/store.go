// Package mongo implements the record store over a MongoDB collection, as an
// alternative to the flat-file backend for deployments that already run a
// database. The document writes are atomic per record, so no external lock
// is needed; username uniqueness is enforced by a unique index.
package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/webserv42/auth-system/internal/core/domain"
)

const recordCollection = "identity_records"

type Store struct {
	coll *mongo.Collection
}

func NewStore(db *mongo.Database) *Store {
	return &Store{coll: db.Collection(recordCollection)}
}

type recordDoc struct {
	Username       string `bson:"username"`
	HashedPassword string `bson:"hashed_password"`
	Token          string `bson:"token"`
}

// EnsureIndexes creates the unique username index. Call once at startup.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	_, err := s.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("create username index: %w", err)
	}
	return nil
}

func (s *Store) FindByCredentials(ctx context.Context, username, hashedPassword string) (string, error) {
	var doc recordDoc
	err := s.coll.FindOne(ctx, bson.M{"username": username, "hashed_password": hashedPassword}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return "", domain.ErrUserNotFound
		}
		return "", fmt.Errorf("%w: find record: %v", domain.ErrStoreUnavailable, err)
	}
	return doc.Token, nil
}

func (s *Store) Insert(ctx context.Context, username, hashedPassword, token string) error {
	doc := recordDoc{Username: username, HashedPassword: hashedPassword, Token: token}
	if _, err := s.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrUserExists
		}
		return fmt.Errorf("%w: insert record: %v", domain.ErrStoreUnavailable, err)
	}
	return nil
}

func (s *Store) UpdateToken(ctx context.Context, username, token string) error {
	res, err := s.coll.UpdateOne(ctx,
		bson.M{"username": username},
		bson.M{"$set": bson.M{"token": token}},
	)
	if err != nil {
		return fmt.Errorf("%w: update token: %v", domain.ErrStoreUnavailable, err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (s *Store) FindByToken(ctx context.Context, token string) (bool, error) {
	if token == "" {
		return false, nil
	}
	err := s.coll.FindOne(ctx, bson.M{"token": token}).Err()
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return false, nil
		}
		return false, fmt.Errorf("%w: find token: %v", domain.ErrStoreUnavailable, err)
	}
	return true, nil
}
