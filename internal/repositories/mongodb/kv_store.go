package mongodb

import (
	"context"
	"errors"
	"time"

	"github.com/ArowuTest/gaspay-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Compile-time check to ensure KVStore implements the interface
var _ repositories.Store = (*KVStore)(nil)

// stateDocument is one stored key of one account
type stateDocument struct {
	ID        string    `bson:"_id"`
	MSISDN    string    `bson:"msisdn"`
	Key       string    `bson:"key"`
	Value     string    `bson:"value"`
	UpdatedAt time.Time `bson:"updatedAt"`
}

// KVStore handles MongoDB operations for account state
type KVStore struct {
	collection *mongo.Collection
}

// NewKVStore creates a new KVStore backed by the account_state collection
func NewKVStore(db *mongo.Database) *KVStore {
	return &KVStore{
		collection: db.Collection("account_state"),
	}
}

func documentID(scope, key string) string {
	return scope + ":" + key
}

// EnsureIndexes creates the msisdn index used by Clear
func (s *KVStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "msisdn", Value: 1}},
	})
	return err
}

// Get finds the value stored under key
func (s *KVStore) Get(ctx context.Context, scope, key string) (string, error) {
	var doc stateDocument
	err := s.collection.FindOne(ctx, bson.M{"_id": documentID(scope, key)}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return "", repositories.ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return doc.Value, nil
}

// Set upserts the value stored under key
func (s *KVStore) Set(ctx context.Context, scope, key, value string) error {
	doc := stateDocument{
		ID:        documentID(scope, key),
		MSISDN:    scope,
		Key:       key,
		Value:     value,
		UpdatedAt: time.Now().UTC(),
	}
	opts := options.Replace().SetUpsert(true)
	_, err := s.collection.ReplaceOne(ctx, bson.M{"_id": doc.ID}, doc, opts)
	return err
}

// Delete removes one key
func (s *KVStore) Delete(ctx context.Context, scope, key string) error {
	_, err := s.collection.DeleteOne(ctx, bson.M{"_id": documentID(scope, key)})
	return err
}

// Clear removes every key stored for scope
func (s *KVStore) Clear(ctx context.Context, scope string) error {
	_, err := s.collection.DeleteMany(ctx, bson.M{"msisdn": scope})
	return err
}

// Ping checks the server behind the collection
func (s *KVStore) Ping(ctx context.Context) error {
	return s.collection.Database().Client().Ping(ctx, nil)
}
