package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/annotext/spanviz/pkg/annotation"
)

// MongoStore is a MongoDB-backed document store for production server
// deployments.
type MongoStore struct {
	client *mongo.Client
	col    *mongo.Collection
}

// MongoConfig holds MongoDB connection settings.
type MongoConfig struct {
	URI      string // e.g. "mongodb://localhost:27017"
	Database string // empty means "spanviz"
}

// NewMongoStore connects to MongoDB, verifies the connection and ensures
// the list index exists.
func NewMongoStore(ctx context.Context, cfg MongoConfig) (*MongoStore, error) {
	if cfg.Database == "" {
		cfg.Database = "spanviz"
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	col := client.Database(cfg.Database).Collection("documents")
	_, err = col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "created_at", Value: -1}},
	})
	if err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("create index: %w", err)
	}

	return &MongoStore{client: client, col: col}, nil
}

// Create stores a new document under a generated UUID.
func (s *MongoStore) Create(ctx context.Context, name string, doc annotation.Document) (DocumentRecord, error) {
	now := time.Now().UTC()
	rec := DocumentRecord{
		ID:        uuid.NewString(),
		Name:      name,
		Document:  doc,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := s.col.InsertOne(ctx, rec); err != nil {
		return DocumentRecord{}, fmt.Errorf("insert document: %w", err)
	}
	return rec, nil
}

// Get retrieves a document by ID.
func (s *MongoStore) Get(ctx context.Context, id string) (DocumentRecord, error) {
	var rec DocumentRecord
	err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&rec)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return DocumentRecord{}, ErrNotFound
	}
	if err != nil {
		return DocumentRecord{}, fmt.Errorf("get document: %w", err)
	}
	return rec, nil
}

// List returns all documents, newest first.
func (s *MongoStore) List(ctx context.Context) ([]DocumentRecord, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := s.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	var recs []DocumentRecord
	if err := cur.All(ctx, &recs); err != nil {
		return nil, fmt.Errorf("decode documents: %w", err)
	}
	return recs, nil
}

// Update replaces a document's name and content.
func (s *MongoStore) Update(ctx context.Context, id, name string, doc annotation.Document) (DocumentRecord, error) {
	update := bson.M{"$set": bson.M{
		"name":       name,
		"document":   doc,
		"updated_at": time.Now().UTC(),
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var rec DocumentRecord
	err := s.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&rec)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return DocumentRecord{}, ErrNotFound
	}
	if err != nil {
		return DocumentRecord{}, fmt.Errorf("update document: %w", err)
	}
	return rec, nil
}

// Delete removes a document.
func (s *MongoStore) Delete(ctx context.Context, id string) error {
	res, err := s.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Close disconnects from MongoDB.
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

var _ Store = (*MongoStore)(nil)
