package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/trig29/Flowchart-Json-Editor/pkg/doc"
	"github.com/trig29/Flowchart-Json-Editor/pkg/observability"
)

// MongoConfig holds MongoDB connection settings.
type MongoConfig struct {
	URI        string // e.g. mongodb://localhost:27017
	Database   string // defaults to "flowedit"
	Collection string // defaults to "documents"
}

// mongoDocument is the stored shape: the document name is the primary key
// and the graph is embedded via the doc package's bson tags.
type mongoDocument struct {
	Name      string       `bson:"_id"`
	Doc       doc.Document `bson:"doc"`
	UpdatedAt time.Time    `bson:"updated_at"`
}

// MongoStore is a MongoDB-backed document store for the hosted service.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// NewMongoStore connects to MongoDB and verifies the connection with a
// ping.
func NewMongoStore(ctx context.Context, cfg MongoConfig) (*MongoStore, error) {
	if cfg.Database == "" {
		cfg.Database = "flowedit"
	}
	if cfg.Collection == "" {
		cfg.Collection = "documents"
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	return &MongoStore{
		client: client,
		coll:   client.Database(cfg.Database).Collection(cfg.Collection),
	}, nil
}

// Load reads and normalizes the named document.
func (s *MongoStore) Load(ctx context.Context, name string) (doc.Document, error) {
	start := time.Now()
	d, err := s.load(ctx, name)
	observability.Store().OnLoad(ctx, name, time.Since(start), err)
	return d, err
}

func (s *MongoStore) load(ctx context.Context, name string) (doc.Document, error) {
	var stored mongoDocument
	err := s.coll.FindOne(ctx, bson.M{"_id": name}).Decode(&stored)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return doc.Document{}, ErrNotFound
	}
	if err != nil {
		return doc.Document{}, fmt.Errorf("mongo find: %w", err)
	}
	// BSON round-trips skip the JSON repair path, so normalize here.
	return doc.Normalize(stored.Doc), nil
}

// Save upserts the document under its name.
func (s *MongoStore) Save(ctx context.Context, name string, d doc.Document) error {
	start := time.Now()
	err := s.save(ctx, name, d)
	observability.Store().OnSave(ctx, name, 0, time.Since(start), err)
	return err
}

func (s *MongoStore) save(ctx context.Context, name string, d doc.Document) error {
	stored := mongoDocument{Name: name, Doc: d, UpdatedAt: time.Now().UTC()}
	_, err := s.coll.ReplaceOne(ctx, bson.M{"_id": name}, stored,
		options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("mongo replace: %w", err)
	}
	return nil
}

// Delete removes the named document.
func (s *MongoStore) Delete(ctx context.Context, name string) error {
	if _, err := s.coll.DeleteOne(ctx, bson.M{"_id": name}); err != nil {
		return fmt.Errorf("mongo delete: %w", err)
	}
	return nil
}

// List returns all stored document names.
func (s *MongoStore) List(ctx context.Context) ([]string, error) {
	values, err := s.coll.Distinct(ctx, "_id", bson.M{})
	if err != nil {
		return nil, fmt.Errorf("mongo distinct: %w", err)
	}
	names := make([]string, 0, len(values))
	for _, v := range values {
		if name, ok := v.(string); ok {
			names = append(names, name)
		}
	}
	return names, nil
}

// Close disconnects from MongoDB.
func (s *MongoStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

// Ensure MongoStore implements Store.
var _ Store = (*MongoStore)(nil)
