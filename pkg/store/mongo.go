package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"video-digest/pkg/domain"
)

// MongoStore implements SummaryStore on a MongoDB collection, as an
// alternative durable backend to the SQL-based ones.
type MongoStore struct {
	client     *mongo.Client
	collection *mongo.Collection
}

// NewMongoStore creates a Mongo-backed store for the given collection.
func NewMongoStore(connectionString, databaseName, collectionName string) (*MongoStore, error) {
	clientOptions := options.Client().ApplyURI(connectionString)
	client, err := mongo.Connect(context.Background(), clientOptions)
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	return &MongoStore{
		client:     client,
		collection: client.Database(databaseName).Collection(collectionName),
	}, nil
}

// Connect verifies connectivity and installs the unique index that backs the
// insert-only discipline.
func (s *MongoStore) Connect(ctx context.Context) error {
	if err := s.client.Ping(ctx, nil); err != nil {
		return fmt.Errorf("ping mongo: %w", err)
	}
	_, err := s.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "video_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("create video_id index: %w", err)
	}
	return nil
}

// Close disconnects from MongoDB.
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// Get returns the entry for videoID.
func (s *MongoStore) Get(ctx context.Context, videoID string) (domain.StoredSummary, error) {
	var entry domain.StoredSummary
	err := s.collection.FindOne(ctx, bson.M{"video_id": videoID}).Decode(&entry)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return domain.StoredSummary{}, ErrNotFound
	}
	if err != nil {
		return domain.StoredSummary{}, fmt.Errorf("get summary %s: %w", videoID, err)
	}
	entry.Summary.Normalize()
	return entry, nil
}

// Put inserts entry. The unique video_id index makes a racing duplicate
// insert fail, which is reported as ErrAlreadyExists.
func (s *MongoStore) Put(ctx context.Context, entry domain.StoredSummary, overwrite bool) error {
	if overwrite {
		opts := options.Replace().SetUpsert(true)
		if _, err := s.collection.ReplaceOne(ctx, bson.M{"video_id": entry.VideoID}, entry, opts); err != nil {
			return fmt.Errorf("replace summary %s: %w", entry.VideoID, err)
		}
		return nil
	}

	if _, err := s.collection.InsertOne(ctx, entry); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrAlreadyExists
		}
		return fmt.Errorf("insert summary %s: %w", entry.VideoID, err)
	}
	return nil
}

// Exists reports whether videoID has an entry.
func (s *MongoStore) Exists(ctx context.Context, videoID string) (bool, error) {
	count, err := s.collection.CountDocuments(ctx, bson.M{"video_id": videoID})
	if err != nil {
		return false, fmt.Errorf("check summary %s: %w", videoID, err)
	}
	return count > 0, nil
}

// ListWindow returns entries created within [from, to), oldest first.
func (s *MongoStore) ListWindow(ctx context.Context, from, to time.Time) ([]domain.StoredSummary, error) {
	filter := bson.M{"created_at": bson.M{"$gte": from, "$lt": to}}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})

	cursor, err := s.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("list summaries: %w", err)
	}
	defer cursor.Close(ctx)

	var entries []domain.StoredSummary
	for cursor.Next(ctx) {
		var entry domain.StoredSummary
		if err := cursor.Decode(&entry); err != nil {
			continue // skip undecodable documents
		}
		entry.Summary.Normalize()
		entries = append(entries, entry)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}
	return entries, nil
}
