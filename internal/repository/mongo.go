package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"fleet-scheduler/internal/config"
	"fleet-scheduler/internal/scheduler"
)

type snapshotDocument struct {
	Version int64     `bson:"_id"`
	SavedAt time.Time `bson:"saved_at"`
	Payload string    `bson:"payload"`
}

// MongoStore keeps one document per snapshot version.
type MongoStore struct {
	coll *mongo.Collection
}

// ConnectMongo opens a client and pings the primary.
func ConnectMongo(ctx context.Context, cfg config.Mongo) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongo: %w", err)
	}
	return client, nil
}

// NewMongoStore uses the given collection.
func NewMongoStore(coll *mongo.Collection) *MongoStore {
	return &MongoStore{coll: coll}
}

// Save inserts the snapshot. Saving a version twice is a no-op.
func (m *MongoStore) Save(ctx context.Context, snap scheduler.Snapshot) error {
	payload, err := scheduler.EncodeSnapshot(snap)
	if err != nil {
		return err
	}
	doc := snapshotDocument{Version: snap.Version, SavedAt: snap.SavedAt, Payload: string(payload)}
	if _, err := m.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil
		}
		return fmt.Errorf("insert snapshot v%d: %w", snap.Version, err)
	}
	return nil
}

// LoadLatest returns the document with the highest version.
func (m *MongoStore) LoadLatest(ctx context.Context) (scheduler.Snapshot, bool, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "_id", Value: -1}})

	var doc snapshotDocument
	if err := m.coll.FindOne(ctx, bson.M{}, opts).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return scheduler.Snapshot{}, false, nil
		}
		return scheduler.Snapshot{}, false, fmt.Errorf("find latest snapshot: %w", err)
	}
	snap, err := scheduler.DecodeSnapshot([]byte(doc.Payload))
	if err != nil {
		return scheduler.Snapshot{}, false, err
	}
	return snap, true, nil
}
