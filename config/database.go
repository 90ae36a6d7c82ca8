package config

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

var (
	mongoClient *mongo.Client
	mongoDB     *mongo.Database
)

// InitDatabase connects to the document store, verifies the connection with a
// ping, and ensures the indexes the application relies on. It must complete
// before the server starts accepting traffic.
func InitDatabase(ctx context.Context) (*mongo.Database, error) {
	if mongoDB != nil {
		return mongoDB, nil
	}

	c := Get()

	client, err := mongo.Connect(ctx, options.Client().
		ApplyURI(c.MongoURI).
		SetConnectTimeout(10*time.Second))
	if err != nil {
		return nil, fmt.Errorf("connect mongodb: %w", err)
	}

	// Ping at boot so network/auth problems surface now rather than on the
	// first query.
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("mongodb ping failed: %w", err)
	}

	db := client.Database(c.MongoDB)

	// The unique email index is the source of truth for duplicate
	// registrations; the service-layer pre-check is only a fast path.
	_, err = db.Collection("users").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return nil, fmt.Errorf("ensure users.email index: %w", err)
	}

	_, err = db.Collection("posts").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "author", Value: 1}},
	})
	if err != nil {
		return nil, fmt.Errorf("ensure posts.author index: %w", err)
	}

	mongoClient = client
	mongoDB = db
	return db, nil
}

// CloseDatabase drains and closes the store connection during shutdown.
func CloseDatabase(ctx context.Context) error {
	if mongoClient == nil {
		return nil
	}
	err := mongoClient.Disconnect(ctx)
	mongoClient = nil
	mongoDB = nil
	return err
}
