package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Connect opens a MongoDB client, verifies the connection, and returns the
// named database handle.
func Connect(ctx context.Context, uri, dbName string) (*mongo.Database, error) {
	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(pingCtx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(pingCtx, nil); err != nil {
		return nil, err
	}

	return client.Database(dbName), nil
}
