//go:build integration

// Package containers manages shared test containers for integration tests.
package containers

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	tcmongodb "github.com/testcontainers/testcontainers-go/modules/mongodb"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// MongoContainer wraps a testcontainers MongoDB instance with a connected
// client. One container is shared across test suites; Ryuk reclaims it when
// the test process exits.
type MongoContainer struct {
	Container testcontainers.Container
	URI       string
	Client    *mongo.Client
}

var (
	mongoOnce sync.Once
	mongoInst *MongoContainer
	mongoErr  error
)

// GetMongo returns the shared MongoDB container, starting it on first use.
func GetMongo(t *testing.T) *MongoContainer {
	t.Helper()

	mongoOnce.Do(func() {
		mongoInst, mongoErr = startMongo()
	})
	if mongoErr != nil {
		t.Fatalf("failed to start mongodb container: %v", mongoErr)
	}
	return mongoInst
}

func startMongo() (*MongoContainer, error) {
	ctx := context.Background()

	container, err := tcmongodb.Run(ctx, "mongo:7")
	if err != nil {
		return nil, err
	}

	uri, err := container.ConnectionString(ctx)
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, err
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, err
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		_ = container.Terminate(ctx)
		return nil, err
	}

	return &MongoContainer{Container: container, URI: uri, Client: client}, nil
}

// Database returns a handle to the named test database.
func (m *MongoContainer) Database(name string) *mongo.Database {
	return m.Client.Database(name)
}

// DropDatabase removes the named database. Use between suites for isolation.
func (m *MongoContainer) DropDatabase(ctx context.Context, name string) error {
	return m.Client.Database(name).Drop(ctx)
}
