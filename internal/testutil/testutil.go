package testutil

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/dom/vidtube/internal/api"
	"github.com/dom/vidtube/internal/config"
	"github.com/dom/vidtube/internal/pipeline"
	"github.com/dom/vidtube/internal/repository"
	repoMongo "github.com/dom/vidtube/internal/repository/mongodb"
	"github.com/dom/vidtube/internal/service"
	"github.com/testcontainers/testcontainers-go"
	tcMongo "github.com/testcontainers/testcontainers-go/modules/mongodb"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// TestDB manages a testcontainers MongoDB instance
type TestDB struct {
	Container testcontainers.Container
	Client    *mongo.Client
	DB        *mongo.Database
	URI       string
}

// NewTestDB starts a MongoDB container with the application indexes in place.
// It is skipped under -short.
func NewTestDB(t *testing.T) *TestDB {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()

	container, err := tcMongo.Run(ctx, "mongo:7")
	if err != nil {
		t.Fatalf("failed to start mongo container: %v", err)
	}

	uri, err := container.ConnectionString(ctx)
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	connectCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(uri))
	if err != nil {
		t.Fatalf("failed to connect to mongo: %v", err)
	}
	db := client.Database("vidtube_test")

	if err := repoMongo.EnsureIndexes(connectCtx, db); err != nil {
		t.Fatalf("failed to create indexes: %v", err)
	}

	testDB := &TestDB{
		Container: container,
		Client:    client,
		DB:        db,
		URI:       uri,
	}

	t.Cleanup(func() {
		testDB.Cleanup()
	})

	return testDB
}

// Cleanup disconnects and terminates the container
func (tdb *TestDB) Cleanup() {
	ctx := context.Background()
	if tdb.Client != nil {
		_ = tdb.Client.Disconnect(ctx)
	}
	if tdb.Container != nil {
		_ = tdb.Container.Terminate(ctx)
	}
}

// Truncate empties every collection but keeps the indexes
func (tdb *TestDB) Truncate(t *testing.T) {
	t.Helper()

	collections := []string{
		pipeline.Users,
		pipeline.Videos,
		pipeline.Playlists,
		pipeline.Tweets,
		pipeline.Subscriptions,
	}

	for _, coll := range collections {
		if _, err := tdb.DB.Collection(coll).DeleteMany(context.Background(), bson.D{}); err != nil {
			t.Logf("warning: failed to truncate %s: %v", coll, err)
		}
	}
}

// TestConfig returns a configuration suitable for testing
func TestConfig() *config.Config {
	return &config.Config{
		Port:               "0",
		Environment:        "test",
		CORSOrigin:         "*",
		MongoDatabase:      "vidtube_test",
		AccessTokenSecret:  "test-access-secret-for-testing-only",
		AccessTokenExpiry:  time.Hour,
		RefreshTokenSecret: "test-refresh-secret-for-testing-only",
		RefreshTokenExpiry: 24 * time.Hour,
		BcryptCost:         4,
		UploadDir:          os.TempDir(),
		MaxUploadBytes:     10 << 20,
		ObjectStore:        config.ObjectStoreConfig{Bucket: "test-media"},
		AuthRateLimit:      1000,
	}
}

// DiscardLogger is a logger that writes nowhere
func DiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// TestServer holds all components for integration testing
type TestServer struct {
	Server   *httptest.Server
	DB       *TestDB
	Repos    *repository.Repositories
	Services *service.Services
	Media    *FakeMediaStore
	Config   *config.Config
}

// NewTestServer creates a complete test server backed by a MongoDB container
// and an in-memory media store.
func NewTestServer(t *testing.T) *TestServer {
	t.Helper()

	testDB := NewTestDB(t)
	cfg := TestConfig()
	cfg.UploadDir = t.TempDir()

	repos := repoMongo.NewRepositories(testDB.DB)
	store := NewFakeMediaStore()
	services := service.NewServices(repos, store, cfg)
	router := api.NewRouter(services, cfg, DiscardLogger())

	server := httptest.NewServer(router)

	ts := &TestServer{
		Server:   server,
		DB:       testDB,
		Repos:    repos,
		Services: services,
		Media:    store,
		Config:   cfg,
	}

	t.Cleanup(func() {
		server.Close()
	})

	return ts
}

// BaseURL returns the test server's base URL
func (ts *TestServer) BaseURL() string {
	return ts.Server.URL
}

// APIURL returns the full API URL for a given path
func (ts *TestServer) APIURL(path string) string {
	return fmt.Sprintf("%s/api/v1%s", ts.Server.URL, path)
}
