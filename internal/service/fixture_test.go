package service_test

import (
	"testing"

	"github.com/dom/vidtube/internal/repository"
	"github.com/dom/vidtube/internal/repository/mongodb"
	"github.com/dom/vidtube/internal/service"
	"github.com/dom/vidtube/internal/testutil"
)

type fixture struct {
	repos *repository.Repositories
	svc   *service.Services
	media *testutil.FakeMediaStore
}

// newFixture wires every service against a fresh MongoDB container.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	testDB := testutil.NewTestDB(t)
	repos := mongodb.NewRepositories(testDB.DB)
	store := testutil.NewFakeMediaStore()
	return &fixture{
		repos: repos,
		svc:   service.NewServices(repos, store, testutil.TestConfig()),
		media: store,
	}
}
