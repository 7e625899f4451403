package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/settleup/internal/auth"
	"github.com/mmynk/settleup/internal/cache"
	"github.com/mmynk/settleup/internal/events"
	"github.com/mmynk/settleup/internal/middleware"
	"github.com/mmynk/settleup/internal/models"
	"github.com/mmynk/settleup/internal/storage"
	"github.com/mmynk/settleup/internal/storage/sqldb"
	"github.com/mmynk/settleup/pkg/api"
	"github.com/mmynk/settleup/pkg/api/apiconnect"
)

const testSecret = "test-secret"

// countingStore counts debt reads so tests can tell cache hits from store hits.
type countingStore struct {
	storage.Store
	debtReads atomic.Int64
}

func (s *countingStore) ListDebts(ctx context.Context, groupID string) ([]*models.DebtRecord, error) {
	s.debtReads.Add(1)
	return s.Store.ListDebts(ctx, groupID)
}

// testServer is both services behind one httptest server, mounted the way
// cmd/server mounts them.
type testServer struct {
	groups      apiconnect.GroupServiceClient
	settlements apiconnect.SettlementServiceClient
	store       *countingStore
	cache       *cache.MemoryCache
	events      *events.RecordingPublisher
	jwt         *auth.JWTManager
}

func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	db, err := sqldb.OpenSQLite(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	store := &countingStore{Store: db}

	ts := &testServer{
		store:  store,
		cache:  cache.NewMemory(),
		events: &events.RecordingPublisher{},
		jwt:    auth.NewJWTManager(testSecret, time.Hour),
	}
	groupSvc := NewGroupService(store, ts.cache)
	settlementSvc := NewSettlementService(store, ts.cache, ts.events, Options{})

	interceptors := connect.WithInterceptors(middleware.OptionalAuth(ts.jwt), middleware.LoggingInterceptor())
	groupPath, groupHandler := apiconnect.NewGroupServiceHandler(groupSvc, interceptors)
	settlementPath, settlementHandler := apiconnect.NewSettlementServiceHandler(settlementSvc, interceptors)

	mux := http.NewServeMux()
	mux.Handle(groupPath, groupHandler)
	mux.Handle(settlementPath, settlementHandler)
	server := httptest.NewServer(mux)

	ts.groups = apiconnect.NewGroupServiceClient(http.DefaultClient, server.URL)
	ts.settlements = apiconnect.NewSettlementServiceClient(http.DefaultClient, server.URL)

	t.Cleanup(func() {
		server.Close()
		store.Close()
	})
	return ts
}

// createGroup creates a group and fails the test on error.
func (ts *testServer) createGroup(t *testing.T, name string, members ...string) *api.Group {
	t.Helper()
	resp, err := ts.groups.CreateGroup(context.Background(), connect.NewRequest(&api.CreateGroupRequest{
		Name:    name,
		Members: members,
	}))
	if err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}
	return resp.Msg.Group
}

// recordDebt records from -> to and fails the test on error.
func (ts *testServer) recordDebt(t *testing.T, groupID, from, to, amount, currency string) *api.Debt {
	t.Helper()
	resp, err := ts.groups.RecordDebt(context.Background(), connect.NewRequest(&api.RecordDebtRequest{
		GroupId:  groupID,
		From:     from,
		To:       to,
		Amount:   amount,
		Currency: currency,
	}))
	if err != nil {
		t.Fatalf("RecordDebt %s -> %s failed: %v", from, to, err)
	}
	return resp.Msg.Debt
}

// authed wraps msg in a request carrying a bearer token for userID.
func authed[T any](t *testing.T, ts *testServer, userID string, msg *T) *connect.Request[T] {
	t.Helper()
	token, err := ts.jwt.Generate(userID)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}
	req := connect.NewRequest(msg)
	req.Header().Set("Authorization", "Bearer "+token)
	return req
}

func assertCode(t *testing.T, err error, want connect.Code) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %v error, got nil", want)
	}
	if got := connect.CodeOf(err); got != want {
		t.Errorf("code: expected %v, got %v (%v)", want, got, err)
	}
}
