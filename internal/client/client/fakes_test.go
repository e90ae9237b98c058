package client

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/eventhub/internal/api"
	"github.com/dmitrijs2005/eventhub/internal/client/models"
	"github.com/dmitrijs2005/eventhub/internal/common"
	"github.com/dmitrijs2005/eventhub/internal/logging"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
)

type memStorage struct {
	mu     sync.Mutex
	items  map[string]string
	getErr error
}

func newMemStorage() *memStorage { return &memStorage{items: map[string]string{}} }

func (m *memStorage) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return "", false, m.getErr
	}
	v, ok := m.items[key]
	return v, ok, nil
}

func (m *memStorage) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[key] = value
	return nil
}

func (m *memStorage) Remove(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items, key)
	return nil
}

// fakeAPI implements the calls the tests exercise; the embedded interface
// panics on anything else.
type fakeAPI struct {
	api.EventHubClient

	refreshReq  *api.RefreshSessionRequest
	refreshResp *api.RefreshSessionResponse
	refreshErr  error

	pingResp *api.PingResponse
	pingErr  error

	signInResp *api.SignInResponse
	signInErr  error

	signOutReq *api.SignOutRequest
	signOutErr error

	getUserResp *api.GetUserResponse
	getUserErr  error

	profileReq  *api.GetProfileRequest
	profileResp *api.GetProfileResponse
	profileErr  error

	listEventsReq  *api.ListEventsRequest
	listEventsResp *api.ListEventsResponse

	uploadReq  *api.CreateImageUploadRequest
	uploadResp *api.CreateImageUploadResponse
	uploadErr  error
}

func (f *fakeAPI) RefreshSession(_ context.Context, in *api.RefreshSessionRequest, _ ...grpc.CallOption) (*api.RefreshSessionResponse, error) {
	f.refreshReq = in
	return f.refreshResp, f.refreshErr
}

func (f *fakeAPI) Ping(context.Context, *api.PingRequest, ...grpc.CallOption) (*api.PingResponse, error) {
	return f.pingResp, f.pingErr
}

func (f *fakeAPI) SignIn(context.Context, *api.SignInRequest, ...grpc.CallOption) (*api.SignInResponse, error) {
	return f.signInResp, f.signInErr
}

func (f *fakeAPI) SignOut(_ context.Context, in *api.SignOutRequest, _ ...grpc.CallOption) (*api.SignOutResponse, error) {
	f.signOutReq = in
	return &api.SignOutResponse{}, f.signOutErr
}

func (f *fakeAPI) GetUser(context.Context, *api.GetUserRequest, ...grpc.CallOption) (*api.GetUserResponse, error) {
	return f.getUserResp, f.getUserErr
}

func (f *fakeAPI) GetProfile(_ context.Context, in *api.GetProfileRequest, _ ...grpc.CallOption) (*api.GetProfileResponse, error) {
	f.profileReq = in
	return f.profileResp, f.profileErr
}

func (f *fakeAPI) ListEvents(_ context.Context, in *api.ListEventsRequest, _ ...grpc.CallOption) (*api.ListEventsResponse, error) {
	f.listEventsReq = in
	return f.listEventsResp, nil
}

func (f *fakeAPI) CreateImageUpload(_ context.Context, in *api.CreateImageUploadRequest, _ ...grpc.CallOption) (*api.CreateImageUploadResponse, error) {
	f.uploadReq = in
	return f.uploadResp, f.uploadErr
}

func newTestClient(f *fakeAPI, st *memStorage) *GRPCClient {
	return &GRPCClient{
		client:  f,
		storage: st,
		logger:  logging.Nop(),
		hub:     newAuthHub(),
	}
}

func storeSession(t *testing.T, st *memStorage, s *models.Session) {
	t.Helper()
	raw, err := json.Marshal(s)
	require.NoError(t, err)
	require.NoError(t, st.Set(context.Background(), common.SessionStorageKey, string(raw)))
}

func storedSession(t *testing.T, st *memStorage) *models.Session {
	t.Helper()
	raw, ok, err := st.Get(context.Background(), common.SessionStorageKey)
	require.NoError(t, err)
	if !ok {
		return nil
	}
	var s models.Session
	require.NoError(t, json.Unmarshal([]byte(raw), &s))
	return &s
}

// recordEvents subscribes to c and returns a channel of delivered events.
func recordEvents(t *testing.T, c *GRPCClient) <-chan models.AuthEvent {
	ch := make(chan models.AuthEvent, 16)
	unsubscribe := c.SubscribeAuthStateChanges(func(ev models.AuthEvent) { ch <- ev })
	t.Cleanup(unsubscribe)
	return ch
}

func nextEvent(t *testing.T, ch <-chan models.AuthEvent) models.AuthEvent {
	t.Helper()
	select {
	case ev := <-ch:
		return ev
	case <-time.After(2 * time.Second):
		t.Fatal("no auth event delivered")
		return models.AuthEvent{}
	}
}

func noEvent(t *testing.T, ch <-chan models.AuthEvent) {
	t.Helper()
	select {
	case ev := <-ch:
		t.Fatalf("unexpected auth event %v", ev.Type)
	case <-time.After(100 * time.Millisecond):
	}
}
