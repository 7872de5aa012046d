package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/aretw0/matrixdeck/pkg/domain"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeNav struct {
	mu    sync.Mutex
	pos   int
	total int
}

func (f *fakeNav) snap() domain.Snapshot {
	return domain.NewSnapshot("test", f.pos, f.total, "")
}

func (f *fakeNav) Snapshot(ctx context.Context) (domain.Snapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.snap(), nil
}

func (f *fakeNav) Advance(ctx context.Context) (domain.Snapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.pos < f.total {
		f.pos++
	}
	return f.snap(), nil
}

func (f *fakeNav) Retreat(ctx context.Context) (domain.Snapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.pos > 1 {
		f.pos--
	}
	return f.snap(), nil
}

func (f *fakeNav) GoTo(ctx context.Context, n int) (domain.Snapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if n < 1 || n > f.total {
		return f.snap(), &domain.InvalidSlideIndexError{Requested: n, Total: f.total}
	}
	f.pos = n
	return f.snap(), nil
}

func do(t *testing.T, h http.Handler, method, path string) (*httptest.ResponseRecorder, domain.Snapshot) {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	var snap domain.Snapshot
	if w.Code == http.StatusOK && strings.HasPrefix(path, "/api") {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &snap))
	}
	return w, snap
}

func TestServer_Navigation(t *testing.T) {
	srv := NewServer(&fakeNav{pos: 1, total: 3})
	h := srv.Handler()

	w, snap := do(t, h, http.MethodGet, "/api/state")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "1 / 3", snap.Counter)
	assert.False(t, snap.PreviousEnabled)
	assert.True(t, snap.TitleActive)

	_, snap = do(t, h, http.MethodPost, "/api/next")
	assert.Equal(t, 2, snap.Position)

	_, snap = do(t, h, http.MethodPost, "/api/goto/3")
	assert.Equal(t, 3, snap.Position)
	assert.False(t, snap.NextEnabled)

	// Advancing past the end is a no-op, not an error.
	w, snap = do(t, h, http.MethodPost, "/api/next")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 3, snap.Position)

	_, snap = do(t, h, http.MethodPost, "/api/prev")
	assert.Equal(t, 2, snap.Position)
}

func TestServer_GoToRejectsInvalid(t *testing.T) {
	srv := NewServer(&fakeNav{pos: 2, total: 3})
	h := srv.Handler()

	for _, path := range []string{"/api/goto/0", "/api/goto/4", "/api/goto/abc"} {
		t.Run(path, func(t *testing.T) {
			w, _ := do(t, h, http.MethodPost, path)
			assert.Equal(t, http.StatusBadRequest, w.Code)

			var body errorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.NotEmpty(t, body.Error)
		})
	}

	_, snap := do(t, h, http.MethodGet, "/api/state")
	assert.Equal(t, 2, snap.Position, "rejected jumps must not move")
}

func TestServer_MethodNotAllowed(t *testing.T) {
	h := NewServer(&fakeNav{pos: 1, total: 3}).Handler()
	w, _ := do(t, h, http.MethodGet, "/api/next")
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestServer_HealthAndMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := prometheus.NewCounter(prometheus.CounterOpts{Name: "matrixdeck_test_total", Help: "test"})
	reg.MustRegister(c)
	c.Inc()

	h := NewServer(&fakeNav{pos: 1, total: 1}, WithGatherer(reg)).Handler()

	w, _ := do(t, h, http.MethodGet, "/healthz")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())

	w, _ = do(t, h, http.MethodGet, "/metrics")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "matrixdeck_test_total 1")
}

func TestServer_NoMetricsWithoutGatherer(t *testing.T) {
	h := NewServer(&fakeNav{pos: 1, total: 1}).Handler()
	w, _ := do(t, h, http.MethodGet, "/metrics")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestServer_CORS(t *testing.T) {
	h := NewServer(&fakeNav{pos: 1, total: 1}, WithAllowAllOrigins(true)).Handler()

	req := httptest.NewRequest(http.MethodGet, "/api/state", nil)
	req.Header.Set("Origin", "http://phone.example")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestServer_Stream(t *testing.T) {
	srv := NewServer(&fakeNav{pos: 1, total: 3})
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/api/stream"
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()
	assert.Equal(t, http.StatusSwitchingProtocols, resp.StatusCode)

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))

	var first domain.Snapshot
	require.NoError(t, conn.ReadJSON(&first))
	assert.Equal(t, 1, first.Position)

	// The initial snapshot is written after Subscribe, so the subscriber is registered.
	require.Equal(t, 1, srv.Streams.Len())

	srv.Publish(domain.NewSnapshot("test", 2, 3, "Two"))

	var next domain.Snapshot
	require.NoError(t, conn.ReadJSON(&next))
	assert.Equal(t, 2, next.Position)
	assert.Equal(t, "Two", next.SlideTitle)
}

func TestServer_StreamClosedOnShutdown(t *testing.T) {
	srv := NewServer(&fakeNav{pos: 1, total: 3})
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/api/stream"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var first domain.Snapshot
	require.NoError(t, conn.ReadJSON(&first))

	srv.Streams.Close()

	_, _, err = conn.ReadMessage()
	require.Error(t, err)
	assert.True(t, websocket.IsCloseError(err, websocket.CloseGoingAway))
}

func TestStreamManager_DropsWhenFull(t *testing.T) {
	sm := NewStreamManager(NewServer(&fakeNav{}).logger)
	ch, cancel := sm.Subscribe()
	defer cancel()

	for i := 0; i < streamBuffer+5; i++ {
		sm.Broadcast([]byte("x"))
	}
	assert.Len(t, ch, streamBuffer)

	cancel()
	assert.Equal(t, 0, sm.Len())
}

func TestStreamManager_SubscribeAfterClose(t *testing.T) {
	sm := NewStreamManager(NewServer(&fakeNav{}).logger)
	sm.Close()

	ch, cancel := sm.Subscribe()
	defer cancel()
	_, ok := <-ch
	assert.False(t, ok)
}

func TestServer_StreamOrigin(t *testing.T) {
	tests := []struct {
		name     string
		allowAll bool
		origin   string
		ok       bool
	}{
		{name: "no origin", origin: "", ok: true},
		{name: "localhost", origin: "http://localhost:3000", ok: true},
		{name: "loopback", origin: "http://127.0.0.1:8080", ok: true},
		{name: "foreign", origin: "http://evil.example", ok: false},
		{name: "lookalike", origin: "http://localhost:3000.evil.example", ok: false},
		{name: "foreign allowed", allowAll: true, origin: "http://evil.example", ok: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := NewServer(&fakeNav{pos: 1, total: 3}, WithAllowAllOrigins(tt.allowAll))
			ts := httptest.NewServer(srv.Handler())
			defer ts.Close()

			header := http.Header{}
			if tt.origin != "" {
				header.Set("Origin", tt.origin)
			}
			wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/api/stream"
			conn, resp, err := websocket.DefaultDialer.Dial(wsURL, header)
			if tt.ok {
				require.NoError(t, err)
				conn.Close()
				return
			}
			require.ErrorIs(t, err, websocket.ErrBadHandshake)
			require.NotNil(t, resp)
			assert.Equal(t, http.StatusForbidden, resp.StatusCode)
		})
	}
}
