package adapter

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-merchant-verify/internal/config"
	"github.com/MKhiriev/go-merchant-verify/internal/logger"
	"github.com/MKhiriev/go-merchant-verify/models"
)

var testUpgrader = websocket.Upgrader{}

func newTestDialer(t *testing.T, serverURL string, sessionCfg config.Session) SessionDialer {
	t.Helper()

	if sessionCfg.HeartbeatInterval == 0 {
		// Keep heartbeats out of the way unless a test drives them.
		sessionCfg.HeartbeatInterval = time.Minute
	}
	if sessionCfg.ReconnectMaxAttempts == 0 {
		sessionCfg.ReconnectMaxAttempts = 3
	}
	if sessionCfg.ReconnectBaseWait == 0 {
		sessionCfg.ReconnectBaseWait = time.Millisecond
	}

	d, err := NewSessionDialer(sessionCfg, config.Adapter{APIBaseURL: serverURL}, logger.Nop())
	require.NoError(t, err)
	return d
}

func watchStates() (StateChangeFunc, <-chan SessionState) {
	ch := make(chan SessionState, 32)
	return func(prev, next SessionState) { ch <- next }, ch
}

func awaitState(t *testing.T, states <-chan SessionState, want SessionState) {
	t.Helper()

	deadline := time.After(3 * time.Second)
	for {
		select {
		case st := <-states:
			if st == want {
				return
			}
		case <-deadline:
			t.Fatalf("timed out waiting for session state %q", want)
		}
	}
}

func recvEvent(t *testing.T, events <-chan models.VerificationEvent) models.VerificationEvent {
	t.Helper()

	select {
	case ev, ok := <-events:
		if !ok {
			t.Fatal("event channel closed while waiting for an event")
		}
		return ev
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for verification event")
	}
	return models.VerificationEvent{}
}

func awaitEventsClosed(t *testing.T, events <-chan models.VerificationEvent) {
	t.Helper()

	deadline := time.After(3 * time.Second)
	for {
		select {
		case _, ok := <-events:
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("timed out waiting for event channel to close")
		}
	}
}

// discardFrames keeps reading so gorilla answers client pings with pongs.
func discardFrames(conn *websocket.Conn) {
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func TestOpenSession_DeliversPushedEvents(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/ws/verification/req-1", r.URL.Path)
		assert.Equal(t, "tok-1", r.URL.Query().Get("token"))

		conn, err := testUpgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		assert.NoError(t, conn.WriteJSON(models.SocketFrame{
			RequestID: "req-1",
			Event:     models.EventApproved,
			Sequence:  1,
		}))
		discardFrames(conn)
	}))
	defer srv.Close()

	d := newTestDialer(t, srv.URL, config.Session{})
	sess, err := d.OpenSession(context.Background(), "req-1", "tok-1", nil)
	require.NoError(t, err)
	defer sess.Close()

	assert.Equal(t, SessionConnected, sess.State())

	ev := recvEvent(t, sess.Events())
	assert.Equal(t, "req-1", ev.RequestID)
	assert.Equal(t, models.EventApproved, ev.Kind)
	assert.Equal(t, uint64(1), ev.Sequence)
	assert.False(t, ev.OccurredAt.IsZero())
}

func TestOpenSession_DialFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no such request", http.StatusNotFound)
	}))
	defer srv.Close()

	onState, states := watchStates()
	d := newTestDialer(t, srv.URL, config.Session{})

	_, err := d.OpenSession(context.Background(), "req-1", "tok-1", onState)
	require.Error(t, err)

	awaitState(t, states, SessionConnecting)
	awaitState(t, states, SessionClosed)
}

func TestSession_DropsForeignAndUnknownFrames(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := testUpgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		// A frame for another request, a frame with an unknown kind, then a
		// valid one. Only the last must surface.
		assert.NoError(t, conn.WriteJSON(models.SocketFrame{RequestID: "req-other", Event: models.EventApproved, Sequence: 1}))
		assert.NoError(t, conn.WriteJSON(models.SocketFrame{RequestID: "req-1", Event: models.EventKind("mystery"), Sequence: 2}))
		assert.NoError(t, conn.WriteJSON(models.SocketFrame{RequestID: "req-1", Event: models.EventDenied, Sequence: 3}))
		discardFrames(conn)
	}))
	defer srv.Close()

	d := newTestDialer(t, srv.URL, config.Session{})
	sess, err := d.OpenSession(context.Background(), "req-1", "tok-1", nil)
	require.NoError(t, err)
	defer sess.Close()

	ev := recvEvent(t, sess.Events())
	assert.Equal(t, models.EventDenied, ev.Kind)
	assert.Equal(t, uint64(3), ev.Sequence)
}

func TestSession_ReconnectsAfterDrop(t *testing.T) {
	var mu sync.Mutex
	conns := 0

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := testUpgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}

		mu.Lock()
		conns++
		n := conns
		mu.Unlock()

		switch n {
		case 1:
			assert.NoError(t, conn.WriteJSON(models.SocketFrame{RequestID: "req-1", Event: models.EventChallengeIssued, Sequence: 1}))
			// Drop the connection without a close frame to simulate an
			// outage.
			_ = conn.Close()
		default:
			assert.NoError(t, conn.WriteJSON(models.SocketFrame{RequestID: "req-1", Event: models.EventApproved, Sequence: 2}))
			discardFrames(conn)
		}
	}))
	defer srv.Close()

	onState, states := watchStates()
	d := newTestDialer(t, srv.URL, config.Session{})
	sess, err := d.OpenSession(context.Background(), "req-1", "tok-1", onState)
	require.NoError(t, err)
	defer sess.Close()

	first := recvEvent(t, sess.Events())
	assert.Equal(t, models.EventChallengeIssued, first.Kind)

	awaitState(t, states, SessionDegraded)
	awaitState(t, states, SessionReconnecting)
	awaitState(t, states, SessionConnected)

	second := recvEvent(t, sess.Events())
	assert.Equal(t, models.EventApproved, second.Kind)
	assert.Equal(t, uint64(2), second.Sequence)
}

func TestSession_TransportErrorWhenReconnectExhausted(t *testing.T) {
	var mu sync.Mutex
	conns := 0

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		conns++
		n := conns
		mu.Unlock()

		if n > 1 {
			// Refuse re-upgrades so every reconnection attempt fails.
			http.Error(w, "gone", http.StatusGone)
			return
		}

		conn, err := testUpgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		_ = conn.Close()
	}))
	defer srv.Close()

	d := newTestDialer(t, srv.URL, config.Session{ReconnectMaxAttempts: 2, ReconnectBaseWait: time.Millisecond})
	sess, err := d.OpenSession(context.Background(), "req-1", "tok-1", nil)
	require.NoError(t, err)

	ev := recvEvent(t, sess.Events())
	assert.Equal(t, models.EventTransportError, ev.Kind)
	require.Error(t, ev.Err)
	assert.True(t, errors.Is(ev.Err, ErrSessionClosed))

	awaitEventsClosed(t, sess.Events())
	assert.Equal(t, SessionClosed, sess.State())

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 3, conns, "one original connection plus two reconnect attempts")
}

func TestSession_CloseStopsEvents(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := testUpgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		discardFrames(conn)
	}))
	defer srv.Close()

	d := newTestDialer(t, srv.URL, config.Session{})
	sess, err := d.OpenSession(context.Background(), "req-1", "tok-1", nil)
	require.NoError(t, err)

	require.NoError(t, sess.Close())
	assert.Equal(t, SessionClosed, sess.State())
	awaitEventsClosed(t, sess.Events())

	// Closing twice is a no-op.
	require.NoError(t, sess.Close())
}

func TestSession_HeartbeatTimeoutTriggersReconnect(t *testing.T) {
	release := make(chan struct{})
	var mu sync.Mutex
	conns := 0

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := testUpgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		mu.Lock()
		conns++
		n := conns
		mu.Unlock()

		if n == 1 {
			// Never read, so client pings get no pong and the read deadline
			// fires client-side.
			<-release
			return
		}
		discardFrames(conn)
	}))
	defer srv.Close()
	defer close(release)

	onState, states := watchStates()
	d := newTestDialer(t, srv.URL, config.Session{
		HeartbeatInterval: 20 * time.Millisecond,
	})
	sess, err := d.OpenSession(context.Background(), "req-1", "tok-1", onState)
	require.NoError(t, err)
	defer sess.Close()

	awaitState(t, states, SessionDegraded)
	awaitState(t, states, SessionReconnecting)
	awaitState(t, states, SessionConnected)
}
