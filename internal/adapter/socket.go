// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sethvargo/go-retry"

	"github.com/MKhiriev/go-merchant-verify/internal/config"
	"github.com/MKhiriev/go-merchant-verify/internal/logger"
	"github.com/MKhiriev/go-merchant-verify/models"
)

const (
	defaultHeartbeatInterval    = 25 * time.Second
	defaultReconnectMaxAttempts = 10 // total attempts per outage, the first one included
	defaultReconnectBaseWait    = 500 * time.Millisecond

	// reconnectMaxWait caps the exponential backoff between reconnection
	// attempts.
	reconnectMaxWait = 8 * time.Second

	// writeTimeout bounds control-frame writes (pings, the close frame).
	writeTimeout = 5 * time.Second

	// eventBuffer is the capacity of the session's event channel. Pushes
	// beyond it block the read loop until the consumer catches up.
	eventBuffer = 16
)

type sessionDialer struct {
	baseURL string

	heartbeatInterval    time.Duration
	reconnectMaxAttempts int
	reconnectBaseWait    time.Duration

	logger *logger.Logger
}

// NewSessionDialer constructs the gorilla/websocket implementation of
// [SessionDialer]. The socket endpoint is derived from the same base URL the
// HTTP adapter uses, with the scheme switched to ws or wss.
//
// Returns an error if adapterCfg.APIBaseURL is empty or cannot be parsed as
// a valid URL.
func NewSessionDialer(sessionCfg config.Session, adapterCfg config.Adapter, logger *logger.Logger) (SessionDialer, error) {
	baseURL, err := normalizeBaseURL(adapterCfg.APIBaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter api base url: %w", err)
	}

	heartbeat := sessionCfg.HeartbeatInterval
	if heartbeat <= 0 {
		heartbeat = defaultHeartbeatInterval
	}
	attempts := sessionCfg.ReconnectMaxAttempts
	if attempts <= 0 {
		attempts = defaultReconnectMaxAttempts
	}
	baseWait := sessionCfg.ReconnectBaseWait
	if baseWait <= 0 {
		baseWait = defaultReconnectBaseWait
	}

	return &sessionDialer{
		baseURL:              baseURL,
		heartbeatInterval:    heartbeat,
		reconnectMaxAttempts: attempts,
		reconnectBaseWait:    baseWait,
		logger:               logger,
	}, nil
}

// OpenSession implements [SessionDialer]. It dials
// ws(s)://<api host>/ws/verification/{request_id}?token= once; on success
// the session's read and heartbeat loops start and the session takes over
// reconnection for later outages.
func (d *sessionDialer) OpenSession(ctx context.Context, requestID, token string, onStateChange StateChangeFunc) (Session, error) {
	socketURL, err := verificationSocketURL(d.baseURL, requestID, token)
	if err != nil {
		return nil, err
	}

	s := &verificationSession{
		requestID:            requestID,
		socketURL:            socketURL,
		heartbeatInterval:    d.heartbeatInterval,
		reconnectMaxAttempts: d.reconnectMaxAttempts,
		reconnectBaseWait:    d.reconnectBaseWait,
		onStateChange:        onStateChange,
		state:                SessionDisconnected,
		events:               make(chan models.VerificationEvent, eventBuffer),
		done:                 make(chan struct{}),
		logger:               d.logger,
	}

	runCtx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel

	s.setState(SessionConnecting)
	conn, err := s.dial(ctx)
	if err != nil {
		cancel()
		s.setState(SessionClosed)
		return nil, err
	}
	s.conn = conn
	s.setState(SessionConnected)

	go s.run(runCtx)
	return s, nil
}

// verificationSocketURL builds the socket endpoint for one verification
// request. The bearer token travels as a query parameter because browser
// and desktop WebSocket stacks cannot set an Authorization header reliably.
func verificationSocketURL(baseURL, requestID, token string) (string, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("parse socket base url: %w", err)
	}

	switch u.Scheme {
	case "http", "ws":
		u.Scheme = "ws"
	case "https", "wss":
		u.Scheme = "wss"
	default:
		return "", fmt.Errorf("unsupported socket scheme %q", u.Scheme)
	}

	u.Path = strings.TrimRight(u.Path, "/") + "/ws/verification/" + url.PathEscape(requestID)

	query := u.Query()
	query.Set("token", token)
	u.RawQuery = query.Encode()

	return u.String(), nil
}

// verificationSession is the gorilla/websocket implementation of [Session].
//
// One goroutine (run) owns the connection lifecycle: it reads frames,
// restarts the connection after transport errors, and closes the event
// channel exactly once on the way out. A second, short-lived goroutine per
// connection writes heartbeat pings. Pong arrival is enforced through the
// read deadline, so a silent peer surfaces as a read error within twice the
// heartbeat interval.
type verificationSession struct {
	requestID string
	socketURL string

	heartbeatInterval    time.Duration
	reconnectMaxAttempts int
	reconnectBaseWait    time.Duration

	onStateChange StateChangeFunc

	mu    sync.Mutex
	conn  *websocket.Conn
	state SessionState

	events chan models.VerificationEvent
	cancel context.CancelFunc
	done   chan struct{}

	closeOnce sync.Once

	logger *logger.Logger
}

// Events implements [Session].
func (s *verificationSession) Events() <-chan models.VerificationEvent {
	return s.events
}

// State implements [Session].
func (s *verificationSession) State() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Close implements [Session]. It cancels the session's goroutines, sends a
// close frame on a best-effort basis, and waits until the run loop has
// finished, so no event is delivered after Close returns.
func (s *verificationSession) Close() error {
	s.closeOnce.Do(func() {
		s.cancel()

		s.mu.Lock()
		if s.conn != nil {
			_ = s.conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(writeTimeout))
			_ = s.conn.Close()
		}
		s.mu.Unlock()

		<-s.done
	})
	return nil
}

func (s *verificationSession) run(ctx context.Context) {
	defer close(s.done)
	defer s.setState(SessionClosed)
	defer close(s.events)

	for {
		s.mu.Lock()
		conn := s.conn
		s.mu.Unlock()

		err := s.readLoop(ctx, conn)
		_ = conn.Close()
		if ctx.Err() != nil {
			return
		}

		s.logger.Warn().
			Str("func", "run").
			Str("request_id", s.requestID).
			Err(err).
			Msg("verification socket dropped")

		s.setState(SessionDegraded)
		s.setState(SessionReconnecting)

		if rerr := s.redial(ctx); rerr != nil {
			if ctx.Err() == nil {
				s.deliver(ctx, models.VerificationEvent{
					RequestID:  s.requestID,
					Kind:       models.EventTransportError,
					OccurredAt: time.Now(),
					Err:        fmt.Errorf("%w: %v", ErrSessionClosed, rerr),
				})
			}
			return
		}
		s.setState(SessionConnected)
	}
}

// readLoop consumes frames from one connection until it fails or the
// session is cancelled. Liveness is enforced through the read deadline:
// every pong or data frame pushes it out by twice the heartbeat interval.
func (s *verificationSession) readLoop(ctx context.Context, conn *websocket.Conn) error {
	pongWait := 2 * s.heartbeatInterval
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	heartbeatDone := make(chan struct{})
	defer close(heartbeatDone)
	go s.heartbeat(ctx, conn, heartbeatDone)

	for {
		var frame models.SocketFrame
		if err := conn.ReadJSON(&frame); err != nil {
			return err
		}
		_ = conn.SetReadDeadline(time.Now().Add(pongWait))

		event, ok := s.frameToEvent(frame)
		if !ok {
			continue
		}
		s.deliver(ctx, event)
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
}

func (s *verificationSession) heartbeat(ctx context.Context, conn *websocket.Conn, done <-chan struct{}) {
	ticker := time.NewTicker(s.heartbeatInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			deadline := time.Now().Add(writeTimeout)
			if err := conn.WriteControl(websocket.PingMessage, nil, deadline); err != nil {
				// The read loop notices the dead connection through its
				// deadline; nothing to do here.
				return
			}
		case <-done:
			return
		case <-ctx.Done():
			return
		}
	}
}

// redial re-establishes the connection with capped exponential backoff and
// jitter. All attempts exhausted or the context cancelled ends the session.
func (s *verificationSession) redial(ctx context.Context) error {
	backoff := retry.NewExponential(s.reconnectBaseWait)
	backoff = retry.WithCappedDuration(reconnectMaxWait, backoff)
	backoff = retry.WithJitter(s.reconnectBaseWait/2, backoff)
	backoff = retry.WithMaxRetries(uint64(s.reconnectMaxAttempts-1), backoff)

	attempt := 0
	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempt++

		conn, err := s.dial(ctx)
		if err != nil {
			s.logger.Warn().
				Str("func", "redial").
				Str("request_id", s.requestID).
				Int("attempt", attempt).
				Err(err).
				Msg("verification socket reconnect failed")
			return retry.RetryableError(err)
		}

		s.mu.Lock()
		if ctx.Err() != nil {
			s.mu.Unlock()
			_ = conn.Close()
			return ctx.Err()
		}
		s.conn = conn
		s.mu.Unlock()

		s.logger.Info().
			Str("func", "redial").
			Str("request_id", s.requestID).
			Int("attempt", attempt).
			Msg("verification socket reconnected")
		return nil
	})
}

func (s *verificationSession) dial(ctx context.Context) (*websocket.Conn, error) {
	conn, resp, err := websocket.DefaultDialer.DialContext(ctx, s.socketURL, nil)
	if err != nil {
		if resp != nil && resp.Body != nil {
			_ = resp.Body.Close()
		}
		return nil, fmt.Errorf("dial verification socket: %w", err)
	}
	return conn, nil
}

// frameToEvent validates a pushed frame and converts it to an event.
// Frames for another request or with an unknown kind are dropped.
func (s *verificationSession) frameToEvent(frame models.SocketFrame) (models.VerificationEvent, bool) {
	if frame.RequestID != "" && frame.RequestID != s.requestID {
		s.logger.Warn().
			Str("func", "frameToEvent").
			Str("request_id", s.requestID).
			Str("frame_request_id", frame.RequestID).
			Msg("dropping frame for foreign request")
		return models.VerificationEvent{}, false
	}

	switch frame.Event {
	case models.EventChallengeIssued, models.EventApproved, models.EventDenied, models.EventExpired:
	default:
		s.logger.Warn().
			Str("func", "frameToEvent").
			Str("request_id", s.requestID).
			Str("event", string(frame.Event)).
			Msg("dropping frame with unknown event kind")
		return models.VerificationEvent{}, false
	}

	return models.VerificationEvent{
		RequestID:  s.requestID,
		Kind:       frame.Event,
		Sequence:   frame.Sequence,
		OccurredAt: time.Now(),
	}, true
}

func (s *verificationSession) deliver(ctx context.Context, event models.VerificationEvent) {
	select {
	case s.events <- event:
	case <-ctx.Done():
	}
}

func (s *verificationSession) setState(next SessionState) {
	s.mu.Lock()
	prev := s.state
	if prev == next {
		s.mu.Unlock()
		return
	}
	s.state = next
	s.mu.Unlock()

	s.logger.Debug().
		Str("func", "setState").
		Str("request_id", s.requestID).
		Str("prev", string(prev)).
		Str("next", string(next)).
		Msg("verification session state changed")

	if s.onStateChange != nil {
		s.onStateChange(prev, next)
	}
}
