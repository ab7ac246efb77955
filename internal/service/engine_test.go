// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/MKhiriev/go-merchant-verify/internal/adapter"
	"github.com/MKhiriev/go-merchant-verify/internal/config"
	"github.com/MKhiriev/go-merchant-verify/internal/crypto"
	"github.com/MKhiriev/go-merchant-verify/internal/logger"
	"github.com/MKhiriev/go-merchant-verify/internal/mock"
	"github.com/MKhiriev/go-merchant-verify/internal/validators"
	"github.com/MKhiriev/go-merchant-verify/internal/vault"
	"github.com/MKhiriev/go-merchant-verify/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// fakeClock — управляемые часы: advance двигает время и «зажигает» все
// выданные таймеры, поэтому тесты не спят.
type fakeClock struct {
	mu    sync.Mutex
	now   time.Time
	after []chan time.Time
}

func newFakeClock(start time.Time) *fakeClock {
	return &fakeClock{now: start}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) After(time.Duration) <-chan time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	ch := make(chan time.Time, 1)
	c.after = append(c.after, ch)
	return ch
}

// pendingTimers reports how many After channels have been handed out and not
// yet fired.
func (c *fakeClock) pendingTimers() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.after)
}

// advance moves the clock by d and fires every timer handed out so far.
func (c *fakeClock) advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	now := c.now
	fired := c.after
	c.after = nil
	c.mu.Unlock()

	for _, ch := range fired {
		ch <- now
	}
}

// fakeSession is a channel-driven verification session the test pushes
// events into.
type fakeSession struct {
	events chan models.VerificationEvent

	mu     sync.Mutex
	closed bool
}

func newFakeSession() *fakeSession {
	return &fakeSession{events: make(chan models.VerificationEvent, 8)}
}

func (s *fakeSession) Events() <-chan models.VerificationEvent { return s.events }

func (s *fakeSession) State() adapter.SessionState { return adapter.SessionConnected }

func (s *fakeSession) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

func (s *fakeSession) isClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

func (s *fakeSession) push(ev models.VerificationEvent) {
	s.events <- ev
}

// fakeDialer hands out fakeSessions and captures the state-change callbacks
// so tests can simulate reconnects.
type fakeDialer struct {
	mu        sync.Mutex
	err       error
	sessions  []*fakeSession
	callbacks []adapter.StateChangeFunc
}

func (d *fakeDialer) OpenSession(_ context.Context, _, _ string, onStateChange adapter.StateChangeFunc) (adapter.Session, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.err != nil {
		return nil, d.err
	}
	s := newFakeSession()
	d.sessions = append(d.sessions, s)
	d.callbacks = append(d.callbacks, onStateChange)
	return s, nil
}

func (d *fakeDialer) session(i int) *fakeSession {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.sessions[i]
}

func (d *fakeDialer) callback(i int) adapter.StateChangeFunc {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.callbacks[i]
}

// memSecretStore is an in-memory vault.SecretStore safe for concurrent use.
type memSecretStore struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMemSecretStore() *memSecretStore {
	return &memSecretStore{data: map[string][]byte{}}
}

func (m *memSecretStore) Put(key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := make([]byte, len(value))
	copy(cp, value)
	m.data[key] = cp
	return nil
}

func (m *memSecretStore) Get(key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	value, ok := m.data[key]
	if !ok {
		return nil, vault.ErrSecretNotFound
	}
	return value, nil
}

func (m *memSecretStore) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

// signedToken выпускает компактный HS256 токен с заданным exp.
func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "merchant-verify-client",
		ExpiresAt: jwt.NewNumericDate(exp),
	})
	signed, err := token.SignedString([]byte("test-signing-key"))
	require.NoError(t, err)
	return signed
}

type engineFixture struct {
	engine  *verificationEngine
	api     *mock.MockApiClient
	dialer  *fakeDialer
	clock   *fakeClock
	vault   *vault.Session
	history *mock.MockHistoryRepository
}

// newEngineFixture — хелпер для сборки движка с моками адаптера и истории,
// фальшивыми часами и настоящим vault поверх памяти.
func newEngineFixture(t *testing.T, ctrl *gomock.Controller) *engineFixture {
	t.Helper()

	cipher := crypto.NewCipherService()
	vaultSession, err := vault.Open(newMemSecretStore(), cipher, 1)
	require.NoError(t, err)
	t.Cleanup(vaultSession.Close)

	f := &engineFixture{
		api:     mock.NewMockApiClient(ctrl),
		dialer:  &fakeDialer{},
		clock:   newFakeClock(time.Date(2026, 5, 12, 9, 0, 0, 0, time.UTC)),
		vault:   vaultSession,
		history: mock.NewMockHistoryRepository(ctrl),
	}
	f.engine = NewVerificationEngine(
		f.api,
		f.dialer,
		vaultSession,
		cipher,
		f.history,
		validators.NewChallengeValidator(),
		f.clock,
		config.Engine{},
		logger.Nop(),
	).(*verificationEngine)
	t.Cleanup(f.engine.Close)

	return f
}

// expectChallenge sets up one successful IssueChallenge returning requestID.
func (f *engineFixture) expectChallenge(t *testing.T, requestID string) {
	t.Helper()
	f.api.EXPECT().
		IssueChallenge(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req models.ChallengeRequest, idempotencyKey string) (models.ChallengeResponse, error) {
			assert.NotEmpty(t, idempotencyKey)
			assert.NotEmpty(t, req.MerchantID)
			return models.ChallengeResponse{
				RequestID:          requestID,
				ChallengeExpiresAt: f.clock.Now().Add(2 * time.Minute),
			}, nil
		})
}

func recvEngineEvent(t *testing.T, events <-chan models.VerificationEvent) models.VerificationEvent {
	t.Helper()
	select {
	case ev, ok := <-events:
		require.True(t, ok, "events channel closed before the expected event")
		return ev
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for verification event")
		return models.VerificationEvent{}
	}
}

func expectNoEvent(t *testing.T, events <-chan models.VerificationEvent) {
	t.Helper()
	select {
	case ev := <-events:
		t.Fatalf("unexpected event %q for request %s", ev.Kind, ev.RequestID)
	case <-time.After(50 * time.Millisecond):
	}
}

func lastAppliedSeq(e *verificationEngine, requestID string) uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	if tracked, ok := e.requests[requestID]; ok {
		return tracked.lastSeq
	}
	return 0
}

// ── Start ────────────────────────────────────────────────────────────────────

func TestEngine_StartToApproval_SealsCredential(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newEngineFixture(t, ctrl)
	bearer := signedToken(t, f.clock.Now().Add(time.Hour))
	f.api.EXPECT().Token().Return(bearer).AnyTimes()
	f.expectChallenge(t, "req-1")
	f.history.EXPECT().
		Record(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, entry models.HistoryEntry) error {
			assert.Equal(t, "req-1", entry.RequestID)
			assert.Equal(t, "m-1", entry.MerchantID)
			assert.Equal(t, models.DeliveryEmail, entry.Method)
			assert.Equal(t, models.StateApproved, entry.Outcome)
			return nil
		})

	events, unsubscribe := f.engine.Subscribe()
	defer unsubscribe()

	req, err := f.engine.Start(context.Background(), "m-1", models.DeliveryEmail, "ops@acme.io")
	require.NoError(t, err)
	assert.Equal(t, "req-1", req.RequestID)
	assert.Equal(t, models.StateAwaitingApproval, req.State)

	issued := recvEngineEvent(t, events)
	assert.Equal(t, models.EventChallengeIssued, issued.Kind)

	f.dialer.session(0).push(models.VerificationEvent{
		RequestID:  "req-1",
		Kind:       models.EventApproved,
		Sequence:   1,
		OccurredAt: f.clock.Now(),
	})

	approved := recvEngineEvent(t, events)
	assert.Equal(t, models.EventApproved, approved.Kind)
	assert.Equal(t, uint64(1), approved.Sequence)

	// После одобрения в vault лежит запечатанный токен сессии,
	// расшифровывается и ещё действителен.
	token, err := f.engine.CachedToken("m-1")
	require.NoError(t, err)
	assert.Equal(t, bearer, string(token.Value))
	assert.True(t, token.ExpiresAt.After(f.clock.Now()))

	assert.True(t, f.dialer.session(0).isClosed())
}

func TestEngine_Start_RejectsSecondRequestForMerchant(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newEngineFixture(t, ctrl)
	f.api.EXPECT().Token().Return("").AnyTimes()
	f.expectChallenge(t, "req-1")

	_, err := f.engine.Start(context.Background(), "m-1", models.DeliveryEmail, "ops@acme.io")
	require.NoError(t, err)

	_, err = f.engine.Start(context.Background(), "m-1", models.DeliveryEmail, "ops@acme.io")
	require.ErrorIs(t, err, ErrRequestInFlight)
}

func TestEngine_Start_ValidatesBeforeIssuing(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newEngineFixture(t, ctrl)

	_, err := f.engine.Start(context.Background(), "m-1", models.DeliveryEmail, "not-an-email")
	require.ErrorIs(t, err, validators.ErrInvalidEmail)

	_, err = f.engine.Start(context.Background(), "", models.DeliveryEmail, "ops@acme.io")
	require.ErrorIs(t, err, validators.ErrInvalidMerchantID)
}

func TestEngine_Start_SurfacesChallengeFailureAndFreesSlot(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newEngineFixture(t, ctrl)
	f.api.EXPECT().
		IssueChallenge(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(models.ChallengeResponse{}, &adapter.APIError{Status: 502, Body: "bad gateway"})

	_, err := f.engine.Start(context.Background(), "m-1", models.DeliveryEmail, "ops@acme.io")
	require.ErrorIs(t, err, ErrVerificationUnavailable)

	// Неудавшийся запрос не должен держать слот мерчанта.
	f.api.EXPECT().Token().Return("").AnyTimes()
	f.expectChallenge(t, "req-2")
	_, err = f.engine.Start(context.Background(), "m-1", models.DeliveryEmail, "ops@acme.io")
	require.NoError(t, err)
}

func TestEngine_Start_SocketUnavailableFallsBackToTimer(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newEngineFixture(t, ctrl)
	f.dialer.err = errors.New("dial tcp: connection refused")
	bearer := signedToken(t, f.clock.Now().Add(time.Hour))
	f.api.EXPECT().Token().Return(bearer).AnyTimes()
	f.expectChallenge(t, "req-1")

	events, unsubscribe := f.engine.Subscribe()
	defer unsubscribe()

	req, err := f.engine.Start(context.Background(), "m-1", models.DeliveryEmail, "ops@acme.io")
	require.NoError(t, err)
	assert.Equal(t, models.StateAwaitingApproval, req.State)

	transport := recvEngineEvent(t, events)
	assert.Equal(t, models.EventTransportError, transport.Kind)
	assert.Error(t, transport.Err)

	issued := recvEngineEvent(t, events)
	assert.Equal(t, models.EventChallengeIssued, issued.Kind)

	// Запрос остаётся живым: ручное подтверждение кода завершает его.
	f.api.EXPECT().
		Confirm(gomock.Any(), "req-1", "123456").
		Return(models.ConfirmResponse{State: models.StateApproved}, nil)
	f.history.EXPECT().Record(gomock.Any(), gomock.Any()).Return(nil)

	require.NoError(t, f.engine.ConfirmCode(context.Background(), "req-1", "123456"))

	approved := recvEngineEvent(t, events)
	assert.Equal(t, models.EventApproved, approved.Kind)
}

// ── Lockout ──────────────────────────────────────────────────────────────────

// denyRequest проводит один полный цикл: challenge -> socket denied.
func denyRequest(t *testing.T, f *engineFixture, events <-chan models.VerificationEvent, i int, requestID string) {
	t.Helper()

	f.expectChallenge(t, requestID)
	f.history.EXPECT().Record(gomock.Any(), gomock.Any()).Return(nil)

	_, err := f.engine.Start(context.Background(), "m-7", models.DeliverySMS, "+79261234567")
	require.NoError(t, err)

	issued := recvEngineEvent(t, events)
	require.Equal(t, models.EventChallengeIssued, issued.Kind)

	f.dialer.session(i).push(models.VerificationEvent{
		RequestID: requestID,
		Kind:      models.EventDenied,
		Sequence:  1,
	})

	denied := recvEngineEvent(t, events)
	require.Equal(t, models.EventDenied, denied.Kind)
}

func TestEngine_LockoutAfterThreeFailures_LiftsWhenWindowSlides(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newEngineFixture(t, ctrl)
	f.api.EXPECT().Token().Return("").AnyTimes()

	events, unsubscribe := f.engine.Subscribe()
	defer unsubscribe()

	denyRequest(t, f, events, 0, "req-1")
	f.clock.advance(time.Minute)
	denyRequest(t, f, events, 1, "req-2")
	f.clock.advance(time.Minute)
	denyRequest(t, f, events, 2, "req-3")

	// Три отказа внутри окна: мерчант заблокирован.
	_, err := f.engine.Start(context.Background(), "m-7", models.DeliverySMS, "+79261234567")
	require.ErrorIs(t, err, ErrLockedOut)

	// Когда первый отказ выходит за окно, блокировка снимается.
	f.clock.advance(13 * time.Minute)
	f.expectChallenge(t, "req-4")
	_, err = f.engine.Start(context.Background(), "m-7", models.DeliverySMS, "+79261234567")
	require.NoError(t, err)

	// Другой мерчант блокировкой никогда не был затронут.
	f.expectChallenge(t, "req-other")
	_, err = f.engine.Start(context.Background(), "m-8", models.DeliverySMS, "+79261234568")
	require.NoError(t, err)
}

func TestEngine_ApprovalClearsFailureWindow(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newEngineFixture(t, ctrl)
	bearer := signedToken(t, f.clock.Now().Add(time.Hour))
	f.api.EXPECT().Token().Return(bearer).AnyTimes()

	events, unsubscribe := f.engine.Subscribe()
	defer unsubscribe()

	denyRequest(t, f, events, 0, "req-1")
	denyRequest(t, f, events, 1, "req-2")

	// Одобрение сбрасывает счётчик отказов.
	f.expectChallenge(t, "req-3")
	f.history.EXPECT().Record(gomock.Any(), gomock.Any()).Return(nil)
	_, err := f.engine.Start(context.Background(), "m-7", models.DeliverySMS, "+79261234567")
	require.NoError(t, err)
	recvEngineEvent(t, events) // challenge_issued
	f.dialer.session(2).push(models.VerificationEvent{RequestID: "req-3", Kind: models.EventApproved, Sequence: 1})
	recvEngineEvent(t, events) // approved

	denyRequest(t, f, events, 3, "req-4")
	denyRequest(t, f, events, 4, "req-5")

	// Два отказа после сброса — до порога ещё далеко.
	f.expectChallenge(t, "req-6")
	_, err = f.engine.Start(context.Background(), "m-7", models.DeliverySMS, "+79261234567")
	require.NoError(t, err)
}

// ── Local expiry ─────────────────────────────────────────────────────────────

func TestEngine_LocalExpiry_ZeroServerEvents(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newEngineFixture(t, ctrl)
	f.api.EXPECT().Token().Return("").AnyTimes()
	f.expectChallenge(t, "req-1")
	f.history.EXPECT().
		Record(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, entry models.HistoryEntry) error {
			assert.Equal(t, models.StateExpired, entry.Outcome)
			return nil
		})

	events, unsubscribe := f.engine.Subscribe()
	defer unsubscribe()

	_, err := f.engine.Start(context.Background(), "m-1", models.DeliveryEmail, "ops@acme.io")
	require.NoError(t, err)
	recvEngineEvent(t, events) // challenge_issued

	// Ждём, пока наблюдатель запроса возьмёт таймер, и двигаем часы за
	// время жизни challenge.
	require.Eventually(t, func() bool { return f.clock.pendingTimers() > 0 }, time.Second, time.Millisecond)
	f.clock.advance(DefaultChallengeLifetime + time.Second)

	expired := recvEngineEvent(t, events)
	assert.Equal(t, models.EventExpired, expired.Kind)
	assert.Equal(t, uint64(0), expired.Sequence, "local expiry is synthesized, not a server event")
	assert.True(t, f.dialer.session(0).isClosed())

	// Терминальный исход освобождает слот мерчанта.
	f.expectChallenge(t, "req-2")
	_, err = f.engine.Start(context.Background(), "m-1", models.DeliveryEmail, "ops@acme.io")
	require.NoError(t, err)
}

// ── Sequence dedupe ──────────────────────────────────────────────────────────

func TestEngine_StaleAndDuplicateEventsAreNoOps(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newEngineFixture(t, ctrl)
	f.api.EXPECT().Token().Return("").AnyTimes()
	f.expectChallenge(t, "req-1")
	f.history.EXPECT().Record(gomock.Any(), gomock.Any()).Return(nil).Times(1)

	events, unsubscribe := f.engine.Subscribe()
	defer unsubscribe()

	_, err := f.engine.Start(context.Background(), "m-1", models.DeliveryEmail, "ops@acme.io")
	require.NoError(t, err)
	recvEngineEvent(t, events) // challenge_issued

	session := f.dialer.session(0)

	// Событие с большей последовательностью двигает курсор.
	session.push(models.VerificationEvent{RequestID: "req-1", Kind: models.EventChallengeIssued, Sequence: 2})
	require.Eventually(t, func() bool { return lastAppliedSeq(f.engine, "req-1") == 2 }, time.Second, time.Millisecond)

	// Отставшее терминальное событие игнорируется целиком.
	session.push(models.VerificationEvent{RequestID: "req-1", Kind: models.EventDenied, Sequence: 1})
	expectNoEvent(t, events)

	// Свежее терминальное событие применяется ровно один раз.
	session.push(models.VerificationEvent{RequestID: "req-1", Kind: models.EventDenied, Sequence: 3})
	denied := recvEngineEvent(t, events)
	assert.Equal(t, models.EventDenied, denied.Kind)

	// Повтор того же события после терминала — no-op.
	assert.False(t, f.engine.apply("req-1", models.EventDenied, 3))
	expectNoEvent(t, events)
}

// ── Reconcile after reconnect ────────────────────────────────────────────────

func TestEngine_ReconnectReconcile_AppliesMissedDenial(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newEngineFixture(t, ctrl)
	f.api.EXPECT().Token().Return("").AnyTimes()
	f.expectChallenge(t, "req-1")
	f.history.EXPECT().Record(gomock.Any(), gomock.Any()).Return(nil).Times(1)
	f.api.EXPECT().
		GetStatus(gomock.Any(), "req-1").
		Return(models.StatusResponse{RequestID: "req-1", State: models.StateDenied, Sequence: 4}, nil)

	events, unsubscribe := f.engine.Subscribe()
	defer unsubscribe()

	_, err := f.engine.Start(context.Background(), "m-1", models.DeliveryEmail, "ops@acme.io")
	require.NoError(t, err)
	recvEngineEvent(t, events) // challenge_issued

	// Соединение восстановилось: движок сверяется с сервером и применяет
	// пропущенный отказ.
	f.dialer.callback(0)(adapter.SessionReconnecting, adapter.SessionConnected)

	denied := recvEngineEvent(t, events)
	assert.Equal(t, models.EventDenied, denied.Kind)
	assert.Equal(t, uint64(4), denied.Sequence)

	// Запрос уже разрешён: подтверждение кода отклоняется синхронно.
	err = f.engine.ConfirmCode(context.Background(), "req-1", "123456")
	require.ErrorIs(t, err, ErrAlreadyResolved)
}

func TestEngine_ReconcileCursor_DropsPushesFromBeforeOutage(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newEngineFixture(t, ctrl)
	f.api.EXPECT().Token().Return("").AnyTimes()
	f.expectChallenge(t, "req-1")
	f.history.EXPECT().Record(gomock.Any(), gomock.Any()).Return(nil).Times(1)
	f.api.EXPECT().
		GetStatus(gomock.Any(), "req-1").
		Return(models.StatusResponse{RequestID: "req-1", State: models.StateAwaitingApproval, Sequence: 3}, nil)

	events, unsubscribe := f.engine.Subscribe()
	defer unsubscribe()

	_, err := f.engine.Start(context.Background(), "m-1", models.DeliveryEmail, "ops@acme.io")
	require.NoError(t, err)
	recvEngineEvent(t, events) // challenge_issued

	f.dialer.callback(0)(adapter.SessionReconnecting, adapter.SessionConnected)
	require.Eventually(t, func() bool { return lastAppliedSeq(f.engine, "req-1") == 3 }, time.Second, time.Millisecond)

	// Отставший push из времени до обрыва игнорируется.
	f.dialer.session(0).push(models.VerificationEvent{RequestID: "req-1", Kind: models.EventDenied, Sequence: 2})
	expectNoEvent(t, events)

	// Актуальное событие применяется ровно один раз.
	f.dialer.session(0).push(models.VerificationEvent{RequestID: "req-1", Kind: models.EventDenied, Sequence: 4})
	denied := recvEngineEvent(t, events)
	assert.Equal(t, models.EventDenied, denied.Kind)
}

// ── Cancel ───────────────────────────────────────────────────────────────────

func TestEngine_Cancel_ClosesSessionAndFreesSlot(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newEngineFixture(t, ctrl)
	f.api.EXPECT().Token().Return("").AnyTimes()
	f.expectChallenge(t, "req-1")

	events, unsubscribe := f.engine.Subscribe()
	defer unsubscribe()

	req, err := f.engine.Start(context.Background(), "m-1", models.DeliveryEmail, "ops@acme.io")
	require.NoError(t, err)
	recvEngineEvent(t, events) // challenge_issued

	require.NoError(t, f.engine.Cancel(req.RequestID))
	assert.True(t, f.dialer.session(0).isClosed())

	// Отмена не записывается в историю и не рождает событий.
	expectNoEvent(t, events)

	// Повторная отмена — запрос больше не отслеживается.
	require.ErrorIs(t, f.engine.Cancel(req.RequestID), ErrRequestNotFound)

	// Слот мерчанта свободен для нового запроса.
	f.expectChallenge(t, "req-2")
	_, err = f.engine.Start(context.Background(), "m-1", models.DeliveryEmail, "ops@acme.io")
	require.NoError(t, err)
}

// ── ConfirmCode ──────────────────────────────────────────────────────────────

func TestEngine_ConfirmCode_Validation(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newEngineFixture(t, ctrl)

	err := f.engine.ConfirmCode(context.Background(), "req-1", "12345")
	require.ErrorIs(t, err, validators.ErrInvalidCode)

	err = f.engine.ConfirmCode(context.Background(), "", "123456")
	require.ErrorIs(t, err, validators.ErrInvalidRequestID)

	// Валидный запрос, но движок его не отслеживает.
	err = f.engine.ConfirmCode(context.Background(), "req-unknown", "123456")
	require.ErrorIs(t, err, ErrRequestNotFound)
}

func TestEngine_ConfirmCode_MapsServerRejection(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newEngineFixture(t, ctrl)
	f.api.EXPECT().Token().Return("").AnyTimes()
	f.expectChallenge(t, "req-1")

	_, err := f.engine.Start(context.Background(), "m-1", models.DeliveryEmail, "ops@acme.io")
	require.NoError(t, err)

	f.api.EXPECT().
		Confirm(gomock.Any(), "req-1", "111111").
		Return(models.ConfirmResponse{}, &adapter.APIError{Status: 400, Body: "invalid verification code"})

	err = f.engine.ConfirmCode(context.Background(), "req-1", "111111")
	require.ErrorIs(t, err, ErrInvalidCode)
}

// ── CachedToken ──────────────────────────────────────────────────────────────

func TestEngine_CachedToken_AbsentMerchant(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newEngineFixture(t, ctrl)

	_, err := f.engine.CachedToken("m-unknown")
	require.ErrorIs(t, err, vault.ErrSecretNotFound)
}

func TestEngine_CachedToken_TamperedRecordDiscarded(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newEngineFixture(t, ctrl)

	// Подкидываем запись, запечатанную чужим ключом: аутентификация GCM
	// должна провалиться, а запись — удалиться.
	require.NoError(t, f.vault.PutCredential(models.Credential{
		MerchantID:       "m-1",
		EncryptedPayload: []byte("garbage-ciphertext"),
		Nonce:            []byte("bad-nonce-12"),
	}))

	_, err := f.engine.CachedToken("m-1")
	require.ErrorIs(t, err, crypto.ErrAuthFailure)

	_, err = f.vault.GetCredential("m-1")
	require.ErrorIs(t, err, vault.ErrSecretNotFound, "tampered credential must be discarded")
}

// ── MerchantState ────────────────────────────────────────────────────────────

func TestEngine_MerchantState_LifecycleOfOneRequest(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newEngineFixture(t, ctrl)
	f.api.EXPECT().Token().Return("").AnyTimes()
	f.api.EXPECT().
		IssueChallenge(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req models.ChallengeRequest, _ string) (models.ChallengeResponse, error) {
			// Пока POST в полёте, мерчант уже зарезервирован.
			assert.Equal(t, models.StateChallengeRequested, f.engine.MerchantState(req.MerchantID))
			return models.ChallengeResponse{
				RequestID:          "req-1",
				ChallengeExpiresAt: f.clock.Now().Add(2 * time.Minute),
			}, nil
		})

	assert.Equal(t, models.StateIdle, f.engine.MerchantState("m-1"))

	events, unsubscribe := f.engine.Subscribe()
	defer unsubscribe()

	_, err := f.engine.Start(context.Background(), "m-1", models.DeliveryEmail, "ops@acme.io")
	require.NoError(t, err)
	recvEngineEvent(t, events) // challenge_issued

	assert.Equal(t, models.StateAwaitingApproval, f.engine.MerchantState("m-1"))
	assert.Equal(t, models.StateIdle, f.engine.MerchantState("m-other"))

	f.history.EXPECT().Record(gomock.Any(), gomock.Any()).Return(nil)
	f.dialer.session(0).push(models.VerificationEvent{
		RequestID:  "req-1",
		Kind:       models.EventDenied,
		Sequence:   1,
		OccurredAt: f.clock.Now(),
	})
	recvEngineEvent(t, events) // denied

	// Терминальный исход освобождает мерчанта.
	assert.Equal(t, models.StateIdle, f.engine.MerchantState("m-1"))
}

// ── Subscribe / Close ────────────────────────────────────────────────────────

func TestEngine_Subscribe_UnsubscribeClosesChannel(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newEngineFixture(t, ctrl)

	events, unsubscribe := f.engine.Subscribe()
	unsubscribe()
	unsubscribe() // повторный вызов безопасен

	_, ok := <-events
	assert.False(t, ok, "unsubscribed channel must be closed")
}

func TestEngine_Close_ShutsDownEverything(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newEngineFixture(t, ctrl)
	f.api.EXPECT().Token().Return("").AnyTimes()
	f.expectChallenge(t, "req-1")

	events, _ := f.engine.Subscribe()

	_, err := f.engine.Start(context.Background(), "m-1", models.DeliveryEmail, "ops@acme.io")
	require.NoError(t, err)
	recvEngineEvent(t, events) // challenge_issued

	f.engine.Close()
	f.engine.Close() // идемпотентно

	assert.True(t, f.dialer.session(0).isClosed())
	for range events {
		// дочитываем до закрытия
	}

	_, err = f.engine.Start(context.Background(), "m-2", models.DeliveryEmail, "ops@acme.io")
	require.ErrorIs(t, err, ErrEngineClosed)

	// Подписка после закрытия сразу возвращает закрытый канал.
	late, _ := f.engine.Subscribe()
	_, ok := <-late
	assert.False(t, ok)
}
