package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/MKhiriev/go-merchant-verify/internal/adapter"
	"github.com/MKhiriev/go-merchant-verify/internal/config"
	"github.com/MKhiriev/go-merchant-verify/internal/crypto"
	"github.com/MKhiriev/go-merchant-verify/internal/logger"
	"github.com/MKhiriev/go-merchant-verify/internal/store"
	"github.com/MKhiriev/go-merchant-verify/internal/utils"
	"github.com/MKhiriev/go-merchant-verify/internal/validators"
	"github.com/MKhiriev/go-merchant-verify/internal/vault"
	"github.com/MKhiriev/go-merchant-verify/models"
	"golang.org/x/sync/semaphore"
)

const (
	// DefaultChallengeLifetime bounds how long a request may sit in
	// awaiting-approval before the engine expires it locally.
	DefaultChallengeLifetime = 2 * time.Minute

	// DefaultLockoutWindow is the sliding window failed outcomes are
	// counted in.
	DefaultLockoutWindow = 15 * time.Minute

	// DefaultLockoutThreshold is how many failed outcomes inside the window
	// lock a merchant out.
	DefaultLockoutThreshold = 3

	// DefaultMaxConcurrent bounds challenge issues and status polls running
	// at once.
	DefaultMaxConcurrent = 4

	// subscriberBuffer is the event channel capacity handed to subscribers.
	subscriberBuffer = 16

	// sessionTokenFallbackTTL is assumed when the approved token carries no
	// readable expiry claim.
	sessionTokenFallbackTTL = 15 * time.Minute

	// reconcileTimeout bounds the status poll issued after a reconnect.
	reconcileTimeout = 10 * time.Second
)

// trackedRequest is the engine's record of one verification request. All
// fields except session are guarded by the engine mutex; session is written
// once before the watcher starts and only read afterwards.
type trackedRequest struct {
	req     models.VerificationRequest
	session adapter.Session
	cancel  context.CancelFunc
	lastSeq uint64
}

type verificationEngine struct {
	adapter   adapter.ApiClient
	dialer    adapter.SessionDialer
	vault     CredentialVault
	cipher    crypto.CipherService
	history   store.HistoryRepository
	validator validators.Validator
	uuid      *utils.UUIDGenerator
	clock     Clock
	logger    *logger.Logger

	challengeLifetime time.Duration
	lockoutWindow     time.Duration
	lockoutThreshold  int

	// slots bounds the API work (challenge issues, status polls) in flight.
	slots *semaphore.Weighted

	mu        sync.Mutex
	closed    bool
	requests  map[string]*trackedRequest // request id -> record
	active    map[string]string          // merchant id -> non-terminal request id
	failures  map[string][]time.Time     // merchant id -> recent failed outcomes
	sealLocks map[string]*sync.Mutex     // merchant id -> credential write lock

	subMu      sync.Mutex
	subsClosed bool
	nextSub    int
	subs       map[int]chan models.VerificationEvent

	wg sync.WaitGroup
}

// NewVerificationEngine creates the engine with the given collaborators.
// Zero values in cfg select the package defaults.
func NewVerificationEngine(
	api adapter.ApiClient,
	dialer adapter.SessionDialer,
	credentialVault CredentialVault,
	cipher crypto.CipherService,
	history store.HistoryRepository,
	validator validators.Validator,
	clock Clock,
	cfg config.Engine,
	logger *logger.Logger,
) VerificationEngine {
	logger.Debug().Msg("creating verification engine")

	if cfg.ChallengeLifetime <= 0 {
		cfg.ChallengeLifetime = DefaultChallengeLifetime
	}
	if cfg.LockoutWindow <= 0 {
		cfg.LockoutWindow = DefaultLockoutWindow
	}
	if cfg.LockoutThreshold <= 0 {
		cfg.LockoutThreshold = DefaultLockoutThreshold
	}
	if cfg.MaxConcurrent <= 0 {
		cfg.MaxConcurrent = DefaultMaxConcurrent
	}

	return &verificationEngine{
		adapter:           api,
		dialer:            dialer,
		vault:             credentialVault,
		cipher:            cipher,
		history:           history,
		validator:         validator,
		uuid:              utils.NewUUIDGenerator(),
		clock:             clock,
		logger:            logger,
		challengeLifetime: cfg.ChallengeLifetime,
		lockoutWindow:     cfg.LockoutWindow,
		lockoutThreshold:  cfg.LockoutThreshold,
		slots:             semaphore.NewWeighted(cfg.MaxConcurrent),
		requests:          map[string]*trackedRequest{},
		active:            map[string]string{},
		failures:          map[string][]time.Time{},
		sealLocks:         map[string]*sync.Mutex{},
		subs:              map[int]chan models.VerificationEvent{},
	}
}

// Start implements VerificationEngine.
func (e *verificationEngine) Start(ctx context.Context, merchantID string, method models.DeliveryMethod, deliveryAddress string) (models.VerificationRequest, error) {
	challenge := models.ChallengeRequest{
		MerchantID:      merchantID,
		Method:          method,
		DeliveryAddress: deliveryAddress,
	}
	if err := e.validator.Validate(ctx, challenge); err != nil {
		return models.VerificationRequest{}, err
	}

	// Резервируем мерчанта до похода на сервер, чтобы два конкурентных
	// Start не выпустили два challenge.
	if err := e.reserve(merchantID); err != nil {
		return models.VerificationRequest{}, err
	}

	req, err := e.issue(ctx, challenge)
	if err != nil {
		e.release(merchantID)
		return models.VerificationRequest{}, err
	}

	return req, nil
}

// reserve claims the merchant slot, rejecting busy and locked-out merchants.
func (e *verificationEngine) reserve(merchantID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return ErrEngineClosed
	}
	if _, busy := e.active[merchantID]; busy {
		return fmt.Errorf("%w (merchant_id=%s)", ErrRequestInFlight, merchantID)
	}
	if until, locked := e.lockedOutLocked(merchantID); locked {
		return fmt.Errorf("%w until %s", ErrLockedOut, until.UTC().Format(time.RFC3339))
	}

	// Request id is assigned after the server accepts the challenge.
	e.active[merchantID] = ""
	return nil
}

// release drops a reservation made by reserve when the issue failed.
func (e *verificationEngine) release(merchantID string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if id, ok := e.active[merchantID]; ok && id == "" {
		delete(e.active, merchantID)
	}
}

// lockedOutLocked prunes outcomes older than the lockout window and reports
// whether the merchant is currently locked out and until when. Caller holds
// the engine mutex.
func (e *verificationEngine) lockedOutLocked(merchantID string) (time.Time, bool) {
	now := e.clock.Now()

	recent := e.failures[merchantID][:0]
	for _, at := range e.failures[merchantID] {
		if now.Sub(at) < e.lockoutWindow {
			recent = append(recent, at)
		}
	}
	if len(recent) == 0 {
		delete(e.failures, merchantID)
	} else {
		e.failures[merchantID] = recent
	}

	if len(recent) < e.lockoutThreshold {
		return time.Time{}, false
	}

	// The lockout lifts when enough old failures slide out of the window.
	return recent[len(recent)-e.lockoutThreshold].Add(e.lockoutWindow), true
}

// issue performs the challenge POST, registers the request, and attaches the
// verification socket.
func (e *verificationEngine) issue(ctx context.Context, challenge models.ChallengeRequest) (models.VerificationRequest, error) {
	if err := e.slots.Acquire(ctx, 1); err != nil {
		return models.VerificationRequest{}, fmt.Errorf("acquire worker slot: %w", err)
	}
	defer e.slots.Release(1)

	resp, err := e.adapter.IssueChallenge(ctx, challenge, e.uuid.Generate())
	if err != nil {
		return models.VerificationRequest{}, mapAdapterError(err)
	}

	watchCtx, cancel := context.WithCancel(context.Background())
	tracked := &trackedRequest{
		req: models.VerificationRequest{
			RequestID:  resp.RequestID,
			MerchantID: challenge.MerchantID,
			Method:     challenge.Method,
			CreatedAt:  e.clock.Now(),
			ExpiresAt:  resp.ChallengeExpiresAt,
			State:      models.StateChallengeRequested,
		},
		cancel: cancel,
	}

	e.mu.Lock()
	e.requests[resp.RequestID] = tracked
	e.active[challenge.MerchantID] = resp.RequestID
	e.mu.Unlock()

	session, err := e.dialer.OpenSession(ctx, resp.RequestID, e.adapter.Token(), e.onSessionStateChange(resp.RequestID))
	if err != nil {
		// The challenge is already out server-side. Keep the request alive
		// on the local timer; ConfirmCode or a later poll can still resolve
		// it before the lifetime runs out.
		e.logger.Warn().Err(err).
			Str("request_id", resp.RequestID).
			Msg("verification socket unavailable, relying on local timer")
		e.broadcast(models.VerificationEvent{
			RequestID:  resp.RequestID,
			Kind:       models.EventTransportError,
			OccurredAt: e.clock.Now(),
			Err:        err,
		})
	}

	e.mu.Lock()
	tracked.session = session
	tracked.req.State = models.StateAwaitingApproval
	req := tracked.req
	e.mu.Unlock()

	e.wg.Add(1)
	go e.watch(watchCtx, tracked)

	e.broadcast(models.VerificationEvent{
		RequestID:  req.RequestID,
		Kind:       models.EventChallengeIssued,
		OccurredAt: e.clock.Now(),
	})
	e.logger.Info().
		Str("request_id", req.RequestID).
		Str("merchant_id", req.MerchantID).
		Str("method", string(req.Method)).
		Str("address", utils.Fingerprint(challenge.DeliveryAddress)).
		Msg("challenge issued")

	return req, nil
}

// watch consumes socket events for one request and enforces its local
// lifetime. It exits when the request reaches a terminal state, is
// cancelled, or the engine shuts down.
func (e *verificationEngine) watch(ctx context.Context, tracked *trackedRequest) {
	defer e.wg.Done()

	expire := e.clock.After(tracked.req.CreatedAt.Add(e.challengeLifetime).Sub(e.clock.Now()))

	var events <-chan models.VerificationEvent
	if tracked.session != nil {
		events = tracked.session.Events()
	}

	for {
		select {
		case <-ctx.Done():
			return
		case <-expire:
			e.expireLocally(tracked.req.RequestID)
			return
		case ev, ok := <-events:
			if !ok {
				// Socket is gone for good; the local timer still runs.
				events = nil
				continue
			}
			if ev.Kind == models.EventTransportError {
				e.broadcast(ev)
				continue
			}
			if e.apply(ev.RequestID, ev.Kind, ev.Sequence) {
				return
			}
		}
	}
}

// apply commits an observed event against the request's state machine and
// reports whether this call performed the terminal transition. Events with a
// sequence at or below the last applied one are dropped; sequence zero marks
// a locally synthesized or authoritative result and bypasses the check.
func (e *verificationEngine) apply(requestID string, kind models.EventKind, seq uint64) bool {
	e.mu.Lock()

	tracked, ok := e.requests[requestID]
	if !ok || tracked.req.State.Terminal() {
		e.mu.Unlock()
		return false
	}

	if seq != 0 {
		if seq <= tracked.lastSeq {
			e.mu.Unlock()
			e.logger.Debug().
				Str("request_id", requestID).
				Uint64("sequence", seq).
				Msg("stale verification event ignored")
			return false
		}
		tracked.lastSeq = seq
	}

	state, terminal := stateForEvent(kind)
	if !terminal {
		// Не терминальное событие двигает только курсор последовательности.
		e.mu.Unlock()
		return false
	}

	tracked.req.State = state
	req := tracked.req
	delete(e.active, req.MerchantID)
	e.noteOutcomeLocked(req.MerchantID, state)
	session := tracked.session
	cancel := tracked.cancel
	e.mu.Unlock()

	cancel()
	if session != nil {
		_ = session.Close()
	}

	e.finalize(req, kind, seq)
	return true
}

// expireLocally transitions a request to Expired when its lifetime elapsed
// with no server outcome.
func (e *verificationEngine) expireLocally(requestID string) {
	e.mu.Lock()

	tracked, ok := e.requests[requestID]
	if !ok || tracked.req.State.Terminal() {
		e.mu.Unlock()
		return
	}

	tracked.req.State = models.StateExpired
	req := tracked.req
	delete(e.active, req.MerchantID)
	e.noteOutcomeLocked(req.MerchantID, models.StateExpired)
	session := tracked.session
	e.mu.Unlock()

	if session != nil {
		_ = session.Close()
	}

	e.logger.Info().
		Str("request_id", req.RequestID).
		Str("merchant_id", req.MerchantID).
		Msg("challenge lifetime elapsed, expiring locally")

	e.finalize(req, models.EventExpired, 0)
}

// noteOutcomeLocked updates the merchant failure window for a terminal
// outcome. Approvals clear it; denials and expiries extend it. Caller holds
// the engine mutex.
func (e *verificationEngine) noteOutcomeLocked(merchantID string, state models.VerificationState) {
	if state == models.StateApproved {
		delete(e.failures, merchantID)
		return
	}

	now := e.clock.Now()
	recent := e.failures[merchantID][:0]
	for _, at := range e.failures[merchantID] {
		if now.Sub(at) < e.lockoutWindow {
			recent = append(recent, at)
		}
	}
	e.failures[merchantID] = append(recent, now)
}

// finalize runs the side effects of a committed terminal transition:
// credential sealing on approval, the history record, and the subscriber
// event.
func (e *verificationEngine) finalize(req models.VerificationRequest, kind models.EventKind, seq uint64) {
	if req.State == models.StateApproved {
		if err := e.sealCredential(req.MerchantID); err != nil {
			e.logger.Error().Err(err).
				Str("merchant_id", req.MerchantID).
				Msg("failed to seal merchant credential")
		}
	}

	entry := models.HistoryEntry{
		RequestID:  req.RequestID,
		MerchantID: req.MerchantID,
		Method:     req.Method,
		Outcome:    req.State,
		OccurredAt: e.clock.Now(),
	}
	if err := e.history.Record(context.Background(), entry); err != nil && !errors.Is(err, store.ErrDuplicateHistoryEntry) {
		e.logger.Error().Err(err).
			Str("request_id", req.RequestID).
			Msg("failed to record verification outcome")
	}

	e.broadcast(models.VerificationEvent{
		RequestID:  req.RequestID,
		Kind:       kind,
		Sequence:   seq,
		OccurredAt: e.clock.Now(),
	})

	e.logger.Info().
		Str("request_id", req.RequestID).
		Str("merchant_id", req.MerchantID).
		Str("outcome", string(req.State)).
		Msg("verification resolved")
}

// sealCredential seals the current bearer token as the merchant's session
// token and stores it in the vault. The per-merchant lock serializes the
// read-modify-write against concurrent approvals for the same merchant.
func (e *verificationEngine) sealCredential(merchantID string) error {
	lock := e.merchantLock(merchantID)
	lock.Lock()
	defer lock.Unlock()

	value := e.adapter.Token()
	if value == "" {
		return errors.New("no bearer token to seal")
	}

	token := models.SessionToken{
		Value:    []byte(value),
		IssuedAt: e.clock.Now(),
	}
	if exp, err := utils.TokenExpiry(value); err == nil {
		token.ExpiresAt = exp
	} else {
		token.ExpiresAt = token.IssuedAt.Add(sessionTokenFallbackTTL)
	}

	ciphertext, nonce, err := e.cipher.SealJSON(token, e.vault.Key())
	if err != nil {
		return fmt.Errorf("seal session token: %w", err)
	}

	return e.vault.PutCredential(models.Credential{
		MerchantID:       merchantID,
		EncryptedPayload: ciphertext,
		Nonce:            nonce,
	})
}

func (e *verificationEngine) merchantLock(merchantID string) *sync.Mutex {
	e.mu.Lock()
	defer e.mu.Unlock()

	lock, ok := e.sealLocks[merchantID]
	if !ok {
		lock = &sync.Mutex{}
		e.sealLocks[merchantID] = lock
	}
	return lock
}

// CachedToken implements VerificationEngine.
func (e *verificationEngine) CachedToken(merchantID string) (models.SessionToken, error) {
	lock := e.merchantLock(merchantID)
	lock.Lock()
	defer lock.Unlock()

	cred, err := e.vault.GetCredential(merchantID)
	if err != nil {
		return models.SessionToken{}, err
	}

	var token models.SessionToken
	if err := e.cipher.OpenJSON(cred.EncryptedPayload, cred.Nonce, e.vault.Key(), &token); err != nil {
		if errors.Is(err, crypto.ErrAuthFailure) {
			// Запись не проходит аутентификацию: выбрасываем её, мерчант
			// должен пройти верификацию заново.
			_ = e.vault.DeleteCredential(merchantID)
			e.logger.Warn().
				Str("merchant_id", merchantID).
				Msg("cached credential failed authentication, discarded")
		}
		return models.SessionToken{}, fmt.Errorf("open cached credential: %w", err)
	}

	if !token.Valid(e.clock.Now()) {
		return models.SessionToken{}, fmt.Errorf("cached token expired (merchant_id=%s): %w", merchantID, vault.ErrSecretNotFound)
	}

	return token, nil
}

// MerchantState implements VerificationEngine.
func (e *verificationEngine) MerchantState(merchantID string) models.VerificationState {
	e.mu.Lock()
	defer e.mu.Unlock()

	requestID, ok := e.active[merchantID]
	if !ok {
		return models.StateIdle
	}
	if requestID == "" {
		// Challenge POST still in flight, no request id assigned yet.
		return models.StateChallengeRequested
	}

	tracked, ok := e.requests[requestID]
	if !ok {
		return models.StateIdle
	}
	return tracked.req.State
}

// Cancel implements VerificationEngine.
func (e *verificationEngine) Cancel(requestID string) error {
	e.mu.Lock()

	tracked, ok := e.requests[requestID]
	if !ok {
		e.mu.Unlock()
		return fmt.Errorf("cancel %s: %w", requestID, ErrRequestNotFound)
	}

	delete(e.requests, requestID)
	if !tracked.req.State.Terminal() {
		delete(e.active, tracked.req.MerchantID)
	}
	session := tracked.session
	cancel := tracked.cancel
	e.mu.Unlock()

	cancel()
	if session != nil {
		_ = session.Close()
	}

	e.logger.Info().Str("request_id", requestID).Msg("verification cancelled")
	return nil
}

// ConfirmCode implements VerificationEngine.
func (e *verificationEngine) ConfirmCode(ctx context.Context, requestID, code string) error {
	confirm := models.ConfirmRequest{RequestID: requestID, Code: code}
	if err := e.validator.Validate(ctx, confirm); err != nil {
		return err
	}

	e.mu.Lock()
	tracked, ok := e.requests[requestID]
	switch {
	case !ok:
		e.mu.Unlock()
		return fmt.Errorf("confirm %s: %w", requestID, ErrRequestNotFound)
	case tracked.req.State.Terminal():
		e.mu.Unlock()
		return fmt.Errorf("confirm %s: %w", requestID, ErrAlreadyResolved)
	}
	e.mu.Unlock()

	resp, err := e.adapter.Confirm(ctx, requestID, code)
	if err != nil {
		return mapAdapterError(err)
	}

	if resp.State.Terminal() {
		// The server answered authoritatively; sequence zero bypasses the
		// staleness check so a concurrent push cannot shadow the result.
		e.apply(requestID, eventForState(resp.State), 0)
	}
	return nil
}

// onSessionStateChange returns the callback the session invokes on state
// transitions. A completed reconnect triggers a status reconcile because
// pushes may have been lost during the outage.
func (e *verificationEngine) onSessionStateChange(requestID string) adapter.StateChangeFunc {
	return func(prev, next adapter.SessionState) {
		if prev == adapter.SessionReconnecting && next == adapter.SessionConnected {
			go e.reconcile(requestID)
		}
	}
}

// reconcile polls the server-side state of a request and applies a terminal
// outcome the socket may have missed.
func (e *verificationEngine) reconcile(requestID string) {
	ctx, cancel := context.WithTimeout(context.Background(), reconcileTimeout)
	defer cancel()

	if err := e.slots.Acquire(ctx, 1); err != nil {
		return
	}
	defer e.slots.Release(1)

	resp, err := e.adapter.GetStatus(ctx, requestID)
	if err != nil {
		e.logger.Warn().Err(err).
			Str("request_id", requestID).
			Msg("status reconcile failed")
		return
	}

	if resp.State.Terminal() {
		e.apply(requestID, eventForState(resp.State), resp.Sequence)
		return
	}

	// Still pending: advance the cursor so stale pushes from before the
	// outage are dropped.
	e.mu.Lock()
	if tracked, ok := e.requests[requestID]; ok && resp.Sequence > tracked.lastSeq {
		tracked.lastSeq = resp.Sequence
	}
	e.mu.Unlock()
}

// Subscribe implements VerificationEngine.
func (e *verificationEngine) Subscribe() (<-chan models.VerificationEvent, func()) {
	e.subMu.Lock()
	defer e.subMu.Unlock()

	ch := make(chan models.VerificationEvent, subscriberBuffer)
	if e.subsClosed {
		close(ch)
		return ch, func() {}
	}

	id := e.nextSub
	e.nextSub++
	e.subs[id] = ch

	var once sync.Once
	unsubscribe := func() {
		once.Do(func() {
			e.subMu.Lock()
			defer e.subMu.Unlock()
			if sub, ok := e.subs[id]; ok {
				delete(e.subs, id)
				close(sub)
			}
		})
	}

	return ch, unsubscribe
}

// broadcast delivers an event to every subscriber without blocking the
// engine. A full subscriber buffer drops the event for that subscriber.
func (e *verificationEngine) broadcast(ev models.VerificationEvent) {
	e.subMu.Lock()
	defer e.subMu.Unlock()

	for _, sub := range e.subs {
		select {
		case sub <- ev:
		default:
			e.logger.Warn().
				Str("request_id", ev.RequestID).
				Str("event", string(ev.Kind)).
				Msg("subscriber buffer full, event dropped")
		}
	}
}

// Close implements VerificationEngine.
func (e *verificationEngine) Close() {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return
	}
	e.closed = true

	sessions := make([]adapter.Session, 0, len(e.requests))
	cancels := make([]context.CancelFunc, 0, len(e.requests))
	for _, tracked := range e.requests {
		if tracked.session != nil {
			sessions = append(sessions, tracked.session)
		}
		cancels = append(cancels, tracked.cancel)
	}
	e.mu.Unlock()

	for _, cancel := range cancels {
		cancel()
	}
	for _, session := range sessions {
		_ = session.Close()
	}
	e.wg.Wait()

	e.subMu.Lock()
	e.subsClosed = true
	for id, sub := range e.subs {
		delete(e.subs, id)
		close(sub)
	}
	e.subMu.Unlock()

	e.logger.Info().Msg("verification engine closed")
}

// stateForEvent maps a terminal event kind to its state. The second return
// is false for non-terminal kinds.
func stateForEvent(kind models.EventKind) (models.VerificationState, bool) {
	switch kind {
	case models.EventApproved:
		return models.StateApproved, true
	case models.EventDenied:
		return models.StateDenied, true
	case models.EventExpired:
		return models.StateExpired, true
	default:
		return "", false
	}
}

// eventForState is the inverse of stateForEvent for terminal states.
func eventForState(state models.VerificationState) models.EventKind {
	switch state {
	case models.StateApproved:
		return models.EventApproved
	case models.StateDenied:
		return models.EventDenied
	default:
		return models.EventExpired
	}
}
