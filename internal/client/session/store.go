// Package session owns the signed-in state of the client.
//
// A Store keeps the current user in memory, mirrors it to a persistent
// key/value repository and exposes the actions the view layer calls:
// Restore (once, at startup), Login, Register and Logout. Storage is the
// source of truth: Login and Register write it before updating memory,
// Logout clears it before clearing memory.
//
// Authentication is a mock. Login accepts any well-formed email with a
// long enough password and never checks it against an account.
//
// All methods are safe for concurrent use. Actions are not serialized
// unless Options.SerializeMutations is set; IsLoading stays true while any
// action is in flight.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/semaphore"

	"github.com/dmitrijs2005/authsession/internal/client/models"
	"github.com/dmitrijs2005/authsession/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/authsession/internal/logging"
	"github.com/dmitrijs2005/authsession/internal/metrics"
)

// TokenIssuer mints the session token stored next to the user.
type TokenIssuer interface {
	Issue(u models.User) (string, error)
}

// Recorder receives the outcome of every action. *metrics.Session
// implements it.
type Recorder interface {
	ObserveAction(action, outcome string, start time.Time)
	SetSignedIn(signedIn bool)
}

type nopRecorder struct{}

func (nopRecorder) ObserveAction(string, string, time.Time) {}
func (nopRecorder) SetSignedIn(bool) {}

// Options tune a Store. The zero value is usable: no artificial latency,
// unserialized actions, no token and a discarding logger.
type Options struct {
	// Latency is slept at the start of Login and Register to mimic a
	// round trip to an identity provider.
	Latency time.Duration

	// SerializeMutations lets at most one action run at a time; later
	// callers wait for the slot.
	SerializeMutations bool

	Tokens  TokenIssuer
	Logger  logging.Logger
	Metrics Recorder

	// NewID generates user IDs. Defaults to "user_" + a random UUID.
	NewID func() string
}

// Store holds the signed-in user and mirrors it to a metadata.Repository.
type Store struct {
	repo    metadata.Repository
	log     logging.Logger
	tokens  TokenIssuer
	metrics Recorder
	latency time.Duration
	newID   func() string
	sleep   func(time.Duration)
	gate    *semaphore.Weighted

	restoreOnce sync.Once
	restored    chan struct{}

	mu          sync.RWMutex
	user        *models.User
	version     uint64 // bumped by every setUser
	initialized bool
	inflight    int

	subsMu  sync.Mutex
	subs    map[int]chan models.Snapshot
	nextSub int
}

// NewStore returns a Store over repo in the Initializing state.
func NewStore(repo metadata.Repository, opts Options) *Store {
	s := &Store{
		repo:     repo,
		log:      opts.Logger,
		tokens:   opts.Tokens,
		metrics:  opts.Metrics,
		latency:  opts.Latency,
		newID:    opts.NewID,
		sleep:    time.Sleep,
		restored: make(chan struct{}),
		subs:     make(map[int]chan models.Snapshot),
	}
	if s.log == nil {
		s.log = logging.Discard()
	}
	s.log = s.log.With("component", "session")
	if s.metrics == nil {
		s.metrics = nopRecorder{}
	}
	if s.newID == nil {
		s.newID = func() string { return "user_" + uuid.NewString() }
	}
	if opts.SerializeMutations {
		s.gate = semaphore.NewWeighted(1)
	}
	return s
}

// Snapshot returns a copy of the state the view layer renders from.
func (s *Store) Snapshot() models.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := models.Snapshot{
		IsAuthenticated: s.user != nil,
		IsLoading:       !s.initialized || s.inflight > 0,
	}
	if s.user != nil {
		u := *s.user
		snap.User = &u
	}
	return snap
}

func (s *Store) Status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()

	switch {
	case !s.initialized:
		return StatusInitializing
	case s.inflight > 0:
		return StatusMutating
	case s.user != nil:
		return StatusAuthenticated
	default:
		return StatusUnauthenticated
	}
}

// Restored is closed once the first Restore has finished.
func (s *Store) Restored() <-chan struct{} {
	return s.restored
}

// WaitRestored blocks until Restore has finished or ctx is done.
func (s *Store) WaitRestored(ctx context.Context) error {
	select {
	case <-s.restored:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Restore loads the persisted user. Only the first call does any work.
// Read and decode failures are logged and leave the session signed out.
func (s *Store) Restore(ctx context.Context) {
	s.restoreOnce.Do(func() {
		s.restore(context.WithoutCancel(ctx))
	})
}

func (s *Store) restore(ctx context.Context) {
	start := time.Now()
	release := s.begin(ctx)

	s.mu.RLock()
	startVersion := s.version
	s.mu.RUnlock()

	var restored *models.User
	outcome := metrics.OutcomeSuccess
	defer func() {
		if p := recover(); p != nil {
			s.log.Error(ctx, "restore panicked", "panic", p)
			restored = nil
			outcome = metrics.OutcomeFailed
		}
		// A login, register or logout that finished meanwhile wrote storage
		// after our read; its user wins.
		s.mu.Lock()
		superseded := s.version != startVersion
		if !superseded {
			s.user = restored
		}
		s.initialized = true
		signedIn := s.user != nil
		s.mu.Unlock()
		if superseded {
			s.log.Info(ctx, "restored session superseded by a newer action")
		}
		s.metrics.SetSignedIn(signedIn)
		s.metrics.ObserveAction("restore", outcome, start)
		release()
		close(s.restored)
	}()

	u, err := s.loadUser(ctx)
	if err != nil {
		s.log.Error(ctx, "restore session", "error", err)
		outcome = metrics.OutcomeFailed
		return
	}
	if u == nil {
		s.log.Info(ctx, "no stored session")
		return
	}
	restored = u
	s.log.Info(ctx, "session restored", "user_id", u.ID)
}

func (s *Store) loadUser(ctx context.Context) (*models.User, error) {
	raw, ok, err := s.repo.Get(ctx, models.UserKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStorageFailure, err)
	}
	if !ok || raw == "" {
		return nil, nil
	}

	var u models.User
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		return nil, fmt.Errorf("%w: decode stored user: %w", ErrStorageFailure, err)
	}
	if u.ID == "" {
		return nil, fmt.Errorf("%w: stored user has no id", ErrStorageFailure)
	}
	return &u, nil
}

// Login signs in with email and password. The user name is the part of the
// email before '@'. Any previously stored session is replaced.
func (s *Store) Login(ctx context.Context, email, password string) (res Result) {
	ctx = context.WithoutCancel(ctx)
	start := time.Now()
	release := s.begin(ctx)
	defer release()
	defer s.record("login", start, &res)
	defer s.recoverAs(ctx, &res, ErrLoginFailed)

	s.sleep(s.latency)

	if err := validateLogin(email, password); err != nil {
		s.log.Info(ctx, "login rejected", "reason", err)
		return failed(err)
	}

	u := models.User{ID: s.newID(), Email: email, Name: localPart(email)}
	if err := s.signIn(ctx, u); err != nil {
		s.log.Error(ctx, "login", "error", err)
		return failed(fmt.Errorf("%w: %w", ErrLoginFailed, err))
	}

	s.log.Info(ctx, "logged in", "user_id", u.ID)
	return succeeded()
}

// Register creates a new account and signs it in. There is no uniqueness
// check: a second registration simply replaces the stored session.
func (s *Store) Register(ctx context.Context, name, email, password string) (res Result) {
	ctx = context.WithoutCancel(ctx)
	start := time.Now()
	release := s.begin(ctx)
	defer release()
	defer s.record("register", start, &res)
	defer s.recoverAs(ctx, &res, ErrRegistrationFailed)

	s.sleep(s.latency)

	if err := validateRegister(name, email, password); err != nil {
		s.log.Info(ctx, "registration rejected", "reason", err)
		return failed(err)
	}

	u := models.User{ID: s.newID(), Email: email, Name: name}
	if err := s.signIn(ctx, u); err != nil {
		s.log.Error(ctx, "register", "error", err)
		return failed(fmt.Errorf("%w: %w", ErrRegistrationFailed, err))
	}

	s.log.Info(ctx, "registered", "user_id", u.ID)
	return succeeded()
}

// Logout removes the stored user and token, then clears the user in memory.
// The in-memory user is cleared even when storage fails; the failure is
// logged and the stale record is dropped again on the next Logout.
func (s *Store) Logout(ctx context.Context) {
	ctx = context.WithoutCancel(ctx)
	start := time.Now()
	release := s.begin(ctx)
	defer release()

	outcome := metrics.OutcomeSuccess
	defer func() {
		if p := recover(); p != nil {
			s.log.Error(ctx, "logout panicked", "panic", p)
			s.setUser(nil)
			outcome = metrics.OutcomeFailed
		}
		s.metrics.ObserveAction("logout", outcome, start)
	}()

	err := s.write(ctx, func(ctx context.Context, r metadata.Repository) error {
		if err := r.Delete(ctx, models.UserKey); err != nil {
			return err
		}
		return r.Delete(ctx, models.TokenKey)
	})
	if err != nil {
		s.log.Error(ctx, "logout: stored session may remain", "error", fmt.Errorf("%w: %w", ErrStorageFailure, err))
		outcome = metrics.OutcomeFailed
	}

	s.setUser(nil)
	s.log.Info(ctx, "logged out")
}

// Token returns the stored session token, if any.
func (s *Store) Token(ctx context.Context) (string, bool, error) {
	t, ok, err := s.repo.Get(ctx, models.TokenKey)
	if err != nil {
		return "", false, fmt.Errorf("%w: %w", ErrStorageFailure, err)
	}
	return t, ok, nil
}

// signIn persists u (and a fresh token) and then makes it current.
func (s *Store) signIn(ctx context.Context, u models.User) error {
	data, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}

	var tok string
	if s.tokens != nil {
		if tok, err = s.tokens.Issue(u); err != nil {
			return fmt.Errorf("issue token: %w", err)
		}
	}

	err = s.write(ctx, func(ctx context.Context, r metadata.Repository) error {
		if err := r.Set(ctx, models.UserKey, string(data)); err != nil {
			return err
		}
		if tok == "" {
			return r.Delete(ctx, models.TokenKey)
		}
		return r.Set(ctx, models.TokenKey, tok)
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrStorageFailure, err)
	}

	s.setUser(&u)
	return nil
}

// write runs fn in a transaction when the repository supports one.
func (s *Store) write(ctx context.Context, fn func(ctx context.Context, r metadata.Repository) error) error {
	if tx, ok := s.repo.(metadata.Transactional); ok {
		return tx.InTx(ctx, fn)
	}
	return fn(ctx, s.repo)
}

func (s *Store) setUser(u *models.User) {
	s.mu.Lock()
	s.user = u
	s.version++
	s.mu.Unlock()
	s.metrics.SetSignedIn(u != nil)
	s.notify()
}

// begin marks an action as in flight and returns the func that ends it.
func (s *Store) begin(ctx context.Context) func() {
	if s.gate != nil {
		// ctx is never cancelled here, so Acquire cannot fail.
		_ = s.gate.Acquire(ctx, 1)
	}

	s.mu.Lock()
	s.inflight++
	s.mu.Unlock()
	s.notify()

	return func() {
		s.mu.Lock()
		s.inflight--
		s.mu.Unlock()
		if s.gate != nil {
			s.gate.Release(1)
		}
		s.notify()
	}
}

func (s *Store) record(action string, start time.Time, res *Result) {
	var outcome string
	switch {
	case res.Success:
		outcome = metrics.OutcomeSuccess
	case isValidationError(res.Err):
		outcome = metrics.OutcomeRejected
	default:
		outcome = metrics.OutcomeFailed
	}
	s.metrics.ObserveAction(action, outcome, start)
}

func isValidationError(err error) bool {
	return errors.Is(err, ErrNameRequired) ||
		errors.Is(err, ErrInvalidEmailFormat) ||
		errors.Is(err, ErrWeakPassword)
}

func (s *Store) recoverAs(ctx context.Context, res *Result, catchAll error) {
	if p := recover(); p != nil {
		s.log.Error(ctx, "action panicked", "panic", p)
		*res = failed(catchAll)
	}
}
