package application

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/bnema/container-portal-cli/internal/domain"
	"github.com/bnema/container-portal-cli/internal/logging"
	"github.com/bnema/container-portal-cli/internal/ports"
	"github.com/rs/zerolog"
)

const loadingLabel = "Loading client data"

var ErrSessionFailed = errors.New("session failed, start a new one")

type ReadyHook func(ctx context.Context, snapshot domain.Snapshot) error

type SessionOption func(*Session)

// WithReadyHook runs hook every time the session reaches Ready.
func WithReadyHook(hook ReadyHook) SessionOption {
	return func(s *Session) {
		s.onReady = hook
	}
}

func WithProgress(progress ports.Progress) SessionOption {
	return func(s *Session) {
		if progress != nil {
			s.progress = progress
		}
	}
}

func WithSessionLogger(logger zerolog.Logger) SessionOption {
	return func(s *Session) {
		s.logger = logging.ForPackage(logger, "session")
	}
}

// Session resolves which customer is signed in and drives the first load.
type Session struct {
	store    *Store
	identity ports.IdentityStore
	prompter ports.Prompter
	progress ports.Progress
	onReady  ReadyHook
	logger   zerolog.Logger

	mu       sync.Mutex
	state    domain.SessionState
	clientID domain.ClientID
}

func NewSession(store *Store, identity ports.IdentityStore, prompter ports.Prompter, opts ...SessionOption) *Session {
	s := &Session{
		store:    store,
		identity: identity,
		prompter: prompter,
		progress: ports.NoProgress{},
		logger:   zerolog.Nop(),
		state:    domain.SessionUnauthenticated,
	}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

func (s *Session) State() domain.SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// ClientID returns the id of the Ready session, or "" otherwise.
func (s *Session) ClientID() domain.ClientID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.clientID
}

// Start signs in with requested when given, else the stored id, else by prompting. A load
// failure clears the stored id and prompts again with the error as notice. Declining the
// prompt leaves the session Failed.
func (s *Session) Start(ctx context.Context, requested string) (domain.Snapshot, error) {
	if s.State() == domain.SessionFailed {
		return domain.Snapshot{}, ErrSessionFailed
	}

	candidate, err := domain.ParseClientID(requested)
	if err != nil {
		candidate = s.storedID(ctx)
	}

	var lastErr error
	notice := ""
	for {
		if candidate == "" {
			id, ok, err := s.prompt(ctx, notice)
			if err != nil {
				return domain.Snapshot{}, fmt.Errorf("prompt for client id: %w", err)
			}
			if !ok {
				s.transition(domain.SessionFailed, "")
				return domain.Snapshot{}, errors.Join(domain.ErrSessionDeclined, lastErr)
			}
			candidate = id
		}

		s.transition(domain.SessionLoading, "")

		var snapshot domain.Snapshot
		loadErr := s.progress.Run(ctx, loadingLabel, func(ctx context.Context) error {
			var err error
			snapshot, err = s.store.Load(ctx, candidate)
			return err
		})
		if loadErr == nil {
			return snapshot, s.ready(ctx, candidate, snapshot)
		}

		if ctx.Err() != nil {
			s.transition(domain.SessionUnauthenticated, "")
			return domain.Snapshot{}, loadErr
		}

		if err := s.identity.Clear(ctx); err != nil {
			s.logger.Warn().Err(err).Msg("clear stored client id")
		}
		s.transition(domain.SessionUnauthenticated, "")

		lastErr = loadErr
		notice = loadErr.Error()
		candidate = ""
	}
}

// Logout forgets the stored id and drops the snapshot.
func (s *Session) Logout(ctx context.Context) error {
	if err := s.identity.Clear(ctx); err != nil {
		return fmt.Errorf("clear stored client id: %w", err)
	}
	s.store.Reset()
	s.transition(domain.SessionUnauthenticated, "")

	return nil
}

func (s *Session) ready(ctx context.Context, id domain.ClientID, snapshot domain.Snapshot) error {
	if err := s.identity.Set(ctx, id); err != nil {
		s.logger.Warn().Err(err).Str(logging.ClientField, string(id)).Msg("persist client id")
	}
	s.transition(domain.SessionReady, id)

	if s.onReady == nil {
		return nil
	}
	if err := s.onReady(ctx, snapshot); err != nil {
		return fmt.Errorf("render dashboard: %w", err)
	}

	return nil
}

func (s *Session) storedID(ctx context.Context) domain.ClientID {
	id, err := s.identity.Get(ctx)
	if err != nil {
		if !errors.Is(err, domain.ErrIdentityNotFound) {
			s.logger.Warn().Err(err).Msg("read stored client id")
		}
		return ""
	}

	return id
}

func (s *Session) prompt(ctx context.Context, notice string) (domain.ClientID, bool, error) {
	if s.prompter == nil {
		return "", false, nil
	}

	id, ok, err := s.prompter.PromptClientID(ctx, notice)
	if err != nil || !ok {
		return "", ok, err
	}

	parsed, err := domain.ParseClientID(string(id))
	if err != nil {
		return "", false, nil
	}

	return parsed, true, nil
}

func (s *Session) transition(state domain.SessionState, id domain.ClientID) {
	s.mu.Lock()
	s.state = state
	s.clientID = id
	s.mu.Unlock()

	s.logger.Debug().Str(logging.StateField, state.String()).Msg("session state")
}
