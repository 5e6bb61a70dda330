package application

import (
	"context"
	"fmt"
	"sync"

	"github.com/bnema/container-portal-cli/internal/domain"
	"github.com/bnema/container-portal-cli/internal/logging"
	"github.com/bnema/container-portal-cli/internal/ports"
	"github.com/rs/zerolog"
)

const paramClientID = "clientId"

// Store owns the one snapshot of the signed-in customer. Loads run one at a time, and the
// snapshot is only replaced after a payload decodes completely.
type Store struct {
	gateway ports.Gateway
	clock   ports.Clock
	logger  zerolog.Logger

	// loadToken holds a single token; a load owns the store while it holds it.
	loadToken chan struct{}

	mu       sync.RWMutex
	snapshot *domain.Snapshot
}

func NewStore(gateway ports.Gateway, clock ports.Clock, logger zerolog.Logger) *Store {
	if clock == nil {
		clock = ports.SystemClock{}
	}

	token := make(chan struct{}, 1)
	token <- struct{}{}

	return &Store{
		gateway:   gateway,
		clock:     clock,
		logger:    logging.ForPackage(logger, "store"),
		loadToken: token,
	}
}

// Load fetches the customer's data and replaces the snapshot. On failure the previous
// snapshot stays in place and the error is a *domain.LoadError.
func (s *Store) Load(ctx context.Context, id domain.ClientID) (domain.Snapshot, error) {
	if id == "" {
		return domain.Snapshot{}, &domain.LoadError{ClientID: id, Err: domain.ErrEmptyClientID}
	}

	select {
	case <-s.loadToken:
	case <-ctx.Done():
		return domain.Snapshot{}, &domain.LoadError{ClientID: id, Err: fmt.Errorf("wait for pending load: %w", ctx.Err())}
	}
	defer func() { s.loadToken <- struct{}{} }()

	raw, err := s.gateway.Request(ctx, domain.ActionGetClientData, map[string]string{paramClientID: string(id)})
	if err != nil {
		s.logger.Warn().Err(err).Str(logging.ClientField, string(id)).Msg("load failed")
		return domain.Snapshot{}, &domain.LoadError{ClientID: id, Err: err}
	}

	snapshot, err := decodeSnapshot(id, raw, s.clock.Now())
	if err != nil {
		s.logger.Warn().Err(err).Str(logging.ClientField, string(id)).Msg("load failed")
		return domain.Snapshot{}, &domain.LoadError{ClientID: id, Err: err}
	}

	s.mu.Lock()
	s.snapshot = &snapshot
	s.mu.Unlock()

	s.logger.Debug().
		Str(logging.ClientField, string(id)).
		Int("orders", len(snapshot.Orders)).
		Msg("snapshot replaced")

	return snapshot.Clone(), nil
}

// Current returns a copy of the snapshot. ok is false until a load succeeds.
func (s *Store) Current() (domain.Snapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.snapshot == nil {
		return domain.Snapshot{}, false
	}

	return s.snapshot.Clone(), true
}

func (s *Store) ActiveOrders() []domain.Order {
	snapshot, _ := s.Current()
	return snapshot.ActiveOrders()
}

func (s *Store) Addresses() []string {
	snapshot, _ := s.Current()
	return snapshot.Addresses()
}

// Reset drops the snapshot, as on logout or when the client id changes.
func (s *Store) Reset() {
	s.mu.Lock()
	s.snapshot = nil
	s.mu.Unlock()
}
