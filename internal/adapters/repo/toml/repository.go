package toml

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/bnema/container-portal-cli/internal/domain"
	"github.com/bnema/container-portal-cli/internal/ports"
	toml "github.com/pelletier/go-toml/v2"
)

const (
	sessionFileMode = 0o600
	sessionDirMode  = 0o700
	tempFilePattern = ".session-*.toml.tmp"
)

// IdentityStore keeps the signed-in client id in a small TOML file.
type IdentityStore struct {
	path  string
	mu    *sync.RWMutex
	clock ports.Clock
}

var (
	lockRegistryMu sync.Mutex
	pathLockMap    = map[string]*sync.RWMutex{}
)

var _ ports.IdentityStore = (*IdentityStore)(nil)

func NewIdentityStore(path string, clock ports.Clock) (*IdentityStore, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("session path is empty")
	}
	if clock == nil {
		clock = ports.SystemClock{}
	}

	normalized, err := normalizeSessionPath(path)
	if err != nil {
		return nil, err
	}

	return &IdentityStore{path: normalized, mu: lockForPath(normalized), clock: clock}, nil
}

func (s *IdentityStore) Path() string {
	return s.path
}

func (s *IdentityStore) Get(ctx context.Context) (domain.ClientID, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	file, err := s.readSchema()
	if err != nil {
		return "", err
	}

	id, err := domain.ParseClientID(file.ClientID)
	if err != nil {
		return "", domain.ErrIdentityNotFound
	}

	return id, nil
}

func (s *IdentityStore) Set(ctx context.Context, id domain.ClientID) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := domain.ParseClientID(string(id)); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.writeSchema(sessionSchema{
		ClientID: string(id),
		SavedAt:  s.clock.Now().UTC().Format(time.RFC3339),
	})
}

// Clear removes the session file. Clearing an empty store is not an error.
func (s *IdentityStore) Clear(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove session file: %w", err)
	}

	return nil
}

func (s *IdentityStore) readSchema() (sessionSchema, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return sessionSchema{}, domain.ErrIdentityNotFound
		}
		return sessionSchema{}, fmt.Errorf("read session file: %w", err)
	}

	var file sessionSchema
	if err := toml.Unmarshal(data, &file); err != nil {
		return sessionSchema{}, fmt.Errorf("decode session file: %w", err)
	}
	if err := file.validateVersion(); err != nil {
		return sessionSchema{}, err
	}
	file.applyDefaults()

	return file, nil
}

func (s *IdentityStore) writeSchema(file sessionSchema) error {
	file.applyDefaults()

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, sessionDirMode); err != nil {
		return fmt.Errorf("create session directory: %w", err)
	}

	data, err := toml.Marshal(file)
	if err != nil {
		return fmt.Errorf("encode session file: %w", err)
	}

	tempFile, err := os.CreateTemp(dir, tempFilePattern)
	if err != nil {
		return fmt.Errorf("create temp session file: %w", err)
	}

	tempName := tempFile.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tempName)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("write temp session file: %w", err)
	}
	if err := tempFile.Chmod(sessionFileMode); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("chmod temp session file: %w", err)
	}
	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp session file: %w", err)
	}

	if err := os.Rename(tempName, s.path); err != nil {
		return fmt.Errorf("replace session file: %w", err)
	}
	cleanup = false

	return nil
}

func normalizeSessionPath(path string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve session path: %w", err)
	}

	return filepath.Clean(absPath), nil
}

func lockForPath(path string) *sync.RWMutex {
	lockRegistryMu.Lock()
	defer lockRegistryMu.Unlock()

	if mu, ok := pathLockMap[path]; ok {
		return mu
	}

	mu := &sync.RWMutex{}
	pathLockMap[path] = mu
	return mu
}
