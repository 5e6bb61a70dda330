package bolt

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bnema/container-portal-cli/internal/domain"
	"github.com/bnema/container-portal-cli/internal/ports"
	bolt "go.etcd.io/bbolt"
)

const (
	dbFileMode  = 0o600
	dbDirMode   = 0o700
	openTimeout = time.Second
)

var (
	sessionBucket = []byte("session")
	clientIDKey   = []byte("clientId")
)

// IdentityStore keeps the client id under session/clientId in a bolt database. The file is
// opened per call so other portal processes are only locked out while a call runs.
type IdentityStore struct {
	path string
}

var _ ports.IdentityStore = (*IdentityStore)(nil)

func NewIdentityStore(path string) (*IdentityStore, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("session path is empty")
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve session path: %w", err)
	}

	return &IdentityStore{path: filepath.Clean(absPath)}, nil
}

func (s *IdentityStore) Get(ctx context.Context) (domain.ClientID, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if _, err := os.Stat(s.path); errors.Is(err, os.ErrNotExist) {
		return "", domain.ErrIdentityNotFound
	}

	var raw string
	err := s.withDB(true, func(db *bolt.DB) error {
		return db.View(func(tx *bolt.Tx) error {
			bucket := tx.Bucket(sessionBucket)
			if bucket == nil {
				return nil
			}
			raw = string(bucket.Get(clientIDKey))
			return nil
		})
	})
	if err != nil {
		return "", err
	}

	id, err := domain.ParseClientID(raw)
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

	return s.withDB(false, func(db *bolt.DB) error {
		return db.Update(func(tx *bolt.Tx) error {
			bucket, err := tx.CreateBucketIfNotExists(sessionBucket)
			if err != nil {
				return fmt.Errorf("create session bucket: %w", err)
			}
			return bucket.Put(clientIDKey, []byte(id))
		})
	})
}

func (s *IdentityStore) Clear(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := os.Stat(s.path); errors.Is(err, os.ErrNotExist) {
		return nil
	}

	return s.withDB(false, func(db *bolt.DB) error {
		return db.Update(func(tx *bolt.Tx) error {
			bucket := tx.Bucket(sessionBucket)
			if bucket == nil {
				return nil
			}
			return bucket.Delete(clientIDKey)
		})
	})
}

func (s *IdentityStore) withDB(readOnly bool, fn func(db *bolt.DB) error) error {
	if !readOnly {
		if err := os.MkdirAll(filepath.Dir(s.path), dbDirMode); err != nil {
			return fmt.Errorf("create session directory: %w", err)
		}
	}

	db, err := bolt.Open(s.path, dbFileMode, &bolt.Options{Timeout: openTimeout, ReadOnly: readOnly})
	if err != nil {
		return fmt.Errorf("open session database: %w", err)
	}

	if err := fn(db); err != nil {
		_ = db.Close()
		return fmt.Errorf("access session database: %w", err)
	}

	if err := db.Close(); err != nil {
		return fmt.Errorf("close session database: %w", err)
	}

	return nil
}
