package toml

import "fmt"

const currentSchemaVersion = 1

type sessionSchema struct {
	Version  int    `toml:"version"`
	ClientID string `toml:"client_id"`
	SavedAt  string `toml:"saved_at,omitempty"`
}

func (s *sessionSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentSchemaVersion
	}
}

func (s sessionSchema) validateVersion() error {
	if s.Version > currentSchemaVersion {
		return fmt.Errorf("unsupported session schema version %d (current %d)", s.Version, currentSchemaVersion)
	}

	return nil
}
