// Package tracking updates the external migration ledger: a YAML file
// listing repositories by workspace-relative path. The ledger is owned by
// the operator, not this tool; records it does not know about are
// preserved untouched.
package tracking

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"uplift/internal/errors"
)

const StatusMigrated = "migrated"

type Store struct {
	path  string
	Repos []*Record `yaml:"repos"`
}

type Record struct {
	Path        string         `yaml:"path"`
	Status      string         `yaml:"status"`
	LastUpdated string         `yaml:"last_updated,omitempty"`
	Notes       string         `yaml:"notes,omitempty"`
	Extra       map[string]any `yaml:",inline"`
}

func Load(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeNotFound, "cannot read tracking store")
	}

	store := &Store{path: path}
	if err := yaml.Unmarshal(data, store); err != nil {
		return nil, errors.Wrap(err, errors.CodeInput, "cannot parse tracking store")
	}
	return store, nil
}

func (s *Store) Save() error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return errors.Wrap(err, errors.CodeInternal, "cannot encode tracking store")
	}
	return os.WriteFile(s.path, data, 0o644)
}

// Find returns the record for a workspace-relative repository path.
func (s *Store) Find(relPath string) *Record {
	for _, r := range s.Repos {
		if r.Path == relPath {
			return r
		}
	}
	return nil
}

// Update marks the matching record and reports whether one was found. The
// caller decides whether a missing record matters; historically it does
// not (the ledger may not track every repository).
func (s *Store) Update(relPath, status, notes string) bool {
	record := s.Find(relPath)
	if record == nil {
		return false
	}
	record.Status = status
	record.LastUpdated = time.Now().Format("2006-01-02")
	record.Notes = notes
	return true
}
