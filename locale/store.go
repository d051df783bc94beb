package locale

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-yaml"
	"golang.org/x/sync/singleflight"
)

//go:embed data/locales.yaml
var defaultLocaleData []byte

// Store is a process-wide locale table. Records are loaded once and never
// mutated afterwards; a directory-backed store loads one <id>.yaml file per
// locale lazily, deduplicating concurrent loads with singleflight.
type Store struct {
	mu      sync.RWMutex
	records map[string]*Record
	dir     string
	flight  singleflight.Group
}

// NewStore builds a store over a fixed record set. Tests use it to inject
// fake data.
func NewStore(records map[string]*Record) *Store {
	s := &Store{records: map[string]*Record{}}
	for id, rec := range records {
		s.records[id] = rec
	}
	return s
}

// NewDirStore builds a store that loads <dir>/<id>.yaml on first lookup of
// each locale id.
func NewDirStore(dir string) *Store {
	return &Store{records: map[string]*Record{}, dir: dir}
}

var (
	defaultOnce  sync.Once
	defaultStore *Store
)

// DefaultStore returns the store backed by the embedded locale data. It is
// initialized on first use and shared for the remainder of the process.
func DefaultStore() *Store {
	defaultOnce.Do(func() {
		st := NewStore(nil)
		if err := st.load(defaultLocaleData); err != nil {
			panic(fmt.Sprintf("locale: embedded data is invalid: %v", err))
		}
		defaultStore = st
	})
	return defaultStore
}

// Lookup returns the record for a locale id. Unknown locales fail with a
// FieldMissingError naming the locale.
func (s *Store) Lookup(id string) (*Record, error) {
	s.mu.RLock()
	rec := s.records[id]
	s.mu.RUnlock()
	if rec != nil {
		return rec, nil
	}
	if s.dir != "" {
		v, err, _ := s.flight.Do(id, func() (interface{}, error) {
			return s.loadFromDir(id)
		})
		if err == nil {
			return v.(*Record), nil
		}
	}
	return nil, &FieldMissingError{Field: FieldRecord, Locale: id}
}

// IDs lists the locale ids currently known to the store, sorted.
func (s *Store) IDs() []string {
	s.mu.RLock()
	ids := make([]string, 0, len(s.records))
	for id := range s.records {
		ids = append(ids, id)
	}
	s.mu.RUnlock()
	sort.Strings(ids)
	return ids
}

// LoadFile merges the locales from a YAML file into the store. The file has
// a single locales mapping from id to record; records are validated for
// shape (7 weekdays, 12 months, 0 or 2 am/pm markers).
func (s *Store) LoadFile(path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return s.load(content)
}

func (s *Store) load(content []byte) error {
	locales, err := decodeLocales(content)
	if err != nil {
		return err
	}
	s.mu.Lock()
	for id, rec := range locales {
		s.records[id] = rec
	}
	s.mu.Unlock()
	return nil
}

func (s *Store) loadFromDir(id string) (*Record, error) {
	content, err := os.ReadFile(filepath.Join(s.dir, id+".yaml"))
	if err != nil {
		return nil, err
	}
	rec, err := decodeRecord(content)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.records[id] = rec
	s.mu.Unlock()
	return rec, nil
}

func decodeLocales(content []byte) (map[string]*Record, error) {
	dec := yaml.NewDecoder(
		bytes.NewBuffer(content),
		yaml.Validator(validator.New()),
		yaml.Strict(),
	)
	var v struct {
		Locales map[string]*Record `yaml:"locales" validate:"required"`
	}
	if err := dec.Decode(&v); err != nil {
		return nil, errors.New(yaml.FormatError(err, false, true))
	}
	return v.Locales, nil
}

func decodeRecord(content []byte) (*Record, error) {
	dec := yaml.NewDecoder(
		bytes.NewBuffer(content),
		yaml.Validator(validator.New()),
		yaml.Strict(),
	)
	var rec Record
	if err := dec.Decode(&rec); err != nil {
		return nil, errors.New(yaml.FormatError(err, false, true))
	}
	return &rec, nil
}
