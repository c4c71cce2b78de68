package dao

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Collection is one named collection persisted as a single JSON document.
// Keeping the whole collection in one row makes the store portable across
// gorm dialects and keeps the original rewrite-on-save semantics.
type Collection struct {
	Name      string `gorm:"primaryKey;size:64"`
	Document  string `gorm:"type:text;not null"`
	UpdatedAt time.Time
}

// Store owns the durable collections and an in-memory cache of their
// decoded contents. It is created once at startup and passed to the
// repositories; there is no ambient global state.
type Store struct {
	db *gorm.DB

	mu    sync.RWMutex
	cache map[string]any
}

func NewStore(db *gorm.DB) (*Store, error) {
	if err := db.AutoMigrate(&Collection{}); err != nil {
		return nil, fmt.Errorf("db.AutoMigrate -> %w", err)
	}

	return &Store{
		db:    db,
		cache: make(map[string]any),
	}, nil
}

// ClearCache drops every cached collection so the next Load re-reads from
// storage. Used for test isolation and external-mutation recovery.
func (s *Store) ClearCache() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cache = make(map[string]any)
}

// Load returns the records of a named collection, from cache when present.
// The returned slice is the caller's own copy; mutating it never touches
// the cache, only a successful Save does. An absent collection is
// initialized empty. Malformed stored JSON is surfaced as an error; there
// is no schema validation or migration.
func Load[T any](s *Store, name string) ([]T, error) {
	s.mu.RLock()
	if cached, ok := s.cache[name]; ok {
		if records, ok := cached.([]T); ok {
			s.mu.RUnlock()
			return cloneRecords(records), nil
		}
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()

	if cached, ok := s.cache[name]; ok {
		if records, ok := cached.([]T); ok {
			return cloneRecords(records), nil
		}
	}

	document, err := s.readDocument(name, "[]")
	if err != nil {
		return nil, err
	}

	var records []T
	if err := json.Unmarshal([]byte(document), &records); err != nil {
		return nil, fmt.Errorf("collection %q is malformed -> %w", name, err)
	}
	if records == nil {
		records = []T{}
	}

	s.cache[name] = records

	return cloneRecords(records), nil
}

// Save overwrites the durable document with the given records; the cache
// is replaced only after the write succeeds, so a failed save leaves the
// last persisted state visible and readers never observe a partial write.
func Save[T any](s *Store, name string, records []T) error {
	document, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("encode collection %q -> %w", name, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.writeDocument(name, string(document)); err != nil {
		return err
	}

	s.cache[name] = cloneRecords(records)

	return nil
}

// LoadDocument reads a singleton document, decoding the persisted JSON over
// the supplied defaults so newly introduced fields are always present even
// in older saved data.
func LoadDocument[T any](s *Store, name string, defaults T) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if cached, ok := s.cache[name]; ok {
		if value, ok := cached.(T); ok {
			return value, nil
		}
	}

	initial, err := json.Marshal(defaults)
	if err != nil {
		return defaults, fmt.Errorf("encode document %q -> %w", name, err)
	}

	document, err := s.readDocument(name, string(initial))
	if err != nil {
		return defaults, err
	}

	value := defaults
	if err := json.Unmarshal([]byte(document), &value); err != nil {
		return defaults, fmt.Errorf("document %q is malformed -> %w", name, err)
	}

	s.cache[name] = value

	return value, nil
}

// SaveDocument overwrites a singleton document and its cached value.
func SaveDocument[T any](s *Store, name string, value T) error {
	document, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode document %q -> %w", name, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.writeDocument(name, string(document)); err != nil {
		return err
	}

	s.cache[name] = value

	return nil
}

// cloneRecords copies the backing array so the cache and callers never
// share memory. Records are plain value structs; a shallow element copy is
// enough because mutators replace pointer fields rather than writing
// through them.
func cloneRecords[T any](records []T) []T {
	out := make([]T, len(records))
	copy(out, records)
	return out
}

func (s *Store) readDocument(name, initial string) (string, error) {
	var row Collection
	err := s.db.First(&row, "name = ?", name).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		row = Collection{Name: name, Document: initial}
		if err := s.db.Create(&row).Error; err != nil {
			return "", fmt.Errorf("init collection %q -> %w", name, err)
		}
		return row.Document, nil
	}
	if err != nil {
		return "", fmt.Errorf("read collection %q -> %w", name, err)
	}

	return row.Document, nil
}

func (s *Store) writeDocument(name, document string) error {
	row := Collection{Name: name, Document: document}
	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"document", "updated_at"}),
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("write collection %q -> %w", name, err)
	}

	return nil
}
