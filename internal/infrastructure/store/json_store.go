package store

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"go.uber.org/zap"
)

// DirName is the directory under the application directory holding one
// JSON file per plugin namespace.
const DirName = "plugins"

// DryRunFlag is consulted at the moment of every mutation
type DryRunFlag interface {
	Enabled() bool
}

// JSONFileStore is a namespaced key-value store persisted as a flat JSON
// object. Every mutation is written through to disk before returning.
type JSONFileStore struct {
	namespace string
	path      string
	dryRun    DryRunFlag
	notices   io.Writer
	logger    *zap.Logger
	mu        sync.RWMutex
}

// Option customises a JSONFileStore
type Option func(*JSONFileStore)

// WithDryRun gates mutations behind the given flag
func WithDryRun(flag DryRunFlag) Option {
	return func(s *JSONFileStore) {
		s.dryRun = flag
	}
}

// WithNotices sets where dry-run notices are written (stdout by default)
func WithNotices(w io.Writer) Option {
	return func(s *JSONFileStore) {
		s.notices = w
	}
}

// WithLogger sets the logger used for debug output
func WithLogger(logger *zap.Logger) Option {
	return func(s *JSONFileStore) {
		s.logger = logger
	}
}

// Open returns the store for namespace under appDir, creating an empty
// backing file when the namespace has never been used.
func Open(appDir, namespace string, opts ...Option) (*JSONFileStore, error) {
	if namespace == "" {
		return nil, fmt.Errorf("plugin store: namespace is required")
	}

	s := &JSONFileStore{
		namespace: namespace,
		path:      FilePath(appDir, namespace),
		notices:   os.Stdout,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return nil, s.wrap("init", err)
	}

	if _, err := os.Stat(s.path); err != nil {
		if !os.IsNotExist(err) {
			return nil, s.wrap("init", err)
		}
		if err := s.save(map[string]string{}); err != nil {
			return nil, err
		}
		s.logger.Debug("initialized plugin store",
			zap.String("namespace", namespace), zap.String("path", s.path))
	}

	return s, nil
}

// FilePath returns the backing file used for namespace under appDir
func FilePath(appDir, namespace string) string {
	return filepath.Join(appDir, DirName, strings.ToLower(namespace)+".json")
}

// Namespace returns the namespace this store is scoped to
func (s *JSONFileStore) Namespace() string {
	return s.namespace
}

// Path returns the backing file
func (s *JSONFileStore) Path() string {
	return s.path
}

// Get returns the value stored under key. A missing key is not an error.
func (s *JSONFileStore) Get(key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	db, err := s.load()
	if err != nil {
		return "", false, err
	}
	value, ok := db[key]
	return value, ok, nil
}

// Set stores value under key, overwriting any previous value
func (s *JSONFileStore) Set(key, value string) error {
	if s.dryRun != nil && s.dryRun.Enabled() {
		fmt.Fprintf(s.notices, "[DRY-RUN][%s] Would save to database '%s': %s\n", s.namespace, key, value)
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	db, err := s.load()
	if err != nil {
		return err
	}
	db[key] = value
	return s.save(db)
}

// Delete removes key. Deleting a key that is not set is a no-op.
func (s *JSONFileStore) Delete(key string) error {
	if s.dryRun != nil && s.dryRun.Enabled() {
		fmt.Fprintf(s.notices, "[DRY-RUN][%s] Would delete from plugin database: %s\n", s.namespace, key)
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	db, err := s.load()
	if err != nil {
		return err
	}
	if _, ok := db[key]; !ok {
		return nil
	}
	delete(db, key)
	return s.save(db)
}

// GetAll returns a copy of every stored pair
func (s *JSONFileStore) GetAll() (map[string]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.load()
}

func (s *JSONFileStore) load() (map[string]string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, s.wrap("read", err)
	}

	db := map[string]string{}
	if len(strings.TrimSpace(string(data))) == 0 {
		return db, nil
	}
	if err := json.Unmarshal(data, &db); err != nil {
		return nil, s.wrap("decode", err)
	}
	if db == nil {
		db = map[string]string{}
	}
	return db, nil
}

func (s *JSONFileStore) save(db map[string]string) error {
	data, err := json.MarshalIndent(db, "", "  ")
	if err != nil {
		return s.wrap("encode", err)
	}

	// Write to a temporary file first so readers never observe a partial file
	tempFile := s.path + ".tmp"
	if err := os.WriteFile(tempFile, data, 0644); err != nil {
		return s.wrap("write", err)
	}
	if err := os.Rename(tempFile, s.path); err != nil {
		os.Remove(tempFile)
		return s.wrap("write", err)
	}
	return nil
}

func (s *JSONFileStore) wrap(op string, err error) error {
	return &Error{Op: op, Namespace: s.namespace, Path: s.path, Err: err}
}
