package notes

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"stickynotes/internal/logger"
)

// DefaultFileName is resolved against the working directory.
const DefaultFileName = "config.json"

const filePerm = 0o644

// Store reads and writes the configuration file.
type Store struct {
	path string
	log  logger.Logger

	mu         sync.Mutex
	lastDigest [sha256.Size]byte
}

func NewStore(path string, log logger.Logger) *Store {
	if path == "" {
		path = DefaultFileName
	}
	if log == nil {
		log = logger.NoOpLogger{}
	}
	return &Store{path: filepath.Clean(path), log: log}
}

func (s *Store) Path() string {
	return s.path
}

// Load reads the configuration, writing a default file first when none
// exists. Missing fields are back-filled.
func (s *Store) Load() (*Config, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		s.log.Info("Store", "configuration not found, creating default", map[string]interface{}{
			"path": s.path,
		})
		if err := s.Save(DefaultConfig()); err != nil {
			return nil, err
		}
		data, err = os.ReadFile(s.path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", s.path, err)
	}

	cfg, repairs, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", s.path, err)
	}
	for _, r := range repairs {
		s.log.Warning("Store", "invalid color replaced", map[string]interface{}{
			"note":  r.Index,
			"field": r.Field,
			"value": r.Value,
		})
	}
	s.remember(data)

	s.log.Debug("Store", "configuration loaded", map[string]interface{}{
		"path":   s.path,
		"notes":  len(cfg.Notes),
		"colors": len(cfg.Colors),
	})
	return cfg, nil
}

// Save replaces the configuration file atomically.
func (s *Store) Save(cfg *Config) error {
	data, err := Encode(cfg)
	if err != nil {
		return err
	}
	if err := writeFileAtomic(s.path, data, filePerm); err != nil {
		return fmt.Errorf("failed to save %s: %w", s.path, err)
	}
	s.remember(data)

	s.log.Debug("Store", "configuration saved", map[string]interface{}{
		"path":  s.path,
		"notes": len(cfg.Notes),
	})
	return nil
}

func (s *Store) remember(data []byte) {
	sum := sha256.Sum256(data)
	s.mu.Lock()
	s.lastDigest = sum
	s.mu.Unlock()
}

// isOwnContent reports whether data equals the last content this store read
// or wrote.
func (s *Store) isOwnContent(data []byte) bool {
	sum := sha256.Sum256(data)
	s.mu.Lock()
	defer s.mu.Unlock()
	return sum == s.lastDigest
}
