package jsonstore

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"

	"github.com/idilsaglam/wyw/internal/store"
)

// JSON-backed slot storage. One human-readable file per key inside a data
// directory. Reads and writes hold an exclusive lock on a sibling .lock file
// so a CLI invocation and a running TUI never interleave.

const (
	lockTimeout   = 3 * time.Second
	lockRetryStep = 100 * time.Millisecond
)

// Store is a store.Slot backed by files in Dir.
type Store struct {
	Dir string
}

var _ store.Slot = (*Store)(nil)

// New returns a file slot store rooted at dir. The directory is created on
// first write.
func New(dir string) *Store {
	return &Store{Dir: dir}
}

// Path returns the file a key is stored in.
func (s *Store) Path(key string) (string, error) {
	if key == "" || key != filepath.Base(key) || strings.HasPrefix(key, ".") {
		return "", fmt.Errorf("invalid key %q", key)
	}
	return filepath.Join(s.Dir, key+".json"), nil
}

func (s *Store) Get(key string) ([]byte, bool, error) {
	p, err := s.Path(key)
	if err != nil {
		return nil, false, err
	}

	var b []byte
	err = s.withLock(p, func() error {
		var rerr error
		b, rerr = os.ReadFile(p)
		return rerr
	})
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("read file: %w", err)
	}
	return b, true, nil
}

func (s *Store) Set(key string, value []byte) error {
	p, err := s.Path(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}
	return s.withLock(p, func() error {
		if err := os.WriteFile(p, value, 0o644); err != nil {
			return fmt.Errorf("write file: %w", err)
		}
		return nil
	})
}

func (s *Store) withLock(path string, fn func() error) error {
	if _, err := os.Stat(s.Dir); errors.Is(err, os.ErrNotExist) {
		// nothing to lock against yet; the read reports absence
		return fn()
	}

	ctx, cancel := context.WithTimeout(context.Background(), lockTimeout)
	defer cancel()

	lock := flock.New(path + ".lock")
	locked, err := lock.TryLockContext(ctx, lockRetryStep)
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !locked {
		return fmt.Errorf("could not acquire lock on %s", path)
	}
	defer func() { _ = lock.Unlock() }()

	return fn()
}
