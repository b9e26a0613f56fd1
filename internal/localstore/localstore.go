// Package localstore is the guest-mode persistence backend: a small durable
// key-value store with one JSON-serialized array per collection, written
// after every mutation and read once at engine start.
package localstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"jewelcart/internal/domain"
)

const (
	cartKey      = "cart"
	wishlistKey  = "wishlist"
	videoCartKey = "video_cart"
)

// Store persists guest collections under a directory, one file per key.
type Store struct {
	mu  sync.Mutex
	dir string
}

// Open prepares a store rooted at dir, creating it if needed.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create store dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

func (s *Store) LoadCart() ([]domain.Line, error) {
	var lines []domain.Line
	if err := s.load(cartKey, &lines); err != nil {
		return nil, err
	}
	return lines, nil
}

func (s *Store) SaveCart(lines []domain.Line) error {
	return s.save(cartKey, lines)
}

func (s *Store) LoadWishlist() ([]domain.WishlistEntry, error) {
	var entries []domain.WishlistEntry
	if err := s.load(wishlistKey, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (s *Store) SaveWishlist(entries []domain.WishlistEntry) error {
	return s.save(wishlistKey, entries)
}

func (s *Store) LoadVideoCart() ([]domain.Line, error) {
	var lines []domain.Line
	if err := s.load(videoCartKey, &lines); err != nil {
		return nil, err
	}
	return lines, nil
}

func (s *Store) SaveVideoCart(lines []domain.Line) error {
	return s.save(videoCartKey, lines)
}

// Clear removes all persisted collections. Called on login so stale guest
// data cannot leak back in on a later logout.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, key := range []string{cartKey, wishlistKey, videoCartKey} {
		if err := os.Remove(s.path(key)); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("clear %s: %w", key, err)
		}
	}
	return nil
}

func (s *Store) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

func (s *Store) load(key string, out interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read %s: %w", key, err)
	}
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode %s: %w", key, err)
	}
	return nil
}

// save writes the full collection via a temp file and rename, so a crash
// mid-write never leaves a truncated key behind.
func (s *Store) save(key string, v interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	tmp, err := os.CreateTemp(s.dir, key+"-*.tmp")
	if err != nil {
		return fmt.Errorf("temp file for %s: %w", key, err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close %s: %w", key, err)
	}
	if err := os.Rename(tmp.Name(), s.path(key)); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("rename %s: %w", key, err)
	}
	return nil
}
