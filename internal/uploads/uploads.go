// Package uploads persists request files under a single directory with
// unique names and removes stale ones in the background.
package uploads

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Store owns the upload directory.
type Store struct {
	dir    string
	maxAge time.Duration
}

// NewStore creates the upload directory if needed.
func NewStore(dir string, maxAge time.Duration) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &Store{dir: dir, maxAge: maxAge}, nil
}

// Dir returns the upload directory path.
func (s *Store) Dir() string { return s.dir }

// Save writes r to a uniquely named file and returns its path.
func (s *Store) Save(r io.Reader, originalName string) (string, error) {
	name := filepath.Base(originalName)
	if name == "" || name == "." || name == "/" {
		name = "upload.pdf"
	}
	path := filepath.Join(s.dir, fmt.Sprintf("%s_%s", uuid.NewString(), name))

	out, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}
	if _, err := io.Copy(out, r); err != nil {
		out.Close()
		os.Remove(path)
		return "", fmt.Errorf("write upload file: %w", err)
	}
	if err := out.Close(); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("close upload file: %w", err)
	}
	return path, nil
}

// TempPath returns a fresh unique path in the upload dir without creating
// the file, for callers that write it themselves.
func (s *Store) TempPath(suffix string) string {
	return filepath.Join(s.dir, uuid.NewString()+suffix)
}

// Remove deletes a saved file, ignoring errors.
func (s *Store) Remove(path string) {
	if path != "" {
		_ = os.Remove(path)
	}
}

// CleanupStale removes regular files older than maxAge and reports how many
// were removed.
func (s *Store) CleanupStale() int {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return 0
	}
	now := time.Now()
	removed := 0
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		if now.Sub(info.ModTime()) >= s.maxAge {
			if os.Remove(filepath.Join(s.dir, e.Name())) == nil {
				removed++
			}
		}
	}
	return removed
}

// Janitor runs CleanupStale on a fixed interval until ctx is done.
func (s *Store) Janitor(ctx context.Context, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.CleanupStale(); n > 0 {
				log.Debug().Int("removed", n).Str("dir", s.dir).Msg("removed stale uploads")
			}
		}
	}
}
