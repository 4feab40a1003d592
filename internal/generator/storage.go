package generator

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
)

// Storage receives exported artifacts. Implementations must be safe for
// sequential use from a single build.
type Storage interface {
	// WriteFile persists content at a root-relative path, creating parent
	// directories as needed.
	WriteFile(relPath string, content []byte) error
	// Clean removes every previously exported artifact.
	Clean() error
}

// DirStorage writes artifacts under a root directory on the local filesystem.
type DirStorage struct {
	root string
}

// NewDirStorage returns storage rooted at dir.
func NewDirStorage(dir string) *DirStorage {
	return &DirStorage{root: dir}
}

func (s *DirStorage) WriteFile(relPath string, content []byte) error {
	target := filepath.Join(s.root, filepath.FromSlash(relPath))
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("generator: ensure dir for %s: %w", relPath, err)
	}
	if err := os.WriteFile(target, content, 0o644); err != nil {
		return fmt.Errorf("generator: write %s: %w", relPath, err)
	}
	return nil
}

func (s *DirStorage) Clean() error {
	if s.root == "" || s.root == "/" {
		return fmt.Errorf("generator: refusing to clean root %q", s.root)
	}
	if err := os.RemoveAll(s.root); err != nil {
		return fmt.Errorf("generator: clean %s: %w", s.root, err)
	}
	return nil
}

// MemoryStorage keeps artifacts in memory. Used by tests and dry runs.
type MemoryStorage struct {
	mu    sync.Mutex
	files map[string][]byte
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{files: map[string][]byte{}}
}

func (s *MemoryStorage) WriteFile(relPath string, content []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	buf := make([]byte, len(content))
	copy(buf, content)
	s.files[relPath] = buf
	return nil
}

func (s *MemoryStorage) Clean() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.files = map[string][]byte{}
	return nil
}

// File returns the stored content for a relative path.
func (s *MemoryStorage) File(relPath string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	content, ok := s.files[relPath]
	return content, ok
}

// Paths lists every stored path in sorted order.
func (s *MemoryStorage) Paths() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	paths := make([]string, 0, len(s.files))
	for p := range s.files {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}
