package snapshot

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/nvm-examples/nvm-go/pkg/nvm"
)

// Load reads a snapshot file. A missing file returns an error wrapping
// fs.ErrNotExist.
func Load(path string) (*nvm.ControllerInfo, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}
	return Unmarshal(data, format)
}

// Save writes info to path, creating parent directories as needed.
func Save(path string, info *nvm.ControllerInfo) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}

	data, err := Marshal(info, format)
	if err != nil {
		return fmt.Errorf("encode %s snapshot: %w", format, err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Store keeps named snapshots in a directory, one file per name.
type Store struct {
	mu     sync.Mutex
	dir    string
	format Format
}

// NewStore creates a store rooted at dir that writes new snapshots in format.
func NewStore(dir string, format Format) *Store {
	if format == 0 {
		format = FormatYAML
	}
	return &Store{dir: dir, format: format}
}

// Dir returns the store directory.
func (s *Store) Dir() string {
	return s.dir
}

// Path returns the file a name maps to in the store's write format.
func (s *Store) Path(name string) string {
	return filepath.Join(s.dir, name+s.format.Extension())
}

// Save stores info under name.
func (s *Store) Save(name string, info *nvm.ControllerInfo) error {
	if err := validateName(name); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return Save(s.Path(name), info)
}

// Load reads the snapshot stored under name, in any supported format.
func (s *Store) Load(name string) (*nvm.ControllerInfo, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	path, err := s.find(name)
	if err != nil {
		return nil, err
	}
	return Load(path)
}

// List returns the names of all snapshots in the store, sorted.
// A missing directory is an empty store.
func (s *Store) List() ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := os.ReadDir(s.dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if _, err := FormatFromPath(e.Name()); err != nil {
			continue
		}
		name := strings.TrimSuffix(e.Name(), filepath.Ext(e.Name()))
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}

// find locates the file for name, preferring the store's write format.
func (s *Store) find(name string) (string, error) {
	candidates := []string{s.Path(name)}
	for _, ext := range []string{".yaml", ".yml", ".json", ".cbor"} {
		candidates = append(candidates, filepath.Join(s.dir, name+ext))
	}
	for _, p := range candidates {
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}
	return "", fmt.Errorf("snapshot %q: %w", name, os.ErrNotExist)
}

func validateName(name string) error {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("invalid snapshot name %q", name)
	}
	return nil
}
