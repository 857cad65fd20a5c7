// Package profile persists named locators to a small YAML file. The file is
// read lazily and rewritten wholesale on every mutation.
package profile

import (
	"errors"
	"io/fs"
	"os"
	"sort"

	"github.com/mtth/igloo/pkg/cerr"

	"gopkg.in/yaml.v3"
)

// DefaultName is used when no profile is selected explicitly.
const DefaultName = "default"

// Entry pairs a profile name with its locator.
type Entry struct {
	Name    string
	Locator string
}

// Store reads and writes the profile file at a fixed path. A missing file is
// treated as an empty store.
type Store struct {
	path string
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the backing file location.
func (s *Store) Path() string {
	return s.path
}

func (s *Store) load() (map[string]string, error) {
	data, rErr := os.ReadFile(s.path)
	if rErr != nil {
		if errors.Is(rErr, fs.ErrNotExist) {
			return map[string]string{}, nil
		}
		return nil, cerr.Wrap(cerr.ConfigLoadError, rErr, "cannot read profile file %q", s.path)
	}
	profiles := map[string]string{}
	if uErr := yaml.Unmarshal(data, &profiles); uErr != nil {
		return nil, cerr.Wrap(cerr.ConfigLoadError, uErr, "cannot parse profile file %q", s.path)
	}
	return profiles, nil
}

func (s *Store) save(profiles map[string]string) error {
	data, mErr := yaml.Marshal(profiles)
	if mErr != nil {
		return cerr.Wrap(cerr.ConfigLoadError, mErr, "cannot serialize profiles")
	}
	if wErr := os.WriteFile(s.path, data, 0600); wErr != nil {
		return cerr.Wrap(cerr.ConfigLoadError, wErr, "cannot write profile file %q", s.path)
	}
	return nil
}

// Resolve returns the locator saved under the given name.
func (s *Store) Resolve(name string) (string, error) {
	profiles, lErr := s.load()
	if lErr != nil {
		return "", lErr
	}
	locator, ok := profiles[name]
	if !ok {
		return "", cerr.New(cerr.ProfileNotFound, "profile %q not found in %q", name, s.path)
	}
	return locator, nil
}

// Add saves a locator under the given name, replacing any previous entry.
func (s *Store) Add(name, locator string) error {
	profiles, lErr := s.load()
	if lErr != nil {
		return lErr
	}
	profiles[name] = locator
	return s.save(profiles)
}

// Remove deletes the named entry.
func (s *Store) Remove(name string) error {
	profiles, lErr := s.load()
	if lErr != nil {
		return lErr
	}
	if _, ok := profiles[name]; !ok {
		return cerr.New(cerr.ProfileNotFound, "profile %q not found in %q", name, s.path)
	}
	delete(profiles, name)
	return s.save(profiles)
}

// List returns all entries sorted by name.
func (s *Store) List() ([]Entry, error) {
	profiles, lErr := s.load()
	if lErr != nil {
		return nil, lErr
	}
	entries := make([]Entry, 0, len(profiles))
	for name, locator := range profiles {
		entries = append(entries, Entry{Name: name, Locator: locator})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name < entries[j].Name
	})
	return entries, nil
}
