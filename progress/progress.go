// Package progress stores which levels are unlocked and completed, the best
// completion times and the host settings.
package progress

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/quasilyte/gdata"
)

const (
	progressKey = "progress"
	settingsKey = "settings"
)

// ErrUnknownLevel is returned for level names the store does not track.
var ErrUnknownLevel = errors.New("unknown level")

// Storage is the key/value backend. *gdata.Manager implements it.
type Storage interface {
	LoadItem(itemKey string) ([]byte, error)
	SaveItem(itemKey string, data []byte) error
}

// Entry is the saved state of one level. A zero BestTime means the level was
// never completed.
type Entry struct {
	Name      string  `json:"name"`
	Unlocked  bool    `json:"unlocked"`
	Completed bool    `json:"completed"`
	BestTime  float64 `json:"bestTime,omitempty"`
}

// Settings are the debug view's saved preferences.
type Settings struct {
	MasterVolume    float64 `json:"masterVolume"`
	ResolutionIndex int     `json:"resolutionIndex"`
	Fullscreen      bool    `json:"fullscreen"`
	ShowPhysics     bool    `json:"showPhysics"`
}

type saved struct {
	Selected string  `json:"selected"`
	Levels   []Entry `json:"levels"`
}

// Store holds the progress of every level in play order.
type Store struct {
	Selected string
	Levels   []Entry

	storage Storage
}

// DefaultLevels are tracked when a store is created without names.
var DefaultLevels = []string{"Level One", "Level Two", "Level Three", "Level Four", "Level Five"}

// New returns a store tracking the named levels in play order, all unlocked.
// A nil storage keeps progress in memory only.
func New(storage Storage, names ...string) *Store {
	if len(names) == 0 {
		names = DefaultLevels
	}
	levels := make([]Entry, len(names))
	for i, name := range names {
		levels[i] = Entry{Name: name, Unlocked: true}
	}
	return &Store{
		Selected: levels[0].Name,
		Levels:   levels,
		storage:  storage,
	}
}

// Open returns a store backed by gdata under appName.
func Open(appName string, names ...string) (*Store, error) {
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return nil, fmt.Errorf("open progress: %w", err)
	}
	return New(m, names...), nil
}

// Load replaces the in-memory progress with the saved one. Missing data
// keeps the defaults. Saved levels the store does not know are ignored.
func (s *Store) Load() error {
	if s.storage == nil {
		return nil
	}
	data, err := s.storage.LoadItem(progressKey)
	if err != nil {
		return fmt.Errorf("load progress: %w", err)
	}
	if len(data) == 0 {
		return nil
	}

	var sv saved
	if err := json.Unmarshal(data, &sv); err != nil {
		return fmt.Errorf("parse progress: %w", err)
	}
	for _, e := range sv.Levels {
		if i := s.index(e.Name); i >= 0 {
			s.Levels[i] = e
		}
	}
	if s.index(sv.Selected) >= 0 {
		s.Selected = sv.Selected
	}
	return nil
}

// Save writes the progress to storage.
func (s *Store) Save() error {
	if s.storage == nil {
		return nil
	}
	data, err := json.Marshal(saved{Selected: s.Selected, Levels: s.Levels})
	if err != nil {
		return fmt.Errorf("serialize progress: %w", err)
	}
	if err := s.storage.SaveItem(progressKey, data); err != nil {
		return fmt.Errorf("save progress: %w", err)
	}
	return nil
}

// Complete marks a level completed, keeps the faster time, unlocks the next
// level and saves. It reports whether seconds is a new best time.
func (s *Store) Complete(name string, seconds float64) (bool, error) {
	i := s.index(name)
	if i < 0 {
		return false, fmt.Errorf("complete %q: %w", name, ErrUnknownLevel)
	}
	e := &s.Levels[i]
	e.Completed = true
	best := e.BestTime == 0 || seconds < e.BestTime
	if best {
		e.BestTime = seconds
	}
	if i+1 < len(s.Levels) {
		s.Levels[i+1].Unlocked = true
	}

	if err := s.Save(); err != nil {
		log.Printf("Warning: %v", err)
		return best, err
	}
	return best, nil
}

// Select makes name the current level. Locked levels cannot be selected.
func (s *Store) Select(name string) error {
	i := s.index(name)
	if i < 0 {
		return fmt.Errorf("select %q: %w", name, ErrUnknownLevel)
	}
	if !s.Levels[i].Unlocked {
		return fmt.Errorf("select %q: level is locked", name)
	}
	s.Selected = name
	return nil
}

// Entry returns the saved state of a level.
func (s *Store) Entry(name string) (Entry, bool) {
	i := s.index(name)
	if i < 0 {
		return Entry{}, false
	}
	return s.Levels[i], true
}

// LoadSettings returns the saved settings, or nil when none were saved.
func (s *Store) LoadSettings() (*Settings, error) {
	if s.storage == nil {
		return nil, nil
	}
	data, err := s.storage.LoadItem(settingsKey)
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}
	if len(data) == 0 {
		return nil, nil
	}
	var settings Settings
	if err := json.Unmarshal(data, &settings); err != nil {
		return nil, fmt.Errorf("parse settings: %w", err)
	}
	return &settings, nil
}

func (s *Store) SaveSettings(settings Settings) error {
	if s.storage == nil {
		return nil
	}
	data, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("serialize settings: %w", err)
	}
	if err := s.storage.SaveItem(settingsKey, data); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}

func (s *Store) index(name string) int {
	for i, e := range s.Levels {
		if e.Name == name {
			return i
		}
	}
	return -1
}
