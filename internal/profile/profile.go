// Package profile persists the player's last choices (hero, difficulty,
// mode) and best depth between runs, using gdata for per-user storage.
package profile

import (
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// AppName is the gdata application name; it selects the data directory.
const AppName = "trapsweep"

const (
	profileObject   = "profile"
	profileProperty = "player"
)

// Profile is what gets remembered between sessions.
type Profile struct {
	Hero       string `yaml:"hero"`
	Difficulty string `yaml:"difficulty"`
	Mode       string `yaml:"mode"`
	BestDepth  int    `yaml:"best_depth"`
}

// Default returns the profile used before anything is saved.
func Default() Profile {
	return Profile{
		Hero:       "blank",
		Difficulty: "normal",
		Mode:       "trapsweep",
	}
}

// Manager loads and saves a Profile. A Manager without a gdata backend
// keeps the profile in memory only.
type Manager struct {
	mu      sync.Mutex
	store   *gdata.Manager
	current Profile
	logger  *log.Logger
}

// Open creates a Manager backed by gdata under appName. If the data
// directory cannot be opened the returned Manager works in memory and the
// error is returned alongside it.
func Open(appName string, logger *log.Logger) (*Manager, error) {
	store, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		m := NewManager(nil, logger)
		return m, fmt.Errorf("profile: open storage: %w", err)
	}
	return NewManager(store, logger), nil
}

// NewManager wraps an existing gdata manager, which may be nil, and loads
// the saved profile. Load failures fall back to Default.
func NewManager(store *gdata.Manager, logger *log.Logger) *Manager {
	if logger == nil {
		logger = log.Default()
	}
	m := &Manager{store: store, current: Default(), logger: logger}
	if err := m.Load(); err != nil {
		logger.Warn("Failed to load profile, using defaults", "err", err)
	}
	return m
}

// Persistent reports whether saves reach disk.
func (m *Manager) Persistent() bool {
	return m.store != nil
}

// Load reads the saved profile. A missing profile is not an error.
func (m *Manager) Load() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.store == nil || !m.store.ObjectPropExists(profileObject, profileProperty) {
		m.current = Default()
		return nil
	}

	data, err := m.store.LoadObjectProp(profileObject, profileProperty)
	if err != nil {
		m.current = Default()
		return fmt.Errorf("failed to load profile: %w", err)
	}

	loaded := Default()
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		m.current = Default()
		return fmt.Errorf("failed to unmarshal profile: %w", err)
	}
	m.current = loaded
	return nil
}

// Save writes the current profile. Without a backend it does nothing.
func (m *Manager) Save() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saveLocked()
}

func (m *Manager) saveLocked() error {
	if m.store == nil {
		return nil
	}
	data, err := yaml.Marshal(m.current)
	if err != nil {
		return fmt.Errorf("failed to marshal profile: %w", err)
	}
	if err := m.store.SaveObjectProp(profileObject, profileProperty, data); err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}
	m.logger.Debug("Profile saved", "hero", m.current.Hero, "difficulty", m.current.Difficulty)
	return nil
}

// Get returns a copy of the current profile.
func (m *Manager) Get() Profile {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

// Update applies fn to the profile and saves the result.
func (m *Manager) Update(fn func(*Profile)) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	fn(&m.current)
	return m.saveLocked()
}

// RecordDepth raises BestDepth to depth if it is deeper and saves.
// It reports whether a new best was set.
func (m *Manager) RecordDepth(depth int) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if depth <= m.current.BestDepth {
		return false, nil
	}
	m.current.BestDepth = depth
	return true, m.saveLocked()
}
