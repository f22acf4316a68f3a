// Package settings persists the local client's choices between runs: key
// bindings for both local seats, the selected characters, the opponent and
// the arena.
package settings

import (
	"encoding/json"
	"fmt"

	cfg "github.com/automoto/arena-mp/config"
	"github.com/quasilyte/gdata"
	"go.uber.org/zap"
)

const itemKey = "settings"

// Binding maps action names (see config.ActionID) to key names as ebiten
// spells them.
type Binding map[string]string

// Settings is what gets written to disk.
type Settings struct {
	Arena      string     `json:"arena"`
	Characters [2]string  `json:"characters"`
	Bot        string     `json:"bot"`
	Bindings   [2]Binding `json:"bindings"`
}

// VersusBot reports whether the second seat is scripted.
func (s *Settings) VersusBot() bool {
	return s.Bot != ""
}

func Defaults() Settings {
	return Settings{
		Arena:      "arena",
		Characters: [2]string{"brawler", "gunner"},
		Bot:        "chaser",
		Bindings: [2]Binding{
			{
				"up":       "W",
				"down":     "S",
				"left":     "A",
				"right":    "D",
				"attack_a": "F",
				"attack_b": "G",
				"reset":    "R",
			},
			{
				"up":       "ArrowUp",
				"down":     "ArrowDown",
				"left":     "ArrowLeft",
				"right":    "ArrowRight",
				"attack_a": "Comma",
				"attack_b": "Period",
				"reset":    "Slash",
			},
		},
	}
}

// fill copies defaults into anything a saved file left empty.
func (s *Settings) fill() {
	def := Defaults()
	if s.Arena == "" {
		s.Arena = def.Arena
	}
	for i := range s.Characters {
		if s.Characters[i] == "" {
			s.Characters[i] = def.Characters[i]
		}
		if s.Bindings[i] == nil {
			s.Bindings[i] = Binding{}
		}
		for action, key := range def.Bindings[i] {
			if _, ok := s.Bindings[i][action]; !ok {
				s.Bindings[i][action] = key
			}
		}
	}
}

// Validate rejects bindings that name unknown actions.
func (s *Settings) Validate() error {
	for i, b := range s.Bindings {
		for action := range b {
			if _, ok := cfg.ParseAction(action); !ok {
				return fmt.Errorf("seat %d binds unknown action %q", i+1, action)
			}
		}
	}
	return nil
}

// Store is the subset of gdata.Manager the settings need.
type Store interface {
	LoadItem(key string) ([]byte, error)
	SaveItem(key string, data []byte) error
}

type Manager struct {
	store Store
	log   *zap.Logger
}

// Open uses gdata's per-user storage for app.
func Open(app string, log *zap.Logger) (*Manager, error) {
	m, err := gdata.Open(gdata.Config{AppName: app})
	if err != nil {
		return nil, fmt.Errorf("open settings storage: %w", err)
	}
	return New(m, log), nil
}

func New(store Store, log *zap.Logger) *Manager {
	if log == nil {
		log = zap.NewNop()
	}
	return &Manager{store: store, log: log}
}

// Load returns the saved settings, or the defaults when nothing usable is
// stored.
func (m *Manager) Load() Settings {
	data, err := m.store.LoadItem(itemKey)
	if err != nil {
		m.log.Warn("could not load settings", zap.Error(err))
		return Defaults()
	}
	if len(data) == 0 {
		return Defaults()
	}

	var s Settings
	if err := json.Unmarshal(data, &s); err != nil {
		m.log.Warn("could not parse saved settings", zap.Error(err))
		return Defaults()
	}
	if err := s.Validate(); err != nil {
		m.log.Warn("discarding saved settings", zap.Error(err))
		return Defaults()
	}
	s.fill()
	return s
}

func (m *Manager) Save(s Settings) error {
	if err := s.Validate(); err != nil {
		return err
	}
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("serialize settings: %w", err)
	}
	if err := m.store.SaveItem(itemKey, data); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}
