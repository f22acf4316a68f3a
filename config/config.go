package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/yohamta/donburi/ecs"
)

// Default is the only render/system layer the arena uses.
const Default ecs.LayerID = iota

// CombatConfig holds the knobs of the combat core.
type CombatConfig struct {
	// BufferTimeout is how long an incomplete combo survives.
	BufferTimeout time.Duration `toml:"buffer_timeout"`
	// DefaultMaxJumps applies to characters that do not set maximum_jumps.
	DefaultMaxJumps uint32 `toml:"default_max_jumps"`
	// HealthBarEase is how long the health bar takes to catch up.
	HealthBarEase time.Duration `toml:"health_bar_ease"`
}

// PhysicsConfig configures the rigid-body world.
type PhysicsConfig struct {
	// Gravity is along y; world space is y-up so it is negative.
	Gravity    float64 `toml:"gravity"`
	Iterations int     `toml:"iterations"`
	// TickRate is simulation steps per second.
	TickRate int `toml:"tick_rate"`
}

// MatchConfig configures rounds.
type MatchConfig struct {
	Countdown time.Duration `toml:"countdown"`
	// Results is how long a finished round stays up before the next one.
	Results     time.Duration `toml:"results"`
	MaxFighters int           `toml:"max_fighters"`
	// SpawnNudge is the step used to move a blocked spawn point upwards.
	SpawnNudge     float64 `toml:"spawn_nudge"`
	SpawnNudgeMax  int     `toml:"spawn_nudge_max"`
	FighterW       float64 `toml:"fighter_width"`
	FighterH       float64 `toml:"fighter_height"`
	DeathZoneDepth float64 `toml:"death_zone_depth"`
}

// BotConfig tunes scripted fighters' navigation grid.
type BotConfig struct {
	// NavCell is the side of one navigation cell in world units.
	NavCell float64 `toml:"nav_cell"`
	// JumpCells and JumpSpan bound a jump edge, up and sideways, in cells.
	JumpCells int `toml:"jump_cells"`
	JumpSpan  int `toml:"jump_span"`
}

// ServerConfig configures the headless server.
type ServerConfig struct {
	Name          string `toml:"name"`
	Version       string `toml:"version"`
	Port          uint   `toml:"port"`
	TickRate      int    `toml:"tick_rate"`
	Arena         string `toml:"arena"`
	// CharactersDir and LevelsDir override the built-in assets when set.
	CharactersDir string `toml:"characters_dir"`
	LevelsDir     string `toml:"levels_dir"`
	Watch         bool   `toml:"watch"`
}

// ClientConfig configures the local client window.
type ClientConfig struct {
	Width     int     `toml:"width"`
	Height    int     `toml:"height"`
	PixelsPer float64 `toml:"pixels_per_unit"`
	Title     string  `toml:"title"`
}

// Config groups every section for loading from disk.
type Config struct {
	Combat  CombatConfig  `toml:"combat"`
	Physics PhysicsConfig `toml:"physics"`
	Match   MatchConfig   `toml:"match"`
	Bot     BotConfig     `toml:"bot"`
	Server  ServerConfig  `toml:"server"`
	Client  ClientConfig  `toml:"client"`
}

// Global configuration instances
var C *Config
var Combat CombatConfig
var Physics PhysicsConfig
var Match MatchConfig
var Bot BotConfig
var Server ServerConfig
var Client ClientConfig

func init() {
	C = Defaults()
	apply(C)
}

// Defaults returns a fresh copy of the built-in configuration.
func Defaults() *Config {
	return &Config{
		Combat: CombatConfig{
			BufferTimeout:   500 * time.Millisecond,
			DefaultMaxJumps: 2,
			HealthBarEase:   250 * time.Millisecond,
		},
		Physics: PhysicsConfig{
			Gravity:    -980,
			Iterations: 10,
			TickRate:   60,
		},
		Match: MatchConfig{
			Countdown:      3 * time.Second,
			Results:        4 * time.Second,
			MaxFighters:    4,
			SpawnNudge:     16,
			SpawnNudgeMax:  32,
			FighterW:       32,
			FighterH:       48,
			DeathZoneDepth: 64,
		},
		Bot: BotConfig{
			NavCell:   32,
			JumpCells: 4,
			JumpSpan:  5,
		},
		Server: ServerConfig{
			Name:          "Arena Server",
			Port:          7373,
			TickRate:      60,
			Arena:         "arena",
		},
		Client: ClientConfig{
			Width:     960,
			Height:    540,
			PixelsPer: 1,
			Title:     "Arena",
		},
	}
}

// Load overlays the TOML file at path on top of the current configuration.
// A missing file leaves the configuration untouched.
func Load(path string) error {
	next := *C
	if _, err := toml.DecodeFile(path, &next); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	C = &next
	apply(C)
	return nil
}

func apply(c *Config) {
	Combat = c.Combat
	Physics = c.Physics
	Match = c.Match
	Bot = c.Bot
	Server = c.Server
	Client = c.Client
}
