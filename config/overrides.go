package config

import (
	"fmt"
	"io/fs"

	"gopkg.in/yaml.v3"
)

// tuning mirrors the global configuration for YAML overrides. Keys that are
// absent from the file keep their current value.
type tuning struct {
	Player       PlayerConfig       `yaml:"player"`
	Enemy        EnemyConfig        `yaml:"enemy"`
	Block        BlockConfig        `yaml:"block"`
	Grapple      GrappleConfig      `yaml:"grapple"`
	Spring       SpringConfig       `yaml:"spring"`
	Camera       CameraConfig       `yaml:"camera"`
	Level        LevelConfig        `yaml:"level"`
	ContactAudio ContactAudioConfig `yaml:"contactAudio"`
	Ticker       TickerConfig       `yaml:"ticker"`
	Physics      PhysicsConfig      `yaml:"physics"`
	Audio        AudioConfig        `yaml:"audio"`
}

// ApplyOverrides decodes a YAML tuning document over the current globals.
func ApplyOverrides(data []byte) error {
	t := tuning{
		Player:       Player,
		Enemy:        Enemy,
		Block:        Block,
		Grapple:      Grapple,
		Spring:       Spring,
		Camera:       Camera,
		Level:        Level,
		ContactAudio: ContactAudio,
		Ticker:       Ticker,
		Physics:      Physics,
		Audio:        Audio,
	}
	if err := yaml.Unmarshal(data, &t); err != nil {
		return fmt.Errorf("decode tuning: %w", err)
	}
	if t.Grapple.MaxInstances < 1 {
		return fmt.Errorf("grapple.maxInstances must be at least 1, got %d", t.Grapple.MaxInstances)
	}
	if t.Ticker.MaxDelta <= 0 {
		return fmt.Errorf("ticker.maxDelta must be positive, got %v", t.Ticker.MaxDelta)
	}

	Player = t.Player
	Enemy = t.Enemy
	Block = t.Block
	Grapple = t.Grapple
	Spring = t.Spring
	Camera = t.Camera
	Level = t.Level
	ContactAudio = t.ContactAudio
	Ticker = t.Ticker
	Physics = t.Physics
	Audio = t.Audio
	return nil
}

// LoadOverrides reads a YAML tuning file from fsys and applies it. It takes an
// fs.FS so callers can pass embed.FS or os.DirFS.
func LoadOverrides(fsys fs.FS, path string) error {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return fmt.Errorf("read tuning %s: %w", path, err)
	}
	if err := ApplyOverrides(data); err != nil {
		return fmt.Errorf("apply tuning %s: %w", path, err)
	}
	return nil
}
