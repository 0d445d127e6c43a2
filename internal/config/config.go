// Package config holds the game's tunable rules and timings.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"hungry-horace/internal/component"
	"hungry-horace/internal/system"
)

// ErrInvalid is wrapped by every Validate failure.
var ErrInvalid = errors.New("invalid config")

// Config is the full set of game settings. Distances are in tiles, speeds in
// pixels per tick, sizes in pixels.
type Config struct {
	TileSize    int `yaml:"tile_size"`
	PlayerSpeed int `yaml:"player_speed"`
	EnemySpeed  int `yaml:"enemy_speed"`
	SpeedStep   int `yaml:"speed_step"` // added to both speeds each time the level list wraps

	FoodPoints       int `yaml:"food_points"`
	SpecialPoints    int `yaml:"special_points"`     // special food, bell, eaten enemy
	SpecialFoodScore int `yaml:"special_food_score"` // level score that triggers the gift
	EnemyScoreStep   int `yaml:"enemy_score_step"`   // enemy i wakes above i*step

	EnemyTick     time.Duration `yaml:"enemy_tick"`
	FrameInterval time.Duration `yaml:"frame_interval"`

	FlankDistance   int `yaml:"flank_distance"`
	RetreatDistance int `yaml:"retreat_distance"`
	PursueDistance  int `yaml:"pursue_distance"`

	Enemies []component.Strategy `yaml:"enemies"`

	LevelDir   string `yaml:"level_dir"` // empty: built-in levels
	LevelIndex string `yaml:"level_index"`
}

// Default returns the stock settings.
func Default() Config {
	return Config{
		TileSize:         12,
		PlayerSpeed:      3,
		EnemySpeed:       2,
		SpeedStep:        1,
		FoodPoints:       10,
		SpecialPoints:    100,
		SpecialFoodScore: 400,
		EnemyScoreStep:   80,
		EnemyTick:        50 * time.Millisecond,
		FrameInterval:    40 * time.Millisecond,
		FlankDistance:    4,
		RetreatDistance:  8,
		PursueDistance:   12,
		Enemies: []component.Strategy{
			component.StrategyDirect,
			component.StrategyFlank,
			component.StrategyAmbush,
		},
		LevelIndex: "index.yaml",
	}
}

// Load reads a YAML file over the defaults. An empty path yields Default().
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Parse overlays YAML data on the defaults and validates the result.
// Unknown keys are rejected so typos do not pass silently.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("unmarshal: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that the settings describe a playable game.
func (c Config) Validate() error {
	positive := []struct {
		name string
		v    int
	}{
		{"tile_size", c.TileSize},
		{"player_speed", c.PlayerSpeed},
		{"enemy_speed", c.EnemySpeed},
		{"flank_distance", c.FlankDistance},
		{"retreat_distance", c.RetreatDistance},
		{"pursue_distance", c.PursueDistance},
	}
	for _, p := range positive {
		if p.v <= 0 {
			return fmt.Errorf("%w: %s must be positive, got %d", ErrInvalid, p.name, p.v)
		}
	}
	if c.SpeedStep < 0 || c.FoodPoints < 0 || c.SpecialPoints < 0 || c.SpecialFoodScore < 0 || c.EnemyScoreStep < 0 {
		return fmt.Errorf("%w: scores and speed_step must not be negative", ErrInvalid)
	}
	if c.PlayerSpeed >= c.TileSize || c.EnemySpeed >= c.TileSize {
		return fmt.Errorf("%w: speeds must be below tile_size %d", ErrInvalid, c.TileSize)
	}
	if c.RetreatDistance >= c.PursueDistance {
		return fmt.Errorf("%w: retreat_distance %d must be below pursue_distance %d",
			ErrInvalid, c.RetreatDistance, c.PursueDistance)
	}
	if c.EnemyTick <= 0 || c.FrameInterval <= 0 {
		return fmt.Errorf("%w: enemy_tick and frame_interval must be positive", ErrInvalid)
	}
	if len(c.Enemies) == 0 {
		return fmt.Errorf("%w: at least one enemy is required", ErrInvalid)
	}
	if c.LevelIndex == "" {
		return fmt.Errorf("%w: level_index is empty", ErrInvalid)
	}
	return nil
}

// Tuning returns the targeting distances.
func (c Config) Tuning() system.Tuning {
	return system.Tuning{
		FlankDistance:   c.FlankDistance,
		RetreatDistance: c.RetreatDistance,
		PursueDistance:  c.PursueDistance,
	}
}
