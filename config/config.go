package config

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"snake-ai/ai"
)

// Front ends
const (
	FrontendWindow   = "window"
	FrontendTerminal = "terminal"
	FrontendHeadless = "headless"
)

// Config holds all application configuration
type Config struct {
	Frontend      string `json:"frontend"`
	SpeedMs       int    `json:"speed_ms"`
	Seed          uint64 `json:"seed"` // 0 picks a seed from the clock
	Autopilot     bool   `json:"autopilot"`
	Policy        string `json:"policy"`
	Rounds        int    `json:"rounds"` // headless only
	SpectateAddr  string `json:"spectate_addr"`
	Record        bool   `json:"record"`
	History       bool   `json:"history"`
	Mute          bool   `json:"mute"`
	AssetsDir     string `json:"assets_dir"`
	DataDir       string `json:"data_dir"`
	HighScorePath string `json:"highscore_path"`
	CellSize      int    `json:"cell_size"`
	Offset        int    `json:"offset"`
}

// Default returns the built-in settings
func Default() Config {
	return Config{
		Frontend:      FrontendWindow,
		SpeedMs:       200,
		Policy:        "nearest",
		Rounds:        100,
		History:       true,
		AssetsDir:     ".",
		DataDir:       "data",
		HighScorePath: "highscore.txt",
		CellSize:      30,
		Offset:        75,
	}
}

// Tick returns the simulation interval
func (c Config) Tick() time.Duration {
	return time.Duration(c.SpeedMs) * time.Millisecond
}

// RecordsDir is where per-round JSONL files go
func (c Config) RecordsDir() string {
	return filepath.Join(c.DataDir, "records")
}

// HistoryPath is the sqlite round database
func (c Config) HistoryPath() string {
	return filepath.Join(c.DataDir, "rounds.db")
}

// TargetPolicy parses Policy
func (c Config) TargetPolicy() (ai.TargetPolicy, error) {
	return ai.ParsePolicy(c.Policy)
}

// Validate rejects settings the game cannot run with
func (c Config) Validate() error {
	switch c.Frontend {
	case FrontendWindow, FrontendTerminal, FrontendHeadless:
	default:
		return fmt.Errorf("unknown frontend %q", c.Frontend)
	}
	if c.SpeedMs <= 0 {
		return fmt.Errorf("speed must be positive, got %d", c.SpeedMs)
	}
	if c.Frontend == FrontendHeadless && c.Rounds <= 0 {
		return fmt.Errorf("rounds must be positive, got %d", c.Rounds)
	}
	if c.CellSize <= 0 || c.Offset < 0 {
		return fmt.Errorf("invalid cell size %d / offset %d", c.CellSize, c.Offset)
	}
	if _, err := c.TargetPolicy(); err != nil {
		return err
	}
	return nil
}

// LoadFile overlays the JSON file at path onto c. Keys absent from the file
// keep their current value.
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	if err := json.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overlays SNAKE_* environment variables
func (c *Config) ApplyEnv(getenv func(string) string) {
	if v := getenv("SNAKE_SPECTATE_ADDR"); v != "" {
		c.SpectateAddr = v
	}
	if v := getenv("SNAKE_HIGHSCORE_PATH"); v != "" {
		c.HighScorePath = v
	}
	if v := getenv("SNAKE_DATA_DIR"); v != "" {
		c.DataDir = v
	}
}

// Load builds the configuration from defaults, then the -config file, then
// the environment, then the remaining command line flags.
func Load(name string, args []string, getenv func(string) string, output io.Writer) (Config, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(output)

	def := Default()
	var flagged Config
	configPath := fs.String("config", "", "Path to a JSON config file")
	fs.StringVar(&flagged.Frontend, "frontend", def.Frontend, "Front end: window, terminal or headless")
	fs.IntVar(&flagged.SpeedMs, "speed", def.SpeedMs, "Tick interval in milliseconds (lower = faster)")
	fs.Uint64Var(&flagged.Seed, "seed", def.Seed, "Random seed for entity placement (0 = from clock)")
	fs.BoolVar(&flagged.Autopilot, "autopilot", def.Autopilot, "Start with the autopilot engaged")
	fs.StringVar(&flagged.Policy, "policy", def.Policy, "Autopilot target policy: nearest or safe")
	fs.IntVar(&flagged.Rounds, "rounds", def.Rounds, "Rounds to play in headless mode")
	fs.StringVar(&flagged.SpectateAddr, "spectate", def.SpectateAddr, "Serve the spectator API on this address")
	fs.BoolVar(&flagged.Record, "record", def.Record, "Write every tick to a JSONL file per round")
	fs.BoolVar(&flagged.History, "history", def.History, "Keep finished rounds in sqlite")
	fs.BoolVar(&flagged.Mute, "mute", def.Mute, "Disable sound")
	fs.StringVar(&flagged.AssetsDir, "assets", def.AssetsDir, "Directory holding Graphics/ and Sounds/")
	fs.StringVar(&flagged.DataDir, "data", def.DataDir, "Directory for the round history and records")
	fs.StringVar(&flagged.HighScorePath, "highscore", def.HighScorePath, "High score file")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	if fs.NArg() > 0 {
		return Config{}, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	cfg := def
	if *configPath != "" {
		if err := cfg.LoadFile(*configPath); err != nil {
			return Config{}, err
		}
	}
	cfg.ApplyEnv(getenv)

	// Only flags given explicitly override the file and environment
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "frontend":
			cfg.Frontend = flagged.Frontend
		case "speed":
			cfg.SpeedMs = flagged.SpeedMs
		case "seed":
			cfg.Seed = flagged.Seed
		case "autopilot":
			cfg.Autopilot = flagged.Autopilot
		case "policy":
			cfg.Policy = flagged.Policy
		case "rounds":
			cfg.Rounds = flagged.Rounds
		case "spectate":
			cfg.SpectateAddr = flagged.SpectateAddr
		case "record":
			cfg.Record = flagged.Record
		case "history":
			cfg.History = flagged.History
		case "mute":
			cfg.Mute = flagged.Mute
		case "assets":
			cfg.AssetsDir = flagged.AssetsDir
		case "data":
			cfg.DataDir = flagged.DataDir
		case "highscore":
			cfg.HighScorePath = flagged.HighScorePath
		}
	})

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// IsHelp reports whether err came from -h or -help
func IsHelp(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}
