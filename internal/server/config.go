package server

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/sjoves/poker-shootout/game"
)

// ServerConfig represents the complete server configuration
type ServerConfig struct {
	Server ServerSettings `hcl:"server,block"`
	Game   *GameSettings  `hcl:"game,block"`
}

// ServerSettings contains server-level configuration
type ServerSettings struct {
	Address  string `hcl:"address,optional"`
	Port     int    `hcl:"port,optional"`
	LogLevel string `hcl:"log_level,optional"`
	LogFile  string `hcl:"log_file,optional"`
}

// GameSettings tunes the rule set handed to every session this server
// hosts. Zero values fall back to the engine defaults.
type GameSettings struct {
	BlitzSeconds     int `hcl:"blitz_seconds,optional"`
	LevelSeconds     int `hcl:"level_seconds,optional"`
	BonusSeconds     int `hcl:"bonus_seconds,optional"`
	OrbitUnlockLevel int `hcl:"orbit_unlock_level,optional"`
	Sharpshooter     int `hcl:"sharpshooter_charges,optional"`
	TimeShift        int `hcl:"time_shift_charges,optional"`
	Redraw           int `hcl:"redraw_charges,optional"`
}

// DefaultServerConfig returns default server configuration
func DefaultServerConfig() *ServerConfig {
	defaults := game.DefaultConfig()
	return &ServerConfig{
		Server: ServerSettings{
			Address:  "localhost",
			Port:     8080,
			LogLevel: "info",
			LogFile:  "shootout-server.log",
		},
		Game: &GameSettings{
			BlitzSeconds:     defaults.BlitzSeconds,
			LevelSeconds:     defaults.LevelSeconds,
			BonusSeconds:     defaults.BonusSeconds,
			OrbitUnlockLevel: defaults.OrbitUnlockLevel,
			Sharpshooter:     defaults.Charges.Sharpshooter,
			TimeShift:        defaults.Charges.TimeShift,
			Redraw:           defaults.Charges.Redraw,
		},
	}
}

// LoadServerConfig loads server configuration from HCL file
func LoadServerConfig(filename string) (*ServerConfig, error) {
	// Check if file exists
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return DefaultServerConfig(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var config ServerConfig
	diags = gohcl.DecodeBody(file.Body, nil, &config)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	// Apply defaults for missing values
	if config.Server.Address == "" {
		config.Server.Address = "localhost"
	}
	if config.Server.Port == 0 {
		config.Server.Port = 8080
	}
	if config.Server.LogLevel == "" {
		config.Server.LogLevel = "info"
	}
	if config.Server.LogFile == "" {
		config.Server.LogFile = "shootout-server.log"
	}

	// Apply defaults to the game block
	defaults := game.DefaultConfig()
	if config.Game == nil {
		config.Game = DefaultServerConfig().Game
	} else {
		if config.Game.BlitzSeconds == 0 {
			config.Game.BlitzSeconds = defaults.BlitzSeconds
		}
		if config.Game.LevelSeconds == 0 {
			config.Game.LevelSeconds = defaults.LevelSeconds
		}
		if config.Game.BonusSeconds == 0 {
			config.Game.BonusSeconds = defaults.BonusSeconds
		}
		if config.Game.OrbitUnlockLevel == 0 {
			config.Game.OrbitUnlockLevel = defaults.OrbitUnlockLevel
		}
		if config.Game.Sharpshooter == 0 {
			config.Game.Sharpshooter = defaults.Charges.Sharpshooter
		}
		if config.Game.TimeShift == 0 {
			config.Game.TimeShift = defaults.Charges.TimeShift
		}
		if config.Game.Redraw == 0 {
			config.Game.Redraw = defaults.Charges.Redraw
		}
	}

	return &config, nil
}

// Validate validates the server configuration
func (c *ServerConfig) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Server.Port)
	}

	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[c.Server.LogLevel] {
		return fmt.Errorf("invalid log level: %s", c.Server.LogLevel)
	}

	if c.Game != nil {
		if c.Game.BlitzSeconds < 0 {
			return fmt.Errorf("blitz_seconds must not be negative")
		}
		if c.Game.LevelSeconds < 0 {
			return fmt.Errorf("level_seconds must not be negative")
		}
		if c.Game.BonusSeconds < 0 {
			return fmt.Errorf("bonus_seconds must not be negative")
		}
		if c.Game.OrbitUnlockLevel < 1 {
			return fmt.Errorf("orbit_unlock_level must be at least 1")
		}
		if c.Game.Sharpshooter < 0 || c.Game.TimeShift < 0 || c.Game.Redraw < 0 {
			return fmt.Errorf("power-up charges must not be negative")
		}
	}

	return nil
}

// GetServerAddress returns the full server address
func (c *ServerConfig) GetServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Address, c.Server.Port)
}

// GameConfig converts the game block into an engine configuration
func (c *ServerConfig) GameConfig() game.Config {
	if c.Game == nil {
		return game.DefaultConfig()
	}
	return game.Config{
		BlitzSeconds:     c.Game.BlitzSeconds,
		LevelSeconds:     c.Game.LevelSeconds,
		BonusSeconds:     c.Game.BonusSeconds,
		OrbitUnlockLevel: c.Game.OrbitUnlockLevel,
		Charges: game.Charges{
			Sharpshooter: c.Game.Sharpshooter,
			TimeShift:    c.Game.TimeShift,
			Redraw:       c.Game.Redraw,
		},
	}
}
