package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"wolfarena/internal/game"
)

// LoadConfig loads configuration using Viper
// Priority order: Environment variables > Config file > Defaults
//
// Validation is left to the caller so command-line overrides can be
// applied between loading and validating.
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()

	// Set config file details
	v.SetConfigName("arena")
	v.SetConfigType("yaml")

	// Add config paths
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/wolfarena")
	}

	// Enable environment variable binding
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Bind the environment variable names the simulator has always used
	v.BindEnv("server.port", "PORT")
	v.BindEnv("server.host", "HOST")
	v.BindEnv("oracle.provider", "ORACLE_PROVIDER")
	v.BindEnv("oracle.azure.endpoint", "AZURE_OPENAI_ENDPOINT")
	v.BindEnv("oracle.azure.apikey", "AZURE_OPENAI_KEY")
	v.BindEnv("oracle.azure.deployment", "AZURE_OPENAI_DEPLOYMENT")
	v.BindEnv("oracle.gemini.apikey", "GEMINI_API_KEY")
	v.BindEnv("logs.dir", "LOG_DIR")
	v.BindEnv("logs.sqlitepath", "SQLITE_PATH")

	// Game defaults
	v.SetDefault("game.discussionrounds", 2)
	v.SetDefault("game.randomizeroles", true)
	v.SetDefault("game.seed", 0)

	// Oracle defaults
	v.SetDefault("oracle.provider", "azure")
	v.SetDefault("oracle.timeout", "30s")
	v.SetDefault("oracle.ratelimit", 0.0)
	v.SetDefault("oracle.rateburst", 1)
	v.SetDefault("oracle.azure.apiversion", "2024-06-01")
	v.SetDefault("oracle.gemini.model", "gemini-2.0-flash")

	// Log defaults
	v.SetDefault("logs.dir", ".")

	// Batch defaults
	v.SetDefault("batch.games", 1)
	v.SetDefault("batch.concurrency", 0)
	v.SetDefault("batch.dir", "experiments")

	// Server defaults
	v.SetDefault("server.readtimeout", "15s")
	v.SetDefault("server.writetimeout", "15s")
	v.SetDefault("server.idletimeout", "60s")
	v.SetDefault("server.shutdowntimeout", "30s")
	v.SetDefault("server.requesttimeout", "60s")

	// Rate limiting defaults
	v.SetDefault("server.ratelimit", 10.0)
	v.SetDefault("server.ratelimitburst", 20)

	// Request limits
	v.SetDefault("server.maxrequestsize", 1048576) // 1MB

	// Try to read config file (it's optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			if strings.Contains(err.Error(), "no such file or directory") {
				// File doesn't exist, continue with defaults
			} else {
				return nil, fmt.Errorf("error reading config file: %w", err)
			}
		}
		// Config file not found; continue with env vars and defaults
	}

	// Create config struct
	cfg := &Config{}

	// Unmarshal into the struct
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// An explicit roster file wins over any inline roster
	if cfg.Game.RosterFile != "" {
		roster, err := LoadRoster(cfg.Game.RosterFile)
		if err != nil {
			return nil, err
		}
		cfg.Game.Players = roster
	}
	if len(cfg.Game.Players) == 0 {
		cfg.Game.Players = DefaultRoster()
	}

	return cfg, nil
}

// LoadRoster reads a standalone YAML roster document of the form:
//
//	players:
//	  - name: Alice
//	    role: Werewolf
func LoadRoster(path string) ([]game.RosterEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read roster file: %w", err)
	}

	var doc struct {
		Players []game.RosterEntry `yaml:"players"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse roster file %s: %w", path, err)
	}
	if len(doc.Players) == 0 {
		return nil, fmt.Errorf("roster file %s lists no players", path)
	}

	return doc.Players, nil
}
