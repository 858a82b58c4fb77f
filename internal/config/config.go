package config

import (
	"fmt"
	"time"

	"wolfarena/internal/game"
)

// This file defines the configuration structures used by viper_config.go
// The actual loading is handled by viper in viper_config.go

// Config is the root configuration shared by the CLI and the service.
type Config struct {
	Game   GameSettings   `yaml:"game"`
	Oracle OracleSettings `yaml:"oracle"`
	Logs   LogSettings    `yaml:"logs"`
	Batch  BatchSettings  `yaml:"batch"`
	Server ServerSettings `yaml:"server"`
}

// GameSettings configures a single simulated game.
type GameSettings struct {
	// Players is the inline roster. RosterFile, when set, replaces it.
	Players    []game.RosterEntry `yaml:"players"`
	RosterFile string             `yaml:"rosterFile"`

	DiscussionRounds int  `yaml:"discussionRounds"`
	RandomizeRoles   bool `yaml:"randomizeRoles"`

	// Seed seeds each run's random source. Zero picks a time-based seed.
	Seed int64 `yaml:"seed"`
}

// OracleSettings selects and configures the text-generation provider.
type OracleSettings struct {
	// Provider is one of "azure", "gemini" or "script".
	Provider string `yaml:"provider"`

	// Timeout bounds each oracle call.
	Timeout time.Duration `yaml:"timeout"`

	// RateLimit caps outbound oracle calls per second across the whole
	// process. Zero disables throttling.
	RateLimit float64 `yaml:"rateLimit"`
	RateBurst int     `yaml:"rateBurst"`

	Azure  AzureSettings  `yaml:"azure"`
	Gemini GeminiSettings `yaml:"gemini"`
}

// AzureSettings carries the Azure OpenAI deployment coordinates.
type AzureSettings struct {
	Endpoint   string `yaml:"endpoint"`
	APIKey     string `yaml:"apiKey"`
	Deployment string `yaml:"deployment"`
	APIVersion string `yaml:"apiVersion"`
}

// GeminiSettings carries the Gemini API coordinates.
type GeminiSettings struct {
	APIKey string `yaml:"apiKey"`
	Model  string `yaml:"model"`
}

// LogSettings configures where game records land.
type LogSettings struct {
	// Dir is the base directory for per-game JSON log directories.
	// Empty disables file logging.
	Dir string `yaml:"dir"`

	// SQLitePath is the path of the results database. Empty disables it.
	SQLitePath string `yaml:"sqlitePath"`
}

// BatchSettings configures multi-game runs.
type BatchSettings struct {
	Games int `yaml:"games"`

	// Concurrency bounds how many games run at once. Zero means one per
	// CPU.
	Concurrency int `yaml:"concurrency"`

	// Dir is the base directory for batch output.
	Dir string `yaml:"dir"`
}

// ServerSettings contains the simulation service settings.
type ServerSettings struct {
	Port            string        `yaml:"port"`
	Host            string        `yaml:"host"`
	ReadTimeout     time.Duration `yaml:"readTimeout"`
	WriteTimeout    time.Duration `yaml:"writeTimeout"`
	IdleTimeout     time.Duration `yaml:"idleTimeout"`
	ShutdownTimeout time.Duration `yaml:"shutdownTimeout"`
	RequestTimeout  time.Duration `yaml:"requestTimeout"`

	// Rate limiting (using golang.org/x/time/rate)
	RateLimit      float64 `yaml:"rateLimit"`
	RateLimitBurst int     `yaml:"rateLimitBurst"`

	MaxRequestSize int64 `yaml:"maxRequestSize"`
}

// DefaultRoster returns the stock eight-player roster plus the moderator:
// two werewolves, a seer, a medic and four villagers.
func DefaultRoster() []game.RosterEntry {
	return []game.RosterEntry{
		{Name: "Player1", Role: game.RoleWerewolf},
		{Name: "Player2", Role: game.RoleWerewolf},
		{Name: "Player3", Role: game.RoleVillager},
		{Name: "Player4", Role: game.RoleVillager},
		{Name: "Player5", Role: game.RoleSeer},
		{Name: "Player6", Role: game.RoleMedic},
		{Name: "Player7", Role: game.RoleVillager},
		{Name: "Player8", Role: game.RoleVillager},
		{Name: "Moderator", Role: game.RoleModerator},
	}
}

// DefaultConfig returns a default configuration
func DefaultConfig() *Config {
	return &Config{
		Game: GameSettings{
			Players:          DefaultRoster(),
			DiscussionRounds: 2,
			RandomizeRoles:   true,
		},
		Oracle: OracleSettings{
			Provider:  "azure",
			Timeout:   30 * time.Second,
			RateBurst: 1,
			Azure:     AzureSettings{APIVersion: "2024-06-01"},
			Gemini:    GeminiSettings{Model: "gemini-2.0-flash"},
		},
		Logs: LogSettings{
			Dir: ".",
		},
		Batch: BatchSettings{
			Games: 1,
			Dir:   "experiments",
		},
		Server: ServerSettings{
			Port:            "", // Must be set via env
			Host:            "", // Must be set via env
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    15 * time.Second,
			IdleTimeout:     60 * time.Second,
			ShutdownTimeout: 30 * time.Second,
			RequestTimeout:  60 * time.Second,
			RateLimit:       10,
			RateLimitBurst:  20,
			MaxRequestSize:  1048576, // 1MB
		},
	}
}

// Validate checks if the configuration can run games.
func (c *Config) Validate() error {
	if c.Game.DiscussionRounds < 1 {
		return fmt.Errorf("discussionRounds must be at least 1")
	}
	if len(c.Game.Players) == 0 {
		return fmt.Errorf("a roster is required: set game.players or game.rosterFile")
	}
	if c.Batch.Games < 1 {
		return fmt.Errorf("batch games must be at least 1")
	}
	if c.Batch.Concurrency < 0 {
		return fmt.Errorf("batch concurrency cannot be negative")
	}
	if c.Oracle.Timeout <= 0 {
		return fmt.Errorf("oracle timeout must be positive")
	}
	if c.Oracle.RateLimit < 0 {
		return fmt.Errorf("oracle rateLimit cannot be negative")
	}

	switch c.Oracle.Provider {
	case "azure":
		if c.Oracle.Azure.Endpoint == "" || c.Oracle.Azure.APIKey == "" || c.Oracle.Azure.Deployment == "" {
			return fmt.Errorf("azure provider requires AZURE_OPENAI_ENDPOINT, AZURE_OPENAI_KEY and AZURE_OPENAI_DEPLOYMENT")
		}
	case "gemini":
		if c.Oracle.Gemini.APIKey == "" {
			return fmt.Errorf("gemini provider requires GEMINI_API_KEY")
		}
	case "script":
		// Offline provider, no credentials.
	default:
		return fmt.Errorf("unknown oracle provider %q", c.Oracle.Provider)
	}

	return nil
}

// ValidateServer checks the additional settings the HTTP service needs.
func (c *Config) ValidateServer() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT environment variable must be set")
	}
	if c.Server.Host == "" {
		return fmt.Errorf("HOST environment variable must be set")
	}
	if c.Server.RateLimit <= 0 {
		return fmt.Errorf("server rateLimit must be positive")
	}
	if c.Server.MaxRequestSize < 1024 {
		return fmt.Errorf("maxRequestSize must be at least 1KB")
	}
	return nil
}
