package server

import (
	"fmt"
	"os"
	"time"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/AlexZuga94/El-rival-m-s-debil-online/internal/game"
)

// Config represents the complete server configuration
type Config struct {
	Server    *ServerSettings  `hcl:"server,block"`
	Game      *GameSettings    `hcl:"game,block"`
	Questions []QuestionConfig `hcl:"question,block"`
}

// ServerSettings contains server-level configuration
type ServerSettings struct {
	Address   string `hcl:"address,optional"`
	Port      int    `hcl:"port,optional"`
	PublicURL string `hcl:"public_url,optional"`
	LogLevel  string `hcl:"log_level,optional"`
}

// GameSettings tunes the game rules
type GameSettings struct {
	Chain           []int `hcl:"chain,optional"`
	RoundTime       int   `hcl:"round_time,optional"`
	MinTime         int   `hcl:"min_time,optional"`
	FinalIntroDelay int   `hcl:"final_intro_delay,optional"`
}

// QuestionConfig defines one catalog entry. When no question blocks are
// present the built-in catalog is used.
type QuestionConfig struct {
	Category string `hcl:"category,label"`
	Prompt   string `hcl:"prompt"`
	Answer   string `hcl:"answer"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Server: &ServerSettings{
			Address:  "0.0.0.0",
			Port:     3000,
			LogLevel: "info",
		},
		Game: &GameSettings{
			Chain:           game.DefaultChain,
			RoundTime:       20,
			MinTime:         10,
			FinalIntroDelay: 4,
		},
	}
}

// LoadConfig loads configuration from an HCL file. A missing file yields
// the defaults.
func LoadConfig(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var config Config
	diags = gohcl.DecodeBody(file.Body, nil, &config)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	// Apply defaults for missing values
	if config.Server == nil {
		config.Server = &ServerSettings{}
	}
	if config.Server.Address == "" {
		config.Server.Address = "0.0.0.0"
	}
	if config.Server.Port == 0 {
		config.Server.Port = 3000
	}
	if config.Server.LogLevel == "" {
		config.Server.LogLevel = "info"
	}

	if config.Game == nil {
		config.Game = &GameSettings{}
	}
	if len(config.Game.Chain) == 0 {
		config.Game.Chain = game.DefaultChain
	}
	if config.Game.RoundTime == 0 {
		config.Game.RoundTime = 20
	}
	if config.Game.MinTime == 0 {
		config.Game.MinTime = 10
	}
	if config.Game.FinalIntroDelay == 0 {
		config.Game.FinalIntroDelay = 4
	}

	return &config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Server.Port)
	}

	for i, v := range c.Game.Chain {
		if v <= 0 {
			return fmt.Errorf("chain value %d must be positive", v)
		}
		if i > 0 && v <= c.Game.Chain[i-1] {
			return fmt.Errorf("chain values must be strictly increasing, got %v", c.Game.Chain)
		}
	}
	if c.Game.MinTime <= 0 {
		return fmt.Errorf("min_time must be positive")
	}
	if c.Game.RoundTime < c.Game.MinTime {
		return fmt.Errorf("round_time %d must be at least min_time %d", c.Game.RoundTime, c.Game.MinTime)
	}

	for _, q := range c.Questions {
		if q.Prompt == "" {
			return fmt.Errorf("question in category %q has an empty prompt", q.Category)
		}
		if q.Answer == "" {
			return fmt.Errorf("question %q has an empty answer", q.Prompt)
		}
	}

	return nil
}

// ListenAddress returns the host:port the server binds to
func (c *Config) ListenAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Address, c.Server.Port)
}

// Rules converts the game settings into session rules
func (c *Config) Rules() game.Rules {
	return game.Rules{
		Chain:      c.Game.Chain,
		RoundTime:  c.Game.RoundTime,
		MinTime:    c.Game.MinTime,
		IntroDelay: time.Duration(c.Game.FinalIntroDelay) * time.Second,
	}
}

// Catalog converts configured question blocks into the game catalog. Nil
// when none are configured, which selects the built-in set.
func (c *Config) Catalog() []game.Question {
	if len(c.Questions) == 0 {
		return nil
	}
	catalog := make([]game.Question, len(c.Questions))
	for i, q := range c.Questions {
		catalog[i] = game.Question{
			ID:       i + 1,
			Category: q.Category,
			Prompt:   q.Prompt,
			Answer:   q.Answer,
		}
	}
	return catalog
}
