package server

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AlexZuga94/El-rival-m-s-debil-online/internal/game"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "elrival.hcl")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.hcl"))
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:3000", cfg.ListenAddress())
	assert.Equal(t, "info", cfg.Server.LogLevel)
	assert.Equal(t, game.DefaultChain, cfg.Game.Chain)
	require.NoError(t, cfg.Validate())
}

func TestLoadConfigFull(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `
server {
  address   = "127.0.0.1"
  port      = 4500
  log_level = "debug"
}

game {
  chain             = [1, 5, 10]
  round_time        = 30
  min_time          = 12
  final_intro_delay = 2
}

question "Ciencia" {
  prompt = "¿Símbolo químico del oro?"
  answer = "Au"
}

question "Geografía" {
  prompt = "¿Capital de Perú?"
  answer = "Lima"
}
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "127.0.0.1:4500", cfg.ListenAddress())
	assert.Equal(t, "debug", cfg.Server.LogLevel)

	rules := cfg.Rules()
	assert.Equal(t, []int{1, 5, 10}, rules.Chain)
	assert.Equal(t, 30, rules.RoundTime)
	assert.Equal(t, 12, rules.MinTime)
	assert.Equal(t, 2*time.Second, rules.IntroDelay)

	catalog := cfg.Catalog()
	require.Len(t, catalog, 2)
	assert.Equal(t, 1, catalog[0].ID)
	assert.Equal(t, "Ciencia", catalog[0].Category)
	assert.Equal(t, "Au", catalog[0].Answer)
	assert.Equal(t, 2, catalog[1].ID)
}

func TestLoadConfigPartialFillsDefaults(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `
server {
  port = 8080
}
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:8080", cfg.ListenAddress())
	assert.Equal(t, game.DefaultChain, cfg.Game.Chain)
	assert.Equal(t, 20, cfg.Game.RoundTime)
	assert.Equal(t, 10, cfg.Game.MinTime)
	assert.Nil(t, cfg.Catalog(), "no question blocks selects the built-in catalog")
}

func TestLoadConfigParseError(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `server { port = `)
	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestConfigValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"port too low", func(c *Config) { c.Server.Port = 0 }},
		{"port too high", func(c *Config) { c.Server.Port = 70000 }},
		{"negative chain value", func(c *Config) { c.Game.Chain = []int{1, -2, 5} }},
		{"non-increasing chain", func(c *Config) { c.Game.Chain = []int{1, 5, 5} }},
		{"zero min_time", func(c *Config) { c.Game.MinTime = 0 }},
		{"round_time below min_time", func(c *Config) { c.Game.RoundTime = 5 }},
		{"empty question prompt", func(c *Config) {
			c.Questions = []QuestionConfig{{Category: "X", Prompt: "", Answer: "y"}}
		}},
		{"empty question answer", func(c *Config) {
			c.Questions = []QuestionConfig{{Category: "X", Prompt: "y?", Answer: ""}}
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}

	assert.NoError(t, DefaultConfig().Validate())
}
