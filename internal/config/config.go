package config

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

// GameConfig is the JSON-file configuration for new sessions.
type GameConfig struct {
	MaxPlayers   int      `json:"max_players"`
	DeckCount    int      `json:"deck_count"`
	EnabledRules []string `json:"enabled_rules"`

	BotsEnabled bool `json:"bots_enabled"`
	// BotMinDelaySeconds/BotMaxDelaySeconds bound a bot's randomized reaction
	// time before it plays or slaps.
	BotMinDelaySeconds int `json:"bot_min_delay_seconds"`
	BotMaxDelaySeconds int `json:"bot_max_delay_seconds"`
	// BotAutoFillDelaySeconds configures how long a lone human waits in a
	// lobby before a bot is seated.
	BotAutoFillDelaySeconds int `json:"bot_auto_fill_delay_seconds"`
}

var (
	cfg      *GameConfig
	loadOnce sync.Once
	loadErr  error
)

// LoadGameConfig loads the game configuration from the given path.
func LoadGameConfig(path string) error {
	loadOnce.Do(func() {
		data, err := os.ReadFile(path)
		if err != nil {
			loadErr = fmt.Errorf("failed to read game config: %w", err)
			return
		}

		var c GameConfig
		if err := json.Unmarshal(data, &c); err != nil {
			loadErr = fmt.Errorf("failed to unmarshal game config: %w", err)
			return
		}
		cfg = &c
	})
	return loadErr
}

// GetGameConfig returns the loaded configuration with defaults applied, or
// pure defaults when no file was loaded.
func GetGameConfig() GameConfig {
	c := GameConfig{}
	if cfg != nil {
		c = *cfg
	}
	if c.MaxPlayers == 0 {
		c.MaxPlayers = 6
	}
	if c.DeckCount == 0 {
		c.DeckCount = 1
	}
	if len(c.EnabledRules) == 0 {
		c.EnabledRules = []string{"doubles", "sandwich", "top-bottom"}
	}
	if c.BotMinDelaySeconds == 0 {
		c.BotMinDelaySeconds = 1
	}
	if c.BotMaxDelaySeconds == 0 {
		c.BotMaxDelaySeconds = 3
	}
	if c.BotAutoFillDelaySeconds == 0 {
		c.BotAutoFillDelaySeconds = 5
	}
	// A max below min would break the delay window arithmetic.
	if c.BotMaxDelaySeconds < c.BotMinDelaySeconds {
		c.BotMaxDelaySeconds = c.BotMinDelaySeconds
	}
	return c
}
