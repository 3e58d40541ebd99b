package config

import "testing"

// The loader is process-wide once-only, so file loading and the defaults that
// backfill unset fields are covered in a single sequence.
func TestLoadGameConfig(t *testing.T) {
	if err := LoadGameConfig("testdata/game_config.json"); err != nil {
		t.Fatalf("LoadGameConfig failed: %v", err)
	}

	cfg := GetGameConfig()
	if cfg.MaxPlayers != 4 {
		t.Fatalf("MaxPlayers = %d, want 4", cfg.MaxPlayers)
	}
	if cfg.DeckCount != 2 {
		t.Fatalf("DeckCount = %d, want 2", cfg.DeckCount)
	}
	if len(cfg.EnabledRules) != 2 || cfg.EnabledRules[0] != "doubles" {
		t.Fatalf("EnabledRules = %v", cfg.EnabledRules)
	}
	if !cfg.BotsEnabled {
		t.Fatal("BotsEnabled = false, want true")
	}
	if cfg.BotMinDelaySeconds != 2 {
		t.Fatalf("BotMinDelaySeconds = %d, want 2", cfg.BotMinDelaySeconds)
	}

	// Fields absent from the file fall back to defaults.
	if cfg.BotMaxDelaySeconds != 3 {
		t.Fatalf("BotMaxDelaySeconds = %d, want default 3", cfg.BotMaxDelaySeconds)
	}
	if cfg.BotAutoFillDelaySeconds != 5 {
		t.Fatalf("BotAutoFillDelaySeconds = %d, want default 5", cfg.BotAutoFillDelaySeconds)
	}

	// Subsequent loads are no-ops and keep the first result.
	if err := LoadGameConfig("testdata/does_not_exist.json"); err != nil {
		t.Fatalf("Second LoadGameConfig returned error: %v", err)
	}
	if got := GetGameConfig().MaxPlayers; got != 4 {
		t.Fatalf("Config changed on repeated load: MaxPlayers = %d", got)
	}
}

func TestGetGameConfigClampsBotDelayWindow(t *testing.T) {
	orig := cfg
	defer func() { cfg = orig }()
	cfg = &GameConfig{BotMinDelaySeconds: 5, BotMaxDelaySeconds: 2}

	c := GetGameConfig()
	if c.BotMinDelaySeconds != 5 {
		t.Fatalf("BotMinDelaySeconds = %d, want 5", c.BotMinDelaySeconds)
	}
	if c.BotMaxDelaySeconds != 5 {
		t.Fatalf("BotMaxDelaySeconds = %d, want clamped 5", c.BotMaxDelaySeconds)
	}
}
