package config

import (
	"testing"
	"time"
)

func TestLoadServerConfigDefaults(t *testing.T) {
	t.Setenv("PORT", "")

	cfg, err := loadServerConfig()
	if err != nil {
		t.Fatalf("loadServerConfig err: %v", err)
	}
	if cfg.Addr != ":8080" {
		t.Fatalf("expected :8080, got %s", cfg.Addr)
	}
}

func TestLoadServerConfigAcceptsFullAddr(t *testing.T) {
	t.Setenv("PORT", "127.0.0.1:9000")

	cfg, err := loadServerConfig()
	if err != nil {
		t.Fatalf("loadServerConfig err: %v", err)
	}
	if cfg.Addr != "127.0.0.1:9000" {
		t.Fatalf("unexpected addr: %s", cfg.Addr)
	}
}

func TestLoadServerConfigRejectsWhitespace(t *testing.T) {
	t.Setenv("PORT", "80 80")

	if _, err := loadServerConfig(); err == nil {
		t.Fatal("expected error for whitespace in PORT")
	}
}

func TestSpeechConfigEnabledByAPIKey(t *testing.T) {
	t.Setenv("GROQ_API_KEY", "gsk_test")
	t.Setenv("SPEECH_TIMEOUT", "")

	cfg, err := loadSpeechConfig()
	if err != nil {
		t.Fatalf("loadSpeechConfig err: %v", err)
	}
	if !cfg.Enabled {
		t.Fatal("expected speech to be enabled with an API key")
	}
	if cfg.ASRModel != "whisper-large-v3" || cfg.TTSModel != "playai-tts" {
		t.Fatalf("unexpected model defaults: %#v", cfg)
	}
	if cfg.Timeout != 30 {
		t.Fatalf("expected default 30s timeout, got %d", cfg.Timeout)
	}
}

func TestSpeechConfigDisabledWithoutKey(t *testing.T) {
	t.Setenv("GROQ_API_KEY", "")

	cfg, err := loadSpeechConfig()
	if err != nil {
		t.Fatalf("loadSpeechConfig err: %v", err)
	}
	if cfg.Enabled {
		t.Fatal("expected speech to be disabled without an API key")
	}
}

func TestConversationConfigDefaultWindow(t *testing.T) {
	t.Setenv("MEDITATION_DEBOUNCE_MS", "")

	cfg, err := loadConversationConfig()
	if err != nil {
		t.Fatalf("loadConversationConfig err: %v", err)
	}
	if cfg.DebounceWindow != 2500*time.Millisecond {
		t.Fatalf("expected 2.5s default window, got %v", cfg.DebounceWindow)
	}
}

func TestConversationConfigOverride(t *testing.T) {
	t.Setenv("MEDITATION_DEBOUNCE_MS", "1200")

	cfg, err := loadConversationConfig()
	if err != nil {
		t.Fatalf("loadConversationConfig err: %v", err)
	}
	if cfg.DebounceWindow != 1200*time.Millisecond {
		t.Fatalf("expected 1.2s window, got %v", cfg.DebounceWindow)
	}
}

func TestConversationConfigRejectsNonPositiveWindow(t *testing.T) {
	t.Setenv("MEDITATION_DEBOUNCE_MS", "0")

	if _, err := loadConversationConfig(); err == nil {
		t.Fatal("expected error for non-positive debounce window")
	}
}

func TestSpotifyConfigEnabled(t *testing.T) {
	t.Setenv("SPOTIFY_CLIENT_ID", "id")
	t.Setenv("SPOTIFY_CLIENT_SECRET", "secret")

	if !loadSpotifyConfig().Enabled() {
		t.Fatal("expected spotify to be enabled with both credentials")
	}

	t.Setenv("SPOTIFY_CLIENT_SECRET", "")
	if loadSpotifyConfig().Enabled() {
		t.Fatal("expected spotify to be disabled without a secret")
	}
}
