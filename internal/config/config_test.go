package config

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "REPLY_DELAY_MS", "SESSION_IDLE_TTL_MIN", "CONTENT_FILE", "LOG_FILE", "LOG_LEVEL", "CORS_ALLOWED_ORIGINS"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load err: %v", err)
	}
	if cfg.Server.Addr != ":8080" {
		t.Fatalf("expected :8080, got %s", cfg.Server.Addr)
	}
	if cfg.Chat.ReplyDelay != 1500*time.Millisecond {
		t.Fatalf("expected 1.5s delay, got %s", cfg.Chat.ReplyDelay)
	}
	if cfg.Chat.SessionIdleTTL != time.Hour {
		t.Fatalf("expected 1h idle ttl, got %s", cfg.Chat.SessionIdleTTL)
	}
	if len(cfg.Server.AllowedOrigins) != 1 || cfg.Server.AllowedOrigins[0] != "*" {
		t.Fatalf("expected wildcard origin, got %v", cfg.Server.AllowedOrigins)
	}
	if cfg.Log.Level != slog.LevelInfo {
		t.Fatalf("expected info level, got %s", cfg.Log.Level)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "127.0.0.1:9090")
	t.Setenv("REPLY_DELAY_MS", "0")
	t.Setenv("SESSION_IDLE_TTL_MIN", "5")
	t.Setenv("CONTENT_FILE", " /etc/wellnexa/content.yaml ")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://localhost:5173, https://wellnexa.example ,")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load err: %v", err)
	}
	if cfg.Server.Addr != "127.0.0.1:9090" {
		t.Fatalf("unexpected addr %s", cfg.Server.Addr)
	}
	if cfg.Chat.ReplyDelay != 0 {
		t.Fatalf("expected zero delay, got %s", cfg.Chat.ReplyDelay)
	}
	if cfg.Chat.SessionIdleTTL != 5*time.Minute {
		t.Fatalf("expected 5m ttl, got %s", cfg.Chat.SessionIdleTTL)
	}
	if cfg.Content.Path != "/etc/wellnexa/content.yaml" {
		t.Fatalf("unexpected content path %q", cfg.Content.Path)
	}
	if cfg.Log.Level != slog.LevelDebug {
		t.Fatalf("expected debug level, got %s", cfg.Log.Level)
	}
	if len(cfg.Server.AllowedOrigins) != 2 || cfg.Server.AllowedOrigins[1] != "https://wellnexa.example" {
		t.Fatalf("unexpected origins %v", cfg.Server.AllowedOrigins)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := map[string][2]string{
		"port with space": {"PORT", "80 80"},
		"negative delay":  {"REPLY_DELAY_MS", "-1"},
		"non-numeric":     {"REPLY_DELAY_MS", "soon"},
		"negative ttl":    {"SESSION_IDLE_TTL_MIN", "-5"},
	}
	for name, kv := range cases {
		t.Run(name, func(t *testing.T) {
			t.Setenv(kv[0], kv[1])
			if _, err := Load(); err == nil {
				t.Fatalf("expected error for %s=%q", kv[0], kv[1])
			}
		})
	}
}

func TestSetupLoggerWithWritersFansOut(t *testing.T) {
	var stderr, file bytes.Buffer
	logger := SetupLoggerWithWriters(&stderr, &file, slog.LevelInfo)

	logger.Debug("hidden")
	logger.Info("session opened", "session", "abc")

	if !strings.Contains(stderr.String(), "session opened") {
		t.Fatalf("expected text output, got %q", stderr.String())
	}
	var entry map[string]any
	if err := json.Unmarshal(file.Bytes(), &entry); err != nil {
		t.Fatalf("expected one JSON line, got %q: %v", file.String(), err)
	}
	if entry["session"] != "abc" {
		t.Fatalf("unexpected JSON entry %v", entry)
	}
}

func TestSetupLoggerWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wellnexa.log")
	logger, cleanup := SetupLogger(path, slog.LevelInfo)
	logger.Info("hello")
	if err := cleanup(); err != nil {
		t.Fatalf("cleanup err: %v", err)
	}
}
