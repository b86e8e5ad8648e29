package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile error: %v", err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.Target.URL != DefaultTargetURL || cfg.Target.OutputPath != DefaultOutputPath {
		t.Errorf("unexpected target defaults: %+v", cfg.Target)
	}
	if cfg.Source != SourceBrowser {
		t.Errorf("Source = %q, want %q", cfg.Source, SourceBrowser)
	}
	if !cfg.Rod.Headless {
		t.Error("browser should be headless by default")
	}
	if cfg.GetNavigateTimeout() != 60*time.Second {
		t.Errorf("GetNavigateTimeout = %v", cfg.GetNavigateTimeout())
	}
	if cfg.GetTotalTimeout() != 30*time.Second {
		t.Errorf("GetTotalTimeout = %v", cfg.GetTotalTimeout())
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"empty url", func(c *Config) { c.Target.URL = "" }, "target.url"},
		{"empty output", func(c *Config) { c.Target.OutputPath = "" }, "target.output_path"},
		{"bad source", func(c *Config) { c.Source = "ftp" }, "source must be"},
		{"zero timeout", func(c *Config) { c.Rod.NavigateTimeout = 0 }, "navigate_timeout_s"},
		{"empty user agent", func(c *Config) { c.HTTP.UserAgent = "" }, "user_agent"},
		{"negative preview", func(c *Config) { c.Normalize.PreviewChars = -1 }, "preview_chars"},
		{"bad log level", func(c *Config) { c.Observability.LogLevel = "loud" }, "log_level"},
		{"log file without size", func(c *Config) {
			c.Observability.LogPath = "judgeman.log"
			c.Observability.LogMaxSizeMB = 0
		}, "log_max_size_mb"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q should mention %q", err.Error(), tt.want)
			}
		})
	}
}

func TestLoadConfig(t *testing.T) {
	path := writeTemp(t, "config.yaml", `
target:
  url: "https://www.elitigation.sg/gd/s/2010_SGHC_1"
  output_path: "out/case.html"
source: http
rod:
  navigate_timeout_s: 15
normalize:
  trim_nbsp: true
  collapse_spaces: true
observability:
  log_level: debug
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig error: %v", err)
	}

	if cfg.Target.URL != "https://www.elitigation.sg/gd/s/2010_SGHC_1" {
		t.Errorf("URL = %q", cfg.Target.URL)
	}
	if cfg.Target.MarkdownPath != DefaultMarkdownPath {
		t.Errorf("unset fields should keep defaults, MarkdownPath = %q", cfg.Target.MarkdownPath)
	}
	if cfg.Source != SourceHTTP {
		t.Errorf("Source = %q", cfg.Source)
	}
	if cfg.GetNavigateTimeout() != 15*time.Second {
		t.Errorf("GetNavigateTimeout = %v", cfg.GetNavigateTimeout())
	}
	if !cfg.Normalize.TrimNBSP || !cfg.Normalize.CollapseSpaces {
		t.Errorf("normalize flags not loaded: %+v", cfg.Normalize)
	}
	if cfg.HTTP.UserAgent != DefaultUserAgent {
		t.Errorf("UserAgent = %q", cfg.HTTP.UserAgent)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	if cfg, err := LoadConfig(""); err != nil || cfg.Source != SourceBrowser {
		t.Errorf("empty path should give defaults, got %v, %v", cfg, err)
	}

	if cfg, err := LoadConfig(writeTemp(t, "empty.yaml", "")); err != nil || cfg.Target.URL != DefaultTargetURL {
		t.Errorf("empty file should give defaults, got %v, %v", cfg, err)
	}

	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}

	if _, err := LoadConfig(writeTemp(t, "unknown.yaml", "targett:\n  url: x\n")); err == nil {
		t.Error("expected error for unknown field")
	}

}

func TestLoadConfigDefersValidation(t *testing.T) {
	path := writeTemp(t, "invalid.yaml", "source: pigeon\nobservability:\n  log_level: loud\n")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig should not validate, got %v", err)
	}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected file values to fail validation")
	}

	source, level := SourceFile, "debug"
	cfg.Apply(Overrides{Source: &source, LogLevel: &level})
	if err := cfg.Validate(); err != nil {
		t.Errorf("overrides should repair the file values, got %v", err)
	}
	if cfg.Source != SourceFile || cfg.Observability.LogLevel != "debug" {
		t.Errorf("overrides not applied: %q %q", cfg.Source, cfg.Observability.LogLevel)
	}
}

func TestApplyOverrides(t *testing.T) {
	cfg := Default()
	cfg.SelectorsFile = "from-file.yaml"

	logPath := "judgeman.log"
	cfg.Apply(Overrides{LogPath: &logPath})

	if cfg.Observability.LogPath != logPath {
		t.Errorf("LogPath = %q", cfg.Observability.LogPath)
	}
	if cfg.SelectorsFile != "from-file.yaml" || cfg.Source != SourceBrowser {
		t.Errorf("unset overrides changed values: %q %q", cfg.SelectorsFile, cfg.Source)
	}
}

func TestValidateLogLevels(t *testing.T) {
	for _, level := range []string{"", "debug", "Debug", "info", "warn", "warning", "WARNING", "error", "ERROR"} {
		cfg := Default()
		cfg.Observability.LogLevel = level
		if err := cfg.Validate(); err != nil {
			t.Errorf("log level %q rejected: %v", level, err)
		}
	}
}

func TestLoadSelectors(t *testing.T) {
	path := writeTemp(t, "selectors.yaml", `
title: "h1.title"
heading_class: "Heading"
`)

	selectors, err := LoadSelectors(path)
	if err != nil {
		t.Fatalf("LoadSelectors error: %v", err)
	}
	if selectors.Title != "h1.title" || selectors.HeadingClass != "Heading" {
		t.Errorf("overrides not applied: %+v", selectors)
	}
	if selectors.InfoTable != "#info-table" || selectors.SummaryCellIndex != 2 {
		t.Errorf("defaults not kept: %+v", selectors)
	}

	if _, err := LoadSelectors(writeTemp(t, "blank.yaml", "body_class: \"\"\n")); err == nil {
		t.Error("expected error for empty body_class")
	}
	if _, err := LoadSelectors(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestConfigSelectors(t *testing.T) {
	cfg := Default()
	selectors, err := cfg.Selectors()
	if err != nil {
		t.Fatalf("Selectors error: %v", err)
	}
	if selectors.Title != ".caseTitle" {
		t.Errorf("builtin Title = %q", selectors.Title)
	}

	cfg.SelectorsFile = writeTemp(t, "selectors.yaml", "paragraphs: \"div.judgment p\"\n")
	selectors, err = cfg.Selectors()
	if err != nil {
		t.Fatalf("Selectors error: %v", err)
	}
	if selectors.Paragraphs != "div.judgment p" {
		t.Errorf("Paragraphs = %q", selectors.Paragraphs)
	}
}

func TestValidateLLM(t *testing.T) {
	t.Setenv(LLMAPIKeyEnv, "")

	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("missing key must not fail Validate: %v", err)
	}
	if err := cfg.ValidateLLM(); err == nil || !strings.Contains(err.Error(), LLMAPIKeyEnv) {
		t.Errorf("expected missing key error, got %v", err)
	}

	t.Setenv(LLMAPIKeyEnv, "from-env")
	if got := cfg.GetLLMAPIKey(); got != "from-env" {
		t.Errorf("GetLLMAPIKey = %q", got)
	}
	if err := cfg.ValidateLLM(); err != nil {
		t.Errorf("ValidateLLM error: %v", err)
	}

	cfg.LLM.APIKey = "from-file"
	if got := cfg.GetLLMAPIKey(); got != "from-file" {
		t.Errorf("config key should win, got %q", got)
	}

	cfg.LLM.Model = ""
	if err := cfg.ValidateLLM(); err == nil {
		t.Error("expected error for empty model")
	}

	if cfg.GetLLMTimeout() != time.Minute {
		t.Errorf("GetLLMTimeout = %v", cfg.GetLLMTimeout())
	}
}
