package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

const (
	DefaultTargetURL    = "https://www.elitigation.sg/gd/s/2009_SGCA_3"
	DefaultOutputPath   = "judgeman.html"
	DefaultMarkdownPath = "judgeman.md"
	DefaultLLMModel     = "gemini-2.0-flash"
	DefaultLLMBaseURL   = "https://generativelanguage.googleapis.com/v1beta/openai"
	LLMAPIKeyEnv        = "JUDGEMAN_LLM_API_KEY"
	DefaultUserAgent    = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/126.0 Safari/537.36"
)

// Source kinds
const (
	SourceBrowser = "browser"
	SourceHTTP    = "http"
	SourceFile    = "file"
)

type Config struct {
	Target        TargetConfig        `yaml:"target"`
	Source        string              `yaml:"source"`
	Rod           RodConfig           `yaml:"rod"`
	HTTP          HttpConfig          `yaml:"http"`
	SelectorsFile string              `yaml:"selectors_file"`
	Normalize     NormalizeConfig     `yaml:"normalize"`
	Observability ObservabilityConfig `yaml:"observability"`
	LLM           LLMConfig           `yaml:"llm"`
}

type TargetConfig struct {
	URL          string `yaml:"url"`
	OutputPath   string `yaml:"output_path"`
	MarkdownPath string `yaml:"markdown_path"`
}

type RodConfig struct {
	ChromePath      string `yaml:"chrome_path"`
	Headless        bool   `yaml:"headless"`
	NoSandbox       bool   `yaml:"no_sandbox"`
	Stealth         bool   `yaml:"stealth"`
	NavigateTimeout int    `yaml:"navigate_timeout_s"`
}

type HttpConfig struct {
	UserAgent      string `yaml:"user_agent"`
	TotalTimeoutMS int    `yaml:"total_timeout_ms"`
	AcceptLanguage string `yaml:"accept_language"`
	RespectRobots  bool   `yaml:"respect_robots"`
}

type NormalizeConfig struct {
	TrimNBSP       bool `yaml:"trim_nbsp"`
	CollapseSpaces bool `yaml:"collapse_spaces"`
	PreviewChars   int  `yaml:"preview_chars"`
}

type ObservabilityConfig struct {
	LogPath       string `yaml:"log_path"`
	LogLevel      string `yaml:"log_level"`
	LogMaxSizeMB  int    `yaml:"log_max_size_mb"`
	LogMaxBackups int    `yaml:"log_max_backups"`
}

// LLMConfig points at an OpenAI-compatible chat completions endpoint. The
// default is Gemini's compatibility layer.
type LLMConfig struct {
	APIKey    string `yaml:"api_key"`
	Model     string `yaml:"model"`
	BaseURL   string `yaml:"base_url"`
	TimeoutMS int    `yaml:"timeout_ms"`
}

// Default returns the configuration used when no config file is given.
func Default() *Config {
	return &Config{
		Target: TargetConfig{
			URL:          DefaultTargetURL,
			OutputPath:   DefaultOutputPath,
			MarkdownPath: DefaultMarkdownPath,
		},
		Source: SourceBrowser,
		Rod: RodConfig{
			Headless:        true,
			NavigateTimeout: 60,
		},
		HTTP: HttpConfig{
			UserAgent:      DefaultUserAgent,
			TotalTimeoutMS: 30000,
			AcceptLanguage: "en-SG,en;q=0.9",
		},
		Normalize: NormalizeConfig{
			PreviewChars: 80,
		},
		Observability: ObservabilityConfig{
			LogLevel:      "info",
			LogMaxSizeMB:  10,
			LogMaxBackups: 3,
		},
		LLM: LLMConfig{
			Model:     DefaultLLMModel,
			BaseURL:   DefaultLLMBaseURL,
			TimeoutMS: 60000,
		},
	}
}

// Validation
func (c *Config) Validate() error {
	if c.Target.URL == "" {
		return fmt.Errorf("target.url is required")
	}
	if c.Target.OutputPath == "" {
		return fmt.Errorf("target.output_path is required")
	}
	if c.Target.MarkdownPath == "" {
		return fmt.Errorf("target.markdown_path is required")
	}
	switch c.Source {
	case SourceBrowser, SourceHTTP, SourceFile:
	default:
		return fmt.Errorf("source must be 'browser', 'http' or 'file', got %q", c.Source)
	}
	if c.Rod.NavigateTimeout <= 0 {
		return fmt.Errorf("rod.navigate_timeout_s must be > 0")
	}
	if c.HTTP.UserAgent == "" {
		return fmt.Errorf("http.user_agent is required")
	}
	if c.HTTP.TotalTimeoutMS <= 0 {
		return fmt.Errorf("http.total_timeout_ms must be > 0")
	}
	if c.Normalize.PreviewChars < 0 {
		return fmt.Errorf("normalize.preview_chars must be >= 0")
	}
	switch strings.ToLower(c.Observability.LogLevel) {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("observability.log_level must be one of debug, info, warn, error, got %q", c.Observability.LogLevel)
	}
	if c.Observability.LogPath != "" && c.Observability.LogMaxSizeMB <= 0 {
		return fmt.Errorf("observability.log_max_size_mb must be > 0 when log_path is set")
	}
	if c.LLM.TimeoutMS < 0 {
		return fmt.Errorf("llm.timeout_ms must be >= 0")
	}
	return nil
}

// ValidateLLM checks the settings the facts and diagram commands need. The
// other commands never call it, so a missing key only fails those two.
func (c *Config) ValidateLLM() error {
	if c.GetLLMAPIKey() == "" {
		return fmt.Errorf("llm.api_key is required (or set %s)", LLMAPIKeyEnv)
	}
	if c.LLM.Model == "" {
		return fmt.Errorf("llm.model is required")
	}
	if c.LLM.BaseURL == "" {
		return fmt.Errorf("llm.base_url is required")
	}
	if c.LLM.TimeoutMS <= 0 {
		return fmt.Errorf("llm.timeout_ms must be > 0")
	}
	return nil
}

// Getters
func (c *Config) GetNavigateTimeout() time.Duration {
	return time.Duration(c.Rod.NavigateTimeout) * time.Second
}

func (c *Config) GetTotalTimeout() time.Duration {
	return time.Duration(c.HTTP.TotalTimeoutMS) * time.Millisecond
}

func (c *Config) GetLLMTimeout() time.Duration {
	return time.Duration(c.LLM.TimeoutMS) * time.Millisecond
}

// GetLLMAPIKey prefers the config value and falls back to the environment.
func (c *Config) GetLLMAPIKey() string {
	if c.LLM.APIKey != "" {
		return c.LLM.APIKey
	}
	return os.Getenv(LLMAPIKeyEnv)
}

// Overrides are command-line values applied on top of the loaded file. Nil
// fields leave the file value alone.
type Overrides struct {
	SelectorsFile *string
	Source        *string
	LogLevel      *string
	LogPath       *string
}

// Apply copies the set overrides into c. Call Validate afterwards.
func (c *Config) Apply(o Overrides) {
	if o.SelectorsFile != nil {
		c.SelectorsFile = *o.SelectorsFile
	}
	if o.Source != nil {
		c.Source = *o.Source
	}
	if o.LogLevel != nil {
		c.Observability.LogLevel = *o.LogLevel
	}
	if o.LogPath != nil {
		c.Observability.LogPath = *o.LogPath
	}
}
