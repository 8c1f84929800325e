package model

import "time"

// Config holds the complete runtime configuration
type Config struct {
	HTTP       HTTPConfig       `yaml:"http"`
	Cache      CacheConfig      `yaml:"cache"`
	Scan       ScanConfig       `yaml:"scan"`
	Politeness PolitenessConfig `yaml:"politeness"`
	Output     OutputConfig     `yaml:"output"`
	LLM        LLMConfig        `yaml:"llm"`
}

// HTTPConfig configures the Steam API client
type HTTPConfig struct {
	Timeout    time.Duration `yaml:"timeout"`     // per-attempt timeout
	UserAgent  string        `yaml:"user_agent"`
	APIKey     string        `yaml:"api_key"`     // Steam Web API key (or STEAM_API_KEY)
	HTTPProxy  string        `yaml:"http_proxy"`
	HTTPSProxy string        `yaml:"https_proxy"`
}

// CacheConfig configures the persistent appdetails cache
type CacheConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// ScanConfig configures the per-title processing loop
type ScanConfig struct {
	RequestDelay      time.Duration `yaml:"request_delay"`       // pacing between live fetches
	LongPauseEvery    int           `yaml:"long_pause_every"`    // extra pause every N live fetches
	LongPauseDuration time.Duration `yaml:"long_pause_duration"`
	OnlyFlagged       bool          `yaml:"only_flagged"`

	DetectOrigin    bool `yaml:"detect_origin"`
	DetectDRM       bool `yaml:"detect_drm"`
	DetectAntiCheat bool `yaml:"detect_anticheat"`

	ExtraOriginKeywords []string `yaml:"extra_origin_keywords"`
}

// PolitenessConfig configures optional robots.txt compliance
type PolitenessConfig struct {
	RespectRobots bool `yaml:"respect_robots"`
}

// OutputConfig configures report rendering
type OutputConfig struct {
	Verbose bool   `yaml:"verbose"`
	CSVPath string `yaml:"csv_path"`
}

// LLMConfig configures the optional advisory summary.
// The summary is generated after scoring and never affects any score.
type LLMConfig struct {
	Provider  string `yaml:"provider"` // "openai", "ollama", "" (disabled)
	Model     string `yaml:"model"`
	APIKey    string `yaml:"api_key,omitempty"`
	BaseURL   string `yaml:"base_url,omitempty"`
	Timeout   int    `yaml:"timeout"` // seconds
	MaxTokens int    `yaml:"max_tokens"`
}

// DefaultConfig returns the built-in defaults
func DefaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Timeout:   30 * time.Second,
			UserAgent: "steamrisk/0.2 (+https://github.com/ppiankov/steamrisk)",
		},
		Cache: CacheConfig{
			Enabled: true,
			Path:    "appdetails-cache.json",
		},
		Scan: ScanConfig{
			RequestDelay:      1500 * time.Millisecond,
			LongPauseEvery:    50,
			LongPauseDuration: 30 * time.Second,
			DetectOrigin:      true,
			DetectDRM:         true,
			DetectAntiCheat:   true,
		},
		Output: OutputConfig{},
		LLM: LLMConfig{
			Timeout:   30,
			MaxTokens: 1000,
		},
	}
}
