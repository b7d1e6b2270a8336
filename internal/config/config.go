package config

// AppConfig holds application-level settings.
type AppConfig struct {
	LogLevel string `mapstructure:"log_level"`
}

// AlgoliaConfig controls the HN Algolia API client.
type AlgoliaConfig struct {
	BaseURL           string  `mapstructure:"base_url"`
	Timeout           string  `mapstructure:"timeout"` // duration string, e.g., "15s"
	Retries           int     `mapstructure:"retries"`
	RequestsPerSecond float64 `mapstructure:"requests_per_second"`
}

// SearchConfig controls result assembly.
type SearchConfig struct {
	DefaultLimit   int `mapstructure:"default_limit"`
	MaxDescription int `mapstructure:"max_description"`
}

// Config is the top-level configuration structure.
type Config struct {
	App     AppConfig     `mapstructure:"app"`
	Algolia AlgoliaConfig `mapstructure:"algolia"`
	Search  SearchConfig  `mapstructure:"search"`
}

// FillDefaults applies default values if not provided.
func (c *Config) FillDefaults() {
	if c.App.LogLevel == "" {
		c.App.LogLevel = "info"
	}
	if c.Algolia.BaseURL == "" {
		c.Algolia.BaseURL = "https://hn.algolia.com/api/v1"
	}
	if c.Algolia.Timeout == "" {
		c.Algolia.Timeout = "15s"
	}
	if c.Algolia.Retries == 0 {
		c.Algolia.Retries = 2
	}
	if c.Algolia.RequestsPerSecond == 0 {
		c.Algolia.RequestsPerSecond = 4
	}
	if c.Search.DefaultLimit == 0 {
		c.Search.DefaultLimit = 25
	}
	if c.Search.MaxDescription == 0 {
		c.Search.MaxDescription = 800
	}
}
