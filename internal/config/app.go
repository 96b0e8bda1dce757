package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// DefaultPairs are scanned when the user specifies none.
var DefaultPairs = []string{"EUR/USD", "GBP/USD", "USD/JPY", "USD/CHF", "AUD/USD"}

type Provider struct {
	BaseURL        string `mapstructure:"base_url"`
	APIKey         string `mapstructure:"api_key"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
}

func (p Provider) Timeout() time.Duration {
	return time.Duration(p.TimeoutSeconds) * time.Second
}

type Scan struct {
	Pairs             []string `mapstructure:"pairs"`
	Retries           int      `mapstructure:"retries"`
	RetryDelaySeconds float64  `mapstructure:"retry_delay_seconds"`
}

func (s Scan) RetryDelay() time.Duration {
	return time.Duration(s.RetryDelaySeconds * float64(time.Second))
}

type HTTPServer struct {
	Port string `mapstructure:"port"`
}

type Cache struct {
	TTLSeconds int   `mapstructure:"ttl_seconds"`
	MaxItems   int64 `mapstructure:"max_items"`
}

func (c Cache) TTL() time.Duration {
	return time.Duration(c.TTLSeconds) * time.Second
}

type Logging struct {
	Level string `mapstructure:"level"`
}

type AppConfig struct {
	Provider   Provider   `mapstructure:"provider"`
	Scan       Scan       `mapstructure:"scan"`
	HTTPServer HTTPServer `mapstructure:"http_server"`
	Cache      Cache      `mapstructure:"cache"`
	Logging    Logging    `mapstructure:"logging"`
}

// Init loads configuration in ascending priority: built-in defaults, an
// optional config.yaml, environment variables, then command-line flags.
// flags may be nil when no CLI is involved.
func Init(flags *pflag.FlagSet) (*AppConfig, error) {
	var cfg AppConfig

	// optional .env for local runs
	_ = godotenv.Load()

	viper.SetDefault("provider.base_url", "https://www.alphavantage.co/query")
	viper.SetDefault("provider.timeout_seconds", 10)
	viper.SetDefault("scan.pairs", DefaultPairs)
	viper.SetDefault("scan.retries", 1)
	viper.SetDefault("scan.retry_delay_seconds", 5.0)
	viper.SetDefault("http_server.port", "8080")
	viper.SetDefault("cache.ttl_seconds", 60)
	viper.SetDefault("cache.max_items", 1024)
	viper.SetDefault("logging.level", "info")

	// provider env vars
	_ = viper.BindEnv("provider.api_key", "ALPHAVANTAGE_API_KEY")
	_ = viper.BindEnv("provider.base_url", "ALPHAVANTAGE_BASE_URL")
	_ = viper.BindEnv("provider.timeout_seconds", "HTTP_CLIENT_TIMEOUT_SECONDS")

	// server env vars
	_ = viper.BindEnv("http_server.port", "HTTP_PORT")
	_ = viper.BindEnv("logging.level", "LOG_LEVEL")

	if _, statErr := os.Stat("config.yaml"); statErr == nil {
		viper.SetConfigFile("config.yaml")
		viper.SetConfigType("yaml")
		if err := viper.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	if flags != nil {
		_ = viper.BindPFlag("scan.pairs", flags.Lookup("pairs"))
		_ = viper.BindPFlag("scan.retries", flags.Lookup("retry"))
		_ = viper.BindPFlag("scan.retry_delay_seconds", flags.Lookup("retry-delay"))
		_ = viper.BindPFlag("provider.api_key", flags.Lookup("api-key"))
		_ = viper.BindPFlag("http_server.port", flags.Lookup("port"))
	}

	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	return &cfg, nil
}
