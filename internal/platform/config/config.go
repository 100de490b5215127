package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	Port          string
	IsProduction  bool
	EnableDBCheck bool
	JWTSecret     string

	// ReportingCurrency is the default currency balances are reported in
	// when the request does not ask for another one.
	ReportingCurrency string

	// SimplifyMinSplits is the minimum number of unsettled splits before a
	// settlement plan is offered.
	SimplifyMinSplits int

	// RecomputeDebounce is the coalescing window of the balance recompute
	// worker.
	RecomputeDebounce time.Duration

	// RedisURL enables the exchange-rate cache when set. Empty disables it.
	RedisURL     string
	RateCacheTTL time.Duration
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("REPORTING_CURRENCY", "USD")
	viper.SetDefault("SIMPLIFY_MIN_SPLITS", 2)
	viper.SetDefault("RECOMPUTE_DEBOUNCE", "2s")
	viper.SetDefault("REDIS_URL", "")
	viper.SetDefault("RATE_CACHE_TTL", "5m")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	cfg.ReportingCurrency = viper.GetString("REPORTING_CURRENCY")
	if len(cfg.ReportingCurrency) != 3 {
		log.Printf("Warning: Invalid REPORTING_CURRENCY ('%s'). Defaulting to USD.\n", cfg.ReportingCurrency)
		cfg.ReportingCurrency = "USD"
	}

	cfg.SimplifyMinSplits = viper.GetInt("SIMPLIFY_MIN_SPLITS")
	if cfg.SimplifyMinSplits < 0 {
		cfg.SimplifyMinSplits = 0
	}

	debounceStr := viper.GetString("RECOMPUTE_DEBOUNCE")
	debounce, err := time.ParseDuration(debounceStr)
	if err != nil {
		debounce = 2 * time.Second
		if debounceStr != "" {
			log.Printf("Warning: Invalid value for RECOMPUTE_DEBOUNCE ('%s'). Defaulting to %s.\n", debounceStr, debounce)
		}
	}
	cfg.RecomputeDebounce = debounce

	cfg.RedisURL = viper.GetString("REDIS_URL")
	cacheTTLStr := viper.GetString("RATE_CACHE_TTL")
	cacheTTL, err := time.ParseDuration(cacheTTLStr)
	if err != nil {
		cacheTTL = 5 * time.Minute
		if cacheTTLStr != "" {
			log.Printf("Warning: Invalid value for RATE_CACHE_TTL ('%s'). Defaulting to %s.\n", cacheTTLStr, cacheTTL)
		}
	}
	cfg.RateCacheTTL = cacheTTL

	return cfg, nil
}
