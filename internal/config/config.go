package config

import (
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type AppCfg struct{ Env, Port, BaseURL string }
type DBCfg struct{ DSN string }
type RedisCfg struct {
	Addr        string
	CacheTTLMin int
}
type CheckoutCfg struct {
	BaseURL    string
	TimeoutSec int
}

type SecurityCfg struct {
	RateLimitPerMin int
	AdminToken      string // guards onboarding APIs
}

type Cfg struct {
	App      AppCfg
	DB       DBCfg
	Redis    RedisCfg
	Checkout CheckoutCfg
	Sec      SecurityCfg
}

func Load() Cfg {
	// 1) Load .env into process env (if file exists)
	_ = godotenv.Load()

	// 2) Read from env via viper
	viper.AutomaticEnv()
	viper.SetDefault("APP_ENV", "sandbox")
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("RATE_LIMIT_PER_MIN", 300)
	viper.SetDefault("CHECKOUT_TIMEOUT_SEC", 20)
	viper.SetDefault("RESOLVE_CACHE_TTL_MIN", 10)
	viper.SetDefault("ADMIN_TOKEN", "")

	cfg := Cfg{
		App: AppCfg{
			Env:     viper.GetString("APP_ENV"),
			Port:    viper.GetString("APP_PORT"),
			BaseURL: viper.GetString("APP_BASE_URL"),
		},
		DB: DBCfg{DSN: viper.GetString("DB_DSN")},
		Redis: RedisCfg{
			Addr:        viper.GetString("REDIS_ADDR"),
			CacheTTLMin: viper.GetInt("RESOLVE_CACHE_TTL_MIN"),
		},
		Checkout: CheckoutCfg{
			BaseURL:    viper.GetString("CHECKOUT_BASE_URL"),
			TimeoutSec: viper.GetInt("CHECKOUT_TIMEOUT_SEC"),
		},
		Sec: SecurityCfg{
			RateLimitPerMin: viper.GetInt("RATE_LIMIT_PER_MIN"),
			AdminToken:      strings.TrimSpace(viper.GetString("ADMIN_TOKEN")),
		},
	}

	// 3) Fail fast on required settings
	if cfg.DB.DSN == "" {
		log.Fatal().Msg("DB_DSN is required")
	}
	if cfg.Checkout.BaseURL == "" {
		log.Fatal().Msg("CHECKOUT_BASE_URL is required")
	}

	return cfg
}
