package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port         string
	APIURL       string
	OrdersAPIURL string
	ShopName     string
	DBDSN        string
	LogFile      string
	APITimeout   time.Duration
	Templates    string
}

func Load() Config {
	// .env is optional; real environment variables win over it
	if err := godotenv.Load(); err == nil {
		log.Printf("[config] loaded .env")
	}

	cfg := Config{
		Port:     env("PORT", "8080"),
		APIURL:   env("API_URL", "http://localhost:8000"),
		ShopName: env("SHOP_NAME", "Ponnam Hardware"),
		DBDSN:    env("DB_DSN", "storedash.db"),
		LogFile:  env("LOG_FILE", "./storedash.log"),
		// orders have always been served from a separate host
		OrdersAPIURL: env("ORDERS_API_URL", "https://merccyclone-ph.hf.space"),
		Templates:    env("TEMPLATES_DIR", "./web/templates"),
	}
	if raw := os.Getenv("API_TIMEOUT"); raw != "" {
		if d, err := time.ParseDuration(raw); err == nil && d > 0 {
			cfg.APITimeout = d
		} else {
			log.Printf("[config] ignoring API_TIMEOUT=%q", raw)
		}
	}

	log.Printf("[config] PORT=%s API_URL=%s ORDERS_API_URL=%s DB_DSN=%s LOG_FILE=%s API_TIMEOUT=%s",
		cfg.Port, cfg.APIURL, cfg.OrdersAPIURL, cfg.DBDSN, cfg.LogFile, cfg.APITimeout)
	return cfg
}

func env(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
