package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port         string        `envconfig:"PORT" default:"8080"`
	DBDriver     string        `envconfig:"DB_DRIVER" default:"sqlite"`
	DBDSN        string        `envconfig:"DB_DSN" default:"staynest.db"` // sqlite file in project root
	Seed         bool          `envconfig:"SEED" default:"true"`
	LogFile      string        `envconfig:"LOG_FILE" default:"./staynest.log"`
	JWTSecret    string        `envconfig:"JWT_SECRET" default:"dev-secret-change-me"`
	JWTTTL       time.Duration `envconfig:"JWT_TTL" default:"168h"`
	CookieSecure bool          `envconfig:"COOKIE_SECURE" default:"false"` // set true behind HTTPS
	RateLimitMax int           `envconfig:"RATE_LIMIT_MAX" default:"60"`
	LoginRateMax int           `envconfig:"LOGIN_RATE_MAX" default:"5"` // per 10 minutes
	BodyLimit    int           `envconfig:"BODY_LIMIT" default:"1048576"`
	OTLPEndpoint string        `envconfig:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	ServiceName  string        `envconfig:"SERVICE_NAME" default:"staynest"`
	Env          string        `envconfig:"ENV" default:"dev"`
}

func Load() Config {
	// .env is optional; real environment variables win.
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		log.Fatalf("[config] %v", err)
	}
	if cfg.DBDriver != "sqlite" && cfg.DBDriver != "postgres" {
		log.Fatalf("[config] DB_DRIVER must be sqlite or postgres, got %q", cfg.DBDriver)
	}
	if cfg.JWTSecret == "dev-secret-change-me" && cfg.Env != "dev" {
		log.Printf("[warn] JWT_SECRET is the development default")
	}
	log.Printf("[config] PORT=%s DB_DRIVER=%s SEED=%t LOG_FILE=%s OTLP=%q",
		cfg.Port, cfg.DBDriver, cfg.Seed, cfg.LogFile, cfg.OTLPEndpoint)
	return cfg
}
