package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds everything the process reads from the environment. A local
// .env file is honored when present.
type Config struct {
	Port        int           `env:"PORT" envDefault:"8080"`
	BaseURL     string        `env:"BASE_URL" envDefault:"http://localhost:8080"`
	DatabaseURL string        `env:"DATABASE_URL"` // PostgreSQL DSN; sqlite file is used when empty
	SQLitePath  string        `env:"SQLITE_PATH" envDefault:"travelbook.db"`
	JWTSecret   string        `env:"JWT_SECRET,required"`
	TokenTTL    time.Duration `env:"TOKEN_TTL" envDefault:"72h"`
	UploadDir   string        `env:"UPLOAD_DIR" envDefault:"./uploads"`
	SeedDemo    bool          `env:"SEED_DEMO" envDefault:"false"`
	PlacesXLSX  string        `env:"PLACES_XLSX"` // optional spreadsheet import on boot
}

func (c *Config) Addr() string { return fmt.Sprintf(":%d", c.Port) }

// Load reads .env (if any) and parses the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	if len(cfg.JWTSecret) < 16 {
		return nil, fmt.Errorf("JWT_SECRET must be at least 16 bytes")
	}
	return cfg, nil
}
