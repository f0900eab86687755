// Package config loads runtime settings and opens the database.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	Port      string `env:"PORT" envDefault:"8080"`
	GinMode   string `env:"GIN_MODE" envDefault:"release"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	StoreDriver  string        `env:"STORE_DRIVER" envDefault:"memory"`
	SeedData     bool          `env:"SEED_DATA" envDefault:"false"`
	StoreTimeout time.Duration `env:"STORE_TIMEOUT" envDefault:"2s"`
	DayTimezone  string        `env:"DAY_TIMEZONE" envDefault:"UTC"`

	DB struct {
		Host     string `env:"DB_HOST" envDefault:"localhost"`
		User     string `env:"DB_USER"`
		Password string `env:"DB_PASSWORD"`
		Name     string `env:"DB_NAME"`
		Port     string `env:"DB_PORT" envDefault:"5432"`
		SSLMode  string `env:"DB_SSLMODE" envDefault:"disable"`
	}
	SQLitePath string `env:"SQLITE_PATH" envDefault:"fittrack.db"`

	DefaultTargetCalories int     `env:"DEFAULT_TARGET_CALORIES" envDefault:"2300"`
	DefaultTargetProtein  float64 `env:"DEFAULT_TARGET_PROTEIN" envDefault:"180"`
	DefaultTargetWorkouts int     `env:"DEFAULT_TARGET_WORKOUTS" envDefault:"6"`

	JWTSecret string        `env:"JWT_SECRET"`
	TokenTTL  time.Duration `env:"TOKEN_TTL" envDefault:"72h"`

	AWSRegion          string `env:"AWS_REGION" envDefault:"ap-south-1"`
	S3Region           string `env:"S3_REGION"`
	S3Bucket           string `env:"S3_BUCKET"`
	CloudFrontURL      string `env:"CLOUDFRONT_URL"`
	SESEmail           string `env:"SES_EMAIL"`
	SNSTopicARN        string `env:"SNS_TOPIC_ARN"`
	RekognitionEnabled bool   `env:"REKOGNITION_ENABLED" envDefault:"false"`

	loc *time.Location
}

// Location is DAY_TIMEZONE resolved; every "today" is a day in this zone.
func (c *Config) Location() *time.Location {
	if c.loc == nil {
		return time.UTC
	}
	return c.loc
}

// Load reads an optional .env file, then the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	return Parse()
}

// Parse builds a Config from the current environment only.
func Parse() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.StoreDriver {
	case DriverMemory, DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("STORE_DRIVER %q: want memory, postgres or sqlite", c.StoreDriver)
	}
	loc, err := time.LoadLocation(c.DayTimezone)
	if err != nil {
		return fmt.Errorf("DAY_TIMEZONE: %w", err)
	}
	c.loc = loc
	if c.StoreTimeout < 0 {
		return errors.New("STORE_TIMEOUT must not be negative")
	}
	if c.S3Region == "" {
		c.S3Region = c.AWSRegion
	}
	return nil
}

// PostgresDSN is the libpq connection string for the DB settings.
func (c *Config) PostgresDSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		c.DB.Host, c.DB.User, c.DB.Password, c.DB.Name, c.DB.Port, c.DB.SSLMode)
}
