package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds settings read from the environment and an optional .env file
type Config struct {
	OutputDir string
	ScenesDir string
	Workers   int
	MaxDepth  int // 0 defers to the scene
	Port      int
	S3        S3Config
}

// S3Config holds the credentials and location of an S3-compatible bucket
type S3Config struct {
	AccessKey string
	SecretKey string
	Endpoint  string
	Region    string
	Bucket    string
}

// Load reads envFile (if it exists) into the process environment without overriding
// variables that are already set, then builds a Config from the environment
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", envFile, err)
		}
	}

	cfg := &Config{
		OutputDir: getEnv("RAYTRACER_OUTPUT_DIR", "output"),
		ScenesDir: getEnv("RAYTRACER_SCENES_DIR", "scenes"),
		S3: S3Config{
			AccessKey: os.Getenv("S3_ACCESS_KEY"),
			SecretKey: os.Getenv("S3_SECRET_KEY"),
			Endpoint:  os.Getenv("S3_ENDPOINT"),
			Region:    getEnv("S3_REGION", "us-east-1"),
			Bucket:    os.Getenv("S3_BUCKET"),
		},
	}

	var err error
	if cfg.Workers, err = getEnvInt("RAYTRACER_WORKERS", 1); err != nil {
		return nil, err
	}
	if cfg.MaxDepth, err = getEnvInt("RAYTRACER_MAX_DEPTH", 0); err != nil {
		return nil, err
	}
	if cfg.Port, err = getEnvInt("RAYTRACER_PORT", 8080); err != nil {
		return nil, err
	}
	return cfg, nil
}

// UploadEnabled reports whether an S3 bucket is configured
func (c *Config) UploadEnabled() bool {
	return c.S3.Bucket != ""
}

// Helper to get environment variables with a default value.
func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	return n, nil
}
