package config

import (
	"log"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	Port        int
	DataDir     string
	ModelPath   string
	HistoryPath string
	Bootstrap   bool
	Version     string
}

// Default returns the configuration used when nothing is set
func Default() Config {
	return Config{
		Port:      5000,
		DataDir:   ".",
		Bootstrap: true,
		Version:   "dev",
	}
}

// FromEnv loads an optional .env file and overlays HPP_* environment
// variables on the defaults. Values already in the environment win over
// the file.
func FromEnv() Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: could not load .env: %v", err)
	}

	cfg := Default()
	cfg.Port = envInt("HPP_PORT", cfg.Port)
	cfg.DataDir = envString("HPP_DATA_DIR", cfg.DataDir)
	cfg.ModelPath = envString("HPP_MODEL_PATH", cfg.ModelPath)
	cfg.HistoryPath = envString("HPP_HISTORY_DB", cfg.HistoryPath)
	cfg.Bootstrap = envBool("HPP_BOOTSTRAP", cfg.Bootstrap)
	return cfg
}

// ResolvedModelPath returns ModelPath, or model.gob inside DataDir
func (c Config) ResolvedModelPath() string {
	if c.ModelPath != "" {
		return c.ModelPath
	}
	return filepath.Join(c.DataDir, "model.gob")
}

// HistoryEnabled reports whether predictions are logged
func (c Config) HistoryEnabled() bool {
	return c.HistoryPath != ""
}

func envString(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("Warning: ignoring %s=%q: %v", key, v, err)
		return def
	}
	return n
}

func envBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		log.Printf("Warning: ignoring %s=%q: %v", key, v, err)
		return def
	}
	return b
}
