package config

import (
	"os"
	"path/filepath"
)

const (
	AppName    = "Distill"
	AppVersion = "1.0.0"
	AppRepo    = "https://github.com/9bingyin/Distill"
)

// DistillUserAgent identifies Distill when fetching feeds and pages.
var DistillUserAgent = "Mozilla/5.0 (compatible; " + AppName + "/" + AppVersion + "; +" + AppRepo + ")"

// Chrome headers for TLS fingerprinting (must match azuretls Chrome profile version)
const (
	ChromeUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/135.0.0.0 Safari/537.36"
	ChromeSecChUa   = `"Google Chrome";v="135", "Chromium";v="135", "Not-A.Brand";v="8"`
)

// DefaultUserAgent for RSS fetching
var DefaultUserAgent = DistillUserAgent

type Config struct {
	Addr     string
	DBPath   string
	DataDir  string
	AIAPIKey string
	ProxyURL string
	LogLevel string
}

func Load() Config {
	addr := os.Getenv("DISTILL_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	dataDir := os.Getenv("DISTILL_DATA_DIR")
	if dataDir == "" {
		dataDir = "./data"
	}
	path := os.Getenv("DISTILL_DB_PATH")
	if path == "" {
		path = filepath.Join(dataDir, "distill.db")
	}

	return Config{
		Addr:     addr,
		DBPath:   filepath.Clean(path),
		DataDir:  filepath.Clean(dataDir),
		AIAPIKey: os.Getenv("DISTILL_AI_API_KEY"),
		ProxyURL: os.Getenv("DISTILL_PROXY_URL"),
		LogLevel: os.Getenv("DISTILL_LOG_LEVEL"),
	}
}
