// Package config loads service and renderer settings from .env, the
// environment and command-line flags, in increasing precedence.
package config

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Config holds every setting the CLI and the HTTP service read.
type Config struct {
	ListenAddr       string
	LogLevel         string
	StorageType      string // memory, filesystem, sqlite, s3
	LocalStoragePath string
	DataSourceName   string
	S3BucketName     string
	Caption          string
	FontPath         string
	DecodeWorkers    int
}

// Defaults returns the built-in settings.
func Defaults() Config {
	return Config{
		ListenAddr:       ":3002",
		LogLevel:         "info",
		StorageType:      "memory",
		LocalStoragePath: "./data",
		DataSourceName:   "boothframe.db",
		Caption:          "Photo Booth",
		DecodeWorkers:    4,
	}
}

// Load reads .env if present, then the process environment.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		logrus.Debug("No .env file found")
	}
	return FromEnv(os.Getenv)
}

// FromEnv overlays non-empty environment values on the defaults.
func FromEnv(getenv func(string) string) Config {
	c := Defaults()
	set := func(dst *string, key string) {
		if v := getenv(key); v != "" {
			*dst = v
		}
	}
	set(&c.ListenAddr, "LISTEN_ADDR")
	set(&c.LogLevel, "LOG_LEVEL")
	set(&c.StorageType, "STORAGE_TYPE")
	set(&c.LocalStoragePath, "LOCAL_STORAGE_PATH")
	set(&c.DataSourceName, "DATA_SOURCE_NAME")
	set(&c.S3BucketName, "S3_BUCKET_NAME")
	set(&c.Caption, "BOOTH_CAPTION")
	set(&c.FontPath, "BOOTH_FONT_PATH")
	if v := getenv("DECODE_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.DecodeWorkers = n
		} else {
			logrus.WithField("value", v).Warn("Ignoring invalid DECODE_WORKERS")
		}
	}
	return c
}

// RegisterRenderFlags binds the settings that affect rendering.
func (c *Config) RegisterRenderFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.LogLevel, "loglevel", c.LogLevel, "The log level (debug, info, warn, error).")
	fs.StringVar(&c.Caption, "caption", c.Caption, "Footer caption text")
	fs.StringVar(&c.FontPath, "font", c.FontPath, "Path to a TTF/OTF font (default: Go Regular)")
	fs.IntVar(&c.DecodeWorkers, "workers", c.DecodeWorkers, "Concurrent image decodes")
}

// RegisterServerFlags binds render settings plus listener and storage.
func (c *Config) RegisterServerFlags(fs *flag.FlagSet) {
	c.RegisterRenderFlags(fs)
	fs.StringVar(&c.ListenAddr, "listen", c.ListenAddr, "The address to listen on.")
	fs.StringVar(&c.StorageType, "storage", c.StorageType, "Asset storage: memory, filesystem, sqlite, s3")
}

// SetupLogging applies the log level and the text formatter to logrus.
func SetupLogging(level string) error {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	logrus.SetLevel(lvl)
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
	return nil
}
