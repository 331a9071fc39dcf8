package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

const (
	// DefaultConfigDir is the default configuration directory
	DefaultConfigDir = ".config/presetify"
	// ConfigFileName is the name of the configuration file
	ConfigFileName = "config.json"
	// EnvFileName holds optional PRESETIFY_* overrides
	EnvFileName = ".env"
	// LogFileName is the default log file inside the config directory
	LogFileName = "presetify.log"
)

// Metadata reader selection
const (
	ReaderAuto     = "auto"
	ReaderExifTool = "exiftool"
	ReaderEmbedded = "embedded"
)

// Environment variable overrides
const (
	EnvOutputDir      = "PRESETIFY_OUTPUT_DIR"
	EnvReader         = "PRESETIFY_READER"
	EnvExifTool       = "PRESETIFY_EXIFTOOL"
	EnvExifTimeout    = "PRESETIFY_EXIFTOOL_TIMEOUT"
	EnvFetchTimeout   = "PRESETIFY_FETCH_TIMEOUT"
	EnvShowPreview    = "PRESETIFY_SHOW_PREVIEW"
	EnvNotifyOnExport = "PRESETIFY_NOTIFY"
	EnvLogFile        = "PRESETIFY_LOG_FILE"
)

// configDirOverride is set by the --config-dir flag
var configDirOverride string

// Config holds the application configuration
type Config struct {
	OutputDir       string   `json:"output_dir,omitempty"`
	MetadataReader  string   `json:"metadata_reader"`
	ExifToolPath    string   `json:"exiftool_path"`
	ExifToolTimeout Duration `json:"exiftool_timeout"`
	FetchTimeout    Duration `json:"fetch_timeout"`
	ShowPreview     bool     `json:"show_preview"`
	NotifyOnExport  bool     `json:"notify_on_export"`
	LogFile         string   `json:"log_file,omitempty"`
}

// Duration is a time.Duration stored as a string such as "30s"
type Duration time.Duration

// MarshalJSON implements json.Marshaler
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

// UnmarshalJSON accepts either a duration string or a number of seconds
func (d *Duration) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		parsed, err := time.ParseDuration(s)
		if err != nil {
			return err
		}
		*d = Duration(parsed)
		return nil
	}

	var secs float64
	if err := json.Unmarshal(data, &secs); err != nil {
		return err
	}
	*d = Duration(time.Duration(secs * float64(time.Second)))
	return nil
}

// Std returns the value as a time.Duration
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// DefaultConfig returns the default configuration
func DefaultConfig() Config {
	return Config{
		MetadataReader:  ReaderAuto,
		ExifToolPath:    "exiftool",
		ExifToolTimeout: Duration(30 * time.Second),
		FetchTimeout:    Duration(30 * time.Second),
		ShowPreview:     true,
		NotifyOnExport:  false,
	}
}

// SetConfigDir overrides the configuration directory
func SetConfigDir(dir string) {
	configDirOverride = dir
}

// GetConfigDir returns the configuration directory path
func GetConfigDir() string {
	if configDirOverride != "" {
		return configDirOverride
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return DefaultConfigDir
	}
	return filepath.Join(home, DefaultConfigDir)
}

// GetLogFile returns the configured log file, defaulting into the config dir
func (c *Config) GetLogFile() string {
	if c.LogFile != "" {
		return c.LogFile
	}
	return filepath.Join(GetConfigDir(), LogFileName)
}

// EnsureDirectories creates the necessary directories
func EnsureDirectories() error {
	return os.MkdirAll(GetConfigDir(), 0755)
}

// Load loads the configuration from disk and applies environment overrides
func Load() (*Config, error) {
	configPath := filepath.Join(GetConfigDir(), ConfigFileName)

	cfg := DefaultConfig()
	data, err := os.ReadFile(configPath)
	if err != nil && !os.IsNotExist(err) {
		return nil, err
	}
	if err == nil {
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, err
		}
	}

	// The .env file is optional; existing environment variables win over it
	envPath := filepath.Join(GetConfigDir(), EnvFileName)
	if err := godotenv.Load(envPath); err != nil && !os.IsNotExist(err) {
		logrus.WithError(err).WithField("path", envPath).Warn("Failed to load env file")
	}
	cfg.applyEnv()

	return &cfg, nil
}

// Save saves the configuration to disk
func Save(cfg *Config) error {
	if err := EnsureDirectories(); err != nil {
		return err
	}

	configPath := filepath.Join(GetConfigDir(), ConfigFileName)

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0644)
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvOutputDir); v != "" {
		c.OutputDir = v
	}
	if v := os.Getenv(EnvReader); v != "" {
		c.MetadataReader = v
	}
	if v := os.Getenv(EnvExifTool); v != "" {
		c.ExifToolPath = v
	}
	if v := os.Getenv(EnvExifTimeout); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.ExifToolTimeout = Duration(d)
		}
	}
	if v := os.Getenv(EnvFetchTimeout); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.FetchTimeout = Duration(d)
		}
	}
	if v := os.Getenv(EnvShowPreview); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.ShowPreview = b
		}
	}
	if v := os.Getenv(EnvNotifyOnExport); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.NotifyOnExport = b
		}
	}
	if v := os.Getenv(EnvLogFile); v != "" {
		c.LogFile = v
	}
}
