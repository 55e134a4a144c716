package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Config file location
const (
	AppConfigDir   = "hfs-uploader"
	ConfigFileName = "config.toml"
)

// Log levels accepted in the config file
var logLevels = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

// File is the TOML configuration read by the command line uploader
type File struct {
	Target           string `toml:"target"`
	Dir              string `toml:"dir"`
	AdvanceOnFailure bool   `toml:"advance_on_failure"`
	StrictStatus     bool   `toml:"strict_status"`
	IncludeHidden    bool   `toml:"include_hidden"`
	ShowQR           bool   `toml:"show_qr"`
	LogLevel         string `toml:"log_level"`
}

// DefaultFile returns the configuration used when no file exists
func DefaultFile() *File {
	return &File{
		Target:           DefaultTargetURL,
		AdvanceOnFailure: DefaultAdvanceOnFailure,
		StrictStatus:     DefaultStrictStatus,
		LogLevel:         "info",
	}
}

// DefaultFilePath returns the per-user config file path
func DefaultFilePath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		// Fallback to home directory
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}
	return filepath.Join(configDir, AppConfigDir, ConfigFileName)
}

// LoadFile reads path, returning defaults when the file does not exist
func LoadFile(path string) (*File, error) {
	cfg := DefaultFile()

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the configuration to path, creating parent directories
func (f *File) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(f)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Validate checks the target URL and log level
func (f *File) Validate() error {
	if _, err := f.UploadURL(); err != nil {
		return err
	}
	if f.LogLevel != "" {
		if _, ok := logLevels[strings.ToLower(f.LogLevel)]; !ok {
			return fmt.Errorf("unknown log_level %q", f.LogLevel)
		}
	}
	return nil
}

// UploadURL joins Target with the remote directory Dir. Directory URLs end
// with a slash so the server treats the POST as an upload into that directory.
func (f *File) UploadURL() (string, error) {
	u, err := url.Parse(strings.TrimSpace(f.Target))
	if err != nil {
		return "", fmt.Errorf("parse target %q: %w", f.Target, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", fmt.Errorf("target %q must be an absolute http(s) URL", f.Target)
	}

	dir := strings.Trim(strings.TrimSpace(f.Dir), "/")
	if dir != "" {
		u = u.JoinPath(dir)
	}
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	return u.String(), nil
}

// SlogLevel returns the configured log level, info when unset
func (f *File) SlogLevel() slog.Level {
	if level, ok := logLevels[strings.ToLower(f.LogLevel)]; ok {
		return level
	}
	return slog.LevelInfo
}
