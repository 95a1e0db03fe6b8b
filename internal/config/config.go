// Package config loads iscript runtime configuration: external tool locations,
// schema override, timeouts and downloader settings.
//
// Priority (highest to lowest): command-line flags > ISCRIPT_* environment
// variables > local .env > config directory .env > defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"iscript/internal/logger"
)

// EnvPrefix is the prefix of every environment variable read by iscript.
const EnvPrefix = "ISCRIPT"

// Configuration keys, shared by viper, flags and .env files.
const (
	KeyFFmpeg          = "ffmpeg"
	KeyFFprobe         = "ffprobe"
	KeyFFplay          = "ffplay"
	KeyFont            = "font"
	KeySchema          = "schema"
	KeyUserAgent       = "user-agent"
	KeyToolTimeout     = "tool-timeout"
	KeyDownloadTimeout = "download-timeout"
	KeyTempDir         = "temp-dir"
)

// Config holds the resolved runtime configuration.
type Config struct {
	FFmpegPath      string
	FFprobePath     string
	FFplayPath      string
	FontPath        string
	SchemaPath      string
	UserAgent       string
	ToolTimeout     time.Duration
	DownloadTimeout time.Duration
	TempDir         string
}

// LoadOptions controls where .env files are looked up.
type LoadOptions struct {
	// WorkDir holds the local .env; defaults to the process working directory
	WorkDir string
	// ConfigDir holds the user-level .env; defaults to $XDG_CONFIG_HOME/iscript
	ConfigDir string
	// EnvFile is an extra .env that wins over the other two; it must exist
	EnvFile string
	// SkipDotEnv disables the config directory and local .env files
	SkipDotEnv bool
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{
		FFmpegPath:      "ffmpeg",
		FFprobePath:     "ffprobe",
		FFplayPath:      "ffplay",
		UserAgent:       "Mozilla/5.0",
		ToolTimeout:     0,
		DownloadTimeout: 10 * time.Minute,
	}
}

// SetDefaults registers the default values on a viper instance.
func SetDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault(KeyFFmpeg, d.FFmpegPath)
	v.SetDefault(KeyFFprobe, d.FFprobePath)
	v.SetDefault(KeyFFplay, d.FFplayPath)
	v.SetDefault(KeyFont, d.FontPath)
	v.SetDefault(KeySchema, d.SchemaPath)
	v.SetDefault(KeyUserAgent, d.UserAgent)
	v.SetDefault(KeyToolTimeout, d.ToolTimeout)
	v.SetDefault(KeyDownloadTimeout, d.DownloadTimeout)
	v.SetDefault(KeyTempDir, d.TempDir)
}

// Load resolves the configuration from v. Flags must already be bound to v.
func Load(v *viper.Viper, opts LoadOptions) (*Config, error) {
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	values := make(map[string]string)
	if !opts.SkipDotEnv {
		var err error
		if values, err = loadDotEnvFiles(opts); err != nil {
			return nil, err
		}
	}
	if opts.EnvFile != "" {
		if err := mergeDotEnv(values, opts.EnvFile); err != nil {
			return nil, err
		}
	}
	// .env values rank just above defaults, below real environment and flags
	for key, value := range values {
		v.SetDefault(key, value)
	}

	cfg := &Config{
		FFmpegPath:      v.GetString(KeyFFmpeg),
		FFprobePath:     v.GetString(KeyFFprobe),
		FFplayPath:      v.GetString(KeyFFplay),
		FontPath:        v.GetString(KeyFont),
		SchemaPath:      v.GetString(KeySchema),
		UserAgent:       v.GetString(KeyUserAgent),
		ToolTimeout:     v.GetDuration(KeyToolTimeout),
		DownloadTimeout: v.GetDuration(KeyDownloadTimeout),
		TempDir:         v.GetString(KeyTempDir),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	var errors []string

	if c.FFmpegPath == "" {
		errors = append(errors, "ffmpeg path cannot be empty")
	}
	if c.FFprobePath == "" {
		errors = append(errors, "ffprobe path cannot be empty")
	}
	if c.ToolTimeout < 0 {
		errors = append(errors, "tool timeout cannot be negative (use 0 for none)")
	}
	if c.DownloadTimeout < 0 {
		errors = append(errors, "download timeout cannot be negative (use 0 for none)")
	}
	if c.TempDir != "" {
		if info, err := os.Stat(c.TempDir); err != nil || !info.IsDir() {
			errors = append(errors, fmt.Sprintf("temp dir is not a directory: %s", c.TempDir))
		}
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n  - %s", strings.Join(errors, "\n  - "))
	}
	return nil
}

// loadDotEnvFiles merges the config directory .env and the local .env,
// local values winning. Only ISCRIPT_ prefixed keys are kept, converted
// to configuration keys.
func loadDotEnvFiles(opts LoadOptions) (map[string]string, error) {
	values := make(map[string]string)

	configDir := opts.ConfigDir
	if configDir == "" {
		if dir, err := os.UserConfigDir(); err == nil {
			configDir = filepath.Join(dir, "iscript")
		}
	}

	workDir := opts.WorkDir
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
		workDir = wd
	}

	for _, dir := range []string{configDir, workDir} {
		if dir == "" {
			continue
		}
		envPath := filepath.Join(dir, ".env")
		if _, err := os.Stat(envPath); err != nil {
			continue // Missing .env file is not an error
		}

		if err := mergeDotEnv(values, envPath); err != nil {
			return nil, err
		}
	}

	return values, nil
}

func mergeDotEnv(values map[string]string, envPath string) error {
	envMap, err := readDotEnv(envPath)
	if err != nil {
		return err
	}
	logger.Debug("Loaded .env file", "path", envPath, "keys", len(envMap))

	for key, value := range envMap {
		if configKey, ok := envKeyToConfigKey(key); ok {
			values[configKey] = value
		}
	}
	return nil
}

func readDotEnv(envPath string) (map[string]string, error) {
	data, err := os.ReadFile(envPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read .env file %s: %w", envPath, err)
	}

	envMap, err := godotenv.Unmarshal(string(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse .env file %s: %w", envPath, err)
	}
	return envMap, nil
}

// envKeyToConfigKey maps ISCRIPT_TOOL_TIMEOUT to tool-timeout.
func envKeyToConfigKey(key string) (string, bool) {
	prefix := EnvPrefix + "_"
	if !strings.HasPrefix(key, prefix) {
		return "", false
	}
	name := strings.TrimPrefix(key, prefix)
	if name == "" {
		return "", false
	}
	return strings.ReplaceAll(strings.ToLower(name), "_", "-"), true
}
