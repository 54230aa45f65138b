package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Log      LogConfig      `mapstructure:"log"`
	Validate ValidateConfig `mapstructure:"validate"`
	Output   OutputConfig   `mapstructure:"output"`
	Store    StoreConfig    `mapstructure:"store"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

type ValidateConfig struct {
	Strict          bool `mapstructure:"strict"`
	AllowLocalhost  bool `mapstructure:"allow_localhost"`
	AllowPrivateIPs bool `mapstructure:"allow_private_ips"`
	MaxURLLength    int  `mapstructure:"max_url_length"`
	Workers         int  `mapstructure:"workers"`
}

type OutputConfig struct {
	Format string `mapstructure:"format"`
	Color  bool   `mapstructure:"color"`
	Indent string `mapstructure:"indent"`
}

type StoreConfig struct {
	Path   string `mapstructure:"path"`
	Record bool   `mapstructure:"record"`
}

func defaultConfig() *Config {
	homeDir, _ := os.UserHomeDir()

	return &Config{
		Log: LogConfig{
			Level: "off",
			File:  filepath.Join(homeDir, ".jfeed", "jfeed.log"),
		},
		Validate: ValidateConfig{
			Strict:          false,
			AllowLocalhost:  false,
			AllowPrivateIPs: false,
			MaxURLLength:    2048,
			Workers:         4,
		},
		Output: OutputConfig{
			Format: "text",
			Color:  true,
			Indent: "  ",
		},
		Store: StoreConfig{
			Path:   filepath.Join(homeDir, ".jfeed", "reports.db"),
			Record: false,
		},
	}
}

// Default returns the built-in configuration.
func Default() *Config {
	return defaultConfig()
}

func Load(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v, defaultConfig())

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		homeDir, _ := os.UserHomeDir()
		configDir := filepath.Join(homeDir, ".config", "jfeed")

		v.SetConfigName("config")
		v.SetConfigType("toml")
		v.AddConfigPath(configDir)
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("JFEED")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if config.Validate.Workers < 1 {
		config.Validate.Workers = 1
	}

	// Expand paths after loading
	expandPaths(&config)

	return &config, nil
}

// setDefaults registers every leaf key so a config file that sets only
// part of a section keeps the defaults for the rest.
func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("log.level", cfg.Log.Level)
	v.SetDefault("log.file", cfg.Log.File)
	v.SetDefault("validate.strict", cfg.Validate.Strict)
	v.SetDefault("validate.allow_localhost", cfg.Validate.AllowLocalhost)
	v.SetDefault("validate.allow_private_ips", cfg.Validate.AllowPrivateIPs)
	v.SetDefault("validate.max_url_length", cfg.Validate.MaxURLLength)
	v.SetDefault("validate.workers", cfg.Validate.Workers)
	v.SetDefault("output.format", cfg.Output.Format)
	v.SetDefault("output.color", cfg.Output.Color)
	v.SetDefault("output.indent", cfg.Output.Indent)
	v.SetDefault("store.path", cfg.Store.Path)
	v.SetDefault("store.record", cfg.Store.Record)
}

// expandPath expands ~ to home directory and converts to absolute path.
// "-" names a standard stream and is left alone.
func expandPath(path string) string {
	if path == "" || path == "-" {
		return path
	}

	// Expand tilde
	if len(path) >= 2 && path[:2] == "~/" {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, path[2:])
	}

	// Convert to absolute path if not already absolute
	if !filepath.IsAbs(path) {
		if abs, err := filepath.Abs(path); err == nil {
			path = abs
		}
	}

	return path
}

// expandPaths expands all paths in the config
func expandPaths(cfg *Config) {
	cfg.Log.File = expandPath(cfg.Log.File)
	cfg.Store.Path = expandPath(cfg.Store.Path)
}

func Save(config *Config, path string) error {
	v := viper.New()

	v.Set("log", map[string]interface{}{
		"level": config.Log.Level,
		"file":  config.Log.File,
	})
	v.Set("validate", map[string]interface{}{
		"strict":            config.Validate.Strict,
		"allow_localhost":   config.Validate.AllowLocalhost,
		"allow_private_ips": config.Validate.AllowPrivateIPs,
		"max_url_length":    config.Validate.MaxURLLength,
		"workers":           config.Validate.Workers,
	})
	v.Set("output", map[string]interface{}{
		"format": config.Output.Format,
		"color":  config.Output.Color,
		"indent": config.Output.Indent,
	})
	v.Set("store", map[string]interface{}{
		"path":   config.Store.Path,
		"record": config.Store.Record,
	})

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	return v.WriteConfigAs(path)
}

func GenerateDefaultConfig(path string) error {
	return Save(defaultConfig(), path)
}
