// Package config loads tool configuration for modman.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for modman
type Config struct {
	Download DownloadConfig `mapstructure:"download"`
	GitHub   GitHubConfig   `mapstructure:"github"`
	Update   UpdateConfig   `mapstructure:"update"`
}

// DownloadConfig holds artifact download options
type DownloadConfig struct {
	// Dir is where mod files are written. Empty means the manifest's directory.
	Dir     string        `mapstructure:"dir"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// GitHubConfig holds GitHub API options
type GitHubConfig struct {
	// Token is an optional personal access token for higher rate limits.
	// Unauthenticated requests are limited to 60/hour.
	Token string `mapstructure:"token"`
}

// UpdateConfig holds update-run options
type UpdateConfig struct {
	// Jobs is the number of mods updated concurrently. 1 processes mods
	// in manifest order.
	Jobs int `mapstructure:"jobs"`
}

var defaultConfig = Config{
	Download: DownloadConfig{
		Dir:     "",
		Timeout: 30 * time.Second,
	},
	Update: UpdateConfig{
		Jobs: 1,
	},
}

// LoadConfig loads configuration from .modman.yaml and MODMAN_* environment
// variables, falling back to defaults.
func LoadConfig() (*Config, error) {
	v := viper.New()

	v.SetDefault("download.dir", defaultConfig.Download.Dir)
	v.SetDefault("download.timeout", defaultConfig.Download.Timeout)
	v.SetDefault("github.token", defaultConfig.GitHub.Token)
	v.SetDefault("update.jobs", defaultConfig.Update.Jobs)

	v.SetConfigName(".modman")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")     // Current directory
	v.AddConfigPath("$HOME") // Home directory

	v.SetEnvPrefix("MODMAN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Config file is optional; ignore error to use defaults
	_ = v.ReadInConfig()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %v", err)
	}

	if config.Update.Jobs < 1 {
		config.Update.Jobs = 1
	}

	return &config, nil
}
