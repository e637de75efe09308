package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"sdiary/pkg/keymaps"
)

// Config holds the application configuration
type Config struct {
	Database    string            `mapstructure:"database"`
	Driver      string            `mapstructure:"driver"`
	PostgresDSN string            `mapstructure:"postgres_dsn"`
	KeyMap      map[string]string `mapstructure:"keymap"`
}

// Load reads the configuration file, creating one with defaults on first
// run. An explicit configPath overrides the default location under
// ~/.config/sdiary.
func Load(configPath string) (Config, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return Config{}, err
	}

	configDir := filepath.Join(homeDir, ".config", "sdiary")

	config := Config{
		Database: filepath.Join(configDir, "sdiary.db"),
		Driver:   "sqlite",
		KeyMap:   keymaps.GetDefaultKeyMappings(),
	}

	viper.SetConfigType("json")
	if configPath != "" {
		viper.SetConfigFile(configPath)
	} else {
		viper.SetConfigName("config")
		viper.AddConfigPath(configDir)
	}

	viper.SetDefault("database", config.Database)
	viper.SetDefault("driver", config.Driver)
	viper.SetDefault("postgres_dsn", "")
	viper.SetDefault("keymap", config.KeyMap)

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return config, err
		}
		// Config file not found, create default config
		if err := os.MkdirAll(configDir, 0755); err != nil {
			return config, err
		}
		if err := viper.WriteConfigAs(filepath.Join(configDir, "config.json")); err != nil {
			return config, err
		}
	}

	if err := viper.Unmarshal(&config); err != nil {
		return config, err
	}

	return config, nil
}
