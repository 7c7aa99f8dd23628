// Package config holds the terminal client's settings (API address, saved token,
// output format) in a TOML file managed by viper.
package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/viper"
)

var configDir string
var configFilePath string

// getConfigDir returns the platform-specific config directory
func getConfigDir() (string, error) {
	if runtime.GOOS == "windows" {
		appData := os.Getenv("LOCALAPPDATA")
		if appData == "" {
			appData = os.Getenv("APPDATA")
		}
		if appData == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", err
			}
			appData = home
		}
		return filepath.Join(appData, "travelbond", "cli"), nil
	}

	// ~/.config/travelbond/cli
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "travelbond", "cli"), nil
}

// Init loads configuration from configPath, or from the default location when empty.
// A missing file is not an error: defaults apply until the first write.
func Init(configPath string) error {
	var err error
	if configPath != "" {
		configDir = filepath.Dir(configPath)
		configFilePath = configPath
	} else {
		configDir, err = getConfigDir()
		if err != nil {
			return err
		}
		configFilePath = filepath.Join(configDir, "config.toml")
	}

	if err := os.MkdirAll(configDir, 0700); err != nil {
		return err
	}

	viper.Reset()
	viper.SetConfigType("toml")
	setDefaults()

	viper.SetConfigFile(configFilePath)
	if _, err := os.Stat(configFilePath); err == nil {
		if err := viper.ReadInConfig(); err != nil {
			return err
		}
	}

	// TRAVELBOND_API_BASE_URL overrides api.base_url, and so on
	viper.SetEnvPrefix("travelbond")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	return nil
}

func setDefaults() {
	viper.SetDefault("api.base_url", "http://localhost:8080")
	viper.SetDefault("api.timeout", 30)
	viper.SetDefault("output.format", "text")
	viper.SetDefault("disclosure.initial", 3)
	viper.SetDefault("disclosure.step", 3)
	viper.SetDefault("log.file", filepath.Join(configDir, "travelbond-cli.log"))
}

// GetString returns a string configuration value
func GetString(key string) string {
	return viper.GetString(key)
}

// GetInt returns an int configuration value
func GetInt(key string) int {
	return viper.GetInt(key)
}

// Set overrides a value for this run only
func Set(key string, value any) {
	viper.Set(key, value)
}

// SetString sets a value and writes the config file
func SetString(key, value string) error {
	viper.Set(key, value)
	return viper.WriteConfigAs(configFilePath)
}

// GetConfigDir returns the configuration directory path
func GetConfigDir() string {
	return configDir
}

// GetConfigFile returns the path of the config file
func GetConfigFile() string {
	return configFilePath
}
