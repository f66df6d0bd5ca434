package config

import (
	"os"
	"path/filepath"
)

type Config struct {
	ConfigDir    string
	SettingsPath string
	DataDir      string
	DBPath       string
}

func New() (*Config, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	configDir := getEnv("QUICK_RMBG_CONFIG_DIR", filepath.Join(homeDir, ".config", "quick-rmbg"))
	dataDir := getEnv("QUICK_RMBG_DATA_DIR", filepath.Join(homeDir, ".local", "share", "quick-rmbg"))

	c := &Config{
		ConfigDir:    configDir,
		SettingsPath: filepath.Join(configDir, "config.json"),
		DataDir:      dataDir,
		DBPath:       filepath.Join(dataDir, "history.db"),
	}

	return c, nil
}

func (c *Config) EnsureDirs() error {
	if err := os.MkdirAll(c.ConfigDir, 0755); err != nil {
		return err
	}
	return os.MkdirAll(c.DataDir, 0755)
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
