package utils

import (
	"fmt"
	"os"
	"path"
)

// GetHunyConfigDir returns the path to the huny configuration
// directory, <UserConfigDir>/huny unless overridden by
// HUNY_CONFIG_HOME.
func GetHunyConfigDir() (string, error) {
	if hunyConfigHome := os.Getenv("HUNY_CONFIG_HOME"); hunyConfigHome != "" {
		return hunyConfigHome, nil
	}
	cfg, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user config directory: %w", err)
	}
	return path.Join(cfg, "huny"), nil
}

// CreateConfigDir ensures the config dir and its conversations subdir
// exist.
func CreateConfigDir(configDirPath string) error {
	if err := os.MkdirAll(path.Join(configDirPath, "conversations"), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	return nil
}
