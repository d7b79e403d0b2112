package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/temirov/ptree/internal/utils"
)

func resolveWorkingDirectory(workingDirectory string) (string, error) {
	if workingDirectory != "" {
		return workingDirectory, nil
	}
	currentDirectory, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("determine working directory: %w", err)
	}
	return currentDirectory, nil
}

// globalConfigPath returns ~/.ptree/config.yaml.
func globalConfigPath() (string, error) {
	homeDirectory, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	if homeDirectory == "" {
		return "", fmt.Errorf("resolve home directory: empty path")
	}
	return filepath.Join(homeDirectory, utils.GlobalConfigDirectoryName, utils.ConfigFileName), nil
}

// resolveLocalConfigPath reports the local configuration file and whether the
// caller named it explicitly.
func resolveLocalConfigPath(workingDirectory, explicitPath string) (string, bool) {
	if explicitPath != "" {
		if filepath.IsAbs(explicitPath) {
			return explicitPath, true
		}
		return filepath.Join(workingDirectory, explicitPath), true
	}
	return filepath.Join(workingDirectory, utils.LocalConfigFileName), false
}
