package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Scope selects which configuration file WriteDefaults creates.
type Scope string

const (
	// ScopeLocal is ./.ptree.yaml in the working directory.
	ScopeLocal Scope = "local"
	// ScopeGlobal is ~/.ptree/config.yaml.
	ScopeGlobal Scope = "global"
)

// ErrConfigurationExists is returned when WriteDefaults would replace a file without Force.
var ErrConfigurationExists = errors.New("configuration file already exists")

// WriteOptions describes one WriteDefaults call.
type WriteOptions struct {
	Scope            Scope
	Force            bool
	WorkingDirectory string
}

// WriteDefaults writes every configuration key set to false into the file for
// options.Scope and returns its path. An empty scope means ScopeLocal.
func WriteDefaults(options WriteOptions) (string, error) {
	destination, err := scopePath(options)
	if err != nil {
		return "", err
	}
	if mkdirErr := os.MkdirAll(filepath.Dir(destination), 0o755); mkdirErr != nil {
		return "", fmt.Errorf("create configuration directory for %s: %w", destination, mkdirErr)
	}

	writer := viper.New()
	writer.SetConfigType("yaml")
	for _, key := range configurationKeys {
		writer.Set(key, false)
	}

	if options.Force {
		err = writer.WriteConfigAs(destination)
	} else {
		err = writer.SafeWriteConfigAs(destination)
	}
	var existsErr viper.ConfigFileAlreadyExistsError
	if errors.As(err, &existsErr) {
		return "", fmt.Errorf("%w at %s; use --force to replace it", ErrConfigurationExists, destination)
	}
	if err != nil {
		return "", fmt.Errorf("write configuration to %s: %w", destination, err)
	}
	return destination, nil
}

func scopePath(options WriteOptions) (string, error) {
	switch options.Scope {
	case ScopeLocal, "":
		workingDirectory, err := resolveWorkingDirectory(options.WorkingDirectory)
		if err != nil {
			return "", err
		}
		path, _ := resolveLocalConfigPath(workingDirectory, "")
		return path, nil
	case ScopeGlobal:
		return globalConfigPath()
	default:
		return "", fmt.Errorf("unsupported configuration scope %q (want %s or %s)", options.Scope, ScopeLocal, ScopeGlobal)
	}
}
