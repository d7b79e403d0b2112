// Package config loads ptree defaults from configuration files and the environment.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cast"
	"github.com/spf13/viper"

	"github.com/temirov/ptree/internal/utils"
)

const (
	sortKey     = "sort"
	copyKey     = "copy"
	copyOnlyKey = "copy_only"
	debugKey    = "debug"
)

var configurationKeys = []string{sortKey, copyKey, copyOnlyKey, debugKey}

// LoadOptions controls how application configuration is discovered.
type LoadOptions struct {
	WorkingDirectory string
	ExplicitFilePath string
	// EnvironmentPrefix overrides the PTREE prefix used for environment variables.
	EnvironmentPrefix string
}

// ApplicationConfiguration holds defaults for the tree command. Nil fields are unset.
type ApplicationConfiguration struct {
	Sort     *bool `mapstructure:"sort"`
	Copy     *bool `mapstructure:"copy"`
	CopyOnly *bool `mapstructure:"copy_only"`
	Debug    *bool `mapstructure:"debug"`
}

// LoadApplicationConfiguration loads configuration from the global file, the
// local file and the environment, later sources overriding earlier ones.
func LoadApplicationConfiguration(options LoadOptions) (ApplicationConfiguration, error) {
	workingDirectory, err := resolveWorkingDirectory(options.WorkingDirectory)
	if err != nil {
		return ApplicationConfiguration{}, err
	}

	var merged ApplicationConfiguration

	if globalPath, pathErr := globalConfigPath(); pathErr == nil {
		globalConfig, loadErr := loadConfigurationFromPath(globalPath, false)
		if loadErr != nil {
			return ApplicationConfiguration{}, loadErr
		}
		merged = merged.Merge(globalConfig)
	}

	localPath, explicit := resolveLocalConfigPath(workingDirectory, options.ExplicitFilePath)
	localConfig, loadErr := loadConfigurationFromPath(localPath, explicit)
	if loadErr != nil {
		return ApplicationConfiguration{}, loadErr
	}
	merged = merged.Merge(localConfig)

	prefix := options.EnvironmentPrefix
	if prefix == "" {
		prefix = utils.ApplicationName
	}
	environmentConfig, envErr := loadConfigurationFromEnvironment(prefix)
	if envErr != nil {
		return ApplicationConfiguration{}, envErr
	}
	merged = merged.Merge(environmentConfig)

	return merged, nil
}

// loadConfigurationFromPath reads one YAML file. A missing file is only an
// error when the path was requested explicitly.
func loadConfigurationFromPath(path string, required bool) (ApplicationConfiguration, error) {
	info, statErr := os.Stat(path)
	if statErr != nil {
		if os.IsNotExist(statErr) && !required {
			return ApplicationConfiguration{}, nil
		}
		return ApplicationConfiguration{}, fmt.Errorf("stat configuration %s: %w", path, statErr)
	}
	if info.IsDir() {
		return ApplicationConfiguration{}, fmt.Errorf("configuration path %s is a directory", path)
	}

	reader := viper.New()
	reader.SetConfigFile(path)
	reader.SetConfigType("yaml")
	if readErr := reader.ReadInConfig(); readErr != nil {
		return ApplicationConfiguration{}, fmt.Errorf("read configuration from %s: %w", path, readErr)
	}
	var config ApplicationConfiguration
	if decodeErr := reader.Unmarshal(&config); decodeErr != nil {
		return ApplicationConfiguration{}, fmt.Errorf("decode configuration from %s: %w", path, decodeErr)
	}
	return config, nil
}

// loadConfigurationFromEnvironment reads PREFIX_SORT, PREFIX_COPY, PREFIX_COPY_ONLY and PREFIX_DEBUG.
// A value that is not a boolean is an error naming the variable.
func loadConfigurationFromEnvironment(prefix string) (ApplicationConfiguration, error) {
	reader := viper.New()
	reader.SetEnvPrefix(prefix)
	reader.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	reader.AutomaticEnv()

	values := map[string]*bool{}
	for _, key := range configurationKeys {
		if !reader.IsSet(key) {
			continue
		}
		value, castErr := cast.ToBoolE(reader.Get(key))
		if castErr != nil {
			return ApplicationConfiguration{}, fmt.Errorf("environment variable %s=%q is not a boolean: %w", environmentVariableName(prefix, key), reader.GetString(key), castErr)
		}
		values[key] = &value
	}
	return ApplicationConfiguration{
		Sort:     values[sortKey],
		Copy:     values[copyKey],
		CopyOnly: values[copyOnlyKey],
		Debug:    values[debugKey],
	}, nil
}

func environmentVariableName(prefix, key string) string {
	return strings.ToUpper(prefix + "_" + key)
}

// Merge overlays override onto the receiver returning the combined configuration.
// The result shares no pointers with either input.
func (config ApplicationConfiguration) Merge(override ApplicationConfiguration) ApplicationConfiguration {
	return ApplicationConfiguration{
		Sort:     overlayBool(config.Sort, override.Sort),
		Copy:     overlayBool(config.Copy, override.Copy),
		CopyOnly: overlayBool(config.CopyOnly, override.CopyOnly),
		Debug:    overlayBool(config.Debug, override.Debug),
	}
}

// CopySettings returns the copy flags with copy_only implying copy.
func (config ApplicationConfiguration) CopySettings() (copyEnabled bool, copyOnly bool) {
	copyOnly = boolValue(config.CopyOnly)
	copyEnabled = copyOnly || boolValue(config.Copy)
	return copyEnabled, copyOnly
}

// SortEnabled reports whether sorting is configured.
func (config ApplicationConfiguration) SortEnabled() bool {
	return boolValue(config.Sort)
}

// DebugEnabled reports whether debug logging is configured.
func (config ApplicationConfiguration) DebugEnabled() bool {
	return boolValue(config.Debug)
}

func boolValue(value *bool) bool {
	return value != nil && *value
}

func overlayBool(base, override *bool) *bool {
	if override != nil {
		return cloneBool(override)
	}
	return cloneBool(base)
}

func cloneBool(value *bool) *bool {
	if value == nil {
		return nil
	}
	cloned := *value
	return &cloned
}
