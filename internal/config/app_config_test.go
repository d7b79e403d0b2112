package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/temirov/ptree/internal/utils"
)

const testEnvironmentPrefix = "PTREE_TEST"

type configTestCase struct {
	name           string
	globalContent  string
	localContent   string
	explicitPath   string
	environment    map[string]string
	expectSort     *bool
	expectCopy     *bool
	expectCopyOnly *bool
	expectDebug    *bool
}

func boolPointer(value bool) *bool {
	pointer := value
	return &pointer
}

func assertBoolPointer(t *testing.T, label string, expected, actual *bool) {
	t.Helper()
	if expected == nil {
		if actual != nil {
			t.Fatalf("expected no %s override, got %t", label, *actual)
		}
		return
	}
	if actual == nil || *actual != *expected {
		t.Fatalf("unexpected %s value", label)
	}
}

func TestLoadApplicationConfigurationMergesSources(t *testing.T) {
	testCases := []configTestCase{
		{
			name:          "local_overrides_global",
			globalContent: "sort: true\ncopy: true\n",
			localContent:  "sort: false\n",
			expectSort:    boolPointer(false),
			expectCopy:    boolPointer(true),
		},
		{
			name:          "explicit_path_replaces_local",
			globalContent: "debug: true\n",
			localContent:  "sort: true\n",
			explicitPath:  "custom.yaml",
			expectSort:    boolPointer(false),
			expectDebug:   boolPointer(true),
		},
		{
			name:          "environment_overrides_files",
			globalContent: "sort: false\n",
			localContent:  "copy_only: true\n",
			environment: map[string]string{
				testEnvironmentPrefix + "_SORT":      "true",
				testEnvironmentPrefix + "_COPY_ONLY": "false",
			},
			expectSort:     boolPointer(true),
			expectCopyOnly: boolPointer(false),
		},
		{
			name: "nothing_configured",
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			homeDir := t.TempDir()
			workingDir := t.TempDir()
			configDir := filepath.Join(homeDir, utils.GlobalConfigDirectoryName)
			if err := os.MkdirAll(configDir, 0o755); err != nil {
				t.Fatalf("create config dir: %v", err)
			}
			if testCase.globalContent != "" {
				globalPath := filepath.Join(configDir, utils.ConfigFileName)
				if err := os.WriteFile(globalPath, []byte(testCase.globalContent), 0o600); err != nil {
					t.Fatalf("write global config: %v", err)
				}
			}
			if testCase.localContent != "" {
				localPath := filepath.Join(workingDir, utils.LocalConfigFileName)
				if err := os.WriteFile(localPath, []byte(testCase.localContent), 0o600); err != nil {
					t.Fatalf("write local config: %v", err)
				}
			}
			if testCase.explicitPath != "" {
				target := filepath.Join(workingDir, testCase.explicitPath)
				if err := os.WriteFile(target, []byte("sort: false\n"), 0o600); err != nil {
					t.Fatalf("write explicit config: %v", err)
				}
			}

			t.Setenv("HOME", homeDir)
			t.Setenv("USERPROFILE", homeDir)
			for key, value := range testCase.environment {
				t.Setenv(key, value)
			}

			loadedConfig, err := LoadApplicationConfiguration(LoadOptions{
				WorkingDirectory:  workingDir,
				ExplicitFilePath:  testCase.explicitPath,
				EnvironmentPrefix: testEnvironmentPrefix,
			})
			if err != nil {
				t.Fatalf("LoadApplicationConfiguration error: %v", err)
			}

			assertBoolPointer(t, "sort", testCase.expectSort, loadedConfig.Sort)
			assertBoolPointer(t, "copy", testCase.expectCopy, loadedConfig.Copy)
			assertBoolPointer(t, "copy_only", testCase.expectCopyOnly, loadedConfig.CopyOnly)
			assertBoolPointer(t, "debug", testCase.expectDebug, loadedConfig.Debug)
		})
	}
}

func TestLoadApplicationConfigurationErrors(t *testing.T) {
	testCases := []struct {
		name  string
		setup func(t *testing.T, workingDir string) string
	}{
		{
			name: "explicit_path_missing",
			setup: func(t *testing.T, workingDir string) string {
				return "absent.yaml"
			},
		},
		{
			name: "explicit_path_is_directory",
			setup: func(t *testing.T, workingDir string) string {
				if err := os.Mkdir(filepath.Join(workingDir, "conf"), 0o755); err != nil {
					t.Fatalf("mkdir: %v", err)
				}
				return "conf"
			},
		},
		{
			name: "invalid_yaml",
			setup: func(t *testing.T, workingDir string) string {
				if err := os.WriteFile(filepath.Join(workingDir, utils.LocalConfigFileName), []byte("sort: [unclosed\n"), 0o600); err != nil {
					t.Fatalf("write: %v", err)
				}
				return ""
			},
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			homeDir := t.TempDir()
			workingDir := t.TempDir()
			t.Setenv("HOME", homeDir)
			t.Setenv("USERPROFILE", homeDir)
			explicitPath := testCase.setup(t, workingDir)
			_, err := LoadApplicationConfiguration(LoadOptions{
				WorkingDirectory:  workingDir,
				ExplicitFilePath:  explicitPath,
				EnvironmentPrefix: testEnvironmentPrefix,
			})
			if err == nil {
				t.Fatalf("expected configuration error")
			}
		})
	}
}

func TestLoadApplicationConfigurationRejectsInvalidEnvironmentValue(t *testing.T) {
	testCases := []struct {
		name     string
		variable string
		value    string
	}{
		{name: "garbage_sort", variable: testEnvironmentPrefix + "_SORT", value: "garbage"},
		{name: "word_copy_only", variable: testEnvironmentPrefix + "_COPY_ONLY", value: "sometimes"},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			homeDir := t.TempDir()
			t.Setenv("HOME", homeDir)
			t.Setenv("USERPROFILE", homeDir)
			t.Setenv(testCase.variable, testCase.value)

			_, err := LoadApplicationConfiguration(LoadOptions{
				WorkingDirectory:  t.TempDir(),
				EnvironmentPrefix: testEnvironmentPrefix,
			})
			if err == nil {
				t.Fatalf("expected error for %s=%s", testCase.variable, testCase.value)
			}
			if !strings.Contains(err.Error(), testCase.variable) {
				t.Fatalf("expected error to name %s, got %v", testCase.variable, err)
			}
		})
	}
}

func TestCopySettingsEnforcesCopyOnlyImpliesCopy(t *testing.T) {
	configuration := ApplicationConfiguration{CopyOnly: boolPointer(true), Copy: boolPointer(false)}
	copyEnabled, copyOnly := configuration.CopySettings()
	if !copyEnabled {
		t.Fatalf("expected copy to be enabled when copy_only is true")
	}
	if !copyOnly {
		t.Fatalf("expected copy_only to remain true")
	}
}

func TestMergeKeepsBaseWhenOverrideUnset(t *testing.T) {
	base := ApplicationConfiguration{Sort: boolPointer(true), Debug: boolPointer(true)}
	merged := base.Merge(ApplicationConfiguration{Debug: boolPointer(false)})
	if !merged.SortEnabled() {
		t.Fatalf("expected sort to survive merge")
	}
	if merged.DebugEnabled() {
		t.Fatalf("expected debug override to apply")
	}
	*merged.Sort = false
	if !*base.Sort {
		t.Fatalf("merge must not alias the base configuration")
	}
}
