// Package cli provides the command line interface.
package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/ptree/internal/commands"
	"github.com/temirov/ptree/internal/config"
	"github.com/temirov/ptree/internal/output"
	"github.com/temirov/ptree/internal/services/clipboard"
	"github.com/temirov/ptree/internal/utils"
)

const (
	sortFlagName      = "sort"
	sortFlagShorthand = "s"
	versionFlagName   = "version"
	versionShorthand  = "v"
	copyFlagName      = "copy"
	copyOnlyFlagName  = "copy-only"
	configFlagName    = "config"
	debugFlagName     = "debug"
	initFlagName      = "init"
	forceFlagName     = "force"

	versionTemplate      = utils.ApplicationName + " version: %s\n"
	initCompleteTemplate = "configuration written to %s\n"
	rootUse              = utils.ApplicationName + " [path]"
	rootShortDescription = "display a directory as a tree"
	rootLongDescription  = `ptree prints every file and directory below path as an indented tree.
Directories end with "/". Entries appear in the order the filesystem lists them;
use --sort to order siblings lexicographically at every level.
Defaults for --sort, --copy, --copy-only and --debug can be stored in
~/.ptree/config.yaml, ./.ptree.yaml, or PTREE_* environment variables.`
	rootUsageExample = `  # Render the current directory
  ptree

  # Render a directory with sorted entries
  ptree --sort ./cmd

  # Copy the tree to the clipboard without printing it
  ptree --copy-only .

  # Write a local configuration file with the defaults
  ptree --init local`

	sortFlagDescription     = "sort tree entries"
	versionFlagDescription  = "print " + utils.ApplicationName + " version"
	copyFlagDescription     = "copy the tree to the system clipboard"
	copyOnlyFlagDescription = "copy the tree to the system clipboard without printing it"
	configFlagDescription   = "configuration file to use instead of ./" + utils.LocalConfigFileName
	debugFlagDescription    = "log traversal details to stderr"
	initFlagDescription     = "write a default configuration file (local or global) and exit"
	forceFlagDescription    = "overwrite an existing configuration file with --init"

	workingDirectoryErrorFormat = "unable to determine working directory: %w"
	debugLoggerErrorFormat      = "unable to enable debug logging: %w"
	copyErrorFormat             = "copying tree for %s: %w"
	writeErrorFormat            = "writing tree for %s: %w"

	debugCopiedMessage = "copied tree to clipboard"
)

// Dependencies are the process-level collaborators of the root command.
type Dependencies struct {
	Logger           *zap.Logger
	LoggerFactory    func(debug bool) (*zap.Logger, error)
	Copier           clipboard.Copier
	WorkingDirectory string
	Stdout           io.Writer
}

// Execute runs the ptree application with os.Args.
func Execute(logger *zap.Logger) error {
	rootCommand := createRootCommand(Dependencies{
		Logger:        logger,
		LoggerFactory: utils.NewApplicationLogger,
		Copier:        clipboard.NewService(),
	})
	rootCommand.SetArgs(os.Args[1:])
	return rootCommand.Execute()
}

// rootOptions stores the values of the root command flags.
type rootOptions struct {
	sort        bool
	showVersion bool
	copy        bool
	copyOnly    bool
	debug       bool
	configPath  string
	initTarget  string
	forceInit   bool
}

// createRootCommand builds the root Cobra command.
func createRootCommand(dependencies Dependencies) *cobra.Command {
	var options rootOptions

	rootCommand := &cobra.Command{
		Use:           rootUse,
		Short:         rootShortDescription,
		Long:          rootLongDescription,
		Example:       rootUsageExample,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		RunE: func(command *cobra.Command, arguments []string) error {
			stdout := dependencies.Stdout
			if stdout == nil {
				stdout = command.OutOrStdout()
			}
			if options.showVersion {
				_, err := fmt.Fprintf(stdout, versionTemplate, utils.GetApplicationVersion())
				return err
			}
			if options.initTarget != "" {
				return runInit(stdout, dependencies, options)
			}
			rootPath := utils.DefaultPath
			if len(arguments) > 0 {
				rootPath = arguments[0]
			}
			settings, settingsError := resolveSettings(command, dependencies, options)
			if settingsError != nil {
				return settingsError
			}
			return runTree(stdout, dependencies, settings, rootPath)
		},
	}

	flagSet := rootCommand.Flags()
	registerBooleanFlag(flagSet, &options.sort, sortFlagName, sortFlagShorthand, false, sortFlagDescription)
	registerBooleanFlag(flagSet, &options.showVersion, versionFlagName, versionShorthand, false, versionFlagDescription)
	registerBooleanFlag(flagSet, &options.copy, copyFlagName, "", false, copyFlagDescription)
	registerBooleanFlag(flagSet, &options.copyOnly, copyOnlyFlagName, "", false, copyOnlyFlagDescription)
	registerBooleanFlag(flagSet, &options.debug, debugFlagName, "", false, debugFlagDescription)
	registerBooleanFlag(flagSet, &options.forceInit, forceFlagName, "", false, forceFlagDescription)
	flagSet.StringVar(&options.configPath, configFlagName, "", configFlagDescription)
	flagSet.StringVar(&options.initTarget, initFlagName, "", initFlagDescription)
	return rootCommand
}

// treeSettings is the effective configuration for one render after files,
// environment and flags are merged.
type treeSettings struct {
	sortEntries bool
	copy        bool
	copyOnly    bool
	logger      *zap.Logger
}

func resolveSettings(command *cobra.Command, dependencies Dependencies, options rootOptions) (treeSettings, error) {
	workingDirectory, workingDirectoryError := resolveWorkingDirectory(dependencies)
	if workingDirectoryError != nil {
		return treeSettings{}, workingDirectoryError
	}
	loaded, loadError := config.LoadApplicationConfiguration(config.LoadOptions{
		WorkingDirectory: workingDirectory,
		ExplicitFilePath: options.configPath,
	})
	if loadError != nil {
		return treeSettings{}, loadError
	}
	effective := loaded.Merge(flagOverrides(command, options))

	logger := dependencies.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	if effective.DebugEnabled() && dependencies.LoggerFactory != nil {
		debugLogger, loggerError := dependencies.LoggerFactory(true)
		if loggerError != nil {
			return treeSettings{}, fmt.Errorf(debugLoggerErrorFormat, loggerError)
		}
		logger = debugLogger
	}

	copyEnabled, copyOnly := effective.CopySettings()
	return treeSettings{
		sortEntries: effective.SortEnabled(),
		copy:        copyEnabled,
		copyOnly:    copyOnly,
		logger:      logger,
	}, nil
}

// flagOverrides returns the flags the user set explicitly; untouched flags stay nil
// so configuration values survive.
func flagOverrides(command *cobra.Command, options rootOptions) config.ApplicationConfiguration {
	var overrides config.ApplicationConfiguration
	flagSet := command.Flags()
	if flagSet.Changed(sortFlagName) {
		overrides.Sort = &options.sort
	}
	if flagSet.Changed(copyFlagName) {
		overrides.Copy = &options.copy
	}
	if flagSet.Changed(copyOnlyFlagName) {
		overrides.CopyOnly = &options.copyOnly
	}
	if flagSet.Changed(debugFlagName) {
		overrides.Debug = &options.debug
	}
	return overrides
}

func runTree(stdout io.Writer, dependencies Dependencies, settings treeSettings, rootPath string) error {
	treeBuilder := commands.TreeBuilder{
		SortEntries: settings.sortEntries,
		Logger:      settings.logger,
	}
	lines, renderError := treeBuilder.Render(rootPath)
	if renderError != nil {
		return renderError
	}

	if !settings.copyOnly {
		if writeError := output.WriteLines(stdout, lines); writeError != nil {
			return fmt.Errorf(writeErrorFormat, rootPath, writeError)
		}
	}
	if settings.copy && dependencies.Copier != nil {
		if copyError := dependencies.Copier.Copy(output.JoinLines(lines)); copyError != nil {
			return fmt.Errorf(copyErrorFormat, rootPath, copyError)
		}
		settings.logger.Debug(debugCopiedMessage, zap.String("path", rootPath), zap.Int("lines", len(lines)))
	}
	return nil
}

func runInit(stdout io.Writer, dependencies Dependencies, options rootOptions) error {
	workingDirectory, workingDirectoryError := resolveWorkingDirectory(dependencies)
	if workingDirectoryError != nil {
		return workingDirectoryError
	}
	destination, initError := config.WriteDefaults(config.WriteOptions{
		Scope:            config.Scope(strings.ToLower(strings.TrimSpace(options.initTarget))),
		Force:            options.forceInit,
		WorkingDirectory: workingDirectory,
	})
	if initError != nil {
		return initError
	}
	_, err := fmt.Fprintf(stdout, initCompleteTemplate, destination)
	return err
}

func resolveWorkingDirectory(dependencies Dependencies) (string, error) {
	if dependencies.WorkingDirectory != "" {
		return dependencies.WorkingDirectory, nil
	}
	workingDirectory, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf(workingDirectoryErrorFormat, err)
	}
	return workingDirectory, nil
}
