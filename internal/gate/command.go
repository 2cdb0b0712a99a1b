package gate

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/assetscheck/internal/actions"
	"github.com/temirov/assetscheck/internal/assets"
	"github.com/temirov/assetscheck/internal/execshell"
	"github.com/temirov/assetscheck/internal/filesystem"
	"github.com/temirov/assetscheck/internal/githubauth"
	"github.com/temirov/assetscheck/internal/githubcli"
	"github.com/temirov/assetscheck/internal/ui"
	"github.com/temirov/assetscheck/internal/utils"
	flagutils "github.com/temirov/assetscheck/internal/utils/flags"
	pathutils "github.com/temirov/assetscheck/internal/utils/path"
)

const (
	checkCommandUseConstant                 = "check"
	checkCommandShortDescriptionConstant    = "Fail a pull request that adds oversized image assets"
	checkCommandLongDescriptionConstant     = "check scans the target folder for image assets larger than the threshold, replaces the previous report comment on the pull request, and exits non-zero when oversized assets remain after the ignore list is applied."
	unexpectedArgumentsErrorMessageConstant = "check does not accept positional arguments"
	commandExecutionErrorTemplateConstant   = "assets check failed: %w"
	tokenFlagNameConstant                   = "token"
	tokenFlagDescriptionConstant            = "GitHub token used to manage the report comment (falls back to GH_TOKEN, GITHUB_TOKEN, GITHUB_API_TOKEN)"
	targetFolderFlagNameConstant            = "target-folder"
	targetFolderFlagDescriptionConstant     = "Folder scanned for image assets"
	thresholdFlagNameConstant               = "threshold-size"
	thresholdFlagDescriptionConstant        = "Maximum asset size in kilobytes"
	ignoreFileFlagNameConstant              = "ignore-file"
	ignoreFileFlagDescriptionConstant       = "Ignore list relative to the repository root"
	scannerFlagNameConstant                 = "scanner"
	scannerFlagDescriptionConstant          = "Asset discovery strategy"
	outputFormatFlagNameConstant            = "output-format"
	outputFormatFlagDescriptionConstant     = "Dry run output format"
	dryRunFlagNameConstant                  = "dry-run"
	dryRunFlagDescriptionConstant           = "Print the result instead of commenting on the pull request"
	noteFlagNameConstant                    = "note"
	noteFlagDescriptionConstant             = "Extra paragraph appended to failing reports"
	invalidScannerTemplateConstant          = "invalid scanner: %w"
	invalidOutputFormatTemplateConstant     = "invalid output format: %w"
)

// LoggerProvider supplies a zap logger instance.
type LoggerProvider func() *zap.Logger

// ConfigurationProvider returns the current check configuration.
type ConfigurationProvider func() Configuration

// EnvironmentLookup resolves a single environment variable.
type EnvironmentLookup func(key string) (string, bool)

// CommandBuilder assembles the check command.
type CommandBuilder struct {
	LoggerProvider               LoggerProvider
	ConfigurationProvider        ConfigurationProvider
	HumanReadableLoggingProvider func() bool
	EnvironmentLookup            EnvironmentLookup
	FileSystem                   filesystem.FileSystem
	CommandRunner                execshell.CommandRunner
	Scanner                      assets.Scanner
	CommentClient                CommentClient
	OutputWriter                 io.Writer
	HomeDirectoryProvider        pathutils.HomeDirectoryProvider
}

// Build constructs the check command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	checkCommand := &cobra.Command{
		Use:           checkCommandUseConstant,
		Short:         checkCommandShortDescriptionConstant,
		Long:          checkCommandLongDescriptionConstant,
		RunE:          builder.runCheck,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	var scannerChoice string
	var outputFormatChoice string

	checkCommand.Flags().String(tokenFlagNameConstant, "", tokenFlagDescriptionConstant)
	checkCommand.Flags().String(targetFolderFlagNameConstant, "", targetFolderFlagDescriptionConstant)
	checkCommand.Flags().String(thresholdFlagNameConstant, "", thresholdFlagDescriptionConstant)
	checkCommand.Flags().String(ignoreFileFlagNameConstant, "", ignoreFileFlagDescriptionConstant)
	flagutils.AddChoiceFlag(checkCommand.Flags(), &scannerChoice, scannerFlagNameConstant, ScannerWalk, ScannerChoices, scannerFlagDescriptionConstant)
	flagutils.AddChoiceFlag(checkCommand.Flags(), &outputFormatChoice, outputFormatFlagNameConstant, OutputFormatMarkdown, OutputFormatChoices, outputFormatFlagDescriptionConstant)
	checkCommand.Flags().Bool(dryRunFlagNameConstant, false, dryRunFlagDescriptionConstant)
	checkCommand.Flags().String(noteFlagNameConstant, "", noteFlagDescriptionConstant)

	return checkCommand, nil
}

func (builder *CommandBuilder) runCheck(command *cobra.Command, arguments []string) error {
	if len(arguments) > 0 {
		return errors.New(unexpectedArgumentsErrorMessageConstant)
	}

	logger := builder.resolveLogger()
	runtime := actions.LoadRuntime(actions.EnvironmentLookup(builder.resolveEnvironmentLookup()))

	workspaceDirectory := runtime.Workspace
	if contextWorkspace, found := utils.NewCommandContextAccessor().WorkspaceDirectory(command.Context()); found && len(contextWorkspace) > 0 {
		workspaceDirectory = contextWorkspace
	}
	pathResolver := pathutils.NewWorkspacePathResolver(workspaceDirectory, builder.HomeDirectoryProvider)

	checkOptions, scannerKind, optionsError := builder.parseOptions(command, pathResolver)
	if optionsError != nil {
		return optionsError
	}

	service, serviceError := builder.resolveService(logger, runtime, scannerKind, checkOptions)
	if serviceError != nil {
		return serviceError
	}

	_, runError := service.Run(command.Context(), checkOptions)
	if runError != nil {
		if errors.Is(runError, ErrOversizedAssets) {
			return runError
		}
		return fmt.Errorf(commandExecutionErrorTemplateConstant, runError)
	}

	return nil
}

func (builder *CommandBuilder) parseOptions(command *cobra.Command, pathResolver *pathutils.WorkspacePathResolver) (Options, string, error) {
	configuration := builder.resolveConfiguration()

	tokenFlagValue, tokenFlagError := command.Flags().GetString(tokenFlagNameConstant)
	if tokenFlagError != nil {
		return Options{}, "", tokenFlagError
	}
	tokenValue, _ := githubauth.ResolveToken(selectStringValue(tokenFlagValue, configuration.Token), githubauth.EnvironmentLookup(builder.resolveEnvironmentLookup()))

	targetFolderFlagValue, targetFolderFlagError := command.Flags().GetString(targetFolderFlagNameConstant)
	if targetFolderFlagError != nil {
		return Options{}, "", targetFolderFlagError
	}

	thresholdFlagValue, thresholdFlagError := command.Flags().GetString(thresholdFlagNameConstant)
	if thresholdFlagError != nil {
		return Options{}, "", thresholdFlagError
	}

	ignoreFileFlagValue, ignoreFileFlagError := command.Flags().GetString(ignoreFileFlagNameConstant)
	if ignoreFileFlagError != nil {
		return Options{}, "", ignoreFileFlagError
	}
	ignoreFileValue := selectStringValue(ignoreFileFlagValue, configuration.IgnoreFile)

	noteFlagValue, noteFlagError := command.Flags().GetString(noteFlagNameConstant)
	if noteFlagError != nil {
		return Options{}, "", noteFlagError
	}

	scannerValue := configuration.Scanner
	if command.Flags().Changed(scannerFlagNameConstant) {
		scannerValue = command.Flags().Lookup(scannerFlagNameConstant).Value.String()
	}
	normalizedScanner, scannerError := flagutils.NormalizeChoice(scannerValue, ScannerChoices)
	if scannerError != nil {
		return Options{}, "", fmt.Errorf(invalidScannerTemplateConstant, scannerError)
	}

	outputFormatValue := configuration.OutputFormat
	if command.Flags().Changed(outputFormatFlagNameConstant) {
		outputFormatValue = command.Flags().Lookup(outputFormatFlagNameConstant).Value.String()
	}
	normalizedOutputFormat, outputFormatError := flagutils.NormalizeChoice(outputFormatValue, OutputFormatChoices)
	if outputFormatError != nil {
		return Options{}, "", fmt.Errorf(invalidOutputFormatTemplateConstant, outputFormatError)
	}

	dryRunValue := configuration.DryRun
	if command.Flags().Changed(dryRunFlagNameConstant) {
		flagDryRunValue, dryRunFlagError := command.Flags().GetBool(dryRunFlagNameConstant)
		if dryRunFlagError != nil {
			return Options{}, "", dryRunFlagError
		}
		dryRunValue = flagDryRunValue
	}

	checkOptions := Options{
		Token:              tokenValue,
		TargetFolder:       selectStringValue(targetFolderFlagValue, configuration.TargetFolder),
		ThresholdSize:      selectStringValue(thresholdFlagValue, configuration.ThresholdSize),
		IgnoreFilePath:     pathResolver.Resolve(ignoreFileValue),
		IgnoreFileName:     ignoreFileValue,
		Extensions:         configuration.Extensions,
		BotLogin:           configuration.BotLogin,
		Note:               selectStringValue(noteFlagValue, configuration.Note),
		DryRun:             dryRunValue,
		OutputFormat:       normalizedOutputFormat,
		WorkspaceDirectory: pathResolver.WorkspaceDirectory(),
	}

	return checkOptions, normalizedScanner, nil
}

func (builder *CommandBuilder) resolveService(logger *zap.Logger, runtime actions.Runtime, scannerKind string, checkOptions Options) (*Service, error) {
	fileSystem := builder.FileSystem
	if fileSystem == nil {
		fileSystem = filesystem.OSFileSystem{}
	}

	outputWriter := builder.OutputWriter
	if outputWriter == nil {
		outputWriter = os.Stdout
	}

	dependencies := Dependencies{
		Scanner:       builder.Scanner,
		CommentClient: builder.CommentClient,
		FileSystem:    fileSystem,
		Runtime:       runtime,
		OutputWriter:  outputWriter,
	}

	needsExecutor := (dependencies.Scanner == nil && scannerKind == ScannerFind) || (dependencies.CommentClient == nil && !checkOptions.DryRun)
	if needsExecutor {
		shellExecutor, executorError := builder.resolveExecutor(logger)
		if executorError != nil {
			return nil, executorError
		}

		if dependencies.Scanner == nil && scannerKind == ScannerFind {
			findScanner, scannerError := assets.NewFindScanner(shellExecutor)
			if scannerError != nil {
				return nil, scannerError
			}
			dependencies.Scanner = findScanner
		}

		if dependencies.CommentClient == nil && !checkOptions.DryRun {
			commentClient, clientError := githubcli.NewClient(shellExecutor, checkOptions.Token)
			if clientError != nil {
				return nil, clientError
			}
			dependencies.CommentClient = commentClient
		}
	}

	if dependencies.Scanner == nil {
		dependencies.Scanner = assets.NewWalkScanner()
	}

	return NewService(logger, dependencies)
}

func (builder *CommandBuilder) resolveExecutor(logger *zap.Logger) (*execshell.ShellExecutor, error) {
	commandRunner := builder.CommandRunner
	if commandRunner == nil {
		commandRunner = execshell.NewOSCommandRunner()
	}

	var observers []execshell.CommandEventObserver
	if builder.HumanReadableLoggingProvider != nil && builder.HumanReadableLoggingProvider() {
		observers = append(observers, ui.NewConsoleCommandEventLogger(logger))
	}

	return execshell.NewShellExecutor(logger, commandRunner, observers...)
}

func (builder *CommandBuilder) resolveLogger() *zap.Logger {
	if builder.LoggerProvider == nil {
		return zap.NewNop()
	}

	logger := builder.LoggerProvider()
	if logger == nil {
		return zap.NewNop()
	}

	return logger
}

func (builder *CommandBuilder) resolveConfiguration() Configuration {
	configuration := DefaultConfiguration()
	if builder.ConfigurationProvider != nil {
		configuration = builder.ConfigurationProvider()
	}
	return configuration.Sanitize()
}

func (builder *CommandBuilder) resolveEnvironmentLookup() EnvironmentLookup {
	if builder.EnvironmentLookup != nil {
		return builder.EnvironmentLookup
	}
	return os.LookupEnv
}

func selectStringValue(flagValue string, configurationValue string) string {
	trimmedFlagValue := strings.TrimSpace(flagValue)
	if len(trimmedFlagValue) > 0 {
		return trimmedFlagValue
	}

	return strings.TrimSpace(configurationValue)
}
