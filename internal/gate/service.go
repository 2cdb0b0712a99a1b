package gate

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/temirov/assetscheck/internal/actions"
	"github.com/temirov/assetscheck/internal/assets"
	"github.com/temirov/assetscheck/internal/filesystem"
)

const (
	oversizedAssetsMessageConstant      = "Invalid size assets exists !!!"
	pullRequestRequiredMessageConstant  = "This action only works on pull_request events"
	loggerMissingMessageConstant        = "check service logger not configured"
	scannerMissingMessageConstant       = "check service scanner not configured"
	commentClientMissingMessageConstant = "check service comment client not configured"
	missingInputTemplateConstant        = "missing required input %s"
	tokenInputNameConstant              = "token"
	targetFolderInputNameConstant       = "target_folder"
	thresholdInputNameConstant          = "threshold_size"
	pullRequestErrorTemplateConstant    = "unable to resolve pull request: %w"
	ignoreListErrorTemplateConstant     = "unable to load ignore list: %w"
	scanErrorTemplateConstant           = "unable to scan %s: %w"
	dryRunOutputErrorTemplateConstant   = "unable to write dry run output: %w"
	stepSummaryFailedMessageConstant    = "Unable to append step summary"
	outputFailedMessageConstant         = "Unable to set step output"
	checkStartedMessageConstant         = "Checking asset sizes"
	checkCompletedMessageConstant       = "Checked asset sizes"
	pullRequestSkippedMessageConstant   = "Skipping assets check outside a pull request"
	ignoreListLoadedMessageConstant     = "Loaded ignore list"
	oversizedCountOutputNameConstant    = "oversized_count"
	passedOutputNameConstant            = "passed"
	logFieldTargetFolderConstant        = "target_folder"
	logFieldThresholdConstant           = "threshold_kb"
	logFieldDryRunConstant              = "dry_run"
	logFieldIgnoreFileConstant          = "ignore_file"
	logFieldIgnoredCountConstant        = "ignored_count"
	logFieldCandidateCountConstant      = "candidate_count"
	logFieldOversizedCountConstant      = "oversized_count"
	logFieldPassedConstant              = "passed"
	logFieldOutputNameConstant          = "output_name"
)

var (
	// ErrOversizedAssets signals a failing verdict; the process must exit non-zero.
	ErrOversizedAssets = errors.New(oversizedAssetsMessageConstant)
	// ErrLoggerNotConfigured indicates the service was built without a logger.
	ErrLoggerNotConfigured = errors.New(loggerMissingMessageConstant)
	// ErrScannerNotConfigured indicates the service was built without a scanner.
	ErrScannerNotConfigured = errors.New(scannerMissingMessageConstant)
	// ErrCommentClientNotConfigured indicates a non dry run without a comment client.
	ErrCommentClientNotConfigured = errors.New(commentClientMissingMessageConstant)
)

// MissingInputError reports a required input that was not provided.
type MissingInputError struct {
	InputName string
}

// Error names the missing input.
func (inputError MissingInputError) Error() string {
	return fmt.Sprintf(missingInputTemplateConstant, inputError.InputName)
}

// Options configures a single check run.
type Options struct {
	Token              string
	TargetFolder       string
	ThresholdSize      string
	IgnoreFilePath     string
	IgnoreFileName     string
	Extensions         []string
	BotLogin           string
	Note               string
	DryRun             bool
	OutputFormat       string
	WorkspaceDirectory string
}

// Result describes the outcome of a check run.
type Result struct {
	Skipped         bool
	Classification  assets.Classification
	Report          string
	DeletedComments []int64
	FailedDeletions []int64
	PostedComment   int64
}

// Dependencies bundles the collaborators used by Service.
type Dependencies struct {
	Scanner          assets.Scanner
	CommentClient    CommentClient
	FileSystem       filesystem.FileSystem
	Runtime          actions.Runtime
	WorkflowCommands WorkflowCommands
	RunnerFiles      RunnerFiles
	OutputWriter     io.Writer
}

// Service runs the assets check.
type Service struct {
	logger       *zap.Logger
	dependencies Dependencies
}

// NewService validates dependencies and constructs a Service.
func NewService(logger *zap.Logger, dependencies Dependencies) (*Service, error) {
	if logger == nil {
		return nil, ErrLoggerNotConfigured
	}
	if dependencies.Scanner == nil {
		return nil, ErrScannerNotConfigured
	}
	if dependencies.FileSystem == nil {
		dependencies.FileSystem = filesystem.OSFileSystem{}
	}
	if dependencies.WorkflowCommands == nil {
		dependencies.WorkflowCommands = actions.NewWorkflowCommandWriter(dependencies.OutputWriter)
	}
	if dependencies.RunnerFiles == nil {
		dependencies.RunnerFiles = actions.NewRunnerFiles(dependencies.Runtime, dependencies.FileSystem)
	}
	if dependencies.OutputWriter == nil {
		dependencies.OutputWriter = io.Discard
	}
	return &Service{logger: logger, dependencies: dependencies}, nil
}

// Run executes the check. A failing verdict returns ErrOversizedAssets after
// the report has been published. Runs outside a pull request are reported
// and skipped without error.
func (service *Service) Run(executionContext context.Context, options Options) (Result, error) {
	thresholdKilobytes, validationError := service.validate(options)
	if validationError != nil {
		return Result{}, validationError
	}

	service.logger.Info(checkStartedMessageConstant,
		zap.String(logFieldTargetFolderConstant, options.TargetFolder),
		zap.Int64(logFieldThresholdConstant, thresholdKilobytes),
		zap.Bool(logFieldDryRunConstant, options.DryRun),
	)

	var pullRequest actions.PullRequestContext
	if !options.DryRun {
		loadedPullRequest, pullRequestError := actions.LoadPullRequestContext(service.dependencies.Runtime, service.dependencies.FileSystem.ReadFile)
		if pullRequestError != nil {
			if errors.Is(pullRequestError, actions.ErrPullRequestContextMissing) {
				service.logger.Error(pullRequestSkippedMessageConstant, zap.Error(pullRequestError))
				_ = service.dependencies.WorkflowCommands.Error(pullRequestRequiredMessageConstant)
				return Result{Skipped: true}, nil
			}
			return Result{}, fmt.Errorf(pullRequestErrorTemplateConstant, pullRequestError)
		}
		pullRequest = loadedPullRequest
	}

	ignoreSet, ignoreError := assets.NewIgnoreListLoader(service.dependencies.FileSystem.ReadFile).Load(options.IgnoreFilePath)
	if ignoreError != nil {
		return Result{}, fmt.Errorf(ignoreListErrorTemplateConstant, ignoreError)
	}
	service.logger.Debug(ignoreListLoadedMessageConstant,
		zap.String(logFieldIgnoreFileConstant, options.IgnoreFilePath),
		zap.Int(logFieldIgnoredCountConstant, len(ignoreSet)),
	)

	candidateEntries, scanError := service.dependencies.Scanner.Scan(executionContext, assets.ScanRequest{
		TargetFolder:       options.TargetFolder,
		WorkingDirectory:   options.WorkspaceDirectory,
		ThresholdKilobytes: thresholdKilobytes,
		Extensions:         options.Extensions,
	})
	if scanError != nil {
		return Result{}, fmt.Errorf(scanErrorTemplateConstant, options.TargetFolder, scanError)
	}

	filteredEntries := assets.FilterIgnored(candidateEntries, ignoreSet)
	classification := assets.Classify(filteredEntries)

	thresholdLabel := strconv.FormatInt(thresholdKilobytes, 10)
	renderer := assets.NewReportRenderer(service.dependencies.FileSystem, assets.ReportOptions{
		ThresholdKilobytes: thresholdLabel,
		IgnoreFileName:     options.IgnoreFileName,
		Note:               options.Note,
		BaseDirectory:      options.WorkspaceDirectory,
	})
	report := renderer.Render(classification, filteredEntries, ignoreSet)

	result := Result{Classification: classification, Report: report}

	if options.DryRun {
		summary := buildSummary(classification, thresholdLabel, filteredEntries, renderer.InspectIgnored(ignoreSet))
		if outputError := writeDryRunOutput(service.dependencies.OutputWriter, options.OutputFormat, report, summary); outputError != nil {
			return result, fmt.Errorf(dryRunOutputErrorTemplateConstant, outputError)
		}
	} else {
		if service.dependencies.CommentClient == nil {
			return result, ErrCommentClientNotConfigured
		}
		publisher := reportPublisher{
			logger:           service.logger,
			client:           service.dependencies.CommentClient,
			workflowCommands: service.dependencies.WorkflowCommands,
			botLogin:         options.BotLogin,
		}
		published, publishError := publisher.replace(executionContext, pullRequest, report)
		result.DeletedComments = published.DeletedComments
		result.FailedDeletions = published.FailedDeletions
		result.PostedComment = published.PostedComment
		if publishError != nil {
			return result, publishError
		}
	}

	service.publishRunnerFiles(report, classification)

	service.logger.Info(checkCompletedMessageConstant,
		zap.Int(logFieldCandidateCountConstant, len(candidateEntries)),
		zap.Int(logFieldOversizedCountConstant, classification.OversizedCount),
		zap.Bool(logFieldPassedConstant, classification.Passed),
	)

	if !classification.Passed {
		_ = service.dependencies.WorkflowCommands.Error(oversizedAssetsMessageConstant)
		return result, ErrOversizedAssets
	}

	return result, nil
}

func (service *Service) validate(options Options) (int64, error) {
	if !options.DryRun && len(strings.TrimSpace(options.Token)) == 0 {
		return 0, MissingInputError{InputName: tokenInputNameConstant}
	}
	if len(strings.TrimSpace(options.TargetFolder)) == 0 {
		return 0, MissingInputError{InputName: targetFolderInputNameConstant}
	}
	if len(strings.TrimSpace(options.ThresholdSize)) == 0 {
		return 0, MissingInputError{InputName: thresholdInputNameConstant}
	}
	return assets.ParseThresholdKilobytes(options.ThresholdSize)
}

// publishRunnerFiles is best effort; failures are logged and ignored.
func (service *Service) publishRunnerFiles(report string, classification assets.Classification) {
	if summaryError := service.dependencies.RunnerFiles.AppendStepSummary(report); summaryError != nil {
		service.logger.Warn(stepSummaryFailedMessageConstant, zap.Error(summaryError))
	}

	outputs := []struct {
		name  string
		value string
	}{
		{name: oversizedCountOutputNameConstant, value: strconv.Itoa(classification.OversizedCount)},
		{name: passedOutputNameConstant, value: strconv.FormatBool(classification.Passed)},
	}
	for _, output := range outputs {
		if outputError := service.dependencies.RunnerFiles.SetOutput(output.name, output.value); outputError != nil {
			service.logger.Warn(outputFailedMessageConstant, zap.String(logFieldOutputNameConstant, output.name), zap.Error(outputError))
		}
	}
}
