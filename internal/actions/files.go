package actions

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
)

const (
	runnerFilePermissionsConstant            = fs.FileMode(0o644)
	outputLineTemplateConstant               = "%s=%s\n"
	outputHeredocTemplateConstant            = "%s<<%s\n%s\n%s\n"
	outputHeredocDelimiterConstant           = "ASSETS_CHECK_OUTPUT_EOF"
	lineBreakCharactersConstant              = "\r\n"
	summaryTerminatorConstant                = "\n"
	outputNameMissingMessageConstant         = "output name required"
	outputDelimiterCollisionTemplateConstant = "output %s contains the heredoc delimiter"
	stepSummaryWriteErrorTemplateConstant    = "unable to append step summary %s: %w"
	outputWriteErrorTemplateConstant         = "unable to append output %s to %s: %w"
)

// ErrOutputNameMissing indicates SetOutput was called without a name.
var ErrOutputNameMissing = errors.New(outputNameMissingMessageConstant)

// FileAppender appends data to a runner file.
type FileAppender interface {
	AppendFile(path string, data []byte, permissions fs.FileMode) error
}

// RunnerFiles writes the job summary and step outputs. Operations are no-ops
// when the runner did not provide the corresponding file.
type RunnerFiles struct {
	runtime  Runtime
	appender FileAppender
}

// NewRunnerFiles constructs RunnerFiles for the provided runtime.
func NewRunnerFiles(runtime Runtime, appender FileAppender) *RunnerFiles {
	return &RunnerFiles{runtime: runtime, appender: appender}
}

// AppendStepSummary appends markdown to the job summary.
func (runnerFiles *RunnerFiles) AppendStepSummary(markdown string) error {
	if runnerFiles == nil || runnerFiles.appender == nil || len(runnerFiles.runtime.StepSummaryPath) == 0 {
		return nil
	}

	content := markdown
	if !strings.HasSuffix(content, summaryTerminatorConstant) {
		content += summaryTerminatorConstant
	}

	if appendError := runnerFiles.appender.AppendFile(runnerFiles.runtime.StepSummaryPath, []byte(content), runnerFilePermissionsConstant); appendError != nil {
		return fmt.Errorf(stepSummaryWriteErrorTemplateConstant, runnerFiles.runtime.StepSummaryPath, appendError)
	}
	return nil
}

// SetOutput publishes a step output. Multi-line values use the heredoc form.
func (runnerFiles *RunnerFiles) SetOutput(name string, value string) error {
	trimmedName := strings.TrimSpace(name)
	if len(trimmedName) == 0 {
		return ErrOutputNameMissing
	}
	if runnerFiles == nil || runnerFiles.appender == nil || len(runnerFiles.runtime.OutputPath) == 0 {
		return nil
	}

	outputLine := fmt.Sprintf(outputLineTemplateConstant, trimmedName, value)
	if strings.ContainsAny(value, lineBreakCharactersConstant) {
		if strings.Contains(value, outputHeredocDelimiterConstant) {
			return fmt.Errorf(outputDelimiterCollisionTemplateConstant, trimmedName)
		}
		outputLine = fmt.Sprintf(outputHeredocTemplateConstant, trimmedName, outputHeredocDelimiterConstant, value, outputHeredocDelimiterConstant)
	}

	if appendError := runnerFiles.appender.AppendFile(runnerFiles.runtime.OutputPath, []byte(outputLine), runnerFilePermissionsConstant); appendError != nil {
		return fmt.Errorf(outputWriteErrorTemplateConstant, trimmedName, runnerFiles.runtime.OutputPath, appendError)
	}
	return nil
}
