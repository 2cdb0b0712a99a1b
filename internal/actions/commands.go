package actions

import (
	"fmt"
	"io"
	"strings"
)

const (
	workflowCommandTemplateConstant = "::%s::%s\n"
	errorCommandNameConstant        = "error"
	warningCommandNameConstant      = "warning"
	noticeCommandNameConstant       = "notice"
)

var workflowMessageEscaper = strings.NewReplacer("%", "%25", "\r", "%0D", "\n", "%0A")

// WorkflowCommandWriter emits workflow commands the runner turns into annotations.
type WorkflowCommandWriter struct {
	writer io.Writer
}

// NewWorkflowCommandWriter constructs a writer; commands are written to writer,
// normally standard output.
func NewWorkflowCommandWriter(writer io.Writer) *WorkflowCommandWriter {
	if writer == nil {
		writer = io.Discard
	}
	return &WorkflowCommandWriter{writer: writer}
}

// Error emits an error annotation.
func (commandWriter *WorkflowCommandWriter) Error(message string) error {
	return commandWriter.emit(errorCommandNameConstant, message)
}

// Warning emits a warning annotation.
func (commandWriter *WorkflowCommandWriter) Warning(message string) error {
	return commandWriter.emit(warningCommandNameConstant, message)
}

// Notice emits a notice annotation.
func (commandWriter *WorkflowCommandWriter) Notice(message string) error {
	return commandWriter.emit(noticeCommandNameConstant, message)
}

func (commandWriter *WorkflowCommandWriter) emit(commandName string, message string) error {
	if commandWriter == nil {
		return nil
	}
	_, writeError := fmt.Fprintf(commandWriter.writer, workflowCommandTemplateConstant, commandName, EscapeMessage(message))
	return writeError
}

// EscapeMessage applies the workflow command data escaping rules.
func EscapeMessage(message string) string {
	return workflowMessageEscaper.Replace(message)
}
