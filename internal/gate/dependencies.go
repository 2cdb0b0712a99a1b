package gate

import (
	"context"

	"github.com/temirov/assetscheck/internal/githubcli"
)

// CommentClient exposes the issue comment operations used to publish the report.
type CommentClient interface {
	ListIssueComments(executionContext context.Context, repository string, issueNumber int) ([]githubcli.IssueComment, error)
	CreateIssueComment(executionContext context.Context, repository string, issueNumber int, body string) (githubcli.IssueComment, error)
	DeleteIssueComment(executionContext context.Context, repository string, commentIdentifier int64) error
}

// WorkflowCommands emits GitHub Actions annotations.
type WorkflowCommands interface {
	Error(message string) error
	Warning(message string) error
}

// RunnerFiles appends to the runner-provided summary and output files.
type RunnerFiles interface {
	AppendStepSummary(markdown string) error
	SetOutput(name string, value string) error
}
