package execshell

import (
	"fmt"
	"strings"
)

const (
	githubAPISubcommandConstant            = "api"
	githubMethodFlagConstant               = "-X"
	githubMethodPostConstant               = "POST"
	githubMethodDeleteConstant             = "DELETE"
	genericStartedTemplateConstant         = "Running %s %s"
	genericSucceededTemplateConstant       = "Completed %s %s"
	genericFailedTemplateConstant          = "%s %s exited with code %d"
	genericExecutionFailedTemplateConstant = "%s %s could not run: %v"
	commentListStartedTemplateConstant     = "Listing comments via %s"
	commentListSucceededTemplateConstant   = "Listed comments via %s"
	commentCreateStartedTemplateConstant   = "Posting comment via %s"
	commentCreateSucceededTemplateConstant = "Posted comment via %s"
	commentDeleteStartedTemplateConstant   = "Deleting comment %s"
	commentDeleteSucceededTemplateConstant = "Deleted comment %s"
	findScanStartedTemplateConstant        = "Scanning %s for oversized assets"
	findScanSucceededTemplateConstant      = "Scanned %s for oversized assets"
	findScanFailedTemplateConstant         = "Scanning %s failed with exit code %d"
	argumentSeparatorConstant              = " "
	unknownTargetConstant                  = "<unknown>"
	flagPrefixConstant                     = "-"
)

type githubOperationKind int

const (
	githubOperationOther githubOperationKind = iota
	githubOperationListComments
	githubOperationCreateComment
	githubOperationDeleteComment
)

// CommandMessageFormatter builds human readable log messages for shell commands.
type CommandMessageFormatter struct{}

// BuildStartedMessage describes a command that is about to run.
func (CommandMessageFormatter) BuildStartedMessage(command ShellCommand) string {
	switch command.Name {
	case CommandFind:
		return fmt.Sprintf(findScanStartedTemplateConstant, findTarget(command.Details.Arguments))
	case CommandGitHub:
		operationKind, endpoint := classifyGitHubCommand(command.Details.Arguments)
		switch operationKind {
		case githubOperationListComments:
			return fmt.Sprintf(commentListStartedTemplateConstant, endpoint)
		case githubOperationCreateComment:
			return fmt.Sprintf(commentCreateStartedTemplateConstant, endpoint)
		case githubOperationDeleteComment:
			return fmt.Sprintf(commentDeleteStartedTemplateConstant, endpoint)
		}
	}
	return fmt.Sprintf(genericStartedTemplateConstant, command.Name, joinArguments(command.Details.Arguments))
}

// BuildSuccessMessage describes a command that finished with a zero exit code.
func (CommandMessageFormatter) BuildSuccessMessage(command ShellCommand) string {
	switch command.Name {
	case CommandFind:
		return fmt.Sprintf(findScanSucceededTemplateConstant, findTarget(command.Details.Arguments))
	case CommandGitHub:
		operationKind, endpoint := classifyGitHubCommand(command.Details.Arguments)
		switch operationKind {
		case githubOperationListComments:
			return fmt.Sprintf(commentListSucceededTemplateConstant, endpoint)
		case githubOperationCreateComment:
			return fmt.Sprintf(commentCreateSucceededTemplateConstant, endpoint)
		case githubOperationDeleteComment:
			return fmt.Sprintf(commentDeleteSucceededTemplateConstant, endpoint)
		}
	}
	return fmt.Sprintf(genericSucceededTemplateConstant, command.Name, joinArguments(command.Details.Arguments))
}

// BuildFailureMessage describes a command that finished with a non-zero exit code.
func (CommandMessageFormatter) BuildFailureMessage(command ShellCommand, result ExecutionResult) string {
	if command.Name == CommandFind {
		return fmt.Sprintf(findScanFailedTemplateConstant, findTarget(command.Details.Arguments), result.ExitCode)
	}
	return fmt.Sprintf(genericFailedTemplateConstant, command.Name, joinArguments(command.Details.Arguments), result.ExitCode)
}

// BuildExecutionFailureMessage describes a command that could not be run at all.
func (CommandMessageFormatter) BuildExecutionFailureMessage(command ShellCommand, failure error) string {
	return fmt.Sprintf(genericExecutionFailedTemplateConstant, command.Name, joinArguments(command.Details.Arguments), failure)
}

func classifyGitHubCommand(arguments []string) (githubOperationKind, string) {
	if len(arguments) == 0 || arguments[0] != githubAPISubcommandConstant {
		return githubOperationOther, ""
	}

	method := ""
	endpoint := ""
	for argumentIndex := 1; argumentIndex < len(arguments); argumentIndex++ {
		argument := arguments[argumentIndex]
		if argument == githubMethodFlagConstant && argumentIndex+1 < len(arguments) {
			method = strings.ToUpper(arguments[argumentIndex+1])
			argumentIndex++
			continue
		}
		if strings.HasPrefix(argument, flagPrefixConstant) || len(endpoint) > 0 {
			continue
		}
		endpoint = argument
	}
	if len(endpoint) == 0 {
		endpoint = unknownTargetConstant
	}

	switch method {
	case githubMethodPostConstant:
		return githubOperationCreateComment, endpoint
	case githubMethodDeleteConstant:
		return githubOperationDeleteComment, endpoint
	case "":
		return githubOperationListComments, endpoint
	default:
		return githubOperationOther, endpoint
	}
}

func findTarget(arguments []string) string {
	if len(arguments) == 0 {
		return unknownTargetConstant
	}
	return arguments[0]
}

func joinArguments(arguments []string) string {
	return strings.Join(arguments, argumentSeparatorConstant)
}
