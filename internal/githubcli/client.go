package githubcli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/temirov/assetscheck/internal/execshell"
)

const (
	apiSubcommandConstant                   = "api"
	paginateFlagConstant                    = "--paginate"
	methodFlagConstant                      = "-X"
	inputFlagConstant                       = "--input"
	stdinReferenceConstant                  = "-"
	acceptHeaderFlagConstant                = "-H"
	acceptHeaderValueConstant               = "Accept: application/vnd.github+json"
	httpMethodPostConstant                  = "POST"
	httpMethodDeleteConstant                = "DELETE"
	tokenEnvironmentVariableConstant        = "GH_TOKEN"
	repositoryFieldNameConstant             = "repository"
	issueNumberFieldNameConstant            = "issue_number"
	commentIdentifierFieldNameConstant      = "comment_id"
	commentBodyFieldNameConstant            = "body"
	requiredValueMessageConstant            = "value required"
	positiveValueMessageConstant            = "must be positive"
	repositoryFormatMessageConstant         = "must be in owner/name form"
	repositorySeparatorConstant             = "/"
	executorNotConfiguredMessageConstant    = "github cli executor not configured"
	operationErrorMessageTemplateConstant   = "%s operation failed"
	operationErrorWithCauseTemplateConstant = "%s operation failed: %s"
	responseDecodingErrorTemplateConstant   = "%s response decoding failed: %s"
	payloadEncodingErrorTemplateConstant    = "%s payload encoding failed: %s"
	invalidInputErrorTemplateConstant       = "%s: %s"
	issueCommentsEndpointTemplateConstant   = "repos/%s/issues/%d/comments"
	issueCommentEndpointTemplateConstant    = "repos/%s/issues/comments/%d"
	listCommentsOperationNameConstant       = OperationName("ListIssueComments")
	createCommentOperationNameConstant      = OperationName("CreateIssueComment")
	deleteCommentOperationNameConstant      = OperationName("DeleteIssueComment")
)

// OperationName describes a named GitHub CLI workflow supported by the client.
type OperationName string

// IssueComment is a comment attached to an issue or pull request conversation.
type IssueComment struct {
	ID          int64
	AuthorLogin string
	Body        string
}

// GitHubCommandExecutor is the minimal interface required from execshell.ShellExecutor.
type GitHubCommandExecutor interface {
	ExecuteGitHubCLI(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// Client coordinates GitHub CLI invocations through execshell.
type Client struct {
	executor            GitHubCommandExecutor
	authenticationToken string
}

var (
	// ErrExecutorNotConfigured indicates the client was constructed without an executor.
	ErrExecutorNotConfigured = errors.New(executorNotConfiguredMessageConstant)
)

// InvalidInputError surfaces validation issues for operation inputs.
type InvalidInputError struct {
	FieldName string
	Message   string
}

// Error describes the invalid input.
func (inputError InvalidInputError) Error() string {
	return fmt.Sprintf(invalidInputErrorTemplateConstant, inputError.FieldName, inputError.Message)
}

// OperationError wraps execution issues for GitHub CLI operations.
type OperationError struct {
	Operation OperationName
	Cause     error
}

// Error describes the operation failure.
func (operationError OperationError) Error() string {
	if operationError.Cause == nil {
		return fmt.Sprintf(operationErrorMessageTemplateConstant, operationError.Operation)
	}
	return fmt.Sprintf(operationErrorWithCauseTemplateConstant, operationError.Operation, operationError.Cause)
}

// Unwrap exposes the underlying cause.
func (operationError OperationError) Unwrap() error {
	return operationError.Cause
}

// ResponseDecodingError indicates JSON decoding failures.
type ResponseDecodingError struct {
	Operation OperationName
	Cause     error
}

// Error describes the decoding failure.
func (decodingError ResponseDecodingError) Error() string {
	return fmt.Sprintf(responseDecodingErrorTemplateConstant, decodingError.Operation, decodingError.Cause)
}

// Unwrap exposes the underlying JSON error.
func (decodingError ResponseDecodingError) Unwrap() error {
	return decodingError.Cause
}

// PayloadEncodingError indicates JSON encoding issues.
type PayloadEncodingError struct {
	Operation OperationName
	Cause     error
}

// Error describes the encoding failure.
func (encodingError PayloadEncodingError) Error() string {
	return fmt.Sprintf(payloadEncodingErrorTemplateConstant, encodingError.Operation, encodingError.Cause)
}

// Unwrap exposes the underlying error.
func (encodingError PayloadEncodingError) Unwrap() error {
	return encodingError.Cause
}

// NewClient constructs a GitHub CLI client. A non-empty token is handed to gh
// through its environment; an empty token leaves gh on its own credentials.
func NewClient(executor GitHubCommandExecutor, authenticationToken string) (*Client, error) {
	if executor == nil {
		return nil, ErrExecutorNotConfigured
	}
	return &Client{executor: executor, authenticationToken: strings.TrimSpace(authenticationToken)}, nil
}

type issueCommentResponse struct {
	ID   int64  `json:"id"`
	Body string `json:"body"`
	User struct {
		Login string `json:"login"`
	} `json:"user"`
}

func (response issueCommentResponse) toIssueComment() IssueComment {
	return IssueComment{ID: response.ID, AuthorLogin: response.User.Login, Body: response.Body}
}

// ListIssueComments returns every comment on the conversation, following pagination.
func (client *Client) ListIssueComments(executionContext context.Context, repository string, issueNumber int) ([]IssueComment, error) {
	repositoryIdentifier, validationError := validateRepository(repository)
	if validationError != nil {
		return nil, validationError
	}
	if issueNumber <= 0 {
		return nil, InvalidInputError{FieldName: issueNumberFieldNameConstant, Message: positiveValueMessageConstant}
	}

	commandDetails := client.commandDetails([]string{
		apiSubcommandConstant,
		paginateFlagConstant,
		acceptHeaderFlagConstant,
		acceptHeaderValueConstant,
		fmt.Sprintf(issueCommentsEndpointTemplateConstant, repositoryIdentifier, issueNumber),
	}, nil)

	executionResult, executionError := client.executor.ExecuteGitHubCLI(executionContext, commandDetails)
	if executionError != nil {
		return nil, OperationError{Operation: listCommentsOperationNameConstant, Cause: executionError}
	}

	// --paginate emits one JSON array per page back to back.
	comments := make([]IssueComment, 0)
	decoder := json.NewDecoder(strings.NewReader(executionResult.StandardOutput))
	for {
		var page []issueCommentResponse
		decodingError := decoder.Decode(&page)
		if errors.Is(decodingError, io.EOF) {
			break
		}
		if decodingError != nil {
			return nil, ResponseDecodingError{Operation: listCommentsOperationNameConstant, Cause: decodingError}
		}
		for _, commentResponse := range page {
			comments = append(comments, commentResponse.toIssueComment())
		}
	}

	return comments, nil
}

// CreateIssueComment posts a new comment with the provided markdown body.
func (client *Client) CreateIssueComment(executionContext context.Context, repository string, issueNumber int, body string) (IssueComment, error) {
	repositoryIdentifier, validationError := validateRepository(repository)
	if validationError != nil {
		return IssueComment{}, validationError
	}
	if issueNumber <= 0 {
		return IssueComment{}, InvalidInputError{FieldName: issueNumberFieldNameConstant, Message: positiveValueMessageConstant}
	}
	if len(strings.TrimSpace(body)) == 0 {
		return IssueComment{}, InvalidInputError{FieldName: commentBodyFieldNameConstant, Message: requiredValueMessageConstant}
	}

	payload := struct {
		Body string `json:"body"`
	}{Body: body}

	var payloadBuffer bytes.Buffer
	encoder := json.NewEncoder(&payloadBuffer)
	encoder.SetEscapeHTML(false)
	if encodingError := encoder.Encode(payload); encodingError != nil {
		return IssueComment{}, PayloadEncodingError{Operation: createCommentOperationNameConstant, Cause: encodingError}
	}

	commandDetails := client.commandDetails([]string{
		apiSubcommandConstant,
		methodFlagConstant,
		httpMethodPostConstant,
		acceptHeaderFlagConstant,
		acceptHeaderValueConstant,
		fmt.Sprintf(issueCommentsEndpointTemplateConstant, repositoryIdentifier, issueNumber),
		inputFlagConstant,
		stdinReferenceConstant,
	}, payloadBuffer.Bytes())

	executionResult, executionError := client.executor.ExecuteGitHubCLI(executionContext, commandDetails)
	if executionError != nil {
		return IssueComment{}, OperationError{Operation: createCommentOperationNameConstant, Cause: executionError}
	}

	var response issueCommentResponse
	if decodingError := json.Unmarshal([]byte(executionResult.StandardOutput), &response); decodingError != nil {
		return IssueComment{}, ResponseDecodingError{Operation: createCommentOperationNameConstant, Cause: decodingError}
	}

	return response.toIssueComment(), nil
}

// DeleteIssueComment removes a single comment by identifier.
func (client *Client) DeleteIssueComment(executionContext context.Context, repository string, commentIdentifier int64) error {
	repositoryIdentifier, validationError := validateRepository(repository)
	if validationError != nil {
		return validationError
	}
	if commentIdentifier <= 0 {
		return InvalidInputError{FieldName: commentIdentifierFieldNameConstant, Message: positiveValueMessageConstant}
	}

	commandDetails := client.commandDetails([]string{
		apiSubcommandConstant,
		methodFlagConstant,
		httpMethodDeleteConstant,
		acceptHeaderFlagConstant,
		acceptHeaderValueConstant,
		fmt.Sprintf(issueCommentEndpointTemplateConstant, repositoryIdentifier, commentIdentifier),
	}, nil)

	_, executionError := client.executor.ExecuteGitHubCLI(executionContext, commandDetails)
	if executionError != nil {
		return OperationError{Operation: deleteCommentOperationNameConstant, Cause: executionError}
	}

	return nil
}

func (client *Client) commandDetails(arguments []string, standardInput []byte) execshell.CommandDetails {
	commandDetails := execshell.CommandDetails{Arguments: arguments, StandardInput: standardInput}
	if len(client.authenticationToken) > 0 {
		commandDetails.EnvironmentVariables = map[string]string{tokenEnvironmentVariableConstant: client.authenticationToken}
	}
	return commandDetails
}

func validateRepository(repository string) (string, error) {
	repositoryIdentifier := strings.TrimSpace(repository)
	if len(repositoryIdentifier) == 0 {
		return "", InvalidInputError{FieldName: repositoryFieldNameConstant, Message: requiredValueMessageConstant}
	}
	ownerName, repositoryName, found := strings.Cut(repositoryIdentifier, repositorySeparatorConstant)
	if !found || len(ownerName) == 0 || len(repositoryName) == 0 {
		return "", InvalidInputError{FieldName: repositoryFieldNameConstant, Message: repositoryFormatMessageConstant}
	}
	return repositoryIdentifier, nil
}
