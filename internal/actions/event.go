package actions

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

const (
	pullRequestContextMissingMessageConstant = "pull request context missing"
	eventPathMissingMessageConstant          = "event payload path not set"
	eventReadErrorTemplateConstant           = "unable to read event payload %s: %w"
	eventDecodeErrorTemplateConstant         = "unable to decode event payload %s: %w"
	repositoryMissingMessageConstant         = "repository full name unavailable"
	repositorySeparatorConstant              = "/"
	pullRequestContextDetailTemplateConstant = "%w: %s"
)

var (
	// ErrPullRequestContextMissing indicates the run was not triggered by a pull request event.
	ErrPullRequestContextMissing = errors.New(pullRequestContextMissingMessageConstant)
	// ErrRepositoryMissing indicates neither the payload nor the runner named the repository.
	ErrRepositoryMissing = errors.New(repositoryMissingMessageConstant)
)

// PayloadReader reads the event payload file.
type PayloadReader func(path string) ([]byte, error)

// PullRequestContext identifies the pull request conversation the report belongs to.
type PullRequestContext struct {
	Number     int
	Repository string
	Owner      string
	Name       string
}

type eventPayload struct {
	PullRequest *struct {
		Number int `json:"number"`
	} `json:"pull_request"`
	Repository *struct {
		FullName string `json:"full_name"`
	} `json:"repository"`
}

// LoadPullRequestContext extracts the pull request number and repository from
// the event payload. Payloads without a pull_request object, and runs without
// an event payload at all, yield ErrPullRequestContextMissing.
func LoadPullRequestContext(runtime Runtime, reader PayloadReader) (PullRequestContext, error) {
	if len(runtime.EventPath) == 0 {
		return PullRequestContext{}, fmt.Errorf(pullRequestContextDetailTemplateConstant, ErrPullRequestContextMissing, eventPathMissingMessageConstant)
	}

	payloadBytes, readError := reader(runtime.EventPath)
	if readError != nil {
		return PullRequestContext{}, fmt.Errorf(eventReadErrorTemplateConstant, runtime.EventPath, readError)
	}

	var payload eventPayload
	if decodeError := json.Unmarshal(payloadBytes, &payload); decodeError != nil {
		return PullRequestContext{}, fmt.Errorf(eventDecodeErrorTemplateConstant, runtime.EventPath, decodeError)
	}

	if payload.PullRequest == nil || payload.PullRequest.Number <= 0 {
		return PullRequestContext{}, ErrPullRequestContextMissing
	}

	repositoryFullName := ""
	if payload.Repository != nil {
		repositoryFullName = strings.TrimSpace(payload.Repository.FullName)
	}
	if len(repositoryFullName) == 0 {
		repositoryFullName = runtime.Repository
	}

	ownerName, repositoryName, found := strings.Cut(repositoryFullName, repositorySeparatorConstant)
	if !found || len(ownerName) == 0 || len(repositoryName) == 0 {
		return PullRequestContext{}, ErrRepositoryMissing
	}

	return PullRequestContext{
		Number:     payload.PullRequest.Number,
		Repository: repositoryFullName,
		Owner:      ownerName,
		Name:       repositoryName,
	}, nil
}
