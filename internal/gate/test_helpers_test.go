package gate_test

import (
	"context"
	"errors"
	"io/fs"
	"sync"
	"time"

	"github.com/temirov/assetscheck/internal/assets"
	"github.com/temirov/assetscheck/internal/githubcli"
)

const (
	testWorkspaceConstant               = "/workspace"
	testEventPathConstant               = "/runner/event.json"
	testSummaryPathConstant             = "/runner/summary.md"
	testOutputPathConstant              = "/runner/output"
	testIgnoreFilePathConstant          = "/workspace/.assets-ignore"
	testRepositoryConstant              = "octo/gallery"
	testPullRequestNumberConstant       = 42
	testBotLoginConstant                = "github-actions[bot]"
	testTokenConstant                   = "ghs_example"
	testPullRequestEventPayloadConstant = `{"pull_request":{"number":42},"repository":{"full_name":"octo/gallery"}}`
	testPushEventPayloadConstant        = `{"ref":"refs/heads/main","repository":{"full_name":"octo/gallery"}}`
)

type stubFileInfo struct {
	name string
	size int64
}

func (info stubFileInfo) Name() string       { return info.name }
func (info stubFileInfo) Size() int64        { return info.size }
func (info stubFileInfo) Mode() fs.FileMode  { return 0o644 }
func (info stubFileInfo) ModTime() time.Time { return time.Time{} }
func (info stubFileInfo) IsDir() bool        { return false }
func (info stubFileInfo) Sys() any           { return nil }

type stubFileSystem struct {
	mutex    sync.Mutex
	files    map[string]string
	sizes    map[string]int64
	appended map[string]string
}

func newStubFileSystem(files map[string]string, sizes map[string]int64) *stubFileSystem {
	return &stubFileSystem{files: files, sizes: sizes, appended: map[string]string{}}
}

func (fileSystem *stubFileSystem) Stat(path string) (fs.FileInfo, error) {
	size, found := fileSystem.sizes[path]
	if !found {
		return nil, &fs.PathError{Op: "stat", Path: path, Err: fs.ErrNotExist}
	}
	return stubFileInfo{name: path, size: size}, nil
}

func (fileSystem *stubFileSystem) ReadFile(path string) ([]byte, error) {
	contents, found := fileSystem.files[path]
	if !found {
		return nil, &fs.PathError{Op: "open", Path: path, Err: fs.ErrNotExist}
	}
	return []byte(contents), nil
}

func (fileSystem *stubFileSystem) AppendFile(path string, data []byte, _ fs.FileMode) error {
	fileSystem.mutex.Lock()
	defer fileSystem.mutex.Unlock()
	fileSystem.appended[path] += string(data)
	return nil
}

type stubScanner struct {
	entries          []assets.CandidateEntry
	scanError        error
	recordedRequests []assets.ScanRequest
}

func (scanner *stubScanner) Scan(_ context.Context, request assets.ScanRequest) ([]assets.CandidateEntry, error) {
	scanner.recordedRequests = append(scanner.recordedRequests, request)
	if scanner.scanError != nil {
		return nil, scanner.scanError
	}
	return scanner.entries, nil
}

type stubCommentClient struct {
	comments        []githubcli.IssueComment
	listError       error
	deleteErrors    map[int64]error
	createError     error
	deletedComments []int64
	createdBodies   []string
	listedTargets   []string
}

func (client *stubCommentClient) ListIssueComments(_ context.Context, repository string, _ int) ([]githubcli.IssueComment, error) {
	client.listedTargets = append(client.listedTargets, repository)
	if client.listError != nil {
		return nil, client.listError
	}
	return client.comments, nil
}

func (client *stubCommentClient) CreateIssueComment(_ context.Context, _ string, _ int, body string) (githubcli.IssueComment, error) {
	if client.createError != nil {
		return githubcli.IssueComment{}, client.createError
	}
	client.createdBodies = append(client.createdBodies, body)
	return githubcli.IssueComment{ID: 900, AuthorLogin: testBotLoginConstant, Body: body}, nil
}

func (client *stubCommentClient) DeleteIssueComment(_ context.Context, _ string, commentIdentifier int64) error {
	if deleteError, hasError := client.deleteErrors[commentIdentifier]; hasError {
		return deleteError
	}
	client.deletedComments = append(client.deletedComments, commentIdentifier)
	return nil
}

var errStubFailure = errors.New("stub failure")
