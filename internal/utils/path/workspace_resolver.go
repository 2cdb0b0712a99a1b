package pathutils

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
)

const (
	tildeSymbolConstant      = "~"
	forwardSlashConstant     = "/"
	currentDirectoryConstant = "."
)

// HomeDirectoryProvider resolves the current user's home directory path.
type HomeDirectoryProvider func() (string, error)

// WorkspacePathResolver turns user supplied paths into paths usable from the
// process working directory. A leading tilde expands to the home directory and
// relative paths are anchored at the workspace directory when one is set.
type WorkspacePathResolver struct {
	workspaceDirectory    string
	homeDirectoryProvider HomeDirectoryProvider
	homeDirectory         string
	homeDirectoryError    error
	initializationGuard   sync.Once
}

// NewWorkspacePathResolver constructs a resolver; a nil provider uses os.UserHomeDir.
func NewWorkspacePathResolver(workspaceDirectory string, provider HomeDirectoryProvider) *WorkspacePathResolver {
	if provider == nil {
		provider = os.UserHomeDir
	}
	return &WorkspacePathResolver{
		workspaceDirectory:    strings.TrimSpace(workspaceDirectory),
		homeDirectoryProvider: provider,
	}
}

// WorkspaceDirectory reports the anchor used for relative paths, or "." when unset.
func (resolver *WorkspacePathResolver) WorkspaceDirectory() string {
	if resolver == nil || len(resolver.workspaceDirectory) == 0 {
		return currentDirectoryConstant
	}
	return resolver.workspaceDirectory
}

// Resolve trims, expands, and anchors candidatePath. Empty input stays empty.
func (resolver *WorkspacePathResolver) Resolve(candidatePath string) string {
	trimmedPath := strings.TrimSpace(candidatePath)
	if resolver == nil || len(trimmedPath) == 0 {
		return trimmedPath
	}

	expandedPath := resolver.expandHome(trimmedPath)
	if filepath.IsAbs(expandedPath) || len(resolver.workspaceDirectory) == 0 {
		return filepath.Clean(expandedPath)
	}
	return filepath.Join(resolver.workspaceDirectory, expandedPath)
}

func (resolver *WorkspacePathResolver) expandHome(candidatePath string) string {
	if !strings.HasPrefix(candidatePath, tildeSymbolConstant) {
		return candidatePath
	}

	remainder := strings.TrimPrefix(candidatePath, tildeSymbolConstant)
	if len(remainder) > 0 && !strings.HasPrefix(remainder, forwardSlashConstant) && !strings.HasPrefix(remainder, string(os.PathSeparator)) {
		return candidatePath
	}

	resolver.initializationGuard.Do(func() {
		resolver.homeDirectory, resolver.homeDirectoryError = resolver.homeDirectoryProvider()
	})
	if resolver.homeDirectoryError != nil || len(resolver.homeDirectory) == 0 {
		return candidatePath
	}
	return filepath.Join(resolver.homeDirectory, remainder)
}
