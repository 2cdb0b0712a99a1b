package utils

import "context"

const (
	configurationFilePathContextKeyConstant = commandContextKey("configurationFilePath")
	workspaceDirectoryContextKeyConstant    = commandContextKey("workspaceDirectory")
)

type commandContextKey string

// CommandContextAccessor manages values the root command shares with subcommands.
type CommandContextAccessor struct{}

// NewCommandContextAccessor constructs a CommandContextAccessor instance.
func NewCommandContextAccessor() CommandContextAccessor {
	return CommandContextAccessor{}
}

// WithConfigurationFilePath attaches the configuration file path to the provided context.
func (accessor CommandContextAccessor) WithConfigurationFilePath(parentContext context.Context, configurationFilePath string) context.Context {
	return accessor.withValue(parentContext, configurationFilePathContextKeyConstant, configurationFilePath)
}

// ConfigurationFilePath extracts the configuration file path from the provided context.
func (accessor CommandContextAccessor) ConfigurationFilePath(executionContext context.Context) (string, bool) {
	return accessor.stringValue(executionContext, configurationFilePathContextKeyConstant)
}

// WithWorkspaceDirectory attaches the directory relative paths are resolved against.
func (accessor CommandContextAccessor) WithWorkspaceDirectory(parentContext context.Context, workspaceDirectory string) context.Context {
	return accessor.withValue(parentContext, workspaceDirectoryContextKeyConstant, workspaceDirectory)
}

// WorkspaceDirectory extracts the workspace directory from the provided context.
func (accessor CommandContextAccessor) WorkspaceDirectory(executionContext context.Context) (string, bool) {
	return accessor.stringValue(executionContext, workspaceDirectoryContextKeyConstant)
}

func (accessor CommandContextAccessor) withValue(parentContext context.Context, key commandContextKey, value string) context.Context {
	if parentContext == nil {
		parentContext = context.Background()
	}
	return context.WithValue(parentContext, key, value)
}

func (accessor CommandContextAccessor) stringValue(executionContext context.Context, key commandContextKey) (string, bool) {
	if executionContext == nil {
		return "", false
	}
	value, valueAvailable := executionContext.Value(key).(string)
	if !valueAvailable {
		return "", false
	}
	return value, true
}
