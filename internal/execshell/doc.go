// Package execshell provides structured helpers for invoking external tools.
//
// ShellExecutor wraps a CommandRunner with zap logging and lifecycle
// observers, OSCommandRunner runs processes through os/exec, and the
// ExecuteGitHubCLI and ExecuteFind wrappers pin the executable names so the
// GitHub CLI and find(1) can be stubbed in tests.
package execshell
