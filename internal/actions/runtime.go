package actions

import (
	"os"
	"strings"
)

// Environment variable names published by the GitHub Actions runner.
const (
	EnvActions         = "GITHUB_ACTIONS"
	EnvEventName       = "GITHUB_EVENT_NAME"
	EnvEventPath       = "GITHUB_EVENT_PATH"
	EnvRepository      = "GITHUB_REPOSITORY"
	EnvWorkspace       = "GITHUB_WORKSPACE"
	EnvStepSummaryPath = "GITHUB_STEP_SUMMARY"
	EnvOutputPath      = "GITHUB_OUTPUT"

	actionsEnabledValueConstant = "true"
)

// EnvironmentLookup resolves a single environment variable.
type EnvironmentLookup func(key string) (string, bool)

// Runtime captures the runner-provided locations the gate reads and writes.
type Runtime struct {
	Enabled         bool
	EventName       string
	EventPath       string
	Repository      string
	Workspace       string
	StepSummaryPath string
	OutputPath      string
}

// LoadRuntime reads the runner environment; a nil lookup reads the process environment.
func LoadRuntime(lookup EnvironmentLookup) Runtime {
	resolvedLookup := lookup
	if resolvedLookup == nil {
		resolvedLookup = os.LookupEnv
	}

	readValue := func(key string) string {
		value, _ := resolvedLookup(key)
		return strings.TrimSpace(value)
	}

	return Runtime{
		Enabled:         strings.EqualFold(readValue(EnvActions), actionsEnabledValueConstant),
		EventName:       readValue(EnvEventName),
		EventPath:       readValue(EnvEventPath),
		Repository:      readValue(EnvRepository),
		Workspace:       readValue(EnvWorkspace),
		StepSummaryPath: readValue(EnvStepSummaryPath),
		OutputPath:      readValue(EnvOutputPath),
	}
}
