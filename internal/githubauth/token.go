package githubauth

import (
	"os"
	"strings"
)

// Environment variable names consulted for GitHub authentication, in preference order.
const (
	EnvActionInputToken = "INPUT_TOKEN"
	EnvGitHubCLIToken   = "GH_TOKEN"
	EnvGitHubToken      = "GITHUB_TOKEN"
	EnvGitHubAPIToken   = "GITHUB_API_TOKEN"
)

var tokenPreference = []string{
	EnvActionInputToken,
	EnvGitHubCLIToken,
	EnvGitHubToken,
	EnvGitHubAPIToken,
}

// EnvironmentLookup resolves a single environment variable.
type EnvironmentLookup func(key string) (string, bool)

// ResolveToken returns the explicitly configured token when present, otherwise
// the first non-empty token observed through lookup. A nil lookup reads the
// process environment.
func ResolveToken(configuredToken string, lookup EnvironmentLookup) (string, bool) {
	trimmedConfiguredToken := strings.TrimSpace(configuredToken)
	if len(trimmedConfiguredToken) > 0 {
		return trimmedConfiguredToken, true
	}

	resolvedLookup := lookup
	if resolvedLookup == nil {
		resolvedLookup = os.LookupEnv
	}

	for _, key := range tokenPreference {
		value, exists := resolvedLookup(key)
		if !exists {
			continue
		}
		value = strings.TrimSpace(value)
		if len(value) > 0 {
			return value, true
		}
	}
	return "", false
}

// MapLookup adapts an environment map into an EnvironmentLookup.
func MapLookup(environment map[string]string) EnvironmentLookup {
	return func(key string) (string, bool) {
		value, exists := environment[key]
		return value, exists
	}
}
