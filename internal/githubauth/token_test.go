package githubauth_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/assetscheck/internal/githubauth"
)

const (
	testConfiguredTokenCaseNameConstant = "configured_token_wins"
	testActionInputCaseNameConstant     = "action_input_preferred"
	testFallbackCaseNameConstant        = "fallback_to_github_token"
	testBlankValuesCaseNameConstant     = "blank_values_skipped"
	testMissingCaseNameConstant         = "no_token_available"
	testConfiguredTokenValueConstant    = "configured-token"
	testActionInputTokenValueConstant   = "input-token"
	testGitHubCLITokenValueConstant     = "cli-token"
	testGitHubTokenValueConstant        = "github-token"
)

func TestResolveToken(testInstance *testing.T) {
	testCases := []struct {
		name            string
		configuredToken string
		environment     map[string]string
		expectedToken   string
		expectedFound   bool
	}{
		{
			name:            testConfiguredTokenCaseNameConstant,
			configuredToken: "  " + testConfiguredTokenValueConstant + " ",
			environment:     map[string]string{githubauth.EnvActionInputToken: testActionInputTokenValueConstant},
			expectedToken:   testConfiguredTokenValueConstant,
			expectedFound:   true,
		},
		{
			name: testActionInputCaseNameConstant,
			environment: map[string]string{
				githubauth.EnvActionInputToken: testActionInputTokenValueConstant,
				githubauth.EnvGitHubCLIToken:   testGitHubCLITokenValueConstant,
			},
			expectedToken: testActionInputTokenValueConstant,
			expectedFound: true,
		},
		{
			name:          testFallbackCaseNameConstant,
			environment:   map[string]string{githubauth.EnvGitHubToken: testGitHubTokenValueConstant},
			expectedToken: testGitHubTokenValueConstant,
			expectedFound: true,
		},
		{
			name: testBlankValuesCaseNameConstant,
			environment: map[string]string{
				githubauth.EnvActionInputToken: "   ",
				githubauth.EnvGitHubAPIToken:   testGitHubTokenValueConstant,
			},
			expectedToken: testGitHubTokenValueConstant,
			expectedFound: true,
		},
		{
			name:        testMissingCaseNameConstant,
			environment: map[string]string{},
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			token, found := githubauth.ResolveToken(testCase.configuredToken, githubauth.MapLookup(testCase.environment))
			require.Equal(testInstance, testCase.expectedFound, found)
			require.Equal(testInstance, testCase.expectedToken, token)
		})
	}
}
