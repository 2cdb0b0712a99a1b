package flags

import (
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

func TestFormatChoiceUsage(t *testing.T) {
	testCases := []struct {
		name           string
		defaultChoice  string
		choices        []string
		description    string
		expectedOutput string
	}{
		{
			name:           "DefaultFirstChoice",
			defaultChoice:  "walk",
			choices:        []string{"walk", "find"},
			description:    "Scanner used to discover assets.",
			expectedOutput: "`<WALK|find>` Scanner used to discover assets.",
		},
		{
			name:           "DefaultSecondChoice",
			defaultChoice:  "table",
			choices:        []string{"markdown", "table", "json"},
			description:    "Dry-run output format.",
			expectedOutput: "`<markdown|TABLE|json>` Dry-run output format.",
		},
		{
			name:           "EmptyDescription",
			defaultChoice:  "walk",
			choices:        []string{"walk", "find"},
			expectedOutput: "`<WALK|find>`",
		},
		{
			name:           "DuplicateChoicesIgnored",
			defaultChoice:  "json",
			choices:        []string{"json", "json", "yaml", "yaml"},
			description:    "Select between options.",
			expectedOutput: "`<JSON|yaml>` Select between options.",
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			actual := FormatChoiceUsage(testCase.defaultChoice, testCase.choices, testCase.description)
			require.Equal(t, testCase.expectedOutput, actual)
		})
	}
}

func TestAddChoiceFlag(t *testing.T) {
	testCases := []struct {
		name          string
		arguments     []string
		expectedValue string
		expectError   bool
	}{
		{
			name:          "DefaultApplied",
			arguments:     []string{},
			expectedValue: "walk",
		},
		{
			name:          "CaseInsensitiveValue",
			arguments:     []string{"--scanner", "FIND"},
			expectedValue: "find",
		},
		{
			name:        "UnknownValueRejected",
			arguments:   []string{"--scanner", "glob"},
			expectError: true,
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			flagSet := pflag.NewFlagSet("test", pflag.ContinueOnError)
			var scannerValue string
			AddChoiceFlag(flagSet, &scannerValue, "scanner", "walk", []string{"walk", "find"}, "Scanner.")

			parseError := flagSet.Parse(testCase.arguments)
			if testCase.expectError {
				require.Error(t, parseError)
				return
			}
			require.NoError(t, parseError)
			require.Equal(t, testCase.expectedValue, scannerValue)
		})
	}
}
