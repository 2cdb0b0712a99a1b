package gate_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/assetscheck/internal/actions"
	"github.com/temirov/assetscheck/internal/assets"
	"github.com/temirov/assetscheck/internal/execshell"
	"github.com/temirov/assetscheck/internal/gate"
)

type recordingCommandRunner struct {
	result           execshell.ExecutionResult
	recordedCommands []execshell.ShellCommand
}

func (runner *recordingCommandRunner) Run(_ context.Context, command execshell.ShellCommand) (execshell.ExecutionResult, error) {
	runner.recordedCommands = append(runner.recordedCommands, command)
	return runner.result, nil
}

func runnerEnvironment(extra map[string]string) gate.EnvironmentLookup {
	environment := map[string]string{
		actions.EnvEventPath:       testEventPathConstant,
		actions.EnvRepository:      testRepositoryConstant,
		actions.EnvWorkspace:       testWorkspaceConstant,
		actions.EnvStepSummaryPath: testSummaryPathConstant,
		actions.EnvOutputPath:      testOutputPathConstant,
	}
	for key, value := range extra {
		environment[key] = value
	}
	return func(key string) (string, bool) {
		value, exists := environment[key]
		return value, exists
	}
}

func TestCommandBuilderParsesFlagsAndConfiguration(testInstance *testing.T) {
	testCases := []struct {
		name                 string
		configuration        gate.Configuration
		environment          map[string]string
		arguments            []string
		expectedRequest      assets.ScanRequest
		expectErrorContains  string
		expectedPostedBodies int
	}{
		{
			name: "configuration_values",
			configuration: gate.Configuration{
				Token:         testTokenConstant,
				TargetFolder:  "src",
				ThresholdSize: "250",
				Extensions:    []string{"png", " "},
			},
			arguments:            []string{},
			expectedRequest:      assets.ScanRequest{TargetFolder: "src", WorkingDirectory: testWorkspaceConstant, ThresholdKilobytes: 250, Extensions: []string{"png"}},
			expectedPostedBodies: 1,
		},
		{
			name:                 "flags_override_configuration",
			configuration:        gate.Configuration{Token: testTokenConstant, TargetFolder: "src", ThresholdSize: "250"},
			arguments:            []string{"--target-folder", "public", "--threshold-size", "50"},
			expectedRequest:      assets.ScanRequest{TargetFolder: "public", WorkingDirectory: testWorkspaceConstant, ThresholdKilobytes: 50, Extensions: assets.DefaultExtensions},
			expectedPostedBodies: 1,
		},
		{
			name:                 "token_from_environment",
			configuration:        gate.Configuration{TargetFolder: ".", ThresholdSize: "100"},
			environment:          map[string]string{"GITHUB_TOKEN": testTokenConstant},
			arguments:            []string{},
			expectedRequest:      assets.ScanRequest{TargetFolder: ".", WorkingDirectory: testWorkspaceConstant, ThresholdKilobytes: 100, Extensions: assets.DefaultExtensions},
			expectedPostedBodies: 1,
		},
		{
			name:                "missing_token",
			configuration:       gate.Configuration{TargetFolder: ".", ThresholdSize: "100"},
			arguments:           []string{},
			expectErrorContains: "missing required input token",
		},
		{
			name:                "invalid_scanner_flag",
			configuration:       gate.Configuration{Token: testTokenConstant, TargetFolder: ".", ThresholdSize: "100"},
			arguments:           []string{"--scanner", "magic"},
			expectErrorContains: "invalid value \"magic\"",
		},
		{
			name:                "invalid_scanner_configuration",
			configuration:       gate.Configuration{Token: testTokenConstant, TargetFolder: ".", ThresholdSize: "100", Scanner: "magic"},
			arguments:           []string{},
			expectErrorContains: "invalid scanner",
		},
		{
			name:                "positional_arguments_rejected",
			configuration:       gate.Configuration{Token: testTokenConstant, TargetFolder: ".", ThresholdSize: "100"},
			arguments:           []string{"extra"},
			expectErrorContains: "does not accept positional arguments",
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			scanner := &stubScanner{}
			commentClient := &stubCommentClient{}
			builder := gate.CommandBuilder{
				ConfigurationProvider: func() gate.Configuration { return testCase.configuration },
				EnvironmentLookup:     runnerEnvironment(testCase.environment),
				FileSystem:            newStubFileSystem(map[string]string{testEventPathConstant: testPullRequestEventPayloadConstant}, nil),
				Scanner:               scanner,
				CommentClient:         commentClient,
				OutputWriter:          &bytes.Buffer{},
			}

			command, buildError := builder.Build()
			require.NoError(testInstance, buildError)
			command.SetArgs(testCase.arguments)

			executionError := command.Execute()
			if len(testCase.expectErrorContains) > 0 {
				require.Error(testInstance, executionError)
				require.Contains(testInstance, executionError.Error(), testCase.expectErrorContains)
				require.Empty(testInstance, scanner.recordedRequests)
				return
			}

			require.NoError(testInstance, executionError)
			require.Equal(testInstance, []assets.ScanRequest{testCase.expectedRequest}, scanner.recordedRequests)
			require.Len(testInstance, commentClient.createdBodies, testCase.expectedPostedBodies)
		})
	}
}

func TestCommandBuilderReturnsOversizedSignal(testInstance *testing.T) {
	scanner := &stubScanner{entries: assets.ParseListing("-rw-r--r-- 1 u g 300K Jan 1 00:00 ./hero.png")}
	builder := gate.CommandBuilder{
		ConfigurationProvider: func() gate.Configuration {
			return gate.Configuration{Token: testTokenConstant, TargetFolder: ".", ThresholdSize: "100"}
		},
		EnvironmentLookup: runnerEnvironment(nil),
		FileSystem:        newStubFileSystem(map[string]string{testEventPathConstant: testPullRequestEventPayloadConstant}, nil),
		Scanner:           scanner,
		CommentClient:     &stubCommentClient{},
		OutputWriter:      &bytes.Buffer{},
	}

	command, buildError := builder.Build()
	require.NoError(testInstance, buildError)
	command.SetArgs([]string{})

	require.ErrorIs(testInstance, command.Execute(), gate.ErrOversizedAssets)
}

func TestCommandBuilderDryRunUsesFindScanner(testInstance *testing.T) {
	commandRunner := &recordingCommandRunner{result: execshell.ExecutionResult{
		StandardOutput: "-rw-r--r-- 1 runner docker 150K Jan 1 00:00 ./big.png\n",
	}}
	outputBuffer := &bytes.Buffer{}
	builder := gate.CommandBuilder{
		ConfigurationProvider: func() gate.Configuration {
			return gate.Configuration{TargetFolder: ".", ThresholdSize: "100", Extensions: []string{"png"}}
		},
		EnvironmentLookup: runnerEnvironment(nil),
		FileSystem:        newStubFileSystem(map[string]string{}, nil),
		CommandRunner:     commandRunner,
		OutputWriter:      outputBuffer,
	}

	command, buildError := builder.Build()
	require.NoError(testInstance, buildError)
	command.SetArgs([]string{"--dry-run", "--scanner", "FIND", "--output-format", "json"})

	require.ErrorIs(testInstance, command.Execute(), gate.ErrOversizedAssets)
	require.Len(testInstance, commandRunner.recordedCommands, 1)
	require.Equal(testInstance, execshell.CommandFind, commandRunner.recordedCommands[0].Name)
	require.Equal(testInstance, testWorkspaceConstant, commandRunner.recordedCommands[0].Details.WorkingDirectory)
	require.Equal(testInstance, assets.BuildFindArguments(assets.ScanRequest{TargetFolder: ".", ThresholdKilobytes: 100, Extensions: []string{"png"}}), commandRunner.recordedCommands[0].Details.Arguments)
	require.Contains(testInstance, outputBuffer.String(), "\"file_name\": \"./big.png\"")
}
