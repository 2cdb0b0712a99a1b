package actions_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/assetscheck/internal/actions"
)

func TestWorkflowCommandWriter(testInstance *testing.T) {
	testCases := []struct {
		name           string
		emit           func(commandWriter *actions.WorkflowCommandWriter) error
		expectedOutput string
	}{
		{
			name: "error_command",
			emit: func(commandWriter *actions.WorkflowCommandWriter) error {
				return commandWriter.Error("Invalid size assets exists !!!")
			},
			expectedOutput: "::error::Invalid size assets exists !!!\n",
		},
		{
			name: "warning_command_escaped",
			emit: func(commandWriter *actions.WorkflowCommandWriter) error {
				return commandWriter.Warning("100% failed\r\nretry")
			},
			expectedOutput: "::warning::100%25 failed%0D%0Aretry\n",
		},
		{
			name: "notice_command",
			emit: func(commandWriter *actions.WorkflowCommandWriter) error {
				return commandWriter.Notice("report posted")
			},
			expectedOutput: "::notice::report posted\n",
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			var outputBuffer bytes.Buffer
			require.NoError(testInstance, testCase.emit(actions.NewWorkflowCommandWriter(&outputBuffer)))
			require.Equal(testInstance, testCase.expectedOutput, outputBuffer.String())
		})
	}
}

func TestWorkflowCommandWriterWithoutWriter(testInstance *testing.T) {
	require.NoError(testInstance, actions.NewWorkflowCommandWriter(nil).Error("discarded"))
}
