package assets_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/assetscheck/internal/assets"
	"github.com/temirov/assetscheck/internal/execshell"
)

const (
	testFindListingConstant = "-rw-r--r-- 1 runner docker 150K Jan 1 00:00 ./src/big.png\n-rw-r--r-- 1 runner docker 2.0M Jan 1 00:00 ./src/huge.webp\n"
)

type stubFindExecutor struct {
	result          execshell.ExecutionResult
	executionError  error
	recordedDetails []execshell.CommandDetails
}

func (executor *stubFindExecutor) ExecuteFind(_ context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error) {
	executor.recordedDetails = append(executor.recordedDetails, details)
	if executor.executionError != nil {
		return execshell.ExecutionResult{}, executor.executionError
	}
	return executor.result, nil
}

func TestBuildFindArguments(testInstance *testing.T) {
	arguments := assets.BuildFindArguments(assets.ScanRequest{
		TargetFolder:       "./src",
		ThresholdKilobytes: 100,
		Extensions:         []string{"png", ".SVG", "png", " "},
	})

	require.Equal(testInstance, []string{
		"./src", "-type", "f", "(",
		"-iname", "*.png", "-o", "-iname", "*.svg",
		")", "-size", "+100k", "-exec", "ls", "-lh", "{}", ";",
	}, arguments)
}

func TestExceedsThreshold(testInstance *testing.T) {
	testCases := []struct {
		name               string
		sizeInBytes        int64
		thresholdKilobytes int64
		expectedExceeds    bool
	}{
		{name: "exact_threshold", sizeInBytes: 100 * 1024, thresholdKilobytes: 100, expectedExceeds: false},
		{name: "one_byte_over_rounds_up", sizeInBytes: 100*1024 + 1, thresholdKilobytes: 100, expectedExceeds: true},
		{name: "below_threshold", sizeInBytes: 512, thresholdKilobytes: 1, expectedExceeds: false},
		{name: "empty_file", sizeInBytes: 0, thresholdKilobytes: 1, expectedExceeds: false},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			require.Equal(testInstance, testCase.expectedExceeds, assets.ExceedsThreshold(testCase.sizeInBytes, testCase.thresholdKilobytes))
		})
	}
}

func TestParseThresholdKilobytes(testInstance *testing.T) {
	testCases := []struct {
		name          string
		rawValue      string
		expectedValue int64
		expectError   bool
	}{
		{name: "plain_number", rawValue: "100", expectedValue: 100},
		{name: "surrounding_whitespace", rawValue: " 250 ", expectedValue: 250},
		{name: "empty", rawValue: "", expectError: true},
		{name: "zero", rawValue: "0", expectError: true},
		{name: "negative", rawValue: "-4", expectError: true},
		{name: "suffixed", rawValue: "100k", expectError: true},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			parsedValue, parseError := assets.ParseThresholdKilobytes(testCase.rawValue)
			if testCase.expectError {
				require.Error(testInstance, parseError)
				var requestError assets.InvalidScanRequestError
				require.True(testInstance, errors.As(parseError, &requestError))
				return
			}
			require.NoError(testInstance, parseError)
			require.Equal(testInstance, testCase.expectedValue, parsedValue)
		})
	}
}

func TestWalkScannerScan(testInstance *testing.T) {
	targetFolder := testInstance.TempDir()
	nestedFolder := filepath.Join(targetFolder, "nested")
	require.NoError(testInstance, os.MkdirAll(nestedFolder, 0o755))

	writeSizedFile := func(path string, size int) {
		require.NoError(testInstance, os.WriteFile(path, make([]byte, size), 0o600))
	}
	writeSizedFile(filepath.Join(targetFolder, "small.png"), 512)
	writeSizedFile(filepath.Join(targetFolder, "large.PNG"), 3*1024)
	writeSizedFile(filepath.Join(nestedFolder, "large.webp"), 2*1024+1)
	writeSizedFile(filepath.Join(targetFolder, "large.txt"), 4*1024)

	testCases := []struct {
		name          string
		request       assets.ScanRequest
		expectedPaths []string
	}{
		{
			name:          "relative_target_reported_like_find",
			request:       assets.ScanRequest{TargetFolder: ".", WorkingDirectory: targetFolder, ThresholdKilobytes: 2, Extensions: assets.DefaultExtensions},
			expectedPaths: []string{"./large.PNG", "./nested/large.webp"},
		},
		{
			name:          "nested_target_with_trailing_slash",
			request:       assets.ScanRequest{TargetFolder: "nested/", WorkingDirectory: targetFolder, ThresholdKilobytes: 2, Extensions: []string{"webp"}},
			expectedPaths: []string{"nested/large.webp"},
		},
		{
			name:          "absolute_target_ignores_working_directory",
			request:       assets.ScanRequest{TargetFolder: targetFolder, WorkingDirectory: "/nonexistent", ThresholdKilobytes: 2, Extensions: assets.DefaultExtensions},
			expectedPaths: []string{filepath.ToSlash(targetFolder) + "/large.PNG", filepath.ToSlash(targetFolder) + "/nested/large.webp"},
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			entries, scanError := assets.NewWalkScanner().Scan(context.Background(), testCase.request)
			require.NoError(testInstance, scanError)

			scannedPaths := make([]string, 0, len(entries))
			for _, entry := range entries {
				require.Equal(testInstance, entry.FilePath, entry.RawLine)
				scannedPaths = append(scannedPaths, entry.FilePath)
			}
			require.Equal(testInstance, testCase.expectedPaths, scannedPaths)
		})
	}

	entries, scanError := assets.NewWalkScanner().Scan(context.Background(), assets.ScanRequest{TargetFolder: ".", WorkingDirectory: targetFolder, ThresholdKilobytes: 2, Extensions: []string{"png"}})
	require.NoError(testInstance, scanError)
	require.Len(testInstance, entries, 1)
	require.Equal(testInstance, "3.0 KiB", entries[0].SizeField)
}

func TestWalkScannerRejectsInvalidRequests(testInstance *testing.T) {
	testCases := []struct {
		name    string
		request assets.ScanRequest
	}{
		{name: "missing_target", request: assets.ScanRequest{ThresholdKilobytes: 1, Extensions: assets.DefaultExtensions}},
		{name: "non_positive_threshold", request: assets.ScanRequest{TargetFolder: testInstance.TempDir(), Extensions: assets.DefaultExtensions}},
		{name: "no_extensions", request: assets.ScanRequest{TargetFolder: testInstance.TempDir(), ThresholdKilobytes: 1, Extensions: []string{" "}}},
		{name: "absent_folder", request: assets.ScanRequest{TargetFolder: filepath.Join(testInstance.TempDir(), "absent"), ThresholdKilobytes: 1, Extensions: assets.DefaultExtensions}},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			entries, scanError := assets.NewWalkScanner().Scan(context.Background(), testCase.request)
			require.Error(testInstance, scanError)
			require.Nil(testInstance, entries)
		})
	}
}

func TestFindScannerScan(testInstance *testing.T) {
	executor := &stubFindExecutor{result: execshell.ExecutionResult{StandardOutput: testFindListingConstant}}
	scanner, constructionError := assets.NewFindScanner(executor)
	require.NoError(testInstance, constructionError)

	entries, scanError := scanner.Scan(context.Background(), assets.ScanRequest{TargetFolder: "./src", WorkingDirectory: "/workspace", ThresholdKilobytes: 100, Extensions: []string{"png"}})
	require.NoError(testInstance, scanError)
	require.Len(testInstance, executor.recordedDetails, 1)
	require.Equal(testInstance, "./src", executor.recordedDetails[0].Arguments[0])
	require.Equal(testInstance, "/workspace", executor.recordedDetails[0].WorkingDirectory)
	require.Equal(testInstance, []assets.CandidateEntry{
		{RawLine: "-rw-r--r-- 1 runner docker 150K Jan 1 00:00 ./src/big.png", FilePath: "./src/big.png", SizeField: "150K"},
		{RawLine: "-rw-r--r-- 1 runner docker 2.0M Jan 1 00:00 ./src/huge.webp", FilePath: "./src/huge.webp", SizeField: "2.0M"},
	}, entries)
}

func TestFindScannerPropagatesExecutionFailure(testInstance *testing.T) {
	failure := errors.New("find missing")
	scanner, constructionError := assets.NewFindScanner(&stubFindExecutor{executionError: failure})
	require.NoError(testInstance, constructionError)

	_, scanError := scanner.Scan(context.Background(), assets.ScanRequest{TargetFolder: "./src", ThresholdKilobytes: 100, Extensions: []string{"png"}})
	require.ErrorIs(testInstance, scanError, failure)

	_, nilExecutorError := assets.NewFindScanner(nil)
	require.ErrorIs(testInstance, nilExecutorError, assets.ErrFindExecutorNotConfigured)
}
