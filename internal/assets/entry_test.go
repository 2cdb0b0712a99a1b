package assets_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/assetscheck/internal/assets"
)

const (
	testListingLineAConstant = "-rw-r--r-- 1 u g 2048 Jan 1 00:00 a.png"
	testListingLineBConstant = "-rw-r--r-- 1 u g 4096 Jan 1 00:00 b.png"
)

func TestParseListingLine(testInstance *testing.T) {
	testCases := []struct {
		name          string
		line          string
		expectedEntry assets.CandidateEntry
		expectPath    bool
		expectedName  string
	}{
		{
			name:          "long_listing",
			line:          testListingLineAConstant,
			expectedEntry: assets.CandidateEntry{RawLine: testListingLineAConstant, FilePath: "a.png", SizeField: "2048"},
			expectPath:    true,
			expectedName:  "a.png",
		},
		{
			name:          "human_readable_size",
			line:          "-rw-r--r--  1 runner  docker  1.2M Mar  4 10:15 ./src/images/hero.webp",
			expectedEntry: assets.CandidateEntry{RawLine: "-rw-r--r--  1 runner  docker  1.2M Mar  4 10:15 ./src/images/hero.webp", FilePath: "./src/images/hero.webp", SizeField: "1.2M"},
			expectPath:    true,
			expectedName:  "./src/images/hero.webp",
		},
		{
			name:          "short_line_without_size",
			line:          "size path.png",
			expectedEntry: assets.CandidateEntry{RawLine: "size path.png", FilePath: "path.png"},
			expectPath:    true,
			expectedName:  "path.png",
		},
		{
			name:          "single_token",
			line:          "  garbage  ",
			expectedEntry: assets.CandidateEntry{RawLine: "  garbage  "},
			expectedName:  "garbage",
		},
		{
			name:          "empty_line",
			line:          "",
			expectedEntry: assets.CandidateEntry{},
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			entry := assets.ParseListingLine(testCase.line)
			require.Equal(testInstance, testCase.expectedEntry, entry)
			require.Equal(testInstance, testCase.expectPath, entry.HasFilePath())
			require.Equal(testInstance, testCase.expectedName, entry.DisplayName())
		})
	}
}

func TestParseListingDropsBlankLines(testInstance *testing.T) {
	entries := assets.ParseListing(testListingLineAConstant + "\r\n\n" + testListingLineBConstant + "\n")
	require.Len(testInstance, entries, 2)
	require.Equal(testInstance, "a.png", entries[0].FilePath)
	require.Equal(testInstance, testListingLineAConstant, entries[0].RawLine)
	require.Equal(testInstance, "b.png", entries[1].FilePath)

	require.Empty(testInstance, assets.ParseListing(""))
	require.Empty(testInstance, assets.ParseListingLines([]string{"", "  ", "\r"}))
}
