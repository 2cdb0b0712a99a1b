package assets_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/assetscheck/internal/assets"
)

func TestClassify(testInstance *testing.T) {
	testCases := []struct {
		name                   string
		filteredEntries        []assets.CandidateEntry
		expectedClassification assets.Classification
	}{
		{
			name:                   "nil_passes",
			expectedClassification: assets.Classification{OversizedCount: 0, Passed: true},
		},
		{
			name:                   "empty_passes",
			filteredEntries:        []assets.CandidateEntry{},
			expectedClassification: assets.Classification{OversizedCount: 0, Passed: true},
		},
		{
			name:                   "single_entry_fails",
			filteredEntries:        assets.ParseListing(testListingLineAConstant),
			expectedClassification: assets.Classification{OversizedCount: 1, Passed: false},
		},
		{
			name:                   "malformed_entry_counts",
			filteredEntries:        []assets.CandidateEntry{assets.ParseListingLine("garbage"), assets.ParseListingLine(testListingLineBConstant)},
			expectedClassification: assets.Classification{OversizedCount: 2, Passed: false},
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			classification := assets.Classify(testCase.filteredEntries)
			require.Equal(testInstance, testCase.expectedClassification, classification)
			require.Equal(testInstance, len(testCase.filteredEntries), classification.OversizedCount)
		})
	}
}
