package assets_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/assetscheck/internal/assets"
)

func TestFilterIgnored(testInstance *testing.T) {
	entryA := assets.ParseListingLine(testListingLineAConstant)
	entryB := assets.ParseListingLine(testListingLineBConstant)
	malformedEntry := assets.ParseListingLine("garbage")
	blankEntry := assets.ParseListingLine("")

	testCases := []struct {
		name            string
		entries         []assets.CandidateEntry
		ignoreSet       assets.IgnoreSet
		expectedEntries []assets.CandidateEntry
	}{
		{
			name:            "empty_ignore_set_is_identity",
			entries:         []assets.CandidateEntry{entryA, malformedEntry, entryB},
			ignoreSet:       assets.IgnoreSet{},
			expectedEntries: []assets.CandidateEntry{entryA, malformedEntry, entryB},
		},
		{
			name:            "nil_ignore_set_is_identity",
			entries:         []assets.CandidateEntry{entryB, entryA},
			expectedEntries: []assets.CandidateEntry{entryB, entryA},
		},
		{
			name:            "listed_path_excluded",
			entries:         []assets.CandidateEntry{entryA, entryB},
			ignoreSet:       assets.IgnoreSet{"b.png"},
			expectedEntries: []assets.CandidateEntry{entryA},
		},
		{
			name:            "unlisted_path_retained",
			entries:         []assets.CandidateEntry{entryA, entryB},
			ignoreSet:       assets.IgnoreSet{"c.png"},
			expectedEntries: []assets.CandidateEntry{entryA, entryB},
		},
		{
			name:            "no_path_normalization",
			entries:         []assets.CandidateEntry{entryA},
			ignoreSet:       assets.IgnoreSet{"./a.png", "A.png"},
			expectedEntries: []assets.CandidateEntry{entryA},
		},
		{
			name:            "duplicates_tolerated",
			entries:         []assets.CandidateEntry{entryA, entryB},
			ignoreSet:       assets.IgnoreSet{"a.png", "a.png"},
			expectedEntries: []assets.CandidateEntry{entryB},
		},
		{
			name:            "malformed_entries_always_retained",
			entries:         []assets.CandidateEntry{malformedEntry, blankEntry, entryA},
			ignoreSet:       assets.IgnoreSet{"garbage", "", "a.png"},
			expectedEntries: []assets.CandidateEntry{malformedEntry, blankEntry},
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			require.Equal(testInstance, testCase.expectedEntries, assets.FilterIgnored(testCase.entries, testCase.ignoreSet))
		})
	}
}

func TestIgnoreSetContains(testInstance *testing.T) {
	ignoreSet := assets.IgnoreSet{"a.png", "dir/b.png"}
	require.True(testInstance, ignoreSet.Contains("dir/b.png"))
	require.False(testInstance, ignoreSet.Contains("b.png"))
	require.False(testInstance, assets.IgnoreSet{}.Contains(""))
}
