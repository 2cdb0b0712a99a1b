package assets

// Classification is the pass/fail verdict derived from the filtered entries.
type Classification struct {
	OversizedCount int
	Passed         bool
}

// Classify counts the filtered entries; the run passes only when none remain.
func Classify(filteredEntries []CandidateEntry) Classification {
	oversizedCount := len(filteredEntries)
	return Classification{
		OversizedCount: oversizedCount,
		Passed:         oversizedCount == 0,
	}
}
