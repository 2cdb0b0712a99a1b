package assets

// IgnoreSet is the ordered list of file paths exempted from size enforcement.
// Duplicates are tolerated and an empty set is valid.
type IgnoreSet []string

// Contains reports whether the file path appears verbatim in the set.
func (ignoreSet IgnoreSet) Contains(filePath string) bool {
	for _, ignoredPath := range ignoreSet {
		if ignoredPath == filePath {
			return true
		}
	}
	return false
}

// FilterIgnored returns the entries whose file path is absent from the ignore set.
//
// Matching is exact string equality with no path normalization. Entries
// without a derivable file path are always retained. An empty ignore set
// returns the input unchanged.
func FilterIgnored(entries []CandidateEntry, ignoreSet IgnoreSet) []CandidateEntry {
	if len(ignoreSet) == 0 {
		return entries
	}

	lookup := make(map[string]struct{}, len(ignoreSet))
	for _, ignoredPath := range ignoreSet {
		lookup[ignoredPath] = struct{}{}
	}

	retained := make([]CandidateEntry, 0, len(entries))
	for _, entry := range entries {
		if !entry.HasFilePath() {
			retained = append(retained, entry)
			continue
		}
		if _, ignored := lookup[entry.FilePath]; ignored {
			continue
		}
		retained = append(retained, entry)
	}

	return retained
}
