package assets

import "strings"

const (
	listingLineSeparatorConstant     = "\n"
	carriageReturnConstant           = "\r"
	listingSizeFieldIndexConstant    = 4
	listingMinimumFieldsConstant     = 2
	listingSizeMinimumFieldsConstant = listingSizeFieldIndexConstant + 1
)

// CandidateEntry describes one scanned file before exclusion filtering.
//
// Entries produced from listing output keep the raw line so malformed input
// can still be reported. An entry without a FilePath is malformed.
type CandidateEntry struct {
	RawLine   string
	FilePath  string
	SizeField string
}

// HasFilePath reports whether a file path could be derived for the entry.
func (entry CandidateEntry) HasFilePath() bool {
	return len(entry.FilePath) > 0
}

// DisplayName returns the file path, or the trimmed raw line for malformed entries.
func (entry CandidateEntry) DisplayName() string {
	if entry.HasFilePath() {
		return entry.FilePath
	}
	return strings.TrimSpace(entry.RawLine)
}

// ParseListingLine decomposes a long-listing line into a CandidateEntry.
//
// Expected layout is that of `ls -l`: mode, links, owner, group, size, month,
// day, time, path. The path is the final whitespace separated token and the
// size is the fifth token. Lines with fewer than two tokens have no file path.
func ParseListingLine(line string) CandidateEntry {
	entry := CandidateEntry{RawLine: line}

	fields := strings.Fields(line)
	if len(fields) < listingMinimumFieldsConstant {
		return entry
	}

	entry.FilePath = fields[len(fields)-1]
	if len(fields) >= listingSizeMinimumFieldsConstant {
		entry.SizeField = fields[listingSizeFieldIndexConstant]
	}

	return entry
}

// ParseListing splits newline separated listing output into entries, dropping blank lines.
func ParseListing(listingOutput string) []CandidateEntry {
	return ParseListingLines(strings.Split(listingOutput, listingLineSeparatorConstant))
}

// ParseListingLines converts listing lines into entries, dropping blank lines.
func ParseListingLines(lines []string) []CandidateEntry {
	entries := make([]CandidateEntry, 0, len(lines))
	for _, line := range lines {
		trimmedLine := strings.TrimSuffix(line, carriageReturnConstant)
		if len(strings.TrimSpace(trimmedLine)) == 0 {
			continue
		}
		entries = append(entries, ParseListingLine(trimmedLine))
	}
	return entries
}
