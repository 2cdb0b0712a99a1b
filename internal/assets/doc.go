// Package assets implements the oversized asset pipeline.
//
// Listing output from a scanner is parsed into CandidateEntry values,
// filtered against the Ignore Set, classified as pass or fail, and rendered
// into the markdown report posted on the pull request. Scanners discover
// candidates either in-process (WalkScanner) or through find(1) (FindScanner).
package assets
