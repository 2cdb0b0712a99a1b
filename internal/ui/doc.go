// Package ui provides helpers for formatting human-readable console output.
//
// ConsoleCommandEventLogger turns gh and find lifecycle events into concise
// log lines, and RenderAssetTable prints dry-run results as a console table
// with a coloured verdict, while structured telemetry keeps flowing through
// zap.
package ui
