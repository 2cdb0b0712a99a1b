// Package actions adapts the gate to the GitHub Actions runner.
//
// It reads the runner environment and the pull request event payload, emits
// workflow commands for annotations, and appends to the job summary and step
// output files the runner provides.
package actions
