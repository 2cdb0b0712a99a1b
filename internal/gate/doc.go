// Package gate implements the assets check command.
//
// CommandBuilder wires cobra flags and configuration into Options, and Service
// runs the gate: it resolves the pull request, scans the target folder,
// classifies the result, replaces the previous report comment, and publishes
// the verdict through the GitHub Actions runner files. A failing verdict is
// returned as ErrOversizedAssets so the process exits non-zero.
package gate
