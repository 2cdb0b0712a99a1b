// Package flags holds pflag helpers for enumerated command-line options.
package flags
