// Package filesystem exposes the operating system file operations used by the
// gate behind an interface so tests can substitute in-memory fakes.
package filesystem
