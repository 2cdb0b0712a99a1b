// Package pathutils resolves configured paths against the workspace directory.
package pathutils
