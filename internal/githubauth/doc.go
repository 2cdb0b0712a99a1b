// Package githubauth locates the GitHub token used to authenticate gh calls.
package githubauth
