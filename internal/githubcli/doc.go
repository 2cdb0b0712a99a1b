// Package githubcli wraps the GitHub CLI for pull request comment management.
//
// It lists, posts, and deletes issue comments through `gh api`, decodes the
// REST responses into typed structures, and integrates with execshell so
// interactions with GitHub can be stubbed during testing.
package githubcli
