// Package cli holds helpers shared by fieldcheck's commands: resolving the
// form catalog from configuration and choosing a form interactively.
package cli
