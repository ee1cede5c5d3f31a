// Package source loads compiled schemas from their configured origin.
//
// Two origins are supported: a local file and a file inside a Git
// repository that is cloned and pulled on demand. A file watcher with
// debouncing turns filesystem changes into reloads for hot-reload
// deployments.
package source
