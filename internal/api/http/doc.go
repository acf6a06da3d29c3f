// Package http implements the REST surface of the shell host: health,
// command manifests, command invocation, window inspection, and layout
// management.
package http
