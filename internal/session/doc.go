// Package session persists named window layouts to disk and restores them.
//
// A layout captures the geometry, state and visibility of every managed
// window. Snapshots are JSON-encoded and gzip-compressed on disk, with an
// in-memory cache in front of the store.
package session
