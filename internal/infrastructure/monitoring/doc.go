// Package monitoring provides Prometheus metrics for the shell host:
// HTTP traffic, command dispatch, window activity, and WebSocket IPC.
package monitoring
