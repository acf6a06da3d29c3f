// Package server wires the shell host together: configuration, logging,
// metrics, the window manager, command providers, and the HTTP/WebSocket API.
package server
