// Package types defines the shared data shapes of the shell host: command
// manifests and invocation envelopes, window state, and the request/message
// types exchanged with the frontend over HTTP and WebSocket.
package types
