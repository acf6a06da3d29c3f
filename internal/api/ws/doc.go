// Package ws implements the WebSocket IPC bridge: command invocations from
// the frontend come in as typed messages, results and window events go back
// out on the same connection.
package ws
