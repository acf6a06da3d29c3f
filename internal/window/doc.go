// Package window implements the host window subsystem: window lifecycle,
// geometry, focus tracking, and event fan-out to IPC subscribers.
//
// The manager is the authoritative window state the webview chrome renders.
// All mutations go through it, and every mutation is broadcast as a
// WindowEvent so connected frontends can react.
package window
