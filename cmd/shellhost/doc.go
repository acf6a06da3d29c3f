// Package main is the entry point for the Glasspane shell host.
//
// The host is the native side of a webview desktop application: the
// frontend renders in a local webview and every privileged operation
// crosses into this process as a named command.
//
// Architecture:
//
//	Frontend (webview) → HTTP /invoke or WebSocket /ipc → command registry
//	                                                    → window manager
//
// The host provides:
//   - Command registry with typed provider manifests
//   - Window lifecycle and geometry management
//   - URL/path opening and update checks
//   - Window layout persistence
//   - Rate limiting and Prometheus metrics
//
// Configuration:
//   - Environment variables (12-factor)
//   - A shell definition file (YAML or TOML) for app identity and the
//     main window
//
// Usage:
//
//	# Default configuration
//	./shellhost
//
//	# Explicit shell definition
//	./shellhost -shell shell.yaml
//
// Signals:
//   - SIGINT, SIGTERM: Graceful shutdown
package main
