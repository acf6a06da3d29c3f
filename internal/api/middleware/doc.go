// Package middleware provides Gin middleware for the invoke surface:
// CORS for the webview origin and per-IP rate limiting.
package middleware
