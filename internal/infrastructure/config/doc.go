// Package config loads shell host configuration: process settings from the
// environment, and the shell definition (main window, app identity) from an
// optional shell.yaml or shell.toml file.
package config
