// Package command implements the registry the host runtime dispatches
// frontend invocations through.
//
// Providers declare their commands in a Manifest; the registry owns the flat
// command namespace (greet, resize_window, ...) and routes each invocation
// to the provider that registered it, enforcing required parameters along
// the way.
package command
