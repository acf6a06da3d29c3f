// Package providers contains the command handler implementations exposed to
// the frontend through the command registry.
//
// Each subpackage implements command.Provider: a Definition declaring its
// commands and an Execute routing invocations to handlers. Handlers return a
// Result envelope; they convert internal failures to textual errors and
// never panic on malformed parameters.
package providers
