// Package cli translates command-line arguments into an app.Config, including
// usage text and argument validation.
package cli
