// Package owlgen keeps the version of the application.
package owlgen

var (
	// Version of owlgen.
	Version = "v0.1.0"

	// Build timestamp, set by the linker.
	Build = "n/a"
)
