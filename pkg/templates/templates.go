// Package templates provides embedded configuration templates, the
// built-in native-type override table and templates of generated Go
// sources.
package templates

import _ "embed"

// ConfigYAML contains the default config.yaml template for application configuration.
//
//go:embed config.yaml
var ConfigYAML string

// OverrideYAML contains the built-in native-type override table.
//
//go:embed override.yaml
var OverrideYAML string

// GoIface is the template of a class interface file.
//
//go:embed iface.go.tmpl
var GoIface string

// GoImpl is the template of a class implementation file.
//
//go:embed impl.go.tmpl
var GoImpl string

// GoModule is the template of a context module file.
//
//go:embed module.go.tmpl
var GoModule string
