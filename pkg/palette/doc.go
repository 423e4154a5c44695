// Package palette turns colour definitions into template data for swatch
// pages. Each colour contributes a row of shades; tones are resolved to
// display values through a Lookup, typically backed by go-theme manifest
// tokens.
package palette
