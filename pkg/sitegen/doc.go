// Package sitegen renders a tree of templates into a static output directory.
// Template files are rendered through any template.TemplateRenderer with one
// shared data context; every other file is copied as-is. Outputs are written
// atomically so an interrupted build never leaves half-written pages.
package sitegen
