// Package template defines the engine-agnostic TemplateRenderer contract and
// small helpers shared by its adapters. The minitemplate subpackage adapts the
// built-in engine; gotemplate adapts pongo2 for templates written in
// Django/Jinja syntax.
package template
