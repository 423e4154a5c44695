// Package minitemplate renders small Handlebars-flavoured templates.
//
// A template is plain text with tags in two delimiter forms: {{ expr }}
// substitutes the HTML-escaped value of expr and {{{ expr }}} substitutes it
// verbatim. Two block forms control structure:
//
//	{{#each items}} {{@index}}: {{this}} {{/each}}
//	{{#if ok}} yes {{else}} no {{/if}}
//
// Expressions are dotted property paths resolved against the data context.
// Inside #each the context is extended with the current item's properties and
// the reserved keys "this" and "@index". A backslash before a tag emits the
// tag literally.
//
// Rendering never fails: unterminated tags become literal text, unmatched
// blocks consume the rest of the template, and missing values render empty.
// Templates are reparsed on every call and no state is shared between calls,
// so Render is safe for concurrent use. Nesting depth is bounded only by the
// goroutine stack.
package minitemplate
