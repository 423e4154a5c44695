// Package prompt wraps interactive terminal prompts behind a small Driver
// interface.
package prompt
