// Package formatter renders stop lists, departure boards and trip plans as
// plain text for terminal output.
package formatter
