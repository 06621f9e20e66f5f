// Package requestlog appends a JSON line per outbound backend request to a
// file, for auditing which URLs were actually sent upstream.
package requestlog
