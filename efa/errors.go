package efa

import (
	"fmt"
	"strings"
)

// TransportError reports that the backend could not be reached or answered
// with a server-side failure (connection errors, timeouts, HTTP 5xx). The
// request itself may succeed if retried later; the client never retries on
// its own.
type TransportError struct {
	Op     string
	Status int
	Err    error
}

func (e *TransportError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("efa: %s: backend returned HTTP %d", e.Op, e.Status)
	}
	return fmt.Sprintf("efa: %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// BackendRejectedError reports an HTTP 4xx answer: the request was malformed
// or unauthorized and will not succeed unchanged.
type BackendRejectedError struct {
	Status int
}

func (e *BackendRejectedError) Error() string {
	return fmt.Sprintf("efa: request rejected with HTTP %d", e.Status)
}

// BackendSignaledError reports a 2xx answer whose embedded system messages
// indicate a failure (for example an unresolvable stop). The original
// messages are carried for diagnostics; their semantics are not interpreted.
type BackendSignaledError struct {
	Reason   string
	Messages []SystemMessage
}

func (e *BackendSignaledError) Error() string {
	if details := FormatMessages(e.Messages); details != "" {
		return fmt.Sprintf("efa: %s: %s", e.Reason, details)
	}
	return "efa: " + e.Reason
}

// FormatMessages joins system messages into a single human-readable line.
// Messages without text fall back to "module:code".
func FormatMessages(messages []SystemMessage) string {
	parts := make([]string, 0, len(messages))
	for _, m := range messages {
		switch {
		case m.Text != "":
			parts = append(parts, m.Text)
		case m.Code != 0 || m.Module != "":
			module := m.Module
			if module == "" {
				module = "EFA"
			}
			parts = append(parts, fmt.Sprintf("%s:%d", module, m.Code))
		}
	}
	return strings.Join(parts, "; ")
}

// classifyStatus maps an HTTP status to the error taxonomy. 2xx yields nil;
// classification of message-level failures happens after decoding.
func classifyStatus(endpoint string, status int) error {
	switch {
	case status >= 500:
		return &TransportError{Op: endpoint, Status: status}
	case status >= 400:
		return &BackendRejectedError{Status: status}
	default:
		return nil
	}
}

// hasErrorMessage reports whether any system message carries the error
// category. Zero domain results together with such a message turn an
// otherwise empty response into a BackendSignaledError.
func hasErrorMessage(messages []SystemMessage) bool {
	for _, m := range messages {
		if m.Type == MessageError {
			return true
		}
	}
	return false
}
