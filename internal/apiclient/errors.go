// Package apiclient implements the session lifecycle and per-entity query
// methods used to pull the monitoring model off one upstream server: it
// wires the JSON-RPC transport (internal/rpc), the JSON reader
// (internal/jsonreader), and the entity parsers (internal/parse) together
// behind five named operations.
package apiclient

import "fmt"

// ParseError wraps a failure to decode a response body into the tabular
// IR, distinguishing it from a TransportError/AuthError/ProtocolError so
// callers can tell transport failures from malformed payloads.
type ParseError struct {
	Method string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("apiclient: %s: parse response: %v", e.Method, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
