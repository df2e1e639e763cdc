// Package rpc implements the JSON-RPC-over-HTTP transport used to talk to
// the upstream monitoring server: building request envelopes, issuing the
// HTTP round trip, and surfacing either the raw response body (for the
// JSON reader to parse) or a transport/auth failure. It does not interpret
// business-level errors beyond the envelope's own error shape.
package rpc

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

const mimeJSONRPC = "application/json-rpc"

// envelope is the wire shape of every request sent to the upstream.
type envelope struct {
	JSONRPC string `json:"jsonrpc"`
	ID      int    `json:"id"`
	Method  string `json:"method"`
	Auth    any    `json:"auth"`
	Params  any    `json:"params,omitempty"`
}

// errorEnvelope is the shape of a JSON-RPC-level error response.
type errorEnvelope struct {
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// Transport issues JSON-RPC requests to a single upstream URI. It is not
// safe for concurrent use by multiple goroutines; each poller worker owns
// its own Transport instance, reused across cycles.
type Transport struct {
	// Method is the HTTP verb used for every call. Kept configurable per
	// the upstream-compatibility open question: some Zabbix-compatible
	// servers only accept the historical GET-with-body contract. Defaults
	// to http.MethodPost when zero-valued.
	Method string

	HTTPClient *http.Client
}

// NewTransport returns a Transport using POST and http.DefaultClient's
// zero-value equivalent (a fresh *http.Client with no timeout override;
// callers needing a deadline should set HTTPClient themselves).
func NewTransport() *Transport {
	return &Transport{
		Method:     http.MethodPost,
		HTTPClient: &http.Client{},
	}
}

func (t *Transport) method() string {
	if t.Method == "" {
		return http.MethodPost
	}
	return t.Method
}

func (t *Transport) client() *http.Client {
	if t.HTTPClient == nil {
		return http.DefaultClient
	}
	return t.HTTPClient
}

// Login authenticates against uri and returns the opaque auth token from
// a successful user.login call.
func (t *Transport) Login(uri, user, password string) (string, error) {
	body, err := t.do(uri, envelope{
		JSONRPC: "2.0",
		ID:      1,
		Method:  "user.login",
		Auth:    nil,
		Params: map[string]string{
			"user":     user,
			"password": password,
		},
	})
	if err != nil {
		return "", err
	}

	var result struct {
		Result *string `json:"result"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return "", &AuthError{Reason: "malformed login response: " + err.Error()}
	}
	if result.Result == nil {
		return "", &AuthError{Reason: "result absent or not a string"}
	}
	return *result.Result, nil
}

// Call issues a JSON-RPC method call and returns the raw response body
// for the caller to parse. It does not inspect "result"; callers check
// for a JSON-RPC-level error envelope via DecodeProtocolError if needed.
func (t *Transport) Call(uri, method string, params any, authToken string) ([]byte, error) {
	return t.do(uri, envelope{
		JSONRPC: "2.0",
		ID:      1,
		Method:  method,
		Auth:    authToken,
		Params:  params,
	})
}

func (t *Transport) do(uri string, env envelope) ([]byte, error) {
	payload, err := json.Marshal(env)
	if err != nil {
		return nil, &TransportError{URL: uri, Err: fmt.Errorf("encode request: %w", err)}
	}

	req, err := http.NewRequest(t.method(), uri, bytes.NewReader(payload))
	if err != nil {
		return nil, &TransportError{URL: uri, Err: err}
	}
	req.Header.Set("Content-Type", mimeJSONRPC)

	resp, err := t.client().Do(req)
	if err != nil {
		return nil, &TransportError{URL: uri, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{URL: uri, Err: fmt.Errorf("read response: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &TransportError{
			URL: uri,
			Err: fmt.Errorf("non-2xx status %d: %s", resp.StatusCode, string(body)),
		}
	}

	return body, nil
}

// DecodeProtocolError inspects body for a JSON-RPC error envelope and
// returns a *ProtocolError if one is present. Callers invoke this after a
// successful HTTP round trip but before handing the body to the JSON
// reader, so that upstream-reported errors surface distinctly from parse
// failures.
func DecodeProtocolError(body []byte) error {
	var env errorEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		// Malformed JSON is a parse concern, not a protocol concern; let
		// the caller's JSON reader surface it.
		return nil
	}
	if env.Error != nil {
		return &ProtocolError{Code: env.Error.Code, Message: env.Error.Message}
	}
	return nil
}
