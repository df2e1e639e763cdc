package rpc

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransportLoginSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, mimeJSONRPC, r.Header.Get("Content-Type"))
		var req envelope
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "user.login", req.Method)
		assert.Nil(t, req.Auth)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"jsonrpc":"2.0","result":"abc123token","id":1}`))
	}))
	defer srv.Close()

	tr := NewTransport()
	token, err := tr.Login(srv.URL, "admin", "zabbix")
	require.NoError(t, err)
	assert.Equal(t, "abc123token", token)
}

func TestTransportLoginAuthError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"jsonrpc":"2.0","result":null,"id":1}`))
	}))
	defer srv.Close()

	tr := NewTransport()
	_, err := tr.Login(srv.URL, "admin", "zabbix")
	require.Error(t, err)
	var authErr *AuthError
	assert.ErrorAs(t, err, &authErr)
}

func TestTransportNon2xxIsTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	tr := NewTransport()
	_, err := tr.Call(srv.URL, "item.get", map[string]string{"output": "extend"}, "tok")
	require.Error(t, err)
	var transportErr *TransportError
	assert.ErrorAs(t, err, &transportErr)
}

func TestTransportCallSendsAuthAndMethod(t *testing.T) {
	var seen envelope
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&seen))
		_, _ = w.Write([]byte(`{"jsonrpc":"2.0","result":[],"id":1}`))
	}))
	defer srv.Close()

	tr := NewTransport()
	body, err := tr.Call(srv.URL, "trigger.get", map[string]any{"output": "extend"}, "tok-1")
	require.NoError(t, err)
	assert.JSONEq(t, `{"jsonrpc":"2.0","result":[],"id":1}`, string(body))
	assert.Equal(t, "trigger.get", seen.Method)
	assert.Equal(t, "tok-1", seen.Auth)
}

func TestTransportDefaultsToPOST(t *testing.T) {
	var method string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method = r.Method
		_, _ = w.Write([]byte(`{"jsonrpc":"2.0","result":"tok","id":1}`))
	}))
	defer srv.Close()

	tr := NewTransport()
	_, err := tr.Login(srv.URL, "admin", "zabbix")
	require.NoError(t, err)
	assert.Equal(t, http.MethodPost, method)
}

func TestTransportMethodConfigurable(t *testing.T) {
	var method string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method = r.Method
		_, _ = w.Write([]byte(`{"jsonrpc":"2.0","result":"tok","id":1}`))
	}))
	defer srv.Close()

	tr := NewTransport()
	tr.Method = http.MethodGet
	_, err := tr.Login(srv.URL, "admin", "zabbix")
	require.NoError(t, err)
	assert.Equal(t, http.MethodGet, method)
}

func TestDecodeProtocolError(t *testing.T) {
	body := []byte(`{"jsonrpc":"2.0","error":{"code":-32602,"message":"Invalid params"},"id":1}`)
	err := DecodeProtocolError(body)
	require.Error(t, err)
	var protoErr *ProtocolError
	assert.ErrorAs(t, err, &protoErr)
	assert.Equal(t, -32602, protoErr.Code)
}
