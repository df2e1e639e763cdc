package update

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/monitoring-agents/zbxingest/internal/apiclient"
	"github.com/monitoring-agents/zbxingest/internal/normalized"
	"github.com/monitoring-agents/zbxingest/internal/rawcache"
	"github.com/monitoring-agents/zbxingest/internal/rpc"
)

func newRunner(t *testing.T, handler http.HandlerFunc) (*Runner, *rawcache.Cache, *normalized.Store) {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	raw, err := rawcache.Open(filepath.Join(t.TempDir(), "raw.db"))
	require.NoError(t, err)
	t.Cleanup(func() { raw.Close() })

	norm, err := normalized.Open(normalized.Config{DSN: "file::memory:?cache=shared"})
	require.NoError(t, err)
	t.Cleanup(func() { norm.Close() })

	client := apiclient.New(srv.URL, rpc.NewTransport())

	return &Runner{API: client, Raw: raw, Normalized: norm, SourceID: 1}, raw, norm
}

type rpcRequest struct {
	Method string         `json:"method"`
	Params map[string]any `json:"params"`
}

func emptyResultHandler(t *testing.T, calls *[]string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req rpcRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		*calls = append(*calls, req.Method)
		_, _ = w.Write([]byte(`{"jsonrpc":"2.0","result":[],"id":1}`))
	}
}

func TestRunHappyPathEmptyDeltas(t *testing.T) {
	var calls []string
	runner, raw, _ := newRunner(t, emptyResultHandler(t, &calls))

	require.NoError(t, runner.Run())

	assert.Equal(t, []string{
		"trigger.get", "item.get", "host.get", "application.get", "event.get",
	}, calls)

	_, err := raw.GetTriggerLastChange()
	assert.ErrorIs(t, err, rawcache.ErrNotFound, "no trigger was ever observed, offset stays unset")
}

func TestRunUsesZeroSinceOnFirstCycle(t *testing.T) {
	var calls []string
	var triggerParams map[string]any
	runner, _, _ := newRunner(t, func(w http.ResponseWriter, r *http.Request) {
		var req rpcRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		calls = append(calls, req.Method)
		if req.Method == "trigger.get" {
			triggerParams = req.Params
		}
		_, _ = w.Write([]byte(`{"jsonrpc":"2.0","result":[],"id":1}`))
	})

	require.NoError(t, runner.Run())
	assert.EqualValues(t, 0, triggerParams["lastChangeSince"])
}

func TestRunAbortsCycleOnFetchError(t *testing.T) {
	var calls []string
	runner, raw, norm := newRunner(t, func(w http.ResponseWriter, r *http.Request) {
		var req rpcRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		calls = append(calls, req.Method)
		if req.Method == "host.get" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte(`{"jsonrpc":"2.0","result":[],"id":1}`))
	})

	err := runner.Run()
	require.Error(t, err)

	assert.Equal(t, []string{"trigger.get", "item.get", "host.get"}, calls,
		"application.get and event.get must not run once host.get fails")

	_, err = raw.GetLastEventID()
	assert.ErrorIs(t, err, rawcache.ErrNotFound, "step 8 (events) must not have run")

	var count int
	require.NoError(t, norm.DB().QueryRow(`SELECT COUNT(*) FROM triggers`).Scan(&count))
	assert.Equal(t, 0, count, "step 6 (normalized trigger projection) must not have run")
}
