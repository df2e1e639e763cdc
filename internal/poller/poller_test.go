package poller

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/monitoring-agents/zbxingest/internal/apiclient"
	"github.com/monitoring-agents/zbxingest/internal/normalized"
	"github.com/monitoring-agents/zbxingest/internal/rawcache"
	"github.com/monitoring-agents/zbxingest/internal/rpc"
	"github.com/monitoring-agents/zbxingest/internal/update"
)

func newTestWorker(t *testing.T, handler http.HandlerFunc, pollInterval time.Duration) *Worker {
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
	runner := &update.Runner{API: client, Raw: raw, Normalized: norm, SourceID: 1}

	return NewWorker(runner, "admin", "zabbix", pollInterval, time.Second, nil)
}

func loginOKHandler(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Method string `json:"method"`
		}
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req.Method == "user.login" {
			_, _ = w.Write([]byte(`{"jsonrpc":"2.0","result":"tok","id":1}`))
			return
		}
		_, _ = w.Write([]byte(`{"jsonrpc":"2.0","result":[],"id":1}`))
	}
}

func TestRequestExitBeforeRunTerminatesImmediately(t *testing.T) {
	w := newTestWorker(t, loginOKHandler(t), time.Hour)
	w.RequestExit()

	done := make(chan struct{})
	go func() {
		_ = w.Run()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not terminate promptly after a pre-emptive RequestExit")
	}
}

func TestRequestExitWakesSleepImmediately(t *testing.T) {
	w := newTestWorker(t, loginOKHandler(t), time.Hour)

	done := make(chan struct{})
	go func() {
		_ = w.Run()
		close(done)
	}()

	time.Sleep(50 * time.Millisecond)
	w.RequestExit()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not wake from sleep promptly after RequestExit")
	}
}

func TestRequestExitIsIdempotent(t *testing.T) {
	w := newTestWorker(t, loginOKHandler(t), time.Hour)
	assert.NotPanics(t, func() {
		w.RequestExit()
		w.RequestExit()
		w.RequestExit()
	})
}

func TestFallbackSleepUsedForNonPositiveInterval(t *testing.T) {
	w := newTestWorker(t, loginOKHandler(t), 0)
	assert.Equal(t, fallbackSleep, w.pollInterval())
}
