// Package poller drives one source's cycle state machine: authenticate,
// run the incremental update sequence, then sleep until the next cycle
// or until a cooperative shutdown is requested.
package poller

import (
	"log/slog"
	"sync"
	"time"

	"github.com/monitoring-agents/zbxingest/internal/update"
)

// State names a position in the IDLE → AUTH → FETCH → SLEEP cycle, for
// logging only; callers never branch on it.
type State int

const (
	StateIdle State = iota
	StateAuth
	StateFetch
	StateSleep
)

func (s State) String() string {
	switch s {
	case StateAuth:
		return "auth"
	case StateFetch:
		return "fetch"
	case StateSleep:
		return "sleep"
	default:
		return "idle"
	}
}

// fallbackSleep is the suspension used when a configured interval is
// non-positive — a defensive floor, not a retry policy.
const fallbackSleep = 10 * time.Second

// Worker runs the cycle state machine for one source. It is not safe
// for concurrent use beyond the single Run goroutine plus concurrent
// calls to RequestExit.
type Worker struct {
	Update        *update.Runner
	User          string
	Password      string
	PollInterval  time.Duration
	RetryInterval time.Duration
	Log           *slog.Logger

	exitOnce sync.Once
	exitCh   chan struct{}
}

// NewWorker returns a Worker ready to Run.
func NewWorker(u *update.Runner, user, password string, pollInterval, retryInterval time.Duration, log *slog.Logger) *Worker {
	if log == nil {
		log = slog.Default()
	}
	return &Worker{
		Update:        u,
		User:          user,
		Password:      password,
		PollInterval:  pollInterval,
		RetryInterval: retryInterval,
		Log:           log,
		exitCh:        make(chan struct{}),
	}
}

// RequestExit signals the worker to stop after its current cycle, waking
// an in-progress sleep immediately. Idempotent and safe to call before
// Run, from Run's own goroutine, or concurrently from another goroutine.
func (w *Worker) RequestExit() {
	w.exitOnce.Do(func() { close(w.exitCh) })
}

func (w *Worker) exitRequested() bool {
	select {
	case <-w.exitCh:
		return true
	default:
		return false
	}
}

// Run executes the state machine until RequestExit is called. It always
// returns nil; fetch failures are logged and drive the retry cadence,
// never terminate the loop.
func (w *Worker) Run() error {
	for {
		if w.exitRequested() {
			w.Log.Info("poller exiting", "state", StateIdle.String())
			return nil
		}

		w.Log.Debug("poller cycle starting", "state", StateAuth.String())
		sleep := w.runCycle()

		if w.exitRequested() {
			return nil
		}

		w.Log.Debug("poller sleeping", "state", StateSleep.String(), "duration", sleep)
		if !w.sleep(sleep) {
			return nil
		}
	}
}

func (w *Worker) runCycle() time.Duration {
	if err := w.Update.API.OpenSession(w.User, w.Password); err != nil {
		w.Log.Error("cycle aborted: login failed", "error", err)
		return w.retryInterval()
	}

	w.Log.Debug("cycle fetching", "state", StateFetch.String())
	if err := w.Update.Run(); err != nil {
		w.Log.Error("cycle aborted: update failed", "error", err)
		return w.retryInterval()
	}

	return w.pollInterval()
}

func (w *Worker) pollInterval() time.Duration {
	if w.PollInterval <= 0 {
		return fallbackSleep
	}
	return w.PollInterval
}

func (w *Worker) retryInterval() time.Duration {
	if w.RetryInterval <= 0 {
		return fallbackSleep
	}
	return w.RetryInterval
}

// sleep suspends for d or until RequestExit is called, whichever comes
// first. Returns false if woken by an exit request.
func (w *Worker) sleep(d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return true
	case <-w.exitCh:
		return false
	}
}
