package supervisor

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeWorker struct {
	exitCh    chan struct{}
	exitCalls int32
	ran       int32
}

func newFakeWorker() *fakeWorker {
	return &fakeWorker{exitCh: make(chan struct{})}
}

func (f *fakeWorker) RequestExit() {
	atomic.AddInt32(&f.exitCalls, 1)
	select {
	case <-f.exitCh:
	default:
		close(f.exitCh)
	}
}

func (f *fakeWorker) Run() error {
	atomic.AddInt32(&f.ran, 1)
	<-f.exitCh
	return nil
}

func TestRunReturnsAfterAllWorkersExit(t *testing.T) {
	w1, w2 := newFakeWorker(), newFakeWorker()

	done := make(chan struct{})
	go func() {
		Run(nil, w1, w2)
		close(done)
	}()

	time.Sleep(20 * time.Millisecond)
	w1.RequestExit()
	w2.RequestExit()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after every worker exited")
	}

	assert.EqualValues(t, 1, w1.ran)
	assert.EqualValues(t, 1, w2.ran)
}
