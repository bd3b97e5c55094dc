package health

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/nptel-prep/quiz-service/internal/utils"
)

type fakePinger struct {
	mu  sync.Mutex
	err error
}

func (p *fakePinger) Ping(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.err
}

func (p *fakePinger) setErr(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.err = err
}

func testLogger() utils.Logger {
	return utils.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not reached in time")
}

func TestStoreProberNilPinger(t *testing.T) {
	prober := NewStoreProber(nil, time.Millisecond, testLogger(), nil)
	prober.Start()
	defer prober.Shutdown()

	time.Sleep(20 * time.Millisecond)
	if prober.Connected() {
		t.Error("prober with no store must stay disconnected")
	}
}

func TestStoreProberConnectsAndRecovers(t *testing.T) {
	pinger := &fakePinger{err: errors.New("down")}
	prober := NewStoreProber(pinger, 5*time.Millisecond, testLogger(), nil)
	prober.Start()
	defer prober.Shutdown()

	time.Sleep(20 * time.Millisecond)
	if prober.Connected() {
		t.Fatal("prober connected while store is down")
	}

	pinger.setErr(nil)
	waitFor(t, prober.Connected)

	pinger.setErr(errors.New("down again"))
	waitFor(t, func() bool { return !prober.Connected() })
}

func TestStoreProberOnConnectRunsOnce(t *testing.T) {
	var mu sync.Mutex
	calls := 0
	onConnect := func(ctx context.Context) error {
		mu.Lock()
		defer mu.Unlock()
		calls++
		return nil
	}

	pinger := &fakePinger{}
	prober := NewStoreProber(pinger, time.Millisecond, testLogger(), onConnect)
	prober.Start()
	defer prober.Shutdown()

	waitFor(t, prober.Connected)
	time.Sleep(20 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	if calls != 1 {
		t.Errorf("onConnect ran %d times, want 1", calls)
	}
}
