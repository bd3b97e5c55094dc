package health

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/nptel-prep/quiz-service/internal/utils"
)

// Pinger is the slice of the repository the prober needs.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Prober answers the single question the readiness gate and the health
// endpoint ask: is the store connected right now?
type Prober interface {
	Connected() bool
}

// StoreProber probes the store once at startup and then on a ticker, keeping
// an atomic connected flag. A store that comes up after the process (or drops
// mid-flight) flips the gate without a restart. When the store was never
// configured the prober stays disconnected forever.
type StoreProber struct {
	pinger    Pinger
	log       utils.Logger
	interval  time.Duration
	timeout   time.Duration
	connected atomic.Bool

	// onConnect runs once, on the first successful probe (schema migration).
	onConnect     func(ctx context.Context) error
	onConnectOnce sync.Once

	stopChan chan struct{}
	stopOnce sync.Once
}

func NewStoreProber(pinger Pinger, interval time.Duration, log utils.Logger, onConnect func(ctx context.Context) error) *StoreProber {
	return &StoreProber{
		pinger:    pinger,
		log:       log,
		interval:  interval,
		timeout:   5 * time.Second,
		onConnect: onConnect,
		stopChan:  make(chan struct{}),
	}
}

// Start launches the probe loop. Returns immediately; the first probe runs in
// the background so a slow or absent store never delays startup.
func (p *StoreProber) Start() {
	if p.pinger == nil {
		p.log.Warn("store not configured, /api routes will answer 503")
		return
	}

	go func() {
		p.probe()

		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				p.probe()
			case <-p.stopChan:
				return
			}
		}
	}()
}

func (p *StoreProber) Shutdown() {
	p.stopOnce.Do(func() { close(p.stopChan) })
}

func (p *StoreProber) Connected() bool {
	return p.connected.Load()
}

func (p *StoreProber) probe() {
	ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
	defer cancel()

	err := p.pinger.Ping(ctx)
	healthy := err == nil

	was := p.connected.Swap(healthy)
	if was != healthy {
		if healthy {
			p.log.Info("store connection established")
		} else {
			p.log.Error("store connection lost", "error", err)
		}
	}

	if healthy && p.onConnect != nil {
		p.onConnectOnce.Do(func() {
			if err := p.onConnect(ctx); err != nil {
				p.log.Error("on-connect hook failed", "error", err)
			}
		})
	}
}
