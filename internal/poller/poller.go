// Package poller drives the periodic scrape loop for agent mode.
package poller

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/cassmon/cassmon/internal/probe"
	"github.com/cassmon/cassmon/internal/store"
)

// Poller scrapes the configured categories from one node on a fixed
// interval and records each scrape in the snapshot store.
type Poller struct {
	probe      *probe.Probe
	store      *store.SnapshotStore
	target     string
	categories []string
	keyspace   string
	table      string
	interval   time.Duration
	logger     *slog.Logger

	// Lifecycle management
	running bool
	runMu   sync.Mutex
	done    chan struct{}
	wg      sync.WaitGroup
}

// New creates a Poller. target is the host:port being scraped and is
// recorded on every snapshot.
func New(p *probe.Probe, st *store.SnapshotStore, target string, categories []string, keyspace, table string, interval time.Duration, logger *slog.Logger) *Poller {
	if logger == nil {
		logger = slog.Default()
	}
	return &Poller{
		probe:      p,
		store:      st,
		target:     target,
		categories: categories,
		keyspace:   keyspace,
		table:      table,
		interval:   interval,
		logger:     logger.With("component", "poller"),
		done:       make(chan struct{}),
	}
}

// Run scrapes once immediately, then on every tick until the context is
// cancelled or Stop is called.
func (p *Poller) Run(ctx context.Context) error {
	p.runMu.Lock()
	if p.running {
		p.runMu.Unlock()
		return fmt.Errorf("poller already running")
	}
	p.running = true
	p.runMu.Unlock()

	p.wg.Add(1)
	defer p.wg.Done()

	p.scrape(ctx)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-p.done:
			return nil
		case <-ticker.C:
			p.scrape(ctx)
		}
	}
}

// Stop signals the loop to exit and waits for the in-flight scrape,
// bounded by ctx.
func (p *Poller) Stop(ctx context.Context) error {
	p.runMu.Lock()
	if !p.running {
		p.runMu.Unlock()
		return nil
	}
	p.running = false
	close(p.done)
	p.runMu.Unlock()

	finished := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(finished)
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-finished:
		return nil
	}
}

func (p *Poller) scrape(ctx context.Context) {
	started := time.Now()
	snapshot := &store.Snapshot{
		ID:         uuid.NewString(),
		Target:     p.target,
		Timestamp:  started.UTC(),
		Categories: make(map[string][]probe.Metric, len(p.categories)),
	}

	for _, category := range p.categories {
		collected, err := p.probe.CollectCategory(ctx, category, p.keyspace, p.table)
		if err != nil {
			p.logger.Warn("category scrape failed", "category", category, "err", err)
			continue
		}
		snapshot.Categories[category] = collected
	}

	if len(snapshot.Categories) == 0 {
		p.logger.Error("scrape produced no metrics", "target", p.target)
		return
	}

	p.store.Put(snapshot)
	p.logger.Debug("scrape complete", "target", p.target, "categories", len(snapshot.Categories), "took", time.Since(started))
}
