// Package probe reads typed operational metrics from a node's management
// agent. Each read formats an object name, asks the bridge for the
// attributes the metric kind carries, and decodes the reply.
package probe

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cassmon/cassmon/internal/bridge"
	"github.com/cassmon/cassmon/internal/metrics"
)

// Probe exposes the node's metric families over a bridge Reader.
type Probe struct {
	reader  bridge.Reader
	catalog *metrics.Registry
	logger  *slog.Logger
}

// New creates a Probe over an open bridge session.
func New(reader bridge.Reader, logger *slog.Logger) *Probe {
	if logger == nil {
		logger = slog.Default()
	}
	return &Probe{
		reader:  reader,
		catalog: metrics.GetRegistry(),
		logger:  logger.With("component", "probe"),
	}
}

// ConnectedClients reads a client-connection gauge
// (connectedNativeClients, connectedThriftClients).
func (p *Probe) ConnectedClients(ctx context.Context, name string) (any, error) {
	if _, err := p.catalog.Lookup(metrics.DomainClient, name); err != nil {
		return nil, err
	}
	return p.reader.ReadAttribute(ctx, metrics.ClientObjectName(name), "Value")
}

// TableMetric reads a table (column family) metric for keyspace.table.
// The return type follows the metric's kind: gauges return the raw value,
// counters an int64, timers and histograms their typed readings.
func (p *Probe) TableMetric(ctx context.Context, keyspace, table, name string) (any, error) {
	kind, err := p.catalog.Lookup(metrics.DomainTable, name)
	if err != nil {
		return nil, err
	}
	objectName := metrics.TableObjectName(keyspace, table, name)

	switch kind {
	case metrics.Gauge:
		return p.reader.ReadAttribute(ctx, objectName, "Value")
	case metrics.Counter:
		return p.readCount(ctx, objectName)
	case metrics.Timer:
		values, err := p.reader.ReadAttributes(ctx, objectName, kind.Attributes()...)
		if err != nil {
			return nil, err
		}
		return timerReading(values), nil
	case metrics.Histogram:
		values, err := p.reader.ReadAttributes(ctx, objectName, kind.Attributes()...)
		if err != nil {
			return nil, err
		}
		return histogramReading(values), nil
	default:
		return nil, fmt.Errorf("unhandled kind %s for table metric %s", kind, name)
	}
}

// CompactionMetric reads a compaction metric. BytesCompacted is a counter,
// CompletedTasks and PendingTasks are gauges, TotalCompactionsCompleted is
// a meter read as its count.
func (p *Probe) CompactionMetric(ctx context.Context, name string) (any, error) {
	kind, err := p.catalog.Lookup(metrics.DomainCompaction, name)
	if err != nil {
		return nil, err
	}
	objectName := metrics.CompactionObjectName(name)

	switch kind {
	case metrics.Gauge:
		return p.reader.ReadAttribute(ctx, objectName, "Value")
	case metrics.Counter, metrics.Meter:
		return p.readCount(ctx, objectName)
	default:
		return nil, fmt.Errorf("unhandled kind %s for compaction metric %s", kind, name)
	}
}

// StorageMetric reads a storage counter (Exceptions, Load, TotalHints,
// TotalHintsInProgress).
func (p *Probe) StorageMetric(ctx context.Context, name string) (int64, error) {
	if _, err := p.catalog.Lookup(metrics.DomainStorage, name); err != nil {
		return 0, err
	}
	return p.readCount(ctx, metrics.StorageObjectName(name))
}

// OperatingSystemMetric reads a raw host attribute off the OS object
// (ProcessCpuLoad, AvailableProcessors, ...).
func (p *Probe) OperatingSystemMetric(ctx context.Context, attribute string) (any, error) {
	if !metrics.IsOperatingSystemAttribute(attribute) {
		return nil, fmt.Errorf("unknown operating system attribute: %s", attribute)
	}
	return p.reader.ReadAttribute(ctx, metrics.OperatingSystemObjectName, attribute)
}

func (p *Probe) readCount(ctx context.Context, objectName string) (int64, error) {
	value, err := p.reader.ReadAttribute(ctx, objectName, "Count")
	if err != nil {
		return 0, err
	}
	count, ok := value.(float64)
	if !ok {
		return 0, fmt.Errorf("unexpected count type %T for %s", value, objectName)
	}
	return int64(count), nil
}
