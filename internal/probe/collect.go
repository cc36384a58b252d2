package probe

import (
	"context"
	"fmt"

	"github.com/cassmon/cassmon/internal/metrics"
)

// Metric is one collected reading, shaped for the agent-mode API.
type Metric struct {
	Name  string `json:"name"`
	Kind  string `json:"kind"`
	Value any    `json:"value"`
}

// CollectCategory gathers every cataloged metric of a category.
// Uses partial success strategy - if one read fails, others continue;
// an error is returned only when every read in the category failed.
// keyspace and table are required for the table category and ignored
// otherwise.
func (p *Probe) CollectCategory(ctx context.Context, category, keyspace, table string) ([]Metric, error) {
	var collected []Metric
	var failures []string

	record := func(name, kind string, value any, err error) {
		if err != nil {
			p.logger.Warn("metric read failed", "category", category, "metric", name, "err", err)
			failures = append(failures, fmt.Sprintf("%s: %v", name, err))
			return
		}
		collected = append(collected, Metric{Name: name, Kind: kind, Value: value})
	}

	switch category {
	case "clients":
		for _, name := range p.catalog.ListMetrics(metrics.DomainClient) {
			value, err := p.ConnectedClients(ctx, name)
			record(name, metrics.Gauge.String(), value, err)
		}
	case "table":
		if keyspace == "" || table == "" {
			return nil, fmt.Errorf("table category requires keyspace and table")
		}
		for _, name := range p.catalog.ListMetrics(metrics.DomainTable) {
			kind, _ := p.catalog.Lookup(metrics.DomainTable, name)
			value, err := p.TableMetric(ctx, keyspace, table, name)
			record(name, kind.String(), value, err)
		}
	case "compaction":
		for _, name := range p.catalog.ListMetrics(metrics.DomainCompaction) {
			kind, _ := p.catalog.Lookup(metrics.DomainCompaction, name)
			value, err := p.CompactionMetric(ctx, name)
			record(name, kind.String(), value, err)
		}
	case "storage":
		for _, name := range p.catalog.ListMetrics(metrics.DomainStorage) {
			value, err := p.StorageMetric(ctx, name)
			record(name, metrics.Counter.String(), value, err)
		}
	case "os":
		for _, attr := range metrics.OperatingSystemAttributes {
			value, err := p.OperatingSystemMetric(ctx, attr)
			record(attr, "attribute", value, err)
		}
	default:
		return nil, fmt.Errorf("unknown metric category: %s", category)
	}

	if len(collected) == 0 && len(failures) > 0 {
		return nil, fmt.Errorf("all %s reads failed: %v", category, failures)
	}
	return collected, nil
}
