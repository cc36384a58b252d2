package metrics

import (
	"fmt"
	"sort"
	"sync"
)

// Domain groups metrics by the object-name family they live under.
type Domain string

const (
	DomainClient     Domain = "client"
	DomainTable      Domain = "table"
	DomainCompaction Domain = "compaction"
	DomainStorage    Domain = "storage"
)

// Registry holds the static metric-name-to-kind catalog per domain.
type Registry struct {
	domains map[Domain]map[string]Kind
	mu      sync.RWMutex
}

var (
	globalRegistry *Registry
	registryOnce   sync.Once
)

// GetRegistry returns the singleton metric catalog
func GetRegistry() *Registry {
	registryOnce.Do(func() {
		globalRegistry = NewRegistry()
		globalRegistry.initializeCatalog()
	})
	return globalRegistry
}

// NewRegistry creates an empty metric catalog
func NewRegistry() *Registry {
	return &Registry{
		domains: make(map[Domain]map[string]Kind),
	}
}

// initializeCatalog registers every metric the tool knows how to read
func (r *Registry) initializeCatalog() {
	r.registerDomain(DomainClient, map[string]Kind{
		"connectedNativeClients": Gauge,
		"connectedThriftClients": Gauge,
	})

	r.registerDomain(DomainTable, map[string]Kind{
		// Gauges
		"BloomFilterDiskSpaceUsed":             Gauge,
		"BloomFilterFalsePositives":            Gauge,
		"BloomFilterFalseRatio":                Gauge,
		"BloomFilterOffHeapMemoryUsed":         Gauge,
		"IndexSummaryOffHeapMemoryUsed":        Gauge,
		"CompressionMetadataOffHeapMemoryUsed": Gauge,
		"CompressionRatio":                     Gauge,
		"EstimatedColumnCountHistogram":        Gauge,
		"EstimatedRowSizeHistogram":            Gauge,
		"EstimatedRowCount":                    Gauge,
		"KeyCacheHitRate":                      Gauge,
		"LiveSSTableCount":                     Gauge,
		"MaxRowSize":                           Gauge,
		"MeanRowSize":                          Gauge,
		"MemtableColumnsCount":                 Gauge,
		"MemtableLiveDataSize":                 Gauge,
		"MemtableOffHeapSize":                  Gauge,
		"MinRowSize":                           Gauge,
		"RecentBloomFilterFalsePositives":      Gauge,
		"RecentBloomFilterFalseRatio":          Gauge,
		"SnapshotsSize":                        Gauge,

		// Counters
		"LiveDiskSpaceUsed":   Counter,
		"MemtableSwitchCount": Counter,
		"SpeculativeRetries":  Counter,
		"TotalDiskSpaceUsed":  Counter,
		"WriteTotalLatency":   Counter,
		"ReadTotalLatency":    Counter,
		"PendingFlushes":      Counter,

		// Timers
		"ReadLatency":            Timer,
		"CoordinatorReadLatency": Timer,
		"CoordinatorScanLatency": Timer,
		"WriteLatency":           Timer,

		// Histograms
		"LiveScannedHistogram":      Histogram,
		"SSTablesPerReadHistogram":  Histogram,
		"TombstoneScannedHistogram": Histogram,
	})

	r.registerDomain(DomainCompaction, map[string]Kind{
		"BytesCompacted":            Counter,
		"CompletedTasks":            Gauge,
		"PendingTasks":              Gauge,
		"TotalCompactionsCompleted": Meter,
	})

	r.registerDomain(DomainStorage, map[string]Kind{
		"Exceptions":           Counter,
		"Load":                 Counter,
		"TotalHints":           Counter,
		"TotalHintsInProgress": Counter,
	})
}

func (r *Registry) registerDomain(domain Domain, kinds map[string]Kind) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.domains[domain] = kinds
}

// Lookup returns the kind of a metric within a domain
func (r *Registry) Lookup(domain Domain, name string) (Kind, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	kinds, exists := r.domains[domain]
	if !exists {
		return 0, fmt.Errorf("unknown metric domain: %s", domain)
	}
	kind, exists := kinds[name]
	if !exists {
		return 0, fmt.Errorf("unknown %s metric: %s", domain, name)
	}
	return kind, nil
}

// ListMetrics returns the metric names of a domain in stable order
func (r *Registry) ListMetrics(domain Domain) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.domains[domain]))
	for name := range r.domains[domain] {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// OperatingSystemAttributes are the host attributes readable on the OS
// object. These are raw attribute reads, not proxied metric kinds.
var OperatingSystemAttributes = []string{
	"Arch",
	"AvailableProcessors",
	"FreePhysicalMemorySize",
	"FreeSwapSpaceSize",
	"MaxFileDescriptorCount",
	"Name",
	"OpenFileDescriptorCount",
	"ProcessCpuLoad",
	"ProcessCpuTime",
	"SystemCpuLoad",
	"SystemLoadAverage",
	"TotalPhysicalMemorySize",
	"TotalSwapSpaceSize",
	"Version",
}

// IsOperatingSystemAttribute reports whether name is a known OS attribute
func IsOperatingSystemAttribute(name string) bool {
	for _, attr := range OperatingSystemAttributes {
		if attr == name {
			return true
		}
	}
	return false
}
