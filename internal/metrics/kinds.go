package metrics

// Kind is the semantic type of a managed value. It determines which
// attributes of the remote object carry the reading.
type Kind int

const (
	Gauge Kind = iota
	Counter
	Timer
	Histogram
	Meter
)

func (k Kind) String() string {
	switch k {
	case Gauge:
		return "gauge"
	case Counter:
		return "counter"
	case Timer:
		return "timer"
	case Histogram:
		return "histogram"
	case Meter:
		return "meter"
	default:
		return "unknown"
	}
}

// Attributes returns the attribute set read for the kind. Gauges carry a
// single Value, counters a Count; timers and histograms expose the full
// distribution, meters the count plus rates.
func (k Kind) Attributes() []string {
	switch k {
	case Gauge:
		return []string{"Value"}
	case Counter:
		return []string{"Count"}
	case Timer, Histogram:
		return []string{"Count", "Min", "Max", "Mean", "50thPercentile", "99thPercentile"}
	case Meter:
		return []string{"Count", "MeanRate", "OneMinuteRate", "FiveMinuteRate", "FifteenMinuteRate"}
	default:
		return nil
	}
}
