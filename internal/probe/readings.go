package probe

// TimerReading is the distribution a latency timer exposes. Count is the
// number of recorded events; the remaining fields are in the timer's
// duration unit (microseconds on the node side).
type TimerReading struct {
	Count int64   `json:"count"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Mean  float64 `json:"mean"`
	P50   float64 `json:"p50"`
	P99   float64 `json:"p99"`
}

// HistogramReading is the distribution a histogram exposes.
type HistogramReading struct {
	Count int64   `json:"count"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Mean  float64 `json:"mean"`
	P50   float64 `json:"p50"`
	P99   float64 `json:"p99"`
}

// MeterReading is a counter with moving rates attached.
type MeterReading struct {
	Count           int64   `json:"count"`
	MeanRate        float64 `json:"mean_rate"`
	OneMinuteRate   float64 `json:"one_minute_rate"`
	FiveMinuteRate  float64 `json:"five_minute_rate"`
	FifteenMinuteRate float64 `json:"fifteen_minute_rate"`
}

func timerReading(values map[string]any) TimerReading {
	return TimerReading{
		Count: attrInt64(values, "Count"),
		Min:   attrFloat(values, "Min"),
		Max:   attrFloat(values, "Max"),
		Mean:  attrFloat(values, "Mean"),
		P50:   attrFloat(values, "50thPercentile"),
		P99:   attrFloat(values, "99thPercentile"),
	}
}

func histogramReading(values map[string]any) HistogramReading {
	return HistogramReading{
		Count: attrInt64(values, "Count"),
		Min:   attrFloat(values, "Min"),
		Max:   attrFloat(values, "Max"),
		Mean:  attrFloat(values, "Mean"),
		P50:   attrFloat(values, "50thPercentile"),
		P99:   attrFloat(values, "99thPercentile"),
	}
}

func meterReading(values map[string]any) MeterReading {
	return MeterReading{
		Count:             attrInt64(values, "Count"),
		MeanRate:          attrFloat(values, "MeanRate"),
		OneMinuteRate:     attrFloat(values, "OneMinuteRate"),
		FiveMinuteRate:    attrFloat(values, "FiveMinuteRate"),
		FifteenMinuteRate: attrFloat(values, "FifteenMinuteRate"),
	}
}

// attrFloat extracts a numeric attribute. JSON numbers decode as float64;
// anything else reads as zero.
func attrFloat(values map[string]any, name string) float64 {
	if f, ok := values[name].(float64); ok {
		return f
	}
	return 0
}

func attrInt64(values map[string]any, name string) int64 {
	return int64(attrFloat(values, name))
}
