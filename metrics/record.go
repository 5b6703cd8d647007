package metrics

import "math"

// Metric names.
const (
	AUC               = "AUC"
	Accuracy          = "Accuracy"
	PositivePrecision = "Positive precision"
	PositiveRecall    = "Positive recall"
	NegativePrecision = "Negative precision"
	NegativeRecall    = "Negative recall"
	LogLoss           = "Log-loss"
	LogLossReduction  = "Log-loss reduction"
	TestSetEntropy    = "Test-set entropy"
	F1Score           = "F1 Score"
	AccuracyMicro     = "Accuracy (micro)"
	AccuracyMacro     = "Accuracy (macro)"
)

// Entry is one named metric.
type Entry struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// Record is an ordered set of named metrics from one evaluation.
type Record struct {
	entries []Entry
}

func (r *Record) add(name string, v float64) {
	r.entries = append(r.entries, Entry{Name: name, Value: v})
}

// Get returns the named metric.
func (r Record) Get(name string) (float64, bool) {
	for _, e := range r.entries {
		if e.Name == name {
			return e.Value, true
		}
	}
	return 0, false
}

// Names returns metric names in evaluation order.
func (r Record) Names() []string {
	names := make([]string, len(r.entries))
	for i, e := range r.entries {
		names[i] = e.Name
	}
	return names
}

// Entries returns a copy of the metrics in evaluation order.
func (r Record) Entries() []Entry {
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

// Len returns the number of metrics.
func (r Record) Len() int { return len(r.entries) }

// Equal reports whether both records hold the same metrics. NaN equals NaN.
func (r Record) Equal(o Record) bool {
	if len(r.entries) != len(o.entries) {
		return false
	}
	for i, e := range r.entries {
		f := o.entries[i]
		if e.Name != f.Name {
			return false
		}
		if e.Value != f.Value && !(math.IsNaN(e.Value) && math.IsNaN(f.Value)) {
			return false
		}
	}
	return true
}
