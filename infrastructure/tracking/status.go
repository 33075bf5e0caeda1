// Package tracking reports pipeline progress to subscribers such as loggers
// or terminal UIs.
package tracking

// Step identifies a phase of the challenge generation pipeline.
type Step string

// Pipeline steps in execution order.
const (
	StepCacheCheck Step = "cache_check"
	StepScanning   Step = "scanning"
	StepExtracting Step = "extracting"
	StepGenerating Step = "generating"
	StepCaching    Step = "caching"
)

// String returns the step name.
func (s Step) String() string { return string(s) }

// Status is an immutable progress snapshot for one pipeline step.
type Status struct {
	step     Step
	current  int
	total    int
	label    string
	finished bool
}

// NewStatus creates a Status at the start of a step.
func NewStatus(step Step) Status {
	return Status{step: step}
}

// Step returns the pipeline step.
func (s Status) Step() Step { return s.step }

// Current returns the number of processed items.
func (s Status) Current() int { return s.current }

// Total returns the number of items the step will process, 0 when unknown.
func (s Status) Total() int { return s.total }

// Label describes the item currently being processed.
func (s Status) Label() string { return s.label }

// Finished reports whether the step has completed.
func (s Status) Finished() bool { return s.finished }

// WithProgress returns a copy with updated counts and label.
func (s Status) WithProgress(current, total int, label string) Status {
	s.current = current
	s.total = total
	s.label = label
	return s
}

// Finish returns a terminal copy of the status.
func (s Status) Finish() Status {
	s.finished = true
	return s
}

// CompletionPercent returns progress in [0, 100], or 0 when total is unknown.
func (s Status) CompletionPercent() float64 {
	if s.total <= 0 {
		return 0
	}
	return float64(s.current) / float64(s.total) * 100
}
