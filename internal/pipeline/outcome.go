package pipeline

import "fmt"

// Status classifies how a single candidate item ended up.
type Status int

const (
	// StatusProcessed means a measurement was created and linked.
	StatusProcessed Status = iota
	// StatusSkipped means a precondition failed and the item was left
	// untouched: no measurement, no aggregate mutation.
	StatusSkipped
	// StatusFailed means an external step failed mid-item. The failure is
	// logged and isolated; the sweep continues with the next item.
	StatusFailed
)

// Skip reasons. An item skipped for any of these produces no records.
const (
	ReasonAlreadyProcessed = "already processed"
	ReasonMissingURL       = "missing image URL"
	ReasonBadLocation      = "unparseable location identity"
)

// Outcome is the per-item result the orchestrator aggregates. Modelling the
// skip/fail/success taxonomy explicitly keeps it testable instead of
// implicit in log lines.
type Outcome struct {
	ImageID       string
	Status        Status
	Reason        string // set when skipped
	Err           error  // set when failed
	MeasurementID string // set when processed
}

// Summary counts outcomes across one sweep.
type Summary struct {
	Processed int
	Skipped   int
	Failed    int
}

func (s *Summary) add(o Outcome) {
	switch o.Status {
	case StatusProcessed:
		s.Processed++
	case StatusSkipped:
		s.Skipped++
	case StatusFailed:
		s.Failed++
	}
}

// Total is the number of candidate items the sweep looked at.
func (s Summary) Total() int {
	return s.Processed + s.Skipped + s.Failed
}

func (s Summary) String() string {
	return fmt.Sprintf("%d processed, %d skipped, %d failed (%d total)",
		s.Processed, s.Skipped, s.Failed, s.Total())
}
