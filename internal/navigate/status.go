package navigate

import "fmt"

// Outcome classifies how far a run got.
type Outcome int

const (
	// FullSuccess means every applicable step succeeded.
	FullSuccess Outcome = iota
	// PartialSuccess means an optional step failed and was skipped; the
	// session is still open and usable.
	PartialSuccess
	// Aborted means a mandatory step failed and the sequence stopped.
	Aborted
)

func (o Outcome) String() string {
	switch o {
	case FullSuccess:
		return "full success"
	case PartialSuccess:
		return "partial success"
	case Aborted:
		return "aborted"
	}
	return fmt.Sprintf("outcome(%d)", int(o))
}

// Status is the soft result of a run. Detail carries the failure of the
// degraded or aborting step; Stage names that step.
type Status struct {
	Outcome Outcome
	Stage   string
	Detail  error
}

func (s Status) String() string {
	if s.Detail == nil {
		return s.Outcome.String()
	}
	return fmt.Sprintf("%s at %s: %v", s.Outcome, s.Stage, s.Detail)
}
