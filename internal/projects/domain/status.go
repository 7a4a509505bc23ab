package domain

// ProcessingStatus tracks a project through the publishing pipeline.
// Transitions are strictly forward; FAILED is reachable from any
// non-terminal status.
type ProcessingStatus string

const (
	StatusPending        ProcessingStatus = "PENDING"
	StatusExtracting     ProcessingStatus = "EXTRACTING"
	StatusAnalyzing      ProcessingStatus = "ANALYZING"
	StatusGeneratingCopy ProcessingStatus = "GENERATING_COPY"
	StatusCompleted      ProcessingStatus = "COMPLETED"
	StatusFailed         ProcessingStatus = "FAILED"
)

// order maps each status to its position in the forward chain.
// Terminal statuses have no successor.
var order = map[ProcessingStatus]int{
	StatusPending:        0,
	StatusExtracting:     1,
	StatusAnalyzing:      2,
	StatusGeneratingCopy: 3,
	StatusCompleted:      4,
}

// progress is the fixed status → percentage map shown to polling clients.
// It is presentational only; stages do not report intra-stage progress.
var progress = map[ProcessingStatus]int{
	StatusPending:        10,
	StatusExtracting:     30,
	StatusAnalyzing:      60,
	StatusGeneratingCopy: 85,
	StatusCompleted:      100,
	StatusFailed:         0,
}

func (s ProcessingStatus) Valid() bool {
	if s == StatusFailed {
		return true
	}
	_, ok := order[s]
	return ok
}

// Terminal reports whether no further transition can occur.
func (s ProcessingStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// Next returns the successor in the forward chain, or "" for terminal
// and unknown statuses.
func (s ProcessingStatus) Next() ProcessingStatus {
	switch s {
	case StatusPending:
		return StatusExtracting
	case StatusExtracting:
		return StatusAnalyzing
	case StatusAnalyzing:
		return StatusGeneratingCopy
	case StatusGeneratingCopy:
		return StatusCompleted
	default:
		return ""
	}
}

// CanTransitionTo reports whether s → next is a legal transition:
// one step forward, or the escape to FAILED from any non-terminal status.
func (s ProcessingStatus) CanTransitionTo(next ProcessingStatus) bool {
	if s.Terminal() {
		return false
	}
	if next == StatusFailed {
		return true
	}
	return s.Next() == next
}

// Progress returns the client-facing percentage for this status.
func (s ProcessingStatus) Progress() int {
	return progress[s]
}
