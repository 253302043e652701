package domain

import (
	"fmt"
	"strings"
)

// Status is the pipeline stage of an application. The zero value is not a
// valid status; use the constants or ParseStatus.
type Status string

const (
	StatusApplied     Status = "APPLIED"
	StatusPhoneScreen Status = "PHONE_SCREEN"
	StatusInterview   Status = "INTERVIEW"
	StatusOffer       Status = "OFFER"
	StatusRejected    Status = "REJECTED"
)

var pipelineOrder = [...]Status{
	StatusApplied,
	StatusPhoneScreen,
	StatusInterview,
	StatusOffer,
	StatusRejected,
}

var statusLabels = map[Status]string{
	StatusApplied:     "Applied",
	StatusPhoneScreen: "Phone Screen",
	StatusInterview:   "Interview",
	StatusOffer:       "Offer",
	StatusRejected:    "Rejected",
}

// AllStatuses returns every status in pipeline order.
func AllStatuses() []Status {
	out := make([]Status, len(pipelineOrder))
	copy(out, pipelineOrder[:])
	return out
}

// ParseStatus converts raw input into a Status. Matching is exact after
// trimming; anything outside the enumeration is rejected.
func ParseStatus(raw string) (Status, error) {
	candidate := Status(strings.TrimSpace(raw))
	if !candidate.Valid() {
		return "", fmt.Errorf("unknown status %q", raw)
	}
	return candidate, nil
}

// Valid reports whether s is one of the five pipeline stages.
func (s Status) Valid() bool {
	_, ok := statusLabels[s]
	return ok
}

// Label returns the human readable name.
func (s Status) Label() string {
	if label, ok := statusLabels[s]; ok {
		return label
	}
	return string(s)
}

func (s Status) String() string {
	return string(s)
}
