package refund

import (
	"fmt"

	"laundryops/internal/pkg/errs"
)

// Status represents the lifecycle state of a refund request.
//
// State transitions:
//
//	Requested ──┬──> Approved ──> Processed
//	            ├──> Rejected
//	            └──> Escalated ──┬──> Approved
//	                             └──> Rejected
//
// Rejected and Processed are terminal. Approved is transient: the money has
// not moved until the request is Processed.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	StatusUnknown Status = iota

	// Requested is the initial status of every refund request.
	Requested

	// Approved means an authorized actor accepted the refund; it still
	// must be processed.
	Approved

	// Rejected is the unsuccessful terminal status.
	Rejected

	// Escalated means the decision was handed to a higher-authority
	// recipient, who can approve or reject.
	Escalated

	// Processed is the successful terminal status: the money moved.
	Processed
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown: "unknown",
		Requested:     "requested",
		Approved:      "approved",
		Rejected:      "rejected",
		Escalated:     "escalated",
		Processed:     "processed",
	}
}

// Validate checks if the Status value is a member of the known enum.
func (s Status) Validate() error {
	if s == StatusUnknown {
		return errs.NewValueIsInvalidErrorWithCause("refund status is invalid",
			fmt.Errorf("%d is not a valid refund status", s))
	}
	if _, ok := getStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("refund status is invalid",
			fmt.Errorf("%d is not a valid refund status", s))
	}
	return nil
}

// String returns the wire representation of the refund status.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports whether no further transitions are allowed from s.
func (s Status) IsTerminal() bool {
	return s == Rejected || s == Processed
}
