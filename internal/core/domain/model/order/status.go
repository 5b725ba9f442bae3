package order

import (
	"errors"
	"fmt"

	"laundryops/internal/pkg/errs"
)

// ErrInvalidTransition is returned when a status change does not follow the
// allowed-predecessors table. Callers match it with errors.Is.
var ErrInvalidTransition = errors.New("illegal status transition")

// Status represents the lifecycle state of an order.
// It implements a state machine with a central allowed-predecessors table,
// so every transition is validated in one place rather than trusted to call sites.
//
// State transitions:
//
//	Placed ──> AssignedToBranch ──┬──> AssignedToLogisticsPickup ──┐
//	                              │                                ▼
//	                              └─────────────────────────────> Picked
//	Picked ──> InProcess ──> Ready ──> AssignedToLogisticsDelivery
//	        ──> OutForDelivery ──> Delivered
//
// Cancelled is reachable from any non-terminal status.
// Delivered and Cancelled are terminal.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Placed is the initial status when a customer submits an order.
	Placed

	// AssignedToBranch indicates the order was routed to a processing branch.
	AssignedToBranch

	// AssignedToLogisticsPickup indicates a logistics partner will collect
	// the items from the customer. Branches that collect themselves skip it.
	AssignedToLogisticsPickup

	// Picked indicates the items were collected from the customer.
	Picked

	// InProcess indicates the branch is cleaning the items.
	InProcess

	// Ready indicates cleaning finished and the order awaits delivery assignment.
	Ready

	// AssignedToLogisticsDelivery indicates a logistics partner will return
	// the items to the customer.
	AssignedToLogisticsDelivery

	// OutForDelivery indicates the items are on their way back to the customer.
	OutForDelivery

	// Delivered is the successful terminal status. Entering it triggers
	// payment capture and the reward pipeline.
	Delivered

	// Cancelled is the unsuccessful terminal status, reachable from any
	// non-terminal status.
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:                     "unknown",
		Placed:                      "placed",
		AssignedToBranch:            "assigned_to_branch",
		AssignedToLogisticsPickup:   "assigned_to_logistics_pickup",
		Picked:                      "picked",
		InProcess:                   "in_process",
		Ready:                       "ready",
		AssignedToLogisticsDelivery: "assigned_to_logistics_delivery",
		OutForDelivery:              "out_for_delivery",
		Delivered:                   "delivered",
		Cancelled:                   "cancelled",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Placed:                      "placed",
		AssignedToBranch:            "assigned_to_branch",
		AssignedToLogisticsPickup:   "assigned_to_logistics_pickup",
		Picked:                      "picked",
		InProcess:                   "in_process",
		Ready:                       "ready",
		AssignedToLogisticsDelivery: "assigned_to_logistics_delivery",
		OutForDelivery:              "out_for_delivery",
		Delivered:                   "delivered",
		Cancelled:                   "cancelled",
	}
}

// allowedPredecessors is the central transition guard table.
// A status may only be entered from one of the listed predecessors.
// Cancelled is handled separately: any non-terminal status may cancel.
func allowedPredecessors() map[Status][]Status {
	return map[Status][]Status{
		AssignedToBranch:            {Placed},
		AssignedToLogisticsPickup:   {AssignedToBranch},
		Picked:                      {AssignedToBranch, AssignedToLogisticsPickup},
		InProcess:                   {Picked},
		Ready:                       {InProcess},
		AssignedToLogisticsDelivery: {Ready},
		OutForDelivery:              {AssignedToLogisticsDelivery},
		Delivered:                   {OutForDelivery},
	}
}

// ParseStatus converts a wire/storage representation into a Status.
// Returns an error for unknown values so bad enum input fails before
// reaching the state machine.
func ParseStatus(s string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status is invalid",
		fmt.Errorf("%q is not a valid status", s))
}

// Validate checks if the Status value is a member of the known enum.
// Unknown (0) and any other values are invalid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire representation of the status.
// Implements fmt.Stringer and is safe to call on any Status value.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports whether no further transitions are allowed from s.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

// TransitionTo validates the move from s to next against the guard table
// and returns next on success.
//
// Returns:
//   - (next, nil) on a legal transition
//   - (0, error wrapping ErrInvalidTransition) otherwise
func (s Status) TransitionTo(next Status) (Status, error) {
	if err := next.Validate(); err != nil {
		return 0, err
	}

	if next == Cancelled {
		if s.IsTerminal() {
			return 0, fmt.Errorf("%w: cannot cancel %s order", ErrInvalidTransition, s)
		}
		return Cancelled, nil
	}

	for _, prev := range allowedPredecessors()[next] {
		if s == prev {
			return next, nil
		}
	}

	return 0, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, s, next)
}
