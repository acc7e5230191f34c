package guide

import (
	"fmt"

	"tracking/internal/pkg/errs"
)

// Priority orders guides within a coordinator's pending pool.
type Priority int

const (
	// PriorityNormal is the default for new guides.
	PriorityNormal Priority = iota + 1

	// PriorityHigh marks guides that should be assigned before normal ones.
	PriorityHigh

	// PriorityUrgent marks same-day deliveries.
	PriorityUrgent
)

func getPriorityStrings() map[Priority]string {
	return map[Priority]string{
		PriorityNormal: "normal",
		PriorityHigh:   "high",
		PriorityUrgent: "urgent",
	}
}

// ParsePriority resolves a priority name from transport input.
func ParsePriority(name string) (Priority, error) {
	for p, str := range getPriorityStrings() {
		if str == name {
			return p, nil
		}
	}
	return 0, errs.NewValueIsInvalidErrorWithCause(
		"priority",
		fmt.Errorf("%q is not a known priority", name),
	)
}

// String returns the priority name. Implements fmt.Stringer.
func (p Priority) String() string {
	if str, ok := getPriorityStrings()[p]; ok {
		return str
	}
	return "unknown"
}

// Validate checks that the priority is one of the defined values.
func (p Priority) Validate() error {
	if _, ok := getPriorityStrings()[p]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("priority", fmt.Errorf("%d is not a valid priority", p))
	}
	return nil
}
