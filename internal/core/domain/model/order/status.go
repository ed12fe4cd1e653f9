package order

import (
	"fmt"

	"ordering/internal/pkg/errs"
)

// Status is the lifecycle state of an order.
//
//	Draft ──finalize──> Confirmed ──add item──> Draft
type Status int

const (
	// Unknown is the zero value and never valid.
	Unknown Status = iota

	// Draft is an order being assembled.
	Draft

	// Confirmed marks a state whose previous contents were committed. It is
	// always empty.
	Confirmed
)

var statusNames = map[Status]string{
	Draft:     "draft",
	Confirmed: "confirmed",
}

// ParseStatus is the inverse of String for valid statuses.
func ParseStatus(s string) (Status, error) {
	for status, name := range statusNames {
		if name == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

func (s Status) Validate() error {
	if _, ok := statusNames[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "unknown"
}
