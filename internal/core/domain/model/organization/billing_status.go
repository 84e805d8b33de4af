package organization

import (
	"fmt"

	"laundry/internal/pkg/errs"
)

// BillingStatus is the subscription standing of an organization.
type BillingStatus int

const (
	UnknownBillingStatus BillingStatus = iota
	Active
	Trial
	PastDue
	Suspended
)

func getBillingStatusStrings() map[BillingStatus]string {
	return map[BillingStatus]string{
		UnknownBillingStatus: "unknown",
		Active:               "active",
		Trial:                "trial",
		PastDue:              "past_due",
		Suspended:            "suspended",
	}
}

// ParseBillingStatus converts a persisted code into a BillingStatus.
func ParseBillingStatus(s string) (BillingStatus, error) {
	for status, str := range getBillingStatusStrings() {
		if str == s && status != UnknownBillingStatus {
			return status, nil
		}
	}
	return UnknownBillingStatus, errs.NewValueIsInvalidErrorWithCause(
		"billing_status", fmt.Errorf("%q is not a valid billing status", s))
}

func (s BillingStatus) String() string {
	if str, ok := getBillingStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// Validate rejects unknown values.
func (s BillingStatus) Validate() error {
	if s <= UnknownBillingStatus || s > Suspended {
		return errs.NewValueIsInvalidErrorWithCause("billing_status", fmt.Errorf("%d is not a valid billing status", s))
	}
	return nil
}

// AllowsNewOrders reports whether orders may be taken. Only suspended
// organizations are blocked; past due ones keep operating.
func (s BillingStatus) AllowsNewOrders() bool {
	return s != Suspended
}
