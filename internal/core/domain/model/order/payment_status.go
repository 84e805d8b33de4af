package order

import (
	"fmt"

	"laundry/internal/pkg/errs"
)

// PaymentStatus summarizes how much of the order total has been paid.
type PaymentStatus int

const (
	PaymentUnknown PaymentStatus = iota
	PaymentPending
	PaymentPartial
	PaymentPaid
	PaymentRefunded
)

func getPaymentStatusStrings() map[PaymentStatus]string {
	return map[PaymentStatus]string{
		PaymentUnknown:  "unknown",
		PaymentPending:  "pending",
		PaymentPartial:  "partial",
		PaymentPaid:     "paid",
		PaymentRefunded: "refunded",
	}
}

// ParsePaymentStatus converts a persisted code into a PaymentStatus.
func ParsePaymentStatus(s string) (PaymentStatus, error) {
	for status, str := range getPaymentStatusStrings() {
		if str == s && status != PaymentUnknown {
			return status, nil
		}
	}
	return PaymentUnknown, errs.NewValueIsInvalidErrorWithCause(
		"payment_status", fmt.Errorf("%q is not a valid payment status", s))
}

func (s PaymentStatus) String() string {
	if str, ok := getPaymentStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// Validate rejects unknown values.
func (s PaymentStatus) Validate() error {
	if s <= PaymentUnknown || s > PaymentRefunded {
		return errs.NewValueIsInvalidErrorWithCause("payment_status", fmt.Errorf("%d is not a valid payment status", s))
	}
	return nil
}
