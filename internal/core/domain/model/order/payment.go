package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/pkg/errs"
)

// ErrPaymentIsNotConstructed is returned when a Payment was not created through a constructor.
var ErrPaymentIsNotConstructed = errors.New("Payment must be created via Order.RecordPayment")

// PaymentMethod is how the customer paid.
type PaymentMethod int

const (
	MethodUnknown PaymentMethod = iota
	MethodCash
	MethodCard
	MethodMobileMoney
	MethodBankTransfer
	MethodOnline
	MethodOther
)

func getPaymentMethodStrings() map[PaymentMethod]string {
	return map[PaymentMethod]string{
		MethodUnknown:      "unknown",
		MethodCash:         "cash",
		MethodCard:         "card",
		MethodMobileMoney:  "mobile_money",
		MethodBankTransfer: "bank_transfer",
		MethodOnline:       "online",
		MethodOther:        "other",
	}
}

// ParsePaymentMethod converts a persisted code into a PaymentMethod.
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	for method, str := range getPaymentMethodStrings() {
		if str == s && method != MethodUnknown {
			return method, nil
		}
	}
	return MethodUnknown, errs.NewValueIsInvalidErrorWithCause("method", fmt.Errorf("%q is not a valid payment method", s))
}

func (m PaymentMethod) String() string {
	if str, ok := getPaymentMethodStrings()[m]; ok {
		return str
	}
	return "unknown"
}

// Validate rejects unknown values.
func (m PaymentMethod) Validate() error {
	if m <= MethodUnknown || m > MethodOther {
		return errs.NewValueIsInvalidErrorWithCause("method", fmt.Errorf("%d is not a valid payment method", m))
	}
	return nil
}

// requiresTransactionID reports whether a processor reference is mandatory.
func (m PaymentMethod) requiresTransactionID() bool {
	return m == MethodCard || m == MethodBankTransfer || m == MethodOnline || m == MethodMobileMoney
}

// MobileNetwork is the mobile money operator.
type MobileNetwork string

const (
	NetworkNone       MobileNetwork = ""
	NetworkMTN        MobileNetwork = "mtn"
	NetworkVodafone   MobileNetwork = "vodafone"
	NetworkAirtelTigo MobileNetwork = "airtel_tigo"
)

// ParseMobileNetwork converts a code into a MobileNetwork. The empty string is NetworkNone.
func ParseMobileNetwork(s string) (MobileNetwork, error) {
	switch n := MobileNetwork(strings.TrimSpace(s)); n {
	case NetworkNone, NetworkMTN, NetworkVodafone, NetworkAirtelTigo:
		return n, nil
	default:
		return NetworkNone, errs.NewValueIsInvalidErrorWithCause("mobile_network", fmt.Errorf("%q is not a supported network", s))
	}
}

// PaymentKind separates regular payments from refund entries.
type PaymentKind string

const (
	KindPayment PaymentKind = "payment"
	KindRefund  PaymentKind = "refund"
)

// Payment is one entry of an order's payment ledger. Entries are append only:
// a refund is recorded as a new negative entry, never by editing old ones.
//
// Amount is what was tendered, Applied is the part that reduced the balance
// and ChangeDue is what was handed back. Applied + ChangeDue == Amount.
type Payment struct {
	id             kernel.UUID
	organizationID kernel.UUID
	orderID        kernel.UUID
	kind           PaymentKind
	method         PaymentMethod
	amount         kernel.Money
	applied        kernel.Money
	changeDue      kernel.Money
	transactionID  string
	network        MobileNetwork
	idempotencyKey string
	receivedBy     kernel.UUID
	paidAt         time.Time

	isConstructed bool
}

// PaymentSnapshot carries the persisted state of a payment for RestorePayment.
type PaymentSnapshot struct {
	ID             kernel.UUID
	OrganizationID kernel.UUID
	OrderID        kernel.UUID
	Kind           PaymentKind
	Method         PaymentMethod
	Amount         kernel.Money
	Applied        kernel.Money
	ChangeDue      kernel.Money
	TransactionID  string
	Network        MobileNetwork
	IdempotencyKey string
	ReceivedBy     kernel.UUID
	PaidAt         time.Time
}

// RestorePayment rebuilds a ledger entry from storage.
func RestorePayment(s PaymentSnapshot) (*Payment, error) {
	if err := errors.Join(
		s.ID.Validate(),
		s.OrganizationID.Validate(),
		s.OrderID.Validate(),
		s.Method.Validate(),
	); err != nil {
		return nil, err
	}
	if s.Kind != KindPayment && s.Kind != KindRefund {
		return nil, errs.NewValueIsInvalidErrorWithCause("kind", fmt.Errorf("%q is not a payment kind", s.Kind))
	}

	return &Payment{
		id:             s.ID,
		organizationID: s.OrganizationID,
		orderID:        s.OrderID,
		kind:           s.Kind,
		method:         s.Method,
		amount:         s.Amount,
		applied:        s.Applied,
		changeDue:      s.ChangeDue,
		transactionID:  s.TransactionID,
		network:        s.Network,
		idempotencyKey: s.IdempotencyKey,
		receivedBy:     s.ReceivedBy,
		paidAt:         s.PaidAt,
		isConstructed:  true,
	}, nil
}

// ValidatePaymentDetails checks the method specific fields:
//   - card, bank_transfer and online need a transaction id
//   - mobile_money needs a transaction id and a network
//   - only mobile_money may carry a network
func ValidatePaymentDetails(method PaymentMethod, transactionID string, network MobileNetwork) error {
	if err := method.Validate(); err != nil {
		return err
	}

	var problems []error
	if method.requiresTransactionID() && strings.TrimSpace(transactionID) == "" {
		problems = append(problems, errs.NewValueIsRequiredErrorWithCause("transaction_id",
			fmt.Errorf("%s payments need a transaction id", method)))
	}
	if method == MethodMobileMoney && network == NetworkNone {
		problems = append(problems, errs.NewValueIsRequiredErrorWithCause("mobile_network",
			errors.New("mobile money payments need a network")))
	}
	if method != MethodMobileMoney && network != NetworkNone {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause("mobile_network",
			fmt.Errorf("%s payments cannot carry a mobile network", method)))
	}
	if _, err := ParseMobileNetwork(string(network)); err != nil {
		problems = append(problems, err)
	}

	return errors.Join(problems...)
}

// Validate ensures the payment was built through a constructor.
func (p *Payment) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrPaymentIsNotConstructed
	}
	return nil
}

func (p *Payment) ID() kernel.UUID {
	return p.id
}

func (p *Payment) OrganizationID() kernel.UUID {
	return p.organizationID
}

func (p *Payment) OrderID() kernel.UUID {
	return p.orderID
}

func (p *Payment) Kind() PaymentKind {
	return p.kind
}

func (p *Payment) Method() PaymentMethod {
	return p.method
}

// Amount is the tendered amount, negative for refunds.
func (p *Payment) Amount() kernel.Money {
	return p.amount
}

// Applied is the part of Amount that changed amount_paid.
func (p *Payment) Applied() kernel.Money {
	return p.applied
}

// ChangeDue is the part of Amount handed back to the customer.
func (p *Payment) ChangeDue() kernel.Money {
	return p.changeDue
}

func (p *Payment) TransactionID() string {
	return p.transactionID
}

func (p *Payment) Network() MobileNetwork {
	return p.network
}

func (p *Payment) IdempotencyKey() string {
	return p.idempotencyKey
}

func (p *Payment) ReceivedBy() kernel.UUID {
	return p.receivedBy
}

func (p *Payment) PaidAt() time.Time {
	return p.paidAt
}
