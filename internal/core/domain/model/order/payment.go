package order

import (
	"fmt"

	"laundryops/internal/pkg/errs"
)

// PaymentStatus represents the settlement state of an order's payment.
type PaymentStatus int

const (
	// PaymentUnknown represents an invalid or undefined payment status.
	PaymentUnknown PaymentStatus = iota

	// PaymentPending means no settlement happened yet.
	PaymentPending

	// PaymentPaid means the order total was collected.
	PaymentPaid

	// PaymentFailed means collection failed or was voided by cancellation.
	PaymentFailed

	// PaymentRefunded means a collected payment was returned to the customer.
	PaymentRefunded
)

func getPaymentStatusStrings() map[PaymentStatus]string {
	return map[PaymentStatus]string{
		PaymentUnknown:  "unknown",
		PaymentPending:  "pending",
		PaymentPaid:     "paid",
		PaymentFailed:   "failed",
		PaymentRefunded: "refunded",
	}
}

// Validate checks if the PaymentStatus value is a member of the known enum.
func (p PaymentStatus) Validate() error {
	if p == PaymentUnknown {
		return errs.NewValueIsInvalidErrorWithCause("payment status is invalid",
			fmt.Errorf("%d is not a valid payment status", p))
	}
	if _, ok := getPaymentStatusStrings()[p]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("payment status is invalid",
			fmt.Errorf("%d is not a valid payment status", p))
	}
	return nil
}

// ParsePaymentStatus converts a wire/storage representation into a
// PaymentStatus.
func ParsePaymentStatus(s string) (PaymentStatus, error) {
	for status, str := range getPaymentStatusStrings() {
		if status != PaymentUnknown && str == s {
			return status, nil
		}
	}
	return PaymentUnknown, errs.NewValueIsInvalidErrorWithCause("payment status is invalid",
		fmt.Errorf("%q is not a valid payment status", s))
}

// String returns the wire representation of the payment status.
func (p PaymentStatus) String() string {
	if str, ok := getPaymentStatusStrings()[p]; ok {
		return str
	}
	return "unknown"
}

// PaymentMethod represents how the customer pays for an order.
type PaymentMethod int

const (
	// MethodUnknown represents an invalid or undefined payment method.
	MethodUnknown PaymentMethod = iota

	// MethodCashOnDelivery means payment is collected when the order is delivered.
	MethodCashOnDelivery

	// MethodCard means the customer paid by card at placement.
	MethodCard

	// MethodWallet means the customer paid from a stored-value wallet.
	MethodWallet
)

func getPaymentMethodStrings() map[PaymentMethod]string {
	return map[PaymentMethod]string{
		MethodUnknown:        "unknown",
		MethodCashOnDelivery: "cash_on_delivery",
		MethodCard:           "card",
		MethodWallet:         "wallet",
	}
}

// Validate checks if the PaymentMethod value is a member of the known enum.
func (m PaymentMethod) Validate() error {
	if m == MethodUnknown {
		return errs.NewValueIsInvalidErrorWithCause("payment method is invalid",
			fmt.Errorf("%d is not a valid payment method", m))
	}
	if _, ok := getPaymentMethodStrings()[m]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("payment method is invalid",
			fmt.Errorf("%d is not a valid payment method", m))
	}
	return nil
}

// ParsePaymentMethod converts a wire/storage representation into a
// PaymentMethod.
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	for method, str := range getPaymentMethodStrings() {
		if method != MethodUnknown && str == s {
			return method, nil
		}
	}
	return MethodUnknown, errs.NewValueIsInvalidErrorWithCause("payment method is invalid",
		fmt.Errorf("%q is not a valid payment method", s))
}

// String returns the wire representation of the payment method.
func (m PaymentMethod) String() string {
	if str, ok := getPaymentMethodStrings()[m]; ok {
		return str
	}
	return "unknown"
}

// DerivePaymentChange computes the payment-status effect of a status transition.
//
// Rules:
//   - Delivered forces PaymentPaid regardless of prior state (captures
//     cash-on-delivery collection); no change when already paid.
//   - Cancelled yields PaymentRefunded when the order was already paid with
//     a non-cash method, otherwise PaymentFailed.
//   - Every other status leaves the payment state alone.
//
// Returns the new status, a human-readable audit detail, and whether a
// change must be persisted.
func DerivePaymentChange(next Status, current PaymentStatus, method PaymentMethod) (PaymentStatus, string, bool) {
	switch next {
	case Delivered:
		if current == PaymentPaid {
			return current, "", false
		}
		return PaymentPaid, "auto-captured on delivery", true
	case Cancelled:
		if current == PaymentPaid && method != MethodCashOnDelivery {
			return PaymentRefunded, "auto-refunded on cancellation", true
		}
		return PaymentFailed, "voided on cancellation", true
	default:
		return current, "", false
	}
}
