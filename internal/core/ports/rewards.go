package ports

import (
	"context"

	"laundryops/internal/core/domain/model/kernel"
	"laundryops/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
)

// LoyaltyService is the external loyalty collaborator. Its only contract
// with the core is that failures are isolated by the caller.
type LoyaltyService interface {
	// AwardPointsForOrder credits loyalty points for a delivered order.
	AwardPointsForOrder(ctx context.Context, customerID kernel.UUID, aggregate *order.Order) error
}

// ReferralCode is an unclaimed referral held by a customer, with the
// program's minimum qualifying order total.
type ReferralCode struct {
	Code          string
	MinOrderTotal decimal.Decimal
}

// ReferralService is the external referral collaborator.
type ReferralService interface {
	// UnclaimedCode returns the customer's unclaimed referral code, or
	// nil when the customer holds none.
	UnclaimedCode(ctx context.Context, customerID kernel.UUID) (*ReferralCode, error)

	// GrantReward records the conversion and pays out both sides of the
	// referral for a qualifying first order.
	GrantReward(ctx context.Context, code string, customerID, orderID kernel.UUID) error

	// MarkClaimed marks the code claimed so it can never fire twice for
	// the same customer.
	MarkClaimed(ctx context.Context, code string, customerID kernel.UUID) error
}
