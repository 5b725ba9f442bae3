package commands

import (
	"context"
	"fmt"
	"log/slog"

	"laundryops/internal/core/domain/model/notification"
	"laundryops/internal/core/domain/model/order"
	"laundryops/internal/core/ports"
)

// RewardPipeline runs the delivery reward follow-ups for an order. The
// caller guarantees at-most-once execution per order via the aggregate's
// reward marker; the pipeline itself never checks it.
type RewardPipeline interface {
	Run(ctx context.Context, aggregate *order.Order)
}

// DeliveryRewardPipeline is the production pipeline: loyalty points,
// referral conversion, VIP point accrual, and milestone tracking. The four
// units are isolated failure domains; one failing unit skips nothing else.
type DeliveryRewardPipeline struct {
	uowFactory CustomerUoWFactory
	loyalty    ports.LoyaltyService
	referral   ports.ReferralService
	dispatcher Dispatcher
	logger     *slog.Logger
}

func NewDeliveryRewardPipeline(
	uowFactory CustomerUoWFactory,
	loyalty ports.LoyaltyService,
	referral ports.ReferralService,
	dispatcher Dispatcher,
	logger *slog.Logger,
) DeliveryRewardPipeline {
	return DeliveryRewardPipeline{
		uowFactory: uowFactory,
		loyalty:    loyalty,
		referral:   referral,
		dispatcher: dispatcher,
		logger:     logger.With("component", "commands.DeliveryRewardPipeline"),
	}
}

// Run executes the four reward units for a first-time-delivered order.
func (p DeliveryRewardPipeline) Run(ctx context.Context, aggregate *order.Order) {
	runSideEffects(ctx, p.logger, []sideEffect{
		{name: "loyalty-points", run: func(ctx context.Context) error {
			return p.loyalty.AwardPointsForOrder(ctx, aggregate.CustomerID(), aggregate)
		}},
		{name: "referral-conversion", run: func(ctx context.Context) error {
			return p.convertReferral(ctx, aggregate)
		}},
		{name: "vip-points", run: func(ctx context.Context) error {
			return p.accrueVIPPoints(ctx, aggregate)
		}},
		{name: "milestones", run: func(ctx context.Context) error {
			return p.trackMilestones(ctx, aggregate)
		}},
	})
}

// convertReferral pays out the customer's unclaimed referral code when the
// delivered order meets the program's minimum total.
func (p DeliveryRewardPipeline) convertReferral(ctx context.Context, aggregate *order.Order) error {
	code, err := p.referral.UnclaimedCode(ctx, aggregate.CustomerID())
	if err != nil {
		return err
	}
	if code == nil || aggregate.Total().LessThan(code.MinOrderTotal) {
		return nil
	}

	if err = p.referral.GrantReward(ctx, code.Code, aggregate.CustomerID(), aggregate.ID()); err != nil {
		return err
	}
	return p.referral.MarkClaimed(ctx, code.Code, aggregate.CustomerID())
}

func (p DeliveryRewardPipeline) accrueVIPPoints(ctx context.Context, aggregate *order.Order) error {
	uow := p.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	ledger, err := uow.CustomerRepository().GetForTenant(ctx, aggregate.CustomerID(), aggregate.TenantID())
	if err != nil {
		return err
	}

	if points := ledger.AccrueVIPPoints(aggregate.Total()); points == 0 {
		return nil
	}

	if err = uow.CustomerRepository().Update(ctx, ledger); err != nil {
		return err
	}
	return uow.Commit(ctx)
}

// trackMilestones bumps the lifetime counter, then dispatches milestone and
// VIP-upgrade notifications when thresholds are hit.
func (p DeliveryRewardPipeline) trackMilestones(ctx context.Context, aggregate *order.Order) error {
	uow := p.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	ledger, err := uow.CustomerRepository().GetForTenant(ctx, aggregate.CustomerID(), aggregate.TenantID())
	if err != nil {
		return err
	}

	lifetime := ledger.RecordDeliveredOrder()
	milestone, milestoneHit := ledger.MilestoneReached()
	promoted := ledger.PromoteToVIP()

	if err = uow.CustomerRepository().Update(ctx, ledger); err != nil {
		return err
	}
	if err = uow.Commit(ctx); err != nil {
		return err
	}

	tenantID := aggregate.TenantID()

	if milestoneHit {
		_, err = p.dispatcher.Dispatch(ctx, notification.Event{
			RecipientType: notification.RecipientCustomer,
			RecipientID:   ledger.ID(),
			TenantID:      &tenantID,
			Kind:          notification.KindMilestone,
			Title:         "Milestone reached",
			Message:       fmt.Sprintf("Congratulations on your order number %d!", milestone),
			Data:          map[string]any{"lifetimeOrders": lifetime, "milestone": milestone},
			Channels:      notification.Channels{InApp: true, Email: true},
		})
		if err != nil {
			p.logger.Error("dispatch milestone notification", "error", err)
		}
	}

	if promoted {
		_, err = p.dispatcher.Dispatch(ctx, notification.Event{
			RecipientType: notification.RecipientCustomer,
			RecipientID:   ledger.ID(),
			TenantID:      &tenantID,
			Kind:          notification.KindVIPUpgrade,
			Title:         "Welcome to VIP",
			Message:       "You are now a VIP customer and earn points on every order",
			Data:          map[string]any{"lifetimeOrders": lifetime},
			Channels:      notification.Channels{InApp: true, Email: true},
		})
		if err != nil {
			p.logger.Error("dispatch vip upgrade notification", "error", err)
		}
	}

	return nil
}
