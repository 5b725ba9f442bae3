package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"laundryops/internal/core/domain/model/kernel"
	"laundryops/internal/core/domain/model/notification"
	"laundryops/internal/core/domain/model/order"
	"laundryops/internal/core/domain/model/staff"
	"laundryops/internal/core/ports"
)

// statusNotificationText maps a reached status to the customer-facing
// notification title and message. Every status reachable through a
// transition has copy here.
func statusNotificationText(s order.Status) (title, message string, ok bool) {
	switch s {
	case order.AssignedToBranch:
		return "Order received", "Your order has been received by the branch", true
	case order.AssignedToLogisticsPickup:
		return "Pickup scheduled", "A pickup partner has been assigned to collect your laundry", true
	case order.AssignedToLogisticsDelivery:
		return "Delivery scheduled", "A delivery partner has been assigned to your order", true
	case order.Picked:
		return "Order picked up", "Your laundry has been picked up", true
	case order.InProcess:
		return "Order in process", "Your laundry is being processed", true
	case order.Ready:
		return "Order ready", "Your order is ready", true
	case order.OutForDelivery:
		return "Out for delivery", "Your order is on its way", true
	case order.Delivered:
		return "Order delivered", "Your order has been delivered. Thank you!", true
	case order.Cancelled:
		return "Order cancelled", "Your order has been cancelled", true
	default:
		return "", "", false
	}
}

// TransitionOrderCommandHandler orchestrates an order status transition:
// the aggregate mutation and persistence commit first, then the follow-ups
// run as isolated side effects that can never undo the transition.
type TransitionOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	staffRepo  ports.StaffRepository
	rewards    RewardPipeline
	dispatcher Dispatcher
	pusher     ports.RealtimePusher
	publisher  ports.OrderEventPublisher
	logger     *slog.Logger
	now        func() time.Time
}

// NewTransitionOrderCommandHandler creates a handler for order transitions.
// staffRepo resolves the branch manager notified on branch assignment.
func NewTransitionOrderCommandHandler(
	uowFactory OrderUoWFactory,
	staffRepo ports.StaffRepository,
	rewards RewardPipeline,
	dispatcher Dispatcher,
	pusher ports.RealtimePusher,
	publisher ports.OrderEventPublisher,
	logger *slog.Logger,
) TransitionOrderCommandHandler {
	return TransitionOrderCommandHandler{
		uowFactory: uowFactory,
		staffRepo:  staffRepo,
		rewards:    rewards,
		dispatcher: dispatcher,
		pusher:     pusher,
		publisher:  publisher,
		logger:     logger.With("component", "commands.TransitionOrderCommandHandler"),
		now:        time.Now,
	}
}

// WithClock overrides the handler clock.
func (h TransitionOrderCommandHandler) WithClock(now func() time.Time) TransitionOrderCommandHandler {
	h.now = now
	return h
}

// Handle processes the transition command.
//
// Inside the transaction: load the order scoped by tenant, move it through
// the status guard table, and set the reward marker when the move reaches
// Delivered for the first time. After commit: derive the payment-status
// change, notify, run the reward pipeline, push the live order event, and
// publish the integration event. Each follow-up failure is logged and
// swallowed; the transition stands.
func (h TransitionOrderCommandHandler) Handle(ctx context.Context, command TransitionOrderCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate, err := uow.OrderRepository().GetForTenant(ctx, command.OrderID(), command.TenantID())
	if err != nil {
		return err
	}

	oldStatus := aggregate.Status()
	now := h.now().UTC()

	if err = aggregate.TransitionTo(command.NextStatus(), command.ActorID(), command.Notes(), now); err != nil {
		return err
	}

	if command.NextStatus() == order.AssignedToBranch {
		if err = aggregate.AssignBranch(*command.BranchID()); err != nil {
			return err
		}
	}

	firstDelivery := false
	if aggregate.Status() == order.Delivered {
		firstDelivery = aggregate.MarkRewardsGranted(now)
	}

	if err = uow.OrderRepository().Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	runSideEffects(ctx, h.logger, h.sideEffects(aggregate, oldStatus, command.ActorID(), firstDelivery, now))
	return nil
}

func (h TransitionOrderCommandHandler) sideEffects(
	aggregate *order.Order,
	oldStatus order.Status,
	actorID kernel.UUID,
	firstDelivery bool,
	at time.Time,
) []sideEffect {
	newStatus := aggregate.Status()
	tenantID := aggregate.TenantID()

	effects := []sideEffect{
		{name: "payment-derivation", run: func(ctx context.Context) error {
			status, details, changed := order.DerivePaymentChange(
				newStatus, aggregate.PaymentStatus(), aggregate.PaymentMethod())
			if !changed {
				return nil
			}
			return h.applyPaymentStatus(ctx, aggregate, status, details)
		}},
		{name: "customer-notification", run: func(ctx context.Context) error {
			title, message, ok := statusNotificationText(newStatus)
			if !ok {
				return nil
			}
			kind := notification.KindOrderStatus
			if newStatus == order.Cancelled {
				kind = notification.KindOrderCancelled
			}
			_, err := h.dispatcher.Dispatch(ctx, notification.Event{
				RecipientType: notification.RecipientCustomer,
				RecipientID:   aggregate.CustomerID(),
				TenantID:      &tenantID,
				Kind:          kind,
				Title:         title,
				Message:       message,
				Data: map[string]any{
					"orderId":   aggregate.ID().String(),
					"oldStatus": oldStatus.String(),
					"newStatus": newStatus.String(),
				},
				Channels: notification.Channels{InApp: true},
			})
			return err
		}},
	}

	if newStatus == order.AssignedToBranch && aggregate.BranchID() != nil {
		branchID := *aggregate.BranchID()
		effects = append(effects, sideEffect{
			name: "branch-manager-notification",
			run: func(ctx context.Context) error {
				manager, err := h.staffRepo.FindBranchManager(ctx, tenantID, branchID)
				if err != nil {
					return err
				}
				_, err = h.dispatcher.Dispatch(ctx, notification.Event{
					RecipientType: notification.RecipientStaff,
					RecipientID:   manager.ID(),
					TenantID:      &tenantID,
					Kind:          notification.KindBranchAssignment,
					Title:         "New order assigned",
					Message:       fmt.Sprintf("Order %s was assigned to your branch", aggregate.ID()),
					Data: map[string]any{
						"orderId":  aggregate.ID().String(),
						"branchId": branchID.String(),
					},
					Channels: notification.Channels{InApp: true},
				})
				return err
			},
		})
	}

	if firstDelivery {
		effects = append(effects, sideEffect{
			name: "reward-pipeline",
			run: func(ctx context.Context) error {
				h.rewards.Run(ctx, aggregate)
				return nil
			},
		})
	}

	effects = append(effects,
		sideEffect{name: "realtime-order-event", run: func(ctx context.Context) error {
			payload := notification.PushPayload{
				Type: "order_status_changed",
				Event: map[string]any{
					"orderId":   aggregate.ID().String(),
					"oldStatus": oldStatus.String(),
					"newStatus": newStatus.String(),
				},
				Timestamp: at,
			}
			h.pusher.PushToRecipient(notification.RecipientCustomer, aggregate.CustomerID(), payload)
			h.pusher.BroadcastToRoom(&tenantID, staff.RoleTenantAdmin, payload)
			return nil
		}},
		sideEffect{name: "publish-order-event", run: func(ctx context.Context) error {
			return h.publisher.PublishOrderStatusChanged(ctx, ports.OrderStatusChanged{
				OrderID:   aggregate.ID(),
				TenantID:  tenantID,
				OldStatus: oldStatus.String(),
				NewStatus: newStatus.String(),
				ActorID:   actorID,
				At:        at,
			})
		}},
	)

	return effects
}

// applyPaymentStatus persists the derived payment change in its own
// transaction and records it on the in-memory aggregate.
func (h TransitionOrderCommandHandler) applyPaymentStatus(
	ctx context.Context,
	aggregate *order.Order,
	status order.PaymentStatus,
	details string,
) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.OrderRepository().UpdatePaymentStatus(ctx, aggregate.ID(), status, details); err != nil {
		return err
	}
	if err := uow.Commit(ctx); err != nil {
		return err
	}

	return aggregate.ApplyPaymentStatus(status)
}
