package commands_test

import (
	"context"
	"io"
	"log/slog"

	"laundryops/internal/core/application/dispatch"
	"laundryops/internal/core/application/usecases/commands"
	"laundryops/internal/core/domain/model/customer"
	"laundryops/internal/core/domain/model/kernel"
	"laundryops/internal/core/domain/model/notification"
	"laundryops/internal/core/domain/model/order"
	"laundryops/internal/core/domain/model/refund"
	"laundryops/internal/core/domain/model/staff"
	"laundryops/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) GetForTenant(ctx context.Context, id, tenantID kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) UpdatePaymentStatus(ctx context.Context, id kernel.UUID, status order.PaymentStatus, details string) error {
	args := m.Called(ctx, id, status, details)
	return args.Error(0)
}

type MockCustomerRepository struct{ mock.Mock }

func (m *MockCustomerRepository) Add(ctx context.Context, c *customer.Customer) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCustomerRepository) Update(ctx context.Context, c *customer.Customer) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCustomerRepository) GetForTenant(ctx context.Context, id, tenantID kernel.UUID) (*customer.Customer, error) {
	args := m.Called(ctx, id, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*customer.Customer), args.Error(1)
}

type MockRefundRepository struct{ mock.Mock }

func (m *MockRefundRepository) Add(ctx context.Context, r *refund.RefundRequest) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockRefundRepository) Update(ctx context.Context, r *refund.RefundRequest) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockRefundRepository) GetForTenant(ctx context.Context, id, tenantID kernel.UUID) (*refund.RefundRequest, error) {
	args := m.Called(ctx, id, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*refund.RefundRequest), args.Error(1)
}

type MockStaffRepository struct{ mock.Mock }

func (m *MockStaffRepository) Get(ctx context.Context, id kernel.UUID) (*staff.Staff, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*staff.Staff), args.Error(1)
}

func (m *MockStaffRepository) GetAdminsForTenant(ctx context.Context, tenantID kernel.UUID) ([]*staff.Staff, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*staff.Staff), args.Error(1)
}

func (m *MockStaffRepository) FindBranchManager(ctx context.Context, tenantID, branchID kernel.UUID) (*staff.Staff, error) {
	args := m.Called(ctx, tenantID, branchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*staff.Staff), args.Error(1)
}

func (m *MockStaffRepository) FindActiveByRole(ctx context.Context, tenantID *kernel.UUID, role staff.Role) (*staff.Staff, error) {
	args := m.Called(ctx, tenantID, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*staff.Staff), args.Error(1)
}

func (m *MockStaffRepository) UpdatePermissions(ctx context.Context, id kernel.UUID, permissions staff.PermissionMap) error {
	args := m.Called(ctx, id, permissions)
	return args.Error(0)
}

type MockTenantSettingsRepository struct{ mock.Mock }

func (m *MockTenantSettingsRepository) DisabledFeatures(ctx context.Context, tenantID kernel.UUID) ([]staff.Feature, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]staff.Feature), args.Error(1)
}

type MockOrderUoW struct{ mock.Mock }

func (m *MockOrderUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockCustomerUoW struct{ mock.Mock }

func (m *MockCustomerUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockCustomerUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockCustomerUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockCustomerUoW) CustomerRepository() ports.CustomerRepository {
	args := m.Called()
	return args.Get(0).(ports.CustomerRepository)
}

type MockCustomerUoWFactory struct{ mock.Mock }

func (m *MockCustomerUoWFactory) Create() commands.CustomerUoW {
	args := m.Called()
	return args.Get(0).(commands.CustomerUoW)
}

type MockRefundUoW struct{ mock.Mock }

func (m *MockRefundUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockRefundUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockRefundUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockRefundUoW) RefundRepository() ports.RefundRepository {
	args := m.Called()
	return args.Get(0).(ports.RefundRepository)
}

func (m *MockRefundUoW) StaffRepository() ports.StaffRepository {
	args := m.Called()
	return args.Get(0).(ports.StaffRepository)
}

type MockRefundUoWFactory struct{ mock.Mock }

func (m *MockRefundUoWFactory) Create() commands.RefundUoW {
	args := m.Called()
	return args.Get(0).(commands.RefundUoW)
}

type MockStaffUoW struct{ mock.Mock }

func (m *MockStaffUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockStaffUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockStaffUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockStaffUoW) StaffRepository() ports.StaffRepository {
	args := m.Called()
	return args.Get(0).(ports.StaffRepository)
}

type MockStaffUoWFactory struct{ mock.Mock }

func (m *MockStaffUoWFactory) Create() commands.StaffUoW {
	args := m.Called()
	return args.Get(0).(commands.StaffUoW)
}

type MockDispatcher struct{ mock.Mock }

func (m *MockDispatcher) Dispatch(ctx context.Context, event notification.Event) (dispatch.Result, error) {
	args := m.Called(ctx, event)
	return args.Get(0).(dispatch.Result), args.Error(1)
}

type MockRealtimePusher struct{ mock.Mock }

func (m *MockRealtimePusher) PushToRecipient(
	recipientType notification.RecipientType,
	recipientID kernel.UUID,
	payload notification.PushPayload,
) int {
	args := m.Called(recipientType, recipientID, payload)
	return args.Int(0)
}

func (m *MockRealtimePusher) BroadcastToRoom(
	tenantID *kernel.UUID,
	role staff.Role,
	payload notification.PushPayload,
) int {
	args := m.Called(tenantID, role, payload)
	return args.Int(0)
}

type MockOrderEventPublisher struct{ mock.Mock }

func (m *MockOrderEventPublisher) PublishOrderStatusChanged(ctx context.Context, event ports.OrderStatusChanged) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

type MockLoyaltyService struct{ mock.Mock }

func (m *MockLoyaltyService) AwardPointsForOrder(ctx context.Context, customerID kernel.UUID, aggregate *order.Order) error {
	args := m.Called(ctx, customerID, aggregate)
	return args.Error(0)
}

type MockReferralService struct{ mock.Mock }

func (m *MockReferralService) UnclaimedCode(ctx context.Context, customerID kernel.UUID) (*ports.ReferralCode, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ports.ReferralCode), args.Error(1)
}

func (m *MockReferralService) GrantReward(ctx context.Context, code string, customerID, orderID kernel.UUID) error {
	args := m.Called(ctx, code, customerID, orderID)
	return args.Error(0)
}

func (m *MockReferralService) MarkClaimed(ctx context.Context, code string, customerID kernel.UUID) error {
	args := m.Called(ctx, code, customerID)
	return args.Error(0)
}

type MockRewardPipeline struct{ mock.Mock }

func (m *MockRewardPipeline) Run(ctx context.Context, aggregate *order.Order) {
	m.Called(ctx, aggregate)
}
