package realtime

import (
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"laundryops/internal/core/domain/model/kernel"
	"laundryops/internal/core/domain/model/notification"
	"laundryops/internal/core/domain/model/staff"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func payloadOf(t *testing.T, frame []byte) notification.PushPayload {
	t.Helper()
	var payload notification.PushPayload
	require.NoError(t, json.Unmarshal(frame, &payload))
	return payload
}

func Test_Registry_PushToRecipient_ReachesAllConnectionsOfRecipient(t *testing.T) {
	// Arrange
	registry := NewRegistry(testLogger())
	customerID := kernel.NewUUID()

	first := NewChannelConn(4)
	second := NewChannelConn(4)
	registry.Register(notification.RecipientCustomer, customerID, first, nil, nil)
	registry.Register(notification.RecipientCustomer, customerID, second, nil, nil)

	// Act
	delivered := registry.PushToRecipient(notification.RecipientCustomer, customerID, notification.PushPayload{
		Type:      "notification",
		Timestamp: time.Now(),
	})

	// Assert
	assert.Equal(t, 2, delivered)
	assert.Equal(t, "notification", payloadOf(t, <-first.Frames()).Type)
	assert.Equal(t, "notification", payloadOf(t, <-second.Frames()).Type)
}

func Test_Registry_PushToRecipient_AfterUnregister_ReachesOnlyRemaining(t *testing.T) {
	// Arrange
	registry := NewRegistry(testLogger())
	customerID := kernel.NewUUID()

	first := NewChannelConn(4)
	second := NewChannelConn(4)
	registry.Register(notification.RecipientCustomer, customerID, first, nil, nil)
	registry.Register(notification.RecipientCustomer, customerID, second, nil, nil)

	registry.Unregister(notification.RecipientCustomer, customerID, first)

	// Act
	delivered := registry.PushToRecipient(notification.RecipientCustomer, customerID, notification.PushPayload{
		Type:      "notification",
		Timestamp: time.Now(),
	})

	// Assert
	assert.Equal(t, 1, delivered)
	assert.Len(t, second.Frames(), 1)
	assert.Equal(t, 1, registry.Size())
}

func Test_Registry_PushToRecipient_NoConnections_DeliversZero(t *testing.T) {
	// Arrange
	registry := NewRegistry(testLogger())

	// Act
	delivered := registry.PushToRecipient(notification.RecipientCustomer, kernel.NewUUID(), notification.PushPayload{
		Type:      "notification",
		Timestamp: time.Now(),
	})

	// Assert
	assert.Equal(t, 0, delivered)
}

func Test_Registry_PushToRecipient_EvictsDeadConnection(t *testing.T) {
	// Arrange
	registry := NewRegistry(testLogger())
	customerID := kernel.NewUUID()

	dead := NewChannelConn(4)
	live := NewChannelConn(4)
	registry.Register(notification.RecipientCustomer, customerID, dead, nil, nil)
	registry.Register(notification.RecipientCustomer, customerID, live, nil, nil)
	require.NoError(t, dead.Close())

	// Act
	delivered := registry.PushToRecipient(notification.RecipientCustomer, customerID, notification.PushPayload{
		Type:      "notification",
		Timestamp: time.Now(),
	})

	// Assert
	assert.Equal(t, 1, delivered)
	assert.Equal(t, 1, registry.Size())
}

func Test_Registry_BroadcastToRoom_MatchesRoleWithinTenant(t *testing.T) {
	// Arrange
	registry := NewRegistry(testLogger())
	tenantID := kernel.NewUUID()
	otherTenantID := kernel.NewUUID()
	adminRole := staff.RoleTenantAdmin
	branchRole := staff.RoleBranchAdmin

	admin := NewChannelConn(4)
	otherTenantAdmin := NewChannelConn(4)
	branchAdmin := NewChannelConn(4)
	customer := NewChannelConn(4)

	registry.Register(notification.RecipientStaff, kernel.NewUUID(), admin, &tenantID, &adminRole)
	registry.Register(notification.RecipientStaff, kernel.NewUUID(), otherTenantAdmin, &otherTenantID, &adminRole)
	registry.Register(notification.RecipientStaff, kernel.NewUUID(), branchAdmin, &tenantID, &branchRole)
	registry.Register(notification.RecipientCustomer, kernel.NewUUID(), customer, &tenantID, nil)

	// Act
	delivered := registry.BroadcastToRoom(&tenantID, staff.RoleTenantAdmin, notification.PushPayload{
		Type:      "notification",
		Timestamp: time.Now(),
	})

	// Assert
	assert.Equal(t, 1, delivered)
	assert.Len(t, admin.Frames(), 1)
	assert.Len(t, otherTenantAdmin.Frames(), 0)
	assert.Len(t, branchAdmin.Frames(), 0)
	assert.Len(t, customer.Frames(), 0)
}

func Test_Registry_BroadcastToRoom_NilTenant_SpansTenants(t *testing.T) {
	// Arrange
	registry := NewRegistry(testLogger())
	firstTenantID := kernel.NewUUID()
	operatorRole := staff.RolePlatformOperator

	scoped := NewChannelConn(4)
	unscoped := NewChannelConn(4)
	registry.Register(notification.RecipientStaff, kernel.NewUUID(), scoped, &firstTenantID, &operatorRole)
	registry.Register(notification.RecipientStaff, kernel.NewUUID(), unscoped, nil, &operatorRole)

	// Act
	delivered := registry.BroadcastToRoom(nil, staff.RolePlatformOperator, notification.PushPayload{
		Type:      "notification",
		Timestamp: time.Now(),
	})

	// Assert
	assert.Equal(t, 2, delivered)
}

func Test_Registry_Heartbeat_EvictsDeadConnections(t *testing.T) {
	// Arrange
	registry := NewRegistry(testLogger())

	dead := NewChannelConn(4)
	live := NewChannelConn(4)
	registry.Register(notification.RecipientCustomer, kernel.NewUUID(), dead, nil, nil)
	registry.Register(notification.RecipientCustomer, kernel.NewUUID(), live, nil, nil)
	require.NoError(t, dead.Close())

	// Act
	alive := registry.Heartbeat(time.Now())

	// Assert
	assert.Equal(t, 1, alive)
	assert.Equal(t, 1, registry.Size())

	frame := <-live.Frames()
	var heartbeat map[string]any
	require.NoError(t, json.Unmarshal(frame, &heartbeat))
	assert.Equal(t, "heartbeat", heartbeat["type"])
}

func Test_ChannelConn_Send_FullBufferFails(t *testing.T) {
	// Arrange
	conn := NewChannelConn(1)
	require.NoError(t, conn.Send([]byte("first")))

	// Act
	err := conn.Send([]byte("second"))

	// Assert
	assert.ErrorIs(t, err, ErrSendBufferFull)
}

func Test_ChannelConn_Send_AfterCloseFails(t *testing.T) {
	// Arrange
	conn := NewChannelConn(1)
	require.NoError(t, conn.Close())

	// Act
	err := conn.Send([]byte("frame"))

	// Assert
	assert.ErrorIs(t, err, ErrConnClosed)
}
