package notificationrepo_test

import (
	"context"
	"testing"
	"time"

	"laundryops/internal/adapters/out/postgres/notificationrepo"
	"laundryops/internal/core/domain/model/kernel"
	"laundryops/internal/core/domain/model/notification"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// NotificationStoreIntegrationTestSuite exercises the durable notification
// store against a real PostgreSQL database.
type NotificationStoreIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	store     *notificationrepo.GormNotificationStore
}

func (suite *NotificationStoreIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2)),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(&notificationrepo.NotificationDTO{})
	suite.Require().NoError(err)

	suite.store = notificationrepo.NewGormNotificationStore(db)
}

func (suite *NotificationStoreIntegrationTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE notifications").Error
	suite.Require().NoError(err)
}

func (suite *NotificationStoreIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *NotificationStoreIntegrationTestSuite) record(recipientID kernel.UUID, ttl time.Duration) *notification.Notification {
	tenantID := kernel.NewUUID()
	event := notification.Event{
		RecipientType: notification.RecipientCustomer,
		RecipientID:   recipientID,
		TenantID:      &tenantID,
		Kind:          notification.KindOrderStatus,
		Title:         "Order update",
		Message:       "Your order is ready for pickup",
		Data:          map[string]any{"orderId": kernel.NewUUID().String()},
		Channels:      notification.Channels{InApp: true},
	}
	return notification.NewNotification(event, time.Now().UTC(), ttl)
}

func (suite *NotificationStoreIntegrationTestSuite) TestCreateAndCountUnread() {
	ctx := context.Background()
	recipientID := kernel.NewUUID()

	id, err := suite.store.Create(ctx, suite.record(recipientID, time.Hour))
	suite.Require().NoError(err)
	suite.Require().NoError(id.Validate())

	_, err = suite.store.Create(ctx, suite.record(recipientID, time.Hour))
	suite.Require().NoError(err)

	_, err = suite.store.Create(ctx, suite.record(kernel.NewUUID(), time.Hour))
	suite.Require().NoError(err)

	count, err := suite.store.CountUnread(ctx, recipientID)
	suite.Require().NoError(err)
	suite.Equal(int64(2), count)
}

func (suite *NotificationStoreIntegrationTestSuite) TestMarkRead_ScopedToRecipient() {
	ctx := context.Background()
	recipientID := kernel.NewUUID()
	otherID := kernel.NewUUID()

	mine, err := suite.store.Create(ctx, suite.record(recipientID, time.Hour))
	suite.Require().NoError(err)

	theirs, err := suite.store.Create(ctx, suite.record(otherID, time.Hour))
	suite.Require().NoError(err)

	// Marking someone else's record is a no-op, not an error
	err = suite.store.MarkRead(ctx, []kernel.UUID{mine, theirs}, recipientID)
	suite.Require().NoError(err)

	count, err := suite.store.CountUnread(ctx, recipientID)
	suite.Require().NoError(err)
	suite.Equal(int64(0), count)

	count, err = suite.store.CountUnread(ctx, otherID)
	suite.Require().NoError(err)
	suite.Equal(int64(1), count)
}

func (suite *NotificationStoreIntegrationTestSuite) TestMarkRead_EmptyIDs() {
	ctx := context.Background()

	err := suite.store.MarkRead(ctx, nil, kernel.NewUUID())
	suite.Require().NoError(err)
}

func (suite *NotificationStoreIntegrationTestSuite) TestDeleteExpired() {
	ctx := context.Background()
	recipientID := kernel.NewUUID()

	_, err := suite.store.Create(ctx, suite.record(recipientID, time.Minute))
	suite.Require().NoError(err)

	// Zero ttl leaves ExpiresAt unset, so the record never expires
	_, err = suite.store.Create(ctx, suite.record(recipientID, 0))
	suite.Require().NoError(err)

	removed, err := suite.store.DeleteExpired(ctx, time.Now().UTC().Add(2*time.Minute))
	suite.Require().NoError(err)
	suite.Equal(int64(1), removed)

	count, err := suite.store.CountUnread(ctx, recipientID)
	suite.Require().NoError(err)
	suite.Equal(int64(1), count)
}

func TestNotificationStoreIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(NotificationStoreIntegrationTestSuite))
}
