package postgres

import (
	"laundryops/internal/adapters/out/postgres/customerrepo"
	"laundryops/internal/adapters/out/postgres/notificationrepo"
	"laundryops/internal/adapters/out/postgres/orderrepo"
	"laundryops/internal/adapters/out/postgres/refundrepo"
	"laundryops/internal/adapters/out/postgres/staffrepo"

	"gorm.io/gorm"
)

// AutoMigrate creates or updates every table the adapters persist to.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&customerrepo.CustomerDTO{},
		&refundrepo.RefundRequestDTO{},
		&staffrepo.StaffDTO{},
		&staffrepo.TenantSettingsDTO{},
		&notificationrepo.NotificationDTO{},
	)
}
