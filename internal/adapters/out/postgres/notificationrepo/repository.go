package notificationrepo

import (
	"context"
	"time"

	"laundryops/internal/core/domain/model/kernel"
	"laundryops/internal/core/domain/model/notification"
	"laundryops/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormNotificationStore implements NotificationStore using GORM.
type GormNotificationStore struct {
	db *gorm.DB
}

// NewGormNotificationStore creates a new GORM notification store.
func NewGormNotificationStore(db *gorm.DB) *GormNotificationStore {
	return &GormNotificationStore{db: db}
}

// Create persists a notification record and returns its id.
func (s *GormNotificationStore) Create(
	ctx context.Context,
	record *notification.Notification,
) (kernel.UUID, error) {
	if record == nil {
		return kernel.UUID{}, errs.NewValueIsRequiredError("notification record")
	}

	dto, err := fromDomain(record)
	if err != nil {
		return kernel.UUID{}, err
	}

	if err = s.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return kernel.UUID{}, err
	}

	return record.ID, nil
}

// MarkRead marks the given notifications read for the recipient. Records
// owned by other recipients are left untouched rather than reported.
func (s *GormNotificationStore) MarkRead(
	ctx context.Context,
	ids []kernel.UUID,
	recipientID kernel.UUID,
) error {
	if err := recipientID.Validate(); err != nil {
		return err
	}
	if len(ids) == 0 {
		return nil
	}

	rawIDs := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		rawIDs = append(rawIDs, id.Bytes())
	}

	now := time.Now().UTC()
	return s.db.WithContext(ctx).Model(&NotificationDTO{}).
		Where("id IN ? AND recipient_id = ? AND is_read = FALSE", rawIDs, recipientID.Bytes()).
		Updates(map[string]any{
			"is_read": true,
			"read_at": now,
		}).Error
}

// CountUnread returns the number of unread, unexpired records for a
// recipient.
func (s *GormNotificationStore) CountUnread(
	ctx context.Context,
	recipientID kernel.UUID,
) (int64, error) {
	if err := recipientID.Validate(); err != nil {
		return 0, err
	}

	var count int64
	err := s.db.WithContext(ctx).Model(&NotificationDTO{}).
		Where("recipient_id = ? AND is_read = FALSE", recipientID.Bytes()).
		Where("expires_at IS NULL OR expires_at > NOW()").
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}

// DeleteExpired removes records whose expiry passed before now and reports
// how many were removed.
func (s *GormNotificationStore) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	result := s.db.WithContext(ctx).
		Where("expires_at IS NOT NULL AND expires_at <= ?", now).
		Delete(&NotificationDTO{})
	if result.Error != nil {
		return 0, result.Error
	}

	return result.RowsAffected, nil
}
