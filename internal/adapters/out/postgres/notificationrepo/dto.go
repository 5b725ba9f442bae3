// Package notificationrepo persists durable notification records. The store
// runs outside command transactions: losing a record must never roll back
// the business change that produced it.
package notificationrepo

import (
	"encoding/json"
	"time"

	"laundryops/internal/core/domain/model/notification"

	"github.com/google/uuid"
)

// NotificationDTO represents the database structure for persisting
// notification records. Payload data and channel flags are stored as jsonb.
type NotificationDTO struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey"`
	RecipientType string     `gorm:"index:idx_notifications_recipient"`
	RecipientID   uuid.UUID  `gorm:"type:uuid;index:idx_notifications_recipient"`
	TenantID      *uuid.UUID `gorm:"type:uuid;index"`

	Kind    string
	Title   string
	Message string

	Data     []byte `gorm:"type:jsonb"`
	Channels []byte `gorm:"type:jsonb"`

	IsRead    bool
	ReadAt    *time.Time
	CreatedAt time.Time  `gorm:"index"`
	ExpiresAt *time.Time `gorm:"index"`
}

// TableName overrides GORM's default naming convention to use
// "notifications".
func (NotificationDTO) TableName() string {
	return "notifications"
}

// fromDomain converts a notification record to its database representation.
func fromDomain(record *notification.Notification) (NotificationDTO, error) {
	var dataRaw []byte
	if record.Data != nil {
		raw, err := json.Marshal(record.Data)
		if err != nil {
			return NotificationDTO{}, err
		}
		dataRaw = raw
	}

	channelsRaw, err := json.Marshal(record.Channels)
	if err != nil {
		return NotificationDTO{}, err
	}

	var tenantID *uuid.UUID
	if record.TenantID != nil {
		raw := record.TenantID.Bytes()
		tenantID = &raw
	}

	return NotificationDTO{
		ID:            record.ID.Bytes(),
		RecipientType: string(record.RecipientType),
		RecipientID:   record.RecipientID.Bytes(),
		TenantID:      tenantID,
		Kind:          string(record.Kind),
		Title:         record.Title,
		Message:       record.Message,
		Data:          dataRaw,
		Channels:      channelsRaw,
		IsRead:        record.IsRead,
		ReadAt:        record.ReadAt,
		CreatedAt:     record.CreatedAt,
		ExpiresAt:     record.ExpiresAt,
	}, nil
}
