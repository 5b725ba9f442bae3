package staffrepo

import (
	"context"
	"encoding/json"
	"errors"

	"laundryops/internal/core/domain/model/kernel"
	"laundryops/internal/core/domain/model/staff"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TenantSettingsDTO holds a tenant's feature flags. The disabled set is a
// jsonb array of feature names.
type TenantSettingsDTO struct {
	TenantID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	DisabledFeatures []byte    `gorm:"type:jsonb"`
}

// TableName overrides GORM's default naming convention to use
// "tenant_settings".
func (TenantSettingsDTO) TableName() string {
	return "tenant_settings"
}

// GormTenantSettingsRepository implements TenantSettingsRepository using GORM.
// Settings are read outside command transactions; a missing row means no
// features are disabled.
type GormTenantSettingsRepository struct {
	db *gorm.DB
}

// NewGormTenantSettingsRepository creates a new GORM tenant settings
// repository.
func NewGormTenantSettingsRepository(db *gorm.DB) *GormTenantSettingsRepository {
	return &GormTenantSettingsRepository{db: db}
}

// DisabledFeatures returns the features currently switched off for a tenant.
func (r *GormTenantSettingsRepository) DisabledFeatures(
	ctx context.Context,
	tenantID kernel.UUID,
) ([]staff.Feature, error) {
	if err := tenantID.Validate(); err != nil {
		return nil, err
	}

	var dto TenantSettingsDTO
	err := r.db.WithContext(ctx).First(&dto, "tenant_id = ?", tenantID.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	var features []staff.Feature
	if len(dto.DisabledFeatures) > 0 {
		if err = json.Unmarshal(dto.DisabledFeatures, &features); err != nil {
			return nil, err
		}
	}

	return features, nil
}
