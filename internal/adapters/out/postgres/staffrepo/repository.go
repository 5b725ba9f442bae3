package staffrepo

import (
	"context"
	"encoding/json"
	"errors"

	"laundryops/internal/core/domain/model/kernel"
	"laundryops/internal/core/domain/model/staff"
	"laundryops/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormStaffRepository implements StaffRepository using GORM.
type GormStaffRepository struct {
	db *gorm.DB
}

// NewGormStaffRepository creates a new GORM staff repository.
func NewGormStaffRepository(db *gorm.DB) *GormStaffRepository {
	return &GormStaffRepository{db: db}
}

// Get retrieves a staff member by ID.
func (r *GormStaffRepository) Get(ctx context.Context, id kernel.UUID) (*staff.Staff, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto StaffDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("staff", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAdminsForTenant retrieves every active admin-class staff member of a
// tenant.
func (r *GormStaffRepository) GetAdminsForTenant(ctx context.Context, tenantID kernel.UUID) ([]*staff.Staff, error) {
	if err := tenantID.Validate(); err != nil {
		return nil, err
	}

	var dtos []StaffDTO
	err := r.db.WithContext(ctx).
		Find(&dtos, "tenant_id = ? AND is_active = TRUE", tenantID.Bytes()).Error
	if err != nil {
		return nil, err
	}

	admins := make([]*staff.Staff, 0, len(dtos))
	for _, dto := range dtos {
		member, dtoErr := toDomain(dto)
		if dtoErr != nil {
			return nil, dtoErr
		}
		if !member.Role().IsAdminClass() {
			continue
		}
		admins = append(admins, member)
	}

	return admins, nil
}

// FindBranchManager retrieves the active branch admin managing the branch.
func (r *GormStaffRepository) FindBranchManager(
	ctx context.Context,
	tenantID, branchID kernel.UUID,
) (*staff.Staff, error) {
	if err := tenantID.Validate(); err != nil {
		return nil, err
	}
	if err := branchID.Validate(); err != nil {
		return nil, err
	}

	var dto StaffDTO
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND branch_id = ? AND role = ? AND is_active = TRUE",
			tenantID.Bytes(), branchID.Bytes(), staff.RoleBranchAdmin.String()).
		First(&dto).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("branch manager", branchID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// FindActiveByRole retrieves the first active staff member holding the role.
// A nil tenantID drops the tenant filter, which is how platform operators
// are resolved during refund escalation.
func (r *GormStaffRepository) FindActiveByRole(
	ctx context.Context,
	tenantID *kernel.UUID,
	role staff.Role,
) (*staff.Staff, error) {
	if err := role.Validate(); err != nil {
		return nil, err
	}

	query := r.db.WithContext(ctx).
		Where("role = ? AND is_active = TRUE", role.String())
	if tenantID != nil {
		query = query.Where("tenant_id = ?", tenantID.Bytes())
	}

	var dto StaffDTO
	if err := query.First(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("staff", role.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// UpdatePermissions persists a recomputed effective permission map.
func (r *GormStaffRepository) UpdatePermissions(
	ctx context.Context,
	id kernel.UUID,
	permissions staff.PermissionMap,
) error {
	if err := id.Validate(); err != nil {
		return err
	}

	permissionsRaw, err := json.Marshal(permissions)
	if err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Model(&StaffDTO{}).
		Where("id = ?", id.Bytes()).
		Update("permissions", permissionsRaw)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("staff", id.String())
	}

	return nil
}
