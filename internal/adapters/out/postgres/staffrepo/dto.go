// Package staffrepo provides data transfer objects and mapping functions for
// administrative users and the tenant feature-flag settings that drive
// permission recomputation.
package staffrepo

import (
	"encoding/json"

	"laundryops/internal/core/domain/model/kernel"
	"laundryops/internal/core/domain/model/staff"

	"github.com/google/uuid"
)

// StaffDTO represents the database structure for persisting staff members.
// The effective permission map is stored as a jsonb document.
type StaffDTO struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	TenantID    *uuid.UUID `gorm:"type:uuid;index"`
	BranchID    *uuid.UUID `gorm:"type:uuid;index"`
	Role        string     `gorm:"index"`
	IsActive    bool
	Permissions []byte `gorm:"type:jsonb"`
}

// TableName overrides GORM's default naming convention to use "staff".
func (StaffDTO) TableName() string {
	return "staff"
}

// fromDomain converts a staff aggregate to its database representation.
func fromDomain(aggregate *staff.Staff) (StaffDTO, error) {
	permissionsRaw, err := json.Marshal(aggregate.Permissions())
	if err != nil {
		return StaffDTO{}, err
	}

	var tenantID *uuid.UUID
	if id := aggregate.TenantID(); id != nil {
		raw := id.Bytes()
		tenantID = &raw
	}

	var branchID *uuid.UUID
	if id := aggregate.BranchID(); id != nil {
		raw := id.Bytes()
		branchID = &raw
	}

	return StaffDTO{
		ID:          aggregate.ID().Bytes(),
		TenantID:    tenantID,
		BranchID:    branchID,
		Role:        aggregate.Role().String(),
		IsActive:    aggregate.IsActive(),
		Permissions: permissionsRaw,
	}, nil
}

// toDomain converts a database DTO to a staff aggregate.
func toDomain(dto StaffDTO) (*staff.Staff, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var tenantID *kernel.UUID
	if dto.TenantID != nil {
		parsed, tenantErr := kernel.UUIDFromBytes((*dto.TenantID)[:])
		if tenantErr != nil {
			return nil, tenantErr
		}
		tenantID = &parsed
	}

	var branchID *kernel.UUID
	if dto.BranchID != nil {
		parsed, branchErr := kernel.UUIDFromBytes((*dto.BranchID)[:])
		if branchErr != nil {
			return nil, branchErr
		}
		branchID = &parsed
	}

	role, err := staff.ParseRole(dto.Role)
	if err != nil {
		return nil, err
	}

	var permissions staff.PermissionMap
	if len(dto.Permissions) > 0 {
		if err = json.Unmarshal(dto.Permissions, &permissions); err != nil {
			return nil, err
		}
	}

	return staff.RestoreStaff(id, tenantID, branchID, role, dto.IsActive, permissions)
}
