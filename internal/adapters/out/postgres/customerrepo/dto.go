// Package customerrepo provides data transfer objects and mapping functions
// for the customer reward ledger.
package customerrepo

import (
	"laundryops/internal/core/domain/model/customer"
	"laundryops/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// CustomerDTO represents the database structure for persisting customer
// aggregates.
type CustomerDTO struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	TenantID       uuid.UUID `gorm:"type:uuid;index"`
	IsVIP          bool
	RewardPoints   int
	LifetimeOrders int
}

// TableName overrides GORM's default naming convention to use "customers".
func (CustomerDTO) TableName() string {
	return "customers"
}

// fromDomain converts a customer domain aggregate to its database
// representation.
func fromDomain(aggregate *customer.Customer) CustomerDTO {
	return CustomerDTO{
		ID:             aggregate.ID().Bytes(),
		TenantID:       aggregate.TenantID().Bytes(),
		IsVIP:          aggregate.IsVIP(),
		RewardPoints:   aggregate.RewardPoints(),
		LifetimeOrders: aggregate.LifetimeOrders(),
	}
}

// toDomain converts a database DTO to a customer domain aggregate.
func toDomain(dto CustomerDTO) (*customer.Customer, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	tenantID, err := kernel.UUIDFromBytes(dto.TenantID[:])
	if err != nil {
		return nil, err
	}

	return customer.RestoreCustomer(id, tenantID, dto.IsVIP, dto.RewardPoints, dto.LifetimeOrders)
}
