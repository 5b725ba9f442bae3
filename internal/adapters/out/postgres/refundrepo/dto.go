// Package refundrepo provides data transfer objects and mapping functions
// for refund request persistence.
package refundrepo

import (
	"laundryops/internal/core/domain/model/kernel"
	"laundryops/internal/core/domain/model/refund"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RefundRequestDTO represents the database structure for persisting refund
// requests.
type RefundRequestDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	TenantID   uuid.UUID `gorm:"type:uuid;index"`
	OrderID    uuid.UUID `gorm:"type:uuid;index"`
	CustomerID uuid.UUID `gorm:"type:uuid"`

	Amount decimal.Decimal `gorm:"type:numeric(12,2)"`
	Status int             `gorm:"index"`

	RequestedBy uuid.UUID  `gorm:"type:uuid"`
	ApprovedBy  *uuid.UUID `gorm:"type:uuid"`
	RejectedBy  *uuid.UUID `gorm:"type:uuid"`
	EscalatedTo *uuid.UUID `gorm:"type:uuid"`
	ProcessedBy *uuid.UUID `gorm:"type:uuid"`

	Reason        string
	TransactionID string
}

// TableName overrides GORM's default naming convention to use
// "refund_requests".
func (RefundRequestDTO) TableName() string {
	return "refund_requests"
}

// fromDomain converts a refund request aggregate to its database
// representation.
func fromDomain(aggregate *refund.RefundRequest) RefundRequestDTO {
	return RefundRequestDTO{
		ID:            aggregate.ID().Bytes(),
		TenantID:      aggregate.TenantID().Bytes(),
		OrderID:       aggregate.OrderID().Bytes(),
		CustomerID:    aggregate.CustomerID().Bytes(),
		Amount:        aggregate.Amount(),
		Status:        int(aggregate.Status()),
		RequestedBy:   aggregate.RequestedBy().Bytes(),
		ApprovedBy:    optionalUUID(aggregate.ApprovedBy()),
		RejectedBy:    optionalUUID(aggregate.RejectedBy()),
		EscalatedTo:   optionalUUID(aggregate.EscalatedTo()),
		ProcessedBy:   optionalUUID(aggregate.ProcessedBy()),
		Reason:        aggregate.Reason(),
		TransactionID: aggregate.TransactionID(),
	}
}

// toDomain converts a database DTO to a refund request aggregate.
func toDomain(dto RefundRequestDTO) (*refund.RefundRequest, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	tenantID, err := kernel.UUIDFromBytes(dto.TenantID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}
	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}
	requestedBy, err := kernel.UUIDFromBytes(dto.RequestedBy[:])
	if err != nil {
		return nil, err
	}

	approvedBy, err := optionalKernelUUID(dto.ApprovedBy)
	if err != nil {
		return nil, err
	}
	rejectedBy, err := optionalKernelUUID(dto.RejectedBy)
	if err != nil {
		return nil, err
	}
	escalatedTo, err := optionalKernelUUID(dto.EscalatedTo)
	if err != nil {
		return nil, err
	}
	processedBy, err := optionalKernelUUID(dto.ProcessedBy)
	if err != nil {
		return nil, err
	}

	return refund.RestoreRefundRequest(
		id, tenantID, orderID, customerID,
		dto.Amount,
		refund.Status(dto.Status),
		requestedBy,
		approvedBy, rejectedBy, escalatedTo, processedBy,
		dto.Reason, dto.TransactionID,
	)
}

func optionalUUID(id *kernel.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	raw := id.Bytes()
	return &raw
}

func optionalKernelUUID(id *uuid.UUID) (*kernel.UUID, error) {
	if id == nil {
		return nil, nil
	}
	parsed, err := kernel.UUIDFromBytes((*id)[:])
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}
