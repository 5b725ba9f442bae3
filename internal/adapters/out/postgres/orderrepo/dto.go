// Package orderrepo provides data transfer objects and mapping functions for
// order persistence. Enums are stored in their wire string form so raw read
// queries return the same values the API exposes, and the status history is
// kept as a jsonb document on the order row.
package orderrepo

import (
	"encoding/json"
	"time"

	"laundryops/internal/core/domain/model/kernel"
	"laundryops/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO represents the database structure for persisting order aggregates.
type OrderDTO struct {
	ID                 uuid.UUID  `gorm:"type:uuid;primaryKey"`
	TenantID           uuid.UUID  `gorm:"type:uuid;index"`
	CustomerID         uuid.UUID  `gorm:"type:uuid;index"`
	BranchID           *uuid.UUID `gorm:"type:uuid"`
	LogisticsPartnerID *uuid.UUID `gorm:"type:uuid"`

	Total          decimal.Decimal `gorm:"type:numeric(12,2)"`
	PaymentMethod  string
	PaymentStatus  string
	PaymentDetails string

	Status  string `gorm:"index"`
	History []byte `gorm:"type:jsonb"`

	RewardsGrantedAt *time.Time
}

// TableName overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// statusChangeDTO is the jsonb wire form of one history entry. The field
// names are shared with the timeline read query.
type statusChangeDTO struct {
	Status  string    `json:"status"`
	ActorID string    `json:"actorId"`
	Notes   string    `json:"notes,omitempty"`
	At      time.Time `json:"at"`
}

// fromDomain converts an order domain aggregate to its database representation.
func fromDomain(aggregate *order.Order) (OrderDTO, error) {
	history := make([]statusChangeDTO, 0, len(aggregate.StatusHistory()))
	for _, change := range aggregate.StatusHistory() {
		history = append(history, statusChangeDTO{
			Status:  change.Status.String(),
			ActorID: change.ActorID.String(),
			Notes:   change.Notes,
			At:      change.At,
		})
	}

	historyRaw, err := json.Marshal(history)
	if err != nil {
		return OrderDTO{}, err
	}

	return OrderDTO{
		ID:                 aggregate.ID().Bytes(),
		TenantID:           aggregate.TenantID().Bytes(),
		CustomerID:         aggregate.CustomerID().Bytes(),
		BranchID:           optionalUUID(aggregate.BranchID()),
		LogisticsPartnerID: optionalUUID(aggregate.LogisticsPartnerID()),
		Total:              aggregate.Total(),
		PaymentMethod:      aggregate.PaymentMethod().String(),
		PaymentStatus:      aggregate.PaymentStatus().String(),
		Status:             aggregate.Status().String(),
		History:            historyRaw,
		RewardsGrantedAt:   aggregate.RewardsGrantedAt(),
	}, nil
}

// toDomain converts a database DTO to an order domain aggregate.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	tenantID, err := kernel.UUIDFromBytes(dto.TenantID[:])
	if err != nil {
		return nil, err
	}
	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}

	branchID, err := optionalKernelUUID(dto.BranchID)
	if err != nil {
		return nil, err
	}
	logisticsPartnerID, err := optionalKernelUUID(dto.LogisticsPartnerID)
	if err != nil {
		return nil, err
	}

	method, err := order.ParsePaymentMethod(dto.PaymentMethod)
	if err != nil {
		return nil, err
	}
	paymentStatus, err := order.ParsePaymentStatus(dto.PaymentStatus)
	if err != nil {
		return nil, err
	}
	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	var historyDTOs []statusChangeDTO
	if len(dto.History) > 0 {
		if err = json.Unmarshal(dto.History, &historyDTOs); err != nil {
			return nil, err
		}
	}

	history := make([]order.StatusChange, 0, len(historyDTOs))
	for _, entry := range historyDTOs {
		entryStatus, entryErr := order.ParseStatus(entry.Status)
		if entryErr != nil {
			return nil, entryErr
		}
		actorID, entryErr := kernel.UUIDFromString(entry.ActorID)
		if entryErr != nil {
			return nil, entryErr
		}
		history = append(history, order.StatusChange{
			Status:  entryStatus,
			ActorID: actorID,
			Notes:   entry.Notes,
			At:      entry.At,
		})
	}

	return order.RestoreOrder(
		id, tenantID, customerID,
		branchID, logisticsPartnerID,
		dto.Total,
		method,
		paymentStatus,
		status,
		history,
		dto.RewardsGrantedAt,
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
