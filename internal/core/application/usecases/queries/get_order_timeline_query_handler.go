package queries

import (
	"context"
	"encoding/json"

	"laundryops/internal/core/domain/model/kernel"
	"laundryops/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrderTimelineQueryHandler reads an order row and unpacks its jsonb
// history column into timeline entries.
type GetOrderTimelineQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderTimelineQueryHandler creates a handler for order timeline queries.
func NewGetOrderTimelineQueryHandler(db *gorm.DB) GetOrderTimelineQueryHandler {
	return GetOrderTimelineQueryHandler{db: db}
}

// Handle returns the order's state and history.
// Returns errs.ObjectNotFoundError when the order is absent or belongs to
// another tenant.
func (h GetOrderTimelineQueryHandler) Handle(
	ctx context.Context,
	query GetOrderTimelineQuery,
) (GetOrderTimelineQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderTimelineQueryResponse{}, err
	}

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			status,
			payment_status,
			total,
			history
		FROM orders
		WHERE id = ? AND tenant_id = ?
	`, query.OrderID().Bytes(), query.TenantID().Bytes()).Row()

	var id uuid.UUID
	var resp GetOrderTimelineQueryResponse
	var historyRaw []byte

	err := row.Scan(&id, &resp.Status, &resp.PaymentStatus, &resp.Total, &historyRaw)
	if err != nil {
		return GetOrderTimelineQueryResponse{}, errs.NewObjectNotFoundErrorWithCause(
			"order", query.OrderID().String(), err)
	}

	orderID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return GetOrderTimelineQueryResponse{}, err
	}
	resp.ID = orderID

	if len(historyRaw) > 0 {
		if err = json.Unmarshal(historyRaw, &resp.History); err != nil {
			return GetOrderTimelineQueryResponse{}, err
		}
	}

	return resp, nil
}
