// Package http is the inbound REST and SSE adapter. It translates requests
// into commands and queries and maps their errors onto status codes; no
// business rules live here.
package http

import (
	"net/http"
	"strconv"

	"laundryops/internal/core/application/usecases/commands"
	"laundryops/internal/core/application/usecases/queries"
	"laundryops/internal/core/domain/model/kernel"
	"laundryops/internal/core/domain/model/order"
	"laundryops/internal/core/ports"
	"laundryops/internal/realtime"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// Server wires HTTP handlers to application use cases.
type Server struct {
	transitionOrder commands.TransitionOrderCommandHandler

	requestRefund  commands.RequestRefundCommandHandler
	approveRefund  commands.ApproveRefundCommandHandler
	rejectRefund   commands.RejectRefundCommandHandler
	escalateRefund commands.EscalateRefundCommandHandler
	processRefund  commands.ProcessRefundCommandHandler

	syncUserPermissions    commands.SyncUserPermissionsCommandHandler
	syncTenancyPermissions commands.SyncTenancyPermissionsCommandHandler

	unreadNotifications queries.GetUnreadNotificationsQueryHandler
	orderTimeline       queries.GetOrderTimelineQueryHandler

	store    ports.NotificationStore
	registry *realtime.Registry
}

// Deps carries everything the server exposes over HTTP.
type Deps struct {
	TransitionOrder commands.TransitionOrderCommandHandler

	RequestRefund  commands.RequestRefundCommandHandler
	ApproveRefund  commands.ApproveRefundCommandHandler
	RejectRefund   commands.RejectRefundCommandHandler
	EscalateRefund commands.EscalateRefundCommandHandler
	ProcessRefund  commands.ProcessRefundCommandHandler

	SyncUserPermissions    commands.SyncUserPermissionsCommandHandler
	SyncTenancyPermissions commands.SyncTenancyPermissionsCommandHandler

	UnreadNotifications queries.GetUnreadNotificationsQueryHandler
	OrderTimeline       queries.GetOrderTimelineQueryHandler

	Store    ports.NotificationStore
	Registry *realtime.Registry
}

// NewServer creates the HTTP server.
func NewServer(deps Deps) *Server {
	return &Server{
		transitionOrder:        deps.TransitionOrder,
		requestRefund:          deps.RequestRefund,
		approveRefund:          deps.ApproveRefund,
		rejectRefund:           deps.RejectRefund,
		escalateRefund:         deps.EscalateRefund,
		processRefund:          deps.ProcessRefund,
		syncUserPermissions:    deps.SyncUserPermissions,
		syncTenancyPermissions: deps.SyncTenancyPermissions,
		unreadNotifications:    deps.UnreadNotifications,
		orderTimeline:          deps.OrderTimeline,
		store:                  deps.Store,
		registry:               deps.Registry,
	}
}

// RegisterRoutes mounts all endpoints under /api/v1.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/tenants/:tenantId/orders/:orderId/transition", s.TransitionOrder)
	api.GET("/tenants/:tenantId/orders/:orderId/timeline", s.GetOrderTimeline)

	api.POST("/tenants/:tenantId/refunds", s.RequestRefund)
	api.POST("/tenants/:tenantId/refunds/:refundId/approve", s.ApproveRefund)
	api.POST("/tenants/:tenantId/refunds/:refundId/reject", s.RejectRefund)
	api.POST("/tenants/:tenantId/refunds/:refundId/escalate", s.EscalateRefund)
	api.POST("/tenants/:tenantId/refunds/:refundId/process", s.ProcessRefund)

	api.POST("/tenants/:tenantId/staff/:staffId/permissions/sync", s.SyncUserPermissions)
	api.POST("/tenants/:tenantId/permissions/sync", s.SyncTenancyPermissions)

	api.GET("/notifications/unread", s.GetUnreadNotifications)
	api.GET("/notifications/unread/count", s.CountUnreadNotifications)
	api.POST("/notifications/read", s.MarkNotificationsRead)

	api.GET("/stream", s.Stream)
}

type transitionOrderRequest struct {
	NextStatus string `json:"nextStatus"`
	ActorID    string `json:"actorId"`
	Notes      string `json:"notes"`
	BranchID   string `json:"branchId,omitempty"`
}

// TransitionOrder handles POST /api/v1/tenants/:tenantId/orders/:orderId/transition.
func (s *Server) TransitionOrder(ctx echo.Context) error {
	tenantID, err := pathUUID(ctx, "tenantId")
	if err != nil {
		return badRequest(ctx, "invalid tenant id")
	}
	orderID, err := pathUUID(ctx, "orderId")
	if err != nil {
		return badRequest(ctx, "invalid order id")
	}

	var req transitionOrderRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	actorID, err := kernel.UUIDFromString(req.ActorID)
	if err != nil {
		return badRequest(ctx, "invalid actor id")
	}
	nextStatus, err := order.ParseStatus(req.NextStatus)
	if err != nil {
		return fail(ctx, err)
	}

	var branchID *kernel.UUID
	if req.BranchID != "" {
		parsed, branchErr := kernel.UUIDFromString(req.BranchID)
		if branchErr != nil {
			return badRequest(ctx, "invalid branch id")
		}
		branchID = &parsed
	}

	cmd, err := commands.NewTransitionOrderCommand(orderID, tenantID, actorID, nextStatus, req.Notes, branchID)
	if err != nil {
		return fail(ctx, err)
	}

	if err = s.transitionOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return fail(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetOrderTimeline handles GET /api/v1/tenants/:tenantId/orders/:orderId/timeline.
func (s *Server) GetOrderTimeline(ctx echo.Context) error {
	tenantID, err := pathUUID(ctx, "tenantId")
	if err != nil {
		return badRequest(ctx, "invalid tenant id")
	}
	orderID, err := pathUUID(ctx, "orderId")
	if err != nil {
		return badRequest(ctx, "invalid order id")
	}

	query, err := queries.NewGetOrderTimelineQuery(orderID, tenantID)
	if err != nil {
		return fail(ctx, err)
	}

	timeline, err := s.orderTimeline.Handle(ctx.Request().Context(), query)
	if err != nil {
		return fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, timeline)
}

type requestRefundRequest struct {
	OrderID     string `json:"orderId"`
	CustomerID  string `json:"customerId"`
	Amount      string `json:"amount"`
	RequestedBy string `json:"requestedBy"`
}

// RequestRefund handles POST /api/v1/tenants/:tenantId/refunds.
func (s *Server) RequestRefund(ctx echo.Context) error {
	tenantID, err := pathUUID(ctx, "tenantId")
	if err != nil {
		return badRequest(ctx, "invalid tenant id")
	}

	var req requestRefundRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	orderID, err := kernel.UUIDFromString(req.OrderID)
	if err != nil {
		return badRequest(ctx, "invalid order id")
	}
	customerID, err := kernel.UUIDFromString(req.CustomerID)
	if err != nil {
		return badRequest(ctx, "invalid customer id")
	}
	requestedBy, err := kernel.UUIDFromString(req.RequestedBy)
	if err != nil {
		return badRequest(ctx, "invalid requester id")
	}
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return badRequest(ctx, "invalid refund amount")
	}

	cmd, err := commands.NewRequestRefundCommand(tenantID, orderID, customerID, amount, requestedBy)
	if err != nil {
		return fail(ctx, err)
	}

	refundID, err := s.requestRefund.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return fail(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, map[string]string{"refundId": refundID.String()})
}

type refundActionRequest struct {
	ActorID       string `json:"actorId"`
	Reason        string `json:"reason,omitempty"`
	TransactionID string `json:"transactionId,omitempty"`
}

func (s *Server) refundActionIDs(ctx echo.Context) (refundID, tenantID, actorID kernel.UUID, req refundActionRequest, err error) {
	tenantID, err = pathUUID(ctx, "tenantId")
	if err != nil {
		return
	}
	refundID, err = pathUUID(ctx, "refundId")
	if err != nil {
		return
	}
	if err = ctx.Bind(&req); err != nil {
		return
	}
	actorID, err = kernel.UUIDFromString(req.ActorID)
	return
}

// ApproveRefund handles POST /api/v1/tenants/:tenantId/refunds/:refundId/approve.
func (s *Server) ApproveRefund(ctx echo.Context) error {
	refundID, tenantID, actorID, _, err := s.refundActionIDs(ctx)
	if err != nil {
		return badRequest(ctx, "invalid refund approval request")
	}

	cmd, err := commands.NewApproveRefundCommand(refundID, tenantID, actorID)
	if err != nil {
		return fail(ctx, err)
	}

	if err = s.approveRefund.Handle(ctx.Request().Context(), cmd); err != nil {
		return fail(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// RejectRefund handles POST /api/v1/tenants/:tenantId/refunds/:refundId/reject.
func (s *Server) RejectRefund(ctx echo.Context) error {
	refundID, tenantID, actorID, req, err := s.refundActionIDs(ctx)
	if err != nil {
		return badRequest(ctx, "invalid refund rejection request")
	}

	cmd, err := commands.NewRejectRefundCommand(refundID, tenantID, actorID, req.Reason)
	if err != nil {
		return fail(ctx, err)
	}

	if err = s.rejectRefund.Handle(ctx.Request().Context(), cmd); err != nil {
		return fail(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// EscalateRefund handles POST /api/v1/tenants/:tenantId/refunds/:refundId/escalate.
func (s *Server) EscalateRefund(ctx echo.Context) error {
	refundID, tenantID, actorID, req, err := s.refundActionIDs(ctx)
	if err != nil {
		return badRequest(ctx, "invalid refund escalation request")
	}

	cmd, err := commands.NewEscalateRefundCommand(refundID, tenantID, actorID, req.Reason)
	if err != nil {
		return fail(ctx, err)
	}

	if err = s.escalateRefund.Handle(ctx.Request().Context(), cmd); err != nil {
		return fail(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ProcessRefund handles POST /api/v1/tenants/:tenantId/refunds/:refundId/process.
func (s *Server) ProcessRefund(ctx echo.Context) error {
	refundID, tenantID, actorID, req, err := s.refundActionIDs(ctx)
	if err != nil {
		return badRequest(ctx, "invalid refund processing request")
	}

	cmd, err := commands.NewProcessRefundCommand(refundID, tenantID, actorID, req.TransactionID)
	if err != nil {
		return fail(ctx, err)
	}

	transactionID, err := s.processRefund.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, map[string]string{"transactionId": transactionID})
}

// SyncUserPermissions handles POST /api/v1/tenants/:tenantId/staff/:staffId/permissions/sync.
func (s *Server) SyncUserPermissions(ctx echo.Context) error {
	tenantID, err := pathUUID(ctx, "tenantId")
	if err != nil {
		return badRequest(ctx, "invalid tenant id")
	}
	staffID, err := pathUUID(ctx, "staffId")
	if err != nil {
		return badRequest(ctx, "invalid staff id")
	}

	cmd, err := commands.NewSyncUserPermissionsCommand(staffID, tenantID)
	if err != nil {
		return fail(ctx, err)
	}

	permissions, err := s.syncUserPermissions.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, map[string]any{"permissions": permissions})
}

// SyncTenancyPermissions handles POST /api/v1/tenants/:tenantId/permissions/sync.
func (s *Server) SyncTenancyPermissions(ctx echo.Context) error {
	tenantID, err := pathUUID(ctx, "tenantId")
	if err != nil {
		return badRequest(ctx, "invalid tenant id")
	}

	cmd, err := commands.NewSyncTenancyPermissionsCommand(tenantID)
	if err != nil {
		return fail(ctx, err)
	}

	synced, err := s.syncTenancyPermissions.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return fail(ctx, err)
	}

	ids := make([]string, 0, len(synced))
	for _, id := range synced {
		ids = append(ids, id.String())
	}

	return ctx.JSON(http.StatusOK, map[string]any{"synced": ids})
}

// GetUnreadNotifications handles GET /api/v1/notifications/unread.
func (s *Server) GetUnreadNotifications(ctx echo.Context) error {
	recipientID, err := kernel.UUIDFromString(ctx.QueryParam("recipientId"))
	if err != nil {
		return badRequest(ctx, "invalid recipient id")
	}

	limit := 0
	if raw := ctx.QueryParam("limit"); raw != "" {
		if limit, err = strconv.Atoi(raw); err != nil {
			return badRequest(ctx, "invalid limit")
		}
	}

	query, err := queries.NewGetUnreadNotificationsQuery(recipientID, limit)
	if err != nil {
		return fail(ctx, err)
	}

	notifications, err := s.unreadNotifications.Handle(ctx.Request().Context(), query)
	if err != nil {
		return fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, notifications)
}

// CountUnreadNotifications handles GET /api/v1/notifications/unread/count.
func (s *Server) CountUnreadNotifications(ctx echo.Context) error {
	recipientID, err := kernel.UUIDFromString(ctx.QueryParam("recipientId"))
	if err != nil {
		return badRequest(ctx, "invalid recipient id")
	}

	count, err := s.store.CountUnread(ctx.Request().Context(), recipientID)
	if err != nil {
		return fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, map[string]int64{"unread": count})
}

type markReadRequest struct {
	RecipientID     string   `json:"recipientId"`
	NotificationIDs []string `json:"notificationIds"`
}

// MarkNotificationsRead handles POST /api/v1/notifications/read.
func (s *Server) MarkNotificationsRead(ctx echo.Context) error {
	var req markReadRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	recipientID, err := kernel.UUIDFromString(req.RecipientID)
	if err != nil {
		return badRequest(ctx, "invalid recipient id")
	}

	ids := make([]kernel.UUID, 0, len(req.NotificationIDs))
	for _, raw := range req.NotificationIDs {
		id, idErr := kernel.UUIDFromString(raw)
		if idErr != nil {
			return badRequest(ctx, "invalid notification id")
		}
		ids = append(ids, id)
	}

	if err = s.store.MarkRead(ctx.Request().Context(), ids, recipientID); err != nil {
		return fail(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

func pathUUID(ctx echo.Context, name string) (kernel.UUID, error) {
	return kernel.UUIDFromString(ctx.Param(name))
}
