package http

import (
	"fmt"
	"net/http"

	"laundryops/internal/core/domain/model/kernel"
	"laundryops/internal/core/domain/model/notification"
	"laundryops/internal/core/domain/model/staff"
	"laundryops/internal/realtime"

	"github.com/labstack/echo/v4"
)

const streamBuffer = 16

// Stream handles GET /api/v1/stream. It registers a server-sent-events
// connection for a customer or staff recipient and forwards pushed frames
// until the client disconnects. Staff connections carry tenant and role so
// room broadcasts can reach them.
func (s *Server) Stream(ctx echo.Context) error {
	recipientType := notification.RecipientType(ctx.QueryParam("recipientType"))
	if err := recipientType.Validate(); err != nil || recipientType.IsRoom() {
		return badRequest(ctx, "recipient type must be customer or staff")
	}

	recipientID, err := kernel.UUIDFromString(ctx.QueryParam("recipientId"))
	if err != nil {
		return badRequest(ctx, "invalid recipient id")
	}

	var tenantID *kernel.UUID
	if raw := ctx.QueryParam("tenantId"); raw != "" {
		parsed, tenantErr := kernel.UUIDFromString(raw)
		if tenantErr != nil {
			return badRequest(ctx, "invalid tenant id")
		}
		tenantID = &parsed
	}

	var role *staff.Role
	if raw := ctx.QueryParam("role"); raw != "" {
		parsed, roleErr := staff.ParseRole(raw)
		if roleErr != nil {
			return badRequest(ctx, "invalid role")
		}
		role = &parsed
	}

	conn := realtime.NewChannelConn(streamBuffer)
	s.registry.Register(recipientType, recipientID, conn, tenantID, role)
	defer s.registry.Unregister(recipientType, recipientID, conn)

	resp := ctx.Response()
	resp.Header().Set(echo.HeaderContentType, "text/event-stream")
	resp.Header().Set(echo.HeaderCacheControl, "no-cache")
	resp.Header().Set(echo.HeaderConnection, "keep-alive")
	resp.WriteHeader(http.StatusOK)
	resp.Flush()

	reqCtx := ctx.Request().Context()
	for {
		select {
		case <-reqCtx.Done():
			return nil
		case frame, ok := <-conn.Frames():
			if !ok {
				return nil
			}
			if _, writeErr := fmt.Fprintf(resp, "data: %s\n\n", frame); writeErr != nil {
				return nil
			}
			resp.Flush()
		}
	}
}
