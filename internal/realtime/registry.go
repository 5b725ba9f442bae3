package realtime

import (
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"laundryops/internal/core/domain/model/kernel"
	"laundryops/internal/core/domain/model/notification"
	"laundryops/internal/core/domain/model/staff"
)

// connKey addresses one recipient's connection set.
type connKey struct {
	recipientType notification.RecipientType
	recipientID   kernel.UUID
}

// connMeta is the room-matching metadata captured at registration time.
type connMeta struct {
	tenantID *kernel.UUID
	role     staff.Role
	hasRole  bool
}

// Registry holds every live connection in the process and fans out push
// payloads to them. One recipient may hold several connections (multiple
// tabs, multiple devices); each is addressed independently. Dead
// connections are evicted lazily, on the send that discovers them.
//
// The registry is an injected dependency of the dispatch engine and the
// transport adapter, never a package-level singleton.
type Registry struct {
	mu     sync.RWMutex
	conns  map[connKey]map[Conn]connMeta
	logger *slog.Logger
}

func NewRegistry(logger *slog.Logger) *Registry {
	return &Registry{
		conns:  make(map[connKey]map[Conn]connMeta),
		logger: logger.With("component", "realtime.Registry"),
	}
}

// Register adds a connection under the recipient's key. Registering the
// same handle twice is a no-op; a second physical connection for the same
// recipient is a distinct handle and coexists with the first.
func (r *Registry) Register(
	recipientType notification.RecipientType,
	recipientID kernel.UUID,
	conn Conn,
	tenantID *kernel.UUID,
	role *staff.Role,
) {
	key := connKey{recipientType: recipientType, recipientID: recipientID}
	meta := connMeta{tenantID: tenantID}
	if role != nil {
		meta.role = *role
		meta.hasRole = true
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	set, ok := r.conns[key]
	if !ok {
		set = make(map[Conn]connMeta)
		r.conns[key] = set
	}
	set[conn] = meta
}

// Unregister removes a connection and closes it. Unknown handles are
// ignored, so transport teardown and lazy eviction can race safely.
func (r *Registry) Unregister(
	recipientType notification.RecipientType,
	recipientID kernel.UUID,
	conn Conn,
) {
	key := connKey{recipientType: recipientType, recipientID: recipientID}

	r.mu.Lock()
	set, ok := r.conns[key]
	if ok {
		delete(set, conn)
		if len(set) == 0 {
			delete(r.conns, key)
		}
	}
	r.mu.Unlock()

	_ = conn.Close()
}

// PushToRecipient marshals the payload once and writes it to every live
// connection of the recipient. Returns the number of successful writes.
func (r *Registry) PushToRecipient(
	recipientType notification.RecipientType,
	recipientID kernel.UUID,
	payload notification.PushPayload,
) int {
	frame, err := json.Marshal(payload)
	if err != nil {
		r.logger.Error("marshal push payload", "error", err)
		return 0
	}

	key := connKey{recipientType: recipientType, recipientID: recipientID}

	r.mu.RLock()
	targets := r.snapshot(key)
	r.mu.RUnlock()

	delivered := 0
	for _, t := range targets {
		if err := t.conn.Send(frame); err != nil {
			r.evict(t.key, t.conn, err)
			continue
		}
		delivered++
	}
	return delivered
}

// BroadcastToRoom writes the payload to every connection whose metadata
// carries the role, scoped to tenantID unless tenantID is nil. Returns the
// number of successful writes.
func (r *Registry) BroadcastToRoom(
	tenantID *kernel.UUID,
	role staff.Role,
	payload notification.PushPayload,
) int {
	frame, err := json.Marshal(payload)
	if err != nil {
		r.logger.Error("marshal broadcast payload", "error", err)
		return 0
	}

	r.mu.RLock()
	var targets []target
	for key, set := range r.conns {
		for conn, meta := range set {
			if !meta.hasRole || meta.role != role {
				continue
			}
			if tenantID != nil {
				if meta.tenantID == nil || *meta.tenantID != *tenantID {
					continue
				}
			}
			targets = append(targets, target{key: key, conn: conn})
		}
	}
	r.mu.RUnlock()

	delivered := 0
	for _, t := range targets {
		if err := t.conn.Send(frame); err != nil {
			r.evict(t.key, t.conn, err)
			continue
		}
		delivered++
	}
	return delivered
}

// heartbeatFrame is what every live connection receives on the heartbeat
// tick. Clients use it to detect half-open connections.
type heartbeatFrame struct {
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
}

// Heartbeat sends a keepalive frame to every connection, evicting those
// that fail. Returns the number of live connections after the sweep.
func (r *Registry) Heartbeat(now time.Time) int {
	frame, err := json.Marshal(heartbeatFrame{Type: "heartbeat", Timestamp: now})
	if err != nil {
		r.logger.Error("marshal heartbeat", "error", err)
		return r.Size()
	}

	r.mu.RLock()
	var targets []target
	for key, set := range r.conns {
		for conn := range set {
			targets = append(targets, target{key: key, conn: conn})
		}
	}
	r.mu.RUnlock()

	alive := 0
	for _, t := range targets {
		if err := t.conn.Send(frame); err != nil {
			r.evict(t.key, t.conn, err)
			continue
		}
		alive++
	}
	return alive
}

// Size returns the total number of registered connections.
func (r *Registry) Size() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	total := 0
	for _, set := range r.conns {
		total += len(set)
	}
	return total
}

type target struct {
	key  connKey
	conn Conn
}

// snapshot copies one key's connection set under the read lock, so sends
// happen without holding it.
func (r *Registry) snapshot(key connKey) []target {
	set, ok := r.conns[key]
	if !ok {
		return nil
	}
	targets := make([]target, 0, len(set))
	for conn := range set {
		targets = append(targets, target{key: key, conn: conn})
	}
	return targets
}

func (r *Registry) evict(key connKey, conn Conn, cause error) {
	r.mu.Lock()
	set, ok := r.conns[key]
	if ok {
		delete(set, conn)
		if len(set) == 0 {
			delete(r.conns, key)
		}
	}
	r.mu.Unlock()

	_ = conn.Close()
	r.logger.Debug("evicted dead connection",
		"recipientType", string(key.recipientType),
		"recipientId", key.recipientID.String(),
		"cause", cause,
	)
}
