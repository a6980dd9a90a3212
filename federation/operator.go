package federation

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

// OperatorIdentity is the passive representation of the human operator. No
// authentication or access control is attached to it; this is the slot where
// operator identity will live once a real identity layer exists.
type OperatorIdentity struct {
	ID           string         `json:"id"`
	Source       string         `json:"source"` // "webauthn", "yubikey", ...
	RegisteredAt int64          `json:"registeredAt"`
	LastSeen     int64          `json:"lastSeen"`
	Metadata     map[string]any `json:"metadata,omitempty"`
}

// OperatorSession records whether a verified assertion has been seen in this
// process lifetime. It grants nothing.
type OperatorSession struct {
	Verified bool  `json:"verified"`
	TS       int64 `json:"ts,omitempty"`
}

// OperatorRegistry holds the single operator identity and session flag.
type OperatorRegistry struct {
	logger *zap.Logger

	mu       sync.Mutex
	operator *OperatorIdentity
	session  OperatorSession
}

// NewOperatorRegistry creates an empty operator registry.
func NewOperatorRegistry(logger *zap.Logger) *OperatorRegistry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OperatorRegistry{
		logger: logger.With(zap.String("component", "operator_registry")),
	}
}

// Register stores the operator identity, stamping registration and presence
// times. Storage only; no authentication happens.
func (r *OperatorRegistry) Register(id, source string, metadata map[string]any) OperatorIdentity {
	now := time.Now().UnixMilli()
	op := OperatorIdentity{
		ID:           id,
		Source:       source,
		RegisteredAt: now,
		LastSeen:     now,
		Metadata:     metadata,
	}

	r.mu.Lock()
	r.operator = &op
	r.mu.Unlock()

	r.logger.Info("operator registered", zap.String("operator_id", id), zap.String("source", source))
	return op
}

// Get returns the current operator identity, if any.
func (r *OperatorRegistry) Get() (OperatorIdentity, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.operator == nil {
		return OperatorIdentity{}, false
	}
	return *r.operator, true
}

// UpdatePresence refreshes the operator's last-seen timestamp. No side
// effects beyond the timestamp.
func (r *OperatorRegistry) UpdatePresence() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.operator != nil {
		r.operator.LastSeen = time.Now().UnixMilli()
	}
}

// MarkVerified records that a verified assertion was seen in this session.
// It does not grant authority, permissions, or access.
func (r *OperatorRegistry) MarkVerified() {
	r.mu.Lock()
	r.session = OperatorSession{Verified: true, TS: time.Now().UnixMilli()}
	r.mu.Unlock()
}

// Session returns the current session state.
func (r *OperatorRegistry) Session() OperatorSession {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.session
}

// ClearSession resets the session flag, for expiry or tests.
func (r *OperatorRegistry) ClearSession() {
	r.mu.Lock()
	r.session = OperatorSession{}
	r.mu.Unlock()
}
