package federation

import (
	"sync"

	"go.uber.org/zap"

	"github.com/BaSui01/arcbridge/types"
)

const (
	// actionRetention keeps the last 1000 recorded actions in memory.
	actionRetention = 1000
	// defaultRecentActions is the Recent limit when the caller passes <= 0.
	defaultRecentActions = 100
)

// ActionLog is the passive audit trail of proposed actions. Recording an
// action stores it and nothing else: no execution, no dispatch, no control.
type ActionLog struct {
	logger *zap.Logger

	mu      sync.Mutex
	actions []types.ActionSchema
}

// NewActionLog creates an empty action log.
func NewActionLog(logger *zap.Logger) *ActionLog {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ActionLog{
		logger: logger.With(zap.String("component", "action_log")),
	}
}

// Record appends an action to the audit trail, dropping the oldest entries
// once the retention cap is exceeded.
func (l *ActionLog) Record(action types.ActionSchema) {
	l.mu.Lock()
	l.actions = append(l.actions, action)
	if len(l.actions) > actionRetention {
		l.actions = l.actions[len(l.actions)-actionRetention:]
	}
	l.mu.Unlock()

	l.logger.Debug("action recorded",
		zap.String("action_id", action.ID),
		zap.String("type", string(action.Type)),
	)
}

// List returns every retained action in recording order.
func (l *ActionLog) List() []types.ActionSchema {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]types.ActionSchema, len(l.actions))
	copy(out, l.actions)
	return out
}

// Recent returns the last limit recorded actions, oldest first. A limit of
// zero or less means the default of 100.
func (l *ActionLog) Recent(limit int) []types.ActionSchema {
	if limit <= 0 {
		limit = defaultRecentActions
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	start := 0
	if len(l.actions) > limit {
		start = len(l.actions) - limit
	}
	out := make([]types.ActionSchema, len(l.actions)-start)
	copy(out, l.actions[start:])
	return out
}
