package federation

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/BaSui01/arcbridge/types"
)

const (
	// commandRetention caps total in-memory command history at write time.
	commandRetention = 1000
	// recentCommandLimit bounds the Recent read view.
	recentCommandLimit = 200
)

// CommandQueue is an append-only, bounded, in-memory queue of federation
// commands. Insertion order is preserved; once the retention cap is exceeded
// the oldest commands are silently dropped. Commands are never executed here.
type CommandQueue struct {
	logger *zap.Logger

	mu       sync.Mutex
	commands []types.Command
}

// NewCommandQueue creates an empty command queue.
func NewCommandQueue(logger *zap.Logger) *CommandQueue {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CommandQueue{
		logger: logger.With(zap.String("component", "command_queue")),
	}
}

// Enqueue appends a command to the queue. The timestamp is assigned here and
// never taken from the caller; an empty channel defaults to "node". The
// stored command is returned.
func (q *CommandQueue) Enqueue(cmd types.Command) types.Command {
	if cmd.Channel == "" {
		cmd.Channel = types.DefaultCommandChannel
	}
	cmd.TS = time.Now().UnixMilli()

	q.mu.Lock()
	q.commands = append(q.commands, cmd)
	if len(q.commands) > commandRetention {
		q.commands = q.commands[len(q.commands)-commandRetention:]
	}
	q.mu.Unlock()

	q.logger.Debug("command enqueued",
		zap.String("target", cmd.Target),
		zap.String("cmd", cmd.Cmd),
		zap.String("channel", cmd.Channel),
	)
	return cmd
}

// ForTarget returns every retained command whose target matches, in original
// insertion order.
func (q *CommandQueue) ForTarget(target string) []types.Command {
	q.mu.Lock()
	defer q.mu.Unlock()

	var out []types.Command
	for _, cmd := range q.commands {
		if cmd.Target == target {
			out = append(out, cmd)
		}
	}
	return out
}

// Recent returns at most the last 200 enqueued commands, oldest first.
func (q *CommandQueue) Recent() []types.Command {
	q.mu.Lock()
	defer q.mu.Unlock()

	start := 0
	if len(q.commands) > recentCommandLimit {
		start = len(q.commands) - recentCommandLimit
	}
	out := make([]types.Command, len(q.commands)-start)
	copy(out, q.commands[start:])
	return out
}

// Len returns the number of retained commands.
func (q *CommandQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.commands)
}
