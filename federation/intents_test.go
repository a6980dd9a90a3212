package federation

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/BaSui01/arcbridge/types"
)

func TestIntentRegistry_DeclareDefaults(t *testing.T) {
	r := NewIntentRegistry(zap.NewNop())

	stored := r.Declare(types.Intent{Target: "node-a", Desired: "online", Channel: "ops"})

	assert.Equal(t, types.IntentLifecyclePending, stored.Lifecycle)
	assert.Equal(t, types.DefaultIntentStaleAfter, stored.StaleAfter)
	assert.Greater(t, stored.TS, int64(0))
}

func TestIntentRegistry_ListCappedAt500InOrder(t *testing.T) {
	r := NewIntentRegistry(zap.NewNop())

	for i := 0; i < 620; i++ {
		r.Declare(types.Intent{Target: fmt.Sprintf("node-%d", i)})
	}

	intents := r.List()
	require.Len(t, intents, 500)
	assert.Equal(t, "node-120", intents[0].Target)
	assert.Equal(t, "node-619", intents[499].Target)
}

func TestIntentRegistry_SummarizeLifecycle(t *testing.T) {
	r := NewIntentRegistry(zap.NewNop())

	r.Declare(types.Intent{Target: "a"})
	r.Declare(types.Intent{Target: "b"})
	r.Declare(types.Intent{Target: "c"})

	summary := r.SummarizeLifecycle()
	assert.Equal(t, map[string]int{types.IntentLifecyclePending: 3}, summary)
}

func TestIntentRegistry_DetectStale(t *testing.T) {
	r := NewIntentRegistry(zap.NewNop())

	fresh := r.Declare(types.Intent{Target: "fresh"})

	// Classify at a point past the default staleness threshold.
	observations := r.detectStaleAt(fresh.TS + types.DefaultIntentStaleAfter + 1)
	require.Len(t, observations, 1)
	assert.True(t, observations[0].Stale)
	assert.Greater(t, observations[0].Age, types.DefaultIntentStaleAfter)

	// And just inside it.
	observations = r.detectStaleAt(fresh.TS + 10)
	require.Len(t, observations, 1)
	assert.False(t, observations[0].Stale)
}

func TestIntentRegistry_CustomStaleAfterKept(t *testing.T) {
	r := NewIntentRegistry(zap.NewNop())

	stored := r.Declare(types.Intent{Target: "node-a", StaleAfter: 5000})
	assert.Equal(t, int64(5000), stored.StaleAfter)

	observations := r.detectStaleAt(stored.TS + 6000)
	require.Len(t, observations, 1)
	assert.True(t, observations[0].Stale)
}
