package federation

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/BaSui01/arcbridge/types"
)

// subscriptionRetention caps stored subscriptions at write time.
// Subscriptions are assumed few and long-lived; the cap exists so a
// misbehaving producer cannot grow process memory without bound.
const subscriptionRetention = 1000

// SubscriptionRegistry records passive channel registrations. There is no
// delivery, no execution, and no remote action tied to a subscription.
type SubscriptionRegistry struct {
	logger *zap.Logger

	mu   sync.Mutex
	subs []types.Subscription
}

// NewSubscriptionRegistry creates an empty subscription registry.
func NewSubscriptionRegistry(logger *zap.Logger) *SubscriptionRegistry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SubscriptionRegistry{
		logger: logger.With(zap.String("component", "subscription_registry")),
	}
}

// Register records interest of id in channel. The timestamp is assigned here.
// The stored subscription is returned.
func (r *SubscriptionRegistry) Register(id, channel string) types.Subscription {
	sub := types.Subscription{
		ID:      id,
		Channel: channel,
		TS:      time.Now().UnixMilli(),
	}

	r.mu.Lock()
	r.subs = append(r.subs, sub)
	if len(r.subs) > subscriptionRetention {
		r.subs = r.subs[len(r.subs)-subscriptionRetention:]
	}
	r.mu.Unlock()

	r.logger.Debug("subscription registered",
		zap.String("id", id),
		zap.String("channel", channel),
	)
	return sub
}

// List returns every retained subscription in registration order.
func (r *SubscriptionRegistry) List() []types.Subscription {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]types.Subscription, len(r.subs))
	copy(out, r.subs)
	return out
}
