package notify

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/stocktrail/stocktrail/internal/domain"
	redisstore "github.com/stocktrail/stocktrail/internal/store/redis"
)

// Event names delivered to subscribers.
const (
	EventInventoryUpdated = "inventoryUpdated"
	EventProjectUpdated   = "projectUpdated"
)

// Actions carried in event payloads.
const (
	ActionCreate = "create"
	ActionUpdate = "update"
	ActionDelete = "delete"
	ActionImport = "import"
)

// Event is a change notification payload. Exactly one of Item or Project is
// set, matching the event name.
type Event struct {
	Event   string                `json:"event"`
	Action  string                `json:"action"`
	Item    *domain.InventoryItem `json:"item,omitempty"`
	Project *domain.Project       `json:"project,omitempty"`
	Count   int                   `json:"count,omitempty"` // bulk imports only
}

// Broadcaster delivers fire-and-forget change events to a tenant's
// subscribers. Implementations must not surface delivery failures to the
// caller; there is no return channel.
type Broadcaster interface {
	Broadcast(ctx context.Context, tenantID uuid.UUID, ev Event)
}

// Publisher is the transport the broadcaster fans out through.
// *redisstore.PubSub satisfies it.
type Publisher interface {
	Publish(ctx context.Context, channel string, payload []byte) error
}

// Notifier broadcasts events on a tenant's Redis channel. Publish failures
// are logged and dropped: subscribers get no delivery guarantee, and a failed
// broadcast never fails the mutation that triggered it.
type Notifier struct {
	pub Publisher
}

func New(pub Publisher) *Notifier {
	return &Notifier{pub: pub}
}

func (n *Notifier) Broadcast(ctx context.Context, tenantID uuid.UUID, ev Event) {
	payload, err := json.Marshal(ev)
	if err != nil {
		log.Warn().Err(err).Str("event", ev.Event).Msg("notify: marshal event")
		return
	}

	if err := n.pub.Publish(ctx, redisstore.EventsChannel(tenantID), payload); err != nil {
		log.Warn().Err(err).Str("event", ev.Event).Str("action", ev.Action).Msg("notify: publish event")
	}
}
