// Package services provides business logic services.
package services

import (
	"encoding/json"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"go.uber.org/zap"

	"github.com/milassets/backend/models"
)

// SubjectAssetActivity is the NATS subject asset change events travel on.
const SubjectAssetActivity = "activity.assets"

// Asset event actions.
const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// AssetEvent describes one asset mutation. Events are ephemeral; nothing
// is persisted.
type AssetEvent struct {
	ID        string    `json:"id"`
	Action    string    `json:"action"`
	AssetID   uint      `json:"assetId"`
	AssetName string    `json:"assetName"`
	Base      string    `json:"base"`
	Actor     string    `json:"actor"`
	Timestamp time.Time `json:"timestamp"`
}

// NewAssetEvent builds an event for an asset mutation by actor.
func NewAssetEvent(action string, asset *models.Asset, actor *models.User) AssetEvent {
	return AssetEvent{
		ID:        uuid.NewString(),
		Action:    action,
		AssetID:   asset.ID,
		AssetName: asset.Name,
		Base:      asset.Base,
		Actor:     actor.Username,
		Timestamp: time.Now(),
	}
}

// Bus is the message bus the hub publishes and subscribes on, satisfied by
// natsserver.EmbeddedNATS.
type Bus interface {
	Publish(subject string, data []byte) error
	Subscribe(subject string, handler nats.MsgHandler) (*nats.Subscription, error)
}

// ActivityHub fans asset change events out from the bus to WebSocket clients.
type ActivityHub struct {
	bus Bus
	log *zap.Logger

	clients   map[*ActivityClient]bool
	clientsMu sync.RWMutex

	register   chan *ActivityClient
	unregister chan *ActivityClient

	sub    *nats.Subscription
	events uint64
}

// NewActivityHub creates a hub and subscribes it to the activity subject.
func NewActivityHub(bus Bus, log *zap.Logger) (*ActivityHub, error) {
	h := &ActivityHub{
		bus:        bus,
		log:        log,
		clients:    make(map[*ActivityClient]bool),
		register:   make(chan *ActivityClient),
		unregister: make(chan *ActivityClient),
	}

	sub, err := bus.Subscribe(SubjectAssetActivity, func(msg *nats.Msg) {
		h.broadcast(msg.Data)
	})
	if err != nil {
		return nil, err
	}
	h.sub = sub
	return h, nil
}

// Publish sends an asset event onto the bus. Connected dashboards receive
// it through the hub's own subscription.
func (h *ActivityHub) Publish(event AssetEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return h.bus.Publish(SubjectAssetActivity, data)
}

// Register adds a client to the hub.
func (h *ActivityHub) Register(client *ActivityClient) {
	h.register <- client
}

// Run starts the hub's main loop.
func (h *ActivityHub) Run() {
	h.log.Info("activity hub started")

	for {
		select {
		case client := <-h.register:
			h.clientsMu.Lock()
			h.clients[client] = true
			h.clientsMu.Unlock()
			h.log.Debug("activity client connected",
				zap.String("remoteAddr", client.remoteAddr),
				zap.String("username", client.username),
			)

		case client := <-h.unregister:
			h.clientsMu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			h.clientsMu.Unlock()
			h.log.Debug("activity client disconnected", zap.String("remoteAddr", client.remoteAddr))
		}
	}
}

func (h *ActivityHub) broadcast(data []byte) {
	atomic.AddUint64(&h.events, 1)

	h.clientsMu.RLock()
	defer h.clientsMu.RUnlock()
	for client := range h.clients {
		select {
		case client.send <- data:
		default:
			// Slow consumer, drop the event rather than block the bus.
		}
	}
}

// HubStats holds activity hub statistics.
type HubStats struct {
	Clients int    `json:"clients"`
	Events  uint64 `json:"events"`
}

// Stats returns current hub statistics.
func (h *ActivityHub) Stats() HubStats {
	h.clientsMu.RLock()
	clients := len(h.clients)
	h.clientsMu.RUnlock()

	return HubStats{
		Clients: clients,
		Events:  atomic.LoadUint64(&h.events),
	}
}
