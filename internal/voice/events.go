package voice

import (
	"time"

	"github.com/google/uuid"
)

// EventType categorizes orchestrator events.
type EventType string

const (
	// Node lifecycle
	EventNodeReady   EventType = "node.ready"
	EventNodeMessage EventType = "node.message"
	EventNodeClosed  EventType = "node.closed"

	// Player lifecycle
	EventPlayerSpawned EventType = "player.spawned"

	// Voice routing
	EventPacketRouted    EventType = "packet.routed"
	EventVoiceUpdateSent EventType = "voice.update_sent"
)

// Event is published on the orchestrator's event bus.
type Event struct {
	ID        string
	Type      EventType
	Timestamp time.Time

	// Optional correlation
	NodeID  string
	GuildID string

	// Event-specific payload (depends on Type)
	Payload any
}

// NewEvent creates an event with a fresh ID and the current timestamp.
func NewEvent(t EventType, payload any) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      t,
		Timestamp: time.Now(),
		Payload:   payload,
	}
}

// WithNode adds node context to the event.
func (e Event) WithNode(nodeID string) Event {
	e.NodeID = nodeID
	return e
}

// WithGuild adds guild context to the event.
func (e Event) WithGuild(guildID string) Event {
	e.GuildID = guildID
	return e
}
