package health

import (
	"fmt"
	"time"
)

// Policy defines node health thresholds.
type Policy struct {
	// HeartbeatTimeout is how long a node may stay silent before it is marked
	// unhealthy. Lavalink sends stats every minute, so the default is 2 minutes.
	HeartbeatTimeout time.Duration
}

// DefaultPolicy returns a Policy with sensible defaults.
func DefaultPolicy() Policy {
	return Policy{HeartbeatTimeout: 2 * time.Minute}
}

// Validate checks that the Policy has valid values.
func (p Policy) Validate() error {
	if p.HeartbeatTimeout <= 0 {
		return fmt.Errorf("heartbeat_timeout must be positive: %v", p.HeartbeatTimeout)
	}
	return nil
}

// Status tracks the health of a single node.
type Status struct {
	NodeID string

	// Healthy is false once the heartbeat timeout passes without traffic or
	// the node's connection closes.
	Healthy bool

	// Closed is set when the node's connection ended.
	Closed bool

	// LastHeartbeatAt is when the node last sent anything.
	LastHeartbeatAt time.Time

	// Messages counts frames received since tracking began.
	Messages int
}

// EventType categorizes health events.
type EventType string

const (
	// EventHeartbeatMissed means the node has been silent for longer than the
	// heartbeat timeout.
	EventHeartbeatMissed EventType = "health.heartbeat.missed"

	// EventNodeLost means the node's connection closed.
	EventNodeLost EventType = "health.node.lost"

	// EventRecovered means an unhealthy node sent traffic again.
	EventRecovered EventType = "health.recovered"
)

// Event is emitted when a node's health changes.
type Event struct {
	Type      EventType
	NodeID    string
	Timestamp time.Time
	Details   string
}

func newEvent(t EventType, nodeID string, at time.Time) Event {
	return Event{Type: t, NodeID: nodeID, Timestamp: at}
}

// WithDetails adds a human-readable explanation to the event.
func (e Event) WithDetails(details string) Event {
	e.Details = details
	return e
}
