// Package health tracks node liveness from the orchestrator's event bus.
package health

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/zjrosen/voxlink/internal/log"
	"github.com/zjrosen/voxlink/internal/pubsub"
	"github.com/zjrosen/voxlink/internal/voice"
)

// DefaultCheckInterval is used when Config.CheckInterval is zero.
const DefaultCheckInterval = 10 * time.Second

// EventCallback receives health events. It is called from the monitor's
// goroutines and must not block for long.
type EventCallback func(event Event)

// Clock interface for time operations (allows testing).
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

// Config configures a Monitor.
type Config struct {
	Policy Policy

	// CheckInterval is how often heartbeat timeouts are evaluated.
	CheckInterval time.Duration

	// Events is the orchestrator event bus. When nil, nodes are only tracked
	// through the Record methods.
	Events *pubsub.Broker[voice.Event]

	// OnEvent is called for every health transition.
	OnEvent EventCallback

	// Clock defaults to the wall clock.
	Clock Clock
}

// Monitor tracks per-node heartbeats and reports health transitions.
type Monitor struct {
	mu       sync.RWMutex
	policy   Policy
	statuses map[string]*Status
	clock    Clock

	checkInterval time.Duration
	events        *pubsub.Broker[voice.Event]
	onEvent       EventCallback

	// runMu serializes Start and Stop.
	runMu  sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewMonitor creates a Monitor. Zero fields in cfg take their defaults.
func NewMonitor(cfg Config) *Monitor {
	clock := cfg.Clock
	if clock == nil {
		clock = realClock{}
	}
	interval := cfg.CheckInterval
	if interval <= 0 {
		interval = DefaultCheckInterval
	}
	policy := cfg.Policy
	if policy.HeartbeatTimeout <= 0 {
		policy = DefaultPolicy()
	}

	return &Monitor{
		policy:        policy,
		statuses:      make(map[string]*Status),
		clock:         clock,
		checkInterval: interval,
		events:        cfg.Events,
		onEvent:       cfg.OnEvent,
	}
}

// Start subscribes to the event bus and starts the periodic check. Calling
// Start on a running monitor is a no-op; a stopped monitor can be started
// again.
func (m *Monitor) Start(ctx context.Context) error {
	m.runMu.Lock()
	defer m.runMu.Unlock()
	if m.cancel != nil {
		return nil
	}
	ctx, m.cancel = context.WithCancel(ctx)

	if m.events != nil {
		sub := m.events.Subscribe(ctx)
		m.wg.Add(1)
		log.SafeGo("health.eventLoop", func() {
			defer m.wg.Done()
			m.eventLoop(ctx, sub)
		})
	}

	m.wg.Add(1)
	log.SafeGo("health.checkLoop", func() {
		defer m.wg.Done()
		m.checkLoop(ctx)
	})
	return nil
}

// Stop ends both loops and waits for them. It is safe to call Stop multiple
// times or before Start.
func (m *Monitor) Stop() {
	m.runMu.Lock()
	defer m.runMu.Unlock()
	if m.cancel == nil {
		return
	}
	m.cancel()
	m.wg.Wait()
	m.cancel = nil
}

// SetPolicy replaces the health policy.
func (m *Monitor) SetPolicy(policy Policy) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.policy = policy
}

// Status returns the health of nodeID. Returns false if it is not tracked.
func (m *Monitor) Status(nodeID string) (Status, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.statuses[nodeID]
	if !ok {
		return Status{}, false
	}
	return *s, true
}

// Statuses returns every tracked node ordered by identifier.
func (m *Monitor) Statuses() []Status {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Status, 0, len(m.statuses))
	for _, s := range m.statuses {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].NodeID < out[j].NodeID })
	return out
}

// Track starts tracking nodeID as healthy. Tracking an already tracked node
// is a no-op.
func (m *Monitor) Track(nodeID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.statuses[nodeID]; ok {
		return
	}
	m.statuses[nodeID] = &Status{NodeID: nodeID, Healthy: true, LastHeartbeatAt: m.clock.Now()}
}

// Untrack stops tracking nodeID.
func (m *Monitor) Untrack(nodeID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.statuses, nodeID)
}

// RecordHeartbeat notes traffic from nodeID, tracking it if needed. An
// unhealthy node becomes healthy again.
func (m *Monitor) RecordHeartbeat(nodeID string) {
	var emit []Event

	m.mu.Lock()
	s := m.status(nodeID)
	now := m.clock.Now()
	s.LastHeartbeatAt = now
	s.Messages++
	if !s.Healthy {
		emit = append(emit, newEvent(EventRecovered, nodeID, now))
	}
	s.Healthy = true
	s.Closed = false
	m.mu.Unlock()

	m.emit(emit)
}

// MarkClosed records that nodeID's connection ended.
func (m *Monitor) MarkClosed(nodeID string) {
	var emit []Event

	m.mu.Lock()
	s := m.status(nodeID)
	if !s.Closed {
		emit = append(emit, newEvent(EventNodeLost, nodeID, m.clock.Now()).WithDetails("connection closed"))
	}
	s.Closed = true
	s.Healthy = false
	m.mu.Unlock()

	m.emit(emit)
}

// status returns the entry for nodeID, creating it. Must be called with mu held.
func (m *Monitor) status(nodeID string) *Status {
	s, ok := m.statuses[nodeID]
	if !ok {
		s = &Status{NodeID: nodeID, Healthy: true, LastHeartbeatAt: m.clock.Now()}
		m.statuses[nodeID] = s
	}
	return s
}

// Check evaluates heartbeat timeouts once. The check loop calls it every
// CheckInterval.
func (m *Monitor) Check() {
	var emit []Event

	m.mu.Lock()
	now := m.clock.Now()
	for id, s := range m.statuses {
		if s.Closed || !s.Healthy {
			continue
		}
		silent := now.Sub(s.LastHeartbeatAt)
		if silent > m.policy.HeartbeatTimeout {
			s.Healthy = false
			emit = append(emit, newEvent(EventHeartbeatMissed, id, now).
				WithDetails("No traffic for "+silent.Truncate(time.Second).String()))
		}
	}
	m.mu.Unlock()

	m.emit(emit)
}

func (m *Monitor) emit(events []Event) {
	for _, e := range events {
		log.Debug(log.CatNode, "Node health changed", "node", e.NodeID, "type", e.Type)
		if m.onEvent != nil {
			m.onEvent(e)
		}
	}
}

func (m *Monitor) checkLoop(ctx context.Context) {
	ticker := time.NewTicker(m.checkInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.Check()
		}
	}
}

func (m *Monitor) eventLoop(ctx context.Context, sub <-chan pubsub.Event[voice.Event]) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-sub:
			if !ok {
				return
			}
			m.processEvent(ev.Payload)
		}
	}
}

// processEvent maps orchestrator node events onto heartbeats.
func (m *Monitor) processEvent(ev voice.Event) {
	if ev.NodeID == "" {
		return
	}
	switch ev.Type {
	case voice.EventNodeReady:
		m.Track(ev.NodeID)
		m.RecordHeartbeat(ev.NodeID)
	case voice.EventNodeMessage:
		m.RecordHeartbeat(ev.NodeID)
	case voice.EventNodeClosed:
		m.MarkClosed(ev.NodeID)
	}
}
