// Package orchestrator binds gateway voice events to audio backend nodes and
// manages per-guild players on top of them.
//
// The host application feeds VOICE_SERVER_UPDATE and VOICE_STATE_UPDATE
// dispatches in; the orchestrator hands every packet to every registered
// node, in registration order, and never looks past the packet's type tag.
//
// Registries are guarded for memory safety only. Concurrent SetNode calls
// using the same identifier race and the last writer wins; serializing them
// is the caller's job.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.opentelemetry.io/otel/attribute"

	"github.com/zjrosen/voxlink/internal/idgen"
	"github.com/zjrosen/voxlink/internal/log"
	"github.com/zjrosen/voxlink/internal/pubsub"
	"github.com/zjrosen/voxlink/internal/telemetry"
	"github.com/zjrosen/voxlink/internal/voice"
)

// Orchestrator owns the node registry and routes voice packets to it.
type Orchestrator struct {
	send        voice.SendFunc
	spawn       SpawnPlayerFunc
	fetch       FetchPlayerFunc
	newNode     NodeFactory
	newPlayer   PlayerFactory
	descriptors []*voice.NodeOptions

	events     *pubsub.Broker[voice.Event]
	ownsEvents bool

	// players is nil when the caller manages players.
	players *playerRegistry

	mu         sync.RWMutex
	clientID   string
	clientName string
	nodeIDs    []string
	nodes      map[string]voice.Node
}

var _ voice.Host = (*Orchestrator)(nil)

// New validates cfg and builds an orchestrator. It performs no I/O; call
// Initialize to connect the configured nodes.
func New(cfg Config) (*Orchestrator, error) {
	if cfg.Send == nil {
		return nil, &ConfigurationError{Field: "send", Reason: "send function must be present and must be a function"}
	}
	if len(cfg.Nodes) == 0 {
		return nil, &ConfigurationError{Field: "nodes", Reason: "nodes must not be an empty list"}
	}
	for i, n := range cfg.Nodes {
		if n == nil {
			return nil, &ConfigurationError{Field: fmt.Sprintf("nodes[%d]", i), Reason: "node descriptor is nil"}
		}
	}

	o := &Orchestrator{
		send:        cfg.Send,
		spawn:       cfg.SpawnPlayer,
		fetch:       cfg.FetchPlayer,
		newNode:     cfg.NodeFactory,
		newPlayer:   cfg.PlayerFactory,
		descriptors: append([]*voice.NodeOptions(nil), cfg.Nodes...),
		events:      cfg.Events,
		clientID:    cfg.ClientID,
		clientName:  cfg.ClientName,
		nodes:       make(map[string]voice.Node),
	}

	// Any built-in handler needs the built-in registry behind it.
	if o.spawn == nil || o.fetch == nil {
		o.players = newPlayerRegistry()
	}
	if o.spawn == nil {
		o.spawn = o.defaultSpawnPlayer
	}
	if o.fetch == nil {
		o.fetch = o.defaultFetchPlayer
	}
	if o.newNode == nil {
		o.newNode = defaultNodeFactory
	}
	if o.newPlayer == nil {
		o.newPlayer = defaultPlayerFactory
	}
	if o.events == nil {
		o.events = pubsub.NewBroker[voice.Event]()
		o.ownsEvents = true
	}

	return o, nil
}

// Initialize sets the client ID, unless one is already configured, and
// connects every configured node in order.
func (o *Orchestrator) Initialize(ctx context.Context, clientID string) (*Orchestrator, error) {
	o.mu.Lock()
	if clientID == "" && o.clientID == "" {
		o.mu.Unlock()
		return nil, &ConfigurationError{Field: "clientId", Reason: "a client id must be passed to Initialize or configured beforehand"}
	}
	if o.clientID == "" {
		o.clientID = clientID
	}
	o.mu.Unlock()

	return o.SetNode(ctx, o.descriptors...)
}

// SetNode connects each descriptor in turn and registers the node under its
// identifier, generating one when the descriptor has none. The identifier is
// written back to the descriptor once the node is connected. A node already
// registered under the same identifier is replaced and closed. The first
// connection failure stops the sequence.
func (o *Orchestrator) SetNode(ctx context.Context, nodes ...*voice.NodeOptions) (_ *Orchestrator, err error) {
	ctx, span := telemetry.Start(ctx, "orchestrator.SetNode", attribute.Int("nodes.count", len(nodes)))
	defer span.End(&err)

	for i, desc := range nodes {
		if desc == nil {
			return nil, &ConfigurationError{Field: fmt.Sprintf("nodes[%d]", i), Reason: "node descriptor is nil"}
		}
		if err := o.addNode(ctx, desc); err != nil {
			return nil, err
		}
	}
	return o, nil
}

func (o *Orchestrator) addNode(ctx context.Context, desc *voice.NodeOptions) error {
	id := desc.Identifier
	if id == "" {
		id = idgen.NodeID()
	}
	owned := *desc
	owned.Identifier = id

	node := o.newNode(&owned, o)
	if err := node.Connect(ctx); err != nil {
		log.ErrorErr(log.CatOrch, "Node connection failed", err, "node", id, "url", desc.URL)
		return fmt.Errorf("connecting node %s: %w", id, err)
	}
	desc.Identifier = id

	o.mu.Lock()
	replaced, exists := o.nodes[id]
	if !exists {
		o.nodeIDs = append(o.nodeIDs, id)
	}
	o.nodes[id] = node
	o.mu.Unlock()

	if replaced != nil && replaced != node {
		if err := replaced.Close(); err != nil {
			log.ErrorErr(log.CatOrch, "Closing replaced node failed", err, "node", id)
		}
	}

	log.Info(log.CatOrch, "Node registered", "node", id, "url", desc.URL)
	o.Publish(voice.NewEvent(voice.EventNodeReady, nil).WithNode(id))
	return nil
}

// SetClientName replaces the client name. REST requests pick it up
// immediately; websocket connections report it on their next dial.
func (o *Orchestrator) SetClientName(name string) *Orchestrator {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.clientName = name
	return o
}

// SetClientID replaces the client ID.
func (o *Orchestrator) SetClientID(id string) *Orchestrator {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.clientID = id
	return o
}

func (o *Orchestrator) ClientID() string {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.clientID
}

func (o *Orchestrator) ClientName() string {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.clientName
}

// Send delivers payload through the configured send function.
func (o *Orchestrator) Send(ctx context.Context, guildID string, payload voice.VoicePayload) error {
	return o.send(ctx, guildID, payload)
}

// Node returns the node registered under id.
func (o *Orchestrator) Node(id string) (voice.Node, bool) {
	o.mu.RLock()
	defer o.mu.RUnlock()
	n, ok := o.nodes[id]
	return n, ok
}

// NodeIDs returns registered node identifiers in registration order.
func (o *Orchestrator) NodeIDs() []string {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return append([]string(nil), o.nodeIDs...)
}

// Nodes returns registered nodes in registration order.
func (o *Orchestrator) Nodes() []voice.Node {
	entries := o.snapshot()
	out := make([]voice.Node, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.node)
	}
	return out
}

// FirstNode returns the earliest registered node, or nil when there is none.
func (o *Orchestrator) FirstNode() voice.Node {
	o.mu.RLock()
	defer o.mu.RUnlock()
	if len(o.nodeIDs) == 0 {
		return nil
	}
	return o.nodes[o.nodeIDs[0]]
}

type nodeEntry struct {
	id   string
	node voice.Node
}

func (o *Orchestrator) snapshot() []nodeEntry {
	o.mu.RLock()
	defer o.mu.RUnlock()
	out := make([]nodeEntry, 0, len(o.nodeIDs))
	for _, id := range o.nodeIDs {
		out = append(out, nodeEntry{id: id, node: o.nodes[id]})
	}
	return out
}

// Events returns the orchestrator's event bus.
func (o *Orchestrator) Events() *pubsub.Broker[voice.Event] {
	return o.events
}

// Publish emits e on the event bus.
func (o *Orchestrator) Publish(e voice.Event) {
	o.events.Publish(pubsub.CreatedEvent, e)
}

// Close closes every registered node. Registry entries are kept.
func (o *Orchestrator) Close() error {
	var errs []error
	for _, e := range o.snapshot() {
		if err := e.node.Close(); err != nil {
			errs = append(errs, fmt.Errorf("closing node %s: %w", e.id, err))
		}
	}
	if o.ownsEvents {
		o.events.Close()
	}
	return errors.Join(errs...)
}
