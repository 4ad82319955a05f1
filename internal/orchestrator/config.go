package orchestrator

import (
	"context"

	"github.com/zjrosen/voxlink/internal/lavalink"
	"github.com/zjrosen/voxlink/internal/player"
	"github.com/zjrosen/voxlink/internal/pubsub"
	"github.com/zjrosen/voxlink/internal/voice"
)

// SpawnPlayerFunc returns the player for guildID, creating it on node when the
// guild has none. Implementations should return the existing player on
// repeated calls for the same guild.
type SpawnPlayerFunc func(ctx context.Context, guildID string, opts voice.PlayerOptions, node voice.Node) (voice.Player, error)

// FetchPlayerFunc returns the player for guildID, or nil when there is none.
type FetchPlayerFunc func(ctx context.Context, guildID string) (voice.Player, error)

// NodeFactory builds an unconnected node for opts. opts is owned by the
// orchestrator and already carries the node's final identifier.
type NodeFactory func(opts *voice.NodeOptions, host voice.Host) voice.Node

// PlayerFactory builds a player for the default spawn handler.
type PlayerFactory func(opts voice.PlayerOptions, node voice.Node, host voice.Host) voice.Player

// Config is the input to New. New copies what it needs; later changes to the
// Config value have no effect, except that node descriptors are shared so the
// caller can observe generated identifiers.
type Config struct {
	// Send delivers outbound gateway payloads. Required.
	Send voice.SendFunc

	// SpawnPlayer and FetchPlayer replace the built-in player registry. Supply
	// both to manage players yourself; a missing one falls back to the
	// built-in handler backed by the orchestrator's own registry.
	SpawnPlayer SpawnPlayerFunc
	FetchPlayer FetchPlayerFunc

	// Nodes are connected in order by Initialize. Must not be empty.
	Nodes []*voice.NodeOptions

	ClientID   string
	ClientName string

	// NodeFactory defaults to the Lavalink node.
	NodeFactory NodeFactory

	// PlayerFactory defaults to player.New.
	PlayerFactory PlayerFactory

	// Events receives orchestrator events. When nil the orchestrator creates
	// (and on Close, closes) its own broker.
	Events *pubsub.Broker[voice.Event]
}

func defaultNodeFactory(opts *voice.NodeOptions, host voice.Host) voice.Node {
	return lavalink.New(opts, host)
}

func defaultPlayerFactory(opts voice.PlayerOptions, node voice.Node, host voice.Host) voice.Player {
	return player.New(opts, node, host)
}
