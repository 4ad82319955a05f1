package orchestrator

import (
	"context"
	"fmt"
	"reflect"
	"sync"

	"go.opentelemetry.io/otel/attribute"

	"github.com/zjrosen/voxlink/internal/log"
	"github.com/zjrosen/voxlink/internal/telemetry"
	"github.com/zjrosen/voxlink/internal/voice"
)

// playerRegistry is the built-in guild -> player table. Entries are never
// removed by the orchestrator itself.
type playerRegistry struct {
	mu      sync.Mutex
	players map[string]voice.Player
}

func newPlayerRegistry() *playerRegistry {
	return &playerRegistry{players: make(map[string]voice.Player)}
}

func (r *playerRegistry) get(guildID string) voice.Player {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.players[guildID]
}

func (r *playerRegistry) getOrCreate(guildID string, create func() voice.Player) voice.Player {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.players[guildID]; ok {
		return p
	}
	p := create()
	r.players[guildID] = p
	return p
}

func (r *playerRegistry) delete(guildID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.players[guildID]
	delete(r.players, guildID)
	return ok
}

func (r *playerRegistry) len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.players)
}

// SelfManaged reports whether players live in the orchestrator's own registry.
func (o *Orchestrator) SelfManaged() bool {
	return o.players != nil
}

// EvictPlayer drops guildID from the built-in registry. It reports false when
// there was no such player or the caller manages players itself.
func (o *Orchestrator) EvictPlayer(guildID string) bool {
	if o.players == nil {
		return false
	}
	return o.players.delete(guildID)
}

// ResolveTracks loads tracks for query from node, or from the first registered
// node when node is nil. With no node registered it returns nil, nil.
func (o *Orchestrator) ResolveTracks(ctx context.Context, query voice.TrackQuery, node voice.Node) (_ *voice.LoadTrackResponse, err error) {
	if node == nil {
		if node = o.FirstNode(); node == nil {
			return nil, nil
		}
	}

	ctx, span := telemetry.Start(ctx, "orchestrator.ResolveTracks", attribute.String("query.identifier", query.Identifier()))
	defer span.End(&err)

	return node.LoadTracks(ctx, query)
}

// SpawnPlayer obtains the guild's player from the spawn handler, bound to node
// or to the first registered node when node is nil, and connects it. With no
// node registered it returns nil, nil.
func (o *Orchestrator) SpawnPlayer(ctx context.Context, opts voice.PlayerOptions, node voice.Node) (_ voice.Player, err error) {
	if node == nil {
		if node = o.FirstNode(); node == nil {
			return nil, nil
		}
	}

	ctx, span := telemetry.Start(ctx, "orchestrator.SpawnPlayer", attribute.String("guild.id", opts.GuildID))
	defer span.End(&err)

	p, err := o.spawn(ctx, opts.GuildID, opts, node)
	if err != nil {
		return nil, fmt.Errorf("spawning player for guild %s: %w", opts.GuildID, err)
	}
	if isNilPlayer(p) {
		return nil, fmt.Errorf("spawning player for guild %s: spawn handler returned no player", opts.GuildID)
	}
	if err := p.Connect(ctx); err != nil {
		return nil, fmt.Errorf("connecting player for guild %s: %w", opts.GuildID, err)
	}

	log.Debug(log.CatPlayer, "Player connected", "guild", opts.GuildID, "channel", opts.VoiceID)
	o.Publish(voice.NewEvent(voice.EventPlayerSpawned, p).WithGuild(opts.GuildID))
	return p, nil
}

// FetchPlayer returns the guild's player from the fetch handler, or nil.
func (o *Orchestrator) FetchPlayer(ctx context.Context, guildID string) (voice.Player, error) {
	return o.fetch(ctx, guildID)
}

func (o *Orchestrator) defaultSpawnPlayer(_ context.Context, guildID string, opts voice.PlayerOptions, node voice.Node) (voice.Player, error) {
	return o.players.getOrCreate(guildID, func() voice.Player {
		log.Debug(log.CatPlayer, "Creating player", "guild", guildID)
		return o.newPlayer(opts, node, o)
	}), nil
}

func (o *Orchestrator) defaultFetchPlayer(_ context.Context, guildID string) (voice.Player, error) {
	return o.players.get(guildID), nil
}

// isNilPlayer reports whether p is nil or an interface holding a nil pointer.
func isNilPlayer(p voice.Player) bool {
	if p == nil {
		return true
	}
	v := reflect.ValueOf(p)
	return v.Kind() == reflect.Pointer && v.IsNil()
}
