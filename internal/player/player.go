// Package player provides the default per-guild player used when the host
// lets the orchestrator manage players itself.
package player

import (
	"context"
	"fmt"
	"sync"

	"github.com/zjrosen/voxlink/internal/log"
	"github.com/zjrosen/voxlink/internal/voice"
)

// Player joins and leaves a guild's voice channel through its host. Playback
// state lives on the backend node.
type Player struct {
	host voice.Host
	node voice.Node

	mu        sync.RWMutex
	opts      voice.PlayerOptions
	connected bool
}

// New creates a player for opts bound to node.
func New(opts voice.PlayerOptions, node voice.Node, host voice.Host) voice.Player {
	return &Player{
		host: host,
		node: node,
		opts: opts,
	}
}

func (p *Player) GuildID() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.opts.GuildID
}

func (p *Player) Node() voice.Node {
	return p.node
}

// Options returns a copy of the player's options.
func (p *Player) Options() voice.PlayerOptions {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.opts
}

// Connected reports whether the last voice payload sent was a join.
func (p *Player) Connected() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.connected
}

// Connect sends the join payload for the configured voice channel.
func (p *Player) Connect(ctx context.Context) error {
	return p.send(ctx, false)
}

// Disconnect sends the leave payload.
func (p *Player) Disconnect(ctx context.Context) error {
	return p.send(ctx, true)
}

// MoveTo switches the player to another voice channel and sends the join payload.
func (p *Player) MoveTo(ctx context.Context, voiceID string) error {
	p.mu.Lock()
	p.opts.VoiceID = voiceID
	p.mu.Unlock()
	return p.send(ctx, false)
}

func (p *Player) send(ctx context.Context, leave bool) error {
	opts := p.Options()
	payload := voice.CreateVoiceChannelPayload(opts, leave)

	if err := p.host.Send(ctx, opts.GuildID, payload); err != nil {
		return fmt.Errorf("sending voice payload for guild %s: %w", opts.GuildID, err)
	}

	p.mu.Lock()
	p.connected = !leave
	p.mu.Unlock()

	log.Debug(log.CatPlayer, "Voice payload sent", "guild", opts.GuildID, "channel", opts.VoiceID, "leave", leave)
	return nil
}
