// Package voice defines the contracts shared by the orchestrator and its
// collaborators: backend node connections, per-guild players, the packets
// they exchange and the outbound voice-state payload.
package voice

import (
	"context"
)

// SendFunc delivers an outbound gateway payload for a guild. The host
// application owns the gateway connection; voxlink only builds payloads.
type SendFunc func(ctx context.Context, guildID string, payload VoicePayload) error

// Node is one connection to an audio-routing backend.
//
// A node receives every voice packet the host feeds the orchestrator and is
// responsible for correlating server and state updates for the guilds whose
// players it hosts.
type Node interface {
	// Connect establishes the backend connection.
	Connect(ctx context.Context) error

	// HandleVoiceServerUpdate processes a VOICE_SERVER_UPDATE dispatch.
	HandleVoiceServerUpdate(ctx context.Context, packet *VoiceServerUpdate) error

	// HandleVoiceStateUpdate processes a VOICE_STATE_UPDATE dispatch.
	HandleVoiceStateUpdate(ctx context.Context, packet *VoiceStateUpdate) error

	// LoadTracks resolves a search query into tracks.
	LoadTracks(ctx context.Context, query TrackQuery) (*LoadTrackResponse, error)

	// Close releases the backend connection.
	Close() error
}

// Player is a per-guild audio session bound to exactly one node.
type Player interface {
	GuildID() string
	Node() Node
	// Connect asks the gateway to join the player's voice channel.
	Connect(ctx context.Context) error
}

// Host is the orchestrator as seen by the nodes and players bound to it.
type Host interface {
	ClientID() string
	ClientName() string
	Send(ctx context.Context, guildID string, payload VoicePayload) error
	// FetchPlayer returns the player for guildID, or nil when there is none.
	FetchPlayer(ctx context.Context, guildID string) (Player, error)
	Publish(event Event)
}
