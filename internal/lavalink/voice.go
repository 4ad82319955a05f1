package lavalink

import (
	"context"
	"fmt"

	"github.com/coder/websocket/wsjson"
	"github.com/patrickmn/go-cache"

	"github.com/zjrosen/voxlink/internal/log"
	"github.com/zjrosen/voxlink/internal/voice"
)

// voiceUpdateMessage is the "voiceUpdate" op sent to Lavalink once both halves
// of a guild's voice session are known.
type voiceUpdateMessage struct {
	Op        string                   `json:"op"`
	GuildID   string                   `json:"guildId"`
	SessionID string                   `json:"sessionId"`
	Event     *voice.VoiceServerUpdate `json:"event"`
}

// HandleVoiceStateUpdate records the bot's voice session ID for guilds whose
// player lives on this node. State updates for other users are ignored.
func (n *Node) HandleVoiceStateUpdate(ctx context.Context, packet *voice.VoiceStateUpdate) error {
	if packet == nil || packet.VoiceState == nil {
		return nil
	}
	if packet.UserID != n.host.ClientID() {
		return nil
	}
	guildID := packet.GuildID
	owned, err := n.ownsGuild(ctx, guildID)
	if err != nil || !owned {
		return err
	}

	if packet.ChannelID == "" {
		n.sessions.Delete(guildID)
		log.Debug(log.CatNode, "Voice session dropped", "node", n.ID(), "guild", guildID)
		return nil
	}

	return n.updateSession(ctx, guildID, func(s *voiceSession) {
		s.SessionID = packet.SessionID
	})
}

// HandleVoiceServerUpdate records the voice server for guilds whose player
// lives on this node.
func (n *Node) HandleVoiceServerUpdate(ctx context.Context, packet *voice.VoiceServerUpdate) error {
	if packet == nil {
		return nil
	}
	owned, err := n.ownsGuild(ctx, packet.GuildID)
	if err != nil || !owned {
		return err
	}

	return n.updateSession(ctx, packet.GuildID, func(s *voiceSession) {
		s.Server = packet
	})
}

func (n *Node) ownsGuild(ctx context.Context, guildID string) (bool, error) {
	p, err := n.host.FetchPlayer(ctx, guildID)
	if err != nil {
		return false, fmt.Errorf("fetching player for guild %s: %w", guildID, err)
	}
	if p == nil {
		return false, nil
	}
	return p.Node() == voice.Node(n), nil
}

func (n *Node) updateSession(ctx context.Context, guildID string, apply func(*voiceSession)) error {
	n.sessionMu.Lock()
	s := &voiceSession{}
	if v, ok := n.sessions.Get(guildID); ok {
		prev := v.(*voiceSession)
		*s = *prev
	}
	apply(s)
	ttl := cache.DefaultExpiration
	if s.complete() {
		ttl = cache.NoExpiration
	}
	n.sessions.Set(guildID, s, ttl)
	n.sessionMu.Unlock()

	if !s.complete() {
		return nil
	}
	return n.sendVoiceUpdate(ctx, guildID, s)
}

func (n *Node) sendVoiceUpdate(ctx context.Context, guildID string, s *voiceSession) error {
	n.mu.Lock()
	conn := n.conn
	n.mu.Unlock()
	if conn == nil {
		return ErrNotConnected
	}

	msg := voiceUpdateMessage{
		Op:        "voiceUpdate",
		GuildID:   guildID,
		SessionID: s.SessionID,
		Event:     s.Server,
	}
	if err := wsjson.Write(ctx, conn, msg); err != nil {
		return fmt.Errorf("sending voice update for guild %s: %w", guildID, err)
	}

	log.Debug(log.CatNode, "Voice update sent", "node", n.ID(), "guild", guildID, "endpoint", s.Server.Endpoint)
	n.host.Publish(voice.NewEvent(voice.EventVoiceUpdateSent, nil).WithNode(n.ID()).WithGuild(guildID))
	return nil
}
