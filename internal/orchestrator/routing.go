package orchestrator

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"go.opentelemetry.io/otel/attribute"

	"github.com/zjrosen/voxlink/internal/log"
	"github.com/zjrosen/voxlink/internal/telemetry"
	"github.com/zjrosen/voxlink/internal/voice"
)

// HandleVoiceServerUpdate hands packet to every registered node in
// registration order. A node error stops delivery to the remaining nodes.
func (o *Orchestrator) HandleVoiceServerUpdate(ctx context.Context, packet *voice.VoiceServerUpdate) (err error) {
	guildID := ""
	if packet != nil {
		guildID = packet.GuildID
	}
	ctx, span := telemetry.Start(ctx, "orchestrator.HandleVoiceServerUpdate", attribute.String("guild.id", guildID))
	defer span.End(&err)

	for _, e := range o.snapshot() {
		if err := e.node.HandleVoiceServerUpdate(ctx, packet); err != nil {
			log.ErrorErr(log.CatGateway, "Node failed to handle voice server update", err, "node", e.id, "guild", guildID)
			return fmt.Errorf("node %s: voice server update: %w", e.id, err)
		}
	}

	o.Publish(voice.NewEvent(voice.EventPacketRouted, voice.PacketVoiceServerUpdate).WithGuild(guildID))
	return nil
}

// HandleVoiceStateUpdate hands packet to every registered node in
// registration order. A node error stops delivery to the remaining nodes.
func (o *Orchestrator) HandleVoiceStateUpdate(ctx context.Context, packet *voice.VoiceStateUpdate) (err error) {
	guildID := ""
	if packet != nil && packet.VoiceState != nil {
		guildID = packet.GuildID
	}
	ctx, span := telemetry.Start(ctx, "orchestrator.HandleVoiceStateUpdate", attribute.String("guild.id", guildID))
	defer span.End(&err)

	for _, e := range o.snapshot() {
		if err := e.node.HandleVoiceStateUpdate(ctx, packet); err != nil {
			log.ErrorErr(log.CatGateway, "Node failed to handle voice state update", err, "node", e.id, "guild", guildID)
			return fmt.Errorf("node %s: voice state update: %w", e.id, err)
		}
	}

	o.Publish(voice.NewEvent(voice.EventPacketRouted, voice.PacketVoiceStateUpdate).WithGuild(guildID))
	return nil
}

// HandleRawPacket decodes the "d" payload of a gateway dispatch according to
// its "t" tag and routes it. Tags other than the two voice updates are ignored.
func (o *Orchestrator) HandleRawPacket(ctx context.Context, t voice.PacketType, data json.RawMessage) error {
	switch t {
	case voice.PacketVoiceStateUpdate:
		var state discordgo.VoiceState
		if err := json.Unmarshal(data, &state); err != nil {
			return fmt.Errorf("decoding %s: %w", t, err)
		}
		return o.HandleVoiceStateUpdate(ctx, &voice.VoiceStateUpdate{VoiceState: &state})
	case voice.PacketVoiceServerUpdate:
		var server voice.VoiceServerUpdate
		if err := json.Unmarshal(data, &server); err != nil {
			return fmt.Errorf("decoding %s: %w", t, err)
		}
		return o.HandleVoiceServerUpdate(ctx, &server)
	default:
		return nil
	}
}
