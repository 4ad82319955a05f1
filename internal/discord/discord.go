// Package discord adapts a discordgo session to the orchestrator: outbound
// voice payloads go out through the session, inbound voice dispatches are
// routed to the orchestrator.
package discord

import (
	"context"
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/zjrosen/voxlink/internal/log"
	"github.com/zjrosen/voxlink/internal/voice"
)

// RouteTimeout bounds how long one dispatch may spend in the router.
const RouteTimeout = 10 * time.Second

// VoiceJoiner sends opcode 4 frames. *discordgo.Session implements it; an
// empty channel ID leaves voice.
type VoiceJoiner interface {
	ChannelVoiceJoinManual(gID, cID string, mute, deaf bool) error
}

// HandlerAdder registers gateway event handlers. *discordgo.Session implements it.
type HandlerAdder interface {
	AddHandler(handler any) func()
}

// Router receives decoded voice dispatches.
type Router interface {
	HandleVoiceServerUpdate(ctx context.Context, packet *voice.VoiceServerUpdate) error
	HandleVoiceStateUpdate(ctx context.Context, packet *voice.VoiceStateUpdate) error
}

var (
	_ VoiceJoiner  = (*discordgo.Session)(nil)
	_ HandlerAdder = (*discordgo.Session)(nil)
)

// Sender returns a voice.SendFunc that delivers payloads through j.
func Sender(j VoiceJoiner) voice.SendFunc {
	return func(_ context.Context, guildID string, payload voice.VoicePayload) error {
		channelID := ""
		if !payload.Leaving() {
			channelID = *payload.D.ChannelID
		}
		if guildID == "" {
			guildID = payload.D.GuildID
		}
		if err := j.ChannelVoiceJoinManual(guildID, channelID, payload.D.SelfMute, payload.D.SelfDeaf); err != nil {
			return fmt.Errorf("sending voice state update for guild %s: %w", guildID, err)
		}
		log.Debug(log.CatGateway, "Voice state update sent", "guild", guildID, "channel", channelID)
		return nil
	}
}

// Bind registers handlers on s that forward voice dispatches to r. The
// returned function removes them.
func Bind(s HandlerAdder, r Router) func() {
	removeServer := s.AddHandler(ServerUpdateHandler(r))
	removeState := s.AddHandler(StateUpdateHandler(r))
	return func() {
		removeServer()
		removeState()
	}
}

// ServerUpdateHandler returns a discordgo handler routing VOICE_SERVER_UPDATE to r.
func ServerUpdateHandler(r Router) func(*discordgo.Session, *discordgo.VoiceServerUpdate) {
	return func(_ *discordgo.Session, v *discordgo.VoiceServerUpdate) {
		ctx, cancel := context.WithTimeout(context.Background(), RouteTimeout)
		defer cancel()
		if err := r.HandleVoiceServerUpdate(ctx, v); err != nil {
			log.ErrorErr(log.CatGateway, "Routing voice server update failed", err, "guild", v.GuildID)
		}
	}
}

// StateUpdateHandler returns a discordgo handler routing VOICE_STATE_UPDATE to r.
func StateUpdateHandler(r Router) func(*discordgo.Session, *discordgo.VoiceStateUpdate) {
	return func(_ *discordgo.Session, v *discordgo.VoiceStateUpdate) {
		ctx, cancel := context.WithTimeout(context.Background(), RouteTimeout)
		defer cancel()
		if err := r.HandleVoiceStateUpdate(ctx, v); err != nil {
			guildID := ""
			if v.VoiceState != nil {
				guildID = v.GuildID
			}
			log.ErrorErr(log.CatGateway, "Routing voice state update failed", err, "guild", guildID)
		}
	}
}
