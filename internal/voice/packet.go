package voice

import (
	"github.com/bwmarrin/discordgo"
)

// PacketType is the top-level "t" tag of a gateway dispatch.
type PacketType string

const (
	PacketVoiceServerUpdate PacketType = "VOICE_SERVER_UPDATE"
	PacketVoiceStateUpdate  PacketType = "VOICE_STATE_UPDATE"
)

type (
	// VoiceServerUpdate carries the voice endpoint and token for a guild.
	VoiceServerUpdate = discordgo.VoiceServerUpdate
	// VoiceStateUpdate carries a user's voice session for a guild.
	VoiceStateUpdate = discordgo.VoiceStateUpdate
)
