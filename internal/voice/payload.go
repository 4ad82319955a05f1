package voice

// OpVoiceStateUpdate is the gateway opcode for a voice state update.
const OpVoiceStateUpdate = 4

// VoicePayload is the outbound gateway frame that joins or leaves a voice channel.
type VoicePayload struct {
	Op int            `json:"op"`
	D  VoiceStateData `json:"d"`
}

// VoiceStateData is the body of a VoicePayload. A nil ChannelID leaves the channel.
type VoiceStateData struct {
	GuildID   string  `json:"guild_id"`
	ChannelID *string `json:"channel_id"`
	SelfDeaf  bool    `json:"self_deaf"`
	SelfMute  bool    `json:"self_mute"`
}

// CreateVoiceChannelPayload builds the join payload for opts, or the leave
// payload when leave is set. It does not modify opts.
func CreateVoiceChannelPayload(opts PlayerOptions, leave bool) VoicePayload {
	var channelID *string
	if !leave {
		id := opts.VoiceID
		channelID = &id
	}
	return VoicePayload{
		Op: OpVoiceStateUpdate,
		D: VoiceStateData{
			GuildID:   opts.GuildID,
			ChannelID: channelID,
			SelfDeaf:  opts.SelfDeaf,
			SelfMute:  opts.SelfMute,
		},
	}
}

// Leaving reports whether the payload disconnects from voice.
func (p VoicePayload) Leaving() bool {
	return p.D.ChannelID == nil
}
