package voice

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateVoiceChannelPayload_Join(t *testing.T) {
	payload := CreateVoiceChannelPayload(PlayerOptions{GuildID: "g1", VoiceID: "c1"}, false)

	data, err := json.Marshal(payload)
	require.NoError(t, err)
	assert.JSONEq(t, `{"op":4,"d":{"guild_id":"g1","channel_id":"c1","self_deaf":false,"self_mute":false}}`, string(data))
	assert.False(t, payload.Leaving())
}

func TestCreateVoiceChannelPayload_Leave(t *testing.T) {
	payload := CreateVoiceChannelPayload(PlayerOptions{GuildID: "g1", VoiceID: "c1"}, true)

	data, err := json.Marshal(payload)
	require.NoError(t, err)
	assert.JSONEq(t, `{"op":4,"d":{"guild_id":"g1","channel_id":null,"self_deaf":false,"self_mute":false}}`, string(data))
	assert.True(t, payload.Leaving())
}

func TestCreateVoiceChannelPayload_CarriesFlags(t *testing.T) {
	opts := PlayerOptions{GuildID: "g1", VoiceID: "c1", SelfDeaf: true, SelfMute: true}

	payload := CreateVoiceChannelPayload(opts, false)

	assert.True(t, payload.D.SelfDeaf)
	assert.True(t, payload.D.SelfMute)
}

func TestCreateVoiceChannelPayload_DoesNotAliasOptions(t *testing.T) {
	opts := PlayerOptions{GuildID: "g1", VoiceID: "c1"}
	payload := CreateVoiceChannelPayload(opts, false)

	*payload.D.ChannelID = "changed"

	assert.Equal(t, "c1", opts.VoiceID)
}

func TestTrackQuery_Identifier(t *testing.T) {
	tests := []struct {
		name  string
		query TrackQuery
		want  string
	}{
		{"raw url", RawQuery("https://example.com/track.mp3"), "https://example.com/track.mp3"},
		{"raw prefixed search", RawQuery("scsearch:lofi"), "scsearch:lofi"},
		{"structured default source", TrackQuery{Query: "lofi"}, "ytsearch:lofi"},
		{"structured with source", TrackQuery{Source: "sc", Query: "lofi"}, "scsearch:lofi"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, tt.query.Identifier())
		})
	}
}

func TestNodeOptions_URLs(t *testing.T) {
	plain := NodeOptions{URL: "localhost:2333"}
	assert.Equal(t, "ws://localhost:2333", plain.WebSocketURL())
	assert.Equal(t, "http://localhost:2333", plain.RestURL())

	secure := NodeOptions{URL: "https://lava.example.com/", Secure: true}
	assert.Equal(t, "wss://lava.example.com", secure.WebSocketURL())
	assert.Equal(t, "https://lava.example.com", secure.RestURL())
}

func TestNewEvent(t *testing.T) {
	e := NewEvent(EventNodeReady, nil).WithNode("abcd1234").WithGuild("g1")

	assert.NotEmpty(t, e.ID)
	assert.False(t, e.Timestamp.IsZero())
	assert.Equal(t, "abcd1234", e.NodeID)
	assert.Equal(t, "g1", e.GuildID)
	assert.NotEqual(t, e.ID, NewEvent(EventNodeReady, nil).ID)
}
