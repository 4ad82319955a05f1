package voice

import "strings"

// NodeOptions describes one backend node. The orchestrator only reads and
// writes Identifier; the remaining fields belong to the node implementation.
type NodeOptions struct {
	// Identifier keys the node in the registry. When empty a random one is
	// generated and written back here once the node has connected.
	Identifier string `mapstructure:"identifier" yaml:"identifier,omitempty"`
	// URL is host:port of the backend, without scheme.
	URL      string `mapstructure:"url" yaml:"url"`
	Password string `mapstructure:"password" yaml:"password,omitempty"`
	// Secure selects wss/https instead of ws/http.
	Secure bool `mapstructure:"secure" yaml:"secure,omitempty"`
}

// WebSocketURL returns the websocket endpoint of the node.
func (o NodeOptions) WebSocketURL() string {
	if o.Secure {
		return "wss://" + trimScheme(o.URL)
	}
	return "ws://" + trimScheme(o.URL)
}

// RestURL returns the HTTP base URL of the node.
func (o NodeOptions) RestURL() string {
	if o.Secure {
		return "https://" + trimScheme(o.URL)
	}
	return "http://" + trimScheme(o.URL)
}

func trimScheme(u string) string {
	for _, p := range []string{"wss://", "ws://", "https://", "http://"} {
		if strings.HasPrefix(u, p) {
			return strings.TrimSuffix(strings.TrimPrefix(u, p), "/")
		}
	}
	return strings.TrimSuffix(u, "/")
}

// PlayerOptions configures a per-guild player.
type PlayerOptions struct {
	GuildID string `json:"guild_id"`
	// VoiceID is the voice channel to join.
	VoiceID  string `json:"voice_id"`
	SelfDeaf bool   `json:"self_deaf"`
	SelfMute bool   `json:"self_mute"`
}
