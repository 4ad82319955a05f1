package cmd

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/voxlink/internal/orchestrator"
	"github.com/zjrosen/voxlink/internal/voice"
	"github.com/zjrosen/voxlink/internal/voice/mocks"
)

// execute runs the root command with args in an isolated HOME and returns stdout.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	viper.Reset()
	cfgFile = ""
	resetFlags(rootCmd)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	return out.String(), err
}

// useNode makes every configured node resolve to node for the rest of the test.
func useNode(t *testing.T, node voice.Node) {
	t.Helper()
	nodeFactory = func(*voice.NodeOptions, voice.Host) voice.Node { return node }
	t.Cleanup(func() { nodeFactory = nil })
}

// resetFlags restores every flag to its default so tests do not leak into each other.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	c.PersistentFlags().VisitAll(reset)
	c.Flags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func writeConfig(t *testing.T, yaml string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "voxlink.yaml")
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0600))
	return path
}

func TestPayloadCommand(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{
			name: "join",
			args: []string{"payload", "--guild", "g1", "--channel", "c1"},
			want: `{"op":4,"d":{"guild_id":"g1","channel_id":"c1","self_deaf":false,"self_mute":false}}`,
		},
		{
			name: "leave keeps flags",
			args: []string{"payload", "--guild", "g1", "--leave", "--self-deaf"},
			want: `{"op":4,"d":{"guild_id":"g1","channel_id":null,"self_deaf":true,"self_mute":false}}`,
		},
		{
			name: "muted join",
			args: []string{"payload", "--guild", "g1", "--channel", "c1", "--self-mute", "--indent"},
			want: `{"op":4,"d":{"guild_id":"g1","channel_id":"c1","self_deaf":false,"self_mute":true}}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, "", tt.args...)
			require.NoError(t, err)
			require.JSONEq(t, tt.want, out)
		})
	}
}

func TestPayloadCommand_Validation(t *testing.T) {
	_, err := execute(t, "", "payload", "--channel", "c1")
	require.ErrorContains(t, err, `"guild" not set`)

	_, err = execute(t, "", "payload", "--guild", "g1")
	require.ErrorContains(t, err, "--channel is required")
}

func TestConfigCommand(t *testing.T) {
	path := writeConfig(t, `
client_name: from-file
nodes:
  - identifier: eu
    url: eu.example.com:2333
`)
	t.Setenv("VOXLINK_CLIENT_ID", "from-env")

	out, err := execute(t, "", "--config", path, "config")

	require.NoError(t, err)
	require.Contains(t, out, "client_id: from-env")
	require.Contains(t, out, "client_name: from-file")
	require.Contains(t, out, "identifier: eu")
	require.NotContains(t, out, "youshallnotpass")
}

func TestConfigCommand_MissingExplicitFile(t *testing.T) {
	_, err := execute(t, "", "--config", filepath.Join(t.TempDir(), "missing.yaml"), "config")

	require.ErrorContains(t, err, "reading config")
}

func TestConfigCommand_InvalidConfig(t *testing.T) {
	path := writeConfig(t, `
tracing:
  exporter: jaeger
`)
	_, err := execute(t, "", "--config", path, "config")

	require.ErrorContains(t, err, "unknown exporter")
}

func TestConfigInitCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "voxlink.yaml")

	out, err := execute(t, "", "config", "init", path)
	require.NoError(t, err)
	require.Contains(t, out, "Wrote "+path)

	_, err = execute(t, "", "config", "init", path)
	require.ErrorContains(t, err, "already exists")

	_, err = execute(t, "", "config", "init", "--force", path)
	require.NoError(t, err)

	out, err = execute(t, "", "--config", path, "nodes")
	require.NoError(t, err)
	require.Contains(t, out, "* local")
	require.Contains(t, out, "ws://localhost:2333")
}

func TestNodesCommand_GeneratedIdentifier(t *testing.T) {
	path := writeConfig(t, `
nodes:
  - url: a.example.com:2333
  - identifier: b
    url: b.example.com:443
    secure: true
`)
	out, err := execute(t, "", "--config", path, "nodes")

	require.NoError(t, err)
	require.Contains(t, out, "* (generated)  ws://a.example.com:2333")
	require.Contains(t, out, "wss://b.example.com:443")
}

func TestResolveCommand(t *testing.T) {
	node := mocks.NewMockNode(t)
	node.EXPECT().Connect(mock.Anything).Return(nil)
	node.EXPECT().Close().Return(nil)
	node.EXPECT().
		LoadTracks(mock.Anything, mock.MatchedBy(func(q voice.TrackQuery) bool { return q.Identifier() == "scsearch:lofi" })).
		Return(&voice.LoadTrackResponse{
			LoadType: voice.LoadSearchResult,
			Tracks:   []voice.Track{{Track: "QAAA", Info: voice.TrackInfo{Title: "lofi beats", Identifier: "abc"}}},
		}, nil)

	useNode(t, node)
	out, err := execute(t, "", "resolve", "--client-id", "bot", "--source", "sc", "lofi")

	require.NoError(t, err)
	require.Contains(t, out, `"loadType": "SEARCH_RESULT"`)
	require.Contains(t, out, `"title": "lofi beats"`)
}

func TestResolveCommand_Errors(t *testing.T) {
	t.Run("no client id", func(t *testing.T) {
		useNode(t, mocks.NewMockNode(t))
		_, err := execute(t, "", "resolve", "lofi")
		require.ErrorContains(t, err, "clientId")
	})

	t.Run("unknown node", func(t *testing.T) {
		node := mocks.NewMockNode(t)
		node.EXPECT().Connect(mock.Anything).Return(nil)
		node.EXPECT().Close().Return(nil)

		useNode(t, node)
		_, err := execute(t, "", "resolve", "--client-id", "bot", "--node", "nope", "lofi")
		require.ErrorContains(t, err, `unknown node "nope"`)
	})

	t.Run("node failure", func(t *testing.T) {
		loadErr := errors.New("loadtracks returned 500")
		node := mocks.NewMockNode(t)
		node.EXPECT().Connect(mock.Anything).Return(nil)
		node.EXPECT().Close().Return(nil)
		node.EXPECT().LoadTracks(mock.Anything, voice.RawQuery("https://example.com/a.mp3")).Return(nil, loadErr)

		useNode(t, node)
		_, err := execute(t, "", "resolve", "--client-id", "bot", "--raw", "--node", "local", "https://example.com/a.mp3")
		require.ErrorIs(t, err, loadErr)
	})
}

// replayNode records routed packets for the guilds it is asked about.
type replayNode struct {
	mu       sync.Mutex
	servers  []string
	states   []string
	stateErr error
}

func (n *replayNode) Connect(context.Context) error { return nil }
func (n *replayNode) Close() error                  { return nil }

func (n *replayNode) HandleVoiceServerUpdate(_ context.Context, p *voice.VoiceServerUpdate) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.servers = append(n.servers, p.GuildID+"/"+p.Endpoint)
	return nil
}

func (n *replayNode) HandleVoiceStateUpdate(_ context.Context, p *voice.VoiceStateUpdate) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.states = append(n.states, p.GuildID+"/"+p.SessionID)
	return n.stateErr
}

func (n *replayNode) LoadTracks(context.Context, voice.TrackQuery) (*voice.LoadTrackResponse, error) {
	return nil, nil
}

const dispatches = `{"op":0,"s":12,"t":"VOICE_STATE_UPDATE","d":{"guild_id":"g1","channel_id":"c1","user_id":"bot","session_id":"s1"}}
{"op":0,"s":13,"t":"MESSAGE_CREATE","d":{"content":"hi"}}
{"op":0,"s":14,"t":"VOICE_SERVER_UPDATE","d":{"guild_id":"g1","token":"tok","endpoint":"eu.discord.media"}}
`

func TestReplayCommand(t *testing.T) {
	node := &replayNode{}
	useNode(t, node)

	out, err := execute(t, dispatches, "replay", "--client-id", "bot", "--player", "g1:c1")

	require.NoError(t, err)
	require.JSONEq(t,
		`{"guild":"g1","payload":{"op":4,"d":{"guild_id":"g1","channel_id":"c1","self_deaf":false,"self_mute":false}}}`,
		strings.TrimSpace(out))
	require.Equal(t, []string{"g1/s1"}, node.states)
	require.Equal(t, []string{"g1/eu.discord.media"}, node.servers)
}

func TestReplayCommand_FromFile(t *testing.T) {
	node := &replayNode{}
	useNode(t, node)
	path := filepath.Join(t.TempDir(), "dispatches.jsonl")
	require.NoError(t, os.WriteFile(path, []byte(dispatches), 0600))

	_, err := execute(t, "", "replay", "--client-id", "bot", "--file", path)

	require.NoError(t, err)
	require.Len(t, node.states, 1)
	require.Len(t, node.servers, 1)
}

func TestReplayCommand_NodeErrors(t *testing.T) {
	stateErr := errors.New("session rejected")

	t.Run("logged and skipped", func(t *testing.T) {
		node := &replayNode{stateErr: stateErr}
		useNode(t, node)

		_, err := execute(t, dispatches, "replay", "--client-id", "bot")

		require.NoError(t, err)
		require.Len(t, node.servers, 1)
	})

	t.Run("fail fast", func(t *testing.T) {
		node := &replayNode{stateErr: stateErr}
		useNode(t, node)

		_, err := execute(t, dispatches, "replay", "--client-id", "bot", "--fail-fast")

		require.ErrorIs(t, err, stateErr)
		require.Empty(t, node.servers)
	})
}

func TestReplayCommand_MalformedInput(t *testing.T) {
	useNode(t, &replayNode{})

	_, err := execute(t, `{"t":"VOICE_STATE_UPDATE","d":`, "replay", "--client-id", "bot")

	require.ErrorContains(t, err, "reading dispatch 1")
}

func TestParsePlayers(t *testing.T) {
	got, err := parsePlayers([]string{"g1:c1", "g2:c2"})
	require.NoError(t, err)
	require.Equal(t, []voice.PlayerOptions{{GuildID: "g1", VoiceID: "c1"}, {GuildID: "g2", VoiceID: "c2"}}, got)

	for _, bad := range []string{"g1", ":c1", "g1:", ""} {
		_, err := parsePlayers([]string{bad})
		require.Error(t, err, bad)
	}
}

func TestReplayCommand_RejectsHeartbeatTimeout(t *testing.T) {
	useNode(t, &replayNode{})

	_, err := execute(t, "", "replay", "--client-id", "bot", "--heartbeat-timeout", "0s")

	require.ErrorContains(t, err, "heartbeat_timeout must be positive")
}

func TestClientNameChanged_RenamesConnectedHost(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	var host voice.Host
	orch, err := orchestrator.New(orchestrator.Config{
		Send:       writeSender(io.Discard),
		Nodes:      []*voice.NodeOptions{{Identifier: "local", URL: "localhost:2333"}},
		ClientID:   "42",
		ClientName: "voxlink",
		NodeFactory: func(opts *voice.NodeOptions, h voice.Host) voice.Node {
			host = h
			return &replayNode{}
		},
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = orch.Close() })
	_, err = orch.Initialize(context.Background(), "")
	require.NoError(t, err)
	require.NotNil(t, host)

	onChange := clientNameChanged(orch)

	viper.Set("client_name", "")
	onChange(fsnotify.Event{Name: "config.yaml", Op: fsnotify.Write})
	require.Equal(t, "voxlink", host.ClientName())

	viper.Set("client_name", "voxlink-renamed")
	onChange(fsnotify.Event{Name: "config.yaml", Op: fsnotify.Write})
	require.Equal(t, "voxlink-renamed", host.ClientName())
}
