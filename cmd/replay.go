package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zjrosen/voxlink/internal/health"
	"github.com/zjrosen/voxlink/internal/log"
	"github.com/zjrosen/voxlink/internal/orchestrator"
	"github.com/zjrosen/voxlink/internal/voice"
)

var replayOpts struct {
	file     string
	players  []string
	watch    bool
	failFast bool
	timeout  time.Duration
}

var replayCmd = &cobra.Command{
	Use:   "replay",
	Short: "Route recorded gateway dispatches through the orchestrator",
	Long: `Connect the configured nodes, spawn the requested players, then read gateway
dispatches as JSON values {"t": "VOICE_STATE_UPDATE", "d": {...}} from a file or
stdin and route each one. Outbound voice payloads are printed to stdout.`,
	Example: `  voxlink replay --player 81384788765712384:127121515262115840 --file dispatches.jsonl
  cat dispatches.jsonl | voxlink replay`,
	Args: cobra.NoArgs,
	RunE: runReplay,
}

func init() {
	f := replayCmd.Flags()
	f.StringVarP(&replayOpts.file, "file", "f", "", "read dispatches from file instead of stdin")
	f.StringSliceVar(&replayOpts.players, "player", nil, "spawn a player before replaying, as guild:channel (repeatable)")
	f.BoolVar(&replayOpts.watch, "watch", true, "apply client_name changes from the config file while running")
	f.BoolVar(&replayOpts.failFast, "fail-fast", false, "stop at the first dispatch a node fails to handle")
	f.DurationVar(&replayOpts.timeout, "heartbeat-timeout", health.DefaultPolicy().HeartbeatTimeout, "report nodes silent for longer than this")

	rootCmd.AddCommand(replayCmd)
}

// dispatch is a gateway dispatch frame. Fields other than t and d are ignored.
type dispatch struct {
	T voice.PacketType `json:"t"`
	D json.RawMessage  `json:"d"`
}

func runReplay(cmd *cobra.Command, _ []string) error {
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	players, err := parsePlayers(replayOpts.players)
	if err != nil {
		return err
	}

	in := cmd.InOrStdin()
	if replayOpts.file != "" {
		f, err := os.Open(replayOpts.file)
		if err != nil {
			return fmt.Errorf("opening dispatch file: %w", err)
		}
		defer func() { _ = f.Close() }()
		in = f
	}

	orch, err := newOrchestrator(cmd.OutOrStdout())
	if err != nil {
		return err
	}
	defer func() { _ = orch.Close() }()

	events := orch.Events().Subscribe(ctx)
	log.SafeGo("replay-events", func() {
		for ev := range events {
			log.Debug(log.CatOrch, "Event", "type", ev.Payload.Type, "node", ev.Payload.NodeID, "guild", ev.Payload.GuildID)
		}
	})

	policy := health.Policy{HeartbeatTimeout: replayOpts.timeout}
	if err := policy.Validate(); err != nil {
		return fmt.Errorf("invalid --heartbeat-timeout: %w", err)
	}
	monitor := health.NewMonitor(health.Config{
		Policy:  policy,
		Events:  orch.Events(),
		OnEvent: logHealthEvent,
	})
	if err := monitor.Start(ctx); err != nil {
		return err
	}
	defer monitor.Stop()

	if replayOpts.watch && viper.ConfigFileUsed() != "" {
		watchClientName(orch)
	}

	if _, err := orch.Initialize(ctx, cfg.ClientID); err != nil {
		return err
	}
	for _, p := range players {
		if _, err := orch.SpawnPlayer(ctx, p, nil); err != nil {
			return err
		}
	}

	routed, failed, err := replay(ctx, orch, in, replayOpts.failFast)
	log.Info(log.CatGateway, "Replay finished", "routed", routed, "failed", failed)
	return err
}

// replay routes every dispatch read from r. With failFast the first routing
// error ends the replay; otherwise routing errors are logged and counted.
func replay(ctx context.Context, orch *orchestrator.Orchestrator, r io.Reader, failFast bool) (routed, failed int, err error) {
	dec := json.NewDecoder(r)
	for {
		var d dispatch
		if err := dec.Decode(&d); err != nil {
			if errors.Is(err, io.EOF) {
				return routed, failed, nil
			}
			return routed, failed, fmt.Errorf("reading dispatch %d: %w", routed+failed+1, err)
		}
		if err := ctx.Err(); err != nil {
			return routed, failed, err
		}

		if err := orch.HandleRawPacket(ctx, d.T, d.D); err != nil {
			failed++
			if failFast {
				return routed, failed, err
			}
			log.ErrorErr(log.CatGateway, "Dispatch failed", err, "type", d.T)
			continue
		}
		routed++
	}
}

func parsePlayers(specs []string) ([]voice.PlayerOptions, error) {
	out := make([]voice.PlayerOptions, 0, len(specs))
	for _, s := range specs {
		guildID, channelID, ok := strings.Cut(s, ":")
		if !ok || guildID == "" || channelID == "" {
			return nil, fmt.Errorf("invalid --player %q: want guild:channel", s)
		}
		out = append(out, voice.PlayerOptions{GuildID: guildID, VoiceID: channelID})
	}
	return out, nil
}

func logHealthEvent(e health.Event) {
	switch e.Type {
	case health.EventRecovered:
		log.Info(log.CatNode, "Node recovered", "node", e.NodeID)
	default:
		log.Warn(log.CatNode, "Node unhealthy", "node", e.NodeID, "reason", e.Type, "details", e.Details)
	}
}

// watchClientName applies client_name edits to orch. Nodes read the name on
// every REST request, so a rename reaches the next track lookup.
func watchClientName(orch *orchestrator.Orchestrator) {
	viper.OnConfigChange(clientNameChanged(orch))
	viper.WatchConfig()
}

func clientNameChanged(orch *orchestrator.Orchestrator) func(fsnotify.Event) {
	return func(e fsnotify.Event) {
		name := viper.GetString("client_name")
		if name == "" || name == orch.ClientName() {
			return
		}
		log.Info(log.CatConfig, "Client name changed", "file", e.Name, "client_name", name)
		orch.SetClientName(name)
	}
}
