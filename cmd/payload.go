package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zjrosen/voxlink/internal/voice"
)

var payloadOpts struct {
	guildID   string
	channelID string
	leave     bool
	selfDeaf  bool
	selfMute  bool
	indent    bool
}

var payloadCmd = &cobra.Command{
	Use:   "payload",
	Short: "Print a voice state update payload",
	Long: `Build the opcode 4 gateway payload that joins or leaves a voice channel
and print it as JSON.`,
	Example: `  voxlink payload --guild 81384788765712384 --channel 127121515262115840
  voxlink payload --guild 81384788765712384 --leave`,
	Args: cobra.NoArgs,
	RunE: runPayload,
}

func init() {
	f := payloadCmd.Flags()
	f.StringVar(&payloadOpts.guildID, "guild", "", "guild ID (required)")
	f.StringVar(&payloadOpts.channelID, "channel", "", "voice channel ID to join")
	f.BoolVar(&payloadOpts.leave, "leave", false, "build the leave payload")
	f.BoolVar(&payloadOpts.selfDeaf, "self-deaf", false, "join deafened")
	f.BoolVar(&payloadOpts.selfMute, "self-mute", false, "join muted")
	f.BoolVar(&payloadOpts.indent, "indent", false, "indent the JSON output")
	_ = payloadCmd.MarkFlagRequired("guild")

	rootCmd.AddCommand(payloadCmd)
}

func runPayload(cmd *cobra.Command, _ []string) error {
	if !payloadOpts.leave && payloadOpts.channelID == "" {
		return fmt.Errorf("--channel is required unless --leave is set")
	}

	payload := voice.CreateVoiceChannelPayload(voice.PlayerOptions{
		GuildID:  payloadOpts.guildID,
		VoiceID:  payloadOpts.channelID,
		SelfDeaf: payloadOpts.selfDeaf,
		SelfMute: payloadOpts.selfMute,
	}, payloadOpts.leave)

	enc := json.NewEncoder(cmd.OutOrStdout())
	if payloadOpts.indent {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(payload)
}
