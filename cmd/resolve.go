package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zjrosen/voxlink/internal/voice"
)

var resolveOpts struct {
	source string
	nodeID string
	raw    bool
}

var resolveCmd = &cobra.Command{
	Use:   "resolve <query>",
	Short: "Resolve a search query into tracks through a node",
	Long: `Connect the configured nodes and load tracks for a query. Without --node
the first configured node is used.`,
	Example: `  voxlink resolve "never gonna give you up"
  voxlink resolve --source sc "lofi"
  voxlink resolve --raw https://www.youtube.com/watch?v=dQw4w9WgXcQ`,
	Args: cobra.ExactArgs(1),
	RunE: runResolve,
}

func init() {
	f := resolveCmd.Flags()
	f.StringVar(&resolveOpts.source, "source", "", "search source prefix (default yt)")
	f.StringVar(&resolveOpts.nodeID, "node", "", "identifier of the node to query")
	f.BoolVar(&resolveOpts.raw, "raw", false, "pass the query to the node verbatim")

	rootCmd.AddCommand(resolveCmd)
}

func runResolve(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	orch, err := newOrchestrator(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer func() { _ = orch.Close() }()

	if _, err := orch.Initialize(ctx, cfg.ClientID); err != nil {
		return err
	}

	var node voice.Node
	if resolveOpts.nodeID != "" {
		n, ok := orch.Node(resolveOpts.nodeID)
		if !ok {
			return fmt.Errorf("unknown node %q", resolveOpts.nodeID)
		}
		node = n
	}

	query := voice.TrackQuery{Source: resolveOpts.source, Query: args[0]}
	if resolveOpts.raw {
		query = voice.RawQuery(args[0])
	}

	resp, err := orch.ResolveTracks(ctx, query, node)
	if err != nil {
		return fmt.Errorf("resolving %q: %w", query.Identifier(), err)
	}
	if resp == nil {
		return fmt.Errorf("no node available")
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(resp)
}
