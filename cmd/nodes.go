package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zjrosen/voxlink/internal/voice"
)

var nodesCmd = &cobra.Command{
	Use:   "nodes",
	Short: "List configured nodes",
	Long:  `Display every configured node in connection order. The first node is the default for track resolution and new players.`,
	Args:  cobra.NoArgs,
	RunE:  runNodes,
}

func init() {
	rootCmd.AddCommand(nodesCmd)
}

func runNodes(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()

	fmt.Fprintln(out, "Nodes:")
	maxLen := maxIDLen(cfg.Nodes)
	for i, n := range cfg.Nodes {
		id := n.Identifier
		if id == "" {
			id = "(generated)"
		}
		marker := " "
		if i == 0 {
			marker = "*"
		}
		fmt.Fprintf(out, "%s %-*s  %s  %s\n", marker, maxLen, id, n.WebSocketURL(), n.RestURL())
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "* default node")
	return nil
}

// maxIDLen returns the width of the longest node identifier column.
func maxIDLen(nodes []voice.NodeOptions) int {
	maxLen := len("(generated)")
	for _, n := range nodes {
		if len(n.Identifier) > maxLen {
			maxLen = len(n.Identifier)
		}
	}
	return maxLen
}
