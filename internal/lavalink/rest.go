package lavalink

import (
	"context"
	"fmt"

	"github.com/zjrosen/voxlink/internal/voice"
)

// LoadTracks queries the node's /loadtracks endpoint.
func (n *Node) LoadTracks(ctx context.Context, query voice.TrackQuery) (*voice.LoadTrackResponse, error) {
	var out voice.LoadTrackResponse
	resp, err := n.rest.R().
		SetContext(ctx).
		SetQueryParam("identifier", query.Identifier()).
		SetResult(&out).
		Get("/loadtracks")
	if err != nil {
		return nil, fmt.Errorf("loading tracks from node %s: %w", n.ID(), err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("loading tracks from node %s: unexpected status %d", n.ID(), resp.StatusCode())
	}
	return &out, nil
}
