package cmd

import (
	"context"
	"encoding/json"
	"io"
	"sync"

	"github.com/zjrosen/voxlink/internal/orchestrator"
	"github.com/zjrosen/voxlink/internal/voice"
)

// nodeFactory replaces the Lavalink node when set. Tests use it to avoid a backend.
var nodeFactory orchestrator.NodeFactory

// newOrchestrator builds an orchestrator from the loaded config whose send
// function prints each outbound payload to out as one JSON line.
func newOrchestrator(out io.Writer) (*orchestrator.Orchestrator, error) {
	return orchestrator.New(orchestrator.Config{
		Send:        writeSender(out),
		Nodes:       cfg.NodeDescriptors(),
		ClientID:    cfg.ClientID,
		ClientName:  cfg.ClientName,
		NodeFactory: nodeFactory,
	})
}

type sentPayload struct {
	GuildID string             `json:"guild"`
	Payload voice.VoicePayload `json:"payload"`
}

func writeSender(w io.Writer) voice.SendFunc {
	var mu sync.Mutex
	enc := json.NewEncoder(w)
	return func(_ context.Context, guildID string, payload voice.VoicePayload) error {
		mu.Lock()
		defer mu.Unlock()
		return enc.Encode(sentPayload{GuildID: guildID, Payload: payload})
	}
}
