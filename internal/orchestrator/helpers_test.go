package orchestrator

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/voxlink/internal/voice"
)

// callLog records node calls across all fake nodes so ordering can be checked.
type callLog struct {
	mu    sync.Mutex
	calls []string
}

func (l *callLog) add(format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.calls = append(l.calls, fmt.Sprintf(format, args...))
}

func (l *callLog) all() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.calls...)
}

// recordingNode is a voice.Node that only records what it is asked to do.
type recordingNode struct {
	id         string
	log        *callLog
	connectErr error
	tracks     *voice.LoadTrackResponse
	lastState  *voice.VoiceStateUpdate
	lastServer *voice.VoiceServerUpdate
	closed     bool
}

func (n *recordingNode) Connect(context.Context) error {
	n.log.add("%s:connect", n.id)
	return n.connectErr
}

func (n *recordingNode) HandleVoiceServerUpdate(_ context.Context, p *voice.VoiceServerUpdate) error {
	n.log.add("%s:server", n.id)
	n.lastServer = p
	return nil
}

func (n *recordingNode) HandleVoiceStateUpdate(_ context.Context, p *voice.VoiceStateUpdate) error {
	n.log.add("%s:state", n.id)
	n.lastState = p
	return nil
}

func (n *recordingNode) LoadTracks(_ context.Context, q voice.TrackQuery) (*voice.LoadTrackResponse, error) {
	n.log.add("%s:load:%s", n.id, q.Identifier())
	return n.tracks, nil
}

func (n *recordingNode) Close() error {
	n.closed = true
	return nil
}

// nodeFarm builds recordingNodes and remembers them by identifier.
type nodeFarm struct {
	log        callLog
	mu         sync.Mutex
	built      map[string]*recordingNode
	connectErr map[string]error
}

func newNodeFarm() *nodeFarm {
	return &nodeFarm{
		built:      make(map[string]*recordingNode),
		connectErr: make(map[string]error),
	}
}

func (f *nodeFarm) factory(opts *voice.NodeOptions, _ voice.Host) voice.Node {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := &recordingNode{
		id:         opts.Identifier,
		log:        &f.log,
		connectErr: f.connectErr[opts.Identifier],
		tracks:     &voice.LoadTrackResponse{LoadType: voice.LoadSearchResult},
	}
	f.built[opts.Identifier] = n
	return n
}

func (f *nodeFarm) node(id string) *recordingNode {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.built[id]
}

// sentPayloads records what the orchestrator asked the gateway to send.
type sentPayloads struct {
	mu       sync.Mutex
	payloads []voice.VoicePayload
}

func (s *sentPayloads) send(_ context.Context, _ string, p voice.VoicePayload) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.payloads = append(s.payloads, p)
	return nil
}

func (s *sentPayloads) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.payloads)
}

func descriptors(ids ...string) []*voice.NodeOptions {
	out := make([]*voice.NodeOptions, 0, len(ids))
	for _, id := range ids {
		out = append(out, &voice.NodeOptions{Identifier: id, URL: "localhost:2333"})
	}
	return out
}

// newTestOrchestrator builds an orchestrator on a nodeFarm; mutate adjusts the config.
func newTestOrchestrator(t *testing.T, farm *nodeFarm, mutate func(*Config)) *Orchestrator {
	t.Helper()
	sent := &sentPayloads{}
	cfg := Config{
		Send:        sent.send,
		Nodes:       descriptors("a"),
		NodeFactory: farm.factory,
	}
	if mutate != nil {
		mutate(&cfg)
	}
	o, err := New(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = o.Close() })
	return o
}
