// Package lavalink implements voice.Node for Lavalink v3 audio servers.
//
// A Node keeps one websocket open to the server for voice updates and
// server-sent events, and uses the REST API for track loading. It forwards a
// guild's voice session only when the guild's player is bound to it, so the
// orchestrator can fan every packet out to all nodes.
package lavalink

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/coder/websocket"
	"github.com/go-resty/resty/v2"
	"github.com/patrickmn/go-cache"

	"github.com/zjrosen/voxlink/internal/log"
	"github.com/zjrosen/voxlink/internal/voice"
)

const (
	// PendingTTL bounds how long half of a voice session (state without
	// server, or server without state) is kept waiting for the other half.
	PendingTTL = time.Minute

	RequestTimeout = 15 * time.Second
	RetryCount     = 2
	readLimit      = 1 << 20
)

// ErrNotConnected is returned when a voice update must be sent before Connect.
var ErrNotConnected = errors.New("node is not connected")

// Node is a connection to one Lavalink server.
type Node struct {
	opts voice.NodeOptions
	host voice.Host
	rest *resty.Client

	// sessions maps guild ID to *voiceSession. Incomplete sessions expire after
	// PendingTTL; complete ones live until the bot leaves the channel.
	sessions  *cache.Cache
	sessionMu sync.Mutex

	mu     sync.Mutex
	conn   *websocket.Conn
	cancel context.CancelFunc
	done   chan struct{}
}

// voiceSession is what Lavalink needs to open a voice connection for a guild.
type voiceSession struct {
	SessionID string
	Server    *voice.VoiceServerUpdate
}

func (s *voiceSession) complete() bool {
	return s.SessionID != "" && s.Server != nil
}

// New creates an unconnected node for opts.
func New(opts *voice.NodeOptions, host voice.Host) *Node {
	rest := resty.New().
		SetBaseURL(opts.RestURL()).
		SetHeader("Authorization", opts.Password).
		SetTimeout(RequestTimeout).
		SetRetryCount(RetryCount).
		OnBeforeRequest(func(_ *resty.Client, r *resty.Request) error {
			// The host may be renamed after the node is built.
			r.SetHeader("Client-Name", host.ClientName())
			return nil
		})

	return &Node{
		opts:     *opts,
		host:     host,
		rest:     rest,
		sessions: cache.New(PendingTTL, 2*PendingTTL),
	}
}

// ID returns the node identifier.
func (n *Node) ID() string {
	return n.opts.Identifier
}

// Connect dials the node's websocket, retrying with exponential backoff until
// ctx is done or the retry budget is spent, then starts the read loop.
func (n *Node) Connect(ctx context.Context) error {
	header := http.Header{}
	header.Set("Authorization", n.opts.Password)
	header.Set("User-Id", n.host.ClientID())
	header.Set("Client-Name", n.host.ClientName())

	url := n.opts.WebSocketURL()
	var conn *websocket.Conn
	dial := func() error {
		c, _, err := websocket.Dial(ctx, url, &websocket.DialOptions{HTTPHeader: header})
		if err != nil {
			log.Warn(log.CatNode, "Node dial failed", "node", n.ID(), "url", url, "error", err)
			return err
		}
		conn = c
		return nil
	}
	if err := backoff.Retry(dial, backoff.WithContext(newBackoff(), ctx)); err != nil {
		return fmt.Errorf("connecting to node %s: %w", url, err)
	}
	conn.SetReadLimit(readLimit)

	loopCtx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	n.mu.Lock()
	n.conn = conn
	n.cancel = cancel
	n.done = done
	n.mu.Unlock()

	log.SafeGo("lavalink.readLoop", func() {
		defer close(done)
		n.readLoop(loopCtx, conn)
	})

	log.Info(log.CatNode, "Node connected", "node", n.ID(), "url", url)
	return nil
}

func newBackoff() *backoff.ExponentialBackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 250 * time.Millisecond
	b.Multiplier = 2
	b.MaxInterval = 5 * time.Second
	b.MaxElapsedTime = 30 * time.Second
	b.Reset()
	return b
}

// inboundMessage is the common envelope of server-sent messages.
type inboundMessage struct {
	Op      string `json:"op"`
	GuildID string `json:"guildId,omitempty"`
}

func (n *Node) readLoop(ctx context.Context, conn *websocket.Conn) {
	for {
		_, data, err := conn.Read(ctx)
		if err != nil {
			status := websocket.CloseStatus(err)
			if status == -1 && ctx.Err() == nil {
				log.ErrorErr(log.CatNode, "Node connection lost", err, "node", n.ID())
			} else {
				log.Debug(log.CatNode, "Node connection closed", "node", n.ID(), "status", status)
			}
			n.host.Publish(voice.NewEvent(voice.EventNodeClosed, err).WithNode(n.ID()))
			return
		}

		var msg inboundMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			log.Warn(log.CatNode, "Ignoring malformed node message", "node", n.ID(), "error", err)
			continue
		}
		n.host.Publish(voice.NewEvent(voice.EventNodeMessage, json.RawMessage(data)).
			WithNode(n.ID()).
			WithGuild(msg.GuildID))
	}
}

// Close closes the websocket. It is safe to call on an unconnected node.
func (n *Node) Close() error {
	n.mu.Lock()
	conn, cancel, done := n.conn, n.cancel, n.done
	n.conn, n.cancel = nil, nil
	n.mu.Unlock()

	if conn == nil {
		return nil
	}
	err := conn.Close(websocket.StatusNormalClosure, "closing")
	cancel()
	<-done
	if err != nil && websocket.CloseStatus(err) == -1 {
		return fmt.Errorf("closing node %s: %w", n.ID(), err)
	}
	return nil
}
