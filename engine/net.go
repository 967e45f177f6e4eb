package engine

import (
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/vmihailenco/msgpack/v5"
)

const (
	peerSendInterval = 200 * time.Millisecond
	peerWriteWait    = 10 * time.Second
	peerPongWait     = 60 * time.Second
	peerPingPeriod   = (peerPongWait * 9) / 10
)

// Peer message kinds. Inbound messages map straight onto remote-peer
// add/update/remove; nothing else crosses the wire.
const (
	PeerJoin  = "join"
	PeerLeave = "leave"
	PeerPos   = "pos"
)

// PeerMsg is the msgpack wire envelope shared with the relay.
type PeerMsg struct {
	T  string  `msgpack:"t"`
	ID string  `msgpack:"id"`
	X  float64 `msgpack:"x"`
	Y  float64 `msgpack:"y"`
}

// PeerLink connects a session to a relay room. Inbound messages queue
// into an inbox the session drains at the top of each tick, so all
// session state stays single-threaded; outbound position goes out on
// a fixed cadence from its own pump.
type PeerLink struct {
	conn  *websocket.Conn
	id    string
	log   zerolog.Logger
	inbox chan PeerMsg
	local atomic.Value // Vec2

	done      chan struct{}
	closeOnce sync.Once
}

// DialPeer opens a relay connection and starts both pumps. The token,
// if any, is the relay's room token.
func DialPeer(url, token, selfID string, log zerolog.Logger) (*PeerLink, error) {
	hdr := http.Header{}
	if token != "" {
		hdr.Set("Authorization", "Bearer "+token)
	}
	conn, _, err := websocket.DefaultDialer.Dial(url, hdr)
	if err != nil {
		return nil, fmt.Errorf("peer dial: %w", err)
	}
	l := &PeerLink{
		conn:  conn,
		id:    selfID,
		log:   log,
		inbox: make(chan PeerMsg, 64),
		done:  make(chan struct{}),
	}
	l.local.Store(Vec2{})
	go l.readPump()
	go l.writePump()
	return l, nil
}

// AttachPeerLink binds the link; the session will drain it each tick
// and feed it the local position.
func (s *Session) AttachPeerLink(l *PeerLink) {
	s.link = l
}

// apply drains queued inbound messages into the session. Runs on the
// session goroutine.
func (l *PeerLink) apply(s *Session) {
	for {
		select {
		case msg := <-l.inbox:
			switch msg.T {
			case PeerJoin:
				s.AddPeer(msg.ID, msg.X, msg.Y)
			case PeerPos:
				s.UpdatePeer(msg.ID, msg.X, msg.Y)
			case PeerLeave:
				s.RemovePeer(msg.ID)
			}
		default:
			return
		}
	}
}

func (l *PeerLink) setLocal(pos Vec2) {
	l.local.Store(pos)
}

func (l *PeerLink) readPump() {
	defer l.Close()
	l.conn.SetReadDeadline(time.Now().Add(peerPongWait))
	l.conn.SetPongHandler(func(string) error {
		l.conn.SetReadDeadline(time.Now().Add(peerPongWait))
		return nil
	})
	for {
		_, data, err := l.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				l.log.Warn().Err(err).Msg("peer read failed")
			}
			return
		}
		var msg PeerMsg
		if err := msgpack.Unmarshal(data, &msg); err != nil {
			l.log.Warn().Err(err).Msg("bad peer message")
			continue
		}
		select {
		case l.inbox <- msg:
		default:
			// Inbox full: drop, position updates are idempotent
		}
	}
}

func (l *PeerLink) writePump() {
	send := time.NewTicker(peerSendInterval)
	ping := time.NewTicker(peerPingPeriod)
	defer func() {
		send.Stop()
		ping.Stop()
		l.Close()
	}()
	for {
		select {
		case <-l.done:
			return
		case <-send.C:
			pos := l.local.Load().(Vec2)
			data, err := msgpack.Marshal(PeerMsg{T: PeerPos, ID: l.id, X: pos.X(), Y: pos.Y()})
			if err != nil {
				continue
			}
			l.conn.SetWriteDeadline(time.Now().Add(peerWriteWait))
			if err := l.conn.WriteMessage(websocket.BinaryMessage, data); err != nil {
				return
			}
		case <-ping.C:
			l.conn.SetWriteDeadline(time.Now().Add(peerWriteWait))
			if err := l.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// Close shuts the link down. Idempotent.
func (l *PeerLink) Close() {
	l.closeOnce.Do(func() {
		close(l.done)
		l.conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(time.Second))
		l.conn.Close()
	})
}
