package relay

import (
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/vmihailenco/msgpack/v5"

	"retrocast/engine"
)

const (
	writeWait         = 10 * time.Second
	pongWait          = 60 * time.Second
	pingPeriod        = (pongWait * 9) / 10
	maxMessageSize    = 512
	sendBufSize       = 64
	maxMessagesPerSec = 30
)

// client is one WebSocket member of a room.
type client struct {
	hub        *Hub
	conn       *websocket.Conn
	send       chan []byte
	room       *Room
	id         string
	remoteAddr string
	log        zerolog.Logger
	msgCount   int
	msgResetAt time.Time
}

func newClient(hub *Hub, conn *websocket.Conn, room *Room, id, remoteAddr string) *client {
	return &client{
		hub:        hub,
		conn:       conn,
		send:       make(chan []byte, sendBufSize),
		room:       room,
		id:         id,
		remoteAddr: remoteAddr,
		log:        hub.log.With().Str("room", room.ID).Str("peer", id).Logger(),
	}
}

// readPump reads position messages and fans them out to the room.
func (c *client) readPump() {
	defer func() {
		c.hub.TrackDisconnect(c.remoteAddr)
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.log.Warn().Err(err).Msg("ws read failed")
			}
			return
		}

		now := time.Now()
		if now.After(c.msgResetAt) {
			c.msgCount = 0
			c.msgResetAt = now.Add(time.Second)
		}
		c.msgCount++
		if c.msgCount > maxMessagesPerSec {
			c.log.Warn().Msg("rate limit exceeded, disconnecting")
			return
		}

		c.handleMessage(raw)
	}
}

// handleMessage rebroadcasts a member message. Only join and position
// kinds are relayed, and the sender id is always overwritten so a
// member cannot speak for another.
func (c *client) handleMessage(raw []byte) {
	var msg engine.PeerMsg
	if err := msgpack.Unmarshal(raw, &msg); err != nil {
		c.log.Warn().Err(err).Msg("bad peer message")
		return
	}
	switch msg.T {
	case engine.PeerJoin, engine.PeerPos:
	default:
		return
	}
	msg.ID = c.id

	data, err := msgpack.Marshal(msg)
	if err != nil {
		return
	}
	c.room.broadcast(c, data)
}

// writePump drains the send queue onto the socket and keeps the
// connection alive with pings.
func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.BinaryMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// sendRaw queues bytes for the write pump, dropping when the member is
// too slow to keep up.
func (c *client) sendRaw(data []byte) {
	defer func() { recover() }()
	select {
	case c.send <- data:
	default:
	}
}
