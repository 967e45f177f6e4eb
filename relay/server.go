package relay

import (
	"encoding/json"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/skip2/go-qrcode"
	"github.com/vmihailenco/msgpack/v5"

	"retrocast/engine"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true // Non-browser clients don't send Origin
		}
		u, err := url.Parse(origin)
		if err != nil {
			return false
		}
		return u.Host == r.Host
	},
}

func extractIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// Server is the relay's HTTP surface: room management plus the
// WebSocket fan-out endpoint.
type Server struct {
	hub       *Hub
	rooms     *Manager
	publicURL string
	log       zerolog.Logger
}

// NewServer wires the HTTP layer. publicURL is the externally visible
// base used in join links and QR codes, e.g. "https://play.example.com".
func NewServer(hub *Hub, rooms *Manager, publicURL string, log zerolog.Logger) *Server {
	return &Server{
		hub:       hub,
		rooms:     rooms,
		publicURL: strings.TrimSuffix(publicURL, "/"),
		log:       log,
	}
}

type createRoomReq struct {
	Name       string `json:"name"`
	Passphrase string `json:"passphrase"`
}

type createRoomResp struct {
	ID      string `json:"id"`
	Token   string `json:"token"`
	JoinURL string `json:"join_url"`
}

func (s *Server) joinURL(roomID string) string {
	return s.publicURL + "/join/" + roomID
}

// Routes builds the HTTP mux.
func (s *Server) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/rooms", s.handleRooms)
	mux.HandleFunc("/rooms/qr", s.handleRoomQR)
	mux.HandleFunc("/ws", s.handleWS)
	return mux
}

func (s *Server) handleRooms(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, s.rooms.List())

	case http.MethodPost:
		var req createRoomReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		room, token, err := s.rooms.Create(req.Name, req.Passphrase)
		if err != nil {
			http.Error(w, err.Error(), http.StatusServiceUnavailable)
			return
		}
		writeJSON(w, http.StatusCreated, createRoomResp{
			ID:      room.ID,
			Token:   token,
			JoinURL: s.joinURL(room.ID),
		})

	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// handleRoomQR serves the room's join link as a QR PNG for handing a
// second player the session on another machine.
func (s *Server) handleRoomQR(w http.ResponseWriter, r *http.Request) {
	room := s.rooms.Get(r.URL.Query().Get("room"))
	if room == nil {
		http.Error(w, "room not found", http.StatusNotFound)
		return
	}
	png, err := qrcode.Encode(s.joinURL(room.ID), qrcode.Medium, 256)
	if err != nil {
		http.Error(w, "qr encode failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Write(png)
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	ip := extractIP(r)
	if !s.hub.CanAccept(ip) {
		http.Error(w, "too many connections", http.StatusServiceUnavailable)
		return
	}

	q := r.URL.Query()
	room := s.rooms.Get(q.Get("room"))
	if room == nil {
		http.Error(w, "room not found", http.StatusNotFound)
		return
	}

	token := ""
	if auth := r.Header.Get("Authorization"); strings.HasPrefix(auth, "Bearer ") {
		token = strings.TrimPrefix(auth, "Bearer ")
	}
	if err := s.rooms.Authorize(room, token, q.Get("pass")); err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	id := q.Get("id")
	if id == "" {
		id = generateID(4)
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn().Err(err).Msg("upgrade failed")
		return
	}

	c := newClient(s.hub, conn, room, id, ip)
	if err := room.add(c); err != nil {
		conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.ClosePolicyViolation, err.Error()),
			time.Now().Add(time.Second))
		conn.Close()
		return
	}

	s.hub.TrackConnect(ip)
	s.hub.register <- c

	// Announce the arrival; position follows on the member's cadence
	if join, err := msgpack.Marshal(engine.PeerMsg{T: engine.PeerJoin, ID: id}); err == nil {
		room.broadcast(c, join)
	}

	go c.writePump()
	go c.readPump()
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
