package relay

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

const (
	maxRooms       = 100
	maxRoomMembers = 8
	maxRoomNameLen = 30
	roomTokenTTL   = 24 * time.Hour
	bcryptCost     = 12
)

var (
	ErrRoomNotFound = errors.New("room not found")
	ErrRoomFull     = errors.New("room full")
	ErrUnauthorized = errors.New("unauthorized")
	ErrTooManyRooms = errors.New("too many active rooms")
)

// Room is one shared arena. Every member's position updates fan out to
// the other members; the relay never simulates anything itself.
type Room struct {
	ID       string
	Name     string
	passHash []byte // empty for open rooms

	mu      sync.RWMutex
	members map[*client]bool
}

func (r *Room) add(c *client) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.members) >= maxRoomMembers {
		return ErrRoomFull
	}
	r.members[c] = true
	return nil
}

// remove drops a member and returns how many remain.
func (r *Room) remove(c *client) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.members, c)
	return len(r.members)
}

// MemberCount returns the current member count.
func (r *Room) MemberCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.members)
}

// broadcast sends data to every member except the sender.
func (r *Room) broadcast(from *client, data []byte) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for m := range r.members {
		if m != from {
			m.sendRaw(data)
		}
	}
}

// RoomInfo is the public listing entry.
type RoomInfo struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Members int    `json:"members"`
	Locked  bool   `json:"locked"`
}

// Manager creates, authorizes and tears down rooms. Room tokens are
// signed JWTs issued to the creator; passphrase rooms also accept the
// bcrypt-checked passphrase so invitees can join without the token.
type Manager struct {
	mu     sync.RWMutex
	rooms  map[string]*Room
	secret []byte
	store  *Store
	log    zerolog.Logger
}

// NewManager creates a room manager. The store may be nil; with one,
// the signing secret survives restarts and room creations are logged.
func NewManager(store *Store, log zerolog.Logger) *Manager {
	return &Manager{
		rooms:  make(map[string]*Room),
		secret: loadOrCreateSecret(store, log),
		store:  store,
		log:    log,
	}
}

// loadOrCreateSecret loads the token signing secret from the store, or
// generates and persists a new one if none exists.
func loadOrCreateSecret(store *Store, log zerolog.Logger) []byte {
	if store != nil {
		if h := store.GetSetting("token_secret"); h != "" {
			if b, err := hex.DecodeString(h); err == nil && len(b) == 32 {
				return b
			}
		}
	}
	secret := make([]byte, 32)
	if _, err := rand.Read(secret); err != nil {
		panic("failed to generate token secret: " + err.Error())
	}
	if store != nil {
		if err := store.SetSetting("token_secret", hex.EncodeToString(secret)); err != nil {
			log.Warn().Err(err).Msg("could not persist token secret")
		}
	}
	return secret
}

// generateID returns a random hex string of the given byte length.
func generateID(byteLen int) string {
	b := make([]byte, byteLen)
	rand.Read(b)
	return hex.EncodeToString(b)
}

// Create makes a room and returns it with the creator's token. An
// empty passphrase leaves the room open.
func (m *Manager) Create(name, passphrase string) (*Room, string, error) {
	if name == "" {
		name = "Arena"
	}
	if len(name) > maxRoomNameLen {
		name = name[:maxRoomNameLen]
	}

	var hash []byte
	if passphrase != "" {
		h, err := bcrypt.GenerateFromPassword([]byte(passphrase), bcryptCost)
		if err != nil {
			return nil, "", fmt.Errorf("hash passphrase: %w", err)
		}
		hash = h
	}

	m.mu.Lock()
	if len(m.rooms) >= maxRooms {
		m.mu.Unlock()
		return nil, "", ErrTooManyRooms
	}
	room := &Room{
		ID:       generateID(8),
		Name:     name,
		passHash: hash,
		members:  make(map[*client]bool),
	}
	m.rooms[room.ID] = room
	m.mu.Unlock()

	token, err := m.generateToken(room.ID)
	if err != nil {
		return nil, "", fmt.Errorf("sign room token: %w", err)
	}

	if m.store != nil {
		if err := m.store.RecordRoom(room.ID, name, passphrase != ""); err != nil {
			m.log.Warn().Err(err).Msg("room audit insert failed")
		}
	}
	m.log.Info().Str("room", room.ID).Str("name", name).Bool("locked", hash != nil).Msg("room created")
	return room, token, nil
}

// Get returns a room by id, or nil.
func (m *Manager) Get(id string) *Room {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.rooms[id]
}

// Authorize checks whether a caller may enter the room: open rooms
// admit anyone, otherwise a valid room token or the passphrase works.
func (m *Manager) Authorize(room *Room, token, passphrase string) error {
	if len(room.passHash) == 0 {
		return nil
	}
	if token != "" {
		if id, err := m.validateToken(token); err == nil && id == room.ID {
			return nil
		}
	}
	if passphrase != "" {
		if bcrypt.CompareHashAndPassword(room.passHash, []byte(passphrase)) == nil {
			return nil
		}
	}
	return ErrUnauthorized
}

// drop removes an empty room.
func (m *Manager) drop(id string) {
	m.mu.Lock()
	delete(m.rooms, id)
	m.mu.Unlock()
	m.log.Info().Str("room", id).Msg("room closed")
}

// List returns info about all active rooms.
func (m *Manager) List() []RoomInfo {
	m.mu.RLock()
	defer m.mu.RUnlock()
	list := make([]RoomInfo, 0, len(m.rooms))
	for _, r := range m.rooms {
		list = append(list, RoomInfo{
			ID:      r.ID,
			Name:    r.Name,
			Members: r.MemberCount(),
			Locked:  len(r.passHash) > 0,
		})
	}
	return list
}

func (m *Manager) generateToken(roomID string) (string, error) {
	claims := jwt.MapClaims{
		"room": roomID,
		"exp":  time.Now().Add(roomTokenTTL).Unix(),
		"iat":  time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

func (m *Manager) validateToken(tokenStr string) (string, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return m.secret, nil
	})
	if err != nil {
		return "", err
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", fmt.Errorf("invalid token")
	}
	room, ok := claims["room"].(string)
	if !ok {
		return "", fmt.Errorf("invalid token claims")
	}
	return room, nil
}
