package engine

const remotePeerRadius = 0.3

// RemotePeer mirrors another player's position as reported over the
// peer channel. Peers are visual-only: never integrated, never part
// of collision or scoring.
type RemotePeer struct {
	ID   string
	Body Body
}

func newRemotePeer(id string, x, y float64) RemotePeer {
	body := NewBody(x, y, remotePeerRadius)
	body.Friction = 0.3
	return RemotePeer{ID: id, Body: body}
}

// AddPeer registers a remote peer; duplicate ids are ignored.
func (s *Session) AddPeer(id string, x, y float64) {
	for i := range s.Peers {
		if s.Peers[i].ID == id {
			return
		}
	}
	s.Peers = append(s.Peers, newRemotePeer(id, x, y))
	s.log.Debug().Str("peer", id).Msg("peer joined")
}

// UpdatePeer assigns a peer's position directly, adding it if unseen.
func (s *Session) UpdatePeer(id string, x, y float64) {
	for i := range s.Peers {
		if s.Peers[i].ID == id {
			s.Peers[i].Body.Pos = Vec2{x, y}
			return
		}
	}
	s.Peers = append(s.Peers, newRemotePeer(id, x, y))
}

// RemovePeer drops a peer by id.
func (s *Session) RemovePeer(id string) {
	for i := range s.Peers {
		if s.Peers[i].ID == id {
			s.Peers = append(s.Peers[:i], s.Peers[i+1:]...)
			s.log.Debug().Str("peer", id).Msg("peer left")
			return
		}
	}
}
