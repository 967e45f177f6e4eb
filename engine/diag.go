package engine

import (
	"fmt"
	"runtime"
)

// Stats is a read-only snapshot of session population and score for
// host display.
type Stats struct {
	Monsters    int // living only
	Projectiles int
	Particles   int
	Pickups     int
	Peers       int
	Score       int
	Kills       int
	GameTime    float64
	HeapBytes   uint64
}

// Stats collects the current snapshot.
func (s *Session) Stats() Stats {
	alive := 0
	for i := range s.Monsters {
		if s.Monsters[i].Alive() {
			alive++
		}
	}
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)
	return Stats{
		Monsters:    alive,
		Projectiles: len(s.Projectiles),
		Particles:   len(s.Particles),
		Pickups:     len(s.Pickups),
		Peers:       len(s.Peers),
		Score:       s.Score,
		Kills:       s.Kills,
		GameTime:    s.gameTime,
		HeapBytes:   mem.HeapAlloc,
	}
}

// Summary formats the snapshot as a single line for host display.
func (st Stats) Summary() string {
	return fmt.Sprintf("heap_bytes=%d monsters=%d projectiles=%d particles=%d",
		st.HeapBytes, st.Monsters, st.Projectiles, st.Particles)
}
