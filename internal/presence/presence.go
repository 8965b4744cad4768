package presence

import (
	"sync"

	"github.com/bolt162/buzzlink-app/internal/model"
)

// PresenceState tracks who is online per channel. Each event carries the full
// current state and replaces what was there; nothing is accumulated, so a
// missed event is at worst a stale count until the next one lands.
type PresenceState struct {
	mu       sync.RWMutex
	channels map[int64]model.PresenceEvent
}

func NewPresenceState() *PresenceState {
	return &PresenceState{channels: make(map[int64]model.PresenceEvent)}
}

func (p *PresenceState) Apply(ev model.PresenceEvent) {
	p.mu.Lock()
	p.channels[ev.ChannelID] = ev
	p.mu.Unlock()
}

func (p *PresenceState) OnlineCount(channelID int64) int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.channels[channelID].OnlineCount
}

func (p *PresenceState) OnlineUsers(channelID int64) []string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	users := p.channels[channelID].OnlineUsers
	out := make([]string, len(users))
	copy(out, users)
	return out
}

// Forget drops a channel's presence when its view deactivates.
func (p *PresenceState) Forget(channelID int64) {
	p.mu.Lock()
	delete(p.channels, channelID)
	p.mu.Unlock()
}
