package bot

import (
	"sync"
	"time"

	"github.com/nbd-wtf/go-nostr"
)

// coolTime is the minimum interval between replies to the same sender.
// Events older than this are also dropped, which stops two bots from
// replaying each other's backlog into an infinite reply loop.
const coolTime = 5 * time.Second

// CooldownGuard remembers when each pubkey last received a reply.
type CooldownGuard struct {
	mu        sync.Mutex
	lastReply map[string]int64
	now       func() time.Time
}

func NewCooldownGuard(now func() time.Time) *CooldownGuard {
	if now == nil {
		now = time.Now
	}
	return &CooldownGuard{
		lastReply: map[string]int64{},
		now:       now,
	}
}

// SafeToReply reports whether ev may be answered. A positive answer
// records the reply time, so callers must actually reply after asking.
func (g *CooldownGuard) SafeToReply(ev *nostr.Event) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now().Unix()
	coolSec := int64(coolTime / time.Second)
	if int64(ev.CreatedAt) < now-coolSec {
		return false
	}
	if last, ok := g.lastReply[ev.PubKey]; ok && now-last < coolSec {
		return false
	}
	g.lastReply[ev.PubKey] = now
	return true
}
