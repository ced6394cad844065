package bot

import (
	"testing"
	"time"

	"github.com/nbd-wtf/go-nostr"
)

func guardEvent(pubkey string, createdAt time.Time) *nostr.Event {
	return &nostr.Event{PubKey: pubkey, CreatedAt: nostr.Timestamp(createdAt.Unix())}
}

func TestCooldownGuard_RejectsStaleEvents(t *testing.T) {
	now := time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)
	g := NewCooldownGuard(func() time.Time { return now })

	if g.SafeToReply(guardEvent("p1", now.Add(-6*time.Second))) {
		t.Fatalf("event older than the cool time must be rejected")
	}
	if !g.SafeToReply(guardEvent("p1", now.Add(-4*time.Second))) {
		t.Fatalf("recent event must be accepted")
	}
}

func TestCooldownGuard_PerSenderWindow(t *testing.T) {
	now := time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)
	g := NewCooldownGuard(func() time.Time { return now })

	if !g.SafeToReply(guardEvent("p1", now)) {
		t.Fatalf("first event must be accepted")
	}
	if g.SafeToReply(guardEvent("p1", now)) {
		t.Fatalf("second event inside the window must be rejected")
	}
	if !g.SafeToReply(guardEvent("p2", now)) {
		t.Fatalf("other senders are not affected by p1's cooldown")
	}

	now = now.Add(coolTime)
	if !g.SafeToReply(guardEvent("p1", now)) {
		t.Fatalf("p1 must be accepted again after the window elapses")
	}
}
