package memory

import (
	"testing"

	"github.com/ikuradon/823chan/internal/domain"
)

func TestStore_LazyUserCreation(t *testing.T) {
	s := NewStore()

	s.WithUser("p1", func(_ *domain.SystemData, usr *domain.UserData) {
		if usr.Counter != 0 {
			t.Fatalf("fresh user should start zeroed, got %d", usr.Counter)
		}
		usr.Counter = 7
	})

	s.WithUser("p1", func(_ *domain.SystemData, usr *domain.UserData) {
		if usr.Counter != 7 {
			t.Fatalf("user record not retained, got %d", usr.Counter)
		}
	})
}

func TestStore_SnapshotRestoreRoundTrip(t *testing.T) {
	s := NewStore()
	s.WithSystem(func(sys *domain.SystemData) {
		sys.Currency.Btc2USD = 42
		sys.Currency.UpdateAt = 1700000000
		sys.Reminders = []domain.Reminder{{RemindAt: 123, EventID: "a", EventPubkey: "p1"}}
	})
	s.WithUser("p1", func(_ *domain.SystemData, usr *domain.UserData) {
		usr.Counter = 3
		usr.Login = &domain.LoginBonus{LastLoginTime: 99, ConsecutiveCount: 2, TotalCount: 5}
	})

	snap, err := s.Snapshot()
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	if _, ok := snap[domain.SystemKey]; !ok {
		t.Fatalf("snapshot missing system record")
	}
	if _, ok := snap["p1"]; !ok {
		t.Fatalf("snapshot missing user record")
	}

	restored := NewStore()
	if err := restored.Restore(snap); err != nil {
		t.Fatalf("restore: %v", err)
	}

	restored.WithSystem(func(sys *domain.SystemData) {
		if sys.Currency.Btc2USD != 42 || sys.Currency.UpdateAt != 1700000000 {
			t.Fatalf("currency lost: %+v", sys.Currency)
		}
		if len(sys.Reminders) != 1 || sys.Reminders[0].EventID != "a" {
			t.Fatalf("reminders lost: %+v", sys.Reminders)
		}
	})
	restored.WithUser("p1", func(_ *domain.SystemData, usr *domain.UserData) {
		if usr.Counter != 3 {
			t.Fatalf("counter lost: %d", usr.Counter)
		}
		if usr.Login == nil || usr.Login.TotalCount != 5 {
			t.Fatalf("login bonus lost: %+v", usr.Login)
		}
	})
}

func TestStore_RestoreRejectsBrokenRecords(t *testing.T) {
	s := NewStore()
	if err := s.Restore(map[string][]byte{"p2": []byte(`not json`)}); err == nil {
		t.Fatalf("broken record should fail the restore")
	}
}
