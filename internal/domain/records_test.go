package domain

import "testing"

func TestPopDueReminders_DeliversExactlyOnce(t *testing.T) {
	sys := NewSystemData()
	sys.Reminders = []Reminder{
		{RemindAt: 100, EventID: "a", EventPubkey: "p1"},
		{RemindAt: 200, EventID: "b", EventPubkey: "p1"},
		{RemindAt: 300, EventID: "c", EventPubkey: "p2"},
	}

	due := sys.PopDueReminders(200)
	if len(due) != 2 {
		t.Fatalf("want 2 due, got %d", len(due))
	}
	if due[0].EventID != "a" || due[1].EventID != "b" {
		t.Fatalf("due order wrong: %v", due)
	}
	if len(sys.Reminders) != 1 || sys.Reminders[0].EventID != "c" {
		t.Fatalf("remaining list wrong: %v", sys.Reminders)
	}

	// A second sweep at the same instant finds nothing.
	if again := sys.PopDueReminders(200); len(again) != 0 {
		t.Fatalf("reminder delivered twice: %v", again)
	}
}

func TestDeleteReminders_OnlyOwnersRows(t *testing.T) {
	sys := NewSystemData()
	sys.Reminders = []Reminder{
		{RemindAt: 1, EventID: "a", EventPubkey: "p1"},
		{RemindAt: 2, EventID: "a", EventPubkey: "p2"},
		{RemindAt: 3, EventID: "a", EventPubkey: "p1"},
		{RemindAt: 4, EventID: "b", EventPubkey: "p1"},
	}

	removed := sys.DeleteReminders("p1", "a")
	if removed != 2 {
		t.Fatalf("want 2 removed, got %d", removed)
	}
	if len(sys.Reminders) != 2 {
		t.Fatalf("want 2 kept, got %d", len(sys.Reminders))
	}
	for _, r := range sys.Reminders {
		if r.EventPubkey == "p1" && r.EventID == "a" {
			t.Fatalf("target reminder survived: %+v", r)
		}
	}
}

func TestRemindersFor_FiltersByOwner(t *testing.T) {
	sys := NewSystemData()
	sys.Reminders = []Reminder{
		{RemindAt: 1, EventID: "a", EventPubkey: "p1"},
		{RemindAt: 2, EventID: "b", EventPubkey: "p2"},
		{RemindAt: 3, EventID: "c", EventPubkey: "p1"},
	}

	got := sys.RemindersFor("p1")
	if len(got) != 2 || got[0].EventID != "a" || got[1].EventID != "c" {
		t.Fatalf("wrong selection: %v", got)
	}
	if got := sys.RemindersFor("p3"); len(got) != 0 {
		t.Fatalf("unknown owner should have no reminders, got %v", got)
	}
}
