package domain

import (
	"testing"
	"time"
)

func TestSplitRemindArgs(t *testing.T) {
	cases := []struct {
		in       string
		wantDate string
		wantNote string
	}{
		{"2026/12/23 06:00:00 !!!おきて", "2026/12/23 06:00:00", "おきて"},
		{"2026/12/23 06:00:00", "2026/12/23 06:00:00", ""},
		{"tomorrow !!! a !!! b", "tomorrow", "a !!! b"},
		{"  06:00  ", "06:00", ""},
	}
	for _, c := range cases {
		date, note := SplitRemindArgs(c.in)
		if date != c.wantDate || note != c.wantNote {
			t.Fatalf("%q: want (%q, %q), got (%q, %q)", c.in, c.wantDate, c.wantNote, date, note)
		}
	}
}

func TestParseRemindAt_LiteralLayouts(t *testing.T) {
	now := time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)

	got, err := ParseRemindAt("2099/01/01 09:00", now)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	want := time.Date(2099, time.January, 1, 9, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("want %v, got %v", want, got)
	}

	got, err = ParseRemindAt("2099-01-01 09:00:30", now)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got.Second() != 30 {
		t.Fatalf("seconds lost: %v", got)
	}
}

func TestParseRemindAt_TimeOnlyRollsForward(t *testing.T) {
	now := time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)

	// 09:00 already passed today, so it means tomorrow 09:00.
	got, err := ParseRemindAt("09:00", now)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	want := time.Date(2026, time.March, 11, 9, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("want %v, got %v", want, got)
	}

	// 18:00 is still ahead today.
	got, err = ParseRemindAt("18:00", now)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	want = time.Date(2026, time.March, 10, 18, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("want %v, got %v", want, got)
	}
}

func TestParseRemindAt_NaturalLanguage(t *testing.T) {
	now := time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)

	got, err := ParseRemindAt("tomorrow at 6am", now)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !got.After(now) {
		t.Fatalf("natural language result should be in the future, got %v", got)
	}
}

func TestParseRemindAt_RejectsGarbage(t *testing.T) {
	now := time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)
	if _, err := ParseRemindAt("", now); err == nil {
		t.Fatalf("empty input should fail")
	}
	if _, err := ParseRemindAt("ほげほげ", now); err == nil {
		t.Fatalf("unparsable input should fail")
	}
}
