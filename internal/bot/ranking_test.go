package bot

import "testing"

func TestCountUserEvents_SortsByActivity(t *testing.T) {
	lines := []string{
		`{"pubkey":"alice","kind":1}`,
		`{"pubkey":"bob","kind":1}`,
		`{"pubkey":"alice","kind":1}`,
		`{"pubkey":"carol","kind":1}`,
		`{"pubkey":"alice","kind":1}`,
		`{"pubkey":"bob","kind":1}`,
		`broken line`,
	}

	got := CountUserEvents(lines)
	if len(got) != 3 {
		t.Fatalf("want 3 users, got %d", len(got))
	}
	if got[0].Pubkey != "alice" || got[0].Count != 3 {
		t.Fatalf("want alice first with 3, got %+v", got[0])
	}
	if got[1].Pubkey != "bob" || got[1].Count != 2 {
		t.Fatalf("want bob second with 2, got %+v", got[1])
	}
	if got[2].Pubkey != "carol" || got[2].Count != 1 {
		t.Fatalf("want carol third with 1, got %+v", got[2])
	}
}

func TestCountUserEvents_EmptyInput(t *testing.T) {
	if got := CountUserEvents(nil); len(got) != 0 {
		t.Fatalf("want empty ranking, got %v", got)
	}
}
