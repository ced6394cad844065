package bot

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/nbd-wtf/go-nostr"
	"github.com/nbd-wtf/go-nostr/nip19"
	"go.uber.org/zap"

	"github.com/ikuradon/823chan/internal/domain"
	"github.com/ikuradon/823chan/internal/memory"
)

type fakePub struct {
	replies   []string
	posts     []string
	reactions []string
}

func (f *fakePub) Reply(_ context.Context, content string, _ *nostr.Event) {
	f.replies = append(f.replies, content)
}

func (f *fakePub) Post(_ context.Context, content string, _ *nostr.Event) {
	f.posts = append(f.posts, content)
}

func (f *fakePub) React(_ context.Context, emoji string, _ *nostr.Event) {
	f.reactions = append(f.reactions, emoji)
}

func newTestBot(pub *fakePub) *Bot {
	return New(Deps{
		Log:       zap.NewNop(),
		Store:     memory.NewStore(),
		Publisher: pub,
	})
}

func mention(pubkey, content string) *nostr.Event {
	sum := sha256.Sum256([]byte(pubkey + content))
	return &nostr.Event{
		ID:        hex.EncodeToString(sum[:]),
		PubKey:    pubkey,
		Kind:      nostr.KindTextNote,
		Content:   content,
		CreatedAt: nostr.Now(),
	}
}

func TestDispatch_PingRepliesPong(t *testing.T) {
	pub := &fakePub{}
	b := newTestBot(pub)

	b.Dispatch(context.Background(), mention("p1", "ping"))
	if len(pub.replies) != 1 || pub.replies[0] != "pong!" {
		t.Fatalf("want [pong!], got %v", pub.replies)
	}
}

func TestDispatch_UnknownFallback(t *testing.T) {
	pub := &fakePub{}
	b := newTestBot(pub)

	b.Dispatch(context.Background(), mention("p1", "そんなコマンドはない"))
	if len(pub.replies) != 1 {
		t.Fatalf("want one fallback reply, got %v", pub.replies)
	}
	known := false
	for _, phrase := range unknownPhrases {
		if strings.HasPrefix(pub.replies[0], phrase) {
			known = true
		}
	}
	if !known {
		t.Fatalf("fallback reply %q not built from the phrase list", pub.replies[0])
	}
}

func TestDispatch_UnknownFallbackThrottled(t *testing.T) {
	pub := &fakePub{}
	b := newTestBot(pub)

	b.Dispatch(context.Background(), mention("p1", "なにそれ"))

	// Second unknown within five minutes: the guard lets the event in
	// after the reply cool time, but the fallback itself stays quiet.
	b.guard = NewCooldownGuard(nil)
	b.Dispatch(context.Background(), mention("p1", "なにそれ"))
	if len(pub.replies) != 1 {
		t.Fatalf("fallback should fire once in five minutes, got %v", pub.replies)
	}
}

func TestDispatch_HelpSkippedWhenHandled(t *testing.T) {
	pub := &fakePub{}
	b := newTestBot(pub)

	b.Dispatch(context.Background(), mention("p1", "ping help"))
	if len(pub.replies) != 1 || pub.replies[0] != "pong!" {
		t.Fatalf("help must yield to an earlier command, got %v", pub.replies)
	}
}

func TestDispatch_LaterCommandOverwritesHandledFlag(t *testing.T) {
	pub := &fakePub{}
	b := newTestBot(pub)

	// satconv refuses while rates are unpopulated and reports the event
	// as unhandled, overwriting ping's flag, so the fallback fires too.
	b.Dispatch(context.Background(), mention("p1", "ping satconv 100"))
	if len(pub.replies) != 2 {
		t.Fatalf("want pong + fallback, got %v", pub.replies)
	}
	if pub.replies[0] != "pong!" {
		t.Fatalf("first reply should be pong!, got %q", pub.replies[0])
	}
}

func TestDispatch_SatConvRunsWithRates(t *testing.T) {
	pub := &fakePub{}
	b := newTestBot(pub)
	b.store.WithSystem(func(sys *domain.SystemData) {
		sys.Currency = domain.CurrencyData{
			Btc2USD:  100000,
			Btc2JPY:  15000000,
			USD2JPY:  150,
			UpdateAt: time.Now().Unix(),
		}
	})

	b.Dispatch(context.Background(), mention("p1", "satconv 100000000"))
	if len(pub.replies) != 1 {
		t.Fatalf("want one reply, got %v", pub.replies)
	}
	if !strings.Contains(pub.replies[0], "￥15000000") || !strings.Contains(pub.replies[0], "＄100000") {
		t.Fatalf("conversion wrong: %q", pub.replies[0])
	}
}

func TestDispatch_FiatConvRefusesWithoutRates(t *testing.T) {
	pub := &fakePub{}
	b := newTestBot(pub)

	// Until the first rate refresh lands the handler must not answer
	// with zero-valued rates; the fallback takes over instead.
	b.Dispatch(context.Background(), mention("p1", "fiatconv sat 100"))
	if len(pub.replies) != 1 {
		t.Fatalf("want only the fallback reply, got %v", pub.replies)
	}
	if strings.Contains(pub.replies[0], poweredBy) {
		t.Fatalf("conversion answered with unset rates: %q", pub.replies[0])
	}
}

func TestDispatch_FiatConvRunsWithRates(t *testing.T) {
	pub := &fakePub{}
	b := newTestBot(pub)
	b.store.WithSystem(func(sys *domain.SystemData) {
		sys.Currency = domain.CurrencyData{
			Btc2USD:  100000,
			Btc2JPY:  15000000,
			USD2JPY:  150,
			UpdateAt: time.Now().Unix(),
		}
	})

	b.Dispatch(context.Background(), mention("p1", "fiatconv sat 100000000"))
	if len(pub.replies) != 1 {
		t.Fatalf("want one reply, got %v", pub.replies)
	}
	if !strings.Contains(pub.replies[0], "日本円で15000000") || !strings.Contains(pub.replies[0], "USドルで100000") {
		t.Fatalf("conversion wrong: %q", pub.replies[0])
	}
}

func TestDispatch_DiceMulti(t *testing.T) {
	pub := &fakePub{}
	b := newTestBot(pub)

	b.Dispatch(context.Background(), mention("p1", "dice 2d6"))
	if len(pub.replies) != 1 {
		t.Fatalf("want one reply, got %v", pub.replies)
	}
	if ok, _ := regexp.MatchString(`^\d+\+\d+ = \d+ が出ました$`, pub.replies[0]); !ok {
		t.Fatalf("unexpected dice reply: %q", pub.replies[0])
	}

	pub.replies = nil
	b.guard = NewCooldownGuard(nil)
	b.Dispatch(context.Background(), mention("p1", "dice 101d6"))
	if len(pub.replies) != 1 || pub.replies[0] != "数えられない…" {
		t.Fatalf("out of range dice should apologize, got %v", pub.replies)
	}
}

func TestDispatch_CounterIncrements(t *testing.T) {
	pub := &fakePub{}
	b := newTestBot(pub)

	for i, pk := range []string{"p1", "p1", "p1"} {
		b.guard = NewCooldownGuard(nil)
		b.Dispatch(context.Background(), mention(pk, "count"))
		want := []string{"1回目です", "2回目です", "3回目です"}[i]
		if pub.replies[i] != want {
			t.Fatalf("call %d: want %q, got %q", i, want, pub.replies[i])
		}
	}
}

func TestDispatch_ReactionSendsReplyAndReaction(t *testing.T) {
	pub := &fakePub{}
	b := newTestBot(pub)

	b.Dispatch(context.Background(), mention("p1", "ふぁぼ"))
	if len(pub.replies) != 1 || len(pub.reactions) != 1 {
		t.Fatalf("want one reply and one reaction, got %v / %v", pub.replies, pub.reactions)
	}
	if !strings.Contains(pub.replies[0], pub.reactions[0]) {
		t.Fatalf("throw art %q should carry the thrown emoji %q", pub.replies[0], pub.reactions[0])
	}
}

func TestHandleFirehose_CallNames(t *testing.T) {
	pub := &fakePub{}
	b := newTestBot(pub)

	b.HandleFirehose(context.Background(), mention("p1", "やぶみちゃん"))
	if len(pub.posts) != 1 || pub.posts[0] != "👋" {
		t.Fatalf("exact call name should wave, got %v", pub.posts)
	}

	// Global cooldown silences the next call for thirty seconds.
	b.HandleFirehose(context.Background(), mention("p2", "823"))
	if len(pub.posts) != 1 {
		t.Fatalf("response cooldown ignored, got %v", pub.posts)
	}
}

func TestHandleFirehose_CallOutReplyVsPost(t *testing.T) {
	pub := &fakePub{}
	b := newTestBot(pub)

	b.HandleFirehose(context.Background(), mention("p1", "ヤッブミーン"))
	if len(pub.posts) != 1 || pub.posts[0] != "＼ﾊｰｲ!🙌／" {
		t.Fatalf("plain call-out should post, got posts=%v replies=%v", pub.posts, pub.replies)
	}

	b.store.WithSystem(func(sys *domain.SystemData) { sys.ResponseTimer = 0 })
	b.HandleFirehose(context.Background(), mention("p2", "ヤッブミーン！"))
	if len(pub.replies) != 1 || pub.replies[0] != "＼ﾊｰｲ!🙌／" {
		t.Fatalf("bang call-out should reply, got posts=%v replies=%v", pub.posts, pub.replies)
	}
}

func TestDispatch_LoginBonusMessages(t *testing.T) {
	pub := &fakePub{}
	b := newTestBot(pub)

	b.Dispatch(context.Background(), mention("p1", "ログボ"))
	if len(pub.replies) != 1 || !strings.Contains(pub.replies[0], "最初のログイン") {
		t.Fatalf("first login message wrong: %v", pub.replies)
	}

	b.guard = NewCooldownGuard(nil)
	b.Dispatch(context.Background(), mention("p1", "ログボ"))
	if len(pub.replies) != 2 || !strings.Contains(pub.replies[1], "今日はもうログイン済みです") {
		t.Fatalf("repeat login message wrong: %v", pub.replies)
	}
}

func TestDispatch_RemindLifecycle(t *testing.T) {
	pub := &fakePub{}
	b := newTestBot(pub)

	created := mention("p1", "remind 2099/01/01 09:00 !!!おきて")
	b.Dispatch(context.Background(), created)
	if len(pub.replies) != 1 || !strings.Contains(pub.replies[0], "になったらお知らせします！") {
		t.Fatalf("create reply wrong: %v", pub.replies)
	}

	var stored []domain.Reminder
	b.store.WithSystem(func(sys *domain.SystemData) { stored = append(stored, sys.Reminders...) })
	if len(stored) != 1 || stored[0].Content != "おきて" || stored[0].EventPubkey != "p1" {
		t.Fatalf("stored reminder wrong: %+v", stored)
	}

	b.guard = NewCooldownGuard(nil)
	b.Dispatch(context.Background(), mention("p1", "remind list"))
	note := regexp.MustCompile(`nostr:(note1\w+)`).FindStringSubmatch(pub.replies[1])
	if note == nil {
		t.Fatalf("list should show the note reference: %q", pub.replies[1])
	}
	prefix, decoded, err := nip19.Decode(note[1])
	if err != nil || prefix != "note" || decoded.(string) != created.ID {
		t.Fatalf("listed reference %q does not point back to %q (err %v)", note[1], created.ID, err)
	}

	b.guard = NewCooldownGuard(nil)
	b.Dispatch(context.Background(), mention("p1", "remind 昨日のことは忘れた"))
	if pub.replies[2] != "正しく処理できませんでした…" {
		t.Fatalf("unparsable reminder should apologize: %q", pub.replies[2])
	}
}

func TestSweepReminders_FiresDueAndKeepsFuture(t *testing.T) {
	pub := &fakePub{}
	b := newTestBot(pub)
	now := b.now()

	b.store.WithSystem(func(sys *domain.SystemData) {
		sys.Reminders = []domain.Reminder{
			{RemindAt: now.Add(-time.Minute).UnixMilli(), EventID: "a", EventPubkey: "p1", EventKind: 1, Content: "おきて"},
			{RemindAt: now.Add(time.Hour).UnixMilli(), EventID: "b", EventPubkey: "p1", EventKind: 1},
		}
	})

	b.SweepReminders(context.Background())
	if len(pub.replies) != 1 || pub.replies[0] != "((🔔)) おきて" {
		t.Fatalf("due reminder reply wrong: %v", pub.replies)
	}

	var left int
	b.store.WithSystem(func(sys *domain.SystemData) { left = len(sys.Reminders) })
	if left != 1 {
		t.Fatalf("future reminder must survive the sweep, left %d", left)
	}

	b.SweepReminders(context.Background())
	if len(pub.replies) != 1 {
		t.Fatalf("due reminder fired twice: %v", pub.replies)
	}
}
