package bot

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/nbd-wtf/go-nostr"
	"go.uber.org/zap"

	"github.com/ikuradon/823chan/internal/domain"
)

const (
	infoCooldownSec   = 10 * 60
	statusCooldownSec = 5 * 60
)

func tsPtr(t time.Time) *nostr.Timestamp {
	ts := nostr.Timestamp(t.Unix())
	return &ts
}

// countSeries queries event counts over the day / week / month / total
// windows. A failing query leaves its slot at zero.
func (b *Bot) countSeries(ctx context.Context, authors []string, kinds []int) [4]int {
	now := b.now()
	windows := []*nostr.Timestamp{
		tsPtr(now.AddDate(0, 0, -1)),
		tsPtr(now.AddDate(0, 0, -7)),
		tsPtr(now.AddDate(0, -1, 0)),
		nil,
	}

	var out [4]int
	for i, since := range windows {
		n, err := b.strfry.Count(ctx, nostr.Filter{Authors: authors, Kinds: kinds, Since: since})
		if err != nil {
			b.log.Warn("event count failed", zap.Error(err))
			continue
		}
		out[i] = n
	}
	return out
}

// displayName extracts display_name (or displayName) from a verified
// kind-0 event, returning "" when unavailable.
func (b *Bot) displayName(ctx context.Context, pubkey string) string {
	meta, err := b.strfry.Metadata(ctx, pubkey)
	if err != nil || meta == nil {
		return ""
	}
	if ok, err := meta.CheckSignature(); !ok || err != nil {
		return ""
	}
	var profile map[string]any
	if err := json.Unmarshal([]byte(meta.Content), &profile); err != nil {
		return ""
	}
	if name, ok := profile["display_name"].(string); ok && name != "" {
		return name
	}
	if name, ok := profile["displayName"].(string); ok && name != "" {
		return name
	}
	return ""
}

func (b *Bot) cmdInfo(ctx context.Context, _ *domain.SystemData, usr *domain.UserData, ev *nostr.Event) bool {
	now := b.now().Unix()
	if elapsed := now - usr.InfoTimer; elapsed < infoCooldownSec {
		msg := fmt.Sprintf("しばらく経ってからもう一度実行してください…\ncooldown: %d", infoCooldownSec-elapsed)
		b.pub.Reply(ctx, msg, ev)
		return true
	}

	var sb strings.Builder
	if name := b.displayName(ctx, ev.PubKey); name != "" {
		sb.WriteString(fmt.Sprintf("%s %sさん！\n", domain.Greeting(b.now()), name))
	} else {
		sb.WriteString(fmt.Sprintf("%s (まだkind:0を受信していません)\n", domain.Greeting(b.now())))
	}
	sb.WriteString("やぶみが把握しているあなたのイベントは以下の通りです。 (day, week, month, total)\n")

	authors := []string{ev.PubKey}
	notes := b.countSeries(ctx, authors, []int{1})
	sb.WriteString(fmt.Sprintf("投稿(kind: 1): %d, %d, %d, %d\n", notes[0], notes[1], notes[2], notes[3]))
	reposts := b.countSeries(ctx, authors, []int{6})
	sb.WriteString(fmt.Sprintf("リポスト(kind: 6): %d, %d, %d, %d\n", reposts[0], reposts[1], reposts[2], reposts[3]))
	reactions := b.countSeries(ctx, authors, []int{7})
	sb.WriteString(fmt.Sprintf("リアクション(kind: 7): %d, %d, %d, %d\n", reactions[0], reactions[1], reactions[2], reactions[3]))
	all := b.countSeries(ctx, authors, nil)
	sb.WriteString(fmt.Sprintf("全てのイベント: %d, %d, %d, %d", all[0], all[1], all[2], all[3]))

	b.pub.Reply(ctx, sb.String(), ev)
	usr.InfoTimer = now
	return true
}

func (b *Bot) cmdStatus(ctx context.Context, sys *domain.SystemData, _ *domain.UserData, ev *nostr.Event) bool {
	now := b.now().Unix()
	if elapsed := now - sys.StatusTimer; elapsed < statusCooldownSec {
		msg := fmt.Sprintf("しばらく経ってからもう一度実行してください…\nCooldown: %d", statusCooldownSec-elapsed)
		b.pub.Reply(ctx, msg, ev)
		return true
	}

	var sb strings.Builder
	sb.WriteString("やぶみリレーの統計情報です！\n")

	lines, err := b.strfry.Scan(ctx, nostr.Filter{
		Kinds: []int{1},
		Since: tsPtr(b.now().AddDate(0, 0, -1)),
	})
	if err != nil {
		b.log.Warn("event scan failed", zap.Error(err))
	}
	userList := CountUserEvents(lines)
	for _, threshold := range []int{1, 2, 10, 50, 100} {
		active := 0
		for _, u := range userList {
			if u.Count >= threshold {
				active++
			}
		}
		sb.WriteString(fmt.Sprintf("直近24時間でノート(kind: 1)を%d回以上投稿したユーザー数は%dでした！\n", threshold, active))
	}

	sb.WriteString("\n")
	sb.WriteString("全てのユーザーのイベントは以下の通りです。 (day, week, month, total)\n")

	metadata := b.countSeries(ctx, nil, []int{0})
	sb.WriteString(fmt.Sprintf("メタデータ(kind: 0): %d, %d, %d, %d\n", metadata[0], metadata[1], metadata[2], metadata[3]))
	notes := b.countSeries(ctx, nil, []int{1})
	sb.WriteString(fmt.Sprintf("投稿(kind: 1): %d, %d, %d, %d\n", notes[0], notes[1], notes[2], notes[3]))
	reposts := b.countSeries(ctx, nil, []int{6})
	sb.WriteString(fmt.Sprintf("リポスト(kind: 6): %d, %d, %d, %d\n", reposts[0], reposts[1], reposts[2], reposts[3]))
	reactions := b.countSeries(ctx, nil, []int{7})
	sb.WriteString(fmt.Sprintf("リアクション(kind: 7): %d, %d, %d, %d\n", reactions[0], reactions[1], reactions[2], reactions[3]))
	all := b.countSeries(ctx, nil, nil)
	sb.WriteString(fmt.Sprintf("全てのイベント: %d, %d, %d, %d", all[0], all[1], all[2], all[3]))

	b.pub.Reply(ctx, sb.String(), ev)
	sys.StatusTimer = now
	return true
}
