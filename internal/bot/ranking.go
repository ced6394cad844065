package bot

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/nbd-wtf/go-nostr"
	"github.com/nbd-wtf/go-nostr/nip19"
	"go.uber.org/zap"

	"github.com/ikuradon/823chan/internal/domain"
)

// UserCount is one ranking row.
type UserCount struct {
	Pubkey string
	Count  int
}

// CountUserEvents tallies raw event lines per author, most active first.
// Unparsable lines are skipped.
func CountUserEvents(lines []string) []UserCount {
	counts := map[string]int{}
	for _, line := range lines {
		var ev struct {
			Pubkey string `json:"pubkey"`
		}
		if err := json.Unmarshal([]byte(line), &ev); err != nil || ev.Pubkey == "" {
			continue
		}
		counts[ev.Pubkey]++
	}

	out := make([]UserCount, 0, len(counts))
	for pk, n := range counts {
		out = append(out, UserCount{Pubkey: pk, Count: n})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	return out
}

var rankingHeaders = []string{
	"🥇", "🥈", "🥉", "④", "⑤", "⑥", "⑦", "⑧", "⑨", "⑩",
	"⑪", "⑫", "⑬", "⑭", "⑮", "⑯", "⑰", "⑱", "⑲", "⑳",
}

// GenerateRanking renders the top twenty rows with medal headers and
// profile names where a verified kind-0 exists.
func (b *Bot) GenerateRanking(ctx context.Context, list []UserCount) string {
	if len(list) > len(rankingHeaders) {
		list = list[:len(rankingHeaders)]
	}

	var sb strings.Builder
	for i, u := range list {
		npub, err := nip19.EncodePublicKey(u.Pubkey)
		if err != nil {
			continue
		}
		if name := b.displayName(ctx, u.Pubkey); name != "" {
			sb.WriteString(fmt.Sprintf("%s %d %s (nostr:%s)\n", rankingHeaders[i], u.Count, name, npub))
		} else {
			sb.WriteString(fmt.Sprintf("%s %d nostr:%s\n", rankingHeaders[i], u.Count, npub))
		}
	}
	return strings.TrimSpace(sb.String())
}

// PostDailyRankings publishes yesterday's note, repost and reaction
// rankings as standalone posts.
func (b *Bot) PostDailyRankings(ctx context.Context) {
	currentDay := domain.StartOfDay(b.now())
	yesterday := currentDay.AddDate(0, 0, -1)
	until := currentDay.Add(-time.Second)

	lines, err := b.strfry.Scan(ctx, nostr.Filter{
		Kinds: []int{1, 6, 7},
		Since: tsPtr(yesterday),
		Until: tsPtr(until),
	})
	if err != nil {
		b.log.Error("ranking scan failed", zap.Error(err))
		return
	}

	byKind := map[int][]string{}
	for _, line := range lines {
		var ev struct {
			Kind int `json:"kind"`
		}
		if err := json.Unmarshal([]byte(line), &ev); err != nil {
			continue
		}
		byKind[ev.Kind] = append(byKind[ev.Kind], line)
	}

	window := fmt.Sprintf("集計期間：%s → %s",
		yesterday.Format("2006-01-02 15:04"), until.Format("2006-01-02 15:04"))
	b.log.Info("posting rankings", zap.String("window", window))

	titles := []struct {
		kind  int
		title string
	}{
		{1, "ノート(kind: 1)ランキングです！"},
		{6, "リポスト(kind: 6)ランキングです！"},
		{7, "リアクション(kind: 7)ランキングです！"},
	}
	for _, t := range titles {
		ranking := b.GenerateRanking(ctx, CountUserEvents(byKind[t.kind]))
		b.pub.Post(ctx, fmt.Sprintf("%s\n%s\n\n%s", t.title, window, ranking), nil)
	}
}
