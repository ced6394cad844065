package bot

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/nbd-wtf/go-nostr"
	"github.com/nbd-wtf/go-nostr/nip19"
	"go.uber.org/zap"

	"github.com/ikuradon/823chan/internal/calc"
	"github.com/ikuradon/823chan/internal/domain"
)

func (b *Bot) cmdPing(ctx context.Context, _ *domain.SystemData, _ *domain.UserData, ev *nostr.Event) bool {
	b.pub.Reply(ctx, "pong!", ev)
	return true
}

func (b *Bot) cmdDiceMulti(ctx context.Context, _ *domain.SystemData, _ *domain.UserData, ev *nostr.Event) bool {
	m := reDiceMulti.FindStringSubmatch(ev.Content)
	count, _ := strconv.Atoi(m[2])
	sides, _ := strconv.Atoi(m[3])

	rolls, sum, ok := domain.RollDice(count, sides, b.rng)
	if !ok {
		b.pub.Reply(ctx, "数えられない…", ev)
		return true
	}

	parts := make([]string, len(rolls))
	for i, r := range rolls {
		parts[i] = strconv.Itoa(r)
	}
	b.pub.Reply(ctx, fmt.Sprintf("%s = %d が出ました", strings.Join(parts, "+"), sum), ev)
	return true
}

func (b *Bot) cmdDiceSingle(ctx context.Context, _ *domain.SystemData, _ *domain.UserData, ev *nostr.Event) bool {
	roll := b.rng.Intn(6) + 1
	b.pub.Reply(ctx, fmt.Sprintf("%dが出ました", roll), ev)
	return true
}

func (b *Bot) cmdReaction(ctx context.Context, _ *domain.SystemData, _ *domain.UserData, ev *nostr.Event) bool {
	emoji := reactionEmojis[b.rng.Intn(len(reactionEmojis))]
	art := aaList[b.rng.Intn(len(aaList))]
	b.pub.Reply(ctx, strings.Replace(art, "Z", emoji, 1), ev)
	b.pub.React(ctx, emoji, ev)
	return true
}

func (b *Bot) cmdCount(ctx context.Context, _ *domain.SystemData, usr *domain.UserData, ev *nostr.Event) bool {
	usr.Counter++
	b.pub.Reply(ctx, fmt.Sprintf("%d回目です", usr.Counter), ev)
	return true
}

func (b *Bot) cmdLoginBonus(ctx context.Context, _ *domain.SystemData, usr *domain.UserData, ev *nostr.Event) bool {
	var msg string
	switch domain.ApplyLoginBonus(usr, int64(ev.CreatedAt), b.now()) {
	case domain.LoginFuture:
		msg = "未来からログインしないで！"
	case domain.LoginFirst:
		msg = "はじめまして！\n最初のログインです"
	case domain.LoginGranted:
		msg = domain.Greeting(b.now()) + "\n" +
			fmt.Sprintf("あなたの合計ログイン回数は%d回です。\n", usr.Login.TotalCount) +
			fmt.Sprintf("あなたの連続ログイン回数は%d回です。", usr.Login.ConsecutiveCount)
	case domain.LoginAlready:
		msg = "今日はもうログイン済みです。\n" +
			fmt.Sprintf("あなたの合計ログイン回数は%d回です。\n", usr.Login.TotalCount) +
			fmt.Sprintf("あなたの連続ログイン回数は%d回です。", usr.Login.ConsecutiveCount)
	}
	b.pub.Reply(ctx, msg, ev)
	return true
}

func (b *Bot) cmdUnixtime(ctx context.Context, _ *domain.SystemData, _ *domain.UserData, ev *nostr.Event) bool {
	b.pub.Reply(ctx, fmt.Sprintf("現在は%dです。", b.now().Unix()+1), ev)
	return true
}

func (b *Bot) cmdBlocktime(ctx context.Context, _ *domain.SystemData, _ *domain.UserData, ev *nostr.Event) bool {
	msg := "取得に失敗しました…"
	if height, err := b.fx.TipHeight(ctx); err == nil {
		msg = fmt.Sprintf("現在のblocktimeは%dです。", height)
	} else {
		b.log.Warn("blocktime fetch failed", zap.Error(err))
	}
	b.pub.Reply(ctx, msg, ev)
	return true
}

func (b *Bot) cmdCalc(ctx context.Context, _ *domain.SystemData, _ *domain.UserData, ev *nostr.Event) bool {
	formula := reCalc.FindStringSubmatch(ev.Content)[2]
	msg := "式が不明です…"
	if formula != "" {
		out, err := calc.Evaluate(ctx, formula)
		if err != nil || out == "" {
			msg = "計算できませんでした…"
		} else {
			msg = "結果は以下の通りです！\n" + out
		}
	}
	b.pub.Reply(ctx, msg, ev)
	return true
}

func (b *Bot) cmdLocation(ctx context.Context, _ *domain.SystemData, _ *domain.UserData, ev *nostr.Event) bool {
	var location string
	if m := reLocation.FindStringSubmatch(ev.Content); m != nil {
		location = m[2]
	} else if m := reLocationAlt.FindStringSubmatch(ev.Content); m != nil {
		location = m[1]
	}

	msg := "わかりませんでした…"
	if location != "" {
		if places, err := b.geo.Resolve(ctx, location); err == nil && len(places) > 0 {
			msg = fmt.Sprintf("%sは%sにあるみたいです！", location, places[0].Title)
		}
	}
	b.pub.Reply(ctx, msg, ev)
	return true
}

func (b *Bot) cmdPassport(ctx context.Context, _ *domain.SystemData, _ *domain.UserData, ev *nostr.Event) bool {
	msg := "正しく処理できませんでした…"
	if b.kv != nil {
		until := b.now().AddDate(0, 0, 7)
		if err := b.kv.SetPassport(ctx, ev.PubKey, until); err == nil {
			msg = "通行許可証を発行しました！\n" +
				fmt.Sprintf("%s まで国外から書き込み可能になります！", until.Format("2006-01-02 15:04"))
		} else {
			b.log.Warn("passport set failed", zap.Error(err))
		}
	}
	b.pub.Reply(ctx, msg, ev)
	return true
}

var pushKindLabels = map[int]string{
	1:    "ノート",
	4:    "DM",
	42:   "GROUP CHAT",
	9735: "Zap",
}

func pushKind(arg string) int {
	switch {
	case strings.EqualFold(arg, "note") || arg == "1":
		return 1
	case strings.EqualFold(arg, "dm") || arg == "4":
		return 4
	case strings.EqualFold(arg, "channel") || arg == "42":
		return 42
	case strings.EqualFold(arg, "zap") || arg == "9735":
		return 9735
	}
	return 0
}

func parseToggle(arg string) (enabled, ok bool) {
	switch strings.ToLower(arg) {
	case "enable", "on", "true", "1":
		return true, true
	case "disable", "off", "false", "0":
		return false, true
	}
	return false, false
}

func (b *Bot) cmdPushSetting(ctx context.Context, _ *domain.SystemData, _ *domain.UserData, ev *nostr.Event) bool {
	args := strings.Fields(reSearchArg(rePush, ev.Content))

	msg := "問題が発生しました…"
	if len(args) >= 2 && b.kv != nil {
		kind := pushKind(args[0])
		enabled, ok := parseToggle(strings.Join(args[1:], " "))
		if kind != 0 && ok {
			if err := b.kv.SetPushFlag(ctx, ev.PubKey, kind, enabled); err == nil {
				suffix := "無効化しました！"
				if enabled {
					suffix = "有効化しました！"
				}
				msg = fmt.Sprintf("%sの通知を%s", pushKindLabels[kind], suffix)
			} else {
				b.log.Warn("push flag set failed", zap.Error(err))
			}
		}
	}
	b.pub.Reply(ctx, msg, ev)
	return true
}

// reSearchArg pulls the second capture group, or "" when the pattern
// does not match.
func reSearchArg(re *regexp.Regexp, content string) string {
	if m := re.FindStringSubmatch(content); m != nil {
		return m[2]
	}
	return ""
}

func (b *Bot) cmdSearch(ctx context.Context, _ *domain.SystemData, _ *domain.UserData, ev *nostr.Event) bool {
	keyword := reSearchArg(reSearch, ev.Content)

	msg := "よくわかりませんでした…"
	if keyword != "" && b.search != nil {
		ids, err := b.search.Notes(keyword)
		if err != nil {
			b.log.Warn("search failed", zap.Error(err))
			msg = "何か問題が発生しました…"
		} else {
			var sb strings.Builder
			for _, id := range ids {
				note, err := nip19.EncodeNote(id)
				if err != nil {
					continue
				}
				sb.WriteString("nostr:" + note + "\n")
			}
			if sb.Len() == 0 {
				msg = "みつかりませんでした…"
			} else {
				msg = "検索結果は以下の通りです！\n" + sb.String()
			}
		}
	}
	b.pub.Reply(ctx, msg, ev)
	return true
}

func (b *Bot) cmdReboot(ctx context.Context, _ *domain.SystemData, _ *domain.UserData, ev *nostr.Event) bool {
	if b.admin != "" && ev.PubKey == b.admin {
		b.pub.Reply(ctx, "💤", ev)
		if b.shutdown != nil {
			b.shutdown()
		}
	} else {
		b.pub.Reply(ctx, "誰？", ev)
	}
	return true
}

func (b *Bot) cmdHelp(ctx context.Context, _ *domain.SystemData, _ *domain.UserData, ev *nostr.Event) bool {
	b.pub.Reply(ctx, domain.Greeting(b.now())+" "+helpIntro+helpBody, ev)
	return true
}

// unknownCooldownSec suppresses repeated fallback replies per sender.
const unknownCooldownSec = 5 * 60

func (b *Bot) cmdUnknown(ctx context.Context, _ *domain.SystemData, usr *domain.UserData, ev *nostr.Event) bool {
	now := b.now().Unix()
	if now-usr.FailedTimer >= unknownCooldownSec {
		msg := unknownPhrases[b.rng.Intn(len(unknownPhrases))] +
			unknownSuffixes[b.rng.Intn(len(unknownSuffixes))]
		b.pub.Reply(ctx, msg, ev)
	}
	usr.FailedTimer = now
	return true
}
