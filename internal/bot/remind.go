package bot

import (
	"context"
	"regexp"
	"strings"

	"github.com/nbd-wtf/go-nostr"
	"github.com/nbd-wtf/go-nostr/nip19"

	"github.com/ikuradon/823chan/internal/domain"
)

var (
	reRemindList = regexp.MustCompile(`(?i)^(list)$`)
	reRemindDel  = regexp.MustCompile(`(?i)^(del)\s(.+)$`)
)

func eventETags(ev *nostr.Event) [][]string {
	var out [][]string
	for _, tag := range ev.Tags {
		if len(tag) >= 2 && tag[0] == "e" {
			out = append(out, tag)
		}
	}
	return out
}

func (b *Bot) cmdRemind(ctx context.Context, sys *domain.SystemData, _ *domain.UserData, ev *nostr.Event) bool {
	arg := reSearchArg(reRemind, ev.Content)

	var msg string
	switch {
	case reRemindList.MatchString(arg):
		msg = "あなた宛に現在登録されている通知予定は以下の通りです！\n"
		list := sys.RemindersFor(ev.PubKey)
		if len(list) == 0 {
			msg += "見つかりませんでした…"
		} else {
			for _, r := range list {
				note, err := nip19.EncodeNote(r.EventID)
				if err != nil {
					continue
				}
				msg += fmtStampMillis(r.RemindAt) + " => nostr:" + note + "\n"
			}
		}

	case reRemindDel.MatchString(arg):
		word := strings.Replace(reRemindDel.FindStringSubmatch(arg)[2], "nostr:", "", 1)
		id := word
		if _, data, err := nip19.Decode(word); err == nil {
			if s, ok := data.(string); ok {
				id = s
			}
		}
		sys.DeleteReminders(ev.PubKey, id)
		msg = "正しく処理できませんでした…"
		if note, err := nip19.EncodeNote(id); err == nil {
			msg = "指定されたノート( nostr:" + note + " )宛てにあなたが作成した通知を全て削除しました！"
		}

	default:
		dateText, content := domain.SplitRemindArgs(arg)
		at, err := domain.ParseRemindAt(dateText, b.now())
		if err == nil && at.After(b.now()) {
			sys.Reminders = append(sys.Reminders, domain.Reminder{
				RemindAt:    at.UnixMilli(),
				EventID:     ev.ID,
				EventPubkey: ev.PubKey,
				EventKind:   ev.Kind,
				EventTags:   eventETags(ev),
				Content:     content,
			})
			msg = at.Format("2006-01-02 15:04") + "になったらお知らせします！"
		} else {
			msg = "正しく処理できませんでした…"
		}
	}

	b.pub.Reply(ctx, msg, ev)
	return true
}
