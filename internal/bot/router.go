package bot

import (
	"context"
	"regexp"

	"github.com/nbd-wtf/go-nostr"
	"go.uber.org/zap"

	"github.com/ikuradon/823chan/internal/domain"
)

// Dispatch runs one mention event through the command table. A panicking
// handler is contained to its event; the loop keeps serving.
func (b *Bot) Dispatch(ctx context.Context, ev *nostr.Event) {
	defer func() {
		if r := recover(); r != nil {
			b.log.Error("handler panic", zap.Any("panic", r), zap.String("event", ev.ID))
		}
	}()

	if !b.guard.SafeToReply(ev) {
		return
	}
	b.log.Info("event received", zap.String("content", ev.Content))

	b.store.WithUser(ev.PubKey, func(sys *domain.SystemData, usr *domain.UserData) {
		handled := false
		for _, cmd := range b.commands {
			if !cmd.re.MatchString(ev.Content) {
				continue
			}
			if !cmd.runsEvenIfHandled && handled {
				continue
			}
			handled = cmd.fn(ctx, sys, usr, ev)
		}
		if !handled {
			b.cmdUnknown(ctx, sys, usr, ev)
		}
	})
}

var (
	reCallName    = regexp.MustCompile(`(?i)^(823|823chan|やぶみちゃん|やぶみん)$`)
	reCallOut     = regexp.MustCompile(`(ヤッブミーン|ﾔｯﾌﾞﾐｰﾝ|やっぶみーん)`)
	reCallOutBang = regexp.MustCompile(`(ヤッブミーン|ﾔｯﾌﾞﾐｰﾝ|やっぶみーん)(!|！)`)
)

// responseCooldownSec throttles the call-name watcher globally, not per
// sender, so a busy channel does not turn the bot into a parrot.
const responseCooldownSec = 30

// HandleFirehose reacts to call names seen anywhere on the relay. The
// caller filters out the bot's own events.
func (b *Bot) HandleFirehose(ctx context.Context, ev *nostr.Event) {
	b.store.WithSystem(func(sys *domain.SystemData) {
		now := b.now().Unix()
		if now-sys.ResponseTimer < responseCooldownSec {
			return
		}

		switch {
		case reCallName.MatchString(ev.Content):
			b.pub.Post(ctx, "👋", ev)
		case reCallOut.MatchString(ev.Content):
			msg := "＼ﾊｰｲ!🙌／"
			if reCallOutBang.MatchString(ev.Content) {
				b.pub.Reply(ctx, msg, ev)
			} else {
				b.pub.Post(ctx, msg, ev)
			}
		default:
			return
		}
		sys.ResponseTimer = now
	})
}
