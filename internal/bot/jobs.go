package bot

import (
	"context"
	"fmt"
	"time"

	"github.com/nbd-wtf/go-nostr"
	"go.uber.org/zap"

	"github.com/ikuradon/823chan/internal/domain"
)

// SweepReminders delivers and removes every due reminder. Removal and
// delivery happen under one store pass, so a reminder fires once even if
// two sweeps race.
func (b *Bot) SweepReminders(ctx context.Context) {
	b.store.WithSystem(func(sys *domain.SystemData) {
		for _, r := range sys.PopDueReminders(b.now().UnixMilli()) {
			tags := make(nostr.Tags, 0, len(r.EventTags))
			for _, t := range r.EventTags {
				tags = append(tags, nostr.Tag(t))
			}
			kind := r.EventKind
			if kind == 0 {
				kind = nostr.KindTextNote
			}
			target := &nostr.Event{
				ID:        r.EventID,
				PubKey:    r.EventPubkey,
				Kind:      kind,
				Tags:      tags,
				CreatedAt: nostr.Now(),
			}

			msg := "((🔔))"
			if r.Content != "" {
				msg += " " + r.Content
			}
			b.pub.Reply(ctx, msg, target)
		}
	})
}

// RefreshRates updates the cached exchange rates. The two upstream
// requests are independent; either may fail without spoiling the other.
func (b *Bot) RefreshRates(ctx context.Context) {
	if btc2usd, btc2jpy, err := b.fx.BTCRates(ctx); err == nil {
		b.store.WithSystem(func(sys *domain.SystemData) {
			sys.Currency.Btc2USD = btc2usd
			sys.Currency.Btc2JPY = btc2jpy
			sys.Currency.UpdateAt = b.now().Unix()
		})
		b.log.Info("btc rates updated")
	} else {
		b.log.Warn("btc rates fetch failed", zap.Error(err))
	}

	if usd2jpy, err := b.fx.USDJPY(ctx); err == nil {
		b.store.WithSystem(func(sys *domain.SystemData) {
			sys.Currency.USD2JPY = usd2jpy
			sys.Currency.UpdateAt = b.now().Unix()
		})
		b.log.Info("usd/jpy rate updated")
	} else {
		b.log.Warn("usd/jpy rate fetch failed", zap.Error(err))
	}
}

// PostReady announces that the subscription backlog is drained.
func (b *Bot) PostReady(ctx context.Context, startedAt time.Time) {
	duration := time.Since(startedAt).Round(time.Millisecond).Seconds()
	b.pub.Post(ctx, fmt.Sprintf("準備完了！\nduration: %gsec.", duration), nil)
}
