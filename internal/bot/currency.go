package bot

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/nbd-wtf/go-nostr"

	"github.com/ikuradon/823chan/internal/domain"
)

const poweredBy = "Powered by CoinGecko"

func (b *Bot) cmdFiatConv(ctx context.Context, sys *domain.SystemData, _ *domain.UserData, ev *nostr.Event) bool {
	cur := sys.Currency
	if !cur.Populated() {
		return false
	}

	args := strings.Split(reSearchArg(reFiatConv, ev.Content), " ")

	var unit string
	switch head := strings.ToLower(args[0]); {
	case strings.Contains(head, "yen") || strings.Contains(head, "jpy"):
		unit = "jpy"
	case strings.Contains(head, "dollar") || strings.Contains(head, "usd"):
		unit = "usd"
	case strings.Contains(head, "sat"):
		unit = "sat"
	case strings.Contains(head, "btc") || strings.Contains(head, "bitcoin"):
		unit = "btc"
	}

	price, err := strconv.ParseFloat(strings.Join(args[1:], " "), 64)
	if err != nil {
		price = math.NaN()
	}

	updateAt := fmtStamp(cur.UpdateAt)
	msg := "わかりませんでした…"
	switch unit {
	case "sat":
		usd := domain.Sat2Btc(price) * cur.Btc2USD
		jpy := domain.Sat2Btc(price) * cur.Btc2JPY
		msg = fmt.Sprintf("丰%s は 日本円で%s、USドルで%sでした！\nupdate at: %s\n%s",
			fmtNum(price), fmtNum(jpy), fmtNum(usd), updateAt, poweredBy)
	case "btc":
		usd := price * cur.Btc2USD
		jpy := price * cur.Btc2JPY
		msg = fmt.Sprintf("₿%s は 日本円で%s、USドルで%sでした！\nupdate at: %s\n%s",
			fmtNum(price), fmtNum(jpy), fmtNum(usd), updateAt, poweredBy)
	case "jpy":
		usd := price / cur.USD2JPY
		sat := domain.Btc2Sat(price / cur.Btc2JPY)
		msg = fmt.Sprintf("￥%s は Satoshiで%s、USドルで%sでした！\nupdate at: %s\n%s",
			fmtNum(price), fmtNum(sat), fmtNum(usd), updateAt, poweredBy)
	case "usd":
		jpy := price * cur.USD2JPY
		sat := domain.Btc2Sat(price / cur.Btc2USD)
		msg = fmt.Sprintf("＄%s は Satoshiで%s、日本円で%sでした！\nupdate at: %s\n%s",
			fmtNum(price), fmtNum(sat), fmtNum(jpy), updateAt, poweredBy)
	}
	b.pub.Reply(ctx, msg, ev)
	return true
}

func (b *Bot) cmdSatConv(ctx context.Context, sys *domain.SystemData, _ *domain.UserData, ev *nostr.Event) bool {
	cur := sys.Currency
	if !cur.Populated() {
		return false
	}

	sat, _ := strconv.ParseFloat(reSearchArg(reSatConv, ev.Content), 64)
	usd := domain.Sat2Btc(sat) * cur.Btc2USD
	jpy := domain.Sat2Btc(sat) * cur.Btc2JPY
	msg := fmt.Sprintf("丰%s = ￥%s ＄%s\nupdate at: %s\n%s",
		fmtNum(sat), fmtNum(jpy), fmtNum(usd), fmtStamp(cur.UpdateAt), poweredBy)
	b.pub.Reply(ctx, msg, ev)
	return true
}

func (b *Bot) cmdJpyConv(ctx context.Context, sys *domain.SystemData, _ *domain.UserData, ev *nostr.Event) bool {
	cur := sys.Currency
	if !cur.Populated() {
		return false
	}

	jpy, _ := strconv.ParseFloat(reSearchArg(reJpyConv, ev.Content), 64)
	usd := jpy / cur.USD2JPY
	sat := domain.Btc2Sat(jpy / cur.Btc2JPY)
	msg := fmt.Sprintf("￥%s = 丰%s ＄%s\nupdate at: %s\n%s",
		fmtNum(jpy), fmtNum(sat), fmtNum(usd), fmtStamp(cur.UpdateAt), poweredBy)
	b.pub.Reply(ctx, msg, ev)
	return true
}

func (b *Bot) cmdUsdConv(ctx context.Context, sys *domain.SystemData, _ *domain.UserData, ev *nostr.Event) bool {
	cur := sys.Currency
	if !cur.Populated() {
		return false
	}

	usd, _ := strconv.ParseFloat(reSearchArg(reUsdConv, ev.Content), 64)
	jpy := usd * cur.USD2JPY
	sat := domain.Btc2Sat(usd / cur.Btc2USD)
	msg := fmt.Sprintf("＄%s = 丰%s ￥%s\nupdate at: %s\n%s",
		fmtNum(usd), fmtNum(sat), fmtNum(jpy), fmtStamp(cur.UpdateAt), poweredBy)
	b.pub.Reply(ctx, msg, ev)
	return true
}
