package bot

import (
	"context"
	"strings"
	"time"

	"github.com/nbd-wtf/go-nostr"
	"go.uber.org/zap"

	"github.com/ikuradon/823chan/internal/domain"
	"github.com/ikuradon/823chan/internal/weather"
)

func (b *Bot) messageWeatherForecast(ctx context.Context, location string) string {
	places, err := b.geo.Resolve(ctx, location)
	if err != nil {
		b.log.Warn("geocode failed", zap.String("location", location), zap.Error(err))
		return "何か問題が発生しました…"
	}
	if len(places) == 0 {
		return "知らない場所です…"
	}
	place := places[0]

	muni, err := b.geo.MuniCode(ctx, place.Lon, place.Lat)
	if err != nil {
		b.log.Warn("reverse geocode failed", zap.Error(err))
		return "何か問題が発生しました…"
	}
	office, class10, err := b.weather.Offices(ctx, muni)
	if err != nil {
		b.log.Warn("area lookup failed", zap.Error(err))
		return "何か問題が発生しました…"
	}
	fc, err := b.weather.Forecast(ctx, office, class10)
	if err != nil {
		b.log.Warn("forecast fetch failed", zap.Error(err))
		return "何か問題が発生しました…"
	}

	var sb strings.Builder
	sb.WriteString(place.Title + "の天気です！ (気象庁情報)\n")
	n := len(fc.Weathers)
	if len(fc.Dates) < n {
		n = len(fc.Dates)
	}
	for i := 0; i < n; i++ {
		sb.WriteString(fc.Dates[i].Format("2006-01-02") + " " + fc.Weathers[i] + "\n")
	}
	sb.WriteString("---------------\n")
	sb.WriteString(fc.Overview)
	return sb.String()
}

func (b *Bot) messageWeatherMap(ctx context.Context) string {
	url, err := b.weather.LatestMapURL(ctx)
	if err != nil {
		b.log.Warn("weather map fetch failed", zap.Error(err))
		return "何か問題が発生しました…"
	}
	return "現在の天気図です！\n" + url
}

// messageWeatherHimawari serves the cached image when the satellite has
// not produced a new frame since, uploading a fresh one otherwise.
func (b *Bot) messageWeatherHimawari(ctx context.Context, sys *domain.SystemData) string {
	tt, err := b.weather.LatestHimawari(ctx)
	if err != nil {
		b.log.Warn("himawari times fetch failed", zap.Error(err))
		return "何か問題が発生しました…"
	}
	basetime, err := weather.HimawariBasetime(tt.Basetime)
	if err != nil {
		return "何か問題が発生しました…"
	}

	url := sys.Himawari.LastURL
	if basetime.Unix() > sys.Himawari.LastDate || url == "" {
		url, err = b.weather.HimawariImage(ctx, tt)
		if err != nil {
			b.log.Warn("himawari image failed", zap.Error(err))
			return "何か問題が発生しました…"
		}
		sys.Himawari.LastDate = basetime.Unix()
		sys.Himawari.LastURL = url
	}

	dateText := basetime.In(time.Local).Format("2006-01-02 15:04")
	return dateText + "現在の気象衛星ひまわりの画像です！\n" + url
}

func (b *Bot) messageWeatherRadar(ctx context.Context, location string) string {
	places, err := b.geo.Resolve(ctx, location)
	if err != nil {
		b.log.Warn("geocode failed", zap.String("location", location), zap.Error(err))
		return "何か問題が発生しました…"
	}
	if len(places) == 0 {
		return "知らない場所です…"
	}
	place := places[0]

	tt, err := b.weather.LatestRadar(ctx)
	if err != nil {
		b.log.Warn("radar times fetch failed", zap.Error(err))
		return "何か問題が発生しました…"
	}
	url, err := b.weather.RadarImage(ctx, tt, place.Lon, place.Lat)
	if err != nil {
		b.log.Warn("radar image failed", zap.Error(err))
		return "何か問題が発生しました…"
	}
	return place.Title + "付近の雨雲の状態です！ (気象庁情報)\n" + url
}

func (b *Bot) cmdWeather(ctx context.Context, sys *domain.SystemData, _ *domain.UserData, ev *nostr.Event) bool {
	args := strings.Split(reSearchArg(reWeather, ev.Content), " ")

	var msg string
	switch args[0] {
	case "forecast":
		location := strings.Join(args[1:], " ")
		if location == "" {
			msg = "場所が不明です…"
		} else {
			msg = b.messageWeatherForecast(ctx, location)
		}
	case "map":
		msg = b.messageWeatherMap(ctx)
	case "himawari":
		msg = b.messageWeatherHimawari(ctx, sys)
	case "radar":
		location := strings.Join(args[1:], " ")
		if location == "" {
			msg = "場所が不明です…"
		} else {
			msg = b.messageWeatherRadar(ctx, location)
		}
	default:
		msg = "コマンドが不明です…"
	}

	b.pub.Reply(ctx, msg, ev)
	return true
}

func (b *Bot) cmdWeatherAltForecast(ctx context.Context, _ *domain.SystemData, _ *domain.UserData, ev *nostr.Event) bool {
	location := ""
	if m := reWeatherAltForecast.FindStringSubmatch(ev.Content); m != nil {
		location = m[1]
	}
	msg := "場所が不明です…"
	if location != "" {
		msg = b.messageWeatherForecast(ctx, location)
	}
	b.pub.Reply(ctx, msg, ev)
	return true
}

func (b *Bot) cmdWeatherAltMap(ctx context.Context, _ *domain.SystemData, _ *domain.UserData, ev *nostr.Event) bool {
	b.pub.Reply(ctx, b.messageWeatherMap(ctx), ev)
	return true
}

func (b *Bot) cmdWeatherAltHimawari(ctx context.Context, sys *domain.SystemData, _ *domain.UserData, ev *nostr.Event) bool {
	b.pub.Reply(ctx, b.messageWeatherHimawari(ctx, sys), ev)
	return true
}
