// Package bot dispatches relay events to command handlers and composes
// the replies.
package bot

import (
	"context"
	"math/rand"
	"regexp"
	"strconv"
	"time"

	"github.com/nbd-wtf/go-nostr"
	"go.uber.org/zap"

	"github.com/ikuradon/823chan/internal/domain"
	"github.com/ikuradon/823chan/internal/geo"
	"github.com/ikuradon/823chan/internal/kvcache"
	"github.com/ikuradon/823chan/internal/memory"
	"github.com/ikuradon/823chan/internal/rates"
	"github.com/ikuradon/823chan/internal/relay"
	"github.com/ikuradon/823chan/internal/search"
	"github.com/ikuradon/823chan/internal/strfry"
	"github.com/ikuradon/823chan/internal/weather"
)

// handlerFunc runs one command against an inbound event. The returned
// flag reports whether the event counts as handled; the dispatch loop
// takes the value of the last matching handler.
type handlerFunc func(ctx context.Context, sys *domain.SystemData, usr *domain.UserData, ev *nostr.Event) bool

type command struct {
	re *regexp.Regexp
	// runsEvenIfHandled commands fire regardless of earlier matches in
	// the same event; the others are skipped once something handled it.
	runsEvenIfHandled bool
	fn                handlerFunc
}

// Deps carries the collaborators a Bot needs. Search and KV may be nil
// when the backing services are not configured; the commands that need
// them degrade into an apology reply.
type Deps struct {
	Log         *zap.Logger
	Store       *memory.Store
	Publisher   relay.Publisher
	Strfry      *strfry.Client
	Rates       *rates.Client
	Geo         *geo.Client
	Weather     *weather.Client
	Search      *search.Client
	KV          *kvcache.Client
	AdminPubkey string
	// Shutdown is invoked by the admin reboot command after the
	// farewell reply is sent.
	Shutdown func()
}

type Bot struct {
	log      *zap.Logger
	store    *memory.Store
	pub      relay.Publisher
	guard    *CooldownGuard
	strfry   *strfry.Client
	fx       *rates.Client
	geo      *geo.Client
	weather  *weather.Client
	search   *search.Client
	kv       *kvcache.Client
	admin    string
	shutdown func()

	rng      *rand.Rand
	now      func() time.Time
	commands []command
}

func New(d Deps) *Bot {
	b := &Bot{
		log:      d.Log,
		store:    d.Store,
		pub:      d.Publisher,
		guard:    NewCooldownGuard(nil),
		strfry:   d.Strfry,
		fx:       d.Rates,
		geo:      d.Geo,
		weather:  d.Weather,
		search:   d.Search,
		kv:       d.KV,
		admin:    d.AdminPubkey,
		shutdown: d.Shutdown,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
		now:      time.Now,
	}
	b.commands = b.commandTable()
	return b
}

// fmtNum renders a float the way users expect to read an amount: the
// shortest representation that round-trips.
func fmtNum(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// fmtStamp renders unix seconds as "yyyy-MM-dd HH:mm" local time.
func fmtStamp(sec int64) string {
	return time.Unix(sec, 0).Format("2006-01-02 15:04")
}

// fmtStampMillis renders epoch milliseconds the same way.
func fmtStampMillis(ms int64) string {
	return time.UnixMilli(ms).Format("2006-01-02 15:04")
}
