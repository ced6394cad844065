// Package app wires configuration, storage, the relay connection and
// the dispatcher together, and owns the process lifecycle.
package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/ikuradon/823chan/internal/bot"
	"github.com/ikuradon/823chan/internal/config"
	"github.com/ikuradon/823chan/internal/geo"
	"github.com/ikuradon/823chan/internal/imagehost"
	"github.com/ikuradon/823chan/internal/kvcache"
	"github.com/ikuradon/823chan/internal/memory"
	"github.com/ikuradon/823chan/internal/rates"
	"github.com/ikuradon/823chan/internal/relay"
	"github.com/ikuradon/823chan/internal/scheduler"
	"github.com/ikuradon/823chan/internal/search"
	"github.com/ikuradon/823chan/internal/store"
	"github.com/ikuradon/823chan/internal/strfry"
	"github.com/ikuradon/823chan/internal/weather"
)

type App struct {
	cfg     config.Config
	log     *zap.Logger
	httpSrv *http.Server
	relay   *relay.Client
	mem     *memory.Store
	repo    store.Repo
}

func New(cfg config.Config, log *zap.Logger) (*App, error) {
	rc, err := relay.NewClient(cfg.RelayURL, cfg.PrivateKeyHex, log)
	if err != nil {
		return nil, err
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      mux,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	}

	return &App{
		cfg:     cfg,
		log:     log,
		httpSrv: srv,
		relay:   rc,
		mem:     memory.NewStore(),
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	startedAt := time.Now()
	a.log.Info("starting bot", zap.String("relay", a.cfg.RelayURL), zap.String("http", a.cfg.HTTPAddr))

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	repo, err := store.OpenSQLite(ctx, a.cfg.MemoryDBPath)
	if err != nil {
		a.log.Error("open sqlite failed", zap.Error(err))
		return err
	}
	a.repo = repo
	defer func() { _ = a.repo.Close() }()

	snap, err := repo.LoadAll(ctx)
	if err != nil {
		a.log.Error("memory load failed", zap.Error(err))
		return err
	}
	if err := a.mem.Restore(snap); err != nil {
		a.log.Error("memory restore failed", zap.Error(err))
		return err
	}
	a.log.Info("memory loaded", zap.Int("records", len(snap)))

	if err := a.relay.Connect(ctx); err != nil {
		a.log.Error("relay connect failed", zap.Error(err))
		return err
	}
	defer func() { _ = a.relay.Close() }()
	a.log.Info("relay connected")

	var kv *kvcache.Client
	if a.cfg.RedisAddr != "" {
		kv, err = kvcache.Open(ctx, a.cfg.RedisAddr, a.cfg.RedisPassword, a.cfg.RedisDB)
		if err != nil {
			a.log.Warn("redis unavailable, passport and push commands degraded", zap.Error(err))
			kv = nil
		}
	}

	var searcher *search.Client
	if a.cfg.MeiliHost != "" {
		searcher = search.NewClient(a.cfg.MeiliHost, a.cfg.MeiliAPIKey)
	}

	var uploader imagehost.Uploader
	if a.cfg.CheveretoBaseURL != "" {
		uploader = imagehost.NewChevereto(a.cfg.CheveretoBaseURL, a.cfg.CheveretoAPIKey, a.cfg.CheveretoAlbumID)
	}

	b := bot.New(bot.Deps{
		Log:         a.log,
		Store:       a.mem,
		Publisher:   a.relay,
		Strfry:      strfry.NewClient(a.cfg.StrfryExecPath),
		Rates:       rates.NewClient(),
		Geo:         geo.NewClient(),
		Weather:     weather.NewClient(uploader),
		Search:      searcher,
		KV:          kv,
		AdminPubkey: a.cfg.AdminPubkeyHex,
		Shutdown:    stop,
	})

	sched, err := scheduler.New(a.log, b, a.mem, a.repo, a.cfg.HealthcheckURL)
	if err != nil {
		return err
	}
	sched.Start()
	defer sched.Stop()

	go func() {
		if err := a.httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.log.Error("http server error", zap.Error(err))
		}
	}()

	mentions, err := a.relay.SubscribeMentions(ctx)
	if err != nil {
		return err
	}
	firehose, err := a.relay.SubscribeFirehose(ctx)
	if err != nil {
		return err
	}

	self := a.relay.PublicKey()
	eose := mentions.EndOfStoredEvents
	mentionEvents := mentions.Events
	firehoseEvents := firehose.Events

	for {
		select {
		case <-ctx.Done():
			a.log.Info("shutdown signal received")
			a.persist()

			shCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			err := a.httpSrv.Shutdown(shCtx)
			cancel()
			if err != nil {
				a.log.Warn("http server shutdown error", zap.Error(err))
			}
			return nil

		case <-eose:
			eose = nil
			b.PostReady(ctx, startedAt)

		case ev, ok := <-mentionEvents:
			if !ok {
				mentionEvents = nil
				continue
			}
			if ev == nil || ev.PubKey == self {
				continue
			}
			b.Dispatch(ctx, ev)

		case ev, ok := <-firehoseEvents:
			if !ok {
				firehoseEvents = nil
				continue
			}
			if ev == nil || ev.PubKey == self {
				continue
			}
			b.HandleFirehose(ctx, ev)
		}
	}
}

// persist writes a final memory snapshot before the process exits.
func (a *App) persist() {
	snap, err := a.mem.Snapshot()
	if err != nil {
		a.log.Error("final snapshot failed", zap.Error(err))
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := a.repo.SaveAll(ctx, snap); err != nil {
		a.log.Error("final save failed", zap.Error(err))
		return
	}
	a.log.Info("memory saved", zap.Int("records", len(snap)))
}
