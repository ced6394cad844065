// Package scheduler runs the bot's periodic jobs on cron expressions.
package scheduler

import (
	"context"
	"net/http"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/ikuradon/823chan/internal/bot"
	"github.com/ikuradon/823chan/internal/memory"
	"github.com/ikuradon/823chan/internal/store"
)

type Scheduler struct {
	log  *zap.Logger
	cron *cron.Cron

	bot   *bot.Bot
	store *memory.Store
	repo  store.Repo

	healthcheckURL string
	http           *http.Client
}

func New(log *zap.Logger, b *bot.Bot, mem *memory.Store, repo store.Repo, healthcheckURL string) (*Scheduler, error) {
	s := &Scheduler{
		log: log,
		cron: cron.New(
			cron.WithParser(cron.NewParser(
				cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow,
			)),
			cron.WithChain(cron.Recover(cron.PrintfLogger(zap.NewStdLog(log)))),
		),
		bot:            b,
		store:          mem,
		repo:           repo,
		healthcheckURL: healthcheckURL,
		http:           &http.Client{Timeout: 10 * time.Second},
	}

	jobs := []struct {
		spec string
		fn   func()
	}{
		{"0 0 * * *", s.dailyRankings},
		{"*/5 * * * *", s.persist},
		{"*/5 * * * *", s.refreshRates},
		{"*/30 * * * * *", s.sweepReminders},
	}
	if healthcheckURL != "" {
		jobs = append(jobs, struct {
			spec string
			fn   func()
		}{"* * * * *", s.healthcheck})
	}

	for _, job := range jobs {
		if _, err := s.cron.AddFunc(job.spec, job.fn); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (s *Scheduler) Start() { s.cron.Start() }

// Stop halts scheduling and waits for running jobs to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}

func (s *Scheduler) dailyRankings() {
	s.log.Info("generating daily rankings")
	s.bot.PostDailyRankings(context.Background())
}

func (s *Scheduler) persist() {
	snap, err := s.store.Snapshot()
	if err != nil {
		s.log.Error("memory snapshot failed", zap.Error(err))
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := s.repo.SaveAll(ctx, snap); err != nil {
		s.log.Error("memory save failed", zap.Error(err))
		return
	}
	s.log.Debug("memory saved", zap.Int("records", len(snap)))
}

func (s *Scheduler) refreshRates() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	s.bot.RefreshRates(ctx)
}

func (s *Scheduler) sweepReminders() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	s.bot.SweepReminders(ctx)
}

func (s *Scheduler) healthcheck() {
	resp, err := s.http.Get(s.healthcheckURL)
	if err != nil {
		s.log.Warn("healthcheck ping failed", zap.Error(err))
		return
	}
	resp.Body.Close()
}
