package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/bagdasarian/standup-bot/internal/config"
	"github.com/bagdasarian/standup-bot/internal/handler"
	"github.com/bagdasarian/standup-bot/internal/handler/server"
	"github.com/bagdasarian/standup-bot/internal/kv"
	"github.com/bagdasarian/standup-bot/internal/logger"
	"github.com/bagdasarian/standup-bot/internal/repository/kvstore"
	"github.com/bagdasarian/standup-bot/internal/service"
	"github.com/bagdasarian/standup-bot/internal/slack"
)

func main() {
	cfg := config.Load()

	log := logger.New()
	defer log.Sync()

	var store kv.Store
	if cfg.Store.Backend == "memory" {
		log.Warn("using in-memory store, data will not survive a restart")
		store = kv.NewMemoryStore()
	} else {
		store = kv.NewCloudflareStore(kv.CloudflareConfig{
			BaseURL:     cfg.Store.BaseURL,
			APIToken:    cfg.Store.APIToken,
			AccountID:   cfg.Store.AccountID,
			NamespaceID: cfg.Store.NamespaceID,
			Timeout:     cfg.Store.Timeout,
		}, log)
	}

	teamRepo := kvstore.NewTeamRepository(store, log, cfg.Store.MaxRetries)
	statusRepo := kvstore.NewStatusRepository(store, log, cfg.Store.MaxRetries)

	teamService := service.NewTeamService(teamRepo)
	statusService := service.NewStatusService(statusRepo, teamRepo)

	h := handler.NewHandler(teamService, statusService)
	srv := server.NewServer(h, cfg.HTTPAddr, log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.Reminder.Enabled {
		var roster service.RosterSource
		if len(cfg.Reminder.Roster) > 0 {
			roster = service.StaticRoster(cfg.Reminder.Roster)
		} else {
			roster = service.NewTeamRoster(teamRepo)
		}

		notifier := slack.NewClient(cfg.Slack.APIURL, cfg.Slack.BotToken, log)
		reminder := service.NewReminderService(notifier, roster, log)
		go reminder.Run(ctx, cfg.Reminder.Interval)
	}

	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			log.Fatal("server failed to start", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("server forced to shutdown", zap.Error(err))
	}
}
