package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	dg "github.com/bwmarrin/discordgo"
	"github.com/charmbracelet/log"

	"github.com/benjamonnguyen/worklog-go"
	"github.com/benjamonnguyen/worklog-go/discordgo"
	"github.com/benjamonnguyen/worklog-go/timer"
)

const (
	RepoURL = "https://github.com/benjamonnguyen/worklog-go"
	Version = "0.0.0"
)

var isProd bool

func main() {
	flag.BoolVar(&isProd, "prod", false, "")
	flag.Parse()

	topCtx, topCtxC := context.WithCancel(context.Background())

	// config
	cfg, err := worklog.LoadConfig(isProd)
	if err != nil {
		log.Fatal(err)
	}
	if err := cfg.RequireBot(); err != nil {
		log.Fatal(err)
	}

	// logger
	logger := log.NewWithOptions(os.Stderr, log.Options{
		Level:           cfg.LogLevel,
		ReportTimestamp: true,
		ReportCaller:    cfg.LogLevel == log.DebugLevel,
		Prefix:          cfg.BotName,
	})
	log.SetDefault(logger)

	// set up discord cl
	cl, err := dg.New("Bot " + cfg.BotToken)
	if err != nil {
		log.Fatal(err)
	}
	cl.ShouldRetryOnRateLimit = false
	cl.Client = &http.Client{Timeout: (20 * time.Second)}
	cl.UserAgent = fmt.Sprintf("%s (%s, v%s)", cfg.BotName, RepoURL, Version)

	dm := NewDiscordMessenger(cl)

	// timer manager
	timerManager := NewTimerManager(topCtx, func(req startTimerRequest) timer.NotificationChannel {
		return timer.Multi(
			discordgo.NewChannelNotifier(cl, req.channelID, req.starterID),
			discordgo.NewDMNotifier(cl, req.starterID, logger),
		)
	}, logger)
	timerManager.OnTimerUpdate(func(ctx context.Context, curr TimerSession) {
		// update timer bar
		_, err := dm.EditChannelMessage(curr.ChannelID, curr.MessageID, TimerMessageComponents(curr)...)
		if err != nil {
			log.Error("failed to edit discord channel message",
				"channelID", curr.ChannelID, "messageID", curr.MessageID, "err", err)
		}
	})

	// discord event hooks
	cl.AddHandler(func(s *dg.Session, m *dg.InteractionCreate) {
		_ = StartTimer(topCtx, timerManager, dm, cfg.Timer, m) ||
			ControlTimer(timerManager, dm, m) ||
			StopTimer(timerManager, dm, m)
	})

	// open connection
	if err := cl.Open(); err != nil {
		log.Fatal("Error opening connection", "err", err)
	}
	log.Info(cfg.BotName + " running. Press CTRL-C to exit.")

	// graceful shutdown
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc
	log.Info("terminating " + cfg.BotName)
	topCtxC()
	shutdownTimeout, shutdownTimeoutC := context.WithTimeout(context.Background(), time.Minute)
	go func() {
		// to ensure proper shutdown ordering...
		if err := timerManager.Shutdown(); err != nil {
			log.Error(err)
		}
		if err := cl.Close(); err != nil {
			log.Error(err)
		}
		shutdownTimeoutC()
	}()
	<-shutdownTimeout.Done()
	if shutdownTimeout.Err() != context.Canceled {
		log.Error("failed to shut down gracefully", "err", shutdownTimeout.Err())
	}
}
