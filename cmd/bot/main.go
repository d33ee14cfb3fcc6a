package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	txStdLib "github.com/Thiht/transactor/stdlib"
	dg "github.com/bwmarrin/discordgo"
	"github.com/charmbracelet/log"

	"github.com/benjamonnguyen/puttempo-go"
	"github.com/benjamonnguyen/puttempo-go/discordgo"
	"github.com/benjamonnguyen/puttempo-go/feedback"
	"github.com/benjamonnguyen/puttempo-go/metrics"
	"github.com/benjamonnguyen/puttempo-go/practice"
	"github.com/benjamonnguyen/puttempo-go/presets"
	"github.com/benjamonnguyen/puttempo-go/sqlite"
	"github.com/benjamonnguyen/puttempo-go/tickstream"
)

const (
	RepoURL = "https://github.com/benjamonnguyen/puttempo-go"
	Version = "0.1.0"
)

func main() {
	isProd := flag.Bool("prod", false, "load .env instead of .env.dev")
	flag.Parse()

	// logger
	log.SetReportCaller(true)
	topCtx, topCtxC := context.WithCancel(context.Background())

	// config
	puttempo.LoadEnv(*isProd)
	cfg, err := puttempo.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}
	panicif(cfg.RequireBotToken())
	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Fatal("invalid log level", "level", cfg.LogLevel, "err", err)
	}
	log.SetLevel(level)

	presetList, err := presets.Load(cfg.PresetsPath)
	if err != nil {
		log.Fatal("failed to load presets", "err", err)
	}

	// db
	log.Info("opening db", "url", cfg.DatabaseURL)
	db, err := sqlite.Open(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("failed database open", "err", err)
	}
	defer db.Close() //nolint
	if err := sqlite.RunMigrations(db); err != nil {
		log.Fatal("failed migration", "err", err)
	}

	tx, dbGetter := txStdLib.NewTransactor(
		db,
		txStdLib.NestedTransactionsSavepoints,
	)
	sessionRepo := sqlite.NewSessionRepo(dbGetter, log.Default())
	practiceSvc := practice.NewService(sessionRepo, tx, practice.Bounds{
		MinSeconds: cfg.MinSessionSeconds,
		MaxSeconds: cfg.MaxSessionSeconds,
	}, log.Default())

	// set up discord cl
	cl, err := dg.New("Bot " + cfg.BotToken)
	if err != nil {
		log.Fatal(err)
	}
	cl.ShouldRetryOnRateLimit = false
	cl.Client = &http.Client{Timeout: (20 * time.Second)}
	cl.UserAgent = fmt.Sprintf("%s (%s, v%s)", cfg.BotName, RepoURL, Version)
	cl.ShouldReconnectVoiceOnSessionError = true
	cl.Identify.Intents = dg.IntentsGuilds | dg.IntentsGuildVoiceStates

	dm := NewDiscordMessenger(cl)
	clips := feedback.NewClipCache(opusClipLoader(cfg.OpusSoundDir))
	if err := clips.Preload(puttempo.Sounds...); err != nil {
		log.Warn("some sounds failed to preload", "dir", cfg.OpusSoundDir, "err", err)
	}
	discordAdapter := discordgo.NewDiscordAdapter(cl, clips, log.Default())

	// tick stream and metrics
	hub := tickstream.NewHub(log.Default())
	var srv *http.Server
	if cfg.ListenAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/ws", hub)
		mux.Handle("/metrics", metrics.Handler())
		srv = &http.Server{Addr: cfg.ListenAddr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
		go func() {
			log.Info("serving ticks and metrics", "addr", cfg.ListenAddr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error("http server failed", "err", err)
			}
		}()
	}

	// session manager
	joinVoice := func(guildID, channelID string) (voiceOutput, error) {
		vp, err := discordAdapter.JoinVoice(guildID, channelID)
		if err != nil {
			return nil, err
		}
		return vp, nil
	}
	sessionManager := NewSessionManager(topCtx, joinVoice, nil, hub.OnTick, log.Default())
	// saves run off the interaction path so /stop can answer within the deadline
	var saves sync.WaitGroup
	sessionManager.OnSessionEnd(func(ctx context.Context, s Session, record puttempo.SessionRecord) {
		saves.Go(func() {
			ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			_, saveErr := practiceSvc.Save(ctx, record)
			if saveErr != nil && !errors.Is(saveErr, practice.ErrTooShort) {
				log.Error("failed to save session", "voiceCID", s.VoiceChannelID(), "err", saveErr)
			}
			if _, err := dm.SendChannelMessage(s.TextChannelID(), "", SessionEndedMessage(record, saveErr, cfg.MinSessionSeconds)); err != nil {
				log.Error("failed to send session end message", "channelID", s.TextChannelID(), "err", err)
			}
		})
	})

	// discord event hooks
	cl.AddHandler(func(s *dg.Session, m *dg.InteractionCreate) {
		_ = StartTempo(topCtx, sessionManager, presetList, dm, s, m) ||
			StopTempo(topCtx, sessionManager, dm, m) ||
			ShowStats(topCtx, practiceSvc, dm, m)
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
		if err := sessionManager.Shutdown(); err != nil {
			log.Error(err)
		}
		saves.Wait()
		hub.Close()
		if srv != nil {
			if err := srv.Shutdown(shutdownTimeout); err != nil {
				log.Error(err)
			}
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

func panicif(err error) {
	if err != nil {
		panic(err)
	}
}
