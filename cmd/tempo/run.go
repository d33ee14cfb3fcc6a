package main

import (
	"bufio"
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/spf13/cobra"

	"github.com/benjamonnguyen/puttempo-go"
	"github.com/benjamonnguyen/puttempo-go/feedback"
	"github.com/benjamonnguyen/puttempo-go/metrics"
	"github.com/benjamonnguyen/puttempo-go/metronome"
	"github.com/benjamonnguyen/puttempo-go/practice"
	"github.com/benjamonnguyen/puttempo-go/presets"
	"github.com/benjamonnguyen/puttempo-go/tickstream"
)

type runFlags struct {
	preset   string
	bpm      float64
	back     float64
	forward  float64
	interval float64
	sound    string
	output   string
	model    string
	listen   string
}

func newRunCmd() *cobra.Command {
	var f runFlags

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Start the metronome. Enter pauses and resumes, Ctrl-C ends the session",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := puttempo.LoadConfig()
			if err != nil {
				return err
			}
			presetList, err := presets.Load(cfg.PresetsPath)
			if err != nil {
				return err
			}
			tempoCfg, ref, err := f.tempoConfig(cmd, presetList)
			if err != nil {
				return err
			}
			if f.listen == "" {
				f.listen = cfg.ListenAddr
			}
			return runMetronome(cmd.Context(), cfg, tempoCfg, ref, f.listen)
		},
	}

	f.bind(cmd)
	return cmd
}

func (f *runFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.preset, "preset", "p", presets.DefaultID, "preset id")
	cmd.Flags().Float64Var(&f.bpm, "bpm", puttempo.DefaultBPM, "strokes per minute")
	cmd.Flags().Float64Var(&f.back, "back", puttempo.DefaultBackRatio, "backswing ratio")
	cmd.Flags().Float64Var(&f.forward, "forward", puttempo.DefaultForwardRatio, "forward stroke ratio")
	cmd.Flags().Float64Var(&f.interval, "interval", puttempo.DefaultInterval, "rest between strokes in seconds")
	cmd.Flags().StringVar(&f.sound, "sound", string(puttempo.SoundClick), "sound id")
	cmd.Flags().StringVar(&f.output, "output", string(puttempo.OutputSound), "sound, vibration or both")
	cmd.Flags().StringVar(&f.model, "model", string(puttempo.FullModel), "full or simple")
	cmd.Flags().StringVar(&f.listen, "listen", "", "address serving /ws ticks and /metrics")
}

// tempoConfig starts from the chosen preset and applies the flags that were
// set explicitly. Changing tempo or ratio drops the preset reference.
func (f runFlags) tempoConfig(cmd *cobra.Command, presetList []presets.Preset) (puttempo.TempoConfig, puttempo.PresetRef, error) {
	preset, ok := presets.Find(presetList, f.preset)
	if !ok {
		return puttempo.TempoConfig{}, puttempo.PresetRef{}, errors.New("unknown preset " + f.preset)
	}
	cfg := preset.Apply(puttempo.DefaultTempoConfig())
	ref := preset.Ref()

	flags := cmd.Flags()
	if flags.Changed("bpm") {
		cfg.BPM = f.bpm
		ref = puttempo.PresetRef{}
	}
	if flags.Changed("back") {
		cfg.BackRatio = f.back
		ref = puttempo.PresetRef{}
	}
	if flags.Changed("forward") {
		cfg.ForwardRatio = f.forward
		ref = puttempo.PresetRef{}
	}
	cfg.IntervalSeconds = f.interval
	cfg.Sound = puttempo.SoundID(f.sound)
	cfg.Output = puttempo.OutputMode(f.output)
	cfg.Model = puttempo.PhaseModel(f.model)

	if err := cfg.Validate(); err != nil {
		return puttempo.TempoConfig{}, puttempo.PresetRef{}, err
	}
	return cfg, ref, nil
}

func runMetronome(ctx context.Context, cfg puttempo.Config, tempoCfg puttempo.TempoConfig, ref puttempo.PresetRef, listen string) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	svc, closeDB, err := openPractice(cfg)
	if err != nil {
		return err
	}
	defer closeDB()

	// feedback
	speaker := feedback.NewSpeaker(audio.NewContext(feedback.SampleRate), cfg.SoundDir)
	defer speaker.Close() //nolint
	if tempoCfg.Output.PlaysSound() {
		if err := speaker.Preload(tempoCfg.Sound); err != nil {
			log.Warn("failed to preload sound", "sound", tempoCfg.Sound, "err", err)
		}
	}
	sound := feedback.NewSoundEmitter(ctx, speaker, log.Default())
	haptics := feedback.NewHapticEmitter(feedback.LogActuator{L: log.Default()}, log.Default())

	// tick stream and metrics
	hub := tickstream.NewHub(log.Default())
	defer hub.Close()
	if listen != "" {
		srv := serve(listen, hub)
		defer srv.Shutdown(context.Background()) //nolint
	}

	engine := metronome.New(tempoCfg, metronome.Options{
		Sound:   sound,
		Haptics: haptics,
		OnTick:  hub.OnTick,
		Logger:  log.Default(),
	})
	tracker := metronome.NewTracker(engine, ref, func(record puttempo.SessionRecord) {
		saveCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()
		saved, err := svc.Save(saveCtx, record)
		switch {
		case errors.Is(err, practice.ErrTooShort):
			log.Info("session too short to save", "duration", record.DurationSeconds)
		case err != nil:
			log.Error("failed to save session", "err", err)
		default:
			log.Info("session saved", "id", saved.ID, "duration", saved.DurationSeconds)
		}
	})

	log.Info("metronome running", "bpm", tempoCfg.BPM, "ratio", ratio(tempoCfg), "preset", ref.Name)
	tracker.StartSession()
	go toggleOnEnter(ctx, tracker)

	<-ctx.Done()
	tracker.StopSession()
	sound.Wait()
	haptics.Wait()
	return nil
}

// toggleOnEnter pauses and resumes the session on each line read from stdin.
// A pause ends the current session record.
func toggleOnEnter(ctx context.Context, tracker *metronome.Tracker) {
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		if ctx.Err() != nil {
			return
		}
		if _, stopped := tracker.ToggleSession(); stopped {
			log.Info("paused")
		} else {
			log.Info("resumed")
		}
	}
}

func serve(addr string, hub *tickstream.Hub) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/ws", hub)
	mux.Handle("/metrics", metrics.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		log.Info("serving ticks and metrics", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http server failed", "err", err)
		}
	}()
	return srv
}
