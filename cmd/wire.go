package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/bnema/voicehook/internal/adapters/lock/flock"
	pacingfile "github.com/bnema/voicehook/internal/adapters/pacing/file"
	statusadapter "github.com/bnema/voicehook/internal/adapters/render/status"
	tomlrepo "github.com/bnema/voicehook/internal/adapters/repo/toml"
	chainsink "github.com/bnema/voicehook/internal/adapters/speech/chain"
	noopsink "github.com/bnema/voicehook/internal/adapters/speech/noop"
	systemsink "github.com/bnema/voicehook/internal/adapters/speech/system"
	"github.com/bnema/voicehook/internal/application"
	"github.com/bnema/voicehook/internal/config"
	"github.com/bnema/voicehook/internal/domain"
	"github.com/bnema/voicehook/internal/logging"
	"github.com/bnema/voicehook/internal/ports"
	"github.com/spf13/viper"
)

const configFileEnv = "VOICEHOOK_CONFIG"

type app struct {
	settings       config.Settings
	log            *slog.Logger
	logCloser      io.Closer
	stateRepo      *tomlrepo.StateRepository
	clock          ports.Clock
	statusRenderer func(domain.SharedState, statusadapter.RenderOptions) (string, error)
	now            func() time.Time

	// wireErr is set when the configured wiring failed and the app runs on
	// built-in defaults.
	wireErr error
}

// services is the object graph for one invocation. Hook processes are short
// lived, so it is built per command with the invocation logger.
type services struct {
	state *application.StateService
	dedup *application.Deduplicator
	coord *application.Coordinator
	hooks *application.HookService
}

func wireApp() (*app, error) {
	v := viper.New()
	if path := os.Getenv(configFileEnv); path != "" {
		v.SetConfigFile(path)
	}

	settings, err := config.Load(v)
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}

	logger, closer, err := logging.New(settings.Log)
	if err != nil {
		return nil, fmt.Errorf("wire logger: %w", err)
	}

	repoConfig := viper.New()
	repoConfig.Set(tomlrepo.StatePathKey, settings.State.Path)
	stateRepo, err := tomlrepo.NewStateRepository(repoConfig)
	if err != nil {
		_ = closer.Close()
		return nil, fmt.Errorf("wire state repository: %w", err)
	}

	return &app{
		settings:       settings,
		log:            logger,
		logCloser:      closer,
		stateRepo:      stateRepo,
		clock:          ports.SystemClock{},
		statusRenderer: statusadapter.Render,
		now:            time.Now,
	}, nil
}

// degradedApp wires built-in defaults with a stderr logger so hook events keep
// flowing when the configured settings or log file are unusable.
func degradedApp(cause error) *app {
	settings := config.Defaults()

	logger, closer, err := logging.New(logging.Config{Level: settings.Log.Level, Format: settings.Log.Format})
	if err != nil {
		logger, closer = logging.Nop(), nil
	}

	repoConfig := viper.New()
	repoConfig.Set(tomlrepo.StatePathKey, settings.State.Path)
	stateRepo, err := tomlrepo.NewStateRepository(repoConfig)
	if err != nil {
		logger.Warn("wire default state repository", "error", err)
		stateRepo = nil
	}

	return &app{
		settings:       settings,
		log:            logger,
		logCloser:      closer,
		stateRepo:      stateRepo,
		clock:          ports.SystemClock{},
		statusRenderer: statusadapter.Render,
		now:            time.Now,
		wireErr:        cause,
	}
}

// ready reports the wiring failure, if any. Only hook handling tolerates it.
func (a *app) ready() error {
	return a.wireErr
}

func (a *app) close() {
	if a.logCloser != nil {
		_ = a.logCloser.Close()
	}
}

func (a *app) services(log *slog.Logger, voice string) services {
	dedup := application.NewDeduplicator(a.settings.Dedup.Window, a.clock)
	coord := application.NewCoordinator(
		dedup,
		flock.NewLock(a.settings.Lock.Path, a.settings.Lock.Timeout, a.settings.Lock.PollInterval),
		pacingfile.NewStore(a.settings.Pacing.Path),
		a.speechSink(log, voice),
		a.clock,
		a.settings.Pacing.MinSpacing,
		log,
	)
	state := application.NewStateService(a.stateRepo, a.clock, log)

	return services{
		state: state,
		dedup: dedup,
		coord: coord,
		hooks: application.NewHookService(state, coord, dedup, a.settings.HookConfig(), a.clock, log),
	}
}

// speechSink falls back to a silent sink when the platform has no speech engine,
// so pacing and dedup keep working on headless machines.
func (a *app) speechSink(log *slog.Logger, voice string) ports.SpeechSink {
	silent := noopsink.NewSink(log)
	if a.settings.Speech.Provider == config.ProviderNone {
		return silent
	}

	if voice == "" {
		voice = a.settings.Speech.Voice
	}
	primary := systemsink.NewSink(systemsink.Options{Voice: voice, Rate: a.settings.Speech.Rate})

	sink, err := chainsink.NewSink(primary, silent)
	if err != nil {
		log.Warn("wire speech chain", "error", err)
		return primary
	}

	return sink
}
