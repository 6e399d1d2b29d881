package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bnema/voicehook/internal/application"
	"github.com/bnema/voicehook/internal/logging"
	"github.com/spf13/viper"
)

const (
	configName = "config"
	configType = "toml"
	configDir  = ".config/voicehook"
	envPrefix  = "VOICEHOOK"

	ProviderSystem = "system"
	ProviderNone   = "none"
)

type Settings struct {
	State    StateSettings    `mapstructure:"state"`
	Lock     LockSettings     `mapstructure:"lock"`
	Pacing   PacingSettings   `mapstructure:"pacing"`
	Dedup    DedupSettings    `mapstructure:"dedup"`
	Summary  SummarySettings  `mapstructure:"summary"`
	Announce AnnounceSettings `mapstructure:"announce"`
	Speech   SpeechSettings   `mapstructure:"speech"`
	Log      logging.Config   `mapstructure:"log"`
}

type StateSettings struct {
	Path string `mapstructure:"path"`
}

type LockSettings struct {
	Path         string        `mapstructure:"path"`
	Timeout      time.Duration `mapstructure:"timeout"`
	PollInterval time.Duration `mapstructure:"poll_interval"`
}

type PacingSettings struct {
	Path       string        `mapstructure:"path"`
	MinSpacing time.Duration `mapstructure:"min_spacing"`
}

type DedupSettings struct {
	Window  time.Duration `mapstructure:"window"`
	Persist bool          `mapstructure:"persist"`
}

type SummarySettings struct {
	MaxLength        int `mapstructure:"max_length"`
	MinLength        int `mapstructure:"min_length"`
	InitialMaxLength int `mapstructure:"initial_max_length"`
	InitialMinLength int `mapstructure:"initial_min_length"`
	UpdateMaxLength  int `mapstructure:"update_max_length"`
}

type AnnounceSettings struct {
	ToolInterval time.Duration `mapstructure:"tool_interval"`
	UserNickname string        `mapstructure:"user_nickname"`
}

type SpeechSettings struct {
	Provider string `mapstructure:"provider"`
	Voice    string `mapstructure:"voice"`
	Rate     int    `mapstructure:"rate"`
}

// Load resolves settings from defaults, the optional config file and
// VOICEHOOK_* environment variables, in increasing precedence. A config file
// set explicitly on v must exist; the default location may be absent.
func Load(v *viper.Viper) (Settings, error) {
	if v == nil {
		v = viper.New()
	}

	setDefaults(v)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if v.ConfigFileUsed() == "" {
		v.SetConfigName(configName)
		v.SetConfigType(configType)
		if homeDir, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(homeDir, configDir))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var configNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configNotFound) {
			return Settings{}, fmt.Errorf("read config file: %w", err)
		}
	}

	var settings Settings
	if err := v.Unmarshal(&settings); err != nil {
		return Settings{}, fmt.Errorf("decode settings: %w", err)
	}
	if err := settings.Validate(); err != nil {
		return Settings{}, err
	}

	return settings, nil
}

// Defaults returns the built-in settings without reading a config file or the
// environment.
func Defaults() Settings {
	v := viper.New()
	setDefaults(v)

	var settings Settings
	_ = v.Unmarshal(&settings)
	return settings
}

func setDefaults(v *viper.Viper) {
	tmp := os.TempDir()

	v.SetDefault("state.path", filepath.Join(tmp, "claude_voice_state.toml"))
	v.SetDefault("lock.path", filepath.Join(tmp, "claude_voice_speech.lock"))
	v.SetDefault("lock.timeout", 10*time.Second)
	v.SetDefault("lock.poll_interval", 100*time.Millisecond)
	v.SetDefault("pacing.path", filepath.Join(tmp, "claude_voice_last_speech.time"))
	v.SetDefault("pacing.min_spacing", application.DefaultMinSpacing)
	v.SetDefault("dedup.window", application.DefaultDedupWindow)
	v.SetDefault("dedup.persist", false)

	hook := application.DefaultHookConfig()
	v.SetDefault("summary.max_length", hook.SummaryMaxLength)
	v.SetDefault("summary.min_length", hook.SummaryMinLength)
	v.SetDefault("summary.initial_max_length", hook.InitialMaxLength)
	v.SetDefault("summary.initial_min_length", hook.InitialMinLength)
	v.SetDefault("summary.update_max_length", hook.UpdateMaxLength)
	v.SetDefault("announce.tool_interval", hook.ToolInterval)
	v.SetDefault("announce.user_nickname", "")

	v.SetDefault("speech.provider", ProviderSystem)
	v.SetDefault("speech.voice", "")
	v.SetDefault("speech.rate", 0)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.file", filepath.Join(tmp, "voicehook.log"))
}

func (s Settings) Validate() error {
	var errs []error

	if s.State.Path == "" {
		errs = append(errs, errors.New("state.path must not be empty"))
	}
	if s.Lock.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("lock.timeout must be positive, got %s", s.Lock.Timeout))
	}
	if s.Lock.PollInterval <= 0 {
		errs = append(errs, fmt.Errorf("lock.poll_interval must be positive, got %s", s.Lock.PollInterval))
	}
	if s.Pacing.MinSpacing < 0 {
		errs = append(errs, fmt.Errorf("pacing.min_spacing must not be negative, got %s", s.Pacing.MinSpacing))
	}
	if s.Dedup.Window <= 0 {
		errs = append(errs, fmt.Errorf("dedup.window must be positive, got %s", s.Dedup.Window))
	}
	if s.Announce.ToolInterval < 0 {
		errs = append(errs, fmt.Errorf("announce.tool_interval must not be negative, got %s", s.Announce.ToolInterval))
	}

	lengths := []struct {
		name     string
		max, min int
	}{
		{name: "summary.max_length", max: s.Summary.MaxLength, min: s.Summary.MinLength},
		{name: "summary.initial_max_length", max: s.Summary.InitialMaxLength, min: s.Summary.InitialMinLength},
		{name: "summary.update_max_length", max: s.Summary.UpdateMaxLength, min: s.Summary.MinLength},
	}
	for _, l := range lengths {
		if l.max <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive, got %d", l.name, l.max))
			continue
		}
		if l.min > l.max {
			errs = append(errs, fmt.Errorf("%s %d is below its minimum length %d", l.name, l.max, l.min))
		}
	}
	if s.Summary.MinLength < 0 || s.Summary.InitialMinLength < 0 {
		errs = append(errs, errors.New("summary minimum lengths must not be negative"))
	}

	switch s.Speech.Provider {
	case ProviderSystem, ProviderNone:
	default:
		errs = append(errs, fmt.Errorf("speech.provider must be %q or %q, got %q", ProviderSystem, ProviderNone, s.Speech.Provider))
	}
	if s.Speech.Rate < 0 {
		errs = append(errs, fmt.Errorf("speech.rate must not be negative, got %d", s.Speech.Rate))
	}

	return errors.Join(errs...)
}

func (s Settings) HookConfig() application.HookConfig {
	return application.HookConfig{
		SummaryMaxLength: s.Summary.MaxLength,
		SummaryMinLength: s.Summary.MinLength,
		InitialMaxLength: s.Summary.InitialMaxLength,
		InitialMinLength: s.Summary.InitialMinLength,
		UpdateMaxLength:  s.Summary.UpdateMaxLength,
		ToolInterval:     s.Announce.ToolInterval,
		PersistDedup:     s.Dedup.Persist,
		Nickname:         s.Announce.UserNickname,
	}
}
