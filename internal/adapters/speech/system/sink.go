package system

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/bnema/voicehook/internal/domain"
	"github.com/bnema/voicehook/internal/ports"
)

const minSpeakableLength = 3

var linuxEngines = []string{"espeak-ng", "espeak", "spd-say"}

var extensionWords = strings.NewReplacer(
	".py", " python file",
	".json", " JSON file",
	".js", " javascript file",
	".md", " markdown file",
)

type runFunc func(ctx context.Context, name string, args ...string) (stderr string, err error)

type Options struct {
	Voice string
	Rate  int
}

// Sink speaks through the text-to-speech command the operating system ships.
type Sink struct {
	opts     Options
	goos     string
	lookPath func(string) (string, error)
	run      runFunc
}

var _ ports.SpeechSink = (*Sink)(nil)

func NewSink(opts Options) *Sink {
	return &Sink{
		opts:     opts,
		goos:     runtime.GOOS,
		lookPath: exec.LookPath,
		run:      runCommand,
	}
}

// Speak blocks until the command finished talking. Text shorter than three
// characters after formatting is skipped silently.
func (s *Sink) Speak(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	text = FormatForSpeech(text)
	if utf8.RuneCountInString(text) < minSpeakableLength {
		return nil
	}

	name, args, err := s.command(text)
	if err != nil {
		return err
	}

	stderr, err := s.run(ctx, name, args...)
	if err != nil {
		if stderr == "" {
			return fmt.Errorf("%s: %w", name, err)
		}
		return fmt.Errorf("%s: %w: %s", name, err, stderr)
	}

	return nil
}

func (s *Sink) command(text string) (string, []string, error) {
	switch s.goos {
	case "darwin":
		args := []string{}
		if s.opts.Voice != "" {
			args = append(args, "-v", s.opts.Voice)
		}
		if s.opts.Rate > 0 {
			args = append(args, "-r", strconv.Itoa(s.opts.Rate))
		}
		return s.resolve("say", append(args, text))
	case "windows":
		script := "Add-Type -AssemblyName System.Speech; " +
			"$speak = New-Object System.Speech.Synthesis.SpeechSynthesizer; " +
			"$speak.Speak('" + strings.ReplaceAll(text, "'", "''") + "')"
		return s.resolve("powershell", []string{"-NoProfile", "-Command", script})
	case "linux", "freebsd", "openbsd", "netbsd":
		for _, engine := range linuxEngines {
			if _, err := s.lookPath(engine); err == nil {
				return engine, s.linuxArgs(engine, text), nil
			}
		}
		return "", nil, fmt.Errorf("no speech engine found (tried %s): %w", strings.Join(linuxEngines, ", "), domain.ErrSpeechUnavailable)
	default:
		return "", nil, fmt.Errorf("platform %s: %w", s.goos, domain.ErrSpeechUnavailable)
	}
}

func (s *Sink) resolve(name string, args []string) (string, []string, error) {
	if _, err := s.lookPath(name); err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return "", nil, fmt.Errorf("%s not found: %w", name, domain.ErrSpeechUnavailable)
		}
		return "", nil, fmt.Errorf("locate %s: %w", name, err)
	}

	return name, args, nil
}

func (s *Sink) linuxArgs(engine, text string) []string {
	args := []string{}
	switch engine {
	case "spd-say":
		args = append(args, "--wait")
		if s.opts.Voice != "" {
			args = append(args, "-y", s.opts.Voice)
		}
	default:
		if s.opts.Voice != "" {
			args = append(args, "-v", s.opts.Voice)
		}
		if s.opts.Rate > 0 {
			args = append(args, "-s", strconv.Itoa(s.opts.Rate))
		}
	}

	return append(args, text)
}

// FormatForSpeech makes identifiers and file names easier to listen to.
func FormatForSpeech(text string) string {
	text = strings.NewReplacer("_", " ", "-", " ").Replace(text)
	text = extensionWords.Replace(text)

	return strings.TrimSpace(text)
}

func runCommand(ctx context.Context, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err := cmd.Run()
	return strings.TrimSpace(stderr.String()), err
}
