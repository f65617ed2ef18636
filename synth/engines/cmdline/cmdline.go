// Package cmdline runs an external synthesis command as the backend. The
// command receives the input text on stdin and generation controls as
// flags, and must write a WAV file to the requested output path.
package cmdline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/voxgate/voxd/synth/engines"
)

// DefaultTimeout bounds a single synthesis subprocess.
const DefaultTimeout = 120 * time.Second

// Config holds the subprocess settings.
type Config struct {
	// Binary is the synthesis command. Required.
	Binary string

	// Args are fixed arguments placed before the generated flags,
	// e.g. a model directory.
	Args []string

	// OutputDir is where artifacts are written when the request does
	// not name a path. Empty means the system temp directory.
	OutputDir string

	// Timeout per synthesis call. Zero means DefaultTimeout.
	Timeout time.Duration

	// SampleRate the command produces. Zero means 24000.
	SampleRate int
}

// Engine shells out to the configured command for every synthesis call.
type Engine struct {
	cfg Config
}

// New validates the configuration and resolves the binary.
func New(cfg Config) (*Engine, error) {
	if cfg.Binary == "" {
		return nil, errors.New("cmdline engine: no binary configured")
	}
	if _, err := exec.LookPath(cfg.Binary); err != nil {
		return nil, fmt.Errorf("cmdline engine: binary not found: %w", err)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.SampleRate <= 0 {
		cfg.SampleRate = 24000
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = os.TempDir()
	}
	return &Engine{cfg: cfg}, nil
}

// Synthesize runs one subprocess and blocks until it exits or the context
// ends. Stderr is captured into the returned error on failure.
func (e *Engine) Synthesize(ctx context.Context, req engines.Request) (*engines.Audio, error) {
	outPath := req.OutputPath
	if outPath == "" {
		outPath = filepath.Join(e.cfg.OutputDir, fmt.Sprintf("synth_%d.wav", time.Now().UnixNano()))
	}

	args := append([]string{}, e.cfg.Args...)
	args = append(args, e.buildArgs(req, outPath)...)

	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.cfg.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, e.cfg.Binary, args...)

	// Stdin must be wired before the process starts so the command never
	// races our write.
	cmd.Stdin = strings.NewReader(req.Text)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	log.Debug("running synthesis command", "binary", e.cfg.Binary, "output", outPath)

	err := cmd.Run()
	if ctx.Err() == context.DeadlineExceeded {
		return nil, fmt.Errorf("synthesis timed out after %v", e.cfg.Timeout)
	}
	if err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("synthesis command failed: %w: %s", err, msg)
		}
		return nil, fmt.Errorf("synthesis command failed: %w", err)
	}

	info, err := os.Stat(outPath)
	if err != nil {
		return nil, fmt.Errorf("synthesis command produced no output: %w", err)
	}
	if info.Size() == 0 {
		return nil, errors.New("synthesis command produced an empty artifact")
	}

	return &engines.Audio{
		Path:       outPath,
		SampleRate: e.cfg.SampleRate,
	}, nil
}

// SampleRate returns the configured output rate.
func (e *Engine) SampleRate() int {
	return e.cfg.SampleRate
}

// Shutdown is a no-op; each call owns its own subprocess.
func (e *Engine) Shutdown() error {
	return nil
}

func (e *Engine) buildArgs(req engines.Request, outPath string) []string {
	p := req.Params

	args := []string{
		"--ref", req.PromptPath,
		"--output", outPath,
		"--temperature", formatFloat(p.Temperature),
		"--top-p", formatFloat(p.TopP),
		"--num-beams", strconv.Itoa(p.NumBeams),
		"--repetition-penalty", formatFloat(p.RepetitionPenalty),
		"--length-penalty", formatFloat(p.LengthPenalty),
		"--max-mel-tokens", strconv.Itoa(p.MaxMelTokens),
	}
	if p.DoSample {
		args = append(args, "--do-sample")
	}
	if p.TopK > 0 {
		args = append(args, "--top-k", strconv.Itoa(p.TopK))
	}

	if req.EmotionPath != "" {
		args = append(args, "--emo-ref", req.EmotionPath)
		args = append(args, "--emo-alpha", formatFloat(req.EmotionWeight))
	}
	if len(req.EmotionVector) > 0 {
		args = append(args, "--emo-vector", formatVector(req.EmotionVector))
	}
	if req.EmotionText != "" {
		args = append(args, "--emo-text", req.EmotionText)
	}
	if req.RandomEmotion {
		args = append(args, "--use-random")
	}

	for k, v := range p.Extra {
		args = append(args, "--"+k, v)
	}

	return args
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func formatVector(v []float64) string {
	parts := make([]string, len(v))
	for i, f := range v {
		parts[i] = formatFloat(f)
	}
	return strings.Join(parts, ",")
}
