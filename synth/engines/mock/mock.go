// Package mock provides a fake synthesis engine for tests and local runs
// without a real model.
package mock

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/voxgate/voxd/synth/engines"
)

// DefaultSampleRate matches the backend's standard output rate.
const DefaultSampleRate = 24000

// Options configures the mock engine.
type Options struct {
	// Delay simulates generation time per call.
	Delay time.Duration

	// SampleRate of the fake audio. Zero means DefaultSampleRate.
	SampleRate int

	// WordsPerMinute sizes the fake audio from the input text.
	WordsPerMinute int
}

// Engine implements engines.Engine with generated silence.
type Engine struct {
	opts Options

	mu       sync.Mutex
	failWith error
	calls    int
	lastReq  engines.Request
}

// New creates a mock engine.
func New(opts Options) *Engine {
	if opts.SampleRate <= 0 {
		opts.SampleRate = DefaultSampleRate
	}
	if opts.WordsPerMinute <= 0 {
		opts.WordsPerMinute = 150
	}
	return &Engine{opts: opts}
}

// Synthesize produces silent PCM sized by an estimated speaking duration.
func (e *Engine) Synthesize(ctx context.Context, req engines.Request) (*engines.Audio, error) {
	e.mu.Lock()
	e.calls++
	e.lastReq = req
	failWith := e.failWith
	e.mu.Unlock()

	if failWith != nil {
		return nil, failWith
	}

	if e.opts.Delay > 0 {
		select {
		case <-time.After(e.opts.Delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	duration := e.estimateDuration(req.Text)
	samples := int(duration.Seconds() * float64(e.opts.SampleRate))
	if samples < 1 {
		samples = 1
	}

	return &engines.Audio{
		Data:           make([]byte, samples*2), // 16-bit mono
		SampleRate:     e.opts.SampleRate,
		PromptFeatures: fmt.Sprintf("features:%s", req.PromptPath),
	}, nil
}

// SampleRate returns the configured output rate.
func (e *Engine) SampleRate() int {
	return e.opts.SampleRate
}

// Shutdown is a no-op.
func (e *Engine) Shutdown() error {
	return nil
}

// SetFail makes every subsequent Synthesize call return err. Pass nil to
// restore normal operation.
func (e *Engine) SetFail(err error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.failWith = err
}

// Calls returns how many times Synthesize has been invoked.
func (e *Engine) Calls() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.calls
}

// LastRequest returns the most recent request seen by the engine.
func (e *Engine) LastRequest() engines.Request {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.lastReq
}

func (e *Engine) estimateDuration(text string) time.Duration {
	words := len(strings.Fields(text))
	if words == 0 {
		words = 1
	}
	return time.Duration(float64(words) / float64(e.opts.WordsPerMinute) * float64(time.Minute))
}
