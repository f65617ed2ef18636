// Package engines defines the interface the orchestrator uses to drive a
// speech-synthesis backend, plus the request and result shapes shared by
// every backend implementation.
package engines

import (
	"context"

	"github.com/voxgate/voxd/synth/params"
)

// Request carries everything one synthesis call needs. The orchestrator
// builds it after validation and reference resolution.
type Request struct {
	// Text is the input to synthesize. Never empty.
	Text string

	// PromptPath is the resolved speaker reference audio path.
	PromptPath string

	// EmotionPath is the resolved emotion reference audio path, or empty.
	EmotionPath string

	// EmotionWeight blends the emotion reference in, 0.0 to 1.0.
	EmotionWeight float64

	// EmotionVector is an optional 8-element direct emotion control.
	EmotionVector []float64

	// EmotionText is an optional textual emotion description.
	EmotionText string

	// RandomEmotion enables stochastic emotion sampling.
	RandomEmotion bool

	// Params is the canonical generation parameter bundle.
	Params params.Bundle

	// PromptFeatures is a previously extracted reference artifact for
	// PromptPath, if the cache held one. Engines that preprocess
	// reference audio may use it to skip extraction.
	PromptFeatures any

	// OutputPath is where file-producing engines should write the
	// artifact. Empty lets the engine choose.
	OutputPath string
}

// Audio is the result of one synthesis call. Engines produce a file, raw
// data, or both.
type Audio struct {
	// Path is the on-disk artifact, if the engine wrote one.
	Path string

	// Data is the in-memory artifact, if the engine produced one.
	Data []byte

	// SampleRate of the produced audio in Hz.
	SampleRate int

	// PromptFeatures is the reference artifact the engine extracted for
	// the request's prompt, if any. The orchestrator caches it for reuse.
	PromptFeatures any
}

// Engine is a blocking synthesis backend. Synthesize is an opaque call:
// it consumes CPU or accelerator time for its full duration and returns
// only when the artifact exists or generation failed. Implementations
// must be safe for concurrent calls up to the admission bounds.
type Engine interface {
	// Synthesize converts text to audio. The context bounds the call;
	// implementations should abandon work when it ends.
	Synthesize(ctx context.Context, req Request) (*Audio, error)

	// SampleRate returns the engine's output sample rate in Hz.
	SampleRate() int

	// Shutdown releases any resources held by the engine.
	Shutdown() error
}
