// Package synth is the request-admission and orchestration layer in front
// of a blocking speech-synthesis backend. It classifies jobs by cost,
// bounds per-tier concurrency, bridges the blocking backend call off the
// caller's path, caches reusable reference artifacts, and translates
// legacy generation controls into the canonical vocabulary.
package synth

import (
	"time"

	"github.com/voxgate/voxd/synth/admission"
	"github.com/voxgate/voxd/synth/params"
)

// EmotionVectorLen is the required dimensionality of a direct emotion
// control vector.
const EmotionVectorLen = 8

// Resolver maps caller-supplied reference identifiers to concrete audio
// paths. It is an external collaborator; absence of an id is reported by
// the boolean, never by an error.
type Resolver interface {
	// ResolveSpeaker returns the speaker reference path for id.
	ResolveSpeaker(id string) (string, bool)

	// ResolveEmotion returns the emotion reference path for id. An id
	// missing from the emotion namespace may fall back to the speaker
	// namespace.
	ResolveEmotion(id string) (string, bool)
}

// Request describes one inbound generation job before validation.
type Request struct {
	// Text to synthesize.
	Text string

	// ReferenceID names the primary (speaker) reference.
	ReferenceID string

	// EmotionReferenceID optionally names a secondary emotion reference.
	EmotionReferenceID string

	// EmotionWeight blends the emotion reference in, 0.0 to 1.0.
	// Nil means the default of 1.0.
	EmotionWeight *float64

	// EmotionVector is an optional direct emotion control; it must have
	// exactly EmotionVectorLen elements when present.
	EmotionVector []float64

	// EmotionText is an optional textual emotion description.
	EmotionText string

	// RandomEmotion enables stochastic emotion sampling.
	RandomEmotion bool

	// Legacy carries GLM-style generation controls. Ignored when Bundle
	// is set.
	Legacy params.Legacy

	// Bundle optionally supplies the canonical controls directly.
	Bundle *params.Bundle

	// OutputPath is where file-producing engines should write the
	// artifact. Empty lets the engine choose.
	OutputPath string
}

// Result is the outcome of a successful generation.
type Result struct {
	// JobID identifies the admitted job in logs.
	JobID string

	// ArtifactPath is the on-disk artifact, when the engine wrote one.
	ArtifactPath string

	// ArtifactData is the in-memory artifact, when the engine produced
	// one directly.
	ArtifactData []byte

	// Elapsed is the wall-clock duration of the backend call.
	Elapsed time.Duration

	// SampleRate of the artifact in Hz.
	SampleRate int

	// Tier the job was admitted under.
	Tier admission.Tier
}

// Stats merges the admission counters with the reference cache size.
type Stats struct {
	InFlight         int    `json:"in_flight"`
	LifetimeTotal    uint64 `json:"lifetime_total"`
	CapacityShort    int    `json:"capacity_short"`
	CapacityMedium   int    `json:"capacity_medium"`
	CapacityLong     int    `json:"capacity_long"`
	CachedReferences int    `json:"cached_references"`
}
