package synth

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"github.com/voxgate/voxd/synth/admission"
	"github.com/voxgate/voxd/synth/engines"
	"github.com/voxgate/voxd/synth/params"
	"github.com/voxgate/voxd/synth/refcache"
)

// Options configures an Orchestrator.
type Options struct {
	// Capacities are the per-tier admission bounds.
	Capacities admission.Capacities

	// CacheCapacity bounds the reference cache in entries.
	CacheCapacity int

	// Logger for job lifecycle events. Nil means the default logger.
	Logger *log.Logger
}

// DefaultOptions returns the standard bounds: 3/2/1 tier capacities and a
// 50-entry reference cache.
func DefaultOptions() Options {
	return Options{
		Capacities:    admission.DefaultCapacities(),
		CacheCapacity: refcache.DefaultCapacity,
	}
}

// Orchestrator is the top-level entry point for generation jobs. It
// validates requests, acquires tier capacity, runs the blocking backend
// call on its own goroutine, and guarantees capacity release on every
// exit path.
type Orchestrator struct {
	engine    engines.Engine
	resolver  Resolver
	admission *admission.Controller
	cache     *refcache.Cache
	logger    *log.Logger
}

// New wires an orchestrator from its collaborators.
func New(engine engines.Engine, resolver Resolver, opts Options) *Orchestrator {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Orchestrator{
		engine:    engine,
		resolver:  resolver,
		admission: admission.NewController(opts.Capacities),
		cache:     refcache.New(opts.CacheCapacity),
		logger:    logger,
	}
}

type backendOutcome struct {
	audio *engines.Audio
	err   error
}

// Generate runs one synthesis job. Validation failures are returned
// before any capacity is consumed; once a ticket is held it is released
// unconditionally, whether the backend succeeds, fails, or panics. The
// backend is invoked exactly once per call; retries belong to the caller.
func (o *Orchestrator) Generate(ctx context.Context, req Request) (*Result, error) {
	ereq, err := o.validate(req)
	if err != nil {
		return nil, err
	}

	tier := admission.Classify(utf8.RuneCountInString(req.Text))

	ticket, err := o.admission.Acquire(ctx, tier)
	if err != nil {
		return nil, wrapError(CodeInternal, err, "admission wait interrupted")
	}

	jobID := uuid.NewString()
	o.logger.Debug("job admitted",
		"job", jobID,
		"tier", tier.String(),
		"text_chars", utf8.RuneCountInString(req.Text))

	// Consult the cache for a previously extracted reference artifact.
	feat, cached := o.cache.Get(req.ReferenceID)
	if cached {
		ereq.PromptFeatures = feat
	}

	start := time.Now()
	outcome := make(chan backendOutcome, 1)

	// The blocking backend call runs on its own goroutine so a long
	// synthesis never stalls admission or release bookkeeping, and so a
	// cancelled caller can return while the slot stays held until the
	// backend actually finishes. Release is the final action on every
	// path, including a panicking backend.
	go func() {
		defer ticket.Release()
		defer func() {
			if r := recover(); r != nil {
				outcome <- backendOutcome{err: fmt.Errorf("backend panic: %v", r)}
			}
		}()
		audio, synthErr := o.engine.Synthesize(ctx, ereq)
		outcome <- backendOutcome{audio: audio, err: synthErr}
	}()

	select {
	case out := <-outcome:
		elapsed := time.Since(start)
		if out.err != nil {
			o.logger.Error("generation failed",
				"job", jobID,
				"tier", tier.String(),
				"elapsed", elapsed,
				"error", out.err)
			return nil, wrapError(CodeGenerationFailed, out.err, "backend synthesis failed")
		}

		if !cached && out.audio.PromptFeatures != nil {
			o.cache.Put(req.ReferenceID, out.audio.PromptFeatures)
		}

		sampleRate := out.audio.SampleRate
		if sampleRate <= 0 {
			sampleRate = o.engine.SampleRate()
		}

		o.logger.Info("generation complete",
			"job", jobID,
			"tier", tier.String(),
			"elapsed", elapsed,
			"size", humanize.Bytes(uint64(len(out.audio.Data))),
			"path", out.audio.Path)

		return &Result{
			JobID:        jobID,
			ArtifactPath: out.audio.Path,
			ArtifactData: out.audio.Data,
			Elapsed:      elapsed,
			SampleRate:   sampleRate,
			Tier:         tier,
		}, nil

	case <-ctx.Done():
		// The job is abandoned but the slot stays held until the backend
		// goroutine returns; it releases the ticket itself.
		o.logger.Warn("job abandoned by caller", "job", jobID, "tier", tier.String())
		return nil, wrapError(CodeInternal, ctx.Err(), "job cancelled while generating")
	}
}

// validate checks the request shape and resolves references. It runs
// entirely before admission so rejected requests never touch capacity.
func (o *Orchestrator) validate(req Request) (engines.Request, error) {
	if strings.TrimSpace(req.Text) == "" {
		return engines.Request{}, codedError(CodeEmptyInput, "input text is empty")
	}

	if req.EmotionVector != nil && len(req.EmotionVector) != EmotionVectorLen {
		return engines.Request{}, codedError(CodeInvalidParameter,
			"emotion vector must have %d elements, got %d", EmotionVectorLen, len(req.EmotionVector))
	}

	weight := 1.0
	if req.EmotionWeight != nil {
		weight = *req.EmotionWeight
		if weight < 0 || weight > 1 {
			return engines.Request{}, codedError(CodeInvalidParameter,
				"emotion weight must be in [0,1], got %g", weight)
		}
	}

	if req.ReferenceID == "" {
		return engines.Request{}, codedError(CodeUnknownReference, "no reference id supplied")
	}
	promptPath, ok := o.resolver.ResolveSpeaker(req.ReferenceID)
	if !ok {
		return engines.Request{}, codedError(CodeUnknownReference,
			"reference %q not found", req.ReferenceID)
	}

	emotionPath := ""
	if req.EmotionReferenceID != "" {
		emotionPath, ok = o.resolver.ResolveEmotion(req.EmotionReferenceID)
		if !ok {
			return engines.Request{}, codedError(CodeUnknownEmotionReference,
				"emotion reference %q not found", req.EmotionReferenceID)
		}
	}

	bundle := params.Translate(req.Legacy)
	if req.Bundle != nil {
		bundle = *req.Bundle
	}

	return engines.Request{
		Text:          req.Text,
		PromptPath:    promptPath,
		EmotionPath:   emotionPath,
		EmotionWeight: weight,
		EmotionVector: req.EmotionVector,
		EmotionText:   req.EmotionText,
		RandomEmotion: req.RandomEmotion,
		Params:        bundle,
		OutputPath:    req.OutputPath,
	}, nil
}

// Stats returns a point-in-time snapshot of admission counters and the
// reference cache size.
func (o *Orchestrator) Stats() Stats {
	a := o.admission.Stats()
	return Stats{
		InFlight:         a.InFlight,
		LifetimeTotal:    a.LifetimeTotal,
		CapacityShort:    a.CapacityShort,
		CapacityMedium:   a.CapacityMedium,
		CapacityLong:     a.CapacityLong,
		CachedReferences: o.cache.Len(),
	}
}

// ClearCache drops every cached reference artifact.
func (o *Orchestrator) ClearCache() {
	o.cache.Clear()
}

// Shutdown releases the backend's resources.
func (o *Orchestrator) Shutdown() error {
	return o.engine.Shutdown()
}
