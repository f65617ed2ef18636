// Package params translates legacy GLM-style generation controls into the
// canonical parameter bundle consumed by the synthesis backend.
package params

import "strings"

// Canonical generation defaults applied when the legacy input does not
// supply a value.
const (
	// DefaultTemperature is the sampling temperature.
	DefaultTemperature = 0.8
	// DefaultTopP is the nucleus sampling threshold.
	DefaultTopP = 0.8
	// DefaultTopK is the top-k applied by the "topk" sampling method.
	DefaultTopK = 25
	// DefaultNumBeams is the beam count when the legacy input carries none.
	DefaultNumBeams = 1
	// DefaultRepetitionPenalty discourages token repetition.
	DefaultRepetitionPenalty = 10.0
	// DefaultLengthPenalty is neutral length weighting.
	DefaultLengthPenalty = 0.0
	// DefaultMaxMelTokens bounds the generated audio token count.
	DefaultMaxMelTokens = 1500
)

// Legacy sampling method names.
const (
	// MethodRAS enables stochastic sampling without a top-k override.
	MethodRAS = "ras"
	// MethodTopK enables stochastic sampling with top-k from the legacy
	// sampling magnitude.
	MethodTopK = "topk"
)

// Bundle is the canonical set of generation controls consumed by the
// backend. A Bundle is immutable once constructed and owned by the job
// that carries it.
type Bundle struct {
	DoSample          bool
	Temperature       float64
	TopP              float64
	TopK              int // 0 means no explicit top-k
	NumBeams          int
	RepetitionPenalty float64
	LengthPenalty     float64
	MaxMelTokens      int

	// Extra carries free-form extension fields passed through to the
	// backend untouched.
	Extra map[string]string
}

// Legacy holds generation controls in the GLM-style vocabulary. Pointer
// fields distinguish "not supplied" from an explicit zero.
type Legacy struct {
	SampleMethod      string // "ras" or "topk"; empty defaults to "ras"
	Sampling          *int   // top-k magnitude
	BeamSize          *int
	Temperature       *float64
	TopP              *float64
	RepetitionPenalty *float64
	LengthPenalty     *float64
	MaxMelTokens      *int

	Extra map[string]string
}

// Translate maps legacy controls onto a canonical Bundle. It is total and
// deterministic: every input produces a valid Bundle and equal inputs
// produce equal outputs.
func Translate(legacy Legacy) Bundle {
	b := Bundle{
		Temperature:       DefaultTemperature,
		TopP:              DefaultTopP,
		NumBeams:          DefaultNumBeams,
		RepetitionPenalty: DefaultRepetitionPenalty,
		LengthPenalty:     DefaultLengthPenalty,
		MaxMelTokens:      DefaultMaxMelTokens,
	}

	method := strings.ToLower(legacy.SampleMethod)
	if method == "" {
		method = MethodRAS
	}

	switch method {
	case MethodRAS:
		b.DoSample = true
	case MethodTopK:
		b.DoSample = true
		if legacy.Sampling != nil {
			b.TopK = *legacy.Sampling
		} else {
			b.TopK = DefaultTopK
		}
	}

	// An explicit sampling magnitude sets top-k for the non-topk methods
	// as well.
	if legacy.Sampling != nil && method != MethodTopK {
		b.TopK = *legacy.Sampling
	}

	if legacy.BeamSize != nil {
		b.NumBeams = *legacy.BeamSize
	}
	if legacy.Temperature != nil {
		b.Temperature = *legacy.Temperature
	}
	if legacy.TopP != nil {
		b.TopP = *legacy.TopP
	}
	if legacy.RepetitionPenalty != nil {
		b.RepetitionPenalty = *legacy.RepetitionPenalty
	}
	if legacy.LengthPenalty != nil {
		b.LengthPenalty = *legacy.LengthPenalty
	}
	if legacy.MaxMelTokens != nil {
		b.MaxMelTokens = *legacy.MaxMelTokens
	}
	if len(legacy.Extra) > 0 {
		b.Extra = make(map[string]string, len(legacy.Extra))
		for k, v := range legacy.Extra {
			b.Extra[k] = v
		}
	}

	return b
}

// Default returns the canonical bundle produced by translating an empty
// legacy input.
func Default() Bundle {
	return Translate(Legacy{})
}
