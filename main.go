// Package main provides the voxd command line interface: one-shot speech
// synthesis through the admission-controlled orchestrator.
package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/voxgate/voxd/config"
	"github.com/voxgate/voxd/resolver"
	"github.com/voxgate/voxd/synth"
	"github.com/voxgate/voxd/synth/admission"
	"github.com/voxgate/voxd/synth/engines"
	"github.com/voxgate/voxd/synth/engines/cmdline"
	"github.com/voxgate/voxd/synth/engines/mock"
	"github.com/voxgate/voxd/synth/params"
)

var (
	// Version as provided by goreleaser.
	Version = ""

	configFile    string
	referenceID   string
	emotionID     string
	emotionWeight float64
	emotionVector string
	emotionText   string
	randomEmotion bool
	sampleMethod  string
	sampling      int
	beamSize      int
	outputPath    string

	rootCmd = &cobra.Command{
		Use:          "voxd [TEXT]",
		Short:        "Admission-controlled speech synthesis",
		Long:         "voxd synthesizes speech through a tiered admission controller in front of a blocking synthesis backend.",
		SilenceUsage: true,
		Args:         cobra.ExactArgs(1),
		RunE:         runSynthesis,
	}
)

func loadConfig() (config.Config, error) {
	cfg, err := config.FromEnv()
	if err != nil {
		return cfg, err
	}
	if configFile != "" {
		cfg, err = config.LoadFile(configFile, cfg)
		if err != nil {
			return cfg, err
		}
	}
	return cfg, nil
}

func buildEngine(cfg config.Config) (engines.Engine, error) {
	switch cfg.Engine {
	case "mock":
		return mock.New(mock.Options{
			Delay:          cfg.Mock.Delay,
			SampleRate:     cfg.SampleRate,
			WordsPerMinute: cfg.Mock.WordsPerMinute,
		}), nil
	case "cmdline":
		return cmdline.New(cmdline.Config{
			Binary:     cfg.Cmdline.Binary,
			Args:       cfg.Cmdline.Args,
			OutputDir:  cfg.Cmdline.OutputDir,
			Timeout:    cfg.Cmdline.Timeout,
			SampleRate: cfg.Cmdline.SampleRate,
		})
	default:
		return nil, fmt.Errorf("unknown engine %q", cfg.Engine)
	}
}

func buildOrchestrator(cfg config.Config) (*synth.Orchestrator, error) {
	engine, err := buildEngine(cfg)
	if err != nil {
		return nil, err
	}
	refs := resolver.New(cfg.Speakers, cfg.Emotions)
	return synth.New(engine, refs, synth.Options{
		Capacities: admission.Capacities{
			Short:  cfg.Admission.MaxShort,
			Medium: cfg.Admission.MaxMedium,
			Long:   cfg.Admission.MaxLong,
		},
		CacheCapacity: cfg.Cache.MaxEntries,
	}), nil
}

func runSynthesis(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	setLogLevel(cfg.LogLevel)

	orch, err := buildOrchestrator(cfg)
	if err != nil {
		return err
	}
	defer orch.Shutdown() //nolint:errcheck

	req := synth.Request{
		Text:               args[0],
		ReferenceID:        referenceID,
		EmotionReferenceID: emotionID,
		EmotionText:        emotionText,
		RandomEmotion:      randomEmotion,
		OutputPath:         outputPath,
		Legacy: params.Legacy{
			SampleMethod: sampleMethod,
		},
	}
	if cmd.Flags().Changed("emotion-weight") {
		req.EmotionWeight = &emotionWeight
	}
	if cmd.Flags().Changed("sampling") {
		req.Legacy.Sampling = &sampling
	}
	if cmd.Flags().Changed("beam-size") {
		req.Legacy.BeamSize = &beamSize
	}
	if emotionVector != "" {
		vec, err := parseVector(emotionVector)
		if err != nil {
			return err
		}
		req.EmotionVector = vec
	}

	result, err := orch.Generate(cmd.Context(), req)
	if err != nil {
		return err
	}

	artifact := result.ArtifactPath
	if artifact == "" && len(result.ArtifactData) > 0 {
		if outputPath == "" {
			outputPath = "voxd-output.wav"
		}
		if err := os.WriteFile(outputPath, result.ArtifactData, 0o644); err != nil {
			return fmt.Errorf("write artifact: %w", err)
		}
		artifact = outputPath
	}

	size := uint64(len(result.ArtifactData))
	if size == 0 && artifact != "" {
		if info, err := os.Stat(artifact); err == nil {
			size = uint64(info.Size())
		}
	}

	fmt.Printf("wrote %s (%s, %d Hz, %s tier) in %.2fs\n",
		artifact, humanize.Bytes(size), result.SampleRate,
		result.Tier, result.Elapsed.Seconds())
	return nil
}

func parseVector(s string) ([]float64, error) {
	parts := strings.Split(s, ",")
	vec := make([]float64, 0, len(parts))
	for _, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid emotion vector element %q", p)
		}
		vec = append(vec, f)
	}
	return vec, nil
}

func setLogLevel(level string) {
	parsed, err := log.ParseLevel(level)
	if err != nil {
		log.Warn("unknown log level, using info", "level", level)
		parsed = log.InfoLevel
	}
	log.SetLevel(parsed)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		var se *synth.Error
		if errors.As(err, &se) {
			fmt.Fprintf(os.Stderr, "error %s: %s\n", se.Code, se.Message)
			os.Exit(1)
		}
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (YAML)")
	rootCmd.Flags().StringVar(&referenceID, "ref", "", "speaker reference id")
	rootCmd.Flags().StringVar(&emotionID, "emotion-ref", "", "emotion reference id")
	rootCmd.Flags().Float64Var(&emotionWeight, "emotion-weight", 1.0, "emotion blend weight in [0,1]")
	rootCmd.Flags().StringVar(&emotionVector, "emotion-vector", "", "8 comma-separated emotion values")
	rootCmd.Flags().StringVar(&emotionText, "emotion-text", "", "textual emotion description")
	rootCmd.Flags().BoolVar(&randomEmotion, "use-random", false, "stochastic emotion sampling")
	rootCmd.Flags().StringVar(&sampleMethod, "sample-method", "ras", "legacy sampling method (ras or topk)")
	rootCmd.Flags().IntVar(&sampling, "sampling", 0, "legacy top-k sampling magnitude")
	rootCmd.Flags().IntVar(&beamSize, "beam-size", 0, "legacy beam count")
	rootCmd.Flags().StringVarP(&outputPath, "output", "o", "", "artifact output path")

	if Version != "" {
		rootCmd.Version = Version
	}

	rootCmd.AddCommand(refsCmd)
	rootCmd.AddCommand(configCmd)
}
