package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/voxgate/voxd/resolver"
)

var refsCmd = &cobra.Command{
	Use:   "refs",
	Short: "List configured speaker and emotion references",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		table := resolver.New(cfg.Speakers, cfg.Emotions)

		fmt.Println("speakers:")
		for _, id := range table.Speakers() {
			path, _ := table.ResolveSpeaker(id)
			fmt.Printf("  %s: %s\n", id, path)
		}

		fmt.Println("emotions:")
		for _, id := range table.Emotions() {
			path, _ := table.ResolveEmotion(id)
			fmt.Printf("  %s: %s\n", id, path)
		}

		return nil
	},
}
