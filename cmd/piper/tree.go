package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dataflowhq/piper/internal/visual"
)

var treeCmd = &cobra.Command{
	Use:   "tree",
	Short: "Print the demo pipeline's segment tree",
	RunE: func(cmd *cobra.Command, args []string) error {
		inst, err := buildDemoPipeline(loadedConfig)
		if err != nil {
			return fmt.Errorf("build pipeline: %w", err)
		}
		fmt.Println(visual.DebugTree(inst))
		return nil
	},
}
