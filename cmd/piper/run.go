package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Feed integers from stdin through the demo pipeline and print results",
	RunE: func(cmd *cobra.Command, args []string) error {
		inst, err := buildDemoPipeline(loadedConfig)
		if err != nil {
			return fmt.Errorf("build pipeline: %w", err)
		}

		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			line := scanner.Text()
			n, err := strconv.Atoi(line)
			if err != nil {
				fmt.Fprintf(os.Stderr, "skipping non-integer line %q: %v\n", line, err)
				continue
			}
			inst.Enqueue(n)
		}
		if err := scanner.Err(); err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}

		if err := inst.Flush(); err != nil {
			return fmt.Errorf("flush pipeline: %w", err)
		}

		for inst.Ready() > 0 {
			out, err := inst.Dequeue(inst.Ready())
			if err != nil {
				return fmt.Errorf("dequeue results: %w", err)
			}
			for _, item := range out {
				fmt.Println(item)
			}
		}
		return nil
	},
}
