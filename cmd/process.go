package cmd

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var processCmd = &cobra.Command{
	Use:   "process <file>",
	Short: "Extract and score a single resume, printing the record as JSON",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		process(cmd, args[0])
	},
}

func init() {
	rootCmd.AddCommand(processCmd)
	addScoringFlags(processCmd)
}

func process(cmd *cobra.Command, path string) {
	ctx := context.Background()
	logger, config := setup()

	opts, err := scoringOptions(cmd, config)
	if err != nil {
		logger.Fatal("loading scoring inputs", zap.Error(err))
	}

	p, closeServices := newPipeline(ctx, config, logger)
	defer closeServices()

	result, err := p.Process(ctx, path, opts)
	if err != nil {
		logger.Fatal("processing document", zap.String("path", path), zap.Error(err))
	}

	pretty, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		logger.Fatal("encoding result", zap.Error(err))
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(pretty))
}
