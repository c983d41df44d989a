package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/resume-ats/internal/pipeline"
)

var batchCmd = &cobra.Command{
	Use:   "batch [input-dir]",
	Short: "Process every resume in a directory and write JSON and CSV reports",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		batch(cmd, args)
	},
}

func init() {
	rootCmd.AddCommand(batchCmd)
	addScoringFlags(batchCmd)

	batchCmd.Flags().String("output-json", "", "json report path (overrides batch.output-json)")
	batchCmd.Flags().String("output-csv", "", "csv report path (overrides batch.output-csv)")
	batchCmd.Flags().IntP("concurrency", "c", 0, "documents processed at once (overrides batch.concurrency)")
}

func batch(cmd *cobra.Command, args []string) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger, config := setup()

	opts, err := scoringOptions(cmd, config)
	if err != nil {
		logger.Fatal("loading scoring inputs", zap.Error(err))
	}

	inputDir := config.Batch.InputDir
	if len(args) == 1 {
		inputDir = args[0]
	}
	jsonPath := config.Batch.OutputJSON
	if cmd.Flags().Changed("output-json") {
		jsonPath, _ = cmd.Flags().GetString("output-json")
	}
	csvPath := config.Batch.OutputCSV
	if cmd.Flags().Changed("output-csv") {
		csvPath, _ = cmd.Flags().GetString("output-csv")
	}
	concurrency := config.Batch.Concurrency
	if cmd.Flags().Changed("concurrency") {
		concurrency, _ = cmd.Flags().GetInt("concurrency")
	}

	p, closeServices := newPipeline(ctx, config, logger)
	defer closeServices()

	result, err := p.RunBatch(ctx, pipeline.BatchOptions{
		Options:     opts,
		InputDir:    inputDir,
		Concurrency: concurrency,
	})
	if err != nil {
		logger.Fatal("batch failed", zap.Error(err))
	}

	if len(result.Results) == 0 {
		logger.Info("exiting", zap.String("reason", "no documents processed"))
		return
	}

	if err := pipeline.WriteFiles(result, jsonPath, csvPath); err != nil {
		logger.Fatal("writing reports", zap.Error(err))
	}

	logger.Info("reports written",
		zap.String("json", jsonPath),
		zap.String("csv", csvPath),
		zap.Int("count", len(result.Results)),
	)
}
