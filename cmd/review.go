package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/resume-ats/internal/pipeline"
)

const PromptExit = "exit"

var reviewCmd = &cobra.Command{
	Use:   "review [report.json]",
	Short: "Browse a batch report in the terminal",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		review(cmd, args)
	},
}

func init() {
	rootCmd.AddCommand(reviewCmd)
}

func review(cmd *cobra.Command, args []string) {
	logger, config := setup()

	path := config.Batch.OutputJSON
	if len(args) == 1 {
		path = args[0]
	}

	f, err := os.Open(path)
	if err != nil {
		logger.Fatal("opening report", zap.Error(err))
	}
	batch, err := pipeline.ReadJSON(f)
	f.Close()
	if err != nil {
		logger.Fatal("reading report", zap.String("path", path), zap.Error(err))
	}

	logger.Info("loaded report",
		zap.String("run_id", batch.RunID),
		zap.Time("generated_at", batch.GeneratedAt),
		zap.Int("count", len(batch.Results)),
	)

	if err := browse(cmd.OutOrStdout(), batch); err != nil && !errors.Is(err, promptui.ErrInterrupt) {
		logger.Fatal("exiting", zap.Error(err))
	}
}

func browse(out io.Writer, batch *pipeline.Batch) error {
	items := resultLabels(batch.Results)
	for {
		selectPrompt := promptui.Select{
			Label: "Choose a resume and press ENTER",
			Items: append(items, PromptExit),
			Size:  10,
		}

		idx, selected, err := selectPrompt.Run()
		if err != nil {
			return err
		}
		if selected == PromptExit {
			return nil
		}

		pretty, err := json.MarshalIndent(batch.Results[idx], "", "  ")
		if err != nil {
			return fmt.Errorf("encode result: %w", err)
		}
		fmt.Fprintln(out, string(pretty))
	}
}

func resultLabels(results []*pipeline.Result) []string {
	labels := make([]string, 0, len(results))
	for _, r := range results {
		name := "unknown"
		if r.Name != nil {
			name = *r.Name
		}
		score := "n/a"
		if r.ATSScore != nil {
			score = fmt.Sprintf("%.1f", *r.ATSScore)
		}
		labels = append(labels, fmt.Sprintf("%s / %s / ATS %s / %d matched", r.FileName, name, score, len(r.MatchedSkills)))
	}
	return labels
}
