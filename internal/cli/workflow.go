package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/anonsum/anonsum/internal/summarizer"
	"github.com/anonsum/anonsum/internal/workflow"
)

var (
	workflowOutput   string
	workflowModel    string
	workflowAPIKey   string
	workflowKeepTemp bool
	workflowWatch    bool
)

var workflowCmd = &cobra.Command{
	Use:   "workflow <input>",
	Short: "Run the full pipeline: mask, summarize, unmask",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		log, err := newLogger(cfg)
		if err != nil {
			return err
		}
		defer log.Sync()

		if workflowModel != "" {
			cfg.Summarizer.Model = workflowModel
		}
		if workflowAPIKey != "" {
			cfg.Summarizer.APIKey = workflowAPIKey
		}

		engine, err := newEngine(cfg, log)
		if err != nil {
			return err
		}

		client, err := summarizer.New(cfg.Summarizer, cfg.Repo, log.WithComponent("summarizer"))
		if err != nil {
			return err
		}

		pipeline := workflow.New(engine, client, workflow.Options{
			KeepTemp: workflowKeepTemp || cfg.Workflow.KeepTemp,
			TempDir:  cfg.Workflow.TempDir,
		}, log.WithComponent("workflow"))

		inputPath := args[0]
		runOnce := func() error {
			input, err := readInput(inputPath)
			if err != nil {
				return err
			}

			result, err := pipeline.Run(cmd.Context(), input)
			if err != nil {
				return err
			}

			output := workflowOutput
			if output == "" {
				output = fmt.Sprintf("accomplishment_summary_final_%s.md", time.Now().Format("20060102_150405"))
			}
			if err := workflow.WriteFileAtomic(output, []byte(result.Final)); err != nil {
				return err
			}

			log.Info("workflow complete",
				zap.String("output", output),
				zap.Int("substitutions", result.Substitutions),
				zap.Bool("placeholders_restored", result.PlaceholdersRestored),
			)
			return nil
		}

		if workflowWatch {
			return workflow.Watch(cmd.Context(), inputPath, log.WithComponent("watch"), runOnce)
		}
		return runOnce()
	},
}

func init() {
	workflowCmd.Flags().StringVarP(&workflowOutput, "output", "o", "", "final output file (default: accomplishment_summary_final_<timestamp>.md)")
	workflowCmd.Flags().StringVarP(&workflowModel, "model", "m", "", "OpenRouter model override")
	workflowCmd.Flags().StringVarP(&workflowAPIKey, "api-key", "k", "", "OpenRouter API key override")
	workflowCmd.Flags().BoolVar(&workflowKeepTemp, "keep-temp", false, "keep the masked intermediate and raw summary files")
	workflowCmd.Flags().BoolVar(&workflowWatch, "watch", false, "rerun the pipeline whenever the input file changes")
	rootCmd.AddCommand(workflowCmd)
}
