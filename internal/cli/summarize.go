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
	summarizeOutput  string
	summarizeModel   string
	summarizeAPIKey  string
	summarizeSave    bool
	summarizePrint   bool
)

var summarizeCmd = &cobra.Command{
	Use:   "summarize <input>",
	Short: "Summarize a document with the configured OpenRouter model",
	Long: `Summarize sends the document to OpenRouter as-is. To avoid leaking
names, anonymize first or use the workflow command, which masks, summarizes,
and unmasks in one step.`,
	Args: cobra.ExactArgs(1),
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

		if summarizeModel != "" {
			cfg.Summarizer.Model = summarizeModel
		}
		if summarizeAPIKey != "" {
			cfg.Summarizer.APIKey = summarizeAPIKey
		}

		client, err := summarizer.New(cfg.Summarizer, cfg.Repo, log.WithComponent("summarizer"))
		if err != nil {
			return err
		}

		input, err := readInput(args[0])
		if err != nil {
			return err
		}

		if summarizeSave {
			prompt := summarizer.BuildPrompt(input, cfg.Repo)
			if err := workflow.WriteFileAtomic("generated_prompt.txt", []byte(prompt)); err != nil {
				return err
			}
			log.Info("prompt written", zap.String("output", "generated_prompt.txt"))
		}

		summary, err := client.Summarize(cmd.Context(), input)
		if err != nil {
			return err
		}

		output := summarizeOutput
		if output == "" {
			output = fmt.Sprintf("accomplishment_summary_%s.md", time.Now().Format("20060102_150405"))
		}
		if err := workflow.WriteFileAtomic(output, []byte(summary)); err != nil {
			return err
		}
		log.Info("summary written", zap.String("output", output))

		if summarizePrint {
			fmt.Println(summary)
		}
		return nil
	},
}

func init() {
	summarizeCmd.Flags().StringVarP(&summarizeOutput, "output", "o", "", "output file (default: accomplishment_summary_<timestamp>.md)")
	summarizeCmd.Flags().StringVarP(&summarizeModel, "model", "m", "", "OpenRouter model override")
	summarizeCmd.Flags().StringVarP(&summarizeAPIKey, "api-key", "k", "", "OpenRouter API key override")
	summarizeCmd.Flags().BoolVar(&summarizeSave, "save-prompt", false, "save the generated prompt to generated_prompt.txt")
	summarizeCmd.Flags().BoolVar(&summarizePrint, "print-summary", false, "print the summary to stdout")
	rootCmd.AddCommand(summarizeCmd)
}
