package cli

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/anonsum/anonsum/internal/workflow"
)

var deanonymizeOutput string

var deanonymizeCmd = &cobra.Command{
	Use:   "deanonymize <input>",
	Short: "Restore canonical names for placeholder tokens in a document",
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

		engine, err := newEngine(cfg, log)
		if err != nil {
			return err
		}

		input, err := readInput(args[0])
		if err != nil {
			return err
		}

		restored := engine.Unmask(input)

		output := deanonymizeOutput
		if output == "" {
			output = "accomplishment_unmasked.md"
		}
		if err := workflow.WriteFileAtomic(output, []byte(restored)); err != nil {
			return err
		}

		log.Info("unmasked document written", zap.String("output", output))
		return nil
	},
}

func init() {
	deanonymizeCmd.Flags().StringVarP(&deanonymizeOutput, "output", "o", "", "output file (default: accomplishment_unmasked.md)")
	rootCmd.AddCommand(deanonymizeCmd)
}
