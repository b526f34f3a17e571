package cli

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/anonsum/anonsum/internal/registry"
	"github.com/anonsum/anonsum/internal/workflow"
)

var anonymizeOutput string

var anonymizeCmd = &cobra.Command{
	Use:   "anonymize <input>",
	Short: "Mask configured names in a document",
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

		result := engine.Mask(input)

		output := anonymizeOutput
		if output == "" {
			output = "accomplishment_masked.md"
		}
		if err := workflow.WriteFileAtomic(output, []byte(result.Text)); err != nil {
			return err
		}

		byCategory := result.CountByCategory()
		log.Info("masked document written",
			zap.String("output", output),
			zap.Int("substitutions", result.Count),
			zap.Int("organizations", byCategory[registry.CategoryOrganization]),
			zap.Int("projects", byCategory[registry.CategoryProject]),
			zap.Int("people", byCategory[registry.CategoryPerson]),
		)
		return nil
	},
}

func init() {
	anonymizeCmd.Flags().StringVarP(&anonymizeOutput, "output", "o", "", "output file (default: accomplishment_masked.md)")
	rootCmd.AddCommand(anonymizeCmd)
}
