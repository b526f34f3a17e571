// Package workflow sequences the full pipeline: mask the input, send the
// masked text to the summarizer, unmask the returned summary. Temporary
// artifacts (the masked intermediate and the raw summary) are scoped to one
// run and removed on every exit path unless the caller opts to keep them.
package workflow

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/anonsum/anonsum/internal/logger"
	"github.com/anonsum/anonsum/internal/mask"
)

// Summarizer is the external text-generation boundary.
type Summarizer interface {
	Summarize(ctx context.Context, text string) (string, error)
}

// Options controls artifact handling for one pipeline.
type Options struct {
	// KeepTemp retains the masked intermediate and raw summary files so a
	// failed or suspicious run can be inspected or retried manually.
	KeepTemp bool
	// TempDir overrides the artifact directory (default: os.TempDir()).
	TempDir string
}

// RunResult carries the outcome of one pipeline run.
type RunResult struct {
	// Final is the unmasked summary, the end product of the run.
	Final string
	// Masked is the anonymized input that was sent to the summarizer.
	Masked string
	// Summary is the raw summarizer output before unmasking.
	Summary string
	// Substitutions is the number of replacements applied while masking.
	Substitutions int
	// PlaceholdersRestored is false when the summary contained no
	// recognizable placeholder tokens, which usually means the summarizer
	// paraphrased them away and real names may have leaked through context.
	PlaceholdersRestored bool
	// MaskedPath and SummaryPath are set when artifacts were retained.
	MaskedPath  string
	SummaryPath string
}

// Pipeline runs mask -> summarize -> unmask with one engine and summarizer.
type Pipeline struct {
	engine *mask.Engine
	summ   Summarizer
	opts   Options
	log    *logger.Logger
}

// New creates a pipeline.
func New(engine *mask.Engine, summ Summarizer, opts Options, log *logger.Logger) *Pipeline {
	return &Pipeline{engine: engine, summ: summ, opts: opts, log: log}
}

// Run executes the pipeline over the input document. A document with zero
// substitutions still proceeds; a summarizer failure aborts the run without
// attempting to unmask.
func (p *Pipeline) Run(ctx context.Context, input string) (*RunResult, error) {
	runID := uuid.NewString()[:8]
	log := p.log.With(zap.String("run_id", runID))

	masked := p.engine.Mask(input)
	if masked.Count == 0 {
		log.Warn("no configured names found in input, sending document as-is")
	} else {
		log.Info("input masked", zap.Int("substitutions", masked.Count))
	}

	dir := p.opts.TempDir
	if dir == "" {
		dir = os.TempDir()
	}

	var artifacts []string
	defer func() {
		if p.opts.KeepTemp {
			return
		}
		for _, path := range artifacts {
			if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
				log.Warn("could not remove temporary artifact",
					zap.String("path", path), zap.Error(err))
			}
		}
	}()

	// The masked intermediate is written before the external call so it
	// survives a summarizer failure when KeepTemp is set.
	maskedPath := filepath.Join(dir, fmt.Sprintf("anonsum-%s-masked.md", runID))
	if err := WriteFileAtomic(maskedPath, []byte(masked.Text)); err != nil {
		return nil, fmt.Errorf("writing masked intermediate: %w", err)
	}
	artifacts = append(artifacts, maskedPath)

	summary, err := p.summ.Summarize(ctx, masked.Text)
	if err != nil {
		return nil, fmt.Errorf("summarization failed: %w", err)
	}

	summaryPath := filepath.Join(dir, fmt.Sprintf("anonsum-%s-summary.md", runID))
	if err := WriteFileAtomic(summaryPath, []byte(summary)); err != nil {
		return nil, fmt.Errorf("writing raw summary artifact: %w", err)
	}
	artifacts = append(artifacts, summaryPath)

	result := &RunResult{
		Masked:               masked.Text,
		Summary:              summary,
		Substitutions:        masked.Count,
		PlaceholdersRestored: mask.ContainsPlaceholders(summary),
	}

	if result.PlaceholdersRestored {
		result.Final = p.engine.Unmask(summary)
	} else {
		// Nothing to restore. Worth surfacing: a paraphrased summary can
		// still identify names through context.
		if masked.Count > 0 {
			log.Warn("summary contains no placeholder tokens; the summarizer may have paraphrased them away")
		}
		result.Final = summary
	}

	if p.opts.KeepTemp {
		result.MaskedPath = maskedPath
		result.SummaryPath = summaryPath
		log.Info("temporary artifacts retained",
			zap.String("masked", maskedPath),
			zap.String("summary", summaryPath),
		)
	}

	return result, nil
}
