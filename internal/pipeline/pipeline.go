// Package pipeline sequences one documentation run: crawl, budget check, and
// per-document instruction building, dispatch, and writing.
package pipeline

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/runesmith/runesmith/internal/config"
	"github.com/runesmith/runesmith/internal/crawler"
	"github.com/runesmith/runesmith/internal/instruction"
	"github.com/runesmith/runesmith/internal/output"
	"github.com/runesmith/runesmith/internal/provider"
	"github.com/runesmith/runesmith/internal/tokenizer"
	"github.com/runesmith/runesmith/internal/utils"
)

// corpusPromptFormat frames the shared corpus for one document type.
const corpusPromptFormat = "Generate or update %s for the following codebase:\n%s"

// Result records the outcome for one requested documentation type.
type Result struct {
	DocType    string
	OutputPath string
	Content    string
	Err        error
}

// Report aggregates a run's outcomes in request order. Partial success is a
// valid terminal outcome.
type Report struct {
	TokenCount    int
	ContextWindow int
	Degraded      bool
	Results       []Result
}

// SucceededCount returns the number of documents generated and written.
func (report *Report) SucceededCount() int {
	succeeded := 0
	for _, result := range report.Results {
		if result.Err == nil {
			succeeded++
		}
	}
	return succeeded
}

// FailedCount returns the number of documents that failed.
func (report *Report) FailedCount() int {
	return len(report.Results) - report.SucceededCount()
}

// Pipeline executes documentation runs against a generation backend.
type Pipeline struct {
	generator provider.Generator
	logger    *zap.Logger
}

// New constructs a Pipeline.
func New(generator provider.Generator, logger *zap.Logger) *Pipeline {
	return &Pipeline{generator: generator, logger: utils.LoggerOrNop(logger)}
}

// Run executes one documentation run. The corpus is collected once and shared
// read-only across all document requests; requests are processed strictly in
// order, one provider call in flight at a time. A document type's failure is
// recorded and never blocks the remaining types.
func (pipeline *Pipeline) Run(ctx context.Context, run config.Run) (*Report, error) {
	corpus, collectError := crawler.Collect(run.CodePath, crawler.NewBlacklist(run.Blacklist), pipeline.logger)
	if collectError != nil {
		return nil, fmt.Errorf("collecting code from %s: %w", run.CodePath, collectError)
	}
	corpusText := corpus.String()
	pipeline.logger.Info("collected code",
		zap.String("path", run.CodePath), zap.Int("files", corpus.FileCount()))

	budgetReport, budgetError := tokenizer.CheckBudget(run.Provider, run.Model, run.CustomInstructions, corpusText)
	if budgetError != nil {
		return nil, budgetError
	}
	if budgetReport.Degraded {
		pipeline.logger.Warn("exact tokenizer unavailable; token count is approximate",
			zap.String("model", run.Model), zap.String("encoding", budgetReport.Encoding))
	}
	pipeline.logger.Info("token budget",
		zap.Int("tokens", budgetReport.TokenCount), zap.Int("context_window", budgetReport.ContextWindow))
	if budgetReport.Exceeded() {
		if run.StrictTokens {
			return nil, fmt.Errorf("input is %d tokens, exceeding the %d-token context window for %s",
				budgetReport.TokenCount, budgetReport.ContextWindow, run.Model)
		}
		pipeline.logger.Warn("token budget exceeded; proceeding, the provider may reject the request",
			zap.Int("tokens", budgetReport.TokenCount), zap.Int("context_window", budgetReport.ContextWindow))
	}

	runReport := &Report{
		TokenCount:    budgetReport.TokenCount,
		ContextWindow: budgetReport.ContextWindow,
		Degraded:      budgetReport.Degraded,
	}
	for _, documentType := range run.DocTypes {
		if contextError := ctx.Err(); contextError != nil {
			return runReport, contextError
		}
		runReport.Results = append(runReport.Results, pipeline.processDocument(ctx, run, documentType, corpusText))
	}
	return runReport, nil
}

// processDocument builds the instruction, dispatches the generation call, and
// writes the returned document for a single type.
func (pipeline *Pipeline) processDocument(ctx context.Context, run config.Run, documentType string, corpusText string) Result {
	result := Result{DocType: documentType}

	instructionText, buildError := instruction.Build(documentType, run.CustomInstructions, run.OutputDir, run.CodePath)
	if buildError != nil {
		result.Err = buildError
		pipeline.logger.Warn("instruction build failed",
			zap.String("doc_type", documentType), zap.Error(buildError))
		return result
	}

	generatedText, generateError := pipeline.generator.Generate(ctx, provider.Request{
		Provider:    run.Provider,
		Model:       run.Model,
		Instruction: instructionText,
		Corpus:      fmt.Sprintf(corpusPromptFormat, documentType, corpusText),
		Temperature: run.Temperature,
	})
	if generateError != nil {
		result.Err = generateError
		pipeline.logger.Warn("generation failed",
			zap.String("doc_type", documentType), zap.Error(generateError))
		return result
	}

	writtenPath, writeError := output.WriteDocument(run.OutputDir, documentType, generatedText)
	if writeError != nil {
		result.Err = writeError
		pipeline.logger.Warn("write failed",
			zap.String("doc_type", documentType), zap.Error(writeError))
		return result
	}

	result.OutputPath = writtenPath
	result.Content = generatedText
	pipeline.logger.Info("document written",
		zap.String("doc_type", documentType), zap.String("path", writtenPath))
	return result
}
