// Package pipeline sequences fetch, clean, extract, validate and write for a
// single page.
package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"unicode/utf8"

	"github.com/siherrmann/meetinggraph/core/schema"
	"github.com/siherrmann/meetinggraph/helper"
	"github.com/siherrmann/meetinggraph/model"
)

// Pipeline combines the collaborators of one ingestion run. Each step is
// usable on its own so callers can inspect or edit the record in between.
type Pipeline struct {
	Fetcher   FetchFunc
	Extractor ExtractFunc
	Writer    RecordWriter

	// MaxChars truncates text before extraction when positive.
	MaxChars int

	log *slog.Logger
}

// Result is the outcome of Run.
type Result struct {
	Text    string              `json:"clean_text"`
	Record  *model.Record       `json:"record"`
	Summary *model.WriteSummary `json:"summary"`
}

// NewPipeline creates a new ingestion pipeline
func NewPipeline(fetcher FetchFunc, extractor ExtractFunc, writer RecordWriter, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		Fetcher:   fetcher,
		Extractor: extractor,
		Writer:    writer,
		log:       logger,
	}
}

// Scrape returns the plain text of url.
func (p *Pipeline) Scrape(ctx context.Context, url string) (string, error) {
	if p.Fetcher == nil {
		return "", helper.NewError("scrape", errors.New("no fetcher configured"))
	}
	text, err := p.Fetcher(ctx, url)
	if err != nil {
		return "", helper.NewError("scrape", err)
	}
	p.log.Debug("Scraped page", slog.String("url", url), slog.Int("chars", utf8.RuneCountInString(text)))
	return text, nil
}

// Extract truncates text to maxChars (when positive), asks the extractor for
// a record and validates it. Failures are ErrExtraction or ErrSchema.
func (p *Pipeline) Extract(ctx context.Context, text string, maxChars int) (*model.Record, error) {
	if p.Extractor == nil {
		return nil, helper.NewError("extract", errors.New("no extractor configured"))
	}

	raw, err := p.Extractor(ctx, Truncate(text, maxChars))
	if err != nil {
		return nil, helper.NewError("extract", err)
	}

	record, err := schema.Decode(raw)
	if err != nil {
		return nil, helper.NewError("decode", err)
	}

	p.log.Debug("Extracted record", slog.String("project", record.Project.Name), slog.Int("meetings", len(record.Meetings)))
	return record, nil
}

// Write persists record through the configured writer.
func (p *Pipeline) Write(ctx context.Context, record *model.Record) (*model.WriteSummary, error) {
	if p.Writer == nil {
		return nil, helper.NewError("write", errors.New("no writer configured"))
	}
	return p.Writer.Write(ctx, record)
}

// Run scrapes url, extracts with p.MaxChars and writes the record. The
// partial result is returned with the first error.
func (p *Pipeline) Run(ctx context.Context, url string) (*Result, error) {
	result := &Result{}

	text, err := p.Scrape(ctx, url)
	if err != nil {
		return result, err
	}
	result.Text = text

	record, err := p.Extract(ctx, text, p.MaxChars)
	if err != nil {
		return result, err
	}
	result.Record = record

	summary, err := p.Write(ctx, record)
	result.Summary = summary
	if err != nil {
		return result, err
	}

	p.log.Info("Ingested page", slog.String("url", url), slog.String("project", record.Project.Name))
	return result, nil
}

// Truncate cuts text to at most max runes. A max of zero or less keeps text.
func Truncate(text string, max int) string {
	if max <= 0 || len(text) <= max {
		return text
	}
	n := 0
	for i := range text {
		if n == max {
			return text[:i]
		}
		n++
	}
	return text
}
