package pipeline

import (
	"context"

	"github.com/siherrmann/meetinggraph/model"
)

// FetchFunc downloads a page and returns its plain text.
type FetchFunc func(ctx context.Context, url string) (string, error)

// ExtractFunc asks a language model for the record of text and returns the
// raw model output, which may wrap the JSON in prose or markdown.
type ExtractFunc func(ctx context.Context, text string) (string, error)

// RecordWriter persists a validated record. *writer.Writer implements it.
type RecordWriter interface {
	Write(ctx context.Context, record *model.Record) (*model.WriteSummary, error)
}
