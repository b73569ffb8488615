package sop

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"sopwriter/models"
	ai "sopwriter/services/intelligence"

	"go.uber.org/zap"
)

// SectionError reports the section that stopped an assembly.
type SectionError struct {
	Index int
	Key   string
	Err   error
}

func (e *SectionError) Error() string {
	return fmt.Sprintf("failed to generate %s: %v", e.Key, e.Err)
}

func (e *SectionError) Unwrap() error { return e.Err }

// Assembler runs the section table against a model client, in order.
type Assembler struct {
	client   ai.ModelClient
	model    string
	sections []models.SectionSpec
	logger   *zap.Logger
}

func NewAssembler(client ai.ModelClient, model string, logger *zap.Logger) *Assembler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Assembler{
		client:   client,
		model:    model,
		sections: Sections(),
		logger:   logger,
	}
}

// Generate writes every section sequentially. The first failing section
// aborts the run and no document is returned. Each reply is trimmed and any
// run of blank lines inside it is folded into a single newline, so a
// multi-paragraph reply comes back as one block of lines rather than the
// model's text verbatim.
func (a *Assembler) Generate(ctx context.Context, profile models.UserProfile) (*models.SOPDocument, error) {
	doc := &models.SOPDocument{Sections: make([]models.GeneratedSection, 0, len(a.sections))}

	for i, spec := range a.sections {
		if err := ctx.Err(); err != nil {
			return nil, &SectionError{Index: i, Key: spec.Key, Err: err}
		}

		prompt := BuildPrompt(spec, profile)
		text, err := a.client.Chat(ctx, ai.ChatRequest{
			Model:       a.model,
			Messages:    prompt.Messages(),
			Temperature: ai.DefaultTemperature,
			MaxTokens:   ai.TokenBudget(spec.WordLimit),
		})
		if err != nil {
			a.logger.Error("Section generation failed",
				zap.String("section", spec.Key),
				zap.Int("index", i),
				zap.Error(err),
			)
			return nil, &SectionError{Index: i, Key: spec.Key, Err: err}
		}

		body := normalizeBody(text)
		a.logger.Debug("Section generated",
			zap.String("section", spec.Key),
			zap.Int("words", len(strings.Fields(body))),
			zap.Int("target", spec.WordLimit),
		)
		doc.Sections = append(doc.Sections, models.GeneratedSection{
			Key:     spec.Key,
			Heading: spec.Heading,
			Body:    body,
		})
	}
	return doc, nil
}

var blankLines = regexp.MustCompile(`\n[ \t]*(\n[ \t]*)+`)

// normalizeBody trims the reply and folds paragraph breaks into single
// newlines, so blank lines in the assembled text only ever separate a
// heading from its body.
func normalizeBody(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return blankLines.ReplaceAllString(strings.TrimSpace(text), "\n")
}
