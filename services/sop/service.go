package sop

import (
	"context"
	"math"
	"time"

	"sopwriter/models"
	"sopwriter/services/archive"

	"go.uber.org/zap"
)

// Generator produces a complete document from a profile.
type Generator interface {
	Generate(ctx context.Context, profile models.UserProfile) (*models.SOPDocument, error)
}

// GenerateResult is what a successful generation request returns.
type GenerateResult struct {
	Content           string
	Sections          []models.GeneratedSection
	GenerationSeconds float64
	ArchiveID         string
}

// SOPService is the entry point the HTTP layer uses.
type SOPService interface {
	Generate(ctx context.Context, profile models.UserProfile) (*GenerateResult, error)
	Archived(ctx context.Context, id string) (*models.ArchiveRecord, error)
}

// DefaultSOPService times a generation and archives the result.
type DefaultSOPService struct {
	Generator Generator
	Archive   archive.Store
	Provider  string
	Model     string
	Logger    *zap.Logger

	now func() time.Time
}

func (s *DefaultSOPService) clock() time.Time {
	if s.now != nil {
		return s.now()
	}
	return time.Now()
}

func (s *DefaultSOPService) logger() *zap.Logger {
	if s.Logger == nil {
		return zap.NewNop()
	}
	return s.Logger
}

func (s *DefaultSOPService) Generate(ctx context.Context, profile models.UserProfile) (*GenerateResult, error) {
	start := s.clock()
	s.logger().Info("Generating SOP", zap.String("name", profile.Get(models.FieldName)), zap.String("model", s.Model))

	doc, err := s.Generator.Generate(ctx, profile)
	if err != nil {
		return nil, err
	}

	finished := s.clock()
	result := &GenerateResult{
		Content:           doc.String(),
		Sections:          doc.Sections,
		GenerationSeconds: math.Round(finished.Sub(start).Seconds()*100) / 100,
	}
	s.logger().Info("SOP generated",
		zap.Int("sections", len(doc.Sections)),
		zap.Float64("seconds", result.GenerationSeconds),
	)

	if s.Archive != nil && s.Archive.Enabled() {
		id, err := s.Archive.Save(ctx, models.ArchiveRecord{
			Name:              profile.Get(models.FieldName),
			Profile:           profile,
			Sections:          doc.Sections,
			Content:           result.Content,
			Provider:          s.Provider,
			Model:             s.Model,
			GenerationSeconds: result.GenerationSeconds,
			CreatedAt:         finished.UTC(),
		})
		if err != nil {
			s.logger().Warn("Failed to archive SOP", zap.Error(err))
		} else {
			result.ArchiveID = id
		}
	}
	return result, nil
}

func (s *DefaultSOPService) Archived(ctx context.Context, id string) (*models.ArchiveRecord, error) {
	if s.Archive == nil {
		return nil, archive.ErrNotFound
	}
	return s.Archive.Get(ctx, id)
}
