package models

import (
	"strings"
	"time"
)

// SectionSeparator separates headings from bodies in an assembled statement.
const SectionSeparator = "\n\n"

// SectionSpec describes one fixed section of a statement of purpose.
type SectionSpec struct {
	Key         string
	Heading     string
	WordLimit   int
	Instruction string
}

// GeneratedSection is a heading plus the model-written body for it.
type GeneratedSection struct {
	Key     string `json:"key" bson:"key"`
	Heading string `json:"heading" bson:"heading"`
	Body    string `json:"body" bson:"body"`
}

// SOPDocument is an assembled statement, sections in template order.
type SOPDocument struct {
	Sections []GeneratedSection
}

// String joins heading/body pairs with blank lines.
func (d *SOPDocument) String() string {
	if d == nil {
		return ""
	}
	parts := make([]string, 0, len(d.Sections)*2)
	for _, s := range d.Sections {
		parts = append(parts, s.Heading, s.Body)
	}
	return strings.Join(parts, SectionSeparator)
}

// ArchiveRecord is a generated statement kept for later retrieval.
type ArchiveRecord struct {
	ID                string             `json:"id" bson:"_id"`
	Name              string             `json:"name" bson:"name"`
	Profile           UserProfile        `json:"profile" bson:"profile"`
	Sections          []GeneratedSection `json:"sections" bson:"sections"`
	Content           string             `json:"content" bson:"content"`
	Provider          string             `json:"provider" bson:"provider"`
	Model             string             `json:"model" bson:"model"`
	GenerationSeconds float64            `json:"generation_time" bson:"generationSeconds"`
	CreatedAt         time.Time          `json:"created_at" bson:"createdAt"`
}
