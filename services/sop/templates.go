// Package sop assembles a statement of purpose section by section.
package sop

import "sopwriter/models"

// Section keys, in document order.
const (
	SectionIntroduction        = "introduction"
	SectionAcademicBackground  = "academic_background"
	SectionLanguageProficiency = "language_proficiency"
	SectionFinancialBackground = "financial_background"
	SectionWhyThisCountry      = "why_this_country"
	SectionCareerOpportunities = "career_opportunities"
	SectionFamilyTies          = "family_ties"
	SectionConclusion          = "conclusion"
)

var sectionTable = [...]models.SectionSpec{
	{
		Key:         SectionIntroduction,
		Heading:     "Respected Sir/Ma'am,",
		WordLimit:   54,
		Instruction: "A formal and respectful introduction that addresses the admission committee. Mention the specific program and university you're applying to.",
	},
	{
		Key:         SectionAcademicBackground,
		Heading:     "Academic Background",
		WordLimit:   71,
		Instruction: "Brief overview of educational history focusing on most recent degree, major, institution, and graduation year. Include GPA if notable.",
	},
	{
		Key:         SectionLanguageProficiency,
		Heading:     "Language Proficiency",
		WordLimit:   180,
		Instruction: "Detail English language proficiency with test specifics (IELTS/TOEFL/PTE). Explain how language skills prepare you for academic success.",
	},
	{
		Key:         SectionFinancialBackground,
		Heading:     "Financial Background",
		WordLimit:   148,
		Instruction: "Explain funding sources (personal, family, loans, scholarships). Provide evidence of sufficient funds for tuition and living expenses.",
	},
	{
		Key:         SectionWhyThisCountry,
		Heading:     "Why I Choose this Country for my Studies",
		WordLimit:   122,
		Instruction: "Explain reasons for selecting this country for education. Mention educational quality, cultural aspects, or specific opportunities.",
	},
	{
		Key:         SectionCareerOpportunities,
		Heading:     "Career Opportunities in My Country After Completing the Program",
		WordLimit:   354,
		Instruction: "Detail job prospects in your home country after graduation. Include specific roles, companies, or industry needs for your new skills.",
	},
	{
		Key:         SectionFamilyTies,
		Heading:     "My Family Ties and Return to Home Country",
		WordLimit:   275,
		Instruction: "Describe family connections in your home country. Explain your intention to return after studies, including specific reasons.",
	},
	{
		Key:         SectionConclusion,
		Heading:     "Conclusion",
		WordLimit:   70,
		Instruction: "Brief summary reiterating key points. Express gratitude for consideration and enthusiasm for the opportunity.",
	},
}

// Sections returns a copy of the section table in document order.
func Sections() []models.SectionSpec {
	out := make([]models.SectionSpec, len(sectionTable))
	copy(out, sectionTable[:])
	return out
}

// SectionByKey looks up a section definition.
func SectionByKey(key string) (models.SectionSpec, bool) {
	for _, s := range sectionTable {
		if s.Key == key {
			return s, true
		}
	}
	return models.SectionSpec{}, false
}
