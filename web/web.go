// Package web holds the single-page form served at the site root.
package web

import (
	"embed"
	"html/template"

	"sopwriter/models"
)

//go:embed templates/*.html
var templateFS embed.FS

// IndexTemplate is the template name routes render for GET /.
const IndexTemplate = "index.html"

// Option is one choice of a select field.
type Option struct {
	Value string
	Label string
}

// FormField describes how one profile field is rendered.
type FormField struct {
	Key         string
	Label       string
	Placeholder string
	Multiline   bool
	Options     []Option
}

// FormFields lists every profile field in the order the form shows them.
var FormFields = []FormField{
	{Key: models.FieldName, Label: "Full Name", Placeholder: "Enter your full name"},
	{Key: models.FieldCountryOfOrigin, Label: "Country of Origin", Placeholder: "Your country of origin"},
	{Key: models.FieldDegree, Label: "Current/Most Recent Degree", Placeholder: "e.g., Bachelor of Science"},
	{Key: models.FieldInstitution, Label: "Institution Name", Placeholder: "Your university/college name"},
	{Key: models.FieldGraduationYear, Label: "Graduation Year", Placeholder: "Year of graduation"},
	{Key: models.FieldMajor, Label: "Major/Field of Study", Placeholder: "Your field of study"},
	{Key: models.FieldGPA, Label: "GPA/Academic Performance", Placeholder: "e.g., 3.8/4.0"},
	{Key: models.FieldLanguageTest, Label: "Language Test (IELTS/TOEFL/PTE)", Options: []Option{
		{"IELTS", "IELTS"}, {"TOEFL", "TOEFL"}, {"PTE", "PTE"}, {"Other", "Other"},
	}},
	{Key: models.FieldLanguageScore, Label: "Overall Score", Placeholder: "Your test score"},
	{Key: models.FieldFundingSource, Label: "Primary Source of Funding", Options: []Option{
		{"Self", "Self-Funded"}, {"Family", "Family Support"}, {"Scholarship", "Scholarship"},
		{"Loan", "Education Loan"}, {"Other", "Other"},
	}},
	{Key: models.FieldProofOfFunds, Label: "Proof of Funds Available", Options: []Option{
		{"Bank Statement", "Bank Statement"}, {"Sponsor Letter", "Sponsor Letter"},
		{"Scholarship Letter", "Scholarship Letter"}, {"Loan Approval", "Loan Approval"},
		{"Multiple", "Multiple Sources"},
	}},
	{Key: models.FieldTargetCountry, Label: "Target Country for Studies", Placeholder: "Country where you want to study"},
	{Key: models.FieldTargetUniversity, Label: "Target University", Placeholder: "University you're applying to"},
	{Key: models.FieldProgram, Label: "Program Applying For", Placeholder: "e.g., Master of Computer Science"},
	{Key: models.FieldProgramStart, Label: "Expected Start Date", Placeholder: "e.g., Fall 2023"},
	{Key: models.FieldCareerGoals, Label: "Short-term Career Goals", Placeholder: "Describe your career aspirations", Multiline: true},
	{Key: models.FieldFamilyTies, Label: "Family Ties in Home Country", Placeholder: "Describe your ties to your home country", Multiline: true},
}

// Templates parses the embedded page templates.
func Templates() (*template.Template, error) {
	return template.ParseFS(templateFS, "templates/*.html")
}
