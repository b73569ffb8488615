package sop

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"sopwriter/models"
	ai "sopwriter/services/intelligence"
)

// Prompt is the system/user instruction pair for one section.
type Prompt struct {
	System string
	User   string
}

// Messages returns the pair in chat order.
func (p Prompt) Messages() []ai.Message {
	return []ai.Message{
		{Role: ai.RoleSystem, Content: p.System},
		{Role: ai.RoleUser, Content: p.User},
	}
}

type promptField struct {
	Label string
	Key   string
}

// sectionFields decides which profile answers each section gets to see.
var sectionFields = map[string][]promptField{
	SectionIntroduction: {
		{"Name", models.FieldName},
		{"Program", models.FieldProgram},
		{"University", models.FieldTargetUniversity},
	},
	SectionAcademicBackground: {
		{"Degree", models.FieldDegree},
		{"Institution", models.FieldInstitution},
		{"Graduation Year", models.FieldGraduationYear},
		{"Major", models.FieldMajor},
		{"GPA", models.FieldGPA},
	},
	SectionLanguageProficiency: {
		{"Language Test", models.FieldLanguageTest},
		{"Score", models.FieldLanguageScore},
	},
	SectionFinancialBackground: {
		{"Funding Source", models.FieldFundingSource},
		{"Proof of Funds", models.FieldProofOfFunds},
	},
	SectionWhyThisCountry: {
		{"Target Country", models.FieldTargetCountry},
		{"University", models.FieldTargetUniversity},
		{"Program", models.FieldProgram},
	},
	SectionCareerOpportunities: {
		{"Degree", models.FieldDegree},
		{"Program", models.FieldProgram},
		{"Career Goals", models.FieldCareerGoals},
	},
	SectionFamilyTies: {
		{"Country of Origin", models.FieldCountryOfOrigin},
		{"Family Ties", models.FieldFamilyTies},
	},
	SectionConclusion: {
		{"Name", models.FieldName},
		{"Program", models.FieldProgram},
		{"University", models.FieldTargetUniversity},
	},
}

var systemPromptTmpl = template.Must(template.New("system").Parse(
	`You are an expert SOP writer for Ivy League college applications. 
Write the '{{.Key}}' section of a Statement of Purpose. 
The section should contain EXACTLY {{.WordLimit}} words - no more, no less. 
Count words carefully. 
Your response must be formal, clear, and professional. 
Use first-person perspective and ensure the content is relevant to the section. 
Do not include the title in your response. 
Avoid using platitudes, clichés, or overly generic statements. 
The response should be personalized with specific details from the user's background.

Section specific instructions: {{.Instruction}}`))

// systemPrompts holds the rendered system message for every built-in section.
var systemPrompts = func() map[models.SectionSpec]string {
	out := make(map[models.SectionSpec]string, len(sectionTable))
	for _, spec := range sectionTable {
		out[spec] = mustRender(systemPromptTmpl, spec)
	}
	return out
}()

// mustRender panics if tmpl cannot be executed for spec, like template.Must.
func mustRender(tmpl *template.Template, spec models.SectionSpec) string {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, spec); err != nil {
		panic(fmt.Sprintf("sop: render %s prompt for section %q: %v", tmpl.Name(), spec.Key, err))
	}
	return buf.String()
}

// FieldKeys returns the profile keys that feed the given section.
func FieldKeys(sectionKey string) []string {
	fields := sectionFields[sectionKey]
	keys := make([]string, len(fields))
	for i, f := range fields {
		keys[i] = f.Key
	}
	return keys
}

// BuildPrompt renders the instruction pair for spec from the profile.
func BuildPrompt(spec models.SectionSpec, profile models.UserProfile) Prompt {
	system, ok := systemPrompts[spec]
	if !ok {
		system = mustRender(systemPromptTmpl, spec)
	}

	var user strings.Builder
	user.WriteString("Write the ")
	user.WriteString(spec.Key)
	user.WriteString(" section for my SOP based on the following information:")
	for _, f := range sectionFields[spec.Key] {
		user.WriteString("\n")
		user.WriteString(f.Label)
		user.WriteString(": ")
		user.WriteString(profile.Get(f.Key))
	}

	return Prompt{System: system, User: user.String()}
}
