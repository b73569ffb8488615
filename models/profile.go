package models

// Profile field keys, as submitted by the form.
const (
	FieldName             = "name"
	FieldCountryOfOrigin  = "country_of_origin"
	FieldDegree           = "degree"
	FieldInstitution      = "institution"
	FieldGraduationYear   = "graduation_year"
	FieldMajor            = "major"
	FieldGPA              = "gpa"
	FieldLanguageTest     = "language_test"
	FieldLanguageScore    = "language_score"
	FieldFundingSource    = "funding_source"
	FieldProofOfFunds     = "proof_of_funds"
	FieldTargetCountry    = "target_country"
	FieldTargetUniversity = "target_university"
	FieldProgram          = "program"
	FieldProgramStart     = "program_start"
	FieldCareerGoals      = "career_goals"
	FieldFamilyTies       = "family_ties"
)

// ProfileFields lists every field an applicant must submit, in form order.
var ProfileFields = []string{
	FieldName,
	FieldCountryOfOrigin,
	FieldDegree,
	FieldInstitution,
	FieldGraduationYear,
	FieldMajor,
	FieldGPA,
	FieldLanguageTest,
	FieldLanguageScore,
	FieldFundingSource,
	FieldProofOfFunds,
	FieldTargetCountry,
	FieldTargetUniversity,
	FieldProgram,
	FieldProgramStart,
	FieldCareerGoals,
	FieldFamilyTies,
}

// UserProfile maps a field key to the applicant's answer.
type UserProfile map[string]string

// Get returns the value for key, or "" when the field is absent.
func (p UserProfile) Get(key string) string {
	if p == nil {
		return ""
	}
	return p[key]
}

// ApplicantForm is the form payload of a generation request.
type ApplicantForm struct {
	Name             string `form:"name" json:"name" binding:"required"`
	CountryOfOrigin  string `form:"country_of_origin" json:"country_of_origin" binding:"required"`
	Degree           string `form:"degree" json:"degree" binding:"required"`
	Institution      string `form:"institution" json:"institution" binding:"required"`
	GraduationYear   string `form:"graduation_year" json:"graduation_year" binding:"required"`
	Major            string `form:"major" json:"major" binding:"required"`
	GPA              string `form:"gpa" json:"gpa" binding:"required"`
	LanguageTest     string `form:"language_test" json:"language_test" binding:"required"`
	LanguageScore    string `form:"language_score" json:"language_score" binding:"required"`
	FundingSource    string `form:"funding_source" json:"funding_source" binding:"required"`
	ProofOfFunds     string `form:"proof_of_funds" json:"proof_of_funds" binding:"required"`
	TargetCountry    string `form:"target_country" json:"target_country" binding:"required"`
	TargetUniversity string `form:"target_university" json:"target_university" binding:"required"`
	Program          string `form:"program" json:"program" binding:"required"`
	ProgramStart     string `form:"program_start" json:"program_start" binding:"required"`
	CareerGoals      string `form:"career_goals" json:"career_goals" binding:"required"`
	FamilyTies       string `form:"family_ties" json:"family_ties" binding:"required"`
}

// Profile flattens the form into a UserProfile.
func (f ApplicantForm) Profile() UserProfile {
	return UserProfile{
		FieldName:             f.Name,
		FieldCountryOfOrigin:  f.CountryOfOrigin,
		FieldDegree:           f.Degree,
		FieldInstitution:      f.Institution,
		FieldGraduationYear:   f.GraduationYear,
		FieldMajor:            f.Major,
		FieldGPA:              f.GPA,
		FieldLanguageTest:     f.LanguageTest,
		FieldLanguageScore:    f.LanguageScore,
		FieldFundingSource:    f.FundingSource,
		FieldProofOfFunds:     f.ProofOfFunds,
		FieldTargetCountry:    f.TargetCountry,
		FieldTargetUniversity: f.TargetUniversity,
		FieldProgram:          f.Program,
		FieldProgramStart:     f.ProgramStart,
		FieldCareerGoals:      f.CareerGoals,
		FieldFamilyTies:       f.FamilyTies,
	}
}
