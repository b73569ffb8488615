package sop

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSectionTableOrder(t *testing.T) {
	sections := Sections()
	require.Len(t, sections, 8)

	wantKeys := []string{
		SectionIntroduction,
		SectionAcademicBackground,
		SectionLanguageProficiency,
		SectionFinancialBackground,
		SectionWhyThisCountry,
		SectionCareerOpportunities,
		SectionFamilyTies,
		SectionConclusion,
	}
	wantLimits := []int{54, 71, 180, 148, 122, 354, 275, 70}
	for i, s := range sections {
		assert.Equal(t, wantKeys[i], s.Key)
		assert.Equal(t, wantLimits[i], s.WordLimit, s.Key)
		assert.NotEmpty(t, s.Heading, s.Key)
		assert.NotEmpty(t, s.Instruction, s.Key)
	}
}

func TestSectionsReturnsCopy(t *testing.T) {
	sections := Sections()
	sections[0].Heading = "changed"

	assert.Equal(t, "Respected Sir/Ma'am,", Sections()[0].Heading)
}

func TestSectionByKey(t *testing.T) {
	s, ok := SectionByKey(SectionFamilyTies)
	require.True(t, ok)
	assert.Equal(t, "My Family Ties and Return to Home Country", s.Heading)

	_, ok = SectionByKey("nope")
	assert.False(t, ok)
}

func TestEverySectionHasFields(t *testing.T) {
	for _, s := range Sections() {
		assert.NotEmpty(t, FieldKeys(s.Key), s.Key)
	}
}
