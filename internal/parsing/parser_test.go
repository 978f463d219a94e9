package parsing

import (
	"strings"
	"testing"

	"github.com/jonathan/jd-tailor/internal/skills"
	"github.com/jonathan/jd-tailor/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseJDStructuredPosting(t *testing.T) {
	jd := "Title: Senior DevOps Engineer\nCompany: Acme\nRequirements:\n- Terraform experience\n- AD and MFA"
	skillMap := skills.Map{
		"Active Directory":            {"AD"},
		"Multi-Factor Authentication": {"MFA"},
	}

	record := ParseJD(jd, skillMap, 30)
	require.NotNil(t, record)

	assert.Equal(t, "Senior DevOps Engineer", record.Title)
	assert.Equal(t, "Acme", record.Company)
	assert.Equal(t, "Senior", record.Seniority)
	assert.Equal(t, []string{
		"Terraform experience",
		"Active directory and multi-factor authentication",
	}, record.MustHaves)
	assert.Contains(t, record.NormalizedSkills, "active directory")
	assert.Contains(t, record.NormalizedSkills, "multi-factor authentication")
}

func TestParseJDEmptyInput(t *testing.T) {
	record := ParseJD("", skills.Map{}, 30)
	require.NotNil(t, record)

	assert.Empty(t, record.Title)
	assert.Empty(t, record.Company)
	assert.Empty(t, record.Location)
	assert.Empty(t, record.Seniority)
	assert.Empty(t, record.MustHaves)
	assert.Empty(t, record.NiceToHaves)
	assert.Empty(t, record.Responsibilities)
	assert.Empty(t, record.Keywords)
	assert.Empty(t, record.NormalizedSkills)
	assert.Empty(t, record.NormalizedText)
}

func TestParseJDWithoutSkillMap(t *testing.T) {
	jd := "Title: Platform Engineer\n\nWe build Terraform modules."

	record := ParseJD(jd, skills.Map{}, 30)

	assert.Equal(t, strings.ToLower(jd), record.NormalizedText)
	assert.Empty(t, record.NormalizedSkills)
}

func TestParseJDSectionCaps(t *testing.T) {
	var sb strings.Builder
	sb.WriteString("Responsibilities:\n")
	for i := 0; i < 40; i++ {
		sb.WriteString("- duty number ")
		sb.WriteString(strings.Repeat("x", i+1))
		sb.WriteString("\n")
	}

	record := ParseJD(sb.String(), skills.Map{}, 30)

	assert.LessOrEqual(t, len(record.Responsibilities), types.MaxResponsibilities)
}

func TestParseJDKeywordCount(t *testing.T) {
	jd := "terraform kubernetes grafana prometheus ansible jenkins docker helm vault consul"

	record := ParseJD(jd, skills.Map{}, 5)

	assert.LessOrEqual(t, len(record.Keywords), 5)
}

func TestParseJDKeywordsUseNormalizedVocabulary(t *testing.T) {
	jd := "We need tf, tf, and more tf."
	skillMap := skills.Map{"Terraform": {"tf"}}

	record := ParseJD(jd, skillMap, 30)

	assert.Contains(t, record.Keywords, "terraform")
	assert.NotContains(t, record.Keywords, "tf")
}

func TestParseJDNormalizedSkillsSorted(t *testing.T) {
	jd := "zookeeper and ansible and kafka"
	skillMap := skills.Map{
		"ZooKeeper": {"zookeeper"},
		"Ansible":   {"ansible"},
		"Kafka":     {"kafka"},
	}

	record := ParseJD(jd, skillMap, 30)

	assert.Equal(t, []string{"ansible", "kafka", "zookeeper"}, record.NormalizedSkills)
}
