package algorithms

import (
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"gorm.io/datatypes"

	"smarthr_backend/internal/models"
)

func sampleProfile() *models.Profile {
	return &models.Profile{
		Bio:            "Backend developer",
		Skills:         pq.StringArray{"Go", "PostgreSQL", "Docker"},
		Experience:     datatypes.JSON(`[{"company":"Acme"},{"company":"Umbrella"}]`),
		Education:      datatypes.JSON(`[{"school":"TUIT"}]`),
		Certifications: datatypes.JSON(`[{"name":"AWS SAA"}]`),
	}
}

func TestCalculateMatchScore_FullMatch(t *testing.T) {
	profile := sampleProfile()
	job := &models.Job{
		RequiredSkills:     pq.StringArray{"Go", "PostgreSQL"},
		PreferredSkills:    pq.StringArray{"Docker"},
		ExperienceYearsMin: 1,
	}

	score, analysis := CalculateMatchScore(profile, job)

	// 60 (required) + 20 (preferred) + 20 (experience) + 10 (education) + 5 (certs), capped
	assert.Equal(t, 100.0, score)
	assert.ElementsMatch(t, []string{"Go", "PostgreSQL"}, analysis.MatchingSkills)
	assert.Empty(t, analysis.MissingSkills)
	assert.Equal(t, "Meets experience requirements", analysis.ExperienceMatch)
}

func TestCalculateMatchScore_PartialRequiredSkills(t *testing.T) {
	profile := &models.Profile{
		Skills: pq.StringArray{"Go"},
	}
	job := &models.Job{
		RequiredSkills:     pq.StringArray{"Go", "Kubernetes"},
		ExperienceYearsMin: 0,
	}

	score, analysis := CalculateMatchScore(profile, job)

	// 50% of required * 0.6 = 30, experience 20 (zero entries >= zero minimum)
	assert.Equal(t, 50.0, score)
	assert.Equal(t, []string{"Go"}, analysis.MatchingSkills)
	assert.Equal(t, []string{"Kubernetes"}, analysis.MissingSkills)
}

func TestCalculateMatchScore_CaseInsensitiveSkills(t *testing.T) {
	profile := &models.Profile{
		Skills: pq.StringArray{"go", "postgresql"},
	}
	job := &models.Job{
		RequiredSkills: pq.StringArray{"Go", "PostgreSQL"},
	}

	score, analysis := CalculateMatchScore(profile, job)

	assert.Empty(t, analysis.MissingSkills)
	// 60 for required skills + 20 for experience (no minimum set)
	assert.Equal(t, 80.0, score)
}

func TestCalculateMatchScore_BelowExperience(t *testing.T) {
	profile := &models.Profile{
		Skills:     pq.StringArray{"Go"},
		Experience: datatypes.JSON(`[{"company":"Acme"}]`),
	}
	job := &models.Job{
		RequiredSkills:     pq.StringArray{"Go"},
		ExperienceYearsMin: 3,
	}

	score, analysis := CalculateMatchScore(profile, job)

	assert.Equal(t, 60.0, score)
	assert.Equal(t, "Below required experience level", analysis.ExperienceMatch)
	assert.NotEmpty(t, analysis.Recommendations)
}

func TestAnalyzeProfile_Complete(t *testing.T) {
	profile := &models.Profile{
		Bio:            "Engineer",
		Skills:         pq.StringArray{"Go", "SQL", "Docker", "Linux", "Git"},
		Experience:     datatypes.JSON(`[{},{}]`),
		Education:      datatypes.JSON(`[{}]`),
		Certifications: datatypes.JSON(`[{}]`),
	}

	score, analysis := AnalyzeProfile(profile)

	// 15 + 20 + 10 + 25 + 10 + 20 + 10
	assert.Equal(t, 100.0, score)
	assert.Contains(t, analysis.Strengths, "Good variety of skills")
	assert.Contains(t, analysis.Strengths, "Strong work experience")
	assert.Empty(t, analysis.Weaknesses)
}

func TestAnalyzeProfile_Empty(t *testing.T) {
	score, analysis := AnalyzeProfile(&models.Profile{})

	assert.Equal(t, 0.0, score)
	assert.Contains(t, analysis.Weaknesses, "Missing bio/summary")
	assert.Contains(t, analysis.Weaknesses, "No skills listed")
	assert.Contains(t, analysis.Weaknesses, "No work experience listed")
}

func TestExtractSkills(t *testing.T) {
	text := `Senior engineer with 5 years of Python and Go experience.
Built services on PostgreSQL and Docker, deployed to AWS.
Strong communication and project management background.`

	skills := ExtractSkills(text)

	assert.Contains(t, skills, "python")
	assert.Contains(t, skills, "go")
	assert.Contains(t, skills, "postgresql")
	assert.Contains(t, skills, "docker")
	assert.Contains(t, skills, "aws")
	assert.Contains(t, skills, "communication")
	assert.Contains(t, skills, "project management")
	assert.NotContains(t, skills, "java")
}

func TestExtractSkills_Empty(t *testing.T) {
	assert.Empty(t, ExtractSkills(""))
}
