package algorithms

import (
	"encoding/json"
	"math"
	"strings"

	"smarthr_backend/internal/models"
)

// MatchAnalysis details how a candidate lines up against a job posting.
type MatchAnalysis struct {
	MatchingSkills  []string `json:"matching_skills"`
	MissingSkills   []string `json:"missing_skills"`
	ExperienceMatch string   `json:"experience_match"`
	Recommendations []string `json:"recommendations"`
}

// CalculateMatchScore scores how well a candidate profile matches a job (0-100).
// Required skills carry 60% of the weight, preferred skills 20%, experience
// 20%, with flat bonuses for education (10) and certifications (5). The total
// is capped at 100.
func CalculateMatchScore(profile *models.Profile, job *models.Job) (float64, MatchAnalysis) {
	score := 0.0
	analysis := MatchAnalysis{
		MatchingSkills:  []string{},
		MissingSkills:   []string{},
		Recommendations: []string{},
	}

	candidateSkills := normalizeSet(profile.Skills)

	if len(job.RequiredSkills) > 0 {
		var matching, missing []string
		for _, skill := range job.RequiredSkills {
			if candidateSkills[normalizeSkill(skill)] {
				matching = append(matching, skill)
			} else {
				missing = append(missing, skill)
			}
		}
		skillMatchPercentage := float64(len(matching)) / float64(len(job.RequiredSkills)) * 100
		score += skillMatchPercentage * 0.6

		analysis.MatchingSkills = append(analysis.MatchingSkills, matching...)
		analysis.MissingSkills = append(analysis.MissingSkills, missing...)
	}

	if len(job.PreferredSkills) > 0 {
		matched := 0
		for _, skill := range job.PreferredSkills {
			if candidateSkills[normalizeSkill(skill)] {
				matched++
			}
		}
		preferredMatch := float64(matched) / float64(len(job.PreferredSkills)) * 100
		score += preferredMatch * 0.2
	}

	experienceEntries := countJSONEntries(profile.Experience)
	if experienceEntries >= job.ExperienceYearsMin {
		score += 20
		analysis.ExperienceMatch = "Meets experience requirements"
	} else {
		analysis.ExperienceMatch = "Below required experience level"
		analysis.Recommendations = append(analysis.Recommendations, "Gain more experience in relevant field")
	}

	if countJSONEntries(profile.Education) > 0 {
		score += 10
	}

	if countJSONEntries(profile.Certifications) > 0 {
		score += 5
	}

	return math.Min(round2(score), 100), analysis
}

func normalizeSkill(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func normalizeSet(skills []string) map[string]bool {
	set := make(map[string]bool, len(skills))
	for _, s := range skills {
		set[normalizeSkill(s)] = true
	}
	return set
}

// countJSONEntries counts elements in a JSON array column; malformed or
// empty payloads count as zero.
func countJSONEntries(raw []byte) int {
	if len(raw) == 0 {
		return 0
	}
	var entries []json.RawMessage
	if err := json.Unmarshal(raw, &entries); err != nil {
		return 0
	}
	return len(entries)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
