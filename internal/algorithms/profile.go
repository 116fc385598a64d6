package algorithms

import (
	"math"

	"smarthr_backend/internal/models"
)

// ProfileAnalysis details the strengths and gaps found in a profile.
type ProfileAnalysis struct {
	Strengths       []string `json:"strengths"`
	Weaknesses      []string `json:"weaknesses"`
	Recommendations []string `json:"recommendations"`
}

// AnalyzeProfile scores profile completeness (0-100). Bio is worth 15,
// skills 20 plus 10 for five or more, experience 25 plus 10 for two or
// more entries, education 20, certifications 10.
func AnalyzeProfile(profile *models.Profile) (float64, ProfileAnalysis) {
	score := 0.0
	analysis := ProfileAnalysis{
		Strengths:       []string{},
		Weaknesses:      []string{},
		Recommendations: []string{},
	}

	if profile.Bio != "" {
		score += 15
	} else {
		analysis.Weaknesses = append(analysis.Weaknesses, "Missing bio/summary")
		analysis.Recommendations = append(analysis.Recommendations, "Add a professional summary")
	}

	if len(profile.Skills) > 0 {
		score += 20
		if len(profile.Skills) >= 5 {
			score += 10
			analysis.Strengths = append(analysis.Strengths, "Good variety of skills")
		} else {
			analysis.Recommendations = append(analysis.Recommendations, "Add more skills to improve visibility")
		}
	} else {
		analysis.Weaknesses = append(analysis.Weaknesses, "No skills listed")
	}

	if experienceEntries := countJSONEntries(profile.Experience); experienceEntries > 0 {
		score += 25
		if experienceEntries >= 2 {
			score += 10
			analysis.Strengths = append(analysis.Strengths, "Strong work experience")
		}
	} else {
		analysis.Weaknesses = append(analysis.Weaknesses, "No work experience listed")
	}

	if countJSONEntries(profile.Education) > 0 {
		score += 20
		analysis.Strengths = append(analysis.Strengths, "Education background provided")
	} else {
		analysis.Recommendations = append(analysis.Recommendations, "Add educational background")
	}

	if countJSONEntries(profile.Certifications) > 0 {
		score += 10
		analysis.Strengths = append(analysis.Strengths, "Professional certifications")
	}

	return math.Min(score, 100), analysis
}
