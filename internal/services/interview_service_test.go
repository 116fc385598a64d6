package services

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smarthr_backend/internal/models"
	"smarthr_backend/internal/repositories"
)

// stubInterviewRepo overrides only the methods GenerateReview touches.
type stubInterviewRepo struct {
	repositories.InterviewRepository

	interview *models.Interview
	questions []models.InterviewQuestion

	savedReview []byte
	savedScore  *float64
}

func (s *stubInterviewRepo) FindByID(id string) (*models.Interview, error) {
	return s.interview, nil
}

func (s *stubInterviewRepo) ListQuestions(interviewID string) ([]models.InterviewQuestion, error) {
	return s.questions, nil
}

func (s *stubInterviewRepo) UpdateReview(interviewID string, review []byte, score float64, at time.Time) error {
	s.savedReview = review
	s.savedScore = &score
	return nil
}

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }

func completedInterview(rating *int) *models.Interview {
	return &models.Interview{
		Status:            models.InterviewStatusCompleted,
		InterviewerRating: rating,
	}
}

func newReviewService(repo *stubInterviewRepo) InterviewService {
	return NewInterviewService(repo, nil, nil, nil, NoopEnqueuer())
}

func TestGenerateReview_BlendsQuestionsAndRating(t *testing.T) {
	repo := &stubInterviewRepo{
		interview: completedInterview(intPtr(9)),
		questions: []models.InterviewQuestion{
			{QuestionText: "q1", AnswerText: "a1", Score: floatPtr(80)},
			{QuestionText: "q2", AnswerText: "a2", Score: floatPtr(60)},
			{QuestionText: "q3"},
		},
	}
	svc := newReviewService(repo)

	require.NoError(t, svc.GenerateReview(context.Background(), "iv-1"))
	require.NotNil(t, repo.savedScore)

	// avg question score 70 weighted 2/3, rating 9 scaled to 90 weighted 1/3
	assert.InDelta(t, 70*2.0/3.0+90/3.0, *repo.savedScore, 0.01)

	var review struct {
		TotalQuestions    int      `json:"total_questions"`
		AnsweredQuestions int      `json:"answered_questions"`
		ScoredQuestions   int      `json:"scored_questions"`
		AvgQuestionScore  *float64 `json:"avg_question_score"`
	}
	require.NoError(t, json.Unmarshal(repo.savedReview, &review))
	assert.Equal(t, 3, review.TotalQuestions)
	assert.Equal(t, 2, review.AnsweredQuestions)
	assert.Equal(t, 2, review.ScoredQuestions)
	require.NotNil(t, review.AvgQuestionScore)
	assert.InDelta(t, 70.0, *review.AvgQuestionScore, 0.01)
}

func TestGenerateReview_RatingOnly(t *testing.T) {
	repo := &stubInterviewRepo{interview: completedInterview(intPtr(7))}
	svc := newReviewService(repo)

	require.NoError(t, svc.GenerateReview(context.Background(), "iv-2"))
	require.NotNil(t, repo.savedScore)
	assert.InDelta(t, 70.0, *repo.savedScore, 0.01)
}

func TestGenerateReview_QuestionsOnly(t *testing.T) {
	repo := &stubInterviewRepo{
		interview: completedInterview(nil),
		questions: []models.InterviewQuestion{
			{AnswerText: "a", Score: floatPtr(55)},
		},
	}
	svc := newReviewService(repo)

	require.NoError(t, svc.GenerateReview(context.Background(), "iv-3"))
	require.NotNil(t, repo.savedScore)
	assert.InDelta(t, 55.0, *repo.savedScore, 0.01)
}

func TestGenerateReview_SkipsNonCompleted(t *testing.T) {
	repo := &stubInterviewRepo{
		interview: &models.Interview{Status: models.InterviewStatusScheduled},
	}
	svc := newReviewService(repo)

	require.NoError(t, svc.GenerateReview(context.Background(), "iv-4"))
	assert.Nil(t, repo.savedScore)
}

func TestGenerateReview_SkipsAlreadyScored(t *testing.T) {
	scoredAt := time.Now()
	interview := completedInterview(intPtr(5))
	interview.ScoredAt = &scoredAt

	repo := &stubInterviewRepo{interview: interview}
	svc := newReviewService(repo)

	require.NoError(t, svc.GenerateReview(context.Background(), "iv-5"))
	assert.Nil(t, repo.savedScore)
}
