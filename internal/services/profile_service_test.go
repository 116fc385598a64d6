package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smarthr_backend/internal/models"
	"smarthr_backend/internal/repositories"
	"smarthr_backend/internal/storage"
)

// stubProfileRepo overrides only the methods ProcessCV touches.
type stubProfileRepo struct {
	repositories.ProfileRepository

	cv      *models.CV
	profile *models.Profile

	extractedSkills []string
	qualityScored   bool
}

func (s *stubProfileRepo) FindCVByID(id string) (*models.CV, error) {
	return s.cv, nil
}

func (s *stubProfileRepo) UpdateCVExtraction(cvID, text string, skills []string, processedAt time.Time) error {
	s.extractedSkills = skills
	return nil
}

func (s *stubProfileRepo) FindByID(id string) (*models.Profile, error) {
	return s.profile, nil
}

func (s *stubProfileRepo) Update(profile *models.Profile) error {
	s.profile = profile
	return nil
}

func (s *stubProfileRepo) UpdateQualityScore(profileID string, score float64, scoredAt time.Time) error {
	s.qualityScored = true
	return nil
}

func TestProcessCV_RequeuesProfileScoring(t *testing.T) {
	store, err := storage.NewLocalStorage(storage.Config{BasePath: t.TempDir()})
	require.NoError(t, err)

	key := "cvs/p1/resume.txt"
	cvText := "Backend engineer, five years of Go and PostgreSQL."
	require.NoError(t, store.Save(context.Background(), key, strings.NewReader(cvText), "text/plain"))

	repo := &stubProfileRepo{
		cv:      &models.CV{BaseModel: models.BaseModel{ID: "cv1"}, ProfileID: "p1", StorageKey: key},
		profile: &models.Profile{BaseModel: models.BaseModel{ID: "p1"}},
	}
	queue := &recordingEnqueuer{}
	svc := NewProfileService(repo, store, queue, UploadLimits{})

	require.NoError(t, svc.ProcessCV(context.Background(), "cv1"))

	// Extraction merged the skills and queued a quality rescore
	assert.NotEmpty(t, repo.extractedSkills)
	assert.NotEmpty(t, repo.profile.Skills)
	require.Equal(t, []string{"profile-quality"}, queue.names)
	assert.False(t, repo.qualityScored)

	queue.runAll()
	assert.True(t, repo.qualityScored)
}

func TestProcessCV_NoSkillsFoundQueuesNothing(t *testing.T) {
	store, err := storage.NewLocalStorage(storage.Config{BasePath: t.TempDir()})
	require.NoError(t, err)

	key := "cvs/p2/resume.txt"
	require.NoError(t, store.Save(context.Background(), key, strings.NewReader("General manager."), "text/plain"))

	repo := &stubProfileRepo{
		cv:      &models.CV{BaseModel: models.BaseModel{ID: "cv2"}, ProfileID: "p2", StorageKey: key},
		profile: &models.Profile{BaseModel: models.BaseModel{ID: "p2"}},
	}
	queue := &recordingEnqueuer{}
	svc := NewProfileService(repo, store, queue, UploadLimits{})

	require.NoError(t, svc.ProcessCV(context.Background(), "cv2"))
	assert.Empty(t, queue.names)
}
