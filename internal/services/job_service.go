package services

import (
	"sort"
	"time"

	"github.com/lib/pq"

	"smarthr_backend/internal/algorithms"
	"smarthr_backend/internal/models"
	"smarthr_backend/internal/repositories"
	"smarthr_backend/internal/services/dto"
	"smarthr_backend/pkg/apperrors"
)

const (
	recommendationPool     = 20
	recommendationLimit    = 10
	recommendationMinScore = 50.0
)

type JobService interface {
	Create(employerID string, req *dto.CreateJobRequest) (*models.Job, error)
	Update(employerID, jobID string, req *dto.UpdateJobRequest) (*models.Job, error)
	Publish(employerID, jobID string) (*models.Job, error)
	Close(employerID, jobID string, filled bool) (*models.Job, error)
	Delete(employerID, jobID string) error

	Get(jobID string, viewerID *string, viewerIP string) (*models.Job, error)
	List(query *dto.JobListQuery) (*dto.JobListResponse, error)
	ListByEmployer(employerID string, page, pageSize int) (*dto.JobListResponse, error)
	Stats(employerID, jobID string) (*dto.JobStatsResponse, error)

	Recommendations(userID string) ([]dto.JobRecommendation, error)
}

type JobServiceImpl struct {
	jobRepo     repositories.JobRepository
	profileRepo repositories.ProfileRepository
}

func NewJobService(jobRepo repositories.JobRepository, profileRepo repositories.ProfileRepository) JobService {
	return &JobServiceImpl{jobRepo: jobRepo, profileRepo: profileRepo}
}

func (s *JobServiceImpl) Create(employerID string, req *dto.CreateJobRequest) (*models.Job, error) {
	if req.SalaryMin != nil && req.SalaryMax != nil && *req.SalaryMin > *req.SalaryMax {
		return nil, apperrors.NewBadRequestError("salary_min cannot exceed salary_max")
	}

	job := &models.Job{
		EmployerID:         employerID,
		Title:              req.Title,
		Description:        req.Description,
		Requirements:       pq.StringArray(req.Requirements),
		Responsibilities:   req.Responsibilities,
		Location:           req.Location,
		IsRemote:           req.IsRemote,
		SalaryMin:          req.SalaryMin,
		SalaryMax:          req.SalaryMax,
		RequiredSkills:     pq.StringArray(req.RequiredSkills),
		PreferredSkills:    pq.StringArray(req.PreferredSkills),
		ExperienceYearsMin: req.ExperienceYearsMin,
		ExperienceYearsMax: req.ExperienceYearsMax,
		Status:             models.JobStatusDraft,
		Deadline:           req.Deadline,
	}
	if req.JobType != "" {
		job.JobType = req.JobType
	}
	if req.SalaryCurrency != "" {
		job.SalaryCurrency = req.SalaryCurrency
	}

	if err := s.jobRepo.Create(job); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return job, nil
}

func (s *JobServiceImpl) Update(employerID, jobID string, req *dto.UpdateJobRequest) (*models.Job, error) {
	job, err := s.authorizeJob(employerID, jobID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		job.Title = *req.Title
	}
	if req.Description != nil {
		job.Description = *req.Description
	}
	if req.Requirements != nil {
		job.Requirements = pq.StringArray(req.Requirements)
	}
	if req.Responsibilities != nil {
		job.Responsibilities = *req.Responsibilities
	}
	if req.Location != nil {
		job.Location = *req.Location
	}
	if req.IsRemote != nil {
		job.IsRemote = *req.IsRemote
	}
	if req.JobType != nil {
		job.JobType = *req.JobType
	}
	if req.SalaryMin != nil {
		job.SalaryMin = req.SalaryMin
	}
	if req.SalaryMax != nil {
		job.SalaryMax = req.SalaryMax
	}
	if req.SalaryCurrency != nil {
		job.SalaryCurrency = *req.SalaryCurrency
	}
	if req.RequiredSkills != nil {
		job.RequiredSkills = pq.StringArray(req.RequiredSkills)
	}
	if req.PreferredSkills != nil {
		job.PreferredSkills = pq.StringArray(req.PreferredSkills)
	}
	if req.ExperienceYearsMin != nil {
		job.ExperienceYearsMin = *req.ExperienceYearsMin
	}
	if req.ExperienceYearsMax != nil {
		job.ExperienceYearsMax = req.ExperienceYearsMax
	}
	if req.Deadline != nil {
		job.Deadline = req.Deadline
	}

	if job.SalaryMin != nil && job.SalaryMax != nil && *job.SalaryMin > *job.SalaryMax {
		return nil, apperrors.NewBadRequestError("salary_min cannot exceed salary_max")
	}

	if err := s.jobRepo.Update(job); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return job, nil
}

func (s *JobServiceImpl) Publish(employerID, jobID string) (*models.Job, error) {
	job, err := s.authorizeJob(employerID, jobID)
	if err != nil {
		return nil, err
	}

	if job.Status != models.JobStatusDraft {
		return nil, apperrors.ErrJobNotDraft
	}

	now := time.Now()
	job.Status = models.JobStatusOpen
	job.PublishedAt = &now

	if err := s.jobRepo.Update(job); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return job, nil
}

func (s *JobServiceImpl) Close(employerID, jobID string, filled bool) (*models.Job, error) {
	job, err := s.authorizeJob(employerID, jobID)
	if err != nil {
		return nil, err
	}

	if job.Status != models.JobStatusOpen {
		return nil, apperrors.ErrJobNotOpen
	}

	if filled {
		job.Status = models.JobStatusFilled
	} else {
		job.Status = models.JobStatusClosed
	}

	if err := s.jobRepo.Update(job); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return job, nil
}

func (s *JobServiceImpl) Delete(employerID, jobID string) error {
	job, err := s.authorizeJob(employerID, jobID)
	if err != nil {
		return err
	}

	// Published postings are closed, not deleted, to preserve history
	if job.Status != models.JobStatusDraft {
		return apperrors.ErrJobNotDraft
	}

	if err := s.jobRepo.Delete(jobID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *JobServiceImpl) Get(jobID string, viewerID *string, viewerIP string) (*models.Job, error) {
	job, err := s.jobRepo.FindByID(jobID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrJobNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	// Drafts exist only for their owner. Closed and filled jobs stay
	// reachable for applicants holding a link.
	if job.Status == models.JobStatusDraft && (viewerID == nil || *viewerID != job.EmployerID) {
		return nil, apperrors.ErrNotFound(repositories.ErrJobNotFound)
	}

	// Views only count on live postings; the owner browsing their own
	// posting does not count either.
	if job.IsActive() && (viewerID == nil || *viewerID != job.EmployerID) {
		view := &models.JobView{JobID: job.ID, UserID: viewerID, IPAddress: viewerIP}
		if err := s.jobRepo.RecordView(view); err == nil {
			job.ViewsCount++
		}
	}

	return job, nil
}

func (s *JobServiceImpl) List(query *dto.JobListQuery) (*dto.JobListResponse, error) {
	filter := repositories.JobFilter{
		Search:          query.Search,
		Location:        query.Location,
		JobType:         query.JobType,
		IsRemote:        query.IsRemote,
		SalaryMin:       query.SalaryMin,
		Skills:          query.Skills,
		ExperienceYears: query.ExperienceYears,
		Status:          models.JobStatusOpen,
		Page:            query.Page,
		PageSize:        query.PageSize,
	}

	jobs, total, err := s.jobRepo.FindWithFilter(filter)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.JobListResponse{
		Jobs:     jobs,
		Total:    total,
		Page:     normalizePage(query.Page),
		PageSize: normalizePageSize(query.PageSize),
	}, nil
}

func (s *JobServiceImpl) ListByEmployer(employerID string, page, pageSize int) (*dto.JobListResponse, error) {
	page = normalizePage(page)
	pageSize = normalizePageSize(pageSize)

	jobs, total, err := s.jobRepo.ListByEmployer(employerID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.JobListResponse{
		Jobs:     jobs,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

func (s *JobServiceImpl) Stats(employerID, jobID string) (*dto.JobStatsResponse, error) {
	if _, err := s.authorizeJob(employerID, jobID); err != nil {
		return nil, err
	}

	stats, err := s.jobRepo.GetStats(jobID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.JobStatsResponse{JobID: jobID, Stats: stats}, nil
}

// Recommendations scores the newest open jobs against the candidate's
// profile and returns the best matches above the cutoff.
func (s *JobServiceImpl) Recommendations(userID string) ([]dto.JobRecommendation, error) {
	profile, err := s.profileRepo.FindByUserID(userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrProfileNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	jobs, err := s.jobRepo.ListOpenJobs(recommendationPool)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	recommendations := make([]dto.JobRecommendation, 0, len(jobs))
	for i := range jobs {
		job := &jobs[i]
		score, analysis := algorithms.CalculateMatchScore(profile, job)
		if score < recommendationMinScore {
			continue
		}

		rec := dto.JobRecommendation{
			JobID:          job.ID,
			Title:          job.Title,
			Location:       job.Location,
			MatchScore:     score,
			MatchingSkills: analysis.MatchingSkills,
		}
		if job.Employer != nil {
			rec.Company = job.Employer.FullName
		}
		recommendations = append(recommendations, rec)
	}

	sort.Slice(recommendations, func(i, j int) bool {
		return recommendations[i].MatchScore > recommendations[j].MatchScore
	})

	if len(recommendations) > recommendationLimit {
		recommendations = recommendations[:recommendationLimit]
	}
	return recommendations, nil
}

func (s *JobServiceImpl) authorizeJob(employerID, jobID string) (*models.Job, error) {
	job, err := s.jobRepo.FindByID(jobID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrJobNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	if job.EmployerID != employerID {
		return nil, apperrors.ErrInsufficientPermissions
	}
	return job, nil
}

func normalizePage(page int) int {
	if page < 1 {
		return 1
	}
	return page
}

func normalizePageSize(pageSize int) int {
	if pageSize < 1 || pageSize > 100 {
		return 20
	}
	return pageSize
}
