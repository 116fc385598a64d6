package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"smarthr_backend/internal/middleware"
	"smarthr_backend/internal/models"
	"smarthr_backend/internal/services/dto"
)

type InterviewHandler struct {
	*BaseHandler
}

func NewInterviewHandler(base *BaseHandler) *InterviewHandler {
	return &InterviewHandler{BaseHandler: base}
}

func (h *InterviewHandler) Schedule(c *gin.Context) {
	employerID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.ScheduleInterviewRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	interview, err := h.Services(c).InterviewService.Schedule(employerID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, interview)
}

// GetInterview returns one interview. Candidates get a copy with the
// interviewer's private feedback stripped.
func (h *InterviewHandler) GetInterview(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	interview, err := h.Services(c).InterviewService.Get(userID, middleware.GetUserRole(c), c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, interview)
}

// ListInterviews routes by role: candidates see interviews for their
// applications, employers see interviews for their postings.
func (h *InterviewHandler) ListInterviews(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var query dto.InterviewListQuery
	if !h.BindAndValidateQuery(c, &query) {
		return
	}

	svc := h.Services(c).InterviewService

	var resp *dto.InterviewListResponse
	var err error
	if middleware.GetUserRole(c) == models.UserRoleEmployer {
		resp, err = svc.ListForEmployer(userID, &query)
	} else {
		resp, err = svc.ListForCandidate(userID, &query)
	}
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *InterviewHandler) Reschedule(c *gin.Context) {
	employerID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.RescheduleInterviewRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	interview, err := h.Services(c).InterviewService.Reschedule(employerID, c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, interview)
}

func (h *InterviewHandler) Cancel(c *gin.Context) {
	employerID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	interview, err := h.Services(c).InterviewService.Cancel(employerID, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, interview)
}

func (h *InterviewHandler) Complete(c *gin.Context) {
	employerID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CompleteInterviewRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	interview, err := h.Services(c).InterviewService.Complete(employerID, c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, interview)
}

func (h *InterviewHandler) AddQuestion(c *gin.Context) {
	employerID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.AddQuestionRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	question, err := h.Services(c).InterviewService.AddQuestion(employerID, c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, question)
}

func (h *InterviewHandler) AnswerQuestion(c *gin.Context) {
	employerID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.AnswerQuestionRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	question, err := h.Services(c).InterviewService.AnswerQuestion(employerID, c.Param("id"), c.Param("question_id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, question)
}

// LeaveFeedback lets the candidate rate a completed interview.
func (h *InterviewHandler) LeaveFeedback(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.InterviewFeedbackRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	feedback, err := h.Services(c).InterviewService.LeaveFeedback(userID, c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, feedback)
}
