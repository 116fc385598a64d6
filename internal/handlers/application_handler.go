package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"smarthr_backend/internal/middleware"
	"smarthr_backend/internal/services/dto"
)

type ApplicationHandler struct {
	*BaseHandler
}

func NewApplicationHandler(base *BaseHandler) *ApplicationHandler {
	return &ApplicationHandler{BaseHandler: base}
}

// Apply godoc
// @Summary Apply to a job
// @Description Creates an application and schedules match scoring
// @Tags applications
// @Accept json
// @Produce json
// @Param request body dto.CreateApplicationRequest true "Application data"
// @Success 201 {object} models.Application
// @Failure 400 {object} apperrors.ErrorResponse
// @Failure 409 {object} apperrors.ErrorResponse
// @Router /applications [post]
func (h *ApplicationHandler) Apply(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateApplicationRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	app, err := h.Services(c).ApplicationService.Apply(userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, app)
}

// GetApplication returns one application. Candidates see their own with
// employer notes stripped, employers see applications to their jobs.
func (h *ApplicationHandler) GetApplication(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	app, err := h.Services(c).ApplicationService.Get(userID, middleware.GetUserRole(c), c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, app)
}

// ListMine returns the candidate's own applications.
func (h *ApplicationHandler) ListMine(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var query dto.ApplicationListQuery
	if !h.BindAndValidateQuery(c, &query) {
		return
	}

	resp, err := h.Services(c).ApplicationService.ListMine(userID, &query)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// ListForJob returns applications to one of the employer's postings,
// ordered by match score.
func (h *ApplicationHandler) ListForJob(c *gin.Context) {
	employerID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var query dto.ApplicationListQuery
	if !h.BindAndValidateQuery(c, &query) {
		return
	}

	resp, err := h.Services(c).ApplicationService.ListForJob(employerID, c.Param("id"), &query)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Shortlist returns the ten best scored candidates for a posting.
func (h *ApplicationHandler) Shortlist(c *gin.Context) {
	employerID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	apps, err := h.Services(c).ApplicationService.Shortlist(employerID, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"applications": apps})
}

func (h *ApplicationHandler) UpdateStatus(c *gin.Context) {
	employerID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateApplicationStatusRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	app, err := h.Services(c).ApplicationService.UpdateStatus(employerID, c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, app)
}

// BulkUpdateStatus moves a batch of applications to one status, for
// example rejecting everyone left after a hire.
func (h *ApplicationHandler) BulkUpdateStatus(c *gin.Context) {
	employerID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.BulkStatusUpdateRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.Services(c).ApplicationService.BulkUpdateStatus(employerID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *ApplicationHandler) Withdraw(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	app, err := h.Services(c).ApplicationService.Withdraw(userID, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, app)
}

func (h *ApplicationHandler) AddNote(c *gin.Context) {
	employerID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.AddNoteRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	note, err := h.Services(c).ApplicationService.AddNote(employerID, c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, note)
}

func (h *ApplicationHandler) ListNotes(c *gin.Context) {
	employerID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	notes, err := h.Services(c).ApplicationService.ListNotes(employerID, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"notes": notes})
}
