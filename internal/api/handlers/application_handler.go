package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/linskybing/programhub/internal/application"
	"github.com/linskybing/programhub/internal/domain/program"
	"github.com/linskybing/programhub/pkg/logger"
	"github.com/linskybing/programhub/pkg/response"
	"github.com/linskybing/programhub/pkg/utils"
)

type ApplicationHandler struct {
	lifecycle *application.LifecycleService
	sessions  *application.Sessions
}

func NewApplicationHandler(lifecycle *application.LifecycleService, sessions *application.Sessions) *ApplicationHandler {
	return &ApplicationHandler{lifecycle: lifecycle, sessions: sessions}
}

// CreateDraft godoc
// @Summary Create a draft application
// @Tags applications
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body program.CreateDraftDTO true "Draft"
// @Success 201 {object} program.Application
// @Failure 400 {object} response.ErrorResponse
// @Failure 422 {object} response.ErrorResponse
// @Router /applications [post]
func (h *ApplicationHandler) CreateDraft(c *gin.Context) {
	var input program.CreateDraftDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}

	userID, ok := currentUser(c)
	if !ok {
		return
	}

	app, err := h.lifecycle.CreateDraft(c.Request.Context(), h.sessions.For(userID), userID, input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, app)
}

// ListMine godoc
// @Summary List the caller's applications, newest first
// @Tags applications
// @Security BearerAuth
// @Produce json
// @Success 200 {array} program.Application
// @Failure 503 {object} response.ErrorResponse
// @Router /applications [get]
func (h *ApplicationHandler) ListMine(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	apps, err := h.lifecycle.ListForOwner(c.Request.Context(), h.sessions.For(userID), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, apps)
}

// Search godoc
// @Summary Search the loaded applications by program name and status
// @Tags applications
// @Security BearerAuth
// @Produce json
// @Param q query string false "Case-insensitive program name fragment"
// @Param status query string false "Status or all"
// @Success 200 {array} program.Application
// @Failure 400 {object} response.ErrorResponse
// @Router /applications/search [get]
func (h *ApplicationHandler) Search(c *gin.Context) {
	var input program.QueryDTO
	if err := c.ShouldBindQuery(&input); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}
	if !application.ValidStatusFilter(input.Status) {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "unknown status filter"})
		return
	}

	store, ok := h.loadedStore(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, store.Query(input.Q, input.Status))
}

// Buckets godoc
// @Summary Group the loaded applications into drafts, active and completed
// @Tags applications
// @Security BearerAuth
// @Produce json
// @Success 200 {object} program.BucketsDTO
// @Router /applications/buckets [get]
func (h *ApplicationHandler) Buckets(c *gin.Context) {
	store, ok := h.loadedStore(c)
	if !ok {
		return
	}

	b := store.GroupByBucket()
	c.JSON(http.StatusOK, program.BucketsDTO{
		Drafts:    b.Drafts,
		Active:    b.Active,
		Completed: b.Completed,
		Total:     b.Total(),
	})
}

// GetByID godoc
// @Summary Get an application from the caller's loaded session
// @Tags applications
// @Security BearerAuth
// @Produce json
// @Param id path string true "Application ID"
// @Success 200 {object} program.Application
// @Failure 404 {object} response.ErrorResponse
// @Router /applications/{id} [get]
func (h *ApplicationHandler) GetByID(c *gin.Context) {
	id, ok := applicationID(c)
	if !ok {
		return
	}
	store, ok := h.loadedStore(c)
	if !ok {
		return
	}

	app, err := store.GetByID(id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, app)
}

// UpdateDraft godoc
// @Summary Replace the form data of a draft
// @Tags applications
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Application ID"
// @Param request body program.UpdateDraftDTO true "Draft changes"
// @Success 200 {object} program.Application
// @Failure 403 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Failure 409 {object} response.ErrorResponse
// @Router /applications/{id} [put]
func (h *ApplicationHandler) UpdateDraft(c *gin.Context) {
	id, ok := applicationID(c)
	if !ok {
		return
	}
	var input program.UpdateDraftDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	app, err := h.lifecycle.UpdateDraft(c.Request.Context(), h.sessions.For(userID), id, userID, input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, app)
}

// Submit godoc
// @Summary Submit a draft
// @Tags applications
// @Security BearerAuth
// @Produce json
// @Param id path string true "Application ID"
// @Success 200 {object} program.Application
// @Failure 403 {object} response.ErrorResponse
// @Failure 409 {object} response.ErrorResponse
// @Failure 422 {object} response.ErrorResponse
// @Router /applications/{id}/submit [post]
func (h *ApplicationHandler) Submit(c *gin.Context) {
	h.ownerTransition(c, h.lifecycle.Submit)
}

// Withdraw godoc
// @Summary Withdraw a submitted application
// @Tags applications
// @Security BearerAuth
// @Produce json
// @Param id path string true "Application ID"
// @Success 200 {object} program.Application
// @Failure 403 {object} response.ErrorResponse
// @Failure 409 {object} response.ErrorResponse
// @Router /applications/{id}/withdraw [post]
func (h *ApplicationHandler) Withdraw(c *gin.Context) {
	h.ownerTransition(c, h.lifecycle.Withdraw)
}

// DeleteDraft godoc
// @Summary Delete a draft
// @Tags applications
// @Security BearerAuth
// @Produce json
// @Param id path string true "Application ID"
// @Success 200 {object} response.MessageResponse
// @Failure 403 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Failure 409 {object} response.ErrorResponse
// @Router /applications/{id} [delete]
func (h *ApplicationHandler) DeleteDraft(c *gin.Context) {
	id, ok := applicationID(c)
	if !ok {
		return
	}
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	if err := h.lifecycle.DeleteDraft(c.Request.Context(), h.sessions.For(userID), id, userID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.MessageResponse{Message: "application deleted"})
}

// History godoc
// @Summary List the status changes of an application
// @Tags applications
// @Security BearerAuth
// @Produce json
// @Param id path string true "Application ID"
// @Success 200 {array} program.StatusChange
// @Failure 403 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /applications/{id}/history [get]
func (h *ApplicationHandler) History(c *gin.Context) {
	id, ok := applicationID(c)
	if !ok {
		return
	}
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	changes, err := h.lifecycle.History(c.Request.Context(), id, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, changes)
}

// MarkUnderReview godoc
// @Summary Move a submitted application under review (Admin only)
// @Tags admin
// @Security BearerAuth
// @Produce json
// @Param id path string true "Application ID"
// @Success 200 {object} program.Application
// @Failure 403 {object} response.ErrorResponse
// @Failure 409 {object} response.ErrorResponse
// @Router /admin/applications/{id}/review [put]
func (h *ApplicationHandler) MarkUnderReview(c *gin.Context) {
	id, ok := applicationID(c)
	if !ok {
		return
	}
	actorID, ok := currentUser(c)
	if !ok {
		return
	}

	app, err := h.lifecycle.MarkUnderReview(c.Request.Context(), id, actorID)
	if err != nil {
		respondError(c, err)
		return
	}

	h.sessions.Apply(*app)
	c.JSON(http.StatusOK, app)
}

// Decide godoc
// @Summary Accept or reject an application under review (Admin only)
// @Tags admin
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Application ID"
// @Param request body program.DecisionDTO true "Decision"
// @Success 200 {object} program.Application
// @Failure 400 {object} response.ErrorResponse
// @Failure 409 {object} response.ErrorResponse
// @Router /admin/applications/{id}/decision [put]
func (h *ApplicationHandler) Decide(c *gin.Context) {
	id, ok := applicationID(c)
	if !ok {
		return
	}
	var input program.DecisionDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}
	actorID, ok := currentUser(c)
	if !ok {
		return
	}

	app, err := h.lifecycle.Decide(c.Request.Context(), id, actorID, program.Status(input.Status), input.Note)
	if err != nil {
		respondError(c, err)
		return
	}

	h.sessions.Apply(*app)
	c.JSON(http.StatusOK, app)
}

type ownerTransitionFunc func(ctx context.Context, store *application.Store, id string, ownerID uint) (*program.Application, error)

func (h *ApplicationHandler) ownerTransition(c *gin.Context, fn ownerTransitionFunc) {
	id, ok := applicationID(c)
	if !ok {
		return
	}
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	app, err := fn(c.Request.Context(), h.sessions.For(userID), id, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, app)
}

// loadedStore returns the caller's session, loading it once if this is the
// session's first read.
func (h *ApplicationHandler) loadedStore(c *gin.Context) (*application.Store, bool) {
	userID, ok := currentUser(c)
	if !ok {
		return nil, false
	}
	store := h.sessions.For(userID)
	if !store.Loaded() {
		if _, err := h.lifecycle.ListForOwner(c.Request.Context(), store, userID); err != nil {
			respondError(c, err)
			return nil, false
		}
	}
	return store, true
}

func currentUser(c *gin.Context) (uint, bool) {
	userID, err := utils.GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: "Unauthorized"})
		return 0, false
	}
	return userID, true
}

func applicationID(c *gin.Context) (string, bool) {
	id, err := utils.ParseUUIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "Invalid ID"})
		return "", false
	}
	return id, true
}

func respondError(c *gin.Context, err error) {
	var (
		transitionErr *program.TransitionError
		validationErr *program.ValidationError
	)
	switch {
	case errors.Is(err, program.ErrForbidden):
		c.JSON(http.StatusForbidden, response.ErrorResponse{Error: err.Error()})
	case errors.Is(err, program.ErrNotFound):
		c.JSON(http.StatusNotFound, response.ErrorResponse{Error: err.Error()})
	case errors.As(err, &transitionErr):
		c.JSON(http.StatusConflict, response.ErrorResponse{
			Error:  err.Error(),
			Fields: map[string]string{"from": string(transitionErr.From), "to": string(transitionErr.To)},
		})
	case errors.As(err, &validationErr):
		c.JSON(http.StatusUnprocessableEntity, response.ErrorResponse{Error: program.ErrValidation.Error(), Fields: validationErr.Fields})
	case program.IsGatewayError(err):
		logger.For("http").WithError(err).WithField("path", c.FullPath()).Error("storage call failed")
		c.JSON(http.StatusServiceUnavailable, response.ErrorResponse{Error: "storage unavailable"})
	default:
		logger.For("http").WithError(err).WithField("path", c.FullPath()).Error("unexpected error")
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{Error: "internal server error"})
	}
}
