package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nexonoperations/tutorbill/internal/api/dto"
	ierr "github.com/nexonoperations/tutorbill/internal/errors"
	"github.com/nexonoperations/tutorbill/internal/logger"
	"github.com/nexonoperations/tutorbill/internal/service"
)

type SessionHandler struct {
	service service.SessionService
	log     *logger.Logger
}

func NewSessionHandler(service service.SessionService, log *logger.Logger) *SessionHandler {
	return &SessionHandler{service: service, log: log}
}

// @Summary Record a tutoring session
// @Description Record a tutoring session for a student
// @Tags Sessions
// @Accept json
// @Produce json
// @Param id path string true "Student ID"
// @Param session body dto.CreateSessionRequest true "Session"
// @Success 201 {object} dto.SessionResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /students/{id}/sessions [post]
func (h *SessionHandler) CreateSession(c *gin.Context) {
	var req dto.CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.CreateSession(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// @Summary Get a session
// @Description Get a session
// @Tags Sessions
// @Accept json
// @Produce json
// @Param id path string true "Student ID"
// @Param session_id path string true "Session ID"
// @Success 200 {object} dto.SessionResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /students/{id}/sessions/{session_id} [get]
func (h *SessionHandler) GetSession(c *gin.Context) {
	resp, err := h.service.GetSession(c.Request.Context(), c.Param("id"), c.Param("session_id"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary List a student's sessions
// @Description List all sessions for a student, billed ones included
// @Tags Sessions
// @Accept json
// @Produce json
// @Param id path string true "Student ID"
// @Success 200 {object} dto.ListSessionsResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /students/{id}/sessions [get]
func (h *SessionHandler) ListSessions(c *gin.Context) {
	resp, err := h.service.ListSessions(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Delete a session
// @Description Delete a session
// @Tags Sessions
// @Accept json
// @Produce json
// @Param id path string true "Student ID"
// @Param session_id path string true "Session ID"
// @Success 204 "No Content"
// @Failure 404 {object} ierr.ErrorResponse
// @Router /students/{id}/sessions/{session_id} [delete]
func (h *SessionHandler) DeleteSession(c *gin.Context) {
	if err := h.service.DeleteSession(c.Request.Context(), c.Param("id"), c.Param("session_id")); err != nil {
		c.Error(err)
		return
	}

	c.Status(http.StatusNoContent)
}
