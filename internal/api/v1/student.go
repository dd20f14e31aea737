package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nexonoperations/tutorbill/internal/api/dto"
	ierr "github.com/nexonoperations/tutorbill/internal/errors"
	"github.com/nexonoperations/tutorbill/internal/logger"
	"github.com/nexonoperations/tutorbill/internal/service"
)

type StudentHandler struct {
	service service.StudentService
	log     *logger.Logger
}

func NewStudentHandler(service service.StudentService, log *logger.Logger) *StudentHandler {
	return &StudentHandler{service: service, log: log}
}

// @Summary Create a student
// @Description Create a student
// @Tags Students
// @Accept json
// @Produce json
// @Param student body dto.CreateStudentRequest true "Student"
// @Success 201 {object} dto.StudentResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /students [post]
func (h *StudentHandler) CreateStudent(c *gin.Context) {
	var req dto.CreateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.CreateStudent(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// @Summary Get a student
// @Description Get a student
// @Tags Students
// @Accept json
// @Produce json
// @Param id path string true "Student ID"
// @Success 200 {object} dto.StudentResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /students/{id} [get]
func (h *StudentHandler) GetStudent(c *gin.Context) {
	resp, err := h.service.GetStudent(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary List students
// @Description List students
// @Tags Students
// @Accept json
// @Produce json
// @Success 200 {object} dto.ListStudentsResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /students [get]
func (h *StudentHandler) ListStudents(c *gin.Context) {
	resp, err := h.service.ListStudents(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Update a student
// @Description Update a student
// @Tags Students
// @Accept json
// @Produce json
// @Param id path string true "Student ID"
// @Param student body dto.UpdateStudentRequest true "Student"
// @Success 200 {object} dto.StudentResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /students/{id} [put]
func (h *StudentHandler) UpdateStudent(c *gin.Context) {
	var req dto.UpdateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.UpdateStudent(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Delete a student
// @Description Delete a student
// @Tags Students
// @Accept json
// @Produce json
// @Param id path string true "Student ID"
// @Success 204 "No Content"
// @Failure 404 {object} ierr.ErrorResponse
// @Router /students/{id} [delete]
func (h *StudentHandler) DeleteStudent(c *gin.Context) {
	if err := h.service.DeleteStudent(c.Request.Context(), c.Param("id")); err != nil {
		c.Error(err)
		return
	}

	c.Status(http.StatusNoContent)
}
