package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jyasskin/920-checkin/internal/model"
	"github.com/jyasskin/920-checkin/internal/response"
	"github.com/jyasskin/920-checkin/internal/service"
	"github.com/jyasskin/920-checkin/internal/validator"
)

// RosterHandler handles the admin flow for creating top-level records.
type RosterHandler struct {
	roster *service.RosterService
}

// NewRosterHandler creates a new RosterHandler.
func NewRosterHandler(roster *service.RosterService) *RosterHandler {
	return &RosterHandler{roster: roster}
}

// CreateStudent godoc
// POST /api/v1/students
// Adds a student to the roster.
func (h *RosterHandler) CreateStudent(c *gin.Context) {
	var req model.CreateStudentRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	student := &model.Student{Name: req.Name, Email: req.Email}
	if err := h.roster.CreateStudent(c.Request.Context(), student); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"student": student})
}

// CreateClassType godoc
// POST /api/v1/class_types
// Adds a lesson type to the catalog.
func (h *RosterHandler) CreateClassType(c *gin.Context) {
	var req model.CreateClassTypeRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	classType := &model.ClassType{Name: req.Name, Time: req.Time}
	if err := h.roster.CreateClassType(c.Request.Context(), classType); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"class_type": classType})
}
