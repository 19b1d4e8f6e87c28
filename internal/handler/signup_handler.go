package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jyasskin/920-checkin/internal/model"
	"github.com/jyasskin/920-checkin/internal/response"
	"github.com/jyasskin/920-checkin/internal/service"
	"github.com/jyasskin/920-checkin/internal/validator"
)

// SignupHandler records students paying for classes.
type SignupHandler struct {
	signups *service.SignupService
}

// NewSignupHandler creates a new SignupHandler.
func NewSignupHandler(signups *service.SignupService) *SignupHandler {
	return &SignupHandler{signups: signups}
}

// PresenceEntry is one attended day inside a month signup payload. Role is
// optional; when absent the signup's default role applies.
type PresenceEntry struct {
	Day  string     `json:"day" binding:"required,datetime=2006-01-02"`
	Role model.Role `json:"role" binding:"omitempty,oneof=Lead Follow"`
}

// CreateMonthSignupRequest is the payload for a month signup.
type CreateMonthSignupRequest struct {
	ClassID   int64           `json:"class_id" binding:"required"`
	StudentID int64           `json:"student_id" binding:"required"`
	Role      model.Role      `json:"role" binding:"required,oneof=Lead Follow"`
	Presence  []PresenceEntry `json:"presence" binding:"omitempty,dive"`
}

// CreateDaySignupRequest is the payload for a single-lesson drop-in.
type CreateDaySignupRequest struct {
	ClassID   int64      `json:"class_id" binding:"required"`
	StudentID int64      `json:"student_id" binding:"required"`
	Day       string     `json:"day" binding:"required,datetime=2006-01-02"`
	Role      model.Role `json:"role" binding:"required,oneof=Lead Follow"`
}

// CreateMonthSignup godoc
// POST /api/v1/months/:month/signups/month
// Records a student paying for a month of class.
func (h *SignupHandler) CreateMonthSignup(c *gin.Context) {
	month, ok := h.pathMonth(c)
	if !ok {
		return
	}

	var req CreateMonthSignupRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	signup := &model.Signup{
		Kind:        model.SignupMonth,
		ClassID:     req.ClassID,
		StudentID:   req.StudentID,
		DefaultRole: req.Role,
	}
	for _, p := range req.Presence {
		day, err := model.ParseDate(p.Day)
		if err != nil {
			response.Fail(c, http.StatusBadRequest, response.ErrInvalidPayload)
			return
		}
		signup.Presence = append(signup.Presence, model.Presence{Day: day, Role: p.Role})
	}

	h.create(c, month, signup)
}

// CreateDaySignup godoc
// POST /api/v1/months/:month/signups/day
// Records a drop-in for a single lesson.
func (h *SignupHandler) CreateDaySignup(c *gin.Context) {
	month, ok := h.pathMonth(c)
	if !ok {
		return
	}

	var req CreateDaySignupRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	day, err := model.ParseDate(req.Day)
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidPayload)
		return
	}

	h.create(c, month, &model.Signup{
		Kind:      model.SignupDay,
		ClassID:   req.ClassID,
		StudentID: req.StudentID,
		Day:       day,
		Role:      req.Role,
	})
}

func (h *SignupHandler) create(c *gin.Context, month model.MonthKey, signup *model.Signup) {
	if err := h.signups.Create(c.Request.Context(), month, signup); err != nil {
		if errors.Is(err, service.ErrUnknownReference) {
			response.Fail(c, http.StatusNotFound, response.ErrUnknownReference)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"signup": signup})
}

// pathMonth parses the :month path segment. Unlike the /init_data selector,
// an explicit path month must be well formed.
func (h *SignupHandler) pathMonth(c *gin.Context) (model.MonthKey, bool) {
	month, err := model.ParseMonth(c.Param("month"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidMonth)
		return model.MonthKey{}, false
	}
	return month, true
}
