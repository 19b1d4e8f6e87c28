package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/jyasskin/920-checkin/internal/model"
	"github.com/jyasskin/920-checkin/internal/response"
	"github.com/jyasskin/920-checkin/internal/service"
)

// ScheduleHandler serves the month document consumed by the check-in client.
type ScheduleHandler struct {
	schedule *service.ScheduleService
	log      zerolog.Logger
	now      func() time.Time
}

// NewScheduleHandler creates a new ScheduleHandler.
func NewScheduleHandler(schedule *service.ScheduleService, log zerolog.Logger) *ScheduleHandler {
	return &ScheduleHandler{
		schedule: schedule,
		log:      log.With().Str("component", "schedule_handler").Logger(),
		now:      time.Now,
	}
}

// GetInitData godoc
// GET /init_data?month=YYYY-MM&prettyprint=x
// Returns the raw month document {month, students, class_types, classes,
// signups}. An absent or malformed month selector resolves to the current
// month rather than failing. prettyprint toggles indented output.
func (h *ScheduleHandler) GetInitData(c *gin.Context) {
	month := h.resolveMonth(c.Query("month"))

	doc, err := h.schedule.MonthData(c.Request.Context(), month)
	if err != nil {
		h.log.Error().Err(err).Str("month", month.String()).Msg("month data assembly failed")
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	if c.Query("prettyprint") != "" {
		c.IndentedJSON(http.StatusOK, doc)
		return
	}
	c.JSON(http.StatusOK, doc)
}

// resolveMonth parses a "YYYY-MM" selector, degrading to the current server
// month when the selector is absent or malformed.
func (h *ScheduleHandler) resolveMonth(selector string) model.MonthKey {
	if selector != "" {
		if key, err := model.ParseMonth(selector); err == nil {
			return key
		}
		h.log.Debug().Str("selector", selector).Msg("malformed month selector, using current month")
	}
	return model.MonthOf(h.now())
}
