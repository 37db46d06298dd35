package delivery

import (
	"errors"
	"net/http"
	"strconv"

	"studioflow-backend/internal/calendar/domain"
	"studioflow-backend/internal/calendar/usecase"

	"github.com/gin-gonic/gin"
)

// CalendarHandler handles merged-calendar HTTP requests
type CalendarHandler struct {
	calendarUsecase usecase.CalendarUsecase
}

// NewCalendarHandler creates a new CalendarHandler
func NewCalendarHandler(calendarUsecase usecase.CalendarUsecase) *CalendarHandler {
	return &CalendarHandler{calendarUsecase: calendarUsecase}
}

func filterFromQuery(c *gin.Context) domain.FilterState {
	return domain.FilterState{
		Search:     c.Query("search"),
		Kind:       domain.OccurrenceKind(c.Query("kind")),
		AssigneeID: c.Query("assignee"),
	}
}

// GetOccurrences returns the merged event/task occurrence list
// GET /api/calendar/occurrences
func (h *CalendarHandler) GetOccurrences(c *gin.Context) {
	userID := c.GetString("userID")

	result, err := h.calendarUsecase.GetOccurrences(userID, filterFromQuery(c))
	if err != nil {
		respondCalendarError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetDayIndex returns per-day marker summaries for the month grid
// GET /api/calendar/day-index?month=2024-06
func (h *CalendarHandler) GetDayIndex(c *gin.Context) {
	userID := c.GetString("userID")

	summaries, notices, err := h.calendarUsecase.GetDayIndex(userID, filterFromQuery(c), c.Query("month"))
	if err != nil {
		respondCalendarError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"days":    summaries,
		"notices": notices,
	})
}

// GetDayDetail returns the agenda for one day
// GET /api/calendar/day/:date
func (h *CalendarHandler) GetDayDetail(c *gin.Context) {
	userID := c.GetString("userID")

	detail, err := h.calendarUsecase.GetDayDetail(userID, filterFromQuery(c), c.Param("date"))
	if err != nil {
		respondCalendarError(c, err)
		return
	}

	c.JSON(http.StatusOK, detail)
}

// SearchSuggestions returns ranked occurrence matches for a typed query
// GET /api/search/suggestions?q=launch
func (h *CalendarHandler) SearchSuggestions(c *gin.Context) {
	userID := c.GetString("userID")

	limit, _ := strconv.Atoi(c.Query("limit"))
	suggestions, err := h.calendarUsecase.SearchSuggestions(userID, c.Query("q"), limit)
	if err != nil {
		respondCalendarError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"suggestions": suggestions})
}

// StartDrag begins a drag session for an occurrence
// POST /api/calendar/drag/start
func (h *CalendarHandler) StartDrag(c *gin.Context) {
	userID := c.GetString("userID")

	var req struct {
		OccurrenceID string `json:"occurrence_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session, err := h.calendarUsecase.StartDrag(userID, req.OccurrenceID)
	if err != nil {
		respondCalendarError(c, err)
		return
	}

	c.JSON(http.StatusOK, session)
}

// DragOver records the day currently hovered
// POST /api/calendar/drag/over
func (h *CalendarHandler) DragOver(c *gin.Context) {
	userID := c.GetString("userID")

	var req struct {
		Day string `json:"day" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session, err := h.calendarUsecase.DragOver(userID, req.Day)
	if err != nil {
		respondCalendarError(c, err)
		return
	}

	c.JSON(http.StatusOK, session)
}

// DropDrag ends the drag, producing a pending preview or a no-op reset
// POST /api/calendar/drag/drop
func (h *CalendarHandler) DropDrag(c *gin.Context) {
	userID := c.GetString("userID")

	session, err := h.calendarUsecase.DropDrag(userID)
	if err != nil {
		respondCalendarError(c, err)
		return
	}

	c.JSON(http.StatusOK, session)
}

// ConfirmDrag commits the pending reschedule
// POST /api/calendar/drag/confirm
func (h *CalendarHandler) ConfirmDrag(c *gin.Context) {
	userID := c.GetString("userID")

	preview, err := h.calendarUsecase.ConfirmDrag(userID)
	if err != nil {
		respondCalendarError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Reschedule committed",
		"preview": preview,
	})
}

// CancelDrag discards the drag session without writing
// POST /api/calendar/drag/cancel
func (h *CalendarHandler) CancelDrag(c *gin.Context) {
	userID := c.GetString("userID")

	h.calendarUsecase.CancelDrag(userID)
	c.JSON(http.StatusOK, gin.H{"message": "Drag cancelled"})
}

// Reschedule moves an occurrence to a target day in one call
// POST /api/calendar/reschedule
func (h *CalendarHandler) Reschedule(c *gin.Context) {
	userID := c.GetString("userID")

	var req struct {
		OccurrenceID string `json:"occurrence_id" binding:"required"`
		TargetDay    string `json:"target_day" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	preview, err := h.calendarUsecase.Reschedule(userID, req.OccurrenceID, req.TargetDay)
	if err != nil {
		respondCalendarError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Reschedule committed",
		"preview": preview,
	})
}

func respondCalendarError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, usecase.ErrSourcesUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": err.Error(),
			"retry": true,
		})
	case errors.Is(err, usecase.ErrOccurrenceNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Occurrence not found"})
	case errors.Is(err, usecase.ErrInvalidTargetDay), errors.Is(err, usecase.ErrUnparseableDates):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, usecase.ErrNoActiveDrag), errors.Is(err, usecase.ErrDragNotPending), errors.Is(err, usecase.ErrDragBusy):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
