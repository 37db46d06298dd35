package delivery

import (
	"net/http"

	"studioflow-backend/internal/event/usecase"

	"github.com/gin-gonic/gin"
)

// EventHandler handles calendar-event HTTP requests
type EventHandler struct {
	eventUsecase usecase.EventUsecase
}

// NewEventHandler creates a new EventHandler
func NewEventHandler(eventUsecase usecase.EventUsecase) *EventHandler {
	return &EventHandler{eventUsecase: eventUsecase}
}

// GetEvents returns all events the user created or attends
// GET /api/events
func (h *EventHandler) GetEvents(c *gin.Context) {
	userID := c.GetString("userID")

	events, err := h.eventUsecase.GetUserEvents(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"events": events,
		"total":  len(events),
	})
}

// GetEventByID returns a specific event
// GET /api/events/:id
func (h *EventHandler) GetEventByID(c *gin.Context) {
	userID := c.GetString("userID")
	eventID := c.Param("id")

	event, err := h.eventUsecase.GetEventByID(userID, eventID)
	if err != nil {
		respondEventError(c, err)
		return
	}

	c.JSON(http.StatusOK, event)
}

// CreateEvent creates a new calendar event
// POST /api/events
func (h *EventHandler) CreateEvent(c *gin.Context) {
	userID := c.GetString("userID")

	var req usecase.CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	event, err := h.eventUsecase.CreateEvent(userID, req)
	if err != nil {
		switch err.Error() {
		case "invalid start date", "invalid end date", "end date before start date", "invalid event kind":
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusCreated, event)
}

// UpdateEvent updates an existing event
// PUT /api/events/:id
func (h *EventHandler) UpdateEvent(c *gin.Context) {
	userID := c.GetString("userID")
	eventID := c.Param("id")

	var updates usecase.EventUpdateRequest
	if err := c.ShouldBindJSON(&updates); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	event, err := h.eventUsecase.UpdateEvent(userID, eventID, updates)
	if err != nil {
		respondEventError(c, err)
		return
	}

	c.JSON(http.StatusOK, event)
}

// DeleteEvent deletes an event
// DELETE /api/events/:id
func (h *EventHandler) DeleteEvent(c *gin.Context) {
	userID := c.GetString("userID")
	eventID := c.Param("id")

	if err := h.eventUsecase.DeleteEvent(userID, eventID); err != nil {
		respondEventError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Event deleted successfully"})
}

// AddAttendee invites a team member to an event
// POST /api/events/:id/attendees
func (h *EventHandler) AddAttendee(c *gin.Context) {
	userID := c.GetString("userID")
	eventID := c.Param("id")

	var req struct {
		UserID string `json:"user_id" binding:"required"`
		Role   string `json:"role"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.eventUsecase.AddAttendee(userID, eventID, req.UserID, req.Role); err != nil {
		respondEventError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Attendee added"})
}

// RemoveAttendee removes a team member from an event
// DELETE /api/events/:id/attendees/:userId
func (h *EventHandler) RemoveAttendee(c *gin.Context) {
	userID := c.GetString("userID")
	eventID := c.Param("id")
	attendeeID := c.Param("userId")

	if err := h.eventUsecase.RemoveAttendee(userID, eventID, attendeeID); err != nil {
		respondEventError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Attendee removed"})
}

// RespondToEvent records the authenticated user's RSVP
// PATCH /api/events/:id/response
func (h *EventHandler) RespondToEvent(c *gin.Context) {
	userID := c.GetString("userID")
	eventID := c.Param("id")

	var req struct {
		Response string `json:"response" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.eventUsecase.RespondToEvent(userID, eventID, req.Response); err != nil {
		switch err.Error() {
		case "invalid response status":
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case "not an attendee":
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Response recorded"})
}

func respondEventError(c *gin.Context, err error) {
	switch err.Error() {
	case "event not found":
		c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
	case "unauthorized":
		c.JSON(http.StatusForbidden, gin.H{"error": "Unauthorized"})
	case "invalid start date", "invalid end date", "end date before start date", "invalid event kind":
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
