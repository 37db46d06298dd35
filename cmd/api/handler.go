package api

import (
	authUsecase "studioflow-backend/internal/auth/usecase"
	calendarDelivery "studioflow-backend/internal/calendar/delivery"
	eventDelivery "studioflow-backend/internal/event/delivery"
	projectDelivery "studioflow-backend/internal/project/delivery"
	taskDelivery "studioflow-backend/internal/task/delivery"
	"studioflow-backend/pkg/realtime"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	authUsecase     authUsecase.AuthUsecase
	hub             *realtime.Hub
	projectHandler  *projectDelivery.ProjectHandler
	taskHandler     *taskDelivery.TaskHandler
	eventHandler    *eventDelivery.EventHandler
	calendarHandler *calendarDelivery.CalendarHandler
}

func NewHandler(
	authUc authUsecase.AuthUsecase,
	hub *realtime.Hub,
	projectHandler *projectDelivery.ProjectHandler,
	taskHandler *taskDelivery.TaskHandler,
	eventHandler *eventDelivery.EventHandler,
	calendarHandler *calendarDelivery.CalendarHandler,
) *Handler {
	return &Handler{
		authUsecase:     authUc,
		hub:             hub,
		projectHandler:  projectHandler,
		taskHandler:     taskHandler,
		eventHandler:    eventHandler,
		calendarHandler: calendarHandler,
	}
}

func (h *Handler) Start(addr string) error {
	r := gin.Default()
	gin.SetMode(gin.ReleaseMode)

	// CORS middleware
	r.Use(func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin != "" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		} else {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	SetupRoutes(r, h.authUsecase, h.hub, h.projectHandler, h.taskHandler, h.eventHandler, h.calendarHandler)

	return r.Run(addr)
}
