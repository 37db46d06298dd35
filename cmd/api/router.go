package api

import (
	"net/http"

	"studioflow-backend/internal/auth/delivery"
	authUsecase "studioflow-backend/internal/auth/usecase"
	calendarDelivery "studioflow-backend/internal/calendar/delivery"
	eventDelivery "studioflow-backend/internal/event/delivery"
	projectDelivery "studioflow-backend/internal/project/delivery"
	taskDelivery "studioflow-backend/internal/task/delivery"
	"studioflow-backend/pkg/realtime"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(
	r *gin.Engine,
	authUc authUsecase.AuthUsecase,
	hub *realtime.Hub,
	projectHandler *projectDelivery.ProjectHandler,
	taskHandler *taskDelivery.TaskHandler,
	eventHandler *eventDelivery.EventHandler,
	calendarHandler *calendarDelivery.CalendarHandler,
) {
	authHandler := delivery.NewAuthHandler(authUc)

	api := r.Group("/api")
	{
		// Health check (no auth required)
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		// WebSocket endpoint for live calendar updates
		api.GET("/ws", delivery.AuthMiddleware(authUc), func(c *gin.Context) {
			userID := c.GetString("userID")
			hub.Serve(c.Writer, c.Request, userID)
		})

		// Auth routes
		auth := api.Group("/auth")
		{
			auth.POST("/login", authHandler.Login)
			auth.POST("/register", authHandler.Register)
			auth.POST("/refresh", authHandler.RefreshToken)
			auth.GET("/me", delivery.AuthMiddleware(authUc), authHandler.Me)
			auth.POST("/logout", authHandler.Logout)
		}

		// Team directory (protected)
		api.GET("/team", delivery.AuthMiddleware(authUc), authHandler.ListTeam)

		// Device token routes (protected)
		devices := api.Group("/devices")
		devices.Use(delivery.AuthMiddleware(authUc))
		{
			devices.POST("/register", authHandler.RegisterDeviceToken)
			devices.DELETE("/:token", authHandler.UnregisterDeviceToken)
		}

		// Project routes (protected)
		projects := api.Group("/projects")
		projects.Use(delivery.AuthMiddleware(authUc))
		{
			projects.GET("", projectHandler.GetProjects)
			projects.POST("", projectHandler.CreateProject)
			projects.GET("/:id", projectHandler.GetProjectByID)
			projects.PUT("/:id", projectHandler.UpdateProject)
			projects.DELETE("/:id", projectHandler.DeleteProject)
		}

		// Task routes (protected)
		tasks := api.Group("/tasks")
		tasks.Use(delivery.AuthMiddleware(authUc))
		{
			tasks.GET("", taskHandler.GetTasks)
			tasks.POST("", taskHandler.CreateTask)
			tasks.GET("/:id", taskHandler.GetTaskByID)
			tasks.PUT("/:id", taskHandler.UpdateTask)
			tasks.DELETE("/:id", taskHandler.DeleteTask)
			tasks.PATCH("/:id/status", taskHandler.UpdateTaskStatus)
			tasks.POST("/:id/assignees", taskHandler.AssignTask)
			tasks.DELETE("/:id/assignees/:userId", taskHandler.UnassignTask)
		}

		// Event routes (protected)
		events := api.Group("/events")
		events.Use(delivery.AuthMiddleware(authUc))
		{
			events.GET("", eventHandler.GetEvents)
			events.POST("", eventHandler.CreateEvent)
			events.GET("/:id", eventHandler.GetEventByID)
			events.PUT("/:id", eventHandler.UpdateEvent)
			events.DELETE("/:id", eventHandler.DeleteEvent)
			events.POST("/:id/attendees", eventHandler.AddAttendee)
			events.DELETE("/:id/attendees/:userId", eventHandler.RemoveAttendee)
			events.PATCH("/:id/response", eventHandler.RespondToEvent)
		}

		// Search routes (protected)
		search := api.Group("/search")
		search.Use(delivery.AuthMiddleware(authUc))
		{
			search.GET("/suggestions", calendarHandler.SearchSuggestions)
		}

		// Calendar routes (protected) - merged occurrence view and drag reschedule
		calendar := api.Group("/calendar")
		calendar.Use(delivery.AuthMiddleware(authUc))
		{
			calendar.GET("/occurrences", calendarHandler.GetOccurrences)
			calendar.GET("/day-index", calendarHandler.GetDayIndex)
			calendar.GET("/day/:date", calendarHandler.GetDayDetail)
			calendar.POST("/drag/start", calendarHandler.StartDrag)
			calendar.POST("/drag/over", calendarHandler.DragOver)
			calendar.POST("/drag/drop", calendarHandler.DropDrag)
			calendar.POST("/drag/confirm", calendarHandler.ConfirmDrag)
			calendar.POST("/drag/cancel", calendarHandler.CancelDrag)
			calendar.POST("/reschedule", calendarHandler.Reschedule)
		}
	}
}
