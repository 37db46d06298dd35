package main

import (
	"log"

	api "studioflow-backend/cmd/api"
	authdomain "studioflow-backend/internal/auth/domain"
	authRepo "studioflow-backend/internal/auth/repository"
	authUsecase "studioflow-backend/internal/auth/usecase"
	calendarDelivery "studioflow-backend/internal/calendar/delivery"
	calendarUsecase "studioflow-backend/internal/calendar/usecase"
	eventdomain "studioflow-backend/internal/event/domain"
	eventDelivery "studioflow-backend/internal/event/delivery"
	eventRepo "studioflow-backend/internal/event/repository"
	eventUsecasePkg "studioflow-backend/internal/event/usecase"
	"studioflow-backend/internal/notification"
	projectdomain "studioflow-backend/internal/project/domain"
	projectDelivery "studioflow-backend/internal/project/delivery"
	projectRepo "studioflow-backend/internal/project/repository"
	projectUsecasePkg "studioflow-backend/internal/project/usecase"
	taskdomain "studioflow-backend/internal/task/domain"
	taskDelivery "studioflow-backend/internal/task/delivery"
	taskRepo "studioflow-backend/internal/task/repository"
	"studioflow-backend/internal/task/scheduler"
	taskUsecasePkg "studioflow-backend/internal/task/usecase"
	"studioflow-backend/pkg/cache"
	"studioflow-backend/pkg/config"
	"studioflow-backend/pkg/database"
	"studioflow-backend/pkg/fcm"
	"studioflow-backend/pkg/realtime"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.NewPostgresConnection(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Auto-migrate database schemas
	if err := db.AutoMigrate(
		&authdomain.User{},
		&authdomain.RefreshToken{},
		&authdomain.DeviceToken{},
		&projectdomain.Project{},
		&taskdomain.Task{},
		&taskdomain.TaskAssignment{},
		&eventdomain.Event{},
		&eventdomain.EventAttendee{},
	); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	// Initialize repositories (dependency injection)
	userRepository := authRepo.NewUserRepository(db)
	tokenRepository := authRepo.NewDeviceTokenRepository(db)
	projectRepository := projectRepo.NewGormProjectRepository(db)
	taskRepository := taskRepo.NewGormTaskRepository(db)
	eventRepository := eventRepo.NewGormEventRepository(db)

	// Shared query cache for calendar reads
	queryCache := cache.New()

	// Realtime hub for live calendar updates
	hub := realtime.NewHub()

	// Initialize FCM client (optional, push notifications disabled without it)
	var fcmClient *fcm.Client
	if cfg.FirebaseCredentials != "" {
		fcmClient, err = fcm.NewClient(cfg.FirebaseCredentials)
		if err != nil {
			log.Printf("[WARN] Failed to initialize FCM client (push notifications disabled): %v", err)
		}
	} else {
		log.Printf("[WARN] No Firebase credentials configured, FCM disabled")
	}

	// Initialize use cases (dependency injection)
	authUsecaseInstance := authUsecase.NewAuthUsecase(userRepository, tokenRepository, cfg)
	projectUsecaseInstance := projectUsecasePkg.NewProjectUsecase(projectRepository)
	taskUsecaseInstance := taskUsecasePkg.NewTaskUsecase(taskRepository, queryCache)
	eventUsecaseInstance := eventUsecasePkg.NewEventUsecase(eventRepository, queryCache)

	// Calendar: merged occurrence sources and drag reschedule
	eventSource := calendarUsecase.NewEventSourceAdapter(eventRepository, projectRepository)
	taskSource := calendarUsecase.NewTaskSourceAdapter(taskRepository, projectRepository)
	sourceService := calendarUsecase.NewSourceService(eventSource, taskSource, userRepository, queryCache)
	rescheduleWriter := calendarUsecase.NewRescheduleWriter(eventSource, taskSource)

	// Activity fan-out (pubsub + push), best-effort
	var notifier calendarUsecase.ActivityNotifier
	notifService, err := notification.NewService(cfg.GoogleProjectID, cfg.ActivityTopic, cfg.FirebaseCredentials, userRepository, tokenRepository, fcmClient)
	if err != nil {
		log.Printf("[ERROR] Failed to initialize notification service: %v", err)
	} else {
		notifier = notifService
	}

	calendarUsecaseInstance := calendarUsecase.NewCalendarUsecase(sourceService, rescheduleWriter, notifier, hub)

	// Due-date reminder scheduler
	reminderScheduler := scheduler.NewReminderScheduler(taskRepository, tokenRepository, fcmClient)
	reminderScheduler.Start()

	// Initialize HTTP handlers
	projectHandler := projectDelivery.NewProjectHandler(projectUsecaseInstance)
	taskHandler := taskDelivery.NewTaskHandler(taskUsecaseInstance)
	eventHandler := eventDelivery.NewEventHandler(eventUsecaseInstance)
	calendarHandler := calendarDelivery.NewCalendarHandler(calendarUsecaseInstance)

	handler := api.NewHandler(authUsecaseInstance, hub, projectHandler, taskHandler, eventHandler, calendarHandler)

	log.Printf("Server starting on port %s", cfg.Port)
	if err := handler.Start(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
