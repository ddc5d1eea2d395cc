package main

import (
	"context"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"bookit/config"
	"bookit/cron"
	"bookit/handlers"
	"bookit/middleware"
	"bookit/remote"
	"bookit/routes"
	"bookit/services/auth"
	"bookit/services/booking"
	"bookit/services/catalog"
	"bookit/services/coworking"
	"bookit/services/notification"
	"bookit/services/profile"
	"bookit/services/tasks"
	"bookit/services/verification"
	"bookit/session"
	"bookit/utils"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()
	cfg := config.AppConfig

	if err := catalog.ConfigureLayouts(cfg.CoworkingLayouts); err != nil {
		logger.Fatal("main: invalid COWORKING_LAYOUTS", zap.Error(err))
	}

	// Session store.
	var store session.Store
	var redisPing utils.Pinger
	switch cfg.SessionBackend {
	case "memory":
		logger.Warn("main: using in-memory sessions; sign-ins are lost on restart")
		store = session.NewMemoryStore()
	default:
		client := utils.GetSessionCacheClient()
		store = session.NewRedisStore(client, utils.SessionTTL)
		redisPing = func(ctx context.Context) error { return client.Ping(ctx).Err() }
	}
	sessions := session.NewManager(store)

	// Booking service client, signed with the calling device's token.
	api := remote.NewClient(cfg.APIBaseURL, remote.NewHTTPClient(cfg.HTTPTimeout), sessions, logger.Named("remote"))

	ctx := context.Background()
	storageService, err := utils.NewStorageService(ctx, api)
	if err != nil {
		logger.Fatal("main: failed to initialize storage service", zap.Error(err))
	}

	// Push notifications and booking reminders.
	var pusher notification.Pusher = notification.NewNoopPusher(logger)
	if config.PushEnabled() {
		fcm, err := utils.FirebaseInit(ctx, cfg.FirebaseCredentialsFile)
		if err != nil {
			logger.Fatal("main: failed to initialize firebase", zap.Error(err))
		}
		pusher = notification.NewFCMPusher(fcm, logger)
	}

	var reminders booking.ReminderScheduler
	var dropReminders auth.ReminderCanceller
	var worker *asynq.Server
	var queue *asynq.Client
	var inspector *asynq.Inspector
	if cfg.RemindersEnabled {
		queue = asynq.NewClient(cron.QueueRedisOpt())
		inspector = asynq.NewInspector(cron.QueueRedisOpt())
		scheduler := tasks.NewScheduler(queue, inspector, cfg.ReminderLead, time.Local, logger)
		reminders, dropReminders = scheduler, scheduler
		worker = cron.InitReminderWorker(notification.NewReminderService(pusher, sessions))
	}

	// Services.
	bookingService := booking.NewBookingService(api, reminders, logger, cfg.StaffPageSize)
	profileService := profile.NewService(api, bookingService, logger, cfg.LedgerPageSize)
	authService := auth.NewService(api, sessions, storageService, dropReminders, cfg.DeviceType, logger)
	coworkingService := coworking.NewService(api)
	verificationService := verification.NewService(api)

	authHandler := handlers.NewAuthHandler(authService)
	coworkingHandler := handlers.NewCoworkingHandler(coworkingService, bookingService)
	bookingHandler := handlers.NewBookingHandler(bookingService)
	profileHandler := handlers.NewProfileHandler(profileService)
	verifyHandler := handlers.NewVerifyHandler(verificationService, verification.NewDebouncer(cfg.ScanDebounce))

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		Sessions: sessions,

		// Auth endpoints.
		LoginHandler:    authHandler.LoginHandler,
		RegisterHandler: authHandler.RegisterHandler,
		YandexHandler:   authHandler.YandexHandler,
		LogoutHandler:   authHandler.LogoutHandler,
		FCMTokenHandler: authHandler.FCMTokenHandler,

		// Coworking endpoints.
		ListCoworkingsHandler: coworkingHandler.ListHandler,
		GetCoworkingHandler:   coworkingHandler.GetHandler,
		LayoutHandler:         coworkingHandler.LayoutHandler,
		SpotsHandler:          coworkingHandler.SpotsHandler,

		// Booking endpoints.
		BookHandler:        bookingHandler.BookHandler,
		CancelHandler:      bookingHandler.CancelHandler,
		RescheduleHandler:  bookingHandler.RescheduleHandler,
		AllBookingsHandler: bookingHandler.AllBookingsHandler,
		SpotBookingHandler: bookingHandler.SpotBookingHandler,

		// Profile endpoints.
		ProfileHandler:           profileHandler.ProfileHandler,
		ProfileBookingsHandler:   profileHandler.ListBookingsHandler,
		DeleteBookingHandler:     profileHandler.DeleteBookingHandler,
		ProfileRescheduleHandler: profileHandler.RescheduleHandler,
		ChangeUserInfoHandler:    profileHandler.ChangeUserInfoHandler,

		// Scanner.
		VerifyHandler: verifyHandler.VerifyHandler,
	}

	health, err := utils.StartHealthMonitor(cfg.HealthCheckSpec, redisPing, api.Ping)
	if err != nil {
		logger.Fatal("main: invalid HEALTH_CHECK_SPEC", zap.Error(err))
	}

	// Create the Gin router.
	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(utils.ErrorHandler())
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.RateLimitMiddleware(cfg.MaxRequestsPerMin))

	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := cfg.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("main: server is shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), utils.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("main: server forced to shutdown", zap.Error(err))
	}

	<-health.Stop().Done()
	if worker != nil {
		worker.Shutdown()
	}
	if queue != nil {
		_ = queue.Close()
		_ = inspector.Close()
	}
	if closer, ok := storageService.(io.Closer); ok {
		_ = closer.Close()
	}

	logger.Info("main: server stopped gracefully")
	_ = logger.Sync()
}
