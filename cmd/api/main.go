package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/codemyown/leave-mangement-system/internal/config"
	appHTTP "github.com/codemyown/leave-mangement-system/internal/handler/http"
	"github.com/codemyown/leave-mangement-system/internal/pkg/clock"
	"github.com/codemyown/leave-mangement-system/internal/pkg/cron"
	"github.com/codemyown/leave-mangement-system/internal/pkg/database"
	"github.com/codemyown/leave-mangement-system/internal/pkg/email"
	"github.com/codemyown/leave-mangement-system/internal/pkg/jwt"
	"github.com/codemyown/leave-mangement-system/internal/pkg/oauth"
	"github.com/codemyown/leave-mangement-system/internal/pkg/sse"
	"github.com/codemyown/leave-mangement-system/internal/repository/postgresql"
	serviceAuth "github.com/codemyown/leave-mangement-system/internal/service/auth"
	serviceLeave "github.com/codemyown/leave-mangement-system/internal/service/leave"
	serviceNotification "github.com/codemyown/leave-mangement-system/internal/service/notification"
	serviceReport "github.com/codemyown/leave-mangement-system/internal/service/report"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	txManager := postgresql.NewTxManager(db)
	userRepo := postgresql.NewUserRepository(db)
	jwtRepo := postgresql.NewJWTRepository(db)
	leaveTypeRepo := postgresql.NewLeaveTypeRepository(db)
	leaveBalanceRepo := postgresql.NewLeaveBalanceRepository(db)
	leaveRequestRepo := postgresql.NewLeaveRequestRepository(db)
	holidayRepo := postgresql.NewHolidayRepository(db)
	delegationRepo := postgresql.NewDelegationRepository(db)
	notificationRepo := postgresql.NewNotificationRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)
	googleService := oauth.NewGoogleService(cfg.OAuth2Google.ClientID, cfg.OAuth2Google.ClientSecret, cfg.OAuth2Google.RedirectURL, cfg.OAuth2Google.Scopes)
	emailService, err := email.NewEmailService(cfg.SMTP)
	if err != nil {
		log.Fatal("Failed to initialize email service:", err)
	}
	hub := sse.NewHub()
	systemClock := clock.System()

	notificationService := serviceNotification.NewNotificationService(notificationRepo, emailService, hub)
	leaveService := serviceLeave.NewLeaveService(
		txManager,
		leaveTypeRepo,
		leaveBalanceRepo,
		leaveRequestRepo,
		holidayRepo,
		delegationRepo,
		userRepo,
		notificationService,
		systemClock,
	)
	authService := serviceAuth.NewAuthService(txManager, userRepo, jwtService, jwtRepo, googleService)
	reportService := serviceReport.NewReportService(leaveRequestRepo, leaveBalanceRepo, userRepo, systemClock)

	// Balance credit jobs: the scheduler fires daily, the job gates itself on
	// the calendar (1st of month, January 1st).
	scheduler := cron.NewScheduler()
	scheduler.AddJob("leave-credit", 24*time.Hour, func(ctx context.Context) error {
		leaveService.RunDailyCredit(ctx)
		return nil
	})
	scheduler.Start()
	defer scheduler.Stop()

	authHandler := appHTTP.NewAuthHandler(jwtService, authService, cfg.App.FrontendURL)
	leaveHandler := appHTTP.NewLeaveHandler(leaveService)
	holidayHandler := appHTTP.NewHolidayHandler(leaveService)
	delegationHandler := appHTTP.NewDelegationHandler(leaveService)
	reportHandler := appHTTP.NewReportHandler(reportService)
	notificationHandler := appHTTP.NewNotificationHandler(notificationService, jwtService, hub)
	dashboardHandler := appHTTP.NewDashboardHandler(leaveService)

	router := appHTTP.NewRouter(
		cfg,
		jwtService,
		authHandler,
		leaveHandler,
		holidayHandler,
		delegationHandler,
		reportHandler,
		notificationHandler,
		dashboardHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
