package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/clockwise-hr/timeclock-backend-go/internal/config"
	appHTTP "github.com/clockwise-hr/timeclock-backend-go/internal/handler/http"
	"github.com/clockwise-hr/timeclock-backend-go/internal/pkg/cron"
	"github.com/clockwise-hr/timeclock-backend-go/internal/pkg/database"
	"github.com/clockwise-hr/timeclock-backend-go/internal/pkg/jwt"
	"github.com/clockwise-hr/timeclock-backend-go/internal/repository/postgresql"
	authService "github.com/clockwise-hr/timeclock-backend-go/internal/service/auth"
	reportService "github.com/clockwise-hr/timeclock-backend-go/internal/service/report"
	timesheetService "github.com/clockwise-hr/timeclock-backend-go/internal/service/timesheet"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Error loading config: ", err)
	}

	dsn := cfg.DatabaseURL()
	if err := database.Migrate(dsn); err != nil {
		log.Fatal("Error running migrations: ", err)
	}

	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		log.Fatal("Error connecting to database: ", err)
	}
	defer db.Close()

	userRepo := postgresql.NewUserRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	sessionRepo := postgresql.NewSessionRepository(db)
	timesheetRepo := postgresql.NewTimesheetRepository(db)
	adjustmentRepo := postgresql.NewAdjustmentRepository(db)
	reportRepo := postgresql.NewReportRepository(db)

	txManager := postgresql.NewTxManager(db)
	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	calculator := timesheetService.NewCalculator(cfg.Payroll.DailyThresholdHours, cfg.Payroll.OvertimeMultiplier)

	authSvc := authService.NewAuthService(userRepo, JWTService)
	timesheetSvc := timesheetService.NewTimesheetService(txManager, timesheetRepo, adjustmentRepo, sessionRepo, employeeRepo, calculator)
	reportSvc := reportService.NewReportService(reportRepo)

	authHandler := appHTTP.NewAuthHandler(authSvc)
	timesheetHandler := appHTTP.NewTimesheetHandler(timesheetSvc)
	reportHandler := appHTTP.NewReportHandler(reportSvc)

	if cfg.Cron.Enabled {
		scheduler := cron.NewScheduler()
		cron.NewTimesheetJobs(timesheetSvc).RegisterJobs(scheduler)
		scheduler.Start()
		defer scheduler.Stop()
	}

	router := appHTTP.NewRouter(
		cfg,
		JWTService,
		authHandler,
		timesheetHandler,
		reportHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
