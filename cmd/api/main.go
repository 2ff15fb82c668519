package main

import (
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/fintradify/hr-portal-go/internal/config"
	appHTTP "github.com/fintradify/hr-portal-go/internal/handler/http"
	"github.com/fintradify/hr-portal-go/internal/pkg/cron"
	"github.com/fintradify/hr-portal-go/internal/pkg/database"
	"github.com/fintradify/hr-portal-go/internal/pkg/geocode"
	"github.com/fintradify/hr-portal-go/internal/pkg/jwt"
	"github.com/fintradify/hr-portal-go/internal/repository/postgresql"
	attendanceService "github.com/fintradify/hr-portal-go/internal/service/attendance"
	leaveService "github.com/fintradify/hr-portal-go/internal/service/leave"
	payrollService "github.com/fintradify/hr-portal-go/internal/service/payroll"
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

	employeeRepo := postgresql.NewEmployeeRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	leaveRequestRepo := postgresql.NewLeaveRequestRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	resolver := geocode.NewNominatimClient(cfg.Geocoder.BaseURL, cfg.Geocoder.UserAgent, cfg.Geocoder.Timeout)

	attendanceSvc := attendanceService.NewAttendanceService(attendanceRepo, employeeRepo, resolver, cfg.Geocoder.Timeout)
	leaveSvc := leaveService.NewLeaveService(db, leaveRequestRepo, employeeRepo)
	payrollSvc := payrollService.NewPayrollService(attendanceRepo, employeeRepo)

	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	leaveHandler := appHTTP.NewLeaveHandler(leaveSvc)
	payrollHandler := appHTTP.NewPayrollHandler(payrollSvc)
	geocodeHandler := appHTTP.NewGeocodeHandler(resolver)

	router := appHTTP.NewRouter(
		cfg.App.Env,
		JWTService,
		attendanceHandler,
		leaveHandler,
		payrollHandler,
		geocodeHandler,
	)

	scheduler := cron.NewScheduler()
	cron.NewEnrichmentJobs(attendanceRepo, resolver).RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	port := fmt.Sprintf(":%d", cfg.App.Port)
	server := &http.Server{Addr: port, Handler: router}

	go func() {
		fmt.Printf("Server running at http://localhost%s\n", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			fmt.Println("Server error:", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	fmt.Println("Shutting down...")
	_ = server.Close()
}
