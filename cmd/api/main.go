package main

import (
	"fmt"
	"net/http"

	"github.com/cmlabs-hris/rota-backend-go/internal/config"
	appHTTP "github.com/cmlabs-hris/rota-backend-go/internal/handler/http"
	"github.com/cmlabs-hris/rota-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/rota-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/rota-backend-go/internal/repository/postgresql"
	coverageService "github.com/cmlabs-hris/rota-backend-go/internal/service/coverage"
	rotaService "github.com/cmlabs-hris/rota-backend-go/internal/service/rota"
	shiftService "github.com/cmlabs-hris/rota-backend-go/internal/service/shift"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	shiftRepo := postgresql.NewShiftRepository(db)
	batchRepo := postgresql.NewBatchRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	historyRepo := postgresql.NewAssignmentHistoryRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	shiftSvc := shiftService.NewShiftService(db, shiftRepo)
	rotaSvc := rotaService.NewRotaService(db, batchRepo, shiftRepo, employeeRepo, historyRepo)
	coverageSvc := coverageService.NewCoverageService(db, shiftRepo, batchRepo, employeeRepo)

	shiftHandler := appHTTP.NewShiftHandler(shiftSvc)
	batchHandler := appHTTP.NewBatchHandler(rotaSvc)
	assignmentHandler := appHTTP.NewAssignmentHandler(rotaSvc)
	coverageHandler := appHTTP.NewCoverageHandler(coverageSvc)

	router := appHTTP.NewRouter(
		cfg,
		JWTService,
		shiftHandler,
		batchHandler,
		assignmentHandler,
		coverageHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
