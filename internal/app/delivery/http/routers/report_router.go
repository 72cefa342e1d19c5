package routers

import (
	"sleepclinic-service/internal/app/delivery/http/controllers"

	"github.com/go-chi/chi/v5"
)

func attachReportRoutes(router chi.Router, reportController *controllers.ReportController) {
	router.Get("/statistics", reportController.GetPatientStatistics)
	router.Get("/monthly-trends", reportController.GetMonthlyPatientTrends)
}
