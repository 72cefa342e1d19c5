package routers

import (
	"sleepclinic-service/internal/app/delivery/http/controllers"

	"github.com/go-chi/chi/v5"
)

func attachDoctorRoutes(router chi.Router, doctorController *controllers.DoctorController) {
	router.Get("/", doctorController.ListDoctors)
	router.Post("/", doctorController.CreateDoctor)
	router.Get("/patients", doctorController.ListDoctorPatients)
	router.Get("/{doctor_id}/patients", doctorController.ListDoctorPatients)
	router.Patch("/{doctor_id}/status", doctorController.ToggleDoctorStatus)
}
