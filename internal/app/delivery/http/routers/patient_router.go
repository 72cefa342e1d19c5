package routers

import (
	"sleepclinic-service/internal/app/delivery/http/controllers"

	"github.com/go-chi/chi/v5"
)

func attachPatientRoutes(router chi.Router, patientController *controllers.PatientController) {
	router.Get("/", patientController.ListPatients)
	router.Post("/", patientController.CreatePatient)
	router.Get("/{patient_id}", patientController.GetPatient)
	router.Put("/{patient_id}", patientController.UpdatePatient)
	router.Delete("/{patient_id}", patientController.DeletePatient)
	router.Post("/{patient_id}/consent", patientController.UploadConsentDocument)
	router.Get("/{patient_id}/consent", patientController.GetConsentDocument)
}
