package contracts

import (
	"context"
	"sleepclinic-service/internal/app/models"
	"sleepclinic-service/internal/pkg/dto/requests"
	"sleepclinic-service/internal/pkg/dto/responses"
)

type ConsentUsecase interface {
	UploadConsentDocument(ctx context.Context, caller *models.User, patientID models.PatientID, document *requests.UploadConsentDocument) (*responses.ConsentDocument, error)
	GetConsentDocumentURL(ctx context.Context, caller *models.User, patientID models.PatientID) (*responses.ConsentDocument, error)
}
