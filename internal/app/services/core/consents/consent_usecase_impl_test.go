package consents

import (
	"context"
	"errors"
	"io"
	"sleepclinic-service/internal/app/config"
	"sleepclinic-service/internal/app/models"
	"sleepclinic-service/internal/app/services/core/authorization"
	"sleepclinic-service/internal/app/services/core/inmemory"
	"sleepclinic-service/internal/app/services/shared/auditlog"
	"sleepclinic-service/internal/pkg/constvars"
	"sleepclinic-service/internal/pkg/dto/requests"
	"sleepclinic-service/internal/pkg/exceptions"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeStorage struct {
	objects map[string][]byte
	types   map[string]string
	removed []string
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{objects: map[string][]byte{}, types: map[string]string{}}
}

func (s *fakeStorage) UploadFile(ctx context.Context, content io.Reader, size int64, bucketName, objectName, contentType string) (string, error) {
	data, err := io.ReadAll(content)
	if err != nil {
		return "", err
	}
	s.objects[bucketName+"/"+objectName] = data
	s.types[bucketName+"/"+objectName] = contentType
	return objectName, nil
}

func (s *fakeStorage) GetObjectUrlWithExpiryTime(ctx context.Context, bucketName, objectName string, expiryTime time.Duration) (string, error) {
	return "https://storage.test/" + bucketName + "/" + objectName, nil
}

func (s *fakeStorage) RemoveObject(ctx context.Context, bucketName, objectName string) error {
	delete(s.objects, bucketName+"/"+objectName)
	delete(s.types, bucketName+"/"+objectName)
	s.removed = append(s.removed, objectName)
	return nil
}

type failingPatches struct {
	*inmemory.PatientRepository
}

func (r failingPatches) UpdatePatient(ctx context.Context, patientID models.PatientID, patch *models.PatientPatch, updatedAt time.Time) error {
	return exceptions.ErrMongoDBUpdateDocument(errors.New("write concern timeout"))
}

var pdfDocument = []byte("%PDF-1.4\n1 0 obj\n<< /Type /Catalog >>\nendobj\ntrailer\n<< /Root 1 0 R >>\n%%EOF\n")

type consentFixture struct {
	usecase   *consentUsecase
	network   *inmemory.Network
	patients  *inmemory.PatientRepository
	storage   *fakeStorage
	publisher *inmemory.AuditPublisher
}

func newConsentFixture() *consentFixture {
	network := inmemory.NewNetwork()
	patients := inmemory.NewPatientRepository()
	storage := newFakeStorage()
	publisher := &inmemory.AuditPublisher{}

	internalConfig := &config.InternalConfig{
		App: config.App{
			MinioPreSignedUrlObjectExpiryTimeInHours: 2,
			ConsentMaxUploadSizeInMB:                 1,
		},
		Minio: config.AppMinio{BucketName: "consents"},
	}

	usecase := NewConsentUsecase(
		patients,
		authorization.NewAuthorizationEngine(network.Users),
		storage,
		auditlog.NewRecorder(publisher, zap.NewNop()),
		internalConfig,
		zap.NewNop(),
	).(*consentUsecase)
	usecase.Now = func() time.Time { return time.Date(2024, time.March, 15, 9, 0, 0, 0, time.UTC) }

	return &consentFixture{
		usecase:   usecase,
		network:   network,
		patients:  patients,
		storage:   storage,
		publisher: publisher,
	}
}

func requireStatus(t *testing.T, err error, status int) {
	t.Helper()
	var customErr *exceptions.CustomError
	require.True(t, errors.As(err, &customErr), "expected *exceptions.CustomError, got %v", err)
	assert.Equal(t, status, customErr.StatusCode)
}

func TestUploadConsentDocument(t *testing.T) {
	ctx := context.Background()

	t.Run("Stores the document and marks consent", func(t *testing.T) {
		f := newConsentFixture()
		patient := f.patients.SeedPatient(f.network.D1, nil, "P-1")

		document, err := f.usecase.UploadConsentDocument(ctx, f.network.M1, patient.ID, &requests.UploadConsentDocument{
			FileName: "consent.pdf",
			Content:  pdfDocument,
		})
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(document.ObjectKey, "patients/"+patient.ID.String()+"/consent_"))
		assert.True(t, strings.HasSuffix(document.ObjectKey, ".pdf"))
		assert.Equal(t, 7200, document.ExpiresIn)
		assert.Contains(t, document.URL, document.ObjectKey)
		assert.Equal(t, constvars.MIMEApplicationPDF, f.storage.types["consents/"+document.ObjectKey])

		stored, err := f.patients.FindByID(ctx, patient.ID)
		require.NoError(t, err)
		require.NotNil(t, stored.ConsentObtained)
		assert.True(t, *stored.ConsentObtained)
		assert.Equal(t, document.ObjectKey, stored.ConsentDocumentKey)
		assert.Equal(t, f.network.M1.ID, stored.LastModifiedBy)
		assert.Equal(t, []string{constvars.AuditActionConsent}, f.publisher.Actions())
	})

	t.Run("Failed patient update removes the uploaded object", func(t *testing.T) {
		f := newConsentFixture()
		patient := f.patients.SeedPatient(f.network.D1, nil, "P-1")
		f.usecase.PatientRepository = failingPatches{f.patients}

		_, err := f.usecase.UploadConsentDocument(ctx, f.network.D1, patient.ID, &requests.UploadConsentDocument{
			FileName: "consent.pdf",
			Content:  pdfDocument,
		})
		requireStatus(t, err, constvars.StatusInternalServerError)
		assert.Empty(t, f.storage.objects)
		assert.Len(t, f.storage.removed, 1)
		assert.Empty(t, f.publisher.Actions())

		stored, err := f.patients.FindByID(ctx, patient.ID)
		require.NoError(t, err)
		assert.Empty(t, stored.ConsentDocumentKey)
	})

	t.Run("Re-upload removes the replaced document", func(t *testing.T) {
		f := newConsentFixture()
		patient := f.patients.SeedPatient(f.network.D1, nil, "P-1")
		document := &requests.UploadConsentDocument{FileName: "consent.pdf", Content: pdfDocument}

		first, err := f.usecase.UploadConsentDocument(ctx, f.network.D1, patient.ID, document)
		require.NoError(t, err)

		f.usecase.Now = func() time.Time { return time.Date(2024, time.March, 16, 9, 0, 0, 0, time.UTC) }
		second, err := f.usecase.UploadConsentDocument(ctx, f.network.D1, patient.ID, document)
		require.NoError(t, err)
		require.NotEqual(t, first.ObjectKey, second.ObjectKey)

		assert.Equal(t, []string{first.ObjectKey}, f.storage.removed)
		assert.NotContains(t, f.storage.objects, "consents/"+first.ObjectKey)
		assert.Contains(t, f.storage.objects, "consents/"+second.ObjectKey)

		stored, err := f.patients.FindByID(ctx, patient.ID)
		require.NoError(t, err)
		assert.Equal(t, second.ObjectKey, stored.ConsentDocumentKey)
	})

	t.Run("Invalid file is rejected before upload", func(t *testing.T) {
		f := newConsentFixture()
		patient := f.patients.SeedPatient(f.network.D1, nil, "P-1")

		_, err := f.usecase.UploadConsentDocument(ctx, f.network.D1, patient.ID, &requests.UploadConsentDocument{
			FileName: "consent.exe",
			Content:  []byte("MZ not a consent form"),
		})
		requireStatus(t, err, constvars.StatusBadRequest)
		assert.Empty(t, f.storage.objects)
	})

	t.Run("Out of scope patient is forbidden", func(t *testing.T) {
		f := newConsentFixture()
		foreign := f.patients.SeedPatient(f.network.D3, nil, "P-1")

		_, err := f.usecase.UploadConsentDocument(ctx, f.network.M1, foreign.ID, &requests.UploadConsentDocument{
			FileName: "consent.pdf",
			Content:  pdfDocument,
		})
		requireStatus(t, err, constvars.StatusForbidden)
		assert.Empty(t, f.storage.objects)
	})

	t.Run("Missing patient and missing caller", func(t *testing.T) {
		f := newConsentFixture()
		document := &requests.UploadConsentDocument{FileName: "consent.pdf", Content: pdfDocument}

		_, err := f.usecase.UploadConsentDocument(ctx, f.network.M1, "65f000000000000000000000", document)
		requireStatus(t, err, constvars.StatusNotFound)

		_, err = f.usecase.UploadConsentDocument(ctx, nil, "65f000000000000000000000", document)
		requireStatus(t, err, constvars.StatusUnauthorized)
	})
}

func TestGetConsentDocumentURL(t *testing.T) {
	ctx := context.Background()

	t.Run("No document yet", func(t *testing.T) {
		f := newConsentFixture()
		patient := f.patients.SeedPatient(f.network.M1, nil, "P-1")

		_, err := f.usecase.GetConsentDocumentURL(ctx, f.network.M1, patient.ID)
		requireStatus(t, err, constvars.StatusNotFound)
	})

	t.Run("Returns a presigned url after upload", func(t *testing.T) {
		f := newConsentFixture()
		patient := f.patients.SeedPatient(f.network.M1, f.network.D2, "P-1")

		uploaded, err := f.usecase.UploadConsentDocument(ctx, f.network.D2, patient.ID, &requests.UploadConsentDocument{
			FileName: "consent.pdf",
			Content:  pdfDocument,
		})
		require.NoError(t, err)

		document, err := f.usecase.GetConsentDocumentURL(ctx, f.network.M1, patient.ID)
		require.NoError(t, err)
		assert.Equal(t, uploaded.ObjectKey, document.ObjectKey)
		assert.Equal(t, patient.ID.String(), document.PatientID)
	})

	t.Run("Sibling doctor cannot view", func(t *testing.T) {
		f := newConsentFixture()
		patient := f.patients.SeedPatient(f.network.M1, f.network.D2, "P-1")

		_, err := f.usecase.GetConsentDocumentURL(ctx, f.network.D1, patient.ID)
		requireStatus(t, err, constvars.StatusForbidden)
	})
}
