package patients

import (
	"context"
	"sleepclinic-service/internal/app/contracts"
	"sleepclinic-service/internal/app/models"
	"sleepclinic-service/internal/pkg/constvars"
	"sleepclinic-service/internal/pkg/exceptions"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type PatientMongoRepository struct {
	Collection *mongo.Collection
}

func NewPatientMongoRepository(db *mongo.Database) contracts.PatientRepository {
	return &PatientMongoRepository{
		Collection: db.Collection(constvars.MongoCollectionPatients),
	}
}

func (repo *PatientMongoRepository) EnsureIndexes(ctx context.Context) error {
	_, err := repo.Collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "createdBy", Value: 1}}},
		{Keys: bson.D{{Key: "doctorId", Value: 1}}},
		{Keys: bson.D{{Key: "date", Value: 1}}},
	})
	if err != nil {
		return exceptions.ErrMongoDBCreateIndex(err, constvars.MongoCollectionPatients)
	}
	return nil
}

func (repo *PatientMongoRepository) CreatePatient(ctx context.Context, patient *models.Patient) (models.PatientID, error) {
	result, err := repo.Collection.InsertOne(ctx, patient)
	if err != nil {
		return "", exceptions.ErrMongoDBInsertDocument(err)
	}
	return models.PatientID(result.InsertedID.(primitive.ObjectID).Hex()), nil
}

func (repo *PatientMongoRepository) FindByID(ctx context.Context, patientID models.PatientID) (*models.Patient, error) {
	objectID, err := primitive.ObjectIDFromHex(patientID.String())
	if err != nil {
		return nil, exceptions.ErrMongoDBNotObjectID(err)
	}

	var patient models.Patient
	err = repo.Collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&patient)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &patient, nil
}

// FindByScope returns the patients matching scope in insertion order.
func (repo *PatientMongoRepository) FindByScope(ctx context.Context, scope *models.PatientScope) ([]models.Patient, error) {
	patients := []models.Patient{}
	if scope.IsEmpty() {
		return patients, nil
	}

	cursor, err := repo.Collection.Find(ctx, buildScopeFilter(scope), options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	defer cursor.Close(ctx)

	err = cursor.All(ctx, &patients)
	if err != nil {
		return nil, exceptions.ErrMongoDBIterateDocuments(err)
	}
	return patients, nil
}

func (repo *PatientMongoRepository) UpdatePatient(ctx context.Context, patientID models.PatientID, patch *models.PatientPatch, updatedAt time.Time) error {
	objectID, err := primitive.ObjectIDFromHex(patientID.String())
	if err != nil {
		return exceptions.ErrMongoDBNotObjectID(err)
	}

	_, err = repo.Collection.UpdateOne(ctx, bson.M{"_id": objectID}, buildPatchUpdate(patch, updatedAt), options.Update().SetUpsert(false))
	if err != nil {
		return exceptions.ErrMongoDBUpdateDocument(err)
	}
	return nil
}

func (repo *PatientMongoRepository) DeleteByID(ctx context.Context, patientID models.PatientID) error {
	objectID, err := primitive.ObjectIDFromHex(patientID.String())
	if err != nil {
		return exceptions.ErrMongoDBNotObjectID(err)
	}

	_, err = repo.Collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return exceptions.ErrMongoDBDeleteDocument(err)
	}
	return nil
}

// CountByDoctorIDs counts patients assigned to each doctor. Patients a doctor
// created without being assigned are not counted.
func (repo *PatientMongoRepository) CountByDoctorIDs(ctx context.Context, doctorIDs []models.UserID) (map[models.UserID]int64, error) {
	counts := make(map[models.UserID]int64, len(doctorIDs))
	if len(doctorIDs) == 0 {
		return counts, nil
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"doctorId": bson.M{"$in": doctorIDs}}}},
		{{Key: "$group", Value: bson.M{"_id": "$doctorId", "count": bson.M{"$sum": 1}}}},
	}
	cursor, err := repo.Collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, exceptions.ErrMongoDBAggregate(err)
	}
	defer cursor.Close(ctx)

	var results []struct {
		DoctorID models.UserID `bson:"_id"`
		Count    int64         `bson:"count"`
	}
	err = cursor.All(ctx, &results)
	if err != nil {
		return nil, exceptions.ErrMongoDBIterateDocuments(err)
	}

	for _, result := range results {
		counts[result.DoctorID] = result.Count
	}
	return counts, nil
}

func buildScopeFilter(scope *models.PatientScope) bson.M {
	byCreator := bson.M{"createdBy": bson.M{"$in": scope.CreatedByIn}}
	if scope.UnassignedOnly {
		byCreator["doctorId"] = nil
	}

	return bson.M{"$or": []bson.M{
		{"doctorId": bson.M{"$in": scope.DoctorIDIn}},
		byCreator,
	}}
}

func buildPatchUpdate(patch *models.PatientPatch, updatedAt time.Time) bson.M {
	set := bson.M{
		"updatedAt":      updatedAt,
		"lastModifiedBy": patch.LastModifiedBy,
	}
	unset := bson.M{}

	if patch.IpdOpdNo != nil {
		set["ipdOpdNo"] = *patch.IpdOpdNo
	}
	if patch.Date != nil {
		set["date"] = *patch.Date
	}
	if patch.Demographics != nil {
		set["demographics"] = patch.Demographics
	}
	if patch.ClinicalProfile != nil {
		set["clinicalProfile"] = patch.ClinicalProfile
	}
	if patch.MedicalHistory != nil {
		set["medicalHistory"] = patch.MedicalHistory
	}
	if patch.AnthropometricParameters != nil {
		set["anthropometricParameters"] = patch.AnthropometricParameters
	}
	if patch.LabResults != nil {
		set["labResults"] = patch.LabResults
	}
	if patch.Lifestyle != nil {
		set["lifestyle"] = patch.Lifestyle
	}
	if patch.SleepStudy != nil {
		set["sleepStudy"] = patch.SleepStudy
	}
	if patch.Treatment != nil {
		set["treatment"] = patch.Treatment
	}
	if patch.Questionnaires != nil {
		set["questionnaires"] = patch.Questionnaires
	}
	if patch.ClearDoctor {
		unset["doctorId"] = ""
	} else if patch.DoctorID != nil {
		set["doctorId"] = *patch.DoctorID
	}
	if patch.ConsentObtained != nil {
		set["consentObtained"] = *patch.ConsentObtained
	}
	if patch.ConsentDocumentKey != nil {
		set["consentDocumentKey"] = *patch.ConsentDocumentKey
	}

	update := bson.M{"$set": set}
	if len(unset) > 0 {
		update["$unset"] = unset
	}
	return update
}
