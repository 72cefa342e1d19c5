package patients

import (
	"sleepclinic-service/internal/app/models"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
)

func TestBuildScopeFilter(t *testing.T) {
	t.Run("MainHead scope restricts creator branch to unassigned patients", func(t *testing.T) {
		scope := &models.PatientScope{
			DoctorIDIn:     []models.UserID{"d1", "d2"},
			CreatedByIn:    []models.UserID{"m1", "d1", "d2"},
			UnassignedOnly: true,
		}

		assert.Equal(t, bson.M{"$or": []bson.M{
			{"doctorId": bson.M{"$in": scope.DoctorIDIn}},
			{"createdBy": bson.M{"$in": scope.CreatedByIn}, "doctorId": nil},
		}}, buildScopeFilter(scope))
	})

	t.Run("Doctor scope has no assignment restriction", func(t *testing.T) {
		scope := doctorScope("d1")

		filter := buildScopeFilter(scope)
		branches := filter["$or"].([]bson.M)
		assert.NotContains(t, branches[1], "doctorId")
	})
}

func TestBuildPatchUpdate(t *testing.T) {
	updatedAt := time.Date(2024, time.March, 15, 9, 0, 0, 0, time.UTC)

	t.Run("Only set fields are written", func(t *testing.T) {
		date := "2024-04-01"
		update := buildPatchUpdate(&models.PatientPatch{Date: &date, LastModifiedBy: "d1"}, updatedAt)

		assert.Equal(t, bson.M{"$set": bson.M{
			"date":           "2024-04-01",
			"updatedAt":      updatedAt,
			"lastModifiedBy": models.UserID("d1"),
		}}, update)
	})

	t.Run("Clearing the doctor unsets the field", func(t *testing.T) {
		doctorID := models.UserID("d2")
		update := buildPatchUpdate(&models.PatientPatch{DoctorID: &doctorID, ClearDoctor: true, LastModifiedBy: "m1"}, updatedAt)

		assert.Equal(t, bson.M{"doctorId": ""}, update["$unset"])
		assert.NotContains(t, update["$set"], "doctorId")
	})

	t.Run("Assigning a doctor", func(t *testing.T) {
		doctorID := models.UserID("d2")
		update := buildPatchUpdate(&models.PatientPatch{DoctorID: &doctorID, LastModifiedBy: "m1"}, updatedAt)

		assert.Equal(t, models.UserID("d2"), update["$set"].(bson.M)["doctorId"])
		assert.NotContains(t, update, "$unset")
	})
}
