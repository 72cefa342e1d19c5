package authorization

import (
	"context"
	"sleepclinic-service/internal/app/models"
	"sleepclinic-service/internal/app/services/core/inmemory"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type patientFixtures struct {
	ownUnassigned      *models.Patient // M1, no doctor
	doctorUnassigned   *models.Patient // D1, no doctor
	assignedToD2       *models.Patient // M1, doctor D2
	assignedAcrossNets *models.Patient // D1, doctor D3
	foreign            *models.Patient // D3, no doctor
}

func setup() (*inmemory.Network, *inmemory.PatientRepository, *authorizationEngine, patientFixtures) {
	network := inmemory.NewNetwork()
	patients := inmemory.NewPatientRepository()
	engine := NewAuthorizationEngine(network.Users).(*authorizationEngine)

	fixtures := patientFixtures{
		ownUnassigned:      patients.SeedPatient(network.M1, nil, "P-1"),
		doctorUnassigned:   patients.SeedPatient(network.D1, nil, "P-2"),
		assignedToD2:       patients.SeedPatient(network.M1, network.D2, "P-3"),
		assignedAcrossNets: patients.SeedPatient(network.D1, network.D3, "P-4"),
		foreign:            patients.SeedPatient(network.D3, nil, "P-5"),
	}
	return network, patients, engine, fixtures
}

func TestCanReadPatient(t *testing.T) {
	ctx := context.Background()
	network, _, engine, p := setup()

	cases := []struct {
		name    string
		user    *models.User
		patient *models.Patient
		want    bool
	}{
		{"MainHead reads own patient", network.M1, p.ownUnassigned, true},
		{"MainHead reads patient created by its doctor", network.M1, p.doctorUnassigned, true},
		{"MainHead reads patient assigned to its doctor", network.M1, p.assignedToD2, true},
		{"MainHead never reads patient assigned to foreign doctor", network.M1, p.assignedAcrossNets, false},
		{"MainHead never reads foreign patient", network.M1, p.foreign, false},
		{"Foreign MainHead reads patient assigned to its doctor", network.M2, p.assignedAcrossNets, true},
		{"Doctor reads patient it created", network.D1, p.doctorUnassigned, true},
		{"Doctor reads patient it created but assigned elsewhere", network.D1, p.assignedAcrossNets, true},
		{"Doctor reads patient assigned to it", network.D2, p.assignedToD2, true},
		{"Doctor cannot read sibling doctor's patient", network.D1, p.assignedToD2, false},
		{"Doctor cannot read MainHead's unassigned patient", network.D1, p.ownUnassigned, false},
		{"Assigned foreign doctor reads patient", network.D3, p.assignedAcrossNets, true},
		{"Nil user is denied", nil, p.ownUnassigned, false},
		{"Unknown role is denied", &models.User{ID: network.M1.ID, Role: models.Role("admin")}, p.ownUnassigned, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := engine.CanReadPatient(ctx, tc.user, tc.patient)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestPermissionClassesCoincide(t *testing.T) {
	ctx := context.Background()
	network, _, engine, p := setup()

	users := []*models.User{nil, network.M1, network.M2, network.D1, network.D2, network.D3}
	patients := []*models.Patient{p.ownUnassigned, p.doctorUnassigned, p.assignedToD2, p.assignedAcrossNets, p.foreign}

	for _, user := range users {
		for _, patient := range patients {
			canRead, err := engine.CanReadPatient(ctx, user, patient)
			require.NoError(t, err)
			canWrite, err := engine.CanWritePatient(ctx, user, patient)
			require.NoError(t, err)
			canDelete, err := engine.CanDeletePatient(ctx, user, patient)
			require.NoError(t, err)

			assert.Equal(t, canRead, canWrite, "read and write must agree for patient %s", patient.IpdOpdNo)
			assert.Equal(t, canRead, canDelete, "read and delete must agree for patient %s", patient.IpdOpdNo)
		}
	}
}

func TestCanManageDoctor(t *testing.T) {
	ctx := context.Background()
	network, _, engine, _ := setup()

	t.Run("MainHead manages its own doctors", func(t *testing.T) {
		for _, doctor := range []*models.User{network.D1, network.D2} {
			canManage, err := engine.CanManageDoctor(ctx, network.M1, doctor.ID)
			require.NoError(t, err)
			assert.True(t, canManage)

			canAssign, err := engine.CanAssignDoctor(ctx, network.M1, doctor.ID)
			require.NoError(t, err)
			assert.True(t, canAssign)
		}
	})

	t.Run("Foreign doctors are never manageable", func(t *testing.T) {
		canManage, err := engine.CanManageDoctor(ctx, network.M1, network.D3.ID)
		require.NoError(t, err)
		assert.False(t, canManage)

		canAssign, err := engine.CanAssignDoctor(ctx, network.M1, network.D3.ID)
		require.NoError(t, err)
		assert.False(t, canAssign)
	})

	t.Run("MainHead is not a doctor", func(t *testing.T) {
		canManage, err := engine.CanManageDoctor(ctx, network.M1, network.M2.ID)
		require.NoError(t, err)
		assert.False(t, canManage)
	})

	t.Run("Doctors manage nobody", func(t *testing.T) {
		canManage, err := engine.CanManageDoctor(ctx, network.D1, network.D2.ID)
		require.NoError(t, err)
		assert.False(t, canManage)

		canManage, err = engine.CanManageDoctor(ctx, network.D1, network.D1.ID)
		require.NoError(t, err)
		assert.False(t, canManage)
	})

	t.Run("Unknown doctor id", func(t *testing.T) {
		canManage, err := engine.CanManageDoctor(ctx, network.M1, models.UserID("65f000000000000000000000"))
		require.NoError(t, err)
		assert.False(t, canManage)

		canManage, err = engine.CanManageDoctor(ctx, network.M1, "")
		require.NoError(t, err)
		assert.False(t, canManage)
	})
}

func TestNetworkDoctorIDs(t *testing.T) {
	ctx := context.Background()
	network, _, engine, _ := setup()

	doctorIDs, err := engine.NetworkDoctorIDs(ctx, network.M1)
	require.NoError(t, err)
	assert.ElementsMatch(t, []models.UserID{network.D1.ID, network.D2.ID}, doctorIDs)

	doctorIDs, err = engine.NetworkDoctorIDs(ctx, network.D1)
	require.NoError(t, err)
	assert.Empty(t, doctorIDs)
}

func TestPatientScopeForMatchesCanRead(t *testing.T) {
	ctx := context.Background()
	network, patients, engine, _ := setup()

	for _, user := range []*models.User{network.M1, network.M2, network.D1, network.D2, network.D3} {
		scope, err := engine.PatientScopeFor(ctx, user)
		require.NoError(t, err)

		listed, err := patients.FindByScope(ctx, scope)
		require.NoError(t, err)

		all, err := patients.FindByScope(ctx, &models.PatientScope{
			CreatedByIn: []models.UserID{network.M1.ID, network.M2.ID, network.D1.ID, network.D2.ID, network.D3.ID},
		})
		require.NoError(t, err)
		require.Len(t, all, 5)

		visible := 0
		for i := range all {
			canRead, err := engine.CanReadPatient(ctx, user, &all[i])
			require.NoError(t, err)
			if canRead {
				visible++
			}
		}
		assert.Len(t, listed, visible, "scope and CanReadPatient must agree for %s", user.Email)
	}
}

func TestForeignDoctorPatientsExcludedFromMainHeadScope(t *testing.T) {
	ctx := context.Background()
	network, patients, engine, p := setup()

	scope, err := engine.PatientScopeFor(ctx, network.M1)
	require.NoError(t, err)

	listed, err := patients.FindByScope(ctx, scope)
	require.NoError(t, err)

	for _, patient := range listed {
		if patient.DoctorID != nil {
			assert.NotEqual(t, network.D3.ID, *patient.DoctorID)
		}
		assert.NotEqual(t, p.assignedAcrossNets.ID, patient.ID)
	}
}
