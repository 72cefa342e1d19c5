package auditlog

import (
	"context"
	"sleepclinic-service/internal/app/models"
	"sleepclinic-service/internal/app/services/core/inmemory"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRecorder_Record(t *testing.T) {
	ctx := context.Background()
	occurredAt := time.Date(2024, time.March, 15, 9, 0, 0, 0, time.FixedZone("IST", 19800))

	t.Run("Publishes a stamped event", func(t *testing.T) {
		publisher := &inmemory.AuditPublisher{}
		recorder := NewRecorder(publisher, zap.NewNop())
		recorder.Now = func() time.Time { return occurredAt }

		actor := &models.User{ID: "u1", Role: models.RoleMainHead}
		recorder.Record(ctx, actor, "create", "patient", "p1")

		require.Len(t, publisher.Events, 1)
		event := publisher.Events[0]
		assert.NotEmpty(t, event.ID)
		assert.Equal(t, "create", event.Action)
		assert.Equal(t, "patient", event.Entity)
		assert.Equal(t, "p1", event.EntityID)
		assert.Equal(t, "u1", event.ActorID)
		assert.Equal(t, "mainHead", event.ActorRole)
		assert.Equal(t, time.UTC, event.OccurredAt.Location())
		assert.True(t, occurredAt.Equal(event.OccurredAt))
	})

	t.Run("Anonymous actor leaves actor fields empty", func(t *testing.T) {
		publisher := &inmemory.AuditPublisher{}
		recorder := NewRecorder(publisher, zap.NewNop())

		recorder.Record(ctx, nil, "logout", "session", "")

		require.Len(t, publisher.Events, 1)
		assert.Empty(t, publisher.Events[0].ActorID)
		assert.Empty(t, publisher.Events[0].ActorRole)
	})

	t.Run("Publish failure does not panic", func(t *testing.T) {
		publisher := &inmemory.AuditPublisher{Err: assert.AnError}
		recorder := NewRecorder(publisher, zap.NewNop())

		assert.NotPanics(t, func() {
			recorder.Record(ctx, nil, "delete", "patient", "p1")
		})
		assert.Empty(t, publisher.Events)
	})

	t.Run("Nil recorder and nil publisher are no-ops", func(t *testing.T) {
		var recorder *Recorder
		assert.NotPanics(t, func() {
			recorder.Record(ctx, nil, "delete", "patient", "p1")
		})

		assert.NotPanics(t, func() {
			NewRecorder(nil, zap.NewNop()).Record(ctx, nil, "delete", "patient", "p1")
		})
	})
}
