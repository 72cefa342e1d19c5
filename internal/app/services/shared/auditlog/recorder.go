package auditlog

import (
	"context"
	"sleepclinic-service/internal/app/contracts"
	"sleepclinic-service/internal/app/models"
	"sleepclinic-service/internal/pkg/constvars"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Recorder stamps and publishes audit events. Publish failures are only
// logged.
type Recorder struct {
	Publisher contracts.AuditPublisher
	Log       *zap.Logger
	Now       func() time.Time
}

func NewRecorder(publisher contracts.AuditPublisher, logger *zap.Logger) *Recorder {
	return &Recorder{
		Publisher: publisher,
		Log:       logger,
		Now:       time.Now,
	}
}

func (r *Recorder) Record(ctx context.Context, actor *models.User, action, entity, entityID string) {
	if r == nil || r.Publisher == nil {
		return
	}

	event := &models.AuditEvent{
		ID:         uuid.NewString(),
		Action:     action,
		Entity:     entity,
		EntityID:   entityID,
		OccurredAt: r.Now().UTC(),
	}
	if actor != nil {
		event.ActorID = actor.ID.String()
		event.ActorRole = actor.Role.String()
	}

	err := r.Publisher.Publish(ctx, event)
	if err != nil {
		requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
		r.Log.Error("Recorder.Record error publishing audit event",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingAuditActionKey, action),
			zap.String("entity", entity),
			zap.String("entity_id", entityID),
			zap.Error(err),
		)
	}
}
