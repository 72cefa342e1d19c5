package sessions

import (
	"context"
	"sleepclinic-service/internal/app/contracts"
	"sleepclinic-service/internal/pkg/constvars"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const (
	sweeperLockKey     = "sessions:sweeper:leader"
	sweeperLockTTL     = 2 * time.Minute
	defaultSweeperCron = "@hourly"
)

// Sweeper periodically deletes expired session rows. Only the instance that
// holds the leader lock sweeps on a given tick. An empty CronSpec disables
// it, expired rows then stay until deleted explicitly.
type Sweeper struct {
	SessionRepository contracts.SessionRepository
	Locker            contracts.LockerService
	Log               *zap.Logger
	CronSpec          string
	Now               func() time.Time

	cron   *cron.Cron
	cancel context.CancelFunc
}

func NewSweeper(sessionRepository contracts.SessionRepository, locker contracts.LockerService, logger *zap.Logger, cronSpec string) *Sweeper {
	return &Sweeper{
		SessionRepository: sessionRepository,
		Locker:            locker,
		Log:               logger,
		CronSpec:          cronSpec,
		Now:               time.Now,
	}
}

func (s *Sweeper) Start(ctx context.Context) {
	if s.CronSpec == "" {
		s.Log.Info("sessions.Sweeper disabled")
		return
	}

	runCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	c := cron.New()
	_, err := c.AddFunc(s.CronSpec, func() { s.RunOnce(runCtx) })
	if err != nil {
		s.Log.Warn("sessions.Sweeper invalid cron spec, falling back to default",
			zap.String(constvars.LoggingCronSpecKey, s.CronSpec),
			zap.Error(err),
		)
		c = cron.New()
		_, _ = c.AddFunc(defaultSweeperCron, func() { s.RunOnce(runCtx) })
	}
	c.Start()
	s.cron = c
}

// Stop waits for a running sweep to finish.
func (s *Sweeper) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
	if s.cron != nil {
		<-s.cron.Stop().Done()
	}
}

// RunOnce returns the number of deleted sessions, zero when another instance
// holds the lock.
func (s *Sweeper) RunOnce(ctx context.Context) int64 {
	acquired, lockValue, err := s.Locker.TryLock(ctx, sweeperLockKey, sweeperLockTTL)
	if err != nil {
		s.Log.Warn("sessions.Sweeper leader lock attempt failed", zap.Error(err))
		return 0
	}
	if !acquired {
		s.Log.Info("sessions.Sweeper leader lock held by another instance")
		return 0
	}
	defer func() {
		if err := s.Locker.Unlock(ctx, sweeperLockKey, lockValue); err != nil {
			s.Log.Warn("sessions.Sweeper failed to release leader lock", zap.Error(err))
		}
	}()

	deleted, err := s.SessionRepository.DeleteExpiredSessions(ctx, s.Now())
	if err != nil {
		s.Log.Error("sessions.Sweeper error deleting expired sessions", zap.Error(err))
		return 0
	}

	s.Log.Info("sessions.Sweeper deleted expired sessions", zap.Int64(constvars.LoggingCountKey, deleted))
	return deleted
}
