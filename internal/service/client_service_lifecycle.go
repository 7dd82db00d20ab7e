package service

import (
	"sync"

	"github.com/MKhiriev/go-finance-keeper/internal/logger"
)

type lifecycle struct {
	auth      ClientAuthService
	engine    SyncEngine
	scheduler SyncScheduler

	mu          sync.Mutex
	unsubscribe func()

	logger *logger.Logger
}

// NewLifecycle returns a [Lifecycle] wiring auth and connectivity events to
// engine and scheduler.
func NewLifecycle(auth ClientAuthService, engine SyncEngine, scheduler SyncScheduler, logger *logger.Logger) Lifecycle {
	return &lifecycle{
		auth:      auth,
		engine:    engine,
		scheduler: scheduler,
		logger:    logger,
	}
}

func (l *lifecycle) Start() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.unsubscribe != nil {
		return
	}
	l.unsubscribe = l.auth.OnAuthStateChange(l.onAuthStateChange)
}

func (l *lifecycle) Stop() {
	l.mu.Lock()
	unsubscribe := l.unsubscribe
	l.unsubscribe = nil
	l.mu.Unlock()

	if unsubscribe != nil {
		unsubscribe()
	}
}

// onAuthStateChange drops the key of the previous user in both directions;
// a sign-in then syncs right away.
func (l *lifecycle) onAuthStateChange(userID *string) {
	l.engine.ResetKey()

	if userID == nil {
		l.logger.Info().Msg("signed out, encryption key dropped")
		return
	}

	l.logger.Info().Str("user_id", *userID).Msg("signed in, starting sync")
	l.scheduler.SyncNow()
}

func (l *lifecycle) OnConnectivityChange(online bool) {
	l.scheduler.SetOnline(online)
}

func (l *lifecycle) RequestBackgroundSync() {
	l.scheduler.ScheduleSync()
}
