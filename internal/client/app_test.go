package client

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/MKhiriev/go-finance-keeper/internal/config"
	"github.com/MKhiriev/go-finance-keeper/internal/logger"
	"github.com/MKhiriev/go-finance-keeper/internal/mock"
	"github.com/MKhiriev/go-finance-keeper/internal/service"
	"github.com/MKhiriev/go-finance-keeper/internal/tui"
	"github.com/MKhiriev/go-finance-keeper/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var alice = models.Session{UserID: "u-1", Login: "alice", Token: "jwt"}

type fakeAuth struct {
	service.ClientAuthService

	restored   bool
	restoreErr error
	session    models.Session
	signedIn   bool
	logouts    int
}

func (f *fakeAuth) RestoreSession(context.Context) (bool, error) {
	if f.restored {
		f.signedIn = true
	}
	return f.restored, f.restoreErr
}

func (f *fakeAuth) CurrentUser() (models.Session, bool) {
	return f.session, f.signedIn
}

func (f *fakeAuth) Logout(context.Context) error {
	f.logouts++
	f.signedIn = false
	// the next run must go through the sign-in flow
	f.restored = false
	return nil
}

type fakeLifecycle struct {
	mu      sync.Mutex
	started bool
	stopped bool
	online  []bool
}

func (f *fakeLifecycle) Start()                 { f.started = true }
func (f *fakeLifecycle) Stop()                  { f.stopped = true }
func (f *fakeLifecycle) RequestBackgroundSync() {}
func (f *fakeLifecycle) OnConnectivityChange(online bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.online = append(f.online, online)
}

type fakeSyncJob struct {
	interval time.Duration
	stopped  bool
}

func (f *fakeSyncJob) Start(_ context.Context, interval time.Duration) { f.interval = interval }
func (f *fakeSyncJob) Stop()                                            { f.stopped = true }

// scriptedUI replays a fixed sequence of screens.
type scriptedUI struct {
	authResults []error
	logouts     []bool

	authCalls int
	mainCalls []models.Session
}

func (u *scriptedUI) AuthFlow(context.Context) (models.Session, error) {
	err := u.authResults[u.authCalls]
	u.authCalls++
	if err != nil {
		return models.Session{}, err
	}
	return alice, nil
}

func (u *scriptedUI) MainLoop(_ context.Context, session models.Session) (bool, error) {
	logout := u.logouts[len(u.mainCalls)]
	u.mainCalls = append(u.mainCalls, session)
	return logout, nil
}

type appEnv struct {
	app       *App
	auth      *fakeAuth
	lifecycle *fakeLifecycle
	job       *fakeSyncJob
}

func newAppEnv(t *testing.T, auth *fakeAuth, ui UI) *appEnv {
	t.Helper()

	ctrl := gomock.NewController(t)
	scheduler := mock.NewMockSyncScheduler(ctrl)
	scheduler.EXPECT().Start(gomock.Any())
	scheduler.EXPECT().Stop()

	prober := mock.NewMockPinger(ctrl)
	prober.EXPECT().Ping(gomock.Any()).Return(nil).AnyTimes()

	env := &appEnv{auth: auth, lifecycle: &fakeLifecycle{}, job: &fakeSyncJob{}}
	services := &service.ClientServices{
		AuthService:   auth,
		SyncScheduler: scheduler,
		Lifecycle:     env.lifecycle,
		SyncJob:       env.job,
	}

	cfg := config.ClientWorkers{SyncInterval: time.Minute, ConnectivityInterval: time.Hour}
	app, err := NewApp(services, ui, prober, cfg, logger.Nop())
	require.NoError(t, err)
	env.app = app

	return env
}

func TestApp_RestoredSessionSkipsSignIn(t *testing.T) {
	ui := &scriptedUI{logouts: []bool{false}}
	env := newAppEnv(t, &fakeAuth{restored: true, session: alice}, ui)

	require.NoError(t, env.app.Run(context.Background()))

	assert.Zero(t, ui.authCalls)
	assert.Equal(t, []models.Session{alice}, ui.mainCalls)
	assert.True(t, env.lifecycle.started)
	assert.True(t, env.lifecycle.stopped)
	assert.Equal(t, time.Minute, env.job.interval)
	assert.True(t, env.job.stopped)
}

func TestApp_SignInFlow(t *testing.T) {
	ui := &scriptedUI{authResults: []error{nil}, logouts: []bool{false}}
	env := newAppEnv(t, &fakeAuth{}, ui)

	require.NoError(t, env.app.Run(context.Background()))

	assert.Equal(t, 1, ui.authCalls)
	assert.Len(t, ui.mainCalls, 1)
}

func TestApp_RestoreErrorFallsBackToSignIn(t *testing.T) {
	ui := &scriptedUI{authResults: []error{nil}, logouts: []bool{false}}
	env := newAppEnv(t, &fakeAuth{restoreErr: errors.New("corrupted session")}, ui)

	require.NoError(t, env.app.Run(context.Background()))
	assert.Equal(t, 1, ui.authCalls)
}

func TestApp_LogoutReturnsToSignIn(t *testing.T) {
	ui := &scriptedUI{authResults: []error{nil}, logouts: []bool{true, false}}
	env := newAppEnv(t, &fakeAuth{restored: true, session: alice}, ui)

	require.NoError(t, env.app.Run(context.Background()))

	assert.Equal(t, 1, env.auth.logouts)
	assert.Equal(t, 1, ui.authCalls)
	assert.Len(t, ui.mainCalls, 2)
}

func TestApp_UserQuitIsNotAnError(t *testing.T) {
	ui := &scriptedUI{authResults: []error{tui.ErrUserQuit}}
	env := newAppEnv(t, &fakeAuth{}, ui)

	require.NoError(t, env.app.Run(context.Background()))
	assert.Empty(t, ui.mainCalls)
}

func TestApp_UIErrorIsReturned(t *testing.T) {
	boom := errors.New("terminal gone")
	ui := &scriptedUI{authResults: []error{boom}}
	env := newAppEnv(t, &fakeAuth{}, ui)

	assert.ErrorIs(t, env.app.Run(context.Background()), boom)
}

func TestNewApp_RequiresDependencies(t *testing.T) {
	_, err := NewApp(nil, &scriptedUI{}, nil, config.ClientWorkers{}, logger.Nop())
	assert.Error(t, err)
}
