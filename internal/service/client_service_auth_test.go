package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/MKhiriev/go-finance-keeper/internal/adapter"
	"github.com/MKhiriev/go-finance-keeper/internal/app"
	"github.com/MKhiriev/go-finance-keeper/internal/logger"
	"github.com/MKhiriev/go-finance-keeper/internal/mock"
	"github.com/MKhiriev/go-finance-keeper/internal/store"
	"github.com/MKhiriev/go-finance-keeper/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type authTestEnv struct {
	settings *mock.MockSettingsRepository
	adapter  *mock.MockServerAdapter
	auth     ClientAuthService
	events   []*string
}

func newAuthTestEnv(t *testing.T) *authTestEnv {
	t.Helper()
	ctrl := gomock.NewController(t)

	env := &authTestEnv{
		settings: mock.NewMockSettingsRepository(ctrl),
		adapter:  mock.NewMockServerAdapter(ctrl),
	}
	env.auth = NewClientAuthService(env.settings, env.adapter, logger.Nop())
	env.auth.OnAuthStateChange(func(userID *string) {
		env.events = append(env.events, userID)
	})
	return env
}

var aliceSession = models.Session{UserID: "u-1", Login: "alice", Token: "jwt"}

// ── Register / Login ─────────────────────────────────────────────────────────

func TestClientAuthService_Register(t *testing.T) {
	env := newAuthTestEnv(t)
	ctx := context.Background()

	env.adapter.EXPECT().Register(ctx, models.User{Login: "alice", Password: "secret"}).Return(aliceSession, nil)
	env.settings.EXPECT().SaveSession(ctx, aliceSession).Return(nil)
	env.adapter.EXPECT().SetToken("jwt")

	session, err := env.auth.Register(ctx, "alice", "secret")
	require.NoError(t, err)
	assert.Equal(t, aliceSession, session)

	current, ok := env.auth.CurrentUser()
	assert.True(t, ok)
	assert.Equal(t, aliceSession, current)

	require.Len(t, env.events, 1)
	require.NotNil(t, env.events[0])
	assert.Equal(t, "u-1", *env.events[0])
}

func TestClientAuthService_Register_InvalidInput(t *testing.T) {
	env := newAuthTestEnv(t)

	_, err := env.auth.Register(context.Background(), "", "secret")
	assert.ErrorIs(t, err, ErrInvalidDataProvided)

	_, err = env.auth.Register(context.Background(), "alice", "")
	assert.ErrorIs(t, err, ErrInvalidDataProvided)

	assert.Empty(t, env.events)
}

func TestClientAuthService_Register_LoginTaken(t *testing.T) {
	env := newAuthTestEnv(t)
	conflict := fmt.Errorf("%w: %s", adapter.ErrConflict, app.MsgLoginAlreadyExists)

	env.adapter.EXPECT().Register(gomock.Any(), gomock.Any()).Return(models.Session{}, conflict)

	_, err := env.auth.Register(context.Background(), "alice", "secret")

	assert.ErrorIs(t, err, ErrRegisterOnServer)
	assert.ErrorIs(t, err, store.ErrLoginAlreadyExists)
	_, ok := env.auth.CurrentUser()
	assert.False(t, ok)
}

func TestClientAuthService_Login(t *testing.T) {
	tests := []struct {
		name      string
		serverErr error
		saveErr   error
		wantErr   []error
		signedIn  bool
	}{
		{
			name:     "success",
			signedIn: true,
		},
		{
			name:      "wrong password",
			serverErr: fmt.Errorf("%w: %s", adapter.ErrUnauthorized, app.MsgInvalidLoginPassword),
			wantErr:   []error{ErrLoginOnServer, ErrWrongPassword},
		},
		{
			name:      "server unreachable",
			serverErr: fmt.Errorf("%w: dial tcp: connection refused", adapter.ErrNetwork),
			wantErr:   []error{ErrLoginOnServer, ErrNetwork},
		},
		{
			name:    "session cannot be persisted",
			saveErr: store.ErrStorage,
			wantErr: []error{store.ErrStorage},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newAuthTestEnv(t)

			if tt.serverErr != nil {
				env.adapter.EXPECT().Login(gomock.Any(), gomock.Any()).Return(models.Session{}, tt.serverErr)
			} else {
				env.adapter.EXPECT().Login(gomock.Any(), models.User{Login: "alice", Password: "secret"}).Return(aliceSession, nil)
				env.settings.EXPECT().SaveSession(gomock.Any(), aliceSession).Return(tt.saveErr)
				if tt.saveErr == nil {
					env.adapter.EXPECT().SetToken("jwt")
				}
			}

			_, err := env.auth.Login(context.Background(), "alice", "secret")
			for _, want := range tt.wantErr {
				assert.ErrorIs(t, err, want)
			}
			if len(tt.wantErr) == 0 {
				assert.NoError(t, err)
			}

			_, ok := env.auth.CurrentUser()
			assert.Equal(t, tt.signedIn, ok)
			assert.Equal(t, tt.signedIn, len(env.events) == 1)
		})
	}
}

// ── Logout ───────────────────────────────────────────────────────────────────

func TestClientAuthService_Logout(t *testing.T) {
	env := newAuthTestEnv(t)
	ctx := context.Background()

	env.adapter.EXPECT().Login(ctx, gomock.Any()).Return(aliceSession, nil)
	env.settings.EXPECT().SaveSession(ctx, aliceSession).Return(nil)
	env.adapter.EXPECT().SetToken("jwt")
	_, err := env.auth.Login(ctx, "alice", "secret")
	require.NoError(t, err)

	env.settings.EXPECT().ClearSession(ctx).Return(nil)
	env.adapter.EXPECT().SetToken("")

	require.NoError(t, env.auth.Logout(ctx))

	_, ok := env.auth.CurrentUser()
	assert.False(t, ok)
	require.Len(t, env.events, 2)
	assert.Nil(t, env.events[1])
}

// Повторный выход не рассылает событие.
func TestClientAuthService_Logout_WhenSignedOut(t *testing.T) {
	env := newAuthTestEnv(t)

	env.settings.EXPECT().ClearSession(gomock.Any()).Return(nil)
	env.adapter.EXPECT().SetToken("")

	require.NoError(t, env.auth.Logout(context.Background()))
	assert.Empty(t, env.events)
}

func TestClientAuthService_Logout_StorageError(t *testing.T) {
	env := newAuthTestEnv(t)

	env.settings.EXPECT().ClearSession(gomock.Any()).Return(store.ErrStorage)

	assert.ErrorIs(t, env.auth.Logout(context.Background()), store.ErrStorage)
}

// ── RestoreSession ───────────────────────────────────────────────────────────

func TestClientAuthService_RestoreSession(t *testing.T) {
	tests := []struct {
		name     string
		stored   models.Session
		readErr  error
		want     bool
		wantErr  error
		notified bool
	}{
		{name: "valid session", stored: aliceSession, want: true, notified: true},
		{name: "nothing stored", readErr: store.ErrLocalSessionNotFound},
		{name: "session without token", stored: models.Session{UserID: "u-1"}},
		{name: "storage failure", readErr: store.ErrStorage, wantErr: store.ErrStorage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newAuthTestEnv(t)

			env.settings.EXPECT().GetSession(gomock.Any()).Return(tt.stored, tt.readErr)
			if tt.want {
				env.adapter.EXPECT().SetToken(tt.stored.Token)
			}

			got, err := env.auth.RestoreSession(context.Background())
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.notified, len(env.events) == 1)
		})
	}
}

func TestClientAuthService_Unsubscribe(t *testing.T) {
	ctrl := gomock.NewController(t)
	settings := mock.NewMockSettingsRepository(ctrl)
	serverAdapter := mock.NewMockServerAdapter(ctrl)
	auth := NewClientAuthService(settings, serverAdapter, logger.Nop())

	calls := 0
	unsubscribe := auth.OnAuthStateChange(func(*string) { calls++ })

	settings.EXPECT().GetSession(gomock.Any()).Return(aliceSession, nil).Times(2)
	serverAdapter.EXPECT().SetToken("jwt").Times(2)

	_, err := auth.RestoreSession(context.Background())
	require.NoError(t, err)
	unsubscribe()
	_, err = auth.RestoreSession(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, calls)
}

// ── mapAdapterError ──────────────────────────────────────────────────────────

func TestMapAdapterError(t *testing.T) {
	network := fmt.Errorf("%w: timeout", adapter.ErrNetwork)
	unknown := errors.New("something else")

	tests := []struct {
		name string
		in   error
		want error
	}{
		{"nil", nil, nil},
		{"network passes through", network, adapter.ErrNetwork},
		{"bad request invalid data", fmt.Errorf("%w: %s", adapter.ErrBadRequest, app.MsgInvalidDataProvided), ErrInvalidDataProvided},
		{"bad request no user id", fmt.Errorf("%w: %s", adapter.ErrBadRequest, app.MsgNoUserIDProvided), ErrValidationNoUserID},
		{"bad request no entry id", fmt.Errorf("%w: %s", adapter.ErrBadRequest, app.MsgNoEntryIDProvided), ErrValidationNoEntryID},
		{"bad request no data", fmt.Errorf("%w: %s", adapter.ErrBadRequest, app.MsgNoEntryDataProvided), ErrValidationNoEntryData},
		{"bad request id mismatch", fmt.Errorf("%w: %s", adapter.ErrBadRequest, app.MsgEntryIDMismatch), ErrValidationEntryIDMatch},
		{"bad request other", fmt.Errorf("%w: oops", adapter.ErrBadRequest), ErrInvalidDataProvided},
		{"wrong password", fmt.Errorf("%w: %s", adapter.ErrUnauthorized, app.MsgInvalidLoginPassword), ErrWrongPassword},
		{"token expired", fmt.Errorf("%w: %s", adapter.ErrUnauthorized, app.MsgTokenIsExpired), ErrTokenIsExpired},
		{"token invalid", fmt.Errorf("%w: %s", adapter.ErrUnauthorized, app.MsgTokenIsExpiredOrInvalid), ErrTokenIsExpiredOrInvalid},
		{"unauthorized other", fmt.Errorf("%w: ", adapter.ErrUnauthorized), ErrNotAuthenticated},
		{"forbidden", fmt.Errorf("%w: %s", adapter.ErrForbidden, app.MsgAccessDenied), ErrUnauthorizedAccessToDifferentUserData},
		{"login taken", fmt.Errorf("%w: %s", adapter.ErrConflict, app.MsgLoginAlreadyExists), store.ErrLoginAlreadyExists},
		{"registration failed", fmt.Errorf("%w: %s", adapter.ErrInternalServerError, app.MsgRegistrationFailed), ErrRegisterOnServer},
		{"login failed", fmt.Errorf("%w: %s", adapter.ErrInternalServerError, app.MsgLoginFailed), ErrLoginOnServer},
		{"token creation failed", fmt.Errorf("%w: %s", adapter.ErrInternalServerError, app.MsgTokenCreationFailed), ErrTokenCreationFailed},
		{"unknown passes through", unknown, unknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mapAdapterError(tt.in)
			if tt.want == nil {
				assert.NoError(t, got)
				return
			}
			assert.ErrorIs(t, got, tt.want)
		})
	}
}

func TestExtractBody(t *testing.T) {
	assert.Equal(t, "login already exists", extractBody(errors.New("conflict: login already exists")))
	assert.Equal(t, "plain", extractBody(errors.New("plain")))
}
