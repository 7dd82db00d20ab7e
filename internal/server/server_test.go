package server

import (
	"context"
	"io"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/MKhiriev/go-finance-keeper/internal/config"
	"github.com/MKhiriev/go-finance-keeper/internal/handler"
	httpHandler "github.com/MKhiriev/go-finance-keeper/internal/handler/http"
	"github.com/MKhiriev/go-finance-keeper/internal/logger"
	"github.com/MKhiriev/go-finance-keeper/internal/mock"
	"github.com/MKhiriev/go-finance-keeper/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func freeAddress(t *testing.T) string {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	require.NoError(t, l.Close())
	return addr
}

func TestNewServer_NoHandlers(t *testing.T) {
	s, err := NewServer(&handler.Handlers{}, config.Server{HTTPAddress: ":8080"}, logger.Nop())

	assert.ErrorIs(t, err, errNoServersAreCreated)
	assert.Nil(t, s)
}

func TestServer_ServesUntilCancelled(t *testing.T) {
	ctrl := gomock.NewController(t)
	info := mock.NewMockAppInfoService(ctrl)
	info.EXPECT().GetAppVersion(gomock.Any()).Return("1.0.0").AnyTimes()

	cfg := config.Server{HTTPAddress: freeAddress(t), RequestTimeout: time.Second}
	handlers := &handler.Handlers{
		HTTP: httpHandler.NewHandler(&service.Services{AppInfoService: info}, logger.Nop()),
	}

	srv, err := NewServer(handlers, cfg, logger.Nop())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		srv.(*server).run(ctx)
		close(done)
	}()

	var body string
	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + cfg.HTTPAddress + "/api/version")
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		b, _ := io.ReadAll(resp.Body)
		body = string(b)
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)
	assert.Equal(t, "1.0.0", body)

	cancel()
	select {
	case <-done:
	case <-time.After(shutdownTimeout):
		t.Fatal("server did not stop")
	}
}

func TestServer_ListenerFailureStopsRun(t *testing.T) {
	busy, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer busy.Close()

	cfg := config.Server{HTTPAddress: busy.Addr().String(), RequestTimeout: time.Second}
	handlers := &handler.Handlers{HTTP: httpHandler.NewHandler(&service.Services{}, logger.Nop())}

	srv, err := NewServer(handlers, cfg, logger.Nop())
	require.NoError(t, err)

	done := make(chan struct{})
	go func() {
		srv.(*server).run(context.Background())
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("run did not return after listen failure")
	}
}
