package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGracefulServer(t *testing.T) (*GracefulServer, net.Listener) {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	httpServer := &http.Server{Handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})}
	return NewGracefulServer(httpServer, testLogger(), testConfig()), ln
}

func TestGracefulServer_ServesUntilCancelled(t *testing.T) {
	gs, ln := newTestGracefulServer(t)

	var hookRan, workerStopped atomic.Bool
	gs.RegisterShutdownHook(func(ctx context.Context) error {
		hookRan.Store(true)
		return nil
	})
	gs.RegisterWorker(func(ctx context.Context) error {
		<-ctx.Done()
		workerStopped.Store(true)
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- gs.Serve(ctx, ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}

	assert.True(t, hookRan.Load())
	assert.True(t, workerStopped.Load())
}

func TestGracefulServer_HookErrorIsReturned(t *testing.T) {
	gs, ln := newTestGracefulServer(t)

	hookErr := errors.New("flush failed")
	gs.RegisterShutdownHook(func(ctx context.Context) error { return hookErr })

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := gs.Serve(ctx, ln)
	require.Error(t, err)
	assert.ErrorIs(t, err, hookErr)
}

func TestGracefulServer_WorkerErrorStopsServer(t *testing.T) {
	gs, ln := newTestGracefulServer(t)

	workerErr := errors.New("sweeper crashed")
	gs.RegisterWorker(func(ctx context.Context) error { return workerErr })

	done := make(chan error, 1)
	go func() { done <- gs.Serve(context.Background(), ln) }()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, workerErr)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
