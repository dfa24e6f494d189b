//go:build unix

package pipeline

import (
	"context"
	"os"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apresai/speak/internal/format"
)

func TestRun_SIGINTDuringPlayback(t *testing.T) {
	dev := &stuckDevice{started: make(chan struct{})}
	conn := &connector{synth: &fakeSynth{chunks: [][]byte{make([]byte, 3200)}}}

	errc := make(chan error, 1)
	go func() {
		_, err := Run(context.Background(), Options{
			Mode:    ModeSSML,
			Inline:  ptr("<speak/>"),
			Format:  ptr(format.Raw16Khz16BitMonoPcm),
			Device:  dev,
			Connect: conn.connect,
		})
		errc <- err
	}()

	select {
	case <-dev.started:
	case <-time.After(2 * time.Second):
		t.Fatal("playback never started")
	}
	// Run's handler is installed before playback starts, so the signal
	// cancels the run instead of killing the test binary.
	require.NoError(t, syscall.Kill(os.Getpid(), syscall.SIGINT))

	select {
	case err := <-errc:
		assert.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, StagePlayback, stageOf(t, err))
	case <-time.After(2 * time.Second):
		t.Fatal("playback kept blocking after SIGINT")
	}
}
