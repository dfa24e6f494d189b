package progress

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStatusRenderer_PlainPrintsStageChangesOnly(t *testing.T) {
	var buf bytes.Buffer
	r := newStatusRenderer(&buf, false, 80)

	r.Handle(Event{Stage: StageSynthesize, Message: "Synthesizing", Bytes: 10})
	r.Handle(Event{Stage: StageSynthesize, Message: "Synthesizing", Bytes: 20})
	r.Handle(Event{Stage: StageComplete, Message: "Done", Bytes: 2048, OutputFile: "out.wav"})
	r.Finish()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 3)
	assert.Contains(t, lines[0], "Synthesizing")
	assert.Contains(t, lines[1], "Done")
	assert.Contains(t, lines[2], "Audio saved to out.wav (2.0 KiB)")
}

func TestStatusRenderer_TTYClearsLine(t *testing.T) {
	var buf bytes.Buffer
	r := newStatusRenderer(&buf, true, 40)

	r.Handle(Event{Stage: StageSynthesize, Message: "Synthesizing", Bytes: 512})
	r.Handle(Event{Stage: StagePlayback, Message: "Playing audio"})
	r.Handle(Event{Stage: StageComplete, Message: "Playback finished"})
	r.Finish()

	out := buf.String()
	assert.Contains(t, out, "\r\033[2K  Synthesizing  512 B")
	assert.True(t, strings.HasSuffix(out, "Playback finished (0:00)\n"))
}

func TestStatusRenderer_FinishReportsError(t *testing.T) {
	var buf bytes.Buffer
	r := newStatusRenderer(&buf, false, 80)
	r.Handle(Event{Stage: StageConnect, Message: "Connecting", Error: errors.New("refused")})
	r.Finish()
	assert.Contains(t, buf.String(), "Error: refused")
}

func TestFormatBytes(t *testing.T) {
	assert.Equal(t, "0 B", FormatBytes(0))
	assert.Equal(t, "1023 B", FormatBytes(1023))
	assert.Equal(t, "1.5 KiB", FormatBytes(1536))
	assert.Equal(t, "3.0 MiB", FormatBytes(3*1024*1024))
}

func TestFormatElapsed(t *testing.T) {
	assert.Equal(t, "0:00", formatElapsed(0))
	assert.Equal(t, "1:05", formatElapsed(65*time.Second))
}
