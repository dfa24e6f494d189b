package synth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextMessage_Layout(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 30, 45, 123_000_000, time.UTC)
	msg := textMessage("ssml", "abc123", "application/ssml+xml", "<speak/>", now)

	assert.Equal(t,
		"Path: ssml\r\nX-RequestId: abc123\r\nX-Timestamp: 2024-03-01T12:30:45.123Z\r\nContent-Type: application/ssml+xml\r\n\r\n<speak/>",
		string(msg))

	h, body, err := parseTextMessage(msg)
	require.NoError(t, err)
	assert.Equal(t, "ssml", h.path())
	assert.Equal(t, "abc123", h.get("x-requestid"))
	assert.Equal(t, "<speak/>", body)
}

func TestParseTextMessage_NoTerminator(t *testing.T) {
	_, _, err := parseTextMessage([]byte("Path: turn.end"))
	assert.Error(t, err)
}

func TestBinaryMessage_RoundTrip(t *testing.T) {
	var h header
	h.set("X-RequestId", "abc")
	h.set("Path", "audio")
	payload := []byte{0, 1, 2, 3, 255}

	got, body, err := parseBinaryMessage(binaryMessage(h, payload))
	require.NoError(t, err)
	assert.Equal(t, "audio", got.path())
	assert.Equal(t, payload, body)
}

func TestParseBinaryMessage_Malformed(t *testing.T) {
	_, _, err := parseBinaryMessage([]byte{0})
	assert.Error(t, err)

	_, _, err = parseBinaryMessage([]byte{0, 50, 'P'})
	assert.Error(t, err)
}

func TestParseBinaryMessage_EmptyPayload(t *testing.T) {
	var h header
	h.set("Path", "audio")
	got, body, err := parseBinaryMessage(binaryMessage(h, nil))
	require.NoError(t, err)
	assert.Equal(t, "audio", got.path())
	assert.Empty(t, body)
}
