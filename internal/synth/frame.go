package synth

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"strings"
	"time"
)

const timestampLayout = "2006-01-02T15:04:05.000Z"

// header is the ordered "Name: value" block that prefixes every message.
type header struct {
	keys   []string
	values map[string]string
}

func (h *header) set(key, value string) {
	if h.values == nil {
		h.values = make(map[string]string)
	}
	if _, ok := h.values[key]; !ok {
		h.keys = append(h.keys, key)
	}
	h.values[key] = value
}

func (h header) get(key string) string {
	for k, v := range h.values {
		if strings.EqualFold(k, key) {
			return v
		}
	}
	return ""
}

func (h header) path() string { return h.get("Path") }

func (h header) String() string {
	var b strings.Builder
	for _, k := range h.keys {
		b.WriteString(k)
		b.WriteString(": ")
		b.WriteString(h.values[k])
		b.WriteString("\r\n")
	}
	return b.String()
}

func parseHeader(block string) header {
	var h header
	for _, line := range strings.Split(block, "\r\n") {
		k, v, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		h.set(strings.TrimSpace(k), strings.TrimSpace(v))
	}
	return h
}

// textMessage builds an outgoing text frame.
func textMessage(path, requestID, contentType, body string, now time.Time) []byte {
	var h header
	h.set("Path", path)
	h.set("X-RequestId", requestID)
	h.set("X-Timestamp", now.UTC().Format(timestampLayout))
	h.set("Content-Type", contentType)
	return []byte(h.String() + "\r\n" + body)
}

// parseTextMessage splits an incoming text frame into headers and body.
func parseTextMessage(data []byte) (header, string, error) {
	block, body, ok := strings.Cut(string(data), "\r\n\r\n")
	if !ok {
		return header{}, "", errors.New("text message has no header terminator")
	}
	return parseHeader(block), body, nil
}

// parseBinaryMessage decodes a frame laid out as a 2-byte big-endian header
// length, the header text, then the payload.
func parseBinaryMessage(data []byte) (header, []byte, error) {
	if len(data) < 2 {
		return header{}, nil, fmt.Errorf("binary message too short: %d bytes", len(data))
	}
	n := int(binary.BigEndian.Uint16(data))
	if 2+n > len(data) {
		return header{}, nil, fmt.Errorf("binary header length %d exceeds message size %d", n, len(data))
	}
	block := bytes.TrimRight(data[2:2+n], "\r\n")
	return parseHeader(string(block)), data[2+n:], nil
}

// binaryMessage is the inverse of parseBinaryMessage. The service never
// receives binary frames; tests use it to play the server side.
func binaryMessage(h header, payload []byte) []byte {
	block := h.String()
	out := make([]byte, 2, 2+len(block)+len(payload))
	binary.BigEndian.PutUint16(out, uint16(len(block)))
	out = append(out, block...)
	return append(out, payload...)
}
