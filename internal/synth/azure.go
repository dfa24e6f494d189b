package synth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/apresai/speak/internal/format"
	"github.com/apresai/speak/internal/output"
)

const (
	// Origin is sent on every request to the speech endpoint.
	Origin = "https://azure.microsoft.com"

	websocketPath = "/cognitiveservices/websocket/v1"
	keyHeader     = "Ocp-Apim-Subscription-Key"
)

// AzureConfig describes one websocket session.
type AzureConfig struct {
	// Endpoint is a host such as eastus.tts.speech.microsoft.com, or a full
	// ws:// or wss:// URL.
	Endpoint string
	Format   format.AudioFormat
	Key      string
	Origin   string
}

// Azure speaks the Azure Speech websocket protocol over one connection.
// It is not safe for concurrent use.
type Azure struct {
	conn   *websocket.Conn
	format format.AudioFormat
	now    func() time.Time
}

// Connect opens the websocket and returns a ready synthesizer.
func Connect(ctx context.Context, cfg AzureConfig) (*Azure, error) {
	ctx, span := tracer.Start(ctx, "synth.Connect",
		trace.WithAttributes(attribute.String("speech.endpoint", cfg.Endpoint)))
	defer span.End()

	if _, ok := cfg.Format.Info(); !ok {
		return nil, fmt.Errorf("connect: unknown audio format %q", cfg.Format)
	}
	u, err := websocketURL(cfg.Endpoint)
	if err != nil {
		return nil, err
	}

	origin := cfg.Origin
	if origin == "" {
		origin = Origin
	}
	h := http.Header{}
	h.Set("Origin", origin)
	if cfg.Key != "" {
		h.Set(keyHeader, cfg.Key)
	}

	slog.DebugContext(ctx, "Connecting to speech service", "url", u)
	conn, resp, err := websocket.DefaultDialer.DialContext(ctx, u, h)
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "dial failed")
		if resp != nil {
			return nil, fmt.Errorf("connect to %s: %w (HTTP %d)", cfg.Endpoint, err, resp.StatusCode)
		}
		return nil, fmt.Errorf("connect to %s: %w", cfg.Endpoint, err)
	}

	return &Azure{conn: conn, format: cfg.Format, now: time.Now}, nil
}

func websocketURL(endpoint string) (string, error) {
	endpoint = strings.TrimSpace(endpoint)
	if endpoint == "" {
		return "", errors.New("no endpoint configured: pass --endpoint or set SPEAK_ENDPOINT")
	}
	raw := endpoint
	if !strings.Contains(endpoint, "://") {
		raw = "wss://" + strings.TrimSuffix(endpoint, "/") + websocketPath
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("invalid endpoint %q: %w", endpoint, err)
	}
	q := u.Query()
	q.Set("X-ConnectionId", newRequestID())
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func newRequestID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

type synthesisContext struct {
	Synthesis struct {
		Audio struct {
			MetadataOptions map[string]bool `json:"metadataOptions"`
			OutputFormat    string          `json:"outputFormat"`
		} `json:"audio"`
	} `json:"synthesis"`
}

const speechConfig = `{"context":{"system":{"name":"SpeechSDK","version":"1.25.0","build":"Go","lang":"Go"},"os":{"platform":"Linux","name":"speak","version":"1"}}}`

func (a *Azure) contextBody() (string, error) {
	var sc synthesisContext
	sc.Synthesis.Audio.MetadataOptions = map[string]bool{
		"bookmarkEnabled":            false,
		"punctuationBoundaryEnabled": false,
		"sentenceBoundaryEnabled":    false,
		"wordBoundaryEnabled":        false,
	}
	sc.Synthesis.Audio.OutputFormat = a.format.String()
	b, err := json.Marshal(sc)
	return string(b), err
}

// Synthesize sends ssml as one turn and forwards audio to sink until the
// service reports turn.end. Errors returned by sink are passed back
// unchanged.
func (a *Azure) Synthesize(ctx context.Context, ssml string, sink output.Sink) (err error) {
	if strings.TrimSpace(ssml) == "" {
		return ErrEmptySSML
	}
	ctx, span := tracer.Start(ctx, "synth.Synthesize", trace.WithAttributes(
		attribute.String("speech.provider", ProviderAzure),
		attribute.String("speech.format", a.format.String()),
		attribute.Int("speech.ssml_length", len(ssml)),
	))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	stop := context.AfterFunc(ctx, func() { _ = a.conn.Close() })
	defer stop()

	id := newRequestID()
	ctxBody, err := a.contextBody()
	if err != nil {
		return fmt.Errorf("encode synthesis context: %w", err)
	}
	msgs := [][]byte{
		textMessage("speech.config", id, "application/json", speechConfig, a.now()),
		textMessage("synthesis.context", id, "application/json", ctxBody, a.now()),
		textMessage("ssml", id, "application/ssml+xml", ssml, a.now()),
	}
	for _, m := range msgs {
		if err := a.conn.WriteMessage(websocket.TextMessage, m); err != nil {
			return a.transportError(ctx, "send request", err)
		}
	}
	slog.DebugContext(ctx, "Sent synthesis request", "request_id", id, "format", a.format)

	var chunks, total int
	for {
		kind, data, err := a.conn.ReadMessage()
		if err != nil {
			return a.transportError(ctx, "receive audio", err)
		}

		switch kind {
		case websocket.TextMessage:
			h, _, err := parseTextMessage(data)
			if err != nil {
				return &SynthesisError{Provider: ProviderAzure, Message: "malformed message", Cause: err}
			}
			switch h.path() {
			case "turn.end":
				span.SetAttributes(attribute.Int("speech.chunks", chunks), attribute.Int("speech.bytes", total))
				slog.DebugContext(ctx, "Turn ended", "chunks", chunks, "bytes", total)
				return sink.Consume(nil)
			default:
				slog.DebugContext(ctx, "Received message", "path", h.path())
			}

		case websocket.BinaryMessage:
			h, payload, err := parseBinaryMessage(data)
			if err != nil {
				return &SynthesisError{Provider: ProviderAzure, Message: "malformed audio frame", Cause: err}
			}
			if h.path() != "audio" || len(payload) == 0 {
				continue
			}
			chunks++
			total += len(payload)
			if err := sink.Consume(payload); err != nil {
				return err
			}
		}
	}
}

// transportError maps a websocket failure. A close frame from the service
// carries its error text; anything after cancellation is reported as the
// context error.
func (a *Azure) transportError(ctx context.Context, op string, err error) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}
	var ce *websocket.CloseError
	if errors.As(err, &ce) {
		return &SynthesisError{
			Provider: ProviderAzure,
			Code:     strconv.Itoa(ce.Code),
			Message:  closeText(ce),
		}
	}
	return &SynthesisError{Provider: ProviderAzure, Message: op + " failed", Cause: err}
}

func closeText(ce *websocket.CloseError) string {
	if ce.Text != "" {
		return ce.Text
	}
	return "connection closed by service"
}

// Close ends the session politely, then drops the connection.
func (a *Azure) Close() error {
	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	_ = a.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second))
	return a.conn.Close()
}
