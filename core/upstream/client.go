package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

const maxErrorBody = 512

// Client talks to the upstream message stream.
type Client struct {
	cfg    Config
	http   *http.Client
	logger *zap.Logger
	now    func() time.Time
}

// NewClient creates a client for cfg. A nil httpClient gets one with the
// configured timeout.
func NewClient(cfg Config, httpClient *http.Client, logger *zap.Logger) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if _, err := url.ParseRequestURI(cfg.Host); err != nil {
		return nil, fmt.Errorf("%w: upstream.host: %v", ErrConfig, err)
	}
	if httpClient == nil {
		timeout := cfg.TimeoutSeconds
		if timeout <= 0 {
			timeout = 30
		}
		httpClient = &http.Client{Timeout: time.Duration(timeout) * time.Second}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{cfg: cfg, http: httpClient, logger: logger, now: time.Now}, nil
}

func (c *Client) streamURL(action string) string {
	return strings.TrimRight(c.cfg.Host, "/") + "/thirdparty/hotelbrand/stream/" + url.PathEscape(c.cfg.AppID) + "/" + action
}

func (c *Client) newRequest(ctx context.Context, method, target string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, err
	}
	req.SetBasicAuth(c.cfg.Username, c.cfg.Password)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	return req, nil
}

// Poll fetches up to maxMessages pending events. No pending messages is an
// empty slice, not an error.
func (c *Client) Poll(ctx context.Context, maxMessages int) ([]InboundEvent, error) {
	if maxMessages <= 0 {
		maxMessages = 1
	}
	target := c.streamURL("poll") + "?num_of_messages=" + strconv.Itoa(maxMessages)

	req, err := c.newRequest(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build poll request: %v", ErrUnavailable, err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: poll: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read poll body: %w", ErrUnavailable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: poll returned %d: %s", ErrUnavailable, resp.StatusCode, truncate(body))
	}

	events, dropped, err := decodeBatch(body, c.now())
	if err != nil {
		return nil, err
	}
	for _, raw := range dropped {
		c.logger.Warn("Dropping message without receipt handle", zap.ByteString("message", raw))
	}
	return events, nil
}

// Acknowledge removes one message from the upstream queue. Failures concern
// this token only; the upstream redelivers unacknowledged messages.
func (c *Client) Acknowledge(ctx context.Context, receiptToken string) error {
	payload, err := json.Marshal(map[string]string{"receiptHandle": receiptToken})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrAckFailed, err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, c.streamURL("acknowledge"), bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("%w: build request: %v", ErrAckFailed, err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w: %w", ErrAckFailed, ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		if resp.StatusCode >= 500 {
			return fmt.Errorf("%w: %w: status %d: %s", ErrAckFailed, ErrUnavailable, resp.StatusCode, truncate(body))
		}
		return fmt.Errorf("%w: status %d: %s", ErrAckFailed, resp.StatusCode, truncate(body))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

// decodeBatch turns a poll body into events. It returns the raw envelopes
// that carried no receipt token separately.
func decodeBatch(body []byte, receivedAt time.Time) ([]InboundEvent, []json.RawMessage, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("[]")) || bytes.Equal(trimmed, []byte("null")) {
		return []InboundEvent{}, nil, nil
	}

	var raws []json.RawMessage
	switch trimmed[0] {
	case '[':
		if err := json.Unmarshal(trimmed, &raws); err != nil {
			return nil, nil, fmt.Errorf("%w: %v: %s", ErrMalformed, err, truncate(trimmed))
		}
	case '{':
		raws = []json.RawMessage{json.RawMessage(trimmed)}
	default:
		return nil, nil, fmt.Errorf("%w: expected an array or object: %s", ErrMalformed, truncate(trimmed))
	}

	events := make([]InboundEvent, 0, len(raws))
	var dropped []json.RawMessage
	for i, raw := range raws {
		envelope, err := decodeObject(raw)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: message %d: %v", ErrMalformed, i, err)
		}

		token := receiptToken(envelope)
		if token == "" {
			dropped = append(dropped, raw)
			continue
		}

		payload := envelope
		if nested, ok := envelope["payload"].(map[string]any); ok {
			payload = nested
		}

		events = append(events, InboundEvent{
			ReceiptToken: token,
			Payload:      payload,
			ReceivedAt:   receivedAt,
			Raw:          raw,
		})
	}
	return events, dropped, nil
}

func decodeObject(raw json.RawMessage) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var obj map[string]any
	if err := dec.Decode(&obj); err != nil {
		return nil, err
	}
	if obj == nil {
		return nil, errors.New("not an object")
	}
	if err := dec.Decode(&json.RawMessage{}); !errors.Is(err, io.EOF) {
		return nil, errors.New("trailing data after object")
	}
	return obj, nil
}

func receiptToken(envelope map[string]any) string {
	for _, key := range receiptKeys {
		if s, ok := envelope[key].(string); ok && strings.TrimSpace(s) != "" {
			return s
		}
	}
	return ""
}

func truncate(b []byte) string {
	if len(b) > maxErrorBody {
		return string(b[:maxErrorBody]) + "..."
	}
	return string(b)
}
