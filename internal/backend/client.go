// Package backend is the JSON-over-HTTP client for the health backend's
// REST contract. The backend owns all storage; the gateway only reads
// collections into snapshots and forwards the few writes the assistant
// performs on the user's behalf (timer creation, form submissions).
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/medassist/assistant-gateway/pkg/model"
	"go.uber.org/zap"
)

const DefaultTimeout = 10 * time.Second

// maxBodyBytes caps how much of a response body is read, both for decode
// and for error reporting.
const maxBodyBytes = 1 << 20

// HTTPError is a non-2xx response from the backend.
type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("backend: status=%d", e.StatusCode)
	}
	return fmt.Sprintf("backend: status=%d body=%s", e.StatusCode, e.Body)
}

// Client talks to the health backend. Safe for concurrent use.
type Client struct {
	http    *http.Client
	baseURL string
	logger  *zap.Logger
}

// New creates a Client for the given base URL. Transport may be nil; it
// exists so tests can inject one.
func New(baseURL string, timeout time.Duration, transport http.RoundTripper, logger *zap.Logger) (*Client, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, fmt.Errorf("backend: base URL is required")
	}
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, fmt.Errorf("backend: invalid base url: %w", err)
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if transport == nil {
		transport = http.DefaultTransport
	}

	return &Client{
		http: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  logger,
	}, nil
}

// doJSON performs one JSON request against the backend. in and out are
// optional; a non-2xx status is returned as *HTTPError.
func (c *Client) doJSON(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("backend: marshal request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("backend: new request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("backend: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))

	c.logger.Debug("backend request",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &HTTPError{
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(raw)),
		}
	}

	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("backend: unmarshal response: %w", err)
	}
	return nil
}

// Ping checks backend reachability.
func (c *Client) Ping(ctx context.Context) error {
	return c.doJSON(ctx, http.MethodGet, "/health", nil, nil)
}

// ListMedications returns all medication records.
func (c *Client) ListMedications(ctx context.Context) ([]model.Medication, error) {
	var out []model.Medication
	if err := c.doJSON(ctx, http.MethodGet, "/medications", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateMedication submits a new medication record.
func (c *Client) CreateMedication(ctx context.Context, medication *model.Medication) error {
	return c.doJSON(ctx, http.MethodPost, "/medications", medication, nil)
}

// DeleteMedication removes a medication record.
func (c *Client) DeleteMedication(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/medications/"+id, nil, nil)
}

// ListAppointments returns all appointment records.
func (c *Client) ListAppointments(ctx context.Context) ([]model.Appointment, error) {
	var out []model.Appointment
	if err := c.doJSON(ctx, http.MethodGet, "/appointments", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateAppointment submits a new appointment.
func (c *Client) CreateAppointment(ctx context.Context, appointment *model.Appointment) error {
	return c.doJSON(ctx, http.MethodPost, "/appointments", appointment, nil)
}

// DeleteAppointment cancels an appointment.
func (c *Client) DeleteAppointment(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/appointments/"+id, nil, nil)
}

// ListTimers returns all timers.
func (c *Client) ListTimers(ctx context.Context) ([]model.Timer, error) {
	var out []model.Timer
	if err := c.doJSON(ctx, http.MethodGet, "/timers", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

type createTimerRequest struct {
	Name     string `json:"name"`
	Duration int    `json:"duration"`
}

type createTimerResponse struct {
	TimerID string `json:"timer_id"`
}

// CreateTimer creates a timer in the Ready state and returns its ID.
func (c *Client) CreateTimer(ctx context.Context, name string, duration int) (string, error) {
	var out createTimerResponse
	in := createTimerRequest{Name: name, Duration: duration}
	if err := c.doJSON(ctx, http.MethodPost, "/timers", in, &out); err != nil {
		return "", err
	}
	return out.TimerID, nil
}

// StartTimer transitions a timer to Running.
func (c *Client) StartTimer(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodPost, "/timers/"+id+"/start", nil, nil)
}

// PauseTimer transitions a Running timer to Paused.
func (c *Client) PauseTimer(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodPost, "/timers/"+id+"/pause", nil, nil)
}

// ResetTimer transitions a timer back to Ready.
func (c *Client) ResetTimer(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodPost, "/timers/"+id+"/reset", nil, nil)
}

// GetProfile returns the user's medical profile, or nil when none has
// been saved yet.
func (c *Client) GetProfile(ctx context.Context) (*model.UserProfile, error) {
	var out model.UserProfile
	err := c.doJSON(ctx, http.MethodGet, "/profile", nil, &out)
	if err != nil {
		var httpErr *HTTPError
		if errors.As(err, &httpErr) && httpErr.StatusCode == http.StatusNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &out, nil
}

// SaveProfile creates or replaces the user's medical profile.
func (c *Client) SaveProfile(ctx context.Context, profile *model.UserProfile) error {
	return c.doJSON(ctx, http.MethodPost, "/profile", profile, nil)
}

// ListInsights returns all generated health insights.
func (c *Client) ListInsights(ctx context.Context) ([]model.HealthInsight, error) {
	var out []model.HealthInsight
	if err := c.doJSON(ctx, http.MethodGet, "/insights", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// MarkInsightRead marks a health insight as read.
func (c *Client) MarkInsightRead(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodPost, "/insights/"+id+"/read", nil, nil)
}

type chatRequest struct {
	Message string `json:"message"`
}

type chatResponse struct {
	Response string `json:"response"`
	Error    string `json:"error,omitempty"`
}

// Chat forwards a free-text message to the backend's AI endpoint and
// returns the generated reply.
func (c *Client) Chat(ctx context.Context, message string) (string, error) {
	var out chatResponse
	if err := c.doJSON(ctx, http.MethodPost, "/ai/chat", chatRequest{Message: message}, &out); err != nil {
		return "", err
	}
	if out.Error != "" {
		return "", fmt.Errorf("backend: ai chat: %s", out.Error)
	}
	return out.Response, nil
}
