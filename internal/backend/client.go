// Package backend is the typed client of the SuccessPath REST API. Every call
// carries the session token as a bearer credential, is traced and is timed.
package backend

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/noah-isme/successpath-portal/internal/observability"
)

const defaultTimeout = 10 * time.Second

// Config holds the backend location and per-call timeout.
type Config struct {
	BaseURL string
	Timeout time.Duration
	// RequestID extracts the correlation id forwarded as X-Correlation-ID.
	RequestID func(ctx context.Context) string
}

// Client calls the REST backend.
type Client struct {
	baseURL   string
	timeout   time.Duration
	requestID func(ctx context.Context) string
	logger    zerolog.Logger
	tracer    trace.Tracer
}

// New builds a client. BaseURL must include the API prefix, e.g. http://host/api.
func New(cfg Config, logger zerolog.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Client{
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		timeout:   timeout,
		requestID: cfg.RequestID,
		logger:    logger.With().Str("component", "backend_client").Logger(),
		tracer:    otel.Tracer("github.com/noah-isme/successpath-portal/internal/backend"),
	}
}

type call struct {
	operation string
	method    string
	path      string
	token     string
	query     url.Values
	body      any
}

// do performs one request and decodes a 2xx body into out. The fasthttp agent
// has no context support, so the context deadline shortens the timeout instead.
func (c *Client) do(ctx context.Context, req call, out any) error {
	spanCtx, span := c.tracer.Start(ctx, "backend."+req.operation, trace.WithAttributes(
		attribute.String("http.method", req.method),
		attribute.String("backend.path", req.path),
	))
	defer span.End()

	if err := spanCtx.Err(); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrUnavailable, req.operation, err)
	}

	started := time.Now()
	status, body, err := c.send(spanCtx, req)
	outcome := "ok"
	defer func() {
		observability.BackendCalls().WithLabelValues(req.operation, outcome).Observe(time.Since(started).Seconds())
	}()

	if err != nil {
		outcome = "unavailable"
		span.RecordError(err)
		span.SetStatus(codes.Error, "transport")
		c.logger.Warn().Err(err).Str("operation", req.operation).Msg("backend call failed")
		return fmt.Errorf("%w: %s: %v", ErrUnavailable, req.operation, err)
	}

	span.SetAttributes(attribute.Int("http.status_code", status))

	if status < http.StatusOK || status >= http.StatusMultipleChoices {
		outcome = "rejected"
		backendErr := &Error{Operation: req.operation, Status: status, Message: messageFromBody(body)}
		span.SetStatus(codes.Error, backendErr.Error())
		c.logger.Debug().Int("status", status).Str("operation", req.operation).Msg("backend rejected request")
		return backendErr
	}

	if out == nil || len(body) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		outcome = "undecodable"
		span.RecordError(err)
		return fmt.Errorf("%w: decode %s response: %v", ErrUnavailable, req.operation, err)
	}
	return nil
}

func (c *Client) send(ctx context.Context, req call) (int, []byte, error) {
	timeout := c.timeout
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining < timeout {
			timeout = remaining
		}
	}
	if timeout <= 0 {
		return 0, nil, context.DeadlineExceeded
	}

	target := c.baseURL + req.path
	if len(req.query) > 0 {
		target += "?" + req.query.Encode()
	}

	agent := fiber.AcquireAgent()
	request := agent.Request()
	request.Header.SetMethod(req.method)
	request.SetRequestURI(target)
	agent.Set(fiber.HeaderAccept, fiber.MIMEApplicationJSON)
	if req.token != "" {
		agent.Set(fiber.HeaderAuthorization, "Bearer "+req.token)
	}
	if c.requestID != nil {
		if id := c.requestID(ctx); id != "" {
			agent.Set("X-Correlation-ID", id)
		}
	}
	if req.body != nil {
		agent.JSON(req.body)
	}
	agent.Timeout(timeout)

	if err := agent.Parse(); err != nil {
		fiber.ReleaseAgent(agent)
		return 0, nil, err
	}

	status, body, errs := agent.Bytes()
	if len(errs) > 0 {
		return status, nil, errors.Join(errs...)
	}
	return status, body, nil
}

func messageFromBody(body []byte) string {
	var envelope struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return ""
	}
	if envelope.Message != "" {
		return envelope.Message
	}
	return envelope.Error
}

// decodeAggregate reads an object that some endpoints return at the top level
// and others nest under "data". A non-null "data" object wins.
func decodeAggregate(body json.RawMessage, out any) error {
	var wrapper struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(body, &wrapper); err == nil {
		trimmed := strings.TrimSpace(string(wrapper.Data))
		if strings.HasPrefix(trimmed, "{") {
			return json.Unmarshal(wrapper.Data, out)
		}
	}
	return json.Unmarshal(body, out)
}

func pageQuery(page, limit int) url.Values {
	query := url.Values{}
	if page > 0 {
		query.Set("page", fmt.Sprint(page))
	}
	if limit > 0 {
		query.Set("limit", fmt.Sprint(limit))
	}
	return query
}

func setIf(query url.Values, key, value string) {
	if value != "" {
		query.Set(key, value)
	}
}

type rawBody struct {
	bytes json.RawMessage
}

func (r *rawBody) UnmarshalJSON(data []byte) error {
	r.bytes = append(r.bytes[:0], data...)
	return nil
}

func undecodable(operation string, err error) error {
	return fmt.Errorf("%w: decode %s response: %v", ErrUnavailable, operation, err)
}
