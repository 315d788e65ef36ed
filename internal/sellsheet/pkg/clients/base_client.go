package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"
	"sellsheet_api/pkg/logger"
	"sellsheet_api/pkg/middleware"
)

const maxErrorBody = 512

// StatusError is returned for non-2xx answers.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("non-OK status: %d: %s", e.StatusCode, e.Body)
}

type BaseClient struct {
	ApiURL  string
	service string
	auth    AuthEngine
	limiter *rate.Limiter
	log     logger.Logger
	client  *http.Client
}

func NewBaseClient(apiURL, service string, auth AuthEngine, limiter *rate.Limiter, log logger.Logger) *BaseClient {
	return &BaseClient{
		ApiURL:  apiURL,
		service: service,
		auth:    auth,
		limiter: limiter,
		log:     log.WithPrefix(fmt.Sprintf("[%s]", service)),
		client: &http.Client{
			Timeout:   60 * time.Second,
			Transport: middleware.NewMetricsTransport(service, nil),
		},
	}
}

type request struct {
	method      string
	endpoint    string
	label       string
	body        io.Reader
	contentType string
	accept      string
}

func (c *BaseClient) doRequest(ctx context.Context, r request, response interface{}) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limiter: %w", err)
		}
	}
	label := r.label
	if label == "" {
		label = r.endpoint
	}
	c.log.Log("%s %s", r.method, label)

	req, err := http.NewRequestWithContext(middleware.WithOperation(ctx, label), r.method, c.ApiURL+r.endpoint, r.body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if r.contentType != "" {
		req.Header.Set("Content-Type", r.contentType)
	}
	accept := r.accept
	if accept == "" {
		accept = "application/json"
	}
	req.Header.Set("Accept", accept)
	if c.auth != nil {
		c.auth.SetApiKey(req)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		select {
		case <-ctx.Done():
			return fmt.Errorf("request was cancelled: %w", ctx.Err())
		default:
			return fmt.Errorf("failed to execute request: %w", err)
		}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if len(body) > maxErrorBody {
			body = body[:maxErrorBody]
		}
		return &StatusError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	if err := json.Unmarshal(body, response); err != nil {
		return fmt.Errorf("failed to unmarshal response: %w", err)
	}
	return nil
}
