package service

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

	"cinemahall-cli/booking"
	"cinemahall-cli/model"
)

const (
	DefaultBaseURL     = "http://localhost:8080"
	defaultUserAgent   = "cinemahall-cli"
	defaultTimeout     = 12 * time.Second
	defaultMaxAttempts = 3
	defaultRetryBase   = 200 * time.Millisecond
	defaultRetryCap    = 1200 * time.Millisecond
)

// Client wraps HTTP access to the cinema booking API.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	userAgent   string
	maxAttempts int
	retryBase   time.Duration
	retryCap    time.Duration
}

// APIError is returned when the booking API responds with a non-2xx status.
type APIError struct {
	StatusCode int
	Status     string
	Endpoint   string
	Body       string
}

func (e *APIError) Error() string {
	if e == nil {
		return "booking api error"
	}
	return fmt.Sprintf("booking api error: %s: %s", e.Status, e.Body)
}

// IsConflict reports whether the error represents a 409 from the API.
func IsConflict(err error) bool {
	return hasStatus(err, http.StatusConflict)
}

func hasStatus(err error, code int) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == code
	}
	return false
}

// Classify maps a client error onto the booking error taxonomy: a 409 is
// a conflict, anything else is a network failure. Context cancellation is
// passed through untouched.
func Classify(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	if IsConflict(err) {
		return fmt.Errorf("%w: %w", booking.ErrConflict, err)
	}
	return fmt.Errorf("%w: %w", booking.ErrNetworkFailure, err)
}

// NewClient creates a new API client. If httpClient is nil, a default client is used.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		httpClient:  httpClient,
		baseURL:     baseURL,
		userAgent:   defaultUserAgent,
		maxAttempts: defaultMaxAttempts,
		retryBase:   defaultRetryBase,
		retryCap:    defaultRetryCap,
	}
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

// GetMovies lists the movies currently showing, one show each.
func (c *Client) GetMovies(ctx context.Context) ([]model.Movie, error) {
	endpoint := fmt.Sprintf("%s/api/movies", c.baseURL)

	var movies []model.Movie
	if err := c.getJSON(ctx, endpoint, c.maxAttempts, &movies); err != nil {
		return nil, err
	}
	return movies, nil
}

// GetSeats fetches the seat map of a show. It is called on every poll tick
// so it makes a single attempt; the next tick is the retry.
func (c *Client) GetSeats(ctx context.Context, showID int) ([]model.Seat, error) {
	if showID <= 0 {
		return nil, errors.New("show id is required")
	}
	endpoint := fmt.Sprintf("%s/api/seats?show_id=%s", c.baseURL, url.QueryEscape(strconv.Itoa(showID)))

	var seats []model.Seat
	if err := c.getJSON(ctx, endpoint, 1, &seats); err != nil {
		return nil, err
	}
	return seats, nil
}

// HoldSeats asks the server to reserve seats temporarily. A 409 means at
// least one seat is no longer available.
func (c *Client) HoldSeats(ctx context.Context, req model.HoldRequest) (model.HoldResponse, error) {
	if req.ShowId <= 0 || len(req.SeatIds) == 0 {
		return model.HoldResponse{}, errors.New("show id and seat ids are required")
	}
	endpoint := fmt.Sprintf("%s/api/hold-seats", c.baseURL)

	var out model.HoldResponse
	if err := c.postJSON(ctx, endpoint, req, &out); err != nil {
		return model.HoldResponse{}, err
	}
	if out.BookingId == 0 || out.ExpiresAt.IsZero() {
		return model.HoldResponse{}, errors.New("hold response is missing booking id or expiry")
	}
	return out, nil
}

// ConfirmBooking turns a hold into a booking.
func (c *Client) ConfirmBooking(ctx context.Context, req model.ConfirmRequest) (model.ConfirmResponse, error) {
	if req.BookingId == 0 {
		return model.ConfirmResponse{}, errors.New("booking id is required")
	}
	endpoint := fmt.Sprintf("%s/api/confirm-booking", c.baseURL)

	var out model.ConfirmResponse
	if err := c.postJSON(ctx, endpoint, req, &out); err != nil {
		return model.ConfirmResponse{}, err
	}
	return out, nil
}

// GetMyBookings lists the confirmed bookings of a user. An empty email
// leaves the choice of user to the server.
func (c *Client) GetMyBookings(ctx context.Context, email string) ([]model.BookingRecord, error) {
	endpoint := fmt.Sprintf("%s/api/my-bookings", c.baseURL)
	if email = strings.TrimSpace(email); email != "" {
		endpoint += "?user_email=" + url.QueryEscape(email)
	}

	var bookings []model.BookingRecord
	if err := c.getJSON(ctx, endpoint, c.maxAttempts, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

func (c *Client) getJSON(ctx context.Context, endpoint string, maxAttempts int, out any) error {
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return fmt.Errorf("create request: %w", err)
		}
		req.Header.Set("User-Agent", c.userAgent)
		req.Header.Set("Accept", "application/json")

		res, err := c.httpClient.Do(req)
		if err != nil {
			if c.shouldRetryNetworkError(err) && attempt < maxAttempts {
				if waitErr := c.waitRetry(ctx, attempt); waitErr != nil {
					return waitErr
				}
				continue
			}
			return fmt.Errorf("request failed: %w", err)
		}

		if res.StatusCode < http.StatusOK || res.StatusCode >= http.StatusMultipleChoices {
			apiErr := readAPIError(res, endpoint)
			if c.shouldRetryStatus(res.StatusCode) && attempt < maxAttempts {
				if waitErr := c.waitRetry(ctx, attempt); waitErr != nil {
					return waitErr
				}
				continue
			}
			return apiErr
		}

		return decodeBody(res, endpoint, out)
	}

	return errors.New("request failed after retries")
}

// postJSON sends a single request; holds and confirms are not idempotent
// so they are never retried.
func (c *Client) postJSON(ctx context.Context, endpoint string, in any, out any) error {
	payload, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")

	res, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	if res.StatusCode < http.StatusOK || res.StatusCode >= http.StatusMultipleChoices {
		return readAPIError(res, endpoint)
	}
	return decodeBody(res, endpoint, out)
}

func readAPIError(res *http.Response, endpoint string) *APIError {
	snippet, _ := io.ReadAll(io.LimitReader(res.Body, 8<<10))
	_ = res.Body.Close()
	return &APIError{
		StatusCode: res.StatusCode,
		Status:     res.Status,
		Endpoint:   endpoint,
		Body:       strings.TrimSpace(string(snippet)),
	}
}

func decodeBody(res *http.Response, endpoint string, out any) error {
	dec := json.NewDecoder(res.Body)
	err := dec.Decode(out)
	_ = res.Body.Close()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("decode response from %s: %w", endpoint, err)
	}
	return nil
}

func (c *Client) shouldRetryStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}

func (c *Client) shouldRetryNetworkError(err error) bool {
	if err == nil {
		return false
	}
	return !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded)
}

func (c *Client) waitRetry(ctx context.Context, attempt int) error {
	delay := c.retryDelay(attempt)
	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (c *Client) retryDelay(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	base := c.retryBase
	if base <= 0 {
		base = defaultRetryBase
	}
	cap := c.retryCap
	if cap <= 0 {
		cap = defaultRetryCap
	}

	delay := base
	for i := 1; i < attempt; i++ {
		if delay >= cap/2 {
			return cap
		}
		delay *= 2
	}
	if delay > cap {
		return cap
	}
	return delay
}
