package backend

import (
	"bytes"
	"cmp"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrymomot/marketplace/app/marketplace/domain"
)

// Client is the marketplace API client.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTimeout sets the per-request timeout of the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// New creates an anonymous client.
func New(baseURL string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, ErrMissingBaseURL
	}
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// NewFromConfig creates a client from Config.
func NewFromConfig(cfg Config, opts ...Option) (*Client, error) {
	return New(cfg.BaseURL, append([]Option{WithTimeout(cfg.Timeout)}, opts...)...)
}

// WithToken returns a client sending token as a bearer credential.
// The underlying HTTP client is shared.
func (c *Client) WithToken(token string) *Client {
	cp := *c
	cp.token = token
	return &cp
}

// GetUser fetches a user profile.
func (c *Client) GetUser(ctx context.Context, id string) (domain.User, error) {
	var u domain.User
	if err := c.get(ctx, "/users/"+url.PathEscape(id), &u); err != nil {
		return domain.User{}, fmt.Errorf("backend.GetUser: %w", err)
	}
	return u, nil
}

// CreateUser registers a new account. The backend answers 201.
func (c *Client) CreateUser(ctx context.Context, u domain.NewUser) error {
	if err := c.post(ctx, "/users", u, nil); err != nil {
		return fmt.Errorf("backend.CreateUser: %w", err)
	}
	return nil
}

// Login exchanges credentials for a user id and access token.
func (c *Client) Login(ctx context.Context, creds domain.Credentials) (domain.LoginResult, error) {
	var res domain.LoginResult
	if err := c.post(ctx, "/users/login", creds, &res); err != nil {
		return domain.LoginResult{}, fmt.Errorf("backend.Login: %w", err)
	}
	if res.UserID == "" || res.AccessToken == "" {
		return domain.LoginResult{}, fmt.Errorf("backend.Login: %w: incomplete login response", domain.ErrNetworkFailure)
	}
	return res, nil
}

// BecomeProvider promotes the user to provider.
func (c *Client) BecomeProvider(ctx context.Context, userID string) error {
	body := map[string]string{"userId": userID}
	if err := c.post(ctx, "/users/becomeProvider", body, nil); err != nil {
		return fmt.Errorf("backend.BecomeProvider: %w", err)
	}
	return nil
}

// ListServices returns every listed service.
func (c *Client) ListServices(ctx context.Context) ([]domain.Service, error) {
	var services []domain.Service
	if err := c.get(ctx, "/services", &services); err != nil {
		return nil, fmt.Errorf("backend.ListServices: %w", err)
	}
	return services, nil
}

// ListServicesByLocation returns the services offered in a city.
func (c *Client) ListServicesByLocation(ctx context.Context, location string) ([]domain.Service, error) {
	var services []domain.Service
	if err := c.get(ctx, "/services/location/"+url.PathEscape(location), &services); err != nil {
		return nil, fmt.Errorf("backend.ListServicesByLocation: %w", err)
	}
	return services, nil
}

// CreateService lists a new service.
func (c *Client) CreateService(ctx context.Context, s domain.NewService) (domain.Service, error) {
	var created domain.Service
	if err := c.post(ctx, "/services", s, &created); err != nil {
		return domain.Service{}, fmt.Errorf("backend.CreateService: %w", err)
	}
	return created, nil
}

// ListUserBookings returns the bookings a consumer made.
func (c *Client) ListUserBookings(ctx context.Context, userID string) ([]domain.Booking, error) {
	var bookings []domain.Booking
	if err := c.get(ctx, "/bookings/user/"+url.PathEscape(userID), &bookings); err != nil {
		return nil, fmt.Errorf("backend.ListUserBookings: %w", err)
	}
	return bookings, nil
}

// ListProviderBookings returns the booking requests a provider received.
func (c *Client) ListProviderBookings(ctx context.Context, providerID string) ([]domain.Booking, error) {
	var bookings []domain.Booking
	if err := c.get(ctx, "/bookings/provider/"+url.PathEscape(providerID), &bookings); err != nil {
		return nil, fmt.Errorf("backend.ListProviderBookings: %w", err)
	}
	return bookings, nil
}

// CreateBooking books a service.
func (c *Client) CreateBooking(ctx context.Context, b domain.NewBooking) (domain.Booking, error) {
	var created domain.Booking
	if err := c.post(ctx, "/bookings", b, &created); err != nil {
		return domain.Booking{}, fmt.Errorf("backend.CreateBooking: %w", err)
	}
	return created, nil
}

// SetBookingStatus changes a booking's status.
func (c *Client) SetBookingStatus(ctx context.Context, bookingID string, status domain.Status) error {
	body := map[string]domain.Status{"status": status}
	if err := c.post(ctx, "/bookings/"+url.PathEscape(bookingID)+"/status", body, nil); err != nil {
		return fmt.Errorf("backend.SetBookingStatus: %w", err)
	}
	return nil
}

// PayBooking records the payment of a booking.
func (c *Client) PayBooking(ctx context.Context, bookingID string) error {
	if err := c.post(ctx, "/bookings/"+url.PathEscape(bookingID)+"/payment", nil, nil); err != nil {
		return fmt.Errorf("backend.PayBooking: %w", err)
	}
	return nil
}

// DeleteBooking removes a booking.
func (c *Client) DeleteBooking(ctx context.Context, bookingID string) error {
	if err := c.doRequest(ctx, http.MethodDelete, "/bookings/"+url.PathEscape(bookingID), nil, nil); err != nil {
		return fmt.Errorf("backend.DeleteBooking: %w", err)
	}
	return nil
}

// Ping checks that the backend answers HTTP at all. Any response counts.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, c.baseURL+"/services", nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("backend.Ping: %w: %w", domain.ErrNetworkFailure, err)
	}
	return resp.Body.Close()
}

func (c *Client) doRequest(ctx context.Context, method, path string, body any, out any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrNetworkFailure, err)
	}
	defer resp.Body.Close() //nolint:errcheck // best-effort close

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		respBody, readErr := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
		if readErr != nil {
			return &HTTPError{StatusCode: resp.StatusCode, Message: fmt.Sprintf("failed to read body: %v", readErr)}
		}
		var apiErr struct {
			Error   string `json:"error"`
			Message string `json:"message"`
		}
		if json.Unmarshal(respBody, &apiErr) == nil {
			if msg := cmp.Or(apiErr.Error, apiErr.Message); msg != "" {
				return &HTTPError{StatusCode: resp.StatusCode, Message: msg}
			}
		}
		return &HTTPError{StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(respBody))}
	}

	if out != nil {
		// Some endpoints answer 201 with an empty body.
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: decode response: %w", domain.ErrNetworkFailure, err)
		}
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.doRequest(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	return c.doRequest(ctx, http.MethodPost, path, body, out)
}
