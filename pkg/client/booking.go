package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"registrar/pkg/model"
)

const (
	bookingsPath      = "/api/bookings"
	defaultHealthWait = 30 * time.Second
)

// BookingClient talks to the registrar over HTTP. Non-2xx responses are
// returned as *APIError carrying the server's error message.
type BookingClient struct {
	httpClient *HttpClient
}

type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("registrar returned %d: %s", e.StatusCode, e.Message)
}

type CreatedBooking struct {
	Message string        `json:"message"`
	Booking model.Booking `json:"booking"`
}

func NewBookingClient(baseURL string) *BookingClient {
	return &BookingClient{
		httpClient: NewHttpClient(baseURL),
	}
}

func (c *BookingClient) Create(ctx context.Context, booking any) (*CreatedBooking, error) {
	resp, err := c.httpClient.POST(ctx, bookingsPath, booking)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusCreated {
		return nil, apiError(resp)
	}

	var created CreatedBooking
	if err := resp.DecodeJSON(&created); err != nil {
		return nil, fmt.Errorf("could not decode created booking: %s: %w", resp.ToString(), err)
	}
	return &created, nil
}

// List returns every booking, or only those of state when it is non-empty.
func (c *BookingClient) List(ctx context.Context, state string) ([]model.Booking, error) {
	path := bookingsPath
	if state != "" {
		q := url.Values{}
		q.Set("state", state)
		path += "?" + q.Encode()
	}

	resp, err := c.httpClient.GET(ctx, path)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, apiError(resp)
	}

	var bookings []model.Booking
	if err := json.Unmarshal(resp.Body, &bookings); err != nil {
		return nil, fmt.Errorf("could not decode booking list: %s: %w", resp.ToString(), err)
	}
	return bookings, nil
}

func (c *BookingClient) BookedDates(ctx context.Context, state string) ([]string, error) {
	resp, err := c.httpClient.GET(ctx, bookingsPath+"/dates/"+url.PathEscape(state))
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, apiError(resp)
	}

	var dates []string
	if err := json.Unmarshal(resp.Body, &dates); err != nil {
		return nil, fmt.Errorf("could not decode booked dates: %s: %w", resp.ToString(), err)
	}
	return dates, nil
}

func (c *BookingClient) WaitForHealthy(ctx context.Context) error {
	return c.httpClient.WaitForHealthy(ctx, defaultHealthWait)
}

func apiError(resp *Response) error {
	return &APIError{
		StatusCode: resp.StatusCode,
		Message:    GetErrorMessage(resp),
	}
}
