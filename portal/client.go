// Package portal is the client engine behind the patient portal's booking
// screens: a REST client for the appointment API plus the calendar, filter
// cascade and lifecycle state the UI renders from.
package portal

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"carewell/models"
)

// APIError is a non-2xx response from the backend. Status distinguishes a
// booking conflict (409) from plain transport failure.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error (%d): %s", e.Status, e.Message)
}

// IsConflict reports whether err is the backend rejecting a commit because
// the slot filled between fetch and submit.
func IsConflict(err error) bool {
	apiErr, ok := err.(*APIError)
	return ok && apiErr.Status == http.StatusConflict
}

// Client talks to the appointment backend with a bearer token.
type Client struct {
	BaseURL    string
	Token      string
	HTTPClient *http.Client
}

// NewClient builds a portal API client for the given backend and token.
func NewClient(baseURL, token string) *Client {
	return &Client{
		BaseURL:    baseURL,
		Token:      token,
		HTTPClient: &http.Client{Timeout: 15 * time.Second},
	}
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u := c.BaseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.Token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var envelope struct {
			Message string `json:"message"`
			Error   string `json:"error"`
		}
		data, _ := io.ReadAll(resp.Body)
		_ = json.Unmarshal(data, &envelope)
		msg := envelope.Message
		if msg == "" {
			msg = envelope.Error
		}
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return &APIError{Status: resp.StatusCode, Message: msg}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// Stats fetches the upcoming/past appointment counters.
func (c *Client) Stats(ctx context.Context) (*models.AppointmentStats, error) {
	var stats models.AppointmentStats
	if err := c.do(ctx, http.MethodGet, "/api/my-appointments/stats", nil, nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// Upcoming fetches the upcoming appointment list.
func (c *Client) Upcoming(ctx context.Context) ([]models.Appointment, error) {
	var out struct {
		Appointments []models.Appointment `json:"appointments"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/my-appointments/upcoming", nil, nil, &out); err != nil {
		return nil, err
	}
	return out.Appointments, nil
}

// Past fetches the past and cancelled appointment list.
func (c *Client) Past(ctx context.Context) ([]models.Appointment, error) {
	var out struct {
		Appointments []models.Appointment `json:"appointments"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/my-appointments/past", nil, nil, &out); err != nil {
		return nil, err
	}
	return out.Appointments, nil
}

// AvailableSlotsRange fetches a doctor's resolved schedule over an inclusive
// date range.
func (c *Client) AvailableSlotsRange(ctx context.Context, doctorID, startDate, endDate string) ([]models.DaySchedule, error) {
	query := url.Values{}
	query.Set("doctor_id", doctorID)
	query.Set("start_date", startDate)
	query.Set("end_date", endDate)

	var out struct {
		Schedule []models.DaySchedule `json:"schedule"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/appointments/available-slots/range", query, nil, &out); err != nil {
		return nil, err
	}
	return out.Schedule, nil
}

// Book commits a booking intent.
func (c *Client) Book(ctx context.Context, req models.BookAppointmentRequest) (*models.Appointment, error) {
	var out struct {
		Appointment *models.Appointment `json:"appointment"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/appointments", nil, req, &out); err != nil {
		return nil, err
	}
	return out.Appointment, nil
}

// Reschedule moves an appointment; the time is wire-format "HH:MM:SS".
func (c *Client) Reschedule(ctx context.Context, appointmentID string, req models.RescheduleRequest) (*models.Appointment, error) {
	var out struct {
		Appointment *models.Appointment `json:"appointment"`
	}
	path := "/api/appointments/" + appointmentID + "/reschedule"
	if err := c.do(ctx, http.MethodPost, path, nil, req, &out); err != nil {
		return nil, err
	}
	return out.Appointment, nil
}

// Cancel cancels an appointment with the given reason.
func (c *Client) Cancel(ctx context.Context, appointmentID, reason string) error {
	path := "/api/appointments/" + appointmentID + "/cancel"
	return c.do(ctx, http.MethodPost, path, nil, models.CancelRequest{CancellationReason: reason}, nil)
}

// Branches fetches the branch directory.
func (c *Client) Branches(ctx context.Context) ([]models.Branch, error) {
	var out struct {
		Branches []models.Branch `json:"branches"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/branches", nil, nil, &out); err != nil {
		return nil, err
	}
	return out.Branches, nil
}

// Departments fetches the full department directory.
func (c *Client) Departments(ctx context.Context) ([]models.Department, error) {
	var out struct {
		Departments []models.Department `json:"departments"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/departments", nil, nil, &out); err != nil {
		return nil, err
	}
	return out.Departments, nil
}

// Doctors fetches doctors, optionally scoped to a branch and/or department.
func (c *Client) Doctors(ctx context.Context, branchID, departmentID string) ([]models.Doctor, error) {
	query := url.Values{}
	if branchID != "" {
		query.Set("branch_id", branchID)
	}
	if departmentID != "" {
		query.Set("department_id", departmentID)
	}

	var out struct {
		Doctors []models.Doctor `json:"doctors"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/doctors", query, nil, &out); err != nil {
		return nil, err
	}
	return out.Doctors, nil
}
