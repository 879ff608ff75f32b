// In file: internal/clinic/client.go
package clinic

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
)

// DefaultBaseURL is the staging deployment of the clinic API.
const DefaultBaseURL = "https://agent-api-staging.connectgrid.com"

// maxErrorBody bounds how much of a failed response is kept for logs.
const maxErrorBody = 512

// StatusError is returned for any non-2xx response.
type StatusError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("clinic API %s %s returned status %d: %s", e.Method, e.Path, e.StatusCode, e.Body)
}

// StatusCode extracts the HTTP status from err, or 0 if err is not a *StatusError.
func StatusCode(err error) int {
	var se *StatusError
	if errors.As(err, &se) {
		return se.StatusCode
	}
	return 0
}

// Client talks to the clinic API. Each method performs exactly one request;
// there are no retries. A Client is safe for concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client for baseURL (DefaultBaseURL when empty).
func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// BaseURL returns the API root the client was configured with.
func (c *Client) BaseURL() string { return c.baseURL }

// CheckAvailability calls GET /availability.
func (c *Client) CheckAvailability(ctx context.Context, q AvailabilityQuery) (*AvailabilityResponse, error) {
	params := url.Values{}
	params.Add("date", q.Date)
	params.Add("appointment_type", q.AppointmentType)
	if q.PractitionerName != "" {
		params.Add("practitioner_name", q.PractitionerName)
	}

	var out AvailabilityResponse
	if err := c.do(ctx, http.MethodGet, "/availability", params, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// VerifyPatient calls POST /patients/verify.
func (c *Client) VerifyPatient(ctx context.Context, req VerifyPatientRequest) (*VerifyPatientResponse, error) {
	var out VerifyPatientResponse
	if err := c.do(ctx, http.MethodPost, "/patients/verify", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreatePatient calls POST /patients.
func (c *Client) CreatePatient(ctx context.Context, req CreatePatientRequest) (*CreatePatientResponse, error) {
	var out CreatePatientResponse
	if err := c.do(ctx, http.MethodPost, "/patients", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// BookAppointment calls POST /appointments and returns the booked appointment.
func (c *Client) BookAppointment(ctx context.Context, req BookAppointmentRequest) (*Appointment, error) {
	var out Appointment
	if err := c.do(ctx, http.MethodPost, "/appointments", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CancelAppointment calls DELETE /appointments/{id}. Any 2xx body is ignored.
func (c *Client) CancelAppointment(ctx context.Context, appointmentID, reason string) error {
	path := "/appointments/" + url.PathEscape(appointmentID)
	return c.do(ctx, http.MethodDelete, path, nil, CancelAppointmentRequest{Reason: reason}, nil)
}

// PatientAppointments calls GET /patients/{id}/appointments.
func (c *Client) PatientAppointments(ctx context.Context, patientID string, limit int) ([]Appointment, error) {
	path := "/patients/" + url.PathEscape(patientID) + "/appointments"
	params := url.Values{}
	params.Add("limit", strconv.Itoa(limit))

	var out PatientAppointmentsResponse
	if err := c.do(ctx, http.MethodGet, path, params, nil, &out); err != nil {
		return nil, err
	}
	return out.Appointments, nil
}

// do sends one JSON request and decodes a 2xx body into out (when non-nil).
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal %s %s payload: %w", method, path, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("failed to create %s %s request: %w", method, path, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("clinic API %s %s failed: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &StatusError{Method: method, Path: path, StatusCode: resp.StatusCode, Body: string(snippet)}
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode clinic API %s %s response: %w", method, path, err)
	}
	return nil
}
