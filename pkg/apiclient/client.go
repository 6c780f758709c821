package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/dentalexperts/go-portal/pkg/logging"
)

const defaultTimeout = 20 * time.Second

// Config configures the portal API client.
type Config struct {
	BaseURL    string
	HTTPClient *http.Client
	Logger     *logging.Logger
}

// Client talks to the clinic backend. Every response shares the Envelope
// framing; transport failures (network, non-JSON body) surface as errors
// and are never retried.
type Client struct {
	baseURL string
	client  *http.Client
	logger  *logging.Logger
}

// New builds a client for the collaborator base URL.
func New(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("apiclient: base url is required")
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	return &Client{
		baseURL: cfg.BaseURL,
		client:  httpClient,
		logger:  logger.With("component", "apiclient"),
	}, nil
}

// Login authenticates a user or admin.
func (c *Client) Login(ctx context.Context, req LoginRequest) (LoginResponse, error) {
	var resp LoginResponse
	err := c.postJSON(ctx, "/login", req, &resp)
	return resp, err
}

// Signup creates an account; the optional profile image makes this multipart.
func (c *Client) Signup(ctx context.Context, req SignupRequest) (Envelope, error) {
	fields := map[string]string{
		"name":            req.Name,
		"email":           req.Email,
		"password":        req.Password,
		"confirmPassword": req.ConfirmPassword,
	}
	var resp Envelope
	err := c.postMultipart(ctx, "/signup", fields, req.ProfilePic, &resp)
	return resp, err
}

// BookAppointment books a visit.
func (c *Client) BookAppointment(ctx context.Context, req AppointmentRequest) (Envelope, error) {
	var resp Envelope
	err := c.postJSON(ctx, "/appointment", req, &resp)
	return resp, err
}

// SendContact posts a contact message.
func (c *Client) SendContact(ctx context.Context, req ContactRequest) (Envelope, error) {
	var resp Envelope
	err := c.postJSON(ctx, "/contact", req, &resp)
	return resp, err
}

// UserProfile fetches the profile for an email.
func (c *Client) UserProfile(ctx context.Context, email string) (ProfileResponse, error) {
	var resp ProfileResponse
	err := c.get(ctx, "/user-profile", url.Values{"email": {email}}, &resp)
	return resp, err
}

// UpdateProfile saves profile fields and an optional replacement image.
func (c *Client) UpdateProfile(ctx context.Context, req UpdateProfileRequest) (UpdateProfileResponse, error) {
	fields := map[string]string{
		"email":      req.Email,
		"name":       req.Name,
		"age":        req.Age,
		"bloodGroup": req.BloodGroup,
		"gender":     req.Gender,
	}
	var resp UpdateProfileResponse
	err := c.postMultipart(ctx, "/update-profile", fields, req.ProfilePic, &resp)
	return resp, err
}

// MyAppointments lists the caller's appointments.
func (c *Client) MyAppointments(ctx context.Context, email string) (AppointmentsResponse, error) {
	var resp AppointmentsResponse
	err := c.get(ctx, "/my-appointments", url.Values{"email": {email}}, &resp)
	return resp, err
}

// GetDoctors lists doctors for the booking form.
func (c *Client) GetDoctors(ctx context.Context) (DoctorsResponse, error) {
	var resp DoctorsResponse
	err := c.get(ctx, "/api/get-doctors", nil, &resp)
	return resp, err
}

// GetAllDoctors lists every doctor for admin screens and dropdowns.
func (c *Client) GetAllDoctors(ctx context.Context) (DoctorsResponse, error) {
	var resp DoctorsResponse
	err := c.get(ctx, "/api/get-all-doctors", nil, &resp)
	return resp, err
}

// GetAllUsers lists every patient for admin report dropdowns.
func (c *Client) GetAllUsers(ctx context.Context) (UsersResponse, error) {
	var resp UsersResponse
	err := c.get(ctx, "/api/get-all-users", nil, &resp)
	return resp, err
}

// ManageDoctor creates a doctor.
func (c *Client) ManageDoctor(ctx context.Context, req ManageDoctorRequest) (Envelope, error) {
	fields := map[string]string{
		"name":           req.Name,
		"specialization": req.Specialization,
	}
	var resp Envelope
	err := c.postMultipart(ctx, "/api/manage-doctor", fields, req.Image, &resp)
	return resp, err
}

// DeleteDoctor removes a doctor via the action=delete variant.
func (c *Client) DeleteDoctor(ctx context.Context, id int) (Envelope, error) {
	var resp Envelope
	err := c.postJSON(ctx, "/api/manage-doctor?action=delete", DeleteByIDRequest{ID: id}, &resp)
	return resp, err
}

// AdminDashboardData fetches the aggregate stats plus admin tables.
func (c *Client) AdminDashboardData(ctx context.Context) (AdminDashboardResponse, error) {
	var resp AdminDashboardResponse
	err := c.get(ctx, "/api/admin-dashboard-data", nil, &resp)
	return resp, err
}

// UpdateAppointment edits an appointment from the admin table.
func (c *Client) UpdateAppointment(ctx context.Context, req UpdateAppointmentRequest) (Envelope, error) {
	var resp Envelope
	err := c.postJSON(ctx, "/api/update-appointment", req, &resp)
	return resp, err
}

// UpdateAdminCredentials rotates the admin username/password.
func (c *Client) UpdateAdminCredentials(ctx context.Context, req AdminCredentialsRequest) (Envelope, error) {
	var resp Envelope
	err := c.postJSON(ctx, "/api/update-admin-credentials", req, &resp)
	return resp, err
}

// SubmitRating creates a rating.
func (c *Client) SubmitRating(ctx context.Context, req SubmitRatingRequest) (Envelope, error) {
	var resp Envelope
	err := c.postJSON(ctx, "/api/submit-rating/", req, &resp)
	return resp, err
}

// UpdateRating edits the caller's rating.
func (c *Client) UpdateRating(ctx context.Context, req UpdateRatingRequest) (Envelope, error) {
	var resp Envelope
	err := c.postJSON(ctx, "/api/update-rating/", req, &resp)
	return resp, err
}

// DeleteRating removes a rating.
func (c *Client) DeleteRating(ctx context.Context, req DeleteRatingRequest) (Envelope, error) {
	var resp Envelope
	err := c.postJSON(ctx, "/api/delete-rating/", req, &resp)
	return resp, err
}

// GetRatings lists every rating.
func (c *Client) GetRatings(ctx context.Context) (RatingsResponse, error) {
	var resp RatingsResponse
	err := c.get(ctx, "/api/get-ratings/", nil, &resp)
	return resp, err
}

// ManageReport uploads a report PDF for a patient.
func (c *Client) ManageReport(ctx context.Context, req ManageReportRequest) (Envelope, error) {
	fields := map[string]string{
		"title":       req.Title,
		"user_email":  req.UserEmail,
		"doctor_name": req.DoctorName,
		"report_date": req.ReportDate,
	}
	var resp Envelope
	err := c.postMultipart(ctx, "/api/manage-report", fields, req.File, &resp)
	return resp, err
}

// DeleteReport removes a report via the action=delete variant.
func (c *Client) DeleteReport(ctx context.Context, id int) (Envelope, error) {
	var resp Envelope
	err := c.postJSON(ctx, "/api/manage-report?action=delete", DeleteByIDRequest{ID: id}, &resp)
	return resp, err
}

// GetAllReports lists every report for the admin table.
func (c *Client) GetAllReports(ctx context.Context) (ReportsResponse, error) {
	var resp ReportsResponse
	err := c.get(ctx, "/api/get-all-reports", nil, &resp)
	return resp, err
}

// GetUserReports lists reports belonging to one patient.
func (c *Client) GetUserReports(ctx context.Context, email string) (ReportsResponse, error) {
	var resp ReportsResponse
	err := c.get(ctx, "/api/get-user-reports", url.Values{"email": {email}}, &resp)
	return resp, err
}

// DownloadReport streams the stored PDF for a report.
func (c *Client) DownloadReport(ctx context.Context, id int) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/download-report/"+strconv.Itoa(id)+"/", nil)
	if err != nil {
		return nil, fmt.Errorf("apiclient: build request: %w", err)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("apiclient: http request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("apiclient: remote error %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

func (c *Client) get(ctx context.Context, path string, query url.Values, target any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("apiclient: build request: %w", err)
	}
	return c.do(req, path, target)
}

func (c *Client) postJSON(ctx context.Context, path string, payload any, target any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("apiclient: encode payload: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("apiclient: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, path, target)
}

// postMultipart encodes text fields plus an optional file. The content type
// is left to the multipart writer so the boundary header is correct.
func (c *Client) postMultipart(ctx context.Context, path string, fields map[string]string, file *FileUpload, target any) error {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for name, value := range fields {
		if err := writer.WriteField(name, value); err != nil {
			return fmt.Errorf("apiclient: write field %s: %w", name, err)
		}
	}
	if file != nil {
		part, err := writer.CreateFormFile(file.FieldName, file.FileName)
		if err != nil {
			return fmt.Errorf("apiclient: create file part: %w", err)
		}
		if _, err := part.Write(file.Content); err != nil {
			return fmt.Errorf("apiclient: write file part: %w", err)
		}
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("apiclient: finish multipart body: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, &buf)
	if err != nil {
		return fmt.Errorf("apiclient: build request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return c.do(req, path, target)
}

func (c *Client) do(req *http.Request, path string, target any) error {
	started := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("apiclient: http request: %w", err)
	}
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return fmt.Errorf("apiclient: decode response: %w", err)
	}
	c.logger.Debug("collaborator call",
		"path", path,
		"method", req.Method,
		"http_status", resp.StatusCode,
		"duration_ms", time.Since(started).Milliseconds(),
	)
	return nil
}
