package apiclient

import (
	"context"
	"sync"
)

// MockData seeds deterministic collaborator responses for tests and demos.
// The zero value answers every call with an empty success envelope.
type MockData struct {
	Login          LoginResponse
	Profile        ProfileResponse
	UpdateProfile  UpdateProfileResponse
	Appointments   AppointmentsResponse
	Doctors        DoctorsResponse
	Users          UsersResponse
	AdminDashboard AdminDashboardResponse
	Ratings        RatingsResponse
	Reports        ReportsResponse
	UserReports    ReportsResponse
	Ack            Envelope
	ReportPDF      []byte
	Err            error
}

// MockClient implements the portal backend using in-memory fixtures and
// records call order so tests can assert which endpoints were touched.
type MockClient struct {
	mu    sync.Mutex
	data  MockData
	calls []string
}

// NewMockClient builds a mock collaborator from the provided fixtures.
func NewMockClient(data MockData) *MockClient {
	return &MockClient{data: data}
}

// Calls returns the endpoints invoked so far, in order.
func (c *MockClient) Calls() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.calls...)
}

func (c *MockClient) record(name string) {
	c.mu.Lock()
	c.calls = append(c.calls, name)
	c.mu.Unlock()
}

func (c *MockClient) Login(context.Context, LoginRequest) (LoginResponse, error) {
	c.record("login")
	return c.data.Login, c.data.Err
}

func (c *MockClient) Signup(context.Context, SignupRequest) (Envelope, error) {
	c.record("signup")
	return c.data.Ack, c.data.Err
}

func (c *MockClient) BookAppointment(context.Context, AppointmentRequest) (Envelope, error) {
	c.record("appointment")
	return c.data.Ack, c.data.Err
}

func (c *MockClient) SendContact(context.Context, ContactRequest) (Envelope, error) {
	c.record("contact")
	return c.data.Ack, c.data.Err
}

func (c *MockClient) UserProfile(context.Context, string) (ProfileResponse, error) {
	c.record("user-profile")
	return c.data.Profile, c.data.Err
}

func (c *MockClient) UpdateProfile(context.Context, UpdateProfileRequest) (UpdateProfileResponse, error) {
	c.record("update-profile")
	return c.data.UpdateProfile, c.data.Err
}

func (c *MockClient) MyAppointments(context.Context, string) (AppointmentsResponse, error) {
	c.record("my-appointments")
	return c.data.Appointments, c.data.Err
}

func (c *MockClient) GetDoctors(context.Context) (DoctorsResponse, error) {
	c.record("get-doctors")
	return c.data.Doctors, c.data.Err
}

func (c *MockClient) GetAllDoctors(context.Context) (DoctorsResponse, error) {
	c.record("get-all-doctors")
	return c.data.Doctors, c.data.Err
}

func (c *MockClient) GetAllUsers(context.Context) (UsersResponse, error) {
	c.record("get-all-users")
	return c.data.Users, c.data.Err
}

func (c *MockClient) ManageDoctor(context.Context, ManageDoctorRequest) (Envelope, error) {
	c.record("manage-doctor")
	return c.data.Ack, c.data.Err
}

func (c *MockClient) DeleteDoctor(context.Context, int) (Envelope, error) {
	c.record("delete-doctor")
	return c.data.Ack, c.data.Err
}

func (c *MockClient) AdminDashboardData(context.Context) (AdminDashboardResponse, error) {
	c.record("admin-dashboard-data")
	return c.data.AdminDashboard, c.data.Err
}

func (c *MockClient) UpdateAppointment(context.Context, UpdateAppointmentRequest) (Envelope, error) {
	c.record("update-appointment")
	return c.data.Ack, c.data.Err
}

func (c *MockClient) UpdateAdminCredentials(context.Context, AdminCredentialsRequest) (Envelope, error) {
	c.record("update-admin-credentials")
	return c.data.Ack, c.data.Err
}

func (c *MockClient) SubmitRating(context.Context, SubmitRatingRequest) (Envelope, error) {
	c.record("submit-rating")
	return c.data.Ack, c.data.Err
}

func (c *MockClient) UpdateRating(context.Context, UpdateRatingRequest) (Envelope, error) {
	c.record("update-rating")
	return c.data.Ack, c.data.Err
}

func (c *MockClient) DeleteRating(context.Context, DeleteRatingRequest) (Envelope, error) {
	c.record("delete-rating")
	return c.data.Ack, c.data.Err
}

func (c *MockClient) GetRatings(context.Context) (RatingsResponse, error) {
	c.record("get-ratings")
	return c.data.Ratings, c.data.Err
}

func (c *MockClient) ManageReport(context.Context, ManageReportRequest) (Envelope, error) {
	c.record("manage-report")
	return c.data.Ack, c.data.Err
}

func (c *MockClient) DeleteReport(context.Context, int) (Envelope, error) {
	c.record("delete-report")
	return c.data.Ack, c.data.Err
}

func (c *MockClient) GetAllReports(context.Context) (ReportsResponse, error) {
	c.record("get-all-reports")
	return c.data.Reports, c.data.Err
}

func (c *MockClient) GetUserReports(context.Context, string) (ReportsResponse, error) {
	c.record("get-user-reports")
	if len(c.data.UserReports.Reports) > 0 || c.data.UserReports.Status != "" {
		return c.data.UserReports, c.data.Err
	}
	return c.data.Reports, c.data.Err
}

func (c *MockClient) DownloadReport(context.Context, int) ([]byte, error) {
	c.record("download-report")
	return c.data.ReportPDF, c.data.Err
}
