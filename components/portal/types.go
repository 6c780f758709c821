package portal

import (
	"context"

	"github.com/dentalexperts/go-portal/pkg/apiclient"
)

// Role classifies the signed-in identity.
type Role string

const (
	RoleGuest Role = "guest"
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Session is the persisted identity the portal runs under. Created on a
// successful login, mutated only by login/logout/profile-save, reset to the
// Guest default by Clear.
type Session struct {
	Role          Role
	Name          string
	Email         string
	UserID        string
	ProfilePic    string
	AdminUsername string
}

// ViewMode is the exclusive UI mode derived from Session.Role. Exactly one
// mode is active at any time.
type ViewMode string

const (
	ModeGuest ViewMode = "guest"
	ModeUser  ViewMode = "user"
	ModeAdmin ViewMode = "admin"
)

// StateStore is the persisted key/value surface behind the session store.
// Reads never fail; absent keys report ok=false.
type StateStore interface {
	Get(ctx context.Context, key string) (value string, ok bool)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}

// PanelHost is the surface the view resolver drives: a page shell that can
// show/hide named panels and update navigation indicators. Implementations
// report absent panels via HasPanel so the resolver can no-op instead of
// failing on partial pages.
type PanelHost interface {
	HasPanel(code string) bool
	ShowPanel(code string)
	HidePanel(code string)
	SetNavActive(anchor string)
	SetGreeting(text string)
}

// DataLoader runs a view mode's initial data-load sequence.
type DataLoader func(ctx context.Context, session Session) error

// StatusLevel selects the rendering color for a status message.
type StatusLevel string

const (
	StatusInfo    StatusLevel = "info"    // blue, in-progress
	StatusSuccess StatusLevel = "success" // green
	StatusError   StatusLevel = "error"   // red
)

// StatusSink receives per-operation status text. Every operation posts an
// in-progress message synchronously before dispatching its network call and
// the outcome message after; each target element is isolated from the rest
// of the page.
type StatusSink interface {
	Post(target string, level StatusLevel, message string)
}

type noopStatusSink struct{}

func (noopStatusSink) Post(string, StatusLevel, string) {}

func normalizeStatusSink(s StatusSink) StatusSink {
	if s == nil {
		return noopStatusSink{}
	}
	return s
}

// Backend is the remote collaborator surface the portal consumes. The
// concrete implementation lives in pkg/apiclient; tests swap in the mock.
type Backend interface {
	Login(ctx context.Context, req apiclient.LoginRequest) (apiclient.LoginResponse, error)
	Signup(ctx context.Context, req apiclient.SignupRequest) (apiclient.Envelope, error)
	BookAppointment(ctx context.Context, req apiclient.AppointmentRequest) (apiclient.Envelope, error)
	SendContact(ctx context.Context, req apiclient.ContactRequest) (apiclient.Envelope, error)
	UserProfile(ctx context.Context, email string) (apiclient.ProfileResponse, error)
	UpdateProfile(ctx context.Context, req apiclient.UpdateProfileRequest) (apiclient.UpdateProfileResponse, error)
	MyAppointments(ctx context.Context, email string) (apiclient.AppointmentsResponse, error)
	GetDoctors(ctx context.Context) (apiclient.DoctorsResponse, error)
	GetAllDoctors(ctx context.Context) (apiclient.DoctorsResponse, error)
	GetAllUsers(ctx context.Context) (apiclient.UsersResponse, error)
	ManageDoctor(ctx context.Context, req apiclient.ManageDoctorRequest) (apiclient.Envelope, error)
	DeleteDoctor(ctx context.Context, id int) (apiclient.Envelope, error)
	AdminDashboardData(ctx context.Context) (apiclient.AdminDashboardResponse, error)
	UpdateAppointment(ctx context.Context, req apiclient.UpdateAppointmentRequest) (apiclient.Envelope, error)
	UpdateAdminCredentials(ctx context.Context, req apiclient.AdminCredentialsRequest) (apiclient.Envelope, error)
	SubmitRating(ctx context.Context, req apiclient.SubmitRatingRequest) (apiclient.Envelope, error)
	UpdateRating(ctx context.Context, req apiclient.UpdateRatingRequest) (apiclient.Envelope, error)
	DeleteRating(ctx context.Context, req apiclient.DeleteRatingRequest) (apiclient.Envelope, error)
	GetRatings(ctx context.Context) (apiclient.RatingsResponse, error)
	ManageReport(ctx context.Context, req apiclient.ManageReportRequest) (apiclient.Envelope, error)
	DeleteReport(ctx context.Context, id int) (apiclient.Envelope, error)
	GetAllReports(ctx context.Context) (apiclient.ReportsResponse, error)
	GetUserReports(ctx context.Context, email string) (apiclient.ReportsResponse, error)
	DownloadReport(ctx context.Context, id int) ([]byte, error)
}
