package portal

import (
	"context"
	"errors"
	"strconv"
	"sync"

	"github.com/dentalexperts/go-portal/pkg/apiclient"
	"github.com/dentalexperts/go-portal/pkg/logging"
)

// Status targets. Each operation posts its progress and outcome to its
// own target so a failure never disturbs the rest of the page.
const (
	TargetLoginMessage       = "login-message"
	TargetSignupMessage      = "signup-message"
	TargetAppointmentMessage = "appointment-message"
	TargetContactMessage     = "contact-message"
	TargetProfileMessage     = "profile-message"
	TargetRatingMessage      = "rating-message"
	TargetDoctorMessage      = "doctor-message"
	TargetCredentialsMessage = "credentials-message"
	TargetAppointmentEdit    = "appointment-edit-message"
	TargetReportMessage      = "reportMsg"
)

// Fragment targets hosts replace with rendered table HTML.
const (
	FragmentUsersTable        = "users-table-body"
	FragmentAppointmentsTable = "appointments-table-body"
	FragmentDoctorsTable      = "doctors-table-body"
	FragmentRatingsDisplay    = "ratingsDisplay"
	FragmentReportsTable      = "reports-table-body"
	FragmentUserReportsList   = "userReportsList"
	FragmentMyAppointments    = "my-appointments-list"
)

var (
	errMissingClient = errors.New("portal: backend client not configured")
	errNotSignedIn   = errors.New("portal: operation requires a signed-in user")
	errNotAdmin      = errors.New("portal: operation requires the admin session")
)

// Options configures the portal Service. Every collaborator is provided
// via interface or pointer so applications and tests can swap
// implementations.
type Options struct {
	Client    Backend
	Sessions  *SessionStore
	Views     *Resolver
	Tables    *TableRenderer
	Editor    *Editor
	Charts    *StatsChart
	Status    StatusSink
	Validator FormValidator
	Telemetry Telemetry
	Logger    *logging.Logger
}

// Service orchestrates the portal: authentication, view switching, table
// rendering, edit sessions and status reporting over the backend client.
type Service struct {
	mu   sync.Mutex
	opts Options
}

// NewService builds a Service with safe defaults for nil collaborators.
func NewService(opts Options) *Service {
	if opts.Sessions == nil {
		opts.Sessions = NewSessionStore(nil)
	}
	if opts.Views == nil {
		opts.Views = NewResolver(ResolverOptions{Sessions: opts.Sessions, Logger: opts.Logger})
	}
	if opts.Tables == nil {
		if renderer, err := NewTemplateRenderer(); err == nil {
			opts.Tables = NewTableRenderer(renderer)
		}
	}
	if opts.Editor == nil {
		opts.Editor = NewEditor(WithEditorTelemetry(opts.Telemetry), WithEditorLogger(opts.Logger))
	}
	if opts.Charts == nil {
		opts.Charts = NewStatsChart()
	}
	opts.Status = normalizeStatusSink(opts.Status)
	if opts.Validator == nil {
		opts.Validator = NewJSONSchemaValidator()
	}
	opts.Telemetry = normalizeTelemetry(opts.Telemetry)
	if opts.Logger == nil {
		opts.Logger = logging.Default()
	}
	opts.Logger = opts.Logger.With("component", "portal")
	return &Service{opts: opts}
}

// Views exposes the view resolver for hosts that drive page initialization.
func (s *Service) Views() *Resolver { return s.opts.Views }

// Sessions exposes the session store.
func (s *Service) Sessions() *SessionStore { return s.opts.Sessions }

func (s *Service) client() (Backend, error) {
	if s.opts.Client == nil {
		return nil, errMissingClient
	}
	return s.opts.Client, nil
}

func (s *Service) tables() (*TableRenderer, error) {
	if s.opts.Tables == nil {
		return nil, errMissingRenderer
	}
	return s.opts.Tables, nil
}

// Editor exposes the edit-session controller.
func (s *Service) Editor() *Editor { return s.opts.Editor }

// reportOutcome posts the operation result to its status target. A
// collaborator refusal surfaces its message verbatim in red and is not a
// Go error; transport failures surface as "Error: <details>" and are.
func (s *Service) reportOutcome(target string, env apiclient.Envelope, err error) error {
	if err != nil {
		s.opts.Status.Post(target, StatusError, "Error: "+err.Error())
		return err
	}
	if env.OK() {
		s.opts.Status.Post(target, StatusSuccess, env.Message)
		return nil
	}
	s.opts.Status.Post(target, StatusError, env.Message)
	return nil
}

func (s *Service) recordTelemetry(ctx context.Context, event string, payload map[string]any) {
	s.opts.Telemetry.Record(ctx, event, payload)
}

// Login authenticates either variant of the login form. Success persists
// the session and applies the resolved view; refusals and transport
// failures leave the current view untouched.
func (s *Service) Login(ctx context.Context, req apiclient.LoginRequest) (ViewMode, error) {
	client, err := s.client()
	if err != nil {
		return s.opts.Views.Resolve(ctx), err
	}
	if (req.Email == "" && req.Username == "") || req.Password == "" {
		s.opts.Status.Post(TargetLoginMessage, StatusError, "Please enter email and password")
		return s.opts.Views.Resolve(ctx), nil
	}

	s.opts.Status.Post(TargetLoginMessage, StatusInfo, "Logging in...")
	resp, err := client.Login(ctx, req)
	if err := s.reportOutcome(TargetLoginMessage, resp.Envelope, err); err != nil {
		return s.opts.Views.Resolve(ctx), err
	}
	if !resp.OK() {
		return s.opts.Views.Resolve(ctx), nil
	}

	session := Session{}
	if resp.Role == "admin" || req.Type == "admin" {
		session.Role = RoleAdmin
		session.AdminUsername = req.Username
		if session.AdminUsername == "" {
			session.AdminUsername = resp.User.Name
		}
	} else {
		session.Role = RoleUser
		session.Name = resp.User.Name
		session.Email = resp.User.Email
		session.UserID = strconv.Itoa(resp.User.ID)
		session.ProfilePic = resp.User.ProfilePic
	}

	s.mu.Lock()
	err = s.opts.Sessions.Set(ctx, session)
	s.mu.Unlock()
	if err != nil {
		return s.opts.Views.Resolve(ctx), err
	}

	s.recordTelemetry(ctx, "portal.login", map[string]any{"role": string(session.Role)})
	return s.opts.Views.Apply(ctx)
}

// Logout clears the session and resets to the Guest view. Idempotent.
func (s *Service) Logout(ctx context.Context) (ViewMode, error) {
	s.mu.Lock()
	err := s.opts.Sessions.Clear(ctx)
	s.mu.Unlock()
	if err != nil {
		return s.opts.Views.Resolve(ctx), err
	}
	s.recordTelemetry(ctx, "portal.logout", nil)
	return s.opts.Views.Apply(ctx)
}

// Signup validates the registration form client-side before any network
// call, then submits it as multipart form data.
func (s *Service) Signup(ctx context.Context, req apiclient.SignupRequest) error {
	client, err := s.client()
	if err != nil {
		return err
	}
	form := map[string]any{
		"name":            req.Name,
		"email":           req.Email,
		"password":        req.Password,
		"confirmPassword": req.ConfirmPassword,
	}
	if err := s.opts.Validator.Validate(SignupForm, form); err != nil {
		s.opts.Status.Post(TargetSignupMessage, StatusError, "All fields are required")
		return nil
	}
	if req.Password != req.ConfirmPassword {
		s.opts.Status.Post(TargetSignupMessage, StatusError, "Passwords do not match")
		return nil
	}

	s.opts.Status.Post(TargetSignupMessage, StatusInfo, "Creating account...")
	env, err := client.Signup(ctx, req)
	if err := s.reportOutcome(TargetSignupMessage, env, err); err != nil {
		return err
	}
	if env.OK() {
		s.recordTelemetry(ctx, "portal.signup", nil)
	}
	return nil
}

// BookAppointment posts a validated appointment request.
func (s *Service) BookAppointment(ctx context.Context, req apiclient.AppointmentRequest) error {
	client, err := s.client()
	if err != nil {
		return err
	}
	form := map[string]any{
		"name":             req.Name,
		"email":            req.Email,
		"phone":            req.Phone,
		"doctor":           req.Doctor,
		"appointment_date": req.AppointmentDate,
	}
	if err := s.opts.Validator.Validate(AppointmentForm, form); err != nil {
		s.opts.Status.Post(TargetAppointmentMessage, StatusError, "All fields are required")
		return nil
	}

	s.opts.Status.Post(TargetAppointmentMessage, StatusInfo, "Booking appointment...")
	env, err := client.BookAppointment(ctx, req)
	return s.reportOutcome(TargetAppointmentMessage, env, err)
}

// SendContact posts a validated contact-form message.
func (s *Service) SendContact(ctx context.Context, req apiclient.ContactRequest) error {
	client, err := s.client()
	if err != nil {
		return err
	}
	form := map[string]any{
		"name":    req.Name,
		"email":   req.Email,
		"message": req.Message,
	}
	if err := s.opts.Validator.Validate(ContactForm, form); err != nil {
		s.opts.Status.Post(TargetContactMessage, StatusError, "All fields are required")
		return nil
	}

	s.opts.Status.Post(TargetContactMessage, StatusInfo, "Sending...")
	env, err := client.SendContact(ctx, req)
	return s.reportOutcome(TargetContactMessage, env, err)
}

func (s *Service) userSession(ctx context.Context) (Session, error) {
	session := s.opts.Sessions.Get(ctx)
	if session.Role != RoleUser {
		return session, errNotSignedIn
	}
	return session, nil
}

func (s *Service) adminSession(ctx context.Context) (Session, error) {
	session := s.opts.Sessions.Get(ctx)
	if session.Role != RoleAdmin {
		return session, errNotAdmin
	}
	return session, nil
}
